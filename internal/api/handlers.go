package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/abhisek/lingoloop/internal/coach"
	"github.com/abhisek/lingoloop/internal/profile"
)

const (
	defaultLimit = 10
	maxLimit     = 100
)

func (s *Server) health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "challenges": s.coach.Pool().Len()})
}

// queryLimit reads ?limit=, defaulting to 10 and allowing 1..100.
func queryLimit(c *gin.Context) (int, bool) {
	raw := c.Query("limit")
	if raw == "" {
		return defaultLimit, true
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 1 || n > maxLimit {
		abortWithError(c, Validation("invalid limit", "limit must be an integer between 1 and 100"))
		return 0, false
	}
	return n, true
}

func (s *Server) recommendations(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	recs, err := s.coach.Recommend(c.Request.Context(), userID(c), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"recommendations": recs})
}

func (s *Server) completeAttempt(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	var in coach.AttemptInput
	if err := c.ShouldBindJSON(&in); err != nil {
		abortWithError(c, Validation("invalid request body", err.Error()))
		return
	}
	res, err := s.coach.CompleteAttempt(c.Request.Context(), userID(c), in, limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

func (s *Server) performance(c *gin.Context) {
	c.JSON(http.StatusOK, s.coach.Snapshot(c.Request.Context(), userID(c)))
}

func (s *Server) resetPerformance(c *gin.Context) {
	snap, err := s.coach.Reset(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

func (s *Server) insights(c *gin.Context) {
	ins, err := s.coach.Insights(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ins)
}

func (s *Server) getProfile(c *gin.Context) {
	p, err := s.coach.Profile(c.Request.Context(), userID(c))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) putProfile(c *gin.Context) {
	var p profile.Profile
	if err := c.ShouldBindJSON(&p); err != nil {
		abortWithError(c, Validation("invalid request body", err.Error()))
		return
	}
	if err := s.coach.SaveProfile(c.Request.Context(), userID(c), &p); err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (s *Server) getChallenge(c *gin.Context) {
	ch, err := s.coach.Pool().Get(c.Param("id"))
	if err != nil {
		abortWithError(c, err)
		return
	}
	c.JSON(http.StatusOK, ch)
}

type historyItem struct {
	AttemptID      string    `json:"attemptId"`
	Timestamp      time.Time `json:"timestamp"`
	ChallengeID    string    `json:"challengeId"`
	ChallengeType  string    `json:"challengeType"`
	Topic          string    `json:"topic"`
	Level          string    `json:"level"`
	Score          float64   `json:"score"`
	Passed         bool      `json:"passed"`
	XPEarned       int       `json:"xpEarned"`
	EffectiveLevel string    `json:"effectiveLevel"`
	Trend          string    `json:"trend"`
}

func (s *Server) history(c *gin.Context) {
	limit, ok := queryLimit(c)
	if !ok {
		return
	}
	events, err := s.coach.History(c.Request.Context(), userID(c), limit)
	if err != nil {
		abortWithError(c, err)
		return
	}
	items := make([]historyItem, 0, len(events))
	for _, e := range events {
		items = append(items, historyItem{
			AttemptID:      e.AttemptID,
			Timestamp:      e.Timestamp,
			ChallengeID:    e.ChallengeID,
			ChallengeType:  e.ChallengeType,
			Topic:          e.Topic,
			Level:          e.Level,
			Score:          e.Score,
			Passed:         e.Passed,
			XPEarned:       e.XPEarned,
			EffectiveLevel: e.EffectiveLevel,
			Trend:          e.Trend,
		})
	}
	c.JSON(http.StatusOK, gin.H{"attempts": items})
}
