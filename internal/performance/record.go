package performance

import (
	"math"

	"github.com/abhisek/lingoloop/internal/challenge"
)

// Attempt is the outcome of one completed challenge. Score may be any
// number; it is clamped to [0,100] before aggregation. XPEarned is carried
// for the attempt log and plays no part in scoring.
type Attempt struct {
	Challenge challenge.Challenge
	Score     float64
	Passed    bool
	XPEarned  int
}

// NormalizeScore clamps score to [0,100]. NaN maps to 0.
func NormalizeScore(score float64) float64 {
	if math.IsNaN(score) {
		return 0
	}
	return clamp(score, 0, 100)
}

// Record folds one attempt into the snapshot: counters, score and challenge
// windows, trend and effective level, in that order. It does not touch
// LastUpdated; the Store stamps that on persist.
func (s *Snapshot) Record(a Attempt, th Thresholds) {
	score := NormalizeScore(a.Score)
	c := a.Challenge

	o := &s.Overall
	o.TotalAttempts++
	if a.Passed {
		o.SuccessfulAttempts++
	}
	o.TotalScore += score
	o.AvgScore = o.TotalScore / float64(o.TotalAttempts)
	o.SuccessRate = float64(o.SuccessfulAttempts) / float64(o.TotalAttempts) * 100

	s.ByType.record(string(c.Type), score, a.Passed)
	s.ByTopic.record(c.Topic, score, a.Passed)
	s.ByLevel.record(string(c.Level), score, a.Passed)

	s.LastFiveScores = keepLast(append(s.LastFiveScores, score), MaxRecentScores)
	if c.ID != "" {
		s.RecentChallenges = keepLast(append(s.RecentChallenges, c.ID), MaxRecentChallenges)
	}

	s.RecentTrend = DetectTrend(s.LastFiveScores)
	s.EffectiveLevel = AdjustLevel(s, th)
}

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
