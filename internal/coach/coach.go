// Package coach runs the adaptive loop for one learner: rank challenges,
// fold in an attempt, rank again from the updated snapshot.
package coach

import (
	"context"
	"errors"
	"fmt"
	"math"

	"github.com/google/uuid"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/logger"
	"github.com/abhisek/lingoloop/internal/performance"
	"github.com/abhisek/lingoloop/internal/profile"
	"github.com/abhisek/lingoloop/internal/recommend"
	"github.com/abhisek/lingoloop/internal/store"
)

// ErrInvalidAttempt is returned for attempts the coach cannot record.
var ErrInvalidAttempt = errors.New("invalid attempt")

// AttemptLog is the append-only history the coach writes to.
// store.EventRepo satisfies it.
type AttemptLog interface {
	AppendAttempt(ctx context.Context, data store.AttemptEventData) error
	QueryAttempts(ctx context.Context, userID string, opts store.QueryOpts) ([]store.AttemptEvent, error)
	TotalXP(ctx context.Context, userID string) (int, error)
}

// Coach ties the content pool, profiles and performance store together.
type Coach struct {
	pool     *challenge.Pool
	perf     *performance.Store
	profiles *profile.Repo
	events   AttemptLog
	scorer   *recommend.Scorer
	log      *logger.Logger
	newID    func() string
}

// Option configures a Coach.
type Option func(*Coach)

// WithAttemptLog records attempts to l. Without one, History is empty and
// TotalXP is zero.
func WithAttemptLog(l AttemptLog) Option {
	return func(c *Coach) { c.events = l }
}

// WithScorer replaces the default scoring rules.
func WithScorer(s *recommend.Scorer) Option {
	return func(c *Coach) { c.scorer = s }
}

// WithLogger sets the logger. A nil logger discards.
func WithLogger(l *logger.Logger) Option {
	return func(c *Coach) { c.log = logger.OrNop(l) }
}

// New creates a Coach.
func New(pool *challenge.Pool, perf *performance.Store, profiles *profile.Repo, opts ...Option) *Coach {
	c := &Coach{
		pool:     pool,
		perf:     perf,
		profiles: profiles,
		scorer:   recommend.NewScorer(),
		newID:    uuid.NewString,
	}
	for _, opt := range opts {
		opt(c)
	}
	c.log = logger.OrNop(c.log)
	return c
}

// Pool returns the content pool.
func (c *Coach) Pool() *challenge.Pool { return c.pool }

// Recommend ranks the pool for userID. limit <= 0 returns every candidate.
func (c *Coach) Recommend(ctx context.Context, userID string, limit int) ([]recommend.Scored, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidAttempt)
	}
	return c.rank(c.profile(ctx, userID), c.perf.Load(ctx, userID), limit, false), nil
}

// Explain is Recommend with per-rule point breakdowns attached.
func (c *Coach) Explain(ctx context.Context, userID string, limit int) ([]recommend.Scored, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidAttempt)
	}
	return c.rank(c.profile(ctx, userID), c.perf.Load(ctx, userID), limit, true), nil
}

// AttemptInput is a finished challenge as reported by a client.
type AttemptInput struct {
	ChallengeID string  `json:"challengeId"`
	Score       float64 `json:"score"`
	Passed      bool    `json:"passed"`
	XPEarned    int     `json:"xpEarned"`
}

// Validate rejects inputs missing a challenge or carrying a non-finite
// score or negative XP.
func (in AttemptInput) Validate() error {
	switch {
	case in.ChallengeID == "":
		return fmt.Errorf("%w: challengeId is required", ErrInvalidAttempt)
	case math.IsNaN(in.Score) || math.IsInf(in.Score, 0):
		return fmt.Errorf("%w: score must be a finite number", ErrInvalidAttempt)
	case in.XPEarned < 0:
		return fmt.Errorf("%w: xpEarned must not be negative", ErrInvalidAttempt)
	}
	return nil
}

// Result is the outcome of CompleteAttempt.
type Result struct {
	AttemptID       string                `json:"attemptId"`
	Snapshot        *performance.Snapshot `json:"snapshot"`
	Recommendations []recommend.Scored    `json:"recommendations"`
}

// CompleteAttempt folds the attempt into userID's performance, appends it
// to the attempt log and returns a ranking computed from the updated
// snapshot. A failing attempt log is logged, not returned. When the
// snapshot cannot be persisted the Result is still returned, along with
// the error.
func (c *Coach) CompleteAttempt(ctx context.Context, userID string, in AttemptInput, limit int) (*Result, error) {
	if userID == "" {
		return nil, fmt.Errorf("%w: user id is required", ErrInvalidAttempt)
	}
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ch, err := c.pool.Get(in.ChallengeID)
	if err != nil {
		return nil, err
	}

	snap, err := c.perf.Update(ctx, userID, performance.Attempt{
		Challenge: ch,
		Score:     in.Score,
		Passed:    in.Passed,
		XPEarned:  in.XPEarned,
	})
	if snap == nil {
		return nil, fmt.Errorf("update performance: %w", err)
	}
	var persistErr error
	if err != nil {
		persistErr = fmt.Errorf("update performance: %w", err)
	}

	id := c.newID()
	if c.events != nil {
		err := c.events.AppendAttempt(ctx, store.AttemptEventData{
			AttemptID:      id,
			UserID:         userID,
			ChallengeID:    ch.ID,
			ChallengeType:  string(ch.Type),
			Topic:          ch.Topic,
			Level:          string(ch.Level),
			Score:          performance.NormalizeScore(in.Score),
			Passed:         in.Passed,
			XPEarned:       in.XPEarned,
			EffectiveLevel: string(snap.EffectiveLevel),
			Trend:          string(snap.RecentTrend),
		})
		if err != nil {
			c.log.Warn("append attempt", "user", userID, "challenge", ch.ID, "error", err)
		}
	}

	c.log.Debug("attempt recorded", "user", userID, "challenge", ch.ID,
		"level", snap.EffectiveLevel, "trend", snap.RecentTrend)

	return &Result{
		AttemptID:       id,
		Snapshot:        snap,
		Recommendations: c.rank(c.profile(ctx, userID), snap, limit, false),
	}, persistErr
}

// Snapshot returns userID's current performance.
func (c *Coach) Snapshot(ctx context.Context, userID string) *performance.Snapshot {
	return c.perf.Load(ctx, userID)
}

// Insights summarizes where userID struggles and excels.
type Insights struct {
	EffectiveLevel challenge.Level    `json:"effectiveLevel"`
	Trend          performance.Trend  `json:"trend"`
	WeakAreas      []performance.Area `json:"weakAreas"`
	Strengths      []performance.Area `json:"strengths"`
	TotalXP        int                `json:"totalXp"`
}

func (c *Coach) Insights(ctx context.Context, userID string) (*Insights, error) {
	snap := c.perf.Load(ctx, userID)
	out := &Insights{
		EffectiveLevel: snap.EffectiveLevel,
		Trend:          snap.RecentTrend,
		WeakAreas:      performance.WeakAreas(snap),
		Strengths:      performance.Strengths(snap),
	}
	if c.events != nil {
		xp, err := c.events.TotalXP(ctx, userID)
		if err != nil {
			return nil, fmt.Errorf("total xp: %w", err)
		}
		out.TotalXP = xp
	}
	return out, nil
}

// Reset clears userID's performance. The attempt log is kept.
func (c *Coach) Reset(ctx context.Context, userID string) (*performance.Snapshot, error) {
	snap, err := c.perf.Reset(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("reset performance: %w", err)
	}
	c.log.Info("performance reset", "user", userID)
	return snap, nil
}

// History returns userID's latest attempts, newest first.
func (c *Coach) History(ctx context.Context, userID string, limit int) ([]store.AttemptEvent, error) {
	if c.events == nil {
		return nil, nil
	}
	events, err := c.events.QueryAttempts(ctx, userID, store.QueryOpts{Limit: limit})
	if err != nil {
		return nil, fmt.Errorf("query attempts: %w", err)
	}
	return events, nil
}

// Profile returns userID's stored profile or profile.ErrNotFound.
func (c *Coach) Profile(ctx context.Context, userID string) (*profile.Profile, error) {
	return c.profiles.Load(ctx, userID)
}

// SaveProfile validates and stores p for userID.
func (c *Coach) SaveProfile(ctx context.Context, userID string, p *profile.Profile) error {
	return c.profiles.Save(ctx, userID, p)
}

// profile loads userID's profile for ranking. Missing or unreadable
// profiles rank with neutral defaults.
func (c *Coach) profile(ctx context.Context, userID string) *profile.Profile {
	p, err := c.profiles.Load(ctx, userID)
	if err != nil {
		if !errors.Is(err, profile.ErrNotFound) {
			c.log.Warn("load profile", "user", userID, "error", err)
		}
		return nil
	}
	return p
}

func (c *Coach) rank(p *profile.Profile, snap *performance.Snapshot, limit int, explain bool) []recommend.Scored {
	return recommend.Recommend(c.pool.All(), p, snap, recommend.Options{Limit: limit, Explain: explain, Scorer: c.scorer})
}
