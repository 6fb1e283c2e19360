package performance

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/kv"
	"github.com/abhisek/lingoloop/internal/logger"
)

// LevelSource supplies the self-declared level used to seed a fresh
// snapshot. The profile repository implements it.
type LevelSource interface {
	Level(ctx context.Context, userID string) (challenge.Level, error)
}

// Store loads, updates and resets per-user snapshots over a kv.Store.
//
// Load never fails. Update and Reset return persistence errors together
// with the updated snapshot, which is kept in memory and served in place
// of the stored record until a later write for the user succeeds.
// Updates and resets for one user are serialized.
type Store struct {
	kv         kv.Store
	levels     LevelSource
	thresholds Thresholds
	log        *logger.Logger
	now        func() time.Time

	mu       sync.Mutex
	fallback map[string]*Snapshot
	dirty    map[string]bool
	users    map[string]*sync.Mutex
}

// Option configures a Store.
type Option func(*Store)

// WithLevelSource seeds fresh snapshots from src.
func WithLevelSource(src LevelSource) Option {
	return func(s *Store) { s.levels = src }
}

// WithThresholds overrides DefaultThresholds.
func WithThresholds(th Thresholds) Option {
	return func(s *Store) { s.thresholds = th }
}

// WithLogger sets the logger. A nil logger discards.
func WithLogger(l *logger.Logger) Option {
	return func(s *Store) { s.log = logger.OrNop(l) }
}

// WithClock overrides time.Now.
func WithClock(now func() time.Time) Option {
	return func(s *Store) { s.now = now }
}

// NewStore creates a performance store backed by store.
func NewStore(store kv.Store, opts ...Option) *Store {
	s := &Store{
		kv:         store,
		thresholds: DefaultThresholds(),
		log:        logger.Nop(),
		now:        time.Now,
		fallback:   make(map[string]*Snapshot),
		dirty:      make(map[string]bool),
		users:      make(map[string]*sync.Mutex),
	}
	for _, o := range opts {
		o(s)
	}
	return s
}

// Key returns the kv key holding userID's snapshot.
func Key(userID string) string {
	return "performance:" + userID
}

// Thresholds returns the thresholds this store adjusts levels with.
func (s *Store) Thresholds() Thresholds {
	return s.thresholds
}

// Load returns userID's snapshot. A missing record yields a fresh default.
// A corrupt record or read failure yields the last in-memory snapshot for
// the user, or a fresh default. A snapshot whose write failed is returned
// without reading the stale record.
func (s *Store) Load(ctx context.Context, userID string) *Snapshot {
	if snap := s.unpersisted(userID); snap != nil {
		return snap
	}

	raw, err := s.kv.Get(ctx, Key(userID))
	if err != nil {
		if !errors.Is(err, kv.ErrNotFound) {
			s.log.Warn("performance read failed", "user", userID, "error", err)
			return s.recover(ctx, userID)
		}
		return s.fresh(ctx, userID)
	}

	snap, err := decode(raw)
	if err != nil {
		s.log.Warn("performance record corrupt, cold start", "user", userID, "error", err)
		return s.recover(ctx, userID)
	}
	s.remember(userID, snap)
	return snap.Clone()
}

// Update records one attempt and persists the result.
func (s *Store) Update(ctx context.Context, userID string, a Attempt) (*Snapshot, error) {
	unlock := s.lock(userID)
	defer unlock()

	snap := s.Load(ctx, userID)
	snap.Record(a, s.thresholds)
	return snap, s.persist(ctx, userID, snap)
}

// Reset replaces userID's snapshot with a fresh default and persists it.
func (s *Store) Reset(ctx context.Context, userID string) (*Snapshot, error) {
	unlock := s.lock(userID)
	defer unlock()

	snap := s.fresh(ctx, userID)
	return snap, s.persist(ctx, userID, snap)
}

func (s *Store) persist(ctx context.Context, userID string, snap *Snapshot) error {
	snap.LastUpdated = s.now().UTC()
	s.remember(userID, snap)

	data, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("encode performance: %w", err)
	}
	if err := s.kv.Set(ctx, Key(userID), string(data)); err != nil {
		s.log.Error("performance write failed", "user", userID, "error", err)
		s.markDirty(userID, true)
		return fmt.Errorf("save performance: %w", err)
	}
	s.markDirty(userID, false)
	return nil
}

// lock acquires userID's update lock and returns its release.
func (s *Store) lock(userID string) func() {
	s.mu.Lock()
	m, ok := s.users[userID]
	if !ok {
		m = &sync.Mutex{}
		s.users[userID] = m
	}
	s.mu.Unlock()

	m.Lock()
	return m.Unlock
}

func (s *Store) markDirty(userID string, dirty bool) {
	s.mu.Lock()
	if dirty {
		s.dirty[userID] = true
	} else {
		delete(s.dirty, userID)
	}
	s.mu.Unlock()
}

func (s *Store) unpersisted(userID string) *Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dirty[userID] {
		return nil
	}
	if last, ok := s.fallback[userID]; ok {
		return last.Clone()
	}
	return nil
}

func (s *Store) fresh(ctx context.Context, userID string) *Snapshot {
	level := challenge.LevelBeginner
	if s.levels != nil {
		l, err := s.levels.Level(ctx, userID)
		switch {
		case err == nil:
			level = l
		case !errors.Is(err, kv.ErrNotFound):
			s.log.Debug("profile level unavailable", "user", userID, "error", err)
		}
	}
	return NewSnapshot(level)
}

func (s *Store) recover(ctx context.Context, userID string) *Snapshot {
	s.mu.Lock()
	last, ok := s.fallback[userID]
	s.mu.Unlock()
	if ok {
		return last.Clone()
	}
	return s.fresh(ctx, userID)
}

func (s *Store) remember(userID string, snap *Snapshot) {
	s.mu.Lock()
	s.fallback[userID] = snap.Clone()
	s.mu.Unlock()
}

func decode(raw string) (*Snapshot, error) {
	var snap Snapshot
	if err := json.Unmarshal([]byte(raw), &snap); err != nil {
		return nil, fmt.Errorf("decode performance: %w", err)
	}
	snap.normalize()
	if err := snap.Validate(); err != nil {
		return nil, err
	}
	return &snap, nil
}
