package store

import (
	"context"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoloop/internal/kv"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "nested", "test.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestPragmasApplied(t *testing.T) {
	s := openTestStore(t)
	db := s.DB()

	tests := []struct {
		pragma string
		want   string
	}{
		{"journal_mode", "wal"},
		{"foreign_keys", "1"},
		{"synchronous", "1"}, // NORMAL = 1
		{"busy_timeout", "5000"},
	}

	for _, tt := range tests {
		var got string
		err := db.QueryRow("PRAGMA " + tt.pragma).Scan(&got)
		if err != nil {
			t.Errorf("PRAGMA %s: %v", tt.pragma, err)
			continue
		}
		if got != tt.want {
			t.Errorf("PRAGMA %s = %q, want %q", tt.pragma, got, tt.want)
		}
	}
}

func TestOpen_InMemory(t *testing.T) {
	s, err := Open("file::memory:")
	require.NoError(t, err)
	defer s.Close()
	assert.NoError(t, s.Ping(context.Background()))
}

func TestSequenceCounter_Monotonic(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()

	var last int64
	for i := 0; i < 5; i++ {
		n, err := s.seq.Next(ctx)
		require.NoError(t, err)
		assert.Greater(t, n, last)
		last = n
	}
}

func TestKV_RoundTrip(t *testing.T) {
	s := openTestStore(t)
	ctx := context.Background()
	store := s.KV()

	_, err := store.Get(ctx, "missing")
	assert.ErrorIs(t, err, kv.ErrNotFound)

	require.NoError(t, store.Set(ctx, "k", "v1"))
	require.NoError(t, store.Set(ctx, "k", "v2"))
	got, err := store.Get(ctx, "k")
	require.NoError(t, err)
	assert.Equal(t, "v2", got)

	require.NoError(t, store.Remove(ctx, "k"))
	require.NoError(t, store.Remove(ctx, "k"))
	_, err = store.Get(ctx, "k")
	assert.ErrorIs(t, err, kv.ErrNotFound)
}

func TestKV_PersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reopen.db")
	ctx := context.Background()

	s, err := Open(path)
	require.NoError(t, err)
	require.NoError(t, s.KV().Set(ctx, "performance:u1", `{"version":1}`))
	require.NoError(t, s.Close())

	s, err = Open(path)
	require.NoError(t, err)
	defer s.Close()
	got, err := s.KV().Get(ctx, "performance:u1")
	require.NoError(t, err)
	assert.Equal(t, `{"version":1}`, got)
}

func attemptData(id, user string, xp int) AttemptEventData {
	return AttemptEventData{
		AttemptID:      id,
		UserID:         user,
		ChallengeID:    "cafe-order-listen",
		ChallengeType:  "listening",
		Topic:          "cafe",
		Level:          "beginner",
		Score:          82.5,
		Passed:         true,
		XPEarned:       xp,
		EffectiveLevel: "beginner",
		Trend:          "stable",
	}
}

func TestAttempts_AppendQueryXP(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, attemptData("a1", "u1", 10)))
	require.NoError(t, repo.AppendAttempt(ctx, attemptData("a2", "u2", 99)))
	require.NoError(t, repo.AppendAttempt(ctx, attemptData("a3", "u1", 15)))

	events, err := repo.QueryAttempts(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	require.Len(t, events, 2)
	assert.Equal(t, "a3", events[0].AttemptID, "newest first")
	assert.Equal(t, "a1", events[1].AttemptID)
	assert.True(t, events[0].Passed)
	assert.InDelta(t, 82.5, events[0].Score, 1e-9)
	assert.False(t, events[0].Timestamp.IsZero())

	limited, err := repo.QueryAttempts(ctx, "u1", QueryOpts{Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	after, err := repo.QueryAttempts(ctx, "u1", QueryOpts{After: events[1].Sequence})
	require.NoError(t, err)
	require.Len(t, after, 1)
	assert.Equal(t, "a3", after[0].AttemptID)

	xp, err := repo.TotalXP(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, 25, xp)

	xp, err = repo.TotalXP(ctx, "nobody")
	require.NoError(t, err)
	assert.Zero(t, xp)
}

func TestAttempts_TimeRange(t *testing.T) {
	s := openTestStore(t)
	clock := time.Date(2026, 1, 1, 9, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return clock }
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, attemptData("early", "u1", 1)))
	clock = clock.Add(48 * time.Hour)
	require.NoError(t, repo.AppendAttempt(ctx, attemptData("late", "u1", 1)))

	got, err := repo.QueryAttempts(ctx, "u1", QueryOpts{From: clock.Add(-time.Hour)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "late", got[0].AttemptID)

	got, err = repo.QueryAttempts(ctx, "u1", QueryOpts{To: clock.Add(-time.Hour)})
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "early", got[0].AttemptID)
}

func TestLLMEvents(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "challenge-gen",
		InputTokens: 100, OutputTokens: 50, LatencyMs: 300, Success: true,
		RequestBody: "[user]\nhi", ResponseBody: `{"challenges":[]}`,
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "anthropic", Model: "claude-haiku-4-5", Purpose: "challenge-gen",
		InputTokens: 200, OutputTokens: 10, LatencyMs: 100, Success: false,
		ErrorMessage: "rate limited",
	}))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{
		Provider: "openai", Model: "gpt-4o-mini", Purpose: "feedback",
		InputTokens: 5, OutputTokens: 5, LatencyMs: 50, Success: true,
	}))

	events, err := repo.QueryLLMEvents(ctx, QueryOpts{Limit: 10})
	require.NoError(t, err)
	require.Len(t, events, 3)
	assert.Equal(t, "feedback", events[0].Purpose)

	e, err := repo.GetLLMEvent(ctx, events[2].ID)
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.Equal(t, `{"challenges":[]}`, e.ResponseBody)
	assert.True(t, e.Success)

	missing, err := repo.GetLLMEvent(ctx, 9999)
	require.NoError(t, err)
	assert.Nil(t, missing)

	byPurpose, err := repo.LLMUsageByPurpose(ctx)
	require.NoError(t, err)
	require.Len(t, byPurpose, 2)
	assert.Equal(t, "challenge-gen", byPurpose[0].Purpose)
	assert.Equal(t, 2, byPurpose[0].Calls)
	assert.Equal(t, 300, byPurpose[0].InputTokens)
	assert.Equal(t, int64(200), byPurpose[0].AvgLatencyMs)

	byModel, err := repo.LLMUsageByModel(ctx)
	require.NoError(t, err)
	require.Len(t, byModel, 2)
	assert.Equal(t, "claude-haiku-4-5", byModel[0].Model)
}

func TestSequence_SharedAcrossTables(t *testing.T) {
	s := openTestStore(t)
	repo := s.EventRepo()
	ctx := context.Background()

	require.NoError(t, repo.AppendAttempt(ctx, attemptData("a1", "u1", 1)))
	require.NoError(t, repo.AppendLLMRequest(ctx, LLMRequestEventData{Provider: "mock", Model: "mock", Purpose: "x"}))
	require.NoError(t, repo.AppendAttempt(ctx, attemptData("a2", "u1", 1)))

	attempts, err := repo.QueryAttempts(ctx, "u1", QueryOpts{})
	require.NoError(t, err)
	llmEvents, err := repo.QueryLLMEvents(ctx, QueryOpts{})
	require.NoError(t, err)

	assert.Less(t, attempts[1].Sequence, llmEvents[0].Sequence)
	assert.Less(t, llmEvents[0].Sequence, attempts[0].Sequence)
}

func TestFilePath(t *testing.T) {
	cases := map[string]string{
		"/tmp/x.db":                   "/tmp/x.db",
		"file:/tmp/x.db?_pragma=foo":  "/tmp/x.db",
		"file::memory:?cache=shared":  "",
		":memory:":                    "",
	}
	for in, want := range cases {
		if got := filePath(in); got != want {
			t.Errorf("filePath(%q) = %q, want %q", in, got, want)
		}
	}
}
