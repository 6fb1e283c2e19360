package app

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoloop/internal/coach"
	"github.com/abhisek/lingoloop/internal/config"
)

func testConfig(t *testing.T, backend string) config.Config {
	t.Helper()
	cfg := config.Default()
	cfg.Storage.Backend = backend
	cfg.Storage.DBPath = filepath.Join(t.TempDir(), "lingoloop.db")
	cfg.Content.PackDir = filepath.Join(t.TempDir(), "packs")
	return cfg
}

func TestOpen_SQLiteRoundTrip(t *testing.T) {
	ctx := context.Background()
	cfg := testConfig(t, config.BackendSQLite)

	a, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	assert.Positive(t, a.Pool.Len())

	first := a.Pool.All()[0]
	_, err = a.Coach.CompleteAttempt(ctx, "u1", coach.AttemptInput{ChallengeID: first.ID, Score: 75, Passed: true, XPEarned: 5}, 3)
	require.NoError(t, err)
	require.NoError(t, a.Close())

	reopened, err := Open(ctx, cfg, nil)
	require.NoError(t, err)
	defer reopened.Close()

	snap := reopened.Coach.Snapshot(ctx, "u1")
	assert.Equal(t, 1, snap.Overall.TotalAttempts, "snapshot persisted in sqlite kv table")

	hist, err := reopened.Coach.History(ctx, "u1", 10)
	require.NoError(t, err)
	require.Len(t, hist, 1)
	assert.Equal(t, first.ID, hist[0].ChallengeID)
}

func TestOpen_MemoryBackend(t *testing.T) {
	a, err := Open(context.Background(), testConfig(t, config.BackendMemory), nil)
	require.NoError(t, err)
	defer a.Close()
	assert.NotNil(t, a.KV)
}

func TestOpen_InvalidConfig(t *testing.T) {
	_, err := Open(context.Background(), testConfig(t, "mongo"), nil)
	assert.Error(t, err)
}

func TestGenerator_Disabled(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY", "LINGOLOOP_LLM_PROVIDER"} {
		t.Setenv(k, "")
	}
	a, err := Open(context.Background(), testConfig(t, config.BackendMemory), nil)
	require.NoError(t, err)
	defer a.Close()

	_, err = a.Generator(context.Background())
	assert.True(t, errors.Is(err, ErrLLMDisabled))
}

func TestGenerator_Mock(t *testing.T) {
	cfg := testConfig(t, config.BackendMemory)
	cfg.LLM.Provider = "mock"
	a, err := Open(context.Background(), cfg, nil)
	require.NoError(t, err)
	defer a.Close()

	gen, err := a.Generator(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, gen)
}
