// Package app builds the object graph shared by the CLI and the HTTP
// server from a loaded configuration.
package app

import (
	"context"
	"errors"
	"fmt"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/coach"
	"github.com/abhisek/lingoloop/internal/config"
	"github.com/abhisek/lingoloop/internal/contentgen"
	"github.com/abhisek/lingoloop/internal/kv"
	"github.com/abhisek/lingoloop/internal/llm"
	"github.com/abhisek/lingoloop/internal/logger"
	"github.com/abhisek/lingoloop/internal/performance"
	"github.com/abhisek/lingoloop/internal/profile"
	"github.com/abhisek/lingoloop/internal/store"
)

// App owns every long-lived dependency. Close releases them.
type App struct {
	Config   config.Config
	Log      *logger.Logger
	Store    *store.Store
	KV       kv.Store
	Pool     *challenge.Pool
	Profiles *profile.Repo
	Perf     *performance.Store
	Coach    *coach.Coach

	closers []func() error
}

// Open wires the application. The SQLite database always backs the event
// log; profiles and snapshots go to the configured KV backend.
func Open(ctx context.Context, cfg config.Config, log *logger.Logger) (*App, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	a := &App{Config: cfg, Log: logger.OrNop(log)}

	dbPath := cfg.Storage.DBPath
	if dbPath == "" {
		p, err := store.DefaultDBPath()
		if err != nil {
			return nil, fmt.Errorf("resolve database path: %w", err)
		}
		dbPath = p
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	a.Store = st
	a.closers = append(a.closers, st.Close)

	switch cfg.Storage.Backend {
	case config.BackendSQLite:
		a.KV = st.KV()
	case config.BackendMemory:
		a.KV = kv.NewMemory()
	case config.BackendRedis:
		r, err := kv.NewRedis(ctx, kv.RedisConfig{
			Addr:     cfg.Storage.RedisAddr,
			Password: cfg.Storage.RedisPassword,
			DB:       cfg.Storage.RedisDB,
			Prefix:   cfg.Storage.RedisPrefix,
		})
		if err != nil {
			a.Close()
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		a.KV = r
		a.closers = append(a.closers, r.Close)
	}

	a.Pool, err = challenge.LoadPool(cfg.Content.PackDir)
	if err != nil {
		a.Close()
		return nil, fmt.Errorf("load challenges: %w", err)
	}

	a.Profiles = profile.NewRepo(a.KV)
	a.Perf = performance.NewStore(a.KV,
		performance.WithLevelSource(a.Profiles),
		performance.WithThresholds(cfg.Adaptive),
		performance.WithLogger(a.Log.With("component", "performance")),
	)
	a.Coach = coach.New(a.Pool, a.Perf, a.Profiles,
		coach.WithAttemptLog(st.EventRepo()),
		coach.WithLogger(a.Log.With("component", "coach")),
	)

	a.Log.Debug("app ready", "backend", cfg.Storage.Backend, "db", dbPath, "challenges", a.Pool.Len())
	return a, nil
}

// ErrLLMDisabled is returned by Generator when no provider is configured.
var ErrLLMDisabled = errors.New("no LLM provider configured; set LINGOLOOP_LLM_PROVIDER or a vendor API key")

// Generator builds a challenge generator whose calls are recorded in the
// event log.
func (a *App) Generator(ctx context.Context) (*contentgen.Generator, error) {
	cfg := a.Config.LLMProviderConfig()
	if !cfg.Enabled() {
		return nil, ErrLLMDisabled
	}
	provider, err := llm.NewProvider(ctx, cfg, a.Store.EventRepo(), a.Log.With("component", "llm"))
	if err != nil {
		return nil, err
	}
	return contentgen.New(provider, contentgen.DefaultConfig()), nil
}

// Close releases resources in reverse order of acquisition.
func (a *App) Close() error {
	var errs []error
	for i := len(a.closers) - 1; i >= 0; i-- {
		errs = append(errs, a.closers[i]())
	}
	a.closers = nil
	return errors.Join(errs...)
}
