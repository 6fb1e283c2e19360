// Package config loads lingoloop settings from a TOML file, an optional
// .env file and LINGOLOOP_* environment variables, in that order of
// increasing precedence.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/joho/godotenv"

	"github.com/abhisek/lingoloop/internal/llm"
	"github.com/abhisek/lingoloop/internal/performance"
)

// Storage backends.
const (
	BackendSQLite = "sqlite"
	BackendRedis  = "redis"
	BackendMemory = "memory"
)

// Config is the full application configuration.
type Config struct {
	Storage  StorageConfig          `toml:"storage"`
	Server   ServerConfig           `toml:"server"`
	Log      LogConfig              `toml:"log"`
	Adaptive performance.Thresholds `toml:"adaptive"`
	Content  ContentConfig          `toml:"content"`
	LLM      LLMConfig              `toml:"llm"`
}

// StorageConfig selects where profiles and snapshots live. The attempt
// and LLM logs always use the SQLite database at DBPath.
type StorageConfig struct {
	Backend       string `toml:"backend"`
	DBPath        string `toml:"db_path"`
	RedisAddr     string `toml:"redis_addr"`
	RedisPassword string `toml:"redis_password"`
	RedisDB       int    `toml:"redis_db"`
	RedisPrefix   string `toml:"redis_prefix"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr        string   `toml:"addr"`
	JWTSecret   string   `toml:"jwt_secret"`
	CORSOrigins []string `toml:"cors_origins"`
	// TokenTTL is the lifetime of tokens minted by the token command.
	TokenTTL time.Duration `toml:"token_ttl"`
}

type LogConfig struct {
	Mode string `toml:"mode"`
}

type ContentConfig struct {
	PackDir string `toml:"pack_dir"`
}

// LLMConfig picks the authoring provider. API keys come from the
// environment only.
type LLMConfig struct {
	Provider string `toml:"provider"`
	Model    string `toml:"model"`
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Storage: StorageConfig{
			Backend:     BackendSQLite,
			RedisAddr:   "localhost:6379",
			RedisPrefix: "lingoloop:",
		},
		Server: ServerConfig{
			Addr:        ":8080",
			CORSOrigins: []string{"*"},
			TokenTTL:    24 * time.Hour,
		},
		Log:      LogConfig{Mode: "development"},
		Adaptive: performance.DefaultThresholds(),
		Content:  ContentConfig{PackDir: DefaultPackDir()},
	}
}

// Load builds the configuration. An empty path means DefaultConfigPath; a
// missing file is not an error. Unknown keys in the file are.
func Load(path string) (Config, error) {
	// A missing .env is the common case.
	_ = godotenv.Load()

	cfg := Default()
	if path == "" {
		path = DefaultConfigPath()
	}
	if err := decodeFile(path, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.ApplyEnv(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func decodeFile(path string, cfg *Config) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to stat config: %w", err)
	}
	md, err := toml.DecodeFile(path, cfg)
	if err != nil {
		return fmt.Errorf("failed to decode config: %w", err)
	}
	if undecoded := md.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		sort.Strings(keys)
		return fmt.Errorf("unknown config keys in %s: %s", path, strings.Join(keys, ", "))
	}
	return nil
}

// ApplyEnv overlays LINGOLOOP_* variables onto c.
func (c *Config) ApplyEnv() error {
	str := map[string]*string{
		"LINGOLOOP_STORAGE_BACKEND": &c.Storage.Backend,
		"LINGOLOOP_DB":              &c.Storage.DBPath,
		"LINGOLOOP_REDIS_ADDR":      &c.Storage.RedisAddr,
		"LINGOLOOP_REDIS_PASSWORD":  &c.Storage.RedisPassword,
		"LINGOLOOP_REDIS_PREFIX":    &c.Storage.RedisPrefix,
		"LINGOLOOP_SERVER_ADDR":     &c.Server.Addr,
		"LINGOLOOP_JWT_SECRET":      &c.Server.JWTSecret,
		"LINGOLOOP_LOG_MODE":        &c.Log.Mode,
		"LINGOLOOP_PACK_DIR":        &c.Content.PackDir,
		"LINGOLOOP_LLM_PROVIDER":    &c.LLM.Provider,
		"LINGOLOOP_LLM_MODEL":       &c.LLM.Model,
	}
	for name, dst := range str {
		if v := os.Getenv(name); v != "" {
			*dst = v
		}
	}

	if v := os.Getenv("LINGOLOOP_REDIS_DB"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("LINGOLOOP_REDIS_DB: %w", err)
		}
		c.Storage.RedisDB = n
	}
	if v := os.Getenv("LINGOLOOP_CORS_ORIGINS"); v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.CORSOrigins = origins
	}
	return nil
}

// Validate checks settings every command depends on.
func (c Config) Validate() error {
	var errs []error
	switch c.Storage.Backend {
	case BackendSQLite, BackendMemory:
	case BackendRedis:
		if c.Storage.RedisAddr == "" {
			errs = append(errs, errors.New("storage.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown storage backend %q (want sqlite, redis or memory)", c.Storage.Backend))
	}
	if err := validateThresholds(c.Adaptive); err != nil {
		errs = append(errs, err)
	}
	if c.LLM.Provider != "" {
		switch c.LLM.Provider {
		case llm.ProviderAnthropic, llm.ProviderOpenAI, llm.ProviderGemini, llm.ProviderOpenRouter, llm.ProviderMock:
		default:
			errs = append(errs, fmt.Errorf("unknown llm provider %q", c.LLM.Provider))
		}
	}
	return errors.Join(errs...)
}

// ValidateServer additionally checks what serving and minting tokens need.
func (c Config) ValidateServer() error {
	if err := c.Validate(); err != nil {
		return err
	}
	if c.Server.JWTSecret == "" {
		return errors.New("server.jwt_secret (or LINGOLOOP_JWT_SECRET) is required")
	}
	if c.Server.Addr == "" {
		return errors.New("server.addr is required")
	}
	if c.Server.TokenTTL <= 0 {
		return errors.New("server.token_ttl must be positive")
	}
	return nil
}

func validateThresholds(th performance.Thresholds) error {
	var errs []error
	for name, v := range map[string]float64{
		"promote_success_rate": th.PromoteSuccessRate,
		"promote_avg_score":    th.PromoteAvgScore,
		"promote_recent_avg":   th.PromoteRecentAvg,
		"demote_success_rate":  th.DemoteSuccessRate,
		"demote_recent_avg":    th.DemoteRecentAvg,
	} {
		if v < 0 || v > 100 {
			errs = append(errs, fmt.Errorf("adaptive.%s must be within 0..100, got %g", name, v))
		}
	}
	if th.MinTotalAttempts < 0 || th.MinLevelAttempts < 0 || th.PromoteAttempts < 0 || th.DemoteAttempts < 0 {
		errs = append(errs, errors.New("adaptive attempt thresholds must not be negative"))
	}
	if th.RecentWindow < 1 || th.RecentWindow > performance.MaxRecentScores {
		errs = append(errs, fmt.Errorf("adaptive.recent_window must be within 1..%d", performance.MaxRecentScores))
	}
	return errors.Join(errs...)
}

// LLMProviderConfig resolves the provider configuration: file settings first,
// then LINGOLOOP_* variables, then vendor key discovery when nothing
// selected a provider.
func (c Config) LLMProviderConfig() llm.Config {
	cfg := llm.DefaultConfig()
	cfg.Provider = c.LLM.Provider
	cfg.ApplyEnv()
	if cfg.Provider == "" {
		if found, ok := llm.DiscoverConfig(); ok {
			cfg = found
		}
	}
	cfg.SetModel(c.LLM.Model)
	return cfg
}
