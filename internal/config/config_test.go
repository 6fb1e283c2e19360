package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/lingoloop/internal/llm"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestLoad_MissingFileUsesDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	require.NoError(t, err)

	assert.Equal(t, BackendSQLite, cfg.Storage.Backend)
	assert.Equal(t, ":8080", cfg.Server.Addr)
	assert.Equal(t, 24*time.Hour, cfg.Server.TokenTTL)
	assert.Equal(t, 5, cfg.Adaptive.MinTotalAttempts)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_File(t *testing.T) {
	path := writeConfig(t, `
[storage]
backend = "redis"
redis_addr = "cache:6379"
redis_db = 2

[server]
addr = ":9090"
jwt_secret = "s3cret"
cors_origins = ["https://app.example.com"]
token_ttl = "2h"

[adaptive]
promote_success_rate = 90.0
recent_window = 3

[llm]
provider = "mock"
`)
	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendRedis, cfg.Storage.Backend)
	assert.Equal(t, "cache:6379", cfg.Storage.RedisAddr)
	assert.Equal(t, 2, cfg.Storage.RedisDB)
	assert.Equal(t, "lingoloop:", cfg.Storage.RedisPrefix, "unset keys keep defaults")
	assert.Equal(t, []string{"https://app.example.com"}, cfg.Server.CORSOrigins)
	assert.Equal(t, 2*time.Hour, cfg.Server.TokenTTL)
	assert.Equal(t, 90.0, cfg.Adaptive.PromoteSuccessRate)
	assert.Equal(t, 80.0, cfg.Adaptive.PromoteAvgScore)
	assert.Equal(t, 3, cfg.Adaptive.RecentWindow)
	assert.NoError(t, cfg.ValidateServer())
}

func TestLoad_UnknownKey(t *testing.T) {
	path := writeConfig(t, "[storage]\nbakend = \"redis\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "storage.bakend")
}

func TestLoad_Malformed(t *testing.T) {
	_, err := Load(writeConfig(t, "[storage\n"))
	assert.Error(t, err)
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("LINGOLOOP_STORAGE_BACKEND", "memory")
	t.Setenv("LINGOLOOP_DB", "/tmp/x.db")
	t.Setenv("LINGOLOOP_REDIS_DB", "4")
	t.Setenv("LINGOLOOP_JWT_SECRET", "env-secret")
	t.Setenv("LINGOLOOP_CORS_ORIGINS", "https://a.example, https://b.example,")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())
	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Equal(t, "/tmp/x.db", cfg.Storage.DBPath)
	assert.Equal(t, 4, cfg.Storage.RedisDB)
	assert.Equal(t, "env-secret", cfg.Server.JWTSecret)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.CORSOrigins)
}

func TestApplyEnv_BadRedisDB(t *testing.T) {
	t.Setenv("LINGOLOOP_REDIS_DB", "two")
	cfg := Default()
	assert.Error(t, cfg.ApplyEnv())
}

func TestValidate(t *testing.T) {
	cases := map[string]func(c *Config){
		"unknown backend":   func(c *Config) { c.Storage.Backend = "mongo" },
		"redis no addr":     func(c *Config) { c.Storage.Backend = BackendRedis; c.Storage.RedisAddr = "" },
		"rate above 100":    func(c *Config) { c.Adaptive.PromoteSuccessRate = 120 },
		"negative attempts": func(c *Config) { c.Adaptive.DemoteAttempts = -1 },
		"window too wide":   func(c *Config) { c.Adaptive.RecentWindow = 9 },
		"unknown provider":  func(c *Config) { c.LLM.Provider = "llama" },
	}
	for name, mutate := range cases {
		cfg := Default()
		mutate(&cfg)
		assert.Error(t, cfg.Validate(), name)
	}
}

func TestValidateServer_RequiresSecret(t *testing.T) {
	cfg := Default()
	assert.Error(t, cfg.ValidateServer())
	cfg.Server.JWTSecret = "x"
	assert.NoError(t, cfg.ValidateServer())
}

func TestLLMProviderConfig(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY", "LINGOLOOP_LLM_PROVIDER"} {
		t.Setenv(k, "")
	}

	cfg := Default()
	assert.False(t, cfg.LLMProviderConfig().Enabled())

	cfg.LLM = LLMConfig{Provider: llm.ProviderOpenAI, Model: "gpt-4.1-mini"}
	t.Setenv("LINGOLOOP_OPENAI_API_KEY", "sk-test")
	got := cfg.LLMProviderConfig()
	assert.Equal(t, llm.ProviderOpenAI, got.Provider)
	assert.Equal(t, "gpt-4.1-mini", got.OpenAI.Model)
	assert.Equal(t, "sk-test", got.OpenAI.APIKey)
}

func TestXDGPaths(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", "/cfg")
	t.Setenv("XDG_DATA_HOME", "/data")
	assert.Equal(t, filepath.Join("/cfg", "lingoloop", "config.toml"), DefaultConfigPath())
	assert.Equal(t, filepath.Join("/data", "lingoloop", "packs"), DefaultPackDir())
}
