package llm

import (
	"context"
	"testing"
)

func TestConfigFromEnv(t *testing.T) {
	t.Setenv("LINGOLOOP_LLM_PROVIDER", "openai")
	t.Setenv("LINGOLOOP_OPENAI_API_KEY", "sk-test")
	t.Setenv("LINGOLOOP_OPENAI_MODEL", "gpt-4.1-mini")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4.1-mini" {
		t.Fatalf("cfg = %+v", cfg)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestConfig_Validate(t *testing.T) {
	cases := map[string]struct {
		cfg     Config
		wantErr bool
	}{
		"disabled":        {Config{}, false},
		"mock":            {Config{Provider: ProviderMock}, false},
		"anthropic":       {Config{Provider: ProviderAnthropic, Anthropic: AnthropicConfig{APIKey: "k"}}, false},
		"anthropic nokey": {Config{Provider: ProviderAnthropic}, true},
		"gemini nokey":    {Config{Provider: ProviderGemini}, true},
		"openrouter":      {Config{Provider: ProviderOpenRouter, OpenRouter: OpenRouterConfig{APIKey: "k"}}, false},
		"unknown":         {Config{Provider: "llama"}, true},
	}
	for name, tc := range cases {
		if err := tc.cfg.Validate(); (err != nil) != tc.wantErr {
			t.Errorf("%s: Validate() = %v, wantErr %v", name, err, tc.wantErr)
		}
	}
}

func TestConfig_SetModel(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderGemini
	cfg.SetModel("gemini-pro")
	if cfg.Gemini.Model != "gemini-pro" {
		t.Errorf("Gemini.Model = %q", cfg.Gemini.Model)
	}
	cfg.SetModel("")
	if cfg.Gemini.Model != "gemini-pro" {
		t.Errorf("empty SetModel changed model to %q", cfg.Gemini.Model)
	}
}

func TestDiscoverConfig(t *testing.T) {
	for _, k := range []string{"ANTHROPIC_API_KEY", "OPENAI_API_KEY", "GEMINI_API_KEY", "OPENROUTER_API_KEY"} {
		t.Setenv(k, "")
	}
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no provider discovered")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderGemini || cfg.Gemini.APIKey != "g" {
		t.Fatalf("DiscoverConfig = %+v, %v", cfg, ok)
	}
}

func TestNewProvider_Mock(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}

func TestNewProvider_RejectsMissingKey(t *testing.T) {
	if _, err := NewProvider(context.Background(), Config{Provider: ProviderOpenAI}, nil, nil); err == nil {
		t.Fatal("expected error")
	}
	if _, err := NewProvider(context.Background(), Config{}, nil, nil); err == nil {
		t.Fatal("expected error for disabled config")
	}
}

func TestNewProvider_WrapsStack(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenAI
	cfg.OpenAI.APIKey = "sk-test"
	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := p.(*TimeoutProvider); !ok {
		t.Errorf("outermost provider = %T, want *TimeoutProvider", p)
	}
	if p.ModelID() != "gpt-4o-mini" {
		t.Errorf("ModelID = %q", p.ModelID())
	}
}
