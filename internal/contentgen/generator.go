package contentgen

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"

	"github.com/abhisek/lingoloop/internal/challenge"
	"github.com/abhisek/lingoloop/internal/llm"
)

// Generator authors challenges using an LLM provider.
type Generator struct {
	provider llm.Provider
	config   Config
	newID    func() string
}

// New creates a Generator with the given provider and config.
func New(provider llm.Provider, cfg Config) *Generator {
	return &Generator{
		provider: provider,
		config:   cfg,
		newID:    func() string { return "gen-" + uuid.NewString() },
	}
}

type batchOutput struct {
	Challenges []challengeOutput `json:"challenges"`
}

type challengeOutput struct {
	Title   string   `json:"title"`
	Prompt  string   `json:"prompt"`
	Options []string `json:"options"`
	Answer  string   `json:"answer"`
	XP      int      `json:"xp"`
}

// Generate asks the model for in.Count challenges and returns them with
// fresh IDs once every validator has passed. Extra items are dropped.
func (g *Generator) Generate(ctx context.Context, in Input) ([]challenge.Challenge, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ctx = llm.WithPurpose(ctx, llm.PurposeChallengeGen)

	resp, err := g.provider.Generate(ctx, llm.Request{
		System:      systemPrompt,
		Messages:    llm.UserMessage(buildUserMessage(in, g.config)),
		Schema:      BatchSchema,
		MaxTokens:   g.config.MaxTokens,
		Temperature: g.config.Temperature,
	})
	if err != nil {
		return nil, fmt.Errorf("LLM generation failed: %w", err)
	}

	var raw batchOutput
	if err := json.Unmarshal(resp.Content, &raw); err != nil {
		return nil, fmt.Errorf("failed to parse LLM response: %w", err)
	}
	if len(raw.Challenges) == 0 {
		return nil, fmt.Errorf("LLM returned no challenges")
	}
	if n := in.count(); len(raw.Challenges) > n {
		raw.Challenges = raw.Challenges[:n]
	}

	out := make([]challenge.Challenge, 0, len(raw.Challenges))
	for _, r := range raw.Challenges {
		c := challenge.Challenge{
			ID:       g.newID(),
			Type:     in.Type,
			Topic:    in.Topic,
			Level:    in.Level,
			AgeGroup: in.ageGroup(),
			Title:    r.Title,
			Prompt:   r.Prompt,
			Answer:   r.Answer,
			XP:       r.XP,
		}
		if len(r.Options) > 0 {
			c.Options = r.Options
		}
		for _, v := range g.config.Validators {
			if verr := v.Validate(&c); verr != nil {
				return nil, verr
			}
		}
		out = append(out, c)
	}
	return out, nil
}
