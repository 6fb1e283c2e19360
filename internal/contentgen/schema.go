package contentgen

import "github.com/abhisek/lingoloop/internal/llm"

// BatchSchema is the response shape requested from the model.
var BatchSchema = &llm.Schema{
	Name:        "challenge-batch",
	Description: "A batch of language learning challenges",
	Definition: map[string]any{
		"type": "object",
		"properties": map[string]any{
			"challenges": map[string]any{
				"type":     "array",
				"minItems": 1,
				"items": map[string]any{
					"type": "object",
					"properties": map[string]any{
						"title": map[string]any{
							"type":        "string",
							"description": "Short label shown in lists",
						},
						"prompt": map[string]any{
							"type":        "string",
							"description": "What the learner sees or hears. Fill-in-the-blank prompts mark the gap with ___",
						},
						"options": map[string]any{
							"type":        "array",
							"items":       map[string]any{"type": "string"},
							"description": "3 to 5 options for multiple_choice. Empty array for every other type.",
						},
						"answer": map[string]any{
							"type":        "string",
							"description": "Expected answer. For multiple_choice, the exact text of the correct option. Empty for irl.",
						},
						"xp": map[string]any{
							"type":        "integer",
							"minimum":     1,
							"maximum":     100,
							"description": "Experience points awarded on completion",
						},
					},
					"required":             []any{"title", "prompt", "options", "answer", "xp"},
					"additionalProperties": false,
				},
			},
		},
		"required":             []any{"challenges"},
		"additionalProperties": false,
	},
}
