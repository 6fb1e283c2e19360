package llm

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"net/http"
	"slices"

	"google.golang.org/genai"
)

var geminiModels = map[string]string{
	"gemini-flash": "gemini-2.5-flash",
}

// GeminiProvider implements Provider using the Google Gemini SDK.
type GeminiProvider struct {
	client *genai.Client
	model  string
}

// NewGeminiProvider creates a new Gemini provider.
func NewGeminiProvider(ctx context.Context, cfg GeminiConfig) (*GeminiProvider, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("gemini API key is required")
	}

	client, err := genai.NewClient(ctx, &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	})
	if err != nil {
		return nil, fmt.Errorf("create Gemini client: %w", err)
	}

	model := resolveModel(cfg.Model, geminiModels)

	return &GeminiProvider{
		client: client,
		model:  model,
	}, nil
}

func (p *GeminiProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	config := &genai.GenerateContentConfig{
		MaxOutputTokens: int32(req.maxTokens()),
	}

	if req.Temperature > 0 {
		temp := float32(req.Temperature)
		config.Temperature = &temp
	}

	if req.System != "" {
		config.SystemInstruction = &genai.Content{
			Parts: []*genai.Part{{Text: req.System}},
		}
	}

	if req.Schema != nil {
		config.ResponseMIMEType = "application/json"
		config.ResponseSchema = buildGeminiSchema(req.Schema.Definition)
	}

	result, err := p.client.Models.GenerateContent(ctx, p.model, geminiContents(req.Messages), config)
	if err != nil {
		return nil, mapGeminiError(err)
	}

	content := json.RawMessage(result.Text())
	stop := geminiStopReason(result)
	if err := finish(req, content, stop); err != nil {
		return nil, err
	}

	resp := &Response{
		Content:    content,
		Model:      p.model,
		StopReason: stop,
	}

	if result.UsageMetadata != nil {
		resp.Usage = Usage{
			InputTokens:  int(result.UsageMetadata.PromptTokenCount),
			OutputTokens: int(result.UsageMetadata.CandidatesTokenCount),
			TotalTokens:  int(result.UsageMetadata.TotalTokenCount),
		}
	}

	return resp, nil
}

func (p *GeminiProvider) ModelID() string {
	return p.model
}

func geminiContents(msgs []Message) []*genai.Content {
	out := make([]*genai.Content, len(msgs))
	for i, m := range msgs {
		role := "user"
		if m.Role == RoleAssistant {
			role = "model"
		}
		out[i] = &genai.Content{
			Role:  role,
			Parts: []*genai.Part{{Text: m.Content}},
		}
	}
	return out
}

var geminiTypes = map[string]genai.Type{
	"string":  genai.TypeString,
	"number":  genai.TypeNumber,
	"integer": genai.TypeInteger,
	"boolean": genai.TypeBoolean,
	"array":   genai.TypeArray,
	"object":  genai.TypeObject,
}

// buildGeminiSchema converts a JSON Schema definition to a genai.Schema.
// Numeric and length bounds are carried over; keywords Gemini does not
// understand (additionalProperties) are dropped and left to validation.
func buildGeminiSchema(def map[string]any) *genai.Schema {
	out := &genai.Schema{Type: genai.TypeString}
	if t, ok := geminiTypes[stringOf(def["type"])]; ok {
		out.Type = t
	}
	out.Description = stringOf(def["description"])
	out.Required = stringsOf(def["required"])
	out.Enum = stringsOf(def["enum"])

	if props, ok := def["properties"].(map[string]any); ok {
		out.Properties = make(map[string]*genai.Schema, len(props))
		for _, name := range slices.Sorted(maps.Keys(props)) {
			if sub, ok := props[name].(map[string]any); ok {
				out.Properties[name] = buildGeminiSchema(sub)
				out.PropertyOrdering = append(out.PropertyOrdering, name)
			}
		}
	}
	if items, ok := def["items"].(map[string]any); ok {
		out.Items = buildGeminiSchema(items)
	}

	if n, ok := numberOf(def["minimum"]); ok {
		out.Minimum = &n
	}
	if n, ok := numberOf(def["maximum"]); ok {
		out.Maximum = &n
	}
	out.MinItems = countOf(def["minItems"])
	out.MaxItems = countOf(def["maxItems"])
	out.MaxLength = countOf(def["maxLength"])
	return out
}

func stringOf(v any) string {
	s, _ := v.(string)
	return s
}

func stringsOf(v any) []string {
	var out []string
	switch vs := v.(type) {
	case []string:
		out = append(out, vs...)
	case []any:
		for _, e := range vs {
			if s, ok := e.(string); ok {
				out = append(out, s)
			}
		}
	}
	return out
}

// numberOf accepts Go literals and values decoded from JSON.
func numberOf(v any) (float64, bool) {
	switch n := v.(type) {
	case int:
		return float64(n), true
	case int64:
		return float64(n), true
	case float64:
		return n, true
	}
	return 0, false
}

func countOf(v any) *int64 {
	n, ok := numberOf(v)
	if !ok {
		return nil
	}
	c := int64(n)
	return &c
}

func geminiStopReason(result *genai.GenerateContentResponse) string {
	if len(result.Candidates) > 0 && result.Candidates[0].FinishReason == "MAX_TOKENS" {
		return StopMaxTokens
	}
	return StopEnd
}

func mapGeminiError(err error) error {
	var apiErr *genai.APIError
	if errors.As(err, &apiErr) && apiErr.Code == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{Err: err}
}
