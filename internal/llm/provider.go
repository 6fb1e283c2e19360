// Package llm abstracts the chat-completion backends used to author
// challenge content. Providers return JSON validated against a schema.
package llm

import (
	"context"
	"encoding/json"
)

// Provider is the core abstraction for LLM interaction.
type Provider interface {
	// Generate sends a prompt and returns the response. When req.Schema is
	// set the provider uses its native structured output and Content is
	// JSON that validates against the schema.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// DefaultMaxTokens is used when a request leaves MaxTokens unset.
const DefaultMaxTokens = 2048

// Normalized stop reasons.
const (
	StopEnd       = "end"
	StopMaxTokens = "max_tokens"
)

// Request describes what to send to the LLM.
type Request struct {
	System    string
	Messages  []Message
	Schema    *Schema
	MaxTokens int
	// Temperature in [0,1]; 0 leaves the provider default.
	Temperature float64
}

func (r Request) maxTokens() int {
	if r.MaxTokens <= 0 {
		return DefaultMaxTokens
	}
	return r.MaxTokens
}

// Message represents a single message in the conversation.
type Message struct {
	Role    Role
	Content string
}

// Role is the message sender role.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// UserMessage is shorthand for a single-turn prompt.
func UserMessage(content string) []Message {
	return []Message{{Role: RoleUser, Content: content}}
}

// Schema is the JSON Schema a structured response must satisfy. Name is
// kebab-case and doubles as the cache key for the compiled schema.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// Response holds the LLM's output.
type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// resolveModel maps a friendly model name to a provider model ID. Unknown
// names pass through so full model IDs work.
func resolveModel(name string, models map[string]string) string {
	if id, ok := models[name]; ok {
		return id
	}
	return name
}

// finish validates content and converts truncation into an error.
func finish(req Request, content json.RawMessage, stop string) error {
	if stop == StopMaxTokens {
		return &ErrMaxTokensExceeded{Content: content}
	}
	return validateResponse(req.Schema, content)
}
