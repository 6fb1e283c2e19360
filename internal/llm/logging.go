package llm

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/abhisek/lingoloop/internal/logger"
	"github.com/abhisek/lingoloop/internal/store"
)

// EventRecorder persists LLM call events. store.EventRepo satisfies it.
type EventRecorder interface {
	AppendLLMRequest(ctx context.Context, data store.LLMRequestEventData) error
}

// LoggingProvider records every call as an event and a log line.
type LoggingProvider struct {
	inner    Provider
	provider string
	recorder EventRecorder
	log      *logger.Logger
}

// WithLogging wraps p. providerName labels the events.
func WithLogging(p Provider, providerName string, recorder EventRecorder, log *logger.Logger) Provider {
	return &LoggingProvider{inner: p, provider: providerName, recorder: recorder, log: logger.OrNop(log)}
}

func (l *LoggingProvider) Generate(ctx context.Context, req Request) (*Response, error) {
	start := time.Now()
	resp, err := l.inner.Generate(ctx, req)

	data := store.LLMRequestEventData{
		Provider:    l.provider,
		Model:       l.inner.ModelID(),
		Purpose:     PurposeFrom(ctx),
		LatencyMs:   time.Since(start).Milliseconds(),
		Success:     err == nil,
		RequestBody: serializeRequest(req),
	}
	if resp != nil {
		data.InputTokens = resp.Usage.InputTokens
		data.OutputTokens = resp.Usage.OutputTokens
		data.Model = resp.Model
		data.ResponseBody = string(resp.Content)
	}
	if err != nil {
		data.ErrorMessage = err.Error()
		l.log.Warn("llm request failed", "provider", l.provider, "purpose", data.Purpose, "error", err)
	} else {
		l.log.Debug("llm request", "provider", l.provider, "model", data.Model, "purpose", data.Purpose,
			"input_tokens", data.InputTokens, "output_tokens", data.OutputTokens, "latency_ms", data.LatencyMs)
	}

	if l.recorder != nil {
		if recErr := l.recorder.AppendLLMRequest(ctx, data); recErr != nil {
			l.log.Warn("record llm event", "error", recErr)
		}
	}
	return resp, err
}

func (l *LoggingProvider) ModelID() string {
	return l.inner.ModelID()
}

// serializeRequest renders a request for the event log.
func serializeRequest(req Request) string {
	var b strings.Builder
	if req.System != "" {
		fmt.Fprintf(&b, "[system]\n%s\n\n", req.System)
	}
	for _, m := range req.Messages {
		fmt.Fprintf(&b, "[%s]\n%s\n\n", m.Role, m.Content)
	}
	if req.Schema != nil {
		if def, err := json.Marshal(req.Schema.Definition); err == nil {
			fmt.Fprintf(&b, "[schema: %s]\n%s\n", req.Schema.Name, def)
		}
	}
	return b.String()
}
