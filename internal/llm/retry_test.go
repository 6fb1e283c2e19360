package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func retryConfig() RetryConfig {
	return RetryConfig{
		MaxAttempts: 3,
		InitialWait: time.Millisecond,
		MaxWait:     10 * time.Millisecond,
		Multiplier:  2.0,
	}
}

func unavailable() MockResponse {
	return MockResponse{Err: &ErrProviderUnavailable{Err: errors.New("down")}}
}

func TestRetry_SucceedsOnFirstAttempt(t *testing.T) {
	mock := NewMockJSON(`{"ok":true}`)
	resp, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if string(resp.Content) != `{"ok":true}` {
		t.Fatalf("unexpected content: %s", resp.Content)
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_TransientThenSuccess(t *testing.T) {
	mock := NewMockProvider(unavailable(), MockResponse{Content: json.RawMessage(`{}`)})
	if _, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_AllAttemptsFail(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable(), unavailable(), unavailable())
	_, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got %v", err)
	}
	if mock.CallCount() != 3 {
		t.Fatalf("expected 3 calls, got %d", mock.CallCount())
	}
}

func TestRetry_MaxTokensNotRetried(t *testing.T) {
	mock := NewMockProvider(MockResponse{Err: &ErrMaxTokensExceeded{}}, MockResponse{Content: json.RawMessage(`{}`)})
	if _, err := WithRetry(mock, retryConfig()).Generate(context.Background(), Request{}); err == nil {
		t.Fatal("expected error")
	}
	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
}

func TestRetry_InvalidResponseRetriedOnce(t *testing.T) {
	invalid := MockResponse{Err: &ErrInvalidResponse{Err: errors.New("bad")}}
	mock := NewMockProvider(invalid, invalid, MockResponse{Content: json.RawMessage(`{}`)})
	cfg := retryConfig()
	cfg.MaxAttempts = 5

	_, err := WithRetry(mock, cfg).Generate(context.Background(), Request{})
	var inv *ErrInvalidResponse
	if !errors.As(err, &inv) {
		t.Fatalf("expected ErrInvalidResponse, got %v", err)
	}
	if mock.CallCount() != 2 {
		t.Fatalf("expected 2 calls, got %d", mock.CallCount())
	}
}

func TestRetry_ContextCancelledDuringBackoff(t *testing.T) {
	mock := NewMockProvider(unavailable(), unavailable())
	cfg := retryConfig()
	cfg.InitialWait = time.Hour
	cfg.MaxWait = time.Hour

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(10 * time.Millisecond)
		cancel()
	}()

	_, err := WithRetry(mock, cfg).Generate(ctx, Request{})
	if !errors.Is(err, context.Canceled) {
		t.Fatalf("expected context.Canceled, got %v", err)
	}
}

func TestRetry_BackoffHonorsRetryAfter(t *testing.T) {
	r := &RetryProvider{config: retryConfig()}
	got := r.backoff(0, &ErrRateLimit{RetryAfter: 7 * time.Second})
	if got != 7*time.Second {
		t.Fatalf("backoff = %s, want 7s", got)
	}
}

func TestRetry_BackoffCappedWithJitter(t *testing.T) {
	r := &RetryProvider{config: retryConfig()}
	for i := 0; i < 50; i++ {
		got := r.backoff(10, errors.New("x"))
		if got < 8*time.Millisecond || got > 12*time.Millisecond {
			t.Fatalf("backoff = %s, want within ±20%% of 10ms", got)
		}
	}
}

func TestTimeout_Applies(t *testing.T) {
	slow := providerFunc(func(ctx context.Context, _ Request) (*Response, error) {
		<-ctx.Done()
		return nil, ctx.Err()
	})
	_, err := WithTimeout(slow, 5*time.Millisecond).Generate(context.Background(), Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected DeadlineExceeded, got %v", err)
	}
	if WithTimeout(slow, 0) == nil {
		t.Fatal("zero timeout should return the inner provider")
	}
}

type providerFunc func(ctx context.Context, req Request) (*Response, error)

func (f providerFunc) Generate(ctx context.Context, req Request) (*Response, error) { return f(ctx, req) }
func (f providerFunc) ModelID() string                                              { return "func" }
