package llm

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"
)

func TestMockProvider_ReturnsCannedResponses(t *testing.T) {
	mock := NewMockProvider(
		MockResponse{Content: json.RawMessage(`[{"question":"q1"}]`), Usage: Usage{InputTokens: 10, OutputTokens: 5, TotalTokens: 15}},
		TextResponse("here you go: []"),
	)

	resp1, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "first"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp1.Text() != `[{"question":"q1"}]` {
		t.Fatalf("unexpected content %s", resp1.Content)
	}
	if resp1.Usage.InputTokens != 10 {
		t.Fatalf("expected 10 input tokens, got %d", resp1.Usage.InputTokens)
	}
	if resp1.StopReason != "end" {
		t.Fatalf("expected stop reason 'end', got %q", resp1.StopReason)
	}

	resp2, err := mock.Generate(context.Background(), Request{Messages: []Message{{Role: RoleUser, Content: "second"}}})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp2.Text() != "here you go: []" {
		t.Fatalf("unexpected content %q", resp2.Text())
	}
}

func TestMockProvider_EmptyQueueReturnsError(t *testing.T) {
	mock := NewMockProvider()
	_, err := mock.Generate(context.Background(), Request{})
	var unavail *ErrProviderUnavailable
	if !errors.As(err, &unavail) {
		t.Fatalf("expected ErrProviderUnavailable, got: %T", err)
	}
}

func TestMockProvider_FallbackAfterQueue(t *testing.T) {
	mock := NewMockProvider(TextResponse(`["first"]`))
	fallback := TextResponse(`["again"]`)
	mock.Fallback = &fallback

	for i, want := range []string{`["first"]`, `["again"]`, `["again"]`} {
		resp, err := mock.Generate(context.Background(), Request{})
		if err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
		if resp.Text() != want {
			t.Fatalf("call %d: got %q, want %q", i, resp.Text(), want)
		}
	}
}

func TestMockProvider_RecordsCalls(t *testing.T) {
	mock := NewMockProvider(TextResponse(`[]`))

	_, _ = mock.Generate(context.Background(), Request{
		System:   "sys",
		Messages: []Message{{Role: RoleUser, Content: "hello"}},
	})

	if mock.CallCount() != 1 {
		t.Fatalf("expected 1 call, got %d", mock.CallCount())
	}
	last, ok := mock.LastCall()
	if !ok || last.System != "sys" {
		t.Fatalf("expected system 'sys', got %q", last.System)
	}
}

func TestMockProvider_DelayHonoursContext(t *testing.T) {
	mock := NewMockProvider(MockResponse{Content: json.RawMessage(`[]`), Delay: time.Second})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Millisecond)
	defer cancel()

	_, err := mock.Generate(ctx, Request{})
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}

func TestResponse_TextNil(t *testing.T) {
	var r *Response
	if r.Text() != "" {
		t.Fatal("expected empty text for nil response")
	}
}

func TestContextLabels(t *testing.T) {
	ctx := context.Background()
	if p := PurposeFrom(ctx); p != "unknown" {
		t.Fatalf("expected 'unknown', got %q", p)
	}
	if id := SessionIDFrom(ctx); id != "" {
		t.Fatalf("expected empty session, got %q", id)
	}

	ctx = WithPurpose(ctx, "quiz-gen")
	ctx = WithSessionID(ctx, "abc")
	if p := PurposeFrom(ctx); p != "quiz-gen" {
		t.Fatalf("expected 'quiz-gen', got %q", p)
	}
	if id := SessionIDFrom(ctx); id != "abc" {
		t.Fatalf("expected 'abc', got %q", id)
	}
}

func TestConfig_Validate(t *testing.T) {
	withKey := func(c Config) Config {
		c.Retry.MaxAttempts = 1
		return c
	}
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"groq without key", withKey(Config{Provider: "groq"}), true},
		{"groq with key", withKey(Config{Provider: "groq", Groq: GroqConfig{APIKey: "gsk-test"}}), false},
		{"anthropic without key", withKey(Config{Provider: "anthropic"}), true},
		{"anthropic with key", withKey(Config{Provider: "anthropic", Anthropic: AnthropicConfig{APIKey: "sk-test"}}), false},
		{"openai with key", withKey(Config{Provider: "openai", OpenAI: OpenAIConfig{APIKey: "sk-test"}}), false},
		{"gemini without key", withKey(Config{Provider: "gemini"}), true},
		{"openrouter with key", withKey(Config{Provider: "openrouter", OpenRouter: OpenRouterConfig{APIKey: "k"}}), false},
		{"mock needs no key", withKey(Config{Provider: "mock"}), false},
		{"unknown provider", withKey(Config{Provider: "unknown"}), true},
		{"zero attempts", Config{Provider: "mock"}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Provider != ProviderGroq {
		t.Errorf("expected groq default, got %q", cfg.Provider)
	}
	if cfg.Groq.Model != "llama3-8b-8192" {
		t.Errorf("unexpected groq model %q", cfg.Groq.Model)
	}
	if cfg.Retry.MaxAttempts != 1 {
		t.Errorf("expected no retries by default, got %d attempts", cfg.Retry.MaxAttempts)
	}
	if cfg.Timeout <= 0 {
		t.Error("expected a bounded timeout")
	}
}

func TestKeyEnvVar(t *testing.T) {
	if got := KeyEnvVar("groq"); got != "GROQ_API_KEY" {
		t.Errorf("KeyEnvVar(groq) = %q", got)
	}
	if got := KeyEnvVar("mock"); got != "" {
		t.Errorf("KeyEnvVar(mock) = %q, want empty", got)
	}
}

func TestNewProvider_MockWrapped(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Provider = ProviderMock

	p, err := NewProvider(context.Background(), cfg, nil, nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if p.ModelID() != "mock" {
		t.Fatalf("expected mock model, got %q", p.ModelID())
	}
	if providerName(p) != ProviderMock {
		t.Fatalf("expected name to pass through middleware, got %q", providerName(p))
	}
}

func TestNewProvider_MissingKey(t *testing.T) {
	cfg := DefaultConfig()
	if _, err := NewProvider(context.Background(), cfg, nil, nil); err == nil {
		t.Fatal("expected error for missing groq key")
	}
}

func TestLookupCost(t *testing.T) {
	c := LookupCost("llama3-8b-8192")
	if c == nil {
		t.Fatal("expected pricing for the default groq model")
	}
	got := c.Cost(1_000_000, 500_000)
	if want := 0.05 + 0.04; got < want-1e-9 || got > want+1e-9 {
		t.Errorf("cost = %f, want %f", got, want)
	}
	if LookupCost("no-such-model") != nil {
		t.Error("unknown model should have no pricing")
	}
}
