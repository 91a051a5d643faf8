package llm

import (
	"context"
	"encoding/json"
	"net/http"
)

// Provider sends one completion request to a model vendor.
type Provider interface {
	// Generate returns the model's reply. When req.Schema is set the reply
	// has been validated against it; otherwise Content is the raw text.
	Generate(ctx context.Context, req Request) (*Response, error)

	ModelID() string
}

// Request is a single-turn or multi-turn completion request.
type Request struct {
	System   string
	Messages []Message

	// Schema asks the vendor for structured output. Optional.
	Schema *Schema

	// MaxTokens caps the reply. Zero leaves the vendor default, except for
	// Anthropic which requires a value.
	MaxTokens int

	// Temperature is always sent, including zero.
	Temperature float64
}

type Message struct {
	Role    Role
	Content string
}

type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Schema is a named JSON Schema. Name doubles as the OpenAI schema name
// and the compiled-schema cache key.
type Schema struct {
	Name        string
	Description string
	Definition  map[string]any
}

// StopReason is the vendor's finish reason, normalized.
type StopReason string

const (
	StopEnd       StopReason = "end"
	StopMaxTokens StopReason = "max_tokens"
)

type Response struct {
	Content    json.RawMessage
	Usage      Usage
	Model      string
	StopReason StopReason
}

// Text returns the reply as a string. Safe on a nil Response.
func (r *Response) Text() string {
	if r == nil {
		return ""
	}
	return string(r.Content)
}

type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}

// finish turns a vendor reply into a Response. A structured request fails
// with ErrMaxTokensExceeded when the reply was cut short, and with
// ErrInvalidResponse when it does not match the schema.
func finish(req Request, content json.RawMessage, model string, stop StopReason, usage Usage) (*Response, error) {
	if req.Schema != nil {
		if stop == StopMaxTokens {
			return nil, &ErrMaxTokensExceeded{Content: content}
		}
		if err := validateResponse(req.Schema, content); err != nil {
			return nil, err
		}
	}
	if usage.TotalTokens == 0 {
		usage.TotalTokens = usage.InputTokens + usage.OutputTokens
	}
	return &Response{Content: content, Usage: usage, Model: model, StopReason: stop}, nil
}

// statusError classifies a vendor HTTP failure.
func statusError(status int, err error) error {
	if status == http.StatusTooManyRequests {
		return &ErrRateLimit{Err: err}
	}
	return &ErrProviderUnavailable{StatusCode: status, Err: err}
}
