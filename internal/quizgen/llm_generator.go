package quizgen

import (
	"context"

	"github.com/abhisek/quizcrafter/internal/llm"
)

// Purpose is the LLM purpose label for quiz generation.
const Purpose = "quiz-gen"

// LLMGenerator implements Generator using an LLM provider. Timeouts and
// retries come from the provider's middleware stack.
type LLMGenerator struct {
	provider llm.Provider
	config   Config
}

// New creates a new LLMGenerator with the given provider and config.
func New(provider llm.Provider, cfg Config) *LLMGenerator {
	if cfg.Validators == nil {
		cfg.Validators = DefaultValidators()
	}
	return &LLMGenerator{provider: provider, config: cfg}
}

// Generate asks the model for a quiz at temperature 0 and parses the reply.
func (g *LLMGenerator) Generate(ctx context.Context, req Request) ([]Question, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	ctx = llm.WithPurpose(ctx, Purpose)

	llmReq := llm.Request{
		System: systemPrompt,
		Messages: []llm.Message{
			{Role: llm.RoleUser, Content: buildUserMessage(req, g.config)},
		},
		MaxTokens:   g.config.MaxTokens,
		Temperature: 0,
	}
	if g.config.StructuredOutput {
		llmReq.Schema = QuizSchema
	}

	resp, err := g.provider.Generate(ctx, llmReq)
	if err != nil {
		return nil, &GenerationError{Err: err}
	}

	res := ParseWith(resp.Text(), g.config.Validators)
	if !res.OK() {
		return nil, res.Err
	}
	return res.Questions, nil
}
