package quizgen

// DefaultQuestionCount is the number of questions requested per quiz.
const DefaultQuestionCount = 20

// Config controls the behavior of the LLMGenerator.
type Config struct {
	// Count is the number of questions requested from the model.
	Count int

	// MaxTokens is the token budget for the reply. Twenty questions
	// need roughly 3k tokens.
	MaxTokens int

	// StructuredOutput sends QuizSchema to the provider.
	StructuredOutput bool

	// Validators run on every recovered item, in order.
	Validators []Validator
}

// DefaultConfig returns a Config with the standard validator chain.
func DefaultConfig() Config {
	return Config{
		Count:      DefaultQuestionCount,
		MaxTokens:  4096,
		Validators: DefaultValidators(),
	}
}
