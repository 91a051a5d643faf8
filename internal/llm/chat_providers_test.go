package llm

import "testing"

func TestChatProviderConstructors(t *testing.T) {
	tests := []struct {
		name      string
		build     func() (*OpenAIProvider, error)
		wantName  string
		wantModel string
	}{
		{
			name:      "groq alias",
			build:     func() (*OpenAIProvider, error) { return NewGroqProvider(GroqConfig{APIKey: "gsk", Model: "llama3"}) },
			wantName:  ProviderGroq,
			wantModel: "llama3-8b-8192",
		},
		{
			name: "groq model id",
			build: func() (*OpenAIProvider, error) {
				return NewGroqProvider(GroqConfig{APIKey: "gsk", Model: "llama3-8b-8192"})
			},
			wantName:  ProviderGroq,
			wantModel: "llama3-8b-8192",
		},
		{
			name: "openrouter passes ids through",
			build: func() (*OpenAIProvider, error) {
				return NewOpenRouterProvider(OpenRouterConfig{APIKey: "sk-or", Model: "llama3"})
			},
			wantName:  ProviderOpenRouter,
			wantModel: "llama3",
		},
		{
			name:      "openai",
			build:     func() (*OpenAIProvider, error) { return NewOpenAIProvider(OpenAIConfig{APIKey: "sk", Model: "gpt-4.1"}) },
			wantName:  ProviderOpenAI,
			wantModel: "gpt-4.1",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := tt.build()
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if p.Name() != tt.wantName || p.ModelID() != tt.wantModel {
				t.Errorf("got %s/%s, want %s/%s", p.Name(), p.ModelID(), tt.wantName, tt.wantModel)
			}
		})
	}
}

func TestChatProvidersRequireKey(t *testing.T) {
	if _, err := NewGroqProvider(GroqConfig{Model: "llama3"}); err == nil {
		t.Error("groq: expected error for empty API key")
	}
	if _, err := NewOpenRouterProvider(OpenRouterConfig{Model: "x/y"}); err == nil {
		t.Error("openrouter: expected error for empty API key")
	}
	if _, err := NewOpenAIProvider(OpenAIConfig{}); err == nil {
		t.Error("openai: expected error for empty API key")
	}
}
