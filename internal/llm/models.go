package llm

// modelAliases maps a vendor to its short model names. Names missing from
// the table are sent to the vendor unchanged, and OpenRouter has no
// aliases since its IDs are already "vendor/model".
var modelAliases = map[string]map[string]string{
	ProviderGroq: {
		"llama3":     "llama3-8b-8192",
		"llama3-70b": "llama3-70b-8192",
		"llama-3.1":  "llama-3.1-8b-instant",
		"llama-3.3":  "llama-3.3-70b-versatile",
	},
	ProviderOpenAI: {
		"gpt-4o":      "gpt-4o",
		"gpt-4o-mini": "gpt-4o-mini",
		"gpt-4.1":     "gpt-4.1",
	},
	ProviderAnthropic: {
		"claude-sonnet": "claude-sonnet-4-5-20250929",
		"claude-haiku":  "claude-haiku-4-5-20251001",
	},
	ProviderGemini: {
		"gemini-flash": "gemini-2.5-flash",
		"gemini-pro":   "gemini-2.5-pro",
		"gemini-lite":  "gemini-2.5-flash-lite",
	},
}

// resolveModel returns the vendor model ID for name.
func resolveModel(provider, name string) string {
	if id, ok := modelAliases[provider][name]; ok {
		return id
	}
	return name
}
