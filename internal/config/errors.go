package config

import "fmt"

// ConfigurationError reports a missing or invalid setting. It is fatal:
// commands print it and exit without starting.
type ConfigurationError struct {
	Key     string // viper key, e.g. "llm.groq.api_key"
	Message string
}

func (e *ConfigurationError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	return fmt.Sprintf("invalid configuration value for %s", e.Key)
}
