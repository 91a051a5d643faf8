// Package config loads QuizCrafter settings from a .env file, an optional
// YAML file and QUIZCRAFTER_* environment variables.
package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/abhisek/quizcrafter/internal/events"
	"github.com/abhisek/quizcrafter/internal/llm"
	"github.com/abhisek/quizcrafter/internal/quizgen"
	"github.com/abhisek/quizcrafter/internal/sessionstore"
)

// EnvPrefix prefixes every environment variable read by Load.
const EnvPrefix = "QUIZCRAFTER"

// Session store backends.
const (
	SessionMemory = "memory"
	SessionRedis  = "redis"
)

// Config is the resolved application configuration.
type Config struct {
	LLM      llm.Config
	Quiz     QuizConfig
	Server   ServerConfig
	Session  SessionConfig
	Redis    RedisConfig
	Events   events.Config
	Telegram TelegramConfig
	DB       DBConfig
	Log      LogConfig

	// File is the config file that was read, empty if none.
	File string
}

type QuizConfig struct {
	QuestionCount    int
	FeedbackDelay    time.Duration
	MaxTokens        int
	StructuredOutput bool
}

type ServerConfig struct {
	Addr        string
	Mode        string // gin mode: release, debug or test
	CORSOrigins []string
}

type SessionConfig struct {
	Store string
	TTL   time.Duration
}

type RedisConfig struct {
	URL string
}

type TelegramConfig struct {
	Token string
}

type DBConfig struct {
	Path string // empty means store.DefaultDBPath
}

type LogConfig struct {
	Level  string
	Format string // "text" or "json"
	File   string
}

// Options tells Load where to look.
type Options struct {
	// ConfigFile is an explicit YAML file. When empty, quizcrafter.yaml
	// is searched for and may be absent.
	ConfigFile string

	// EnvFile is the dotenv file loaded before anything else.
	// Defaults to ".env". A missing file is not an error.
	EnvFile string
}

// envAliases are the plain variable names the vendors document, accepted
// alongside the prefixed ones.
var envAliases = map[string][]string{
	"llm.groq.api_key":       {"GROQ_API_KEY"},
	"llm.openai.api_key":     {"OPENAI_API_KEY"},
	"llm.anthropic.api_key":  {"ANTHROPIC_API_KEY"},
	"llm.gemini.api_key":     {"GEMINI_API_KEY", "GOOGLE_API_KEY"},
	"llm.openrouter.api_key": {"OPENROUTER_API_KEY"},
	"telegram.token":         {"TELEGRAM_BOT_TOKEN"},
	"redis.url":              {"REDIS_URL"},
}

// Load resolves the configuration. Precedence, highest first: process
// environment, .env file, config file, defaults.
func Load(opts Options) (*Config, error) {
	envFile := opts.EnvFile
	if envFile == "" {
		envFile = ".env"
	}
	if err := godotenv.Load(envFile); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("load %s: %w", envFile, err)
	}

	v := viper.New()
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	for key, names := range envAliases {
		prefixed := EnvPrefix + "_" + strings.ToUpper(strings.ReplaceAll(key, ".", "_"))
		if err := v.BindEnv(append([]string{key, prefixed}, names...)...); err != nil {
			return nil, fmt.Errorf("bind %s: %w", key, err)
		}
	}

	if opts.ConfigFile != "" {
		v.SetConfigFile(opts.ConfigFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", opts.ConfigFile, err)
		}
	} else {
		v.SetConfigName("quizcrafter")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		if dir, err := os.UserConfigDir(); err == nil {
			v.AddConfigPath(filepath.Join(dir, "quizcrafter"))
		}
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}

	cfg := fromViper(v)
	cfg.File = v.ConfigFileUsed()
	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	d := llm.DefaultConfig()
	v.SetDefault("llm.provider", d.Provider)
	v.SetDefault("llm.timeout", d.Timeout)
	v.SetDefault("llm.retry.max_attempts", d.Retry.MaxAttempts)
	v.SetDefault("llm.retry.initial_wait", d.Retry.InitialWait)
	v.SetDefault("llm.retry.max_wait", d.Retry.MaxWait)
	v.SetDefault("llm.retry.multiplier", d.Retry.Multiplier)
	v.SetDefault("llm.groq.model", d.Groq.Model)
	v.SetDefault("llm.groq.base_url", d.Groq.BaseURL)
	v.SetDefault("llm.openai.model", d.OpenAI.Model)
	v.SetDefault("llm.openai.base_url", d.OpenAI.BaseURL)
	v.SetDefault("llm.anthropic.model", d.Anthropic.Model)
	v.SetDefault("llm.gemini.model", d.Gemini.Model)
	v.SetDefault("llm.openrouter.model", d.OpenRouter.Model)
	v.SetDefault("llm.openrouter.base_url", d.OpenRouter.BaseURL)

	q := quizgen.DefaultConfig()
	v.SetDefault("quiz.question_count", q.Count)
	v.SetDefault("quiz.max_tokens", q.MaxTokens)
	v.SetDefault("quiz.structured_output", false)
	v.SetDefault("quiz.feedback_delay", 1500*time.Millisecond)

	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.cors_origins", []string{})

	v.SetDefault("session.store", SessionMemory)
	v.SetDefault("session.ttl", sessionstore.DefaultTTL)
	v.SetDefault("redis.url", "redis://localhost:6379/0")

	v.SetDefault("events.driver", events.DriverGoChannel)
	v.SetDefault("events.kafka_brokers", []string{})

	v.SetDefault("db.path", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("log.file", "")
}

func fromViper(v *viper.Viper) *Config {
	return &Config{
		LLM: llm.Config{
			Provider: strings.ToLower(strings.TrimSpace(v.GetString("llm.provider"))),
			Groq: llm.GroqConfig{
				APIKey:  v.GetString("llm.groq.api_key"),
				Model:   v.GetString("llm.groq.model"),
				BaseURL: v.GetString("llm.groq.base_url"),
			},
			OpenAI: llm.OpenAIConfig{
				APIKey:  v.GetString("llm.openai.api_key"),
				Model:   v.GetString("llm.openai.model"),
				BaseURL: v.GetString("llm.openai.base_url"),
			},
			Anthropic: llm.AnthropicConfig{
				APIKey: v.GetString("llm.anthropic.api_key"),
				Model:  v.GetString("llm.anthropic.model"),
			},
			Gemini: llm.GeminiConfig{
				APIKey: v.GetString("llm.gemini.api_key"),
				Model:  v.GetString("llm.gemini.model"),
			},
			OpenRouter: llm.OpenRouterConfig{
				APIKey:  v.GetString("llm.openrouter.api_key"),
				Model:   v.GetString("llm.openrouter.model"),
				BaseURL: v.GetString("llm.openrouter.base_url"),
			},
			Retry: llm.RetryConfig{
				MaxAttempts: v.GetInt("llm.retry.max_attempts"),
				InitialWait: v.GetDuration("llm.retry.initial_wait"),
				MaxWait:     v.GetDuration("llm.retry.max_wait"),
				Multiplier:  v.GetFloat64("llm.retry.multiplier"),
			},
			Timeout: v.GetDuration("llm.timeout"),
		},
		Quiz: QuizConfig{
			QuestionCount:    v.GetInt("quiz.question_count"),
			FeedbackDelay:    v.GetDuration("quiz.feedback_delay"),
			MaxTokens:        v.GetInt("quiz.max_tokens"),
			StructuredOutput: v.GetBool("quiz.structured_output"),
		},
		Server: ServerConfig{
			Addr:        v.GetString("server.addr"),
			Mode:        v.GetString("server.mode"),
			CORSOrigins: splitList(v.GetStringSlice("server.cors_origins")),
		},
		Session: SessionConfig{
			Store: strings.ToLower(v.GetString("session.store")),
			TTL:   v.GetDuration("session.ttl"),
		},
		Redis: RedisConfig{URL: v.GetString("redis.url")},
		Events: events.Config{
			Driver:       strings.ToLower(v.GetString("events.driver")),
			KafkaBrokers: splitList(v.GetStringSlice("events.kafka_brokers")),
		},
		Telegram: TelegramConfig{Token: v.GetString("telegram.token")},
		DB:       DBConfig{Path: v.GetString("db.path")},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			File:   v.GetString("log.file"),
		},
	}
}

// splitList accepts both YAML lists and comma separated env values.
func splitList(in []string) []string {
	var out []string
	for _, s := range in {
		for _, part := range strings.Split(s, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// Validate checks settings every command depends on.
func (c *Config) Validate() error {
	switch c.Session.Store {
	case SessionMemory:
	case SessionRedis:
		if c.Redis.URL == "" {
			return &ConfigurationError{Key: "redis.url", Message: "redis.url is required when session.store is redis"}
		}
	default:
		return &ConfigurationError{Key: "session.store", Message: fmt.Sprintf("unknown session store %q (want memory or redis)", c.Session.Store)}
	}

	switch c.Events.Driver {
	case events.DriverGoChannel, events.DriverNone:
	case events.DriverKafka:
		if len(c.Events.KafkaBrokers) == 0 {
			return &ConfigurationError{Key: "events.kafka_brokers", Message: "events.kafka_brokers is required when events.driver is kafka"}
		}
	default:
		return &ConfigurationError{Key: "events.driver", Message: fmt.Sprintf("unknown events driver %q (want gochannel, kafka or none)", c.Events.Driver)}
	}

	if c.Quiz.QuestionCount < 1 {
		return &ConfigurationError{Key: "quiz.question_count", Message: "quiz.question_count must be at least 1"}
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return &ConfigurationError{Key: "log.format", Message: fmt.Sprintf("unknown log format %q (want text or json)", c.Log.Format)}
	}
	return nil
}

// ValidateLLM checks the selected provider's settings. A missing key is
// reported the way users expect from a .env based setup.
func (c *Config) ValidateLLM() error {
	if err := c.Validate(); err != nil {
		return err
	}
	p := c.LLM.Provider
	if env := llm.KeyEnvVar(p); env != "" && c.LLM.APIKey() == "" {
		return &ConfigurationError{
			Key:     "llm." + p + ".api_key",
			Message: fmt.Sprintf("%s API key is missing! Please check your .env file.", vendorName(p)),
		}
	}
	if err := c.LLM.Validate(); err != nil {
		return &ConfigurationError{Key: "llm", Message: err.Error()}
	}
	return nil
}

// ValidateTelegram checks the bot settings.
func (c *Config) ValidateTelegram() error {
	if err := c.ValidateLLM(); err != nil {
		return err
	}
	if c.Telegram.Token == "" {
		return &ConfigurationError{Key: "telegram.token", Message: "Telegram bot token is missing! Set TELEGRAM_BOT_TOKEN."}
	}
	return nil
}

// Quizgen returns the generator settings.
func (c *Config) Quizgen() quizgen.Config {
	q := quizgen.DefaultConfig()
	q.Count = c.Quiz.QuestionCount
	q.MaxTokens = c.Quiz.MaxTokens
	q.StructuredOutput = c.Quiz.StructuredOutput
	return q
}

func vendorName(provider string) string {
	switch provider {
	case llm.ProviderGroq:
		return "GROQ"
	case llm.ProviderOpenAI:
		return "OpenAI"
	case llm.ProviderOpenRouter:
		return "OpenRouter"
	case llm.ProviderAnthropic:
		return "Anthropic"
	case llm.ProviderGemini:
		return "Gemini"
	}
	return provider
}
