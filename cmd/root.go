package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/config"
	"github.com/abhisek/quizcrafter/internal/store"
)

var rootCmd = &cobra.Command{
	Use:   "quizcrafter",
	Short: "AI generated multiple-choice quizzes",
	Long: `QuizCrafter AI generates a multiple-choice quiz for any subject, topic
and difficulty with an LLM and scores your answers.

Without a subcommand the web UI is served.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runServe,
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to a YAML config file (default: search for quizcrafter.yaml)")
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZCRAFTER_DB env var)")
	rootCmd.PersistentFlags().String("provider", "", "LLM provider: groq, openai, openrouter, anthropic, gemini or mock")
	rootCmd.PersistentFlags().String("mock-file", "", "File whose contents the mock provider returns for every call")

	addServeFlags(rootCmd)

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(askCmd)
	rootCmd.AddCommand(telegramCmd)
	rootCmd.AddCommand(llmCmd)
	rootCmd.AddCommand(historyCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadConfig reads the configuration and applies command-line overrides.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	file, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(config.Options{ConfigFile: file})
	if err != nil {
		return nil, err
	}
	if p, _ := cmd.Flags().GetString("provider"); p != "" {
		cfg.LLM.Provider = p
	}
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		cfg.DB.Path = p
	}
	return cfg, nil
}

// resolveDBPath returns the database path using --db or db.path (highest
// priority), then QUIZCRAFTER_DB env var, then the default XDG path.
func resolveDBPath(cfg *config.Config) (string, error) {
	if cfg.DB.Path != "" {
		return cfg.DB.Path, store.EnsureDir(cfg.DB.Path)
	}
	return store.DefaultDBPath()
}

// openStore loads the configuration and opens the database for the
// read-only inspection commands.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return nil, err
	}
	dbPath, err := resolveDBPath(cfg)
	if err != nil {
		return nil, fmt.Errorf("resolve database path: %w", err)
	}
	s, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	return s, nil
}
