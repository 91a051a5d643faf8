package cmd

import (
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/app"
	"github.com/abhisek/quizcrafter/internal/logging"
	"github.com/abhisek/quizcrafter/internal/store"
)

var playCmd = &cobra.Command{
	Use:   "play",
	Short: "Take a quiz in the terminal UI",
	RunE: func(cmd *cobra.Command, args []string) error {
		// Logs would corrupt the screen, so they go to a file.
		logPath, err := tuiLogPath(cmd)
		if err != nil {
			return err
		}
		f, err := logging.OpenFile(logPath)
		if err != nil {
			return err
		}
		defer f.Close()

		rt, err := buildRuntime(cmd, buildOptions{logTo: f})
		if err != nil {
			return err
		}
		defer rt.close()

		return app.Run(rt.service)
	},
}

func tuiLogPath(cmd *cobra.Command) (string, error) {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return "", err
	}
	if cfg.Log.File != "" {
		return cfg.Log.File, nil
	}
	dir, err := store.DataDir()
	if err != nil {
		return "", fmt.Errorf("resolve data dir: %w", err)
	}
	return filepath.Join(dir, "quizcrafter.log"), nil
}
