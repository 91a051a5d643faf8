package cmd

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/config"
	"github.com/abhisek/quizcrafter/internal/telegram"
)

var telegramCmd = &cobra.Command{
	Use:   "telegram",
	Short: "Run the quiz as a Telegram bot",
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := buildRuntime(cmd, buildOptions{validate: (*config.Config).ValidateTelegram})
		if err != nil {
			return err
		}
		defer rt.close()

		api, err := tgbotapi.NewBotAPI(rt.cfg.Telegram.Token)
		if err != nil {
			return fmt.Errorf("connect to telegram: %w", err)
		}

		ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
		defer stop()
		return telegram.Serve(ctx, api, rt.service, rt.logger)
	},
}
