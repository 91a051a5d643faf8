package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/cli"
)

var askCmd = &cobra.Command{
	Use:   "ask",
	Short: "Take a quiz with plain line-by-line prompts",
	Long: `Generate a quiz and answer it on standard input, one line per answer.

Answers may be the option identifier (a-d) or the full option text.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		rt, err := buildRuntime(cmd, buildOptions{})
		if err != nil {
			return err
		}
		defer rt.close()

		subject, _ := cmd.Flags().GetString("subject")
		topic, _ := cmd.Flags().GetString("topic")
		difficulty, _ := cmd.Flags().GetString("difficulty")

		return cli.Run(cmd.Context(), os.Stdin, cmd.OutOrStdout(), rt.service, cli.Options{
			Token:      "cli",
			Subject:    subject,
			Topic:      topic,
			Difficulty: difficulty,
		})
	},
}

func init() {
	askCmd.Flags().StringP("subject", "s", "", "Quiz subject (prompted if empty)")
	askCmd.Flags().StringP("topic", "t", "", "Quiz topic (prompted if empty)")
	askCmd.Flags().StringP("difficulty", "d", "", "Easy, Medium or Hard (prompted if empty)")
}
