package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/export"
	"github.com/abhisek/quizcrafter/internal/store"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse and export finished quizzes",
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List finished quizzes, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := historyQuery(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		results, err := s.QuizRepo().QueryQuizResults(cmd.Context(), opts)
		if err != nil {
			return fmt.Errorf("query results: %w", err)
		}

		out := cmd.OutOrStdout()
		if len(results) == 0 {
			fmt.Fprintln(out, "No finished quizzes yet.")
			return nil
		}

		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "FINISHED\tSUBJECT\tTOPIC\tDIFFICULTY\tSCORE\tUSER\tSESSION")
		for _, r := range results {
			fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%d/%d\t%s\t%s\n",
				r.FinishedAt.Local().Format("2006-01-02 15:04"),
				truncate(r.Subject, 24),
				truncate(r.Topic, 24),
				r.Difficulty,
				r.Score, r.Total,
				r.UserToken,
				r.SessionID,
			)
		}
		return tw.Flush()
	},
}

var historyExportCmd = &cobra.Command{
	Use:   "export <file.xlsx>",
	Short: "Export finished quizzes and their answers to an Excel workbook",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		opts, err := historyQuery(cmd)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		f, err := os.Create(args[0])
		if err != nil {
			return fmt.Errorf("create %s: %w", args[0], err)
		}
		counts, err := export.Write(cmd.Context(), f, s.QuizRepo(), opts)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			os.Remove(args[0])
			return fmt.Errorf("export: %w", err)
		}

		fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d quizzes and %d answers to %s\n", counts.Results, counts.Answers, args[0])
		return nil
	},
}

// historyQuery turns --limit and --since into query options.
func historyQuery(cmd *cobra.Command) (store.QueryOpts, error) {
	limit, _ := cmd.Flags().GetInt("limit")
	since, _ := cmd.Flags().GetDuration("since")
	opts := store.QueryOpts{Limit: limit}
	if since < 0 {
		return opts, fmt.Errorf("--since must be positive")
	}
	if since > 0 {
		opts.From = time.Now().Add(-since)
	}
	return opts, nil
}

func init() {
	historyListCmd.Flags().IntP("limit", "n", 20, "Number of quizzes to show (0 for all)")
	historyListCmd.Flags().Duration("since", 0, "Only quizzes finished within this duration, e.g. 168h")
	historyExportCmd.Flags().IntP("limit", "n", 0, "Number of quizzes to export (0 for all)")
	historyExportCmd.Flags().Duration("since", 0, "Only quizzes finished within this duration, e.g. 168h")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyExportCmd)
}
