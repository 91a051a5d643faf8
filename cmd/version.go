package cmd

import (
	"fmt"
	goruntime "runtime"

	"github.com/spf13/cobra"
)

// version is stamped by the release build with -ldflags "-X".
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the quizcrafter version",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		_, err := fmt.Fprintf(cmd.OutOrStdout(), "quizcrafter %s (%s %s/%s)\n",
			version, goruntime.Version(), goruntime.GOOS, goruntime.GOARCH)
		return err
	},
}
