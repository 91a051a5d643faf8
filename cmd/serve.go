package cmd

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizcrafter/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the web UI and JSON API",
	RunE:  runServe,
}

func addServeFlags(c *cobra.Command) {
	c.Flags().String("addr", "", "Listen address (overrides server.addr)")
	c.Flags().Bool("secure-cookie", false, "Mark the session cookie Secure (serve behind HTTPS)")
}

func init() {
	addServeFlags(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	rt, err := buildRuntime(cmd, buildOptions{})
	if err != nil {
		return err
	}
	defer rt.close()

	addr := rt.cfg.Server.Addr
	if a, _ := cmd.Flags().GetString("addr"); a != "" {
		addr = a
	}
	secure, _ := cmd.Flags().GetBool("secure-cookie")

	srv, err := web.New(web.Options{
		Service:      rt.service,
		Logger:       rt.logger,
		Mode:         rt.cfg.Server.Mode,
		CORSOrigins:  rt.cfg.Server.CORSOrigins,
		SecureCookie: secure,
	})
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	return srv.Run(ctx, addr)
}
