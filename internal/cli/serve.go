package cli

import (
	"context"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	prommetrics "github.com/emiliopalmerini/labstats/internal/adapters/prometheus"
	"github.com/emiliopalmerini/labstats/internal/web"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the statistics HTTP API",
	Long: `Start the statistics HTTP API, the HTML overview report and the
Prometheus /metrics endpoint.

Examples:
  labstats serve              # Start on default port 8080
  labstats serve --port 3000  # Start on port 3000`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

var servePort int

func init() {
	serveCmd.Flags().IntVarP(&servePort, "port", "p", 8080, "Port to listen on")
}

func runServe(cmd *cobra.Command, args []string) error {
	// Cancel on interrupt for graceful shutdown
	ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := prommetrics.NewMetrics()
	app, err := openApp(ctx, metrics)
	if err != nil {
		return err
	}
	defer func() { _ = app.Close(context.WithoutCancel(ctx)) }()

	server := web.NewServer(servePort, app.Service, app.Users, app.Logger, metrics)
	err = server.Start(ctx)
	app.Logger.Info("server stopped", zap.Error(err))
	return err
}
