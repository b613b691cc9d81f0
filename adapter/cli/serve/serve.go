// Package serve runs the HTTP API together with the outbox relay.
package serve

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/sourcegraph/conc"
	"github.com/spf13/cobra"

	"github.com/DHariharanD/Smart-Task-Analyser/adapter/api"
	"github.com/DHariharanD/Smart-Task-Analyser/adapter/cli"
)

const shutdownTimeout = 10 * time.Second

var (
	addr    string
	noRelay bool
)

// Cmd starts the HTTP API.
var Cmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the task analysis HTTP API",
	Long: `Serve the task analysis API and relay stored-task events from the outbox.

Events go to RabbitMQ when RABBITMQ_URL is set and to the in-process
dependency guard otherwise.

Examples:
  taskanalyzer serve
  taskanalyzer serve --addr :8080`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		logger := cli.Logger()

		app, err := cli.RequireApp(ctx)
		if err != nil {
			return err
		}
		container := app.Container

		serverCfg := api.DefaultServerConfig()
		if container.Config.HTTPAddr != "" {
			serverCfg.Addr = container.Config.HTTPAddr
		}
		if addr != "" {
			serverCfg.Addr = addr
		}
		serverCfg.AllowedOrigins = container.Config.CORSAllowedOrigins
		server := api.NewServer(serverCfg, api.DependenciesFrom(container), logger)

		if !noRelay {
			publisher, err := container.EventPublisher()
			if err != nil {
				return err
			}
			defer func() { _ = publisher.Close() }()

			processor := container.NewOutboxProcessor(publisher)
			processor.Start(ctx)
			defer processor.Stop()
		}

		var wg conc.WaitGroup
		serveErr := make(chan error, 1)
		wg.Go(func() {
			if err := server.Start(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				serveErr <- err
			}
			close(serveErr)
		})

		select {
		case <-ctx.Done():
		case err, ok := <-serveErr:
			if ok {
				return fmt.Errorf("http server: %w", err)
			}
		}

		shutdownCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), shutdownTimeout)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
		wg.Wait()
		return nil
	},
}

func init() {
	Cmd.Flags().StringVar(&addr, "addr", "", "listen address (default HTTP_ADDR or 127.0.0.1:8000)")
	Cmd.Flags().BoolVar(&noRelay, "no-relay", false, "do not relay outbox events")
}
