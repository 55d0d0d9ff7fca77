package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	httpAdapter "github.com/openrc-ng/rcupdate/internal/adapters/http"
	"github.com/openrc-ng/rcupdate/internal/cli"
	"github.com/openrc-ng/rcupdate/internal/config"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve the membership matrix read-only over HTTP",
	Long: `Starts an HTTP server exposing the registry's services, runlevels and
membership matrix as JSON, plus Prometheus metrics on /metrics. The API
never mutates the registry.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		listen, _ := cmd.Flags().GetString("listen")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		reg, closeReg, err := cli.BuildRegistry(cfg)
		if err != nil {
			return err
		}
		defer closeReg()

		handler := httpAdapter.NewHandler(reg, httpAdapter.NewMetrics())
		srv := &http.Server{
			Addr:    listen,
			Handler: handler,
		}

		serverErrors := make(chan error, 1)
		go func() {
			fmt.Printf("Serving registry on %s (backend: %s)\n", srv.Addr, cfg.Backend)
			serverErrors <- srv.ListenAndServe()
		}()

		shutdown := make(chan os.Signal, 1)
		signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

		select {
		case err := <-serverErrors:
			return fmt.Errorf("server error: %w", err)

		case sig := <-shutdown:
			fmt.Printf("\nShutting down... Signal: %v\n", sig)

			ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()

			if err := srv.Shutdown(ctx); err != nil {
				if closeErr := srv.Close(); closeErr != nil {
					return fmt.Errorf("failed to stop server: %w", closeErr)
				}
			}
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(serveCmd)

	serveCmd.Flags().String("listen", ":7070", "Address to listen on")
}
