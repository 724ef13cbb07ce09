package cmd

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/spf13/cobra"

	"github.com/pawprint-labs/petscribe/internal/handlers"
	"github.com/pawprint-labs/petscribe/internal/params"
)

func newServeCmd() *cobra.Command {
	var port string
	var paramsPath string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the web interface for pet photo descriptions",
		Long: `Starts the Petscribe web interface on the specified port.

The web form accepts a pet photo upload plus generation options and
returns the model's description as JSON.`,
		Example: `  # Start server on default port 5001
  petscribe serve

  # Start server on a custom port with a YAML options file
  petscribe serve --port 8080 --params params.yaml`,
		RunE: func(cmd *cobra.Command, args []string) error {
			handler := handlers.New(paramsPath)

			// Set up routes
			mux := http.NewServeMux()
			mux.HandleFunc("/api/describe", handler.HandleDescribe)
			mux.HandleFunc("/api/params", handler.HandleParams)
			mux.HandleFunc("/", handler.HandleStatic)
			mux.HandleFunc("/healthcheck", func(w http.ResponseWriter, r *http.Request) {
				if _, err := w.Write([]byte("OK")); err != nil {
					slog.Error("Unable to write healthcheck", "err", err)
				}
			})

			addr := ":" + port
			server := &http.Server{
				Addr:    addr,
				Handler: mux,
			}

			// Start server in goroutine
			serverErr := make(chan error, 1)
			go func() {
				slog.Info("Petscribe interface available", "addr", addr, "url", "http://localhost"+addr)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					serverErr <- err
				}
			}()

			// Wait for context cancellation (Ctrl+C) or server error
			select {
			case <-cmd.Context().Done():
				slog.Info("Shutting down server...")
				// Give server 5 seconds to shut down gracefully
				shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
				defer cancel()
				if err := server.Shutdown(shutdownCtx); err != nil {
					slog.Error("Server shutdown failed", "err", err)
					return err
				}
				slog.Info("Server stopped")
				return nil
			case err := <-serverErr:
				return err
			}
		},
	}

	cmd.Flags().StringVarP(&port, "port", "p", "5001", "Port to listen on")
	cmd.Flags().StringVar(&paramsPath, "params", params.DefaultFilePath, "Path to the options file")

	return cmd
}
