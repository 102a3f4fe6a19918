// Command dataview serves a dataset file over HTTP for browsing.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	dataview "github.com/dataview-lab/dataview-go"
)

func main() {
	if err := rootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func rootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:          "dataview",
		Short:        "Browse a dataset file through an embedded DuckDB",
		SilenceUsage: true,
	}
	cmd.AddCommand(serveCmd(), generateConfigCmd())
	return cmd
}

func serveCmd() *cobra.Command {
	var (
		configPath string
		port       int
		token      string
		logLevel   string
		metrics    bool
	)
	cmd := &cobra.Command{
		Use:   "serve [dataset-path]",
		Short: "Serve a dataset over HTTP",
		Long: `Serve a dataset file (CSV, JSONL, or Parquet) over HTTP.

The dataset path can be given as an argument or through a view config
file (--config). Flags override the config file.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			view, err := resolveView(configPath, args)
			if err != nil {
				return err
			}
			if port != 0 {
				view.Port = port
			}

			level, err := parseLevel(logLevel)
			if err != nil {
				return err
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))

			config := dataview.ServerConfig{
				View:          *view,
				Logger:        logger,
				EnableMetrics: metrics,
			}
			if token != "" {
				config.Auth = dataview.BearerAuth(func(got string) (string, error) {
					if got != token {
						return "", dataview.ErrUnauthorized
					}
					return "api", nil
				})
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt, syscall.SIGTERM)
			defer stop()

			srv, err := dataview.NewServer(ctx, config)
			if err != nil {
				return err
			}
			defer srv.Close()

			return serveUntilSignal(ctx, srv, logger)
		},
	}
	cmd.Flags().StringVarP(&configPath, "config", "c", "", "view config file (json or yaml)")
	cmd.Flags().IntVarP(&port, "port", "p", 0, "HTTP port (overrides config)")
	cmd.Flags().StringVar(&token, "token", "", "require this bearer token on /api routes")
	cmd.Flags().StringVar(&logLevel, "log-level", "info", "log level: debug, info, warn, error")
	cmd.Flags().BoolVar(&metrics, "metrics", false, "expose Prometheus metrics on /metrics")
	return cmd
}

func generateConfigCmd() *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "generate-config <dataset-path>",
		Short: "Write a starter view config for a dataset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := dataview.ExampleViewConfig(args[0])
			data, err := json.MarshalIndent(cfg, "", "  ")
			if err != nil {
				return err
			}
			data = append(data, '\n')
			if output == "" {
				_, err = cmd.OutOrStdout().Write(data)
				return err
			}
			if err := os.WriteFile(output, data, 0o644); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "wrote %s\n", output)
			return nil
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "write config to this file instead of stdout")
	return cmd
}

// resolveView combines the config file and the positional dataset path.
func resolveView(configPath string, args []string) (*dataview.ViewConfig, error) {
	if configPath != "" {
		view, err := dataview.LoadViewConfig(configPath)
		if err != nil {
			return nil, err
		}
		if len(args) > 0 {
			view.DatasetPath = args[0]
		}
		return view, nil
	}
	if len(args) == 0 {
		return nil, fmt.Errorf("a dataset path or --config is required")
	}
	return &dataview.ViewConfig{DatasetPath: args[0]}, nil
}

func parseLevel(s string) (slog.Level, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return 0, fmt.Errorf("invalid log level %q", s)
	}
	return level, nil
}

// serveUntilSignal runs the HTTP server until ctx is cancelled, then
// shuts it down gracefully.
func serveUntilSignal(ctx context.Context, srv *dataview.Server, logger *slog.Logger) error {
	httpSrv := &http.Server{
		Addr:    srv.Addr(),
		Handler: srv.Handler(),
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", httpSrv.Addr)
		errCh <- httpSrv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := httpSrv.Shutdown(shutdownCtx); err != nil {
		return err
	}
	return nil
}
