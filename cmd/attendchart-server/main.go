package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/spf13/cobra"
	"golang.org/x/net/http2"
	"golang.org/x/net/http2/h2c"

	"github.com/at-ishikawa/attendchart/internal/bootstrap"
	"github.com/at-ishikawa/attendchart/internal/chart"
	"github.com/at-ishikawa/attendchart/internal/config"
	"github.com/at-ishikawa/attendchart/internal/series"
	"github.com/at-ishikawa/attendchart/internal/server"
	"github.com/at-ishikawa/attendchart/internal/stats"
)

var configFile string

func main() {
	var debugMode bool
	rootCmd := &cobra.Command{
		Use:           "attendchart-server",
		Short:         "Attendance chart HTTP server",
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			setupLogger(debugMode)
			return run(cmd.Context())
		},
	}
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path")
	rootCmd.Flags().BoolVar(&debugMode, "debug", false, "Enable debug mode")

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	app := bootstrap.New(bootstrap.DefaultShutdownTimeout)

	cfg, err := loadConfig()
	if err != nil {
		return fmt.Errorf("loadConfig() > %w", err)
	}

	client := stats.NewClient(stats.Config{
		BaseURL:     cfg.API.BaseURL,
		SuccessCode: cfg.API.SuccessCode,
		Timeout:     cfg.API.Timeout(),
	})
	app.AddShutdownHook("stats client", func(ctx context.Context) error {
		return client.Close()
	})

	handler := server.NewAttendanceHandler(
		series.NewAssembler(client, cfg.API.Concurrency),
		chart.Size{Width: cfg.Chart.WidthInches, Height: cfg.Chart.HeightInches},
	)
	srv := newHTTPServer(cfg, handler)
	app.AddShutdownHook("http server", srv.Shutdown)

	return app.Run(ctx, func(ctx context.Context) error {
		slog.Default().Info("starting server", "addr", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
}

func newHTTPServer(cfg *config.Config, handler *server.AttendanceHandler) *http.Server {
	return &http.Server{
		Addr:              fmt.Sprintf(":%d", cfg.Server.Port),
		Handler:           server.CORS(h2c.NewHandler(handler.Routes(), &http2.Server{}), cfg.Server.CORS.AllowedOrigins),
		ReadHeaderTimeout: 10 * time.Second,
	}
}

func loadConfig() (*config.Config, error) {
	loader, err := config.NewConfigLoader(configFile)
	if err != nil {
		return nil, fmt.Errorf("config.NewConfigLoader() > %w", err)
	}
	return loader.Load()
}

func setupLogger(debugMode bool) {
	logLevel := slog.LevelInfo
	if debugMode {
		logLevel = slog.LevelDebug
	}
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level:     logLevel,
		AddSource: true,
	})))
}
