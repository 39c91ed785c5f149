package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/lapsetrack/lapsetrack"
	"github.com/lapsetrack/lapsetrack/infrastructure/api"
	"github.com/lapsetrack/lapsetrack/internal/config"
	"github.com/lapsetrack/lapsetrack/internal/log"
)

func serveCmd() *cobra.Command {
	var (
		envFile string
		host    string
		port    int
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API server",
		Long: `Start the HTTP API server.

Configuration is loaded in the following order (later sources override earlier):
  1. Default values
  2. .env file (if --env-file specified or .env exists in current directory)
  3. Environment variables
  4. Command line flags

Environment variables:
  HOST                 Server host to bind to (default: 0.0.0.0)
  PORT                 Server port to listen on (default: 8080)
  DB_URL               Database URL (default: sqlite:///lapsetrack.db)
  LOG_LEVEL            Log level: DEBUG, INFO, WARN, ERROR (default: INFO)
  LOG_FORMAT           Log format: pretty, json (default: pretty)
  MAX_RECORD_AGE_DAYS  Stored record age before re-collection (default: 3650)
  SHOW_DAYS            Include range durations in days in reports
  SHOW_MONTHS          Include range durations in calendar months in reports
  BETWEEN_DATES        Separator between report dates (default: "::")
  MIN_GAP_DAYS         Drop researched gaps shorter than this many days
  STATE_CONFIG_FILE    YAML file overlaying the built-in state configs`,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServe(envFile, host, port)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")
	cmd.Flags().StringVar(&host, "host", "", "Server host to bind to (default: 0.0.0.0)")
	cmd.Flags().IntVar(&port, "port", 0, "Server port to listen on (default: 8080)")

	return cmd
}

func runServe(envFile, host string, port int) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}
	cfg = cfg.WithAddr(host, port)

	logger := log.New(cfg.LogLevel(), cfg.LogFormat())
	slog.SetDefault(logger)

	logger.Info("starting lapsetrack",
		"version", version,
		"addr", cfg.Addr(),
		"db_url", cfg.DBURL(),
	)

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close client", slog.Any("error", err))
		}
	}()

	apiServer := api.NewAPIServer(client)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)

	go func() {
		<-sigChan
		logger.Info("shutting down server")
		if err := apiServer.Shutdown(ctx); err != nil {
			logger.Error("shutdown error", slog.Any("error", err))
		}
		cancel()
	}()

	if err := apiServer.ListenAndServe(cfg.Addr()); err != nil {
		return fmt.Errorf("server error: %w", err)
	}
	return nil
}

// loadConfig loads configuration from .env file and environment variables.
func loadConfig(envFile string) (config.AppConfig, error) {
	var cfg config.AppConfig
	var err error
	if envFile != "" {
		cfg, err = config.Load(envFile)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return config.AppConfig{}, fmt.Errorf("load config: %w", err)
	}
	return cfg, nil
}

// newClient builds a lapsetrack client from the application config.
func newClient(cfg config.AppConfig, logger *slog.Logger) (*lapsetrack.Client, error) {
	opts := []lapsetrack.Option{
		lapsetrack.WithDatabaseURL(cfg.DBURL()),
		lapsetrack.WithMaxRecordAge(time24h(cfg.MaxRecordAgeDays())),
		lapsetrack.WithReportFormat(cfg.BetweenDates(), cfg.ShowDays(), cfg.ShowMonths()),
		lapsetrack.WithMinGapDays(cfg.MinGapDays()),
		lapsetrack.WithLogger(logger),
	}

	if path := cfg.StateConfigFile(); path != "" {
		stateConfigs, err := loadStateConfigs(path)
		if err != nil {
			return nil, err
		}
		opts = append(opts, lapsetrack.WithStateConfigs(stateConfigs))
	}

	client, err := lapsetrack.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}
	return client, nil
}
