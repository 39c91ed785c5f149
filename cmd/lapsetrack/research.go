package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
	"github.com/lapsetrack/lapsetrack/infrastructure/collector"
	"github.com/lapsetrack/lapsetrack/internal/log"
)

func researchCmd() *cobra.Command {
	var envFile string

	cmd := &cobra.Command{
		Use:   "research <api_num> [api_num...]",
		Short: "Research production gaps for a group of wells",
		Long: `Research production gaps for a group of wells and print the report
as JSON. Each argument is a well's API number, e.g. 05-123-45678.`,
		Args: cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResearch(envFile, args)
		},
	}

	cmd.Flags().StringVar(&envFile, "env-file", "", "Path to .env file (default: .env in current directory)")

	return cmd
}

func runResearch(envFile string, apiNums []string) error {
	cfg, err := loadConfig(envFile)
	if err != nil {
		return err
	}

	logger := log.New(cfg.LogLevel(), cfg.LogFormat())
	slog.SetDefault(logger)

	client, err := newClient(cfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := client.Close(); err != nil {
			logger.Error("failed to close client", slog.Any("error", err))
		}
	}()

	reqs := make([]wellrecord.CollectRequest, len(apiNums))
	for i, apiNum := range apiNums {
		reqs[i] = wellrecord.CollectRequest{APINum: apiNum}
	}

	group, err := client.Records().ResearchGaps(context.Background(), reqs)
	if err != nil {
		return fmt.Errorf("research wells: %w", err)
	}

	summary := client.Reports().SummarizeWellGroup(group)
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	return encoder.Encode(summary)
}

func loadStateConfigs(path string) (map[string]collector.StateConfig, error) {
	configs, err := collector.LoadConfigFile(path)
	if err != nil {
		return nil, fmt.Errorf("load state configs: %w", err)
	}
	return configs, nil
}

func time24h(days int) time.Duration {
	return time.Duration(days) * 24 * time.Hour
}
