package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"

	"github.com/lapsetrack/lapsetrack/internal/log"
)

type envConfig struct {
	Host             string `envconfig:"HOST" default:"0.0.0.0"`
	Port             int    `envconfig:"PORT" default:"8080"`
	DBURL            string `envconfig:"DB_URL" default:"sqlite:///lapsetrack.db"`
	LogLevel         string `envconfig:"LOG_LEVEL" default:"INFO"`
	LogFormat        string `envconfig:"LOG_FORMAT" default:"pretty"`
	MaxRecordAgeDays int    `envconfig:"MAX_RECORD_AGE_DAYS" default:"3650"`
	ShowDays         bool   `envconfig:"SHOW_DAYS" default:"false"`
	ShowMonths       bool   `envconfig:"SHOW_MONTHS" default:"false"`
	BetweenDates     string `envconfig:"BETWEEN_DATES" default:"::"`
	MinGapDays       int    `envconfig:"MIN_GAP_DAYS" default:"0"`
	StateConfigFile  string `envconfig:"STATE_CONFIG_FILE" default:""`
}

// Load reads configuration from .env files (if present) and the process
// environment. Real environment variables win over .env values.
func Load(envFiles ...string) (AppConfig, error) {
	if len(envFiles) == 0 {
		if _, err := os.Stat(".env"); err == nil {
			envFiles = []string{".env"}
		}
	}
	for _, f := range envFiles {
		if err := godotenv.Load(f); err != nil {
			return AppConfig{}, fmt.Errorf("failed to load env file %s: %w", f, err)
		}
	}
	return FromEnv()
}

// FromEnv reads configuration from the process environment only.
func FromEnv() (AppConfig, error) {
	var e envConfig
	if err := envconfig.Process("", &e); err != nil {
		return AppConfig{}, fmt.Errorf("failed to process environment: %w", err)
	}
	if e.MaxRecordAgeDays < 0 {
		return AppConfig{}, fmt.Errorf("MAX_RECORD_AGE_DAYS must not be negative, got %d", e.MaxRecordAgeDays)
	}
	if e.MinGapDays < 0 {
		return AppConfig{}, fmt.Errorf("MIN_GAP_DAYS must not be negative, got %d", e.MinGapDays)
	}
	var format log.Format
	switch strings.ToLower(e.LogFormat) {
	case "pretty", "":
		format = log.FormatPretty
	case "json":
		format = log.FormatJSON
	default:
		return AppConfig{}, fmt.Errorf("unknown LOG_FORMAT %q", e.LogFormat)
	}
	return AppConfig{
		host:             e.Host,
		port:             e.Port,
		dbURL:            e.DBURL,
		logLevel:         e.LogLevel,
		logFormat:        format,
		maxRecordAgeDays: e.MaxRecordAgeDays,
		showDays:         e.ShowDays,
		showMonths:       e.ShowMonths,
		betweenDates:     e.BetweenDates,
		minGapDays:       e.MinGapDays,
		stateConfigFile:  e.StateConfigFile,
	}, nil
}

// Default returns the configuration with every value at its default,
// ignoring the environment. Useful in tests and the embedded client.
func Default() AppConfig {
	return AppConfig{
		host:             DefaultHost,
		port:             DefaultPort,
		dbURL:            DefaultDBURL,
		logLevel:         DefaultLogLevel,
		logFormat:        log.FormatPretty,
		maxRecordAgeDays: DefaultMaxRecordAgeDays,
		betweenDates:     DefaultBetweenDates,
	}
}
