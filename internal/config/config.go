// Package config provides application configuration loaded from the
// environment and optional .env files.
package config

import (
	"fmt"

	"github.com/lapsetrack/lapsetrack/internal/log"
)

// Default configuration values.
const (
	DefaultHost             = "0.0.0.0"
	DefaultPort             = 8080
	DefaultLogLevel         = "INFO"
	DefaultDBURL            = "sqlite:///lapsetrack.db"
	DefaultMaxRecordAgeDays = 3650
	DefaultBetweenDates     = "::"
)

// AppConfig is the resolved application configuration. It is an immutable
// value type; construct it with Load or FromEnv.
type AppConfig struct {
	host             string
	port             int
	dbURL            string
	logLevel         string
	logFormat        log.Format
	maxRecordAgeDays int
	showDays         bool
	showMonths       bool
	betweenDates     string
	minGapDays       int
	stateConfigFile  string
}

// Host returns the host the HTTP server binds to.
func (c AppConfig) Host() string { return c.host }

// Port returns the port the HTTP server listens on.
func (c AppConfig) Port() int { return c.port }

// Addr returns the host:port address for the HTTP server.
func (c AppConfig) Addr() string { return fmt.Sprintf("%s:%d", c.host, c.port) }

// DBURL returns the database connection URL.
func (c AppConfig) DBURL() string { return c.dbURL }

// LogLevel returns the log verbosity level.
func (c AppConfig) LogLevel() string { return c.logLevel }

// LogFormat returns the log output format.
func (c AppConfig) LogFormat() log.Format { return c.logFormat }

// MaxRecordAgeDays returns the age at which a stored well record is
// considered stale and re-collected from public records.
func (c AppConfig) MaxRecordAgeDays() int { return c.maxRecordAgeDays }

// ShowDays reports whether reports include each date range's duration in days.
func (c AppConfig) ShowDays() bool { return c.showDays }

// ShowMonths reports whether reports include each date range's duration in
// calendar months.
func (c AppConfig) ShowMonths() bool { return c.showMonths }

// BetweenDates returns the separator between the start and end dates in
// report output.
func (c AppConfig) BetweenDates() string { return c.betweenDates }

// MinGapDays returns the minimum duration for a gap to appear in reports;
// zero keeps every gap.
func (c AppConfig) MinGapDays() int { return c.minGapDays }

// StateConfigFile returns the path of the optional YAML file overlaying the
// built-in state scraper configurations, or empty.
func (c AppConfig) StateConfigFile() string { return c.stateConfigFile }

// WithAddr returns a config with the host and port overridden where
// non-zero. Used to apply command-line flags over environment values.
func (c AppConfig) WithAddr(host string, port int) AppConfig {
	if host != "" {
		c.host = host
	}
	if port != 0 {
		c.port = port
	}
	return c
}
