package lapsetrack

import (
	"log/slog"
	"time"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
	"github.com/lapsetrack/lapsetrack/infrastructure/collector"
	"github.com/lapsetrack/lapsetrack/internal/config"
)

// clientConfig holds configuration for Client construction. Defaults come
// from internal/config.
type clientConfig struct {
	dbURL        string
	maxRecordAge time.Duration
	stateConfigs map[string]collector.StateConfig
	collectors   map[string]wellrecord.Collector
	between      string
	showDays     bool
	showMonths   bool
	minGapDays   int
	logger       *slog.Logger
}

func newClientConfig() *clientConfig {
	return &clientConfig{
		dbURL:        config.DefaultDBURL,
		maxRecordAge: config.DefaultMaxRecordAgeDays * 24 * time.Hour,
		stateConfigs: collector.DefaultConfigs(),
		between:      config.DefaultBetweenDates,
		logger:       slog.Default(),
	}
}

// Option configures a Client.
type Option func(*clientConfig)

// WithSQLite stores well records in a SQLite file at the given path.
func WithSQLite(path string) Option {
	return func(c *clientConfig) { c.dbURL = "sqlite:///" + path }
}

// WithDatabaseURL stores well records at the given database URL. SQLite and
// PostgreSQL URLs are supported.
func WithDatabaseURL(url string) Option {
	return func(c *clientConfig) { c.dbURL = url }
}

// WithMaxRecordAge sets how old a stored record may be before it is
// re-collected from public records.
func WithMaxRecordAge(age time.Duration) Option {
	return func(c *clientConfig) { c.maxRecordAge = age }
}

// WithStateConfigs replaces the built-in state scraper configurations,
// keyed by two-digit API state code.
func WithStateConfigs(configs map[string]collector.StateConfig) Option {
	return func(c *clientConfig) { c.stateConfigs = configs }
}

// WithCollectors replaces the collectors entirely, bypassing the scraper
// construction. Useful for tests and custom data sources.
func WithCollectors(collectors map[string]wellrecord.Collector) Option {
	return func(c *clientConfig) { c.collectors = collectors }
}

// WithReportFormat configures report rendering: the separator between the
// start and end of each range, and whether durations in days and calendar
// months are included.
func WithReportFormat(between string, showDays, showMonths bool) Option {
	return func(c *clientConfig) {
		if between != "" {
			c.between = between
		}
		c.showDays = showDays
		c.showMonths = showMonths
	}
}

// WithMinGapDays drops researched gaps shorter than the given number of
// days from group reports.
func WithMinGapDays(days int) Option {
	return func(c *clientConfig) { c.minGapDays = days }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) Option {
	return func(c *clientConfig) {
		if logger != nil {
			c.logger = logger
		}
	}
}
