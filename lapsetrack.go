// Package lapsetrack provides a library for researching gaps in oil and gas
// well production records.
//
// Lapsetrack pulls monthly production records from state regulator websites,
// classifies the months in which a well failed to produce, and intersects
// those gaps across every well tied to a lease to find the periods in which
// no well produced at all.
//
// Basic usage:
//
//	client, err := lapsetrack.New(
//	    lapsetrack.WithSQLite("lapsetrack.db"),
//	)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer client.Close()
//
//	group, err := client.Records().ResearchGaps(ctx, []wellrecord.CollectRequest{
//	    {APINum: "05-123-45678"},
//	    {APINum: "05-123-45679"},
//	})
//
//	summary := client.Reports().SummarizeWellGroup(group)
package lapsetrack

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"github.com/lapsetrack/lapsetrack/application/service"
	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
	"github.com/lapsetrack/lapsetrack/infrastructure/collector"
	"github.com/lapsetrack/lapsetrack/infrastructure/persistence"
	"github.com/lapsetrack/lapsetrack/internal/database"
	"github.com/lapsetrack/lapsetrack/internal/metrics"
)

// ErrClientClosed indicates the client has been closed.
var ErrClientClosed = errors.New("lapsetrack: client is closed")

// Client is the main entry point for the lapsetrack library.
type Client struct {
	records *service.Records
	reports *service.Reports
	db      database.Database
	metrics *metrics.Metrics
	logger  *slog.Logger

	mu     sync.Mutex
	closed bool
}

// New creates a Client. With no options it stores records in a SQLite file
// in the working directory and collects from every built-in state that works
// without credentials.
func New(opts ...Option) (*Client, error) {
	cfg := newClientConfig()
	for _, opt := range opts {
		opt(cfg)
	}

	ctx := context.Background()
	db, err := database.NewDatabase(ctx, cfg.dbURL)
	if err != nil {
		return nil, fmt.Errorf("lapsetrack: open database: %w", err)
	}
	if err := persistence.AutoMigrate(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("lapsetrack: migrate: %w", err)
	}

	collectors := cfg.collectors
	if collectors == nil {
		collectors = map[string]wellrecord.Collector{}
		for code, stateCfg := range cfg.stateConfigs {
			scraper, err := collector.NewScraper(stateCfg, collector.WithLogger(cfg.logger))
			if err != nil {
				_ = db.Close()
				return nil, fmt.Errorf("lapsetrack: state %s: %w", code, err)
			}
			collectors[code] = scraper
		}
	}

	m := metrics.New()
	gateway := persistence.NewWellRecordStore(db)
	records := service.NewRecords(gateway, collectors,
		service.WithMaxRecordAge(cfg.maxRecordAge),
		service.WithMetrics(m),
		service.WithLogger(cfg.logger),
	)
	reports := service.NewReports(
		service.WithBetween(cfg.between),
		service.WithDurations(cfg.showDays, cfg.showMonths),
		service.WithMinGapDays(cfg.minGapDays),
	)

	return &Client{
		records: records,
		reports: reports,
		db:      db,
		metrics: m,
		logger:  cfg.logger,
	}, nil
}

// Records returns the well record service.
func (c *Client) Records() *service.Records { return c.records }

// Reports returns the report service.
func (c *Client) Reports() *service.Reports { return c.reports }

// Metrics returns the Prometheus metrics.
func (c *Client) Metrics() *metrics.Metrics { return c.metrics }

// Logger returns the client's logger.
func (c *Client) Logger() *slog.Logger { return c.logger }

// Ping verifies the record store is reachable.
func (c *Client) Ping(ctx context.Context) error {
	c.mu.Lock()
	closed := c.closed
	c.mu.Unlock()
	if closed {
		return ErrClientClosed
	}
	return c.db.Ping(ctx)
}

// Close releases the record store. The client cannot be used afterwards.
func (c *Client) Close() error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return nil
	}
	c.closed = true
	return c.db.Close()
}
