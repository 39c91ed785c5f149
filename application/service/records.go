package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/lapsetrack/lapsetrack/domain/analyzer"
	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
	"github.com/lapsetrack/lapsetrack/internal/metrics"
)

// Record sources for metrics labels.
const (
	sourceStore     = "store"
	sourceCollector = "collector"
)

// groupCollectLimit caps concurrent regulator requests when assembling a
// well group. Regulator sites are slow and unhappy about being hammered.
const groupCollectLimit = 4

// Records resolves well records, preferring stored records over scraping.
// A stored record older than maxRecordAge is re-collected from the state's
// public records and the stored copy replaced.
type Records struct {
	gateway      wellrecord.Gateway
	collectors   map[string]wellrecord.Collector
	maxRecordAge time.Duration
	metrics      *metrics.Metrics
	logger       *slog.Logger
	now          func() time.Time
}

// RecordsOption configures a Records service.
type RecordsOption func(*Records)

// WithMaxRecordAge sets how old a stored record may be before it is
// considered stale.
func WithMaxRecordAge(age time.Duration) RecordsOption {
	return func(s *Records) { s.maxRecordAge = age }
}

// WithMetrics sets the metrics sink.
func WithMetrics(m *metrics.Metrics) RecordsOption {
	return func(s *Records) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) RecordsOption {
	return func(s *Records) { s.logger = logger }
}

// WithClock overrides the time source used for staleness checks.
func WithClock(now func() time.Time) RecordsOption {
	return func(s *Records) { s.now = now }
}

// NewRecords creates a Records service. Collectors are keyed by two-digit
// API state code.
func NewRecords(gateway wellrecord.Gateway, collectors map[string]wellrecord.Collector, opts ...RecordsOption) *Records {
	s := &Records{
		gateway:      gateway,
		collectors:   collectors,
		maxRecordAge: 3650 * 24 * time.Hour,
		logger:       slog.Default(),
		now:          time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Get resolves the well record for a request. A stored record that is still
// fresh is returned as-is; otherwise the state's collector pulls current
// public records and the store is updated. When collection fails but a stale
// stored record exists, the stale record is returned.
func (s *Records) Get(ctx context.Context, req wellrecord.CollectRequest) (*wellrecord.WellRecord, error) {
	if !wellrecord.ValidateAPINum(req.APINum) {
		return nil, fmt.Errorf("%w: %q", ErrInvalidAPINum, req.APINum)
	}

	state := wellrecord.StateCode(req.APINum)
	started := s.now()

	stored, err := s.gateway.Find(ctx, req.APINum)
	switch {
	case err == nil:
		if s.isFresh(stored) {
			s.observe(state, sourceStore, started)
			s.logger.Debug("using stored well record", "api_num", req.APINum)
			return stored, nil
		}
		s.logger.Info("stored well record is stale",
			"api_num", req.APINum,
			"record_access_date", stored.RecordAccessDate().Format("2006-01-02"),
		)
	case errors.Is(err, wellrecord.ErrNotFound):
		stored = nil
	default:
		return nil, err
	}

	collected, err := s.collect(ctx, state, req)
	if err != nil {
		if stored != nil {
			s.logger.Warn("collection failed, falling back to stale record",
				"api_num", req.APINum, "error", err)
			s.observe(state, sourceStore, started)
			return stored, nil
		}
		return nil, err
	}

	if stored == nil {
		err = s.gateway.Insert(ctx, collected)
	} else {
		err = s.gateway.Update(ctx, collected)
	}
	if err != nil {
		return nil, err
	}

	s.observe(state, sourceCollector, started)
	return collected, nil
}

// GetGroup resolves every requested well concurrently and assembles them
// into a group for gap research. Order of the requests is preserved.
func (s *Records) GetGroup(ctx context.Context, reqs []wellrecord.CollectRequest) (*analyzer.WellGroup, error) {
	records := make([]*wellrecord.WellRecord, len(reqs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(groupCollectLimit)
	for i, req := range reqs {
		eg.Go(func() error {
			record, err := s.Get(egCtx, req)
			if err != nil {
				return err
			}
			records[i] = record
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}

	group := analyzer.NewWellGroup()
	for _, record := range records {
		group.AddWellRecord(record)
	}
	return group, nil
}

// ResearchGaps resolves the group and researches its gaps under every
// category shared by all member wells.
func (s *Records) ResearchGaps(ctx context.Context, reqs []wellrecord.CollectRequest) (*analyzer.WellGroup, error) {
	group, err := s.GetGroup(ctx, reqs)
	if err != nil {
		return nil, err
	}
	for _, category := range group.SharedCategories() {
		if _, err := group.FindGaps(category); err != nil {
			return nil, fmt.Errorf("research gaps in category %s: %w", category, err)
		}
		if s.metrics != nil {
			s.metrics.GapSearchesTotal.WithLabelValues(category).Inc()
		}
	}
	return group, nil
}

// Forget removes the stored record for the API number.
func (s *Records) Forget(ctx context.Context, apiNum string) error {
	if !wellrecord.ValidateAPINum(apiNum) {
		return fmt.Errorf("%w: %q", ErrInvalidAPINum, apiNum)
	}
	return s.gateway.Delete(ctx, apiNum)
}

func (s *Records) isFresh(record *wellrecord.WellRecord) bool {
	accessed := record.RecordAccessDate()
	if accessed.IsZero() {
		return false
	}
	return s.now().Sub(accessed) <= s.maxRecordAge
}

func (s *Records) collect(ctx context.Context, state string, req wellrecord.CollectRequest) (*wellrecord.WellRecord, error) {
	collector, ok := s.collectors[state]
	if !ok {
		return nil, fmt.Errorf("%w: %s (%s)", ErrUnsupportedState, state, wellrecord.StateName(req.APINum))
	}
	record, err := collector.Collect(ctx, req)
	if err != nil {
		if s.metrics != nil {
			s.metrics.CollectErrorsTotal.WithLabelValues(state).Inc()
		}
		return nil, fmt.Errorf("collect well %s: %w", req.APINum, err)
	}
	return record, nil
}

func (s *Records) observe(state, source string, started time.Time) {
	if s.metrics == nil {
		return
	}
	s.metrics.RecordsPulledTotal.WithLabelValues(state, source).Inc()
	s.metrics.RecordAccessSeconds.WithLabelValues(state, source).Observe(s.now().Sub(started).Seconds())
}
