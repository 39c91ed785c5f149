package collector

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
)

var (
	// ErrAuthRequired indicates the state's records sit behind a login and
	// no credentials were configured.
	ErrAuthRequired = errors.New("state records require authentication")
	// ErrMissingParam indicates a collect request lacking a parameter the
	// state's URL scheme needs.
	ErrMissingParam = errors.New("missing url parameter")
	// ErrFetch indicates the regulator website could not be read.
	ErrFetch = errors.New("failed to fetch production records")
)

// Scraper collects well records by scraping a state regulator's monthly
// production tables. It implements wellrecord.Collector.
type Scraper struct {
	cfg      StateConfig
	client   *http.Client
	username string
	password string
	logger   *slog.Logger
	now      func() time.Time
}

// ScraperOption configures a Scraper.
type ScraperOption func(*Scraper)

// WithHTTPClient sets the HTTP client used to reach the regulator website.
func WithHTTPClient(client *http.Client) ScraperOption {
	return func(s *Scraper) { s.client = client }
}

// WithBasicAuth sets credentials for states whose records require a login.
func WithBasicAuth(username, password string) ScraperOption {
	return func(s *Scraper) {
		s.username = username
		s.password = password
	}
}

// WithLogger sets the logger.
func WithLogger(logger *slog.Logger) ScraperOption {
	return func(s *Scraper) { s.logger = logger }
}

// WithClock overrides the time source used for record access dates.
func WithClock(now func() time.Time) ScraperOption {
	return func(s *Scraper) { s.now = now }
}

// NewScraper creates a Scraper for one state.
func NewScraper(cfg StateConfig, opts ...ScraperOption) (*Scraper, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	s := &Scraper{
		cfg:    cfg,
		client: &http.Client{Timeout: 30 * time.Second},
		logger: slog.Default(),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s, nil
}

// State returns the API state code this scraper serves.
func (s *Scraper) State() string {
	return s.cfg.StateCode
}

// Collect scrapes the well's production records and classifies its gap
// months under the standard categories. A well with no reported production
// yields a record with empty categories and no production span.
func (s *Scraper) Collect(ctx context.Context, req wellrecord.CollectRequest) (*wellrecord.WellRecord, error) {
	if s.cfg.RequiresAuth && s.username == "" {
		return nil, fmt.Errorf("%s: %w", s.cfg.Name, ErrAuthRequired)
	}

	url := req.URL
	if url == "" {
		var err error
		url, err = s.buildURL(req)
		if err != nil {
			return nil, err
		}
	}

	s.logger.Debug("fetching production records", "api_num", req.APINum, "url", url)
	rows, err := s.fetch(ctx, url)
	if err != nil {
		return nil, err
	}

	record := wellrecord.NewWellRecord(req.APINum)
	record.SetWellName(req.WellName)
	record.SetRecordAccessDate(s.now())

	if len(rows) == 0 {
		s.logger.Info("no production reported", "api_num", req.APINum)
		record.RegisterEmptyCategory(wellrecord.CategoryNoProdIgnoreShutin)
		if s.cfg.TracksShutin() {
			record.RegisterEmptyCategory(wellrecord.CategoryNoProdButShutinCounts)
		}
		return record, nil
	}

	monthlies, err := parseMonthlies(rows, s.cfg)
	if err != nil {
		return nil, fmt.Errorf("production table for %s: %w", req.APINum, err)
	}

	first := monthlies[0].month
	last := monthEnd(monthlies[len(monthlies)-1].month)
	if err := record.SetProductionSpan(first, last); err != nil {
		return nil, err
	}

	if err := s.registerGaps(record, monthlies, wellrecord.CategoryNoProdIgnoreShutin, false); err != nil {
		return nil, err
	}
	if s.cfg.TracksShutin() {
		if err := s.registerGaps(record, monthlies, wellrecord.CategoryNoProdButShutinCounts, true); err != nil {
			return nil, err
		}
	}

	s.logger.Info("collected well record",
		"api_num", req.APINum,
		"first_date", first.Format("2006-01-02"),
		"last_date", last.Format("2006-01-02"),
		"months", len(monthlies),
	)
	return record, nil
}

func (s *Scraper) registerGaps(record *wellrecord.WellRecord, monthlies []monthly, category string, shutinCounts bool) error {
	record.RegisterEmptyCategory(category)
	gaps, err := monthGaps(monthlies, s.cfg, shutinCounts)
	if err != nil {
		return err
	}
	for _, gap := range gaps {
		if err := record.RegisterDateRange(gap, category); err != nil {
			return err
		}
	}
	return nil
}

// buildURL fills the state's URL template from the request, following the
// configured parameter sources.
func (s *Scraper) buildURL(req wellrecord.CollectRequest) (string, error) {
	args := make([]any, 0, len(s.cfg.URLParams))
	for _, param := range s.cfg.URLParams {
		switch {
		case param == ParamAPICounty, param == ParamAPISequence:
			if !wellrecord.ValidateAPINum(req.APINum) {
				return "", fmt.Errorf("%w: malformed api number %q", ErrMissingParam, req.APINum)
			}
			components := strings.Split(req.APINum, "-")
			if param == ParamAPICounty {
				args = append(args, components[1])
			} else {
				args = append(args, components[2])
			}
		case strings.HasPrefix(param, extraParamPrefix):
			key := strings.TrimPrefix(param, extraParamPrefix)
			value, ok := req.Extra[key]
			if !ok || value == "" {
				return "", fmt.Errorf("%w: %s requires %q", ErrMissingParam, s.cfg.Name, key)
			}
			args = append(args, value)
		}
	}
	return fmt.Sprintf(s.cfg.ProdURLTemplate, args...), nil
}

func (s *Scraper) fetch(ctx context.Context, url string) ([]map[string]string, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	if s.username != "" {
		httpReq.SetBasicAuth(s.username, s.password)
	}

	resp, err := s.client.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: %s returned %s", ErrFetch, url, resp.Status)
	}

	rows, err := parseProductionTable(resp.Body, s.cfg.DateCol)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrFetch, err)
	}
	return rows, nil
}
