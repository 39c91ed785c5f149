package collector

import (
	"errors"
	"fmt"
	"sort"
	"strconv"
	"strings"
	"time"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
)

// ErrBadTable indicates a production table whose rows cannot be read with
// the state's configured columns.
var ErrBadTable = errors.New("unreadable production table")

// monthly is one calendar month of reported production, aggregated across
// formations when the regulator reports them separately.
type monthly struct {
	month  time.Time
	oil    float64
	gas    float64
	shutin bool
}

// Regulators disagree on date rendering.
var dateLayouts = []string{
	"1/2/2006",
	"01/02/2006",
	"2006-01-02",
	"1/2006",
	"01/2006",
	"Jan 2006",
	"Jan-2006",
}

func parseMonthDate(s string) (time.Time, error) {
	for _, layout := range dateLayouts {
		if t, err := time.ParseInLocation(layout, s, time.UTC); err == nil {
			return monthStart(t), nil
		}
	}
	return time.Time{}, fmt.Errorf("%w: unrecognized date %q", ErrBadTable, s)
}

func parseAmount(s string) (float64, error) {
	s = strings.TrimSpace(strings.ReplaceAll(s, ",", ""))
	if s == "" || s == "-" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("%w: unrecognized amount %q", ErrBadTable, s)
	}
	return v, nil
}

// parseMonthlies turns raw table rows into one aggregated entry per calendar
// month, sorted ascending. Colorado reports a row per formation per month;
// production sums and a month is shut-in only when a formation reports a
// shut-in status.
func parseMonthlies(records []map[string]string, cfg StateConfig) ([]monthly, error) {
	byMonth := make(map[time.Time]*monthly)
	for _, record := range records {
		month, err := parseMonthDate(record[cfg.DateCol])
		if err != nil {
			return nil, err
		}
		oil, err := parseAmount(record[cfg.OilProdCol])
		if err != nil {
			return nil, err
		}
		gas, err := parseAmount(record[cfg.GasProdCol])
		if err != nil {
			return nil, err
		}

		entry, ok := byMonth[month]
		if !ok {
			entry = &monthly{month: month}
			byMonth[month] = entry
		}
		entry.oil += oil
		entry.gas += gas
		if cfg.StatusCol != "" && isShutinStatus(record[cfg.StatusCol], cfg.ShutinCodes) {
			entry.shutin = true
		}
	}

	monthlies := make([]monthly, 0, len(byMonth))
	for _, entry := range byMonth {
		monthlies = append(monthlies, *entry)
	}
	sort.Slice(monthlies, func(i, j int) bool {
		return monthlies[i].month.Before(monthlies[j].month)
	})
	return monthlies, nil
}

func isShutinStatus(status string, codes []string) bool {
	status = strings.TrimSpace(status)
	for _, code := range codes {
		if strings.EqualFold(status, code) {
			return true
		}
	}
	return false
}

// producing reports whether the month's output exceeds the configured
// thresholds.
func (m monthly) producing(cfg StateConfig) bool {
	return m.oil > cfg.OilProdMin || m.gas > cfg.GasProdMin
}

// monthGaps walks every calendar month between the first and last reported
// month and compacts runs of non-producing months into date ranges. Months
// absent from the table count as non-producing. When shutinCounts is set,
// shut-in months count as producing and do not open or extend a gap.
func monthGaps(monthlies []monthly, cfg StateConfig, shutinCounts bool) ([]wellrecord.DateRange, error) {
	if len(monthlies) == 0 {
		return nil, nil
	}

	byMonth := make(map[time.Time]monthly, len(monthlies))
	for _, m := range monthlies {
		byMonth[m.month] = m
	}

	var gaps []wellrecord.DateRange
	var gapStart time.Time
	inGap := false

	first := monthlies[0].month
	last := monthlies[len(monthlies)-1].month
	for month := first; !month.After(last); month = month.AddDate(0, 1, 0) {
		entry, reported := byMonth[month]
		active := reported && (entry.producing(cfg) || (shutinCounts && entry.shutin))

		switch {
		case !active && !inGap:
			gapStart = month
			inGap = true
		case active && inGap:
			gap, err := wellrecord.NewDateRange(gapStart, monthEnd(month.AddDate(0, -1, 0)))
			if err != nil {
				return nil, err
			}
			gaps = append(gaps, gap)
			inGap = false
		}
	}
	if inGap {
		gap, err := wellrecord.NewDateRange(gapStart, monthEnd(last))
		if err != nil {
			return nil, err
		}
		gaps = append(gaps, gap)
	}
	return gaps, nil
}

func monthStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}

func monthEnd(t time.Time) time.Time {
	return monthStart(t).AddDate(0, 1, -1)
}
