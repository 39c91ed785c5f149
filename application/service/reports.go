package service

import (
	"fmt"
	"strings"

	"github.com/lapsetrack/lapsetrack/domain/analyzer"
	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
)

const noProductionReported = "No production reported"

// DateRangeGroupSummary reports a group of date ranges.
type DateRangeGroupSummary struct {
	Description string   `json:"description"`
	LongestDays int      `json:"longest_days"`
	DateRanges  []string `json:"date_ranges"`
}

// WellRecordSummary reports one well's production history and gaps.
type WellRecordSummary struct {
	APINum           string                           `json:"api_num"`
	WellName         string                           `json:"well_name"`
	StateName        string                           `json:"state_name"`
	FirstDate        string                           `json:"first_date"`
	LastDate         string                           `json:"last_date"`
	RecordAccessDate string                           `json:"record_access_date"`
	DateRanges       map[string]DateRangeGroupSummary `json:"date_ranges"`
}

// WellGroupSummary reports a group of wells and the production gaps shared
// by every well in the group.
type WellGroupSummary struct {
	WellCount      int                              `json:"well_count"`
	APINums        []string                         `json:"api_nums"`
	EarliestDate   string                           `json:"earliest_reported_date"`
	LatestDate     string                           `json:"latest_reported_date"`
	ResearchedGaps map[string]DateRangeGroupSummary `json:"researched_gaps"`
	WellRecords    []WellRecordSummary              `json:"well_records"`
}

// Reports renders well records and researched groups into JSON-ready
// summaries.
type Reports struct {
	between    string
	showDays   bool
	showMonths bool
	minGapDays int
}

// ReportsOption configures a Reports service.
type ReportsOption func(*Reports)

// WithBetween sets the separator between the start and end date of each
// summarized range.
func WithBetween(between string) ReportsOption {
	return func(s *Reports) { s.between = between }
}

// WithDurations controls whether each summarized range carries its duration
// in days and in calendar months.
func WithDurations(days, months bool) ReportsOption {
	return func(s *Reports) {
		s.showDays = days
		s.showMonths = months
	}
}

// WithMinGapDays drops researched gaps shorter than the given number of days
// from group summaries. Zero keeps every gap.
func WithMinGapDays(days int) ReportsOption {
	return func(s *Reports) { s.minGapDays = days }
}

// NewReports creates a Reports service.
func NewReports(opts ...ReportsOption) *Reports {
	s := &Reports{between: "::"}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// SummarizeDateRange renders one range, optionally with its durations, e.g.
// "2001-04-01::2001-09-30 (183 days; 6 calendar months)".
func (s *Reports) SummarizeDateRange(r wellrecord.DateRange) string {
	summary := r.Start().Format("2006-01-02") + s.between + r.End().Format("2006-01-02")

	var extra []string
	if s.showDays {
		extra = append(extra, fmt.Sprintf("%d days", r.DurationInDays()))
	}
	if s.showMonths {
		extra = append(extra, fmt.Sprintf("%d calendar months", r.DurationInMonths()))
	}
	if len(extra) > 0 {
		summary += " (" + strings.Join(extra, "; ") + ")"
	}
	return summary
}

// SummarizeGroup renders a group of date ranges with its longest duration.
func (s *Reports) SummarizeGroup(g wellrecord.DateRangeGroup, description string) DateRangeGroupSummary {
	_, longest := g.ShortestAndLongestDurations()
	ranges := make([]string, 0, g.Len())
	for _, r := range g.Ranges() {
		ranges = append(ranges, s.SummarizeDateRange(r))
	}
	return DateRangeGroupSummary{
		Description: description,
		LongestDays: longest,
		DateRanges:  ranges,
	}
}

// SummarizeWellRecord renders one well record.
func (s *Reports) SummarizeWellRecord(record *wellrecord.WellRecord) WellRecordSummary {
	summary := WellRecordSummary{
		APINum:           record.APINum(),
		WellName:         record.WellName(),
		StateName:        wellrecord.StateName(record.APINum()),
		FirstDate:        noProductionReported,
		LastDate:         noProductionReported,
		RecordAccessDate: "Unknown",
		DateRanges:       map[string]DateRangeGroupSummary{},
	}
	if summary.WellName == "" {
		summary.WellName = "Unknown"
	}
	if !record.FirstDate().IsZero() {
		summary.FirstDate = record.FirstDate().Format("2006-01-02")
	}
	if !record.LastDate().IsZero() {
		summary.LastDate = record.LastDate().Format("2006-01-02")
	}
	if !record.RecordAccessDate().IsZero() {
		summary.RecordAccessDate = record.RecordAccessDate().Format("2006-01-02")
	}
	for _, category := range record.RegisteredCategories() {
		summary.DateRanges[category] = s.SummarizeGroup(
			record.DateRangesByCategory(category),
			wellrecord.DescribeCategory(category),
		)
	}
	return summary
}

// SummarizeWellGroup renders a researched group: its span, every member
// record, and the gaps found under each researched category. Gaps shorter
// than the configured minimum are dropped.
func (s *Reports) SummarizeWellGroup(group *analyzer.WellGroup) WellGroupSummary {
	summary := WellGroupSummary{
		WellCount:      group.Len(),
		APINums:        make([]string, 0, group.Len()),
		EarliestDate:   noProductionReported,
		LatestDate:     noProductionReported,
		ResearchedGaps: map[string]DateRangeGroupSummary{},
	}
	if !group.FirstDate().IsZero() {
		summary.EarliestDate = group.FirstDate().Format("2006-01-02")
	}
	if !group.LastDate().IsZero() {
		summary.LatestDate = group.LastDate().Format("2006-01-02")
	}
	for category, gaps := range group.ResearchedGaps() {
		if s.minGapDays > 0 {
			gaps = gaps.FilterByMinimumDuration(s.minGapDays)
		}
		summary.ResearchedGaps[category] = s.SummarizeGroup(gaps, wellrecord.DescribeCategory(category))
	}
	for _, record := range group.WellRecords() {
		summary.APINums = append(summary.APINums, record.APINum())
		summary.WellRecords = append(summary.WellRecords, s.SummarizeWellRecord(record))
	}
	return summary
}
