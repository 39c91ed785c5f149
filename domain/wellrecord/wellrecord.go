package wellrecord

import (
	"fmt"
	"sort"
	"time"
)

// WellRecord holds the production history for a single well: its overall
// span of available records and, per counting-rule category, the date ranges
// during which production did not qualify. A category may be registered with
// no ranges at all; that is distinct from the category not being registered,
// and gap research treats the two differently.
//
// FirstDate and LastDate are both set or both unset (the zero time); the
// gap-intersection algorithm rejects records that violate this.
type WellRecord struct {
	apiNum           string
	wellName         string
	firstDate        time.Time
	lastDate         time.Time
	recordAccessDate time.Time
	dateRanges       map[string]DateRangeGroup
}

// NewWellRecord creates a record for the well with the given API number,
// with no categories registered.
func NewWellRecord(apiNum string) *WellRecord {
	return &WellRecord{
		apiNum:     apiNum,
		dateRanges: map[string]DateRangeGroup{},
	}
}

// ReconstructWellRecord rebuilds a record from persisted fields. Unset dates
// are passed as the zero time.
func ReconstructWellRecord(apiNum, wellName string, firstDate, lastDate, recordAccessDate time.Time) *WellRecord {
	return &WellRecord{
		apiNum:           apiNum,
		wellName:         wellName,
		firstDate:        firstDate,
		lastDate:         lastDate,
		recordAccessDate: recordAccessDate,
		dateRanges:       map[string]DateRangeGroup{},
	}
}

// APINum returns the unique API number identifying the well.
func (w *WellRecord) APINum() string { return w.apiNum }

// WellName returns the well name, or the empty string if unknown.
func (w *WellRecord) WellName() string { return w.wellName }

// SetWellName sets the well name.
func (w *WellRecord) SetWellName(name string) { w.wellName = name }

// FirstDate returns the first date of available production records, or the
// zero time if the well has no reported production.
func (w *WellRecord) FirstDate() time.Time { return w.firstDate }

// LastDate returns the last date of available production records, or the
// zero time if the well has no reported production.
func (w *WellRecord) LastDate() time.Time { return w.lastDate }

// SetProductionSpan records the overall span of available production
// records. Returns ErrInvalidRange if first falls after last.
func (w *WellRecord) SetProductionSpan(first, last time.Time) error {
	first = truncateToDate(first)
	last = truncateToDate(last)
	if first.After(last) {
		return fmt.Errorf("%w: production span %s > %s",
			ErrInvalidRange, first.Format(dateLayout), last.Format(dateLayout))
	}
	w.firstDate = first
	w.lastDate = last
	return nil
}

// RecordAccessDate returns the date the production records were pulled from
// their official source, or the zero time if unknown.
func (w *WellRecord) RecordAccessDate() time.Time { return w.recordAccessDate }

// SetRecordAccessDate records when the production records were pulled.
func (w *WellRecord) SetRecordAccessDate(d time.Time) {
	w.recordAccessDate = truncateToDate(d)
}

// RegisterDateRange adds a date range to the given category, registering the
// category if needed.
func (w *WellRecord) RegisterDateRange(r DateRange, category string) error {
	group := w.dateRanges[category]
	if err := group.Add(r); err != nil {
		return err
	}
	w.dateRanges[category] = group
	return nil
}

// RegisterEmptyCategory registers the category without adding any ranges.
// Registering an already-registered category has no effect.
func (w *WellRecord) RegisterEmptyCategory(category string) {
	if _, ok := w.dateRanges[category]; !ok {
		w.dateRanges[category] = DateRangeGroup{}
	}
}

// HasCategory reports whether the category has been registered, with or
// without ranges.
func (w *WellRecord) HasCategory(category string) bool {
	_, ok := w.dateRanges[category]
	return ok
}

// RegisteredCategories returns the registered category names, sorted.
func (w *WellRecord) RegisteredCategories() []string {
	categories := make([]string, 0, len(w.dateRanges))
	for category := range w.dateRanges {
		categories = append(categories, category)
	}
	sort.Strings(categories)
	return categories
}

// DateRangesByCategory returns a copy of the group registered under the
// category. An unregistered category yields an empty group; use HasCategory
// to tell the two apart.
func (w *WellRecord) DateRangesByCategory(category string) DateRangeGroup {
	return NewDateRangeGroup(w.dateRanges[category].ranges...)
}

// String identifies the record in logs.
func (w *WellRecord) String() string {
	name := w.wellName
	if name == "" {
		name = "No Name"
	}
	return fmt.Sprintf("WellRecord<%q (%s)>", name, w.apiNum)
}
