// Package analyzer provides multi-well gap analysis: given a group of well
// records, it finds the periods during which every well in the group was
// simultaneously non-qualifying under a given counting rule.
package analyzer

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/lapsetrack/lapsetrack/domain/wellrecord"
)

// Sentinel errors for gap research. Both are synchronous validation
// failures surfaced to the caller with no retry.
var (
	// ErrMissingCategory indicates a gap category that is not registered on
	// every member of the group. Absence of data is never silently treated
	// as "no gap".
	ErrMissingCategory = errors.New("category not registered on every well in the group")

	// ErrInconsistentRecord indicates a record with exactly one of its span
	// endpoints set, which signals an upstream data integrity problem.
	ErrInconsistentRecord = errors.New("well record has only one of first/last production date")
)

// WellGroup is an ordered collection of well records researched together,
// typically the wells on a single lease. Gap results are cached per category
// as they are computed.
type WellGroup struct {
	records        []*wellrecord.WellRecord
	researchedGaps map[string]wellrecord.DateRangeGroup
}

// NewWellGroup creates an empty well group.
func NewWellGroup() *WellGroup {
	return &WellGroup{
		researchedGaps: map[string]wellrecord.DateRangeGroup{},
	}
}

// AddWellRecord appends a record to the group.
func (g *WellGroup) AddWellRecord(record *wellrecord.WellRecord) {
	g.records = append(g.records, record)
}

// WellRecords returns the member records in the order they were added.
func (g *WellGroup) WellRecords() []*wellrecord.WellRecord {
	records := make([]*wellrecord.WellRecord, len(g.records))
	copy(records, g.records)
	return records
}

// Len returns the number of member records.
func (g *WellGroup) Len() int { return len(g.records) }

// FirstDate returns the earliest first production date across the member
// records, or the zero time if no record has a span.
func (g *WellGroup) FirstDate() time.Time {
	var first time.Time
	for _, r := range g.records {
		d := r.FirstDate()
		if d.IsZero() {
			continue
		}
		if first.IsZero() || d.Before(first) {
			first = d
		}
	}
	return first
}

// LastDate returns the latest last production date across the member
// records, or the zero time if no record has a span.
func (g *WellGroup) LastDate() time.Time {
	var last time.Time
	for _, r := range g.records {
		d := r.LastDate()
		if d.IsZero() {
			continue
		}
		if last.IsZero() || d.After(last) {
			last = d
		}
	}
	return last
}

// SharedCategories returns the categories registered on every member
// record, sorted. An empty group shares no categories.
func (g *WellGroup) SharedCategories() []string {
	if len(g.records) == 0 {
		return nil
	}
	var shared []string
	for _, category := range g.records[0].RegisteredCategories() {
		onAll := true
		for _, r := range g.records[1:] {
			if !r.HasCategory(category) {
				onAll = false
				break
			}
		}
		if onAll {
			shared = append(shared, category)
		}
	}
	sort.Strings(shared)
	return shared
}

// FindGaps computes the periods during which every well in the group was
// simultaneously non-qualifying under the given category, and caches the
// result on the group.
//
// Each well's gap set is first normalized to the group's overall span:
// any part of the overall span falling outside the well's own record window
// is treated as a gap for that well, since the well could not have produced
// before it existed or after its records end. Skipping this padding would
// wrongly exclude true shared gaps whenever wells have unequal observation
// windows. The normalized sets are then intersected in member order,
// stopping early once the running intersection is empty — intersection only
// ever shrinks.
//
// The category must be registered on every member (ErrMissingCategory
// otherwise), and each member's span endpoints must be both set or both
// unset (ErrInconsistentRecord otherwise). A record with no span contributes
// no date-bounded constraint and is skipped.
func (g *WellGroup) FindGaps(category string) (wellrecord.DateRangeGroup, error) {
	overallFirst := g.FirstDate()
	overallLast := g.LastDate()

	for _, r := range g.records {
		if !r.HasCategory(category) {
			return wellrecord.DateRangeGroup{}, fmt.Errorf(
				"well %s, category %q: %w", r.APINum(), category, ErrMissingCategory)
		}
	}

	var running wellrecord.DateRangeGroup
	seeded := false
	for _, r := range g.records {
		first, last := r.FirstDate(), r.LastDate()
		if first.IsZero() != last.IsZero() {
			return wellrecord.DateRangeGroup{}, fmt.Errorf(
				"well %s: %w", r.APINum(), ErrInconsistentRecord)
		}
		if first.IsZero() {
			// No record window, so no date-bounded constraint.
			continue
		}

		gaps := r.DateRangesByCategory(category)
		if err := padToSpan(&gaps, first, last, overallFirst, overallLast); err != nil {
			return wellrecord.DateRangeGroup{}, fmt.Errorf("well %s: %w", r.APINum(), err)
		}

		if !seeded {
			running = gaps
			seeded = true
			continue
		}
		if running.Empty() {
			break
		}
		running = running.FindAllOverlaps(gaps)
	}

	running.MergeAll(0)
	g.researchedGaps[category] = running
	return running, nil
}

// ResearchedGaps returns the cached gap results by category. Only categories
// that have been researched via FindGaps appear.
func (g *WellGroup) ResearchedGaps() map[string]wellrecord.DateRangeGroup {
	gaps := make(map[string]wellrecord.DateRangeGroup, len(g.researchedGaps))
	for category, group := range g.researchedGaps {
		gaps[category] = group
	}
	return gaps
}

// GapsFor returns the cached gap result for the category, if it has been
// researched.
func (g *WellGroup) GapsFor(category string) (wellrecord.DateRangeGroup, bool) {
	gaps, ok := g.researchedGaps[category]
	return gaps, ok
}

// padToSpan appends synthetic gaps covering the parts of the overall span
// that fall outside the well's own record window.
func padToSpan(gaps *wellrecord.DateRangeGroup, first, last, overallFirst, overallLast time.Time) error {
	if overallFirst.Before(first) {
		leading, err := wellrecord.NewDateRange(overallFirst, first.AddDate(0, 0, -1))
		if err != nil {
			return err
		}
		if err := gaps.Add(leading); err != nil {
			return err
		}
	}
	if overallLast.After(last) {
		trailing, err := wellrecord.NewDateRange(last.AddDate(0, 0, 1), overallLast)
		if err != nil {
			return err
		}
		if err := gaps.Add(trailing); err != nil {
			return err
		}
	}
	return nil
}
