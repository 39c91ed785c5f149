package wellrecord

import (
	"fmt"
	"sort"
	"strings"
)

// DateRangeGroup is an ordered collection of DateRange values. Order carries
// no meaning until Sort or MergeAll is called. After MergeAll, no two members
// overlap or fall within the merge tolerance of each other — the collection
// is in its maximal reduced form.
type DateRangeGroup struct {
	ranges []DateRange
}

// NewDateRangeGroup creates a group holding the given ranges.
func NewDateRangeGroup(ranges ...DateRange) DateRangeGroup {
	rs := make([]DateRange, len(ranges))
	copy(rs, ranges)
	return DateRangeGroup{ranges: rs}
}

// Add appends a range to the group. The zero DateRange represents "no range"
// and is rejected with ErrInvalidRange.
func (g *DateRangeGroup) Add(r DateRange) error {
	if r.IsZero() {
		return fmt.Errorf("%w: cannot add the zero range", ErrInvalidRange)
	}
	g.ranges = append(g.ranges, r)
	return nil
}

// Ranges returns a copy of the member ranges in their current order.
func (g DateRangeGroup) Ranges() []DateRange {
	rs := make([]DateRange, len(g.ranges))
	copy(rs, g.ranges)
	return rs
}

// Len returns the number of member ranges.
func (g DateRangeGroup) Len() int { return len(g.ranges) }

// Empty reports whether the group has no member ranges.
func (g DateRangeGroup) Empty() bool { return len(g.ranges) == 0 }

// Sort orders the members by end date ascending, breaking ties by start
// date ascending. The sort is stable.
func (g *DateRangeGroup) Sort() {
	sort.SliceStable(g.ranges, func(i, j int) bool {
		if !g.ranges[i].end.Equal(g.ranges[j].end) {
			return g.ranges[i].end.Before(g.ranges[j].end)
		}
		return g.ranges[i].start.Before(g.ranges[j].start)
	})
}

// MergeAll reduces the group to the smallest set of ranges that covers the
// same dates, combining any members that overlap or fall within
// toleranceDays of each other. A single left-to-right scan over the
// start-ordered members produces the maximal merge; the result is left in
// sorted order.
func (g *DateRangeGroup) MergeAll(toleranceDays int) {
	if len(g.ranges) < 2 {
		g.Sort()
		return
	}
	sort.SliceStable(g.ranges, func(i, j int) bool {
		if !g.ranges[i].start.Equal(g.ranges[j].start) {
			return g.ranges[i].start.Before(g.ranges[j].start)
		}
		return g.ranges[i].end.Before(g.ranges[j].end)
	})

	merged := make([]DateRange, 0, len(g.ranges))
	current := g.ranges[0]
	for _, next := range g.ranges[1:] {
		if current.IsContiguousWith(next, toleranceDays) {
			current = current.MergeWith(next, toleranceDays)[0]
			continue
		}
		merged = append(merged, current)
		current = next
	}
	merged = append(merged, current)

	g.ranges = merged
	g.Sort()
}

// SubtractFromAll removes the days covered by r from every member range,
// flattens the results, and re-sorts. The subtracted range itself is never
// added to the group.
func (g *DateRangeGroup) SubtractFromAll(r DateRange) {
	remaining := make([]DateRange, 0, len(g.ranges))
	for _, member := range g.ranges {
		remaining = append(remaining, member.Subtract(r)...)
	}
	g.ranges = remaining
	g.Sort()
}

// FindAllOverlaps returns a new group holding every period covered by both
// this group and the other. If either group is empty the result is empty.
// Overlaps are computed pairwise and then merged with zero tolerance, so
// overlapping pieces coalesce while day-adjacent pieces stay separate.
func (g DateRangeGroup) FindAllOverlaps(other DateRangeGroup) DateRangeGroup {
	if g.Empty() || other.Empty() {
		return DateRangeGroup{}
	}
	var overlaps []DateRange
	for _, b := range other.ranges {
		for _, a := range g.ranges {
			if overlap, ok := a.FindOverlap(b); ok {
				overlaps = append(overlaps, overlap)
			}
		}
	}
	result := DateRangeGroup{ranges: overlaps}
	result.MergeAll(0)
	return result
}

// FilterByMinimumDuration returns a new group holding only the member
// ranges lasting at least the given number of days.
func (g DateRangeGroup) FilterByMinimumDuration(days int) DateRangeGroup {
	var kept []DateRange
	for _, r := range g.ranges {
		if r.DurationInDays() >= days {
			kept = append(kept, r)
		}
	}
	return DateRangeGroup{ranges: kept}
}

// ShortestAndLongestDurations returns the shortest and longest member
// durations in days. An empty group yields (0, 0); that is a documented
// result, not an error.
func (g DateRangeGroup) ShortestAndLongestDurations() (shortest, longest int) {
	for i, r := range g.ranges {
		d := r.DurationInDays()
		if i == 0 || d < shortest {
			shortest = d
		}
		if d > longest {
			longest = d
		}
	}
	return shortest, longest
}

// Equal reports whether both groups hold the same ranges in the same order.
func (g DateRangeGroup) Equal(other DateRangeGroup) bool {
	if len(g.ranges) != len(other.ranges) {
		return false
	}
	for i := range g.ranges {
		if !g.ranges[i].Equal(other.ranges[i]) {
			return false
		}
	}
	return true
}

// String returns the member ranges joined by commas, for logs and debugging.
func (g DateRangeGroup) String() string {
	parts := make([]string, len(g.ranges))
	for i, r := range g.ranges {
		parts[i] = r.String()
	}
	return "[" + strings.Join(parts, ", ") + "]"
}
