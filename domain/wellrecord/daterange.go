// Package wellrecord provides the well-record domain types: calendar date
// ranges, reducible collections of date ranges, and production records for
// individual wells.
package wellrecord

import (
	"fmt"
	"strings"
	"time"
)

// dateLayout is the serialization layout for a single calendar date.
const dateLayout = "2006-01-02"

// rangeSeparator joins the start and end dates in the serialized form of a
// DateRange ("2019-01-01::2020-12-31"). This is the interchange format used
// by the persistence gateway and is the only format ParseDateRange accepts.
const rangeSeparator = "::"

// DateRange is a period of time represented by start and end calendar dates,
// both inclusive. It is an immutable value type — every operation returns
// new instances and the invariant start <= end holds for every constructed
// range. Time-of-day and timezone are not meaningful; dates are stored at
// midnight UTC.
type DateRange struct {
	start time.Time
	end   time.Time
}

// NewDateRange creates a DateRange covering start through end, inclusive.
// Returns ErrInvalidRange if start falls after end.
func NewDateRange(start, end time.Time) (DateRange, error) {
	start = truncateToDate(start)
	end = truncateToDate(end)
	if start.After(end) {
		return DateRange{}, fmt.Errorf("%w: %s > %s",
			ErrInvalidRange, start.Format(dateLayout), end.Format(dateLayout))
	}
	return DateRange{start: start, end: end}, nil
}

// ParseDateRange creates a DateRange from its serialized form,
// "YYYY-MM-DD::YYYY-MM-DD". Any other separator or date layout fails with
// ErrFormat. String and ParseDateRange round-trip.
func ParseDateRange(s string) (DateRange, error) {
	parts := strings.Split(s, rangeSeparator)
	if len(parts) != 2 {
		return DateRange{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	start, err := time.ParseInLocation(dateLayout, parts[0], time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	end, err := time.ParseInLocation(dateLayout, parts[1], time.UTC)
	if err != nil {
		return DateRange{}, fmt.Errorf("%w: %q", ErrFormat, s)
	}
	return NewDateRange(start, end)
}

// Start returns the first date of the range.
func (r DateRange) Start() time.Time { return r.start }

// End returns the last date of the range.
func (r DateRange) End() time.Time { return r.end }

// IsZero reports whether the range is the zero value, which represents
// "no range" rather than a valid period.
func (r DateRange) IsZero() bool { return r.start.IsZero() && r.end.IsZero() }

// DurationInDays returns the duration in days, counting both the first and
// last dates.
func (r DateRange) DurationInDays() int {
	return int(r.end.Sub(r.start).Hours()/24) + 1
}

// DurationInMonths returns the duration in calendar months, counting both
// the first and last months. Any partial month counts as a whole month, so
// Jan 31 through Feb 1 is 2 months. Downstream reporting depends on this
// counting rule.
func (r DateRange) DurationInMonths() int {
	years := r.end.Year() - r.start.Year()
	months := int(r.end.Month()) - int(r.start.Month())
	return years*12 + months + 1
}

// IsContiguousWith reports whether the other range overlaps or is contiguous
// with this one. Two ranges that do not strictly overlap are still contiguous
// when they come within toleranceDays of each other; with the usual tolerance
// of 1, a range ending on one day is contiguous with a range beginning the
// next day. The predicate is symmetric.
func (r DateRange) IsContiguousWith(other DateRange, toleranceDays int) bool {
	if !addDays(r.start, -toleranceDays).After(other.end) &&
		!other.end.After(addDays(r.end, toleranceDays)) {
		return true
	}
	if !addDays(other.start, -toleranceDays).After(r.end) &&
		!r.end.After(addDays(other.end, toleranceDays)) {
		return true
	}
	return false
}

// Encompasses reports whether this range, expanded by toleranceDays on both
// ends, fully contains the other range. Containment is inclusive, so every
// range encompasses itself at zero tolerance.
func (r DateRange) Encompasses(other DateRange, toleranceDays int) bool {
	return !addDays(r.start, -toleranceDays).After(other.start) &&
		!addDays(r.end, toleranceDays).Before(other.end)
}

// MergeWith combines this range with the other if they are contiguous within
// toleranceDays, returning a single range spanning from the earliest start to
// the latest end. If they are not contiguous, both ranges are returned
// unchanged, in receiver-then-argument order.
func (r DateRange) MergeWith(other DateRange, toleranceDays int) []DateRange {
	if !r.IsContiguousWith(other, toleranceDays) {
		return []DateRange{r, other}
	}
	start := r.start
	if other.start.Before(start) {
		start = other.start
	}
	end := r.end
	if other.end.After(end) {
		end = other.end
	}
	return []DateRange{{start: start, end: end}}
}

// Subtract removes the days covered by other from this range, returning
// zero, one, or two ranges. Tolerance is zero throughout: touching ranges
// that do not share a day are left unchanged. Containment checks are
// inclusive so that subtracting a range sharing a boundary (or an identical
// range) removes exactly the shared days.
func (r DateRange) Subtract(other DateRange) []DateRange {
	switch {
	case !r.IsContiguousWith(other, 0):
		// No overlap, nothing to cut out.
		return []DateRange{r}
	case other.covers(r):
		// Complete overlap deletes the entire range.
		return nil
	case other.start.After(r.start) && other.end.Before(r.end):
		// Middle cut leaves a piece on each side.
		return []DateRange{
			{start: r.start, end: addDays(other.start, -1)},
			{start: addDays(other.end, 1), end: r.end},
		}
	case !other.start.After(r.start):
		// Front trim.
		return []DateRange{{start: addDays(other.end, 1), end: r.end}}
	default:
		// Back trim.
		return []DateRange{{start: r.start, end: addDays(other.start, -1)}}
	}
}

// FindOverlap returns the exact sub-range shared by this range and the
// other. The second return value is false when the ranges do not overlap.
// The case order mirrors Subtract: full containment yields the smaller
// range, partial overlap yields the overlapping slice.
func (r DateRange) FindOverlap(other DateRange) (DateRange, bool) {
	switch {
	case !r.IsContiguousWith(other, 0):
		return DateRange{}, false
	case other.covers(r):
		return r, true
	case r.covers(other):
		return other, true
	case other.start.Before(r.start):
		return DateRange{start: r.start, end: other.end}, true
	default:
		return DateRange{start: other.start, end: r.end}, true
	}
}

// covers reports inclusive containment: every day of other is also a day
// of r.
func (r DateRange) covers(other DateRange) bool {
	return !r.start.After(other.start) && !r.end.Before(other.end)
}

// Equal reports whether both ranges cover exactly the same dates.
func (r DateRange) Equal(other DateRange) bool {
	return r.start.Equal(other.start) && r.end.Equal(other.end)
}

// String returns the serialized form, "YYYY-MM-DD::YYYY-MM-DD".
func (r DateRange) String() string {
	return r.start.Format(dateLayout) + rangeSeparator + r.end.Format(dateLayout)
}

// truncateToDate drops any time-of-day component, pinning the value to
// midnight UTC.
func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func addDays(t time.Time, days int) time.Time {
	return t.AddDate(0, 0, days)
}
