package wellrecord

import (
	"errors"
	"testing"
)

func groupOf(t *testing.T, ranges ...string) DateRangeGroup {
	t.Helper()
	g := NewDateRangeGroup()
	for _, s := range ranges {
		if err := g.Add(mustRange(t, s)); err != nil {
			t.Fatalf("Add(%s): %v", s, err)
		}
	}
	return g
}

func assertRanges(t *testing.T, g DateRangeGroup, want ...string) {
	t.Helper()
	got := g.Ranges()
	if len(got) != len(want) {
		t.Fatalf("group has %d ranges, want %d: %s", len(got), len(want), g)
	}
	for i, w := range want {
		if got[i].String() != w {
			t.Errorf("ranges[%d] = %s, want %s", i, got[i], w)
		}
	}
}

func TestAdd_RejectsZeroRange(t *testing.T) {
	g := NewDateRangeGroup()
	if err := g.Add(DateRange{}); !errors.Is(err, ErrInvalidRange) {
		t.Fatalf("err = %v, want ErrInvalidRange", err)
	}
	if !g.Empty() {
		t.Error("rejected range must not be appended")
	}
}

func TestSort_EndThenStart(t *testing.T) {
	g := groupOf(t,
		"2020-05-01::2020-12-31",
		"2020-01-01::2020-06-30",
		"2020-03-01::2020-06-30",
	)
	g.Sort()
	assertRanges(t, g,
		"2020-01-01::2020-06-30",
		"2020-03-01::2020-06-30",
		"2020-05-01::2020-12-31",
	)
}

func TestMergeAll_OverlappingAndDisjoint(t *testing.T) {
	g := groupOf(t,
		"2010-01-01::2011-12-31",
		"2015-01-01::2017-12-31",
		"2011-01-01::2012-12-31",
	)
	g.MergeAll(0)
	assertRanges(t, g,
		"2010-01-01::2012-12-31",
		"2015-01-01::2017-12-31",
	)
}

func TestMergeAll_Idempotent(t *testing.T) {
	g := groupOf(t,
		"2010-01-01::2011-12-31",
		"2011-06-01::2013-12-31",
		"2016-01-01::2016-12-31",
		"2014-01-01::2014-01-15",
	)
	g.MergeAll(0)
	once := g.Ranges()
	g.MergeAll(0)
	if len(g.Ranges()) != len(once) {
		t.Fatalf("second MergeAll changed the range count: %s", g)
	}
	for i, r := range g.Ranges() {
		if !r.Equal(once[i]) {
			t.Errorf("second MergeAll changed ranges[%d]: %s != %s", i, r, once[i])
		}
	}
}

func TestMergeAll_Tolerance(t *testing.T) {
	g := groupOf(t,
		"2020-01-01::2020-06-30",
		"2020-07-01::2020-12-31",
	)
	g.MergeAll(0)
	if g.Len() != 2 {
		t.Fatalf("zero tolerance merged touching ranges: %s", g)
	}
	g.MergeAll(1)
	assertRanges(t, g, "2020-01-01::2020-12-31")
}

// A range appearing late in end-date order can bridge earlier disjoint
// pieces; the merge must still reach the maximal form.
func TestMergeAll_BridgingRange(t *testing.T) {
	g := groupOf(t,
		"2020-01-01::2020-01-05",
		"2020-01-10::2020-01-12",
		"2020-01-03::2020-01-20",
	)
	g.MergeAll(0)
	assertRanges(t, g, "2020-01-01::2020-01-20")
}

func TestSubtractFromAll(t *testing.T) {
	g := groupOf(t,
		"2020-01-01::2020-12-31",
		"2021-06-01::2021-12-31",
	)
	g.SubtractFromAll(mustRange(t, "2020-11-01::2021-08-31"))
	assertRanges(t, g,
		"2020-01-01::2020-10-31",
		"2021-09-01::2021-12-31",
	)
}

func TestFindAllOverlaps_EmptyGroups(t *testing.T) {
	full := groupOf(t, "2020-01-01::2020-12-31")
	empty := NewDateRangeGroup()

	if got := full.FindAllOverlaps(empty); !got.Empty() {
		t.Errorf("overlap with empty group = %s, want empty", got)
	}
	if got := empty.FindAllOverlaps(full); !got.Empty() {
		t.Errorf("overlap of empty group = %s, want empty", got)
	}
}

func TestFindAllOverlaps_Commutative(t *testing.T) {
	g1 := groupOf(t,
		"2010-01-01::2012-12-31",
		"2015-01-01::2016-06-30",
	)
	g2 := groupOf(t,
		"2011-06-01::2015-03-31",
		"2016-01-01::2018-12-31",
	)
	a := g1.FindAllOverlaps(g2)
	b := g2.FindAllOverlaps(g1)
	if !a.Equal(b) {
		t.Errorf("overlaps differ by order: %s vs %s", a, b)
	}
	assertRanges(t, a,
		"2011-06-01::2012-12-31",
		"2015-01-01::2015-03-31",
		"2016-01-01::2016-06-30",
	)
}

// The pairwise overlaps are merged with zero tolerance: overlapping pieces
// coalesce, but pieces that merely touch on adjacent days stay separate.
func TestFindAllOverlaps_AdjacentPiecesStaySeparate(t *testing.T) {
	g1 := groupOf(t, "2020-01-01::2020-12-31")
	g2 := groupOf(t,
		"2020-01-01::2020-06-30",
		"2020-07-01::2020-09-30",
	)
	got := g1.FindAllOverlaps(g2)
	assertRanges(t, got,
		"2020-01-01::2020-06-30",
		"2020-07-01::2020-09-30",
	)

	overlapping := groupOf(t,
		"2020-01-01::2020-06-30",
		"2020-06-30::2020-09-30",
	)
	got = g1.FindAllOverlaps(overlapping)
	assertRanges(t, got, "2020-01-01::2020-09-30")
}

func TestShortestAndLongestDurations(t *testing.T) {
	g := groupOf(t,
		"2020-01-01::2020-01-31", // 31 days
		"2020-03-01::2020-03-05", // 5 days
		"2020-06-01::2020-12-31", // 214 days
	)
	shortest, longest := g.ShortestAndLongestDurations()
	if shortest != 5 || longest != 214 {
		t.Errorf("durations = (%d, %d), want (5, 214)", shortest, longest)
	}
}

func TestShortestAndLongestDurations_Empty(t *testing.T) {
	g := NewDateRangeGroup()
	shortest, longest := g.ShortestAndLongestDurations()
	if shortest != 0 || longest != 0 {
		t.Errorf("durations of empty group = (%d, %d), want (0, 0)", shortest, longest)
	}
}

func TestFilterByMinimumDuration(t *testing.T) {
	g := groupOf(t,
		"2020-01-01::2020-01-02",
		"2020-03-01::2020-03-31",
		"2020-06-01::2020-12-31",
	)
	got := g.FilterByMinimumDuration(30)
	assertRanges(t, got,
		"2020-03-01::2020-03-31",
		"2020-06-01::2020-12-31",
	)
}
