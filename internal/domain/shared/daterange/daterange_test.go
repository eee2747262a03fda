package daterange

import (
	"errors"
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func mustRange(t *testing.T, checkIn, checkOut time.Time) DateRange {
	t.Helper()
	dr, err := New(checkIn, checkOut)
	if err != nil {
		t.Fatalf("New(%v, %v): %v", checkIn, checkOut, err)
	}
	return dr
}

func TestNewNormalizesToUTCMidnight(t *testing.T) {
	loc := time.FixedZone("CET", 3600)
	dr := mustRange(t,
		time.Date(2025, time.March, 1, 15, 30, 0, 0, loc),
		time.Date(2025, time.March, 4, 9, 0, 0, 0, loc),
	)
	if !dr.CheckIn.Equal(date(2025, time.March, 1)) {
		t.Errorf("check-in = %v, want 2025-03-01 UTC midnight", dr.CheckIn)
	}
	if !dr.CheckOut.Equal(date(2025, time.March, 4)) {
		t.Errorf("check-out = %v, want 2025-03-04 UTC midnight", dr.CheckOut)
	}
}

func TestNewRejectsInvalidRanges(t *testing.T) {
	cases := []struct {
		name     string
		checkIn  time.Time
		checkOut time.Time
	}{
		{"checkout before checkin", date(2025, time.March, 4), date(2025, time.March, 1)},
		{"same day", date(2025, time.March, 1), date(2025, time.March, 1)},
		{"zero checkin", time.Time{}, date(2025, time.March, 1)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := New(tc.checkIn, tc.checkOut); !errors.Is(err, ErrInvalidRange) {
				t.Errorf("New() error = %v, want ErrInvalidRange", err)
			}
		})
	}
}

func TestNights(t *testing.T) {
	dr := mustRange(t, date(2025, time.March, 1), date(2025, time.March, 4))
	if got := dr.Nights(); got != 3 {
		t.Errorf("Nights() = %d, want 3", got)
	}
}

func TestConflicts(t *testing.T) {
	base := mustRange(t, date(2025, time.March, 5), date(2025, time.March, 10))
	cases := []struct {
		name  string
		other DateRange
		want  bool
	}{
		{"disjoint before", mustRange(t, date(2025, time.March, 1), date(2025, time.March, 3)), false},
		{"disjoint after", mustRange(t, date(2025, time.March, 12), date(2025, time.March, 15)), false},
		{"inner overlap", mustRange(t, date(2025, time.March, 7), date(2025, time.March, 9)), true},
		{"straddles start", mustRange(t, date(2025, time.March, 3), date(2025, time.March, 6)), true},
		{"straddles end", mustRange(t, date(2025, time.March, 9), date(2025, time.March, 12)), true},
		// Adjacent stays share the turnover day and therefore conflict.
		{"ends on check-in day", mustRange(t, date(2025, time.March, 3), date(2025, time.March, 5)), true},
		{"starts on check-out day", mustRange(t, date(2025, time.March, 10), date(2025, time.March, 12)), true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := base.Conflicts(tc.other); got != tc.want {
				t.Errorf("Conflicts(%v..%v) = %v, want %v",
					tc.other.CheckIn.Format(time.DateOnly), tc.other.CheckOut.Format(time.DateOnly), got, tc.want)
			}
			if got := tc.other.Conflicts(base); got != tc.want {
				t.Errorf("Conflicts is not symmetric for %s", tc.name)
			}
		})
	}
}

func TestOverlapsExcludesSharedBoundary(t *testing.T) {
	a := mustRange(t, date(2025, time.March, 1), date(2025, time.March, 5))
	b := mustRange(t, date(2025, time.March, 5), date(2025, time.March, 8))
	if a.Overlaps(b) {
		t.Error("Overlaps() = true for back-to-back ranges, want false")
	}
	if !a.Conflicts(b) {
		t.Error("Conflicts() = false for back-to-back ranges, want true")
	}
}

func TestDaysIncludesBothEndpoints(t *testing.T) {
	dr := mustRange(t, date(2025, time.March, 30), date(2025, time.April, 2))
	days := dr.Days()
	want := []time.Time{
		date(2025, time.March, 30),
		date(2025, time.March, 31),
		date(2025, time.April, 1),
		date(2025, time.April, 2),
	}
	if len(days) != len(want) {
		t.Fatalf("Days() returned %d days, want %d", len(days), len(want))
	}
	for i := range want {
		if !days[i].Equal(want[i]) {
			t.Errorf("Days()[%d] = %v, want %v", i, days[i], want[i])
		}
	}
}

func TestContainsDate(t *testing.T) {
	dr := mustRange(t, date(2025, time.March, 5), date(2025, time.March, 10))
	if !dr.ContainsDate(date(2025, time.March, 5)) || !dr.ContainsDate(date(2025, time.March, 10)) {
		t.Error("ContainsDate should include both endpoints")
	}
	if dr.ContainsDate(date(2025, time.March, 4)) || dr.ContainsDate(date(2025, time.March, 11)) {
		t.Error("ContainsDate should exclude days outside the range")
	}
}
