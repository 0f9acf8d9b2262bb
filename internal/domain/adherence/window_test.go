package adherence

import (
	"testing"
	"time"
)

func TestParseWindow(t *testing.T) {
	for _, s := range []string{"today", "tomorrow", "thisWeek", "nextWeek", "thisMonth", "late", "all"} {
		if _, ok := ParseWindow(s); !ok {
			t.Errorf("expected %q to parse", s)
		}
	}
	if _, ok := ParseWindow("soon"); ok {
		t.Error("expected unknown window to be rejected")
	}
}

func TestMatches_NilDueDate(t *testing.T) {
	today := date(2024, time.June, 1)
	for _, w := range []Window{WindowToday, WindowLate, WindowAll} {
		if Matches(nil, today, w) {
			t.Errorf("nil due date must not match window %q", w)
		}
	}
}

func TestMatches_WeekBoundary(t *testing.T) {
	today := date(2024, time.June, 1)

	seven := datePtr(2024, time.June, 8)
	if !Matches(seven, today, WindowThisWeek) {
		t.Error("diff=7 should classify as thisWeek")
	}
	if Matches(seven, today, WindowNextWeek) {
		t.Error("diff=7 must not classify as nextWeek")
	}

	eight := datePtr(2024, time.June, 9)
	if Matches(eight, today, WindowThisWeek) {
		t.Error("diff=8 must not classify as thisWeek")
	}
	if !Matches(eight, today, WindowNextWeek) {
		t.Error("diff=8 should classify as nextWeek")
	}
}

func TestMatches_TodayTomorrow(t *testing.T) {
	today := date(2024, time.June, 1)
	if !Matches(datePtr(2024, time.June, 1), today, WindowToday) {
		t.Error("same day should classify as today")
	}
	if !Matches(datePtr(2024, time.June, 2), today, WindowTomorrow) {
		t.Error("next day should classify as tomorrow")
	}
	if Matches(datePtr(2024, time.June, 2), today, WindowToday) {
		t.Error("next day must not classify as today")
	}
	// today also falls inside thisWeek
	if !Matches(datePtr(2024, time.June, 1), today, WindowThisWeek) {
		t.Error("diff=0 should classify as thisWeek")
	}
}

func TestMatches_WeekBoundaryAcrossZones(t *testing.T) {
	// A clock west of UTC with a UTC due date 8 days out must still land
	// in nextWeek, not slip into thisWeek.
	local := time.FixedZone("UTC-5", -5*60*60)
	today := time.Date(2024, time.June, 1, 9, 30, 0, 0, local)
	eight := datePtr(2024, time.June, 9)

	if Matches(eight, today, WindowThisWeek) {
		t.Error("diff=8 must not classify as thisWeek across zones")
	}
	if !Matches(eight, today, WindowNextWeek) {
		t.Error("diff=8 should classify as nextWeek across zones")
	}
	if !Matches(datePtr(2024, time.June, 2), today, WindowTomorrow) {
		t.Error("next calendar day should classify as tomorrow across zones")
	}
	if Matches(datePtr(2024, time.June, 2), today, WindowToday) {
		t.Error("next calendar day must not classify as today across zones")
	}
}

func TestMatches_NextWeekUpperBound(t *testing.T) {
	today := date(2024, time.June, 1)
	if !Matches(datePtr(2024, time.June, 15), today, WindowNextWeek) {
		t.Error("diff=14 should classify as nextWeek")
	}
	if Matches(datePtr(2024, time.June, 16), today, WindowNextWeek) {
		t.Error("diff=15 must not classify as nextWeek")
	}
}

func TestMatches_Late(t *testing.T) {
	today := date(2024, time.June, 1)
	if !Matches(datePtr(2024, time.May, 31), today, WindowLate) {
		t.Error("yesterday should classify as late")
	}
	if Matches(datePtr(2024, time.June, 1), today, WindowLate) {
		t.Error("today must not classify as late")
	}
}

func TestMatches_ThisMonthIncludesPastDates(t *testing.T) {
	today := date(2024, time.June, 15)
	if !Matches(datePtr(2024, time.June, 3), today, WindowThisMonth) {
		t.Error("already-late same-month date should classify as thisMonth")
	}
	if !Matches(datePtr(2024, time.June, 28), today, WindowThisMonth) {
		t.Error("upcoming same-month date should classify as thisMonth")
	}
	if Matches(datePtr(2024, time.July, 1), today, WindowThisMonth) {
		t.Error("next-month date must not classify as thisMonth")
	}
	if Matches(datePtr(2023, time.June, 15), today, WindowThisMonth) {
		t.Error("same month of a different year must not classify as thisMonth")
	}
}

func TestMatches_All(t *testing.T) {
	today := date(2024, time.June, 1)
	if !Matches(datePtr(1999, time.January, 1), today, WindowAll) {
		t.Error("all should match any non-nil due date")
	}
}

func TestDueSoon(t *testing.T) {
	today := date(2024, time.June, 1)
	cases := []struct {
		due  *time.Time
		want bool
	}{
		{nil, false},
		{datePtr(2024, time.May, 31), false}, // late is excluded
		{datePtr(2024, time.June, 1), true},  // late-by-zero is included
		{datePtr(2024, time.June, 15), true}, // diff=14
		{datePtr(2024, time.June, 16), false},
	}
	for _, tc := range cases {
		if got := DueSoon(tc.due, today); got != tc.want {
			t.Errorf("DueSoon(%v) = %v, want %v", tc.due, got, tc.want)
		}
	}
}
