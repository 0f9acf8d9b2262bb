package adherence

import (
	"testing"
	"time"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func datePtr(y int, m time.Month, d int) *time.Time {
	t := date(y, m, d)
	return &t
}

func TestNextDueDate_NilEvent(t *testing.T) {
	if got := NextDueDate(nil, PharmacyIntervalDays); got != nil {
		t.Fatalf("expected nil due date for nil event, got %v", got)
	}
}

func TestNextDueDate_AddsCalendarDays(t *testing.T) {
	cases := []struct {
		event    time.Time
		interval int
		want     time.Time
	}{
		{date(2024, time.January, 1), 90, date(2024, time.March, 31)},
		{date(2023, time.January, 1), 90, date(2023, time.April, 1)},
		{date(2024, time.June, 1), 180, date(2024, time.November, 28)},
		{date(2024, time.February, 28), 1, date(2024, time.February, 29)},
	}
	for _, tc := range cases {
		got := NextDueDate(&tc.event, tc.interval)
		if got == nil || !got.Equal(tc.want) {
			t.Errorf("NextDueDate(%v, %d) = %v, want %v", tc.event, tc.interval, got, tc.want)
		}
	}
}

func TestNextDueDate_NormalizesTimeOfDay(t *testing.T) {
	evt := time.Date(2024, time.January, 1, 23, 45, 0, 0, time.UTC)
	got := NextDueDate(&evt, 90)
	if got == nil {
		t.Fatal("expected a due date")
	}
	if got.Hour() != 0 || got.Minute() != 0 {
		t.Errorf("expected midnight-normalized due date, got %v", got)
	}
	if !got.Equal(date(2024, time.March, 31)) {
		t.Errorf("expected 2024-03-31, got %v", got)
	}
}

func TestNextPharmacyDue(t *testing.T) {
	got := NextPharmacyDue(datePtr(2024, time.January, 15))
	if got == nil || !got.Equal(date(2024, time.April, 14)) {
		t.Errorf("expected 2024-04-14, got %v", got)
	}
}

func TestNextViralLoadDue(t *testing.T) {
	got := NextViralLoadDue(datePtr(2024, time.January, 15))
	if got == nil || !got.Equal(date(2024, time.July, 13)) {
		t.Errorf("expected 2024-07-13, got %v", got)
	}
}

func TestDaysBetween(t *testing.T) {
	cases := []struct {
		from, to time.Time
		want     int
	}{
		{date(2024, time.June, 1), date(2024, time.June, 1), 0},
		{date(2024, time.June, 1), date(2024, time.June, 8), 7},
		{date(2024, time.June, 8), date(2024, time.June, 1), -7},
		{date(2024, time.February, 28), date(2024, time.March, 1), 2},
	}
	for _, tc := range cases {
		if got := DaysBetween(tc.from, tc.to); got != tc.want {
			t.Errorf("DaysBetween(%v, %v) = %d, want %d", tc.from, tc.to, got, tc.want)
		}
	}
}

func TestDaysBetween_IgnoresTimeOfDay(t *testing.T) {
	from := time.Date(2024, time.June, 1, 23, 0, 0, 0, time.UTC)
	to := time.Date(2024, time.June, 2, 1, 0, 0, 0, time.UTC)
	if got := DaysBetween(from, to); got != 1 {
		t.Errorf("expected 1 day across midnight, got %d", got)
	}
}

func TestDaysBetween_MixedLocations(t *testing.T) {
	// Stored due dates are UTC; the server clock carries its own zone.
	// The count must come from calendar dates, not instants, or every
	// positive boundary undercounts west of UTC.
	local := time.FixedZone("UTC-5", -5*60*60)
	today := time.Date(2024, time.June, 1, 9, 30, 0, 0, local)

	if got := DaysBetween(today, date(2024, time.June, 9)); got != 8 {
		t.Errorf("expected 8 days to a UTC date 8 days out, got %d", got)
	}
	if got := DaysBetween(today, date(2024, time.June, 2)); got != 1 {
		t.Errorf("expected 1 day to tomorrow's UTC date, got %d", got)
	}
	if got := DaysBetween(date(2024, time.June, 9), today); got != -8 {
		t.Errorf("expected -8 days in the reverse direction, got %d", got)
	}

	east := time.FixedZone("UTC+11", 11*60*60)
	todayEast := time.Date(2024, time.June, 1, 9, 30, 0, 0, east)
	if got := DaysBetween(todayEast, date(2024, time.June, 1)); got != 0 {
		t.Errorf("expected 0 days to the same UTC date east of UTC, got %d", got)
	}
}
