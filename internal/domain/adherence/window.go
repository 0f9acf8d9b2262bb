package adherence

import "time"

// Window names an operational reporting bucket for a due date relative to
// an injected "today".
type Window string

const (
	WindowToday     Window = "today"
	WindowTomorrow  Window = "tomorrow"
	WindowThisWeek  Window = "thisWeek"
	WindowNextWeek  Window = "nextWeek"
	WindowThisMonth Window = "thisMonth"
	WindowLate      Window = "late"
	WindowAll       Window = "all"
)

// ParseWindow validates a window name from an API query.
func ParseWindow(s string) (Window, bool) {
	switch Window(s) {
	case WindowToday, WindowTomorrow, WindowThisWeek, WindowNextWeek,
		WindowThisMonth, WindowLate, WindowAll:
		return Window(s), true
	}
	return "", false
}

// Matches reports whether due falls in window w relative to today. A nil
// due date matches no window, including WindowAll: a record with no due
// date is simply not due.
func Matches(due *time.Time, today time.Time, w Window) bool {
	if due == nil {
		return false
	}
	diff := DaysBetween(today, *due)
	switch w {
	case WindowToday:
		return diff == 0
	case WindowTomorrow:
		return diff == 1
	case WindowThisWeek:
		return diff >= 0 && diff <= 7
	case WindowNextWeek:
		return diff > 7 && diff <= 14
	case WindowThisMonth:
		// Same calendar month and year, regardless of whether the date
		// has already passed.
		return due.Month() == today.Month() && due.Year() == today.Year()
	case WindowLate:
		return diff < 0
	case WindowAll:
		return true
	}
	return false
}

// DueSoon reports whether due lies within [0, 14] days of today: the union
// of thisWeek and nextWeek, excluding late. This is the notification
// predicate.
func DueSoon(due *time.Time, today time.Time) bool {
	if due == nil {
		return false
	}
	diff := DaysBetween(today, *due)
	return diff >= 0 && diff <= 14
}
