// Package adherence holds the pure temporal rules of the tracking engine:
// due-date derivation, timeframe classification, and escalation tiering.
// Every function takes its reference time explicitly and never reads the
// system clock, so the rules are deterministic and testable in isolation.
package adherence

import "time"

// Fixed follow-up intervals. These are part of the program's clinical
// protocol, not deployment configuration.
const (
	// PharmacyIntervalDays is the number of days between drug pickups.
	PharmacyIntervalDays = 90
	// ViralLoadIntervalDays is the number of days between viral-load
	// collections.
	ViralLoadIntervalDays = 180
)

// NextDueDate returns lastEvent + intervalDays calendar days, normalized to
// midnight in lastEvent's location. A nil lastEvent yields nil: no observed
// event means no derivable due date.
func NextDueDate(lastEvent *time.Time, intervalDays int) *time.Time {
	if lastEvent == nil {
		return nil
	}
	due := Midnight(*lastEvent).AddDate(0, 0, intervalDays)
	return &due
}

// NextPharmacyDue derives the next drug-pickup due date.
func NextPharmacyDue(lastPickup *time.Time) *time.Time {
	return NextDueDate(lastPickup, PharmacyIntervalDays)
}

// NextViralLoadDue derives the next viral-load collection due date.
func NextViralLoadDue(lastCollection *time.Time) *time.Time {
	return NextDueDate(lastCollection, ViralLoadIntervalDays)
}

// Midnight truncates t to the start of its calendar day, keeping the
// location. Due dates are stored midnight-normalized so time-of-day never
// leaks into date comparisons.
func Midnight(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}

// DaysBetween returns the count of calendar days from 'from' to 'to'
// (positive when 'to' is later). Only the calendar components of each
// operand are compared: stored dates arrive in UTC while "today" carries
// the server's location, and an instant-based difference would skew the
// count by a day across that offset.
func DaysBetween(from, to time.Time) int {
	fy, fm, fd := from.Date()
	ty, tm, td := to.Date()
	f := time.Date(fy, fm, fd, 0, 0, 0, 0, time.UTC)
	t := time.Date(ty, tm, td, 0, 0, 0, 0, time.UTC)
	return int(t.Sub(f).Hours() / 24)
}
