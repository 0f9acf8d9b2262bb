package adherence

import "time"

// Escalation steps drive which outreach action is appropriate for a client
// whose drug pickup is overdue. The step is derived on demand from the last
// pickup date and is never stored, so it always reflects current time.
const (
	StepNone       = 0 // within a week of pickup
	StepPhoneCall  = 1 // 8-14 days
	StepSecondCall = 2 // 15-21 days
	StepHomeVisit  = 3 // 22-28 days
	StepFieldTrace = 4 // more than 28 days
)

// StepForLateness maps days since the last pickup to an escalation step.
func StepForLateness(daysSincePickup int) int {
	switch {
	case daysSincePickup <= 7:
		return StepNone
	case daysSincePickup <= 14:
		return StepPhoneCall
	case daysSincePickup <= 21:
		return StepSecondCall
	case daysSincePickup <= 28:
		return StepHomeVisit
	default:
		return StepFieldTrace
	}
}

// EscalationStep derives the current escalation step from the last pickup
// date. ok is false when lastPickup is nil: with no observed pickup the
// step is unknown and no escalation is computed.
func EscalationStep(lastPickup *time.Time, today time.Time) (step int, ok bool) {
	if lastPickup == nil {
		return 0, false
	}
	return StepForLateness(DaysBetween(*lastPickup, today)), true
}
