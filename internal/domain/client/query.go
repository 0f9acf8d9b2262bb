package client

import (
	"sort"
	"strings"
	"time"

	"github.com/caretrack/caretrack/internal/domain/adherence"
)

// DueInWindow filters a register down to active clients whose pharmacy due
// date falls in the given window relative to today. Input order is
// preserved.
func DueInWindow(clients []*Client, w adherence.Window, today time.Time) []*Client {
	out := make([]*Client, 0)
	for _, c := range clients {
		if !c.IsActive() {
			continue
		}
		if adherence.Matches(c.NextPharmacyDue, today, w) {
			out = append(out, c)
		}
	}
	return out
}

// Search returns clients whose name, ART number, or address contains the
// query, case-insensitively. An empty query returns the whole register in
// its original order.
func Search(clients []*Client, query string) []*Client {
	q := strings.ToLower(strings.TrimSpace(query))
	if q == "" {
		return clients
	}
	out := make([]*Client, 0)
	for _, c := range clients {
		if containsFold(c.Name, q) ||
			(c.ARTNumber != nil && containsFold(*c.ARTNumber, q)) ||
			(c.Address != nil && containsFold(*c.Address, q)) {
			out = append(out, c)
		}
	}
	return out
}

func containsFold(s, lowered string) bool {
	return strings.Contains(strings.ToLower(s), lowered)
}

// Notifications builds the due-soon feed: active clients whose pharmacy due
// date lies within 14 days of today (late clients are excluded; they belong
// to escalation, not reminders). The feed is sorted by due date ascending,
// with client ID as the tie-breaker so the order is stable.
func Notifications(clients []*Client, today time.Time) []*Client {
	out := make([]*Client, 0)
	for _, c := range clients {
		if !c.IsActive() {
			continue
		}
		if adherence.DueSoon(c.NextPharmacyDue, today) {
			out = append(out, c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		di, dj := *out[i].NextPharmacyDue, *out[j].NextPharmacyDue
		if !di.Equal(dj) {
			return di.Before(dj)
		}
		return out[i].ID.String() < out[j].ID.String()
	})
	return out
}

// Summary holds per-facility register counts for the dashboard.
type Summary struct {
	Total     int                      `json:"total"`
	Active    int                      `json:"active"`
	ByStatus  map[Status]int           `json:"by_status"`
	ByWindow  map[adherence.Window]int `json:"by_window"`
	Escalated int                      `json:"escalated"`
}

// Summarize computes register counts in one pass. Window counts consider
// active clients only, mirroring DueInWindow. Escalated counts active
// clients whose derived escalation step is past StepNone.
func Summarize(clients []*Client, today time.Time) Summary {
	s := Summary{
		ByStatus: make(map[Status]int),
		ByWindow: make(map[adherence.Window]int),
	}
	windows := []adherence.Window{
		adherence.WindowToday, adherence.WindowTomorrow,
		adherence.WindowThisWeek, adherence.WindowNextWeek,
		adherence.WindowThisMonth, adherence.WindowLate,
	}
	for _, c := range clients {
		s.Total++
		s.ByStatus[c.Status]++
		if !c.IsActive() {
			continue
		}
		s.Active++
		for _, w := range windows {
			if adherence.Matches(c.NextPharmacyDue, today, w) {
				s.ByWindow[w]++
			}
		}
		if step, ok := adherence.EscalationStep(c.LastDrugPickup, today); ok && step > adherence.StepNone {
			s.Escalated++
		}
	}
	return s
}
