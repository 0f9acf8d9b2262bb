package client

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/caretrack/caretrack/internal/domain/adherence"
	"github.com/caretrack/caretrack/internal/platform/cache"
	"github.com/caretrack/caretrack/pkg/apperr"
)

type Service struct {
	clients       Repository
	notifications *cache.Notifications
	now           func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{clients: repo, now: time.Now}
}

// SetNotificationCache attaches an optional Redis-backed cache for the
// notification feed.
func (s *Service) SetNotificationCache(n *cache.Notifications) {
	s.notifications = n
}

// SetClock overrides the service's time source. Tests use this to pin
// "today"; window classification and escalation depend on it.
func (s *Service) SetClock(now func() time.Time) {
	s.now = now
}

func (s *Service) validate(c *Client) error {
	if c.FacilityID == uuid.Nil {
		return apperr.Validation("facility_id", "facility_id is required")
	}
	if strings.TrimSpace(c.Name) == "" {
		return apperr.Validation("name", "name is required")
	}
	return nil
}

// applyDerivedDueDates fills in due dates that were not explicitly
// overridden. A due date is derived exactly when its source event is present
// and the caller supplied no override; with no source event and no override
// the due date stays nil.
func applyDerivedDueDates(c *Client) {
	if c.NextPharmacyDue == nil {
		c.NextPharmacyDue = adherence.NextPharmacyDue(c.LastDrugPickup)
	}
	if c.NextViralLoadDue == nil {
		c.NextViralLoadDue = adherence.NextViralLoadDue(c.LastVLCollection)
	}
}

func (s *Service) CreateClient(ctx context.Context, c *Client) error {
	if err := s.validate(c); err != nil {
		return err
	}
	if c.Status == "" {
		c.Status = StatusActive
	}
	if !ValidStatus(c.Status) {
		return apperr.Validation("status", "unknown status: "+string(c.Status))
	}
	if RequiresDetails(c.Status) && (c.StatusDetails == nil || strings.TrimSpace(*c.StatusDetails) == "") {
		return apperr.Validation("status_details", "status "+string(c.Status)+" requires details")
	}
	if c.StatusDate == nil {
		now := s.now()
		c.StatusDate = &now
	}
	applyDerivedDueDates(c)

	if err := s.clients.Create(ctx, c); err != nil {
		return err
	}
	s.notifications.Invalidate(ctx, c.FacilityID)
	return nil
}

func (s *Service) GetClient(ctx context.Context, id uuid.UUID) (*Client, error) {
	return s.clients.GetByID(ctx, id)
}

// UpdateClient applies demographic and adherence-event changes. Status is
// not touched here; use TransitionStatus. Due dates are recomputed whenever
// their source event date changes; an explicit due date in the request wins
// only while its event date is unchanged.
func (s *Service) UpdateClient(ctx context.Context, c *Client) error {
	if err := s.validate(c); err != nil {
		return err
	}
	existing, err := s.clients.GetByID(ctx, c.ID)
	if err != nil {
		return err
	}
	c.FacilityID = existing.FacilityID

	if !sameDate(c.LastDrugPickup, existing.LastDrugPickup) {
		c.NextPharmacyDue = adherence.NextPharmacyDue(c.LastDrugPickup)
	}
	if !sameDate(c.LastVLCollection, existing.LastVLCollection) {
		c.NextViralLoadDue = adherence.NextViralLoadDue(c.LastVLCollection)
	}
	applyDerivedDueDates(c)

	if err := s.clients.Update(ctx, c); err != nil {
		return err
	}
	s.notifications.Invalidate(ctx, c.FacilityID)
	return nil
}

func sameDate(a, b *time.Time) bool {
	if a == nil || b == nil {
		return a == b
	}
	return adherence.Midnight(*a).Equal(adherence.Midnight(*b))
}

func (s *Service) DeleteClient(ctx context.Context, id uuid.UUID) error {
	existing, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if err := s.clients.Delete(ctx, id); err != nil {
		return err
	}
	s.notifications.Invalidate(ctx, existing.FacilityID)
	return nil
}

func (s *Service) ListClients(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Client, int, error) {
	return s.clients.ListByFacility(ctx, facilityID, limit, offset)
}

// TransitionStatus moves a client to a new lifecycle state. The three status
// columns change in one statement so a concurrent reader never sees a
// half-applied transition.
func (s *Service) TransitionStatus(ctx context.Context, id uuid.UUID, status Status, details string) (*Client, error) {
	if !ValidStatus(status) {
		return nil, apperr.Validation("status", "unknown status: "+string(status))
	}
	trimmed := strings.TrimSpace(details)
	if RequiresDetails(status) && trimmed == "" {
		return nil, apperr.Validation("status_details", "status "+string(status)+" requires details")
	}
	var detailsPtr *string
	if trimmed != "" {
		detailsPtr = &trimmed
	}
	c, err := s.clients.UpdateStatus(ctx, id, status, detailsPtr, s.now())
	if err != nil {
		return nil, err
	}
	s.notifications.Invalidate(ctx, c.FacilityID)
	return c, nil
}

// RecordOutreach appends one intervention/finding pair to a client's
// history. The history is never updated in place.
func (s *Service) RecordOutreach(ctx context.Context, clientID uuid.UUID, intervention, finding, tracker string) (*OutreachRecord, error) {
	if strings.TrimSpace(intervention) == "" {
		return nil, apperr.Validation("intervention", "intervention is required")
	}
	if strings.TrimSpace(finding) == "" {
		return nil, apperr.Validation("finding", "finding is required")
	}
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	rec := &OutreachRecord{
		ClientID:     clientID,
		Intervention: intervention,
		Finding:      finding,
		Tracker:      tracker,
		RecordedAt:   s.now(),
	}
	if err := s.clients.AppendOutreach(ctx, rec); err != nil {
		return nil, err
	}
	return rec, nil
}

func (s *Service) OutreachHistory(ctx context.Context, clientID uuid.UUID) ([]*OutreachRecord, error) {
	if _, err := s.clients.GetByID(ctx, clientID); err != nil {
		return nil, err
	}
	return s.clients.ListOutreach(ctx, clientID)
}

// Escalation reports a client's current outreach escalation step, derived
// from the last drug pickup at call time.
type Escalation struct {
	Step            int  `json:"step"`
	Known           bool `json:"known"`
	DaysSincePickup *int `json:"days_since_pickup,omitempty"`
}

func (s *Service) ClientEscalation(ctx context.Context, id uuid.UUID) (*Escalation, error) {
	c, err := s.clients.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	step, ok := adherence.EscalationStep(c.LastDrugPickup, s.now())
	esc := &Escalation{Step: step, Known: ok}
	if ok {
		days := adherence.DaysBetween(*c.LastDrugPickup, s.now())
		esc.DaysSincePickup = &days
	}
	return esc, nil
}

// ClientsInWindow returns a facility's active clients whose pharmacy due
// date falls in the window, relative to the service clock.
func (s *Service) ClientsInWindow(ctx context.Context, facilityID uuid.UUID, w adherence.Window) ([]*Client, error) {
	all, err := s.clients.Snapshot(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	return DueInWindow(all, w, s.now()), nil
}

// SearchClients filters a facility's register by a case-insensitive
// substring over name, ART number, and address.
func (s *Service) SearchClients(ctx context.Context, facilityID uuid.UUID, query string) ([]*Client, error) {
	all, err := s.clients.Snapshot(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	return Search(all, query), nil
}

// NotificationFeed returns the facility's due-soon feed, serving from the
// cache when a fresh copy exists.
func (s *Service) NotificationFeed(ctx context.Context, facilityID uuid.UUID) ([]*Client, error) {
	var cached []*Client
	if s.notifications.Get(ctx, facilityID, &cached) {
		return cached, nil
	}
	all, err := s.clients.Snapshot(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	feed := Notifications(all, s.now())
	s.notifications.Set(ctx, facilityID, feed)
	return feed, nil
}

// FacilitySummary computes the dashboard counts for a facility.
func (s *Service) FacilitySummary(ctx context.Context, facilityID uuid.UUID) (*Summary, error) {
	all, err := s.clients.Snapshot(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	summary := Summarize(all, s.now())
	return &summary, nil
}
