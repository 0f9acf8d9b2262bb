// Package client holds the chronic-care client register: demographics,
// adherence event dates, derived due dates, lifecycle status, and the
// outreach history appended by field trackers.
package client

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// Status is a client's care lifecycle state. Transitions between any two
// states are allowed; field reality does not follow a tidy state machine,
// so a client reported dead can later be corrected back to active.
type Status string

const (
	StatusActive      Status = "Active"
	StatusIIT         Status = "IIT" // interruption in treatment
	StatusDefaulter   Status = "Defaulter"
	StatusDead        Status = "Dead"
	StatusTransferOut Status = "Transfer Out"
)

var validStatuses = map[Status]bool{
	StatusActive: true, StatusIIT: true, StatusDefaulter: true,
	StatusDead: true, StatusTransferOut: true,
}

// ValidStatus reports whether s is one of the recognized lifecycle states.
func ValidStatus(s Status) bool {
	return validStatuses[s]
}

// RequiresDetails reports whether a transition into s must carry supporting
// details (date of death, destination facility).
func RequiresDetails(s Status) bool {
	return s == StatusDead || s == StatusTransferOut
}

type Client struct {
	ID         uuid.UUID `json:"id"`
	FacilityID uuid.UUID `json:"facility_id"`
	ARTNumber  *string   `json:"art_number,omitempty"`
	Name       string    `json:"name"`
	Age        *int      `json:"age,omitempty"`
	Address    *string   `json:"address,omitempty"`
	Contact    *string   `json:"contact,omitempty"`

	// Observed adherence events. Due dates derive from these unless an
	// explicit override was supplied.
	LastDrugPickup   *time.Time `json:"last_drug_pickup,omitempty"`
	LastVLCollection *time.Time `json:"last_vl_collection,omitempty"`
	NextPharmacyDue  *time.Time `json:"next_pharmacy_due,omitempty"`
	NextViralLoadDue *time.Time `json:"next_vl_due,omitempty"`

	Status        Status     `json:"status"`
	StatusDetails *string    `json:"status_details,omitempty"`
	StatusDate    *time.Time `json:"status_date,omitempty"`

	// Home coordinates captured during outreach, used for field tracing.
	Latitude  *float64 `json:"latitude,omitempty"`
	Longitude *float64 `json:"longitude,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// IsActive is derived from Status and never stored: a client is active
// exactly when their status is Active.
func (c *Client) IsActive() bool {
	return c.Status == StatusActive
}

// MarshalJSON emits the derived is_active field alongside the stored ones.
func (c *Client) MarshalJSON() ([]byte, error) {
	type alias Client
	return json.Marshal(struct {
		*alias
		IsActive bool `json:"is_active"`
	}{(*alias)(c), c.IsActive()})
}

// OutreachRecord is one entry in a client's append-only outreach history.
type OutreachRecord struct {
	ID           uuid.UUID `json:"id"`
	ClientID     uuid.UUID `json:"client_id"`
	Intervention string    `json:"intervention"`
	Finding      string    `json:"finding"`
	Tracker      string    `json:"tracker"`
	RecordedAt   time.Time `json:"recorded_at"`
}
