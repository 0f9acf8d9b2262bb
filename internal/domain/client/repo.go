package client

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Repository abstracts client persistence. Implementations translate missing
// rows to apperr.NotFound and wrap other failures in apperr.Storage.
type Repository interface {
	Create(ctx context.Context, c *Client) error
	GetByID(ctx context.Context, id uuid.UUID) (*Client, error)
	Update(ctx context.Context, c *Client) error
	Delete(ctx context.Context, id uuid.UUID) error

	// ListByFacility returns one page of a facility's register plus the
	// total count.
	ListByFacility(ctx context.Context, facilityID uuid.UUID, limit, offset int) ([]*Client, int, error)

	// Snapshot returns a facility's full register in stable (created_at,
	// id) order. Window classification, search, and the notification feed
	// are computed over this in memory.
	Snapshot(ctx context.Context, facilityID uuid.UUID) ([]*Client, error)

	// UpdateStatus atomically sets status, details, and status date in a
	// single statement and returns the updated client.
	UpdateStatus(ctx context.Context, id uuid.UUID, status Status, details *string, statusDate time.Time) (*Client, error)

	AppendOutreach(ctx context.Context, rec *OutreachRecord) error
	ListOutreach(ctx context.Context, clientID uuid.UUID) ([]*OutreachRecord, error)
}
