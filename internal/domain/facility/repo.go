package facility

import (
	"context"

	"github.com/google/uuid"
)

// Repository abstracts facility persistence. Implementations translate
// missing rows to apperr.NotFound and wrap other failures in apperr.Storage.
type Repository interface {
	Create(ctx context.Context, f *Facility) error
	GetByID(ctx context.Context, id uuid.UUID) (*Facility, error)
	List(ctx context.Context, limit, offset int) ([]*Facility, int, error)
	Update(ctx context.Context, f *Facility) error

	// Delete removes the facility together with its clients and their
	// outreach records in a single transaction.
	Delete(ctx context.Context, id uuid.UUID) error
}
