// Package facility manages the health facilities whose client registers the
// tracking engine scopes everything else to.
package facility

import (
	"time"

	"github.com/google/uuid"
)

type Facility struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	District  *string   `json:"district,omitempty"`
	Contact   *string   `json:"contact,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
