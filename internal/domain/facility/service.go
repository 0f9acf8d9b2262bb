package facility

import (
	"context"
	"strings"

	"github.com/google/uuid"

	"github.com/caretrack/caretrack/pkg/apperr"
)

type Service struct {
	facilities Repository
}

func NewService(repo Repository) *Service {
	return &Service{facilities: repo}
}

func (s *Service) CreateFacility(ctx context.Context, f *Facility) error {
	if strings.TrimSpace(f.Name) == "" {
		return apperr.Validation("name", "name is required")
	}
	return s.facilities.Create(ctx, f)
}

func (s *Service) GetFacility(ctx context.Context, id uuid.UUID) (*Facility, error) {
	return s.facilities.GetByID(ctx, id)
}

func (s *Service) ListFacilities(ctx context.Context, limit, offset int) ([]*Facility, int, error) {
	return s.facilities.List(ctx, limit, offset)
}

func (s *Service) UpdateFacility(ctx context.Context, f *Facility) error {
	if strings.TrimSpace(f.Name) == "" {
		return apperr.Validation("name", "name is required")
	}
	return s.facilities.Update(ctx, f)
}

// DeleteFacility removes the facility and everything registered under it.
// The repository performs the cascade in one transaction so a failure leaves
// the register untouched.
func (s *Service) DeleteFacility(ctx context.Context, id uuid.UUID) error {
	return s.facilities.Delete(ctx, id)
}
