package importer

import (
	"context"

	"github.com/google/uuid"

	"github.com/caretrack/caretrack/internal/domain/client"
)

type Service struct {
	clients *client.Service
}

func NewService(clients *client.Service) *Service {
	return &Service{clients: clients}
}

// RowResult reports the outcome for one input row, by position.
type RowResult struct {
	Row      int       `json:"row"`
	ClientID uuid.UUID `json:"client_id,omitempty"`
	Warnings []Warning `json:"warnings,omitempty"`
	Error    string    `json:"error,omitempty"`
}

// Result summarizes a whole import request.
type Result struct {
	Imported int         `json:"imported"`
	Failed   int         `json:"failed"`
	Rows     []RowResult `json:"rows"`
}

// ImportRows reconciles and stores each row independently. A row that fails
// validation is reported in its result and does not stop the rows after it.
func (s *Service) ImportRows(ctx context.Context, facilityID uuid.UUID, rows []Row) *Result {
	res := &Result{Rows: make([]RowResult, 0, len(rows))}
	for i, row := range rows {
		c, warnings := Reconcile(row)
		c.FacilityID = facilityID
		rr := RowResult{Row: i, Warnings: warnings}
		if err := s.clients.CreateClient(ctx, c); err != nil {
			rr.Error = err.Error()
			res.Failed++
		} else {
			rr.ClientID = c.ID
			res.Imported++
		}
		res.Rows = append(res.Rows, rr)
	}
	return res
}
