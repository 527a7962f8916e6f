package service

import (
	"context"
	"fmt"

	"github.com/voyageur/backend/internal/domain"
	"github.com/voyageur/backend/internal/repo"
)

// ExportService assembles a flat export of all trips and their journal entries.
type ExportService struct {
	trips repo.TripRepo
}

// NewExportService constructs an ExportService backed by the provided TripRepo.
func NewExportService(trips repo.TripRepo) *ExportService {
	return &ExportService{trips: trips}
}

// Rows returns one TripExportRow per journal entry across all trips, ordered
// by trip id. Trips with no journal entries contribute one row with empty
// journal fields, so every trip appears in the export.
func (s *ExportService) Rows(ctx context.Context) ([]domain.TripExportRow, error) {
	trips, err := s.trips.List(ctx, domain.PaginationParams{Page: 1})
	if err != nil {
		return nil, fmt.Errorf("service.ExportService.Rows: %w", err)
	}

	rows := make([]domain.TripExportRow, 0, len(trips))
	for _, t := range trips {
		base := domain.TripExportRow{
			TripID:        t.ID,
			TripName:      t.TripName,
			Destination:   t.Destination,
			StartDate:     t.StartDate,
			EndDate:       t.EndDate,
			TotalExpenses: t.TotalExpenses,
		}
		if len(t.JournalEntries) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, e := range t.JournalEntries {
			row := base
			row.JournalDate = e.Date
			row.JournalEntry = e.Entry
			rows = append(rows, row)
		}
	}
	return rows, nil
}
