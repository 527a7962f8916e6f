package service_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/voyageur/backend/internal/domain"
	"github.com/voyageur/backend/internal/service"
)

func TestExportService_Rows_OneRowPerJournalEntry(t *testing.T) {
	svc := service.NewExportService(&mockTripRepo{
		list: func(context.Context, domain.PaginationParams) ([]domain.Trip, error) {
			return []domain.Trip{
				{
					ID: 1, TripName: "Goa Trip", Destination: "Goa", TotalExpenses: 150,
					JournalEntries: []domain.JournalEntry{
						{Date: "2025-01-01", Entry: "arrived"},
						{Date: "2025-01-02", Entry: "beach day"},
					},
				},
				{ID: 2, TripName: "Quiet Weekend", Destination: "Tahoe"},
			}, nil
		},
	})

	rows, err := svc.Rows(context.Background())

	require.NoError(t, err)
	require.Len(t, rows, 3)

	assert.Equal(t, 1, rows[0].TripID)
	assert.Equal(t, "arrived", rows[0].JournalEntry)
	assert.Equal(t, "beach day", rows[1].JournalEntry)

	// A trip with no journal entries still contributes one row.
	assert.Equal(t, 2, rows[2].TripID)
	assert.Empty(t, rows[2].JournalDate)
	assert.Empty(t, rows[2].JournalEntry)
}

func TestExportService_Rows_EmptyStore(t *testing.T) {
	svc := service.NewExportService(&mockTripRepo{
		list: func(context.Context, domain.PaginationParams) ([]domain.Trip, error) { return nil, nil },
	})

	rows, err := svc.Rows(context.Background())

	require.NoError(t, err)
	assert.Empty(t, rows)
}
