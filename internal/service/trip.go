package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/voyageur/backend/internal/domain"
	"github.com/voyageur/backend/internal/media"
	"github.com/voyageur/backend/internal/repo"
)

// TripService implements the ingestion pipeline and lookups for Trips.
type TripService struct {
	repo     repo.TripRepo
	uploader media.Uploader
}

// NewTripService constructs a TripService backed by the provided repo and
// object-storage uploader.
func NewTripService(r repo.TripRepo, up media.Uploader) *TripService {
	return &TripService{repo: r, uploader: up}
}

// Create runs the trip ingestion pipeline. Preconditions are checked in a
// fixed order, each failing fast before any upload happens:
//
//  1. the id must be a positive integer (the client supplies it)
//  2. the store must be reachable
//  3. no existing trip may have the same id
//  4. at least one image file must be present (and at most four)
//
// Only then are the images uploaded concurrently, the record assembled
// (blank activities and journal entries dropped, totalExpenses recomputed
// from the expenses map), and the document persisted. If persistence fails
// after the uploads succeeded, the uploaded assets are deleted best-effort.
func (s *TripService) Create(ctx context.Context, t domain.Trip, files []media.File) (domain.Trip, error) {
	if t.ID <= 0 {
		return domain.Trip{}, fmt.Errorf("%w: trip id must be a positive integer", domain.ErrValidation)
	}

	if err := s.repo.Ping(ctx); err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w: %v", domain.ErrUpstream, err)
	}

	exists, err := s.repo.ExistsByID(ctx, t.ID)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	if exists {
		return domain.Trip{}, fmt.Errorf("%w: trip with id %d already exists", domain.ErrConflict, t.ID)
	}

	if len(files) == 0 {
		return domain.Trip{}, fmt.Errorf("%w: at least one image is required", domain.ErrValidation)
	}
	if len(files) > domain.MaxImages {
		return domain.Trip{}, fmt.Errorf("%w: at most %d images are allowed", domain.ErrValidation, domain.MaxImages)
	}

	assets, err := uploadAll(ctx, s.uploader, files, tripFolder)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}

	now := time.Now().UTC()
	t.Activities = dropBlank(t.Activities)
	t.JournalEntries = dropBlankEntries(t.JournalEntries)
	t.TotalExpenses = sumExpenses(t.Expenses)
	t.Images = assetURLs(assets)
	t.CreatedAt = now
	t.UpdatedAt = now

	created, err := s.repo.Create(ctx, t)
	if err != nil {
		destroyAll(ctx, s.uploader, assets)
		return domain.Trip{}, fmt.Errorf("service.TripService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single trip by its client-supplied id.
func (s *TripService) GetByID(ctx context.Context, id int) (domain.Trip, error) {
	t, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Trip{}, fmt.Errorf("service.TripService.GetByID: %w", err)
	}
	return t, nil
}

// List returns trips ordered by id ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *TripService) List(ctx context.Context, page domain.PaginationParams) ([]domain.Trip, error) {
	trips, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("service.TripService.List: %w", err)
	}
	if trips == nil {
		return []domain.Trip{}, nil
	}
	return trips, nil
}

// Update merges the provided fields into an existing trip.
// Returns domain.ErrNotFound if no trip with that id exists.
func (s *TripService) Update(ctx context.Context, id int, upd domain.TripUpdate) error {
	if err := s.repo.Update(ctx, id, upd); err != nil {
		return fmt.Errorf("service.TripService.Update: %w", err)
	}
	return nil
}

// Delete removes a trip by id. Uploaded assets are left in place.
func (s *TripService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.TripService.Delete: %w", err)
	}
	return nil
}

// dropBlank filters whitespace-only strings, preserving order.
func dropBlank(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		if strings.TrimSpace(s) != "" {
			out = append(out, s)
		}
	}
	return out
}

// dropBlankEntries filters journal entries with an empty date or blank text,
// preserving order.
func dropBlankEntries(in []domain.JournalEntry) []domain.JournalEntry {
	out := make([]domain.JournalEntry, 0, len(in))
	for _, e := range in {
		if e.Date != "" && strings.TrimSpace(e.Entry) != "" {
			out = append(out, e)
		}
	}
	return out
}

// sumExpenses recomputes the total from the expenses map. The client sends a
// totalExpenses of its own; it is ignored in favor of the server-side sum.
func sumExpenses(expenses map[string]float64) float64 {
	var total float64
	for _, v := range expenses {
		total += v
	}
	return total
}
