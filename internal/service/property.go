package service

import (
	"context"
	"fmt"
	"time"

	"github.com/voyageur/backend/internal/domain"
	"github.com/voyageur/backend/internal/media"
	"github.com/voyageur/backend/internal/repo"
)

// PropertyService implements the ingestion pipeline and lookups for Properties.
type PropertyService struct {
	repo     repo.PropertyRepo
	uploader media.Uploader
}

// NewPropertyService constructs a PropertyService backed by the provided repo
// and object-storage uploader.
func NewPropertyService(r repo.PropertyRepo, up media.Uploader) *PropertyService {
	return &PropertyService{repo: r, uploader: up}
}

// Create runs the property ingestion pipeline: reserve the next id, upload all
// images concurrently, assemble the record, persist it. Images are optional
// (0..4). If persistence fails after the uploads succeeded, the uploaded
// assets are deleted best-effort.
//
// The incoming Property carries only client-writable fields; id, images,
// is_featured, and the timestamps are overwritten here.
func (s *PropertyService) Create(ctx context.Context, p domain.Property, files []media.File) (domain.Property, error) {
	if len(files) > domain.MaxImages {
		return domain.Property{}, fmt.Errorf("%w: at most %d images are allowed", domain.ErrValidation, domain.MaxImages)
	}

	id, err := s.repo.NextID(ctx)
	if err != nil {
		return domain.Property{}, fmt.Errorf("service.PropertyService.Create: %w", err)
	}

	assets, err := uploadAll(ctx, s.uploader, files, propertyFolder)
	if err != nil {
		return domain.Property{}, fmt.Errorf("service.PropertyService.Create: %w", err)
	}

	now := time.Now().UTC()
	p.ID = id
	p.Images = assetURLs(assets)
	p.IsFeatured = false
	p.CreatedAt = now
	p.UpdatedAt = now

	created, err := s.repo.Create(ctx, p)
	if err != nil {
		destroyAll(ctx, s.uploader, assets)
		return domain.Property{}, fmt.Errorf("service.PropertyService.Create: %w", err)
	}
	return created, nil
}

// GetByID returns a single property by id.
func (s *PropertyService) GetByID(ctx context.Context, id int) (domain.Property, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return domain.Property{}, fmt.Errorf("service.PropertyService.GetByID: %w", err)
	}
	return p, nil
}

// List returns properties ordered by id ascending.
// Always returns a non-nil slice so callers can safely range over it.
func (s *PropertyService) List(ctx context.Context, page domain.PaginationParams) ([]domain.Property, error) {
	props, err := s.repo.List(ctx, page)
	if err != nil {
		return nil, fmt.Errorf("service.PropertyService.List: %w", err)
	}
	if props == nil {
		return []domain.Property{}, nil
	}
	return props, nil
}

// ListFeatured returns all featured properties ordered by id ascending.
func (s *PropertyService) ListFeatured(ctx context.Context) ([]domain.Property, error) {
	props, err := s.repo.ListFeatured(ctx)
	if err != nil {
		return nil, fmt.Errorf("service.PropertyService.ListFeatured: %w", err)
	}
	if props == nil {
		return []domain.Property{}, nil
	}
	return props, nil
}

// Update merges the provided fields into an existing property.
// Returns domain.ErrNotFound if no property with that id exists.
func (s *PropertyService) Update(ctx context.Context, id int, upd domain.PropertyUpdate) error {
	if err := s.repo.Update(ctx, id, upd); err != nil {
		return fmt.Errorf("service.PropertyService.Update: %w", err)
	}
	return nil
}

// Delete removes a property by id. Uploaded assets are left in place.
func (s *PropertyService) Delete(ctx context.Context, id int) error {
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("service.PropertyService.Delete: %w", err)
	}
	return nil
}
