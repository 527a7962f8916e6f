// Package service contains the business logic for the Voyageur API.
// The ingestion pipeline lives here: services validate inputs, orchestrate
// image uploads, assemble complete records, and persist them via repo
// interfaces. No queries and no HTTP concerns.
package service

import (
	"context"
	"fmt"
	"log/slog"

	"golang.org/x/sync/errgroup"

	"github.com/voyageur/backend/internal/domain"
	"github.com/voyageur/backend/internal/media"
)

// Folder tags under which uploaded assets are grouped on the storage host.
const (
	propertyFolder = "voyageur/properties"
	tripFolder     = "voyageur/trips"
)

// uploadAll uploads every file concurrently and returns the resulting assets
// in input order, regardless of completion order. The first failure cancels
// the group context and fails the whole batch: a resource is never persisted
// with a partially-uploaded image list.
func uploadAll(ctx context.Context, up media.Uploader, files []media.File, folder string) ([]media.Asset, error) {
	assets := make([]media.Asset, len(files))

	g, ctx := errgroup.WithContext(ctx)
	for i, f := range files {
		g.Go(func() error {
			a, err := up.Upload(ctx, f, folder)
			if err != nil {
				return err
			}
			assets[i] = a
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("%w: upload %s: %v", domain.ErrUpstream, folder, err)
	}

	return assets, nil
}

// destroyAll best-effort deletes previously uploaded assets after persistence
// failed. Failures are logged and swallowed: orphan cleanup must never mask
// the original error.
func destroyAll(ctx context.Context, up media.Uploader, assets []media.Asset) {
	for _, a := range assets {
		if err := up.Delete(ctx, a.PublicID); err != nil {
			slog.WarnContext(ctx, "orphaned upload cleanup failed",
				"public_id", a.PublicID, "error", err)
		}
	}
}

// assetURLs extracts the public URLs in order.
func assetURLs(assets []media.Asset) []string {
	urls := make([]string, len(assets))
	for i, a := range assets {
		urls[i] = a.URL
	}
	return urls
}
