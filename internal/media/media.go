// Package media is the object-storage client for the Voyageur API.
// It uploads image buffers to a remote asset host and returns stable URLs.
// The service layer depends on the Uploader interface, not the Cloudinary
// implementation, so tests can inject a fake.
package media

import "context"

// File is one image buffer received from a multipart creation request.
// The handler reads each part fully into memory (bounded by the request body
// limit) before handing it to the service layer.
type File struct {
	Name string
	Data []byte
}

// Asset is one uploaded object. URL is the public, fully-resolved URL that is
// persisted on the resource; PublicID is the storage-side identifier needed to
// delete the asset again.
type Asset struct {
	URL      string
	PublicID string
}

// Uploader is the contract the ingestion pipeline has with object storage.
// Upload stores a single file under the given folder tag and may fail on
// network, quota, or auth errors; the pipeline treats any failure as terminal
// for the whole containing request.
type Uploader interface {
	Upload(ctx context.Context, f File, folder string) (Asset, error)

	// Delete removes a previously uploaded asset. Used only for best-effort
	// compensation when persistence fails after a successful upload.
	Delete(ctx context.Context, publicID string) error
}
