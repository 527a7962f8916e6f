package media

import (
	"bytes"
	"context"
	"fmt"
	"path"
	"strings"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
	"github.com/google/uuid"
)

// CloudinaryUploader implements Uploader against the Cloudinary upload API.
type CloudinaryUploader struct {
	cld *cloudinary.Cloudinary
}

// NewCloudinaryUploader constructs an uploader from a cloudinary:// credential URL.
func NewCloudinaryUploader(cloudinaryURL string) (*CloudinaryUploader, error) {
	cld, err := cloudinary.NewFromURL(cloudinaryURL)
	if err != nil {
		return nil, fmt.Errorf("media.NewCloudinaryUploader: %w", err)
	}
	cld.Config.URL.Secure = true
	return &CloudinaryUploader{cld: cld}, nil
}

// Upload stores one image buffer under the given folder tag and returns its
// public URL. The public ID is derived from the original filename plus a
// random suffix so repeated uploads of identically-named files never collide.
func (u *CloudinaryUploader) Upload(ctx context.Context, f File, folder string) (Asset, error) {
	resp, err := u.cld.Upload.Upload(ctx, bytes.NewReader(f.Data), uploader.UploadParams{
		Folder:   folder,
		PublicID: publicIDFor(f.Name),
	})
	if err != nil {
		return Asset{}, fmt.Errorf("media.CloudinaryUploader.Upload: %w", err)
	}
	// Cloudinary reports some failures (quota, invalid file) in the response
	// body with a 200 status, so the error field must be checked as well.
	if resp.Error.Message != "" {
		return Asset{}, fmt.Errorf("media.CloudinaryUploader.Upload: %s", resp.Error.Message)
	}
	return Asset{URL: resp.SecureURL, PublicID: resp.PublicID}, nil
}

// Delete removes an uploaded asset by its public ID.
func (u *CloudinaryUploader) Delete(ctx context.Context, publicID string) error {
	resp, err := u.cld.Upload.Destroy(ctx, uploader.DestroyParams{PublicID: publicID})
	if err != nil {
		return fmt.Errorf("media.CloudinaryUploader.Delete: %w", err)
	}
	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("media.CloudinaryUploader.Delete: %s", resp.Result)
	}
	return nil
}

// publicIDFor builds a storage ID from the uploaded filename: the base name
// without extension, lowercased, plus a short random suffix.
func publicIDFor(filename string) string {
	base := strings.TrimSuffix(path.Base(filename), path.Ext(filename))
	base = strings.ToLower(strings.ReplaceAll(strings.TrimSpace(base), " ", "-"))
	if base == "" || base == "." {
		base = "image"
	}
	return base + "-" + uuid.NewString()[:8]
}
