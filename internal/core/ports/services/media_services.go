package services

import "context"

// MediaUploadResult describes an asset stored on the media host.
type MediaUploadResult struct {
	URL      string
	PublicID string
}

// MediaStore is the port for the remote media host. Implementations must
// remove the local temp file after attempting an upload, regardless of the
// outcome, to bound local-disk usage.
type MediaStore interface {
	// Upload stores the file at localPath remotely and returns its public URL
	// and storage identifier.
	Upload(ctx context.Context, localPath string) (*MediaUploadResult, error)

	// Delete removes a previously stored asset by its public id.
	Delete(ctx context.Context, publicID string) error
}
