package port

import (
	"context"
)

type UploadImageInput struct {
	Folder      string
	Filename    string
	ContentType string
	Data        []byte
}

type StoredImage struct {
	URL      string
	PublicID string
	Width    int
	Height   int
	Bytes    int64
}

// ImageStoragePort is the remote image CDN.
type ImageStoragePort interface {
	Upload(ctx context.Context, in UploadImageInput) (*StoredImage, error)
	Delete(ctx context.Context, publicID string) error
}
