package imaging

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"net/http"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/corona10/goimagehash"
	"github.com/nfnt/resize"
	_ "golang.org/x/image/webp"
)

const (
	DefaultPreviewSize = 320
	previewQuality     = 75
)

var allowedTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
	"image/gif":  true,
}

// Processor builds previews and perceptual hashes of uploaded pictures.
type Processor struct {
	previewSize uint
}

func NewProcessor(previewSize uint) *Processor {
	if previewSize == 0 {
		previewSize = DefaultPreviewSize
	}
	return &Processor{previewSize: previewSize}
}

var _ port.ImageProcessorPort = (*Processor)(nil)

// DetectContentType sniffs the leading bytes; the client-declared type is ignored.
func (p *Processor) DetectContentType(data []byte) (string, error) {
	ct := http.DetectContentType(data)
	if !allowedTypes[ct] {
		return "", fmt.Errorf("%w: %s", domain.ErrUnsupportedImageType, ct)
	}
	return ct, nil
}

func (p *Processor) Process(data []byte) (*port.ProcessedImage, error) {
	ct, err := p.DetectContentType(data)
	if err != nil {
		return nil, err
	}

	img, _, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("%w: cannot decode image: %v", domain.ErrUnsupportedImageType, err)
	}

	hash, err := goimagehash.PerceptionHash(img)
	if err != nil {
		return nil, fmt.Errorf("failed to hash image: %w", err)
	}

	thumb := resize.Thumbnail(p.previewSize, p.previewSize, img, resize.Lanczos3)
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: previewQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode preview: %w", err)
	}

	bounds := img.Bounds()
	return &port.ProcessedImage{
		ContentType:    ct,
		PreviewDataURL: "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()),
		Hash:           hash.GetHash(),
		Width:          bounds.Dx(),
		Height:         bounds.Dy(),
	}, nil
}
