package port

// ProcessedImage is the local analysis of an uploaded picture.
type ProcessedImage struct {
	ContentType    string
	PreviewDataURL string
	Hash           uint64
	Width          int
	Height         int
}

// ImageProcessorPort sniffs, decodes, thumbnails and hashes image bytes.
type ImageProcessorPort interface {
	// DetectContentType returns the sniffed MIME type or domain.ErrUnsupportedImageType.
	DetectContentType(data []byte) (string, error)
	Process(data []byte) (*ProcessedImage, error)
}
