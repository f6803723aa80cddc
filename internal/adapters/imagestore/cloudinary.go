package imagestore

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

const resourceTypeImage = "image"

type Config struct {
	BaseURL   string // upload API prefix, https://api.cloudinary.com when empty
	CloudName string
	APIKey    string
	APISecret string
}

// CloudinaryClient stores listing, portfolio and site images in Cloudinary.
type CloudinaryClient struct {
	cld *cloudinary.Cloudinary
}

func NewCloudinaryClient(cfg Config, httpClient *http.Client) (*CloudinaryClient, error) {
	if cfg.CloudName == "" || cfg.APIKey == "" || cfg.APISecret == "" {
		return nil, fmt.Errorf("cloudinary cloud name, api key and api secret are required")
	}
	cld, err := cloudinary.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}
	if cfg.BaseURL != "" {
		cld.Upload.Config.API.UploadPrefix = strings.TrimRight(cfg.BaseURL, "/")
	}
	if httpClient != nil {
		cld.Upload.Client = *httpClient
	}
	return &CloudinaryClient{cld: cld}, nil
}

var _ port.ImageStoragePort = (*CloudinaryClient)(nil)

func (c *CloudinaryClient) Upload(ctx context.Context, in port.UploadImageInput) (*port.StoredImage, error) {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CloudinaryClient",
		"method":    "Upload",
		"folder":    in.Folder,
		"size":      len(in.Data),
	})

	logger.Debug("Uploading image to Cloudinary", nil)
	res, err := c.cld.Upload.Upload(ctx, bytes.NewReader(in.Data), uploader.UploadParams{
		Folder:       in.Folder,
		ResourceType: resourceTypeImage,
	})
	if err != nil {
		logger.Error("Cloudinary upload failed", err, nil)
		return nil, fmt.Errorf("cloudinary upload failed: %w", err)
	}
	if res.Error.Message != "" {
		err := fmt.Errorf("cloudinary upload rejected: %s", res.Error.Message)
		logger.Error("Cloudinary upload failed", err, nil)
		return nil, err
	}

	stored := &port.StoredImage{
		URL:      res.SecureURL,
		PublicID: res.PublicID,
		Width:    res.Width,
		Height:   res.Height,
		Bytes:    int64(res.Bytes),
	}
	if stored.URL == "" {
		stored.URL = res.URL
	}
	if stored.PublicID == "" {
		return nil, fmt.Errorf("cloudinary upload returned no public id")
	}
	logger.Info("Image uploaded", port.Fields{"public_id": stored.PublicID})
	return stored, nil
}

// Delete destroys the asset. A missing asset is not an error.
func (c *CloudinaryClient) Delete(ctx context.Context, publicID string) error {
	logger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"component": "CloudinaryClient",
		"method":    "Delete",
		"public_id": publicID,
	})
	if strings.TrimSpace(publicID) == "" {
		return fmt.Errorf("%w: public id is empty", domain.ErrNotFound)
	}

	res, err := c.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:     publicID,
		ResourceType: resourceTypeImage,
	})
	if err != nil {
		logger.Error("Cloudinary destroy failed", err, nil)
		return fmt.Errorf("cloudinary destroy failed: %w", err)
	}
	if res.Error.Message != "" {
		err := fmt.Errorf("cloudinary destroy rejected: %s", res.Error.Message)
		logger.Error("Cloudinary destroy failed", err, nil)
		return err
	}

	switch res.Result {
	case "ok":
		logger.Info("Image deleted", nil)
	case "not found":
		logger.Warn("Image was already absent in Cloudinary", nil)
	default:
		err := fmt.Errorf("cloudinary destroy returned result %q", res.Result)
		logger.Error("Unexpected destroy result", err, nil)
		return err
	}
	return nil
}
