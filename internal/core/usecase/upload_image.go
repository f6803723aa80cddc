package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
)

type UploadImageUseCase struct {
	storage    port.ImageStoragePort
	processor  port.ImageProcessorPort
	metrics    port.MetricsPort
	folderRoot string
	maxBytes   int64
	timeout    time.Duration
}

func NewUploadImageUseCase(storage port.ImageStoragePort, processor port.ImageProcessorPort, metrics port.MetricsPort, cfg ImageIntakeConfig) *UploadImageUseCase {
	return &UploadImageUseCase{
		storage:    storage,
		processor:  processor,
		metrics:    metrics,
		folderRoot: cfg.FolderRoot,
		maxBytes:   cfg.MaxBytes,
		timeout:    cfg.Timeout,
	}
}

func (uc *UploadImageUseCase) Execute(ctx context.Context, uploadType string, file domain.ImageFile) (*port.StoredImage, error) {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":    "UploadImage",
		"upload_type": uploadType,
		"filename":    file.Filename,
		"size":        len(file.Data),
	})

	folder, err := domain.UploadFolder(uc.folderRoot, uploadType)
	if err != nil {
		return nil, err
	}
	if len(file.Data) == 0 {
		v := domain.NewValidationError()
		v.Add("file", domain.MsgRequired)
		return nil, v
	}
	if uc.maxBytes > 0 && int64(len(file.Data)) > uc.maxBytes {
		uc.metrics.ImageUpload("rejected")
		return nil, domain.ErrImageTooLarge
	}
	contentType, err := uc.processor.DetectContentType(file.Data)
	if err != nil {
		uc.metrics.ImageUpload("rejected")
		return nil, err
	}

	if uc.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, uc.timeout)
		defer cancel()
	}

	stored, err := uc.storage.Upload(ctx, port.UploadImageInput{
		Folder:      folder,
		Filename:    file.Filename,
		ContentType: contentType,
		Data:        file.Data,
	})
	if err != nil {
		uc.metrics.ImageUpload("error")
		ucLogger.Error("Image upload failed", err, nil)
		return nil, fmt.Errorf("image upload failed: %w", err)
	}

	uc.metrics.ImageUpload("ok")
	ucLogger.Info("Image uploaded", port.Fields{"public_id": stored.PublicID})
	return stored, nil
}
