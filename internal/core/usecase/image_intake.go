package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

const intakeConcurrency = 4

// ImageIntakeConfig bounds what a listing may carry.
type ImageIntakeConfig struct {
	FolderRoot string
	MaxBytes   int64
	MaxImages  int
	Timeout    time.Duration
}

// imageIntake turns raw files into listing images: preview, hash, then upload.
type imageIntake struct {
	processor port.ImageProcessorPort
	storage   port.ImageStoragePort
	metrics   port.MetricsPort
	cfg       ImageIntakeConfig
}

func newImageIntake(processor port.ImageProcessorPort, storage port.ImageStoragePort, metrics port.MetricsPort, cfg ImageIntakeConfig) *imageIntake {
	if cfg.MaxImages <= 0 {
		cfg.MaxImages = domain.DefaultMaxImages
	}
	return &imageIntake{processor: processor, storage: storage, metrics: metrics, cfg: cfg}
}

// prepare sniffs, decodes, previews and hashes every file concurrently.
// Results keep the input order. Nothing is uploaded yet.
func (in *imageIntake) prepare(ctx context.Context, files []domain.ImageFile) ([]domain.ListingImage, error) {
	out := make([]domain.ListingImage, len(files))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(intakeConcurrency)

	for i, f := range files {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			if in.cfg.MaxBytes > 0 && int64(len(f.Data)) > in.cfg.MaxBytes {
				in.metrics.ImageUpload("rejected")
				return fmt.Errorf("%s: %w", f.Filename, domain.ErrImageTooLarge)
			}
			contentType, err := in.processor.DetectContentType(f.Data)
			if err != nil {
				in.metrics.ImageUpload("rejected")
				return fmt.Errorf("%s: %w", f.Filename, err)
			}
			processed, err := in.processor.Process(f.Data)
			if err != nil {
				in.metrics.ImageUpload("rejected")
				return fmt.Errorf("%s: %w", f.Filename, err)
			}
			out[i] = domain.ListingImage{
				ID:             uuid.New(),
				PreviewDataURL: processed.PreviewDataURL,
				ContentType:    contentType,
				Size:           int64(len(f.Data)),
				Width:          processed.Width,
				Height:         processed.Height,
				Hash:           processed.Hash,
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return out, nil
}

// admit checks capacity and perceptual duplicates against the draft and within the batch.
func (in *imageIntake) admit(draft *domain.Draft, images []domain.ListingImage) error {
	if err := draft.CheckImageCapacity(len(images), in.cfg.MaxImages); err != nil {
		return err
	}
	for i, img := range images {
		if draft.IsDuplicate(img.Hash) {
			return domain.ErrDuplicateImage
		}
		for _, prev := range images[:i] {
			if domain.HashDistance(prev.Hash, img.Hash) <= domain.DuplicateHashDistance {
				return domain.ErrDuplicateImage
			}
		}
	}
	return nil
}

// upload stores the originals. When any upload fails the ones that succeeded are removed.
func (in *imageIntake) upload(ctx context.Context, files []domain.ImageFile, images []domain.ListingImage) error {
	folder, err := domain.UploadFolder(in.cfg.FolderRoot, domain.UploadTypeProperty)
	if err != nil {
		return err
	}
	if in.cfg.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, in.cfg.Timeout)
		defer cancel()
	}

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(intakeConcurrency)
	for i := range images {
		g.Go(func() error {
			stored, err := in.storage.Upload(gctx, port.UploadImageInput{
				Folder:      folder,
				Filename:    files[i].Filename,
				ContentType: images[i].ContentType,
				Data:        files[i].Data,
			})
			if err != nil {
				in.metrics.ImageUpload("error")
				return fmt.Errorf("%s: %w", files[i].Filename, err)
			}
			in.metrics.ImageUpload("ok")
			images[i].URL = stored.URL
			images[i].PublicID = stored.PublicID
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		in.discard(ctx, images)
		return err
	}
	return nil
}

// discard deletes stored assets; it survives cancellation of ctx.
func (in *imageIntake) discard(ctx context.Context, images []domain.ListingImage) {
	logger := contextkeys.LoggerFromContext(ctx)
	cleanupCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), 30*time.Second)
	defer cancel()

	for _, img := range images {
		if img.PublicID == "" {
			continue
		}
		if err := in.storage.Delete(cleanupCtx, img.PublicID); err != nil {
			logger.Error("Failed to delete orphaned image", err, port.Fields{"public_id": img.PublicID})
		}
	}
}

// intake runs the whole pipeline for draft and appends the results to it.
func (in *imageIntake) intake(ctx context.Context, draft *domain.Draft, files []domain.ImageFile, now time.Time) ([]domain.ListingImage, error) {
	if len(files) == 0 {
		v := domain.NewValidationError()
		v.Add("images", domain.MsgImagesRequired)
		return nil, v
	}
	if err := draft.CheckImageCapacity(len(files), in.cfg.MaxImages); err != nil {
		return nil, err
	}

	images, err := in.prepare(ctx, files)
	if err != nil {
		return nil, err
	}
	if err := in.admit(draft, images); err != nil {
		return nil, err
	}
	if err := in.upload(ctx, files, images); err != nil {
		return nil, err
	}
	for _, img := range images {
		if err := draft.AddImage(img, in.cfg.MaxImages, now); err != nil {
			in.discard(ctx, images)
			return nil, err
		}
	}
	return images, nil
}
