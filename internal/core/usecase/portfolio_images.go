package usecase

import (
	"context"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
)

type AddPortfolioImageUseCase struct {
	repo port.PortfolioRepositoryPort
}

func NewAddPortfolioImageUseCase(repo port.PortfolioRepositoryPort) *AddPortfolioImageUseCase {
	return &AddPortfolioImageUseCase{repo: repo}
}

func (uc *AddPortfolioImageUseCase) Execute(ctx context.Context, in domain.PortfolioImageInput) (*domain.PortfolioImage, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	img := &domain.PortfolioImage{
		ID:       uuid.New(),
		ItemID:   in.ItemID,
		URL:      in.URL,
		PublicID: in.PublicID,
		Caption:  in.Caption,
	}
	if err := uc.repo.AddImage(ctx, img); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to attach portfolio image", err, port.Fields{
			"use_case": "AddPortfolioImage",
			"item_id":  in.ItemID,
		})
		return nil, err
	}
	return img, nil
}

type ReorderPortfolioImagesUseCase struct {
	repo port.PortfolioRepositoryPort
}

func NewReorderPortfolioImagesUseCase(repo port.PortfolioRepositoryPort) *ReorderPortfolioImagesUseCase {
	return &ReorderPortfolioImagesUseCase{repo: repo}
}

// Execute requires imageIDs to be exactly the gallery of the item, in the new order.
func (uc *ReorderPortfolioImagesUseCase) Execute(ctx context.Context, itemID uuid.UUID, imageIDs []uuid.UUID) (*domain.PortfolioItem, error) {
	item, err := uc.repo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	current := make(map[uuid.UUID]bool, len(item.Images))
	for _, img := range item.Images {
		current[img.ID] = true
	}
	seen := make(map[uuid.UUID]bool, len(imageIDs))
	for _, id := range imageIDs {
		if !current[id] || seen[id] {
			return nil, domain.ErrImageNotFound
		}
		seen[id] = true
	}
	if len(seen) != len(current) {
		v := domain.NewValidationError()
		v.Add("imageIds", domain.MsgRequired)
		return nil, v
	}

	if err := uc.repo.ReorderImages(ctx, itemID, imageIDs); err != nil {
		return nil, err
	}
	return uc.repo.FindByID(ctx, itemID)
}

type DeletePortfolioImageUseCase struct {
	repo    port.PortfolioRepositoryPort
	storage port.ImageStoragePort
}

func NewDeletePortfolioImageUseCase(repo port.PortfolioRepositoryPort, storage port.ImageStoragePort) *DeletePortfolioImageUseCase {
	return &DeletePortfolioImageUseCase{repo: repo, storage: storage}
}

func (uc *DeletePortfolioImageUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "DeletePortfolioImage",
		"image_id": id,
	})

	img, err := uc.repo.FindImage(ctx, id)
	if err != nil {
		return err
	}
	if img.PublicID != "" {
		if err := uc.storage.Delete(ctx, img.PublicID); err != nil {
			ucLogger.Error("Failed to delete image asset", err, port.Fields{"public_id": img.PublicID})
			return err
		}
	}
	if err := uc.repo.DeleteImage(ctx, id); err != nil {
		ucLogger.Error("Failed to delete image row", err, nil)
		return err
	}
	return nil
}
