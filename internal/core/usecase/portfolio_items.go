package usecase

import (
	"context"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
	"github.com/mmcloughlin/geohash"
)

// geohashPrecision of 9 characters is about 5 m, enough for map clustering.
const geohashPrecision = 9

func portfolioGeohash(lat, lng *float64) string {
	if lat == nil || lng == nil {
		return ""
	}
	return geohash.EncodeWithPrecision(*lat, *lng, geohashPrecision)
}

type ListPortfolioUseCase struct {
	repo port.PortfolioRepositoryPort
}

func NewListPortfolioUseCase(repo port.PortfolioRepositoryPort) *ListPortfolioUseCase {
	return &ListPortfolioUseCase{repo: repo}
}

func (uc *ListPortfolioUseCase) Execute(ctx context.Context, filter domain.PortfolioFilter) ([]domain.PortfolioItem, error) {
	if filter.Category != "" && !domain.IsPortfolioCategory(filter.Category) {
		v := domain.NewValidationError()
		v.Add("category", domain.MsgInvalidChoice)
		return nil, v
	}
	return uc.repo.List(ctx, filter)
}

type GetPortfolioItemUseCase struct {
	repo port.PortfolioRepositoryPort
}

func NewGetPortfolioItemUseCase(repo port.PortfolioRepositoryPort) *GetPortfolioItemUseCase {
	return &GetPortfolioItemUseCase{repo: repo}
}

func (uc *GetPortfolioItemUseCase) Execute(ctx context.Context, id uuid.UUID) (*domain.PortfolioItem, error) {
	return uc.repo.FindByID(ctx, id)
}

type CreatePortfolioItemUseCase struct {
	repo port.PortfolioRepositoryPort
}

func NewCreatePortfolioItemUseCase(repo port.PortfolioRepositoryPort) *CreatePortfolioItemUseCase {
	return &CreatePortfolioItemUseCase{repo: repo}
}

func (uc *CreatePortfolioItemUseCase) Execute(ctx context.Context, in domain.PortfolioInput) (*domain.PortfolioItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	title := cleanText(in.Title)
	item := &domain.PortfolioItem{
		ID:          uuid.New(),
		Title:       title,
		Slug:        slugOr(in.Slug, title),
		Category:    in.Category,
		Location:    in.Location,
		Latitude:    in.Latitude,
		Longitude:   in.Longitude,
		Geohash:     portfolioGeohash(in.Latitude, in.Longitude),
		Description: cleanText(in.Description),
		CoverImage:  in.CoverImage,
		Images:      []domain.PortfolioImage{},
		Featured:    in.Featured,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "CreatePortfolioItem",
		"slug":     item.Slug,
	})
	if err := uc.repo.Create(ctx, item); err != nil {
		ucLogger.Error("Failed to create portfolio item", err, nil)
		return nil, err
	}
	ucLogger.Info("Portfolio item created", port.Fields{"item_id": item.ID})
	return item, nil
}

type UpdatePortfolioItemUseCase struct {
	repo port.PortfolioRepositoryPort
}

func NewUpdatePortfolioItemUseCase(repo port.PortfolioRepositoryPort) *UpdatePortfolioItemUseCase {
	return &UpdatePortfolioItemUseCase{repo: repo}
}

func (uc *UpdatePortfolioItemUseCase) Execute(ctx context.Context, id uuid.UUID, in domain.PortfolioInput) (*domain.PortfolioItem, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	item.Title = cleanText(in.Title)
	item.Slug = slugOr(in.Slug, item.Title)
	item.Category = in.Category
	item.Location = in.Location
	item.Latitude = in.Latitude
	item.Longitude = in.Longitude
	item.Geohash = portfolioGeohash(in.Latitude, in.Longitude)
	item.Description = cleanText(in.Description)
	item.CoverImage = in.CoverImage
	item.Featured = in.Featured
	item.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, item); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to update portfolio item", err, port.Fields{
			"use_case": "UpdatePortfolioItem",
			"item_id":  id,
		})
		return nil, err
	}
	return item, nil
}

// DeletePortfolioItemUseCase removes the project and then its gallery assets.
type DeletePortfolioItemUseCase struct {
	repo    port.PortfolioRepositoryPort
	storage port.ImageStoragePort
}

func NewDeletePortfolioItemUseCase(repo port.PortfolioRepositoryPort, storage port.ImageStoragePort) *DeletePortfolioItemUseCase {
	return &DeletePortfolioItemUseCase{repo: repo, storage: storage}
}

func (uc *DeletePortfolioItemUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case": "DeletePortfolioItem",
		"item_id":  id,
	})

	item, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if err := uc.repo.Delete(ctx, id); err != nil {
		ucLogger.Error("Failed to delete portfolio item", err, nil)
		return err
	}

	// Rows are gone already; asset failures only leave orphans behind.
	for _, img := range item.Images {
		if img.PublicID == "" {
			continue
		}
		if err := uc.storage.Delete(ctx, img.PublicID); err != nil {
			ucLogger.Error("Failed to delete portfolio asset", err, port.Fields{"public_id": img.PublicID})
		}
	}
	ucLogger.Info("Portfolio item deleted", port.Fields{"images": len(item.Images)})
	return nil
}
