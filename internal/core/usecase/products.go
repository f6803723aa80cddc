package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
)

type ListProductsUseCase struct {
	repo port.ProductRepositoryPort
}

func NewListProductsUseCase(repo port.ProductRepositoryPort) *ListProductsUseCase {
	return &ListProductsUseCase{repo: repo}
}

func (uc *ListProductsUseCase) Execute(ctx context.Context, onlyActive bool) ([]domain.Product, error) {
	return uc.repo.List(ctx, onlyActive)
}

type GetProductUseCase struct {
	repo port.ProductRepositoryPort
}

func NewGetProductUseCase(repo port.ProductRepositoryPort) *GetProductUseCase {
	return &GetProductUseCase{repo: repo}
}

// Execute hides inactive products from the storefront when onlyActive is set.
func (uc *GetProductUseCase) Execute(ctx context.Context, id uuid.UUID, onlyActive bool) (*domain.Product, error) {
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if onlyActive && !p.Active {
		return nil, domain.ErrNotFound
	}
	return p, nil
}

type SaveProductUseCase struct {
	repo port.ProductRepositoryPort
}

func NewSaveProductUseCase(repo port.ProductRepositoryPort) *SaveProductUseCase {
	return &SaveProductUseCase{repo: repo}
}

func currencyOrDefault(c string) string {
	c = strings.ToUpper(strings.TrimSpace(c))
	if c == "" {
		return domain.DefaultCurrency
	}
	return c
}

func (uc *SaveProductUseCase) Create(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	p := &domain.Product{
		ID:          uuid.New(),
		Name:        cleanText(in.Name),
		Slug:        slugOr(in.Slug, cleanText(in.Name)),
		Description: cleanText(in.Description),
		Price:       in.Price,
		Currency:    currencyOrDefault(in.Currency),
		ImageURL:    in.ImageURL,
		Stock:       in.Stock,
		Active:      in.Active,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, p); err != nil {
		contextkeys.LoggerFromContext(ctx).Error("Failed to create product", err, port.Fields{
			"use_case": "SaveProduct",
			"slug":     p.Slug,
		})
		return nil, err
	}
	return p, nil
}

func (uc *SaveProductUseCase) Update(ctx context.Context, id uuid.UUID, in domain.ProductInput) (*domain.Product, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	p, err := uc.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	p.Name = cleanText(in.Name)
	p.Slug = slugOr(in.Slug, p.Name)
	p.Description = cleanText(in.Description)
	p.Price = in.Price
	p.Currency = currencyOrDefault(in.Currency)
	p.ImageURL = in.ImageURL
	p.Stock = in.Stock
	p.Active = in.Active
	p.UpdatedAt = time.Now().UTC()

	if err := uc.repo.Update(ctx, p); err != nil {
		return nil, err
	}
	return p, nil
}

type DeleteProductUseCase struct {
	repo port.ProductRepositoryPort
}

func NewDeleteProductUseCase(repo port.ProductRepositoryPort) *DeleteProductUseCase {
	return &DeleteProductUseCase{repo: repo}
}

func (uc *DeleteProductUseCase) Execute(ctx context.Context, id uuid.UUID) error {
	return uc.repo.Delete(ctx, id)
}
