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

type PlaceOrderUseCase struct {
	repo port.ProductRepositoryPort
}

func NewPlaceOrderUseCase(repo port.ProductRepositoryPort) *PlaceOrderUseCase {
	return &PlaceOrderUseCase{repo: repo}
}

func (uc *PlaceOrderUseCase) Execute(ctx context.Context, productID uuid.UUID, in domain.OrderInput) (*domain.ProductOrder, error) {
	if err := in.Validate(); err != nil {
		return nil, err
	}
	ucLogger := contextkeys.LoggerFromContext(ctx).WithFields(port.Fields{
		"use_case":   "PlaceOrder",
		"product_id": productID,
		"quantity":   in.Quantity,
	})

	order := &domain.ProductOrder{
		ID:        uuid.New(),
		ProductID: productID,
		Quantity:  in.Quantity,
		Name:      cleanText(in.Name),
		Phone:     domain.NormalizePhone(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Notes:     cleanText(in.Notes),
		Status:    domain.OrderNew,
		CreatedAt: time.Now().UTC(),
	}
	if err := uc.repo.PlaceOrder(ctx, order); err != nil {
		ucLogger.Warn("Order not placed", port.Fields{"reason": err.Error()})
		return nil, err
	}
	ucLogger.Info("Order placed", port.Fields{"order_id": order.ID})
	return order, nil
}

type ListOrdersUseCase struct {
	repo port.ProductRepositoryPort
}

func NewListOrdersUseCase(repo port.ProductRepositoryPort) *ListOrdersUseCase {
	return &ListOrdersUseCase{repo: repo}
}

func (uc *ListOrdersUseCase) Execute(ctx context.Context, limit, offset int) ([]domain.ProductOrder, int, error) {
	page := domain.ListingRequestFilter{Limit: limit, Offset: offset}.Normalize()
	return uc.repo.ListOrders(ctx, page.Limit, page.Offset)
}
