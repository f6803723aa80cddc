package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

const DefaultCurrency = "EGP"

// Product is a storefront item. Price is in piasters.
type Product struct {
	ID          uuid.UUID `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	Price       int64     `json:"price"`
	Currency    string    `json:"currency"`
	ImageURL    string    `json:"imageUrl"`
	Stock       int       `json:"stock"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}

type ProductInput struct {
	Name        string `json:"name"`
	Slug        string `json:"slug"`
	Description string `json:"description"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	ImageURL    string `json:"imageUrl"`
	Stock       int    `json:"stock"`
	Active      bool   `json:"active"`
}

func (in ProductInput) Validate() error {
	v := NewValidationError()
	if strings.TrimSpace(in.Name) == "" {
		v.Add("name", MsgRequired)
	}
	if in.Price <= 0 {
		v.Add("price", MsgMustBePositive)
	}
	validateNonNegative(v, "stock", in.Stock)
	ValidateOptionalURL(v, "imageUrl", in.ImageURL)
	return v.OrNil()
}

type OrderStatus string

const (
	OrderNew       OrderStatus = "new"
	OrderConfirmed OrderStatus = "confirmed"
	OrderCancelled OrderStatus = "cancelled"
)

type ProductOrder struct {
	ID        uuid.UUID   `json:"id"`
	ProductID uuid.UUID   `json:"productId"`
	Quantity  int         `json:"quantity"`
	Total     int64       `json:"total"`
	Name      string      `json:"name"`
	Phone     string      `json:"phone"`
	Email     string      `json:"email"`
	Notes     string      `json:"notes"`
	Status    OrderStatus `json:"status"`
	CreatedAt time.Time   `json:"createdAt"`
}

type OrderInput struct {
	Quantity int    `json:"quantity"`
	Name     string `json:"name"`
	Phone    string `json:"phone"`
	Email    string `json:"email"`
	Notes    string `json:"notes"`
}

const MaxOrderQuantity = 100

func (in OrderInput) Validate() error {
	v := NewValidationError()
	if in.Quantity < 1 || in.Quantity > MaxOrderQuantity {
		v.Add("quantity", "الكمية غير صالحة")
	}
	ValidateName(v, "name", in.Name)
	ValidatePhone(v, "phone", in.Phone)
	ValidateOptionalEmail(v, "email", in.Email)
	return v.OrNil()
}
