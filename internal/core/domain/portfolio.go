package domain

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

var PortfolioCategories = []Option{
	{"residential", "سكني"},
	{"commercial", "تجاري"},
	{"administrative", "إداري"},
	{"coastal", "ساحلي"},
	{"finishing", "تشطيبات"},
}

func IsPortfolioCategory(id string) bool { return contains(PortfolioCategories, id) }

type PortfolioItem struct {
	ID          uuid.UUID        `json:"id"`
	Title       string           `json:"title"`
	Slug        string           `json:"slug"`
	Category    string           `json:"category"`
	Location    string           `json:"location"`
	Latitude    *float64         `json:"latitude,omitempty"`
	Longitude   *float64         `json:"longitude,omitempty"`
	Geohash     string           `json:"geohash,omitempty"`
	Description string           `json:"description"`
	CoverImage  string           `json:"coverImage"`
	Images      []PortfolioImage `json:"images"`
	Featured    bool             `json:"featured"`
	CreatedAt   time.Time        `json:"createdAt"`
	UpdatedAt   time.Time        `json:"updatedAt"`
}

type PortfolioImage struct {
	ID        uuid.UUID `json:"id"`
	ItemID    uuid.UUID `json:"itemId"`
	URL       string    `json:"url"`
	PublicID  string    `json:"publicId"`
	Caption   string    `json:"caption"`
	SortOrder int       `json:"sortOrder"`
}

// PortfolioInput is what an admin submits when creating or editing a project.
type PortfolioInput struct {
	Title       string   `json:"title"`
	Slug        string   `json:"slug"`
	Category    string   `json:"category"`
	Location    string   `json:"location"`
	Latitude    *float64 `json:"latitude"`
	Longitude   *float64 `json:"longitude"`
	Description string   `json:"description"`
	CoverImage  string   `json:"coverImage"`
	Featured    bool     `json:"featured"`
}

func (in PortfolioInput) Validate() error {
	v := NewValidationError()
	if utf8.RuneCountInString(strings.TrimSpace(in.Title)) < 2 {
		v.Add("title", MsgRequired)
	}
	validateRequiredChoice(v, "category", in.Category, IsPortfolioCategory)
	if (in.Latitude == nil) != (in.Longitude == nil) {
		v.Add("latitude", "يجب إدخال خط العرض وخط الطول معاً")
	}
	if in.Latitude != nil && (*in.Latitude < -90 || *in.Latitude > 90) {
		v.Add("latitude", MsgInvalidNumber)
	}
	if in.Longitude != nil && (*in.Longitude < -180 || *in.Longitude > 180) {
		v.Add("longitude", MsgInvalidNumber)
	}
	ValidateOptionalURL(v, "coverImage", in.CoverImage)
	if utf8.RuneCountInString(in.Description) > MaxDescriptionRunes {
		v.Add("description", MsgDescTooLong)
	}
	return v.OrNil()
}

// PortfolioFilter narrows the public listing.
type PortfolioFilter struct {
	Category string
	Featured *bool
}

// PortfolioImageInput attaches an uploaded asset to a project.
type PortfolioImageInput struct {
	ItemID   uuid.UUID `json:"itemId"`
	URL      string    `json:"url"`
	PublicID string    `json:"publicId"`
	Caption  string    `json:"caption"`
}

func (in PortfolioImageInput) Validate() error {
	v := NewValidationError()
	if in.ItemID == uuid.Nil {
		v.Add("itemId", MsgRequired)
	}
	if strings.TrimSpace(in.URL) == "" {
		v.Add("url", MsgRequired)
	} else {
		ValidateOptionalURL(v, "url", in.URL)
	}
	return v.OrNil()
}
