package domain

import (
	"strings"
	"time"

	"github.com/google/uuid"
)

// ListingForm is the flat record filled across the wizard steps.
type ListingForm struct {
	PropertyType  string   `json:"propertyType"`
	Purpose       string   `json:"purpose"`
	Governorate   string   `json:"governorate"`
	City          string   `json:"city"`
	Area          string   `json:"area"`
	Price         string   `json:"price"`
	Bedrooms      string   `json:"bedrooms"`
	Bathrooms     string   `json:"bathrooms"`
	Features      []string `json:"features"`
	Services      []string `json:"services"`
	Description   string   `json:"description"`
	Name          string   `json:"name"`
	Phone         string   `json:"phone"`
	Email         string   `json:"email"`
	PreferredTime string   `json:"preferredTime"`
}

// DefaultListingForm is the state of a freshly opened wizard.
func DefaultListingForm() ListingForm {
	return ListingForm{
		Purpose:       PurposeSale,
		PreferredTime: PreferredTimeAnytime,
		Features:      []string{},
		Services:      []string{},
	}
}

// ListingFormPatch is a partial update; nil fields are left untouched.
type ListingFormPatch struct {
	PropertyType  *string   `json:"propertyType,omitempty"`
	Purpose       *string   `json:"purpose,omitempty"`
	Governorate   *string   `json:"governorate,omitempty"`
	City          *string   `json:"city,omitempty"`
	Area          *string   `json:"area,omitempty"`
	Price         *string   `json:"price,omitempty"`
	Bedrooms      *string   `json:"bedrooms,omitempty"`
	Bathrooms     *string   `json:"bathrooms,omitempty"`
	Features      *[]string `json:"features,omitempty"`
	Services      *[]string `json:"services,omitempty"`
	Description   *string   `json:"description,omitempty"`
	Name          *string   `json:"name,omitempty"`
	Phone         *string   `json:"phone,omitempty"`
	Email         *string   `json:"email,omitempty"`
	PreferredTime *string   `json:"preferredTime,omitempty"`
}

func (f *ListingForm) apply(p ListingFormPatch) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = strings.TrimSpace(*src)
		}
	}
	set(&f.PropertyType, p.PropertyType)
	set(&f.Purpose, p.Purpose)
	set(&f.Governorate, p.Governorate)
	set(&f.City, p.City)
	set(&f.Area, p.Area)
	set(&f.Price, p.Price)
	set(&f.Bedrooms, p.Bedrooms)
	set(&f.Bathrooms, p.Bathrooms)
	set(&f.Description, p.Description)
	set(&f.Name, p.Name)
	set(&f.Phone, p.Phone)
	set(&f.Email, p.Email)
	set(&f.PreferredTime, p.PreferredTime)
	if p.Features != nil {
		f.Features = dedupe(*p.Features)
	}
	if p.Services != nil {
		f.Services = dedupe(*p.Services)
	}
}

func dedupe(ids []string) []string {
	seen := make(map[string]struct{}, len(ids))
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// toggle removes id when present and appends it otherwise.
func toggle(ids []string, id string) []string {
	out := make([]string, 0, len(ids)+1)
	found := false
	for _, existing := range ids {
		if existing == id {
			found = true
			continue
		}
		out = append(out, existing)
	}
	if !found {
		out = append(out, id)
	}
	return out
}

// ListingImage keeps the preview and the stored asset of one picture together.
type ListingImage struct {
	ID             uuid.UUID `json:"id"`
	PreviewDataURL string    `json:"preview"`
	URL            string    `json:"url"`
	PublicID       string    `json:"publicId"`
	ContentType    string    `json:"contentType"`
	Size           int64     `json:"size"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Hash           uint64    `json:"hash"`
}

type ListingStatus string

const (
	StatusPending   ListingStatus = "pending"
	StatusReviewing ListingStatus = "reviewing"
	StatusApproved  ListingStatus = "approved"
	StatusRejected  ListingStatus = "rejected"
	StatusPublished ListingStatus = "published"
)

var listingTransitions = map[ListingStatus][]ListingStatus{
	StatusPending:   {StatusReviewing, StatusRejected},
	StatusReviewing: {StatusApproved, StatusRejected},
	StatusApproved:  {StatusPublished},
}

func ParseListingStatus(s string) (ListingStatus, error) {
	switch st := ListingStatus(s); st {
	case StatusPending, StatusReviewing, StatusApproved, StatusRejected, StatusPublished:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// CanTransitionTo reports whether the review workflow allows moving to next.
func (s ListingStatus) CanTransitionTo(next ListingStatus) bool {
	for _, allowed := range listingTransitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

const (
	ChannelWizard    = "wizard"
	ChannelMultipart = "multipart"
)

// ListingRequest is a submitted property awaiting review.
type ListingRequest struct {
	ID        uuid.UUID      `json:"id"`
	RequestID string         `json:"requestId"`
	Form      ListingForm    `json:"form"`
	Images    []ListingImage `json:"images"`
	Status    ListingStatus  `json:"status"`
	Channel   string         `json:"channel"`
	AdminNote string         `json:"adminNote,omitempty"`
	CreatedAt time.Time      `json:"createdAt"`
	UpdatedAt time.Time      `json:"updatedAt"`
}

// ListingRequestFilter narrows the admin listing.
type ListingRequestFilter struct {
	Status ListingStatus
	Limit  int
	Offset int
}

const (
	DefaultPageLimit = 20
	MaxPageLimit     = 100
)

// Normalize clamps paging values into the accepted range.
func (f ListingRequestFilter) Normalize() ListingRequestFilter {
	if f.Limit <= 0 {
		f.Limit = DefaultPageLimit
	}
	if f.Limit > MaxPageLimit {
		f.Limit = MaxPageLimit
	}
	if f.Offset < 0 {
		f.Offset = 0
	}
	return f
}
