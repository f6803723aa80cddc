package rest

import (
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
)

type errorResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
}

type validationResponse struct {
	Success bool              `json:"success"`
	Message string            `json:"message"`
	Errors  map[string]string `json:"errors"`
}

type dataResponse struct {
	Success bool        `json:"success"`
	Message string      `json:"message,omitempty"`
	Data    interface{} `json:"data"`
}

type messageResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
}

// --- wizard

type updateDraftRequest struct {
	Form           domain.ListingFormPatch `json:"form"`
	ToggleFeatures []string                `json:"toggleFeatures"`
	ToggleServices []string                `json:"toggleServices"`
}

type navigateRequest struct {
	Action string `json:"action"`
	Step   int    `json:"step"`
}

// imageResponse hides the perceptual hash, which is an internal detail.
type imageResponse struct {
	ID          uuid.UUID `json:"id"`
	Preview     string    `json:"preview,omitempty"`
	URL         string    `json:"url"`
	PublicID    string    `json:"publicId"`
	ContentType string    `json:"contentType"`
	Size        int64     `json:"size"`
	Width       int       `json:"width"`
	Height      int       `json:"height"`
}

type draftResponse struct {
	ID          uuid.UUID          `json:"id"`
	Step        int                `json:"step"`
	StepName    string             `json:"stepName"`
	Form        domain.ListingForm `json:"form"`
	Images      []imageResponse    `json:"images"`
	RequestID   string             `json:"requestId,omitempty"`
	CreatedAt   time.Time          `json:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt"`
	SubmittedAt *time.Time         `json:"submittedAt,omitempty"`
}

func toImageResponses(images []domain.ListingImage) []imageResponse {
	out := make([]imageResponse, 0, len(images))
	for _, img := range images {
		out = append(out, imageResponse{
			ID:          img.ID,
			Preview:     img.PreviewDataURL,
			URL:         img.URL,
			PublicID:    img.PublicID,
			ContentType: img.ContentType,
			Size:        img.Size,
			Width:       img.Width,
			Height:      img.Height,
		})
	}
	return out
}

func toDraftResponse(d *domain.Draft) draftResponse {
	return draftResponse{
		ID:          d.ID,
		Step:        int(d.Step),
		StepName:    d.Step.String(),
		Form:        d.Form,
		Images:      toImageResponses(d.Images),
		RequestID:   d.RequestID,
		CreatedAt:   d.CreatedAt,
		UpdatedAt:   d.UpdatedAt,
		SubmittedAt: d.SubmittedAt,
	}
}

type submittedResponse struct {
	RequestID string `json:"requestId"`
}

// --- uploads

type uploadResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	URL      string `json:"url"`
	PublicID string `json:"publicId"`
	Width    int    `json:"width,omitempty"`
	Height   int    `json:"height,omitempty"`
}

type deleteImageRequest struct {
	PublicID string `json:"publicId"`
}

// --- portfolio

type reorderImagesRequest struct {
	ItemID   uuid.UUID   `json:"itemId"`
	ImageIDs []uuid.UUID `json:"imageIds"`
}

// --- store

type orderCreatedResponse struct {
	OrderID uuid.UUID `json:"orderId"`
	Total   int64     `json:"total"`
}

type pageResponse struct {
	Items  interface{} `json:"items"`
	Total  int         `json:"total"`
	Limit  int         `json:"limit"`
	Offset int         `json:"offset"`
}

// --- chat

type chatResponse struct {
	Success      bool          `json:"success"`
	Message      string        `json:"message"`
	QuickReplies []string      `json:"quickReplies"`
	Intent       domain.Intent `json:"intent"`
}

// --- admin

type listingRequestResponse struct {
	RequestID string             `json:"requestId"`
	Form      domain.ListingForm `json:"form"`
	Images    []imageResponse    `json:"images"`
	Status    string             `json:"status"`
	Channel   string             `json:"channel"`
	AdminNote string             `json:"adminNote,omitempty"`
	CreatedAt time.Time          `json:"createdAt"`
	UpdatedAt time.Time          `json:"updatedAt"`
}

func toListingRequestResponse(req *domain.ListingRequest) listingRequestResponse {
	return listingRequestResponse{
		RequestID: req.RequestID,
		Form:      req.Form,
		Images:    toImageResponses(req.Images),
		Status:    string(req.Status),
		Channel:   req.Channel,
		AdminNote: req.AdminNote,
		CreatedAt: req.CreatedAt,
		UpdatedAt: req.UpdatedAt,
	}
}

type updateStatusRequest struct {
	Status string `json:"status"`
	Note   string `json:"note"`
}

// --- auth

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	Token string       `json:"token"`
	User  *domain.User `json:"user"`
}
