package domain

import (
	"time"

	"github.com/google/uuid"
)

// PropertySubmittedEvent is published after a listing request is stored.
type PropertySubmittedEvent struct {
	EventID       uuid.UUID `json:"eventId"`
	RequestID     string    `json:"requestId"`
	Channel       string    `json:"channel"`
	SubmittedAt   time.Time `json:"submittedAt"`
	PropertyType  string    `json:"propertyType"`
	Purpose       string    `json:"purpose"`
	Governorate   string    `json:"governorate"`
	City          string    `json:"city"`
	Area          string    `json:"area"`
	Price         string    `json:"price"`
	ContactName   string    `json:"contactName"`
	ContactPhone  string    `json:"contactPhone"`
	ContactEmail  string    `json:"contactEmail,omitempty"`
	PreferredTime string    `json:"preferredTime,omitempty"`
	ImageURLs     []string  `json:"imageUrls"`
}

// NewPropertySubmittedEvent snapshots req for notification consumers.
func NewPropertySubmittedEvent(req *ListingRequest) PropertySubmittedEvent {
	urls := make([]string, 0, len(req.Images))
	for _, img := range req.Images {
		urls = append(urls, img.URL)
	}
	return PropertySubmittedEvent{
		EventID:       uuid.New(),
		RequestID:     req.RequestID,
		Channel:       req.Channel,
		SubmittedAt:   req.CreatedAt.UTC(),
		PropertyType:  req.Form.PropertyType,
		Purpose:       req.Form.Purpose,
		Governorate:   req.Form.Governorate,
		City:          req.Form.City,
		Area:          NormalizeNumber(req.Form.Area),
		Price:         NormalizeNumber(req.Form.Price),
		ContactName:   req.Form.Name,
		ContactPhone:  NormalizePhone(req.Form.Phone),
		ContactEmail:  req.Form.Email,
		PreferredTime: req.Form.PreferredTime,
		ImageURLs:     urls,
	}
}
