package rabbitmq_adapter

import (
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
)

// PropertySubmittedEventDTO is the wire form of PropertySubmittedEvent/1.0.0.
type PropertySubmittedEventDTO struct {
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

func toEventDTO(e domain.PropertySubmittedEvent) PropertySubmittedEventDTO {
	return PropertySubmittedEventDTO{
		EventID:       e.EventID,
		RequestID:     e.RequestID,
		Channel:       e.Channel,
		SubmittedAt:   e.SubmittedAt,
		PropertyType:  e.PropertyType,
		Purpose:       e.Purpose,
		Governorate:   e.Governorate,
		City:          e.City,
		Area:          e.Area,
		Price:         e.Price,
		ContactName:   e.ContactName,
		ContactPhone:  e.ContactPhone,
		ContactEmail:  e.ContactEmail,
		PreferredTime: e.PreferredTime,
		ImageURLs:     e.ImageURLs,
	}
}

func toDomainEvent(dto PropertySubmittedEventDTO) domain.PropertySubmittedEvent {
	return domain.PropertySubmittedEvent{
		EventID:       dto.EventID,
		RequestID:     dto.RequestID,
		Channel:       dto.Channel,
		SubmittedAt:   dto.SubmittedAt,
		PropertyType:  dto.PropertyType,
		Purpose:       dto.Purpose,
		Governorate:   dto.Governorate,
		City:          dto.City,
		Area:          dto.Area,
		Price:         dto.Price,
		ContactName:   dto.ContactName,
		ContactPhone:  dto.ContactPhone,
		ContactEmail:  dto.ContactEmail,
		PreferredTime: dto.PreferredTime,
		ImageURLs:     dto.ImageURLs,
	}
}
