package contracts

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGenerateKeyFromPath(t *testing.T) {
	assert.Equal(t, "PropertySubmittedEvent/1.0.0", generateKeyFromPath("events/property-submitted/v1.json"))
	assert.Equal(t, "", generateKeyFromPath("events/flat.json"))
}

func validEvent() domain.PropertySubmittedEvent {
	return domain.PropertySubmittedEvent{
		EventID:      uuid.New(),
		RequestID:    "AMG-20250131-3FA2C1",
		Channel:      domain.ChannelWizard,
		SubmittedAt:  time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC),
		PropertyType: "villa",
		Purpose:      "rent",
		Governorate:  "giza",
		City:         "الشيخ زايد",
		Area:         "350",
		Price:        "45000",
		ContactName:  "منى",
		ContactPhone: "01112345678",
		ImageURLs:    []string{"https://res.cloudinary.com/amg/image/upload/v1/a.jpg"},
	}
}

func TestValidateEventAcceptsDomainEvent(t *testing.T) {
	body, err := json.Marshal(validEvent())
	require.NoError(t, err)
	assert.NoError(t, ValidateEvent(constants.EventTypePropertySubmitted, constants.EventVersionPropertySubmitted, body))
}

func TestValidateEventRejects(t *testing.T) {
	ev := validEvent()
	ev.ContactPhone = "12345"
	body, _ := json.Marshal(ev)
	assert.Error(t, ValidateEvent(constants.EventTypePropertySubmitted, constants.EventVersionPropertySubmitted, body))

	assert.Error(t, ValidateEvent(constants.EventTypePropertySubmitted, constants.EventVersionPropertySubmitted, []byte("{")))
	assert.Error(t, ValidateEvent("UnknownEvent", "1.0.0", []byte("{}")))
}

func TestValidateEventInternationalPhone(t *testing.T) {
	for phone, ok := range map[string]bool{
		"+201012345678":  true,
		"201512345678":   true,
		"+2001012345678": false,
	} {
		ev := validEvent()
		ev.ContactPhone = phone
		body, _ := json.Marshal(ev)
		err := ValidateEvent(constants.EventTypePropertySubmitted, constants.EventVersionPropertySubmitted, body)
		assert.Equal(t, ok, err == nil, phone)
	}
}
