package domain

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEveryContentSectionHasValidDefaults(t *testing.T) {
	for _, sec := range ContentSections {
		def, err := DefaultContent(sec)
		require.NoError(t, err, sec)
		assert.NoError(t, def.Validate(), sec)

		empty, err := NewContentPayload(sec)
		require.NoError(t, err)
		assert.NotNil(t, empty)
	}

	_, err := ParseContentSection("banner")
	assert.ErrorIs(t, err, ErrUnknownContentSection)
}

func TestContentValidation(t *testing.T) {
	var verr *ValidationError

	err := (&HeroStats{HappyClients: -1}).Validate()
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.FieldErrors, "happyClients")

	err = (&TestimonialStats{AverageRating: 6}).Validate()
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.FieldErrors, "averageRating")

	err = (&SocialLinks{Facebook: "facebook"}).Validate()
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.FieldErrors, "facebook")

	assert.NoError(t, (&SocialLinks{Facebook: "https://facebook.com/amg"}).Validate())
	assert.Error(t, (&FooterInfo{}).Validate())
}

func TestOrderAndProductValidation(t *testing.T) {
	assert.Error(t, OrderInput{Quantity: 0, Name: "أحمد", Phone: "01012345678"}.Validate())
	assert.NoError(t, OrderInput{Quantity: 2, Name: "أحمد", Phone: "01012345678"}.Validate())
	assert.Error(t, ProductInput{Name: "x", Price: 0}.Validate())
	assert.NoError(t, ProductInput{Name: "x", Price: 1500}.Validate())
}

func TestPortfolioInputValidation(t *testing.T) {
	lat := 30.0
	err := PortfolioInput{Title: "برج", Category: "residential", Latitude: &lat}.Validate()
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.FieldErrors, "latitude")

	lng := 31.2
	assert.NoError(t, PortfolioInput{Title: "برج", Category: "residential", Latitude: &lat, Longitude: &lng}.Validate())
}
