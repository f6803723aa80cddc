package domain

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var now = time.Date(2025, 1, 31, 10, 0, 0, 0, time.UTC)

func strp(s string) *string { return &s }

func validDetails() ListingFormPatch {
	return ListingFormPatch{
		PropertyType: strp("apartment"),
		Purpose:      strp("sale"),
		Governorate:  strp("cairo"),
		City:         strp("مدينة نصر"),
		Area:         strp("١٥٠"),
		Price:        strp("2,500,000"),
		Bedrooms:     strp("3"),
		Bathrooms:    strp("2"),
	}
}

func validContact() ListingFormPatch {
	return ListingFormPatch{
		Name:  strp("أحمد"),
		Phone: strp("010 1234 5678"),
		Email: strp("ahmed@example.com"),
	}
}

func image(hash uint64) ListingImage {
	return ListingImage{ID: uuid.New(), URL: "https://cdn/x.jpg", PublicID: "amg/property/x", Hash: hash}
}

func filledDraft(t *testing.T) *Draft {
	t.Helper()
	d := NewDraft(now)
	require.NoError(t, d.Apply(validDetails(), now))
	require.NoError(t, d.Apply(validContact(), now))
	require.NoError(t, d.AddImage(image(0), 0, now))
	return d
}

func TestNewDraftDefaults(t *testing.T) {
	d := NewDraft(now)
	assert.Equal(t, StepPropertyDetails, d.Step)
	assert.Equal(t, PurposeSale, d.Form.Purpose)
	assert.Equal(t, PreferredTimeAnytime, d.Form.PreferredTime)
	assert.False(t, d.Submitted())
}

func TestNextBlockedByInvalidFields(t *testing.T) {
	d := NewDraft(now)

	err := d.Next(now)
	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.FieldErrors, "propertyType")
	assert.Contains(t, verr.FieldErrors, "area")
	assert.NotContains(t, verr.FieldErrors, "name", "only the current step is validated")
	assert.Equal(t, StepPropertyDetails, d.Step)
}

func TestNavigationBounds(t *testing.T) {
	d := NewDraft(now)
	assert.ErrorIs(t, d.Back(now), ErrStepOutOfRange)

	require.NoError(t, d.Apply(validDetails(), now))
	require.NoError(t, d.Next(now))
	assert.Equal(t, StepImages, d.Step)

	assert.Error(t, d.Next(now), "images are required")
	require.NoError(t, d.AddImage(image(0), 0, now))
	require.NoError(t, d.Next(now))
	assert.Equal(t, StepContactInfo, d.Step)

	require.NoError(t, d.Apply(validContact(), now))
	assert.ErrorIs(t, d.Next(now), ErrSubmitRequired)
	assert.Equal(t, StepContactInfo, d.Step)

	require.NoError(t, d.GoTo(StepPropertyDetails, now))
	assert.ErrorIs(t, d.GoTo(StepContactInfo, now), ErrStepOutOfRange)
	assert.ErrorIs(t, d.GoTo(0, now), ErrStepOutOfRange)
}

func TestMarkSubmittedFreezesDraft(t *testing.T) {
	d := filledDraft(t)
	require.NoError(t, d.MarkSubmitted("AMG-20250131-ABCDEF", now))

	assert.Equal(t, StepConfirmation, d.Step)
	assert.True(t, d.Submitted())
	assert.NotNil(t, d.SubmittedAt)

	assert.ErrorIs(t, d.Apply(validDetails(), now), ErrDraftSubmitted)
	assert.ErrorIs(t, d.Back(now), ErrDraftSubmitted)
	assert.ErrorIs(t, d.Next(now), ErrDraftSubmitted)
	assert.ErrorIs(t, d.MarkSubmitted("AMG-20250131-000000", now), ErrDraftSubmitted)
	_, err := d.RemoveImage(d.Images[0].ID, now)
	assert.ErrorIs(t, err, ErrDraftSubmitted)
}

func TestMarkSubmittedRequiresValidForm(t *testing.T) {
	d := NewDraft(now)
	err := d.MarkSubmitted("AMG-20250131-ABCDEF", now)

	var verr *ValidationError
	require.True(t, errors.As(err, &verr))
	assert.Contains(t, verr.FieldErrors, "images")
	assert.Contains(t, verr.FieldErrors, "phone")
	assert.Equal(t, StepPropertyDetails, d.Step)
	assert.Empty(t, d.RequestID)
}

func TestToggleFeature(t *testing.T) {
	d := NewDraft(now)
	require.NoError(t, d.ToggleFeature("pool", now))
	require.NoError(t, d.ToggleFeature("garden", now))
	assert.Equal(t, []string{"pool", "garden"}, d.Form.Features)

	require.NoError(t, d.ToggleFeature("pool", now))
	assert.Equal(t, []string{"garden"}, d.Form.Features)

	assert.Error(t, d.ToggleFeature("spaceship", now))
	require.NoError(t, d.ToggleService("legal", now))
	assert.Equal(t, []string{"legal"}, d.Form.Services)
}

func TestImagesStayTogether(t *testing.T) {
	d := NewDraft(now)
	first := image(0x0)
	second := image(0xFFFF0000FFFF0000)
	require.NoError(t, d.AddImage(first, 0, now))
	require.NoError(t, d.AddImage(second, 0, now))

	assert.ErrorIs(t, d.AddImage(image(0x3), 0, now), ErrDuplicateImage, "distance 2 from the first image")

	removed, err := d.RemoveImage(first.ID, now)
	require.NoError(t, err)
	assert.Equal(t, first.PublicID, removed.PublicID)
	require.Len(t, d.Images, 1)
	assert.Equal(t, second.ID, d.Images[0].ID)

	_, err = d.RemoveImage(uuid.New(), now)
	assert.ErrorIs(t, err, ErrImageNotFound)
}

func TestImageCapacity(t *testing.T) {
	d := NewDraft(now)
	for i := 0; i < 2; i++ {
		require.NoError(t, d.AddImage(image(uint64(0xFF)<<(8*i*3)), 2, now))
	}
	assert.ErrorIs(t, d.AddImage(image(0xAAAAAAAAAAAAAAAA), 2, now), ErrTooManyImages)
	assert.ErrorIs(t, d.CheckImageCapacity(11, 0), ErrTooManyImages)
}

func TestValidateAllReportsEveryStep(t *testing.T) {
	d := NewDraft(now)
	require.NoError(t, d.Apply(ListingFormPatch{Bedrooms: strp("99"), Email: strp("bad")}, now))

	var verr *ValidationError
	require.True(t, errors.As(d.ValidateAll(), &verr))
	assert.Equal(t, MsgRoomsRange, verr.FieldErrors["bedrooms"])
	assert.Equal(t, MsgInvalidEmail, verr.FieldErrors["email"])
	assert.Equal(t, MsgImagesRequired, verr.FieldErrors["images"])

	assert.NoError(t, filledDraft(t).ValidateAll())
}

func TestStepString(t *testing.T) {
	assert.Equal(t, "images", StepImages.String())
	assert.Equal(t, "unknown", Step(9).String())
}
