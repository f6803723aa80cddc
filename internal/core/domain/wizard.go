package domain

import (
	"math/bits"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"
)

type Step int

const (
	StepPropertyDetails Step = 1
	StepImages          Step = 2
	StepContactInfo     Step = 3
	StepConfirmation    Step = 4
)

const (
	DefaultMaxImages = 10
	// DuplicateHashDistance is the largest perceptual-hash Hamming distance
	// at which two pictures count as the same photo.
	DuplicateHashDistance = 5
)

// stepDef is one row of the wizard table. Steps without a validator are
// terminal and can only be entered through MarkSubmitted.
type stepDef struct {
	step     Step
	name     string
	validate func(d *Draft, v *ValidationError)
}

var wizardSteps = []stepDef{
	{StepPropertyDetails, "property_details", validatePropertyDetails},
	{StepImages, "images", validateImages},
	{StepContactInfo, "contact_info", validateContactInfo},
	{StepConfirmation, "confirmation", nil},
}

func lookupStep(s Step) (stepDef, bool) {
	if s < StepPropertyDetails || s > StepConfirmation {
		return stepDef{}, false
	}
	return wizardSteps[s-1], true
}

func (s Step) String() string {
	if def, ok := lookupStep(s); ok {
		return def.name
	}
	return "unknown"
}

// Draft is a wizard session.
type Draft struct {
	ID          uuid.UUID      `json:"id"`
	Step        Step           `json:"step"`
	Form        ListingForm    `json:"form"`
	Images      []ListingImage `json:"images"`
	RequestID   string         `json:"requestId,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
	UpdatedAt   time.Time      `json:"updatedAt"`
	SubmittedAt *time.Time     `json:"submittedAt,omitempty"`
}

func NewDraft(now time.Time) *Draft {
	return &Draft{
		ID:        uuid.New(),
		Step:      StepPropertyDetails,
		Form:      DefaultListingForm(),
		Images:    []ListingImage{},
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func (d *Draft) Submitted() bool {
	return d.RequestID != ""
}

func (d *Draft) touch(now time.Time) {
	d.UpdatedAt = now
}

// Apply merges a partial form update.
func (d *Draft) Apply(p ListingFormPatch, now time.Time) error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	d.Form.apply(p)
	d.touch(now)
	return nil
}

func (d *Draft) ToggleFeature(id string, now time.Time) error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	if !IsFeature(id) {
		v := NewValidationError()
		v.Add("features", MsgInvalidChoice)
		return v
	}
	d.Form.Features = toggle(d.Form.Features, id)
	d.touch(now)
	return nil
}

func (d *Draft) ToggleService(id string, now time.Time) error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	if !IsService(id) {
		v := NewValidationError()
		v.Add("services", MsgInvalidChoice)
		return v
	}
	d.Form.Services = toggle(d.Form.Services, id)
	d.touch(now)
	return nil
}

// ValidateStep checks only the fields owned by step. It never mutates the draft.
func (d *Draft) ValidateStep(s Step) error {
	def, ok := lookupStep(s)
	if !ok {
		return ErrStepOutOfRange
	}
	if def.validate == nil {
		return nil
	}
	v := NewValidationError()
	def.validate(d, v)
	return v.OrNil()
}

// ValidateAll checks every input step, reporting all problems at once.
func (d *Draft) ValidateAll() error {
	v := NewValidationError()
	for _, def := range wizardSteps {
		if def.validate != nil {
			def.validate(d, v)
		}
	}
	return v.OrNil()
}

// Next validates the current step and advances. The confirmation step is
// reached only through MarkSubmitted.
func (d *Draft) Next(now time.Time) error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	next := d.Step + 1
	def, ok := lookupStep(next)
	if !ok {
		return ErrStepOutOfRange
	}
	if def.validate == nil {
		return ErrSubmitRequired
	}
	if err := d.ValidateStep(d.Step); err != nil {
		return err
	}
	d.Step = next
	d.touch(now)
	return nil
}

func (d *Draft) Back(now time.Time) error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	if d.Step <= StepPropertyDetails {
		return ErrStepOutOfRange
	}
	d.Step--
	d.touch(now)
	return nil
}

// GoTo jumps back to an already visited step.
func (d *Draft) GoTo(s Step, now time.Time) error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	if s < StepPropertyDetails || s > d.Step {
		return ErrStepOutOfRange
	}
	d.Step = s
	d.touch(now)
	return nil
}

// MarkSubmitted moves the draft to the confirmation step.
func (d *Draft) MarkSubmitted(requestID string, now time.Time) error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	if err := d.ValidateAll(); err != nil {
		return err
	}
	d.RequestID = requestID
	d.Step = StepConfirmation
	d.SubmittedAt = &now
	d.touch(now)
	return nil
}

// CheckImageCapacity reports whether n more images fit.
func (d *Draft) CheckImageCapacity(n, maxImages int) error {
	if d.Submitted() {
		return ErrDraftSubmitted
	}
	if maxImages <= 0 {
		maxImages = DefaultMaxImages
	}
	if len(d.Images)+n > maxImages {
		return ErrTooManyImages
	}
	return nil
}

// IsDuplicate reports whether hash is perceptually equal to a stored image.
func (d *Draft) IsDuplicate(hash uint64) bool {
	for _, img := range d.Images {
		if HashDistance(img.Hash, hash) <= DuplicateHashDistance {
			return true
		}
	}
	return false
}

func HashDistance(a, b uint64) int {
	return bits.OnesCount64(a ^ b)
}

func (d *Draft) AddImage(img ListingImage, maxImages int, now time.Time) error {
	if err := d.CheckImageCapacity(1, maxImages); err != nil {
		return err
	}
	if d.IsDuplicate(img.Hash) {
		return ErrDuplicateImage
	}
	d.Images = append(d.Images, img)
	d.touch(now)
	return nil
}

// RemoveImage drops the image and returns it so the caller can free the asset.
func (d *Draft) RemoveImage(id uuid.UUID, now time.Time) (ListingImage, error) {
	if d.Submitted() {
		return ListingImage{}, ErrDraftSubmitted
	}
	for i, img := range d.Images {
		if img.ID == id {
			d.Images = append(d.Images[:i:i], d.Images[i+1:]...)
			d.touch(now)
			return img, nil
		}
	}
	return ListingImage{}, ErrImageNotFound
}

func validatePropertyDetails(d *Draft, v *ValidationError) {
	f := d.Form
	validateRequiredChoice(v, "propertyType", f.PropertyType, IsPropertyType)
	validateRequiredChoice(v, "purpose", f.Purpose, IsPurpose)
	validateRequiredChoice(v, "governorate", f.Governorate, IsGovernorate)
	if strings.TrimSpace(f.City) == "" {
		v.Add("city", MsgRequired)
	}
	validatePositiveNumber(v, "area", f.Area)
	validatePositiveNumber(v, "price", f.Price)
	validateOptionalRooms(v, "bedrooms", f.Bedrooms)
	validateOptionalRooms(v, "bathrooms", f.Bathrooms)
	for _, id := range f.Features {
		if !IsFeature(id) {
			v.Add("features", MsgInvalidChoice)
		}
	}
	for _, id := range f.Services {
		if !IsService(id) {
			v.Add("services", MsgInvalidChoice)
		}
	}
	if utf8.RuneCountInString(f.Description) > MaxDescriptionRunes {
		v.Add("description", MsgDescTooLong)
	}
}

func validateImages(d *Draft, v *ValidationError) {
	if len(d.Images) == 0 {
		v.Add("images", MsgImagesRequired)
	}
}

func validateContactInfo(d *Draft, v *ValidationError) {
	f := d.Form
	ValidateName(v, "name", f.Name)
	ValidatePhone(v, "phone", f.Phone)
	ValidateOptionalEmail(v, "email", f.Email)
	if f.PreferredTime != "" && !IsPreferredTime(f.PreferredTime) {
		v.Add("preferredTime", MsgInvalidChoice)
	}
}
