package domain

import "errors"

var (
	ErrNotFound              = errors.New("not found")
	ErrAlreadyExists         = errors.New("already exists")
	ErrDraftNotFound         = errors.New("draft not found or expired")
	ErrDraftSubmitted        = errors.New("draft already submitted")
	ErrStepOutOfRange        = errors.New("step out of range")
	ErrSubmitRequired        = errors.New("confirmation step is reached only by submitting")
	ErrTooManyImages         = errors.New("too many images")
	ErrDuplicateImage        = errors.New("duplicate image")
	ErrImageNotFound         = errors.New("image not found")
	ErrUnsupportedImageType  = errors.New("unsupported image type")
	ErrImageTooLarge         = errors.New("image too large")
	ErrInvalidStatus         = errors.New("invalid status")
	ErrInvalidTransition     = errors.New("invalid status transition")
	ErrUnknownContentSection = errors.New("unknown content section")
	ErrUnknownUploadType     = errors.New("unknown upload type")
	ErrInsufficientStock     = errors.New("insufficient stock")
	ErrProductInactive       = errors.New("product is not available")
	ErrEmptyMessage          = errors.New("empty chat message")
	ErrInvalidCredentials    = errors.New("invalid credentials")
	ErrTokenInvalid          = errors.New("token is invalid")
	ErrTokenExpired          = errors.New("token has expired")
	ErrForbidden             = errors.New("forbidden")
)
