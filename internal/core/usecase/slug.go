package usecase

import (
	"strings"

	"github.com/google/uuid"
	"github.com/gosimple/slug"
)

// slugOr prefers the explicit slug and falls back to the transliterated title.
func slugOr(explicit, title string) string {
	s := slug.Make(strings.TrimSpace(explicit))
	if s == "" {
		s = slug.Make(title)
	}
	if s == "" {
		return uuid.NewString()[:8]
	}
	return s
}
