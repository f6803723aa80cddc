package usecase

import (
	"html"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/microcosm-cc/bluemonday"
)

var plainText = bluemonday.StrictPolicy()

// maxCleanPasses bounds how many layers of entity encoding are peeled off.
const maxCleanPasses = 4

// cleanText strips markup from user supplied free text. Entities are decoded
// only while the decoded text survives another sanitize pass unchanged, so
// escaped markup such as &lt;script&gt; cannot come back as a live tag.
func cleanText(s string) string {
	for i := 0; i < maxCleanPasses; i++ {
		out := html.UnescapeString(plainText.Sanitize(s))
		if out == s {
			return strings.TrimSpace(out)
		}
		s = out
	}
	return strings.TrimSpace(plainText.Sanitize(s))
}

func cleanListingForm(f domain.ListingForm) domain.ListingForm {
	f.City = cleanText(f.City)
	f.Description = cleanText(f.Description)
	f.Name = cleanText(f.Name)
	return f
}

func cleanPatch(p domain.ListingFormPatch) domain.ListingFormPatch {
	for _, field := range []**string{&p.City, &p.Description, &p.Name} {
		if *field != nil {
			v := cleanText(**field)
			*field = &v
		}
	}
	return p
}
