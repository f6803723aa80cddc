package usecase

import (
	"testing"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"

	"github.com/stretchr/testify/assert"
)

func TestCleanText(t *testing.T) {
	tests := map[string]string{
		"<b>مدينة نصر</b>":                           "مدينة نصر",
		"شقة &amp; حديقة":                            "شقة & حديقة",
		"السعر < 2 مليون":                            "السعر < 2 مليون",
		"  فيلا  ":                                   "فيلا",
		"&lt;script&gt;alert(1)&lt;/script&gt;شقة":   "شقة",
		"&amp;lt;img src=x onerror=alert(1)&amp;gt;": "",
	}
	for in, want := range tests {
		got := cleanText(in)
		assert.Equal(t, want, got, in)
		assert.NotContains(t, got, "<script")
		assert.NotContains(t, got, "<img")
	}
}

func TestCleanListingFormKeepsEscapedMarkupInert(t *testing.T) {
	f := domain.DefaultListingForm()
	f.Name = "&lt;img src=x onerror=alert(1)&gt;أحمد"
	f.Description = "&lt;a href=&quot;javascript:alert(1)&quot;&gt;اضغط&lt;/a&gt;"

	got := cleanListingForm(f)
	assert.Equal(t, "أحمد", got.Name)
	assert.Equal(t, "اضغط", got.Description)
}
