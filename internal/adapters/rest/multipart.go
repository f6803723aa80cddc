package rest

import (
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
)

// multipartMemory is how much of a form ParseMultipartForm keeps in memory.
const multipartMemory = 32 << 20

// UploadLimits bounds multipart requests before they reach the use cases.
type UploadLimits struct {
	MaxBytes  int64
	MaxImages int
}

// requestLimit is the whole-body cap for a request carrying up to n files.
func (l UploadLimits) requestLimit(n int) int64 {
	if n <= 0 {
		n = 1
	}
	return l.MaxBytes*int64(n) + 1<<20
}

// readImageFiles reads every part named field. Each file is read at most
// MaxBytes+1 bytes so the use case can tell an oversize file from a full one.
func readImageFiles(r *http.Request, field string, limits UploadLimits) ([]domain.ImageFile, error) {
	if r.MultipartForm == nil {
		return nil, nil
	}
	headers := r.MultipartForm.File[field]
	files := make([]domain.ImageFile, 0, len(headers))
	for _, fh := range headers {
		f, err := readImageFile(fh, limits.MaxBytes)
		if err != nil {
			return nil, err
		}
		files = append(files, f)
	}
	return files, nil
}

func readImageFile(fh *multipart.FileHeader, maxBytes int64) (domain.ImageFile, error) {
	src, err := fh.Open()
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("open %s: %w", fh.Filename, err)
	}
	defer src.Close()

	var reader io.Reader = src
	if maxBytes > 0 {
		reader = io.LimitReader(src, maxBytes+1)
	}
	data, err := io.ReadAll(reader)
	if err != nil {
		return domain.ImageFile{}, fmt.Errorf("read %s: %w", fh.Filename, err)
	}
	return domain.ImageFile{Filename: fh.Filename, Data: data}, nil
}

// formList accepts both repeated fields and one comma-separated value.
func formList(values []string) []string {
	var out []string
	for _, v := range values {
		for _, part := range strings.Split(v, ",") {
			if part = strings.TrimSpace(part); part != "" {
				out = append(out, part)
			}
		}
	}
	return out
}

// listingFormFromMultipart maps the one-shot submission fields onto a form.
func listingFormFromMultipart(r *http.Request) domain.ListingForm {
	form := domain.DefaultListingForm()
	get := func(key string) string { return strings.TrimSpace(r.FormValue(key)) }
	setIf := func(dst *string, key string) {
		if v := get(key); v != "" {
			*dst = v
		}
	}

	form.PropertyType = get("propertyType")
	setIf(&form.Purpose, "purpose")
	form.Governorate = get("governorate")
	form.City = get("city")
	form.Area = get("area")
	form.Price = get("price")
	form.Bedrooms = get("bedrooms")
	form.Bathrooms = get("bathrooms")
	form.Description = get("description")
	form.Name = get("name")
	form.Phone = get("phone")
	form.Email = get("email")
	setIf(&form.PreferredTime, "preferredTime")

	if r.MultipartForm != nil {
		form.Features = formList(r.MultipartForm.Value["features"])
		form.Services = formList(r.MultipartForm.Value["services"])
	}
	return form
}
