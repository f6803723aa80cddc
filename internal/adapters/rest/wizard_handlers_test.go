package rest

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port/usecases_port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockCreateDraft struct{ mock.Mock }

func (m *mockCreateDraft) Execute(ctx context.Context) (*domain.Draft, error) {
	args := m.Called(ctx)
	draft, _ := args.Get(0).(*domain.Draft)
	return draft, args.Error(1)
}

type mockGetDraft struct{ mock.Mock }

func (m *mockGetDraft) Execute(ctx context.Context, id uuid.UUID) (*domain.Draft, error) {
	args := m.Called(ctx, id)
	draft, _ := args.Get(0).(*domain.Draft)
	return draft, args.Error(1)
}

type mockUpdateDraft struct{ mock.Mock }

func (m *mockUpdateDraft) Execute(ctx context.Context, id uuid.UUID, update usecases_port.DraftUpdate) (*domain.Draft, error) {
	args := m.Called(ctx, id, update)
	draft, _ := args.Get(0).(*domain.Draft)
	return draft, args.Error(1)
}

type mockNavigateDraft struct{ mock.Mock }

func (m *mockNavigateDraft) Execute(ctx context.Context, id uuid.UUID, action usecases_port.NavigationAction, step domain.Step) (*domain.Draft, error) {
	args := m.Called(ctx, id, action, step)
	draft, _ := args.Get(0).(*domain.Draft)
	return draft, args.Error(1)
}

type mockAddDraftImages struct{ mock.Mock }

func (m *mockAddDraftImages) Execute(ctx context.Context, id uuid.UUID, files []domain.ImageFile) (*domain.Draft, error) {
	args := m.Called(ctx, id, files)
	draft, _ := args.Get(0).(*domain.Draft)
	return draft, args.Error(1)
}

type mockRemoveDraftImage struct{ mock.Mock }

func (m *mockRemoveDraftImage) Execute(ctx context.Context, id uuid.UUID, imageID uuid.UUID) (*domain.Draft, error) {
	args := m.Called(ctx, id, imageID)
	draft, _ := args.Get(0).(*domain.Draft)
	return draft, args.Error(1)
}

type mockSubmitListing struct{ mock.Mock }

func (m *mockSubmitListing) Execute(ctx context.Context, form domain.ListingForm, files []domain.ImageFile) (*domain.ListingRequest, error) {
	args := m.Called(ctx, form, files)
	req, _ := args.Get(0).(*domain.ListingRequest)
	return req, args.Error(1)
}

func testDraft(step domain.Step) *domain.Draft {
	d := &domain.Draft{ID: uuid.New(), Step: step, Form: domain.DefaultListingForm()}
	d.Form.PropertyType = "apartment"
	return d
}

func draftPath(id uuid.UUID, suffix string) string {
	return "/api/wizard/drafts/" + id.String() + suffix
}

type formPart struct {
	field, filename string
	data            []byte
}

// multipartForm builds a multipart request from plain fields, repeated
// values allowed, and file parts.
func multipartForm(t *testing.T, method, target string, fields [][2]string, files []formPart) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for _, kv := range fields {
		require.NoError(t, mw.WriteField(kv[0], kv[1]))
	}
	for _, f := range files {
		part, err := mw.CreateFormFile(f.field, f.filename)
		require.NoError(t, err)
		_, err = part.Write(f.data)
		require.NoError(t, err)
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(method, target, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestWizardCreateAndGet(t *testing.T) {
	draft := testDraft(domain.StepPropertyDetails)
	create := &mockCreateDraft{}
	create.On("Execute", mock.Anything).Return(draft, nil)
	get := &mockGetDraft{}
	get.On("Execute", mock.Anything, draft.ID).Return(draft, nil)
	missing := uuid.New()
	get.On("Execute", mock.Anything, missing).Return(nil, domain.ErrDraftNotFound)

	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()
	h.Wizard = NewWizardHandler(create, get, nil, nil, nil, nil, nil, testLimits)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/wizard/drafts", nil))
	require.Equal(t, http.StatusCreated, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.Equal(t, draft.ID.String(), data["id"])
	assert.EqualValues(t, 1, data["step"])
	assert.Equal(t, "property_details", data["stepName"])

	rec = serve(h, httptest.NewRequest(http.MethodGet, draftPath(draft.ID, ""), nil))
	require.Equal(t, http.StatusOK, rec.Code)
	form := decodeBody(t, rec)["data"].(map[string]interface{})["form"].(map[string]interface{})
	assert.Equal(t, "apartment", form["propertyType"])

	rec = serve(h, httptest.NewRequest(http.MethodGet, draftPath(missing, ""), nil))
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = serve(h, httptest.NewRequest(http.MethodGet, "/api/wizard/drafts/nope", nil))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardPatchTogglesOptions(t *testing.T) {
	draft := testDraft(domain.StepPropertyDetails)
	draft.Form.Features = []string{"elevator"}
	draft.Form.Services = []string{"photography"}

	city := "مدينة نصر"
	update := &mockUpdateDraft{}
	update.On("Execute", mock.Anything, draft.ID, usecases_port.DraftUpdate{
		Patch:          domain.ListingFormPatch{City: &city},
		ToggleFeatures: []string{"elevator", "garden"},
		ToggleServices: []string{"photography"},
	}).Return(draft, nil)

	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()
	h.Wizard = NewWizardHandler(nil, nil, update, nil, nil, nil, nil, testLimits)

	body := `{"form":{"city":"مدينة نصر"},"toggleFeatures":["elevator","garden"],"toggleServices":["photography"]}`
	rec := serve(h, httptest.NewRequest(http.MethodPatch, draftPath(draft.ID, ""), strings.NewReader(body)))
	require.Equal(t, http.StatusOK, rec.Code)
	form := decodeBody(t, rec)["data"].(map[string]interface{})["form"].(map[string]interface{})
	assert.Equal(t, []interface{}{"elevator"}, form["features"])
	update.AssertExpectations(t)

	rec = serve(h, httptest.NewRequest(http.MethodPatch, draftPath(draft.ID, ""), strings.NewReader(`{"form":`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestWizardNavigateStatuses(t *testing.T) {
	id := uuid.New()
	invalid := domain.NewValidationError()
	invalid.Add("phone", domain.MsgRequired)

	navigate := &mockNavigateDraft{}
	navigate.On("Execute", mock.Anything, id, usecases_port.NavigateNext, domain.Step(0)).Return(nil, domain.ErrSubmitRequired)
	navigate.On("Execute", mock.Anything, id, usecases_port.NavigateBack, domain.Step(0)).Return(nil, domain.ErrStepOutOfRange)
	navigate.On("Execute", mock.Anything, id, usecases_port.NavigateGoTo, domain.Step(3)).Return(nil, invalid)
	navigate.On("Execute", mock.Anything, id, usecases_port.NavigateGoTo, domain.Step(2)).Return(testDraft(domain.StepImages), nil)

	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()
	h.Wizard = NewWizardHandler(nil, nil, nil, navigate, nil, nil, nil, testLimits)

	tests := []struct {
		name   string
		body   string
		status int
	}{
		{"next past the last form step", `{"action":"next"}`, http.StatusConflict},
		{"back from the first step", `{"action":"back"}`, http.StatusBadRequest},
		{"goto over an invalid step", `{"action":"goto","step":3}`, http.StatusUnprocessableEntity},
		{"goto a reachable step", `{"action":"goto","step":2}`, http.StatusOK},
		{"missing action", `{}`, http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := serve(h, httptest.NewRequest(http.MethodPost, draftPath(id, "/navigate"), strings.NewReader(tt.body)))
			assert.Equal(t, tt.status, rec.Code)
			if tt.status == http.StatusUnprocessableEntity {
				assert.Equal(t, map[string]interface{}{"phone": domain.MsgRequired}, decodeBody(t, rec)["errors"])
			}
		})
	}
}

func TestWizardImages(t *testing.T) {
	draft := testDraft(domain.StepImages)
	imageID := uuid.New()
	draft.Images = []domain.ListingImage{{ID: imageID, URL: "https://cdn/a.jpg", PublicID: "amg/property/a"}}

	files := []domain.ImageFile{{Filename: "a.jpg", Data: []byte("jpeg-a")}, {Filename: "b.png", Data: []byte("png-b")}}
	add := &mockAddDraftImages{}
	add.On("Execute", mock.Anything, draft.ID, files).Return(draft, nil)
	remove := &mockRemoveDraftImage{}
	remove.On("Execute", mock.Anything, draft.ID, imageID).Return(testDraft(domain.StepImages), nil)
	unknown := uuid.New()
	remove.On("Execute", mock.Anything, draft.ID, unknown).Return(nil, domain.ErrImageNotFound)

	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()
	h.Wizard = NewWizardHandler(nil, nil, nil, nil, add, remove, nil, testLimits)

	t.Run("add", func(t *testing.T) {
		req := multipartForm(t, http.MethodPost, draftPath(draft.ID, "/images"), nil, []formPart{
			{"images", "a.jpg", []byte("jpeg-a")},
			{"images", "b.png", []byte("png-b")},
		})
		rec := serve(h, req)
		require.Equal(t, http.StatusOK, rec.Code)
		images := decodeBody(t, rec)["data"].(map[string]interface{})["images"].([]interface{})
		require.Len(t, images, 1)
		assert.Equal(t, "amg/property/a", images[0].(map[string]interface{})["publicId"])
		add.AssertExpectations(t)
	})

	t.Run("add without files", func(t *testing.T) {
		req := multipartForm(t, http.MethodPost, draftPath(draft.ID, "/images"), [][2]string{{"note", "x"}}, nil)
		rec := serve(h, req)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgMissingFile, decodeBody(t, rec)["message"])
	})

	t.Run("remove", func(t *testing.T) {
		rec := serve(h, httptest.NewRequest(http.MethodDelete, draftPath(draft.ID, "/images/"+imageID.String()), nil))
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Empty(t, decodeBody(t, rec)["data"].(map[string]interface{})["images"])

		rec = serve(h, httptest.NewRequest(http.MethodDelete, draftPath(draft.ID, "/images/"+unknown.String()), nil))
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}

func TestSubmitPropertyMultipart(t *testing.T) {
	fields := [][2]string{
		{"propertyType", "villa"},
		{"governorate", "cairo"},
		{"city", " التجمع "},
		{"price", "2500000"},
		{"features", "garden"},
		{"features", "pool, elevator"},
		{"services", "photography,,valuation"},
		{"name", "أحمد"},
		{"phone", "01012345678"},
	}
	wantForm := domain.DefaultListingForm()
	wantForm.PropertyType = "villa"
	wantForm.Governorate = "cairo"
	wantForm.City = "التجمع"
	wantForm.Price = "2500000"
	wantForm.Features = []string{"garden", "pool", "elevator"}
	wantForm.Services = []string{"photography", "valuation"}
	wantForm.Name = "أحمد"
	wantForm.Phone = "01012345678"

	t.Run("success", func(t *testing.T) {
		submit := &mockSubmitListing{}
		submit.On("Execute", mock.Anything, wantForm, []domain.ImageFile{{Filename: "a.jpg", Data: []byte("jpeg")}}).
			Return(&domain.ListingRequest{RequestID: "AMG-20250301-ABC123"}, nil)

		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Listings = NewListingHandler(submit, nil, nil, nil, testLimits)

		req := multipartForm(t, http.MethodPost, "/api/properties/submit", fields, []formPart{{"images", "a.jpg", []byte("jpeg")}})
		rec := serve(h, req)
		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, msgSubmitted, body["message"])
		assert.Equal(t, map[string]interface{}{"requestId": "AMG-20250301-ABC123"}, body["data"])
		submit.AssertExpectations(t)
	})

	t.Run("oversize image reaches the use case truncated", func(t *testing.T) {
		limits := UploadLimits{MaxBytes: 8, MaxImages: 3}
		submit := &mockSubmitListing{}
		submit.On("Execute", mock.Anything, mock.Anything, mock.MatchedBy(func(files []domain.ImageFile) bool {
			return len(files) == 1 && len(files[0].Data) == 9
		})).Return(nil, domain.ErrImageTooLarge)

		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Listings = NewListingHandler(submit, nil, nil, nil, limits)

		req := multipartForm(t, http.MethodPost, "/api/properties/submit", fields, []formPart{{"images", "big.jpg", bytes.Repeat([]byte("x"), 64)}})
		rec := serve(h, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		submit.AssertExpectations(t)
	})

	t.Run("body over the request limit", func(t *testing.T) {
		limits := UploadLimits{MaxBytes: 1 << 10, MaxImages: 1}
		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Listings = NewListingHandler(&mockSubmitListing{}, nil, nil, nil, limits)

		huge := bytes.Repeat([]byte("x"), int(limits.requestLimit(limits.MaxImages))+1024)
		req := multipartForm(t, http.MethodPost, "/api/properties/submit", fields, []formPart{{"images", "huge.jpg", huge}})
		rec := serve(h, req)
		assert.Equal(t, http.StatusRequestEntityTooLarge, rec.Code)
		assert.Equal(t, msgRequestTooBig, decodeBody(t, rec)["message"])
	})
}

func TestFormList(t *testing.T) {
	assert.Nil(t, formList(nil))
	assert.Equal(t, []string{"a", "b", "c"}, formList([]string{"a", " b , c "}))
	assert.Nil(t, formList([]string{" , ", ""}))
}

func TestListingFormFromMultipartDefaults(t *testing.T) {
	req := multipartForm(t, http.MethodPost, "/", [][2]string{{"purpose", " "}, {"description", " شقة "}}, nil)
	require.NoError(t, req.ParseMultipartForm(multipartMemory))

	form := listingFormFromMultipart(req)
	assert.Equal(t, domain.PurposeSale, form.Purpose)
	assert.Equal(t, domain.PreferredTimeAnytime, form.PreferredTime)
	assert.Equal(t, "شقة", form.Description)
	assert.Nil(t, form.Features)
}

func TestReadImageFilesCapsEachFile(t *testing.T) {
	req := multipartForm(t, http.MethodPost, "/", nil, []formPart{
		{"images", "small.jpg", []byte("abc")},
		{"images", "big.jpg", bytes.Repeat([]byte("x"), 20)},
		{"other", "skip.jpg", []byte("zzz")},
	})
	require.NoError(t, req.ParseMultipartForm(multipartMemory))

	files, err := readImageFiles(req, "images", UploadLimits{MaxBytes: 5})
	require.NoError(t, err)
	require.Len(t, files, 2)
	assert.Equal(t, []byte("abc"), files[0].Data)
	assert.Equal(t, "big.jpg", files[1].Filename)
	assert.Len(t, files[1].Data, 6)

	files, err = readImageFiles(httptest.NewRequest(http.MethodPost, "/", nil), "images", UploadLimits{MaxBytes: 5})
	require.NoError(t, err)
	assert.Nil(t, files)
}
