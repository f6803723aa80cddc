package rest

import (
	"bufio"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/adapters/notifier"
	"github.com/amggit2025/amg-realestate-sub000/internal/constants"
	"github.com/amggit2025/amg-realestate-sub000/internal/contextkeys"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/usecase"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type mockValidateToken struct{ mock.Mock }

func (m *mockValidateToken) Execute(ctx context.Context, token string) (*domain.Claims, error) {
	args := m.Called(ctx, token)
	claims, _ := args.Get(0).(*domain.Claims)
	return claims, args.Error(1)
}

type mockChat struct{ mock.Mock }

func (m *mockChat) Execute(ctx context.Context, req domain.ChatRequest) (*domain.ChatReply, error) {
	args := m.Called(ctx, req)
	reply, _ := args.Get(0).(*domain.ChatReply)
	return reply, args.Error(1)
}

type mockSubmitDraft struct{ mock.Mock }

func (m *mockSubmitDraft) Execute(ctx context.Context, id uuid.UUID) (*domain.ListingRequest, error) {
	args := m.Called(ctx, id)
	req, _ := args.Get(0).(*domain.ListingRequest)
	return req, args.Error(1)
}

type mockUploadImage struct{ mock.Mock }

func (m *mockUploadImage) Execute(ctx context.Context, uploadType string, file domain.ImageFile) (*port.StoredImage, error) {
	args := m.Called(ctx, uploadType, file)
	stored, _ := args.Get(0).(*port.StoredImage)
	return stored, args.Error(1)
}

type mockListRequests struct{ mock.Mock }

func (m *mockListRequests) Execute(ctx context.Context, filter domain.ListingRequestFilter) ([]domain.ListingRequest, int, error) {
	args := m.Called(ctx, filter)
	reqs, _ := args.Get(0).([]domain.ListingRequest)
	return reqs, args.Int(1), args.Error(2)
}

type mockGetContent struct{ mock.Mock }

func (m *mockGetContent) Execute(ctx context.Context, section domain.ContentSection) (*domain.Content, error) {
	args := m.Called(ctx, section)
	content, _ := args.Get(0).(*domain.Content)
	return content, args.Error(1)
}

var testLimits = UploadLimits{MaxBytes: 1 << 20, MaxImages: 3}

// newTestHandlers wires only what a test sets; the rest stay nil.
func newTestHandlers(tokens *mockValidateToken) Handlers {
	return Handlers{
		Wizard:        NewWizardHandler(nil, nil, nil, nil, nil, nil, nil, testLimits),
		Listings:      NewListingHandler(nil, nil, nil, nil, testLimits),
		Uploads:       NewUploadHandler(nil, nil, testLimits),
		Content:       NewContentHandler(nil, nil),
		Portfolio:     NewPortfolioHandler(nil, nil, nil, nil, nil, nil, nil, nil),
		Store:         NewStoreHandler(nil, nil, nil, nil, nil, nil),
		Chat:          NewChatHandler(nil),
		Auth:          NewAuthHandler(nil, nil),
		Events:        NewEventsHandler(notifier.NewSSENotifier(contextkeys.NoopLogger())),
		ValidateToken: tokens,
	}
}

func serve(h Handlers, req *http.Request) *httptest.ResponseRecorder {
	rec := httptest.NewRecorder()
	NewRouter(h, RouterOptions{AllowedOrigins: []string{"http://localhost:3000"}}, contextkeys.NoopLogger()).ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestHealthzAndTraceID(t *testing.T) {
	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	_, err := uuid.Parse(rec.Header().Get(traceHeader))
	assert.NoError(t, err)

	traceID := uuid.New().String()
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set(traceHeader, traceID)
	rec = serve(h, req)
	assert.Equal(t, traceID, rec.Header().Get(traceHeader))
}

func TestChatEmptyMessage(t *testing.T) {
	chat := &mockChat{}
	chat.On("Execute", mock.Anything, domain.ChatRequest{Message: "  "}).Return(nil, domain.ErrEmptyMessage)

	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()
	h.Chat = NewChatHandler(chat)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/ai/chat", strings.NewReader(`{"message":"  "}`)))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, "يرجى كتابة رسالة", body["message"])
}

func TestChatReply(t *testing.T) {
	chat := &mockChat{}
	chat.On("Execute", mock.Anything, domain.ChatRequest{Message: "مرحبا"}).Return(&domain.ChatReply{
		Message:      "أهلاً بك",
		QuickReplies: []string{"أريد عرض عقار"},
		Intent:       domain.IntentGreeting,
	}, nil)

	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()
	h.Chat = NewChatHandler(chat)

	rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/ai/chat", strings.NewReader(`{"message":"مرحبا"}`)))
	require.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "أهلاً بك", body["message"])
	assert.Equal(t, []interface{}{"أريد عرض عقار"}, body["quickReplies"])
}

func multipartUpload(t *testing.T, field, filename string, data []byte, extra map[string]string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	part, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = part.Write(data)
	require.NoError(t, err)
	for k, v := range extra {
		require.NoError(t, mw.WriteField(k, v))
	}
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/upload", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUploadResponses(t *testing.T) {
	byName := func(name string) interface{} {
		return mock.MatchedBy(func(f domain.ImageFile) bool { return f.Filename == name })
	}

	t.Run("success", func(t *testing.T) {
		uploads := &mockUploadImage{}
		uploads.On("Execute", mock.Anything, "portfolio", byName("a.jpg")).
			Return(&port.StoredImage{URL: "https://cdn/a.jpg", PublicID: "amg/portfolio/a"}, nil)

		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Uploads = NewUploadHandler(uploads, nil, testLimits)

		rec := serve(h, multipartUpload(t, "file", "a.jpg", []byte("jpeg"), map[string]string{"type": "portfolio"}))
		require.Equal(t, http.StatusOK, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, "https://cdn/a.jpg", body["url"])
		assert.Equal(t, "amg/portfolio/a", body["publicId"])
	})

	t.Run("timeout maps to gateway timeout", func(t *testing.T) {
		uploads := &mockUploadImage{}
		uploads.On("Execute", mock.Anything, "property", byName("b.png")).
			Return(nil, fmt.Errorf("image upload failed: %w", context.DeadlineExceeded))

		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Uploads = NewUploadHandler(uploads, nil, testLimits)

		rec := serve(h, multipartUpload(t, "file", "b.png", []byte("png"), map[string]string{"type": "property"}))
		assert.Equal(t, http.StatusGatewayTimeout, rec.Code)
		assert.Equal(t, msgUploadTimeout, decodeBody(t, rec)["message"])
	})

	t.Run("missing file", func(t *testing.T) {
		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()

		rec := serve(h, multipartUpload(t, "other", "c.png", []byte("png"), nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgMissingFile, decodeBody(t, rec)["message"])
	})

	t.Run("unsupported type", func(t *testing.T) {
		uploads := &mockUploadImage{}
		uploads.On("Execute", mock.Anything, "general", byName("d.txt")).Return(nil, domain.ErrUnsupportedImageType)

		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Uploads = NewUploadHandler(uploads, nil, testLimits)

		rec := serve(h, multipartUpload(t, "file", "d.txt", []byte("text"), nil))
		assert.Equal(t, http.StatusUnsupportedMediaType, rec.Code)
	})
}

func TestSubmitDraftResponses(t *testing.T) {
	draftID := uuid.New()

	t.Run("validation envelope", func(t *testing.T) {
		v := domain.NewValidationError()
		v.Add("phone", domain.MsgRequired)
		submit := &mockSubmitDraft{}
		submit.On("Execute", mock.Anything, draftID).Return(nil, v)

		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Wizard = NewWizardHandler(nil, nil, nil, nil, nil, nil, submit, testLimits)

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/wizard/drafts/"+draftID.String()+"/submit", nil))
		require.Equal(t, http.StatusUnprocessableEntity, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, false, body["success"])
		assert.Equal(t, map[string]interface{}{"phone": domain.MsgRequired}, body["errors"])
	})

	t.Run("success", func(t *testing.T) {
		submit := &mockSubmitDraft{}
		submit.On("Execute", mock.Anything, draftID).Return(&domain.ListingRequest{RequestID: "AMG-20250301-ABC123"}, nil)

		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Wizard = NewWizardHandler(nil, nil, nil, nil, nil, nil, submit, testLimits)

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/wizard/drafts/"+draftID.String()+"/submit", nil))
		require.Equal(t, http.StatusCreated, rec.Code)
		body := decodeBody(t, rec)
		assert.Equal(t, true, body["success"])
		assert.Equal(t, map[string]interface{}{"requestId": "AMG-20250301-ABC123"}, body["data"])
	})

	t.Run("already submitted", func(t *testing.T) {
		submit := &mockSubmitDraft{}
		submit.On("Execute", mock.Anything, draftID).Return(nil, domain.ErrDraftSubmitted)

		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()
		h.Wizard = NewWizardHandler(nil, nil, nil, nil, nil, nil, submit, testLimits)

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/wizard/drafts/"+draftID.String()+"/submit", nil))
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("malformed id", func(t *testing.T) {
		h := newTestHandlers(&mockValidateToken{})
		defer h.Events.notifier.Stop()

		rec := serve(h, httptest.NewRequest(http.MethodPost, "/api/wizard/drafts/not-a-uuid/submit", nil))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, msgInvalidID, decodeBody(t, rec)["message"])
	})
}

func TestAdminRoutesRequireAdminRole(t *testing.T) {
	tokens := &mockValidateToken{}
	tokens.On("Execute", mock.Anything, "admin-token").Return(&domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}, nil)
	tokens.On("Execute", mock.Anything, "editor-token").Return(&domain.Claims{UserID: uuid.New(), Role: "editor"}, nil)
	tokens.On("Execute", mock.Anything, "stale-token").Return(nil, domain.ErrTokenExpired)

	list := &mockListRequests{}
	list.On("Execute", mock.Anything, domain.ListingRequestFilter{Status: domain.StatusPending, Limit: domain.MaxPageLimit, Offset: 5}).
		Return([]domain.ListingRequest{{RequestID: "AMG-20250301-ABC123", Status: domain.StatusPending}}, 41, nil)

	h := newTestHandlers(tokens)
	defer h.Events.notifier.Stop()
	h.Listings = NewListingHandler(nil, list, nil, nil, testLimits)

	call := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/admin/properties?status=pending&limit=500&offset=5", nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return serve(h, req)
	}

	assert.Equal(t, http.StatusUnauthorized, call("").Code)
	assert.Equal(t, http.StatusUnauthorized, call("stale-token").Code)
	assert.Equal(t, http.StatusForbidden, call("editor-token").Code)

	rec := call("admin-token")
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 41, data["total"])
	assert.EqualValues(t, domain.MaxPageLimit, data["limit"])
	assert.Len(t, data["items"], 1)
	list.AssertExpectations(t)
}

func TestContentRoutes(t *testing.T) {
	content := &mockGetContent{}
	content.On("Execute", mock.Anything, domain.SectionHeroStats).Return(&domain.Content{
		Section: domain.SectionHeroStats,
		Data:    &domain.HeroStats{ProjectsCompleted: 250, HappyClients: 1200},
	}, nil)

	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()
	h.Content = NewContentHandler(content, nil)

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/hero-stats", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.EqualValues(t, 250, data["projectsCompleted"])

	rec = serve(h, httptest.NewRequest(http.MethodPut, "/api/hero-stats", strings.NewReader(`{}`)))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestCatalogRoute(t *testing.T) {
	h := newTestHandlers(&mockValidateToken{})
	defer h.Events.notifier.Stop()

	rec := serve(h, httptest.NewRequest(http.MethodGet, "/api/catalog", nil))
	require.Equal(t, http.StatusOK, rec.Code)
	data := decodeBody(t, rec)["data"].(map[string]interface{})
	assert.NotEmpty(t, data["propertyTypes"])
	assert.NotEmpty(t, data["governorates"])
}

func TestAdminEventStream(t *testing.T) {
	tokens := &mockValidateToken{}
	tokens.On("Execute", mock.Anything, "admin-token").Return(&domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}, nil)

	h := newTestHandlers(tokens)
	n := h.Events.notifier
	defer n.Stop()

	srv := httptest.NewServer(NewRouter(h, RouterOptions{}, contextkeys.NoopLogger()))
	defer srv.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, srv.URL+"/api/admin/events", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer admin-token")

	resp, err := srv.Client().Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "text/event-stream", resp.Header.Get("Content-Type"))

	reader := bufio.NewReader(resp.Body)
	readEvent := func() string {
		line, err := reader.ReadString('\n')
		require.NoError(t, err)
		for line == "\n" || strings.HasPrefix(line, ":") {
			line, err = reader.ReadString('\n')
			require.NoError(t, err)
		}
		return strings.TrimSpace(line)
	}

	assert.Equal(t, "event: "+constants.SSEEventConnected, readEvent())
	_, _ = reader.ReadString('\n') // data line

	n.Notify(context.Background(), constants.AdminFeed, port.FeedEvent{
		Type: constants.SSEEventListingSubmitted,
		Data: map[string]string{"requestId": "AMG-20250301-ABC123"},
	})
	assert.Equal(t, "event: "+constants.SSEEventListingSubmitted, readEvent())
	data, err := reader.ReadString('\n')
	require.NoError(t, err)
	assert.Equal(t, `data: {"requestId":"AMG-20250301-ABC123"}`, strings.TrimSpace(data))
}

type mockImageStorage struct{ mock.Mock }

func (m *mockImageStorage) Upload(ctx context.Context, in port.UploadImageInput) (*port.StoredImage, error) {
	args := m.Called(ctx, in)
	stored, _ := args.Get(0).(*port.StoredImage)
	return stored, args.Error(1)
}

func (m *mockImageStorage) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func TestDeleteImageScope(t *testing.T) {
	tokens := &mockValidateToken{}
	tokens.On("Execute", mock.Anything, "admin-token").Return(&domain.Claims{UserID: uuid.New(), Role: domain.RoleAdmin}, nil)
	tokens.On("Execute", mock.Anything, "stale-token").Return(nil, domain.ErrTokenExpired)

	storage := &mockImageStorage{}
	storage.On("Delete", mock.Anything, "amg/property/x").Return(nil)
	storage.On("Delete", mock.Anything, "amg/portfolio/x").Return(nil)

	h := newTestHandlers(tokens)
	defer h.Events.notifier.Stop()
	h.Uploads = NewUploadHandler(nil, usecase.NewDeleteImageUseCase(storage, "amg"), testLimits)

	call := func(path, publicID, token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodDelete, path+"?publicId="+publicID, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		return serve(h, req)
	}

	rec := call("/api/delete-image", "amg/portfolio/x", "")
	assert.Equal(t, http.StatusForbidden, rec.Code)
	assert.Equal(t, false, decodeBody(t, rec)["success"])
	assert.Equal(t, http.StatusForbidden, call("/api/upload/manage", "amg/portfolio/x", "").Code)
	assert.Equal(t, http.StatusUnauthorized, call("/api/delete-image", "amg/property/x", "stale-token").Code)

	rec = call("/api/delete-image", "amg/property/x", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, msgDeleted, decodeBody(t, rec)["message"])

	assert.Equal(t, http.StatusOK, call("/api/upload/manage", "amg/portfolio/x", "admin-token").Code)
	storage.AssertNumberOfCalls(t, "Delete", 2)
}
