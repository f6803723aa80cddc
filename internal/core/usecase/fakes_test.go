package usecase

import (
	"bytes"
	"context"
	"encoding/json"
	"sync"
	"time"

	"github.com/amggit2025/amg-realestate-sub000/internal/core/domain"
	"github.com/amggit2025/amg-realestate-sub000/internal/core/port"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
)

var testNow = time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

func strp(s string) *string { return &s }

func validPatch() domain.ListingFormPatch {
	return domain.ListingFormPatch{
		PropertyType: strp("apartment"),
		Purpose:      strp("sale"),
		Governorate:  strp("cairo"),
		City:         strp("مدينة نصر"),
		Area:         strp("150"),
		Price:        strp("2,500,000"),
		Bedrooms:     strp("3"),
		Bathrooms:    strp("2"),
		Name:         strp("أحمد علي"),
		Phone:        strp("01012345678"),
		Email:        strp("ahmed@example.com"),
	}
}

func validForm() domain.ListingForm {
	d := domain.NewDraft(testNow)
	_ = d.Apply(validPatch(), testNow)
	return d.Form
}

// --- drafts

type memDraftStore struct {
	mu       sync.Mutex
	drafts   map[uuid.UUID]domain.Draft
	claims   map[uuid.UUID]bool
	saveErr  error
	saves    int
	releases int

	// the first gated Gets wait on getGate so callers read the same snapshot
	getGate *sync.WaitGroup
	gated   int
}

func newMemDraftStore(drafts ...*domain.Draft) *memDraftStore {
	s := &memDraftStore{drafts: map[uuid.UUID]domain.Draft{}, claims: map[uuid.UUID]bool{}}
	for _, d := range drafts {
		s.drafts[d.ID] = *d
	}
	return s
}

func (s *memDraftStore) Get(_ context.Context, id uuid.UUID) (*domain.Draft, error) {
	s.mu.Lock()
	gate := s.getGate != nil && s.gated > 0
	if gate {
		s.gated--
	}
	s.mu.Unlock()
	if gate {
		s.getGate.Done()
		s.getGate.Wait()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	d, ok := s.drafts[id]
	if !ok {
		return nil, domain.ErrDraftNotFound
	}
	d.Images = append([]domain.ListingImage{}, d.Images...)
	return &d, nil
}

func (s *memDraftStore) Save(_ context.Context, d *domain.Draft) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.saveErr != nil {
		return s.saveErr
	}
	s.saves++
	s.drafts[d.ID] = *d
	return nil
}

func (s *memDraftStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.drafts, id)
	return nil
}

func (s *memDraftStore) ClaimSubmission(_ context.Context, id uuid.UUID) (bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.claims[id] {
		return false, nil
	}
	s.claims[id] = true
	return true, nil
}

func (s *memDraftStore) ReleaseSubmission(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.releases++
	delete(s.claims, id)
	return nil
}

func (s *memDraftStore) stored(id uuid.UUID) domain.Draft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.drafts[id]
}

// --- listing requests

type memListingRepo struct {
	mu         sync.Mutex
	requests   map[string]*domain.ListingRequest
	createErrs []error
	creates    int
}

func newMemListingRepo() *memListingRepo {
	return &memListingRepo{requests: map[string]*domain.ListingRequest{}}
}

func (r *memListingRepo) Create(_ context.Context, req *domain.ListingRequest) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creates++
	if len(r.createErrs) > 0 {
		err := r.createErrs[0]
		r.createErrs = r.createErrs[1:]
		if err != nil {
			return err
		}
	}
	cp := *req
	r.requests[req.RequestID] = &cp
	return nil
}

func (r *memListingRepo) FindByRequestID(_ context.Context, requestID string) (*domain.ListingRequest, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok {
		return nil, domain.ErrNotFound
	}
	cp := *req
	return &cp, nil
}

func (r *memListingRepo) List(_ context.Context, filter domain.ListingRequestFilter) ([]domain.ListingRequest, int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := []domain.ListingRequest{}
	for _, req := range r.requests {
		if filter.Status == "" || req.Status == filter.Status {
			out = append(out, *req)
		}
	}
	return out, len(out), nil
}

func (r *memListingRepo) UpdateStatus(_ context.Context, requestID string, status domain.ListingStatus, note string, at time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	req, ok := r.requests[requestID]
	if !ok {
		return domain.ErrNotFound
	}
	req.Status, req.AdminNote, req.UpdatedAt = status, note, at
	return nil
}

// --- images

// fakeProcessor hashes by the first byte of the payload; payloads starting
// with "x" are not images.
type fakeProcessor struct{}

func (fakeProcessor) DetectContentType(data []byte) (string, error) {
	if bytes.HasPrefix(data, []byte("x")) {
		return "", domain.ErrUnsupportedImageType
	}
	return "image/jpeg", nil
}

func (fakeProcessor) Process(data []byte) (*port.ProcessedImage, error) {
	var hash uint64
	if len(data) > 0 {
		// spread the byte so distinct payloads are far apart
		hash = uint64(data[0]) * 0x0101010101010101
	}
	return &port.ProcessedImage{ContentType: "image/jpeg", PreviewDataURL: "data:image/jpeg;base64,AA==", Hash: hash, Width: 800, Height: 600}, nil
}

type mockStorage struct {
	mock.Mock
}

func (m *mockStorage) Upload(ctx context.Context, in port.UploadImageInput) (*port.StoredImage, error) {
	args := m.Called(ctx, in)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*port.StoredImage), args.Error(1)
}

func (m *mockStorage) Delete(ctx context.Context, publicID string) error {
	return m.Called(ctx, publicID).Error(0)
}

func uploadOf(filename string) interface{} {
	return mock.MatchedBy(func(in port.UploadImageInput) bool { return in.Filename == filename })
}

func stored(publicID string) *port.StoredImage {
	return &port.StoredImage{URL: "https://res.cloudinary.com/amg/" + publicID + ".jpg", PublicID: publicID}
}

// --- metrics, feed, events

type recordingMetrics struct {
	mu          sync.Mutex
	submitted   []string
	transitions []string
	uploads     []string
	notified    []string
}

func (m *recordingMetrics) ListingSubmitted(channel string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.submitted = append(m.submitted, channel)
}

func (m *recordingMetrics) WizardTransition(from, to string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	result := "ok"
	if !ok {
		result = "refused"
	}
	m.transitions = append(m.transitions, from+">"+to+":"+result)
}

func (m *recordingMetrics) ImageUpload(result string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.uploads = append(m.uploads, result)
}

func (m *recordingMetrics) NotificationSent(channel string, ok bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ok {
		m.notified = append(m.notified, channel+":ok")
	} else {
		m.notified = append(m.notified, channel+":error")
	}
}

type recordingNotifier struct {
	mu     sync.Mutex
	events []port.FeedEvent
}

func (n *recordingNotifier) Notify(_ context.Context, _ string, event port.FeedEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.events = append(n.events, event)
}

type fakeEvents struct {
	err       error
	published []domain.PropertySubmittedEvent
}

func (e *fakeEvents) PublishPropertySubmitted(_ context.Context, event domain.PropertySubmittedEvent) error {
	e.published = append(e.published, event)
	return e.err
}

// --- content

type memContentRepo struct {
	data    map[domain.ContentSection]json.RawMessage
	getErr  error
	upserts int
}

func (r *memContentRepo) Get(_ context.Context, section domain.ContentSection) (json.RawMessage, time.Time, error) {
	if r.getErr != nil {
		return nil, time.Time{}, r.getErr
	}
	d, ok := r.data[section]
	if !ok {
		return nil, time.Time{}, domain.ErrNotFound
	}
	return d, testNow, nil
}

func (r *memContentRepo) Upsert(_ context.Context, section domain.ContentSection, data json.RawMessage, _ time.Time) error {
	if r.data == nil {
		r.data = map[domain.ContentSection]json.RawMessage{}
	}
	r.upserts++
	r.data[section] = data
	return nil
}

type memContentCache struct {
	entries     map[domain.ContentSection][]byte
	invalidated []domain.ContentSection
}

func newMemContentCache() *memContentCache {
	return &memContentCache{entries: map[domain.ContentSection][]byte{}}
}

func (c *memContentCache) Get(_ context.Context, section domain.ContentSection) ([]byte, bool, error) {
	v, ok := c.entries[section]
	return v, ok, nil
}

func (c *memContentCache) Set(_ context.Context, section domain.ContentSection, data []byte) error {
	c.entries[section] = data
	return nil
}

func (c *memContentCache) Invalidate(_ context.Context, section domain.ContentSection) error {
	delete(c.entries, section)
	c.invalidated = append(c.invalidated, section)
	return nil
}

// --- users and auth

type memUserRepo struct {
	users     map[string]*domain.User
	createErr error
}

func newMemUserRepo(users ...*domain.User) *memUserRepo {
	r := &memUserRepo{users: map[string]*domain.User{}}
	for _, u := range users {
		r.users[u.Email] = u
	}
	return r
}

func (r *memUserRepo) Create(_ context.Context, u *domain.User) error {
	if r.createErr != nil {
		return r.createErr
	}
	if _, ok := r.users[u.Email]; ok {
		return domain.ErrAlreadyExists
	}
	r.users[u.Email] = u
	return nil
}

func (r *memUserRepo) FindByEmail(_ context.Context, email string) (*domain.User, error) {
	return r.users[email], nil
}

func (r *memUserRepo) FindByID(_ context.Context, id uuid.UUID) (*domain.User, error) {
	for _, u := range r.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, domain.ErrNotFound
}

// plainHasher prefixes the password so tests can read hashes back.
type plainHasher struct{}

func (plainHasher) Hash(password string) (string, error) { return "hashed:" + password, nil }
func (plainHasher) Compare(hash, password string) bool   { return hash == "hashed:"+password }

type fakeTokens struct{}

func (fakeTokens) GenerateToken(_ context.Context, user *domain.User, _ time.Duration) (string, error) {
	return "token-" + user.ID.String(), nil
}

func (fakeTokens) ValidateToken(_ context.Context, token string) (*domain.Claims, error) {
	return nil, domain.ErrTokenInvalid
}

// --- notifications

type mockEmail struct {
	mock.Mock
}

func (m *mockEmail) SendEmail(ctx context.Context, msg port.EmailMessage) error {
	return m.Called(ctx, msg).Error(0)
}

type mockSMS struct {
	mock.Mock
}

func (m *mockSMS) SendSMS(ctx context.Context, phone, message string) error {
	return m.Called(ctx, phone, message).Error(0)
}
