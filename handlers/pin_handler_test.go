package handlers

import (
	"bytes"
	"database/sql"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"pin_share_backend/config"
	"pin_share_backend/models"
	"pin_share_backend/services"
)

type fakeContentStore struct {
	mu   sync.Mutex
	pins map[string]*models.Pin
}

func newFakeContentStore() *fakeContentStore {
	return &fakeContentStore{pins: make(map[string]*models.Pin)}
}

func (f *fakeContentStore) CreatePin(p *models.Pin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	cp := *p
	f.pins[p.ID] = &cp
	return nil
}

func (f *fakeContentStore) GetPin(id string) (*models.Pin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.pins[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, sql.ErrNoRows
}

func (f *fakeContentStore) UpdatePin(p *models.Pin) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.pins[p.ID]; !ok {
		return sql.ErrNoRows
	}
	cp := *p
	f.pins[p.ID] = &cp
	return nil
}

func (f *fakeContentStore) DeletePin(id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	delete(f.pins, id)
	return nil
}

func (f *fakeContentStore) AddLike(pinID, userID string) error { return nil }

func (f *fakeContentStore) AddComment(c *models.Comment) error { return nil }

func (f *fakeContentStore) GetPinKeywords(pinID string) ([]string, error) {
	p, err := f.GetPin(pinID)
	if err != nil {
		return nil, err
	}
	return p.Keywords, nil
}

func (f *fakeContentStore) ListPublicPins(excludeOwner string, keys []string, limit int) ([]models.Pin, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]models.Pin, 0)
	for _, p := range f.pins {
		if p.Privacy == models.PrivacyPublic && p.Publisher != excludeOwner {
			out = append(out, *p)
		}
	}
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (f *fakeContentStore) SearchPublicPins(keys []string, limit int) ([]models.Pin, error) {
	return []models.Pin{}, nil
}

type fakeInterestStore struct{}

func (fakeInterestStore) UpsertInterest(userID, keyword string, inc float64, at time.Time) error {
	return nil
}
func (fakeInterestStore) TopInterests(userID string, k int) ([]models.InterestRecord, error) {
	return nil, nil
}

type fakeSavedSearchStore struct{}

func (fakeSavedSearchStore) GetSavedSearches(userID string) ([]string, error) { return nil, nil }
func (fakeSavedSearchStore) AddSavedSearches(userID string, keys []string) error {
	return nil
}

type fakeSink struct{}

func (fakeSink) InsertInteraction(ev *models.InteractionEvent) error { return nil }

func newTestRouter(t *testing.T) *chi.Mux {
	t.Helper()

	cfg := &config.Config{}
	cfg.Interact.LikeWeight = 3
	cfg.Interact.CommentWeight = 2
	cfg.Interact.SearchWeight = 1
	cfg.Interact.QueueSize = 64
	cfg.Interact.Workers = 1
	cfg.Extract.MaxKeywords = 16
	cfg.Recommend.InterestTopK = 10
	cfg.Recommend.DefaultLimit = 30
	cfg.Fetcher.PageTimeoutSec = 1

	store := newFakeContentStore()
	ledger := services.NewInterestLedger(cfg, fakeInterestStore{}, fakeSink{})
	t.Cleanup(ledger.Close)

	svc := &Services{
		Pins:   services.NewPinService(cfg, store, ledger, fakeSavedSearchStore{}, nil, nil),
		Rec:    services.NewRecommender(cfg, store, ledger, fakeSavedSearchStore{}),
		Ledger: ledger,
	}

	r := chi.NewRouter()
	RegisterRoutes(r, cfg, svc)
	return r
}

type envelope struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

func doJSON(t *testing.T, r http.Handler, method, path, userID string, body any) (*httptest.ResponseRecorder, envelope) {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	if userID != "" {
		req.Header.Set("X-User-ID", userID)
	}
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	var env envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	return rec, env
}

func TestCreateAndGetPinOverHTTP(t *testing.T) {
	r := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/pin", "alice", models.CreatePinRequest{
		Title:       "Sunset Beach Photo",
		Description: "golden hour at the beach",
		Privacy:     "public",
	})
	require.Equal(t, models.CodeSuccess, env.Code)

	var created models.Pin
	require.NoError(t, json.Unmarshal(env.Data, &created))
	require.NotEmpty(t, created.ID)
	assert.Contains(t, created.Keywords, "beach")

	_, env = doJSON(t, r, http.MethodGet, "/api/pin/"+created.ID, "", nil)
	require.Equal(t, models.CodeSuccess, env.Code)

	var fetched models.Pin
	require.NoError(t, json.Unmarshal(env.Data, &fetched))
	assert.Equal(t, created.ID, fetched.ID)
	assert.Equal(t, created.Keywords, fetched.Keywords)
}

func TestCreatePinRequiresUser(t *testing.T) {
	r := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/pin", "", models.CreatePinRequest{
		Title:       "t",
		Description: "d",
	})
	assert.Equal(t, models.CodeMissingParams, env.Code)
}

func TestCreatePinRequiresTitleAndDescription(t *testing.T) {
	r := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/pin", "alice", models.CreatePinRequest{Title: "only title"})
	assert.Equal(t, models.CodeMissingParams, env.Code)
}

func TestGetPinNotFound(t *testing.T) {
	r := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodGet, "/api/pin/does-not-exist", "", nil)
	assert.Equal(t, models.CodePinNotFound, env.Code)
}

func TestUpdatePinForbiddenForNonOwner(t *testing.T) {
	r := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodPost, "/api/pin", "alice", models.CreatePinRequest{
		Title:       "city lights",
		Description: "night walk",
	})
	require.Equal(t, models.CodeSuccess, env.Code)
	var created models.Pin
	require.NoError(t, json.Unmarshal(env.Data, &created))

	_, env = doJSON(t, r, http.MethodPut, "/api/pin/"+created.ID, "mallory", models.UpdatePinRequest{Title: "stolen"})
	assert.Equal(t, models.CodeForbidden, env.Code)
}

func TestSearchRequiresQuery(t *testing.T) {
	r := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodGet, "/api/search", "", nil)
	assert.Equal(t, models.CodeMissingParams, env.Code)
}

func TestRecommendEmptyIsSuccess(t *testing.T) {
	r := newTestRouter(t)

	_, env := doJSON(t, r, http.MethodGet, "/api/recommendation/bob", "", nil)
	require.Equal(t, models.CodeSuccess, env.Code)

	var pins []models.Pin
	require.NoError(t, json.Unmarshal(env.Data, &pins))
	assert.Empty(t, pins)
}
