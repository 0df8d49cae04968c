package services

import (
	"context"
	"database/sql"
	"sort"
	"sync"
	"time"

	"pin_share_backend/config"
	"pin_share_backend/models"
)

func testConfig() *config.Config {
	cfg := &config.Config{}
	cfg.Interact.LikeWeight = 3
	cfg.Interact.CommentWeight = 2
	cfg.Interact.SearchWeight = 1
	cfg.Interact.QueueSize = 4096
	cfg.Interact.Workers = 4
	cfg.Extract.MaxKeywords = 16
	cfg.Recommend.InterestTopK = 10
	cfg.Recommend.DefaultLimit = 30
	cfg.Fetcher.PageTimeoutSec = 7
	return cfg
}

// memInterestStore is a mutex-guarded InterestStore with the same atomic
// per-key upsert contract as the MySQL implementation.
type memInterestStore struct {
	mu      sync.Mutex
	records map[string]map[string]*models.InterestRecord // user -> keyword -> record
}

func newMemInterestStore() *memInterestStore {
	return &memInterestStore{records: make(map[string]map[string]*models.InterestRecord)}
}

func (m *memInterestStore) UpsertInterest(userID, keyword string, inc float64, at time.Time) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	byKey, ok := m.records[userID]
	if !ok {
		byKey = make(map[string]*models.InterestRecord)
		m.records[userID] = byKey
	}
	rec, ok := byKey[keyword]
	if !ok {
		rec = &models.InterestRecord{UserID: userID, Keyword: keyword}
		byKey[keyword] = rec
	}
	rec.Score += inc
	rec.UpdatedAt = at
	return nil
}

func (m *memInterestStore) TopInterests(userID string, k int) ([]models.InterestRecord, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.InterestRecord, 0, len(m.records[userID]))
	for _, rec := range m.records[userID] {
		out = append(out, *rec)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Score != out[j].Score {
			return out[i].Score > out[j].Score
		}
		if !out[i].UpdatedAt.Equal(out[j].UpdatedAt) {
			return out[i].UpdatedAt.After(out[j].UpdatedAt)
		}
		return out[i].Keyword < out[j].Keyword
	})
	if len(out) > k {
		out = out[:k]
	}
	return out, nil
}

func (m *memInterestStore) score(userID, keyword string) float64 {
	m.mu.Lock()
	defer m.mu.Unlock()
	if rec, ok := m.records[userID][keyword]; ok {
		return rec.Score
	}
	return 0
}

type memInteractionSink struct {
	mu     sync.Mutex
	events []*models.InteractionEvent
}

func (m *memInteractionSink) InsertInteraction(ev *models.InteractionEvent) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, ev)
	return nil
}

func (m *memInteractionSink) count() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.events)
}

type memSavedSearchStore struct {
	mu   sync.Mutex
	keys map[string][]string
	err  error
}

func newMemSavedSearchStore() *memSavedSearchStore {
	return &memSavedSearchStore{keys: make(map[string][]string)}
}

func (m *memSavedSearchStore) GetSavedSearches(userID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return nil, m.err
	}
	return append([]string(nil), m.keys[userID]...), nil
}

func (m *memSavedSearchStore) AddSavedSearches(userID string, keys []string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.err != nil {
		return m.err
	}
	for _, k := range keys {
		found := false
		for _, existing := range m.keys[userID] {
			if existing == k {
				found = true
				break
			}
		}
		if !found {
			m.keys[userID] = append(m.keys[userID], k)
		}
	}
	return nil
}

// memContentStore mimics the repository contract: list queries return only
// public pins of other owners, newest first, capped. listOverride, when set,
// is returned verbatim so tests can probe the ranker's defensive pass.
type memContentStore struct {
	mu           sync.Mutex
	pins         []*models.Pin
	comments     []*models.Comment
	likes        map[string]map[string]bool // pin -> user
	listErr      error
	listOverride []models.Pin
	lastListKeys []string
}

func newMemContentStore() *memContentStore {
	return &memContentStore{likes: make(map[string]map[string]bool)}
}

func (m *memContentStore) CreatePin(p *models.Pin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *p
	m.pins = append(m.pins, &cp)
	return nil
}

func (m *memContentStore) GetPin(id string) (*models.Pin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pins {
		if p.ID == id {
			cp := *p
			return &cp, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memContentStore) UpdatePin(p *models.Pin) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, existing := range m.pins {
		if existing.ID == p.ID {
			cp := *p
			m.pins[i] = &cp
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memContentStore) DeletePin(id string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	for i, p := range m.pins {
		if p.ID == id {
			m.pins = append(m.pins[:i], m.pins[i+1:]...)
			return nil
		}
	}
	return sql.ErrNoRows
}

func (m *memContentStore) AddLike(pinID, userID string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.likes[pinID] == nil {
		m.likes[pinID] = make(map[string]bool)
	}
	m.likes[pinID][userID] = true
	return nil
}

func (m *memContentStore) AddComment(c *models.Comment) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	cp := *c
	m.comments = append(m.comments, &cp)
	return nil
}

func (m *memContentStore) GetPinKeywords(pinID string) ([]string, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, p := range m.pins {
		if p.ID == pinID {
			return append([]string(nil), p.Keywords...), nil
		}
	}
	return nil, sql.ErrNoRows
}

func (m *memContentStore) ListPublicPins(excludeOwner string, keys []string, limit int) ([]models.Pin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.lastListKeys = append([]string(nil), keys...)
	if m.listErr != nil {
		return nil, m.listErr
	}
	if m.listOverride != nil {
		return append([]models.Pin(nil), m.listOverride...), nil
	}

	out := make([]models.Pin, 0)
	for _, p := range m.pins {
		if p.Privacy != models.PrivacyPublic || p.Publisher == excludeOwner {
			continue
		}
		if len(keys) > 0 && !intersects(p.Keywords, keys) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func (m *memContentStore) SearchPublicPins(keys []string, limit int) ([]models.Pin, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]models.Pin, 0)
	for _, p := range m.pins {
		if p.Privacy != models.PrivacyPublic {
			continue
		}
		if !intersects(p.Keywords, keys) {
			continue
		}
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

func intersects(a, b []string) bool {
	for _, x := range a {
		for _, y := range b {
			if x == y {
				return true
			}
		}
	}
	return false
}

type stubMetaFetcher struct {
	meta *PageMeta
}

func (s stubMetaFetcher) Fetch(ctx context.Context, url string) *PageMeta { return s.meta }

type stubOCR struct {
	text string
}

func (s stubOCR) Extract(ctx context.Context, filePath string) string { return s.text }
