package services

import (
	"context"
	"time"

	"pin_share_backend/models"
	"pin_share_backend/repository"
)

// ContentStore is the pin persistence surface consumed by the services.
type ContentStore interface {
	CreatePin(p *models.Pin) error
	GetPin(id string) (*models.Pin, error)
	UpdatePin(p *models.Pin) error
	DeletePin(id string) error
	AddLike(pinID, userID string) error
	AddComment(c *models.Comment) error
	GetPinKeywords(pinID string) ([]string, error)
	ListPublicPins(excludeOwner string, keys []string, limit int) ([]models.Pin, error)
	SearchPublicPins(keys []string, limit int) ([]models.Pin, error)
}

// InterestStore holds the per-user keyword scores. Upsert must be atomic per
// (user, keyword) key.
type InterestStore interface {
	UpsertInterest(userID, keyword string, inc float64, at time.Time) error
	TopInterests(userID string, k int) ([]models.InterestRecord, error)
}

// SavedSearchStore holds each user's saved-search keyword set.
type SavedSearchStore interface {
	GetSavedSearches(userID string) ([]string, error)
	AddSavedSearches(userID string, keys []string) error
}

// InteractionSink is the append-only event log.
type InteractionSink interface {
	InsertInteraction(ev *models.InteractionEvent) error
}

// PageMetaFetcher resolves linked-page metadata. Failure returns nil, never
// an error, and implementations must be time-bounded.
type PageMetaFetcher interface {
	Fetch(ctx context.Context, url string) *PageMeta
}

// ImageTextExtractor pulls text out of uploaded media, best effort. Failure
// returns an empty string.
type ImageTextExtractor interface {
	Extract(ctx context.Context, filePath string) string
}

// MySQL-backed store implementations delegating to the repository package.

type SQLContentStore struct{}

func (SQLContentStore) CreatePin(p *models.Pin) error           { return repository.CreatePin(p) }
func (SQLContentStore) GetPin(id string) (*models.Pin, error)   { return repository.GetPin(id) }
func (SQLContentStore) UpdatePin(p *models.Pin) error           { return repository.UpdatePin(p) }
func (SQLContentStore) DeletePin(id string) error               { return repository.DeletePin(id) }
func (SQLContentStore) AddLike(pinID, userID string) error      { return repository.AddLike(pinID, userID) }
func (SQLContentStore) AddComment(c *models.Comment) error      { return repository.AddComment(c) }
func (SQLContentStore) GetPinKeywords(id string) ([]string, error) {
	return repository.GetPinKeywords(id)
}
func (SQLContentStore) ListPublicPins(excludeOwner string, keys []string, limit int) ([]models.Pin, error) {
	return repository.ListPublicPins(excludeOwner, keys, limit)
}
func (SQLContentStore) SearchPublicPins(keys []string, limit int) ([]models.Pin, error) {
	return repository.SearchPublicPins(keys, limit)
}

type SQLInterestStore struct{}

func (SQLInterestStore) UpsertInterest(userID, keyword string, inc float64, at time.Time) error {
	return repository.UpsertInterest(userID, keyword, inc, at)
}
func (SQLInterestStore) TopInterests(userID string, k int) ([]models.InterestRecord, error) {
	return repository.TopInterests(userID, k)
}

type SQLSavedSearchStore struct{}

func (SQLSavedSearchStore) GetSavedSearches(userID string) ([]string, error) {
	return repository.GetSavedSearches(userID)
}
func (SQLSavedSearchStore) AddSavedSearches(userID string, keys []string) error {
	return repository.AddSavedSearches(userID, keys)
}

type SQLInteractionSink struct{}

func (SQLInteractionSink) InsertInteraction(ev *models.InteractionEvent) error {
	return repository.InsertInteraction(ev)
}
