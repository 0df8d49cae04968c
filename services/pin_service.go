package services

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"

	"pin_share_backend/config"
	"pin_share_backend/keywords"
	"pin_share_backend/logger"
	"pin_share_backend/models"
	"pin_share_backend/utils"
)

// ErrForbidden marks an operation on a pin the user does not own.
var ErrForbidden = errors.New("not the pin owner")

// PinService owns the content lifecycle around the keyword engine: creation
// runs extraction synchronously (a pin is never stored without its keyword
// set), while likes, comments and searches feed the interest ledger without
// blocking the request.
type PinService struct {
	store    ContentStore
	ledger   *InterestLedger
	searches SavedSearchStore
	meta     PageMetaFetcher
	ocr      ImageTextExtractor

	maxKeywords int
	pageTimeout time.Duration
}

func NewPinService(cfg *config.Config, store ContentStore, ledger *InterestLedger, searches SavedSearchStore, meta PageMetaFetcher, ocr ImageTextExtractor) *PinService {
	return &PinService{
		store:       store,
		ledger:      ledger,
		searches:    searches,
		meta:        meta,
		ocr:         ocr,
		maxKeywords: cfg.Extract.MaxKeywords,
		pageTimeout: time.Duration(cfg.Fetcher.PageTimeoutSec) * time.Second,
	}
}

// CreatePinInput is the validated pin creation payload.
type CreatePinInput struct {
	Publisher     string
	Title         string
	Description   string
	Link          string
	Privacy       string
	Board         string
	MediaFilename string
	Tags          []string
}

// CreatePin extracts the keyword set and stores the pin. Metadata and image
// text fetches degrade to absent sources; only the store write can fail the
// request.
func (s *PinService) CreatePin(ctx context.Context, in CreatePinInput) (*models.Pin, error) {
	src := keywords.Source{
		Title:       in.Title,
		Description: in.Description,
		Filename:    utils.StripFileExt(in.MediaFilename),
		Hashtags:    utils.DeduplicateSlice(in.Tags),
	}
	if in.Board != "" {
		src.Boards = []string{in.Board}
	}

	if in.Link != "" && s.meta != nil {
		fetchCtx, cancel := context.WithTimeout(ctx, s.pageTimeout)
		meta := s.meta.Fetch(fetchCtx, in.Link)
		cancel()
		if meta != nil {
			src.PageTitle = meta.Title
			src.PageDescription = meta.Description
		} else {
			logger.Debug("no page metadata for link", "link", in.Link)
		}
	}

	if in.MediaFilename != "" && s.ocr != nil {
		src.ImageText = s.ocr.Extract(ctx, in.MediaFilename)
	}

	now := time.Now()
	pin := &models.Pin{
		ID:            uuid.NewString(),
		Publisher:     in.Publisher,
		Title:         in.Title,
		Description:   in.Description,
		Link:          in.Link,
		Privacy:       models.NormalizePrivacy(in.Privacy),
		Board:         in.Board,
		MediaFilename: in.MediaFilename,
		Keywords:      keywords.Extract(src, s.maxKeywords),
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.store.CreatePin(pin); err != nil {
		return nil, err
	}

	logger.Info("pin created", "pin_id", pin.ID, "publisher", pin.Publisher, "keywords", len(pin.Keywords))
	return pin, nil
}

// GetPin loads one pin.
func (s *PinService) GetPin(id string) (*models.Pin, error) {
	return s.store.GetPin(id)
}

// UpdatePinInput carries the mutable pin fields; empty means unchanged.
type UpdatePinInput struct {
	Title       string
	Description string
	Privacy     string
}

// UpdatePin applies owner edits. A title or description change re-runs
// extraction so the stored keyword set tracks the visible text.
func (s *PinService) UpdatePin(userID, pinID string, in UpdatePinInput) (*models.Pin, error) {
	pin, err := s.store.GetPin(pinID)
	if err != nil {
		return nil, err
	}
	if pin.Publisher != userID {
		return nil, ErrForbidden
	}

	textChanged := false
	if in.Title != "" && in.Title != pin.Title {
		pin.Title = in.Title
		textChanged = true
	}
	if in.Description != "" && in.Description != pin.Description {
		pin.Description = in.Description
		textChanged = true
	}
	if in.Privacy != "" {
		pin.Privacy = models.NormalizePrivacy(in.Privacy)
	}

	if textChanged {
		src := keywords.Source{
			Title:       pin.Title,
			Description: pin.Description,
			Filename:    utils.StripFileExt(pin.MediaFilename),
		}
		if pin.Board != "" {
			src.Boards = []string{pin.Board}
		}
		pin.Keywords = keywords.Extract(src, s.maxKeywords)
	}

	pin.UpdatedAt = time.Now()
	if err := s.store.UpdatePin(pin); err != nil {
		return nil, err
	}
	return pin, nil
}

// DeletePin removes an owned pin together with its keywords, likes, comments
// and interaction events.
func (s *PinService) DeletePin(userID, pinID string) error {
	pin, err := s.store.GetPin(pinID)
	if err != nil {
		return err
	}
	if pin.Publisher != userID {
		return ErrForbidden
	}
	return s.store.DeletePin(pinID)
}

// LikePin stores the like marker, then dispatches a LIKE event carrying the
// pin's stored keywords. The event outcome never surfaces to the caller.
func (s *PinService) LikePin(userID, pinID string) error {
	if err := s.store.AddLike(pinID, userID); err != nil {
		return err
	}
	s.dispatchPinEvent(userID, pinID, models.ActionLike)
	return nil
}

// CommentPin appends the comment, then dispatches a COMMENT event.
func (s *PinService) CommentPin(userID, pinID, text string) (*models.Comment, error) {
	c := &models.Comment{
		ID:        uuid.NewString(),
		PinID:     pinID,
		UserID:    userID,
		Text:      text,
		CreatedAt: time.Now(),
	}
	if err := s.store.AddComment(c); err != nil {
		return nil, err
	}
	s.dispatchPinEvent(userID, pinID, models.ActionComment)
	return c, nil
}

func (s *PinService) dispatchPinEvent(userID, pinID string, action models.ActionKind) {
	keys, err := s.store.GetPinKeywords(pinID)
	if err != nil {
		logger.Error("failed to load pin keywords for event", "pin_id", pinID, "error", err)
		return
	}
	s.ledger.RecordInteraction(userID, action, keys, pinID)
}

// Search finds public pins by query keywords. The SEARCH event and the
// saved-search append are best-effort side effects; only the store query can
// fail the request.
func (s *PinService) Search(userID, query string, limit int) ([]models.Pin, error) {
	terms := keywords.QueryTerms(query)
	if len(terms) == 0 {
		return []models.Pin{}, nil
	}

	pins, err := s.store.SearchPublicPins(terms, limit)
	if err != nil {
		return nil, err
	}

	if userID != "" {
		s.ledger.RecordInteraction(userID, models.ActionSearch, terms, "")
		go func() {
			if err := s.searches.AddSavedSearches(userID, terms); err != nil {
				logger.Error("failed to save search keywords", "user_id", userID, "error", err)
			}
		}()
	}

	return pins, nil
}
