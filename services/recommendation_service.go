package services

import (
	"pin_share_backend/config"
	"pin_share_backend/logger"
	"pin_share_backend/models"
)

// Recommender produces the ranked candidate list for a user from current
// stored state. Relevance is binary keyword match with a recency order; when
// the user has no signal at all the newest public pins are returned instead.
type Recommender struct {
	pins         ContentStore
	ledger       *InterestLedger
	searches     SavedSearchStore
	interestTopK int
	defaultLimit int
}

func NewRecommender(cfg *config.Config, pins ContentStore, ledger *InterestLedger, searches SavedSearchStore) *Recommender {
	return &Recommender{
		pins:         pins,
		ledger:       ledger,
		searches:     searches,
		interestTopK: cfg.Recommend.InterestTopK,
		defaultLimit: cfg.Recommend.DefaultLimit,
	}
}

// Recommend returns up to limit public pins the user does not own, newest
// first. Store failures propagate; an empty result is a valid answer, not an
// error.
func (r *Recommender) Recommend(userID string, limit int) ([]models.Pin, error) {
	if limit <= 0 {
		limit = r.defaultLimit
	}

	top, err := r.ledger.TopInterests(userID, r.interestTopK)
	if err != nil {
		return nil, err
	}

	saved, err := r.searches.GetSavedSearches(userID)
	if err != nil {
		return nil, err
	}

	// Candidate key set: top interests first, then saved searches, order
	// preserved, no duplicates.
	keys := make([]string, 0, len(top)+len(saved))
	seen := make(map[string]bool, len(top)+len(saved))
	for _, rec := range top {
		if rec.Keyword != "" && !seen[rec.Keyword] {
			keys = append(keys, rec.Keyword)
			seen[rec.Keyword] = true
		}
	}
	for _, k := range saved {
		if k != "" && !seen[k] {
			keys = append(keys, k)
			seen[k] = true
		}
	}

	pins, err := r.pins.ListPublicPins(userID, keys, limit)
	if err != nil {
		return nil, err
	}

	// The store already excludes the owner and caps the result; the pass
	// below keeps the output contract independent of its implementation.
	out := make([]models.Pin, 0, len(pins))
	seenPins := make(map[string]bool, len(pins))
	for _, p := range pins {
		if p.Publisher == userID || p.Privacy != models.PrivacyPublic || seenPins[p.ID] {
			continue
		}
		out = append(out, p)
		seenPins[p.ID] = true
		if len(out) >= limit {
			break
		}
	}

	logger.Debug("recommendation computed", "user_id", userID, "candidate_keys", len(keys), "results", len(out))
	return out, nil
}
