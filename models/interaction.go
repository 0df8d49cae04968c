package models

import "time"

// ActionKind is the behavioral event type feeding the interest ledger.
type ActionKind string

const (
	ActionSearch  ActionKind = "SEARCH"
	ActionLike    ActionKind = "LIKE"
	ActionComment ActionKind = "COMMENT"
)

// InteractionEvent is an append-only record of a user action and the
// keywords involved. Events are never updated; they are only inserted and,
// when the parent pin is removed, deleted in cascade.
type InteractionEvent struct {
	ID        string     `db:"id" json:"id"`
	UserID    string     `db:"user_id" json:"user_id"`
	PinID     string     `db:"pin_id" json:"pin_id,omitempty"` // empty for search events
	Action    ActionKind `db:"action" json:"action"`
	Keywords  []string   `json:"keywords"`
	CreatedAt time.Time  `db:"created_at" json:"created_at"`
}

// InterestRecord is one (user, keyword) accumulator. Score only grows from
// interactions; decay is applied by a separate scheduled job.
type InterestRecord struct {
	UserID    string    `db:"user_id" json:"user_id"`
	Keyword   string    `db:"keyword" json:"keyword"`
	Score     float64   `db:"score" json:"score"`
	UpdatedAt time.Time `db:"updated_at" json:"updated_at"`
}
