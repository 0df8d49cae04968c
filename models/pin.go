package models

import (
	"strings"
	"time"
)

// Pin visibility values.
const (
	PrivacyPublic  = "public"
	PrivacyPrivate = "private"
)

type Pin struct {
	ID            string    `db:"id" json:"id"`
	Publisher     string    `db:"publisher" json:"publisher"`
	Title         string    `db:"title" json:"title"`
	Description   string    `db:"description" json:"description"`
	Link          string    `db:"link" json:"link,omitempty"`
	Privacy       string    `db:"privacy" json:"privacy"`
	Board         string    `db:"board" json:"board,omitempty"`
	MediaFilename string    `db:"media_filename" json:"media_filename,omitempty"`
	Keywords      []string  `json:"keywords,omitempty"`
	CreatedAt     time.Time `db:"created_at" json:"created_at"`
	UpdatedAt     time.Time `db:"updated_at" json:"updated_at"`
}

type Comment struct {
	ID        string    `db:"id" json:"id"`
	PinID     string    `db:"pin_id" json:"pin_id"`
	UserID    string    `db:"user_id" json:"user_id"`
	Text      string    `db:"text" json:"text"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// NormalizePrivacy collapses any user-supplied visibility value to the two
// stored forms; everything that is not explicitly private is public.
func NormalizePrivacy(v string) string {
	if strings.EqualFold(v, PrivacyPrivate) {
		return PrivacyPrivate
	}
	return PrivacyPublic
}
