package repository

import (
	"time"

	"pin_share_backend/db"
)

// GetSavedSearches returns the user's accumulated search keywords, most
// recent first.
func GetSavedSearches(userID string) ([]string, error) {
	rows, err := db.DB.Query(`
        SELECT keyword FROM saved_searches
        WHERE user_id = ?
        ORDER BY created_at DESC
    `, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	keys := make([]string, 0)
	for rows.Next() {
		var k string
		if err := rows.Scan(&k); err == nil && k != "" {
			keys = append(keys, k)
		}
	}
	return keys, rows.Err()
}

// AddSavedSearches appends keywords to the user's saved-search set. Set
// semantics, existing keywords are untouched.
func AddSavedSearches(userID string, keys []string) error {
	now := time.Now()
	for _, k := range keys {
		if k == "" {
			continue
		}
		if _, err := db.DB.Exec(`
            INSERT IGNORE INTO saved_searches (user_id, keyword, created_at) VALUES (?, ?, ?)
        `, userID, k, now); err != nil {
			return err
		}
	}
	return nil
}
