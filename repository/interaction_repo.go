package repository

import (
	"database/sql"
	"encoding/json"

	"pin_share_backend/db"
	"pin_share_backend/models"
)

// InsertInteraction appends one event row. Events are immutable; there is no
// update path, only the cascade delete in DeletePin.
func InsertInteraction(ev *models.InteractionEvent) error {
	keywordsJSON, err := json.Marshal(ev.Keywords)
	if err != nil {
		return err
	}

	var pinID interface{}
	if ev.PinID != "" {
		pinID = ev.PinID
	}

	_, err = db.DB.Exec(`
        INSERT INTO interactions (id, user_id, pin_id, action, keywords, created_at)
        VALUES (?, ?, ?, ?, CAST(? AS JSON), ?)
    `, ev.ID, ev.UserID, pinID, string(ev.Action), string(keywordsJSON), ev.CreatedAt)
	return err
}

// ListInteractions returns a user's most recent events, newest first.
func ListInteractions(userID string, limit int) ([]models.InteractionEvent, error) {
	rows, err := db.DB.Query(`
        SELECT id, user_id, pin_id, action, keywords, created_at
        FROM interactions
        WHERE user_id = ?
        ORDER BY created_at DESC
        LIMIT ?
    `, userID, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	events := make([]models.InteractionEvent, 0)
	for rows.Next() {
		var ev models.InteractionEvent
		var pinID sql.NullString
		var action, keywordsJSON string
		if err := rows.Scan(&ev.ID, &ev.UserID, &pinID, &action, &keywordsJSON, &ev.CreatedAt); err != nil {
			continue
		}
		ev.PinID = pinID.String
		ev.Action = models.ActionKind(action)
		if err := json.Unmarshal([]byte(keywordsJSON), &ev.Keywords); err != nil {
			ev.Keywords = nil
		}
		events = append(events, ev)
	}
	return events, rows.Err()
}
