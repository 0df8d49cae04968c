package repository

import (
	"time"

	"pin_share_backend/db"
	"pin_share_backend/models"
)

// UpsertInterest adds inc to the (user, keyword) score, creating the record
// lazily on first touch. The increment happens inside the database, so
// concurrent updates to the same pair serialize to a consistent sum.
func UpsertInterest(userID, keyword string, inc float64, at time.Time) error {
	_, err := db.DB.Exec(`
        INSERT INTO user_interests (user_id, keyword, score, updated_at, created_at)
        VALUES (?, ?, ?, ?, ?)
        ON DUPLICATE KEY UPDATE score = score + VALUES(score), updated_at = VALUES(updated_at)
    `, userID, keyword, inc, at, at)
	return err
}

// TopInterests returns the k highest-scoring keywords of a user. Ties break
// by most recent update, then keyword, so the ordering is deterministic.
func TopInterests(userID string, k int) ([]models.InterestRecord, error) {
	rows, err := db.DB.Query(`
        SELECT user_id, keyword, score, updated_at
        FROM user_interests
        WHERE user_id = ?
        ORDER BY score DESC, updated_at DESC, keyword ASC
        LIMIT ?
    `, userID, k)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	records := make([]models.InterestRecord, 0, k)
	for rows.Next() {
		var r models.InterestRecord
		if err := rows.Scan(&r.UserID, &r.Keyword, &r.Score, &r.UpdatedAt); err != nil {
			continue
		}
		records = append(records, r)
	}
	return records, rows.Err()
}

// DecayInterests multiplies every score by factor and prunes records that
// fall below floor. Runs as a batch job, never on the increment path.
func DecayInterests(factor, floor float64) (int64, error) {
	res, err := db.DB.Exec(`UPDATE user_interests SET score = score * ?`, factor)
	if err != nil {
		return 0, err
	}
	affected, _ := res.RowsAffected()

	if floor > 0 {
		if _, err := db.DB.Exec(`DELETE FROM user_interests WHERE score < ?`, floor); err != nil {
			return affected, err
		}
	}
	return affected, nil
}
