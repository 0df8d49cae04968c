package repository

import (
	"database/sql"
	"strings"
	"time"

	"pin_share_backend/db"
	"pin_share_backend/models"
)

// CreatePin inserts the pin row and its keyword set in one transaction, so a
// pin is never stored without the keywords extraction produced for it.
func CreatePin(p *models.Pin) error {
	tx, err := db.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        INSERT INTO pins (id, publisher, title, description, link, privacy, board, media_filename, created_at, updated_at)
        VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
    `, p.ID, p.Publisher, p.Title, p.Description, p.Link, p.Privacy, p.Board, p.MediaFilename, p.CreatedAt, p.UpdatedAt)
	if err != nil {
		return err
	}

	if err := insertKeywords(tx, p.ID, p.Keywords); err != nil {
		return err
	}

	return tx.Commit()
}

// UpdatePin rewrites the mutable pin fields and replaces the keyword set.
func UpdatePin(p *models.Pin) error {
	tx, err := db.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	_, err = tx.Exec(`
        UPDATE pins SET title=?, description=?, privacy=?, updated_at=?
        WHERE id=?
    `, p.Title, p.Description, p.Privacy, p.UpdatedAt, p.ID)
	if err != nil {
		return err
	}

	if _, err := tx.Exec(`DELETE FROM pin_keywords WHERE pin_id=?`, p.ID); err != nil {
		return err
	}
	if err := insertKeywords(tx, p.ID, p.Keywords); err != nil {
		return err
	}

	return tx.Commit()
}

func insertKeywords(tx *sql.Tx, pinID string, keys []string) error {
	for _, k := range keys {
		if _, err := tx.Exec(`INSERT IGNORE INTO pin_keywords (pin_id, keyword) VALUES (?, ?)`, pinID, k); err != nil {
			return err
		}
	}
	return nil
}

// GetPin loads one pin with its keyword set.
func GetPin(id string) (*models.Pin, error) {
	row := db.DB.QueryRow(`
        SELECT id, publisher, title, description, link, privacy, board, media_filename, created_at, updated_at
        FROM pins WHERE id=?
    `, id)

	p := &models.Pin{}
	var link, board, filename sql.NullString
	if err := row.Scan(&p.ID, &p.Publisher, &p.Title, &p.Description, &link, &p.Privacy, &board, &filename, &p.CreatedAt, &p.UpdatedAt); err != nil {
		return nil, err
	}
	p.Link = link.String
	p.Board = board.String
	p.MediaFilename = filename.String

	keys, err := GetPinKeywords(id)
	if err != nil {
		return nil, err
	}
	p.Keywords = keys
	return p, nil
}

// GetPinKeywords returns the stored keyword set of a pin.
func GetPinKeywords(pinID string) ([]string, error) {
	rows, err := db.DB.Query(`SELECT keyword FROM pin_keywords WHERE pin_id=?`, pinID)
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

// DeletePin removes the pin and everything hanging off it: keywords, likes,
// comments and the interaction events that referenced it.
func DeletePin(id string) error {
	tx, err := db.DB.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback()

	statements := []string{
		`DELETE FROM pin_keywords WHERE pin_id=?`,
		`DELETE FROM pin_likes WHERE pin_id=?`,
		`DELETE FROM comments WHERE pin_id=?`,
		`DELETE FROM interactions WHERE pin_id=?`,
		`DELETE FROM pins WHERE id=?`,
	}
	for _, stmt := range statements {
		if _, err := tx.Exec(stmt, id); err != nil {
			return err
		}
	}

	return tx.Commit()
}

// AddLike records a like marker. Set semantics, liking twice is a no-op.
func AddLike(pinID, userID string) error {
	_, err := db.DB.Exec(`
        INSERT IGNORE INTO pin_likes (pin_id, user_id, created_at) VALUES (?, ?, ?)
    `, pinID, userID, time.Now())
	return err
}

// AddComment appends a comment row.
func AddComment(c *models.Comment) error {
	_, err := db.DB.Exec(`
        INSERT INTO comments (id, pin_id, user_id, text, created_at) VALUES (?, ?, ?, ?, ?)
    `, c.ID, c.PinID, c.UserID, c.Text, c.CreatedAt)
	return err
}

// ListPublicPins returns public pins not owned by excludeOwner, newest first.
// With a non-empty key set only pins whose keywords intersect it are
// returned; with an empty key set this is the pure recency fallback.
func ListPublicPins(excludeOwner string, keys []string, limit int) ([]models.Pin, error) {
	if len(keys) == 0 {
		return queryPins(`
            SELECT id, publisher, title, description, link, privacy, board, media_filename, created_at, updated_at
            FROM pins
            WHERE privacy='public' AND publisher != ?
            ORDER BY created_at DESC
            LIMIT ?
        `, excludeOwner, limit)
	}

	args := make([]interface{}, 0, len(keys)+2)
	args = append(args, excludeOwner)
	for _, k := range keys {
		args = append(args, k)
	}
	args = append(args, limit)

	query := `
        SELECT DISTINCT p.id, p.publisher, p.title, p.description, p.link, p.privacy, p.board, p.media_filename, p.created_at, p.updated_at
        FROM pins p
        JOIN pin_keywords k ON k.pin_id = p.id
        WHERE p.privacy='public' AND p.publisher != ?
          AND k.keyword IN (` + placeholders(len(keys)) + `)
        ORDER BY p.created_at DESC
        LIMIT ?`

	return queryPins(query, args...)
}

// SearchPublicPins returns public pins matching any of the query keywords,
// newest first.
func SearchPublicPins(keys []string, limit int) ([]models.Pin, error) {
	if len(keys) == 0 {
		return []models.Pin{}, nil
	}

	args := make([]interface{}, 0, len(keys)+1)
	for _, k := range keys {
		args = append(args, k)
	}
	args = append(args, limit)

	query := `
        SELECT DISTINCT p.id, p.publisher, p.title, p.description, p.link, p.privacy, p.board, p.media_filename, p.created_at, p.updated_at
        FROM pins p
        JOIN pin_keywords k ON k.pin_id = p.id
        WHERE p.privacy='public'
          AND k.keyword IN (` + placeholders(len(keys)) + `)
        ORDER BY p.created_at DESC
        LIMIT ?`

	return queryPins(query, args...)
}

func queryPins(query string, args ...interface{}) ([]models.Pin, error) {
	rows, err := db.DB.Query(query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	pins := make([]models.Pin, 0)
	for rows.Next() {
		var p models.Pin
		var link, board, filename sql.NullString
		if err := rows.Scan(&p.ID, &p.Publisher, &p.Title, &p.Description, &link, &p.Privacy, &board, &filename, &p.CreatedAt, &p.UpdatedAt); err != nil {
			continue
		}
		p.Link = link.String
		p.Board = board.String
		p.MediaFilename = filename.String
		pins = append(pins, p)
	}
	return pins, rows.Err()
}

func placeholders(n int) string {
	return strings.TrimSuffix(strings.Repeat("?,", n), ",")
}
