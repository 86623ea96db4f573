// ABOUTME: Raw message storage operations for SQLite
// ABOUTME: Append-only; read oldest-first by compression, newest-first for stats
package sqlite

import (
	"database/sql"
	"time"

	"github.com/rowan/keepsake/internal/models"
)

// MessageStore handles raw message persistence
type MessageStore struct {
	db *DB
}

// NewMessageStore creates a new MessageStore
func NewMessageStore(db *DB) *MessageStore {
	return &MessageStore{db: db}
}

// Append stores a new message
func (s *MessageStore) Append(msg *models.Message) error {
	if msg.Timestamp.IsZero() {
		msg.Timestamp = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO messages (id, user_id, text, timestamp)
		VALUES (?, ?, ?, ?)
	`, msg.ID, msg.UserID, msg.Text, msg.Timestamp)

	return err
}

// Count returns the total number of stored messages for a user
func (s *MessageStore) Count(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM messages WHERE user_id = ?
	`, userID).Scan(&count)
	return count, err
}

// Oldest retrieves up to limit messages for a user, oldest first
func (s *MessageStore) Oldest(userID string, limit int) ([]models.Message, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, text, timestamp
		FROM messages
		WHERE user_id = ?
		ORDER BY timestamp ASC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanMessages(rows)
}

// Recent retrieves up to limit messages for a user, newest first
func (s *MessageStore) Recent(userID string, limit int) ([]models.Message, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, text, timestamp
		FROM messages
		WHERE user_id = ?
		ORDER BY timestamp DESC
		LIMIT ?
	`, userID, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanMessages(rows)
}

// DeleteForUser removes all messages for a user (bulk memory reset only)
func (s *MessageStore) DeleteForUser(userID string) error {
	_, err := s.db.Exec("DELETE FROM messages WHERE user_id = ?", userID)
	return err
}

// scanMessages scans rows into a slice of Message
func scanMessages(rows *sql.Rows) ([]models.Message, error) {
	var messages []models.Message

	for rows.Next() {
		var msg models.Message
		if err := rows.Scan(&msg.ID, &msg.UserID, &msg.Text, &msg.Timestamp); err != nil {
			return nil, err
		}
		messages = append(messages, msg)
	}

	return messages, rows.Err()
}
