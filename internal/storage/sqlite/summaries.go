// ABOUTME: Memory summary storage operations for SQLite
// ABOUTME: One row per user; each compression overwrites the previous summary
package sqlite

import (
	"database/sql"
	"time"

	"github.com/rowan/keepsake/internal/models"
)

// SummaryStore handles compressed memory summary persistence
type SummaryStore struct {
	db *DB
}

// NewSummaryStore creates a new SummaryStore
func NewSummaryStore(db *DB) *SummaryStore {
	return &SummaryStore{db: db}
}

// Upsert stores or replaces the single summary row for a user
func (s *SummaryStore) Upsert(summary *models.MemorySummary) error {
	if summary.CompressionDate.IsZero() {
		summary.CompressionDate = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO memory_summaries (user_id, summary, messages_compressed, compression_date, tokens_used)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(user_id) DO UPDATE SET
			summary = excluded.summary,
			messages_compressed = excluded.messages_compressed,
			compression_date = excluded.compression_date,
			tokens_used = excluded.tokens_used
	`, summary.UserID, summary.Summary, summary.MessagesCompressed,
		summary.CompressionDate, summary.TokensUsed)

	return err
}

// Get retrieves the summary for a user, or nil if none exists
func (s *SummaryStore) Get(userID string) (*models.MemorySummary, error) {
	var summary models.MemorySummary

	err := s.db.QueryRow(`
		SELECT user_id, summary, messages_compressed, compression_date, tokens_used
		FROM memory_summaries
		WHERE user_id = ?
	`, userID).Scan(&summary.UserID, &summary.Summary, &summary.MessagesCompressed,
		&summary.CompressionDate, &summary.TokensUsed)

	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}

	return &summary, nil
}

// DeleteForUser removes the summary row for a user (bulk memory reset only)
func (s *SummaryStore) DeleteForUser(userID string) error {
	_, err := s.db.Exec("DELETE FROM memory_summaries WHERE user_id = ?", userID)
	return err
}
