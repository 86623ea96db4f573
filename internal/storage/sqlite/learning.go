// ABOUTME: Learning record storage operations for SQLite
// ABOUTME: Append-only; read newest-first in rolling windows for emergence detection
package sqlite

import (
	"database/sql"
	"time"

	"github.com/rowan/keepsake/internal/models"
)

// LearningStore handles learning record persistence
type LearningStore struct {
	db *DB
}

// NewLearningStore creates a new LearningStore
func NewLearningStore(db *DB) *LearningStore {
	return &LearningStore{db: db}
}

// Append stores a new learning record
func (s *LearningStore) Append(rec *models.LearningRecord) error {
	if rec.Timestamp.IsZero() {
		rec.Timestamp = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO learning_records (id, user_id, message_pattern, message_context,
			emotional_intensity, urgency_level, response_style, satisfaction_score,
			personality_used, adaptive_temperature, adaptive_tokens, complexity_score, timestamp)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, rec.ID, rec.UserID, rec.MessagePattern, rec.MessageContext,
		rec.EmotionalIntensity, rec.UrgencyLevel, rec.ResponseStyle, rec.SatisfactionScore,
		rec.PersonalityUsed, rec.AdaptiveTemperature, rec.AdaptiveTokens, rec.ComplexityScore,
		rec.Timestamp)

	return err
}

// ListSince retrieves up to limit records newer than since, newest first
func (s *LearningStore) ListSince(userID string, since time.Time, limit int) ([]models.LearningRecord, error) {
	rows, err := s.db.Query(`
		SELECT id, user_id, message_pattern, message_context, emotional_intensity,
			urgency_level, response_style, satisfaction_score, personality_used,
			adaptive_temperature, adaptive_tokens, complexity_score, timestamp
		FROM learning_records
		WHERE user_id = ? AND timestamp >= ?
		ORDER BY timestamp DESC
		LIMIT ?
	`, userID, since, limit)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanLearningRecords(rows)
}

// AverageSatisfaction returns the mean satisfaction score across all records
func (s *LearningStore) AverageSatisfaction(userID string) (float64, error) {
	var avg sql.NullFloat64
	err := s.db.QueryRow(`
		SELECT AVG(satisfaction_score) FROM learning_records WHERE user_id = ?
	`, userID).Scan(&avg)
	if err != nil {
		return 0, err
	}
	if !avg.Valid {
		return 0, nil
	}
	return avg.Float64, nil
}

// DeleteForUser removes all learning records for a user (bulk memory reset only)
func (s *LearningStore) DeleteForUser(userID string) error {
	_, err := s.db.Exec("DELETE FROM learning_records WHERE user_id = ?", userID)
	return err
}

// scanLearningRecords scans rows into a slice of LearningRecord
func scanLearningRecords(rows *sql.Rows) ([]models.LearningRecord, error) {
	var records []models.LearningRecord

	for rows.Next() {
		var rec models.LearningRecord
		err := rows.Scan(&rec.ID, &rec.UserID, &rec.MessagePattern, &rec.MessageContext,
			&rec.EmotionalIntensity, &rec.UrgencyLevel, &rec.ResponseStyle,
			&rec.SatisfactionScore, &rec.PersonalityUsed, &rec.AdaptiveTemperature,
			&rec.AdaptiveTokens, &rec.ComplexityScore, &rec.Timestamp)
		if err != nil {
			return nil, err
		}
		records = append(records, rec)
	}

	return records, rows.Err()
}
