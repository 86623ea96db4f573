// ABOUTME: Fact storage operations for SQLite
// ABOUTME: Enforces the unique-active invariant per (user_id, subject, attribute)
package sqlite

import (
	"database/sql"
	"time"

	"github.com/rowan/keepsake/internal/models"
)

// FactStore handles fact persistence
type FactStore struct {
	db *DB
}

// NewFactStore creates a new FactStore
func NewFactStore(db *DB) *FactStore {
	return &FactStore{db: db}
}

const factColumns = "id, user_id, subject, attribute, value, confidence, category, is_active, created_at, updated_at"

// Insert stores a new active fact
func (s *FactStore) Insert(fact *models.Fact) error {
	now := time.Now()
	if fact.CreatedAt.IsZero() {
		fact.CreatedAt = now
	}
	if fact.UpdatedAt.IsZero() {
		fact.UpdatedAt = now
	}

	_, err := s.db.Exec(`
		INSERT INTO facts (id, user_id, subject, attribute, value, confidence, category, is_active, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
	`, fact.ID, fact.UserID, fact.Subject, fact.Attribute, fact.Value,
		fact.Confidence, fact.Category, boolToInt(fact.IsActive), fact.CreatedAt, fact.UpdatedAt)

	return err
}

// GetActive retrieves the unique active fact for an identity key, or nil
func (s *FactStore) GetActive(userID, subject, attribute string) (*models.Fact, error) {
	row := s.db.QueryRow(`
		SELECT `+factColumns+`
		FROM facts
		WHERE user_id = ? AND subject = ? AND attribute = ? AND is_active = 1
	`, userID, subject, attribute)

	fact, err := scanFact(row)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return fact, nil
}

// UpdateValue updates value, confidence, and updated_at in place
func (s *FactStore) UpdateValue(factID, value string, confidence float64) error {
	_, err := s.db.Exec(`
		UPDATE facts SET value = ?, confidence = ?, updated_at = ?
		WHERE id = ?
	`, value, confidence, time.Now(), factID)
	return err
}

// ListActive retrieves all active facts for a user
func (s *FactStore) ListActive(userID string) ([]models.Fact, error) {
	rows, err := s.db.Query(`
		SELECT `+factColumns+`
		FROM facts
		WHERE user_id = ? AND is_active = 1
		ORDER BY created_at DESC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	return scanFacts(rows)
}

// CountActive returns the number of active facts for a user
func (s *FactStore) CountActive(userID string) (int, error) {
	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*) FROM facts WHERE user_id = ? AND is_active = 1
	`, userID).Scan(&count)
	return count, err
}

// DeleteForUser removes all facts for a user (bulk memory reset only)
func (s *FactStore) DeleteForUser(userID string) error {
	_, err := s.db.Exec("DELETE FROM facts WHERE user_id = ?", userID)
	return err
}

type rowScanner interface {
	Scan(dest ...interface{}) error
}

// scanFact scans a single fact row
func scanFact(row rowScanner) (*models.Fact, error) {
	var (
		fact   models.Fact
		active int
	)

	err := row.Scan(&fact.ID, &fact.UserID, &fact.Subject, &fact.Attribute,
		&fact.Value, &fact.Confidence, &fact.Category, &active,
		&fact.CreatedAt, &fact.UpdatedAt)
	if err != nil {
		return nil, err
	}

	fact.IsActive = active != 0
	return &fact, nil
}

// scanFacts scans rows into a slice of Fact
func scanFacts(rows *sql.Rows) ([]models.Fact, error) {
	var facts []models.Fact

	for rows.Next() {
		fact, err := scanFact(rows)
		if err != nil {
			return nil, err
		}
		facts = append(facts, *fact)
	}

	return facts, rows.Err()
}

// boolToInt converts a bool to the 0/1 form SQLite stores
func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
