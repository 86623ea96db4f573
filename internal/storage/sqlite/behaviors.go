// ABOUTME: Emergent behavior storage operations for SQLite
// ABOUTME: Discovery is one-way; inserts are idempotent per (user_id, behavior_id)
package sqlite

import (
	"time"

	"github.com/rowan/keepsake/internal/models"
)

// BehaviorStore handles emergent behavior persistence
type BehaviorStore struct {
	db *DB
}

// NewBehaviorStore creates a new BehaviorStore
func NewBehaviorStore(db *DB) *BehaviorStore {
	return &BehaviorStore{db: db}
}

// Insert records a discovered behavior. Re-inserting an already discovered
// behavior id is a no-op.
func (s *BehaviorStore) Insert(b *models.EmergentBehavior) error {
	if b.DiscoveredAt.IsZero() {
		b.DiscoveredAt = time.Now()
	}

	_, err := s.db.Exec(`
		INSERT INTO emergent_behaviors (user_id, behavior_id, behavior_type, description, confidence, discovered_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, behavior_id) DO NOTHING
	`, b.UserID, b.BehaviorID, b.BehaviorType, b.Description, b.Confidence, b.DiscoveredAt)

	return err
}

// ListIDs returns the discovered behavior ids for a user
func (s *BehaviorStore) ListIDs(userID string) ([]string, error) {
	rows, err := s.db.Query(`
		SELECT behavior_id FROM emergent_behaviors WHERE user_id = ? ORDER BY discovered_at ASC
	`, userID)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, rows.Err()
}

// DeleteForUser removes all behaviors for a user (bulk memory reset only)
func (s *BehaviorStore) DeleteForUser(userID string) error {
	_, err := s.db.Exec("DELETE FROM emergent_behaviors WHERE user_id = ?", userID)
	return err
}
