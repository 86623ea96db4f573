// ABOUTME: Aggregate Store bundling all per-table stores over one connection
// ABOUTME: Single source of truth for persisted memory state across restarts
package sqlite

// Store bundles the per-table stores over a shared database connection
type Store struct {
	db *DB

	Facts     *FactStore
	Messages  *MessageStore
	Summaries *SummaryStore
	Learning  *LearningStore
	Behaviors *BehaviorStore
}

// NewStore opens the database at path and initializes all stores
func NewStore(path string) (*Store, error) {
	db, err := Open(path)
	if err != nil {
		return nil, err
	}
	return newStore(db), nil
}

// NewStoreInMemory creates a Store over an in-memory database (for testing)
func NewStoreInMemory() (*Store, error) {
	db, err := OpenInMemory()
	if err != nil {
		return nil, err
	}
	return newStore(db), nil
}

func newStore(db *DB) *Store {
	return &Store{
		db:        db,
		Facts:     NewFactStore(db),
		Messages:  NewMessageStore(db),
		Summaries: NewSummaryStore(db),
		Learning:  NewLearningStore(db),
		Behaviors: NewBehaviorStore(db),
	}
}

// Close closes the underlying database connection
func (s *Store) Close() error {
	return s.db.Close()
}

// DB returns the underlying database for advanced usage
func (s *Store) DB() *DB {
	return s.db
}
