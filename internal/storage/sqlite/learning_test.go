// ABOUTME: Tests for learning record storage operations
// ABOUTME: Verifies rolling-window reads and satisfaction aggregation
package sqlite

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rowan/keepsake/internal/models"
)

func appendLearningRecord(t *testing.T, store *Store, userID string, satisfaction float64, age time.Duration) {
	t.Helper()

	rec := &models.LearningRecord{
		ID:                "lr-" + uuid.New().String(),
		UserID:            userID,
		MessagePattern:    models.TypeGeneral,
		MessageContext:    models.ContextCasual,
		ResponseStyle:     models.StyleNeutral,
		SatisfactionScore: satisfaction,
		Timestamp:         time.Now().Add(-age),
	}
	if err := store.Learning.Append(rec); err != nil {
		t.Fatalf("Append() error = %v", err)
	}
}

func TestLearningStore_ListSince_WindowAndOrder(t *testing.T) {
	store := newTestStore(t)

	appendLearningRecord(t, store, "u1", 0.9, time.Minute)
	appendLearningRecord(t, store, "u1", 0.8, time.Hour)
	appendLearningRecord(t, store, "u1", 0.7, 10*24*time.Hour) // outside window

	records, err := store.Learning.ListSince("u1", time.Now().Add(-7*24*time.Hour), 50)
	if err != nil {
		t.Fatalf("ListSince() error = %v", err)
	}
	if len(records) != 2 {
		t.Fatalf("ListSince() returned %d records, want 2", len(records))
	}

	// Newest first
	if records[0].SatisfactionScore != 0.9 {
		t.Errorf("records[0].SatisfactionScore = %v, want 0.9", records[0].SatisfactionScore)
	}
	if records[1].SatisfactionScore != 0.8 {
		t.Errorf("records[1].SatisfactionScore = %v, want 0.8", records[1].SatisfactionScore)
	}
}

func TestLearningStore_ListSince_Limit(t *testing.T) {
	store := newTestStore(t)

	for i := 0; i < 5; i++ {
		appendLearningRecord(t, store, "u1", 0.5, time.Duration(i)*time.Minute)
	}

	records, err := store.Learning.ListSince("u1", time.Now().Add(-time.Hour), 3)
	if err != nil {
		t.Fatalf("ListSince() error = %v", err)
	}
	if len(records) != 3 {
		t.Errorf("ListSince() returned %d records, want 3", len(records))
	}
}

func TestLearningStore_AverageSatisfaction(t *testing.T) {
	store := newTestStore(t)

	// No records yet
	avg, err := store.Learning.AverageSatisfaction("u1")
	if err != nil {
		t.Fatalf("AverageSatisfaction() error = %v", err)
	}
	if avg != 0 {
		t.Errorf("AverageSatisfaction() with no records = %v, want 0", avg)
	}

	appendLearningRecord(t, store, "u1", 0.4, time.Minute)
	appendLearningRecord(t, store, "u1", 0.8, time.Minute)

	avg, err = store.Learning.AverageSatisfaction("u1")
	if err != nil {
		t.Fatalf("AverageSatisfaction() error = %v", err)
	}
	if avg < 0.59 || avg > 0.61 {
		t.Errorf("AverageSatisfaction() = %v, want ~0.6", avg)
	}
}
