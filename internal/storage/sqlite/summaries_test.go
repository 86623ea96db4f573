// ABOUTME: Tests for memory summary storage operations
// ABOUTME: Verifies the one-row-per-user upsert semantics
package sqlite

import (
	"testing"
	"time"

	"github.com/rowan/keepsake/internal/models"
)

func TestSummaryStore_Get_Missing(t *testing.T) {
	store := newTestStore(t)

	got, err := store.Summaries.Get("u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil", got)
	}
}

func TestSummaryStore_UpsertReplacesRow(t *testing.T) {
	store := newTestStore(t)

	first := &models.MemorySummary{
		UserID:             "u1",
		Summary:            "first summary",
		MessagesCompressed: 6,
		CompressionDate:    time.Now().Add(-time.Hour),
		TokensUsed:         120,
	}
	if err := store.Summaries.Upsert(first); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	second := &models.MemorySummary{
		UserID:             "u1",
		Summary:            "second summary",
		MessagesCompressed: 9,
		CompressionDate:    time.Now(),
		TokensUsed:         150,
	}
	if err := store.Summaries.Upsert(second); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	got, err := store.Summaries.Get("u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil, want summary")
	}
	if got.Summary != "second summary" {
		t.Errorf("Summary = %q, want %q", got.Summary, "second summary")
	}
	if got.MessagesCompressed != 9 {
		t.Errorf("MessagesCompressed = %d, want 9", got.MessagesCompressed)
	}
}

func TestSummaryStore_DeleteForUser(t *testing.T) {
	store := newTestStore(t)

	summary := &models.MemorySummary{UserID: "u1", Summary: "s", MessagesCompressed: 6}
	if err := store.Summaries.Upsert(summary); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	if err := store.Summaries.DeleteForUser("u1"); err != nil {
		t.Fatalf("DeleteForUser() error = %v", err)
	}

	got, err := store.Summaries.Get("u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() after delete = %+v, want nil", got)
	}
}
