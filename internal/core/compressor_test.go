// ABOUTME: Tests for the memory compression scheduler
// ABOUTME: Threshold, keep-recent split, persisted cooldown, context ages
package core

import (
	"fmt"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/rowan/keepsake/internal/models"
	"github.com/rowan/keepsake/internal/storage/sqlite"
)

func newCompressor(t *testing.T, completer Completer) (*Compressor, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.NewStoreInMemory()
	if err != nil {
		t.Fatalf("NewStoreInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	return NewCompressor(store.Messages, store.Summaries, completer), store
}

func seedMessages(t *testing.T, store *sqlite.Store, userID string, n int) {
	t.Helper()

	base := time.Now().Add(-time.Hour)
	for i := 0; i < n; i++ {
		msg := &models.Message{
			ID:        uuid.New().String(),
			UserID:    userID,
			Text:      fmt.Sprintf("message %d", i),
			Timestamp: base.Add(time.Duration(i) * time.Second),
		}
		if err := store.Messages.Append(msg); err != nil {
			t.Fatalf("Append() error = %v", err)
		}
	}
}

func TestCompressIfNeeded_BelowThreshold(t *testing.T) {
	completer := &stubCompleter{text: "summary"}
	compressor, store := newCompressor(t, completer)

	seedMessages(t, store, "u1", compressionThreshold)

	summary, err := compressor.CompressIfNeeded("u1")
	if err != nil {
		t.Fatalf("CompressIfNeeded() error = %v", err)
	}
	if summary != nil {
		t.Errorf("CompressIfNeeded() = %+v, want nil at the threshold", summary)
	}
	if completer.callCount() != 0 {
		t.Errorf("completer called %d times, want 0", completer.callCount())
	}
}

func TestCompressIfNeeded_CompressesAllButRecent(t *testing.T) {
	completer := &stubCompleter{text: "  the user talked about work  "}
	compressor, store := newCompressor(t, completer)

	seedMessages(t, store, "u1", 11)

	summary, err := compressor.CompressIfNeeded("u1")
	if err != nil {
		t.Fatalf("CompressIfNeeded() error = %v", err)
	}
	if summary == nil {
		t.Fatal("CompressIfNeeded() = nil, want summary")
	}

	// 11 messages, keep the newest 5, compress the oldest 6.
	if summary.MessagesCompressed != 6 {
		t.Errorf("MessagesCompressed = %d, want 6", summary.MessagesCompressed)
	}
	if summary.Summary != "the user talked about work" {
		t.Errorf("Summary = %q, want trimmed completion text", summary.Summary)
	}
	if summary.TokensUsed != 42 {
		t.Errorf("TokensUsed = %d, want 42", summary.TokensUsed)
	}

	// The summary row is persisted.
	persisted, err := store.Summaries.Get("u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if persisted == nil || persisted.Summary != summary.Summary {
		t.Errorf("persisted summary = %+v, want %q", persisted, summary.Summary)
	}
}

func TestCompressIfNeeded_CooldownFromPersistedDate(t *testing.T) {
	completer := &stubCompleter{text: "summary"}
	compressor, store := newCompressor(t, completer)

	seedMessages(t, store, "u1", 15)

	// A summary written minutes ago blocks compression even though the
	// count is over the threshold.
	if err := store.Summaries.Upsert(&models.MemorySummary{
		UserID:          "u1",
		Summary:         "previous",
		CompressionDate: time.Now().Add(-5 * time.Minute),
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	summary, err := compressor.CompressIfNeeded("u1")
	if err != nil {
		t.Fatalf("CompressIfNeeded() error = %v", err)
	}
	if summary != nil {
		t.Errorf("CompressIfNeeded() = %+v, want nil during cooldown", summary)
	}
	if completer.callCount() != 0 {
		t.Errorf("completer called %d times during cooldown, want 0", completer.callCount())
	}

	// Once the persisted date is old enough, compression runs again.
	if err := store.Summaries.Upsert(&models.MemorySummary{
		UserID:          "u1",
		Summary:         "previous",
		CompressionDate: time.Now().Add(-45 * time.Minute),
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	summary, err = compressor.CompressIfNeeded("u1")
	if err != nil {
		t.Fatalf("CompressIfNeeded() error = %v", err)
	}
	if summary == nil {
		t.Error("CompressIfNeeded() = nil after cooldown elapsed, want summary")
	}
}

func TestCompressIfNeeded_ProviderFailure(t *testing.T) {
	completer := &stubCompleter{fail: true}
	compressor, store := newCompressor(t, completer)

	seedMessages(t, store, "u1", 12)

	if _, err := compressor.CompressIfNeeded("u1"); err == nil {
		t.Fatal("CompressIfNeeded() with failing provider succeeded, want error")
	}

	// Nothing was persisted; the raw messages are untouched.
	persisted, err := store.Summaries.Get("u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if persisted != nil {
		t.Errorf("summary persisted despite provider failure: %+v", persisted)
	}
	count, err := store.Messages.Count("u1")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 12 {
		t.Errorf("Count() = %d, want 12", count)
	}
}

func TestMemoryContext(t *testing.T) {
	completer := &stubCompleter{text: "summary"}
	compressor, store := newCompressor(t, completer)

	// No summary yet.
	context, err := compressor.MemoryContext("u1")
	if err != nil {
		t.Fatalf("MemoryContext() error = %v", err)
	}
	if context.HasSummary {
		t.Error("HasSummary = true with no summary stored")
	}

	if err := store.Summaries.Upsert(&models.MemorySummary{
		UserID:          "u1",
		Summary:         "the user works at Acme",
		CompressionDate: time.Now().Add(-150 * time.Minute),
	}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	context, err = compressor.MemoryContext("u1")
	if err != nil {
		t.Fatalf("MemoryContext() error = %v", err)
	}
	if !context.HasSummary {
		t.Fatal("HasSummary = false, want true")
	}
	if context.Summary != "the user works at Acme" {
		t.Errorf("Summary = %q", context.Summary)
	}
	if context.AgeHours != 2 {
		t.Errorf("AgeHours = %d, want 2 (whole hours)", context.AgeHours)
	}
}
