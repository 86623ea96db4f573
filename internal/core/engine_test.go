// ABOUTME: End-to-end tests for the Engine session object
// ABOUTME: Store, reason, correct, learn, and reset flows over in-memory SQLite
package core

import (
	"strings"
	"testing"

	"github.com/rowan/keepsake/internal/storage/sqlite"
)

func newTestEngine(t *testing.T, embedder Embedder, completer Completer) (*Engine, *sqlite.Store) {
	t.Helper()

	store, err := sqlite.NewStoreInMemory()
	if err != nil {
		t.Fatalf("NewStoreInMemory() error = %v", err)
	}
	t.Cleanup(func() { _ = store.Close() })

	engine, err := NewEngine(store, embedder, completer)
	if err != nil {
		t.Fatalf("NewEngine() error = %v", err)
	}
	return engine, store
}

func TestEngine_StoreThenAnswer(t *testing.T) {
	embedder := newStubEmbedder()
	embedder.vectors["work"] = []float64{1, 0, 0}

	completer := &stubCompleter{
		text: `[{"subject": "user", "attribute": "workplace", "value": "Acme"}]`,
	}
	engine, _ := newTestEngine(t, embedder, completer)

	result, err := engine.IngestFacts("I work at Acme", "Nice, congrats!", "u1")
	if err != nil {
		t.Fatalf("IngestFacts() error = %v", err)
	}
	if result.FactsStored != 1 {
		t.Fatalf("FactsStored = %d, want 1", result.FactsStored)
	}

	answer := engine.AnswerQuestion("where do I work?", "u1")
	if !answer.Found {
		t.Fatalf("Found = false, want true; reasoning: %s", answer.Reasoning)
	}
	if answer.Answer != "Acme" {
		t.Errorf("Answer = %q, want %q", answer.Answer, "Acme")
	}
	if len(answer.FactsUsed) == 0 {
		t.Error("FactsUsed is empty, answers must be traceable to facts")
	}
}

func TestEngine_AnswerQuestion_NoRelevantFacts(t *testing.T) {
	engine, _ := newTestEngine(t, newStubEmbedder(), &stubCompleter{})

	answer := engine.AnswerQuestion("where do I work?", "u1")
	if answer.Found {
		t.Error("Found = true with no stored facts")
	}
	if answer.Answer != "" {
		t.Errorf("Answer = %q, want empty", answer.Answer)
	}
	if !strings.Contains(answer.Reasoning, "don't have any relevant information") {
		t.Errorf("Reasoning = %q", answer.Reasoning)
	}
}

func TestEngine_AnswerQuestion_DegradesOnProviderFailure(t *testing.T) {
	embedder := newStubEmbedder()
	embedder.fail = true
	engine, _ := newTestEngine(t, embedder, &stubCompleter{})

	// Provider failure degrades to a null answer, never an error or panic.
	answer := engine.AnswerQuestion("where do I work?", "u1")
	if answer.Found {
		t.Error("Found = true despite provider failure")
	}
	if answer.Reasoning == "" {
		t.Error("Reasoning is empty, want a degraded explanation")
	}
}

func TestEngine_RecordMessage(t *testing.T) {
	engine, store := newTestEngine(t, newStubEmbedder(), &stubCompleter{text: "summary"})

	result, err := engine.RecordMessage("I feel really stressed about work", "u1")
	if err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}

	if result.Pattern.Type != "emotional" {
		t.Errorf("Pattern.Type = %q, want %q", result.Pattern.Type, "emotional")
	}
	if result.Settings.Temperature < 0.3 || result.Settings.Temperature > 1.2 {
		t.Errorf("Temperature = %v, out of bounds", result.Settings.Temperature)
	}

	count, err := store.Messages.Count("u1")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestEngine_RecordMessage_TriggersCompression(t *testing.T) {
	engine, store := newTestEngine(t, newStubEmbedder(), &stubCompleter{text: "rolling summary"})

	var compressed bool
	for i := 0; i < 12; i++ {
		result, err := engine.RecordMessage("just another message about the day", "u1")
		if err != nil {
			t.Fatalf("RecordMessage() error = %v", err)
		}
		if result.Compressed {
			compressed = true
		}
	}
	if !compressed {
		t.Error("no RecordMessage() call reported compression across 12 messages")
	}

	summary, err := store.Summaries.Get("u1")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if summary == nil {
		t.Fatal("no summary persisted after compression")
	}
	if summary.Summary != "rolling summary" {
		t.Errorf("Summary = %q, want %q", summary.Summary, "rolling summary")
	}
}

func TestEngine_CorrectFact_OldValueUnretrievable(t *testing.T) {
	embedder := newStubEmbedder()
	embedder.vectors["work"] = []float64{1, 0, 0}

	completer := &stubCompleter{
		text: `[{"subject": "user", "attribute": "workplace", "value": "Acme"}]`,
	}
	engine, _ := newTestEngine(t, embedder, completer)

	if _, err := engine.IngestFacts("I work at Acme", "Nice!", "u1"); err != nil {
		t.Fatalf("IngestFacts() error = %v", err)
	}

	correction, err := engine.CorrectFact("workplace", "Initech", "u1", "")
	if err != nil {
		t.Fatalf("CorrectFact() error = %v", err)
	}
	if correction.OldValue != "Acme" {
		t.Errorf("OldValue = %q, want %q", correction.OldValue, "Acme")
	}

	answer := engine.AnswerQuestion("where do I work?", "u1")
	if !answer.Found {
		t.Fatalf("Found = false after correction; reasoning: %s", answer.Reasoning)
	}
	if answer.Answer != "Initech" {
		t.Errorf("Answer = %q, want corrected value %q", answer.Answer, "Initech")
	}
	for _, f := range answer.FactsUsed {
		if f.Value == "Acme" {
			t.Error("answer still traces to the old value")
		}
	}
}

func TestEngine_SearchFacts(t *testing.T) {
	embedder := newStubEmbedder()
	embedder.vectors["work"] = []float64{1, 0, 0}

	completer := &stubCompleter{
		text: `[{"subject": "user", "attribute": "workplace", "value": "Acme"}]`,
	}
	engine, _ := newTestEngine(t, embedder, completer)

	if _, err := engine.IngestFacts("I work at Acme", "Nice!", "u1"); err != nil {
		t.Fatalf("IngestFacts() error = %v", err)
	}

	results, err := engine.SearchFacts("my work", "u1", 10)
	if err != nil {
		t.Fatalf("SearchFacts() error = %v", err)
	}
	if len(results) != 1 {
		t.Fatalf("SearchFacts() returned %d results, want 1", len(results))
	}
	if results[0].Fact.Value != "Acme" {
		t.Errorf("Value = %q, want %q", results[0].Fact.Value, "Acme")
	}
}

func TestEngine_ProfileAdaptsToFeedback(t *testing.T) {
	completer := &stubCompleter{text: "[]"}
	engine, _ := newTestEngine(t, newStubEmbedder(), completer)

	before := engine.Profile("u1")

	// Positive feedback on an affectionate response reinforces warmth.
	if _, err := engine.IngestFacts("thanks, that was perfect", "anytime babe, love that for you", "u1"); err != nil {
		t.Fatalf("IngestFacts() error = %v", err)
	}

	after := engine.Profile("u1")
	if after.Empathy <= before.Empathy {
		t.Errorf("Empathy = %v, want > %v after reinforced affection", after.Empathy, before.Empathy)
	}
}

func TestEngine_Stats(t *testing.T) {
	embedder := newStubEmbedder()
	completer := &stubCompleter{
		text: `[{"subject": "user", "attribute": "workplace", "value": "Acme"}]`,
	}
	engine, _ := newTestEngine(t, embedder, completer)

	if _, err := engine.IngestFacts("I work at Acme", "Nice!", "u1"); err != nil {
		t.Fatalf("IngestFacts() error = %v", err)
	}
	if _, err := engine.RecordMessage("hello there", "u1"); err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}

	stats, err := engine.Stats("u1")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalFacts != 1 {
		t.Errorf("TotalFacts = %d, want 1", stats.TotalFacts)
	}
	if stats.UniqueSubjects != 1 || len(stats.Subjects) != 1 {
		t.Errorf("UniqueSubjects = %d, Subjects = %v", stats.UniqueSubjects, stats.Subjects)
	}
	if stats.MessageCount != 1 {
		t.Errorf("MessageCount = %d, want 1", stats.MessageCount)
	}
	if stats.AverageSatisfaction <= 0 {
		t.Errorf("AverageSatisfaction = %v, want > 0", stats.AverageSatisfaction)
	}
}

func TestEngine_ResetMemory(t *testing.T) {
	embedder := newStubEmbedder()
	completer := &stubCompleter{
		text: `[{"subject": "user", "attribute": "workplace", "value": "Acme"}]`,
	}
	engine, store := newTestEngine(t, embedder, completer)

	if _, err := engine.IngestFacts("I work at Acme", "Nice!", "u1"); err != nil {
		t.Fatalf("IngestFacts() error = %v", err)
	}
	if _, err := engine.RecordMessage("hello", "u1"); err != nil {
		t.Fatalf("RecordMessage() error = %v", err)
	}

	if err := engine.ResetMemory("u1"); err != nil {
		t.Fatalf("ResetMemory() error = %v", err)
	}

	count, err := store.Facts.CountActive("u1")
	if err != nil {
		t.Fatalf("CountActive() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountActive() = %d, want 0", count)
	}

	msgCount, err := store.Messages.Count("u1")
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if msgCount != 0 {
		t.Errorf("Count() = %d, want 0", msgCount)
	}

	stats, err := engine.Stats("u1")
	if err != nil {
		t.Fatalf("Stats() error = %v", err)
	}
	if stats.TotalFacts != 0 || stats.EmbeddingsCached != 0 {
		t.Errorf("Stats after reset = %+v, want empty", stats)
	}
}
