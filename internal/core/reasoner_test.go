// ABOUTME: Tests for the multi-strategy reasoning engine
// ABOUTME: Each strategy plus confidence selection, fallback, and traceability
package core

import (
	"strings"
	"testing"

	"github.com/rowan/keepsake/internal/models"
)

func scored(subject, attribute, value string, similarity float64) models.ScoredFact {
	return models.ScoredFact{
		Fact: models.Fact{
			ID:        subject + "-" + attribute,
			UserID:    "u1",
			Subject:   subject,
			Attribute: attribute,
			Value:     value,
			IsActive:  true,
		},
		Similarity: similarity,
	}
}

func TestReasoner_DirectMatch(t *testing.T) {
	r := NewReasoner()

	answer := r.Answer("what is my favorite drink?", []models.ScoredFact{
		scored("user", "favorite_drink", "coffee", 0.95),
	})

	if !answer.Found {
		t.Fatal("Found = false, want true")
	}
	if answer.Strategy != models.StrategyDirectMatch {
		t.Errorf("Strategy = %q, want %q", answer.Strategy, models.StrategyDirectMatch)
	}
	if answer.Answer != "coffee" {
		t.Errorf("Answer = %q, want %q", answer.Answer, "coffee")
	}
	if answer.Confidence != 0.95 {
		t.Errorf("Confidence = %v, want 0.95", answer.Confidence)
	}
	if len(answer.FactsUsed) != 1 {
		t.Errorf("FactsUsed = %d facts, want 1", len(answer.FactsUsed))
	}
}

func TestReasoner_DirectMatch_RequiresHighSimilarity(t *testing.T) {
	r := NewReasoner()

	// Similarity at the threshold is not enough; attribute mapping should
	// win instead for a workplace question.
	answer := r.Answer("where do I work?", []models.ScoredFact{
		scored("user", "workplace", "Acme", 0.9),
	})

	if answer.Strategy != models.StrategyAttributeMap {
		t.Errorf("Strategy = %q, want %q", answer.Strategy, models.StrategyAttributeMap)
	}
	if answer.Answer != "Acme" {
		t.Errorf("Answer = %q, want %q", answer.Answer, "Acme")
	}
	if answer.Confidence != 0.8 {
		t.Errorf("Confidence = %v, want 0.8", answer.Confidence)
	}
}

func TestReasoner_RelationshipInference(t *testing.T) {
	r := NewReasoner()

	answer := r.Answer("who is my son?", []models.ScoredFact{
		scored("son", "eye_color", "blue", 0.8),
		scored("son", "school", "Lincoln Elementary", 0.78),
	})

	if !answer.Found {
		t.Fatal("Found = false, want true")
	}
	if answer.Strategy != models.StrategyRelationship {
		t.Errorf("Strategy = %q, want %q", answer.Strategy, models.StrategyRelationship)
	}
	if answer.Confidence != 0.85 {
		t.Errorf("Confidence = %v, want 0.85", answer.Confidence)
	}
	if !strings.Contains(answer.Answer, "eye_color: blue") {
		t.Errorf("Answer = %q, want it to contain %q", answer.Answer, "eye_color: blue")
	}
	if !strings.Contains(answer.Answer, "school: Lincoln Elementary") {
		t.Errorf("Answer = %q, want it to contain %q", answer.Answer, "school: Lincoln Elementary")
	}
	// Multiple facts combined: the reasoning says so.
	if !strings.Contains(answer.Reasoning, "2 pieces of information") {
		t.Errorf("Reasoning = %q, want mention of 2 pieces of information", answer.Reasoning)
	}
}

func TestReasoner_RelationshipInference_NeedsTwoFacts(t *testing.T) {
	r := NewReasoner()

	answer := r.Answer("who is my son?", []models.ScoredFact{
		scored("son", "eye_color", "blue", 0.8),
	})

	if answer.Strategy == models.StrategyRelationship {
		t.Error("relationship inference fired with a single fact")
	}
}

func TestReasoner_NarrativeReconstruction(t *testing.T) {
	r := NewReasoner()

	answer := r.Answer("why is my dog named Biscuit?", []models.ScoredFact{
		scored("dog", "name", "Biscuit", 0.8),
		scored("dog", "reason_for_naming", "she loved biscuits as a puppy", 0.78),
	})

	if !answer.Found {
		t.Fatal("Found = false, want true")
	}
	if answer.Strategy != models.StrategyNarrative {
		t.Errorf("Strategy = %q, want %q", answer.Strategy, models.StrategyNarrative)
	}
	if answer.Confidence != 0.9 {
		t.Errorf("Confidence = %v, want 0.9", answer.Confidence)
	}
	if answer.Answer != "Biscuit she loved biscuits as a puppy" {
		t.Errorf("Answer = %q", answer.Answer)
	}
}

func TestReasoner_AttributeMapping(t *testing.T) {
	tests := []struct {
		question  string
		attribute string
		value     string
	}{
		{"where did I go to college?", "school", "State University"},
		{"what company do I work for?", "workplace", "Acme"},
		{"what color are my eyes?", "eye_color", "brown"},
		{"what do I like to drink?", "favorite_drink", "coffee"},
		{"what do I eat for breakfast?", "breakfast", "oatmeal"},
	}

	r := NewReasoner()
	for _, tt := range tests {
		t.Run(tt.question, func(t *testing.T) {
			answer := r.Answer(tt.question, []models.ScoredFact{
				scored("user", tt.attribute, tt.value, 0.8),
			})

			if !answer.Found {
				t.Fatal("Found = false, want true")
			}
			if answer.Answer != tt.value {
				t.Errorf("Answer = %q, want %q", answer.Answer, tt.value)
			}
			if answer.Strategy != models.StrategyAttributeMap {
				t.Errorf("Strategy = %q, want %q", answer.Strategy, models.StrategyAttributeMap)
			}
		})
	}
}

func TestReasoner_HighestConfidenceWins(t *testing.T) {
	r := NewReasoner()

	// Both narrative (0.9) and attribute mapping (0.8, via "name") could
	// answer; narrative must win.
	answer := r.Answer("why is my dog named Biscuit?", []models.ScoredFact{
		scored("dog", "name", "Biscuit", 0.8),
		scored("dog", "reason_for_naming", "she loved biscuits", 0.78),
	})

	if answer.Strategy != models.StrategyNarrative {
		t.Errorf("Strategy = %q, want %q", answer.Strategy, models.StrategyNarrative)
	}
}

func TestReasoner_FallbackNullAnswer(t *testing.T) {
	r := NewReasoner()

	// Facts are relevant but no strategy applies.
	relevant := []models.ScoredFact{
		scored("user", "hobby", "chess", 0.78),
		scored("user", "pet", "dog", 0.77),
		scored("user", "city", "Portland", 0.76),
		scored("user", "car", "wagon", 0.755),
	}
	answer := r.Answer("hmm", relevant)

	if answer.Found {
		t.Error("Found = true, want false")
	}
	if answer.Confidence != 0 {
		t.Errorf("Confidence = %v, want 0", answer.Confidence)
	}
	if answer.Strategy != models.StrategyNone {
		t.Errorf("Strategy = %q, want %q", answer.Strategy, models.StrategyNone)
	}
	// The null answer still points at what was considered, capped at 3.
	if len(answer.FactsUsed) != 3 {
		t.Errorf("FactsUsed = %d facts, want 3", len(answer.FactsUsed))
	}
}

func TestReasoner_AnswersTraceableToFacts(t *testing.T) {
	r := NewReasoner()

	relevant := []models.ScoredFact{
		scored("user", "workplace", "Acme", 0.95),
	}
	answer := r.Answer("where do I work?", relevant)

	if !answer.Found {
		t.Fatal("Found = false, want true")
	}
	if len(answer.FactsUsed) == 0 {
		t.Fatal("FactsUsed is empty; every answer must be traceable to stored facts")
	}
	for _, f := range answer.FactsUsed {
		if f.ID != relevant[0].Fact.ID {
			t.Errorf("FactsUsed contains unknown fact %q", f.ID)
		}
	}
}
