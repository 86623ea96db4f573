// ABOUTME: Fact upsert, correction, and LLM-based extraction
// ABOUTME: Keeps the embedding index consistent with persisted facts
package core

import (
	"encoding/json"
	"fmt"
	"log"
	"regexp"
	"time"

	"github.com/google/uuid"
	"github.com/rowan/keepsake/internal/models"
	"github.com/rowan/keepsake/internal/storage/sqlite"
)

// DefaultFactConfidence is assigned to extracted facts on storage.
const DefaultFactConfidence = 0.9

// defaultSubject is used when a correction names no subject.
const defaultSubject = "user"

// correctionLanguage marks messages disputing the prior response; extraction
// is skipped entirely so disputed facts are never committed.
var correctionLanguage = regexp.MustCompile(`(?i)wrong|incorrect|not true|lying`)

const extractionSystemPrompt = `Extract key facts about the user from this conversation.
Return as JSON array with this exact format:
[{"subject": "what/who", "attribute": "property", "value": "fact"}]

Examples:
- "My son has blue eyes" -> [{"subject": "son", "attribute": "eye_color", "value": "blue"}]
- "I work at Google" -> [{"subject": "user", "attribute": "workplace", "value": "Google"}]
- "My favorite drink is coffee" -> [{"subject": "user", "attribute": "favorite_drink", "value": "coffee"}]

Extract clear, specific facts about the USER only. If no facts, return [].`

// FactService implements fact persistence plus embedding-index maintenance.
// Callers serialize mutations per user; the service itself holds no locks.
type FactService struct {
	facts     *sqlite.FactStore
	cache     *EmbedCache
	completer Completer
}

// NewFactService creates a FactService over the given store, cache, and provider.
func NewFactService(facts *sqlite.FactStore, cache *EmbedCache, completer Completer) *FactService {
	return &FactService{
		facts:     facts,
		cache:     cache,
		completer: completer,
	}
}

// Upsert stores or updates the unique active fact for the identity key and
// reindexes its embedding. The index entry is keyed by fact identity, so an
// updated value replaces the old entry instead of leaking a stale one.
func (s *FactService) Upsert(userID, subject, attribute, value string, confidence float64) (*models.Fact, error) {
	existing, err := s.facts.GetActive(userID, subject, attribute)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	var fact *models.Fact
	if existing != nil {
		if err := s.facts.UpdateValue(existing.ID, value, confidence); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}
		existing.Value = value
		existing.Confidence = confidence
		existing.UpdatedAt = time.Now()
		fact = existing
	} else {
		fact = &models.Fact{
			ID:         uuid.New().String(),
			UserID:     userID,
			Subject:    subject,
			Attribute:  attribute,
			Value:      value,
			Confidence: confidence,
			Category:   "personal",
			IsActive:   true,
		}
		if err := s.facts.Insert(fact); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrStore, err)
		}
	}

	if err := s.cache.IndexFact(*fact); err != nil {
		// The fact is persisted; a failed embed only delays indexing
		// until the next SyncFacts.
		log.Printf("[facts] failed to index %s %s: %v", subject, attribute, err)
	}

	return fact, nil
}

// Correct updates the value of an existing active fact and reindexes it.
// Returns ErrNotFound when no active fact matches the identity key.
func (s *FactService) Correct(userID, subject, attribute, newValue string) (*models.Correction, error) {
	if subject == "" {
		subject = defaultSubject
	}

	existing, err := s.facts.GetActive(userID, subject, attribute)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if existing == nil {
		return nil, fmt.Errorf("%w: %s %s", ErrNotFound, subject, attribute)
	}

	oldValue := existing.Value
	if err := s.facts.UpdateValue(existing.ID, newValue, existing.Confidence); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	existing.Value = newValue
	if err := s.cache.IndexFact(*existing); err != nil {
		// Drop the stale entry so the old value can no longer match.
		s.cache.Remove(userID, subject, attribute)
		log.Printf("[facts] failed to reindex corrected %s %s: %v", subject, attribute, err)
	}

	return &models.Correction{
		Subject:   subject,
		Attribute: attribute,
		OldValue:  oldValue,
		NewValue:  newValue,
	}, nil
}

// Extract asks the completion provider for fact triples found in one
// user/assistant exchange. Messages containing correction language yield no
// facts, and malformed extraction output is treated as no facts rather than
// an error.
func (s *FactService) Extract(message, response string) ([]models.ExtractedFact, error) {
	if correctionLanguage.MatchString(message) {
		return nil, nil
	}

	userPrompt := fmt.Sprintf("User: %s\nAssistant: %s", message, response)

	completion, err := s.completer.Complete(extractionSystemPrompt, userPrompt, 200, 0.1)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	var facts []models.ExtractedFact
	if err := json.Unmarshal([]byte(completion.Text), &facts); err != nil {
		// Malformed output means no facts this turn, not a failed turn.
		log.Printf("[facts] %v: %v", ErrParse, err)
		return nil, nil
	}

	return facts, nil
}
