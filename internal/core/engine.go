// ABOUTME: Engine is the caller-owned session object for the memory subsystem
// ABOUTME: Exposes the request/response operations consumed by the UI layer
package core

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/google/uuid"
	"github.com/rowan/keepsake/internal/models"
	"github.com/rowan/keepsake/internal/storage/sqlite"
)

// searchLimit is how many relevant facts reach the reasoning engine.
const searchLimit = 10

// Engine owns all per-session mutable state: the embedding caches, the
// personality profiles, and the interaction counters. Mutations for one user
// are serialized by a per-user mutex; nothing here is package-level.
type Engine struct {
	store      *sqlite.Store
	cache      *EmbedCache
	facts      *FactService
	reasoner   *Reasoner
	compressor *Compressor
	detector   *EmergenceDetector
	completer  Completer

	mu           sync.Mutex
	userLocks    map[string]*sync.Mutex
	profiles     map[string]*models.PersonalityProfile
	interactions map[string]int
}

// NewEngine creates an Engine over the given store and providers.
func NewEngine(store *sqlite.Store, embedder Embedder, completer Completer) (*Engine, error) {
	cache, err := NewEmbedCache(embedder)
	if err != nil {
		return nil, err
	}

	return &Engine{
		store:        store,
		cache:        cache,
		facts:        NewFactService(store.Facts, cache, completer),
		reasoner:     NewReasoner(),
		compressor:   NewCompressor(store.Messages, store.Summaries, completer),
		detector:     NewEmergenceDetector(store.Learning, store.Behaviors),
		completer:    completer,
		userLocks:    make(map[string]*sync.Mutex),
		profiles:     make(map[string]*models.PersonalityProfile),
		interactions: make(map[string]int),
	}, nil
}

// RecordResult reports what happened while recording one inbound message.
type RecordResult struct {
	Pattern    models.MessagePattern     `json:"pattern"`
	Settings   models.GenerationSettings `json:"settings"`
	Context    models.MemoryContext      `json:"context"`
	Compressed bool                      `json:"compressed"`
}

// LearnResult reports the adaptive loop's outcome for one exchange.
type LearnResult struct {
	Satisfaction  float64                   `json:"satisfaction"`
	Pattern       models.MessagePattern     `json:"pattern"`
	ResponseStyle string                    `json:"response_style"`
	FactsStored   int                       `json:"facts_stored"`
	NewBehaviors  []models.EmergentBehavior `json:"new_behaviors,omitempty"`
}

// Stats summarizes a user's stored memory.
type Stats struct {
	TotalFacts          int      `json:"total_facts"`
	UniqueSubjects      int      `json:"unique_subjects"`
	Subjects            []string `json:"subjects"`
	AverageConfidence   float64  `json:"average_confidence"`
	EmbeddingsCached    int      `json:"embeddings_cached"`
	MessageCount        int      `json:"message_count"`
	AverageSatisfaction float64  `json:"average_satisfaction"`
	MessagesCompressed  int      `json:"messages_compressed"`
	CompressionTokens   int      `json:"compression_tokens"`
	Behaviors           []string `json:"behaviors"`
}

// AnswerQuestion retrieves the facts relevant to the question and runs the
// reasoning engine over them. Provider failures degrade to a null answer for
// this turn; they are never propagated.
func (e *Engine) AnswerQuestion(question, userID string) models.Answer {
	queryVector, err := e.cache.Embed(question)
	if err != nil {
		log.Printf("[engine] embedding question failed: %v", err)
		return degradedAnswer()
	}

	facts, err := e.store.Facts.ListActive(userID)
	if err != nil {
		log.Printf("[engine] loading facts failed: %v", err)
		return degradedAnswer()
	}

	if err := e.cache.SyncFacts(facts); err != nil {
		log.Printf("[engine] syncing fact index failed: %v", err)
		return degradedAnswer()
	}

	relevant := e.cache.Search(queryVector, userID, searchLimit)
	if len(relevant) == 0 {
		return models.Answer{
			Found:     false,
			Reasoning: "I don't have any relevant information stored about that.",
			Strategy:  models.StrategyNone,
		}
	}

	return e.reasoner.Answer(question, relevant)
}

// RecordMessage classifies and persists one inbound message, derives the
// generation settings for the reply, and opportunistically compresses old
// history. A failed compression never fails the record.
func (e *Engine) RecordMessage(text, userID string) (RecordResult, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	pattern := Classify(text)
	settings := DeriveSettings(pattern, *e.profile(userID))

	msg := &models.Message{
		ID:     uuid.New().String(),
		UserID: userID,
		Text:   text,
	}
	if err := e.store.Messages.Append(msg); err != nil {
		return RecordResult{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	result := RecordResult{Pattern: pattern, Settings: settings}

	summary, err := e.compressor.CompressIfNeeded(userID)
	if err != nil {
		log.Printf("[engine] compression failed: %v", err)
	}
	result.Compressed = summary != nil

	if context, err := e.compressor.MemoryContext(userID); err == nil {
		result.Context = context
	}

	return result, nil
}

// IngestFacts runs the adaptive learning loop for one exchange and extracts
// and stores any new facts. Extraction failures degrade to zero stored facts.
func (e *Engine) IngestFacts(message, response, userID string) (LearnResult, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	e.mu.Lock()
	e.interactions[userID]++
	interactionCount := e.interactions[userID]
	e.mu.Unlock()

	pattern := Classify(message)
	style := DetectResponseStyle(response)
	satisfaction := ScoreSatisfaction(message, response, pattern)
	profile := e.profile(userID)
	settings := DeriveSettings(pattern, *profile)

	record := &models.LearningRecord{
		ID:                  uuid.New().String(),
		UserID:              userID,
		MessagePattern:      pattern.Type,
		MessageContext:      pattern.Context,
		EmotionalIntensity:  pattern.EmotionalIntensity,
		UrgencyLevel:        pattern.Urgency,
		ResponseStyle:       style,
		SatisfactionScore:   satisfaction,
		PersonalityUsed:     profile.Snapshot(),
		AdaptiveTemperature: settings.Temperature,
		AdaptiveTokens:      settings.MaxTokens,
		ComplexityScore:     pattern.Complexity,
	}
	if err := e.store.Learning.Append(record); err != nil {
		return LearnResult{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if satisfaction > satisfactionHigh {
		Reinforce(profile, style, pattern)
	} else if satisfaction < satisfactionLow {
		Weaken(profile, style, pattern)
	}

	result := LearnResult{
		Satisfaction:  satisfaction,
		Pattern:       pattern,
		ResponseStyle: style,
	}

	if interactionCount%emergenceInterval == 0 {
		unlocked, err := e.detector.Detect(userID)
		if err != nil {
			log.Printf("[engine] emergence detection failed: %v", err)
		}
		result.NewBehaviors = unlocked
	}

	extracted, err := e.facts.Extract(message, response)
	if err != nil {
		log.Printf("[engine] fact extraction failed: %v", err)
		return result, nil
	}

	for _, f := range extracted {
		if _, err := e.facts.Upsert(userID, f.Subject, f.Attribute, f.Value, DefaultFactConfidence); err != nil {
			log.Printf("[engine] storing fact %s %s failed: %v", f.Subject, f.Attribute, err)
			continue
		}
		result.FactsStored++
	}

	return result, nil
}

// CorrectFact updates an existing fact's value. Subject defaults to "user".
func (e *Engine) CorrectFact(attribute, newValue, userID, subject string) (*models.Correction, error) {
	unlock := e.lockUser(userID)
	defer unlock()

	return e.facts.Correct(userID, subject, attribute, newValue)
}

// SearchFacts returns the facts semantically relevant to a query.
func (e *Engine) SearchFacts(query, userID string, limit int) ([]models.ScoredFact, error) {
	queryVector, err := e.cache.Embed(query)
	if err != nil {
		return nil, err
	}

	facts, err := e.store.Facts.ListActive(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	if err := e.cache.SyncFacts(facts); err != nil {
		return nil, err
	}

	return e.cache.Search(queryVector, userID, limit), nil
}

// MemoryContext exposes the rolling summary for prompt assembly.
func (e *Engine) MemoryContext(userID string) (models.MemoryContext, error) {
	return e.compressor.MemoryContext(userID)
}

// Profile returns a copy of the user's current personality profile.
func (e *Engine) Profile(userID string) models.PersonalityProfile {
	unlock := e.lockUser(userID)
	defer unlock()

	return *e.profile(userID)
}

// Stats summarizes the user's stored memory.
func (e *Engine) Stats(userID string) (Stats, error) {
	facts, err := e.store.Facts.ListActive(userID)
	if err != nil {
		return Stats{}, fmt.Errorf("%w: %v", ErrStore, err)
	}

	stats := Stats{
		TotalFacts:       len(facts),
		EmbeddingsCached: e.cache.Size(),
		Behaviors:        e.detector.Discovered(userID),
	}

	seen := make(map[string]bool)
	var confidenceSum float64
	for _, f := range facts {
		if !seen[f.Subject] {
			seen[f.Subject] = true
			stats.Subjects = append(stats.Subjects, f.Subject)
		}
		confidenceSum += f.Confidence
	}
	stats.UniqueSubjects = len(stats.Subjects)
	if len(facts) > 0 {
		stats.AverageConfidence = confidenceSum / float64(len(facts))
	}

	if count, err := e.store.Messages.Count(userID); err == nil {
		stats.MessageCount = count
	}
	if avg, err := e.store.Learning.AverageSatisfaction(userID); err == nil {
		stats.AverageSatisfaction = avg
	}
	if summary, err := e.store.Summaries.Get(userID); err == nil && summary != nil {
		stats.MessagesCompressed = summary.MessagesCompressed
		stats.CompressionTokens = summary.TokensUsed
	}

	return stats, nil
}

// ResetMemory deletes all persisted and cached memory for a user. This is
// the only path that physically deletes facts.
func (e *Engine) ResetMemory(userID string) error {
	unlock := e.lockUser(userID)
	defer unlock()

	var failed []error
	failed = append(failed, e.store.Facts.DeleteForUser(userID))
	failed = append(failed, e.store.Messages.DeleteForUser(userID))
	failed = append(failed, e.store.Summaries.DeleteForUser(userID))
	failed = append(failed, e.store.Learning.DeleteForUser(userID))
	failed = append(failed, e.store.Behaviors.DeleteForUser(userID))

	if err := errors.Join(failed...); err != nil {
		return fmt.Errorf("%w: %v", ErrStore, err)
	}

	e.cache.InvalidateUser(userID)
	e.detector.Forget(userID)

	e.mu.Lock()
	delete(e.profiles, userID)
	delete(e.interactions, userID)
	e.mu.Unlock()

	return nil
}

// profile returns the user's mutable profile, creating the defaults on
// first use. Callers hold the user lock.
func (e *Engine) profile(userID string) *models.PersonalityProfile {
	e.mu.Lock()
	defer e.mu.Unlock()

	p, ok := e.profiles[userID]
	if !ok {
		defaults := models.DefaultProfile()
		p = &defaults
		e.profiles[userID] = p
	}
	return p
}

// lockUser serializes mutations for one user and returns the unlock func.
func (e *Engine) lockUser(userID string) func() {
	e.mu.Lock()
	lock, ok := e.userLocks[userID]
	if !ok {
		lock = &sync.Mutex{}
		e.userLocks[userID] = lock
	}
	e.mu.Unlock()

	lock.Lock()
	return lock.Unlock
}

func degradedAnswer() models.Answer {
	return models.Answer{
		Found:     false,
		Reasoning: "I had trouble accessing my memory for that question.",
		Strategy:  models.StrategyNone,
	}
}
