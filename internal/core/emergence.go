// ABOUTME: Emergent behavior detection over rolling learning-record windows
// ABOUTME: Discovery is one-way; an unlocked behavior is never re-evaluated
package core

import (
	"fmt"
	"math"
	"sync"
	"time"

	"github.com/rowan/keepsake/internal/models"
	"github.com/rowan/keepsake/internal/storage/sqlite"
)

const (
	// emergenceInterval is how many interactions pass between checks
	emergenceInterval = 25

	// emergenceWindow is the rolling window of records considered
	emergenceWindow = 7 * 24 * time.Hour

	// emergenceMinRecords is the minimum window size to analyze at all
	emergenceMinRecords = 20

	// emergenceFetchLimit caps how many records one analysis reads
	emergenceFetchLimit = 50
)

// EmergenceDetector evaluates fixed statistical heuristics over recent
// learning records and unlocks behaviors when their thresholds hold.
type EmergenceDetector struct {
	learning  *sqlite.LearningStore
	behaviors *sqlite.BehaviorStore

	mu         sync.Mutex
	discovered map[string]map[string]bool
}

// NewEmergenceDetector creates a detector over the given stores.
func NewEmergenceDetector(learning *sqlite.LearningStore, behaviors *sqlite.BehaviorStore) *EmergenceDetector {
	return &EmergenceDetector{
		learning:   learning,
		behaviors:  behaviors,
		discovered: make(map[string]map[string]bool),
	}
}

// Detect pulls the last 7 days of learning records and evaluates the four
// heuristics independently. Every candidate not already discovered is
// persisted and added to the process-local set; the newly discovered
// behaviors are returned.
func (d *EmergenceDetector) Detect(userID string) ([]models.EmergentBehavior, error) {
	records, err := d.learning.ListSince(userID, time.Now().Add(-emergenceWindow), emergenceFetchLimit)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if len(records) < emergenceMinRecords {
		return nil, nil
	}

	candidates := analyzeForEmergence(records)
	if len(candidates) == 0 {
		return nil, nil
	}

	set, err := d.discoveredSet(userID)
	if err != nil {
		return nil, err
	}

	var unlocked []models.EmergentBehavior
	for _, candidate := range candidates {
		d.mu.Lock()
		already := set[candidate.BehaviorID]
		if !already {
			set[candidate.BehaviorID] = true
		}
		d.mu.Unlock()

		if already {
			continue
		}

		candidate.UserID = userID
		candidate.DiscoveredAt = time.Now()
		if err := d.behaviors.Insert(&candidate); err != nil {
			return unlocked, fmt.Errorf("%w: %v", ErrStore, err)
		}
		unlocked = append(unlocked, candidate)
	}

	return unlocked, nil
}

// Discovered returns the behavior ids unlocked for a user, seeding from
// storage on first access.
func (d *EmergenceDetector) Discovered(userID string) []string {
	set, err := d.discoveredSet(userID)
	if err != nil {
		return nil
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	return ids
}

// Forget drops the process-local set for a user (bulk memory reset only).
func (d *EmergenceDetector) Forget(userID string) {
	d.mu.Lock()
	delete(d.discovered, userID)
	d.mu.Unlock()
}

// discoveredSet lazily loads the persisted behavior ids for a user.
func (d *EmergenceDetector) discoveredSet(userID string) (map[string]bool, error) {
	d.mu.Lock()
	if set, ok := d.discovered[userID]; ok {
		d.mu.Unlock()
		return set, nil
	}
	d.mu.Unlock()

	ids, err := d.behaviors.ListIDs(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	d.mu.Lock()
	defer d.mu.Unlock()

	set, ok := d.discovered[userID]
	if !ok {
		set = make(map[string]bool, len(ids))
		for _, id := range ids {
			set[id] = true
		}
		d.discovered[userID] = set
	}
	return set, nil
}

// analyzeForEmergence evaluates the four heuristics independently; each may
// contribute a candidate in the same pass. Records arrive newest first.
func analyzeForEmergence(records []models.LearningRecord) []models.EmergentBehavior {
	var candidates []models.EmergentBehavior

	// Heuristic 1: high satisfaction on emotional messages
	emotional := filterByPattern(records, models.TypeEmotional)
	if len(emotional) >= 5 {
		if avg := meanSatisfaction(emotional); avg > 0.8 {
			candidates = append(candidates, models.EmergentBehavior{
				BehaviorID:   "emotional_adaptation",
				BehaviorType: "response_optimization",
				Description:  "Learned to adapt response style for emotional messages",
				Confidence:   avg,
			})
		}
	}

	// Heuristic 2: consistent satisfaction across distinct contexts
	byContext := make(map[string][]models.LearningRecord)
	for _, r := range records {
		byContext[r.MessageContext] = append(byContext[r.MessageContext], r)
	}
	if len(byContext) >= 3 {
		var total float64
		for _, contextRecords := range byContext {
			total += meanSatisfaction(contextRecords)
		}
		if avg := total / float64(len(byContext)); avg > 0.75 {
			candidates = append(candidates, models.EmergentBehavior{
				BehaviorID:   "pattern_mastery",
				BehaviorType: "context_adaptation",
				Description:  "Mastered adapting communication style across different contexts",
				Confidence:   avg,
			})
		}
	}

	// Heuristic 3: high satisfaction on urgent messages
	var urgent []models.LearningRecord
	for _, r := range records {
		if r.UrgencyLevel > 0 {
			urgent = append(urgent, r)
		}
	}
	if len(urgent) >= 3 {
		if avg := meanSatisfaction(urgent); avg > 0.8 {
			candidates = append(candidates, models.EmergentBehavior{
				BehaviorID:   "urgency_optimization",
				BehaviorType: "response_timing",
				Description:  "Optimized response style for urgent communications",
				Confidence:   avg,
			})
		}
	}

	// Heuristic 4: recent memory-test accuracy improving over older
	memoryTests := filterByPattern(records, models.TypeMemoryTest)
	if len(memoryTests) >= 3 {
		recent := meanSatisfaction(memoryTests[:3])
		var olderSum float64
		for _, r := range memoryTests[3:] {
			olderSum += r.SatisfactionScore
		}
		older := olderSum / math.Max(1, float64(len(memoryTests)-3))
		if recent > older+0.2 {
			candidates = append(candidates, models.EmergentBehavior{
				BehaviorID:   "memory_improvement",
				BehaviorType: "accuracy_enhancement",
				Description:  "Memory recall accuracy has significantly improved",
				Confidence:   recent,
			})
		}
	}

	return candidates
}

func filterByPattern(records []models.LearningRecord, pattern string) []models.LearningRecord {
	var filtered []models.LearningRecord
	for _, r := range records {
		if r.MessagePattern == pattern {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

func meanSatisfaction(records []models.LearningRecord) float64 {
	if len(records) == 0 {
		return 0
	}
	var sum float64
	for _, r := range records {
		sum += r.SatisfactionScore
	}
	return sum / float64(len(records))
}
