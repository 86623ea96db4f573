// ABOUTME: Embedding cache and cosine similarity search over the fact index
// ABOUTME: Query embeddings are memoized in a bounded ristretto cache
package core

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"sync"

	"github.com/dgraph-io/ristretto"
	"github.com/rowan/keepsake/internal/models"
)

// DefaultSimilarityThreshold is the minimum cosine similarity for a fact to
// count as relevant to a query.
const DefaultSimilarityThreshold = 0.75

// attributeSynonyms expands well-known attributes into the phrasings users
// actually ask with, so the fact embedding sits closer to the question.
var attributeSynonyms = map[string][]string{
	"school":            {"college", "university", "education", "studied", "degree"},
	"workplace":         {"work", "job", "company", "employer", "career"},
	"eye_color":         {"eyes", "eye color", "what color eyes"},
	"favorite_drink":    {"drink", "beverage", "likes to drink"},
	"breakfast":         {"morning meal", "eat in morning", "start the day"},
	"name":              {"called", "named", "name is"},
	"reason_for_naming": {"why named", "named after", "name comes from"},
}

// factEntry is one indexed fact with its embedding, keyed by fact identity
// (user, subject, attribute) so value corrections update it in place.
type factEntry struct {
	fact       models.Fact
	vector     []float64
	searchable string
}

// EmbedCache memoizes query embeddings and maintains the per-process fact
// embedding index used for similarity search. It is owned by the Engine and
// shared by all operations of one session; it is never persisted.
type EmbedCache struct {
	embedder  Embedder
	threshold float64

	queries *ristretto.Cache

	mu    sync.RWMutex
	facts map[string]*factEntry
}

// NewEmbedCache creates an EmbedCache backed by the given embedder.
func NewEmbedCache(embedder Embedder) (*EmbedCache, error) {
	queries, err := ristretto.NewCache(&ristretto.Config{
		NumCounters: 10_000,
		MaxCost:     64 << 20, // 64 MiB of cached query vectors
		BufferItems: 64,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create query cache: %w", err)
	}

	return &EmbedCache{
		embedder:  embedder,
		threshold: DefaultSimilarityThreshold,
		queries:   queries,
		facts:     make(map[string]*factEntry),
	}, nil
}

// Embed returns the embedding for text, memoized under a normalized key.
// Provider failures are not cached.
func (c *EmbedCache) Embed(text string) ([]float64, error) {
	key := normalizeKey(text)

	if cached, ok := c.queries.Get(key); ok {
		if vec, ok := cached.([]float64); ok {
			return vec, nil
		}
	}

	vec, err := c.embedder.GenerateEmbedding(text)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	c.queries.Set(key, vec, int64(len(vec)*8))
	return vec, nil
}

// SyncFacts brings the index in line with the given active facts: facts
// without an entry, or whose value changed since indexing, are re-embedded.
// An embed failure aborts the sync and propagates to the enclosing query.
func (c *EmbedCache) SyncFacts(facts []models.Fact) error {
	for _, fact := range facts {
		key := identityKey(fact.UserID, fact.Subject, fact.Attribute)

		c.mu.RLock()
		entry, ok := c.facts[key]
		c.mu.RUnlock()

		if ok && entry.fact.Value == fact.Value {
			continue
		}

		if err := c.IndexFact(fact); err != nil {
			return err
		}
	}
	return nil
}

// IndexFact embeds a fact's searchable text and stores or replaces its
// index entry.
func (c *EmbedCache) IndexFact(fact models.Fact) error {
	searchable := searchableText(fact)

	vec, err := c.Embed(searchable)
	if err != nil {
		return err
	}

	c.mu.Lock()
	c.facts[identityKey(fact.UserID, fact.Subject, fact.Attribute)] = &factEntry{
		fact:       fact,
		vector:     vec,
		searchable: searchable,
	}
	c.mu.Unlock()

	return nil
}

// Remove drops the index entry for a fact identity, if present.
func (c *EmbedCache) Remove(userID, subject, attribute string) {
	c.mu.Lock()
	delete(c.facts, identityKey(userID, subject, attribute))
	c.mu.Unlock()
}

// InvalidateUser drops all index entries belonging to a user.
func (c *EmbedCache) InvalidateUser(userID string) {
	c.mu.Lock()
	for key, entry := range c.facts {
		if entry.fact.UserID == userID {
			delete(c.facts, key)
		}
	}
	c.mu.Unlock()
}

// IndexedValue reports the value currently indexed for a fact identity.
func (c *EmbedCache) IndexedValue(userID, subject, attribute string) (string, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	entry, ok := c.facts[identityKey(userID, subject, attribute)]
	if !ok {
		return "", false
	}
	return entry.fact.Value, true
}

// Size returns the number of indexed fact embeddings.
func (c *EmbedCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.facts)
}

// Search linear-scans the index for the user's facts whose cosine similarity
// to the query vector exceeds the threshold, sorted descending, truncated to
// limit.
func (c *EmbedCache) Search(queryVector []float64, userID string, limit int) []models.ScoredFact {
	c.mu.RLock()
	var results []models.ScoredFact
	for _, entry := range c.facts {
		if entry.fact.UserID != userID {
			continue
		}

		similarity := cosineSimilarity(queryVector, entry.vector)
		if similarity > c.threshold {
			results = append(results, models.ScoredFact{
				Fact:       entry.fact,
				Similarity: similarity,
			})
		}
	}
	c.mu.RUnlock()

	sort.Slice(results, func(i, j int) bool {
		return results[i].Similarity > results[j].Similarity
	})

	if len(results) > limit {
		results = results[:limit]
	}

	return results
}

// searchableText combines fixed phrasing templates with attribute synonym
// expansions so one embedding covers the ways the fact can be asked about.
func searchableText(fact models.Fact) string {
	variations := []string{
		fmt.Sprintf("%s %s %s", fact.Subject, fact.Attribute, fact.Value),
		fmt.Sprintf("%s is %s", fact.Attribute, fact.Value),
		fmt.Sprintf("%s has %s %s", fact.Subject, fact.Attribute, fact.Value),
	}

	for _, synonym := range attributeSynonyms[fact.Attribute] {
		variations = append(variations,
			fmt.Sprintf("%s %s %s", fact.Subject, synonym, fact.Value),
			fmt.Sprintf("%s %s", synonym, fact.Value))
	}

	return strings.Join(variations, " ")
}

// cosineSimilarity is dot product over magnitudes. Zero vectors and length
// mismatches yield 0 rather than NaN.
func cosineSimilarity(a, b []float64) float64 {
	if len(a) != len(b) {
		return 0.0
	}

	var dotProduct, normA, normB float64
	for i := range a {
		dotProduct += a[i] * b[i]
		normA += a[i] * a[i]
		normB += b[i] * b[i]
	}

	if normA == 0 || normB == 0 {
		return 0.0
	}

	return dotProduct / (math.Sqrt(normA) * math.Sqrt(normB))
}

func normalizeKey(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

func identityKey(userID, subject, attribute string) string {
	return userID + "|" + subject + "|" + attribute
}
