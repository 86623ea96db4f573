// ABOUTME: Memory compression scheduler folding old messages into one summary
// ABOUTME: Threshold and cooldown gate how often the provider is called
package core

import (
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/rowan/keepsake/internal/models"
	"github.com/rowan/keepsake/internal/storage/sqlite"
)

const (
	// compressionThreshold is the message count above which compression runs
	compressionThreshold = 10

	// compressionKeepRecent is how many newest messages stay uncompressed
	compressionKeepRecent = 5

	// compressionCooldown is the minimum time between compressions,
	// derived from the persisted compression date
	compressionCooldown = 30 * time.Minute

	// compressionInputBudget bounds the characters sent to the provider
	compressionInputBudget = 6000

	// compressionSummaryTokens bounds the generated summary length
	compressionSummaryTokens = 200

	// compressionTemperature keeps summarization factual
	compressionTemperature = 0.3
)

const compressionSystemPrompt = `You summarize conversation history between a user and their personal assistant into key facts and context. Focus on:
- Important personal information about the user
- Relationship dynamics and communication style
- Key topics discussed
- The user's preferences and personality traits
- Any ongoing projects or concerns

Keep it concise but comprehensive. This will be used as context for future conversations.`

// Compressor folds older raw messages into the single rolling summary row.
type Compressor struct {
	messages  *sqlite.MessageStore
	summaries *sqlite.SummaryStore
	completer Completer
}

// NewCompressor creates a Compressor over the given stores and provider.
func NewCompressor(messages *sqlite.MessageStore, summaries *sqlite.SummaryStore, completer Completer) *Compressor {
	return &Compressor{
		messages:  messages,
		summaries: summaries,
		completer: completer,
	}
}

// CompressIfNeeded runs one compression when the message count exceeds the
// threshold and the cooldown has elapsed. Returns the new summary, or nil
// when compression was not needed.
func (c *Compressor) CompressIfNeeded(userID string) (*models.MemorySummary, error) {
	total, err := c.messages.Count(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if total <= compressionThreshold {
		return nil, nil
	}

	// Cooldown comes from the persisted compression date, so restarts
	// cannot trigger over-compression.
	previous, err := c.summaries.Get(userID)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if previous != nil && time.Since(previous.CompressionDate) < compressionCooldown {
		return nil, nil
	}

	old, err := c.messages.Oldest(userID, total-compressionKeepRecent)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if len(old) < compressionKeepRecent {
		return nil, nil
	}

	texts := make([]string, len(old))
	for i, msg := range old {
		texts[i] = msg.Text
	}
	conversation := strings.Join(texts, "\n")
	if len(conversation) > compressionInputBudget {
		conversation = conversation[:compressionInputBudget]
	}

	userPrompt := fmt.Sprintf("CONVERSATION HISTORY:\n%s\n\nSUMMARY:", conversation)

	completion, err := c.completer.Complete(compressionSystemPrompt, userPrompt,
		compressionSummaryTokens, compressionTemperature)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrProvider, err)
	}

	summary := &models.MemorySummary{
		UserID:             userID,
		Summary:            strings.TrimSpace(completion.Text),
		MessagesCompressed: len(old),
		CompressionDate:    time.Now(),
		TokensUsed:         completion.TokensUsed,
	}

	if err := c.summaries.Upsert(summary); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrStore, err)
	}

	log.Printf("[compressor] compressed %d messages into %d characters for user %s",
		len(old), len(summary.Summary), userID)

	return summary, nil
}

// MemoryContext returns the latest summary with its age in whole hours, or
// a context flagged as absent when no summary exists yet.
func (c *Compressor) MemoryContext(userID string) (models.MemoryContext, error) {
	summary, err := c.summaries.Get(userID)
	if err != nil {
		return models.MemoryContext{}, fmt.Errorf("%w: %v", ErrStore, err)
	}
	if summary == nil {
		return models.MemoryContext{HasSummary: false}, nil
	}

	return models.MemoryContext{
		Summary:    summary.Summary,
		AgeHours:   int(time.Since(summary.CompressionDate).Hours()),
		HasSummary: true,
	}, nil
}
