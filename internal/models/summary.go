// ABOUTME: MemorySummary is the rolling compressed summary of old messages
// ABOUTME: At most one row per user; each compression overwrites the previous one
package models

import "time"

// MemorySummary holds the single compressed-history row for a user.
type MemorySummary struct {
	UserID             string    `json:"user_id"`
	Summary            string    `json:"summary"`
	MessagesCompressed int       `json:"messages_compressed"`
	CompressionDate    time.Time `json:"compression_date"`
	TokensUsed         int       `json:"tokens_used"`
}

// MemoryContext is the summary view handed to prompt assembly.
type MemoryContext struct {
	Summary    string `json:"summary"`
	AgeHours   int    `json:"age_hours"`
	HasSummary bool   `json:"has_summary"`
}
