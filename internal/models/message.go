// ABOUTME: Message is a raw conversation message, append-only
// ABOUTME: Read by the compression scheduler and for memory stats
package models

import "time"

// Message is a single raw message in the conversation history.
type Message struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
