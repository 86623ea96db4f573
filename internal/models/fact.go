// ABOUTME: Fact represents a (subject, attribute, value) triple about the user
// ABOUTME: At most one active fact exists per (user_id, subject, attribute)
package models

import "time"

// Fact is a stored statement about the user with a confidence and active flag.
type Fact struct {
	ID         string    `json:"id"`
	UserID     string    `json:"user_id"`
	Subject    string    `json:"subject"`
	Attribute  string    `json:"attribute"`
	Value      string    `json:"value"`
	Confidence float64   `json:"confidence"`
	Category   string    `json:"category"`
	IsActive   bool      `json:"is_active"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// ScoredFact is a fact paired with its similarity to a query.
type ScoredFact struct {
	Fact       Fact    `json:"fact"`
	Similarity float64 `json:"similarity"`
}

// ExtractedFact is a triple proposed by the LLM extractor, before persistence.
type ExtractedFact struct {
	Subject   string `json:"subject"`
	Attribute string `json:"attribute"`
	Value     string `json:"value"`
}

// Correction reports the outcome of a fact correction.
type Correction struct {
	Subject   string `json:"subject"`
	Attribute string `json:"attribute"`
	OldValue  string `json:"old_value"`
	NewValue  string `json:"new_value"`
}
