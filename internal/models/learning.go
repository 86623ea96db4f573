// ABOUTME: Learning records and emergent behaviors for the adaptive loop
// ABOUTME: Records are append-only and read in rolling 7-day windows
package models

import "time"

// LearningRecord captures one scored interaction for emergence analysis.
type LearningRecord struct {
	ID                  string    `json:"id"`
	UserID              string    `json:"user_id"`
	MessagePattern      string    `json:"message_pattern"`
	MessageContext      string    `json:"message_context"`
	EmotionalIntensity  float64   `json:"emotional_intensity"`
	UrgencyLevel        int       `json:"urgency_level"`
	ResponseStyle       string    `json:"response_style"`
	SatisfactionScore   float64   `json:"satisfaction_score"`
	PersonalityUsed     string    `json:"personality_used"`
	AdaptiveTemperature float64   `json:"adaptive_temperature"`
	AdaptiveTokens      int       `json:"adaptive_tokens"`
	ComplexityScore     float64   `json:"complexity_score"`
	Timestamp           time.Time `json:"timestamp"`
}

// EmergentBehavior is a one-way flag unlocked by a statistical condition
// over recent learning records. Once discovered it is never revoked.
type EmergentBehavior struct {
	UserID       string    `json:"user_id"`
	BehaviorID   string    `json:"behavior_id"`
	BehaviorType string    `json:"behavior_type"`
	Description  string    `json:"description"`
	Confidence   float64   `json:"confidence"`
	DiscoveredAt time.Time `json:"discovered_at"`
}
