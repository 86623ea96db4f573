// ABOUTME: PersonalityProfile holds the five mutable traits in [0,1]
// ABOUTME: Volatile per session; resets to defaults on restart or memory reset
package models

import "encoding/json"

// PersonalityProfile is the adaptive trait vector. It is mutated only by the
// reinforcement and decay steps of the learning loop and is not persisted.
type PersonalityProfile struct {
	Sassiness      float64 `json:"sassiness"`
	Empathy        float64 `json:"empathy"`
	Humor          float64 `json:"humor"`
	Supportiveness float64 `json:"supportiveness"`
	Playfulness    float64 `json:"playfulness"`
}

// DefaultProfile returns the fixed starting traits.
func DefaultProfile() PersonalityProfile {
	return PersonalityProfile{
		Sassiness:      0.7,
		Empathy:        0.8,
		Humor:          0.6,
		Supportiveness: 0.9,
		Playfulness:    0.7,
	}
}

// Snapshot serializes the profile for storage in a learning record.
func (p PersonalityProfile) Snapshot() string {
	b, err := json.Marshal(p)
	if err != nil {
		return "{}"
	}
	return string(b)
}
