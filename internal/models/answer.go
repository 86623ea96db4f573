// ABOUTME: Answer is the reasoning engine's result for a question
// ABOUTME: A null answer carries confidence 0 and an explanatory message
package models

// Reasoning strategy names, recorded for audit but never shown to the user.
const (
	StrategyNone         = "none"
	StrategyDirectMatch  = "direct_match"
	StrategyRelationship = "relationship_inference"
	StrategyNarrative    = "narrative_reconstruction"
	StrategyAttributeMap = "attribute_mapping"
)

// Answer is a confidence-scored answer derived from stored facts.
// Found is false when no strategy produced a result.
type Answer struct {
	Answer     string  `json:"answer"`
	Found      bool    `json:"found"`
	Confidence float64 `json:"confidence"`
	Reasoning  string  `json:"reasoning"`
	FactsUsed  []Fact  `json:"facts_used"`
	Strategy   string  `json:"strategy"`
}
