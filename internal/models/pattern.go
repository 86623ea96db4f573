// ABOUTME: Message pattern classification and adaptive generation settings
// ABOUTME: Pattern types, contexts, and response styles are fixed vocabularies
package models

// Message pattern types produced by the classifier.
const (
	TypeGeneral          = "general"
	TypeQuestion         = "question"
	TypeEmotional        = "emotional"
	TypeMemoryTest       = "memory_test"
	TypeCorrection       = "correction"
	TypePositiveFeedback = "positive_feedback"
	TypeNegativeFeedback = "negative_feedback"
	TypeUrgent           = "urgent"
	TypeCasual           = "casual"
	TypeTechnical        = "technical"
	TypePersonal         = "personal"
)

// Message contexts, chosen independently of the type.
const (
	ContextCasual         = "casual"
	ContextPersonal       = "personal"
	ContextProfessional   = "professional"
	ContextSupportSeeking = "support_seeking"
	ContextCreative       = "creative"
	ContextTechnical      = "technical"
)

// Response styles detected on generated replies.
const (
	StyleNeutral        = "neutral"
	StyleEnthusiastic   = "enthusiastic"
	StyleAffectionate   = "affectionate"
	StyleUncertain      = "uncertain"
	StyleCasualSwearing = "casual_swearing"
	StylePlayfulTeasing = "playful_teasing"
)

// MessagePattern is the classifier's verdict for one inbound message.
type MessagePattern struct {
	Type               string  `json:"type"`
	Context            string  `json:"context"`
	Length             int     `json:"length"`
	Complexity         float64 `json:"complexity"`
	EmotionalIntensity float64 `json:"emotional_intensity"`
	Urgency            int     `json:"urgency"`
	Confidence         float64 `json:"confidence"`
	WordCount          int     `json:"word_count"`
}

// GenerationSettings are the adaptive parameters for the next completion.
type GenerationSettings struct {
	Temperature float64 `json:"temperature"`
	MaxTokens   int     `json:"max_tokens"`
}
