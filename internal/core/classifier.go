// ABOUTME: Deterministic message pattern classification
// ABOUTME: Ordered regex/weight tables pick one type and one context per message
package core

import (
	"regexp"
	"strings"

	"github.com/rowan/keepsake/internal/models"
)

// typePattern scores one message type; the strictly highest weight wins,
// first-seen winning ties.
type typePattern struct {
	name   string
	re     *regexp.Regexp
	weight float64
}

var typePatterns = []typePattern{
	{models.TypeQuestion, regexp.MustCompile(`(?i)\?|how|what|when|where|why|who|can you|do you|will you`), 1},
	{models.TypeEmotional, regexp.MustCompile(`(?i)feel|emotion|sad|happy|angry|stressed|love|hate|excited|worried`), 2},
	{models.TypeMemoryTest, regexp.MustCompile(`(?i)remember|recall|told|said|mentioned|before`), 1.5},
	{models.TypeCorrection, regexp.MustCompile(`(?i)wrong|incorrect|not true|lying|mistake|error`), 2},
	{models.TypePositiveFeedback, regexp.MustCompile(`(?i)good|great|perfect|love|awesome|amazing|excellent`), 1.5},
	{models.TypeNegativeFeedback, regexp.MustCompile(`(?i)bad|terrible|wrong|hate|awful|horrible`), 2},
	{models.TypeUrgent, regexp.MustCompile(`(?i)urgent|asap|immediately|emergency|help|crisis`), 3},
	{models.TypeCasual, regexp.MustCompile(`(?i)hey|hi|sup|lol|haha|btw|tbh`), 0.5},
	{models.TypeTechnical, regexp.MustCompile(`(?i)code|programming|software|bug|error|debug|api`), 1.5},
	{models.TypePersonal, regexp.MustCompile(`(?i)family|relationship|private|secret|personal`), 2},
}

// contextPattern is first-match-wins, independent of the type table.
type contextPattern struct {
	name string
	re   *regexp.Regexp
}

var contextPatterns = []contextPattern{
	{models.ContextPersonal, regexp.MustCompile(`(?i)personal|private|secret|family|relationship|intimate`)},
	{models.ContextProfessional, regexp.MustCompile(`(?i)work|job|school|study|business|career|meeting`)},
	{models.ContextSupportSeeking, regexp.MustCompile(`(?i)help|support|advice|problem|issue|stuck|confused`)},
	{models.ContextCreative, regexp.MustCompile(`(?i)idea|creative|design|art|music|writing|project`)},
	{models.ContextTechnical, regexp.MustCompile(`(?i)code|programming|software|computer|tech|digital`)},
}

var (
	questionMarkPattern      = regexp.MustCompile(`\?`)
	complexityEmotionalWords = regexp.MustCompile(`(?i)feel|emotion|sad|happy|angry|stressed|love|hate`)
	complexityTechnicalWords = regexp.MustCompile(`(?i)code|programming|software|api|database|algorithm`)
)

// Classify maps a message to exactly one type and one context. It is
// deterministic and total: every input yields the same pattern every time.
func Classify(message string) models.MessagePattern {
	pattern := models.MessagePattern{
		Type:       models.TypeGeneral,
		Context:    models.ContextCasual,
		Length:     len(message),
		Complexity: complexity(message),
		WordCount:  len(strings.Fields(message)),
	}

	maxWeight := 0.0
	for _, tp := range typePatterns {
		if tp.re.MatchString(message) && tp.weight > maxWeight {
			pattern.Type = tp.name
			maxWeight = tp.weight

			if tp.name == models.TypeEmotional || tp.name == models.TypeUrgent {
				pattern.EmotionalIntensity = tp.weight
			}
			if tp.name == models.TypeUrgent {
				pattern.Urgency = 3
			}
		}
	}
	pattern.Confidence = maxWeight

	for _, cp := range contextPatterns {
		if cp.re.MatchString(message) {
			pattern.Context = cp.name
			break
		}
	}

	return pattern
}

// complexity is word count scaled down plus question marks plus lexicon hits.
func complexity(message string) float64 {
	words := len(strings.Fields(message))
	questions := len(questionMarkPattern.FindAllString(message, -1))

	score := float64(words)/10 + float64(questions)
	if complexityEmotionalWords.MatchString(message) {
		score++
	}
	if complexityTechnicalWords.MatchString(message) {
		score++
	}

	return score
}
