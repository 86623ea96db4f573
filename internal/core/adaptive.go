// ABOUTME: Adaptive generation settings, satisfaction scoring, reinforcement
// ABOUTME: Personality traits drift toward styles the user responds well to
package core

import (
	"math"
	"regexp"

	"github.com/rowan/keepsake/internal/models"
)

// Base values and bounds for adaptive generation settings.
const (
	baseTemperature = 0.9
	baseMaxTokens   = 300

	minTemperature = 0.3
	maxTemperature = 1.2
	minTokens      = 150
	maxTokens      = 500
)

// Reinforcement steps. Successful traits move up faster than failed traits
// move down; affected traits never decay below 0.3.
const (
	reinforceStep    = 0.05
	weakenStep       = 0.03
	intensityBoost   = 1.5
	satisfactionHigh = 0.7
	satisfactionLow  = 0.3
	traitFloor       = 0.3
)

// keywordWeight scores satisfaction evidence in the user's message.
type keywordWeight struct {
	re     *regexp.Regexp
	weight float64
}

var positiveSignals = []keywordWeight{
	{regexp.MustCompile(`(?i)good|great|perfect|right|correct|love|awesome|exactly|brilliant`), 0.3},
	{regexp.MustCompile(`(?i)thank you|thanks|appreciate|helpful|useful`), 0.25},
	{regexp.MustCompile(`(?i)funny|hilarious|made me laugh|lol|haha`), 0.2},
	{regexp.MustCompile(`(?i)smart|clever|intelligent|wise`), 0.25},
}

var negativeSignals = []keywordWeight{
	{regexp.MustCompile(`(?i)wrong|incorrect|not true|bad|terrible|lying|hallucin`), -0.4},
	{regexp.MustCompile(`(?i)stupid|dumb|useless|unhelpful`), -0.3},
	{regexp.MustCompile(`(?i)confused|confusing|unclear|doesn't make sense`), -0.2},
	{regexp.MustCompile(`(?i)boring|bland|generic`), -0.15},
}

var (
	warmTonePattern   = regexp.MustCompile(`(?i)love|care|support|understand`)
	casualTonePattern = regexp.MustCompile(`(?i)😊|😄|lol|haha`)
)

// styleCheck detects the register of a generated response. Checks run in
// order and the last match wins.
type styleCheck struct {
	name string
	re   *regexp.Regexp
}

var styleChecks = []styleCheck{
	{models.StyleEnthusiastic, regexp.MustCompile(`😊|😄|🔥|💪|hell yeah|damn right`)},
	{models.StyleAffectionate, regexp.MustCompile(`girl|love|babe|hun`)},
	{models.StyleUncertain, regexp.MustCompile(`🤔|hmm|drawing a blank|don't know`)},
	{models.StyleCasualSwearing, regexp.MustCompile(`shit|damn|wtf|ugh`)},
	{models.StylePlayfulTeasing, regexp.MustCompile(`roast|tease|sarcastic`)},
}

// DeriveSettings computes the generation parameters for a classified message
// under the current personality profile. Output is always within
// [0.3, 1.2] temperature and [150, 500] tokens.
func DeriveSettings(pattern models.MessagePattern, profile models.PersonalityProfile) models.GenerationSettings {
	temperature := baseTemperature
	tokens := float64(baseMaxTokens)

	switch pattern.Type {
	case models.TypeEmotional:
		temperature = 0.8 + profile.Empathy*0.2
		tokens = math.Min(450, baseMaxTokens*1.5)
	case models.TypeTechnical:
		temperature = 0.4
		tokens = math.Min(400, baseMaxTokens*1.3)
	case models.TypeUrgent:
		temperature = 0.6
		tokens = math.Min(250, baseMaxTokens*0.8)
	case models.TypeCasual:
		temperature = 1.0 + profile.Playfulness*0.2
		tokens = math.Min(200, baseMaxTokens*0.7)
	case models.TypeQuestion:
		temperature = 0.7
		tokens = math.Min(350, baseMaxTokens*1.2)
	case models.TypeMemoryTest:
		temperature = 0.3
		tokens = math.Min(200, baseMaxTokens*0.8)
	}

	if pattern.EmotionalIntensity > 1 {
		temperature += 0.1 * pattern.EmotionalIntensity
		tokens += 50 * pattern.EmotionalIntensity
	}

	if pattern.Complexity > 2 {
		tokens += math.Min(100, pattern.Complexity*25)
	}

	temperature += (profile.Sassiness - 0.5) * 0.2
	temperature += (profile.Humor - 0.5) * 0.15

	return models.GenerationSettings{
		Temperature: clampFloat(temperature, minTemperature, maxTemperature),
		MaxTokens:   clampInt(int(math.Round(tokens)), minTokens, maxTokens),
	}
}

// ScoreSatisfaction estimates how satisfied the user appears with the prior
// response, from keyword evidence in the user's own message plus length and
// register appropriateness for the message type. Clamped to [0, 1].
func ScoreSatisfaction(userMessage, response string, pattern models.MessagePattern) float64 {
	score := 0.5

	for _, sig := range positiveSignals {
		if sig.re.MatchString(userMessage) {
			score += sig.weight
		}
	}
	for _, sig := range negativeSignals {
		if sig.re.MatchString(userMessage) {
			score += sig.weight
		}
	}

	// Length appropriateness for the message type
	if pattern.Type == models.TypeUrgent && len(response) > 300 {
		score -= 0.1
	}
	if pattern.Type == models.TypeEmotional && len(response) < 100 {
		score -= 0.15
	}
	if pattern.Type == models.TypeCasual && len(response) > 200 {
		score -= 0.1
	}

	// Register match bonuses
	if pattern.Type == models.TypeEmotional && warmTonePattern.MatchString(response) {
		score += 0.15
	}
	if pattern.Type == models.TypeCasual && casualTonePattern.MatchString(response) {
		score += 0.1
	}

	return clampFloat(score, 0, 1)
}

// DetectResponseStyle classifies the register of a generated response.
func DetectResponseStyle(response string) string {
	style := models.StyleNeutral
	for _, check := range styleChecks {
		if check.re.MatchString(response) {
			style = check.name
		}
	}
	return style
}

// Reinforce nudges the traits associated with a successful response style
// upward, scaled when the message carried emotional intensity. Traits cap
// at 1.0.
func Reinforce(profile *models.PersonalityProfile, style string, pattern models.MessagePattern) {
	step := reinforceStep
	if pattern.EmotionalIntensity > 1 {
		step *= intensityBoost
	}

	switch style {
	case models.StyleEnthusiastic:
		profile.Playfulness = math.Min(1, profile.Playfulness+step)
		profile.Humor = math.Min(1, profile.Humor+step)
	case models.StyleAffectionate:
		profile.Empathy = math.Min(1, profile.Empathy+step)
		profile.Supportiveness = math.Min(1, profile.Supportiveness+step)
	case models.StyleCasualSwearing:
		if pattern.Context == models.ContextCasual {
			profile.Sassiness = math.Min(1, profile.Sassiness+reinforceStep)
		}
	case models.StylePlayfulTeasing:
		profile.Humor = math.Min(1, profile.Humor+step)
		profile.Sassiness = math.Min(1, profile.Sassiness+reinforceStep)
	}
}

// Weaken applies the smaller downward step to the narrow style/context
// combinations that correlate with failure. Affected traits floor at 0.3.
func Weaken(profile *models.PersonalityProfile, style string, pattern models.MessagePattern) {
	step := weakenStep
	if pattern.EmotionalIntensity > 1 {
		step *= intensityBoost
	}

	switch style {
	case models.StyleEnthusiastic:
		if pattern.Type == models.TypeEmotional || pattern.Type == models.TypeUrgent {
			profile.Playfulness = math.Max(traitFloor, profile.Playfulness-step)
		}
	case models.StyleCasualSwearing:
		if pattern.Context == models.ContextProfessional {
			profile.Sassiness = math.Max(traitFloor, profile.Sassiness-weakenStep)
		}
	}
}

func clampFloat(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
