// ABOUTME: Reasoning engine that turns relevant facts into a scored answer
// ABOUTME: Four fixed strategies run in order; the strictly most confident wins
package core

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/rowan/keepsake/internal/models"
)

// directMatchThreshold is the similarity above which the top fact's value is
// taken verbatim as the answer.
const directMatchThreshold = 0.9

var (
	whoIsPattern = regexp.MustCompile(`(?i)who is|tell me about`)
	whyPattern   = regexp.MustCompile(`(?i)why`)
	namePattern  = regexp.MustCompile(`(?i)name`)
)

// attributePattern maps question phrasings to a canonical fact attribute.
type attributePattern struct {
	re        *regexp.Regexp
	attribute string
}

var attributePatterns = []attributePattern{
	{regexp.MustCompile(`(?i)college|university|school|studied`), "school"},
	{regexp.MustCompile(`(?i)work|job|company`), "workplace"},
	{regexp.MustCompile(`(?i)eyes|eye color`), "eye_color"},
	{regexp.MustCompile(`(?i)drink|beverage`), "favorite_drink"},
	{regexp.MustCompile(`(?i)breakfast|morning|start.*day`), "breakfast"},
	{regexp.MustCompile(`(?i)name|called`), "name"},
}

// groupedFacts holds facts grouped by subject, with subjects kept in
// first-seen order so strategy output is deterministic.
type groupedFacts struct {
	subjects  []string
	bySubject map[string][]models.ScoredFact
}

// strategy inspects the question and relevant facts and either returns a
// scored answer or nil. Strategies are pure; they never touch storage.
type strategy func(question string, relevant []models.ScoredFact, grouped groupedFacts) *models.Answer

// Reasoner selects the most confident answer across the fixed strategies.
type Reasoner struct {
	strategies []strategy
}

// NewReasoner creates a Reasoner with the standard strategy order.
func NewReasoner() *Reasoner {
	return &Reasoner{
		strategies: []strategy{
			directMatch,
			relationshipInference,
			narrativeReconstruction,
			attributeMapping,
		},
	}
}

// Answer runs every strategy and keeps the result with the strictly greatest
// confidence; the first strategy to reach a confidence wins ties. With no
// result, a null answer with confidence 0 is returned. Answers are always
// traceable to stored facts; nothing is fabricated.
func (r *Reasoner) Answer(question string, relevant []models.ScoredFact) models.Answer {
	grouped := groupBySubject(relevant)

	var best *models.Answer
	highest := 0.0

	for _, s := range r.strategies {
		result := s(question, relevant, grouped)
		if result != nil && result.Confidence > highest {
			best = result
			highest = result.Confidence
		}
	}

	if best == nil {
		used := relevant
		if len(used) > 3 {
			used = used[:3]
		}
		return models.Answer{
			Found:      false,
			Confidence: 0,
			Reasoning:  "I found some related information but couldn't piece together a clear answer.",
			FactsUsed:  plainFacts(used),
			Strategy:   models.StrategyNone,
		}
	}

	return finalize(*best)
}

// finalize notes how many facts were combined when more than one was used.
func finalize(answer models.Answer) models.Answer {
	if len(answer.FactsUsed) > 1 {
		answer.Reasoning += fmt.Sprintf(" I connected %d pieces of information to figure this out.", len(answer.FactsUsed))
	}
	return answer
}

// directMatch answers with the single most similar fact's value when the
// similarity is very high.
func directMatch(_ string, relevant []models.ScoredFact, _ groupedFacts) *models.Answer {
	if len(relevant) == 0 {
		return nil
	}

	top := relevant[0]
	if top.Similarity <= directMatchThreshold {
		return nil
	}

	return &models.Answer{
		Answer:     top.Fact.Value,
		Found:      true,
		Confidence: top.Similarity,
		Reasoning: fmt.Sprintf("I remember you told me that %s %s is %s.",
			top.Fact.Subject, top.Fact.Attribute, top.Fact.Value),
		FactsUsed: []models.Fact{top.Fact},
		Strategy:  models.StrategyDirectMatch,
	}
}

// relationshipInference describes a subject from its connected facts for
// "who is" / "tell me about" questions.
func relationshipInference(question string, _ []models.ScoredFact, grouped groupedFacts) *models.Answer {
	if !whoIsPattern.MatchString(question) {
		return nil
	}

	for _, subject := range grouped.subjects {
		facts := grouped.bySubject[subject]
		if len(facts) < 2 {
			continue
		}

		pairs := make([]string, len(facts))
		for i, f := range facts {
			pairs[i] = fmt.Sprintf("%s: %s", f.Fact.Attribute, f.Fact.Value)
		}
		description := strings.Join(pairs, ", ")

		return &models.Answer{
			Answer:     description,
			Found:      true,
			Confidence: 0.85,
			Reasoning:  fmt.Sprintf("From what you've told me about %s: %s", subject, description),
			FactsUsed:  plainFacts(facts),
			Strategy:   models.StrategyRelationship,
		}
	}

	return nil
}

// narrativeReconstruction rebuilds a story from name/reason facts for
// questions asking why something is named as it is.
func narrativeReconstruction(question string, relevant []models.ScoredFact, _ groupedFacts) *models.Answer {
	if !whyPattern.MatchString(question) || !namePattern.MatchString(question) {
		return nil
	}

	var narrativeFacts []models.ScoredFact
	for _, f := range relevant {
		if strings.Contains(f.Fact.Attribute, "name") || strings.Contains(f.Fact.Attribute, "reason") {
			narrativeFacts = append(narrativeFacts, f)
		}
	}

	if len(narrativeFacts) == 0 {
		return nil
	}

	values := make([]string, len(narrativeFacts))
	for i, f := range narrativeFacts {
		values[i] = f.Fact.Value
	}
	narrative := strings.Join(values, " ")

	return &models.Answer{
		Answer:     narrative,
		Found:      true,
		Confidence: 0.9,
		Reasoning:  fmt.Sprintf("I remember the story you told me: %s", narrative),
		FactsUsed:  plainFacts(narrativeFacts),
		Strategy:   models.StrategyNarrative,
	}
}

// attributeMapping maps question phrasings to a canonical attribute and
// answers with the matching fact's value.
func attributeMapping(question string, relevant []models.ScoredFact, _ groupedFacts) *models.Answer {
	for _, p := range attributePatterns {
		if !p.re.MatchString(question) {
			continue
		}

		for _, f := range relevant {
			if f.Fact.Attribute != p.attribute {
				continue
			}

			readable := strings.ReplaceAll(p.attribute, "_", " ")
			return &models.Answer{
				Answer:     f.Fact.Value,
				Found:      true,
				Confidence: 0.8,
				Reasoning: fmt.Sprintf("Based on what you've told me, %s %s is %s.",
					f.Fact.Subject, readable, f.Fact.Value),
				FactsUsed: []models.Fact{f.Fact},
				Strategy:  models.StrategyAttributeMap,
			}
		}
	}

	return nil
}

// groupBySubject groups relevant facts by subject, preserving first-seen
// subject order.
func groupBySubject(facts []models.ScoredFact) groupedFacts {
	grouped := groupedFacts{bySubject: make(map[string][]models.ScoredFact)}

	for _, f := range facts {
		if _, seen := grouped.bySubject[f.Fact.Subject]; !seen {
			grouped.subjects = append(grouped.subjects, f.Fact.Subject)
		}
		grouped.bySubject[f.Fact.Subject] = append(grouped.bySubject[f.Fact.Subject], f)
	}

	return grouped
}

func plainFacts(scored []models.ScoredFact) []models.Fact {
	facts := make([]models.Fact, len(scored))
	for i, s := range scored {
		facts[i] = s.Fact
	}
	return facts
}
