package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/textutil"
)

// passiveIndicators are matched as substrings of the lowercased sentence,
// matching the looseness of the original heuristic
var passiveIndicators = []string{"fue", "fueron", "es", "son", "está siendo", "han sido"}

// Style suggests clarity improvements. It never modifies the text; every
// finding is surfaced as a suggestion for the user.
type Style struct{}

// NewStyle creates the style agent
func NewStyle() *Style {
	return &Style{}
}

// Name returns the agent name
func (s *Style) Name() string { return model.AgentStyle }

// Capabilities returns what the style agent checks
func (s *Style) Capabilities() []string {
	return []string{
		"sentence_simplification",
		"jargon_removal",
		"flow_improvement",
		"readability_enhancement",
	}
}

// Analyze checks each sentence for length and passive voice, and scores
// overall readability
func (s *Style) Analyze(ctx context.Context, text string, actx *Context) (*model.AgentResult, error) {
	return &model.AgentResult{
		Agent:            model.AgentStyle,
		Suggestions:      findStyleIssues(text),
		ReadabilityScore: readabilityScore(text),
		Guidelines:       fetchGuidelines(ctx, actx, text, model.AgentStyle, styleIssueTags(text), 3),
	}, nil
}

// findStyleIssues checks every sentence independently. A sentence can
// trigger both the length and the passive-voice suggestion.
func findStyleIssues(text string) []model.StyleSuggestion {
	var suggestions []model.StyleSuggestion

	for _, sentence := range textutil.Sentences(text) {
		words := textutil.WordCount(sentence)

		if words > maxSentenceWords {
			suggestions = append(suggestions, model.StyleSuggestion{
				Type:      "style",
				Original:  sentence,
				Suggested: "[Dividir en oraciones más cortas]",
				Reason:    fmt.Sprintf("Oración muy larga (%d palabras). Máximo recomendado: %d palabras.", words, maxSentenceWords),
				Reference: "Principios de lenguaje claro - Una idea por oración",
			})
		}

		if containsPassiveIndicator(sentence) {
			suggestions = append(suggestions, model.StyleSuggestion{
				Type:      "style",
				Original:  sentence,
				Suggested: "[Convertir a voz activa]",
				Reason:    "Posible uso de voz pasiva. Preferir voz activa para mayor claridad.",
				Reference: "Estructura clara - Sujeto, verbo, predicado",
			})
		}
	}

	return suggestions
}

func containsPassiveIndicator(sentence string) bool {
	lower := strings.ToLower(sentence)
	for _, indicator := range passiveIndicators {
		if strings.Contains(lower, indicator) {
			return true
		}
	}
	return false
}

// styleIssueTags derives the issue tags for guideline retrieval from the
// whole text, not per sentence
func styleIssueTags(text string) []string {
	var issues []string

	for _, sentence := range strings.Split(text, ".") {
		if textutil.WordCount(sentence) > maxSentenceWords {
			issues = append(issues, "long_sentence")
			break
		}
	}

	lower := strings.ToLower(text)
	for _, indicator := range []string{"fue", "fueron", "es", "son"} {
		if strings.Contains(lower, indicator) {
			issues = append(issues, "passive_voice")
			break
		}
	}

	return issues
}

// readabilityScore is a step function of average words per sentence
func readabilityScore(text string) float64 {
	avg := textutil.AvgSentenceWords(text)
	switch {
	case avg == 0:
		return 0.0
	case avg <= 15:
		return 0.9
	case avg <= 25:
		return 0.7
	case avg <= 35:
		return 0.5
	default:
		return 0.3
	}
}
