package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/textutil"
)

const (
	titleMaxWords    = 10 // first sentence longer than this gets flagged
	keywordMinRunes  = 4  // only longer words count as keywords
	keywordMaxRepeat = 3  // repetitions above this get flagged
)

// SEO checks search optimization concerns for web texts while preserving
// clarity. The coordinator only runs it when the analyzer classified the
// text as web.
type SEO struct{}

// NewSEO creates the SEO agent
func NewSEO() *SEO {
	return &SEO{}
}

// Name returns the agent name
func (s *SEO) Name() string { return model.AgentSEO }

// Capabilities returns what the SEO agent checks
func (s *SEO) Capabilities() []string {
	return []string{
		"keyword_optimization",
		"meta_description_review",
		"clarity_seo_balance",
		"search_intent_preservation",
	}
}

// Analyze reviews title length and keyword repetition
func (s *SEO) Analyze(ctx context.Context, text string, actx *Context) (*model.AgentResult, error) {
	balance := clarityBalance(text)
	return &model.AgentResult{
		Agent:           model.AgentSEO,
		Recommendations: seoRecommendations(text),
		ClarityBalance:  &balance,
		Guidelines:      fetchGuidelines(ctx, actx, text, model.AgentSEO, []string{"seo"}, 2),
	}, nil
}

func seoRecommendations(text string) []model.SEORecommendation {
	var recommendations []model.SEORecommendation

	// The first sentence stands in for the title
	firstSentence := text
	if idx := strings.Index(text, "."); idx >= 0 {
		firstSentence = text[:idx]
	}
	if textutil.WordCount(firstSentence) > titleMaxWords {
		recommendations = append(recommendations, model.SEORecommendation{
			Type:           "seo",
			Element:        "title",
			Recommendation: "Considerar acortar el título para SEO (máximo 60 caracteres)",
			Reason:         "Los títulos largos pueden cortarse en resultados de búsqueda",
			Reference:      "Escritura en internet - Optimización para buscadores",
		})
	}

	if repeated := repeatedKeywords(text); len(repeated) > 0 {
		recommendations = append(recommendations, model.SEORecommendation{
			Type:           "seo",
			Element:        "keywords",
			Recommendation: fmt.Sprintf("Palabras repetidas frecuentemente: %s", strings.Join(repeated, ", ")),
			Reason:         "Equilibrar densidad de palabras clave con variedad de vocabulario",
			Reference:      "Balance SEO-claridad",
		})
	}

	return recommendations
}

// repeatedKeywords returns up to 3 over-repeated words in first-occurrence
// order, which keeps the recommendation text deterministic
func repeatedKeywords(text string) []string {
	freq := make(map[string]int)
	var order []string

	for _, word := range strings.Fields(strings.ToLower(text)) {
		if len([]rune(word)) <= keywordMinRunes {
			continue
		}
		if _, seen := freq[word]; !seen {
			order = append(order, word)
		}
		freq[word]++
	}

	var repeated []string
	for _, word := range order {
		if freq[word] > keywordMaxRepeat {
			repeated = append(repeated, word)
			if len(repeated) == 3 {
				break
			}
		}
	}
	return repeated
}

// clarityBalance computes the clarity score from sentence length. The SEO
// and balance scores are fixed placeholders until a real metric replaces
// them.
func clarityBalance(text string) model.ClarityBalance {
	avg := textutil.AvgSentenceWords(text)

	clarity := 1 - (avg-15)/30
	if clarity < 0 {
		clarity = 0
	}

	return model.ClarityBalance{
		SEOScore:     0.7,
		ClarityScore: clarity,
		BalanceScore: 0.65,
	}
}
