package agent

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
)

// Accent rules are gated on a following-word window so that articles and
// conjunctions are not flagged blindly. RE2's \b is ASCII-only, which breaks
// on accented verb forms like "está", so the boundaries are spelled out with
// \p{L} classes instead.
var (
	pronounElPattern = regexp.MustCompile(`(?:^|[^\p{L}])el\s+(?:es|está|tiene|hace|dice|va|fue|será|puede|debe)(?:[^\p{L}]|$)`)

	accentRules = []accentRule{
		{
			original:  "mas",
			corrected: "más",
			pattern:   regexp.MustCompile(`(?:^|[^\p{L}])mas\s+(?:que|de|bien|mal|o|menos)(?:[^\p{L}]|$)`),
		},
		{
			original:  "si",
			corrected: "sí",
			pattern:   regexp.MustCompile(`(?:^|[^\p{L}])si\s+(?:quiere|puede|es|está)(?:[^\p{L}]|$)`),
		},
		{
			original:  "tu",
			corrected: "tú",
			pattern:   regexp.MustCompile(`(?:^|[^\p{L}])tu\s+(?:eres|estás|tienes|haces|dices|vas)(?:[^\p{L}]|$)`),
		},
	}
)

type accentRule struct {
	original  string
	corrected string
	pattern   *regexp.Regexp
}

// Grammar finds grammar problems and proposes destructive corrections.
// Every rule is evaluated against the original input to this agent; rules
// do not compose within one invocation.
type Grammar struct{}

// NewGrammar creates the grammar agent
func NewGrammar() *Grammar {
	return &Grammar{}
}

// Name returns the agent name
func (g *Grammar) Name() string { return model.AgentGrammar }

// Capabilities returns what the grammar agent checks
func (g *Grammar) Capabilities() []string {
	return []string{
		"grammar_correction",
		"punctuation_fixing",
		"sentence_structure",
		"agreement_checking",
	}
}

// Analyze scans for grammar issues and attaches relevant manual guidelines
func (g *Grammar) Analyze(ctx context.Context, text string, actx *Context) (*model.AgentResult, error) {
	return &model.AgentResult{
		Agent:       model.AgentGrammar,
		Corrections: findCorrections(text),
		Confidence:  0.85,
		Guidelines:  fetchGuidelines(ctx, actx, text, model.AgentGrammar, []string{"grammar_error"}, 2),
	}, nil
}

// findCorrections applies the fixed rule set to the text
func findCorrections(text string) []model.Correction {
	var corrections []model.Correction
	lower := strings.ToLower(text)

	if strings.Contains(lower, "que que") {
		corrections = append(corrections, model.Correction{
			Type:      "grammar",
			Original:  "que que",
			Corrected: "que",
			Reason:    "Repetición innecesaria de 'que'",
			Reference: "Sección de conectores",
		})
	}

	// "el" is only suggested as "él" when followed by a verb, where it is
	// likely a pronoun
	if pronounElPattern.MatchString(lower) {
		corrections = append(corrections, model.Correction{
			Type:      "grammar",
			Original:  "el",
			Corrected: "él",
			Reason:    "Posible pronombre personal que requiere acento",
			Reference: "Sección de acentuación",
		})
	}

	for _, rule := range accentRules {
		if rule.pattern.MatchString(lower) {
			corrections = append(corrections, model.Correction{
				Type:      "grammar",
				Original:  rule.original,
				Corrected: rule.corrected,
				Reason:    fmt.Sprintf("Posible falta de acento en '%s' (contexto: pronombre/adverbio)", rule.original),
				Reference: "Sección de acentuación",
			})
		}
	}

	return corrections
}
