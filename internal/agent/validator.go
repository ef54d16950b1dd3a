package agent

import (
	"context"
	"fmt"
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/textutil"
)

// Validator is the terminal agent. It runs over the corrected text after
// all other agents and produces the final quality assessment.
type Validator struct{}

// NewValidator creates the validator agent
func NewValidator() *Validator {
	return &Validator{}
}

// Name returns the agent name
func (v *Validator) Name() string { return model.AgentValidator }

// Capabilities returns what the validator checks
func (v *Validator) Capabilities() []string {
	return []string{
		"quality_assurance",
		"compliance_verification",
		"meaning_preservation",
		"final_review",
	}
}

// Analyze validates the processed text and scores its quality
func (v *Validator) Analyze(_ context.Context, text string, _ *Context) (*model.AgentResult, error) {
	return &model.AgentResult{
		Agent:      model.AgentValidator,
		Validation: Validate(text),
	}, nil
}

// Validate runs the full validation sequence over the text
func Validate(text string) *model.Validation {
	return &model.Validation{
		Findings:     findings(text),
		QualityScore: qualityScore(text),
		Compliance:   compliance(text),
	}
}

// findings appends at most one finding per check. Empty text is fatal and
// short-circuits the sequence; everything else still ends with a success
// finding.
func findings(text string) []model.Finding {
	var results []model.Finding

	if strings.TrimSpace(text) == "" {
		return append(results, model.Finding{
			Type:           "validation",
			Status:         model.FindingError,
			Message:        "Texto vacío después del procesamiento",
			Recommendation: "Revisar procesamiento de agentes anteriores",
		})
	}

	sentences := textutil.Sentences(text)
	if len(sentences) == 0 {
		results = append(results, model.Finding{
			Type:           "validation",
			Status:         model.FindingWarning,
			Message:        "No se detectaron oraciones completas",
			Recommendation: "Verificar puntuación y estructura",
		})
	}

	longCount := 0
	for _, s := range sentences {
		if textutil.WordCount(s) > maxSentenceWords {
			longCount++
		}
	}
	if longCount > 0 {
		results = append(results, model.Finding{
			Type:           "validation",
			Status:         model.FindingWarning,
			Message:        fmt.Sprintf("%d oraciones exceden %d palabras", longCount, maxSentenceWords),
			Recommendation: "Considerar división en oraciones más cortas",
			Reference:      "Principio de oraciones cortas",
		})
	}

	return append(results, model.Finding{
		Type:           "validation",
		Status:         model.FindingSuccess,
		Message:        "Texto validado correctamente",
		Recommendation: "Listo para presentar al usuario",
	})
}

// qualityScore averages a sentence-length score with a completeness score.
// The optimal band is 15-25 words per sentence.
func qualityScore(text string) float64 {
	sentences := textutil.Sentences(text)
	if len(sentences) == 0 {
		return 0.0
	}

	avg := textutil.AvgSentenceWords(text)

	var lengthScore float64
	switch {
	case avg >= 15 && avg <= 25:
		lengthScore = 1.0
	case (avg >= 10 && avg < 15) || (avg > 25 && avg <= 30):
		lengthScore = 0.8
	default:
		lengthScore = 0.6
	}

	completenessScore := 1.0
	for _, s := range sentences {
		if textutil.WordCount(s) <= 3 {
			completenessScore = 0.7
			break
		}
	}

	return (lengthScore + completenessScore) / 2
}

// compliance checks the plain-language principles individually
func compliance(text string) map[string]bool {
	sentences := textutil.Sentences(text)

	appropriateLength := true
	for _, s := range sentences {
		if textutil.WordCount(s) > maxSentenceWords {
			appropriateLength = false
			break
		}
	}

	return map[string]bool{
		"has_complete_sentences": len(sentences) > 0,
		"appropriate_length":     appropriateLength,
		"proper_punctuation":     strings.ContainsAny(text, ".!?"),
		"non_empty":              strings.TrimSpace(text) != "",
	}
}
