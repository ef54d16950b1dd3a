package pipeline

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"

	"github.com/menpente/aclarador-clean/internal/agent"
	"github.com/menpente/aclarador-clean/internal/model"
)

func TestCoordinator_AccentCorrectionScenario(t *testing.T) {
	c := NewCoordinator(nil)
	text := "El coche el es muy rápido. Esta oración es extremadamente larga y contiene más de treinta palabras porque queremos probar el límite exacto del sistema automático."

	report, err := c.Process(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// Grammar replaces the pronoun-like "el" before "es", first match only
	var grammarChanges []model.Improvement
	for _, imp := range report.Improvements {
		if imp.Agent == model.AgentGrammar {
			grammarChanges = append(grammarChanges, imp)
		}
	}
	if len(grammarChanges) != 1 {
		t.Fatalf("Expected 1 grammar improvement, got %d: %v", len(grammarChanges), grammarChanges)
	}
	if grammarChanges[0].Change != "el → él" {
		t.Errorf("Expected change 'el → él', got %q", grammarChanges[0].Change)
	}
	if !strings.Contains(report.CorrectedText, "él es") {
		t.Errorf("Expected corrected text to contain 'él es', got %q", report.CorrectedText)
	}
	// Words containing "el" stay intact
	if !strings.Contains(report.CorrectedText, "del sistema") {
		t.Errorf("Expected 'del sistema' untouched, got %q", report.CorrectedText)
	}

	// Style flags the passive indicator in both sentences
	styleCount := 0
	for _, imp := range report.Improvements {
		if imp.Agent == model.AgentStyle {
			styleCount++
		}
	}
	if styleCount != 2 {
		t.Errorf("Expected 2 style improvements, got %d", styleCount)
	}

	// Short text: SEO never ran
	if _, ok := report.AgentResults[model.AgentSEO]; ok {
		t.Error("Expected SEO to be skipped for non-web text")
	}

	// Validator ends with a success finding
	if report.FinalValidation == nil {
		t.Fatal("Expected final validation")
	}
	last := report.FinalValidation.Findings[len(report.FinalValidation.Findings)-1]
	if last.Status != model.FindingSuccess {
		t.Errorf("Expected terminal success finding, got %+v", last)
	}
}

func TestCoordinator_CorrectionIsIdempotent(t *testing.T) {
	c := NewCoordinator(nil)
	ctx := context.Background()
	text := "El coche el es muy rápido."

	first, err := c.Process(ctx, text, []string{model.AgentGrammar})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(first.Improvements) != 1 {
		t.Fatalf("Expected 1 applied correction, got %v", first.Improvements)
	}

	// Re-running grammar on the corrected text proposes nothing
	second, err := c.Process(ctx, first.CorrectedText, []string{model.AgentGrammar})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if len(second.Improvements) != 0 {
		t.Errorf("Expected no improvements on second pass, got %v", second.Improvements)
	}
	if second.CorrectedText != first.CorrectedText {
		t.Errorf("Expected stable text, got %q then %q", first.CorrectedText, second.CorrectedText)
	}
}

func TestCoordinator_Deterministic(t *testing.T) {
	c := NewCoordinator(nil)
	ctx := context.Background()
	text := "El informe fue redactado. " + strings.TrimSpace(strings.Repeat("palabra ", 31)) + "."

	first, err := c.Process(ctx, text, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	for i := 0; i < 5; i++ {
		again, err := c.Process(ctx, text, nil)
		if err != nil {
			t.Fatalf("Expected no error, got %v", err)
		}
		if again.CorrectedText != first.CorrectedText {
			t.Fatal("Expected identical corrected text across runs")
		}
		if !reflect.DeepEqual(again.Improvements, first.Improvements) {
			t.Fatal("Expected identical improvement ordering across runs")
		}
	}
}

func TestCoordinator_EmptySelectionRunsOnlyAnalyzer(t *testing.T) {
	c := NewCoordinator(nil)

	report, err := c.Process(context.Background(), "El coche el es muy rápido.", []string{})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.CorrectedText != report.OriginalText {
		t.Errorf("Expected untouched text, got %q", report.CorrectedText)
	}
	if len(report.Improvements) != 0 {
		t.Errorf("Expected no improvements, got %v", report.Improvements)
	}
	if report.FinalValidation != nil {
		t.Error("Expected no validation when validator is not selected")
	}
	if len(report.AgentResults) != 0 {
		t.Errorf("Expected no agent results, got %v", report.AgentResults)
	}
	// The analyzer itself is mandatory
	if report.Analysis.TextType == "" {
		t.Error("Expected analysis to be present")
	}
}

func TestCoordinator_SEOSkippedForNonWebEvenWhenSelected(t *testing.T) {
	c := NewCoordinator(nil)

	report, err := c.Process(context.Background(), "Texto corto sin marcadores web.", []string{model.AgentSEO, model.AgentValidator})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if _, ok := report.AgentResults[model.AgentSEO]; ok {
		t.Error("Expected SEO result to be absent for non-web text")
	}
	for _, imp := range report.Improvements {
		if imp.Agent == model.AgentSEO {
			t.Errorf("Expected no SEO improvements, got %v", imp)
		}
	}
	// Skipping is silent, not an error
	if len(report.AgentErrors) != 0 {
		t.Errorf("Expected no agent errors, got %v", report.AgentErrors)
	}
}

func TestCoordinator_SEORunsForWebText(t *testing.T) {
	c := NewCoordinator(nil)
	text := strings.Repeat("palabra rellena distinta ", 17) + "visita www.ejemplo.es ahora mismo para más detalles del SEO y sigue leyendo."

	report, err := c.Process(context.Background(), text, nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.Analysis.TextType != model.TextTypeWeb {
		t.Fatalf("Expected web text type, got %s", report.Analysis.TextType)
	}
	if _, ok := report.AgentResults[model.AgentSEO]; !ok {
		t.Fatal("Expected SEO to run for web text")
	}
}

func TestCoordinator_ValidatorShortCircuitOnWhitespace(t *testing.T) {
	c := NewCoordinator(nil)

	report, err := c.Process(context.Background(), "   ", []string{model.AgentValidator})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if report.FinalValidation == nil {
		t.Fatal("Expected final validation")
	}
	findings := report.FinalValidation.Findings
	if len(findings) != 1 || findings[0].Status != model.FindingError {
		t.Fatalf("Expected exactly one error finding, got %v", findings)
	}
}

// guidelineRetrieval serves canned guidelines per agent type
type guidelineRetrieval struct {
	byAgent map[string][]model.Guideline
}

func (g *guidelineRetrieval) RelevantGuidelines(_ context.Context, _, agentType string, _ []string, maxResults int) ([]model.Guideline, error) {
	guidelines := g.byAgent[agentType]
	if len(guidelines) > maxResults {
		guidelines = guidelines[:maxResults]
	}
	return guidelines, nil
}

func TestCoordinator_GuidelineDeduplication(t *testing.T) {
	shared := strings.Repeat("a", 100)
	retrieval := &guidelineRetrieval{byAgent: map[string][]model.Guideline{
		model.AgentGrammar: {
			{Content: shared + " desde gramática", Page: 1, Relevance: 0.9},
			{Content: "guía exclusiva de gramática", Page: 2, Relevance: 0.8},
		},
		model.AgentStyle: {
			// Same leading content as the grammar guideline: a duplicate
			{Content: shared + " desde estilo", Page: 3, Relevance: 0.7},
			{Content: "guía exclusiva de estilo", Page: 4, Relevance: 0.6},
		},
	}}

	c := NewCoordinator(retrieval)
	// "extremadamente" forces the style recommendation
	report, err := c.Process(context.Background(), "El texto el es extremadamente confuso.", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	if len(report.Guidelines) != 3 {
		t.Fatalf("Expected 3 deduplicated guidelines, got %d: %v", len(report.Guidelines), report.Guidelines)
	}

	// First occurrence wins: the shared-prefix guideline comes from grammar
	if report.Guidelines[0].Page != 1 || report.Guidelines[0].SourceAgent != model.AgentGrammar {
		t.Errorf("Expected grammar guideline to survive dedup, got %+v", report.Guidelines[0])
	}
	for _, g := range report.Guidelines {
		if g.Page == 3 {
			t.Error("Expected style duplicate to be dropped")
		}
		if g.SourceAgent == "" {
			t.Errorf("Expected source agent stamp, got %+v", g)
		}
	}
}

func TestCoordinator_GuidelinesCappedAtFive(t *testing.T) {
	byAgent := map[string][]model.Guideline{}
	for _, name := range []string{model.AgentGrammar, model.AgentStyle} {
		for i := 0; i < 4; i++ {
			byAgent[name] = append(byAgent[name], model.Guideline{
				Content: name + " guía " + strings.Repeat("x", i+1),
				Page:    i,
			})
		}
	}
	retrieval := &guidelineRetrieval{byAgent: byAgent}

	c := NewCoordinator(retrieval)
	report, err := c.Process(context.Background(), "El texto el es extremadamente confuso.", nil)
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}

	// grammar contributes 2 (its request cap), style 3 (its request cap)
	if len(report.Guidelines) > 5 {
		t.Errorf("Expected at most 5 guidelines, got %d", len(report.Guidelines))
	}
}

// brokenAgent always fails its analysis
type brokenAgent struct{ name string }

func (b *brokenAgent) Name() string { return b.name }
func (b *brokenAgent) Analyze(context.Context, string, *agent.Context) (*model.AgentResult, error) {
	return nil, errors.New("agent exploded")
}
func (b *brokenAgent) Capabilities() []string { return nil }

func TestCoordinator_FailingAgentDoesNotAbortRun(t *testing.T) {
	c := NewCoordinator(nil)
	c.RegisterAgent(&brokenAgent{name: model.AgentStyle})

	report, err := c.Process(context.Background(), "El coche el es muy rápido.",
		[]string{model.AgentGrammar, model.AgentStyle, model.AgentValidator})
	if err != nil {
		t.Fatalf("Expected run to continue past a failing agent, got %v", err)
	}

	if report.AgentErrors[model.AgentStyle] == "" {
		t.Error("Expected style failure to be recorded")
	}
	// Grammar still applied its correction and the validator still ran
	if !strings.Contains(report.CorrectedText, "él es") {
		t.Errorf("Expected grammar correction despite style failure, got %q", report.CorrectedText)
	}
	if report.FinalValidation == nil {
		t.Error("Expected validation despite style failure")
	}
}

func TestCoordinator_AvailableAgents(t *testing.T) {
	c := NewCoordinator(nil)

	agents := c.AvailableAgents()
	for _, name := range []string{model.AgentAnalyzer, model.AgentGrammar, model.AgentStyle, model.AgentSEO, model.AgentValidator} {
		if agents[name] == "" {
			t.Errorf("Expected description for %s", name)
		}
	}
}
