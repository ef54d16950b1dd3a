package llm

import (
	"strings"
	"testing"

	"github.com/menpente/aclarador-clean/internal/model"
)

func TestBuildRewritePrompt_BasePrinciples(t *testing.T) {
	prompt := BuildRewritePrompt("El texto original.", nil)

	for _, principle := range []string{
		"Expresar una idea por oración",
		"oraciones de treinta palabras o menos",
		"voz activa",
	} {
		if !strings.Contains(prompt, principle) {
			t.Errorf("Expected principle %q in prompt", principle)
		}
	}
	if !strings.Contains(prompt, "TEXTO A REESCRIBIR:\nEl texto original.") {
		t.Error("Expected input text after marker")
	}
	if !strings.HasSuffix(prompt, "TEXTO REESCRITO:") {
		t.Error("Expected prompt to end with output marker")
	}
	if strings.Contains(prompt, "IMPORTANTE") {
		t.Error("Expected no emphasis lines without detected issues")
	}
}

func TestBuildRewritePrompt_IssueEmphasis(t *testing.T) {
	prompt := BuildRewritePrompt("Texto.", []model.Issue{model.IssueLongSentence, model.IssueComplexVocabulary})

	if !strings.Contains(prompt, "IMPORTANTE: Dividir oraciones largas") {
		t.Error("Expected long sentence emphasis")
	}
	if !strings.Contains(prompt, "IMPORTANTE: Simplificar términos técnicos") {
		t.Error("Expected vocabulary emphasis")
	}
}

func TestExtractRewrittenText_WithMarker(t *testing.T) {
	response := "Claro, aquí tienes.\n\nTEXTO REESCRITO:\nEl texto mejorado."

	got := ExtractRewrittenText(response)
	if got != "El texto mejorado." {
		t.Errorf("Expected text after marker, got %q", got)
	}
}

func TestExtractRewrittenText_LowercaseMarker(t *testing.T) {
	got := ExtractRewrittenText("texto reescrito: La versión nueva.")
	if got != "La versión nueva." {
		t.Errorf("Expected text after lowercase marker, got %q", got)
	}
}

func TestExtractRewrittenText_NoMarker(t *testing.T) {
	response := "Aquí está la versión mejorada:\nEl texto limpio.\nSegunda oración."

	got := ExtractRewrittenText(response)
	if got != "El texto limpio.\nSegunda oración." {
		t.Errorf("Expected boilerplate stripped, got %q", got)
	}
}

func TestIdentifyImprovements_SentenceSplit(t *testing.T) {
	original := "Una oración."
	rewritten := "Una oración. Otra oración."

	improvements := IdentifyImprovements(original, rewritten)
	found := false
	for _, imp := range improvements {
		if imp.Type == "structure" {
			found = true
			if !strings.Contains(imp.Description, "1 → 2") {
				t.Errorf("Expected sentence counts in description, got %q", imp.Description)
			}
		}
	}
	if !found {
		t.Error("Expected structure improvement when sentences increase")
	}
}

func TestIdentifyImprovements_SentenceLength(t *testing.T) {
	// One 35-word sentence rewritten as two short ones
	original := strings.TrimSpace(strings.Repeat("palabra ", 35)) + "."
	rewritten := strings.TrimSpace(strings.Repeat("palabra ", 12)) + ". " +
		strings.TrimSpace(strings.Repeat("palabra ", 12)) + "."

	improvements := IdentifyImprovements(original, rewritten)
	found := false
	for _, imp := range improvements {
		if imp.Type == "sentence_length" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected sentence length improvement, got %v", improvements)
	}
}

func TestIdentifyImprovements_PassiveReduced(t *testing.T) {
	original := "El informe fue escrito. Los datos fueron analizados."
	rewritten := "El equipo escribió el informe. El equipo analizó los datos."

	improvements := IdentifyImprovements(original, rewritten)
	found := false
	for _, imp := range improvements {
		if imp.Type == "voice" {
			found = true
		}
	}
	if !found {
		t.Errorf("Expected voice improvement, got %v", improvements)
	}
}

func TestIdentifyImprovements_NoChanges(t *testing.T) {
	text := "El equipo escribió el informe."
	if improvements := IdentifyImprovements(text, text); len(improvements) != 0 {
		t.Errorf("Expected no improvements for identical text, got %v", improvements)
	}
}
