// Package llm provides the providers used for the optional LLM rewrite:
// OpenAI, Groq, Anthropic and Ollama.
package llm

import (
	"context"
	"fmt"
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/textutil"
)

// Provider defines the interface for LLM rewrite providers
type Provider interface {
	// Name returns the provider name
	Name() string

	// Rewrite rewrites text following plain language principles
	Rewrite(ctx context.Context, req RewriteRequest) (*RewriteResponse, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// RewriteRequest contains the input for an LLM rewrite
type RewriteRequest struct {
	// Text is the text to rewrite
	Text string

	// Issues are the problems the analyzer detected; they shape the prompt
	Issues []model.Issue

	// Prompt overrides the default prompt when non-empty
	Prompt string

	// Model is the specific model to use (provider-specific)
	Model string

	// MaxTokens limits the response length
	MaxTokens int
}

// RewriteResponse contains the rewrite output
type RewriteResponse struct {
	// Text is the rewritten text
	Text string

	// Model is the model that generated the response
	Model string

	// TokensUsed tracks token consumption
	TokensUsed int
}

// Config holds LLM provider configuration
type Config struct {
	// Provider name: "openai", "groq", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Groq/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, in seconds
	Timeout int

	// MaxTokens for response generation
	MaxTokens int

	// Proxy settings
	HTTPProxy  string
	HTTPSProxy string
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1500,
	}
}

// rewriteSystemMessage frames every provider call
const rewriteSystemMessage = "Eres un experto en lenguaje claro que reescribe textos en español siguiendo el manual de estilo del lenguaje claro."

// BuildRewritePrompt constructs the rewrite prompt, adding emphasis for
// the issues detected during analysis
func BuildRewritePrompt(text string, issues []model.Issue) string {
	var b strings.Builder

	b.WriteString(`Eres un experto en lenguaje claro. Tu tarea es reescribir el siguiente texto aplicando los principios de lenguaje claro:

- Expresar una idea por oración
- Utilizar oraciones de treinta palabras o menos
- Evitar la jerga y tecnicismos
- Seguir el orden sujeto, verbo y predicado
- Utilizar una estructura lógica y coherente
- Usar voz activa cuando sea posible
- Elegir palabras simples y precisas

`)

	for _, issue := range issues {
		switch issue {
		case model.IssueLongSentence:
			b.WriteString("- IMPORTANTE: Dividir oraciones largas en oraciones más cortas\n")
		case model.IssueComplexVocabulary:
			b.WriteString("- IMPORTANTE: Simplificar términos técnicos y jerga\n")
		}
	}

	fmt.Fprintf(&b, `
Reescribe ÚNICAMENTE el texto mejorado, sin explicaciones adicionales.

TEXTO A REESCRIBIR:
%s

TEXTO REESCRITO:`, text)

	return b.String()
}

// rewriteMarkers are the labels models tend to prepend to their output
var rewriteMarkers = []string{"TEXTO REESCRITO:", "texto reescrito:", "REESCRITO:", "RESULTADO:"}

// ExtractRewrittenText pulls the rewritten text out of a model response,
// stripping markers and boilerplate lines the model may add
func ExtractRewrittenText(response string) string {
	for _, marker := range rewriteMarkers {
		if idx := strings.Index(response, marker); idx >= 0 {
			return strings.TrimSpace(response[idx+len(marker):])
		}
	}

	// No marker: keep every line that is not a header
	var clean []string
	for _, line := range strings.Split(strings.TrimSpace(response), "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		skip := false
		for _, header := range []string{"texto reescrito", "resultado", "versión mejorada", "aquí está"} {
			if strings.Contains(lower, header) {
				skip = true
				break
			}
		}
		if !skip {
			clean = append(clean, line)
		}
	}
	return strings.Join(clean, "\n")
}

// passiveIndicators used to estimate passive constructions before and
// after a rewrite
var passiveIndicators = []string{"fue", "fueron", "es", "son", "está siendo", "han sido"}

// IdentifyImprovements compares the original and rewritten text and
// describes the structural changes the rewrite made
func IdentifyImprovements(original, rewritten string) []model.RewriteImprovement {
	var improvements []model.RewriteImprovement

	origSentences := len(textutil.Sentences(original))
	newSentences := len(textutil.Sentences(rewritten))

	if newSentences > origSentences {
		improvements = append(improvements, model.RewriteImprovement{
			Type:        "structure",
			Description: fmt.Sprintf("Dividió el texto en más oraciones (%d → %d)", origSentences, newSentences),
			Reason:      "Mejora la claridad al expresar una idea por oración",
		})
	}

	if origSentences > 0 && newSentences > 0 {
		origAvg := float64(textutil.WordCount(original)) / float64(origSentences)
		newAvg := float64(textutil.WordCount(rewritten)) / float64(newSentences)

		if origAvg > 30 && newAvg <= 30 {
			improvements = append(improvements, model.RewriteImprovement{
				Type:        "sentence_length",
				Description: fmt.Sprintf("Redujo la longitud promedio de oraciones (%.1f → %.1f palabras)", origAvg, newAvg),
				Reason:      "Cumple con el límite recomendado de 30 palabras por oración",
			})
		}
	}

	origPassive := countPassiveIndicators(original)
	newPassive := countPassiveIndicators(rewritten)
	if origPassive > newPassive {
		improvements = append(improvements, model.RewriteImprovement{
			Type:        "voice",
			Description: "Convirtió construcciones pasivas a voz activa",
			Reason:      "La voz activa es más directa y clara",
		})
	}

	return improvements
}

func countPassiveIndicators(text string) int {
	lower := strings.ToLower(text)
	count := 0
	for _, indicator := range passiveIndicators {
		if strings.Contains(lower, indicator) {
			count++
		}
	}
	return count
}
