package pipeline

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/yuin/goldmark"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/textutil"
)

// guidelineExcerptRunes limits how much of a manual guideline is shown
const guidelineExcerptRunes = 200

// FormatReport renders a report as the markdown document shown to the user.
// All user-facing text is Spanish, matching the language of the analyzed text.
func FormatReport(r *model.Report) string {
	var b strings.Builder

	b.WriteString("## TEXTO CORREGIDO\n\n")
	b.WriteString(r.CorrectedText)
	b.WriteString("\n\n")

	b.WriteString("## ANÁLISIS\n\n")
	fmt.Fprintf(&b, "- Tipo de texto: %s\n", r.Analysis.TextType)
	fmt.Fprintf(&b, "- Nivel de severidad: %s\n", r.Analysis.SeverityLevel)
	if len(r.Analysis.IssuesDetected) > 0 {
		issues := make([]string, len(r.Analysis.IssuesDetected))
		for i, issue := range r.Analysis.IssuesDetected {
			issues[i] = string(issue)
		}
		fmt.Fprintf(&b, "- Problemas detectados: %s\n", strings.Join(issues, ", "))
	} else {
		b.WriteString("- Problemas detectados: ninguno\n")
	}
	b.WriteString("\n")

	if len(r.Improvements) > 0 {
		b.WriteString("## MEJORAS APLICADAS\n\n")
		for i, imp := range r.Improvements {
			fmt.Fprintf(&b, "%d. **%s** (%s)\n", i+1, imp.Type, imp.Agent)
			if imp.Change != "" {
				fmt.Fprintf(&b, "   - Cambio: %s\n", imp.Change)
			}
			if imp.Suggestion != "" {
				fmt.Fprintf(&b, "   - Sugerencia: %s\n", imp.Suggestion)
			}
			if imp.Recommendation != "" {
				fmt.Fprintf(&b, "   - Recomendación: %s\n", imp.Recommendation)
			}
			if imp.Reason != "" {
				fmt.Fprintf(&b, "   - Razón: %s\n", imp.Reason)
			}
			if imp.Reference != "" {
				fmt.Fprintf(&b, "   - Referencia: %s\n", imp.Reference)
			}
		}
		b.WriteString("\n")
	}

	if len(r.Guidelines) > 0 {
		b.WriteString("## DIRECTRICES DEL MANUAL\n\n")
		for _, g := range r.Guidelines {
			excerpt := textutil.RunePrefix(g.Content, guidelineExcerptRunes)
			if excerpt != g.Content {
				excerpt += "..."
			}
			fmt.Fprintf(&b, "- Página %d (Relevancia: %.0f%%): %s\n", g.Page, g.Relevance*100, excerpt)
		}
		b.WriteString("\n")
	}

	if r.FinalValidation != nil {
		b.WriteString("## PUNTUACIÓN DE CALIDAD\n\n")
		fmt.Fprintf(&b, "Calidad del texto: %.0f%%\n", r.FinalValidation.QualityScore*100)
		for _, f := range r.FinalValidation.Findings {
			if f.Status == model.FindingSuccess {
				continue
			}
			fmt.Fprintf(&b, "- [%s] %s", f.Status, f.Message)
			if f.Recommendation != "" {
				fmt.Fprintf(&b, " (%s)", f.Recommendation)
			}
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	if r.Rewrite != nil && r.Rewrite.RewrittenText != "" {
		fmt.Fprintf(&b, "## TEXTO REESCRITO (%s)\n\n", r.Rewrite.Provider)
		b.WriteString(r.Rewrite.RewrittenText)
		b.WriteString("\n\n")
		for _, imp := range r.Rewrite.Improvements {
			fmt.Fprintf(&b, "- %s: %s\n", imp.Type, imp.Description)
		}
	}

	if len(r.AgentErrors) > 0 {
		b.WriteString("## ADVERTENCIAS\n\n")
		for _, name := range []string{model.AgentGrammar, model.AgentStyle, model.AgentSEO, model.AgentValidator} {
			if msg, ok := r.AgentErrors[name]; ok {
				fmt.Fprintf(&b, "- El agente %s falló: %s\n", name, msg)
			}
		}
	}

	return strings.TrimRight(b.String(), "\n") + "\n"
}

// RenderJSON serializes the full report
func RenderJSON(r *model.Report) ([]byte, error) {
	data, err := json.MarshalIndent(r, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("encoding report: %w", err)
	}
	return data, nil
}

// RenderHTML converts the markdown report into a standalone HTML fragment
func RenderHTML(r *model.Report) ([]byte, error) {
	var buf bytes.Buffer
	if err := goldmark.Convert([]byte(FormatReport(r)), &buf); err != nil {
		return nil, fmt.Errorf("rendering report: %w", err)
	}
	return buf.Bytes(), nil
}

var (
	summaryHeading = color.New(color.FgCyan, color.Bold)
	summaryGood    = color.New(color.FgGreen)
	summaryWarn    = color.New(color.FgYellow)
	summaryBad     = color.New(color.FgRed)
)

// RenderSummary writes a short colored summary for terminal use
func RenderSummary(w io.Writer, r *model.Report) {
	summaryHeading.Fprintln(w, "Resumen del análisis")
	fmt.Fprintf(w, "Tipo de texto: %s  Severidad: %s\n", r.Analysis.TextType, r.Analysis.SeverityLevel)
	fmt.Fprintf(w, "Mejoras aplicadas: %d  Directrices: %d\n", len(r.Improvements), len(r.Guidelines))

	if r.FinalValidation != nil {
		score := r.FinalValidation.QualityScore
		line := fmt.Sprintf("Calidad: %.0f%%", score*100)
		switch {
		case score >= 0.8:
			summaryGood.Fprintln(w, line)
		case score >= 0.6:
			summaryWarn.Fprintln(w, line)
		default:
			summaryBad.Fprintln(w, line)
		}
	}

	for name, msg := range r.AgentErrors {
		summaryBad.Fprintf(w, "Agente %s falló: %s\n", name, msg)
	}
}
