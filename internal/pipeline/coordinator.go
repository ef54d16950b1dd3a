// Package pipeline orchestrates the analysis agents over one input text and
// assembles their output into a single report.
package pipeline

import (
	"context"
	"fmt"
	"strings"

	"golang.org/x/sync/errgroup"

	"github.com/menpente/aclarador-clean/internal/agent"
	"github.com/menpente/aclarador-clean/internal/knowledge"
	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/textutil"
)

const maxGuidelines = 5

// guidelineOrder fixes the order in which agent guidelines are collected,
// matching the order the agents run
var guidelineOrder = []string{model.AgentGrammar, model.AgentStyle, model.AgentSEO}

// Coordinator routes text through the analysis agents. It owns no mutable
// state across runs; each Process call builds its own report, so one
// coordinator can serve concurrent runs.
type Coordinator struct {
	analyzer  *agent.Analyzer
	agents    map[string]agent.Agent
	retrieval knowledge.Retrieval
}

// NewCoordinator creates a coordinator with the standard agent set.
// retrieval may be nil, which disables guideline lookup.
func NewCoordinator(retrieval knowledge.Retrieval) *Coordinator {
	c := &Coordinator{
		analyzer:  agent.NewAnalyzer(),
		agents:    make(map[string]agent.Agent),
		retrieval: retrieval,
	}
	c.RegisterAgent(agent.NewGrammar())
	c.RegisterAgent(agent.NewStyle())
	c.RegisterAgent(agent.NewSEO())
	c.RegisterAgent(agent.NewValidator())
	return c
}

// RegisterAgent adds or replaces an agent under its own name
func (c *Coordinator) RegisterAgent(a agent.Agent) {
	c.agents[a.Name()] = a
}

// Process runs the pipeline over text. A nil selectedAgents uses the
// analyzer's recommendation; an explicitly empty selection runs only the
// analyzer and returns the text untouched.
func (c *Coordinator) Process(ctx context.Context, text string, selectedAgents []string) (*model.Report, error) {
	analysis := c.analyzer.Classify(text)

	agentsToUse := selectedAgents
	if agentsToUse == nil {
		agentsToUse = analysis.RecommendedAgents
	}

	report := &model.Report{
		OriginalText:  text,
		Analysis:      analysis,
		AgentResults:  make(map[string]*model.AgentResult),
		CorrectedText: text,
		Improvements:  []model.Improvement{},
		Guidelines:    []model.Guideline{},
	}

	actx := &agent.Context{
		Retrieval: c.retrieval,
		Analysis:  &report.Analysis,
	}

	active := func(name string) bool {
		for _, a := range agentsToUse {
			if a == name {
				return true
			}
		}
		return false
	}

	current := text

	if active(model.AgentGrammar) {
		result, err := c.runAgent(ctx, model.AgentGrammar, current, actx)
		if err != nil {
			c.recordFailure(report, model.AgentGrammar, err)
		} else {
			report.AgentResults[model.AgentGrammar] = result
			current = applyCorrections(report, current, result.Corrections)
		}
	}

	// Style and SEO both read the post-grammar text and are independent of
	// each other, so they run concurrently. Their outputs merge in fixed
	// order below, keeping the run deterministic.
	runStyle := active(model.AgentStyle)
	// SEO only applies to web texts; an explicit selection on other text
	// types is skipped silently rather than treated as an error.
	runSEO := active(model.AgentSEO) && analysis.TextType == model.TextTypeWeb

	var styleResult, seoResult *model.AgentResult
	var styleErr, seoErr error

	if runStyle || runSEO {
		g, gctx := errgroup.WithContext(ctx)
		snapshot := current
		if runStyle {
			g.Go(func() error {
				styleResult, styleErr = c.runAgent(gctx, model.AgentStyle, snapshot, actx)
				return nil
			})
		}
		if runSEO {
			g.Go(func() error {
				seoResult, seoErr = c.runAgent(gctx, model.AgentSEO, snapshot, actx)
				return nil
			})
		}
		_ = g.Wait()
	}

	if runStyle {
		if styleErr != nil {
			c.recordFailure(report, model.AgentStyle, styleErr)
		} else {
			report.AgentResults[model.AgentStyle] = styleResult
			for _, s := range styleResult.Suggestions {
				report.Improvements = append(report.Improvements, model.Improvement{
					Agent:      model.AgentStyle,
					Type:       s.Type,
					Suggestion: s.Suggested,
					Reason:     s.Reason,
					Reference:  s.Reference,
				})
			}
		}
	}

	if runSEO {
		if seoErr != nil {
			c.recordFailure(report, model.AgentSEO, seoErr)
		} else {
			report.AgentResults[model.AgentSEO] = seoResult
			for _, r := range seoResult.Recommendations {
				report.Improvements = append(report.Improvements, model.Improvement{
					Agent:          model.AgentSEO,
					Type:           r.Type,
					Recommendation: r.Recommendation,
					Reason:         r.Reason,
					Reference:      r.Reference,
				})
			}
		}
	}

	report.Guidelines = collectGuidelines(report.AgentResults)

	if active(model.AgentValidator) {
		vctx := &agent.Context{
			Retrieval: c.retrieval,
			Analysis:  &report.Analysis,
			Report:    report,
		}
		result, err := c.runAgent(ctx, model.AgentValidator, current, vctx)
		if err != nil {
			c.recordFailure(report, model.AgentValidator, err)
		} else {
			report.AgentResults[model.AgentValidator] = result
			report.FinalValidation = result.Validation
		}
	}

	report.CorrectedText = current
	return report, nil
}

// runAgent dispatches to a registered agent
func (c *Coordinator) runAgent(ctx context.Context, name string, text string, actx *agent.Context) (*model.AgentResult, error) {
	a, ok := c.agents[name]
	if !ok {
		return nil, fmt.Errorf("agent %q not registered", name)
	}
	return a.Analyze(ctx, text, actx)
}

// recordFailure notes a failed agent and lets the run continue. Only the
// failing agent's contribution is lost.
func (c *Coordinator) recordFailure(report *model.Report, name string, err error) {
	if report.AgentErrors == nil {
		report.AgentErrors = make(map[string]string)
	}
	report.AgentErrors[name] = err.Error()
}

// applyCorrections applies each correction in order against the mutating
// text. A correction whose original no longer occurs is skipped silently.
// First-match replacement keeps words containing the pattern intact.
func applyCorrections(report *model.Report, current string, corrections []model.Correction) string {
	for _, corr := range corrections {
		if !strings.Contains(current, corr.Original) {
			continue
		}
		current = strings.Replace(current, corr.Original, corr.Corrected, 1)
		report.Improvements = append(report.Improvements, model.Improvement{
			Agent:     model.AgentGrammar,
			Type:      corr.Type,
			Change:    corr.Original + " → " + corr.Corrected,
			Reason:    corr.Reason,
			Reference: corr.Reference,
		})
	}
	return current
}

// collectGuidelines gathers every agent's guidelines in execution order,
// stamps them with the source agent, drops duplicates by content prefix
// and caps the list
func collectGuidelines(results map[string]*model.AgentResult) []model.Guideline {
	seen := make(map[string]bool)
	unique := []model.Guideline{}

	for _, name := range guidelineOrder {
		result, ok := results[name]
		if !ok {
			continue
		}
		for _, g := range result.Guidelines {
			key := textutil.RunePrefix(g.Content, 100)
			if seen[key] {
				continue
			}
			seen[key] = true
			g.SourceAgent = name
			unique = append(unique, g)
		}
	}

	if len(unique) > maxGuidelines {
		unique = unique[:maxGuidelines]
	}
	return unique
}

// AvailableAgents lists the pipeline agents and what they do
func (c *Coordinator) AvailableAgents() map[string]string {
	return map[string]string{
		model.AgentAnalyzer:  "Analiza el texto y clasifica los problemas",
		model.AgentGrammar:   "Revisa y corrige errores gramaticales",
		model.AgentStyle:     "Sugiere mejoras de estilo para la claridad",
		model.AgentSEO:       "Optimiza para buscadores sin perder claridad",
		model.AgentValidator: "Realiza la validación final de calidad",
	}
}
