// Package agent contains the text analysis agents: analyzer, grammar,
// style, SEO and validator. Each agent implements the same capability
// interface and is orchestrated by the pipeline coordinator.
package agent

import (
	"context"
	"fmt"
	"os"

	"github.com/menpente/aclarador-clean/internal/knowledge"
	"github.com/menpente/aclarador-clean/internal/model"
)

// Agent is a single analysis unit in the pipeline
type Agent interface {
	// Name returns the agent name used for routing and attribution
	Name() string

	// Analyze examines text and returns the agent's findings. Agents never
	// modify the text; destructive corrections are applied by the
	// coordinator.
	Analyze(ctx context.Context, text string, actx *Context) (*model.AgentResult, error)

	// Capabilities returns a human-readable list of what the agent checks
	Capabilities() []string
}

// Context is the shared read-only context passed to every agent in a run
type Context struct {
	// Retrieval is the optional knowledge-base capability; nil disables
	// guideline lookup
	Retrieval knowledge.Retrieval

	// Analysis is the analyzer's classification of the original text
	Analysis *model.Analysis

	// Report is the bundle assembled so far; set only for the validator,
	// which runs last
	Report *model.Report
}

// fetchGuidelines queries the knowledge base for an agent, collapsing any
// failure to an empty list. Retrieval problems must never abort a run.
func fetchGuidelines(ctx context.Context, actx *Context, text, agentType string, issues []string, maxResults int) []model.Guideline {
	if actx == nil || actx.Retrieval == nil {
		return nil
	}

	guidelines, err := actx.Retrieval.RelevantGuidelines(ctx, text, agentType, issues, maxResults)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: retrieving %s guidelines: %v\n", agentType, err)
		return nil
	}
	return guidelines
}
