package agent

import (
	"strings"

	"github.com/menpente/aclarador-clean/internal/model"
	"github.com/menpente/aclarador-clean/internal/textutil"
)

const (
	shortTextWords   = 50 // below this a text is "short"
	maxSentenceWords = 30 // plain-language sentence limit
	complexWordRunes = 12 // words longer than this count as jargon
)

// Analyzer classifies the input text and recommends which agents to run.
// It is a pure function of the text and always runs first.
type Analyzer struct{}

// NewAnalyzer creates an analyzer
func NewAnalyzer() *Analyzer {
	return &Analyzer{}
}

// Classify analyzes the text and produces the routing decision
func (a *Analyzer) Classify(text string) model.Analysis {
	issues := a.detectIssues(text)
	return model.Analysis{
		TextType:          a.classifyType(text),
		IssuesDetected:    issues,
		RecommendedAgents: a.recommendAgents(text, issues),
		SeverityLevel:     assessSeverity(issues),
	}
}

// Capabilities returns what the analyzer checks
func (a *Analyzer) Capabilities() []string {
	return []string{
		"text_classification",
		"issue_detection",
		"agent_routing",
		"severity_assessment",
	}
}

// classifyType determines the text type. The length check takes priority
// over the content markers.
func (a *Analyzer) classifyType(text string) model.TextType {
	if textutil.WordCount(text) < shortTextWords {
		return model.TextTypeShort
	}
	if strings.Contains(text, "SEO") || strings.Contains(text, "www.") {
		return model.TextTypeWeb
	}
	return model.TextTypeDocument
}

// detectIssues finds clarity problems. Each issue tag appears at most once
// regardless of how often it occurs.
func (a *Analyzer) detectIssues(text string) []model.Issue {
	var issues []model.Issue

	for _, sentence := range strings.Split(text, ".") {
		if textutil.WordCount(sentence) > maxSentenceWords {
			issues = append(issues, model.IssueLongSentence)
			break
		}
	}

	if textutil.LongestWordLen(text) > complexWordRunes {
		issues = append(issues, model.IssueComplexVocabulary)
	}

	return issues
}

// recommendAgents selects the default agent set for this text. Grammar
// always runs first and the validator always runs last.
func (a *Analyzer) recommendAgents(text string, issues []model.Issue) []string {
	agents := []string{model.AgentGrammar}

	for _, issue := range issues {
		if issue == model.IssueLongSentence || issue == model.IssueComplexVocabulary {
			agents = append(agents, model.AgentStyle)
			break
		}
	}

	if a.classifyType(text) == model.TextTypeWeb {
		agents = append(agents, model.AgentSEO)
	}

	agents = append(agents, model.AgentValidator)
	return agents
}

// assessSeverity maps issue count to a severity level
func assessSeverity(issues []model.Issue) model.Severity {
	switch {
	case len(issues) > 3:
		return model.SeverityHigh
	case len(issues) > 1:
		return model.SeverityMedium
	default:
		return model.SeverityLow
	}
}
