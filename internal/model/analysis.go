package model

// TextType classifies the input text for routing purposes
type TextType string

const (
	TextTypeShort    TextType = "short"    // fewer than 50 words
	TextTypeWeb      TextType = "web"      // mentions SEO or web addresses
	TextTypeDocument TextType = "document" // everything else
)

// Issue is a clarity problem detected during the initial analysis
type Issue string

const (
	IssueLongSentence      Issue = "long_sentence"      // a sentence exceeds 30 words
	IssueComplexVocabulary Issue = "complex_vocabulary" // a word exceeds 12 characters
)

// Severity indicates how much work the text needs
type Severity string

const (
	SeverityLow    Severity = "low"
	SeverityMedium Severity = "medium"
	SeverityHigh   Severity = "high"
)

// Agent names used for routing and result attribution
const (
	AgentAnalyzer  = "analyzer"
	AgentGrammar   = "grammar"
	AgentStyle     = "style"
	AgentSEO       = "seo"
	AgentValidator = "validator"
	AgentRewriter  = "rewriter"
)

// Analysis is the analyzer's classification of one input text.
// It is produced once per run and never mutated afterward.
type Analysis struct {
	TextType          TextType `json:"text_type"`
	IssuesDetected    []Issue  `json:"issues_detected"`
	RecommendedAgents []string `json:"recommended_agents"`
	SeverityLevel     Severity `json:"severity_level"`
}

// HasIssue reports whether the analysis detected the given issue
func (a *Analysis) HasIssue(issue Issue) bool {
	for _, i := range a.IssuesDetected {
		if i == issue {
			return true
		}
	}
	return false
}
