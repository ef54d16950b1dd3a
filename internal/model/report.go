package model

// AgentResult holds the raw output of one agent. Only the fields relevant
// to the producing agent are populated; the coordinator folds them into
// the report's improvement list.
type AgentResult struct {
	Agent string `json:"agent"`

	// Grammar
	Corrections []Correction `json:"corrections,omitempty"`
	Confidence  float64      `json:"confidence,omitempty"`

	// Style
	Suggestions      []StyleSuggestion `json:"improvements,omitempty"`
	ReadabilityScore float64           `json:"readability_score,omitempty"`

	// SEO
	Recommendations []SEORecommendation `json:"seo_recommendations,omitempty"`
	ClarityBalance  *ClarityBalance     `json:"clarity_balance,omitempty"`

	// Validator
	Validation *Validation `json:"validation,omitempty"`

	// Guidelines retrieved from the knowledge base for this agent
	Guidelines []Guideline `json:"kb_guidelines,omitempty"`
}

// FindingStatus classifies a validation finding
type FindingStatus string

const (
	FindingSuccess FindingStatus = "success"
	FindingWarning FindingStatus = "warning"
	FindingError   FindingStatus = "error"
)

// Finding is one entry in the validator's result sequence
type Finding struct {
	Type           string        `json:"type"`
	Status         FindingStatus `json:"status"`
	Message        string        `json:"message"`
	Recommendation string        `json:"recommendation"`
	Reference      string        `json:"reference,omitempty"`
}

// Validation is the validator's final quality assessment
type Validation struct {
	Findings     []Finding       `json:"validation_results"`
	QualityScore float64         `json:"quality_score"` // 0..1
	Compliance   map[string]bool `json:"compliance_check"`
}

// Report is the complete result of one coordinator run. Each run owns its
// report exclusively; nothing in it is shared across concurrent runs.
type Report struct {
	OriginalText string `json:"original_text"`

	Analysis     Analysis                `json:"analysis"`
	AgentResults map[string]*AgentResult `json:"agent_results"`

	CorrectedText string        `json:"corrected_text"`
	Improvements  []Improvement `json:"improvements"`
	Guidelines    []Guideline   `json:"knowledge_guidelines"`

	FinalValidation *Validation `json:"final_validation,omitempty"`

	// AgentErrors records agents whose analysis failed; the run continues
	// without their contribution
	AgentErrors map[string]string `json:"agent_errors,omitempty"`

	// Rewrite is the optional LLM rewrite. It is produced after the rule
	// pipeline and never affects the validation score.
	Rewrite *RewriteResult `json:"rewrite,omitempty"`
}

// RewriteImprovement describes one change the rewriter made
type RewriteImprovement struct {
	Type        string `json:"type"`
	Description string `json:"description"`
	Reason      string `json:"reason"`
}

// RewriteResult contains the optional LLM rewrite output
type RewriteResult struct {
	Enabled       bool                 `json:"enabled"`
	Provider      string               `json:"provider,omitempty"`
	Model         string               `json:"model,omitempty"`
	RewrittenText string               `json:"rewritten_text,omitempty"`
	Improvements  []RewriteImprovement `json:"improvements,omitempty"`
	Warnings      []string             `json:"warnings,omitempty"`
}
