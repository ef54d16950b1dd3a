package model

// Correction is a destructive substitution proposed by the grammar agent.
// Original must occur literally in the text it was matched against,
// otherwise the coordinator silently skips it.
type Correction struct {
	Type      string `json:"type"`                // correction category (e.g. "grammar")
	Original  string `json:"original"`            // exact substring to replace
	Corrected string `json:"corrected"`           // replacement text
	Reason    string `json:"reason"`              // human-readable explanation
	Reference string `json:"reference,omitempty"` // manual section backing the rule
}

// StyleSuggestion is a non-destructive improvement proposed by the style agent
type StyleSuggestion struct {
	Type      string `json:"type"`
	Original  string `json:"original"`  // the sentence that triggered the suggestion
	Suggested string `json:"suggested"` // suggested action, not applied automatically
	Reason    string `json:"reason"`
	Reference string `json:"reference,omitempty"`
}

// SEORecommendation is produced by the SEO agent for web-type texts
type SEORecommendation struct {
	Type           string `json:"type"`
	Element        string `json:"element"` // title, keywords, ...
	Recommendation string `json:"recommendation"`
	Reason         string `json:"reason"`
	Reference      string `json:"reference,omitempty"`
}

// ClarityBalance weighs search optimization against plain-language clarity
type ClarityBalance struct {
	SEOScore     float64 `json:"seo_score"`
	ClarityScore float64 `json:"clarity_score"`
	BalanceScore float64 `json:"balance_score"`
}

// Improvement is one user-visible entry in the report's improvement list.
// Exactly one of Change, Suggestion or Recommendation is set, depending on
// which agent produced it. The list is append-only across a run.
type Improvement struct {
	Agent          string `json:"agent"`
	Type           string `json:"type"`
	Change         string `json:"change,omitempty"`         // grammar: "original → corrected"
	Suggestion     string `json:"suggestion,omitempty"`     // style
	Recommendation string `json:"recommendation,omitempty"` // seo
	Reason         string `json:"reason"`
	Reference      string `json:"reference,omitempty"`
}

// Guideline is a snippet from the plain-language manual returned by the
// knowledge retrieval capability
type Guideline struct {
	Content     string  `json:"content"`
	Page        int     `json:"page"`
	Relevance   float64 `json:"relevance"` // 0..1
	SourceAgent string  `json:"source_agent,omitempty"`
}
