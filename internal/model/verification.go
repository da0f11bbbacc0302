package model

// RemainingIssue is the reduced Issue reported by a verification pass.
type RemainingIssue struct {
	Severity    Severity `json:"severity" jsonschema:"enum=critical,enum=high,enum=medium,enum=low"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
}

// VerificationResult is the shape requested from the model for verify.
type VerificationResult struct {
	IsClean         bool             `json:"is_clean"`
	RemainingIssues []RemainingIssue `json:"remaining_issues"`
	QualityScore    int              `json:"quality_score" jsonschema:"minimum=0,maximum=100"`
	Summary         string           `json:"summary"`
}
