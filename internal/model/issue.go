package model

import "encoding/json"

type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
)

// Issue is a single bug, vulnerability or smell reported by the model.
type Issue struct {
	ID           int      `json:"id"`
	Severity     Severity `json:"severity" jsonschema:"enum=critical,enum=high,enum=medium,enum=low"`
	Line         int      `json:"line"`
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	OriginalCode string   `json:"original_code"`
	FixedCode    string   `json:"fixed_code"`
	Explanation  string   `json:"explanation"`
}

// AnalysisResult is the relay's answer to an analyze call.
// Bugs holds the model's issue objects byte-for-byte; they are never decoded into Issue,
// so fields the model invents or mistypes reach the caller untouched.
type AnalysisResult struct {
	Bugs  []json.RawMessage `json:"bugs"`
	Total int               `json:"total"`
}

func NewAnalysisResult(bugs []json.RawMessage) *AnalysisResult {
	if bugs == nil {
		bugs = []json.RawMessage{}
	}
	return &AnalysisResult{Bugs: bugs, Total: len(bugs)}
}
