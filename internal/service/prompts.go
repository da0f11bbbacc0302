package service

import (
	"bytes"
	"encoding/json"
	"fmt"
	"text/template"
)

type promptData struct {
	Language string
	Code     string
	Bugs     string
}

var (
	analyzePrompt = template.Must(template.New("analyze").Parse(`
You are an expert code review agent. Analyze the following {{.Language}} code DEEPLY.

Find ALL bugs, vulnerabilities, performance issues, and code smell issues.

For EACH issue found, return a JSON object in this EXACT format:
[
  {
    "id": 1,
    "severity": "critical" | "high" | "medium" | "low",
    "line": <line number>,
    "title": "Short title of the bug",
    "description": "Detailed explanation of what is wrong and WHY it is a problem",
    "original_code": "The exact buggy line or snippet",
    "fixed_code": "The corrected version of that line or snippet",
    "explanation": "Step by step explanation of how the fix works"
  }
]

Rules:
- Be thorough. Check for: syntax errors, logic errors, security vulnerabilities, performance issues, edge cases, null/undefined checks, input validation, memory leaks, race conditions.
- If code is clean, return an empty array [].
- Return ONLY the JSON array. No extra text, no markdown backticks.

Code to analyze:
` + "```" + `{{.Language}}
{{.Code}}
` + "```" + `
`))

	fixPrompt = template.Must(template.New("fix").Parse(`
You are an expert code fixing agent. You have been given the following {{.Language}} code and a list of bugs found in it.

Fix ALL the bugs and return the COMPLETE corrected code.

Rules:
- Return ONLY the fixed code. No explanations, no markdown, no backticks.
- Keep all original comments and structure intact.
- Only change what is necessary to fix the bugs.
- Make sure the fixed code is 100% functional and clean.

Original Code:
` + "```" + `{{.Language}}
{{.Code}}
` + "```" + `

Bugs Found:
{{.Bugs}}

Return the fully fixed {{.Language}} code now:
`))

	generateTestsPrompt = template.Must(template.New("generate-tests").Parse(`
You are an expert test generation agent. Analyze the following {{.Language}} code and generate comprehensive test cases.

Generate tests that cover:
- Normal/happy path cases
- Edge cases (empty inputs, boundary values, null/None)
- Error cases (invalid inputs, exceptions)
- Security edge cases if applicable

Return a JSON object in this EXACT format:
{
  "test_code": "<the full runnable test code as a string>",
  "test_cases": [
    {
      "id": 1,
      "name": "Test case name",
      "description": "What this test checks",
      "category": "happy_path" | "edge_case" | "error_case" | "security",
      "expected": "What the expected outcome should be"
    }
  ]
}

Rules:
- For Python: use pytest style tests.
- For JavaScript: use plain describe/it style (no framework dependency).
- Return ONLY the JSON. No extra text, no markdown backticks.
- Make tests actually runnable against the provided code.

Code to test:
` + "```" + `{{.Language}}
{{.Code}}
` + "```" + `
`))

	verifyPrompt = template.Must(template.New("verify").Parse(`
You are a strict code verification agent. Re-analyze this {{.Language}} code one final time.

Check if there are ANY remaining bugs, issues, or vulnerabilities.

Return a JSON object:
{
  "is_clean": true | false,
  "remaining_issues": [
    {
      "severity": "critical" | "high" | "medium" | "low",
      "title": "Issue title",
      "description": "What is still wrong"
    }
  ],
  "quality_score": <number 0-100>,
  "summary": "A short 1-2 sentence summary of the code quality"
}

Return ONLY the JSON. No extra text.

Code to verify:
` + "```" + `{{.Language}}
{{.Code}}
` + "```" + `
`))
)

var promptTemplates = map[Operation]*template.Template{
	OperationAnalyze:       analyzePrompt,
	OperationFix:           fixPrompt,
	OperationGenerateTests: generateTestsPrompt,
	OperationVerify:        verifyPrompt,
}

func buildPrompt(op Operation, data promptData) (string, error) {
	tmpl, ok := promptTemplates[op]
	if !ok {
		return "", fmt.Errorf("no prompt for operation %q", op)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("rendering %s prompt: %w", op, err)
	}
	return buf.String(), nil
}

// formatBugs re-serializes the caller's bug list with two-space indentation.
// Anything that is not valid JSON is embedded as-is.
func formatBugs(bugs json.RawMessage) string {
	if len(bytes.TrimSpace(bugs)) == 0 {
		return "[]"
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, bugs, "", "  "); err != nil {
		return string(bugs)
	}
	return buf.String()
}
