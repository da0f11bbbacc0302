package model

type TestCategory string

const (
	TestCategoryHappyPath TestCategory = "happy_path"
	TestCategoryEdgeCase  TestCategory = "edge_case"
	TestCategoryErrorCase TestCategory = "error_case"
	TestCategorySecurity  TestCategory = "security"
)

type TestCase struct {
	ID          int          `json:"id"`
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Category    TestCategory `json:"category" jsonschema:"enum=happy_path,enum=edge_case,enum=error_case,enum=security"`
	Expected    string       `json:"expected"`
}

// TestGenerationResult is the shape requested from the model for generate-tests.
type TestGenerationResult struct {
	TestCode  string     `json:"test_code"`
	TestCases []TestCase `json:"test_cases"`
}
