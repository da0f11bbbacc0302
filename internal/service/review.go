package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"strings"

	"codeflow.app/relay/common/llm"
	"codeflow.app/relay/common/logger"
	"codeflow.app/relay/internal/model"
)

type Operation string

const (
	OperationAnalyze       Operation = "analyze"
	OperationFix           Operation = "fix"
	OperationGenerateTests Operation = "generate-tests"
	OperationVerify        Operation = "verify"
)

const defaultLanguage = "python"

// CodeInput is the snippet every operation works on.
type CodeInput struct {
	Code     string
	Language string
}

// FixInput adds the issue list to fix. Bugs is opaque JSON forwarded into the prompt.
type FixInput struct {
	CodeInput
	Bugs json.RawMessage
}

type ReviewService interface {
	Analyze(ctx context.Context, in CodeInput) (*model.AnalysisResult, error)
	Fix(ctx context.Context, in FixInput) (string, error)
	GenerateTests(ctx context.Context, in CodeInput) (json.RawMessage, error)
	Verify(ctx context.Context, in CodeInput) (json.RawMessage, error)
}

type reviewService struct {
	generator llm.Generator
}

func NewReviewService(generator llm.Generator) ReviewService {
	return &reviewService{generator: generator}
}

func (s *reviewService) Analyze(ctx context.Context, in CodeInput) (*model.AnalysisResult, error) {
	ctx, in, err := s.prepare(ctx, OperationAnalyze, in, true)
	if err != nil {
		return nil, err
	}

	raw, err := s.dispatch(ctx, OperationAnalyze, promptData{Language: in.Language, Code: in.Code})
	if err != nil {
		return nil, err
	}

	bugs, err := parseIssueList(raw)
	if err != nil {
		return nil, s.parseFailure(ctx, OperationAnalyze, raw, err)
	}

	result := model.NewAnalysisResult(bugs)
	slog.InfoContext(ctx, "analysis completed", "total", result.Total)
	return result, nil
}

func (s *reviewService) Fix(ctx context.Context, in FixInput) (string, error) {
	ctx, code, err := s.prepare(ctx, OperationFix, in.CodeInput, true)
	if err != nil {
		return "", err
	}

	raw, err := s.dispatch(ctx, OperationFix, promptData{
		Language: code.Language,
		Code:     code.Code,
		Bugs:     formatBugs(in.Bugs),
	})
	if err != nil {
		return "", err
	}

	fixed := cleanCodeResponse(raw)
	slog.InfoContext(ctx, "fix completed", "fixed_code_chars", len(fixed))
	return fixed, nil
}

func (s *reviewService) GenerateTests(ctx context.Context, in CodeInput) (json.RawMessage, error) {
	return s.relayJSON(ctx, OperationGenerateTests, in, true)
}

// Verify does not reject blank code; the snippet is forwarded to the model as-is.
func (s *reviewService) Verify(ctx context.Context, in CodeInput) (json.RawMessage, error) {
	return s.relayJSON(ctx, OperationVerify, in, false)
}

func (s *reviewService) relayJSON(ctx context.Context, op Operation, in CodeInput, requireCode bool) (json.RawMessage, error) {
	ctx, in, err := s.prepare(ctx, op, in, requireCode)
	if err != nil {
		return nil, err
	}

	raw, err := s.dispatch(ctx, op, promptData{Language: in.Language, Code: in.Code})
	if err != nil {
		return nil, err
	}

	doc, err := parseJSONResponse(raw)
	if err != nil {
		return nil, s.parseFailure(ctx, op, raw, err)
	}

	slog.InfoContext(ctx, "operation completed", "response_bytes", len(doc))
	return doc, nil
}

// prepare applies the language default, enriches the log context and
// validates the snippet.
func (s *reviewService) prepare(ctx context.Context, op Operation, in CodeInput, requireCode bool) (context.Context, CodeInput, error) {
	if strings.TrimSpace(in.Language) == "" {
		in.Language = defaultLanguage
	}

	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Operation: logger.Ptr(string(op)),
		Language:  logger.Ptr(in.Language),
		Component: "relay.service.review",
	})

	if requireCode && strings.TrimSpace(in.Code) == "" {
		slog.InfoContext(ctx, "rejected empty code")
		return ctx, in, ErrEmptyCode
	}

	return ctx, in, nil
}

func (s *reviewService) dispatch(ctx context.Context, op Operation, data promptData) (string, error) {
	prompt, err := buildPrompt(op, data)
	if err != nil {
		return "", err
	}

	slog.DebugContext(ctx, "dispatching prompt", "prompt_chars", len(prompt), "code_chars", len(data.Code))

	raw, err := s.generator.Generate(ctx, prompt)
	if err != nil {
		slog.ErrorContext(ctx, "model call failed", "error", err)
		return "", &ProviderError{Operation: op, Err: err}
	}
	return raw, nil
}

func (s *reviewService) parseFailure(ctx context.Context, op Operation, raw string, err error) error {
	slog.ErrorContext(ctx, "model response is not valid JSON",
		"error", err,
		"response", logger.Truncate(raw, 500))
	return &ParseError{Operation: op, Err: err}
}
