package service

import (
	"errors"
	"fmt"
)

// ErrEmptyCode is returned when an operation that needs code receives a blank snippet.
var ErrEmptyCode = errors.New("code is empty")

// parseFailureMessages are the fixed, caller-facing texts for unparseable model output.
var parseFailureMessages = map[Operation]string{
	OperationAnalyze:       "could not parse the model response, please try again",
	OperationGenerateTests: "could not parse the test generation response",
	OperationVerify:        "could not parse the verification response",
}

// ParseError reports model output that was not valid JSON for a JSON operation.
// Error returns the fixed message for the operation, never the model text.
type ParseError struct {
	Operation Operation
	Err       error
}

func (e *ParseError) Error() string {
	if msg, ok := parseFailureMessages[e.Operation]; ok {
		return msg
	}
	return "could not parse the model response"
}

func (e *ParseError) Unwrap() error {
	return e.Err
}

// ProviderError wraps a failed model call: network, credential and provider-side errors.
type ProviderError struct {
	Operation Operation
	Err       error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("%s: %v", e.Operation, e.Err)
}

func (e *ProviderError) Unwrap() error {
	return e.Err
}
