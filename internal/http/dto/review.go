package dto

import (
	"encoding/json"

	"codeflow.app/relay/internal/service"
)

type CodeRequest struct {
	Code     string `json:"code"`
	Language string `json:"language"`
}

func (r CodeRequest) ToInput() service.CodeInput {
	return service.CodeInput{Code: r.Code, Language: r.Language}
}

type FixRequest struct {
	Code     string          `json:"code"`
	Language string          `json:"language"`
	Bugs     json.RawMessage `json:"bugs"`
}

func (r FixRequest) ToInput() service.FixInput {
	return service.FixInput{
		CodeInput: service.CodeInput{Code: r.Code, Language: r.Language},
		Bugs:      r.Bugs,
	}
}

type FixResponse struct {
	FixedCode string `json:"fixed_code"`
}

type ErrorResponse struct {
	Error string `json:"error"`
}
