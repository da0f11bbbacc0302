package service

import "codeflow.app/relay/common/llm"

type Services struct {
	generator llm.Generator
}

func NewServices(generator llm.Generator) *Services {
	return &Services{generator: generator}
}

func (s *Services) Review() ReviewService {
	return NewReviewService(s.generator)
}
