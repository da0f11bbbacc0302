package llm

import (
	"context"
	"log/slog"
	"time"

	"codeflow.app/relay/common/logger"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

type tracingGenerator struct {
	next     Generator
	provider string
}

// NewTracingGenerator wraps next so every call runs inside an "llm.generate" span
// and leaves a log line with its size and duration.
func NewTracingGenerator(next Generator, provider string) Generator {
	return &tracingGenerator{next: next, provider: provider}
}

func (g *tracingGenerator) Generate(ctx context.Context, prompt string) (string, error) {
	ctx = logger.WithLogFields(ctx, logger.LogFields{
		Provider:  logger.Ptr(g.provider),
		Component: "relay.llm",
	})

	sc := logger.StartSpan(ctx, "llm.generate",
		trace.WithSpanKind(trace.SpanKindClient),
		trace.WithAttributes(
			attribute.String("llm.provider", g.provider),
			attribute.String("llm.model", g.next.Model()),
			attribute.Int("llm.prompt_chars", len(prompt)),
		),
	)
	defer sc.End()
	ctx = sc.Context()

	start := time.Now()
	text, err := g.next.Generate(ctx, prompt)
	if err != nil {
		sc.RecordError(err)
		slog.WarnContext(ctx, "llm generate failed",
			"model", g.next.Model(),
			"duration_ms", time.Since(start).Milliseconds(),
			"error", err)
		return "", err
	}

	sc.Span().SetAttributes(attribute.Int("llm.response_chars", len(text)))
	slog.InfoContext(ctx, "llm generate completed",
		"model", g.next.Model(),
		"duration_ms", time.Since(start).Milliseconds(),
		"prompt_chars", len(prompt),
		"response_chars", len(text))

	return text, nil
}

func (g *tracingGenerator) Model() string {
	return g.next.Model()
}
