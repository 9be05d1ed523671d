package digest_usecase

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/Yaz-U/ai-news-daily/domain"
	"github.com/Yaz-U/ai-news-daily/metrics"
	"github.com/Yaz-U/ai-news-daily/port/llm_port"
	apperrors "github.com/Yaz-U/ai-news-daily/utils/errors"
)

// Decision tells the orchestrator what to do after a failed attempt.
type Decision int

const (
	// Stop abandons the remaining candidates.
	Stop Decision = iota
	// Next moves the cursor to the following candidate.
	Next
)

// FailureClassifier maps an attempt error to a Decision.
type FailureClassifier func(err error) Decision

// ClassifyFailure advances on quota signatures only. A malformed reply stops
// even if its text mentions a quota.
func ClassifyFailure(err error) Decision {
	if apperrors.IsMalformedResponse(err) {
		return Stop
	}
	if apperrors.IsQuotaError(err) {
		return Next
	}
	return Stop
}

// ParseFunc turns a raw completion into a validated result.
type ParseFunc[T any] func(raw string) (T, error)

// Orchestrator walks an ordered candidate list against one generator and
// falls back to a deterministic value when the walk produces nothing.
type Orchestrator[T any] struct {
	stage      string
	generator  llm_port.GeneratorPort
	candidates []string
	parse      ParseFunc[T]
	classify   FailureClassifier
	metrics    *metrics.Collector
	logger     *slog.Logger
}

// NewOrchestrator creates an orchestrator. A nil generator means no backend
// is configured and every Run returns the fallback.
func NewOrchestrator[T any](
	stage string,
	generator llm_port.GeneratorPort,
	candidates []string,
	parse ParseFunc[T],
	classify FailureClassifier,
	collector *metrics.Collector,
	logger *slog.Logger,
) *Orchestrator[T] {
	if classify == nil {
		classify = ClassifyFailure
	}
	return &Orchestrator[T]{
		stage:      stage,
		generator:  generator,
		candidates: candidates,
		parse:      parse,
		classify:   classify,
		metrics:    collector,
		logger:     logger.With("stage", stage),
	}
}

// Run tries each candidate once, in order. It never returns an error.
func (o *Orchestrator[T]) Run(ctx context.Context, prompt string, fallback func() T) (T, domain.GenerationInfo) {
	info := domain.GenerationInfo{}

	if o.generator == nil || len(o.candidates) == 0 {
		o.logger.InfoContext(ctx, "completion backend not configured, using fallback")
		info.Fallback = true
		info.Reason = domain.ErrBackendUnconfigured.Error()
		o.metrics.RecordFallback(o.stage)
		return fallback(), info
	}

	var lastErr error
	for cursor := 0; cursor < len(o.candidates); cursor++ {
		model := o.candidates[cursor]
		info.Attempts++

		result, err := o.attempt(ctx, model, prompt)
		if err == nil {
			o.metrics.RecordBackendAttempt(o.stage, model, metrics.OutcomeSuccess)
			o.logger.InfoContext(ctx, "completion succeeded",
				"backend", o.generator.Name(),
				"model", model,
				"attempts", info.Attempts)
			info.Model = model
			return result, info
		}
		lastErr = err

		if o.classify(err) == Next {
			o.metrics.RecordBackendAttempt(o.stage, model, metrics.OutcomeQuota)
			o.logger.WarnContext(ctx, "candidate rate limited, trying next",
				"model", model,
				"error", err)
			continue
		}

		outcome := metrics.OutcomeError
		if apperrors.IsMalformedResponse(err) {
			outcome = metrics.OutcomeMalformed
		}
		o.metrics.RecordBackendAttempt(o.stage, model, outcome)
		o.logger.ErrorContext(ctx, "completion failed, abandoning remaining candidates",
			"model", model,
			"error", err)
		break
	}

	info.Fallback = true
	if info.Attempts == len(o.candidates) && o.classify(lastErr) == Next {
		info.Reason = fmt.Sprintf("all %d candidates rate limited: %v", len(o.candidates), lastErr)
	} else {
		info.Reason = lastErr.Error()
	}
	o.metrics.RecordFallback(o.stage)
	o.logger.WarnContext(ctx, "using fallback result", "reason", info.Reason)

	return fallback(), info
}

func (o *Orchestrator[T]) attempt(ctx context.Context, model, prompt string) (T, error) {
	var zero T
	raw, err := o.generator.Generate(ctx, model, prompt)
	if err != nil {
		return zero, err
	}
	return o.parse(raw)
}
