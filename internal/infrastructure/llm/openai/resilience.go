package openai

import (
	"context"
	"errors"

	"github.com/vbarbosa/email-triage/internal/core/domain"
	"github.com/vbarbosa/email-triage/internal/infrastructure/resilience"
)

// classifyUpstreamError decides what the executor may retry (when retries are
// enabled) and what counts against the circuit breaker. Auth and protocol
// failures are caller or provider bugs, not upstream health signals.
func classifyUpstreamError(err error) resilience.ErrorClassification {
	switch {
	case err == nil:
		return resilience.ErrorClassification{}
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	case domain.IsKind(err, domain.ErrUpstreamAuth), domain.IsKind(err, domain.ErrUpstreamProtocol):
		return resilience.ErrorClassification{Retryable: false, RecordFailure: false}
	case domain.IsKind(err, domain.ErrUpstreamRateLimited), domain.IsKind(err, domain.ErrUpstreamUnavailable):
		return resilience.ErrorClassification{Retryable: true, RecordFailure: true}
	default:
		return resilience.ErrorClassification{Retryable: false, RecordFailure: true}
	}
}

// wrapCircuitOpen surfaces a tripped breaker as upstream unavailability so the
// transport mapping stays uniform for callers.
func wrapCircuitOpen(operation string, err error) error {
	if resilience.IsCircuitOpen(err) {
		return domain.WrapError(domain.ErrUpstreamUnavailable, operation, err)
	}
	return err
}
