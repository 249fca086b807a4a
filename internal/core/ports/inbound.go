package ports

import (
	"context"

	"github.com/vbarbosa/email-triage/internal/core/domain"
)

type EmailTriager interface {
	Triage(ctx context.Context, req domain.TriageRequest) (*domain.TriageResult, error)
}
