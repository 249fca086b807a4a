package ports

import (
	"context"

	"github.com/vbarbosa/email-triage/internal/core/domain"
)

type TextExtractor interface {
	Extract(ctx context.Context, doc *domain.EmailDocument) (string, error)
}

// Normalizer produces the reduced representation sent to the classifier
// alongside the original text. Implementations must be pure and total.
type Normalizer interface {
	Normalize(text string) string
}

type EmailClassifier interface {
	Classify(ctx context.Context, original, normalized string) (domain.Classification, error)
}

// ReplyGenerator drafts an automatic answer for a classified email. When the
// classification is inconclusive it returns a fixed sentinel message without
// calling the upstream service.
type ReplyGenerator interface {
	GenerateReply(ctx context.Context, original string, cls domain.Classification) (string, error)
}
