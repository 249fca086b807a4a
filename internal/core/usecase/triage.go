package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/vbarbosa/email-triage/internal/core/domain"
	"github.com/vbarbosa/email-triage/internal/core/ports"
)

// Limits are the process-wide validation gates, read-only after startup.
type Limits struct {
	MaxFileSizeBytes int64
	MaxContentChars  int
	EchoDisplayChars int
}

func (l Limits) normalize() Limits {
	out := l
	if out.MaxFileSizeBytes <= 0 {
		out.MaxFileSizeBytes = 10 << 20
	}
	if out.MaxContentChars <= 0 {
		out.MaxContentChars = 10000
	}
	if out.EchoDisplayChars <= 0 {
		out.EchoDisplayChars = 500
	}
	return out
}

type TriageEmailUseCase struct {
	extractor  ports.TextExtractor
	normalizer ports.Normalizer
	classifier ports.EmailClassifier
	replier    ports.ReplyGenerator
	limits     Limits
}

func NewTriageEmailUseCase(
	extractor ports.TextExtractor,
	normalizer ports.Normalizer,
	classifier ports.EmailClassifier,
	replier ports.ReplyGenerator,
	limits Limits,
) *TriageEmailUseCase {
	return &TriageEmailUseCase{
		extractor:  extractor,
		normalizer: normalizer,
		classifier: classifier,
		replier:    replier,
		limits:     limits.normalize(),
	}
}

// Triage runs one email through extraction, validation, normalization,
// classification and reply generation. Any stage failure aborts the rest of
// the pipeline and surfaces as a typed error.
func (uc *TriageEmailUseCase) Triage(ctx context.Context, req domain.TriageRequest) (*domain.TriageResult, error) {
	text, err := uc.resolveContent(ctx, req)
	if err != nil {
		return nil, err
	}

	if err := uc.validateContent(text); err != nil {
		return nil, err
	}

	normalized := uc.normalizer.Normalize(text)

	classification, err := uc.classify(ctx, text, normalized)
	if err != nil {
		return nil, err
	}

	reply, err := uc.generateReply(ctx, text, classification)
	if err != nil {
		return nil, err
	}

	return &domain.TriageResult{
		Classification: classification,
		AutoReply:      reply,
		OriginalEmail:  truncateForDisplay(text, uc.limits.EchoDisplayChars),
		ProcessedText:  truncateForDisplay(normalized, uc.limits.EchoDisplayChars),
	}, nil
}

// resolveContent applies the input precedence rule: a non-empty text field
// wins over a file upload; the size gate runs before any decode attempt.
func (uc *TriageEmailUseCase) resolveContent(ctx context.Context, req domain.TriageRequest) (string, error) {
	if strings.TrimSpace(req.Text) != "" {
		return strings.TrimSpace(req.Text), nil
	}

	if req.File == nil {
		return "", domain.WrapError(domain.ErrNoContent, "resolve content", errors.New("neither text nor file present"))
	}

	if req.File.Size > uc.limits.MaxFileSizeBytes {
		return "", domain.WrapError(
			domain.ErrPayloadTooLarge,
			"validate upload",
			fmt.Errorf("file size %d exceeds limit %d", req.File.Size, uc.limits.MaxFileSizeBytes),
		)
	}

	text, err := uc.extractor.Extract(ctx, req.File)
	if err != nil {
		return "", fmt.Errorf("extract text: %w", err)
	}
	return strings.TrimSpace(text), nil
}

func (uc *TriageEmailUseCase) validateContent(text string) error {
	if text == "" {
		return domain.WrapError(domain.ErrEmptyContent, "validate content", errors.New("text is empty after trimming"))
	}
	if count := utf8.RuneCountInString(text); count > uc.limits.MaxContentChars {
		return domain.WrapError(
			domain.ErrContentTooLong,
			"validate content",
			fmt.Errorf("content length %d exceeds limit %d", count, uc.limits.MaxContentChars),
		)
	}
	return nil
}

func (uc *TriageEmailUseCase) classify(ctx context.Context, text, normalized string) (domain.Classification, error) {
	classification, err := uc.classifier.Classify(ctx, text, normalized)
	if err != nil {
		return "", fmt.Errorf("classify email: %w", err)
	}
	return classification, nil
}

func (uc *TriageEmailUseCase) generateReply(ctx context.Context, text string, cls domain.Classification) (string, error) {
	reply, err := uc.replier.GenerateReply(ctx, text, cls)
	if err != nil {
		return "", fmt.Errorf("generate reply: %w", err)
	}
	return reply, nil
}

// truncateForDisplay caps echoes in the response; it never affects what the
// classifier or the reply generator receive.
func truncateForDisplay(text string, maxChars int) string {
	if utf8.RuneCountInString(text) <= maxChars {
		return text
	}
	runes := []rune(text)
	return string(runes[:maxChars]) + "..."
}
