package plaintext

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/vbarbosa/email-triage/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

func (e *Extractor) Extract(_ context.Context, doc *domain.EmailDocument) (string, error) {
	if !utf8.Valid(doc.Data) {
		return "", domain.WrapError(domain.ErrDecode, "decode plain text", errors.New("payload is not valid UTF-8"))
	}

	text := string(doc.Data)
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrEmptyDocument, "decode plain text", errors.New("document contains no text"))
	}
	return text, nil
}
