package extractor

import (
	"context"
	"fmt"

	"github.com/vbarbosa/email-triage/internal/core/domain"
	"github.com/vbarbosa/email-triage/internal/core/ports"
	"github.com/vbarbosa/email-triage/internal/infrastructure/extractor/pdftext"
	"github.com/vbarbosa/email-triage/internal/infrastructure/extractor/plaintext"
)

// Dispatcher routes an uploaded document to the extractor for its declared
// kind. Unrecognized extensions fail before any decode attempt.
type Dispatcher struct {
	plain ports.TextExtractor
	pdf   ports.TextExtractor
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{
		plain: plaintext.NewExtractor(),
		pdf:   pdftext.NewExtractor(),
	}
}

func (d *Dispatcher) Extract(ctx context.Context, doc *domain.EmailDocument) (string, error) {
	kind, ok := domain.KindForFilename(doc.Filename)
	if !ok {
		return "", domain.WrapError(
			domain.ErrUnsupportedFormat,
			"detect format",
			fmt.Errorf("filename %q is not .txt or .pdf", doc.Filename),
		)
	}
	doc.Kind = kind

	switch kind {
	case domain.KindPDF:
		return d.pdf.Extract(ctx, doc)
	default:
		return d.plain.Extract(ctx, doc)
	}
}
