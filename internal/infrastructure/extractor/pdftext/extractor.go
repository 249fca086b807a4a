package pdftext

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/ledongthuc/pdf"

	"github.com/vbarbosa/email-triage/internal/core/domain"
)

type Extractor struct{}

func NewExtractor() *Extractor {
	return &Extractor{}
}

// Extract concatenates the plain text of every page with a trailing newline
// per page. Pages whose extraction fails contribute nothing; the document
// only fails as a whole when the container cannot be parsed or when no page
// yields any text.
func (e *Extractor) Extract(_ context.Context, doc *domain.EmailDocument) (text string, err error) {
	// The pdf package panics on some malformed xref tables; treat that the
	// same as an unparseable container.
	defer func() {
		if r := recover(); r != nil {
			text = ""
			err = domain.WrapError(domain.ErrDecode, "parse pdf", fmt.Errorf("malformed pdf: %v", r))
		}
	}()

	reader, err := pdf.NewReader(bytes.NewReader(doc.Data), int64(len(doc.Data)))
	if err != nil {
		return "", domain.WrapError(domain.ErrDecode, "parse pdf", err)
	}

	var builder strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		pageText, pageErr := page.GetPlainText(nil)
		if pageErr != nil || pageText == "" {
			continue
		}
		builder.WriteString(pageText)
		builder.WriteString("\n")
	}

	text = builder.String()
	if strings.TrimSpace(text) == "" {
		return "", domain.WrapError(domain.ErrEmptyDocument, "parse pdf", errors.New("no extractable text in any page"))
	}
	return text, nil
}
