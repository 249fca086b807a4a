package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/vbarbosa/email-triage/internal/core/domain"
)

type extractorFake struct {
	text  string
	err   error
	calls int
}

func (f *extractorFake) Extract(context.Context, *domain.EmailDocument) (string, error) {
	f.calls++
	return f.text, f.err
}

type normalizerFake struct{}

func (normalizerFake) Normalize(text string) string {
	return strings.ToLower(strings.TrimSpace(text))
}

type classifierFake struct {
	cls           domain.Classification
	err           error
	calls         int
	gotOriginal   string
	gotNormalized string
}

func (f *classifierFake) Classify(_ context.Context, original, normalized string) (domain.Classification, error) {
	f.calls++
	f.gotOriginal = original
	f.gotNormalized = normalized
	return f.cls, f.err
}

type replierFake struct {
	reply string
	err   error
	calls int
}

func (f *replierFake) GenerateReply(context.Context, string, domain.Classification) (string, error) {
	f.calls++
	return f.reply, f.err
}

func newUseCase(ex *extractorFake, cl *classifierFake, re *replierFake, limits Limits) *TriageEmailUseCase {
	return NewTriageEmailUseCase(ex, normalizerFake{}, cl, re, limits)
}

func TestTriageSuccessComposesResult(t *testing.T) {
	classifier := &classifierFake{cls: domain.ClassificationProductive}
	replier := &replierFake{reply: "Olá! Retornaremos em até 24h."}
	uc := newUseCase(&extractorFake{}, classifier, replier, Limits{})

	result, err := uc.Triage(context.Background(), domain.TriageRequest{Text: "Preciso de suporte urgente com o sistema."})
	if err != nil {
		t.Fatalf("Triage() error = %v", err)
	}
	if result.Classification != domain.ClassificationProductive {
		t.Fatalf("classification = %q", result.Classification)
	}
	if result.AutoReply != "Olá! Retornaremos em até 24h." {
		t.Fatalf("auto reply = %q", result.AutoReply)
	}
	if result.OriginalEmail != "Preciso de suporte urgente com o sistema." {
		t.Fatalf("original echo = %q", result.OriginalEmail)
	}
	if result.ProcessedText != "preciso de suporte urgente com o sistema." {
		t.Fatalf("processed echo = %q", result.ProcessedText)
	}
}

func TestTriageTextFieldTakesPrecedenceOverFile(t *testing.T) {
	extractor := &extractorFake{text: "conteúdo do arquivo"}
	classifier := &classifierFake{cls: domain.ClassificationUnproductive}
	uc := newUseCase(extractor, classifier, &replierFake{reply: "ok"}, Limits{})

	req := domain.TriageRequest{
		Text: "texto digitado",
		File: &domain.EmailDocument{Filename: "email.txt", Data: []byte("conteúdo do arquivo"), Size: 19},
	}
	if _, err := uc.Triage(context.Background(), req); err != nil {
		t.Fatalf("Triage() error = %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("extractor must not run when a text field is present, got %d calls", extractor.calls)
	}
	if classifier.gotOriginal != "texto digitado" {
		t.Fatalf("classifier received %q", classifier.gotOriginal)
	}
}

func TestTriageFailsWithoutContent(t *testing.T) {
	uc := newUseCase(&extractorFake{}, &classifierFake{}, &replierFake{}, Limits{})

	_, err := uc.Triage(context.Background(), domain.TriageRequest{Text: "   "})
	if !domain.IsKind(err, domain.ErrNoContent) {
		t.Fatalf("expected no content error, got %v", err)
	}
}

func TestTriageOversizedFileSkipsExtraction(t *testing.T) {
	extractor := &extractorFake{text: "qualquer"}
	classifier := &classifierFake{}
	uc := newUseCase(extractor, classifier, &replierFake{}, Limits{MaxFileSizeBytes: 10 << 20})

	req := domain.TriageRequest{
		File: &domain.EmailDocument{Filename: "grande.txt", Size: 11 << 20},
	}
	_, err := uc.Triage(context.Background(), req)
	if !domain.IsKind(err, domain.ErrPayloadTooLarge) {
		t.Fatalf("expected payload too large error, got %v", err)
	}
	if extractor.calls != 0 {
		t.Fatalf("extraction must never be attempted for oversized files, got %d calls", extractor.calls)
	}
	if classifier.calls != 0 {
		t.Fatalf("classifier must not run after a validation failure, got %d calls", classifier.calls)
	}
}

func TestTriageRejectsWhitespaceOnlyExtractedText(t *testing.T) {
	extractor := &extractorFake{text: "  \n\t "}
	uc := newUseCase(extractor, &classifierFake{}, &replierFake{}, Limits{})

	req := domain.TriageRequest{File: &domain.EmailDocument{Filename: "email.txt", Size: 6}}
	_, err := uc.Triage(context.Background(), req)
	if !domain.IsKind(err, domain.ErrEmptyContent) {
		t.Fatalf("expected empty content error, got %v", err)
	}
}

func TestTriageRejectsContentOverCharacterCap(t *testing.T) {
	classifier := &classifierFake{}
	uc := newUseCase(&extractorFake{}, classifier, &replierFake{}, Limits{MaxContentChars: 100})

	_, err := uc.Triage(context.Background(), domain.TriageRequest{Text: strings.Repeat("a", 101)})
	if !domain.IsKind(err, domain.ErrContentTooLong) {
		t.Fatalf("expected content too long error, got %v", err)
	}
	if classifier.calls != 0 {
		t.Fatalf("classifier must not run for oversized content, got %d calls", classifier.calls)
	}
}

func TestTriageTruncatesEchoesButNotClassifierInput(t *testing.T) {
	classifier := &classifierFake{cls: domain.ClassificationProductive}
	uc := newUseCase(&extractorFake{}, classifier, &replierFake{reply: "ok"}, Limits{EchoDisplayChars: 10})

	text := strings.Repeat("ação ", 10)
	result, err := uc.Triage(context.Background(), domain.TriageRequest{Text: text})
	if err != nil {
		t.Fatalf("Triage() error = %v", err)
	}
	if !strings.HasSuffix(result.OriginalEmail, "...") {
		t.Fatalf("expected truncated echo with ellipsis, got %q", result.OriginalEmail)
	}
	if len([]rune(result.OriginalEmail)) != 13 {
		t.Fatalf("expected 10 runes plus marker, got %q", result.OriginalEmail)
	}
	if classifier.gotOriginal != strings.TrimSpace(text) {
		t.Fatalf("classifier must receive the full text, got %q", classifier.gotOriginal)
	}
}

func TestTriagePropagatesUpstreamErrorKinds(t *testing.T) {
	upstreamErr := domain.WrapError(domain.ErrUpstreamRateLimited, "classify", errors.New("429"))
	uc := newUseCase(&extractorFake{}, &classifierFake{err: upstreamErr}, &replierFake{}, Limits{})

	_, err := uc.Triage(context.Background(), domain.TriageRequest{Text: "texto"})
	if !domain.IsKind(err, domain.ErrUpstreamRateLimited) {
		t.Fatalf("expected rate limited kind to survive wrapping, got %v", err)
	}
}

func TestTriageInconclusiveStillProducesResult(t *testing.T) {
	classifier := &classifierFake{cls: domain.ClassificationInconclusive}
	replier := &replierFake{reply: "mensagem padrão"}
	uc := newUseCase(&extractorFake{}, classifier, replier, Limits{})

	result, err := uc.Triage(context.Background(), domain.TriageRequest{Text: "texto ambíguo"})
	if err != nil {
		t.Fatalf("Triage() error = %v", err)
	}
	if result.Classification != domain.ClassificationInconclusive {
		t.Fatalf("classification = %q", result.Classification)
	}
	if replier.calls != 1 {
		t.Fatalf("replier must still be asked for the sentinel, got %d calls", replier.calls)
	}
}
