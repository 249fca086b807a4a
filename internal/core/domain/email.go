package domain

import (
	"path/filepath"
	"strings"
)

type DocumentKind string

const (
	KindPlainText DocumentKind = "txt"
	KindPDF       DocumentKind = "pdf"
)

// KindForFilename maps a file extension to a supported document kind.
// Matching is case-insensitive.
func KindForFilename(name string) (DocumentKind, bool) {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".txt":
		return KindPlainText, true
	case ".pdf":
		return KindPDF, true
	default:
		return "", false
	}
}

// EmailDocument is an uploaded file, fully materialized in memory before any
// parsing starts so that extraction never consumes a stream it cannot rewind.
type EmailDocument struct {
	Filename string
	Kind     DocumentKind
	Data     []byte
	Size     int64
}

type Classification string

const (
	ClassificationProductive   Classification = "Produtivo"
	ClassificationUnproductive Classification = "Improdutivo"
	ClassificationInconclusive Classification = "Inconclusivo"
)

// TriageRequest carries the raw input of one triage call. A non-empty Text
// field takes precedence over File.
type TriageRequest struct {
	Text string
	File *EmailDocument
}

// TriageResult is the terminal state of a successful triage. OriginalEmail and
// ProcessedText are display echoes and may be truncated; the classifier and
// reply generator always receive the full text.
type TriageResult struct {
	Classification Classification `json:"classification"`
	AutoReply      string         `json:"auto_reply"`
	OriginalEmail  string         `json:"original_email"`
	ProcessedText  string         `json:"processed_text"`
}
