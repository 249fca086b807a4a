package textproc

import (
	"strings"
	"unicode/utf8"
)

// asciiPunctuation is the fixed set stripped before tokenization.
const asciiPunctuation = "!\"#$%&'()*+,-./:;<=>?@[\\]^_`{|}~"

// minTokenRunes: tokens at or below this rune length are dropped regardless
// of stop-word membership.
const minTokenRunes = 2

// Normalizer is the deterministic cleanup pass applied before classification.
// It satisfies ports.Normalizer.
type Normalizer struct{}

func NewNormalizer() Normalizer {
	return Normalizer{}
}

func (Normalizer) Normalize(text string) string {
	return Normalize(text)
}

// Normalize lowercases the text, deletes ASCII punctuation, tokenizes on
// whitespace and drops purely numeric tokens, Portuguese stop-words and
// tokens of length <= 2. It is pure, total and idempotent; empty output is a
// valid result.
func Normalize(text string) string {
	lowered := strings.ToLower(text)

	var stripped strings.Builder
	stripped.Grow(len(lowered))
	for _, r := range lowered {
		if strings.ContainsRune(asciiPunctuation, r) {
			continue
		}
		stripped.WriteRune(r)
	}

	tokens := strings.Fields(stripped.String())
	kept := tokens[:0]
	for _, token := range tokens {
		if isNumericToken(token) {
			continue
		}
		if utf8.RuneCountInString(token) <= minTokenRunes {
			continue
		}
		if _, stop := stopwords[token]; stop {
			continue
		}
		kept = append(kept, token)
	}

	return strings.Join(kept, " ")
}

// isNumericToken reports whether the token is entirely ASCII digits. Mixed
// tokens like "abc123" are kept.
func isNumericToken(token string) bool {
	if token == "" {
		return false
	}
	for _, r := range token {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
