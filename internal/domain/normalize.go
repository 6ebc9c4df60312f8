package domain

import (
	"strings"
	"unicode"
)

// NormalizeToken reduces a raw token to the form used for known-word
// comparison: every Unicode punctuation rune is removed and surrounding
// whitespace is trimmed. Case is preserved. The function is idempotent.
func NormalizeToken(raw string) string {
	var b strings.Builder
	b.Grow(len(raw))
	for _, r := range raw {
		if unicode.IsPunct(r) {
			continue
		}
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// Token is one whitespace-separated piece of a sentence.
type Token struct {
	Raw     string
	Cleaned string
}

// Tokenize splits a sentence on whitespace and normalizes every piece.
// Pieces that normalize to the empty string (pure punctuation) are dropped.
func Tokenize(sentence string) []Token {
	fields := strings.Fields(sentence)
	tokens := make([]Token, 0, len(fields))
	for _, f := range fields {
		cleaned := NormalizeToken(f)
		if cleaned == "" {
			continue
		}
		tokens = append(tokens, Token{Raw: f, Cleaned: cleaned})
	}
	return tokens
}

// NormalizeWords normalizes a list of words, dropping empties and
// duplicates while keeping first-seen order.
func NormalizeWords(words []string) []string {
	seen := make(map[string]struct{}, len(words))
	out := make([]string, 0, len(words))
	for _, w := range words {
		n := NormalizeToken(w)
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}
