package domain

import (
	"encoding/json"
	"strings"
	"time"
)

// CardState is derived from an AnkiCard's columns and never stored.
type CardState string

const (
	CardStatePending    CardState = "PENDING"
	CardStateTranslated CardState = "TRANSLATED"
	CardStateExported   CardState = "EXPORTED"
)

func (s CardState) String() string { return string(s) }

func (s CardState) IsValid() bool {
	switch s {
	case CardStatePending, CardStateTranslated, CardStateExported:
		return true
	}
	return false
}

// AnkiCard is a flashcard built from a sentence. Front is unique.
// UnknownWordsJSON is the JSON array snapshot taken at creation time.
type AnkiCard struct {
	ID               int64
	Front            string
	Back             string
	UnknownWordsJSON string
	CreatedAt        time.Time
	ExportedAt       *time.Time
}

// State reports the lifecycle state of the card.
func (c AnkiCard) State() CardState {
	switch {
	case c.ExportedAt != nil:
		return CardStateExported
	case strings.TrimSpace(c.Back) != "":
		return CardStateTranslated
	default:
		return CardStatePending
	}
}

// HasBack reports whether the back side has been filled.
func (c AnkiCard) HasBack() bool {
	return strings.TrimSpace(c.Back) != ""
}

// UnknownWords decodes the snapshot. See DecodeUnknownWords.
func (c AnkiCard) UnknownWords() []string {
	return DecodeUnknownWords(c.UnknownWordsJSON)
}

// EncodeUnknownWords serializes a word list to the snapshot format.
func EncodeUnknownWords(words []string) string {
	if len(words) == 0 {
		return "[]"
	}
	b, err := json.Marshal(words)
	if err != nil {
		return "[]"
	}
	return string(b)
}

// DecodeUnknownWords parses a snapshot. Malformed or non-array input yields
// an empty list; non-string elements are skipped.
func DecodeUnknownWords(raw string) []string {
	var items []any
	if err := json.Unmarshal([]byte(raw), &items); err != nil {
		return []string{}
	}
	out := make([]string, 0, len(items))
	for _, it := range items {
		if s, ok := it.(string); ok && s != "" {
			out = append(out, s)
		}
	}
	return out
}
