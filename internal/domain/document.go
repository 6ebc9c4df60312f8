package domain

import "time"

// Document is an imported source text. Title is unique.
type Document struct {
	ID        int64
	Title     string
	Content   string
	CreatedAt time.Time
}

// DocumentSummary is a Document with its sentence count, for listings.
type DocumentSummary struct {
	ID            int64
	Title         string
	SentenceCount int
	CreatedAt     time.Time
}

// Sentence is one sentence of a document.
type Sentence struct {
	ID         int64
	DocumentID int64
	Content    string
}

// WordOccurrence is one token of a sentence. IsKnown is computed at read
// time against the known-word set and is never stored.
type WordOccurrence struct {
	ID          int64
	SentenceID  int64
	Word        string
	CleanedWord string
	IsKnown     bool
}

// SentenceWithWords is a sentence with its occurrences in sentence order.
type SentenceWithWords struct {
	Sentence
	Words []WordOccurrence
}

// UnknownWords returns the distinct cleaned forms of the occurrences that
// are not known, in sentence order.
func (s SentenceWithWords) UnknownWords() []string {
	seen := make(map[string]struct{})
	out := make([]string, 0, len(s.Words))
	for _, w := range s.Words {
		if w.IsKnown {
			continue
		}
		if _, ok := seen[w.CleanedWord]; ok {
			continue
		}
		seen[w.CleanedWord] = struct{}{}
		out = append(out, w.CleanedWord)
	}
	return out
}

// MinableSentence is a row of the ranking view: a sentence with at least
// one unknown word and all of its occurrences annotated.
type MinableSentence struct {
	SentenceID   int64
	Content      string
	UnknownCount int
	Words        []WordOccurrence
}
