package domain

// TranslationItem is one card sent to a translator.
type TranslationItem struct {
	ID           int64    `json:"id"`
	Sentence     string   `json:"sentence"`
	UnknownWords []string `json:"unknownWords"`
}

// TranslationResult is the translator's answer for one card.
type TranslationResult struct {
	ID          int64
	Translation string
	Glosses     []Gloss
}

// Gloss pairs a source-language word with its target-language meaning.
type Gloss struct {
	Source string
	Gloss  string
}
