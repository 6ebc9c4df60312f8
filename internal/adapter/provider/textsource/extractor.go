// Package textsource turns an uploaded file into plain text and candidate
// sentences.
package textsource

import (
	"bytes"
	"errors"
	"fmt"
	"net/url"
	"path/filepath"
	"regexp"
	"strings"

	readability "github.com/go-shiori/go-readability"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

var (
	ErrUnsupportedFileType = domain.NewValidationError("file", "unsupported file type")
	ErrEmptyText           = domain.NewValidationError("file", "file contains no text")
)

// Extracted is the result of reading a file.
type Extracted struct {
	Title     string
	Text      string
	Sentences []string
}

// Extractor reads txt, md and html files. Sentences outside the word-count
// window are dropped.
type Extractor struct {
	minWords int
	maxWords int
}

// New creates an Extractor keeping sentences with minWords..maxWords words.
func New(minWords, maxWords int) *Extractor {
	return &Extractor{minWords: minWords, maxWords: maxWords}
}

// Extract reads data according to the extension of fileName.
func (e *Extractor) Extract(fileName string, data []byte) (Extracted, error) {
	ext := strings.ToLower(strings.TrimPrefix(filepath.Ext(fileName), "."))

	var out Extracted
	switch ext {
	case "txt", "md":
		out.Text = string(data)
	case "html", "htm":
		article, err := readability.FromReader(bytes.NewReader(data), &url.URL{Scheme: "file", Path: "/" + filepath.Base(fileName)})
		if err != nil {
			return Extracted{}, fmt.Errorf("extract article: %w", errors.Join(ErrEmptyText, err))
		}
		out.Title = strings.TrimSpace(article.Title)
		out.Text = article.TextContent
	default:
		return Extracted{}, fmt.Errorf("%w: %q", ErrUnsupportedFileType, ext)
	}

	if strings.TrimSpace(out.Text) == "" {
		return Extracted{}, ErrEmptyText
	}

	out.Sentences = e.filter(SplitSentences(out.Text))
	return out, nil
}

func (e *Extractor) filter(sentences []string) []string {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		n := len(strings.Fields(s))
		if n >= e.minWords && n <= e.maxWords {
			out = append(out, s)
		}
	}
	return out
}

var (
	whitespace = regexp.MustCompile(`\s+`)
	boundary   = regexp.MustCompile(`[.!?] `)
)

// SplitSentences collapses whitespace and splits after '.', '!' or '?'
// followed by whitespace. The terminator stays with its sentence.
func SplitSentences(text string) []string {
	flat := strings.TrimSpace(whitespace.ReplaceAllString(text, " "))
	if flat == "" {
		return nil
	}

	var out []string
	start := 0
	for _, loc := range boundary.FindAllStringIndex(flat, -1) {
		end := loc[0] + 1
		if s := strings.TrimSpace(flat[start:end]); s != "" {
			out = append(out, s)
		}
		start = loc[1]
	}
	if s := strings.TrimSpace(flat[start:]); s != "" {
		out = append(out, s)
	}
	return out
}
