// Package langdetect keeps the sentences written in a chosen language.
package langdetect

import (
	"fmt"
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector filters sentences by detected language.
type Detector struct {
	detector lingua.LanguageDetector
	target   lingua.Language
}

// New builds a Detector for target, choosing among candidates. Names are
// English language names such as "german". The target is added to the
// candidates when missing; at least two languages are required.
func New(target string, candidates []string) (*Detector, error) {
	want, err := parseLanguage(target)
	if err != nil {
		return nil, err
	}

	langs := []lingua.Language{want}
	for _, c := range candidates {
		l, err := parseLanguage(c)
		if err != nil {
			return nil, err
		}
		if !contains(langs, l) {
			langs = append(langs, l)
		}
	}
	if len(langs) < 2 {
		return nil, fmt.Errorf("language detection needs at least two candidate languages (got %d)", len(langs))
	}

	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().FromLanguages(langs...).Build(),
		target:   want,
	}, nil
}

// Target returns the language sentences are kept for.
func (d *Detector) Target() string {
	return d.target.String()
}

// Filter returns the sentences detected as the target language, in order.
// Sentences with no confident detection are dropped.
func (d *Detector) Filter(sentences []string) []string {
	out := make([]string, 0, len(sentences))
	for _, s := range sentences {
		if lang, ok := d.detector.DetectLanguageOf(s); ok && lang == d.target {
			out = append(out, s)
		}
	}
	return out
}

func parseLanguage(name string) (lingua.Language, error) {
	n := strings.TrimSpace(name)
	for _, l := range lingua.AllLanguages() {
		if strings.EqualFold(l.String(), n) {
			return l, nil
		}
	}
	return lingua.Unknown, fmt.Errorf("unknown language %q", name)
}

func contains(langs []lingua.Language, l lingua.Language) bool {
	for _, x := range langs {
		if x == l {
			return true
		}
	}
	return false
}
