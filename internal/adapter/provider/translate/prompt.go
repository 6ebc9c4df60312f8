package translate

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// ErrMalformedResponse is returned when the model output holds no JSON array.
var ErrMalformedResponse = errors.New("malformed translator response")

func systemPrompt(l Languages) string {
	return fmt.Sprintf("You translate %s to %s succinctly.", l.Source, l.Target)
}

// buildPrompt renders the batch instructions followed by one block per item.
func buildPrompt(l Languages, items []domain.TranslationItem) string {
	lines := []string{
		fmt.Sprintf("You are a precise translator for %s→%s.", l.Source, l.Target),
		fmt.Sprintf("For EACH input item, translate the sentence to natural %s and provide short word glosses ONLY for the provided unknown words.", l.Target),
		"Respond with STRICT JSON: an array of objects with schema:",
		`[{"id": <number>, "translation": "<translation>", "glosses": [{"source": "<word>", "gloss": "<short gloss>"}]}]`,
		"Maintain the same 'id' values from input. If no unknown words are given for an item, return an empty glosses array for that item.",
		"Do not include any commentary or markdown, just the raw JSON array.",
		"",
		"Input items:",
	}
	for _, it := range items {
		unknown := "<none>"
		if len(it.UnknownWords) > 0 {
			unknown = strings.Join(it.UnknownWords, ", ")
		}
		lines = append(lines,
			"id: "+strconv.FormatInt(it.ID, 10),
			"sentence: "+it.Sentence,
			"unknown: "+unknown,
			"---",
		)
	}
	return strings.Join(lines, "\n")
}

// parseResponse extracts the text between the first '[' and the last ']'
// and decodes it leniently: ids may be numbers or numeric strings, a
// missing translation becomes "", and gloss objects may use either
// source/gloss or de/en keys. Rows without a usable id are dropped.
func parseResponse(content string) ([]domain.TranslationResult, error) {
	start := strings.Index(content, "[")
	end := strings.LastIndex(content, "]")
	if start < 0 || end <= start {
		return nil, ErrMalformedResponse
	}

	dec := json.NewDecoder(bytes.NewReader([]byte(content[start : end+1])))
	dec.UseNumber()

	var rows []any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	out := make([]domain.TranslationResult, 0, len(rows))
	for _, raw := range rows {
		row, ok := raw.(map[string]any)
		if !ok {
			continue
		}
		id, ok := toID(row["id"])
		if !ok {
			continue
		}
		out = append(out, domain.TranslationResult{
			ID:          id,
			Translation: strings.TrimSpace(toString(row["translation"])),
			Glosses:     toGlosses(row["glosses"]),
		})
	}
	return out, nil
}

func toID(v any) (int64, bool) {
	switch x := v.(type) {
	case json.Number:
		id, err := x.Int64()
		if err != nil {
			f, ferr := x.Float64()
			if ferr != nil {
				return 0, false
			}
			id = int64(f)
		}
		return id, true
	case string:
		id, err := strconv.ParseInt(strings.TrimSpace(x), 10, 64)
		return id, err == nil
	default:
		return 0, false
	}
}

func toString(v any) string {
	switch x := v.(type) {
	case string:
		return x
	case json.Number:
		return x.String()
	default:
		return ""
	}
}

func toGlosses(v any) []domain.Gloss {
	items, ok := v.([]any)
	if !ok {
		return nil
	}
	out := make([]domain.Gloss, 0, len(items))
	for _, it := range items {
		obj, _ := it.(map[string]any)
		out = append(out, domain.Gloss{
			Source: firstString(obj, "source", "de"),
			Gloss:  firstString(obj, "gloss", "en"),
		})
	}
	return out
}

func firstString(obj map[string]any, keys ...string) string {
	for _, k := range keys {
		if s := toString(obj[k]); s != "" {
			return s
		}
	}
	return ""
}
