// Package sentence implements the read side of sentences: the ranking view
// and single-sentence lookups with known-word annotation.
package sentence

import (
	"context"

	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/sentence-miner/internal/adapter/postgres"
	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// Repo provides sentence queries backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new sentence repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// listMinableSQL ranks sentences by the number of word occurrences whose
// cleaned form is not a known word. Sentences without unknown words are
// excluded. $1 limits the number of sentences; NULL means all.
const listMinableSQL = `
WITH unknown AS (
    SELECT w.sentence_id, count(*) AS unknown_count
    FROM words_in_sentences w
    LEFT JOIN known_words k ON k.word = w.cleaned_word
    WHERE k.word IS NULL
    GROUP BY w.sentence_id
), ranked AS (
    SELECT s.id, s.content, u.unknown_count
    FROM sentences s
    JOIN unknown u ON u.sentence_id = s.id
    ORDER BY u.unknown_count ASC, s.id ASC
    LIMIT $1
)
SELECT r.id            AS sentence_id,
       r.content       AS content,
       r.unknown_count AS unknown_count,
       w.id            AS word_id,
       w.word          AS word,
       w.cleaned_word  AS cleaned_word,
       (k.word IS NOT NULL) AS is_known
FROM ranked r
JOIN words_in_sentences w ON w.sentence_id = r.id
LEFT JOIN known_words k ON k.word = w.cleaned_word
ORDER BY r.unknown_count ASC, r.id ASC, w.id ASC`

const getSentenceSQL = `
SELECT id, document_id, content
FROM sentences
WHERE id = $1`

const getSentenceWordsSQL = `
SELECT w.id            AS word_id,
       w.word          AS word,
       w.cleaned_word  AS cleaned_word,
       (k.word IS NOT NULL) AS is_known
FROM words_in_sentences w
LEFT JOIN known_words k ON k.word = w.cleaned_word
WHERE w.sentence_id = $1
ORDER BY w.id ASC`

type minableRow struct {
	SentenceID   int64  `db:"sentence_id"`
	Content      string `db:"content"`
	UnknownCount int    `db:"unknown_count"`
	WordID       int64  `db:"word_id"`
	Word         string `db:"word"`
	CleanedWord  string `db:"cleaned_word"`
	IsKnown      bool   `db:"is_known"`
}

type sentenceRow struct {
	ID         int64  `db:"id"`
	DocumentID int64  `db:"document_id"`
	Content    string `db:"content"`
}

type wordRow struct {
	WordID      int64  `db:"word_id"`
	Word        string `db:"word"`
	CleanedWord string `db:"cleaned_word"`
	IsKnown     bool   `db:"is_known"`
}

// ListMinable returns the ranking view: sentences with at least one unknown
// word, fewest unknowns first, ties broken by sentence ID. limit <= 0 means
// no limit.
func (r *Repo) ListMinable(ctx context.Context, limit int) ([]domain.MinableSentence, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var lim *int
	if limit > 0 {
		lim = &limit
	}

	var rows []minableRow
	if err := pgxscan.Select(ctx, q, &rows, listMinableSQL, lim); err != nil {
		return nil, postgres.MapError(err, "minable sentences", nil)
	}
	return groupMinable(rows), nil
}

// groupMinable folds flat join rows into one entry per sentence. Sentence
// order is the order of first appearance in rows, which the query fixes.
func groupMinable(rows []minableRow) []domain.MinableSentence {
	out := make([]domain.MinableSentence, 0)
	index := make(map[int64]int)

	for _, row := range rows {
		i, ok := index[row.SentenceID]
		if !ok {
			i = len(out)
			index[row.SentenceID] = i
			out = append(out, domain.MinableSentence{
				SentenceID:   row.SentenceID,
				Content:      row.Content,
				UnknownCount: row.UnknownCount,
				Words:        []domain.WordOccurrence{},
			})
		}
		out[i].Words = append(out[i].Words, domain.WordOccurrence{
			ID:          row.WordID,
			SentenceID:  row.SentenceID,
			Word:        row.Word,
			CleanedWord: row.CleanedWord,
			IsKnown:     row.IsKnown,
		})
	}
	return out
}

// GetWithWords returns a sentence and its occurrences, annotated against the
// current known-word set. A missing sentence yields domain.ErrNotFound.
func (r *Repo) GetWithWords(ctx context.Context, id int64) (domain.SentenceWithWords, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var s sentenceRow
	if err := pgxscan.Get(ctx, q, &s, getSentenceSQL, id); err != nil {
		return domain.SentenceWithWords{}, postgres.MapError(err, "sentence", id)
	}

	var words []wordRow
	if err := pgxscan.Select(ctx, q, &words, getSentenceWordsSQL, id); err != nil {
		return domain.SentenceWithWords{}, postgres.MapError(err, "sentence words", id)
	}

	out := domain.SentenceWithWords{
		Sentence: domain.Sentence{ID: s.ID, DocumentID: s.DocumentID, Content: s.Content},
		Words:    make([]domain.WordOccurrence, len(words)),
	}
	for i, w := range words {
		out.Words[i] = domain.WordOccurrence{
			ID:          w.WordID,
			SentenceID:  s.ID,
			Word:        w.Word,
			CleanedWord: w.CleanedWord,
			IsKnown:     w.IsKnown,
		}
	}
	return out, nil
}
