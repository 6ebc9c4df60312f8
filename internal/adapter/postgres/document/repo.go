// Package document implements document and sentence persistence for imports.
package document

import (
	"context"
	"fmt"
	"time"

	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sentence-miner/internal/adapter/postgres"
	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// Repo provides document persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new document repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const insertDocumentSQL = `
INSERT INTO documents (title, content)
VALUES ($1, $2)
RETURNING id`

const insertSentenceSQL = `
INSERT INTO sentences (document_id, content)
VALUES ($1, $2)
RETURNING id`

const insertWordSQL = `
INSERT INTO words_in_sentences (sentence_id, word, cleaned_word)
VALUES ($1, $2, $3)`

const listDocumentsSQL = `
SELECT d.id, d.title, d.created_at, count(s.id) AS sentence_count
FROM documents d
LEFT JOIN sentences s ON s.document_id = d.id
GROUP BY d.id
ORDER BY d.id DESC`

// Create inserts a document and returns its ID.
// A duplicate title yields domain.ErrDocumentExists.
func (r *Repo) Create(ctx context.Context, title, content string) (int64, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var id int64
	if err := q.QueryRow(ctx, insertDocumentSQL, title, content).Scan(&id); err != nil {
		return 0, postgres.MapError(err, "document", title)
	}
	return id, nil
}

// AddSentences inserts the sentences of a document and every word
// occurrence of each sentence. Sentences keep input order; occurrences keep
// token order. Tokens that normalize to the empty string are not stored.
// Callers run this inside the same transaction as Create.
func (r *Repo) AddSentences(ctx context.Context, documentID int64, sentences []string) ([]int64, error) {
	if len(sentences) == 0 {
		return []int64{}, nil
	}
	q := postgres.QuerierFromCtx(ctx, r.db)

	sentBatch := &pgx.Batch{}
	for _, s := range sentences {
		sentBatch.Queue(insertSentenceSQL, documentID, s)
	}

	ids := make([]int64, len(sentences))
	br := q.SendBatch(ctx, sentBatch)
	for i := range sentences {
		if err := br.QueryRow().Scan(&ids[i]); err != nil {
			_ = br.Close()
			return nil, postgres.MapError(err, "sentence", i)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close sentence batch: %w", err)
	}

	wordBatch := &pgx.Batch{}
	for i, s := range sentences {
		for _, tok := range domain.Tokenize(s) {
			wordBatch.Queue(insertWordSQL, ids[i], tok.Raw, tok.Cleaned)
		}
	}
	if wordBatch.Len() == 0 {
		return ids, nil
	}

	br = q.SendBatch(ctx, wordBatch)
	for i := 0; i < wordBatch.Len(); i++ {
		if _, err := br.Exec(); err != nil {
			_ = br.Close()
			return nil, postgres.MapError(err, "word occurrence", i)
		}
	}
	if err := br.Close(); err != nil {
		return nil, fmt.Errorf("close word batch: %w", err)
	}

	return ids, nil
}

type summaryRow struct {
	ID            int64     `db:"id"`
	Title         string    `db:"title"`
	CreatedAt     time.Time `db:"created_at"`
	SentenceCount int       `db:"sentence_count"`
}

// List returns all documents with their sentence counts, newest first.
func (r *Repo) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	var rows []summaryRow
	if err := pgxscan.Select(ctx, q, &rows, listDocumentsSQL); err != nil {
		return nil, postgres.MapError(err, "documents", nil)
	}

	out := make([]domain.DocumentSummary, len(rows))
	for i, row := range rows {
		out[i] = domain.DocumentSummary{
			ID:            row.ID,
			Title:         row.Title,
			SentenceCount: row.SentenceCount,
			CreatedAt:     row.CreatedAt,
		}
	}
	return out, nil
}
