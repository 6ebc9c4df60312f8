package testhelper

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// UniqueSuffix returns a short alphanumeric string for generating
// non-conflicting test data. It contains no punctuation, so words built
// from it survive normalization unchanged.
func UniqueSuffix() string {
	return uuid.New().String()[:8]
}

// SeededDocument is the result of SeedDocument.
type SeededDocument struct {
	DocumentID  int64
	SentenceIDs []int64
}

// SeedDocument inserts a document with the given sentences and their word
// occurrences, bypassing the repositories.
func SeedDocument(t *testing.T, pool *pgxpool.Pool, sentences ...string) SeededDocument {
	t.Helper()
	ctx := context.Background()

	var out SeededDocument
	err := pool.QueryRow(ctx,
		`INSERT INTO documents (title, content) VALUES ($1, $2) RETURNING id`,
		"doc-"+UniqueSuffix(), "",
	).Scan(&out.DocumentID)
	if err != nil {
		t.Fatalf("testhelper: SeedDocument insert document: %v", err)
	}

	for _, s := range sentences {
		var sentenceID int64
		err := pool.QueryRow(ctx,
			`INSERT INTO sentences (document_id, content) VALUES ($1, $2) RETURNING id`,
			out.DocumentID, s,
		).Scan(&sentenceID)
		if err != nil {
			t.Fatalf("testhelper: SeedDocument insert sentence: %v", err)
		}
		for _, tok := range domain.Tokenize(s) {
			_, err := pool.Exec(ctx,
				`INSERT INTO words_in_sentences (sentence_id, word, cleaned_word) VALUES ($1, $2, $3)`,
				sentenceID, tok.Raw, tok.Cleaned,
			)
			if err != nil {
				t.Fatalf("testhelper: SeedDocument insert word: %v", err)
			}
		}
		out.SentenceIDs = append(out.SentenceIDs, sentenceID)
	}

	return out
}

// SeedKnownWords marks the given normalized words as known.
func SeedKnownWords(t *testing.T, pool *pgxpool.Pool, words ...string) {
	t.Helper()
	for _, w := range words {
		_, err := pool.Exec(context.Background(),
			`INSERT INTO known_words (word) VALUES ($1) ON CONFLICT (word) DO NOTHING`, w,
		)
		if err != nil {
			t.Fatalf("testhelper: SeedKnownWords: %v", err)
		}
	}
}

// SeedCard inserts a card directly and returns its ID.
func SeedCard(t *testing.T, pool *pgxpool.Pool, front, back string, unknownWords []string) int64 {
	t.Helper()

	var id int64
	err := pool.QueryRow(context.Background(),
		`INSERT INTO anki_cards (front, back, unknown_words) VALUES ($1, $2, $3) RETURNING id`,
		front, back, domain.EncodeUnknownWords(unknownWords),
	).Scan(&id)
	if err != nil {
		t.Fatalf("testhelper: SeedCard: %v", err)
	}
	return id
}

// MarkCardExported sets exported_at on a card.
func MarkCardExported(t *testing.T, pool *pgxpool.Pool, id int64) {
	t.Helper()
	if _, err := pool.Exec(context.Background(),
		`UPDATE anki_cards SET exported_at = now() WHERE id = $1`, id,
	); err != nil {
		t.Fatalf("testhelper: MarkCardExported: %v", err)
	}
}
