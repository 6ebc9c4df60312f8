package testhelper

import (
	"context"
	"testing"
)

func TestSetupTestDB_Smoke(t *testing.T) {
	pool := SetupTestDB(t)

	suffix := UniqueSuffix()
	seeded := SeedDocument(t, pool, "Der Hund"+suffix+" bellt laut.")

	var count int
	err := pool.QueryRow(
		context.Background(),
		`SELECT count(*) FROM words_in_sentences WHERE sentence_id = $1`,
		seeded.SentenceIDs[0],
	).Scan(&count)
	if err != nil {
		t.Fatalf("expected words in DB, got error: %v", err)
	}

	if count != 4 {
		t.Fatalf("expected 4 word occurrences, got %d", count)
	}
}
