// Package knownword implements the known-word set.
package knownword

import (
	"context"
	"fmt"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"

	postgres "github.com/heartmarshall/sentence-miner/internal/adapter/postgres"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides known-word persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new known-word repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

// AddMany inserts the given already-normalized words in one statement.
// Words that are already known are skipped. An empty slice issues no
// statement. Returns the number of newly known words.
func (r *Repo) AddMany(ctx context.Context, words []string) (int64, error) {
	if len(words) == 0 {
		return 0, nil
	}

	insert := psql.Insert("known_words").Columns("word")
	for _, w := range words {
		insert = insert.Values(w)
	}
	query, args, err := insert.Suffix("ON CONFLICT (word) DO NOTHING").ToSql()
	if err != nil {
		return 0, fmt.Errorf("build known words insert: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "known words", nil)
	}
	return tag.RowsAffected(), nil
}

// List returns every known word in lexical order.
func (r *Repo) List(ctx context.Context) ([]string, error) {
	query, args, err := psql.Select("word").From("known_words").OrderBy("word ASC").ToSql()
	if err != nil {
		return nil, fmt.Errorf("build known words select: %w", err)
	}

	words := []string{}
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &words, query, args...); err != nil {
		return nil, postgres.MapError(err, "known words", nil)
	}
	return words, nil
}
