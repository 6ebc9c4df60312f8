// Package card implements AnkiCard persistence using PostgreSQL.
package card

import (
	"context"
	"errors"
	"fmt"
	"time"

	sq "github.com/Masterminds/squirrel"
	"github.com/georgysavva/scany/v2/pgxscan"
	"github.com/jackc/pgx/v5"

	postgres "github.com/heartmarshall/sentence-miner/internal/adapter/postgres"
	"github.com/heartmarshall/sentence-miner/internal/domain"
)

var psql = sq.StatementBuilder.PlaceholderFormat(sq.Dollar)

// Repo provides card persistence backed by PostgreSQL.
type Repo struct {
	db postgres.Querier
}

// New creates a new card repository.
func New(db postgres.Querier) *Repo {
	return &Repo{db: db}
}

const cardColumns = `id, front, back, unknown_words, created_at, exported_at`

const insertCardSQL = `
INSERT INTO anki_cards (front, back, unknown_words)
VALUES ($1, '', $2)
ON CONFLICT (front) DO NOTHING
RETURNING id`

const getCardIDByFrontSQL = `SELECT id FROM anki_cards WHERE front = $1`

const getCardSQL = `SELECT ` + cardColumns + ` FROM anki_cards WHERE id = $1`

const listActiveSQL = `
SELECT ` + cardColumns + `
FROM anki_cards
WHERE exported_at IS NULL
ORDER BY id DESC`

const listAllSQL = `
SELECT ` + cardColumns + `
FROM anki_cards
ORDER BY id DESC`

const listPendingSQL = `
SELECT ` + cardColumns + `
FROM anki_cards
WHERE back = '' AND exported_at IS NULL
ORDER BY id ASC
LIMIT $1`

const updateFrontSQL = `UPDATE anki_cards SET front = $2 WHERE id = $1`

const updateBackSQL = `UPDATE anki_cards SET back = $2 WHERE id = $1`

// fillBackSQL writes a generated back only while the card is still pending,
// so a concurrent user edit or export is never overwritten.
const fillBackSQL = `
UPDATE anki_cards SET back = $2
WHERE id = $1 AND back = '' AND exported_at IS NULL`

type cardRow struct {
	ID           int64      `db:"id"`
	Front        string     `db:"front"`
	Back         string     `db:"back"`
	UnknownWords string     `db:"unknown_words"`
	CreatedAt    time.Time  `db:"created_at"`
	ExportedAt   *time.Time `db:"exported_at"`
}

func (r cardRow) toDomain() domain.AnkiCard {
	return domain.AnkiCard{
		ID:               r.ID,
		Front:            r.Front,
		Back:             r.Back,
		UnknownWordsJSON: r.UnknownWords,
		CreatedAt:        r.CreatedAt,
		ExportedAt:       r.ExportedAt,
	}
}

func toDomainList(rows []cardRow) []domain.AnkiCard {
	out := make([]domain.AnkiCard, len(rows))
	for i, r := range rows {
		out[i] = r.toDomain()
	}
	return out
}

// Create inserts a card with an empty back. If a card with the same front
// already exists nothing is written and the existing card's ID is returned
// with created=false.
func (r *Repo) Create(ctx context.Context, front, unknownWordsJSON string) (id int64, created bool, err error) {
	q := postgres.QuerierFromCtx(ctx, r.db)

	err = q.QueryRow(ctx, insertCardSQL, front, unknownWordsJSON).Scan(&id)
	if err == nil {
		return id, true, nil
	}
	if !errors.Is(err, pgx.ErrNoRows) {
		return 0, false, postgres.MapError(err, "card", nil)
	}

	if err := q.QueryRow(ctx, getCardIDByFrontSQL, front).Scan(&id); err != nil {
		return 0, false, postgres.MapError(err, "card", nil)
	}
	return id, false, nil
}

// GetByID returns a card or domain.ErrNotFound.
func (r *Repo) GetByID(ctx context.Context, id int64) (domain.AnkiCard, error) {
	var row cardRow
	if err := pgxscan.Get(ctx, postgres.QuerierFromCtx(ctx, r.db), &row, getCardSQL, id); err != nil {
		return domain.AnkiCard{}, postgres.MapError(err, "card", id)
	}
	return row.toDomain(), nil
}

// ListActive returns cards not yet exported, newest first.
func (r *Repo) ListActive(ctx context.Context) ([]domain.AnkiCard, error) {
	return r.list(ctx, listActiveSQL)
}

// ListAll returns every card, newest first.
func (r *Repo) ListAll(ctx context.Context) ([]domain.AnkiCard, error) {
	return r.list(ctx, listAllSQL)
}

// ListPending returns up to limit cards with an empty back that are not
// exported, oldest first.
func (r *Repo) ListPending(ctx context.Context, limit int) ([]domain.AnkiCard, error) {
	return r.list(ctx, listPendingSQL, limit)
}

func (r *Repo) list(ctx context.Context, query string, args ...any) ([]domain.AnkiCard, error) {
	var rows []cardRow
	if err := pgxscan.Select(ctx, postgres.QuerierFromCtx(ctx, r.db), &rows, query, args...); err != nil {
		return nil, postgres.MapError(err, "cards", nil)
	}
	return toDomainList(rows), nil
}

// UpdateFront overwrites the front. A front already used by another card
// yields domain.ErrCardExists.
func (r *Repo) UpdateFront(ctx context.Context, id int64, front string) error {
	return r.update(ctx, updateFrontSQL, id, front)
}

// UpdateBack overwrites the back.
func (r *Repo) UpdateBack(ctx context.Context, id int64, back string) error {
	return r.update(ctx, updateBackSQL, id, back)
}

func (r *Repo) update(ctx context.Context, query string, id int64, value string) error {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, id, value)
	if err != nil {
		return postgres.MapError(err, "card", id)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("card %d: %w", id, domain.ErrNotFound)
	}
	return nil
}

// FillBack writes a generated back if the card is still pending.
// Returns false when the card was edited, exported or deleted meanwhile.
func (r *Repo) FillBack(ctx context.Context, id int64, back string) (bool, error) {
	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, fillBackSQL, id, back)
	if err != nil {
		return false, postgres.MapError(err, "card", id)
	}
	return tag.RowsAffected() == 1, nil
}

// MarkExported stamps exported_at on the given cards that are not exported
// yet and returns how many rows changed.
func (r *Repo) MarkExported(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	query, args, err := psql.Update("anki_cards").
		Set("exported_at", sq.Expr("now()")).
		Where(sq.Eq{"id": ids}).
		Where(sq.Eq{"exported_at": nil}).
		ToSql()
	if err != nil {
		return 0, fmt.Errorf("build mark exported: %w", err)
	}

	tag, err := postgres.QuerierFromCtx(ctx, r.db).Exec(ctx, query, args...)
	if err != nil {
		return 0, postgres.MapError(err, "cards", nil)
	}
	return tag.RowsAffected(), nil
}
