// Package card manages the flashcard lifecycle: creation from a sentence,
// edits, waiting for a generated back and marking cards exported.
package card

import (
	"context"
	"log/slog"
	"time"

	"github.com/heartmarshall/sentence-miner/internal/domain"
	"github.com/heartmarshall/sentence-miner/internal/notify"
)

type cardRepo interface {
	Create(ctx context.Context, front, unknownWordsJSON string) (int64, bool, error)
	GetByID(ctx context.Context, id int64) (domain.AnkiCard, error)
	ListActive(ctx context.Context) ([]domain.AnkiCard, error)
	ListAll(ctx context.Context) ([]domain.AnkiCard, error)
	UpdateFront(ctx context.Context, id int64, front string) error
	UpdateBack(ctx context.Context, id int64, back string) error
	MarkExported(ctx context.Context, ids []int64) (int64, error)
}

type sentenceRepo interface {
	GetWithWords(ctx context.Context, id int64) (domain.SentenceWithWords, error)
}

type updateBus interface {
	NotifyCardUpdated(cardID int64)
	AwaitCardUpdated(ctx context.Context, cardID int64, timeout time.Duration) notify.Outcome
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// recheckInterval bounds how long AwaitBack trusts the bus before it
// re-reads the card, so a notification sent between the read and the
// subscription only delays the answer.
const recheckInterval = 5 * time.Second

// Service provides card lifecycle operations.
type Service struct {
	cards     cardRepo
	sentences sentenceRepo
	bus       updateBus
	tx        txManager
	log       *slog.Logger
}

// NewService creates a new card service.
func NewService(
	log *slog.Logger,
	cards cardRepo,
	sentences sentenceRepo,
	bus updateBus,
	tx txManager,
) *Service {
	return &Service{
		cards:     cards,
		sentences: sentences,
		bus:       bus,
		tx:        tx,
		log:       log.With("service", "card"),
	}
}

// CreateResult reports the card ID and whether it was newly created.
// Created is false when a card with the same front already existed.
type CreateResult struct {
	ID      int64
	Created bool
}
