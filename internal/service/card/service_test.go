package card

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/heartmarshall/sentence-miner/internal/domain"
	"github.com/heartmarshall/sentence-miner/internal/notify"
)

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func passthroughTx() *txManagerMock {
	return &txManagerMock{
		RunInTxFunc: func(ctx context.Context, fn func(context.Context) error) error {
			return fn(ctx)
		},
	}
}

type testDeps struct {
	cards     *cardRepoMock
	sentences *sentenceRepoMock
	bus       updateBus
	tx        *txManagerMock
}

func newTestService(d testDeps) *Service {
	if d.cards == nil {
		d.cards = &cardRepoMock{}
	}
	if d.sentences == nil {
		d.sentences = &sentenceRepoMock{}
	}
	if d.bus == nil {
		d.bus = &updateBusMock{}
	}
	if d.tx == nil {
		d.tx = passthroughTx()
	}
	return NewService(discardLogger(), d.cards, d.sentences, d.bus, d.tx)
}

func sentenceFixture(id int64) domain.SentenceWithWords {
	return domain.SentenceWithWords{
		Sentence: domain.Sentence{ID: id, DocumentID: 1, Content: "Der alte Mann, der alte Hund."},
		Words: []domain.WordOccurrence{
			{Word: "Der", CleanedWord: "Der", IsKnown: true},
			{Word: "alte", CleanedWord: "alte"},
			{Word: "Mann,", CleanedWord: "Mann"},
			{Word: "der", CleanedWord: "der", IsKnown: true},
			{Word: "alte", CleanedWord: "alte"},
			{Word: "Hund.", CleanedWord: "Hund"},
		},
	}
}

// ---------------------------------------------------------------------------
// CreateCard
// ---------------------------------------------------------------------------

func TestCreateCard_SnapshotsUnknownWords(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		CreateFunc: func(context.Context, string, string) (int64, bool, error) { return 11, true, nil },
	}
	sentences := &sentenceRepoMock{
		GetWithWordsFunc: func(_ context.Context, id int64) (domain.SentenceWithWords, error) {
			return sentenceFixture(id), nil
		},
	}

	svc := newTestService(testDeps{cards: cards, sentences: sentences})
	res, err := svc.CreateCard(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, CreateResult{ID: 11, Created: true}, res)

	calls := cards.CreateCalls()
	require.Len(t, calls, 1)
	assert.Equal(t, "Der alte Mann, der alte Hund.", calls[0].Front)
	assert.Equal(t, `["alte","Mann","Hund"]`, calls[0].UnknownWordsJSON)
}

func TestCreateCard_ExistingFrontIsNotAnError(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		CreateFunc: func(context.Context, string, string) (int64, bool, error) { return 3, false, nil },
	}
	sentences := &sentenceRepoMock{
		GetWithWordsFunc: func(_ context.Context, id int64) (domain.SentenceWithWords, error) {
			return sentenceFixture(id), nil
		},
	}

	svc := newTestService(testDeps{cards: cards, sentences: sentences})
	res, err := svc.CreateCard(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, CreateResult{ID: 3, Created: false}, res)
}

func TestCreateCard_AllKnownStoresEmptySnapshot(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		CreateFunc: func(context.Context, string, string) (int64, bool, error) { return 1, true, nil },
	}
	sentences := &sentenceRepoMock{
		GetWithWordsFunc: func(_ context.Context, id int64) (domain.SentenceWithWords, error) {
			return domain.SentenceWithWords{
				Sentence: domain.Sentence{ID: id, Content: "Ja."},
				Words:    []domain.WordOccurrence{{Word: "Ja.", CleanedWord: "Ja", IsKnown: true}},
			}, nil
		},
	}

	svc := newTestService(testDeps{cards: cards, sentences: sentences})
	_, err := svc.CreateCard(context.Background(), 1)
	require.NoError(t, err)
	assert.Equal(t, "[]", cards.CreateCalls()[0].UnknownWordsJSON)
}

func TestCreateCard_SentenceNotFound(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{}
	sentences := &sentenceRepoMock{
		GetWithWordsFunc: func(context.Context, int64) (domain.SentenceWithWords, error) {
			return domain.SentenceWithWords{}, domain.ErrNotFound
		},
	}

	svc := newTestService(testDeps{cards: cards, sentences: sentences})
	_, err := svc.CreateCard(context.Background(), 404)
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, cards.CreateCalls())
}

// ---------------------------------------------------------------------------
// Updates
// ---------------------------------------------------------------------------

func TestUpdateBack_NotifiesAfterWrite(t *testing.T) {
	t.Parallel()

	var written string
	cards := &cardRepoMock{
		UpdateBackFunc: func(_ context.Context, _ int64, back string) error {
			written = back
			return nil
		},
	}
	bus := &updateBusMock{}

	svc := newTestService(testDeps{cards: cards, bus: bus})
	require.NoError(t, svc.UpdateBack(context.Background(), 8, "The old man."))
	assert.Equal(t, "The old man.", written)
	assert.Equal(t, []int64{8}, bus.NotifyCardUpdatedCalls())
}

func TestUpdateBack_NoNotifyOnFailure(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		UpdateBackFunc: func(context.Context, int64, string) error { return domain.ErrNotFound },
	}
	bus := &updateBusMock{}

	svc := newTestService(testDeps{cards: cards, bus: bus})
	err := svc.UpdateBack(context.Background(), 8, "x")
	assert.ErrorIs(t, err, domain.ErrNotFound)
	assert.Empty(t, bus.NotifyCardUpdatedCalls())
}

func TestUpdates_RejectBlank(t *testing.T) {
	t.Parallel()

	svc := newTestService(testDeps{})

	tests := []struct {
		name string
		call func() error
	}{
		{"front", func() error { return svc.UpdateFront(context.Background(), 1, "  ") }},
		{"back", func() error { return svc.UpdateBack(context.Background(), 1, "\n") }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			assert.ErrorIs(t, tt.call(), domain.ErrValidation)
		})
	}
}

func TestUpdateFront_DuplicateFront(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		UpdateFrontFunc: func(context.Context, int64, string) error { return domain.ErrCardExists },
	}

	svc := newTestService(testDeps{cards: cards})
	err := svc.UpdateFront(context.Background(), 1, "Schon da.")
	assert.ErrorIs(t, err, domain.ErrAlreadyExists)
}

// ---------------------------------------------------------------------------
// MarkExported
// ---------------------------------------------------------------------------

func TestMarkExported_EmptyIsNoop(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{}
	tx := passthroughTx()

	svc := newTestService(testDeps{cards: cards, tx: tx})
	n, err := svc.MarkExported(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Zero(t, tx.RunInTxCalls())
	assert.Empty(t, cards.MarkExportedCalls())
}

func TestMarkExported_RunsInTx(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		MarkExportedFunc: func(context.Context, []int64) (int64, error) { return 2, nil },
	}
	tx := passthroughTx()

	svc := newTestService(testDeps{cards: cards, tx: tx})
	n, err := svc.MarkExported(context.Background(), []int64{1, 2, 3})
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)
	assert.Equal(t, 1, tx.RunInTxCalls())
	assert.Equal(t, [][]int64{{1, 2, 3}}, cards.MarkExportedCalls())
}

func TestMarkExported_TxError(t *testing.T) {
	t.Parallel()

	txErr := errors.New("serialization failure")
	cards := &cardRepoMock{
		MarkExportedFunc: func(context.Context, []int64) (int64, error) { return 0, txErr },
	}

	svc := newTestService(testDeps{cards: cards})
	_, err := svc.MarkExported(context.Background(), []int64{1})
	assert.ErrorIs(t, err, txErr)
}

// ---------------------------------------------------------------------------
// AwaitBack
// ---------------------------------------------------------------------------

func TestAwaitBack_AlreadyFilled(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		GetByIDFunc: func(_ context.Context, id int64) (domain.AnkiCard, error) {
			return domain.AnkiCard{ID: id, Front: "a", Back: "b"}, nil
		},
	}
	bus := &updateBusMock{
		AwaitCardUpdatedFunc: func(context.Context, int64, time.Duration) notify.Outcome {
			t.Fatal("should not wait")
			return notify.Notified
		},
	}

	svc := newTestService(testDeps{cards: cards, bus: bus})
	got, err := svc.AwaitBack(context.Background(), 1, time.Minute)
	require.NoError(t, err)
	assert.Equal(t, "b", got.Back)
	assert.Equal(t, 1, cards.GetByIDCalls())
}

func TestAwaitBack_WakesOnUpdate(t *testing.T) {
	t.Parallel()

	var filled atomic.Bool
	cards := &cardRepoMock{
		GetByIDFunc: func(_ context.Context, id int64) (domain.AnkiCard, error) {
			c := domain.AnkiCard{ID: id, Front: "Guten Tag."}
			if filled.Load() {
				c.Back = "Good day."
			}
			return c, nil
		},
		UpdateBackFunc: func(context.Context, int64, string) error {
			filled.Store(true)
			return nil
		},
	}
	bus := notify.NewBus(discardLogger())
	svc := newTestService(testDeps{cards: cards, bus: bus})

	done := make(chan domain.AnkiCard, 1)
	go func() {
		c, err := svc.AwaitBack(context.Background(), 7, 10*time.Second)
		assert.NoError(t, err)
		done <- c
	}()

	require.Eventually(t, func() bool { return bus.Waiters(notify.CardUpdatedKey(7)) == 1 },
		2*time.Second, time.Millisecond)
	require.NoError(t, svc.UpdateBack(context.Background(), 7, "Good day."))

	select {
	case c := <-done:
		assert.Equal(t, "Good day.", c.Back)
	case <-time.After(3 * time.Second):
		t.Fatal("AwaitBack did not return after update")
	}
}

func TestAwaitBack_TimeoutReturnsPendingCard(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		GetByIDFunc: func(_ context.Context, id int64) (domain.AnkiCard, error) {
			return domain.AnkiCard{ID: id, Front: "x"}, nil
		},
	}
	bus := notify.NewBus(discardLogger())

	svc := newTestService(testDeps{cards: cards, bus: bus})
	got, err := svc.AwaitBack(context.Background(), 2, 30*time.Millisecond)
	require.NoError(t, err)
	assert.Equal(t, domain.CardStatePending, got.State())
	assert.Zero(t, bus.Waiters(notify.CardUpdatedKey(2)))
}

func TestAwaitBack_ContextCanceled(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		GetByIDFunc: func(_ context.Context, id int64) (domain.AnkiCard, error) {
			return domain.AnkiCard{ID: id, Front: "x"}, nil
		},
	}
	bus := &updateBusMock{
		AwaitCardUpdatedFunc: func(context.Context, int64, time.Duration) notify.Outcome {
			return notify.Canceled
		},
	}

	svc := newTestService(testDeps{cards: cards, bus: bus})
	got, err := svc.AwaitBack(context.Background(), 2, time.Hour)
	require.NoError(t, err)
	assert.Equal(t, int64(2), got.ID)
	assert.Equal(t, 1, cards.GetByIDCalls())
}

func TestAwaitBack_NotFound(t *testing.T) {
	t.Parallel()

	cards := &cardRepoMock{
		GetByIDFunc: func(context.Context, int64) (domain.AnkiCard, error) {
			return domain.AnkiCard{}, domain.ErrNotFound
		},
	}

	svc := newTestService(testDeps{cards: cards})
	_, err := svc.AwaitBack(context.Background(), 2, time.Second)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
