package card

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/sentence-miner/internal/domain"
	"github.com/heartmarshall/sentence-miner/internal/notify"
)

//go:generate moq -out mocks_test.go -pkg card . cardRepo sentenceRepo updateBus txManager

type cardRepoMock struct {
	CreateFunc       func(ctx context.Context, front, unknownWordsJSON string) (int64, bool, error)
	GetByIDFunc      func(ctx context.Context, id int64) (domain.AnkiCard, error)
	ListActiveFunc   func(ctx context.Context) ([]domain.AnkiCard, error)
	ListAllFunc      func(ctx context.Context) ([]domain.AnkiCard, error)
	UpdateFrontFunc  func(ctx context.Context, id int64, front string) error
	UpdateBackFunc   func(ctx context.Context, id int64, back string) error
	MarkExportedFunc func(ctx context.Context, ids []int64) (int64, error)

	lock         sync.Mutex
	createCalls  []cardRepoCreateCall
	getByIDCalls int
	markCalls    [][]int64
}

type cardRepoCreateCall struct {
	Front            string
	UnknownWordsJSON string
}

func (m *cardRepoMock) Create(ctx context.Context, front, unknownWordsJSON string) (int64, bool, error) {
	m.lock.Lock()
	m.createCalls = append(m.createCalls, cardRepoCreateCall{Front: front, UnknownWordsJSON: unknownWordsJSON})
	m.lock.Unlock()
	return m.CreateFunc(ctx, front, unknownWordsJSON)
}

func (m *cardRepoMock) GetByID(ctx context.Context, id int64) (domain.AnkiCard, error) {
	m.lock.Lock()
	m.getByIDCalls++
	m.lock.Unlock()
	return m.GetByIDFunc(ctx, id)
}

func (m *cardRepoMock) ListActive(ctx context.Context) ([]domain.AnkiCard, error) {
	return m.ListActiveFunc(ctx)
}

func (m *cardRepoMock) ListAll(ctx context.Context) ([]domain.AnkiCard, error) {
	return m.ListAllFunc(ctx)
}

func (m *cardRepoMock) UpdateFront(ctx context.Context, id int64, front string) error {
	return m.UpdateFrontFunc(ctx, id, front)
}

func (m *cardRepoMock) UpdateBack(ctx context.Context, id int64, back string) error {
	return m.UpdateBackFunc(ctx, id, back)
}

func (m *cardRepoMock) MarkExported(ctx context.Context, ids []int64) (int64, error) {
	m.lock.Lock()
	m.markCalls = append(m.markCalls, ids)
	m.lock.Unlock()
	return m.MarkExportedFunc(ctx, ids)
}

func (m *cardRepoMock) CreateCalls() []cardRepoCreateCall {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.createCalls
}

func (m *cardRepoMock) GetByIDCalls() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.getByIDCalls
}

func (m *cardRepoMock) MarkExportedCalls() [][]int64 {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.markCalls
}

type sentenceRepoMock struct {
	GetWithWordsFunc func(ctx context.Context, id int64) (domain.SentenceWithWords, error)
}

func (m *sentenceRepoMock) GetWithWords(ctx context.Context, id int64) (domain.SentenceWithWords, error) {
	return m.GetWithWordsFunc(ctx, id)
}

type updateBusMock struct {
	NotifyCardUpdatedFunc func(cardID int64)
	AwaitCardUpdatedFunc  func(ctx context.Context, cardID int64, timeout time.Duration) notify.Outcome

	lock        sync.Mutex
	notifyCalls []int64
}

func (m *updateBusMock) NotifyCardUpdated(cardID int64) {
	m.lock.Lock()
	m.notifyCalls = append(m.notifyCalls, cardID)
	m.lock.Unlock()
	if m.NotifyCardUpdatedFunc != nil {
		m.NotifyCardUpdatedFunc(cardID)
	}
}

func (m *updateBusMock) AwaitCardUpdated(ctx context.Context, cardID int64, timeout time.Duration) notify.Outcome {
	return m.AwaitCardUpdatedFunc(ctx, cardID, timeout)
}

func (m *updateBusMock) NotifyCardUpdatedCalls() []int64 {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.notifyCalls
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error

	lock  sync.Mutex
	calls int
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	m.lock.Lock()
	m.calls++
	m.lock.Unlock()
	return m.RunInTxFunc(ctx, fn)
}

func (m *txManagerMock) RunInTxCalls() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.calls
}
