package translation

import (
	"context"
	"sync"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

//go:generate moq -out mocks_test.go -pkg translation . cardStore translator notifier

type cardStoreMock struct {
	ListPendingFunc func(ctx context.Context, limit int) ([]domain.AnkiCard, error)
	FillBackFunc    func(ctx context.Context, id int64, back string) (bool, error)

	lock          sync.Mutex
	listCalls     []int
	fillBackCalls []fillBackCall
}

type fillBackCall struct {
	ID   int64
	Back string
}

func (m *cardStoreMock) ListPending(ctx context.Context, limit int) ([]domain.AnkiCard, error) {
	m.lock.Lock()
	m.listCalls = append(m.listCalls, limit)
	m.lock.Unlock()
	return m.ListPendingFunc(ctx, limit)
}

func (m *cardStoreMock) FillBack(ctx context.Context, id int64, back string) (bool, error) {
	m.lock.Lock()
	m.fillBackCalls = append(m.fillBackCalls, fillBackCall{ID: id, Back: back})
	m.lock.Unlock()
	return m.FillBackFunc(ctx, id, back)
}

func (m *cardStoreMock) ListPendingCalls() []int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]int(nil), m.listCalls...)
}

func (m *cardStoreMock) FillBackCalls() []fillBackCall {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]fillBackCall(nil), m.fillBackCalls...)
}

type translatorMock struct {
	TranslateBatchFunc func(ctx context.Context, items []domain.TranslationItem) ([]domain.TranslationResult, error)

	lock  sync.Mutex
	calls [][]domain.TranslationItem
}

func (m *translatorMock) TranslateBatch(ctx context.Context, items []domain.TranslationItem) ([]domain.TranslationResult, error) {
	m.lock.Lock()
	m.calls = append(m.calls, items)
	m.lock.Unlock()
	return m.TranslateBatchFunc(ctx, items)
}

func (m *translatorMock) TranslateBatchCalls() [][]domain.TranslationItem {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([][]domain.TranslationItem(nil), m.calls...)
}

type notifierMock struct {
	lock  sync.Mutex
	calls []int64
}

func (m *notifierMock) NotifyCardUpdated(cardID int64) {
	m.lock.Lock()
	m.calls = append(m.calls, cardID)
	m.lock.Unlock()
}

func (m *notifierMock) NotifyCardUpdatedCalls() []int64 {
	m.lock.Lock()
	defer m.lock.Unlock()
	return append([]int64(nil), m.calls...)
}
