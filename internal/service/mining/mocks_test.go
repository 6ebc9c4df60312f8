package mining

import (
	"context"
	"sync"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

//go:generate moq -out mocks_test.go -pkg mining . sentenceRepo knownWordRepo txManager

type sentenceRepoMock struct {
	ListMinableFunc  func(ctx context.Context, limit int) ([]domain.MinableSentence, error)
	GetWithWordsFunc func(ctx context.Context, id int64) (domain.SentenceWithWords, error)

	lock             sync.Mutex
	listMinableCalls []int
	getCalls         []int64
}

func (m *sentenceRepoMock) ListMinable(ctx context.Context, limit int) ([]domain.MinableSentence, error) {
	m.lock.Lock()
	m.listMinableCalls = append(m.listMinableCalls, limit)
	m.lock.Unlock()
	return m.ListMinableFunc(ctx, limit)
}

func (m *sentenceRepoMock) GetWithWords(ctx context.Context, id int64) (domain.SentenceWithWords, error) {
	m.lock.Lock()
	m.getCalls = append(m.getCalls, id)
	m.lock.Unlock()
	return m.GetWithWordsFunc(ctx, id)
}

func (m *sentenceRepoMock) ListMinableCalls() []int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.listMinableCalls
}

type knownWordRepoMock struct {
	AddManyFunc func(ctx context.Context, words []string) (int64, error)
	ListFunc    func(ctx context.Context) ([]string, error)

	lock         sync.Mutex
	addManyCalls [][]string
}

func (m *knownWordRepoMock) AddMany(ctx context.Context, words []string) (int64, error) {
	m.lock.Lock()
	m.addManyCalls = append(m.addManyCalls, words)
	m.lock.Unlock()
	return m.AddManyFunc(ctx, words)
}

func (m *knownWordRepoMock) List(ctx context.Context) ([]string, error) {
	return m.ListFunc(ctx)
}

func (m *knownWordRepoMock) AddManyCalls() [][]string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.addManyCalls
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
