package document

import (
	"context"
	"sync"

	"github.com/heartmarshall/sentence-miner/internal/adapter/provider/textsource"
	"github.com/heartmarshall/sentence-miner/internal/domain"
)

//go:generate moq -out mocks_test.go -pkg document . documentRepo extractor languageFilter txManager

type documentRepoMock struct {
	CreateFunc       func(ctx context.Context, title, content string) (int64, error)
	AddSentencesFunc func(ctx context.Context, documentID int64, sentences []string) ([]int64, error)
	ListFunc         func(ctx context.Context) ([]domain.DocumentSummary, error)

	lock              sync.Mutex
	createCalls       int
	addSentencesCalls [][]string
}

func (m *documentRepoMock) Create(ctx context.Context, title, content string) (int64, error) {
	m.lock.Lock()
	m.createCalls++
	m.lock.Unlock()
	return m.CreateFunc(ctx, title, content)
}

func (m *documentRepoMock) AddSentences(ctx context.Context, documentID int64, sentences []string) ([]int64, error) {
	m.lock.Lock()
	m.addSentencesCalls = append(m.addSentencesCalls, sentences)
	m.lock.Unlock()
	return m.AddSentencesFunc(ctx, documentID, sentences)
}

func (m *documentRepoMock) List(ctx context.Context) ([]domain.DocumentSummary, error) {
	return m.ListFunc(ctx)
}

func (m *documentRepoMock) CreateCalls() int {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.createCalls
}

func (m *documentRepoMock) AddSentencesCalls() [][]string {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.addSentencesCalls
}

type extractorMock struct {
	ExtractFunc func(fileName string, data []byte) (textsource.Extracted, error)
}

func (m *extractorMock) Extract(fileName string, data []byte) (textsource.Extracted, error) {
	return m.ExtractFunc(fileName, data)
}

type languageFilterMock struct {
	FilterFunc func(sentences []string) []string
}

func (m *languageFilterMock) Filter(sentences []string) []string {
	return m.FilterFunc(sentences)
}

type txManagerMock struct {
	RunInTxFunc func(ctx context.Context, fn func(context.Context) error) error
}

func (m *txManagerMock) RunInTx(ctx context.Context, fn func(context.Context) error) error {
	return m.RunInTxFunc(ctx, fn)
}
