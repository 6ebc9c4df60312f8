package rest

import (
	"context"
	"sync"
	"time"

	"github.com/heartmarshall/sentence-miner/internal/domain"
	"github.com/heartmarshall/sentence-miner/internal/service/card"
	"github.com/heartmarshall/sentence-miner/internal/service/document"
	"github.com/heartmarshall/sentence-miner/internal/service/export"
)

//go:generate moq -out mocks_test.go -pkg rest . documentService miningService cardService exportService pollerControl

type documentServiceMock struct {
	ImportFileFunc     func(ctx context.Context, fileName string, data []byte) (document.ImportResult, error)
	ImportTextFunc     func(ctx context.Context, title, content string) (document.ImportResult, error)
	ImportDocumentFunc func(ctx context.Context, title, content string, sentences []string) document.ImportResult
	ListDocumentsFunc  func(ctx context.Context) ([]domain.DocumentSummary, error)
}

func (m *documentServiceMock) ImportFile(ctx context.Context, fileName string, data []byte) (document.ImportResult, error) {
	return m.ImportFileFunc(ctx, fileName, data)
}

func (m *documentServiceMock) ImportText(ctx context.Context, title, content string) (document.ImportResult, error) {
	return m.ImportTextFunc(ctx, title, content)
}

func (m *documentServiceMock) ImportDocument(ctx context.Context, title, content string, sentences []string) document.ImportResult {
	return m.ImportDocumentFunc(ctx, title, content, sentences)
}

func (m *documentServiceMock) ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error) {
	return m.ListDocumentsFunc(ctx)
}

type miningServiceMock struct {
	ListMinableSentencesFunc   func(ctx context.Context) ([]domain.MinableSentence, error)
	MarkWordsKnownFunc         func(ctx context.Context, words []string) (int64, error)
	MarkSentenceFullyKnownFunc func(ctx context.Context, sentenceID int64) (int64, error)
	ListKnownWordsFunc         func(ctx context.Context) ([]string, error)
}

func (m *miningServiceMock) ListMinableSentences(ctx context.Context) ([]domain.MinableSentence, error) {
	return m.ListMinableSentencesFunc(ctx)
}

func (m *miningServiceMock) MarkWordsKnown(ctx context.Context, words []string) (int64, error) {
	return m.MarkWordsKnownFunc(ctx, words)
}

func (m *miningServiceMock) MarkSentenceFullyKnown(ctx context.Context, sentenceID int64) (int64, error) {
	return m.MarkSentenceFullyKnownFunc(ctx, sentenceID)
}

func (m *miningServiceMock) ListKnownWords(ctx context.Context) ([]string, error) {
	return m.ListKnownWordsFunc(ctx)
}

type cardServiceMock struct {
	CreateCardFunc      func(ctx context.Context, sentenceID int64) (card.CreateResult, error)
	GetCardFunc         func(ctx context.Context, id int64) (domain.AnkiCard, error)
	ListActiveCardsFunc func(ctx context.Context) ([]domain.AnkiCard, error)
	ListAllCardsFunc    func(ctx context.Context) ([]domain.AnkiCard, error)
	UpdateFrontFunc     func(ctx context.Context, id int64, front string) error
	UpdateBackFunc      func(ctx context.Context, id int64, back string) error
	MarkExportedFunc    func(ctx context.Context, ids []int64) (int64, error)
	AwaitBackFunc       func(ctx context.Context, id int64, timeout time.Duration) (domain.AnkiCard, error)

	lock           sync.Mutex
	awaitBackCalls []time.Duration
}

func (m *cardServiceMock) CreateCard(ctx context.Context, sentenceID int64) (card.CreateResult, error) {
	return m.CreateCardFunc(ctx, sentenceID)
}

func (m *cardServiceMock) GetCard(ctx context.Context, id int64) (domain.AnkiCard, error) {
	return m.GetCardFunc(ctx, id)
}

func (m *cardServiceMock) ListActiveCards(ctx context.Context) ([]domain.AnkiCard, error) {
	return m.ListActiveCardsFunc(ctx)
}

func (m *cardServiceMock) ListAllCards(ctx context.Context) ([]domain.AnkiCard, error) {
	return m.ListAllCardsFunc(ctx)
}

func (m *cardServiceMock) UpdateFront(ctx context.Context, id int64, front string) error {
	return m.UpdateFrontFunc(ctx, id, front)
}

func (m *cardServiceMock) UpdateBack(ctx context.Context, id int64, back string) error {
	return m.UpdateBackFunc(ctx, id, back)
}

func (m *cardServiceMock) MarkExported(ctx context.Context, ids []int64) (int64, error) {
	return m.MarkExportedFunc(ctx, ids)
}

func (m *cardServiceMock) AwaitBack(ctx context.Context, id int64, timeout time.Duration) (domain.AnkiCard, error) {
	m.lock.Lock()
	m.awaitBackCalls = append(m.awaitBackCalls, timeout)
	m.lock.Unlock()
	return m.AwaitBackFunc(ctx, id, timeout)
}

func (m *cardServiceMock) AwaitBackCalls() []time.Duration {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.awaitBackCalls
}

type exportServiceMock struct {
	ExportActiveFunc func(ctx context.Context) (export.File, error)
}

func (m *exportServiceMock) ExportActive(ctx context.Context) (export.File, error) {
	return m.ExportActiveFunc(ctx)
}

type pollerControlMock struct {
	lock    sync.Mutex
	running bool
	starts  int
	stops   int
}

func (m *pollerControlMock) Start(context.Context) bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.starts++
	if m.running {
		return false
	}
	m.running = true
	return true
}

func (m *pollerControlMock) Stop() {
	m.lock.Lock()
	defer m.lock.Unlock()
	m.stops++
	m.running = false
}

func (m *pollerControlMock) IsRunning() bool {
	m.lock.Lock()
	defer m.lock.Unlock()
	return m.running
}
