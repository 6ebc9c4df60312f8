// Package document imports source texts into the lexical store.
package document

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/sentence-miner/internal/adapter/provider/textsource"
	"github.com/heartmarshall/sentence-miner/internal/domain"
)

type documentRepo interface {
	Create(ctx context.Context, title, content string) (int64, error)
	AddSentences(ctx context.Context, documentID int64, sentences []string) ([]int64, error)
	List(ctx context.Context) ([]domain.DocumentSummary, error)
}

type extractor interface {
	Extract(fileName string, data []byte) (textsource.Extracted, error)
}

type languageFilter interface {
	Filter(sentences []string) []string
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service imports documents and lists them.
type Service struct {
	docs     documentRepo
	extract  extractor
	language languageFilter
	tx       txManager
	log      *slog.Logger
}

// NewService creates a new document service.
func NewService(
	log *slog.Logger,
	docs documentRepo,
	extract extractor,
	language languageFilter,
	tx txManager,
) *Service {
	return &Service{
		docs:     docs,
		extract:  extract,
		language: language,
		tx:       tx,
		log:      log.With("service", "document"),
	}
}

// ListDocuments returns imported documents with their sentence counts.
func (s *Service) ListDocuments(ctx context.Context) ([]domain.DocumentSummary, error) {
	docs, err := s.docs.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	return docs, nil
}
