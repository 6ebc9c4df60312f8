// Package mining serves the ranking view of sentences and tracks which
// words the user already knows.
package mining

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

type sentenceRepo interface {
	ListMinable(ctx context.Context, limit int) ([]domain.MinableSentence, error)
	GetWithWords(ctx context.Context, id int64) (domain.SentenceWithWords, error)
}

type knownWordRepo interface {
	AddMany(ctx context.Context, words []string) (int64, error)
	List(ctx context.Context) ([]string, error)
}

type txManager interface {
	RunInTx(ctx context.Context, fn func(ctx context.Context) error) error
}

// Service provides the mining view and the known-word tracker.
type Service struct {
	sentences sentenceRepo
	known     knownWordRepo
	tx        txManager
	pageSize  int
	log       *slog.Logger
}

// NewService creates a new mining service. pageSize limits the number of
// sentences returned by ListMinableSentences; 0 means no limit.
func NewService(
	log *slog.Logger,
	sentences sentenceRepo,
	known knownWordRepo,
	tx txManager,
	pageSize int,
) *Service {
	return &Service{
		sentences: sentences,
		known:     known,
		tx:        tx,
		pageSize:  pageSize,
		log:       log.With("service", "mining"),
	}
}

// ListMinableSentences returns sentences with at least one unknown word,
// easiest first.
func (s *Service) ListMinableSentences(ctx context.Context) ([]domain.MinableSentence, error) {
	rows, err := s.sentences.ListMinable(ctx, s.pageSize)
	if err != nil {
		return nil, fmt.Errorf("list minable sentences: %w", err)
	}
	return rows, nil
}

// MarkWordsKnown normalizes words and stores them as known. Words already
// known are skipped. Nothing is written when no non-empty word remains.
func (s *Service) MarkWordsKnown(ctx context.Context, words []string) (int64, error) {
	normalized := domain.NormalizeWords(words)
	if len(normalized) == 0 {
		return 0, nil
	}

	var added int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.known.AddMany(txCtx, normalized)
		if err != nil {
			return err
		}
		added = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mark words known: %w", err)
	}

	s.log.InfoContext(ctx, "words marked known",
		slog.Int("requested", len(normalized)),
		slog.Int64("added", added),
	)
	return added, nil
}

// MarkWordKnown marks a single word as known.
func (s *Service) MarkWordKnown(ctx context.Context, word string) error {
	if domain.NormalizeToken(word) == "" {
		return domain.NewValidationError("word", "required")
	}
	_, err := s.MarkWordsKnown(ctx, []string{word})
	return err
}

// MarkSentenceFullyKnown marks every word of the sentence that is currently
// unknown as known. The sentence is re-read inside the transaction, so words
// learned since the caller's view was built are not written twice.
func (s *Service) MarkSentenceFullyKnown(ctx context.Context, sentenceID int64) (int64, error) {
	var added int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		sentence, err := s.sentences.GetWithWords(txCtx, sentenceID)
		if err != nil {
			return err
		}

		unknown := sentence.UnknownWords()
		if len(unknown) == 0 {
			return nil
		}

		n, err := s.known.AddMany(txCtx, unknown)
		if err != nil {
			return err
		}
		added = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mark sentence %d known: %w", sentenceID, err)
	}

	s.log.InfoContext(ctx, "sentence marked known",
		slog.Int64("sentence_id", sentenceID),
		slog.Int64("added", added),
	)
	return added, nil
}

// ListKnownWords returns every known word, sorted.
func (s *Service) ListKnownWords(ctx context.Context) ([]string, error) {
	words, err := s.known.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list known words: %w", err)
	}
	return words, nil
}
