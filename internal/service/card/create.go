package card

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// CreateCard turns a sentence into a pending card. The card's front is the
// sentence text and its unknown-word snapshot is taken now. Creating a card
// for a sentence that already has one is not an error.
func (s *Service) CreateCard(ctx context.Context, sentenceID int64) (CreateResult, error) {
	sentence, err := s.sentences.GetWithWords(ctx, sentenceID)
	if err != nil {
		return CreateResult{}, fmt.Errorf("get sentence %d: %w", sentenceID, err)
	}

	snapshot := domain.EncodeUnknownWords(sentence.UnknownWords())

	id, created, err := s.cards.Create(ctx, sentence.Content, snapshot)
	if err != nil {
		return CreateResult{}, fmt.Errorf("create card: %w", err)
	}

	if created {
		s.log.InfoContext(ctx, "card created",
			slog.Int64("card_id", id),
			slog.Int64("sentence_id", sentenceID),
			slog.String("unknown_words", snapshot),
		)
	} else {
		s.log.DebugContext(ctx, "card already exists",
			slog.Int64("card_id", id),
			slog.Int64("sentence_id", sentenceID),
		)
	}

	return CreateResult{ID: id, Created: created}, nil
}
