package card

import (
	"context"
	"fmt"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// ListActiveCards returns cards not yet exported, newest first.
func (s *Service) ListActiveCards(ctx context.Context) ([]domain.AnkiCard, error) {
	cards, err := s.cards.ListActive(ctx)
	if err != nil {
		return nil, fmt.Errorf("list active cards: %w", err)
	}
	return cards, nil
}

// ListAllCards returns every card, newest first.
func (s *Service) ListAllCards(ctx context.Context) ([]domain.AnkiCard, error) {
	cards, err := s.cards.ListAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("list cards: %w", err)
	}
	return cards, nil
}

// GetCard returns a card or domain.ErrNotFound.
func (s *Service) GetCard(ctx context.Context, id int64) (domain.AnkiCard, error) {
	c, err := s.cards.GetByID(ctx, id)
	if err != nil {
		return domain.AnkiCard{}, fmt.Errorf("get card: %w", err)
	}
	return c, nil
}
