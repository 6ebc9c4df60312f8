package card

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// UpdateFront overwrites the front of a card.
func (s *Service) UpdateFront(ctx context.Context, id int64, front string) error {
	if strings.TrimSpace(front) == "" {
		return domain.NewValidationError("front", "required")
	}
	if err := s.cards.UpdateFront(ctx, id, front); err != nil {
		return fmt.Errorf("update front: %w", err)
	}

	s.log.InfoContext(ctx, "card front updated", slog.Int64("card_id", id))
	return nil
}

// UpdateBack overwrites the back of a card and wakes anyone waiting for it.
// An empty back is rejected: it would move the card back to pending and
// hand it to the translator again.
func (s *Service) UpdateBack(ctx context.Context, id int64, back string) error {
	if strings.TrimSpace(back) == "" {
		return domain.NewValidationError("back", "required")
	}
	if err := s.cards.UpdateBack(ctx, id, back); err != nil {
		return fmt.Errorf("update back: %w", err)
	}

	s.bus.NotifyCardUpdated(id)
	s.log.InfoContext(ctx, "card back updated", slog.Int64("card_id", id))
	return nil
}

// MarkExported stamps the given cards as exported and returns how many
// actually changed state. Cards already exported are left untouched.
func (s *Service) MarkExported(ctx context.Context, ids []int64) (int64, error) {
	if len(ids) == 0 {
		return 0, nil
	}

	var marked int64
	err := s.tx.RunInTx(ctx, func(txCtx context.Context) error {
		n, err := s.cards.MarkExported(txCtx, ids)
		if err != nil {
			return err
		}
		marked = n
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("mark exported: %w", err)
	}

	s.log.InfoContext(ctx, "cards exported",
		slog.Int("requested", len(ids)),
		slog.Int64("marked", marked),
	)
	return marked, nil
}
