package card

import (
	"context"
	"time"

	"github.com/heartmarshall/sentence-miner/internal/domain"
	"github.com/heartmarshall/sentence-miner/internal/notify"
)

// AwaitBack returns the card once its back is filled, or the card as it is
// when timeout elapses or ctx is done. Only a failed read is an error.
func (s *Service) AwaitBack(ctx context.Context, id int64, timeout time.Duration) (domain.AnkiCard, error) {
	deadline := time.Now().Add(timeout)

	for {
		c, err := s.GetCard(ctx, id)
		if err != nil {
			return domain.AnkiCard{}, err
		}
		if c.HasBack() || c.ExportedAt != nil {
			return c, nil
		}

		remaining := time.Until(deadline)
		if remaining <= 0 || ctx.Err() != nil {
			return c, nil
		}

		if s.bus.AwaitCardUpdated(ctx, id, min(remaining, recheckInterval)) == notify.Canceled {
			return c, nil
		}
	}
}
