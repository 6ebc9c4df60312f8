package translation

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"golang.org/x/time/rate"

	"github.com/heartmarshall/sentence-miner/internal/domain"
)

// CycleResult summarizes one fetch, translate and apply pass.
type CycleResult struct {
	Fetched  int
	Applied  int
	Skipped  int
	Missing  int
	Fallback bool
}

// RunCycle runs a single pass outside the loop.
func (p *Poller) RunCycle(ctx context.Context) (CycleResult, error) {
	return p.runCycle(ctx, p.newLimiter())
}

func (p *Poller) runCycle(ctx context.Context, limiter *rate.Limiter) (CycleResult, error) {
	var res CycleResult

	cards, err := p.cards.ListPending(ctx, p.cfg.BatchSize)
	if err != nil {
		return res, fmt.Errorf("fetch pending cards: %w", err)
	}
	res.Fetched = len(cards)
	if len(cards) == 0 {
		return res, nil
	}

	items := make([]domain.TranslationItem, 0, len(cards))
	for _, c := range cards {
		items = append(items, domain.TranslationItem{
			ID:           c.ID,
			Sentence:     c.Front,
			UnknownWords: c.UnknownWords(),
		})
	}

	results, err := p.translator.TranslateBatch(ctx, items)
	if err != nil {
		if !p.cfg.DevFallback {
			return res, fmt.Errorf("translate batch: %w", err)
		}
		p.log.WarnContext(ctx, "translation failed, using dev fallback",
			slog.Int("cards", len(items)),
			slog.String("error", err.Error()),
		)
		results = DevFallback(items)
		res.Fallback = true
	}

	byID := make(map[int64]domain.TranslationResult, len(results))
	for _, r := range results {
		byID[r.ID] = r
	}

	for _, c := range cards {
		r, ok := byID[c.ID]
		if !ok {
			res.Missing++
			continue
		}
		back := FormatBack(r)
		if strings.TrimSpace(back) == "" {
			res.Missing++
			continue
		}

		filled, err := p.cards.FillBack(ctx, c.ID, back)
		if err != nil {
			return res, fmt.Errorf("write back of card %d: %w", c.ID, err)
		}
		if !filled {
			res.Skipped++
			continue
		}

		res.Applied++
		p.bus.NotifyCardUpdated(c.ID)

		if err := limiter.Wait(ctx); err != nil {
			return res, err
		}
	}

	p.log.InfoContext(ctx, "translation cycle done",
		slog.Int("fetched", res.Fetched),
		slog.Int("applied", res.Applied),
		slog.Int("skipped", res.Skipped),
		slog.Int("missing", res.Missing),
		slog.Bool("fallback", res.Fallback),
	)
	return res, nil
}

// FormatBack renders a translation as card back text: the translation,
// then a blank line, "Unknown words:" and one "- source: gloss" line per
// gloss. Glosses without a source are skipped.
func FormatBack(r domain.TranslationResult) string {
	var lines []string
	if r.Translation != "" {
		lines = append(lines, r.Translation)
	}
	if len(r.Glosses) > 0 {
		lines = append(lines, "", "Unknown words:")
		for _, g := range r.Glosses {
			if g.Source == "" {
				continue
			}
			lines = append(lines, "- "+g.Source+": "+g.Gloss)
		}
	}
	return strings.Join(lines, "\n")
}

// DevFallback produces placeholder results: "DEV: " plus the sentence, and
// every unknown word glossed as itself.
func DevFallback(items []domain.TranslationItem) []domain.TranslationResult {
	out := make([]domain.TranslationResult, 0, len(items))
	for _, it := range items {
		glosses := make([]domain.Gloss, 0, len(it.UnknownWords))
		for _, w := range it.UnknownWords {
			glosses = append(glosses, domain.Gloss{Source: w, Gloss: w})
		}
		out = append(out, domain.TranslationResult{
			ID:          it.ID,
			Translation: "DEV: " + it.Sentence,
			Glosses:     glosses,
		})
	}
	return out
}
