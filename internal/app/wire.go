package app

import (
	"fmt"
	"log/slog"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/heartmarshall/sentence-miner/internal/adapter/postgres"
	cardrepo "github.com/heartmarshall/sentence-miner/internal/adapter/postgres/card"
	documentrepo "github.com/heartmarshall/sentence-miner/internal/adapter/postgres/document"
	"github.com/heartmarshall/sentence-miner/internal/adapter/postgres/knownword"
	"github.com/heartmarshall/sentence-miner/internal/adapter/postgres/sentence"
	"github.com/heartmarshall/sentence-miner/internal/adapter/provider/langdetect"
	"github.com/heartmarshall/sentence-miner/internal/adapter/provider/textsource"
	"github.com/heartmarshall/sentence-miner/internal/adapter/provider/translate"
	"github.com/heartmarshall/sentence-miner/internal/config"
	"github.com/heartmarshall/sentence-miner/internal/notify"
	"github.com/heartmarshall/sentence-miner/internal/service/card"
	"github.com/heartmarshall/sentence-miner/internal/service/document"
	"github.com/heartmarshall/sentence-miner/internal/service/export"
	"github.com/heartmarshall/sentence-miner/internal/service/mining"
	"github.com/heartmarshall/sentence-miner/internal/service/translation"
)

// Services holds the wired application services shared by the server and
// the command-line tools.
type Services struct {
	Bus       *notify.Bus
	Documents *document.Service
	Mining    *mining.Service
	Cards     *card.Service
	Export    *export.Service
	Poller    *translation.Poller
}

// NewServices builds repositories, providers and services over pool.
func NewServices(pool *pgxpool.Pool, cfg *config.Config, logger *slog.Logger) (*Services, error) {
	txm := postgres.NewTxManager(pool)

	documents := documentrepo.New(pool)
	sentences := sentence.New(pool)
	known := knownword.New(pool)
	cards := cardrepo.New(pool)

	detector, err := langdetect.New(cfg.Import.Language, cfg.Import.CandidateList())
	if err != nil {
		return nil, fmt.Errorf("language detector: %w", err)
	}

	translator, err := translate.New(cfg.Translation, logger)
	if err != nil {
		return nil, fmt.Errorf("translator: %w", err)
	}

	bus := notify.NewBus(logger)
	cardSvc := card.NewService(logger, cards, sentences, bus, txm)

	return &Services{
		Bus:       bus,
		Documents: document.NewService(logger, documents, textsource.New(cfg.Import.MinWords, cfg.Import.MaxWords), detector, txm),
		Mining:    mining.NewService(logger, sentences, known, txm, cfg.Mining.PageSize),
		Cards:     cardSvc,
		Export:    export.NewService(logger, cardSvc),
		Poller: translation.NewPoller(logger, cards, translator, bus, translation.Config{
			BatchSize:    cfg.Translation.BatchSize,
			PollInterval: cfg.Translation.PollInterval,
			RetryBackoff: cfg.Translation.RetryBackoff,
			CardDelay:    cfg.Translation.CardDelay,
			DevFallback:  cfg.Translation.DevFallback,
		}),
	}, nil
}
