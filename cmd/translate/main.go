// Command translate runs translation poll cycles once, outside the server,
// and exits. It is meant for cron or manual catch-up runs.
//
// Flags:
//
//	-cycles N   maximum number of cycles (default 1); stops early when a
//	            cycle finds no pending cards or writes none
//
// Exit codes: 0 = success, 1 = error.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"time"

	"github.com/heartmarshall/sentence-miner/internal/adapter/postgres"
	"github.com/heartmarshall/sentence-miner/internal/app"
	"github.com/heartmarshall/sentence-miner/internal/config"
)

func main() {
	cycles := flag.Int("cycles", 1, "maximum number of poll cycles")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		logger.Error("connect to database", slog.String("error", err.Error()))
		os.Exit(1)
	}
	defer pool.Close()

	svc, err := app.NewServices(pool, cfg, logger)
	if err != nil {
		logger.Error("wire services", slog.String("error", err.Error()))
		os.Exit(1)
	}

	var applied int
	for i := 0; i < *cycles; i++ {
		res, err := svc.Poller.RunCycle(ctx)
		if err != nil {
			logger.Error("translation cycle failed",
				slog.Int("cycle", i+1),
				slog.String("error", err.Error()),
			)
			os.Exit(1)
		}
		applied += res.Applied
		if res.Fetched == 0 || res.Applied == 0 {
			break
		}
	}

	logger.Info("translation completed", slog.Int("applied", applied))
}
