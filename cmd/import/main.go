// Command import reads local files and imports their sentences, using the
// file name as the document title.
//
// Usage: import FILE...
//
// Exit codes: 0 = every file imported, 1 = at least one failure.
package main

import (
	"context"
	"flag"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/heartmarshall/sentence-miner/internal/adapter/postgres"
	"github.com/heartmarshall/sentence-miner/internal/app"
	"github.com/heartmarshall/sentence-miner/internal/config"
)

func main() {
	flag.Parse()
	if flag.NArg() == 0 {
		log.Fatal("usage: import FILE...")
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	logger := app.NewLogger(cfg.Log)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
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

	failed := false
	for _, path := range flag.Args() {
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Error("read file", slog.String("path", path), slog.String("error", err.Error()))
			failed = true
			continue
		}

		res, err := svc.Documents.ImportFile(ctx, filepath.Base(path), data)
		if err != nil {
			logger.Error("import failed", slog.String("path", path), slog.String("error", err.Error()))
			failed = true
			continue
		}
		if !res.OK {
			logger.Error("import rejected",
				slog.String("path", path),
				slog.String("code", string(res.Code)),
				slog.String("message", res.Message),
				slog.String("details", res.Details),
			)
			failed = true
			continue
		}

		logger.Info("imported",
			slog.String("path", path),
			slog.Int64("document_id", res.DocumentID),
			slog.Int("sentences", res.InsertedSentences),
		)
	}

	if failed {
		os.Exit(1)
	}
}
