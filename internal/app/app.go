package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"strconv"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"golang.org/x/sync/errgroup"

	"github.com/heartmarshall/sentence-miner/internal/adapter/postgres"
	"github.com/heartmarshall/sentence-miner/internal/config"
	"github.com/heartmarshall/sentence-miner/internal/transport/middleware"
	"github.com/heartmarshall/sentence-miner/internal/transport/rest"
)

// Run is the server entry point. It loads configuration, connects to the
// database, applies migrations, wires services, optionally starts the
// translation poller and serves HTTP until ctx is canceled.
func Run(ctx context.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger := NewLogger(cfg.Log)
	logger.Info("starting application",
		slog.String("version", BuildVersion()),
		slog.String("log_level", cfg.Log.Level),
	)

	pool, err := postgres.NewPool(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect to database: %w", err)
	}
	defer pool.Close()

	if cfg.Database.AutoMigrate {
		if err := migrateUp(ctx, pool, logger); err != nil {
			return err
		}
	}

	svc, err := NewServices(pool, cfg, logger)
	if err != nil {
		return err
	}

	limiter := middleware.NewRateLimiter(time.Minute)
	defer limiter.Stop()

	mux := http.NewServeMux()
	rest.Handlers{
		Health:    rest.NewHealthHandler(pool, svc.Poller, Version),
		Documents: rest.NewDocumentHandler(svc.Documents, cfg.Import.MaxUploadBytes, logger),
		Mining:    rest.NewMiningHandler(svc.Mining, logger),
		Cards:     rest.NewCardHandler(svc.Cards, cfg.Export.AwaitTimeout, cfg.Export.MaxWait, logger),
		Export:    rest.NewExportHandler(svc.Export, logger),
		Poller:    rest.NewPollerHandler(ctx, svc.Poller, logger),
	}.Register(mux, limiter.Limit(cfg.Server.ImportPerMinute))

	handler := middleware.Standard(logger, cfg.CORS)(mux)

	srv := &http.Server{
		Addr:         net.JoinHostPort(cfg.Server.Host, strconv.Itoa(cfg.Server.Port)),
		Handler:      handler,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
		BaseContext:  func(net.Listener) context.Context { return ctx },
	}

	if cfg.Translation.Autostart {
		svc.Poller.Start(ctx)
	}

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		logger.Info("http server listening", slog.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("http server: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		logger.Info("shutting down")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
		defer cancel()

		svc.Poller.Stop()
		err := srv.Shutdown(shutdownCtx)
		svc.Poller.Wait()
		return err
	})

	return g.Wait()
}

func migrateUp(ctx context.Context, pool *pgxpool.Pool, logger *slog.Logger) error {
	m, err := postgres.NewMigrator(pool, logger)
	if err != nil {
		return err
	}
	defer m.Close() //nolint:errcheck

	if err := m.Up(ctx); err != nil {
		return fmt.Errorf("migrate up: %w", err)
	}
	return nil
}
