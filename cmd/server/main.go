package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"

	httpdelivery "github.com/cardstream/payment-gateway/internal/delivery/http"
	"github.com/cardstream/payment-gateway/internal/domain/repository"
	bankclient "github.com/cardstream/payment-gateway/internal/infrastructure/bank"
	"github.com/cardstream/payment-gateway/internal/infrastructure/config"
	"github.com/cardstream/payment-gateway/internal/infrastructure/memstore"
	"github.com/cardstream/payment-gateway/internal/infrastructure/postgres"
	"github.com/cardstream/payment-gateway/internal/usecase/paymentdetails"
	"github.com/cardstream/payment-gateway/internal/usecase/processpayment"
)

const (
	dbMaxConns            = 10
	dbMinConns            = 2
	dbMaxConnLifetime     = 30 * time.Minute
	dbMaxConnIdleTime     = 5 * time.Minute
	readHeaderTimeout     = 5 * time.Second
	gracefulShutdownDelay = 5 * time.Second
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	cfg := config.Load()

	store, cleanup, err := initStore(ctx, cfg)
	if err != nil {
		logger.Error("store init failed", "error", err)
		os.Exit(1)
	}
	defer cleanup()

	authorizer := bankclient.NewClient(cfg.BankURL, &http.Client{Timeout: cfg.BankTimeout})

	processUC := processpayment.NewUseCase(store, authorizer)
	detailsUC := paymentdetails.NewUseCase(store)

	handler := httpdelivery.NewHandler(processUC, detailsUC)
	router := httpdelivery.NewRouter(handler)

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: readHeaderTimeout,
	}

	go func() {
		logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store", cfg.StoreBackend)
		if serveErr := srv.ListenAndServe(); serveErr != nil && !errors.Is(serveErr, http.ErrServerClosed) {
			logger.Error("http serve failed", "error", serveErr)
		}
	}()

	<-ctx.Done()
	logger.Info("shutting down...")

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), gracefulShutdownDelay)
	defer shutdownCancel()
	_ = srv.Shutdown(shutdownCtx)
}

func initStore(ctx context.Context, cfg *config.Config) (repository.PaymentRepository, func(), error) {
	switch cfg.StoreBackend {
	case "memory":
		return memstore.New(), func() {}, nil
	case "postgres":
		pool, err := initDB(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		return postgres.NewStore(pool), pool.Close, nil
	default:
		return nil, nil, fmt.Errorf("unknown store backend %q", cfg.StoreBackend)
	}
}

func initDB(ctx context.Context, url string) (*pgxpool.Pool, error) {
	cfg, err := pgxpool.ParseConfig(url)
	if err != nil {
		return nil, err
	}

	cfg.MaxConns = dbMaxConns
	cfg.MinConns = dbMinConns
	cfg.MaxConnLifetime = dbMaxConnLifetime
	cfg.MaxConnIdleTime = dbMaxConnIdleTime

	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	if err != nil {
		return nil, err
	}

	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, err
	}

	return pool, nil
}
