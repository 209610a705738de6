package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"golang.org/x/sync/errgroup"

	"handmadepixel/internal/notification"
	"handmadepixel/internal/platform/config"
	"handmadepixel/internal/platform/httpserver"
	"handmadepixel/internal/platform/logger"
	"handmadepixel/internal/platform/metrics"
	"handmadepixel/internal/platform/postgres"
	"handmadepixel/internal/signup/domain"
	"handmadepixel/internal/signup/handler"
	"handmadepixel/internal/signup/service"
	"handmadepixel/internal/signup/store"
	"handmadepixel/pkg/platform/audit"
	"handmadepixel/pkg/platform/audit/publisher"
	auditkafka "handmadepixel/pkg/platform/audit/store/kafka"
	auditmemory "handmadepixel/pkg/platform/audit/store/memory"
)

// main wires high-level dependencies and keeps the server lifecycle small.
// Business logic lives in the internal service packages.
func main() {
	cfg := config.FromEnv()
	log := logger.New()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var accounts store.Store
	if cfg.DatabaseURL != "" {
		db, err := postgres.Open(ctx, cfg.DatabaseURL)
		if err != nil {
			fatal(log, "failed to open database", err)
		}
		defer db.Close()
		accounts = store.NewPostgres(db)
	} else {
		log.Warn("DATABASE_URL not set, falling back to in-memory store")
		accounts = store.NewMemory()
	}

	sender, err := domain.ParseEmail(cfg.EmailSender)
	if err != nil {
		fatal(log, "invalid sender email address", err)
	}
	mailer := notification.NewClient(cfg.EmailBaseURL, sender, cfg.EmailAuthToken, cfg.EmailTimeout)

	var auditStore audit.Store
	if len(cfg.KafkaBrokers) > 0 {
		kafkaStore, err := auditkafka.New(cfg.KafkaBrokers, cfg.KafkaAuditTopic)
		if err != nil {
			fatal(log, "failed to connect kafka audit store", err)
		}
		defer kafkaStore.Close()
		auditStore = kafkaStore
	} else {
		log.Warn("KAFKA_BROKERS not set, audit events stay in memory")
		auditStore = auditmemory.NewInMemoryStore()
	}
	auditPub := publisher.NewPublisher(auditStore, publisher.WithAsyncBuffer(256))
	defer auditPub.Close()

	m := metrics.New(prometheus.DefaultRegisterer)
	svc := service.New(accounts, mailer, service.CryptoTokenSource{}, auditPub, m, log, cfg.BaseURL)
	h := handler.New(svc, log, m)
	srv := httpserver.New(cfg.Addr, handler.NewRouter(h))

	log.Info("starting handmadepixel", "addr", cfg.Addr, "base_url", cfg.BaseURL)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	if err := g.Wait(); err != nil {
		fatal(log, "server error", err)
	}
}

func fatal(log *slog.Logger, msg string, err error) {
	log.Error(msg, "error", err.Error())
	os.Exit(1)
}
