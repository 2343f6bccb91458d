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

	"leadscout/internal/admin"
	"leadscout/internal/contact"
	"leadscout/internal/feature"
	featurehandler "leadscout/internal/feature/handler"
	"leadscout/internal/identity/adapters/dom"
	"leadscout/internal/identity/adapters/screenshot"
	"leadscout/internal/identity/classifier"
	identityhandler "leadscout/internal/identity/handler"
	identitymetrics "leadscout/internal/identity/metrics"
	"leadscout/internal/identity/session"
	"leadscout/internal/identity/session/service"
	jwttoken "leadscout/internal/jwt_token"
	"leadscout/internal/platform/config"
	"leadscout/internal/platform/httpserver"
	"leadscout/internal/platform/logger"
	"leadscout/internal/platform/metrics"
	"leadscout/internal/platform/postgres"
	"leadscout/internal/platform/redis"
	"leadscout/internal/recognition/tesseract"
	httptransport "leadscout/internal/transport/http"
	"leadscout/pkg/platform/audit"
	"leadscout/pkg/platform/audit/publisher"
	"leadscout/pkg/platform/audit/store/fallback"
	auditkafka "leadscout/pkg/platform/audit/store/kafka"
	auditmemory "leadscout/pkg/platform/audit/store/memory"
	"leadscout/pkg/platform/circuit"
)

// main wires high-level dependencies, exposes the HTTP router, and keeps the
// server lifecycle small. Business logic lives in internal services packages.
func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run() error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log := logger.New(cfg.Log.Level, cfg.Log.Format)
	slog.SetDefault(log)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	health := map[string]httptransport.HealthCheck{}

	contacts, closeContacts, err := buildContactStore(ctx, cfg.Database, log, health)
	if err != nil {
		return err
	}
	defer closeContacts()

	flags, closeFlags, err := buildFeatureStore(ctx, cfg.Redis, log, health)
	if err != nil {
		return err
	}
	defer closeFlags()

	auditPublisher, closeAudit, err := buildAuditPublisher(ctx, cfg, log, health)
	if err != nil {
		return err
	}
	defer closeAudit()

	keywords := classifier.DefaultConfig()
	if cfg.Classifier.KeywordsFile != "" {
		keywords, err = classifier.LoadConfigFile(cfg.Classifier.KeywordsFile)
		if err != nil {
			return fmt.Errorf("load keywords: %w", err)
		}
	}

	defaults := feature.Flags{}
	for _, name := range cfg.Features.DefaultEnabled {
		capability, err := feature.ParseCapability(name)
		if err != nil {
			return fmt.Errorf("features.default_enabled: %w", err)
		}
		defaults[capability] = true
	}
	features := feature.NewService(flags,
		feature.WithLogger(log),
		feature.WithAuditPublisher(auditPublisher),
		feature.WithDefaults(defaults),
	)

	sessions := service.New(session.NewInMemory(), features,
		tesseract.New(tesseract.WithLanguages(cfg.Screenshot.Languages...)),
		contacts,
		service.WithLogger(log),
		service.WithMetrics(identitymetrics.New()),
		service.WithAuditPublisher(auditPublisher),
		service.WithClassifier(classifier.New(keywords)),
		service.WithScreenshotAdapter(screenshot.New(screenshot.WithMaxImageBytes(cfg.Screenshot.MaxImageBytes))),
		service.WithDOMOptions(dom.WithMaxSnapshotBytes(cfg.DOM.MaxSnapshotBytes)),
		service.WithImportConcurrency(cfg.Session.ImportConcurrency),
		service.WithOCRTimeout(cfg.Screenshot.OCRTimeout),
		service.WithSessionTTL(cfg.Session.TTL),
	)
	go sessions.RunExpirySweeper(ctx, 0)

	router := httptransport.NewRouter(httptransport.Deps{
		Logger:     log,
		Metrics:    metrics.New(),
		Tokens:     jwttoken.NewJWTService(cfg.Server.JWTSigningKey.Value(), cfg.Server.JWTIssuer),
		AdminToken: cfg.Server.AdminToken.Value(),
		Public: []httptransport.Registrar{
			identityhandler.New(sessions, log, identityhandler.WithMaxImageBytes(cfg.Screenshot.MaxImageBytes)),
		},
		Admin: []httptransport.Registrar{
			featurehandler.New(features, log),
			admin.New(auditPublisher, contacts, log),
		},
		Health: health,
	})

	srv := httpserver.New(cfg.Server.Addr, router, cfg.Server.ReadHeaderTimeout)
	errCh := make(chan error, 1)
	go func() {
		log.Info("starting leadscout", "addr", cfg.Server.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		if err != nil {
			return fmt.Errorf("server error: %w", err)
		}
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("graceful shutdown failed: %w", err)
	}
	return nil
}

func buildContactStore(ctx context.Context, cfg config.Database, log *slog.Logger, health map[string]httptransport.HealthCheck) (contact.Store, func(), error) {
	db, err := postgres.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if db == nil {
		log.Warn("database.url not set, contacts are kept in memory")
		return contact.NewInMemoryStore(), func() {}, nil
	}
	store := contact.NewPostgres(db)
	health["postgres"] = store.Health
	return store, func() { _ = db.Close() }, nil
}

func buildFeatureStore(ctx context.Context, cfg config.Redis, log *slog.Logger, health map[string]httptransport.HealthCheck) (feature.Store, func(), error) {
	client, err := redis.Open(ctx, cfg)
	if err != nil {
		return nil, nil, err
	}
	if client == nil {
		log.Warn("redis.url not set, feature flags are kept in memory")
		return feature.NewInMemoryStore(), func() {}, nil
	}
	store := feature.NewRedisStore(client)
	health["redis"] = store.Health
	return store, func() { _ = client.Close() }, nil
}

func buildAuditPublisher(ctx context.Context, cfg *config.Config, log *slog.Logger, health map[string]httptransport.HealthCheck) (*publisher.Publisher, func(), error) {
	opts := []publisher.Option{publisher.WithLogger(log)}
	if cfg.Audit.BufferSize > 0 {
		opts = append(opts, publisher.WithAsyncBuffer(cfg.Audit.BufferSize))
	}

	var sink audit.Sink = auditmemory.NewInMemoryStore()
	closeSink := func() {}
	if len(cfg.Kafka.Brokers) > 0 {
		kafkaSink, err := auditkafka.New(cfg.Kafka.Brokers, cfg.Kafka.AuditTopic)
		if err != nil {
			return nil, nil, fmt.Errorf("kafka audit sink: %w", err)
		}
		if err := kafkaSink.EnsureTopic(ctx); err != nil {
			kafkaSink.Close()
			return nil, nil, fmt.Errorf("ensure audit topic: %w", err)
		}
		sink = fallback.New(kafkaSink, auditmemory.NewInMemoryStore(),
			fallback.WithLogger(log),
			fallback.WithBreaker(circuit.New("audit-kafka")),
		)
		closeSink = kafkaSink.Close
		health["kafka"] = kafkaSink.Ping
	} else {
		log.Warn("kafka.brokers not set, audit events are kept in memory")
	}

	pub := publisher.NewPublisher(sink, opts...)
	return pub, func() {
		pub.Close()
		closeSink()
	}, nil
}
