package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"staybook/internal/app/policies"
	"staybook/internal/app/reservations"
	"staybook/internal/app/uow"
	"staybook/internal/domain/property"
	kafkabroker "staybook/internal/infra/broker/kafka"
	"staybook/internal/infra/config"
	mongostore "staybook/internal/infra/db/mongo"
	ginserver "staybook/internal/infra/http/gin"
	"staybook/internal/infra/notify"
	"staybook/internal/infra/obs"
	"staybook/internal/infra/storage/memory"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	env := getenv("APP_ENV", "dev")
	logger := obs.NewLogger(env)

	cfg, err := config.Load()
	if err != nil {
		logger.Warn("using fallback configuration", "error", err)
		cfg.Env = env
		cfg.HTTPAddr = getenv("HTTP_ADDR", ":8080")
		cfg.StoreMode = "memory"
	}
	if cfg.HTTPAddr == "" {
		cfg.HTTPAddr = ":8080"
	}

	store, err := buildStore(cfg, logger)
	if err != nil {
		logger.Error("store initialization failed", "store_mode", cfg.StoreMode, "error", err)
		os.Exit(1)
	}

	notifier, closeNotifier := buildNotifier(cfg, logger)
	defer closeNotifier()

	service := &reservations.Service{
		UoW:      store.factory,
		Notifier: notifier,
		Logger:   logger,
	}

	server := ginserver.NewServer(cfg, obs.Middleware{Logger: logger}, obs.HealthHandlers{
		Ready: store.ready,
	}, ginserver.Handlers{
		Reservation:  ginserver.ReservationHandler{Service: service},
		Availability: ginserver.AvailabilityHandler{Service: service},
	})

	fixturesPath := cfg.PropertyFixtures
	if fixturesPath == "" {
		fixturesPath = defaultPropertyFixturesPath()
	}
	if err := loadPropertyFixtures(ctx, store.properties, fixturesPath, logger); err != nil {
		logger.Warn("property fixtures load failed", "error", err, "path", fixturesPath)
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("http shutdown failed", "error", err)
		}
	}()

	logger.Info("HTTP server starting", "addr", cfg.HTTPAddr, "store_mode", cfg.StoreMode)
	if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("http server failed", "error", err)
		os.Exit(1)
	}
	logger.Info("HTTP server stopped")
}

// propertyStore is the write side of the catalog, used by the fixtures
// loader. Both backends satisfy it.
type propertyStore interface {
	property.Catalog
	Put(ctx context.Context, prop *property.Property) error
}

type store struct {
	factory    uow.UoWFactory
	properties propertyStore
	ready      func() error
}

func buildStore(cfg config.Config, logger *slog.Logger) (store, error) {
	switch cfg.StoreMode {
	case "mongo":
		client, err := mongostore.New(cfg.MongoURI, cfg.MongoDB)
		if err != nil {
			return store{}, fmt.Errorf("connect mongo: %w", err)
		}
		properties := mongostore.NewPropertyCatalog(client.DB)
		factory := mongostore.Factory{
			DB:              client.DB,
			ReservationRepo: mongostore.NewReservationRepository(client.DB),
			PropertyCat:     properties,
		}
		logger.Info("using mongo store", "database", cfg.MongoDB)
		return store{factory: factory, properties: properties, ready: func() error {
			ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
			defer cancel()
			return client.Ping(ctx)
		}}, nil
	default:
		properties := memory.NewPropertyCatalog()
		factory := &memory.Factory{
			ReservationRepo: memory.NewReservationRepository(),
			PropertyCat:     properties,
		}
		logger.Info("using in-memory store")
		return store{factory: factory, properties: properties, ready: func() error { return nil }}, nil
	}
}

func buildNotifier(cfg config.Config, logger *slog.Logger) (policies.Notifier, func()) {
	if len(cfg.KafkaBrokers) == 0 {
		return notify.LogNotifier{Logger: logger}, func() {}
	}
	producer, err := kafkabroker.NewProducer(cfg.KafkaBrokers, nil)
	if err != nil {
		logger.Warn("kafka producer unavailable, logging notifications instead", "error", err)
		return notify.LogNotifier{Logger: logger}, func() {}
	}
	logger.Info("kafka notifier enabled", "brokers", cfg.KafkaBrokers)
	notifier := &notify.KafkaNotifier{
		Producer:    producer,
		TopicPrefix: cfg.KafkaTopicPrefix,
		Logger:      logger,
	}
	return notifier, func() {
		if err := producer.Close(); err != nil {
			logger.Warn("kafka producer close failed", "error", err)
		}
	}
}

type propertyFixture struct {
	ID               string `json:"id"`
	Title            string `json:"title"`
	NightlyRateCents int64  `json:"nightly_rate_cents"`
}

func loadPropertyFixtures(ctx context.Context, catalog propertyStore, path string, logger *slog.Logger) error {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			logger.Info("property fixtures file not found, skipping", "path", path)
			return nil
		}
		return fmt.Errorf("read fixtures: %w", err)
	}
	if len(data) == 0 {
		logger.Warn("property fixtures file empty", "path", path)
		return nil
	}

	var fixtures []propertyFixture
	if err := json.Unmarshal(data, &fixtures); err != nil {
		return fmt.Errorf("decode fixtures: %w", err)
	}

	for _, fx := range fixtures {
		if fx.ID == "" || fx.NightlyRateCents <= 0 {
			logger.Error("fixture invalid", "property_id", fx.ID)
			continue
		}
		prop := &property.Property{
			ID:               fx.ID,
			Title:            fx.Title,
			NightlyRateCents: fx.NightlyRateCents,
		}
		if err := catalog.Put(ctx, prop); err != nil {
			logger.Error("cannot store fixture property", "property_id", fx.ID, "error", err)
			continue
		}
		logger.Info("property fixture imported", "property_id", fx.ID)
	}
	return nil
}

func defaultPropertyFixturesPath() string {
	return filepath.Join("data", "properties.json")
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
