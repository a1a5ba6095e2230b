package main

import (
	"context"
	"errors"
	stdlog "log"
	"net"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/cache"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/carrier"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/config"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/db"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/fulfillment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/grpcserver"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/kafka"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/logger"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/packer"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/payment"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/quote"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/repository/sheets"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/resolver"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/server"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/tabular"
	"gitlab.ozon.dev/pupkingeorgij/fulfillment/internal/tabular/postgresql"
)

const healthInterval = 10 * time.Second

type sheetStore interface {
	tabular.Store
	sheets.Definer
}

type pingFunc func(ctx context.Context) error

func (f pingFunc) Ping(ctx context.Context) error { return f(ctx) }

func main() {
	cfg, err := config.Load()
	if err != nil {
		// zap is not configured yet.
		stdlog.Fatalf("Failed to load config: %v", err)
	}

	log := logger.New(logger.Config{
		Level:  cfg.Log.Level,
		Format: cfg.Log.Format,
		Output: cfg.Log.Output,
	})
	defer func() { _ = log.Sync() }()

	ctx, cancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer cancel()

	if err := run(ctx, cfg, log); err != nil {
		log.Error("Service stopped with error", zap.Error(err))
		os.Exit(1)
	}
	log.Info("Service gracefully stopped")
}

func run(ctx context.Context, cfg *config.Config, log *zap.Logger) error {
	var (
		store   sheetStore
		pingers []grpcserver.Pinger
	)

	if cfg.Database.Enabled() {
		database, err := db.NewDb(ctx, cfg.Database.DSN())
		if err != nil {
			return err
		}
		defer database.Close()

		pgStore := postgresql.NewStore(database)
		if err := pgStore.Migrate(ctx); err != nil {
			return err
		}
		store = pgStore
		pingers = append(pingers, database)
		log.Info("Using postgres sheet store", zap.String("host", cfg.Database.Host))
	} else {
		store = tabular.NewMemoryStore()
		log.Warn("Database host not set, using in-memory sheet store")
	}

	if err := sheets.EnsureAll(ctx, store); err != nil {
		return err
	}

	table := tabular.NewAdapter(store)
	orders := sheets.NewOrderRepo(table)
	zips := sheets.NewZipRepo(table)
	variants := sheets.NewVariantRepo(table)
	events := sheets.NewEventRepo(table)

	var zipStore cache.ZipStore = zips
	if cfg.Redis.Enabled() {
		client, err := cache.NewRedisClient(ctx, cache.RedisConfig{
			Host:     cfg.Redis.Host,
			Port:     cfg.Redis.Port,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
			TTL:      cfg.Redis.TTL,
		})
		if err != nil {
			return err
		}
		defer func() { _ = client.Close() }()

		zipStore = cache.NewRedisZipCache(client, zips, cfg.Redis.TTL, log)
		pingers = append(pingers, redisPinger(client))
	}

	zipCache := cache.NewZipCache(zipStore, log)
	if err := zipCache.LoadInitialData(ctx, zips); err != nil {
		log.Warn("Zip cache warm-up failed", zap.Error(err))
	}

	carrierClient, err := carrier.NewClient(carrier.Config{
		BaseURL:           cfg.Carrier.BaseURL,
		APIKey:            cfg.Carrier.APIKey,
		APISecret:         cfg.Carrier.APISecret,
		AccountID:         cfg.Carrier.AccountID,
		OriginID:          cfg.Carrier.OriginID,
		Country:           cfg.Carrier.Country,
		ResolvePath:       cfg.Carrier.ResolvePath,
		QuotePath:         cfg.Carrier.QuotePath,
		ShipmentsPath:     cfg.Carrier.ShipmentsPath,
		Timeout:           cfg.Carrier.Timeout,
		RequestsPerSecond: cfg.Carrier.RequestsPerSecond,
	})
	if err != nil {
		return err
	}

	parcelPacker := packer.New(variants, log)
	destinations := resolver.New(zipCache, carrierClient, decimal.NewFromFloat(cfg.Quote.ProbeDeclaredValue), log)
	quotes := quote.NewEngine(destinations, parcelPacker, carrierClient, events, quote.Config{
		PlaceholderPrice:  cfg.Quote.PlaceholderPrice,
		EstimatedFallback: cfg.Quote.EstimatedFallback,
	}, log)
	machine := fulfillment.NewMachine(orders, carrierClient, parcelPacker, destinations, log)

	deps := server.Deps{
		Quotes:      quotes,
		Resolver:    destinations,
		Fulfillment: machine,
		Events:      events,
	}
	if cfg.Payment.BaseURL != "" {
		payments, err := payment.NewClient(payment.Config{
			BaseURL:     cfg.Payment.BaseURL,
			AccessToken: cfg.Payment.AccessToken,
			Timeout:     cfg.Carrier.Timeout,
		})
		if err != nil {
			return err
		}
		deps.Payments = payments
	} else {
		log.Warn("Payment API not configured, thin payment notifications cannot be resolved")
	}

	var producer kafka.Producer
	if cfg.Kafka.Enabled() {
		producer = kafka.NewWriterProducer(cfg.Kafka.Brokers, log)
	} else {
		producer = kafka.NewConsoleProducer(log)
	}
	defer func() {
		if err := producer.Close(); err != nil {
			log.Error("Failed to close producer", zap.Error(err))
		}
	}()

	srv := server.New(deps, server.Config{
		WebhookToken:      cfg.Webhook.Token,
		AuditTopic:        cfg.Kafka.AuditTopic,
		AuditWorkers:      cfg.Audit.Workers,
		AuditBatchSize:    cfg.Audit.BatchSize,
		AuditFlushTimeout: cfg.Audit.FlushTimeout,
	}, producer, log)

	health := grpcserver.New(log)
	lis, err := net.Listen("tcp", ":"+cfg.App.GRPCPort)
	if err != nil {
		return err
	}

	errCh := make(chan error, 2)
	go func() {
		if err := srv.Run(ctx, cfg.App.Port); err != nil {
			errCh <- err
		}
	}()
	go func() {
		log.Info("gRPC health server starting", zap.String("port", cfg.App.GRPCPort))
		if err := health.Serve(lis); err != nil {
			errCh <- err
		}
	}()
	go health.Watch(ctx, healthInterval, pingers...)

	var runErr error
	select {
	case <-ctx.Done():
		log.Info("Shutdown signal received")
	case runErr = <-errCh:
		log.Error("Server failed", zap.Error(runErr))
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), cfg.App.ShutdownTimeout)
	defer shutdownCancel()

	health.SetServing(false)
	health.GracefulStop()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		runErr = errors.Join(runErr, err)
	}
	return runErr
}

func redisPinger(client *redis.Client) grpcserver.Pinger {
	return pingFunc(func(ctx context.Context) error {
		return client.Ping(ctx).Err()
	})
}
