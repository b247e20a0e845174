package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"

	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/application/handler"
	"github.com/TemirB/kitchen-board/internal/application/service"
	"github.com/TemirB/kitchen-board/internal/board"
	"github.com/TemirB/kitchen-board/internal/cache"
	"github.com/TemirB/kitchen-board/internal/config"
	"github.com/TemirB/kitchen-board/internal/database"
	"github.com/TemirB/kitchen-board/internal/httpapi"
	"github.com/TemirB/kitchen-board/internal/kafka"
	"github.com/TemirB/kitchen-board/internal/observability"
	"github.com/TemirB/kitchen-board/internal/ordering"
	"github.com/TemirB/kitchen-board/internal/pkg/breaker"
	"github.com/TemirB/kitchen-board/internal/preserve"
	"github.com/TemirB/kitchen-board/internal/workflow"
)

func main() {
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewInmem(1000)

	// Postgres
	pool, err := database.Connect(ctx, cfg.DSN(), logger)
	if err != nil {
		logger.Fatal("Can't connect to postgres", zap.Error(err))
	}
	defer pool.Close()
	if err := database.Migrate(ctx, pool, cfg.Tables); err != nil {
		logger.Fatal("Migration failed", zap.Error(err))
	}
	repo := database.NewOrderRepo(pool, cfg.Tables)

	// Caches
	orders, err := cache.NewOrders(cfg.Cache.Cap, logger)
	if err != nil {
		logger.Fatal("Can't create order cache", zap.Error(err))
	}
	orders.Warm(ctx, repo)

	cacheOpts := []cache.Option{cache.WithMetrics(metrics)}
	if cfg.Cache.SingleFlight {
		cacheOpts = append(cacheOpts, cache.WithSingleFlight())
	}
	lists := cache.NewRegistry(cfg.Cache.TTL, cacheOpts...)

	// Kafka
	if err := kafka.EnsureTopics(ctx, cfg.Kafka.Brokers, []kafka.TopicSpec{
		{Name: cfg.Kafka.EventsTopic},
		{Name: cfg.Kafka.ConfirmTopic},
	}, logger); err != nil {
		logger.Fatal("Kafka topics unavailable", zap.Error(err))
	}
	publisher := kafka.NewPublisher(kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic), cfg.Retry, logger)
	defer func() { _ = publisher.Close() }()

	// Board
	engine := workflow.NewEngine(publisher, logger)
	resolver, err := board.NewResolver(cfg.Board.MaxColumns, publisher, logger)
	if err != nil {
		logger.Fatal("Invalid board configuration", zap.Error(err))
	}

	svc := service.NewService(service.Deps{
		Storage:  repo,
		Cache:    orders,
		Lists:    lists,
		Engine:   engine,
		Resolver: resolver,
		Ordering: ordering.NewRegistry(cfg.Board.OrderingNamespace, database.NewOrderingStorage(pool, cfg.Tables), logger),
		Views:    preserve.New(logger),
		Logger:   logger,
		Metrics:  metrics,
	})

	// Confirmations
	reader := kafka.NewReader(cfg.Kafka.Brokers, cfg.Kafka.ConfirmTopic, cfg.Kafka.Group)
	defer func() { _ = reader.Close() }()
	h := handler.NewHandler(svc, breaker.New(cfg.Breaker), cfg.Retry, logger)
	consumer := kafka.NewConsumer(h, reader, cfg.Kafka.Workers, metrics, logger)
	go consumer.Start(ctx)

	// HTTP
	server := httpapi.New(svc, logger, metrics)
	if err := server.ListenAndServe(ctx, cfg.HTTPAddr); err != nil && !errors.Is(err, http.ErrServerClosed) {
		logger.Error("HTTP server stopped", zap.Error(err))
	}

	logger.Info("Kitchen board stopped")
}
