// Command storesim stands in for the remote order store during local
// development: it reads board events and answers each with a confirmation.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"math/rand"
	"os/signal"
	"syscall"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/config"
	"github.com/TemirB/kitchen-board/internal/domain"
	"github.com/TemirB/kitchen-board/internal/kafka"
	"github.com/TemirB/kitchen-board/internal/observability"
)

type confirmer struct {
	writer kafka.Writer
	logger *zap.Logger
	delay  time.Duration
	reject float64
	rnd    *rand.Rand
}

// Handle echoes the event as a confirmation. With probability reject the
// store "disagrees" and confirms the previous state instead.
func (c *confirmer) Handle(ctx context.Context, msg kafkago.Message) error {
	var ev kafka.Event
	if err := json.Unmarshal(msg.Value, &ev); err != nil {
		c.logger.Warn("Skipping undecodable event", zap.Error(err))
		return nil
	}

	conf := domain.Confirmation{
		OrderUID:    ev.OrderUID,
		Status:      ev.Status,
		ConfirmedAt: time.Now(),
	}
	column := ev.BoardColumn
	if c.rnd.Float64() < c.reject {
		if ev.PrevStatus != "" {
			conf.Status = ev.PrevStatus
		}
		if ev.Kind == kafka.KindPlacementChanged {
			column = ev.PrevColumn
		}
	}
	if column != "" {
		conf.BoardColumn = &column
	}

	value, err := json.Marshal(conf)
	if err != nil {
		return fmt.Errorf("encode confirmation: %w", err)
	}

	select {
	case <-time.After(c.delay):
	case <-ctx.Done():
		return ctx.Err()
	}

	if err := c.writer.WriteMessages(ctx, kafkago.Message{Key: []byte(conf.OrderUID), Value: value}); err != nil {
		return err
	}
	c.logger.Info("Confirmed",
		zap.String("order_uid", conf.OrderUID),
		zap.String("kind", ev.Kind),
		zap.String("status", conf.Status.String()),
	)
	return nil
}

func main() {
	cfg := config.Load()

	logger, err := zap.NewDevelopment()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	writer := kafka.NewWriter(cfg.Kafka.Brokers, cfg.Kafka.ConfirmTopic)
	defer func() { _ = writer.Close() }()

	reader := kafka.NewReader(cfg.Kafka.Brokers, cfg.Kafka.EventsTopic, cfg.Kafka.Group+"-storesim")
	defer func() { _ = reader.Close() }()

	c := &confirmer{
		writer: writer,
		logger: logger,
		delay:  200 * time.Millisecond,
		reject: 0.05,
		rnd:    rand.New(rand.NewSource(time.Now().UnixNano())),
	}

	logger.Info("Order store simulator started",
		zap.String("events", cfg.Kafka.EventsTopic),
		zap.String("confirmations", cfg.Kafka.ConfirmTopic),
	)
	kafka.NewConsumer(c, reader, 1, observability.NewNoop(), logger).Start(ctx)
}
