package kafka

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/config"
	"github.com/TemirB/kitchen-board/internal/domain"
	"github.com/TemirB/kitchen-board/internal/pkg/retry"
)

//go:generate mockgen -source internal/kafka/publisher.go -destination=internal/kafka/publisher_mock_test.go -package=kafka

const (
	KindStatusChanged    = "status_changed"
	KindPlacementChanged = "placement_changed"
)

type Writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Event is what the order store receives for every local change.
type Event struct {
	EventID     string             `json:"event_id"`
	Kind        string             `json:"kind"`
	OrderUID    string             `json:"order_uid"`
	Status      domain.Status      `json:"status"`
	PrevStatus  domain.Status      `json:"prev_status,omitempty"`
	BoardColumn domain.BoardColumn `json:"board_column,omitempty"`
	PrevColumn  domain.BoardColumn `json:"prev_board_column,omitempty"`
	OccurredAt  time.Time          `json:"occurred_at"`
}

// Publisher sends status and placement changes to the order store topic.
type Publisher struct {
	writer Writer
	policy config.Retry
	logger *zap.Logger
	newID  func() string
	now    func() time.Time
}

func NewWriter(brokers []string, topic string) *kafkago.Writer {
	return &kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		BatchTimeout: 10 * time.Millisecond,
		RequiredAcks: kafkago.RequireOne,
	}
}

func NewPublisher(writer Writer, policy config.Retry, logger *zap.Logger) *Publisher {
	return &Publisher{
		writer: writer,
		policy: policy,
		logger: logger,
		newID:  func() string { return uuid.NewString() },
		now:    time.Now,
	}
}

func (p *Publisher) StatusChanged(ctx context.Context, order domain.Order, from domain.Status) error {
	return p.publish(ctx, Event{
		Kind:        KindStatusChanged,
		OrderUID:    order.OrderUID,
		Status:      order.Status,
		PrevStatus:  from,
		BoardColumn: order.BoardColumn,
	})
}

func (p *Publisher) PlacementChanged(ctx context.Context, order domain.Order, from domain.BoardColumn) error {
	return p.publish(ctx, Event{
		Kind:        KindPlacementChanged,
		OrderUID:    order.OrderUID,
		Status:      order.Status,
		BoardColumn: order.BoardColumn,
		PrevColumn:  from,
	})
}

func (p *Publisher) Close() error {
	return p.writer.Close()
}

func (p *Publisher) publish(ctx context.Context, ev Event) error {
	ev.EventID = p.newID()
	ev.OccurredAt = p.now()

	value, err := json.Marshal(ev)
	if err != nil {
		return fmt.Errorf("encode event: %w", err)
	}
	msg := kafkago.Message{
		Key:   []byte(ev.OrderUID),
		Value: value,
		Time:  ev.OccurredAt,
	}

	if err := retry.Do(ctx, p.policy, func() error {
		return p.writer.WriteMessages(ctx, msg)
	}); err != nil {
		return fmt.Errorf("publish %s: %w", ev.Kind, err)
	}

	p.logger.Debug("Event published",
		zap.String("event_id", ev.EventID),
		zap.String("kind", ev.Kind),
		zap.String("order_uid", ev.OrderUID),
	)
	return nil
}
