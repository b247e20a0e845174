package kafka

import (
	"context"
	"errors"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/kitchen-board/internal/observability"
)

//go:generate mockgen -source internal/kafka/consumer.go -destination=internal/kafka/consumer_mock_test.go -package=kafka

type MessageHandler interface {
	Handle(ctx context.Context, msg kafkago.Message) error
}

type Reader interface {
	Config() kafkago.ReaderConfig
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

type Consumer struct {
	handler MessageHandler
	reader  Reader
	logger  *zap.Logger
	metrics observability.Metrics

	workers int
	jobs    chan jobItem

	idleBackoff     time.Duration
	errorBackoff    time.Duration
	commitBackoff   time.Duration
	retryBackoff    time.Duration
	maxRetryBackoff time.Duration
}

type jobItem struct {
	msg    kafkago.Message
	result chan error
}

func NewReader(brokers []string, topic, group string) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:  brokers,
		GroupID:  group,
		Topic:    topic,
		MinBytes: 1,
		MaxBytes: 10e6,
		MaxWait:  time.Second,
	})
}

func NewConsumer(handler MessageHandler, reader Reader, workers int, metrics observability.Metrics, logger *zap.Logger) *Consumer {
	if workers <= 0 {
		workers = 1
	}
	if metrics == nil {
		metrics = observability.NewNoop()
	}
	return &Consumer{
		handler:       handler,
		reader:        reader,
		logger:        logger,
		metrics:       metrics,
		workers:       workers,
		jobs:          make(chan jobItem, workers*2),
		idleBackoff:     10 * time.Second,
		errorBackoff:    500 * time.Millisecond,
		commitBackoff:   200 * time.Millisecond,
		retryBackoff:    200 * time.Millisecond,
		maxRetryBackoff: 30 * time.Second,
	}
}

// Start blocks until ctx is done. Offsets are committed strictly in fetch
// order: the loop waits for each message's result before fetching the next,
// and a failed message is handled again until it succeeds.
func (c *Consumer) Start(ctx context.Context) {
	rc := c.reader.Config()
	c.logger.Info("Starting Kafka consumer",
		zap.Strings("brokers", rc.Brokers),
		zap.String("group", rc.GroupID),
		zap.String("topic", rc.Topic),
		zap.Int("workers", c.workers),
	)

	for i := 0; i < c.workers; i++ {
		go c.worker(ctx, i)
	}

	for {
		if ctx.Err() != nil {
			return
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if isBenignFetchTimeout(err) {
				c.logger.Debug("fetch timeout (idle), backing off", zap.Error(err))
				sleepWithContext(ctx, c.idleBackoff)
				continue
			}
			c.logger.Warn("FetchMessage error, backing off", zap.Error(err))
			sleepWithContext(ctx, c.errorBackoff)
			continue
		}

		if !c.dispatch(ctx, msg) {
			return
		}

		if err := c.reader.CommitMessages(ctx, msg); err != nil {
			c.logger.Warn("commit failed",
				zap.Error(err),
				zap.String("topic", msg.Topic),
				zap.Int("partition", msg.Partition),
				zap.Int64("offset", msg.Offset),
			)
			sleepWithContext(ctx, c.commitBackoff)
			continue
		}
		c.logger.Debug("message committed",
			zap.String("topic", msg.Topic), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
	}
}

// dispatch hands msg to a worker and waits for the result. A failed message
// is handed over again with doubling backoff and never skipped. It returns
// false once ctx is done.
func (c *Consumer) dispatch(ctx context.Context, msg kafkago.Message) bool {
	backoff := c.retryBackoff
	for attempt := 1; ; attempt++ {
		done := make(chan error, 1)
		select {
		case c.jobs <- jobItem{msg: msg, result: done}:
		case <-ctx.Done():
			return false
		}

		var err error
		select {
		case err = <-done:
		case <-ctx.Done():
			return false
		}
		if err == nil {
			return true
		}

		c.logger.Error("handler failed, retrying the same message",
			zap.Error(err),
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
			zap.Int("attempt", attempt),
			zap.Duration("backoff", backoff),
		)
		sleepWithContext(ctx, backoff)
		if ctx.Err() != nil {
			return false
		}
		backoff *= 2
		if c.maxRetryBackoff > 0 && backoff > c.maxRetryBackoff {
			backoff = c.maxRetryBackoff
		}
	}
}

func (c *Consumer) worker(ctx context.Context, id int) {
	log := c.logger.With(zap.Int("worker", id))
	for {
		select {
		case <-ctx.Done():
			return
		case it := <-c.jobs:
			msg := it.msg
			start := time.Now()
			err := c.handler.Handle(ctx, msg)
			elapsed := time.Since(start)
			c.metrics.ObserveKafka(float64(elapsed.Microseconds())/1000, err == nil)

			if err != nil {
				log.Error("message handling failed",
					zap.Error(err),
					zap.Int64("offset", msg.Offset),
					zap.Duration("elapsed", elapsed),
				)
			} else {
				log.Debug("message handled",
					zap.Int64("offset", msg.Offset),
					zap.Int("value_bytes", len(msg.Value)),
					zap.Duration("elapsed", elapsed),
				)
			}
			it.result <- err
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func isBenignFetchTimeout(err error) bool {
	s := err.Error()
	return strings.Contains(s, "Request Timed Out") ||
		strings.Contains(s, "no messages received from kafka within the allocated time")
}
