// Package kafka wraps the franz-go client behind the producer port the
// employee service consumes. One long-lived client is shared by all
// concurrent workflow runs; Publish is safe for concurrent use.
package kafka

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/twmb/franz-go/pkg/kadm"
	"github.com/twmb/franz-go/pkg/kerr"
	"github.com/twmb/franz-go/pkg/kgo"
)

// defaultDeliveryTimeout bounds a single publish when the caller has not set
// a deadline, so a broker outage cannot hold a database transaction open
// indefinitely.
const defaultDeliveryTimeout = 10 * time.Second

// Config carries broker connectivity and the two topics this service owns.
type Config struct {
	BootstrapServers []string
	DeliveryTimeout  time.Duration
}

// Producer publishes notification events.
type Producer struct {
	client  *kgo.Client
	timeout time.Duration
	logger  *slog.Logger
}

// NewProducer connects a producer to the configured brokers.
func NewProducer(cfg Config, logger *slog.Logger) (*Producer, error) {
	if len(cfg.BootstrapServers) == 0 {
		return nil, errors.New("kafka bootstrap servers were not specified")
	}

	client, err := kgo.NewClient(
		kgo.SeedBrokers(cfg.BootstrapServers...),
		kgo.RequiredAcks(kgo.AllISRAcks()),
		kgo.ProducerBatchCompression(kgo.SnappyCompression()),
	)
	if err != nil {
		return nil, fmt.Errorf("create kafka client: %w", err)
	}

	timeout := cfg.DeliveryTimeout
	if timeout <= 0 {
		timeout = defaultDeliveryTimeout
	}
	return &Producer{client: client, timeout: timeout, logger: logger}, nil
}

// Publish produces one record synchronously and waits for the broker ack.
// The key carries the employee id so all events for one employee stay
// ordered within a partition. Cancellation of ctx aborts the wait.
func (p *Producer) Publish(ctx context.Context, topic, key string, value []byte) error {
	if _, hasDeadline := ctx.Deadline(); !hasDeadline {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.timeout)
		defer cancel()
	}

	record := &kgo.Record{
		Topic: topic,
		Key:   []byte(key),
		Value: value,
		Headers: []kgo.RecordHeader{
			{Key: "message-id", Value: []byte(uuid.NewString())},
		},
	}
	if err := p.client.ProduceSync(ctx, record).FirstErr(); err != nil {
		return fmt.Errorf("produce to %s: %w", topic, err)
	}
	return nil
}

// EnsureTopics creates the named topics when they do not exist yet, so a
// fresh environment can accept events without manual broker administration.
func (p *Producer) EnsureTopics(ctx context.Context, topics ...string) error {
	admin := kadm.NewClient(p.client)
	resps, err := admin.CreateTopics(ctx, 1, 1, nil, topics...)
	if err != nil {
		return fmt.Errorf("create topics: %w", err)
	}
	for _, resp := range resps.Sorted() {
		if resp.Err != nil && !errors.Is(resp.Err, kerr.TopicAlreadyExists) {
			return fmt.Errorf("create topic %s: %w", resp.Topic, resp.Err)
		}
		if resp.Err == nil {
			p.logger.Info("created kafka topic", "topic", resp.Topic)
		}
	}
	return nil
}

// Close flushes buffered records and releases the client.
func (p *Producer) Close() {
	p.client.Close()
}
