//go:build integration

package kafka_test

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"github.com/twmb/franz-go/pkg/kgo"

	"employees/internal/platform/kafka"
	"employees/pkg/testutil/containers"
)

const testTopic = "move-to-conference"

type ProducerSuite struct {
	suite.Suite

	redpanda *containers.RedpandaContainer
	producer *kafka.Producer
}

func TestProducerSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(ProducerSuite))
}

func (s *ProducerSuite) SetupSuite() {
	s.redpanda = containers.NewRedpandaContainer(s.T())

	producer, err := kafka.NewProducer(kafka.Config{
		BootstrapServers: []string{s.redpanda.Broker},
		DeliveryTimeout:  10 * time.Second,
	}, slog.New(slog.DiscardHandler))
	s.Require().NoError(err)
	s.producer = producer
	s.T().Cleanup(producer.Close)

	s.Require().NoError(s.producer.EnsureTopics(context.Background(), testTopic, "employee-created"))
}

func (s *ProducerSuite) TestEnsureTopicsIsIdempotent() {
	s.NoError(s.producer.EnsureTopics(context.Background(), testTopic))
}

func (s *ProducerSuite) TestPublishDeliversKeyedRecord() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	value := []byte(`{"eventType":"ConferenceAttendance"}`)
	s.Require().NoError(s.producer.Publish(ctx, testTopic, "42", value))

	consumer, err := kgo.NewClient(
		kgo.SeedBrokers(s.redpanda.Broker),
		kgo.ConsumeTopics(testTopic),
		kgo.ConsumeResetOffset(kgo.NewOffset().AtStart()),
	)
	s.Require().NoError(err)
	defer consumer.Close()

	fetches := consumer.PollFetches(ctx)
	s.Require().NoError(fetches.Err())

	records := fetches.Records()
	s.Require().NotEmpty(records)

	record := records[0]
	s.Equal(testTopic, record.Topic)
	s.Equal([]byte("42"), record.Key)
	s.Equal(value, record.Value)

	var messageID string
	for _, h := range record.Headers {
		if h.Key == "message-id" {
			messageID = string(h.Value)
		}
	}
	s.NotEmpty(messageID, "records carry a message-id header for consumer deduplication")
}

func (s *ProducerSuite) TestPublishHonorsCancelledContext() {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.producer.Publish(ctx, testTopic, "42", []byte(`{}`))
	s.Error(err)
}
