// Package events publishes resource change notifications to Kafka.
//
// Every successful create, update or delete emits one message keyed
// "<resource>.<action>.<id>". Publishing is best effort: a missing broker
// list turns the publisher into a no-op, and delivery errors are logged.
package events

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"

	"github.com/deppfellow/starwars-api/internal/config"
)

type Action string

const (
	ActionCreated Action = "created"
	ActionUpdated Action = "updated"
	ActionDeleted Action = "deleted"
)

// Event describes a single mutation. Record is the wire-format record after
// the change, or the last snapshot for deletions.
type Event struct {
	Resource   string    `json:"resource"`
	Action     Action    `json:"action"`
	ID         int64     `json:"id"`
	Record     any       `json:"record"`
	OccurredAt time.Time `json:"occurred_at"`
}

func (e Event) Key() string {
	return fmt.Sprintf("%s.%s.%d", e.Resource, e.Action, e.ID)
}

type messageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafka.Message) error
	Close() error
}

type Publisher struct {
	writer messageWriter
	logger *zerolog.Logger
}

// NewPublisher returns a publisher writing asynchronously to the configured
// topic, or a no-op publisher when no brokers are configured.
func NewPublisher(cfg *config.Config, logger *zerolog.Logger) *Publisher {
	p := &Publisher{logger: logger}

	if len(cfg.Integration.KafkaBrokers) == 0 {
		logger.Info().Msg("kafka brokers not configured, change events disabled")
		return p
	}

	p.writer = &kafka.Writer{
		Addr:                   kafka.TCP(cfg.Integration.KafkaBrokers...),
		Topic:                  cfg.Integration.KafkaTopic,
		Balancer:               &kafka.Hash{},
		RequiredAcks:           kafka.RequireOne,
		AllowAutoTopicCreation: true,
		Async:                  true,
		Completion: func(messages []kafka.Message, err error) {
			if err != nil {
				logger.Error().Err(err).Int("messages", len(messages)).Msg("failed to deliver change events")
			}
		},
	}

	logger.Info().
		Strs("brokers", cfg.Integration.KafkaBrokers).
		Str("topic", cfg.Integration.KafkaTopic).
		Msg("kafka change events enabled")

	return p
}

func (p *Publisher) Enabled() bool {
	return p != nil && p.writer != nil
}

func (p *Publisher) Publish(ctx context.Context, evt Event) error {
	if !p.Enabled() {
		return nil
	}

	if evt.OccurredAt.IsZero() {
		evt.OccurredAt = time.Now().UTC()
	}

	payload, err := json.Marshal(evt)
	if err != nil {
		return fmt.Errorf("failed to marshal %s event: %w", evt.Key(), err)
	}

	if err := p.writer.WriteMessages(ctx, kafka.Message{
		Key:   []byte(evt.Key()),
		Value: payload,
	}); err != nil {
		return fmt.Errorf("failed to publish %s event: %w", evt.Key(), err)
	}

	return nil
}

// Close flushes pending messages.
func (p *Publisher) Close() error {
	if !p.Enabled() {
		return nil
	}
	return p.writer.Close()
}
