package events

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/segmentio/kafka-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/config"
)

type fakeWriter struct {
	messages []kafka.Message
	err      error
	closed   bool
}

func (w *fakeWriter) WriteMessages(_ context.Context, msgs ...kafka.Message) error {
	if w.err != nil {
		return w.err
	}
	w.messages = append(w.messages, msgs...)
	return nil
}

func (w *fakeWriter) Close() error {
	w.closed = true
	return nil
}

func TestPublisherDisabledWithoutBrokers(t *testing.T) {
	logger := zerolog.Nop()
	p := NewPublisher(config.DefaultConfig(), &logger)

	assert.False(t, p.Enabled())
	assert.NoError(t, p.Publish(context.Background(), Event{Resource: "planet", Action: ActionCreated, ID: 1}))
	assert.NoError(t, p.Close())
}

func TestPublisherEnabledWithBrokers(t *testing.T) {
	logger := zerolog.Nop()
	cfg := config.DefaultConfig()
	cfg.Integration.KafkaBrokers = []string{"localhost:9092"}

	p := NewPublisher(cfg, &logger)
	assert.True(t, p.Enabled())
}

func TestPublish(t *testing.T) {
	logger := zerolog.Nop()
	w := &fakeWriter{}
	p := &Publisher{writer: w, logger: &logger}

	at := time.Date(2024, 5, 4, 12, 0, 0, 0, time.UTC)
	err := p.Publish(context.Background(), Event{
		Resource:   "character",
		Action:     ActionDeleted,
		ID:         9,
		Record:     map[string]any{"id": 9, "name": "Jabba"},
		OccurredAt: at,
	})
	require.NoError(t, err)
	require.Len(t, w.messages, 1)

	msg := w.messages[0]
	assert.Equal(t, "character.deleted.9", string(msg.Key))
	assert.JSONEq(t, `{
		"resource": "character",
		"action": "deleted",
		"id": 9,
		"record": {"id": 9, "name": "Jabba"},
		"occurred_at": "2024-05-04T12:00:00Z"
	}`, string(msg.Value))

	require.NoError(t, p.Close())
	assert.True(t, w.closed)
}

func TestPublishStampsTime(t *testing.T) {
	logger := zerolog.Nop()
	w := &fakeWriter{}
	p := &Publisher{writer: w, logger: &logger}

	require.NoError(t, p.Publish(context.Background(), Event{Resource: "user", Action: ActionCreated, ID: 1}))

	var evt Event
	require.NoError(t, json.Unmarshal(w.messages[0].Value, &evt))
	assert.False(t, evt.OccurredAt.IsZero())
}

func TestPublishWrapsWriterError(t *testing.T) {
	logger := zerolog.Nop()
	boom := errors.New("broker down")
	p := &Publisher{writer: &fakeWriter{err: boom}, logger: &logger}

	err := p.Publish(context.Background(), Event{Resource: "planet", Action: ActionUpdated, ID: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "planet.updated.2")
}
