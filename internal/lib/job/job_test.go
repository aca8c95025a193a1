package job

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/hibiken/asynq"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/deppfellow/starwars-api/internal/config"
)

func TestNewWelcomeEmailTask(t *testing.T) {
	task, err := NewWelcomeEmailTask("han@falcon.space")
	require.NoError(t, err)

	assert.Equal(t, TaskWelcome, task.Type())

	var p WelcomeEmailPayload
	require.NoError(t, json.Unmarshal(task.Payload(), &p))
	assert.Equal(t, "han@falcon.space", p.To)
}

func TestHandleWelcomeEmailTask(t *testing.T) {
	logger := zerolog.Nop()
	j := &JobService{logger: &logger}

	t.Run("email disabled", func(t *testing.T) {
		task, err := NewWelcomeEmailTask("han@falcon.space")
		require.NoError(t, err)
		assert.NoError(t, j.handleWelcomeEmailTask(context.Background(), task))
	})

	t.Run("malformed payload is not retried", func(t *testing.T) {
		task := asynq.NewTask(TaskWelcome, []byte("{"))
		err := j.handleWelcomeEmailTask(context.Background(), task)
		require.Error(t, err)
		assert.True(t, errors.Is(err, asynq.SkipRetry))
	})
}

func TestEnqueueWelcomeEmail(t *testing.T) {
	mr := miniredis.RunT(t)

	cfg := config.DefaultConfig()
	cfg.Redis.Address = mr.Addr()
	logger := zerolog.Nop()

	j := NewJobService(&logger, cfg)
	t.Cleanup(func() { _ = j.Client.Close() })

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	require.NoError(t, j.EnqueueWelcomeEmail(ctx, "chewie@kashyyyk.org"))

	inspector := asynq.NewInspector(asynq.RedisClientOpt{Addr: mr.Addr()})
	t.Cleanup(func() { _ = inspector.Close() })

	tasks, err := inspector.ListPendingTasks("default")
	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, TaskWelcome, tasks[0].Type)
}
