package job

import (
	"encoding/json"
	"time"

	"github.com/hibiken/asynq"
)

const (
	// TaskWelcome is the task type name stored in Redis.
	TaskWelcome = "email:welcome"
)

type WelcomeEmailPayload struct {
	To string `json:"to"`
}

// NewWelcomeEmailTask builds an email:welcome task on the default queue,
// retried up to 3 times with a 30s execution timeout.
func NewWelcomeEmailTask(to string) (*asynq.Task, error) {
	payload, err := json.Marshal(WelcomeEmailPayload{To: to})
	if err != nil {
		return nil, err
	}

	return asynq.NewTask(
		TaskWelcome,
		payload,
		asynq.MaxRetry(3),
		asynq.Queue("default"),
		asynq.Timeout(30*time.Second),
	), nil
}
