package jobs

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/hibiken/asynq"

	jobmetrics "github.com/yeyclub/platform/internal/jobs"
	"github.com/yeyclub/platform/internal/push"
)

const (
	// QueueDefault is the default queue name for background jobs.
	QueueDefault = "default"
	// TaskTypeSendEmail is the task type for transactional emails.
	TaskTypeSendEmail = "mail:send"
	// TaskTypeSendPush is the task type for Expo push notifications.
	TaskTypeSendPush = "push:send"
)

// SendEmailPayload describes the information required to send an email.
type SendEmailPayload struct {
	To      string `json:"to"`
	ReplyTo string `json:"reply_to,omitempty"`
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendPushPayload describes a push notification fan-out.
type SendPushPayload struct {
	Tokens []string          `json:"tokens"`
	Title  string            `json:"title"`
	Body   string            `json:"body"`
	Data   map[string]string `json:"data,omitempty"`
}

// NewSendEmailTask constructs an Asynq task.
func NewSendEmailTask(payload SendEmailPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendEmail, data), nil
}

// NewSendPushTask constructs an Asynq task.
func NewSendPushTask(payload SendPushPayload) (*asynq.Task, error) {
	data, err := json.Marshal(payload)
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TaskTypeSendPush, data), nil
}

// NewSendEmailHandler processes TaskTypeSendEmail tasks through the
// given mailer.
func NewSendEmailHandler(mailer Mailer, metrics *jobmetrics.Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("mail_send")
		var payload SendEmailPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			_ = tracker.End(err)
			return asynq.SkipRetry
		}
		err := mailer.Send(ctx, payload)
		if err != nil {
			logger.Error("send email failed",
				slog.String("to", payload.To), slog.Any("error", err))
		}
		return tracker.End(err)
	}
}

// NewSendPushHandler processes TaskTypeSendPush tasks through the Expo
// client.
func NewSendPushHandler(client *push.Client, metrics *jobmetrics.Metrics, logger *slog.Logger) asynq.HandlerFunc {
	return func(ctx context.Context, t *asynq.Task) error {
		tracker := metrics.Track("push_send")
		var payload SendPushPayload
		if err := json.Unmarshal(t.Payload(), &payload); err != nil {
			_ = tracker.End(err)
			return asynq.SkipRetry
		}
		if len(payload.Tokens) == 0 {
			return tracker.End(nil)
		}
		err := client.Send(ctx, push.Message{
			Tokens: payload.Tokens,
			Title:  payload.Title,
			Body:   payload.Body,
			Data:   payload.Data,
		})
		if err != nil {
			logger.Error("send push failed", slog.Any("error", err))
		}
		return tracker.End(err)
	}
}
