package jobs

import (
	"context"
	"errors"
	"testing"

	"github.com/hibiken/asynq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type recordingMailer struct {
	sent []SendEmailPayload
	err  error
}

func (m *recordingMailer) Send(_ context.Context, payload SendEmailPayload) error {
	if m.err != nil {
		return m.err
	}
	m.sent = append(m.sent, payload)
	return nil
}

func TestSendEmailHandlerDeliversPayload(t *testing.T) {
	mailer := &recordingMailer{}
	handler := NewSendEmailHandler(mailer, nil, discardLogger())

	task, err := NewSendEmailTask(SendEmailPayload{
		To:      "iletisim@yeyclub.com",
		ReplyTo: "uye@example.com",
		Subject: "İletişim formu",
		Body:    "Merhaba",
	})
	require.NoError(t, err)

	require.NoError(t, handler(context.Background(), task))
	require.Len(t, mailer.sent, 1)
	assert.Equal(t, "uye@example.com", mailer.sent[0].ReplyTo)
}

func TestSendEmailHandlerSkipsRetryOnBadPayload(t *testing.T) {
	mailer := &recordingMailer{}
	handler := NewSendEmailHandler(mailer, nil, discardLogger())

	task := asynq.NewTask(TaskTypeSendEmail, []byte("{not json"))
	err := handler(context.Background(), task)
	assert.ErrorIs(t, err, asynq.SkipRetry)
	assert.Empty(t, mailer.sent)
}

func TestSendEmailHandlerPropagatesMailerError(t *testing.T) {
	mailer := &recordingMailer{err: errors.New("smtp down")}
	handler := NewSendEmailHandler(mailer, nil, discardLogger())

	task, err := NewSendEmailTask(SendEmailPayload{To: "a@b.c", Subject: "x", Body: "y"})
	require.NoError(t, err)

	assert.Error(t, handler(context.Background(), task))
}
