package contact

import (
	"context"
	"fmt"

	"github.com/hibiken/asynq"

	"github.com/yeyclub/platform/internal/action"
	"github.com/yeyclub/platform/internal/sanitize"
	"github.com/yeyclub/platform/internal/validate"
	"github.com/yeyclub/platform/jobs"
)

// MsgCaptchaFailed is surfaced on a rejected CAPTCHA token.
const MsgCaptchaFailed = "CAPTCHA doğrulaması başarısız oldu."

// Verifier checks a CAPTCHA token.
type Verifier interface {
	Verify(ctx context.Context, token string) (bool, error)
}

// MailQueue enqueues outbound e-mail. Satisfied by *jobs.Client.
type MailQueue interface {
	EnqueueSendEmail(ctx context.Context, payload jobs.SendEmailPayload) (*asynq.TaskInfo, error)
}

// Service turns contact form submissions into e-mail tasks.
type Service struct {
	verifier Verifier
	mail     MailQueue
	to       string
}

// NewService constructs a Service. to is the inbox receiving
// submissions.
func NewService(verifier Verifier, mail MailQueue, to string) *Service {
	return &Service{verifier: verifier, mail: mail, to: to}
}

// SubmitInput is a contact form submission.
type SubmitInput struct {
	Name           string `json:"name" validate:"required,min=2" msg:"İsim en az 2 karakter olmalı"`
	Email          string `json:"email" validate:"required,email" msg:"Geçerli bir e-posta giriniz"`
	Subject        string `json:"subject" validate:"required,min=3" msg:"Konu en az 3 karakter olmalı"`
	Message        string `json:"message" validate:"required,min=10" msg:"Mesaj en az 10 karakter olmalı"`
	TurnstileToken string `json:"turnstile_token"`
}

// Submit validates a submission and enqueues the notification e-mail.
// The CAPTCHA is checked only when the client sent a token; the
// verifier decides whether a secret is configured at all.
func (s *Service) Submit(ctx context.Context, input SubmitInput) (action.Void, map[string]any, error) {
	input.Email = sanitize.Email(input.Email)
	if err := validate.Input(&input); err != nil {
		return action.Void{}, nil, err
	}

	if input.TurnstileToken != "" {
		ok, err := s.verifier.Verify(ctx, input.TurnstileToken)
		if err != nil {
			return action.Void{}, nil, err
		}
		if !ok {
			return action.Void{}, nil, action.NewError(MsgCaptchaFailed, action.CodeValidation, 400)
		}
	}

	name := sanitize.Text(input.Name)
	subject := sanitize.Text(input.Subject)
	message := sanitize.Text(input.Message)

	payload := jobs.SendEmailPayload{
		To:      s.to,
		ReplyTo: input.Email,
		Subject: fmt.Sprintf("İletişim formu: %s", subject),
		Body:    fmt.Sprintf("Gönderen: %s <%s>\n\n%s", name, input.Email, message),
	}
	if _, err := s.mail.EnqueueSendEmail(ctx, payload); err != nil {
		return action.Void{}, nil, err
	}

	return action.Void{}, map[string]any{"email": input.Email}, nil
}
