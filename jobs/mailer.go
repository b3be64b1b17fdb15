package jobs

import (
	"context"
	"fmt"
	"net/smtp"
	"strings"
)

// Mailer sends transactional email.
type Mailer interface {
	Send(ctx context.Context, payload SendEmailPayload) error
}

// SMTPMailer sends mail over plain SMTP. Local development points this
// at Mailpit.
type SMTPMailer struct {
	addr string
	from string
}

// NewSMTPMailer constructs an SMTPMailer.
func NewSMTPMailer(host string, port int, from string) *SMTPMailer {
	return &SMTPMailer{
		addr: fmt.Sprintf("%s:%d", host, port),
		from: from,
	}
}

func (m *SMTPMailer) Send(_ context.Context, payload SendEmailPayload) error {
	var msg strings.Builder
	fmt.Fprintf(&msg, "From: %s\r\n", m.from)
	fmt.Fprintf(&msg, "To: %s\r\n", payload.To)
	if payload.ReplyTo != "" {
		fmt.Fprintf(&msg, "Reply-To: %s\r\n", payload.ReplyTo)
	}
	fmt.Fprintf(&msg, "Subject: %s\r\n", payload.Subject)
	msg.WriteString("MIME-Version: 1.0\r\n")
	msg.WriteString("Content-Type: text/plain; charset=utf-8\r\n")
	msg.WriteString("\r\n")
	msg.WriteString(payload.Body)

	return smtp.SendMail(m.addr, nil, m.from, []string{payload.To}, []byte(msg.String()))
}
