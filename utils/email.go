package utils

import (
	"context"
	"fmt"
	"log"

	"gopkg.in/gomail.v2"
)

// Mailer delivers a single HTML message.
type Mailer interface {
	Send(ctx context.Context, to, subject, body string) error
}

// SMTPMailer sends mail through an SMTP relay.
type SMTPMailer struct {
	from   string
	dialer *gomail.Dialer
}

func NewSMTPMailer(host string, port int, user, pass, from string) *SMTPMailer {
	if from == "" {
		from = user
	}
	return &SMTPMailer{
		from:   from,
		dialer: gomail.NewDialer(host, port, user, pass),
	}
}

func (m *SMTPMailer) Send(ctx context.Context, to, subject, body string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	msg := gomail.NewMessage()
	msg.SetHeader("From", m.from)
	msg.SetHeader("To", to)
	msg.SetHeader("Subject", subject)
	msg.SetBody("text/html", body)

	if err := m.dialer.DialAndSend(msg); err != nil {
		return fmt.Errorf("failed to send email to %s: %w", to, err)
	}
	return nil
}

// LogMailer only logs outgoing mail. Used when SMTP is not configured.
type LogMailer struct{}

func (LogMailer) Send(_ context.Context, to, subject, _ string) error {
	log.Printf("mail to %s suppressed (SMTP_HOST not set): %s", to, subject)
	return nil
}

// OTPEmailBody renders the password reset message.
func OTPEmailBody(code string, minutes int) string {
	return fmt.Sprintf(
		"<p>Your password reset code is <strong>%s</strong>.</p><p>It expires in %d minutes.</p>",
		code, minutes,
	)
}
