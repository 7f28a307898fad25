package mailer

import (
	"context"
	"errors"
	"time"

	mg "github.com/mailgun/mailgun-go/v4"
)

const mailgunTimeout = 10 * time.Second

// Mailgun delivers through the Mailgun HTTP API. It is the default transport
// and the one the email worker uses for queued jobs.
type Mailgun struct {
	client *mg.MailgunImpl
	from   string
}

func NewMailgun(domain, apiKey, from string) *Mailgun {
	m := &Mailgun{from: from}
	if domain != "" && apiKey != "" {
		m.client = mg.NewMailgun(domain, apiKey)
	}
	return m
}

func (m *Mailgun) Send(ctx context.Context, to, subject, htmlBody string) error {
	if m.client == nil {
		return errors.New("mailgun not configured")
	}
	msg := m.client.NewMessage(m.from, subject, "", to)
	msg.SetHtml(htmlBody)
	ctx, cancel := context.WithTimeout(ctx, mailgunTimeout)
	defer cancel()
	_, _, err := m.client.Send(ctx, msg)
	return err
}
