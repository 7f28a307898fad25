package mailer

import (
	"context"
	"errors"

	"gopkg.in/gomail.v2"
)

// SMTP sends through a plain SMTP relay (Gmail app passwords and the like).
type SMTP struct {
	dialer *gomail.Dialer
	from   string
}

func NewSMTP(host string, port int, username, password, from string) *SMTP {
	return &SMTP{
		dialer: gomail.NewDialer(host, port, username, password),
		from:   from,
	}
}

func (s *SMTP) Send(ctx context.Context, to, subject, htmlBody string) error {
	if s.dialer.Username == "" || s.dialer.Password == "" {
		return errors.New("smtp credentials not configured")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	m := gomail.NewMessage()
	m.SetHeader("From", s.from)
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", htmlBody)
	return s.dialer.DialAndSend(m)
}
