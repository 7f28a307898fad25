// Package mailer delivers the account emails (verification and password reset).
// A nil error from Send means the message was handed to the transport.
package mailer

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/oksasatya/travel-story-api/pkg/metrics"
)

// ErrMailDisabled is returned by Noop so callers fall back to their
// no-mail behavior.
var ErrMailDisabled = errors.New("mail delivery disabled")

// Sender delivers a single HTML message.
type Sender interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// Noop is used when no transport is configured.
type Noop struct{}

func (Noop) Send(context.Context, string, string, string) error { return ErrMailDisabled }

// instrumented counts every attempt of the wrapped sender.
type instrumented struct {
	kind string
	next Sender
}

// Instrument wraps s so each send is recorded under kind.
func Instrument(kind string, s Sender) Sender {
	return &instrumented{kind: kind, next: s}
}

func (i *instrumented) Send(ctx context.Context, to, subject, htmlBody string) error {
	err := i.next.Send(ctx, to, subject, htmlBody)
	metrics.RecordMail(i.kind, err)
	return err
}

// Transport names accepted by MAIL_TRANSPORT.
const (
	TransportMailgun = "mailgun"
	TransportSMTP    = "smtp"
	TransportQueue   = "queue"
	TransportNone    = "none"
)

// ValidateTransport rejects unknown transport names early at startup.
func ValidateTransport(name string) error {
	switch strings.ToLower(name) {
	case TransportMailgun, TransportSMTP, TransportQueue, TransportNone, "":
		return nil
	}
	return fmt.Errorf("unknown mail transport %q", name)
}
