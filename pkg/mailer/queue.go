package mailer

import (
	"context"
	"errors"
)

// Publisher is the part of helpers.RabbitQueue the queue sender needs.
type Publisher interface {
	PublishJSON(ctx context.Context, body any) error
}

// Queue hands messages to the email worker through RabbitMQ.
// Delivered means enqueued.
type Queue struct {
	pub Publisher
}

func NewQueue(pub Publisher) *Queue {
	return &Queue{pub: pub}
}

func (q *Queue) Send(ctx context.Context, to, subject, htmlBody string) error {
	if q.pub == nil {
		return errors.New("mail queue not connected")
	}
	return q.pub.PublishJSON(ctx, EmailJob{To: to, Subject: subject, HTML: htmlBody})
}
