package helpers

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
)

// RabbitQueue is one durable queue on a dedicated connection. The API
// publishes email jobs on it and the email worker consumes them.
type RabbitQueue struct {
	conn  *amqp.Connection
	ch    *amqp.Channel
	Name  string
	AppID string
}

// DialRabbitQueue connects to url and declares the durable queue name.
func DialRabbitQueue(url, name, appID string) (*RabbitQueue, error) {
	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, err
	}
	if _, err := ch.QueueDeclare(name, true, false, false, false, nil); err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, err
	}
	return &RabbitQueue{conn: conn, ch: ch, Name: name, AppID: appID}, nil
}

// PublishJSON encodes v and publishes it as a persistent message with a fresh message id.
func (q *RabbitQueue) PublishJSON(ctx context.Context, v any) error {
	if q == nil || q.ch == nil {
		return errors.New("rabbitmq queue not connected")
	}
	body, err := json.Marshal(v)
	if err != nil {
		return err
	}
	return q.ch.PublishWithContext(ctx, "", q.Name, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		AppId:        q.AppID,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
}

// Consume starts manual-ack delivery with at most prefetch unacked messages.
func (q *RabbitQueue) Consume(prefetch int) (<-chan amqp.Delivery, error) {
	if err := q.ch.Qos(prefetch, 0, false); err != nil {
		return nil, err
	}
	return q.ch.Consume(q.Name, q.AppID, false, false, false, false, nil)
}

// Close releases the channel and connection. Safe on nil.
func (q *RabbitQueue) Close() {
	if q == nil {
		return
	}
	if q.ch != nil {
		_ = q.ch.Close()
	}
	if q.conn != nil {
		_ = q.conn.Close()
	}
}
