package mailer

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePublisher struct {
	jobs []any
	err  error
}

func (p *fakePublisher) PublishJSON(_ context.Context, body any) error {
	if p.err != nil {
		return p.err
	}
	p.jobs = append(p.jobs, body)
	return nil
}

func TestNoopReturnsDisabled(t *testing.T) {
	err := Noop{}.Send(context.Background(), "a@b.c", "s", "<p>x</p>")
	assert.ErrorIs(t, err, ErrMailDisabled)
}

func TestQueuePublishesJob(t *testing.T) {
	pub := &fakePublisher{}
	q := NewQueue(pub)
	require.NoError(t, q.Send(context.Background(), "a@b.c", "Hello", "<p>x</p>"))
	require.Len(t, pub.jobs, 1)
	assert.Equal(t, EmailJob{To: "a@b.c", Subject: "Hello", HTML: "<p>x</p>"}, pub.jobs[0])
}

func TestQueuePropagatesPublishError(t *testing.T) {
	q := NewQueue(&fakePublisher{err: errors.New("channel closed")})
	assert.Error(t, q.Send(context.Background(), "a@b.c", "s", "b"))
}

func TestInstrumentPassesThrough(t *testing.T) {
	s := Instrument(TransportNone, Noop{})
	assert.ErrorIs(t, s.Send(context.Background(), "a@b.c", "s", "b"), ErrMailDisabled)
}

func TestUnconfiguredTransportsFail(t *testing.T) {
	ctx := context.Background()
	assert.Error(t, NewMailgun("", "", "x@y.z").Send(ctx, "a@b.c", "s", "b"))
	assert.Error(t, NewSMTP("smtp.example.com", 587, "", "", "x@y.z").Send(ctx, "a@b.c", "s", "b"))
}

func TestValidateTransport(t *testing.T) {
	assert.NoError(t, ValidateTransport("SMTP"))
	assert.NoError(t, ValidateTransport("queue"))
	assert.Error(t, ValidateTransport("pigeon"))
}
