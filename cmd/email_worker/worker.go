package main

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/oksasatya/travel-story-api/pkg/mailer"
)

const sendTimeout = 15 * time.Second

type outcome int

const (
	outcomeAck outcome = iota
	outcomeRetry
	outcomeDrop
)

var errIncompleteJob = errors.New("email job without recipient or body")

// process delivers one queued job. A failed send is retried once through
// the broker; malformed jobs and second failures are dropped.
func process(ctx context.Context, s mailer.Sender, body []byte, redelivered bool) (outcome, error) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return outcomeDrop, err
	}
	if job.To == "" || job.HTML == "" {
		return outcomeDrop, errIncompleteJob
	}

	ctx, cancel := context.WithTimeout(ctx, sendTimeout)
	defer cancel()
	if err := s.Send(ctx, job.To, job.Subject, job.HTML); err != nil {
		if redelivered {
			return outcomeDrop, err
		}
		return outcomeRetry, err
	}
	return outcomeAck, nil
}
