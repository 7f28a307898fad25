package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/travel-story-api/config"
	"github.com/oksasatya/travel-story-api/pkg/helpers"
	"github.com/oksasatya/travel-story-api/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		logger.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" {
		logger.Fatal("Mailgun not configured")
	}

	queue, err := helpers.DialRabbitQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue, cfg.AppName+"-email-worker")
	if err != nil {
		logger.Fatalf("rabbitmq: %v", err)
	}

	msgs, err := queue.Consume(16)
	if err != nil {
		logger.Fatalf("consume: %v", err)
	}

	sender := mailer.Instrument("worker", mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailFrom))
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			res, err := process(ctx, sender, msg.Body, msg.Redelivered)
			entry := logger.WithFields(logrus.Fields{"delivery_tag": msg.DeliveryTag, "message_id": msg.MessageId})
			switch res {
			case outcomeAck:
				_ = msg.Ack(false)
			case outcomeRetry:
				entry.WithError(err).Warn("send failed, requeueing")
				_ = msg.Nack(false, true)
			default:
				entry.WithError(err).Error("dropping message")
				_ = msg.Nack(false, false)
			}
		}
	}()

	helpers.LogInfo(logger, "email worker listening", logrus.Fields{"queue": cfg.RabbitMQEmailQueue})
	<-stop
	logger.Info("shutting down...")
	cancel()
	queue.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
