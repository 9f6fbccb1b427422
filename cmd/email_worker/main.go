package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/go-account-service/config"
	"github.com/oksasatya/go-account-service/pkg/helpers"
	"github.com/oksasatya/go-account-service/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if err := run(cfg, logger); err != nil {
		logger.Fatalf("email worker: %v", err)
	}
}

func run(cfg *config.Config, logger *logrus.Logger) error {
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		return errors.New("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailgunSender == "" {
		return errors.New("Mailgun not configured")
	}

	q, err := helpers.NewRabbitQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		return fmt.Errorf("amqp: %w", err)
	}
	defer q.Close()

	// prefetch for fair dispatch
	msgs, err := q.Consume(16)
	if err != nil {
		return fmt.Errorf("consume: %w", err)
	}

	worker := mailer.NewWorker(mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailgunSender))
	backoff := mailer.NewBackoff(time.Second, time.Minute)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		defer close(done)
		for msg := range msgs {
			out, err := worker.Handle(ctx, msg.Body)
			entry := logger.WithFields(logrus.Fields{"delivery_tag": msg.DeliveryTag, "message_id": msg.MessageId})
			switch out {
			case mailer.Ack:
				backoff.Success()
				_ = msg.Ack(false)
			case mailer.Requeue:
				wait := backoff.Failure()
				entry.WithError(err).WithField("retry_in", wait.String()).Warn("send failed; requeue")
				select {
				case <-ctx.Done():
				case <-time.After(wait):
				}
				_ = msg.Nack(false, true)
			default:
				entry.WithError(err).Error("dropping email job")
				_ = msg.Nack(false, false)
			}
		}
	}()

	logger.WithFields(logrus.Fields{"queue": cfg.RabbitMQEmailQueue}).Info("email worker listening")
	select {
	case <-stop:
	case <-done:
		return errors.New("delivery channel closed")
	}
	logger.Info("shutting down...")
	cancel()
	q.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
	return nil
}
