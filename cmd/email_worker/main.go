package main

import (
	"context"
	"encoding/json"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"

	"github.com/oksasatya/acara-auth/config"
	"github.com/oksasatya/acara-auth/pkg/helpers"
	"github.com/oksasatya/acara-auth/pkg/mailer"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	logger := helpers.NewLogger(cfg.AppName+"-email-worker", cfg.Env)

	if !cfg.MailSendEnabled {
		logger.Info("MAIL_SEND_ENABLED=false; email worker disabled (no real emails will be sent)")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEmailQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}
	if cfg.MailgunDomain == "" || cfg.MailgunAPIKey == "" || cfg.MailSender == "" {
		log.Fatal("Mailgun not configured")
	}

	conn, ch, err := helpers.DialQueue(cfg.RabbitMQURL, cfg.RabbitMQEmailQueue)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer func() { _ = conn.Close() }()
	defer func() { _ = ch.Close() }()

	// Prefetch for fair dispatch
	if err := ch.Qos(16, 0, false); err != nil {
		log.Fatalf("qos: %v", err)
	}

	msgs, err := ch.Consume(cfg.RabbitMQEmailQueue, "", false, false, false, false, nil)
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	mg := mailer.NewMailgun(cfg.MailgunDomain, cfg.MailgunAPIKey, cfg.MailSender)
	mg.APIBase = cfg.MailgunAPIBase

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for d := range msgs {
			handle(logger, mg, cfg.MailSendTimeout, d)
		}
		close(done)
	}()

	logger.WithField("queue", cfg.RabbitMQEmailQueue).Info("email worker listening")
	<-stop
	logger.Info("shutting down...")
	_ = ch.Close()
	select {
	case <-done:
	case <-time.After(5 * time.Second):
	}
}

func handle(logger *logrus.Logger, sender mailer.Sender, timeout time.Duration, d amqp.Delivery) {
	msg, err := decodeJob(d.Body)
	if err != nil {
		logger.WithError(err).Warn("bad email job, dropping")
		_ = d.Nack(false, false)
		return
	}
	entry := logger.WithFields(logrus.Fields{"to": msg.To, "subject": msg.Subject})

	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()
	if err := sender.Send(ctx, msg); err != nil {
		// redeliver once; a second failure is dropped
		entry.WithError(err).WithField("redelivered", d.Redelivered).Warn("send failed")
		_ = d.Nack(false, !d.Redelivered)
		return
	}
	_ = d.Ack(false)
	entry.Debug("email sent")
}

// decodeJob parses a queued job; it must name a recipient and carry a subject and a body.
func decodeJob(body []byte) (mailer.Message, error) {
	var job mailer.EmailJob
	if err := json.Unmarshal(body, &job); err != nil {
		return mailer.Message{}, err
	}
	switch {
	case job.To == "":
		return mailer.Message{}, errors.New("missing recipient")
	case job.Subject == "":
		return mailer.Message{}, errors.New("missing subject")
	case job.Text == "" && job.HTML == "":
		return mailer.Message{}, errors.New("empty body")
	}
	return job.Message(), nil
}
