package worker

import (
	"CloudVault/config"
	"CloudVault/internal/mq"
	"CloudVault/internal/service"
	"CloudVault/utils"
	"context"
	"encoding/json"
	"errors"
	"log"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/time/rate"
)

type dlqMessage struct {
	To       string    `json:"to"`
	Subject  string    `json:"subject"`
	Attempt  int       `json:"attempt"`
	Error    string    `json:"error"`
	FailedAt time.Time `json:"failed_at"`
}

// RunMailWorker consumes queued notification emails and delivers them over
// SMTP, throttled so the mail provider is never hammered.
func RunMailWorker(ctx context.Context) error {
	client, err := mq.Dial()
	if err != nil {
		return err
	}
	defer client.Close()

	if err := client.DeclareTopology(); err != nil {
		return err
	}

	prefetch := config.AppConfig.MailPrefetch
	if prefetch <= 0 {
		prefetch = 1
	}
	if err := client.Channel.Qos(prefetch, 0, false); err != nil {
		return err
	}

	deliveries, err := client.Channel.Consume(
		mq.QueueNotify,
		"",
		false,
		false,
		false,
		false,
		nil,
	)
	if err != nil {
		return err
	}

	sem := make(chan struct{}, prefetch)

	burst := config.AppConfig.MailBurst
	if burst <= 0 {
		burst = 1
	}
	mailRate := config.AppConfig.MailRate
	var limiter *rate.Limiter
	if mailRate <= 0 {
		limiter = rate.NewLimiter(rate.Inf, burst)
	} else {
		limiter = rate.NewLimiter(rate.Limit(mailRate), burst)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case delivery, ok := <-deliveries:
			if !ok {
				return errors.New("mail worker: delivery channel closed")
			}
			sem <- struct{}{}
			go func(d amqp.Delivery) {
				defer func() { <-sem }()
				handleMailMessage(ctx, client, limiter, d)
			}(delivery)
		}
	}
}

func handleMailMessage(ctx context.Context, client *mq.Client, limiter *rate.Limiter, delivery amqp.Delivery) {
	var msg service.MailMessage
	if err := json.Unmarshal(delivery.Body, &msg); err != nil {
		log.Printf("mail worker: invalid message: %v", err)
		_ = delivery.Ack(false)
		return
	}

	if limiter != nil {
		if err := limiter.Wait(ctx); err != nil {
			_ = delivery.Nack(false, true)
			return
		}
	}

	if err := utils.SendMail(msg.To, msg.Subject, msg.HTML); err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			_ = delivery.Nack(false, true)
			return
		}
		if err := scheduleRetry(ctx, client, msg, err); err != nil {
			log.Printf("mail worker: retry schedule failed: %v", err)
			_ = delivery.Nack(false, true)
			return
		}
	}

	_ = delivery.Ack(false)
}

func scheduleRetry(ctx context.Context, client *mq.Client, msg service.MailMessage, sendErr error) error {
	maxRetry := config.AppConfig.MailRetryMax
	if maxRetry < 0 {
		maxRetry = 0
	}
	nextAttempt := msg.Attempt + 1
	if maxRetry == 0 || nextAttempt > maxRetry {
		return publishFailed(ctx, client, msg, sendErr)
	}

	delay := pickRetryDelay(nextAttempt, config.AppConfig.MailRetryDelays)
	log.Printf("mail worker: send to %s failed (attempt %d), retrying in %s: %v",
		msg.To, nextAttempt, delay, sendErr)

	msg.Attempt = nextAttempt
	body, err := json.Marshal(msg)
	if err != nil {
		return err
	}
	return client.PublishRetry(ctx, body, delay)
}

func publishFailed(ctx context.Context, client *mq.Client, msg service.MailMessage, sendErr error) error {
	dlq := dlqMessage{
		To:       msg.To,
		Subject:  msg.Subject,
		Attempt:  msg.Attempt,
		Error:    sendErr.Error(),
		FailedAt: time.Now(),
	}
	body, err := json.Marshal(dlq)
	if err != nil {
		return err
	}
	log.Printf("mail worker: giving up on %s after %d attempts: %v", msg.To, msg.Attempt, sendErr)
	return client.PublishDLQ(ctx, body)
}

func pickRetryDelay(attempt int, delays []time.Duration) time.Duration {
	if len(delays) == 0 {
		return 0
	}
	index := attempt - 1
	if index < 0 {
		index = 0
	}
	if index >= len(delays) {
		return delays[len(delays)-1]
	}
	return delays[index]
}
