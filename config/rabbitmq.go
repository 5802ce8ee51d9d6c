package config

import (
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"
	"go.uber.org/zap"
)

const rabbitMQDialAttempts = 5

// NewRabbitMQ dials the broker, retrying with exponential backoff while it
// comes up alongside the server.
func NewRabbitMQ(cfg *Config, log *zap.SugaredLogger) (*amqp.Connection, error) {
	var conn *amqp.Connection
	dial := func() error {
		c, err := amqp.Dial(cfg.RabbitMQURL)
		if err != nil {
			return err
		}
		conn = c
		return nil
	}

	b := backoff.NewExponentialBackOff()
	b.InitialInterval = 500 * time.Millisecond
	notify := func(err error, wait time.Duration) {
		log.Warnw("rabbitmq dial failed, retrying", "error", err, "wait", wait)
	}

	if err := backoff.RetryNotify(dial, backoff.WithMaxRetries(b, rabbitMQDialAttempts), notify); err != nil {
		return nil, errors.Wrap(err, "rabbitmq connect")
	}
	return conn, nil
}
