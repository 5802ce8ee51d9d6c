package main

import (
	"encoding/json"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/nandanugg/vendor-radar/config"
)

const (
	exchangeName = "vendor.events"
	queueName    = "vendor_status_events"
)

type statusMessage struct {
	VendorID string `json:"vendor_id"`
	State    string `json:"state"`
	Location *struct {
		Latitude  float64 `json:"latitude"`
		Longitude float64 `json:"longitude"`
	} `json:"location"`
	WentLiveAt *int64 `json:"went_live_at"`
	Timestamp  int64  `json:"timestamp"`
}

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger, err := config.NewLogger(cfg.LogLevel)
	if err != nil {
		log.Fatalf("logger: %v", err)
	}
	defer func() { _ = logger.Sync() }()

	conn, err := config.NewRabbitMQ(cfg, logger)
	if err != nil {
		logger.Fatalw("rabbitmq", "error", err)
	}
	defer func() { _ = conn.Close() }()

	ch, err := conn.Channel()
	if err != nil {
		logger.Fatalw("rabbitmq channel", "error", err)
	}
	defer func() { _ = ch.Close() }()

	if err := ch.ExchangeDeclare(exchangeName, "fanout", true, false, false, false, nil); err != nil {
		logger.Fatalw("declare exchange", "error", err)
	}

	if _, err := ch.QueueDeclare(queueName, true, false, false, false, nil); err != nil {
		logger.Fatalw("declare queue", "error", err)
	}

	if err := ch.QueueBind(queueName, "", exchangeName, false, nil); err != nil {
		logger.Fatalw("bind queue", "error", err)
	}

	msgs, err := ch.Consume(queueName, "", true, false, false, false, nil)
	if err != nil {
		logger.Fatalw("consume", "error", err)
	}

	logger.Infow("waiting for vendor status events", "queue", queueName)

	go func() {
		for msg := range msgs {
			var ev statusMessage
			if err := json.Unmarshal(msg.Body, &ev); err != nil {
				logger.Warnw("undecodable event", "error", err, "body", string(msg.Body))
				continue
			}

			fields := []any{
				"vendor_id", ev.VendorID,
				"state", ev.State,
				"at", time.Unix(ev.Timestamp, 0).UTC(),
			}
			if ev.Location != nil {
				fields = append(fields, "latitude", ev.Location.Latitude, "longitude", ev.Location.Longitude)
			}
			if ev.WentLiveAt != nil {
				fields = append(fields, "went_live_at", time.Unix(*ev.WentLiveAt, 0).UTC())
			}
			logger.Infow("status event", fields...)
		}
	}()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, syscall.SIGINT, syscall.SIGTERM)
	<-sig

	logger.Info("shutting down")
}
