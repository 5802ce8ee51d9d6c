package rabbitmq

import (
	"context"
	"encoding/json"

	"github.com/cockroachdb/errors"
	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/nandanugg/vendor-radar/module/core/domain"
	"github.com/nandanugg/vendor-radar/module/core/internal/repository/publisher"
)

var _ publisher.StatusPublisher = (*StatusPublisher)(nil)

const (
	ExchangeName = "vendor.events"
	QueueName    = "vendor_status_events"
)

type channel interface {
	PublishWithContext(ctx context.Context, exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
}

type StatusPublisher struct {
	ch channel
}

func NewStatusPublisher(conn *amqp.Connection) (*StatusPublisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, errors.Wrap(err, "rabbitmq channel")
	}

	if err := Declare(ch); err != nil {
		return nil, err
	}

	return &StatusPublisher{ch: ch}, nil
}

// Declare sets up the fanout exchange and the durable status queue bound to
// it. It is idempotent.
func Declare(ch *amqp.Channel) error {
	if err := ch.ExchangeDeclare(ExchangeName, "fanout", true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "declare exchange")
	}

	if _, err := ch.QueueDeclare(QueueName, true, false, false, false, nil); err != nil {
		return errors.Wrap(err, "declare queue")
	}

	if err := ch.QueueBind(QueueName, "", ExchangeName, false, nil); err != nil {
		return errors.Wrap(err, "bind queue")
	}
	return nil
}

type StatusMessage struct {
	VendorID   string           `json:"vendor_id"`
	State      string           `json:"state"`
	Location   *MessageLocation `json:"location"`
	WentLiveAt *int64           `json:"went_live_at"`
	Timestamp  int64            `json:"timestamp"`
}

type MessageLocation struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

func (p *StatusPublisher) PublishStatus(ctx context.Context, event *domain.StatusEvent) error {
	msg := StatusMessage{
		VendorID:  event.VendorID,
		State:     string(event.State),
		Timestamp: event.Timestamp.Unix(),
	}
	if event.Location != nil {
		msg.Location = &MessageLocation{Latitude: event.Location.Lat, Longitude: event.Location.Lon}
	}
	if event.WentLiveAt != nil {
		ts := event.WentLiveAt.Unix()
		msg.WentLiveAt = &ts
	}

	body, err := json.Marshal(msg)
	if err != nil {
		return errors.Wrap(err, "marshal status event")
	}

	return p.ch.PublishWithContext(ctx, ExchangeName, "", false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    event.Timestamp,
		Body:         body,
	})
}
