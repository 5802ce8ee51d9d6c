package subscriber

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	mqtt "github.com/eclipse/paho.mqtt.golang"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

const TopicPattern = "/vendors/+/position"

type positionRecorder interface {
	Record(p domain.DevicePosition) bool
}

type positionMessage struct {
	VendorID  string  `json:"vendor_id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timestamp int64   `json:"timestamp"`
}

// PositionSubscriber feeds device readings published by vendors' phones into
// the position tracker.
type PositionSubscriber struct {
	client    mqtt.Client
	positions positionRecorder
	log       *zap.SugaredLogger
}

func NewPositionSubscriber(client mqtt.Client, positions positionRecorder, log *zap.SugaredLogger) *PositionSubscriber {
	return &PositionSubscriber{
		client:    client,
		positions: positions,
		log:       log,
	}
}

func (s *PositionSubscriber) Start() error {
	token := s.client.Subscribe(TopicPattern, 1, s.handleMessage)
	token.Wait()
	return token.Error()
}

func (s *PositionSubscriber) handleMessage(_ mqtt.Client, msg mqtt.Message) {
	var raw positionMessage
	if err := json.Unmarshal(msg.Payload(), &raw); err != nil {
		s.log.Warnw("invalid position message", "topic", msg.Topic(), "error", err)
		return
	}

	if err := validatePositionMessage(msg.Topic(), &raw); err != nil {
		s.log.Warnw("position message rejected", "topic", msg.Topic(), "error", err)
		return
	}

	p := domain.DevicePosition{
		VendorID:   raw.VendorID,
		Coordinate: domain.Coordinate{Lat: raw.Latitude, Lon: raw.Longitude},
		Timestamp:  time.Unix(raw.Timestamp, 0),
	}
	if !s.positions.Record(p) {
		s.log.Debugw("stale position dropped", "vendor_id", p.VendorID, "timestamp", p.Timestamp)
	}
}

// vendorFromTopic extracts {id} from /vendors/{id}/position.
func vendorFromTopic(topic string) string {
	parts := strings.Split(strings.Trim(topic, "/"), "/")
	if len(parts) != 3 || parts[0] != "vendors" || parts[2] != "position" {
		return ""
	}
	return parts[1]
}

func validatePositionMessage(topic string, msg *positionMessage) error {
	if msg.VendorID == "" {
		return errors.New("vendor_id: required")
	}
	if id := vendorFromTopic(topic); id != msg.VendorID {
		return errors.Newf("vendor_id: %q does not match topic %q", msg.VendorID, topic)
	}
	if msg.Latitude < -90 || msg.Latitude > 90 {
		return errors.New("latitude: must be between -90 and 90")
	}
	if msg.Longitude < -180 || msg.Longitude > 180 {
		return errors.New("longitude: must be between -180 and 180")
	}
	if msg.Timestamp <= 0 {
		return errors.New("timestamp: must be positive")
	}
	return nil
}
