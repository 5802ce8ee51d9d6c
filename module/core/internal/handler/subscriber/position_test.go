package subscriber

import (
	"encoding/json"
	"testing"
	"time"

	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type mockRecorder struct {
	recordFn func(p domain.DevicePosition) bool
}

func (m *mockRecorder) Record(p domain.DevicePosition) bool {
	return m.recordFn(p)
}

type fakeMQTTMessage struct {
	topic   string
	payload []byte
}

func (f *fakeMQTTMessage) Duplicate() bool   { return false }
func (f *fakeMQTTMessage) Qos() byte         { return 0 }
func (f *fakeMQTTMessage) Retained() bool    { return false }
func (f *fakeMQTTMessage) Topic() string     { return f.topic }
func (f *fakeMQTTMessage) MessageID() uint16 { return 0 }
func (f *fakeMQTTMessage) Payload() []byte   { return f.payload }
func (f *fakeMQTTMessage) Ack()              {}

func newTestSubscriber(rec positionRecorder) *PositionSubscriber {
	return NewPositionSubscriber(nil, rec, zap.NewNop().Sugar())
}

func TestHandleMessage_Success(t *testing.T) {
	var recorded *domain.DevicePosition

	rec := &mockRecorder{
		recordFn: func(p domain.DevicePosition) bool {
			recorded = &p
			return true
		},
	}
	sub := newTestSubscriber(rec)

	msg := positionMessage{
		VendorID:  "v-1",
		Latitude:  39.7684,
		Longitude: -86.1581,
		Timestamp: 1715003456,
	}
	payload, _ := json.Marshal(msg)
	sub.handleMessage(nil, &fakeMQTTMessage{topic: "/vendors/v-1/position", payload: payload})

	if recorded == nil {
		t.Fatal("expected Record to be called")
	}
	if recorded.VendorID != "v-1" {
		t.Errorf("expected v-1, got %s", recorded.VendorID)
	}
	if recorded.Coordinate.Lat != 39.7684 {
		t.Errorf("expected 39.7684, got %f", recorded.Coordinate.Lat)
	}
	expectedTs := time.Unix(1715003456, 0)
	if !recorded.Timestamp.Equal(expectedTs) {
		t.Errorf("expected %v, got %v", expectedTs, recorded.Timestamp)
	}
}

func TestHandleMessage_StaleReadingIsDropped(t *testing.T) {
	calls := 0
	rec := &mockRecorder{
		recordFn: func(domain.DevicePosition) bool {
			calls++
			return false
		},
	}
	sub := newTestSubscriber(rec)

	payload, _ := json.Marshal(positionMessage{VendorID: "v-1", Latitude: 39.7, Longitude: -86.1, Timestamp: 1})
	sub.handleMessage(nil, &fakeMQTTMessage{topic: "/vendors/v-1/position", payload: payload})

	if calls != 1 {
		t.Fatalf("expected one Record call, got %d", calls)
	}
}

func TestHandleMessage_InvalidJSON(t *testing.T) {
	rec := &mockRecorder{
		recordFn: func(domain.DevicePosition) bool {
			t.Fatal("Record should not be called")
			return false
		},
	}

	sub := newTestSubscriber(rec)
	sub.handleMessage(nil, &fakeMQTTMessage{topic: "/vendors/v-1/position", payload: []byte("invalid")})
}

func TestHandleMessage_ValidationError(t *testing.T) {
	rec := &mockRecorder{
		recordFn: func(domain.DevicePosition) bool {
			t.Fatal("Record should not be called")
			return false
		},
	}
	sub := newTestSubscriber(rec)

	// publishes for another vendor's topic
	msg := positionMessage{VendorID: "v-2", Latitude: 39.7, Longitude: -86.1, Timestamp: 1715003456}
	payload, _ := json.Marshal(msg)
	sub.handleMessage(nil, &fakeMQTTMessage{topic: "/vendors/v-1/position", payload: payload})
}

func TestVendorFromTopic(t *testing.T) {
	tests := []struct {
		topic string
		want  string
	}{
		{"/vendors/v-1/position", "v-1"},
		{"vendors/v-1/position", "v-1"},
		{"/vendors/v-1/status", ""},
		{"/vendors/position", ""},
		{"/fleet/v-1/position", ""},
	}

	for _, tt := range tests {
		if got := vendorFromTopic(tt.topic); got != tt.want {
			t.Errorf("vendorFromTopic(%q) = %q, want %q", tt.topic, got, tt.want)
		}
	}
}

func TestValidatePositionMessage(t *testing.T) {
	const topic = "/vendors/X/position"
	tests := []struct {
		name    string
		msg     positionMessage
		wantErr bool
	}{
		{"valid", positionMessage{VendorID: "X", Latitude: 0, Longitude: 0, Timestamp: 1}, false},
		{"empty vendor_id", positionMessage{Latitude: 0, Longitude: 0, Timestamp: 1}, true},
		{"topic mismatch", positionMessage{VendorID: "Y", Latitude: 0, Longitude: 0, Timestamp: 1}, true},
		{"lat too low", positionMessage{VendorID: "X", Latitude: -91, Longitude: 0, Timestamp: 1}, true},
		{"lat too high", positionMessage{VendorID: "X", Latitude: 91, Longitude: 0, Timestamp: 1}, true},
		{"lon too low", positionMessage{VendorID: "X", Latitude: 0, Longitude: -181, Timestamp: 1}, true},
		{"lon too high", positionMessage{VendorID: "X", Latitude: 0, Longitude: 181, Timestamp: 1}, true},
		{"zero timestamp", positionMessage{VendorID: "X", Latitude: 0, Longitude: 0, Timestamp: 0}, true},
		{"negative timestamp", positionMessage{VendorID: "X", Latitude: 0, Longitude: 0, Timestamp: -1}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validatePositionMessage(topic, &tt.msg)
			if (err != nil) != tt.wantErr {
				t.Errorf("validatePositionMessage() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
