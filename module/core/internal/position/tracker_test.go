package position

import (
	"context"
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

func newTestTracker(now time.Time) *Tracker {
	tr := NewTracker(2 * time.Minute)
	tr.now = func() time.Time { return now }
	return tr
}

func TestRecordAndCurrent(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(now)

	kept := tr.Record(domain.DevicePosition{
		VendorID:   "v-1",
		Coordinate: domain.Coordinate{Lat: 39.77, Lon: -86.15},
		Timestamp:  now.Add(-10 * time.Second),
	})
	require.True(t, kept)

	c, err := tr.CurrentPosition(context.Background(), "v-1")
	require.NoError(t, err)
	assert.Equal(t, domain.Coordinate{Lat: 39.77, Lon: -86.15}, c)
}

func TestCurrent_Unknown(t *testing.T) {
	tr := newTestTracker(time.Now())

	_, err := tr.CurrentPosition(context.Background(), "nobody")
	assert.True(t, errors.Is(err, domain.ErrLocationUnavailable))
}

func TestRecord_Stale(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(now)

	kept := tr.Record(domain.DevicePosition{VendorID: "v-1", Timestamp: now.Add(-3 * time.Minute)})
	assert.False(t, kept)

	_, err := tr.CurrentPosition(context.Background(), "v-1")
	assert.True(t, errors.Is(err, domain.ErrLocationUnavailable))
}

func TestRecord_OutOfOrder(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(now)

	newer := domain.DevicePosition{VendorID: "v-1", Coordinate: domain.Coordinate{Lat: 1, Lon: 1}, Timestamp: now.Add(-5 * time.Second)}
	older := domain.DevicePosition{VendorID: "v-1", Coordinate: domain.Coordinate{Lat: 2, Lon: 2}, Timestamp: now.Add(-30 * time.Second)}

	require.True(t, tr.Record(newer))
	assert.False(t, tr.Record(older))

	c, err := tr.CurrentPosition(context.Background(), "v-1")
	require.NoError(t, err)
	assert.Equal(t, newer.Coordinate, c)
}

func TestRecord_Expires(t *testing.T) {
	tr := NewTracker(50 * time.Millisecond)

	require.True(t, tr.Record(domain.DevicePosition{VendorID: "v-1", Timestamp: time.Now()}))
	time.Sleep(80 * time.Millisecond)

	_, err := tr.CurrentPosition(context.Background(), "v-1")
	assert.True(t, errors.Is(err, domain.ErrLocationUnavailable))
}

func TestRecord_FutureTimestamp(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(now)

	future := domain.DevicePosition{VendorID: "v-1", Coordinate: domain.Coordinate{Lat: 9, Lon: 9}, Timestamp: now.Add(time.Hour)}
	assert.False(t, tr.Record(future))

	// the bad clock must not shadow a correctly stamped reading
	good := domain.DevicePosition{VendorID: "v-1", Coordinate: domain.Coordinate{Lat: 1, Lon: 1}, Timestamp: now.Add(-time.Second)}
	require.True(t, tr.Record(good))

	c, err := tr.CurrentPosition(context.Background(), "v-1")
	require.NoError(t, err)
	assert.Equal(t, good.Coordinate, c)
}

func TestRecord_SmallSkewAccepted(t *testing.T) {
	now := time.Now()
	tr := newTestTracker(now)

	assert.True(t, tr.Record(domain.DevicePosition{VendorID: "v-1", Timestamp: now.Add(2 * time.Second)}))
}
