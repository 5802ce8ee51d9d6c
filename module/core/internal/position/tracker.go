// Package position keeps the latest device-reported coordinate per vendor.
package position

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	gocache "github.com/patrickmn/go-cache"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

// maxClockSkew bounds how far ahead of the server clock a device may stamp a
// reading.
const maxClockSkew = 5 * time.Second

// Tracker answers "where is this vendor's device right now". A reading older
// than the configured TTL no longer counts.
type Tracker struct {
	readings *gocache.Cache
	ttl      time.Duration
	now      func() time.Time
}

func NewTracker(ttl time.Duration) *Tracker {
	return &Tracker{
		readings: gocache.New(ttl, 2*ttl),
		ttl:      ttl,
		now:      time.Now,
	}
}

// Record stores p unless it is stale, stamped more than maxClockSkew ahead of
// now, or older than the reading already held. It reports whether p was kept.
func (t *Tracker) Record(p domain.DevicePosition) bool {
	age := t.now().Sub(p.Timestamp)
	if age >= t.ttl || age < -maxClockSkew {
		return false
	}

	if prev, ok := t.readings.Get(p.VendorID); ok {
		if prev.(domain.DevicePosition).Timestamp.After(p.Timestamp) {
			return false
		}
	}

	// Within the allowed skew a reading is treated as taken now.
	if age < 0 {
		age = 0
	}
	t.readings.Set(p.VendorID, p, t.ttl-age)
	return true
}

func (t *Tracker) CurrentPosition(_ context.Context, vendorID string) (domain.Coordinate, error) {
	v, ok := t.readings.Get(vendorID)
	if !ok {
		return domain.Coordinate{}, errors.Wrapf(domain.ErrLocationUnavailable, "no fresh device reading for %s", vendorID)
	}
	return v.(domain.DevicePosition).Coordinate, nil
}
