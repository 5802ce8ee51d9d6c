package domain

import (
	"math"
	"time"
)

type Coordinate struct {
	Lat float64 `json:"latitude"`
	Lon float64 `json:"longitude"`
}

// Valid reports whether c is a usable WGS84 coordinate.
func (c Coordinate) Valid() bool {
	if math.IsNaN(c.Lat) || math.IsNaN(c.Lon) || math.IsInf(c.Lat, 0) || math.IsInf(c.Lon, 0) {
		return false
	}
	return c.Lat >= -90 && c.Lat <= 90 && c.Lon >= -180 && c.Lon <= 180
}

// Location is one place a vendor served from. Rows are append-only: going
// live again creates a new row.
type Location struct {
	ID         string     `json:"id"`
	VendorID   string     `json:"vendor_id"`
	Coordinate Coordinate `json:"coordinate"`
	Address    string     `json:"address,omitempty"`
	City       string     `json:"city,omitempty"`
	State      string     `json:"state,omitempty"`
	Zip        string     `json:"zip,omitempty"`
	Notes      string     `json:"notes,omitempty"`
	IsCurrent  bool       `json:"is_current"`
	CreatedAt  time.Time  `json:"created_at"`
}

// AddressResult is the best match an address search returns for a query.
type AddressResult struct {
	FormattedAddress string     `json:"formatted_address"`
	Coordinate       Coordinate `json:"coordinate"`
	Locality         string     `json:"locality,omitempty"`
	Region           string     `json:"region,omitempty"`
	PostalCode       string     `json:"postal_code,omitempty"`
}

type DevicePosition struct {
	VendorID   string
	Coordinate Coordinate
	Timestamp  time.Time
}
