package domain

import "time"

// StatusEvent is broadcast after a status transition has been persisted.
type StatusEvent struct {
	VendorID   string
	State      OperationalState
	Location   *Coordinate
	WentLiveAt *time.Time
	Timestamp  time.Time
}
