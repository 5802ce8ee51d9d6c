package domain

import (
	"time"

	"github.com/cockroachdb/errors"
)

type OperationalState string

const (
	StateOffline     OperationalState = "offline"
	StateLive        OperationalState = "live"
	StateClosingSoon OperationalState = "closing_soon"
)

var AllStates = []OperationalState{StateOffline, StateLive, StateClosingSoon}

func ParseState(s string) (OperationalState, error) {
	st := OperationalState(s)
	if !st.Valid() {
		return "", errors.Mark(errors.Newf("unknown state %q", s), ErrValidation)
	}
	return st, nil
}

func (s OperationalState) Valid() bool {
	switch s {
	case StateOffline, StateLive, StateClosingSoon:
		return true
	}
	return false
}

// Serving reports whether the vendor is visible as currently serving.
func (s OperationalState) Serving() bool {
	return s == StateLive || s == StateClosingSoon
}

// Next is the only state reachable from s. Every state has exactly one
// outgoing edge.
func (s OperationalState) Next() (OperationalState, bool) {
	switch s {
	case StateOffline:
		return StateLive, true
	case StateLive:
		return StateClosingSoon, true
	case StateClosingSoon:
		return StateOffline, true
	}
	return "", false
}

func ValidateTransition(from, to OperationalState) error {
	next, ok := from.Next()
	if !ok || next != to {
		return errors.Mark(errors.Newf("%s -> %s is not allowed", from, to), ErrInvalidTransition)
	}
	return nil
}

type VendorStatus struct {
	VendorID          string           `json:"vendor_id"`
	State             OperationalState `json:"state"`
	WentLiveAt        *time.Time       `json:"went_live_at"`
	CurrentLocationID *string          `json:"current_location_id"`
}

// CheckInvariant verifies that the location reference and the live timestamp
// are set exactly when the vendor is serving.
func (s *VendorStatus) CheckInvariant() error {
	serving := s.State.Serving()
	if serving != (s.CurrentLocationID != nil) {
		return errors.Newf("state %s with current_location_id set=%t", s.State, s.CurrentLocationID != nil)
	}
	if serving != (s.WentLiveAt != nil) {
		return errors.Newf("state %s with went_live_at set=%t", s.State, s.WentLiveAt != nil)
	}
	return nil
}

// TransitionRequest asks for a move to state To. The location fields only
// matter when To is live and are tried in order: Device, then the tracked
// device reading, then Selection, then an address search of Query.
type TransitionRequest struct {
	To        OperationalState
	Device    *Coordinate
	Selection *AddressResult
	Query     string
	Notes     string
}
