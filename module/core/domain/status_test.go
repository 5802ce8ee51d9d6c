package domain

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
)

func TestValidateTransition(t *testing.T) {
	allowed := map[[2]OperationalState]bool{
		{StateOffline, StateLive}:        true,
		{StateLive, StateClosingSoon}:    true,
		{StateClosingSoon, StateOffline}: true,
	}

	for _, from := range AllStates {
		for _, to := range AllStates {
			err := ValidateTransition(from, to)
			if allowed[[2]OperationalState{from, to}] {
				if err != nil {
					t.Errorf("%s -> %s: unexpected error %v", from, to, err)
				}
				continue
			}
			if !errors.Is(err, ErrInvalidTransition) {
				t.Errorf("%s -> %s: expected ErrInvalidTransition, got %v", from, to, err)
			}
		}
	}
}

func TestValidateTransition_UnknownState(t *testing.T) {
	if err := ValidateTransition("paused", StateLive); !errors.Is(err, ErrInvalidTransition) {
		t.Fatalf("expected ErrInvalidTransition, got %v", err)
	}
}

func TestNext_EveryStateHasOneEdge(t *testing.T) {
	for _, s := range AllStates {
		next, ok := s.Next()
		if !ok {
			t.Fatalf("%s has no outgoing edge", s)
		}
		if !next.Valid() {
			t.Fatalf("%s -> %q leads to an unknown state", s, next)
		}
	}
}

func TestParseState(t *testing.T) {
	for _, s := range AllStates {
		got, err := ParseState(string(s))
		if err != nil || got != s {
			t.Errorf("ParseState(%q) = %q, %v", s, got, err)
		}
	}
	if _, err := ParseState("LIVE"); !errors.Is(err, ErrValidation) {
		t.Errorf("expected ErrValidation, got %v", err)
	}
}

func TestServing(t *testing.T) {
	if StateOffline.Serving() {
		t.Error("offline should not be serving")
	}
	if !StateLive.Serving() || !StateClosingSoon.Serving() {
		t.Error("live and closing_soon should be serving")
	}
}

func TestCheckInvariant(t *testing.T) {
	now := time.Unix(1715003456, 0)
	locID := "loc-1"

	tests := []struct {
		name    string
		status  VendorStatus
		wantErr bool
	}{
		{"offline clean", VendorStatus{State: StateOffline}, false},
		{"live complete", VendorStatus{State: StateLive, WentLiveAt: &now, CurrentLocationID: &locID}, false},
		{"closing complete", VendorStatus{State: StateClosingSoon, WentLiveAt: &now, CurrentLocationID: &locID}, false},
		{"live without location", VendorStatus{State: StateLive, WentLiveAt: &now}, true},
		{"live without timestamp", VendorStatus{State: StateLive, CurrentLocationID: &locID}, true},
		{"offline with location", VendorStatus{State: StateOffline, CurrentLocationID: &locID}, true},
		{"offline with timestamp", VendorStatus{State: StateOffline, WentLiveAt: &now}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.status.CheckInvariant()
			if (err != nil) != tt.wantErr {
				t.Errorf("CheckInvariant() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
