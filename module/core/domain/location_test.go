package domain

import (
	"math"
	"testing"
)

func TestCoordinateValid(t *testing.T) {
	tests := []struct {
		name string
		c    Coordinate
		want bool
	}{
		{"origin", Coordinate{0, 0}, true},
		{"indianapolis", Coordinate{39.7684, -86.1581}, true},
		{"poles and antimeridian", Coordinate{90, -180}, true},
		{"lat too high", Coordinate{91, 0}, false},
		{"lat too low", Coordinate{-91, 0}, false},
		{"lon too high", Coordinate{0, 181}, false},
		{"lon too low", Coordinate{0, -181}, false},
		{"nan", Coordinate{math.NaN(), 0}, false},
		{"inf", Coordinate{0, math.Inf(1)}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.c.Valid(); got != tt.want {
				t.Errorf("Valid() = %v, want %v", got, tt.want)
			}
		})
	}
}
