package service

import (
	"cmp"
	"math"
	"slices"

	"github.com/samber/lo"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

const earthRadiusMiles = 3959

// DistanceMiles is the haversine great-circle distance between a and b.
func DistanceMiles(a, b domain.Coordinate) float64 {
	return haversine(a.Lat, a.Lon, b.Lat, b.Lon)
}

func haversine(lat1, lon1, lat2, lon2 float64) float64 {
	dLat := toRad(lat2 - lat1)
	dLon := toRad(lon2 - lon1)
	a := math.Sin(dLat/2)*math.Sin(dLat/2) +
		math.Cos(toRad(lat1))*math.Cos(toRad(lat2))*math.Sin(dLon/2)*math.Sin(dLon/2)
	// Rounding can push a just past 1 for antipodal points.
	a = math.Min(1, math.Max(0, a))
	return earthRadiusMiles * 2 * math.Atan2(math.Sqrt(a), math.Sqrt(1-a))
}

func toRad(deg float64) float64 {
	return deg * math.Pi / 180
}

// Rank annotates every candidate with its distance from origin and orders the
// result: serving vendors before offline ones, then nearest first, with
// vendors lacking a distance last in their group. Equal keys keep input order.
// Rank never fails; a bad coordinate only loses its distance.
func Rank(origin domain.Coordinate, candidates []domain.VendorSnapshot) []domain.RankedVendor {
	ranked := make([]domain.RankedVendor, len(candidates))
	for i, snap := range candidates {
		ranked[i] = domain.RankedVendor{VendorSnapshot: snap}
		if origin.Valid() && snap.Coordinate != nil && snap.Coordinate.Valid() {
			d := DistanceMiles(origin, *snap.Coordinate)
			ranked[i].DistanceMiles = &d
		}
	}

	slices.SortStableFunc(ranked, compareRanked)
	return ranked
}

func compareRanked(a, b domain.RankedVendor) int {
	if c := cmp.Compare(bucket(a), bucket(b)); c != 0 {
		return c
	}
	switch {
	case a.DistanceMiles == nil && b.DistanceMiles == nil:
		return 0
	case a.DistanceMiles == nil:
		return 1
	case b.DistanceMiles == nil:
		return -1
	}
	return cmp.Compare(*a.DistanceMiles, *b.DistanceMiles)
}

func bucket(v domain.RankedVendor) int {
	if v.State.Serving() {
		return 0
	}
	return 1
}

// ApplyFilter narrows ranked without touching order or distances.
func ApplyFilter(ranked []domain.RankedVendor, f domain.RankFilter) []domain.RankedVendor {
	return lo.Filter(ranked, func(v domain.RankedVendor, _ int) bool {
		if f.LiveOnly && !v.State.Serving() {
			return false
		}
		if len(f.Cuisines) > 0 && !lo.Some(v.Vendor.CuisineTags, f.Cuisines) {
			return false
		}
		return true
	})
}
