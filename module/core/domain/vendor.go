package domain

type Vendor struct {
	ID          string   `json:"id"`
	OwnerID     string   `json:"owner_id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	CuisineTags []string `json:"cuisine_tags"`
	IsApproved  bool     `json:"is_approved"`
}

// VendorSnapshot is a vendor joined with its status and, when serving, the
// coordinate of its current location.
type VendorSnapshot struct {
	Vendor     Vendor
	State      OperationalState
	Coordinate *Coordinate
}

type RankedVendor struct {
	VendorSnapshot
	// DistanceMiles is nil when the vendor has no usable current coordinate.
	DistanceMiles *float64
}

type RankFilter struct {
	LiveOnly bool
	// Cuisines keeps vendors sharing at least one tag. Empty keeps everyone.
	Cuisines []string
}

type NearbyQuery struct {
	Origin *Coordinate
	Filter RankFilter
	Limit  int
}

type NearbyResult struct {
	Origin  Coordinate
	Vendors []RankedVendor
}
