package http

import (
	"time"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type coordinateResponse struct {
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
}

type vendorResponse struct {
	ID            string              `json:"id"`
	Name          string              `json:"name"`
	Description   string              `json:"description,omitempty"`
	CuisineTags   []string            `json:"cuisine_tags"`
	State         string              `json:"state"`
	Location      *coordinateResponse `json:"location"`
	DistanceMiles *float64            `json:"distance_miles"`
}

type nearbyResponse struct {
	Origin  coordinateResponse `json:"origin"`
	Vendors []vendorResponse   `json:"vendors"`
}

type locationResponse struct {
	ID        string  `json:"id"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Address   string  `json:"address,omitempty"`
	City      string  `json:"city,omitempty"`
	State     string  `json:"state,omitempty"`
	Zip       string  `json:"zip,omitempty"`
	Notes     string  `json:"notes,omitempty"`
	CreatedAt int64   `json:"created_at"`
}

type statusResponse struct {
	VendorID   string            `json:"vendor_id"`
	State      string            `json:"state"`
	WentLiveAt *int64            `json:"went_live_at"`
	Location   *locationResponse `json:"location"`
}

type addressResponse struct {
	FormattedAddress string  `json:"formatted_address"`
	Latitude         float64 `json:"latitude"`
	Longitude        float64 `json:"longitude"`
	Locality         string  `json:"locality,omitempty"`
	Region           string  `json:"region,omitempty"`
	PostalCode       string  `json:"postal_code,omitempty"`
}

func toCoordinateResponse(c domain.Coordinate) coordinateResponse {
	return coordinateResponse{Latitude: c.Lat, Longitude: c.Lon}
}

func toNearbyResponse(res *domain.NearbyResult) nearbyResponse {
	out := nearbyResponse{
		Origin:  toCoordinateResponse(res.Origin),
		Vendors: make([]vendorResponse, len(res.Vendors)),
	}
	for i, rv := range res.Vendors {
		vr := vendorResponse{
			ID:            rv.Vendor.ID,
			Name:          rv.Vendor.Name,
			Description:   rv.Vendor.Description,
			CuisineTags:   rv.Vendor.CuisineTags,
			State:         string(rv.State),
			DistanceMiles: rv.DistanceMiles,
		}
		if vr.CuisineTags == nil {
			vr.CuisineTags = []string{}
		}
		if rv.Coordinate != nil {
			c := toCoordinateResponse(*rv.Coordinate)
			vr.Location = &c
		}
		out.Vendors[i] = vr
	}
	return out
}

func toStatusResponse(st *domain.VendorStatus, loc *domain.Location) statusResponse {
	out := statusResponse{VendorID: st.VendorID, State: string(st.State)}
	if st.WentLiveAt != nil {
		out.WentLiveAt = unixPtr(*st.WentLiveAt)
	}
	if loc != nil {
		out.Location = &locationResponse{
			ID:        loc.ID,
			Latitude:  loc.Coordinate.Lat,
			Longitude: loc.Coordinate.Lon,
			Address:   loc.Address,
			City:      loc.City,
			State:     loc.State,
			Zip:       loc.Zip,
			Notes:     loc.Notes,
			CreatedAt: loc.CreatedAt.Unix(),
		}
	}
	return out
}

func toAddressResponse(a *domain.AddressResult) addressResponse {
	return addressResponse{
		FormattedAddress: a.FormattedAddress,
		Latitude:         a.Coordinate.Lat,
		Longitude:        a.Coordinate.Lon,
		Locality:         a.Locality,
		Region:           a.Region,
		PostalCode:       a.PostalCode,
	}
}

func unixPtr(t time.Time) *int64 {
	u := t.Unix()
	return &u
}
