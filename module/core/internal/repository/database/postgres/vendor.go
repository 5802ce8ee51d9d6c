package postgres

import (
	"context"
	"database/sql"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type vendorRow struct {
	ID          string         `db:"id"`
	OwnerID     string         `db:"owner_id"`
	Name        string         `db:"name"`
	Description sql.NullString `db:"description"`
	CuisineTags pq.StringArray `db:"cuisine_tags"`
	IsApproved  bool           `db:"is_approved"`
}

func (r vendorRow) toDomain() domain.Vendor {
	return domain.Vendor{
		ID:          r.ID,
		OwnerID:     r.OwnerID,
		Name:        r.Name,
		Description: r.Description.String,
		CuisineTags: []string(r.CuisineTags),
		IsApproved:  r.IsApproved,
	}
}

type snapshotRow struct {
	vendorRow
	State     sql.NullString  `db:"state"`
	Latitude  sql.NullFloat64 `db:"latitude"`
	Longitude sql.NullFloat64 `db:"longitude"`
}

const vendorColumns = `v.id, v.owner_id, v.name, v.description, v.cuisine_tags, v.is_approved`

func (r *repo) GetVendor(ctx context.Context, vendorID string) (*domain.Vendor, error) {
	var row vendorRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+vendorColumns+` FROM vendors v WHERE v.id = $1`,
		vendorID,
	)
	if err != nil {
		return nil, notFoundOr(err, "get vendor")
	}
	v := row.toDomain()
	return &v, nil
}

func (r *repo) GetVendorByOwner(ctx context.Context, ownerID string) (*domain.Vendor, error) {
	var row vendorRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT `+vendorColumns+` FROM vendors v WHERE v.owner_id = $1`,
		ownerID,
	)
	if err != nil {
		return nil, notFoundOr(err, "get vendor by owner")
	}
	v := row.toDomain()
	return &v, nil
}

func (r *repo) ListSnapshots(ctx context.Context) ([]domain.VendorSnapshot, error) {
	var rows []snapshotRow
	err := sqlx.SelectContext(ctx, r.q, &rows,
		`SELECT `+vendorColumns+`, s.state, l.latitude, l.longitude
		FROM vendors v
		LEFT JOIN vendor_status s ON s.vendor_id = v.id
		LEFT JOIN locations l ON l.id = s.current_location_id
		WHERE v.is_approved
		ORDER BY v.name`,
	)
	if err != nil {
		return nil, persistenceErr(err, "list snapshots")
	}

	results := make([]domain.VendorSnapshot, 0, len(rows))
	for _, row := range rows {
		results = append(results, row.toSnapshot())
	}
	return results, nil
}

// toSnapshot never fails: an unknown state reads as offline and a missing or
// out-of-range coordinate reads as no coordinate.
func (r snapshotRow) toSnapshot() domain.VendorSnapshot {
	snap := domain.VendorSnapshot{
		Vendor: r.vendorRow.toDomain(),
		State:  domain.StateOffline,
	}
	if st, err := domain.ParseState(r.State.String); err == nil {
		snap.State = st
	}
	if !snap.State.Serving() || !r.Latitude.Valid || !r.Longitude.Valid {
		return snap
	}
	c := domain.Coordinate{Lat: r.Latitude.Float64, Lon: r.Longitude.Float64}
	if c.Valid() {
		snap.Coordinate = &c
	}
	return snap
}
