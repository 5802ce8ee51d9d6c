package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type locationRow struct {
	ID        string         `db:"id"`
	VendorID  string         `db:"vendor_id"`
	Latitude  float64        `db:"latitude"`
	Longitude float64        `db:"longitude"`
	Address   sql.NullString `db:"address"`
	City      sql.NullString `db:"city"`
	State     sql.NullString `db:"state"`
	Zip       sql.NullString `db:"zip"`
	Notes     sql.NullString `db:"notes"`
	IsCurrent bool           `db:"is_current"`
	CreatedAt time.Time      `db:"created_at"`
}

func (r *repo) InsertLocation(ctx context.Context, loc *domain.Location) error {
	_, err := r.q.ExecContext(ctx,
		`INSERT INTO locations (id, vendor_id, latitude, longitude, address, city, state, zip, notes, is_current, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		loc.ID, loc.VendorID, loc.Coordinate.Lat, loc.Coordinate.Lon,
		nullString(loc.Address), nullString(loc.City), nullString(loc.State), nullString(loc.Zip),
		nullString(loc.Notes), loc.IsCurrent, loc.CreatedAt,
	)
	if err != nil {
		return persistenceErr(err, "insert location")
	}
	return nil
}

// GetLocation reports IsCurrent from vendor_status, not the stored flag, which
// only records that the row was current when inserted.
func (r *repo) GetLocation(ctx context.Context, locationID string) (*domain.Location, error) {
	var row locationRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT l.id, l.vendor_id, l.latitude, l.longitude, l.address, l.city, l.state, l.zip, l.notes,
			COALESCE(s.current_location_id = l.id, false) AS is_current, l.created_at
		FROM locations l
		LEFT JOIN vendor_status s ON s.vendor_id = l.vendor_id
		WHERE l.id = $1`,
		locationID,
	)
	if err != nil {
		return nil, notFoundOr(err, "get location")
	}

	return &domain.Location{
		ID:         row.ID,
		VendorID:   row.VendorID,
		Coordinate: domain.Coordinate{Lat: row.Latitude, Lon: row.Longitude},
		Address:    row.Address.String,
		City:       row.City.String,
		State:      row.State.String,
		Zip:        row.Zip.String,
		Notes:      row.Notes.String,
		IsCurrent:  row.IsCurrent,
		CreatedAt:  row.CreatedAt,
	}, nil
}
