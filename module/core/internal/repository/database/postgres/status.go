package postgres

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/jmoiron/sqlx"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

var errCorruptState = errors.New("stored state is not a known state")

type statusRow struct {
	VendorID          string     `db:"vendor_id"`
	State             string     `db:"state"`
	WentLiveAt        *time.Time `db:"went_live_at"`
	CurrentLocationID *string    `db:"current_location_id"`
}

func (r *repo) GetStatus(ctx context.Context, vendorID string) (*domain.VendorStatus, error) {
	var row statusRow
	err := sqlx.GetContext(ctx, r.q, &row,
		`SELECT vendor_id, state, went_live_at, current_location_id FROM vendor_status WHERE vendor_id = $1`,
		vendorID,
	)
	if err != nil {
		return nil, notFoundOr(err, "get status")
	}

	st, err := domain.ParseState(row.State)
	if err != nil {
		return nil, persistenceErr(errors.Mark(err, errCorruptState), "get status")
	}

	return &domain.VendorStatus{
		VendorID:          row.VendorID,
		State:             st,
		WentLiveAt:        row.WentLiveAt,
		CurrentLocationID: row.CurrentLocationID,
	}, nil
}

func (r *repo) UpdateStatus(ctx context.Context, status *domain.VendorStatus) error {
	res, err := r.q.ExecContext(ctx,
		`UPDATE vendor_status SET state = $2, went_live_at = $3, current_location_id = $4, updated_at = now() WHERE vendor_id = $1`,
		status.VendorID, string(status.State), status.WentLiveAt, status.CurrentLocationID,
	)
	if err != nil {
		return persistenceErr(err, "update status")
	}

	n, err := res.RowsAffected()
	if err != nil {
		return persistenceErr(err, "update status")
	}
	if n == 0 {
		return errors.Mark(errors.Newf("no status row for vendor %s", status.VendorID), domain.ErrNotFound)
	}
	return nil
}
