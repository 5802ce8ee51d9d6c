package database

import (
	"context"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

type VendorRepository interface {
	GetVendor(ctx context.Context, vendorID string) (*domain.Vendor, error)
	GetVendorByOwner(ctx context.Context, ownerID string) (*domain.Vendor, error)
	// ListSnapshots returns every approved vendor with its state and the
	// coordinate of its current location, if any.
	ListSnapshots(ctx context.Context) ([]domain.VendorSnapshot, error)
}

type StatusRepository interface {
	GetStatus(ctx context.Context, vendorID string) (*domain.VendorStatus, error)
	UpdateStatus(ctx context.Context, status *domain.VendorStatus) error
}

type LocationRepository interface {
	InsertLocation(ctx context.Context, loc *domain.Location) error
	GetLocation(ctx context.Context, locationID string) (*domain.Location, error)
}

// StatusTx is the slice of the store usable inside a transaction.
type StatusTx interface {
	StatusRepository
	LocationRepository
}

type Store interface {
	VendorRepository
	StatusRepository
	LocationRepository
	// RunInTx runs fn in a single database transaction, committing when fn
	// returns nil and rolling back otherwise.
	RunInTx(ctx context.Context, fn func(tx StatusTx) error) error
}
