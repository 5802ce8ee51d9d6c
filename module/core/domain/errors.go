package domain

import "github.com/cockroachdb/errors"

var (
	// ErrLocationUnavailable means no coordinate could be obtained for going
	// live. The caller should prompt for a manual address instead.
	ErrLocationUnavailable = errors.New("location unavailable")
	ErrNoResult            = errors.New("address search: no result")
	ErrProviderUnavailable = errors.New("address search: provider unavailable")
	ErrPersistence         = errors.New("persistence error")
	ErrInvalidTransition   = errors.New("invalid status transition")
	ErrNotFound            = errors.New("not found")
	ErrValidation          = errors.New("validation error")
	ErrUnauthorized        = errors.New("unauthorized")
)
