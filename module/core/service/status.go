package service

import (
	"context"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
	"github.com/nandanugg/vendor-radar/module/core/internal/metrics"
	"github.com/nandanugg/vendor-radar/module/core/internal/repository/database"
	"github.com/nandanugg/vendor-radar/module/core/internal/repository/publisher"
)

type positionSensor interface {
	CurrentPosition(ctx context.Context, vendorID string) (domain.Coordinate, error)
}

type addressSearcher interface {
	Search(ctx context.Context, query string) (*domain.AddressResult, error)
}

// StatusController moves a vendor through offline -> live -> closing_soon ->
// offline and records where it went live.
type StatusController struct {
	store   database.Store
	sensor  positionSensor
	places  addressSearcher
	events  publisher.StatusPublisher
	metrics *metrics.Metrics
	log     *zap.SugaredLogger

	now   func() time.Time
	newID func() string
}

// NewStatusController wires the controller. sensor, places and events may be
// nil; the corresponding step is then skipped.
func NewStatusController(
	store database.Store,
	sensor positionSensor,
	places addressSearcher,
	events publisher.StatusPublisher,
	m *metrics.Metrics,
	log *zap.SugaredLogger,
) *StatusController {
	return &StatusController{
		store:   store,
		sensor:  sensor,
		places:  places,
		events:  events,
		metrics: m,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Current returns the stored status and, while serving, its current location.
func (c *StatusController) Current(ctx context.Context, vendorID string) (*domain.VendorStatus, *domain.Location, error) {
	st, err := c.store.GetStatus(ctx, vendorID)
	if err != nil {
		return nil, nil, err
	}
	if st.CurrentLocationID == nil {
		return st, nil, nil
	}

	loc, err := c.store.GetLocation(ctx, *st.CurrentLocationID)
	if err != nil {
		return nil, nil, err
	}
	return st, loc, nil
}

// Transition applies req to the vendor and returns the newly persisted
// status. On any error nothing observable has changed: the status row still
// holds its previous value.
func (c *StatusController) Transition(ctx context.Context, vendorID string, req domain.TransitionRequest) (*domain.VendorStatus, *domain.Location, error) {
	st, loc, err := c.transition(ctx, vendorID, req)
	c.metrics.ObserveTransition(req.To, err)
	if err != nil {
		c.log.Warnw("status transition failed",
			"vendor_id", vendorID,
			"to", req.To,
			"outcome", metrics.Outcome(err),
			"error", err,
		)
		return nil, nil, err
	}

	c.log.Infow("status transition", "vendor_id", vendorID, "state", st.State)
	c.publish(ctx, st, loc)
	return st, loc, nil
}

func (c *StatusController) transition(ctx context.Context, vendorID string, req domain.TransitionRequest) (*domain.VendorStatus, *domain.Location, error) {
	if !req.To.Valid() {
		return nil, nil, errors.Mark(errors.Newf("unknown target state %q", req.To), domain.ErrValidation)
	}

	current, err := c.store.GetStatus(ctx, vendorID)
	if err != nil {
		return nil, nil, err
	}
	if err := domain.ValidateTransition(current.State, req.To); err != nil {
		return nil, nil, err
	}

	switch req.To {
	case domain.StateLive:
		return c.goLive(ctx, vendorID, req)
	case domain.StateClosingSoon:
		var loc *domain.Location
		if current.CurrentLocationID != nil {
			if loc, err = c.store.GetLocation(ctx, *current.CurrentLocationID); err != nil {
				return nil, nil, err
			}
		}
		next := *current
		next.State = domain.StateClosingSoon
		if err := c.store.UpdateStatus(ctx, &next); err != nil {
			return nil, nil, err
		}
		return &next, loc, nil
	case domain.StateOffline:
		next := domain.VendorStatus{VendorID: vendorID, State: domain.StateOffline}
		if err := c.store.UpdateStatus(ctx, &next); err != nil {
			return nil, nil, err
		}
		return &next, nil, nil
	}
	return nil, nil, errors.AssertionFailedf("unhandled target state %s", req.To)
}

func (c *StatusController) goLive(ctx context.Context, vendorID string, req domain.TransitionRequest) (*domain.VendorStatus, *domain.Location, error) {
	loc, err := c.acquireLocation(ctx, vendorID, req)
	if err != nil {
		return nil, nil, err
	}

	now := c.now().UTC()
	loc.ID = c.newID()
	loc.VendorID = vendorID
	loc.Notes = req.Notes
	loc.IsCurrent = true
	loc.CreatedAt = now

	next := &domain.VendorStatus{
		VendorID:          vendorID,
		State:             domain.StateLive,
		WentLiveAt:        &now,
		CurrentLocationID: &loc.ID,
	}

	// The location row must exist before the status points at it.
	err = c.store.RunInTx(ctx, func(tx database.StatusTx) error {
		if err := tx.InsertLocation(ctx, loc); err != nil {
			return err
		}
		return tx.UpdateStatus(ctx, next)
	})
	if err != nil {
		return nil, nil, err
	}
	return next, loc, nil
}

// acquireLocation prefers a device coordinate, first from the request and
// then from the tracked device, before falling back to a manually selected
// address or a search of the free-text query.
func (c *StatusController) acquireLocation(ctx context.Context, vendorID string, req domain.TransitionRequest) (*domain.Location, error) {
	if req.Device != nil {
		if !req.Device.Valid() {
			return nil, invalidCoordinate(*req.Device)
		}
		return &domain.Location{Coordinate: *req.Device}, nil
	}

	if c.sensor != nil {
		coord, err := c.sensor.CurrentPosition(ctx, vendorID)
		if err == nil && coord.Valid() {
			return &domain.Location{Coordinate: coord}, nil
		}
		c.log.Debugw("device position unavailable, falling back to manual entry", "vendor_id", vendorID, "error", err)
	}

	if req.Selection != nil {
		return fromAddress(req.Selection)
	}

	if req.Query != "" && c.places != nil {
		res, err := c.places.Search(ctx, req.Query)
		if err != nil {
			return nil, err
		}
		return fromAddress(res)
	}

	return nil, errors.WithHint(
		errors.Wrapf(domain.ErrLocationUnavailable, "vendor %s", vendorID),
		"allow location access or search for an address",
	)
}

func fromAddress(a *domain.AddressResult) (*domain.Location, error) {
	if !a.Coordinate.Valid() {
		return nil, invalidCoordinate(a.Coordinate)
	}
	return &domain.Location{
		Coordinate: a.Coordinate,
		Address:    a.FormattedAddress,
		City:       a.Locality,
		State:      a.Region,
		Zip:        a.PostalCode,
	}, nil
}

func invalidCoordinate(c domain.Coordinate) error {
	return errors.Mark(errors.Newf("coordinate (%v, %v) out of range", c.Lat, c.Lon), domain.ErrValidation)
}

func (c *StatusController) publish(ctx context.Context, st *domain.VendorStatus, loc *domain.Location) {
	if c.events == nil {
		return
	}

	event := &domain.StatusEvent{
		VendorID:   st.VendorID,
		State:      st.State,
		WentLiveAt: st.WentLiveAt,
		Timestamp:  c.now().UTC(),
	}
	if loc != nil {
		coord := loc.Coordinate
		event.Location = &coord
	}

	// The transition is already committed; a lost event is logged, not undone.
	if err := c.events.PublishStatus(ctx, event); err != nil {
		c.log.Errorw("publish status event", "vendor_id", st.VendorID, "state", st.State, "error", err)
	}
}
