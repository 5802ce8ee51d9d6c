package service

import (
	"context"

	"go.uber.org/zap"

	"github.com/nandanugg/vendor-radar/module/core/domain"
	"github.com/nandanugg/vendor-radar/module/core/internal/metrics"
)

type snapshotLister interface {
	ListSnapshots(ctx context.Context) ([]domain.VendorSnapshot, error)
}

type SearchService struct {
	vendors  snapshotLister
	fallback domain.Coordinate
	metrics  *metrics.Metrics
	log      *zap.SugaredLogger
}

// NewSearchService uses fallback as the origin whenever the caller has no
// usable position of its own.
func NewSearchService(vendors snapshotLister, fallback domain.Coordinate, m *metrics.Metrics, log *zap.SugaredLogger) *SearchService {
	return &SearchService{vendors: vendors, fallback: fallback, metrics: m, log: log}
}

func (s *SearchService) Nearby(ctx context.Context, q domain.NearbyQuery) (*domain.NearbyResult, error) {
	origin := s.fallback
	if q.Origin != nil && q.Origin.Valid() {
		origin = *q.Origin
	}

	snaps, err := s.vendors.ListSnapshots(ctx)
	if err != nil {
		return nil, err
	}

	vendors := ApplyFilter(Rank(origin, snaps), q.Filter)
	if q.Limit > 0 && len(vendors) > q.Limit {
		vendors = vendors[:q.Limit]
	}

	s.metrics.ObserveNearby(len(vendors))
	s.log.Debugw("nearby search",
		"origin", origin,
		"candidates", len(snaps),
		"results", len(vendors),
		"live_only", q.Filter.LiveOnly,
		"cuisines", q.Filter.Cuisines,
	)
	return &domain.NearbyResult{Origin: origin, Vendors: vendors}, nil
}
