package service

import (
	"context"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/nandanugg/vendor-radar/module/core/domain"
	"github.com/nandanugg/vendor-radar/module/core/internal/metrics"
)

// AddressProvider resolves a free-text query to its best match.
type AddressProvider interface {
	Ready() bool
	Search(ctx context.Context, query string) (*domain.AddressResult, error)
}

// PlacesService is the address-search capability handed to callers. It is
// built once at startup; readiness is fixed for the life of the process.
type PlacesService struct {
	provider AddressProvider
	ready    bool
	metrics  *metrics.Metrics
}

func NewPlacesService(provider AddressProvider, m *metrics.Metrics) *PlacesService {
	return &PlacesService{
		provider: provider,
		ready:    provider != nil && provider.Ready(),
		metrics:  m,
	}
}

func (s *PlacesService) Ready() bool {
	return s.ready
}

func (s *PlacesService) Search(ctx context.Context, query string) (*domain.AddressResult, error) {
	query = strings.TrimSpace(query)
	if query == "" {
		return nil, errors.Mark(errors.New("query is required"), domain.ErrValidation)
	}
	if !s.ready {
		return nil, errors.WithHint(
			errors.Wrap(domain.ErrProviderUnavailable, "address search not configured"),
			"enter coordinates directly or try again later",
		)
	}

	res, err := s.provider.Search(ctx, query)
	s.metrics.ObserveAddressSearch(err)
	if err != nil {
		return nil, err
	}
	return res, nil
}
