package metrics

import (
	"github.com/cockroachdb/errors"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/nandanugg/vendor-radar/module/core/domain"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	transitions *prometheus.CounterVec
	geocodes    *prometheus.CounterVec
	ranked      prometheus.Histogram
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		transitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendor_radar",
			Name:      "status_transitions_total",
			Help:      "Status transition attempts by target state and outcome.",
		}, []string{"to", "outcome"}),
		geocodes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "vendor_radar",
			Name:      "address_searches_total",
			Help:      "Address search lookups by outcome.",
		}, []string{"outcome"}),
		ranked: prometheus.NewHistogram(prometheus.HistogramOpts{
			Namespace: "vendor_radar",
			Name:      "nearby_results",
			Help:      "Number of vendors returned per nearby search.",
			Buckets:   []float64{0, 1, 5, 10, 25, 50, 100, 250},
		}),
	}
	reg.MustRegister(m.transitions, m.geocodes, m.ranked)
	return m
}

// ObserveTransition counts an attempt. Targets outside the known states share
// the "invalid" label so callers cannot grow the label set.
func (m *Metrics) ObserveTransition(to domain.OperationalState, err error) {
	if m == nil {
		return
	}
	label := "invalid"
	if to.Valid() {
		label = string(to)
	}
	m.transitions.WithLabelValues(label, Outcome(err)).Inc()
}

func (m *Metrics) ObserveAddressSearch(err error) {
	if m == nil {
		return
	}
	m.geocodes.WithLabelValues(Outcome(err)).Inc()
}

func (m *Metrics) ObserveNearby(n int) {
	if m == nil {
		return
	}
	m.ranked.Observe(float64(n))
}

// Outcome maps an error to a low-cardinality label value.
func Outcome(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidTransition):
		return "invalid_transition"
	case errors.Is(err, domain.ErrLocationUnavailable):
		return "location_unavailable"
	case errors.Is(err, domain.ErrNoResult):
		return "no_result"
	case errors.Is(err, domain.ErrProviderUnavailable):
		return "provider_unavailable"
	case errors.Is(err, domain.ErrValidation):
		return "validation"
	case errors.Is(err, domain.ErrNotFound):
		return "not_found"
	case errors.Is(err, domain.ErrPersistence):
		return "persistence"
	}
	return "error"
}
