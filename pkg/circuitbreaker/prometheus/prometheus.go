// Package prometheus exports circuit breaker activity as Prometheus
// metrics. The Notifier implements circuitbreaker.Notifier, so it plugs
// into a breaker or registry via circuitbreaker.WithNotifier.
package prometheus

import (
	"time"

	prom "github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/BankToken/circuit-breakers/pkg/circuitbreaker"
)

const (
	// MetricsNamespace is the common metric namespace (prefix).
	MetricsNamespace = "circuit_breaker"

	// TripsMetricName is the suffix of the trips counter.
	TripsMetricName = "trips_total"
	tripsMetricHelp = "Number of times the circuit breaker tripped open."

	// ResetsMetricName is the suffix of the resets counter.
	ResetsMetricName = "resets_total"
	resetsMetricHelp = "Number of times the circuit breaker reset to closed."

	// OpenStateMetricName is the suffix of the open gauge.
	OpenStateMetricName = "open"
	openStateMetricHelp = "One while the circuit breaker is not closed."

	// BreakerNameLabel is the label carrying the breaker name.
	BreakerNameLabel = "name"
)

// Notifier records breaker state changes as Prometheus metrics, labelled
// with the breaker name.
type Notifier struct {
	trips  *prom.CounterVec
	resets *prom.CounterVec
	open   *prom.GaugeVec
}

var _ circuitbreaker.Notifier = (*Notifier)(nil)

// NewNotifier registers the breaker metrics with the given registerer and
// returns the Notifier feeding them. Registering two Notifiers on the
// same registerer panics, as usual with promauto.
func NewNotifier(registerer prom.Registerer) *Notifier {
	factory := promauto.With(registerer)

	return &Notifier{
		trips: factory.NewCounterVec(prom.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      TripsMetricName,
			Help:      tripsMetricHelp,
		}, []string{BreakerNameLabel}),
		resets: factory.NewCounterVec(prom.CounterOpts{
			Namespace: MetricsNamespace,
			Name:      ResetsMetricName,
			Help:      resetsMetricHelp,
		}, []string{BreakerNameLabel}),
		open: factory.NewGaugeVec(prom.GaugeOpts{
			Namespace: MetricsNamespace,
			Name:      OpenStateMetricName,
			Help:      openStateMetricHelp,
		}, []string{BreakerNameLabel}),
	}
}

// Opened increments the trip counter and raises the open gauge.
func (n *Notifier) Opened(name string, _ time.Time) {
	n.trips.WithLabelValues(name).Inc()
	n.open.WithLabelValues(name).Set(1)
}

// Closed increments the reset counter and lowers the open gauge.
func (n *Notifier) Closed(name string) {
	n.resets.WithLabelValues(name).Inc()
	n.open.WithLabelValues(name).Set(0)
}
