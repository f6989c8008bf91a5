package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics provides observability for the POS module.
// Tracks catalog writes, OSM import outcomes, and fetch latency.
type Metrics struct {
	PosCreated       prometheus.Counter
	PosUpdated       prometheus.Counter
	OsmImports       *prometheus.CounterVec // label: outcome={success,not_found,missing_fields,duplicate_name,error}
	OsmFetchDuration prometheus.Histogram
}

// New creates a Metrics instance with all POS module metrics registered
// on the default registry.
func New() *Metrics {
	return newWith(promauto.With(prometheus.DefaultRegisterer))
}

// NewWithRegistry registers the metrics on a caller-supplied registry.
// Tests use this to avoid duplicate-registration panics.
func NewWithRegistry(reg prometheus.Registerer) *Metrics {
	return newWith(promauto.With(reg))
}

func newWith(factory promauto.Factory) *Metrics {
	return &Metrics{
		PosCreated: factory.NewCounter(prometheus.CounterOpts{
			Name: "campuscoffee_pos_created_total",
			Help: "Total number of POS records created",
		}),
		PosUpdated: factory.NewCounter(prometheus.CounterOpts{
			Name: "campuscoffee_pos_updated_total",
			Help: "Total number of POS records updated",
		}),
		OsmImports: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "campuscoffee_osm_imports_total",
			Help: "OSM node import attempts by outcome",
		}, []string{"outcome"}),
		OsmFetchDuration: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "campuscoffee_osm_fetch_duration_seconds",
			Help:    "Duration of OSM node fetches including XML decode",
			Buckets: []float64{0.05, 0.1, 0.25, 0.5, 1, 2.5, 5, 10, 30},
		}),
	}
}

// ObserveOsmFetch records the duration of one OSM node fetch.
// Call with time.Now() captured at the start of the fetch.
func (m *Metrics) ObserveOsmFetch(start time.Time) {
	m.OsmFetchDuration.Observe(time.Since(start).Seconds())
}

// RecordImport counts one import attempt with the given outcome.
func (m *Metrics) RecordImport(outcome string) {
	m.OsmImports.WithLabelValues(outcome).Inc()
}
