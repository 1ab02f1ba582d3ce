package search

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the optional move/idle-step counters a Search can publish,
// grounded on the promauto-registration pattern used for ambient
// observability in the example corpus. Registration is opt-in (see
// WithMetrics) so running many independent engines (§5's multi-start
// ensembles, or ordinary parallel tests) never panics on duplicate
// registration against the default registry.
type Metrics struct {
	Moves     prometheus.Counter
	IdleSteps prometheus.Counter
}

// NewMetrics registers a fresh Metrics against reg.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)
	return &Metrics{
		Moves: factory.NewCounter(prometheus.CounterOpts{
			Name: "critnode_search_moves_total",
			Help: "Total number of completed moves across all strategies (for DLAS, accepted moves only).",
		}),
		IdleSteps: factory.NewCounter(prometheus.CounterOpts{
			Name: "critnode_search_idle_steps_total",
			Help: "Total number of steps that did not strictly improve the incumbent.",
		}),
	}
}
