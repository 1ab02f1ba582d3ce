package search_test

import (
	"github.com/prometheus/client_golang/prometheus"
)

// newTestRegistry returns a fresh, non-default registry so parallel tests
// registering the same metric names never collide.
func newTestRegistry() *prometheus.Registry {
	return prometheus.NewRegistry()
}
