package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// AuthOutcomes counts digest verification outcomes. Labels: accepted,
// rejected, error.
var AuthOutcomes = promauto.NewCounterVec(prometheus.CounterOpts{
	Name: "digestgate_auth_outcomes_total",
	Help: "Digest authentication outcomes by result.",
}, []string{"outcome"})
