package validate

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// Validation pipeline metrics
	validationDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "fleet_validation_duration_seconds",
			Help:    "Duration of record validation in seconds",
			Buckets: []float64{0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5},
		},
	)

	validationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_validation_total",
			Help: "Total number of record validations",
		},
		[]string{"kind", "status"}, // status: valid, invalid or error
	)

	violationTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "fleet_violation_total",
			Help: "Total number of validation violations",
		},
		[]string{"kind", "violation"},
	)
)
