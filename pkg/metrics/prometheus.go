package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds all prometheus metrics for the scheduling service
type Metrics struct {
	MissionsScheduled  prometheus.Counter
	DemandsUnscheduled *prometheus.CounterVec
	Reschedules        *prometheus.CounterVec
	PlanningDuration   prometheus.Histogram
	ErrorsCount        *prometheus.CounterVec
}

// NewMetrics creates new prometheus metrics
func NewMetrics(namespace string) *Metrics {
	return &Metrics{
		MissionsScheduled: promauto.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "missions_scheduled_total",
			Help:      "The total number of demands matched to a pilot slot",
		}),
		DemandsUnscheduled: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "demands_unscheduled_total",
			Help:      "The total number of demands left unscheduled, by reason",
		}, []string{"reason"}),
		Reschedules: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "reschedules_total",
			Help:      "The total number of reschedule requests, by outcome",
		}, []string{"outcome"}),
		PlanningDuration: promauto.NewHistogram(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "planning_run_duration_seconds",
			Help:      "Time taken by one planning run",
			Buckets:   prometheus.DefBuckets,
		}),
		ErrorsCount: promauto.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "errors_total",
			Help:      "The total number of errors",
		}, []string{"operation"}),
	}
}
