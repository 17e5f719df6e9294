package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var namespace = "holidaycal"
var subsystem = "calendar"

// Error reasons used as the "reason" label of QueryErrorsTotal.
const (
	ReasonInvalidDate = "invalid_date"
	ReasonInvalidStep = "invalid_step"
	ReasonOutOfWindow = "out_of_window"
	ReasonOther       = "other"
)

var (
	// QueriesTotal stores the number of answered queries partitioned by
	// action and calendar variant
	QueriesTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "queries_total",
		Help:      "Number of answered calendar queries partitioned by action and variant",
	}, []string{"action", "variant"})

	// QueryErrorsTotal stores the number of failed queries partitioned by
	// action and reason
	QueryErrorsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "query_errors_total",
		Help:      "Number of failed calendar queries partitioned by action and reason",
	}, []string{"action", "reason"})

	// QueryDuration stores the processing time of answered queries,
	// calendar construction included, partitioned by action
	QueryDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "query_duration_seconds",
		Help:      "Query processing time, holiday rule evaluation included, partitioned by action",
		Buckets:   prometheus.ExponentialBuckets(0.00001, 4, 10),
	}, []string{"action"})

	// WindowDays stores the window size of the last stepping calendar
	WindowDays = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: namespace,
		Subsystem: subsystem,
		Name:      "window_days",
		Help:      "Number of days covered by the last calendar window",
	})
)
