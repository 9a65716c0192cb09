package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// HTTP Metrics
var (
	HTTPRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameHTTPRequestsTotal,
			Help: HelpTextHTTPRequestsTotal,
		},
		[]string{LabelMethod, LabelPath, LabelStatus},
	)

	HTTPRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    MetricNameHTTPRequestDuration,
			Help:    HelpTextHTTPRequestDuration,
			Buckets: HTTPLatencyBuckets,
		},
		[]string{LabelMethod, LabelPath},
	)

	HTTPRequestsInFlight = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNameHTTPRequestsInFlight,
			Help: HelpTextHTTPRequestsInFlight,
		},
	)
)

// Event Metrics
var (
	EventsPublished = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventsPublished,
			Help: HelpTextEventsPublished,
		},
		[]string{LabelType},
	)

	EventHandlerErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEventHandlerErrors,
			Help: HelpTextEventHandlerErrors,
		},
		[]string{LabelType},
	)
)

// Raffle Metrics
var (
	EntriesAccepted = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameEntriesAccepted,
			Help: HelpTextEntriesAccepted,
		},
	)

	EntriesRejected = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameEntriesRejected,
			Help: HelpTextEntriesRejected,
		},
		[]string{LabelReason},
	)

	TokensContributed = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: MetricNameTokensContributed,
			Help: HelpTextTokensContributed,
		},
	)

	PoolTotal = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: MetricNamePoolTotal,
			Help: HelpTextPoolTotal,
		},
	)

	CyclesClosed = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameCyclesClosed,
			Help: HelpTextCyclesClosed,
		},
		[]string{LabelOutcome},
	)

	DrawDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameDrawDuration,
			Help:    HelpTextDrawDuration,
			Buckets: HTTPLatencyBuckets,
		},
	)

	BalanceCheckLatency = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    MetricNameBalanceCheckLatency,
			Help:    HelpTextBalanceCheckLatency,
			Buckets: LedgerLatencyBuckets,
		},
	)

	PersistFailures = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNamePersistFailures,
			Help: HelpTextPersistFailures,
		},
		[]string{LabelOperation},
	)

	Settlements = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: MetricNameSettlements,
			Help: HelpTextSettlements,
		},
		[]string{LabelResult},
	)
)
