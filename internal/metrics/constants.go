package metrics

// ============================================================================
// Metric Names
// ============================================================================

// HTTP metric names
const (
	MetricNameHTTPRequestsTotal    = "http_requests_total"
	MetricNameHTTPRequestDuration  = "http_request_duration_seconds"
	MetricNameHTTPRequestsInFlight = "http_requests_in_flight"
)

// Event metric names
const (
	MetricNameEventsPublished    = "events_published_total"
	MetricNameEventHandlerErrors = "event_handler_errors_total"
)

// Raffle metric names
const (
	MetricNameEntriesAccepted     = "raffle_entries_accepted_total"
	MetricNameEntriesRejected     = "raffle_entries_rejected_total"
	MetricNameTokensContributed   = "raffle_tokens_contributed_total"
	MetricNamePoolTotal           = "raffle_pool_total"
	MetricNameCyclesClosed        = "raffle_cycles_closed_total"
	MetricNameDrawDuration        = "raffle_draw_duration_seconds"
	MetricNameBalanceCheckLatency = "raffle_balance_check_seconds"
	MetricNamePersistFailures     = "raffle_persist_failures_total"
	MetricNameSettlements         = "raffle_settlements_total"
)

// ============================================================================
// Metric Help Text
// ============================================================================

// HTTP metric help text
const (
	HelpTextHTTPRequestsTotal    = "Total number of HTTP requests"
	HelpTextHTTPRequestDuration  = "HTTP request latency in seconds"
	HelpTextHTTPRequestsInFlight = "Current number of HTTP requests being served"
)

// Event metric help text
const (
	HelpTextEventsPublished    = "Total number of events published"
	HelpTextEventHandlerErrors = "Total number of event handler errors"
)

// Raffle metric help text
const (
	HelpTextEntriesAccepted     = "Total number of raffle entries accepted"
	HelpTextEntriesRejected     = "Total number of raffle entries rejected, by reason"
	HelpTextTokensContributed   = "Total tokens contributed to raffle pools"
	HelpTextPoolTotal           = "Pool total of the active raffle cycle"
	HelpTextCyclesClosed        = "Total number of raffle cycles closed, by outcome"
	HelpTextDrawDuration        = "Time spent closing a raffle cycle in seconds"
	HelpTextBalanceCheckLatency = "External balance check latency in seconds"
	HelpTextPersistFailures     = "Total number of raffle persistence failures, by operation"
	HelpTextSettlements         = "Total number of prize settlements, by result"
)

// ============================================================================
// Metric Label Names
// ============================================================================

const (
	LabelMethod    = "method"
	LabelPath      = "path"
	LabelStatus    = "status"
	LabelType      = "type"
	LabelReason    = "reason"
	LabelOutcome   = "outcome"
	LabelOperation = "operation"
	LabelResult    = "result"
)

// Cycle outcome label values
const (
	OutcomeWinner    = "winner"
	OutcomeNoEntries = "no_entries"
)

// Settlement result label values
const (
	ResultSuccess = "success"
	ResultFailure = "failure"
)

// ============================================================================
// Histogram Buckets
// ============================================================================

// HTTPLatencyBuckets ranges from 1ms to 10s
var HTTPLatencyBuckets = []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5, 5, 10}

// LedgerLatencyBuckets extends to the 60s balance check timeout
var LedgerLatencyBuckets = []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10, 30, 60}

// ============================================================================
// Log Messages
// ============================================================================

const (
	LogMsgEventPayloadUnexpected = "Event payload has unexpected shape"
	LogMsgMetricsRecorded        = "Metrics recorded for event"
)
