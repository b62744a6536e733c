package internaldefs

import (
	goQuizClient "github.com/MrEthical07/goQuizClient"
)

// CounterDef defines a public type used by goQuizClient APIs.
//
// CounterDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type CounterDef struct {
	ID   goQuizClient.MetricID
	Name string
	Help string
}

// HistogramDef defines a public type used by goQuizClient APIs.
//
// HistogramDef instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type HistogramDef struct {
	ID   goQuizClient.MetricID
	Name string
	Help string
}

// CounterDefs is an exported constant or variable used by the quiz API client.
var CounterDefs = []CounterDef{
	{ID: goQuizClient.MetricLoginSuccess, Name: "quizclient_login_success_total", Help: "Successful login operations."},
	{ID: goQuizClient.MetricLoginFailure, Name: "quizclient_login_failure_total", Help: "Failed login operations."},
	{ID: goQuizClient.MetricRegisterSuccess, Name: "quizclient_register_success_total", Help: "Successful registrations."},
	{ID: goQuizClient.MetricRegisterFailure, Name: "quizclient_register_failure_total", Help: "Failed registrations."},
	{ID: goQuizClient.MetricRefreshSuccess, Name: "quizclient_refresh_success_total", Help: "Successful token renewals."},
	{ID: goQuizClient.MetricRefreshFailure, Name: "quizclient_refresh_failure_total", Help: "Failed token renewals."},
	{ID: goQuizClient.MetricRefreshDeduplicated, Name: "quizclient_refresh_deduplicated_total", Help: "Renewal calls coalesced into an in-flight renewal."},
	{ID: goQuizClient.MetricLogout, Name: "quizclient_logout_total", Help: "Logout operations."},
	{ID: goQuizClient.MetricSessionExpired, Name: "quizclient_session_expired_total", Help: "Sessions ended by an unrecoverable credential state."},
	{ID: goQuizClient.MetricRequests, Name: "quizclient_requests_total", Help: "Outbound HTTP exchanges."},
	{ID: goQuizClient.MetricRequestRetries, Name: "quizclient_request_retries_total", Help: "Requests re-issued after a successful renewal."},
	{ID: goQuizClient.MetricUnauthorizedResponses, Name: "quizclient_unauthorized_responses_total", Help: "Unauthorized responses observed on the protected path."},
	{ID: goQuizClient.MetricRequestsSuspended, Name: "quizclient_requests_suspended_total", Help: "Requests rejected while the circuit breaker was open."},
}

// HistogramDefs is an exported constant or variable used by the quiz API client.
var HistogramDefs = []HistogramDef{
	{ID: goQuizClient.MetricRequestLatency, Name: "quizclient_request_latency_seconds", Help: "Request latency histogram."},
}

// HistogramBounds is an exported constant or variable used by the quiz API client.
var HistogramBounds = []string{
	"0.005",
	"0.01",
	"0.025",
	"0.05",
	"0.1",
	"0.25",
	"0.5",
	"+Inf",
}

// HistogramBoundSuffix is an exported constant or variable used by the quiz API client.
var HistogramBoundSuffix = []string{
	"0_005",
	"0_01",
	"0_025",
	"0_05",
	"0_1",
	"0_25",
	"0_5",
	"inf",
}

// NormalizeBuckets describes the normalizebuckets operation and its observable behavior.
func NormalizeBuckets(raw []uint64) [8]uint64 {
	var out [8]uint64
	for i := 0; i < len(out) && i < len(raw); i++ {
		out[i] = raw[i]
	}
	return out
}

// CumulativeBuckets describes the cumulativebuckets operation and its observable behavior.
func CumulativeBuckets(raw [8]uint64) [8]uint64 {
	var out [8]uint64
	var running uint64
	for i := 0; i < len(raw); i++ {
		running += raw[i]
		out[i] = running
	}
	return out
}
