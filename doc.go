// Package goQuizClient provides the session-owning API client for the quiz
// service: credential persistence, an explicit session state machine, and a
// resilient request path that transparently renews expired access tokens.
//
// The package is designed for concurrent callers: Client methods are safe to
// call from multiple goroutines after initialization through [Builder.Build].
// Concurrent unauthorized responses share a single in-flight renewal; each
// logical request is retried at most once.
//
// # Architecture boundaries
//
// goQuizClient is the public surface. It exposes [Client], [Builder], [Config],
// and value types (SessionInfo, MetricsSnapshot, Event, etc.). Credential
// persistence lives under store/, token inspection under token/, and typed
// endpoint wrappers under quiz/. None of those packages keep a competing copy
// of session state — the Client owns the session exclusively.
//
// # What this package must NOT do
//
//   - Mutate session state from anywhere but a Client transition; the
//     transport and the stores only read through the Client.
//   - Expose a half-populated session: after every completed transition the
//     user and both tokens are either all set or all cleared.
//   - Retry a failed renewal. A renewal failure always ends the session.
//
// # Performance contract
//
// Do is the hot path. The common case (a non-unauthorized response) adds one
// header attach and one atomic counter increment over a plain HTTP round-trip.
// Renewal is allowed one extra round-trip and is de-duplicated across
// concurrent callers.
package goQuizClient
