package goQuizClient

import (
	"context"
	"net/http"
	"net/url"
	"sync"
	"time"

	"github.com/MrEthical07/goQuizClient/store"
	"github.com/sony/gobreaker"
	"golang.org/x/sync/singleflight"
)

// Client defines a public type used by goQuizClient APIs.
//
// Client owns the session and is the sole entry point through which feature
// code reaches the protected API. Client instances are intended to be
// configured during initialization through [Builder.Build] and then treated
// as immutable; all methods are safe for concurrent use.
type Client struct {
	config     Config
	httpClient *http.Client
	baseURL    *url.URL
	store      store.Store
	session    *session
	events     *eventDispatcher
	metrics    *Metrics
	breaker    *gobreaker.CircuitBreaker

	refreshGroup singleflight.Group

	// transitionMu serializes compound store+session transitions (persist a
	// snapshot and flip the state, or clear both). A snapshot in the store
	// always corresponds to a transition that completed, never to one that
	// lost a race with a logout.
	transitionMu sync.Mutex
}

// SessionInfo describes the sessioninfo operation and its observable behavior.
//
// SessionInfo returns a point-in-time copy of the session for route guards
// and feature code. It never blocks on network I/O.
func (c *Client) SessionInfo() SessionInfo {
	if c == nil {
		return SessionInfo{State: StateUnauthenticated}
	}
	return c.session.info()
}

// Close describes the close operation and its observable behavior.
//
// Close flushes the event dispatcher. It does not touch the session or the
// store; a closed client still holds whatever session it had.
func (c *Client) Close() {
	if c == nil {
		return
	}
	if c.events != nil {
		c.events.Close()
	}
}

// MetricsSnapshot describes the metricssnapshot operation and its observable behavior.
func (c *Client) MetricsSnapshot() MetricsSnapshot {
	if c == nil || c.metrics == nil {
		return MetricsSnapshot{
			Counters:   map[MetricID]uint64{},
			Histograms: map[MetricID][]uint64{},
		}
	}
	return c.metrics.Snapshot()
}

// EventsDropped describes the eventsdropped operation and its observable behavior.
func (c *Client) EventsDropped() uint64 {
	if c == nil || c.events == nil {
		return 0
	}
	return c.events.Dropped()
}

func (c *Client) metricInc(id MetricID) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Inc(id)
}

func (c *Client) metricObserve(id MetricID, d time.Duration) {
	if c == nil || c.metrics == nil {
		return
	}
	c.metrics.Observe(id, d)
}

func (c *Client) emitEvent(ctx context.Context, eventType, userID string, success bool, cause error) {
	if c == nil || c.events == nil {
		return
	}

	event := Event{
		Timestamp: time.Now().UTC(),
		EventType: eventType,
		UserID:    userID,
		Success:   success,
	}
	if cause != nil {
		event.Error = cause.Error()
	}
	c.events.Emit(ctx, event)
}

func (c *Client) currentUserID() string {
	info := c.session.info()
	if info.User == nil {
		return ""
	}
	return info.User.ID
}

// expireSession is the terminal path for an unrecoverable credential state:
// clear the store, clear the session, and tell the embedding application to
// return to the sign-in surface. Store failures cannot block the client-side
// transition.
func (c *Client) expireSession(ctx context.Context, cause error) {
	userID := c.currentUserID()
	c.transitionMu.Lock()
	_ = c.store.Clear(ctx)
	c.session.clear()
	c.transitionMu.Unlock()
	c.metricInc(MetricSessionExpired)
	c.emitEvent(ctx, eventSessionExpired, userID, false, cause)
}
