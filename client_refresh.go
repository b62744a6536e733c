package goQuizClient

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
)

const refreshGroupKey = "refresh"

// Refresh describes the refresh operation and its observable behavior.
//
// Refresh presents the refresh token for a new token pair. Concurrent calls
// are single-flight: the first begins the renewal and the rest await its
// outcome instead of spending the single-use refresh token themselves. The
// renewal call is bounded by [RefreshConfig.Timeout] regardless of the
// caller's context, so a hung renewal cannot strand every waiting caller.
//
// A failed renewal is a hard boundary: it is never retried, it always ends
// the session through logout, and it returns an error wrapping
// [ErrSessionExpired].
func (c *Client) Refresh(ctx context.Context) error {
	if c == nil || c.session == nil {
		return ErrClientNotReady
	}

	_, err, shared := c.refreshGroup.Do(refreshGroupKey, func() (any, error) {
		// Detached from the initiating caller: other waiters must not be
		// aborted because the first caller gave up.
		return nil, c.doRefresh(context.WithoutCancel(ctx))
	})
	if shared {
		c.metricInc(MetricRefreshDeduplicated)
	}
	return err
}

func (c *Client) doRefresh(ctx context.Context) error {
	refresh, ok := c.session.beginRefresh()
	if !ok {
		c.expireSession(ctx, ErrNoRefreshToken)
		return fmt.Errorf("%w: %v", ErrSessionExpired, ErrNoRefreshToken)
	}

	ctx, cancel := context.WithTimeout(ctx, c.config.Refresh.Timeout)
	defer cancel()

	payload, err := json.Marshal(refreshRequest{RefreshToken: refresh})
	if err != nil {
		return c.failRefresh(ctx, err)
	}
	req, err := c.newAPIRequest(ctx, http.MethodPost, c.config.API.RefreshPath, nil, payload, "")
	if err != nil {
		return c.failRefresh(ctx, err)
	}
	resp, err := c.send(req)
	if err != nil {
		return c.failRefresh(ctx, err)
	}

	env, body, envErr := readEnvelope(resp)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return c.failRefresh(ctx, apiFailure(resp, env, envErr))
	}
	pair, err := decodeTokenPair(env, body)
	if err != nil {
		return c.failRefresh(ctx, err)
	}

	c.transitionMu.Lock()
	if !c.session.completeRefresh(pair.AccessToken, pair.RefreshToken) {
		c.transitionMu.Unlock()
		// A logout landed while the renewal was on the wire. The logout
		// already cleared the session and the store; the rotated pair is
		// dropped rather than resurrecting the session it belonged to.
		return fmt.Errorf("%w: session ended during renewal", ErrSessionExpired)
	}
	if snap := c.session.snapshot(); snap != nil {
		_ = c.store.Save(ctx, *snap)
	}
	c.transitionMu.Unlock()

	c.metricInc(MetricRefreshSuccess)
	c.emitEvent(ctx, eventRefreshSuccess, c.currentUserID(), true, nil)
	return nil
}

// failRefresh ends the session: emit the failure, run the unconditional
// logout (best-effort server notify included), and report the expiry.
func (c *Client) failRefresh(ctx context.Context, cause error) error {
	userID := c.currentUserID()
	c.metricInc(MetricRefreshFailure)
	c.emitEvent(ctx, eventRefreshFailure, userID, false, cause)

	_ = c.Logout(ctx)

	c.metricInc(MetricSessionExpired)
	c.emitEvent(ctx, eventSessionExpired, userID, false, cause)
	return fmt.Errorf("%w: %v", ErrSessionExpired, cause)
}
