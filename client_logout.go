package goQuizClient

import (
	"context"
	"net/http"
)

// Logout describes the logout operation and its observable behavior.
//
// Logout notifies the server when an access token is held, then clears the
// store and the session. The server call is intentionally lossy: its outcome
// never blocks or reverses the client-side transition, which is
// authoritative. Logout is idempotent and always returns nil.
func (c *Client) Logout(ctx context.Context) error {
	if c == nil || c.session == nil {
		return ErrClientNotReady
	}

	access, _ := c.session.credentials()
	userID := c.currentUserID()

	if access != "" {
		if req, err := c.newAPIRequest(ctx, http.MethodPost, c.config.API.LogoutPath, nil, nil, access); err == nil {
			if resp, err := c.send(req); err == nil {
				drainBody(resp)
			}
		}
	}

	c.transitionMu.Lock()
	_ = c.store.Clear(ctx)
	c.session.clear()
	c.transitionMu.Unlock()

	c.metricInc(MetricLogout)
	c.emitEvent(ctx, eventLogout, userID, true, nil)
	return nil
}
