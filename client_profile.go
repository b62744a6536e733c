package goQuizClient

import (
	"context"
	"net/http"

	"github.com/MrEthical07/goQuizClient/store"
)

// Profile describes the profile operation and its observable behavior.
//
// Profile re-fetches the authenticated user's record and updates both the
// session and its persisted copy without touching the tokens. It keeps
// displayed user data current — a role change server-side shows up here
// without re-authenticating. The fetch rides the resilient request path, so
// an expired access token is renewed transparently.
func (c *Client) Profile(ctx context.Context) (*store.User, error) {
	if c == nil || c.session == nil {
		return nil, ErrClientNotReady
	}
	if info := c.session.info(); !info.IsAuthenticated {
		return nil, ErrUnauthenticated
	}

	resp, err := c.Do(ctx, http.MethodGet, c.config.API.ProfilePath, nil)
	if err != nil {
		return nil, err
	}

	env, _, envErr := readEnvelope(resp)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices ||
		envErr != nil || env.Status != statusSuccess {
		return nil, apiFailure(resp, env, envErr)
	}

	user, err := decodeProfile(env)
	if err != nil {
		return nil, err
	}

	// Persist and expose as one transition: tokens stay whatever the session
	// holds right now (a renewal may have rotated them during the fetch), and
	// a logout that landed mid-fetch wins — nothing is written back after it.
	c.transitionMu.Lock()
	access, refresh := c.session.credentials()
	if access == "" || refresh == "" || !c.session.setUser(user) {
		c.transitionMu.Unlock()
		return nil, ErrUnauthenticated
	}
	_ = c.store.Save(ctx, store.Snapshot{
		User:         user,
		AccessToken:  access,
		RefreshToken: refresh,
	})
	c.transitionMu.Unlock()

	copied := *user
	return &copied, nil
}
