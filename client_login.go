package goQuizClient

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/MrEthical07/goQuizClient/store"
)

// Login describes the login operation and its observable behavior.
//
// Login may return an error when input validation, dependency calls, or the
// server's credential check fail. A rejected login carries the server's
// message as an *APIError; a transport failure wraps [ErrConnectivity].
// Either way the session is unauthenticated afterwards, and the caller
// recovers by retrying with different input.
func (c *Client) Login(ctx context.Context, email, password string) (*store.User, error) {
	if c == nil || c.session == nil {
		return nil, ErrClientNotReady
	}
	return c.authenticate(ctx,
		c.config.API.LoginPath,
		loginRequest{Email: email, Password: password},
		MetricLoginSuccess, MetricLoginFailure,
		eventLoginSuccess, eventLoginFailure,
	)
}

// Register describes the register operation and its observable behavior.
//
// Register creates an account and, like Login, lands in an authenticated
// session on success. Failure semantics match [Client.Login]; a duplicate
// email surfaces as the server's own message.
func (c *Client) Register(ctx context.Context, name, email, password string) (*store.User, error) {
	if c == nil || c.session == nil {
		return nil, ErrClientNotReady
	}
	return c.authenticate(ctx,
		c.config.API.RegisterPath,
		registerRequest{Name: name, Email: email, Password: password},
		MetricRegisterSuccess, MetricRegisterFailure,
		eventRegisterSuccess, eventRegisterFailure,
	)
}

func (c *Client) authenticate(
	ctx context.Context,
	path string,
	reqBody any,
	okMetric, failMetric MetricID,
	okEvent, failEvent string,
) (*store.User, error) {
	c.session.beginAuthenticating()
	defer c.session.endAuthenticating()

	fail := func(cause error) (*store.User, error) {
		c.transitionMu.Lock()
		c.session.clear()
		c.transitionMu.Unlock()
		c.metricInc(failMetric)
		c.emitEvent(ctx, failEvent, "", false, cause)
		return nil, cause
	}

	payload, err := json.Marshal(reqBody)
	if err != nil {
		return fail(err)
	}

	req, err := c.newAPIRequest(ctx, http.MethodPost, path, nil, payload, "")
	if err != nil {
		return fail(err)
	}
	resp, err := c.send(req)
	if err != nil {
		return fail(err)
	}

	env, _, envErr := readEnvelope(resp)
	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices ||
		envErr != nil || env.Status != statusSuccess {
		return fail(apiFailure(resp, env, envErr))
	}

	creds, err := decodeCredentials(env)
	if err != nil {
		return fail(err)
	}

	// Persist before the session becomes readable: a transition is complete
	// only once its snapshot is durable.
	snap := store.Snapshot{
		User:         creds.User,
		AccessToken:  creds.AccessToken,
		RefreshToken: creds.RefreshToken,
	}
	c.transitionMu.Lock()
	_ = c.store.Save(ctx, snap)
	c.session.setAuthenticated(creds.User, creds.AccessToken, creds.RefreshToken)
	c.transitionMu.Unlock()

	c.metricInc(okMetric)
	c.emitEvent(ctx, okEvent, creds.User.ID, true, nil)

	user := *creds.User
	return &user, nil
}
