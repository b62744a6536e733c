package goQuizClient

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/MrEthical07/goQuizClient/token"
	"github.com/google/uuid"
	"github.com/sony/gobreaker"
)

// Do describes the do operation and its observable behavior.
//
// Do is the resilient request path every protected endpoint goes through:
// it attaches the current access token, issues the call, and on an
// unauthorized response drives exactly one renewal followed by exactly one
// retry of the original call. Any other status is returned unchanged — 4xx
// and 5xx are the caller's to interpret, never an error here.
//
// The caller owns the returned response body. path may carry a query string;
// it is resolved against the configured base URL.
func (c *Client) Do(ctx context.Context, method, path string, body []byte) (*http.Response, error) {
	return c.DoWithHeader(ctx, method, path, nil, body)
}

// DoWithHeader describes the dowithheader operation and its observable behavior.
//
// DoWithHeader is [Client.Do] with caller-supplied headers. Caller headers
// win over the defaults except Authorization, which is always the session's.
func (c *Client) DoWithHeader(ctx context.Context, method, path string, header http.Header, body []byte) (*http.Response, error) {
	if c == nil || c.session == nil {
		return nil, ErrClientNotReady
	}

	sessionEnded := false
	access, _ := c.session.credentials()
	if window := c.config.Refresh.ProactiveWindow; window > 0 && access != "" && token.ExpiresWithin(access, window) {
		// Best effort: a failed proactive renewal has already expired the
		// session, and the request below surfaces that as a plain 401.
		if err := c.Refresh(ctx); err != nil {
			sessionEnded = true
		}
		access, _ = c.session.credentials()
	}

	req, err := c.newAPIRequest(ctx, method, path, header, body, access)
	if err != nil {
		return nil, err
	}

	resp, err := c.send(req)
	if err != nil {
		return nil, err
	}
	if resp.StatusCode != http.StatusUnauthorized {
		return resp, nil
	}

	c.metricInc(MetricUnauthorizedResponses)

	if sessionEnded {
		// The proactive renewal already ended the session; expiring it
		// again here would double-count and double-notify.
		return resp, nil
	}

	if _, refresh := c.session.credentials(); refresh == "" {
		// Terminal: nothing to renew with. Callers get the original
		// unauthorized response and must not retry themselves.
		c.expireSession(ctx, ErrNoRefreshToken)
		return resp, nil
	}

	if err := c.Refresh(ctx); err != nil {
		// Renewal failed and has already forced logout; surface the
		// original unauthorized response, not the renewal's failure.
		return resp, nil
	}

	access, _ = c.session.credentials()
	retryReq, err := c.newAPIRequest(ctx, method, path, header, body, access)
	if err != nil {
		return resp, nil
	}
	retryResp, err := c.send(retryReq)
	if err != nil {
		drainBody(resp)
		return nil, err
	}

	// The retried response is returned whatever its status: a second
	// unauthorized is surfaced as-is, there is no second renewal.
	c.metricInc(MetricRequestRetries)
	drainBody(resp)
	return retryResp, nil
}

func (c *Client) newAPIRequest(ctx context.Context, method, path string, header http.Header, body []byte, bearer string) (*http.Request, error) {
	rel, err := url.Parse(path)
	if err != nil {
		return nil, fmt.Errorf("invalid request path %q: %w", path, err)
	}
	target := c.baseURL.ResolveReference(rel)

	var reader io.Reader
	if body != nil {
		reader = bytes.NewReader(body)
	}
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return nil, err
	}

	for key, values := range header {
		for _, value := range values {
			req.Header.Add(key, value)
		}
	}
	if body != nil && req.Header.Get("Content-Type") == "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.config.HTTP.UserAgent != "" {
		req.Header.Set("User-Agent", c.config.HTTP.UserAgent)
	}
	req.Header.Set("X-Request-Id", uuid.NewString())
	if bearer != "" {
		req.Header.Set("Authorization", "Bearer "+bearer)
	}
	return req, nil
}

// send issues a single HTTP exchange through the breaker when one is
// configured. Only transport-level failures count against the breaker; a
// delivered response of any status is a success.
func (c *Client) send(req *http.Request) (*http.Response, error) {
	c.metricInc(MetricRequests)
	start := time.Now()

	var resp *http.Response
	var err error
	if c.breaker != nil {
		var result any
		result, err = c.breaker.Execute(func() (any, error) {
			return c.httpClient.Do(req)
		})
		if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
			c.metricInc(MetricRequestsSuspended)
			return nil, fmt.Errorf("%w: %v", ErrRequestsSuspended, err)
		}
		if err == nil {
			resp = result.(*http.Response)
		}
	} else {
		resp, err = c.httpClient.Do(req)
	}

	c.metricObserve(MetricRequestLatency, time.Since(start))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}
	return resp, nil
}

func drainBody(resp *http.Response) {
	if resp == nil || resp.Body == nil {
		return
	}
	_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxEnvelopeBytes))
	_ = resp.Body.Close()
}
