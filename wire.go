package goQuizClient

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"github.com/MrEthical07/goQuizClient/store"
)

const statusSuccess = "success"

// maxEnvelopeBytes bounds how much of an auth response body the client will
// buffer. Auth envelopes are small; anything larger is not ours to parse.
const maxEnvelopeBytes = 1 << 20

type envelope struct {
	Status  string          `json:"status"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refreshToken"`
}

type credentialsPayload struct {
	User         *store.User `json:"user"`
	AccessToken  string      `json:"accessToken"`
	RefreshToken string      `json:"refreshToken"`
}

type tokenPairPayload struct {
	AccessToken  string `json:"accessToken"`
	RefreshToken string `json:"refreshToken"`
}

type profilePayload struct {
	User *store.User `json:"user"`
}

func readEnvelope(resp *http.Response) (envelope, []byte, error) {
	defer func() { _ = resp.Body.Close() }()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxEnvelopeBytes))
	if err != nil {
		return envelope{}, nil, fmt.Errorf("%w: %v", ErrConnectivity, err)
	}

	var env envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return envelope{}, body, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	return env, body, nil
}

func decodeCredentials(env envelope) (*credentialsPayload, error) {
	var payload credentialsPayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.User == nil || payload.User.ID == "" || payload.AccessToken == "" || payload.RefreshToken == "" {
		return nil, ErrMalformedResponse
	}
	return &payload, nil
}

// decodeTokenPair accepts the canonical enveloped renewal payload and, as a
// legacy fallback, the same pair at the top level of the body. The fallback
// is the migration seam for the older API shape and is confined to this
// function.
func decodeTokenPair(env envelope, body []byte) (*tokenPairPayload, error) {
	var payload tokenPairPayload
	if len(env.Data) > 0 {
		if err := json.Unmarshal(env.Data, &payload); err == nil && payload.AccessToken != "" && payload.RefreshToken != "" {
			return &payload, nil
		}
	}

	payload = tokenPairPayload{}
	if err := json.Unmarshal(body, &payload); err == nil && payload.AccessToken != "" && payload.RefreshToken != "" {
		return &payload, nil
	}
	return nil, ErrMalformedResponse
}

func decodeProfile(env envelope) (*store.User, error) {
	var payload profilePayload
	if err := json.Unmarshal(env.Data, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}
	if payload.User == nil || payload.User.ID == "" {
		return nil, ErrMalformedResponse
	}
	return payload.User, nil
}

// apiFailure turns a non-success auth response into an *APIError carrying
// the server message, or a generic one when the body did not parse.
func apiFailure(resp *http.Response, env envelope, envErr error) error {
	if envErr != nil {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return &APIError{
		StatusCode: resp.StatusCode,
		Status:     env.Status,
		Message:    env.Message,
	}
}
