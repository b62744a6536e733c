package goQuizClient

import (
	"context"
	"errors"
	"testing"

	"github.com/MrEthical07/goQuizClient/store"
)

func TestLoginSuccessAuthenticatesAndPersists(t *testing.T) {
	_, server := newTestServer(t)
	credStore := store.NewMemoryStore()
	client := newTestClient(t, server.URL, credStore)

	user, err := client.Login(context.Background(), testEmail, testPassword)
	if err != nil {
		t.Fatalf("login failed: %v", err)
	}
	if user.ID != "user-1" || user.Email != testEmail {
		t.Fatalf("unexpected user: %+v", user)
	}

	info := client.SessionInfo()
	if info.State != StateAuthenticated {
		t.Fatalf("expected authenticated, got %v", info.State)
	}

	snap, err := credStore.Load(context.Background())
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if snap == nil || !snap.Complete() {
		t.Fatalf("expected complete persisted snapshot, got %+v", snap)
	}
	if snap.AccessToken != "AT1" || snap.RefreshToken != "RT1" {
		t.Fatalf("expected AT1/RT1 persisted, got %s/%s", snap.AccessToken, snap.RefreshToken)
	}

	if got := client.MetricsSnapshot().Counters[MetricLoginSuccess]; got != 1 {
		t.Fatalf("expected 1 login success, got %d", got)
	}
}

func TestLoginRejectedCarriesServerMessage(t *testing.T) {
	_, server := newTestServer(t)
	client := newTestClient(t, server.URL, nil)

	_, err := client.Login(context.Background(), testEmail, "wrong")
	if err == nil {
		t.Fatal("expected login failure")
	}

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %T: %v", err, err)
	}
	if apiErr.StatusCode != 401 || apiErr.Message != "invalid credentials" {
		t.Fatalf("unexpected api error: %+v", apiErr)
	}

	if info := client.SessionInfo(); info.State != StateUnauthenticated {
		t.Fatalf("expected unauthenticated after rejection, got %v", info.State)
	}
	if got := client.MetricsSnapshot().Counters[MetricLoginFailure]; got != 1 {
		t.Fatalf("expected 1 login failure, got %d", got)
	}
}

func TestLoginUnreachableServerWrapsConnectivity(t *testing.T) {
	client := newTestClient(t, "http://127.0.0.1:1", nil)

	_, err := client.Login(context.Background(), testEmail, testPassword)
	if !errors.Is(err, ErrConnectivity) {
		t.Fatalf("expected ErrConnectivity, got %v", err)
	}
	if info := client.SessionInfo(); info.State != StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %v", info.State)
	}
}

func TestRegisterSuccessAuthenticates(t *testing.T) {
	_, server := newTestServer(t)
	credStore := store.NewMemoryStore()
	client := newTestClient(t, server.URL, credStore)

	user, err := client.Register(context.Background(), "Grace", "g@h.com", "pw12345")
	if err != nil {
		t.Fatalf("register failed: %v", err)
	}
	if user.Name != "Grace" || user.Email != "g@h.com" {
		t.Fatalf("unexpected user: %+v", user)
	}
	if info := client.SessionInfo(); info.State != StateAuthenticated {
		t.Fatalf("expected authenticated after register, got %v", info.State)
	}

	snap, _ := credStore.Load(context.Background())
	if snap == nil || snap.User.Email != "g@h.com" {
		t.Fatalf("expected persisted registration snapshot, got %+v", snap)
	}
}

func TestRegisterDuplicateEmailSurfacesMessage(t *testing.T) {
	_, server := newTestServer(t)
	client := newTestClient(t, server.URL, nil)

	_, err := client.Register(context.Background(), "Ada", testEmail, "pw12345")

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected *APIError, got %v", err)
	}
	if apiErr.Message != "email already registered" {
		t.Fatalf("unexpected message: %q", apiErr.Message)
	}
}

func TestLoginReplacesExistingSession(t *testing.T) {
	api, client, credStore := loggedInClient(t)

	if _, err := client.Login(context.Background(), testEmail, testPassword); err != nil {
		t.Fatalf("second login failed: %v", err)
	}

	api.mu.Lock()
	currentAccess := api.access
	api.mu.Unlock()

	snap, _ := credStore.Load(context.Background())
	if snap == nil || snap.AccessToken != currentAccess {
		t.Fatalf("expected snapshot to carry rotated token %s, got %+v", currentAccess, snap)
	}
}
