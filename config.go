package goQuizClient

import (
	"errors"
	"net/url"
	"strings"
	"time"
)

// Config defines a public type used by goQuizClient APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	API     APIConfig
	HTTP    HTTPConfig
	Refresh RefreshConfig
	Store   StoreConfig
	Events  EventsConfig
	Metrics MetricsConfig
}

/*
====================================
API CONFIG
====================================
*/

// APIConfig defines a public type used by goQuizClient APIs.
//
// APIConfig names the server surface the client talks to. BaseURL is the
// only required field; the paths default to the quiz service's auth routes.
type APIConfig struct {
	BaseURL      string
	LoginPath    string
	RegisterPath string
	RefreshPath  string
	LogoutPath   string
	ProfilePath  string
}

/*
====================================
HTTP CONFIG
====================================
*/

// HTTPConfig defines a public type used by goQuizClient APIs.
type HTTPConfig struct {
	Timeout   time.Duration
	UserAgent string
	Breaker   BreakerConfig
}

// BreakerConfig defines a public type used by goQuizClient APIs.
//
// The breaker counts transport-level failures only. HTTP responses of any
// status are deliveries, not failures. While open, Do fails fast with
// [ErrRequestsSuspended] instead of hammering an unreachable API.
type BreakerConfig struct {
	Enabled     bool
	MaxFailures uint32
	OpenFor     time.Duration
}

/*
====================================
REFRESH CONFIG
====================================
*/

// RefreshConfig defines a public type used by goQuizClient APIs.
//
// Timeout bounds the renewal call alone: an unbounded hang there would
// strand every caller waiting on the shared renewal. ProactiveWindow, when
// positive, renews before issuing a request whose access token expires
// inside the window; zero keeps renewal strictly 401-driven.
type RefreshConfig struct {
	Timeout         time.Duration
	ProactiveWindow time.Duration
}

/*
====================================
STORE CONFIG
====================================
*/

// StoreConfig defines a public type used by goQuizClient APIs.
type StoreConfig struct {
	RedisPrefix string
}

/*
====================================
EVENTS CONFIG
====================================
*/

// EventsConfig defines a public type used by goQuizClient APIs.
type EventsConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goQuizClient APIs.
type MetricsConfig struct {
	Enabled                 bool
	EnableLatencyHistograms bool
}

// DefaultConfig describes the defaultconfig operation and its observable behavior.
//
// DefaultConfig returns the baseline configuration. BaseURL is left empty
// and must be supplied through [Builder.WithBaseURL] or [Builder.WithConfig].
func DefaultConfig() Config {
	return defaultConfig()
}

func defaultConfig() Config {
	return Config{
		API: APIConfig{
			LoginPath:    "/api/auth/login",
			RegisterPath: "/api/auth/register",
			RefreshPath:  "/api/auth/refresh-token",
			LogoutPath:   "/api/auth/logout",
			ProfilePath:  "/api/auth/profile",
		},
		HTTP: HTTPConfig{
			Timeout:   30 * time.Second,
			UserAgent: "goQuizClient",
			Breaker: BreakerConfig{
				Enabled:     false,
				MaxFailures: 5,
				OpenFor:     30 * time.Second,
			},
		},
		Refresh: RefreshConfig{
			Timeout:         10 * time.Second,
			ProactiveWindow: 0,
		},
		Store: StoreConfig{
			RedisPrefix: "qc",
		},
		Events: EventsConfig{
			Enabled:    false,
			BufferSize: 1024,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled:                 false,
			EnableLatencyHistograms: false,
		},
	}
}

// Validate describes the validate operation and its observable behavior.
//
// Validate may return an error when input validation fails. It is called by
// [Builder.Build]; direct calls are only needed when constructing Config by hand.
func (c Config) Validate() error {
	if strings.TrimSpace(c.API.BaseURL) == "" {
		return errors.New("API BaseURL required")
	}
	parsed, err := url.Parse(c.API.BaseURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return errors.New("API BaseURL must be an absolute URL")
	}
	for _, p := range []string{
		c.API.LoginPath,
		c.API.RegisterPath,
		c.API.RefreshPath,
		c.API.LogoutPath,
		c.API.ProfilePath,
	} {
		if !strings.HasPrefix(p, "/") {
			return errors.New("API paths must be absolute")
		}
	}
	if c.HTTP.Timeout <= 0 {
		return errors.New("HTTP Timeout must be positive")
	}
	if c.Refresh.Timeout <= 0 {
		return errors.New("Refresh Timeout must be positive")
	}
	if c.Refresh.ProactiveWindow < 0 {
		return errors.New("Refresh ProactiveWindow must not be negative")
	}
	if c.HTTP.Breaker.Enabled {
		if c.HTTP.Breaker.MaxFailures == 0 {
			return errors.New("Breaker MaxFailures must be positive")
		}
		if c.HTTP.Breaker.OpenFor <= 0 {
			return errors.New("Breaker OpenFor must be positive")
		}
	}
	if c.Events.Enabled && c.Events.BufferSize <= 0 {
		return errors.New("Events BufferSize must be positive")
	}
	return nil
}
