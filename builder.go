package goQuizClient

import (
	"context"
	"errors"
	"net/http"
	"net/url"

	"github.com/MrEthical07/goQuizClient/store"
	"github.com/redis/go-redis/v9"
	"github.com/sony/gobreaker"
)

// Builder defines a public type used by goQuizClient APIs.
//
// Builder instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Builder struct {
	config Config

	httpClient *http.Client
	credStore  store.Store
	redis      *redis.Client
	eventSink  EventSink

	built bool
}

// New describes the new operation and its observable behavior.
func New() *Builder {
	return &Builder{
		config: defaultConfig(),
	}
}

// WithConfig describes the withconfig operation and its observable behavior.
func (b *Builder) WithConfig(cfg Config) *Builder {
	b.config = cfg
	return b
}

// WithBaseURL describes the withbaseurl operation and its observable behavior.
func (b *Builder) WithBaseURL(baseURL string) *Builder {
	b.config.API.BaseURL = baseURL
	return b
}

// WithHTTPClient describes the withhttpclient operation and its observable behavior.
//
// The supplied client is used as-is; its transport settings win over
// [HTTPConfig.Timeout].
func (b *Builder) WithHTTPClient(client *http.Client) *Builder {
	b.httpClient = client
	return b
}

// WithStore describes the withstore operation and its observable behavior.
//
// WithStore takes precedence over [Builder.WithRedis]. Without either, the
// client falls back to an in-process store and the session does not survive
// a restart.
func (b *Builder) WithStore(s store.Store) *Builder {
	b.credStore = s
	return b
}

// WithRedis describes the withredis operation and its observable behavior.
//
// WithRedis persists credentials in Redis under [StoreConfig.RedisPrefix],
// letting multiple processes share one session.
func (b *Builder) WithRedis(client *redis.Client) *Builder {
	b.redis = client
	return b
}

// WithEventSink describes the witheventsink operation and its observable behavior.
func (b *Builder) WithEventSink(sink EventSink) *Builder {
	b.eventSink = sink
	b.config.Events.Enabled = true
	return b
}

// WithMetricsEnabled describes the withmetricsenabled operation and its observable behavior.
func (b *Builder) WithMetricsEnabled(enabled bool) *Builder {
	b.config.Metrics.Enabled = enabled
	return b
}

// Build describes the build operation and its observable behavior.
//
// Build validates the configuration, wires the store, and hydrates the
// session from the persisted snapshot — the only point where the snapshot is
// read. A complete snapshot yields an authenticated session with no network
// round-trip; anything else (absent, partial, corrupt, store unavailable)
// yields an unauthenticated one.
func (b *Builder) Build(ctx context.Context) (*Client, error) {
	if b.built {
		return nil, errors.New("builder already used")
	}

	cfg := b.config
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	baseURL, err := url.Parse(cfg.API.BaseURL)
	if err != nil {
		return nil, errors.New("API BaseURL must be an absolute URL")
	}

	credStore := b.credStore
	if credStore == nil && b.redis != nil {
		credStore = store.NewRedisStore(b.redis, cfg.Store.RedisPrefix)
	}
	if credStore == nil {
		credStore = store.NewMemoryStore()
	}

	httpClient := b.httpClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: cfg.HTTP.Timeout}
	}

	client := &Client{
		config:     cfg,
		httpClient: httpClient,
		baseURL:    baseURL,
		store:      credStore,
		session:    newSession(),
		events:     newEventDispatcher(cfg.Events, b.eventSink),
		metrics:    NewMetrics(cfg.Metrics),
	}

	if cfg.HTTP.Breaker.Enabled {
		maxFailures := cfg.HTTP.Breaker.MaxFailures
		client.breaker = gobreaker.NewCircuitBreaker(gobreaker.Settings{
			Name:    "quiz-api",
			Timeout: cfg.HTTP.Breaker.OpenFor,
			ReadyToTrip: func(counts gobreaker.Counts) bool {
				return counts.ConsecutiveFailures >= maxFailures
			},
		})
	}

	// Restore-from-storage is best effort: a store error at startup means
	// "no session", never a failed build.
	snap, err := credStore.Load(ctx)
	if err != nil {
		snap = nil
	}
	client.session.hydrate(snap)

	b.built = true
	return client, nil
}
