package goQuizClient

import (
	"testing"
	"time"
)

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantValid bool
	}{
		{
			name:      "defaults with base url valid",
			mutate:    func(*Config) {},
			wantValid: true,
		},
		{
			name: "base url missing",
			mutate: func(c *Config) {
				c.API.BaseURL = ""
			},
			wantValid: false,
		},
		{
			name: "base url blank",
			mutate: func(c *Config) {
				c.API.BaseURL = "   "
			},
			wantValid: false,
		},
		{
			name: "base url relative",
			mutate: func(c *Config) {
				c.API.BaseURL = "/api"
			},
			wantValid: false,
		},
		{
			name: "custom paths valid",
			mutate: func(c *Config) {
				c.API.LoginPath = "/v2/session"
				c.API.RefreshPath = "/v2/session/renew"
			},
			wantValid: true,
		},
		{
			name: "relative path invalid",
			mutate: func(c *Config) {
				c.API.LoginPath = "login"
			},
			wantValid: false,
		},
		{
			name: "http timeout zero invalid",
			mutate: func(c *Config) {
				c.HTTP.Timeout = 0
			},
			wantValid: false,
		},
		{
			name: "refresh timeout zero invalid",
			mutate: func(c *Config) {
				c.Refresh.Timeout = 0
			},
			wantValid: false,
		},
		{
			name: "proactive window negative invalid",
			mutate: func(c *Config) {
				c.Refresh.ProactiveWindow = -time.Second
			},
			wantValid: false,
		},
		{
			name: "proactive window positive valid",
			mutate: func(c *Config) {
				c.Refresh.ProactiveWindow = 30 * time.Second
			},
			wantValid: true,
		},
		{
			name: "breaker enabled needs max failures",
			mutate: func(c *Config) {
				c.HTTP.Breaker.Enabled = true
				c.HTTP.Breaker.MaxFailures = 0
			},
			wantValid: false,
		},
		{
			name: "breaker enabled needs open duration",
			mutate: func(c *Config) {
				c.HTTP.Breaker.Enabled = true
				c.HTTP.Breaker.OpenFor = 0
			},
			wantValid: false,
		},
		{
			name: "breaker disabled skips breaker checks",
			mutate: func(c *Config) {
				c.HTTP.Breaker.Enabled = false
				c.HTTP.Breaker.MaxFailures = 0
				c.HTTP.Breaker.OpenFor = 0
			},
			wantValid: true,
		},
		{
			name: "events enabled needs buffer",
			mutate: func(c *Config) {
				c.Events.Enabled = true
				c.Events.BufferSize = 0
			},
			wantValid: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			cfg.API.BaseURL = "http://127.0.0.1:9"
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantValid && err != nil {
				t.Fatalf("expected valid, got %v", err)
			}
			if !tt.wantValid && err == nil {
				t.Fatal("expected validation error")
			}
		})
	}
}

func TestDefaultConfigPaths(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.API.LoginPath != "/api/auth/login" {
		t.Fatalf("unexpected login path %q", cfg.API.LoginPath)
	}
	if cfg.API.RefreshPath != "/api/auth/refresh-token" {
		t.Fatalf("unexpected refresh path %q", cfg.API.RefreshPath)
	}
	if cfg.Refresh.Timeout <= 0 {
		t.Fatal("expected a bounded default renewal timeout")
	}
	if cfg.Refresh.ProactiveWindow != 0 {
		t.Fatal("renewal must default to 401-driven")
	}
}
