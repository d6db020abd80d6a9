package config

import (
	"context"
	"testing"
	"time"

	"github.com/sethvargo/go-envconfig"
)

func TestLoadWith_Defaults(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "3500" {
		t.Errorf("expected default port 3500, got %s", cfg.Port)
	}
	if cfg.Mongo.Database != "technotes" {
		t.Errorf("unexpected database: %s", cfg.Mongo.Database)
	}
	if !cfg.Redis.Enabled || cfg.Redis.UsernameTTL != 10*time.Minute {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.JWTSecret != "" {
		t.Errorf("jwt secret must default to empty")
	}
	if !cfg.IsDevelopment() {
		t.Errorf("expected development env by default")
	}
}

func TestLoadWith_Overrides(t *testing.T) {
	cfg, err := LoadWith(context.Background(), envconfig.MapLookuper(map[string]string{
		"PORT":            "8080",
		"ENV":             "production",
		"ALLOWED_ORIGINS": "https://a.example,https://b.example",
		"TOKEN_TTL":       "1h",
		"REDIS_ENABLED":   "false",
	}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8080" || cfg.IsDevelopment() {
		t.Errorf("overrides not applied: %+v", cfg)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example" {
		t.Errorf("unexpected origins: %v", cfg.AllowedOrigins)
	}
	if cfg.TokenTTL != time.Hour {
		t.Errorf("unexpected ttl: %s", cfg.TokenTTL)
	}
	if cfg.Redis.Enabled {
		t.Errorf("redis should be disabled")
	}
}
