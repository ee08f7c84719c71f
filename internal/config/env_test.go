package config

import (
	"testing"
	"time"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("APP_ADDR", "")
	t.Setenv("AI_AGENTS_TIMEOUT", "")
	t.Setenv("ENRICH_CONCURRENCY", "")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv returned error: %v", err)
	}
	if env.AppAddr != ":8080" {
		t.Fatalf("AppAddr = %q, want :8080", env.AppAddr)
	}
	if env.AIAgentsTimeout != 10*time.Second {
		t.Fatalf("AIAgentsTimeout = %s, want 10s", env.AIAgentsTimeout)
	}
	if env.EnrichConcurrency != 4 {
		t.Fatalf("EnrichConcurrency = %d, want 4", env.EnrichConcurrency)
	}
	if env.TokenTTL() != 30*time.Minute {
		t.Fatalf("TokenTTL = %s, want 30m", env.TokenTTL())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("APP_ADDR", ":9090")
	t.Setenv("AI_AGENTS_TIMEOUT", "2s")
	t.Setenv("ENRICH_CONCURRENCY", "0")
	t.Setenv("CORS_ALLOWED_ORIGINS", "https://a.example, ,https://b.example")

	env, err := LoadEnv()
	if err != nil {
		t.Fatalf("LoadEnv returned error: %v", err)
	}
	if env.AppAddr != ":9090" {
		t.Fatalf("AppAddr = %q, want :9090", env.AppAddr)
	}
	if env.AIAgentsTimeout != 2*time.Second {
		t.Fatalf("AIAgentsTimeout = %s, want 2s", env.AIAgentsTimeout)
	}
	if env.EnrichConcurrency != 1 {
		t.Fatalf("EnrichConcurrency should be clamped to 1, got %d", env.EnrichConcurrency)
	}
	origins := env.AllowedOrigins()
	if len(origins) != 2 || origins[0] != "https://a.example" || origins[1] != "https://b.example" {
		t.Fatalf("unexpected origins: %v", origins)
	}
}

func TestWriteTimeoutCoversEveryEnrichmentRound(t *testing.T) {
	env := Env{RoutingTimeout: 30 * time.Second, AIAgentsTimeout: 10 * time.Second, EnrichConcurrency: 4}

	// 10 itineraries on 4 workers take 3 rounds
	if got, want := env.WriteTimeout(10), 30*time.Second+3*10*time.Second+10*time.Second; got != want {
		t.Fatalf("WriteTimeout(10) = %s, want %s", got, want)
	}
	if got, want := env.WriteTimeout(4), 50*time.Second; got != want {
		t.Fatalf("WriteTimeout(4) = %s, want %s", got, want)
	}

	env.EnrichConcurrency = 0
	if got, want := env.WriteTimeout(2), 30*time.Second+2*10*time.Second+10*time.Second; got != want {
		t.Fatalf("WriteTimeout with zero concurrency = %s, want %s", got, want)
	}
}
