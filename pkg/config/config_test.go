package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("POSTS_BACKEND", "")
	t.Setenv("REMOTE_TIMEOUT", "")

	cfg := Load()
	if cfg.Port != "8080" {
		t.Errorf("Port = %q, want 8080", cfg.Port)
	}
	if cfg.PostsBackend != "firestore" {
		t.Errorf("PostsBackend = %q, want firestore", cfg.PostsBackend)
	}
	if cfg.RemoteTimeout != 15*time.Second {
		t.Errorf("RemoteTimeout = %v, want 15s", cfg.RemoteTimeout)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("POSTS_BACKEND", "mongo")
	t.Setenv("POSTGRES_URL", "postgres://localhost:5432/pending")
	t.Setenv("REMOTE_TIMEOUT", "3s")

	cfg := Load()
	if cfg.Port != "9999" {
		t.Errorf("Port = %q", cfg.Port)
	}
	if cfg.PostsBackend != "mongo" {
		t.Errorf("PostsBackend = %q", cfg.PostsBackend)
	}
	if cfg.PostgresURL != "postgres://localhost:5432/pending" {
		t.Errorf("PostgresURL = %q", cfg.PostgresURL)
	}
	if cfg.RemoteTimeout != 3*time.Second {
		t.Errorf("RemoteTimeout = %v", cfg.RemoteTimeout)
	}
}

func TestInvalidDurationFallsBack(t *testing.T) {
	t.Setenv("REMOTE_TIMEOUT", "not-a-duration")
	if cfg := Load(); cfg.RemoteTimeout != 15*time.Second {
		t.Errorf("RemoteTimeout = %v, want default", cfg.RemoteTimeout)
	}
}
