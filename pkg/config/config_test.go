package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	if cfg.BackendURL != "http://localhost:8080" {
		t.Errorf("unexpected backend URL: %s", cfg.BackendURL)
	}
	if cfg.Poll.StatusInterval != 15*time.Second {
		t.Errorf("expected 15s status interval, got %v", cfg.Poll.StatusInterval)
	}
	if cfg.Cache.StatusTTL != 30*time.Second {
		t.Errorf("expected 30s status TTL, got %v", cfg.Cache.StatusTTL)
	}
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_API_TOKEN", "tok-test-123")

	content := `
backend_url: "https://console.example.com/api"
api_token: ${TEST_API_TOKEN}
db_path: "test.db"
agents:
  - agent-1
  - agent-2
poll:
  status_interval: 10s
  lineage_interval: 5m
cache:
  enabled: true
  status_ttl: 20s
`
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatal(err)
	}

	if cfg.BackendURL != "https://console.example.com/api" {
		t.Errorf("unexpected backend URL: %s", cfg.BackendURL)
	}
	if cfg.APIToken != "tok-test-123" {
		t.Errorf("env var not expanded: got %s", cfg.APIToken)
	}
	if len(cfg.Agents) != 2 {
		t.Fatalf("expected 2 agents, got %d", len(cfg.Agents))
	}
	if cfg.Poll.StatusInterval != 10*time.Second {
		t.Errorf("expected 10s status interval, got %v", cfg.Poll.StatusInterval)
	}
	if cfg.Cache.StatusTTL != 20*time.Second {
		t.Errorf("expected 20s status TTL, got %v", cfg.Cache.StatusTTL)
	}
	// Unset fields keep their defaults.
	if cfg.Cache.LineageTTL != 5*time.Minute {
		t.Errorf("expected default lineage TTL, got %v", cfg.Cache.LineageTTL)
	}
}

func TestLoadMissing(t *testing.T) {
	_, err := Load("/nonexistent/config.yaml")
	if err == nil {
		t.Error("expected error for missing file")
	}
}
