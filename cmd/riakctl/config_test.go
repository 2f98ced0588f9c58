package main

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadServiceConfigExample(t *testing.T) {
	cfg, err := loadServiceConfig("ex.config.toml")
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Address != "127.0.0.1:8087" {
		t.Fatalf("unexpected address: %q", cfg.Address)
	}
	if cfg.MetricsAddr != "" {
		t.Fatalf("unexpected metrics addr: %q", cfg.MetricsAddr)
	}
	if cfg.Client.DialTimeout != 5*time.Second {
		t.Fatalf("unexpected dial timeout: %v", cfg.Client.DialTimeout)
	}
	if cfg.Client.ReadTimeout != 15*time.Second {
		t.Fatalf("unexpected read timeout: %v", cfg.Client.ReadTimeout)
	}
	if cfg.Client.MaxMessageBytes != 64<<20 {
		t.Fatalf("unexpected frame cap: %d", cfg.Client.MaxMessageBytes)
	}
	if cfg.Client.RequestTimeoutMS != 0 {
		t.Fatalf("unexpected request timeout: %d", cfg.Client.RequestTimeoutMS)
	}
}

func TestLoadServiceConfigOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riakctl.toml")
	body := `
address = "10.0.0.5:8087"
metrics_addr = "127.0.0.1:9100"
read_timeout = "2s"
request_timeout_ms = 4000
max_message_bytes = 0
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := loadServiceConfig(path)
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.Address != "10.0.0.5:8087" {
		t.Fatalf("address: %q", cfg.Address)
	}
	if cfg.MetricsAddr != "127.0.0.1:9100" {
		t.Fatalf("metrics addr: %q", cfg.MetricsAddr)
	}
	if cfg.Client.ReadTimeout != 2*time.Second {
		t.Fatalf("read timeout: %v", cfg.Client.ReadTimeout)
	}
	// unset fields keep their defaults
	if cfg.Client.DialTimeout != 5*time.Second {
		t.Fatalf("dial timeout: %v", cfg.Client.DialTimeout)
	}
	if cfg.Client.RequestTimeoutMS != 4000 {
		t.Fatalf("request timeout: %d", cfg.Client.RequestTimeoutMS)
	}
	// an explicit zero removes the frame cap
	if cfg.Client.MaxMessageBytes != 0 {
		t.Fatalf("frame cap: %d", cfg.Client.MaxMessageBytes)
	}
}

func TestLoadServiceConfigRejectsBadDuration(t *testing.T) {
	path := filepath.Join(t.TempDir(), "riakctl.toml")
	if err := os.WriteFile(path, []byte(`read_timeout = "soon"`), 0o600); err != nil {
		t.Fatalf("write config: %v", err)
	}
	if _, err := loadServiceConfig(path); err == nil {
		t.Fatal("malformed duration accepted")
	}
}
