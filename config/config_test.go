package config

import (
	"os"
	"path/filepath"
	"testing"
)

func writeConfig(t *testing.T, name, data string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(data), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, "config.yaml", `mode: "server"
api:
  base_url: "https://dispatch.example.org"
  timeout_seconds: 7
auth:
  client_id: "console"
  client_secret: "secret"
  auth_url: "https://auth.example.org/token"
poll:
  interval_seconds: 3
  filter: "REPORTED"
metrics:
  prometheus_enabled: true
  prometheus_port: ":9091"
mqtt:
  enabled: true
  broker: "tcp://localhost:1883"
  topic: "fleet/+/position"
map:
  fly_zoom: 12
console:
  addr: ":8080"
`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	checks := []struct {
		name string
		got  any
		want any
	}{
		{"mode", cfg.Mode, "server"},
		{"base_url", cfg.API.BaseURL, "https://dispatch.example.org"},
		{"timeout", cfg.API.TimeoutSeconds, 7},
		{"client_id", cfg.Auth.ClientID, "console"},
		{"auth_url", cfg.Auth.AuthURL, "https://auth.example.org/token"},
		{"interval", cfg.Poll.IntervalSeconds, 3},
		{"filter", cfg.Poll.Filter, "REPORTED"},
		{"prometheus", cfg.Metrics.PrometheusEnabled, true},
		{"broker", cfg.MQTT.Broker, "tcp://localhost:1883"},
		{"fly_zoom", cfg.Map.FlyZoom, 12},
		{"console_addr", cfg.Console.Addr, ":8080"},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s: got %v want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, "config.json", `{"api": {"base_url": "https://dispatch.example.org"}}`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Mode != ModeServer {
		t.Errorf("mode: got %q", cfg.Mode)
	}
	if cfg.Poll.IntervalSeconds != 5 {
		t.Errorf("interval: got %d", cfg.Poll.IntervalSeconds)
	}
	if cfg.API.TimeoutSeconds != 10 {
		t.Errorf("timeout: got %d", cfg.API.TimeoutSeconds)
	}
	if cfg.Map.FlyZoom != 15 {
		t.Errorf("fly_zoom: got %d", cfg.Map.FlyZoom)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	path := writeConfig(t, "config.yaml", `api:
  base_url: "https://dispatch.example.org"
`)
	t.Setenv("DC_POLL__FILTER", "ASSIGNED")
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Poll.Filter != "ASSIGNED" {
		t.Errorf("filter: got %q", cfg.Poll.Filter)
	}
}

func TestLoadRejectsBadValues(t *testing.T) {
	cases := []struct {
		name string
		data string
	}{
		{"missing base url in server mode", `mode: "server"`},
		{"unknown mode", `mode: "hybrid"
api:
  base_url: "https://x"
`},
		{"bad filter", `api:
  base_url: "https://x"
poll:
  filter: "OPEN"
`},
		{"mqtt enabled without broker", `api:
  base_url: "https://x"
mqtt:
  enabled: true
`},
		{"zoom out of range", `api:
  base_url: "https://x"
map:
  fly_zoom: 40
`},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			path := writeConfig(t, "config.yaml", c.data)
			if _, err := Load(path); err == nil {
				t.Fatal("expected error")
			}
		})
	}
}

func TestLoadLocalModeSkipsAPIValidation(t *testing.T) {
	path := writeConfig(t, "config.yaml", `mode: "local"`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load error: %v", err)
	}
	if cfg.Mode != ModeLocal {
		t.Errorf("mode: got %q", cfg.Mode)
	}
}

func TestLoadUnsupportedFormat(t *testing.T) {
	path := writeConfig(t, "config.toml", `mode = "server"`)
	if _, err := Load(path); err == nil {
		t.Fatal("expected error")
	}
}
