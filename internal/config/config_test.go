package config

import (
	"testing"
	"time"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	t.Setenv("PORT", "")

	cfg, err := loadServerConfig()
	if err != nil {
		t.Fatalf("loadServerConfig err: %v", err)
	}
	if cfg.Addr != ":3000" {
		t.Errorf("addr = %q, want :3000", cfg.Addr)
	}
	if cfg.Production() {
		t.Error("default environment should not be production")
	}
}

func TestLoadServerConfigPortForms(t *testing.T) {
	cases := []struct {
		port string
		want string
	}{
		{"8080", ":8080"},
		{":8080", ":8080"},
		{"127.0.0.1:9000", "127.0.0.1:9000"},
	}

	for _, tc := range cases {
		t.Setenv("PORT", tc.port)
		cfg, err := loadServerConfig()
		if err != nil {
			t.Fatalf("PORT=%q err: %v", tc.port, err)
		}
		if cfg.Addr != tc.want {
			t.Errorf("PORT=%q addr = %q, want %q", tc.port, cfg.Addr, tc.want)
		}
	}
}

func TestLoadServerConfigRejectsGarbage(t *testing.T) {
	t.Setenv("PORT", "80 80")

	if _, err := loadServerConfig(); err == nil {
		t.Fatal("expected error for PORT with spaces")
	}
}

func TestLoadStoreConfigDefaults(t *testing.T) {
	t.Setenv("REDIS_ADDR", "")
	t.Setenv("REDIS_CONNECT_ATTEMPTS", "")
	t.Setenv("REDIS_CONNECT_DELAY_SECONDS", "")

	cfg, err := loadStoreConfig()
	if err != nil {
		t.Fatalf("loadStoreConfig err: %v", err)
	}
	if cfg.Addr != "localhost:6379" {
		t.Errorf("addr = %q", cfg.Addr)
	}
	if cfg.ConnectAttempts != 5 {
		t.Errorf("attempts = %d, want 5", cfg.ConnectAttempts)
	}
	if cfg.ConnectDelay != 5*time.Second {
		t.Errorf("delay = %s, want 5s", cfg.ConnectDelay)
	}
}

func TestLoadStoreConfigClampsAttempts(t *testing.T) {
	t.Setenv("REDIS_CONNECT_ATTEMPTS", "0")

	cfg, err := loadStoreConfig()
	if err != nil {
		t.Fatalf("loadStoreConfig err: %v", err)
	}
	if cfg.ConnectAttempts != 1 {
		t.Errorf("attempts = %d, want 1", cfg.ConnectAttempts)
	}
}

func TestAIConfigEnabled(t *testing.T) {
	cases := []struct {
		name string
		cfg  AIConfig
		want bool
	}{
		{"nothing", AIConfig{}, false},
		{"model only", AIConfig{Model: "m"}, false},
		{"api key", AIConfig{Model: "m", APIKey: "k"}, true},
		{"ak/sk", AIConfig{Model: "m", AccessKey: "a", SecretKey: "s"}, true},
		{"ak without sk", AIConfig{Model: "m", AccessKey: "a"}, false},
	}

	for _, tc := range cases {
		if got := tc.cfg.Enabled(); got != tc.want {
			t.Errorf("%s: Enabled() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
