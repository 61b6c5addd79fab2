package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

var configKeys = []string{
	"HTTP_ADDR", "HTTP_READ_HEADER_TIMEOUT", "SHUTDOWN_TIMEOUT", "CORS_ALLOW_ORIGINS",
	"SEED_DEMO_DATA",
	"SEARCH_DEFAULT_LIMIT", "SEARCH_MAX_LIMIT", "SEARCH_MAX_QUERY_LENGTH", "SEARCH_CACHE_SIZE",
	"WEBHOOK_RATE_LIMIT", "WEBHOOK_RATE_BURST", "WEBHOOK_MAX_BODY_SIZE",
	"SSE_HEARTBEAT_INTERVAL", "SSE_BUFFER_SIZE",
}

func clearEnv(t *testing.T) {
	t.Helper()
	for _, k := range configKeys {
		t.Setenv(k, "")
		t.Setenv(k+"_FILE", "")
	}
}

func TestLoad_Defaults(t *testing.T) {
	clearEnv(t)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.HTTP.Addr != ":3001" {
		t.Errorf("HTTP.Addr = %v, want :3001", cfg.HTTP.Addr)
	}
	if !cfg.Index.SeedDemoData {
		t.Errorf("Index.SeedDemoData = false, want true")
	}
	if cfg.Search.DefaultLimit != 20 {
		t.Errorf("Search.DefaultLimit = %d, want 20", cfg.Search.DefaultLimit)
	}
	if cfg.Search.MaxLimit != 100 {
		t.Errorf("Search.MaxLimit = %d, want 100", cfg.Search.MaxLimit)
	}
	if cfg.Search.CacheSize != 256 {
		t.Errorf("Search.CacheSize = %d, want 256", cfg.Search.CacheSize)
	}
	if cfg.SSE.HeartbeatInterval != 10*time.Second {
		t.Errorf("SSE.HeartbeatInterval = %v, want 10s", cfg.SSE.HeartbeatInterval)
	}
	if cfg.HTTP.ShutdownTimeout != 30*time.Second {
		t.Errorf("HTTP.ShutdownTimeout = %v, want 30s", cfg.HTTP.ShutdownTimeout)
	}
	if len(cfg.HTTP.CORSAllowOrigins) != 1 || cfg.HTTP.CORSAllowOrigins[0] != "*" {
		t.Errorf("HTTP.CORSAllowOrigins = %v, want [*]", cfg.HTTP.CORSAllowOrigins)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		envVars map[string]string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "overrides",
			envVars: map[string]string{
				"HTTP_ADDR":          ":9400",
				"SEED_DEMO_DATA":     "false",
				"SEARCH_CACHE_SIZE":  "0",
				"WEBHOOK_RATE_LIMIT": "0",
				"CORS_ALLOW_ORIGINS": "http://a.test, http://b.test",
			},
			check: func(t *testing.T, cfg *Config) {
				if cfg.HTTP.Addr != ":9400" {
					t.Errorf("HTTP.Addr = %v, want :9400", cfg.HTTP.Addr)
				}
				if cfg.Index.SeedDemoData {
					t.Errorf("Index.SeedDemoData = true, want false")
				}
				if cfg.Search.CacheSize != 0 {
					t.Errorf("Search.CacheSize = %d, want 0", cfg.Search.CacheSize)
				}
				if len(cfg.HTTP.CORSAllowOrigins) != 2 || cfg.HTTP.CORSAllowOrigins[1] != "http://b.test" {
					t.Errorf("HTTP.CORSAllowOrigins = %v", cfg.HTTP.CORSAllowOrigins)
				}
			},
		},
		{
			name:    "invalid integer",
			envVars: map[string]string{"SEARCH_DEFAULT_LIMIT": "twenty"},
			wantErr: true,
		},
		{
			name:    "invalid duration",
			envVars: map[string]string{"SSE_HEARTBEAT_INTERVAL": "often"},
			wantErr: true,
		},
		{
			name:    "invalid boolean",
			envVars: map[string]string{"SEED_DEMO_DATA": "maybe"},
			wantErr: true,
		},
		{
			name:    "max below default",
			envVars: map[string]string{"SEARCH_DEFAULT_LIMIT": "50", "SEARCH_MAX_LIMIT": "10"},
			wantErr: true,
		},
		{
			name:    "negative cache size",
			envVars: map[string]string{"SEARCH_CACHE_SIZE": "-1"},
			wantErr: true,
		},
		{
			name:    "zero buffer",
			envVars: map[string]string{"SSE_BUFFER_SIZE": "0"},
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			cfg, err := Load()
			if tt.wantErr {
				if err == nil {
					t.Errorf("Load() error = nil, wantErr %v", tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error = %v", err)
			}
			if tt.check != nil {
				tt.check(t, cfg)
			}
		})
	}
}

func TestGetEnvOrDefault_FileSuffix(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "addr")
	if err := os.WriteFile(path, []byte(":7000\n"), 0o600); err != nil {
		t.Fatal(err)
	}
	t.Setenv("HTTP_ADDR", ":8000")
	t.Setenv("HTTP_ADDR_FILE", path)

	if got := getEnvOrDefault("HTTP_ADDR", ":3001"); got != ":7000" {
		t.Errorf("getEnvOrDefault() = %v, want :7000", got)
	}
}

func TestLoadDotEnv_MissingFile(t *testing.T) {
	t.Chdir(t.TempDir())
	if err := LoadDotEnv(); err != nil {
		t.Errorf("LoadDotEnv() error = %v, want nil", err)
	}
}
