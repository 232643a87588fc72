package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()

	if cfg.VRM.SLABusinessHours != 48 {
		t.Errorf("expected default SLA window 48, got %d", cfg.VRM.SLABusinessHours)
	}
	if cfg.Scoring.FreshnessDays != 30 {
		t.Errorf("expected default freshness 30 days, got %d", cfg.Scoring.FreshnessDays)
	}
	if cfg.Storage.Backend != "local" {
		t.Errorf("expected default storage backend local, got %q", cfg.Storage.Backend)
	}
	if len(cfg.Scoring.Weights) != 8 {
		t.Errorf("expected 8 default weights, got %d", len(cfg.Scoring.Weights))
	}

	if _, err := cfg.ScoringConfig(); err != nil {
		t.Errorf("default config should produce a valid scoring config: %v", err)
	}
}

func TestLoad(t *testing.T) {
	tests := []struct {
		name    string
		yaml    string
		wantErr bool
		check   func(t *testing.T, cfg *Config)
	}{
		{
			name: "non-existent file returns defaults",
			yaml: "", // signal: don't create a file
			check: func(t *testing.T, cfg *Config) {
				if cfg.VRM.SLABusinessHours != 48 {
					t.Errorf("expected default SLA window, got %d", cfg.VRM.SLABusinessHours)
				}
			},
		},
		{
			name: "valid YAML overrides defaults",
			yaml: `
scoring:
  freshness_days: 7
  domain_timeout_seconds: 10
vrm:
  sla_business_hours: 24
storage:
  backend: s3
  s3_bucket: cyberscore-archive
`,
			check: func(t *testing.T, cfg *Config) {
				if cfg.Scoring.FreshnessDays != 7 {
					t.Errorf("expected freshness 7, got %d", cfg.Scoring.FreshnessDays)
				}
				if cfg.VRM.SLABusinessHours != 24 {
					t.Errorf("expected SLA 24, got %d", cfg.VRM.SLABusinessHours)
				}
				if cfg.Storage.Backend != "s3" || cfg.Storage.S3Bucket != "cyberscore-archive" {
					t.Errorf("unexpected storage config: %+v", cfg.Storage)
				}

				sc, err := cfg.ScoringConfig()
				if err != nil {
					t.Fatalf("ScoringConfig() error: %v", err)
				}
				if sc.FreshnessWindow != 7*24*time.Hour {
					t.Errorf("freshness window = %v, want 168h", sc.FreshnessWindow)
				}
				if sc.DomainTimeout != 10*time.Second {
					t.Errorf("domain timeout = %v, want 10s", sc.DomainTimeout)
				}
			},
		},
		{
			name: "custom weights replace defaults wholesale",
			yaml: `
scoring:
  weights:
    D1: 0.30
    D2: 0.10
    D3: 0.10
    D4: 0.10
    D5: 0.10
    D6: 0.10
    D7: 0.10
    D8: 0.10
`,
			check: func(t *testing.T, cfg *Config) {
				sc, err := cfg.ScoringConfig()
				if err != nil {
					t.Fatalf("ScoringConfig() error: %v", err)
				}
				if sc.Weights[scoring.DomainNetwork] != 0.30 {
					t.Errorf("D1 weight = %f, want 0.30", sc.Weights[scoring.DomainNetwork])
				}
			},
		},
		{
			name: "weights not summing to 1.0 rejected at load",
			yaml: `
scoring:
  weights:
    D1: 0.50
    D2: 0.10
`,
			wantErr: true,
		},
		{
			name: "unknown domain key rejected at load",
			yaml: `
scoring:
  weights:
    D1: 0.50
    D9: 0.50
`,
			wantErr: true,
		},
		{
			name:    "malformed YAML returns error",
			yaml:    "scoring: [not a map",
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.yaml")
			if tc.yaml != "" {
				if err := os.WriteFile(path, []byte(tc.yaml), 0o644); err != nil {
					t.Fatalf("writing config: %v", err)
				}
			}

			cfg, err := Load(path)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				return
			}
			if err != nil {
				t.Fatalf("Load() error: %v", err)
			}
			if tc.check != nil {
				tc.check(t, cfg)
			}
		})
	}
}

func TestFindConfigFile(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "a", "b")
	if err := os.MkdirAll(filepath.Join(root, ".cyberscore"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}
	path := filepath.Join(root, ".cyberscore", "config.yaml")
	if err := os.WriteFile(path, []byte("{}"), 0o644); err != nil {
		t.Fatal(err)
	}

	if got := FindConfigFile(nested); got != path {
		t.Errorf("FindConfigFile(%q) = %q, want %q", nested, got, path)
	}
	if got := FindConfigFile(t.TempDir()); got != "" {
		t.Errorf("expected no config file, got %q", got)
	}
}
