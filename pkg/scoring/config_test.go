package scoring

import (
	"errors"
	"testing"
)

func TestDefaultConfigValid(t *testing.T) {
	if err := DefaultConfig().Validate(); err != nil {
		t.Fatalf("default config should validate: %v", err)
	}
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{
			name:   "valid defaults",
			mutate: func(c *Config) {},
		},
		{
			name: "weights not summing to 1.0 rejected",
			mutate: func(c *Config) {
				c.Weights[DomainNetwork] = 0.5
			},
			wantErr: true,
		},
		{
			name: "unknown domain key rejected",
			mutate: func(c *Config) {
				delete(c.Weights, DomainNetwork)
				c.Weights[Domain("D9")] = 0.15
			},
			wantErr: true,
		},
		{
			name: "negative weight rejected",
			mutate: func(c *Config) {
				c.Weights[DomainNetwork] = -0.05
				c.Weights[DomainDNS] = 0.30
			},
			wantErr: true,
		},
		{
			name: "empty weights rejected",
			mutate: func(c *Config) {
				c.Weights = nil
			},
			wantErr: true,
		},
		{
			name: "missing size factor rejected",
			mutate: func(c *Config) {
				delete(c.SizeFactors, SizeEnterprise)
			},
			wantErr: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tc.mutate(&cfg)

			err := cfg.Validate()
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected validation error, got nil")
				}
				var verr *ValidationError
				if !errors.As(err, &verr) {
					t.Errorf("expected *ValidationError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestNewEngineRejectsBadConfig(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Weights[DomainNetwork] = 0.5

	if _, err := NewEngine(cfg); err == nil {
		t.Fatal("expected NewEngine to reject invalid weights")
	}
}

func TestSizeFactorFallback(t *testing.T) {
	cfg := DefaultConfig()
	if got := cfg.SizeFactor(SizeCategory("unknown")); got != 1.0 {
		t.Errorf("unknown size factor = %f, want 1.0", got)
	}
	if got := cfg.SizeFactor(SizeMicro); got != 1.15 {
		t.Errorf("micro factor = %f, want 1.15", got)
	}
}
