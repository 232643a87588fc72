// Package config handles loading and managing CyberScore configuration.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// Config is the top-level configuration for CyberScore.
type Config struct {
	Scoring ScoringConfig `yaml:"scoring"`
	VRM     VRMConfig     `yaml:"vrm"`
	Storage StorageConfig `yaml:"storage"`
}

// ScoringConfig controls scoring behavior.
type ScoringConfig struct {
	// Weights maps domain codes (D1-D8) to their global-score share.
	Weights map[string]float64 `yaml:"weights"`
	// FreshnessDays bounds finding age before confidence is penalized.
	FreshnessDays int `yaml:"freshness_days"`
	// DomainTimeoutSeconds bounds per-domain scoring inside a scan.
	DomainTimeoutSeconds int `yaml:"domain_timeout_seconds"`
}

// VRMConfig controls dispute and remediation behavior.
type VRMConfig struct {
	// SLABusinessHours is the dispute review window (weekends excluded).
	SLABusinessHours int `yaml:"sla_business_hours"`
}

// StorageConfig selects the raw-payload archive backend.
type StorageConfig struct {
	Backend  string `yaml:"backend"` // local, s3, gcs
	LocalDir string `yaml:"local_dir"`

	S3Bucket   string `yaml:"s3_bucket"`
	S3Region   string `yaml:"s3_region"`
	S3Endpoint string `yaml:"s3_endpoint"`

	GCSBucket string `yaml:"gcs_bucket"`
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	weights := make(map[string]float64)
	for d, w := range scoring.DefaultConfig().Weights {
		weights[string(d)] = w
	}
	return &Config{
		Scoring: ScoringConfig{
			Weights:              weights,
			FreshnessDays:        30,
			DomainTimeoutSeconds: 30,
		},
		VRM: VRMConfig{
			SLABusinessHours: 48,
		},
		Storage: StorageConfig{
			Backend:  "local",
			LocalDir: filepath.Join(os.TempDir(), "cyberscore-data"),
		},
	}
}

// Load reads a config file from the given path.
// If the file does not exist, it returns the default config.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return cfg, nil
		}
		return nil, fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	if _, err := cfg.ScoringConfig(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// ScoringConfig converts the YAML view into the engine's validated config.
func (c *Config) ScoringConfig() (scoring.Config, error) {
	sc := scoring.DefaultConfig()
	if len(c.Scoring.Weights) > 0 {
		weights := make(map[scoring.Domain]float64, len(c.Scoring.Weights))
		for d, w := range c.Scoring.Weights {
			weights[scoring.Domain(d)] = w
		}
		sc.Weights = weights
	}
	if c.Scoring.FreshnessDays > 0 {
		sc.FreshnessWindow = time.Duration(c.Scoring.FreshnessDays) * 24 * time.Hour
	}
	if c.Scoring.DomainTimeoutSeconds > 0 {
		sc.DomainTimeout = time.Duration(c.Scoring.DomainTimeoutSeconds) * time.Second
	}

	if err := sc.Validate(); err != nil {
		return scoring.Config{}, err
	}
	return sc, nil
}

// FindConfigFile looks for .cyberscore/config.yaml in the given directory
// and its parents, returning the path if found, or "" if not.
func FindConfigFile(dir string) string {
	for {
		candidate := filepath.Join(dir, ".cyberscore", "config.yaml")
		if _, err := os.Stat(candidate); err == nil {
			return candidate
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}
	return ""
}
