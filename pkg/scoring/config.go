package scoring

import (
	"fmt"
	"math"
	"time"
)

// weightTolerance is the allowed float drift when validating that domain
// weights sum to 1.0.
const weightTolerance = 1e-6

// Config holds the parameters of one scoring run. Callers pass a Config into
// the engine explicitly; the engine snapshots the weights into every
// VendorScore it produces, so re-reading a changed configuration later never
// alters historical scores.
type Config struct {
	// Weights maps each assessment domain to its share of the global score.
	// Must cover known domains only and sum to 1.0.
	Weights map[Domain]float64

	// SizeFactors maps organization size to the normalization multiplier.
	SizeFactors map[SizeCategory]float64

	// FreshnessWindow bounds how old findings may be before the domain
	// confidence is penalized.
	FreshnessWindow time.Duration

	// DomainTimeout bounds per-domain scoring during a concurrent scan.
	DomainTimeout time.Duration
}

// DefaultConfig returns the standard scoring configuration.
func DefaultConfig() Config {
	return Config{
		Weights: map[Domain]float64{
			DomainNetwork:    0.15,
			DomainDNS:        0.10,
			DomainWeb:        0.15,
			DomainEmail:      0.10,
			DomainPatching:   0.15,
			DomainReputation: 0.10,
			DomainLeaks:      0.15,
			DomainRegulatory: 0.10,
		},
		SizeFactors: map[SizeCategory]float64{
			SizeMicro:      1.15,
			SizeSME:        1.10,
			SizeMidMarket:  1.00,
			SizeEnterprise: 0.90,
		},
		FreshnessWindow: 30 * 24 * time.Hour,
		DomainTimeout:   30 * time.Second,
	}
}

// ValidationError reports a rejected configuration. Malformed weights are
// never silently corrected.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Validate checks the configuration, rejecting unknown domain keys and
// weights that do not sum to 1.0.
func (c Config) Validate() error {
	if len(c.Weights) == 0 {
		return &ValidationError{Field: "weights", Reason: "no domain weights configured"}
	}

	sum := 0.0
	for d, w := range c.Weights {
		if !KnownDomain(d) {
			return &ValidationError{Field: "weights", Reason: fmt.Sprintf("unknown domain key %q", d)}
		}
		if w < 0 {
			return &ValidationError{Field: "weights", Reason: fmt.Sprintf("negative weight %.3f for %s", w, d)}
		}
		sum += w
	}
	if math.Abs(sum-1.0) > weightTolerance {
		return &ValidationError{Field: "weights", Reason: fmt.Sprintf("weights sum to %.4f, expected 1.0", sum)}
	}

	for _, size := range []SizeCategory{SizeMicro, SizeSME, SizeMidMarket, SizeEnterprise} {
		if _, ok := c.SizeFactors[size]; !ok {
			return &ValidationError{Field: "size_factors", Reason: fmt.Sprintf("missing factor for %s", size)}
		}
	}

	return nil
}

// SizeFactor returns the normalization multiplier for a size category.
// Unknown categories fall back to 1.0.
func (c Config) SizeFactor(size SizeCategory) float64 {
	if f, ok := c.SizeFactors[size]; ok {
		return f
	}
	return 1.0
}

// cloneWeights copies the weight map so VendorScore records own their
// configuration snapshot.
func cloneWeights(w map[Domain]float64) map[Domain]float64 {
	out := make(map[Domain]float64, len(w))
	for d, v := range w {
		out[d] = v
	}
	return out
}
