package scoring

import (
	"fmt"
	"math"
	"time"
)

// neutralGlobalScore is returned when no domain data is available at all.
const neutralGlobalScore = 500

// Engine aggregates per-domain results into vendor scores using a validated,
// immutable configuration.
type Engine struct {
	cfg Config
}

// NewEngine creates an aggregation engine. The configuration is validated
// here and rejected rather than corrected.
func NewEngine(cfg Config) (*Engine, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("scoring config: %w", err)
	}
	return &Engine{cfg: cfg}, nil
}

// Config returns the engine's configuration.
func (e *Engine) Config() Config {
	return e.cfg
}

// Aggregate combines domain results into a VendorScore.
//
// Only domains actually present contribute weight, so a partially-scanned
// vendor is not penalized beyond its missing domains' weight share. Each
// domain's contribution is amplified by the criticality factor of its worst
// open finding. The weighted 0-100 average is scaled to 0-1000, multiplied by
// the size normalization factor, and clamped.
//
// Aggregation never fails: zero domains yield a fixed neutral score with a
// low-confidence warning so downstream consumers always have a score to show.
func (e *Engine) Aggregate(vendorID, scanID string, results map[Domain]*DomainResult, size SizeCategory, scanDate time.Time) *VendorScore {
	vs := &VendorScore{
		VendorID:     vendorID,
		ScanID:       scanID,
		DomainScores: make(map[Domain]*DomainResult, len(results)),
		Weights:      cloneWeights(e.cfg.Weights),
		SizeCategory: size,
		ScanDate:     scanDate,
	}

	weightedSum := 0.0
	totalWeight := 0.0
	confidenceSum := 0.0

	for _, domain := range Domains {
		result, ok := results[domain]
		if !ok || result == nil {
			vs.Warnings = append(vs.Warnings, fmt.Sprintf("no data for %s (%s)", domain, DomainNames[domain]))
			continue
		}

		weight := e.cfg.Weights[domain]
		factor := 1.0
		if sev := result.MaxOpenSeverity(); sev != "" {
			factor = CriticalityFactor(sev)
		}

		weightedSum += result.Score * weight * factor
		totalWeight += weight
		confidenceSum += result.Confidence
		vs.DomainScores[domain] = result
	}

	if totalWeight == 0 {
		vs.GlobalScore = neutralGlobalScore
		vs.Grade = GlobalGrade(neutralGlobalScore)
		vs.Confidence = 0
		vs.Warnings = append(vs.Warnings, "no domain data available, neutral score assigned")
		return vs
	}

	raw := (weightedSum / totalWeight) * 10
	final := int(math.Round(raw * e.cfg.SizeFactor(size)))
	if final < 0 {
		final = 0
	}
	if final > 1000 {
		final = 1000
	}

	vs.GlobalScore = final
	vs.Grade = GlobalGrade(final)
	// Coverage-weighted confidence: missing domains count as zero.
	vs.Confidence = confidenceSum / float64(len(Domains))
	return vs
}
