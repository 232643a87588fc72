// Package benchmark computes sector-level score statistics and compares
// vendors and portfolios against them.
//
// Percentiles use linear interpolation between closest ranks: for n sorted
// values, percentile p sits at rank p*(n-1) and fractional ranks interpolate
// between neighbors. A single-vendor sector therefore has every percentile
// equal to that vendor's score.
package benchmark

import (
	"math"
	"sort"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// DomainStats holds the per-domain aggregate for one sector.
type DomainStats struct {
	Domain  scoring.Domain `json:"domain"`
	Name    string         `json:"name"`
	Average float64        `json:"average"`
	Median  float64        `json:"median"`
}

// SectorBenchmark is a read-time aggregate over all vendors tagged to a
// sector. It is recomputed from current scores, never persisted as history.
type SectorBenchmark struct {
	Sector      string        `json:"sector"`
	VendorCount int           `json:"vendor_count"`
	GlobalAvg   float64       `json:"global_avg"`
	P25         float64       `json:"global_p25"`
	P50         float64       `json:"global_p50"`
	P75         float64       `json:"global_p75"`
	P90         float64       `json:"global_p90"`
	Domains     []DomainStats `json:"domains"`
}

// Compute builds the benchmark for a sector from its vendors' latest scores.
// Returns nil for an empty sector.
func Compute(sector string, scores []*scoring.VendorScore) *SectorBenchmark {
	if len(scores) == 0 {
		return nil
	}

	globals := make([]float64, len(scores))
	for i, s := range scores {
		globals[i] = float64(s.GlobalScore)
	}

	bench := &SectorBenchmark{
		Sector:      sector,
		VendorCount: len(scores),
		GlobalAvg:   mean(globals),
		P25:         Percentile(globals, 25),
		P50:         Percentile(globals, 50),
		P75:         Percentile(globals, 75),
		P90:         Percentile(globals, 90),
	}

	for _, domain := range scoring.Domains {
		var values []float64
		for _, s := range scores {
			if r, ok := s.DomainScores[domain]; ok && r != nil {
				values = append(values, r.Score)
			}
		}
		if len(values) == 0 {
			continue
		}
		bench.Domains = append(bench.Domains, DomainStats{
			Domain:  domain,
			Name:    scoring.DomainNames[domain],
			Average: mean(values),
			Median:  Percentile(values, 50),
		})
	}

	return bench
}

// Percentile computes the p-th percentile (0-100) of values using linear
// interpolation between closest ranks. Values need not be sorted.
func Percentile(values []float64, p float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sorted := append([]float64(nil), values...)
	sort.Float64s(sorted)

	if len(sorted) == 1 {
		return sorted[0]
	}

	rank := p / 100 * float64(len(sorted)-1)
	lower := int(math.Floor(rank))
	upper := int(math.Ceil(rank))
	if lower == upper {
		return sorted[lower]
	}
	frac := rank - float64(lower)
	return sorted[lower] + frac*(sorted[upper]-sorted[lower])
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	sum := 0.0
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
