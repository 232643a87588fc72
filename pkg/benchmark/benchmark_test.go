package benchmark

import (
	"math"
	"testing"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

// TestPercentileInterpolation pins the linear-interpolation method: percentile
// p sits at rank p*(n-1)/100 and fractional ranks interpolate linearly.
func TestPercentileInterpolation(t *testing.T) {
	values := []float64{10, 20, 30, 40}

	tests := []struct {
		p    float64
		want float64
	}{
		{0, 10},
		{25, 17.5},
		{50, 25},
		{75, 32.5},
		{90, 37},
		{100, 40},
	}

	for _, tc := range tests {
		if got := Percentile(values, tc.p); !almostEqual(got, tc.want) {
			t.Errorf("Percentile(%v, %.0f) = %f, want %f", values, tc.p, got, tc.want)
		}
	}
}

func TestPercentileUnsortedInput(t *testing.T) {
	if got := Percentile([]float64{40, 10, 30, 20}, 50); !almostEqual(got, 25) {
		t.Errorf("Percentile on unsorted input = %f, want 25", got)
	}
}

func scoreWith(global int, domainScores map[scoring.Domain]float64) *scoring.VendorScore {
	vs := &scoring.VendorScore{
		GlobalScore:  global,
		DomainScores: make(map[scoring.Domain]*scoring.DomainResult),
	}
	for d, s := range domainScores {
		vs.DomainScores[d] = &scoring.DomainResult{Domain: d, Score: s}
	}
	return vs
}

func TestComputeEmptySector(t *testing.T) {
	if bench := Compute("assurance", nil); bench != nil {
		t.Errorf("expected nil benchmark for empty sector, got %+v", bench)
	}
}

func TestComputeSingleVendor(t *testing.T) {
	scores := []*scoring.VendorScore{
		scoreWith(640, map[scoring.Domain]float64{scoring.DomainNetwork: 72}),
	}

	bench := Compute("banque", scores)
	if bench == nil {
		t.Fatal("expected a benchmark for a single-vendor sector")
	}

	for name, got := range map[string]float64{
		"avg": bench.GlobalAvg,
		"p25": bench.P25,
		"p50": bench.P50,
		"p75": bench.P75,
		"p90": bench.P90,
	} {
		if !almostEqual(got, 640) {
			t.Errorf("%s = %f, want 640 for single-vendor sector", name, got)
		}
	}

	if len(bench.Domains) != 1 {
		t.Fatalf("expected 1 domain stat, got %d", len(bench.Domains))
	}
	if !almostEqual(bench.Domains[0].Average, 72) || !almostEqual(bench.Domains[0].Median, 72) {
		t.Errorf("domain stats = %+v, want avg/median 72", bench.Domains[0])
	}
}

func TestComputeSectorStats(t *testing.T) {
	scores := []*scoring.VendorScore{
		scoreWith(400, map[scoring.Domain]float64{scoring.DomainWeb: 40}),
		scoreWith(500, map[scoring.Domain]float64{scoring.DomainWeb: 50}),
		scoreWith(600, map[scoring.Domain]float64{scoring.DomainWeb: 60}),
		scoreWith(700, map[scoring.Domain]float64{scoring.DomainWeb: 90}),
	}

	bench := Compute("industrie", scores)
	if bench.VendorCount != 4 {
		t.Errorf("vendor count = %d, want 4", bench.VendorCount)
	}
	if !almostEqual(bench.GlobalAvg, 550) {
		t.Errorf("global avg = %f, want 550", bench.GlobalAvg)
	}
	if !almostEqual(bench.P50, 550) {
		t.Errorf("p50 = %f, want 550", bench.P50)
	}
	if !almostEqual(bench.P90, 670) {
		t.Errorf("p90 = %f, want 670", bench.P90)
	}

	if len(bench.Domains) != 1 {
		t.Fatalf("expected 1 domain stat, got %d", len(bench.Domains))
	}
	if !almostEqual(bench.Domains[0].Average, 60) {
		t.Errorf("web average = %f, want 60", bench.Domains[0].Average)
	}
	if !almostEqual(bench.Domains[0].Median, 55) {
		t.Errorf("web median = %f, want 55", bench.Domains[0].Median)
	}
}

func TestCompareVendor(t *testing.T) {
	scores := []*scoring.VendorScore{
		scoreWith(400, map[scoring.Domain]float64{scoring.DomainWeb: 40}),
		scoreWith(600, map[scoring.Domain]float64{scoring.DomainWeb: 60}),
	}
	bench := Compute("sante", scores)

	vendor := scoreWith(600, map[scoring.Domain]float64{scoring.DomainWeb: 50})
	cmp := CompareVendor(bench, vendor)
	if cmp == nil {
		t.Fatal("expected a comparison")
	}

	if !almostEqual(cmp.Delta, 100) {
		t.Errorf("delta = %f, want 100", cmp.Delta)
	}
	if cmp.Percentile != "top_10" {
		t.Errorf("percentile = %q, want top_10", cmp.Percentile)
	}

	if len(cmp.Domains) != 1 {
		t.Fatalf("expected 1 domain comparison, got %d", len(cmp.Domains))
	}
	dc := cmp.Domains[0]
	if dc.Status != StatusAbove {
		t.Errorf("status = %q, want above (delta %f)", dc.Status, dc.Delta)
	}
	if !almostEqual(dc.Delta, 0) {
		t.Errorf("domain delta = %f, want 0", dc.Delta)
	}
}

func TestCompareVendorBelow(t *testing.T) {
	bench := Compute("sante", []*scoring.VendorScore{
		scoreWith(500, map[scoring.Domain]float64{scoring.DomainDNS: 80}),
		scoreWith(700, map[scoring.Domain]float64{scoring.DomainDNS: 60}),
	})

	vendor := scoreWith(450, map[scoring.Domain]float64{scoring.DomainDNS: 30})
	cmp := CompareVendor(bench, vendor)

	if cmp.Percentile != "bottom_25" {
		t.Errorf("percentile = %q, want bottom_25", cmp.Percentile)
	}
	if cmp.Domains[0].Status != StatusBelow {
		t.Errorf("domain status = %q, want below", cmp.Domains[0].Status)
	}
}

func TestComparePortfolio(t *testing.T) {
	bench := Compute("assurance", []*scoring.VendorScore{
		scoreWith(600, map[scoring.Domain]float64{scoring.DomainLeaks: 55}),
	})

	cmp := ComparePortfolio(bench, 650, map[scoring.Domain]float64{scoring.DomainLeaks: 50})
	if cmp == nil {
		t.Fatal("expected a comparison")
	}
	if !almostEqual(cmp.Delta, 50) {
		t.Errorf("delta = %f, want 50", cmp.Delta)
	}
	if cmp.Domains[0].Status != StatusBelow {
		t.Errorf("leaks status = %q, want below", cmp.Domains[0].Status)
	}
}
