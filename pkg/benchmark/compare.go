package benchmark

import "github.com/cyberscore/cyberscore/pkg/scoring"

// ComparisonStatus marks a score as above or below the sector reference.
// A delta of zero counts as above.
type ComparisonStatus string

const (
	StatusAbove ComparisonStatus = "above"
	StatusBelow ComparisonStatus = "below"
)

// DomainComparison is one domain's position against the sector average.
type DomainComparison struct {
	Domain    scoring.Domain   `json:"domain"`
	Name      string           `json:"name"`
	Score     float64          `json:"score"`
	SectorAvg float64          `json:"sector_avg"`
	Delta     float64          `json:"delta"`
	Status    ComparisonStatus `json:"status"`
}

// VendorComparison positions one vendor against its sector benchmark.
type VendorComparison struct {
	Sector          string             `json:"sector"`
	VendorScore     int                `json:"vendor_score"`
	SectorAvg       float64            `json:"sector_avg"`
	Delta           float64            `json:"delta"`
	Percentile      string             `json:"percentile"`
	PercentileLabel string             `json:"percentile_label"`
	Domains         []DomainComparison `json:"domains"`
}

// PortfolioComparison positions a portfolio average against a sector.
type PortfolioComparison struct {
	Sector       string             `json:"sector"`
	PortfolioAvg float64            `json:"portfolio_avg"`
	SectorAvg    float64            `json:"sector_avg"`
	Delta        float64            `json:"delta"`
	Domains      []DomainComparison `json:"domains"`
}

// CompareVendor positions a vendor's latest score against the benchmark.
func CompareVendor(bench *SectorBenchmark, score *scoring.VendorScore) *VendorComparison {
	if bench == nil || score == nil {
		return nil
	}

	cmp := &VendorComparison{
		Sector:      bench.Sector,
		VendorScore: score.GlobalScore,
		SectorAvg:   bench.GlobalAvg,
		Delta:       float64(score.GlobalScore) - bench.GlobalAvg,
	}
	cmp.Percentile, cmp.PercentileLabel = percentileBracket(float64(score.GlobalScore), bench)

	for _, ds := range bench.Domains {
		vendorScore := 50.0 // neutral when the vendor has no data for the domain
		if r, ok := score.DomainScores[ds.Domain]; ok && r != nil {
			vendorScore = r.Score
		}
		cmp.Domains = append(cmp.Domains, domainComparison(ds, vendorScore))
	}

	return cmp
}

// ComparePortfolio positions a portfolio's averages against the benchmark.
func ComparePortfolio(bench *SectorBenchmark, portfolioAvg float64, domainAvgs map[scoring.Domain]float64) *PortfolioComparison {
	if bench == nil {
		return nil
	}

	cmp := &PortfolioComparison{
		Sector:       bench.Sector,
		PortfolioAvg: portfolioAvg,
		SectorAvg:    bench.GlobalAvg,
		Delta:        portfolioAvg - bench.GlobalAvg,
	}

	for _, ds := range bench.Domains {
		avg, ok := domainAvgs[ds.Domain]
		if !ok {
			avg = 50.0
		}
		cmp.Domains = append(cmp.Domains, domainComparison(ds, avg))
	}

	return cmp
}

func domainComparison(ds DomainStats, score float64) DomainComparison {
	delta := score - ds.Average
	status := StatusAbove
	if delta < 0 {
		status = StatusBelow
	}
	return DomainComparison{
		Domain:    ds.Domain,
		Name:      ds.Name,
		Score:     score,
		SectorAvg: ds.Average,
		Delta:     delta,
		Status:    status,
	}
}

func percentileBracket(score float64, bench *SectorBenchmark) (string, string) {
	switch {
	case score >= bench.P90:
		return "top_10", "Top 10%"
	case score >= bench.P75:
		return "top_25", "Top 25%"
	case score >= bench.P50:
		return "top_50", "Top 50%"
	case score >= bench.P25:
		return "bottom_50", "Bottom 50%"
	default:
		return "bottom_25", "Bottom 25%"
	}
}
