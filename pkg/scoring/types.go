// Package scoring implements the CyberScore vendor rating engine.
// It turns raw security findings into per-domain scores, aggregates them into
// a 0-1000 global score with a letter grade, and classifies score trends.
package scoring

import "time"

// Domain is one of the eight fixed security assessment domains (D1-D8).
type Domain string

const (
	DomainNetwork    Domain = "D1"
	DomainDNS        Domain = "D2"
	DomainWeb        Domain = "D3"
	DomainEmail      Domain = "D4"
	DomainPatching   Domain = "D5"
	DomainReputation Domain = "D6"
	DomainLeaks      Domain = "D7"
	DomainRegulatory Domain = "D8"
)

// Domains lists all assessment domains in canonical order.
var Domains = []Domain{
	DomainNetwork, DomainDNS, DomainWeb, DomainEmail,
	DomainPatching, DomainReputation, DomainLeaks, DomainRegulatory,
}

// DomainNames maps domain codes to display names.
var DomainNames = map[Domain]string{
	DomainNetwork:    "Network Security",
	DomainDNS:        "DNS Security",
	DomainWeb:        "Web Security",
	DomainEmail:      "Email Security",
	DomainPatching:   "Patching Cadence",
	DomainReputation: "IP Reputation",
	DomainLeaks:      "Leaks & Exposure",
	DomainRegulatory: "Regulatory Presence",
}

// KnownDomain reports whether d is one of the eight assessment domains.
func KnownDomain(d Domain) bool {
	_, ok := DomainNames[d]
	return ok
}

// Severity classifies how serious a finding is.
type Severity string

const (
	SeverityCritical Severity = "critical"
	SeverityHigh     Severity = "high"
	SeverityMedium   Severity = "medium"
	SeverityLow      Severity = "low"
	SeverityInfo     Severity = "info"
)

// FindingStatus is the lifecycle state of a finding. Findings are never
// deleted; only their status changes, and only through dispute transitions or
// an explicit operator action.
type FindingStatus string

const (
	FindingOpen          FindingStatus = "open"
	FindingAcknowledged  FindingStatus = "acknowledged"
	FindingDisputed      FindingStatus = "disputed"
	FindingResolved      FindingStatus = "resolved"
	FindingFalsePositive FindingStatus = "false_positive"
)

// Finding is a single detected issue within one assessment domain.
type Finding struct {
	ID             string        `json:"id"`
	VendorID       string        `json:"vendor_id"`
	Domain         Domain        `json:"domain"`
	Title          string        `json:"title"`
	Description    string        `json:"description,omitempty"`
	Severity       Severity      `json:"severity"`
	CVSSScore      *float64      `json:"cvss_score,omitempty"`
	Source         string        `json:"source,omitempty"`
	Evidence       string        `json:"evidence,omitempty"`
	Recommendation string        `json:"recommendation,omitempty"`
	Status         FindingStatus `json:"status"`
	DetectedAt     time.Time     `json:"detected_at"`
}

// DomainResult is the scoring snapshot for one domain. It is produced fresh on
// every scoring run and never mutated afterwards; the next run supersedes it.
type DomainResult struct {
	Domain     Domain    `json:"domain"`
	Name       string    `json:"name"`
	Score      float64   `json:"score"` // 0-100
	Grade      string    `json:"grade"` // A-E
	Findings   []Finding `json:"findings,omitempty"`
	Confidence float64   `json:"confidence"` // 0-1
}

// MaxOpenSeverity returns the highest severity among open findings, or ""
// when no finding is open.
func (r *DomainResult) MaxOpenSeverity() Severity {
	var max Severity
	for _, f := range r.Findings {
		if f.Status != FindingOpen {
			continue
		}
		if max == "" || severityRank(f.Severity) > severityRank(max) {
			max = f.Severity
		}
	}
	return max
}

func severityRank(s Severity) int {
	switch s {
	case SeverityCritical:
		return 4
	case SeverityHigh:
		return 3
	case SeverityMedium:
		return 2
	case SeverityLow:
		return 1
	default:
		return 0
	}
}

// SizeCategory buckets vendors by employee count for size normalization.
type SizeCategory string

const (
	SizeMicro      SizeCategory = "micro"      // < 10 employees
	SizeSME        SizeCategory = "sme"        // 10-250
	SizeMidMarket  SizeCategory = "midmarket"  // 250-5000
	SizeEnterprise SizeCategory = "enterprise" // > 5000
)

// SizeFromEmployees maps an employee count to a size category.
func SizeFromEmployees(count int) SizeCategory {
	switch {
	case count < 10:
		return SizeMicro
	case count < 250:
		return SizeSME
	case count < 5000:
		return SizeMidMarket
	default:
		return SizeEnterprise
	}
}

// VendorScore is the complete output of one scoring run for a vendor.
// The weight configuration in effect at scan time is snapshotted into the
// record so historical scores stay reproducible.
type VendorScore struct {
	VendorID     string                   `json:"vendor_id"`
	ScanID       string                   `json:"scan_id"`
	GlobalScore  int                      `json:"global_score"` // 0-1000
	Grade        string                   `json:"grade"`        // A-F
	DomainScores map[Domain]*DomainResult `json:"domain_scores"`
	Weights      map[Domain]float64       `json:"weights"`
	SizeCategory SizeCategory             `json:"size_category"`
	Confidence   float64                  `json:"confidence"`
	Warnings     []string                 `json:"warnings,omitempty"`
	ScanDate     time.Time                `json:"scan_date"`
}

// ScoreHistoryEntry is one point in a vendor's append-only score time series.
type ScoreHistoryEntry struct {
	Date  time.Time `json:"date"`
	Score int       `json:"score"`
	Grade string    `json:"grade"`
}
