package scoring

import "time"

const (
	// neutralScore is used when a domain has no findings at all: absence of
	// evidence is not evidence of absence.
	neutralScore      = 50.0
	neutralConfidence = 0.5

	// deductionScale converts a criticality factor into score points.
	deductionScale = 10.0

	// stalenessPenalty scales confidence down when every finding in the
	// domain is older than the freshness window.
	stalenessPenalty = 0.75
)

// DomainInput carries one domain's findings into a scoring run, along with
// the collector-reported confidence hint.
type DomainInput struct {
	Domain   Domain
	Findings []Finding

	// Confidence is the collector's evidence-completeness hint in (0, 1].
	// Zero means unspecified and defaults to 1.0.
	Confidence float64
}

// ScoreDomain converts the findings for one domain into a DomainResult.
//
// Open and acknowledged findings deduct criticality_factor(severity) * 10
// from a starting score of 100. Disputed findings deduct at half weight;
// resolved and false-positive findings deduct nothing. The result is clamped
// to [0, 100]. An empty findings list yields the neutral 50.0 / 0.5.
func ScoreDomain(in DomainInput, cfg Config, now time.Time) *DomainResult {
	result := &DomainResult{
		Domain: in.Domain,
		Name:   DomainNames[in.Domain],
	}

	if len(in.Findings) == 0 {
		result.Score = neutralScore
		result.Grade = DomainGrade(neutralScore)
		result.Confidence = neutralConfidence
		return result
	}

	score := 100.0
	for _, f := range in.Findings {
		deduction := CriticalityFactor(f.Severity) * deductionScale
		switch f.Status {
		case FindingOpen, FindingAcknowledged:
			score -= deduction
		case FindingDisputed:
			score -= deduction / 2
		case FindingResolved, FindingFalsePositive:
			// no deduction
		}
	}
	if score < 0 {
		score = 0
	}
	if score > 100 {
		score = 100
	}

	result.Score = score
	result.Grade = DomainGrade(score)
	result.Findings = append([]Finding(nil), in.Findings...)
	result.Confidence = domainConfidence(in, cfg, now)
	return result
}

// domainConfidence passes the collector hint through, defaulting to 1.0, and
// penalizes it when the entire domain's evidence is stale.
func domainConfidence(in DomainInput, cfg Config, now time.Time) float64 {
	confidence := in.Confidence
	if confidence <= 0 || confidence > 1 {
		confidence = 1.0
	}

	if cfg.FreshnessWindow > 0 {
		stale := true
		for _, f := range in.Findings {
			if f.DetectedAt.IsZero() || now.Sub(f.DetectedAt) <= cfg.FreshnessWindow {
				stale = false
				break
			}
		}
		if stale {
			confidence *= stalenessPenalty
		}
	}

	return confidence
}
