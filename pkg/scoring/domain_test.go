package scoring

import (
	"testing"
	"time"
)

func mkFinding(sev Severity, status FindingStatus, detectedAt time.Time) Finding {
	return Finding{
		Domain:     DomainNetwork,
		Title:      "test finding",
		Severity:   sev,
		Status:     status,
		DetectedAt: detectedAt,
	}
}

func TestScoreDomainEmpty(t *testing.T) {
	now := time.Now()
	result := ScoreDomain(DomainInput{Domain: DomainNetwork}, DefaultConfig(), now)

	if result.Score != 50.0 {
		t.Errorf("expected neutral score 50.0, got %f", result.Score)
	}
	if result.Confidence != 0.5 {
		t.Errorf("expected neutral confidence 0.5, got %f", result.Confidence)
	}
	if result.Grade != "C" {
		t.Errorf("expected grade C for neutral score, got %q", result.Grade)
	}
}

func TestScoreDomainDeductions(t *testing.T) {
	now := time.Now()
	cfg := DefaultConfig()

	tests := []struct {
		name      string
		findings  []Finding
		wantScore float64
	}{
		{
			name:      "single open critical deducts 20",
			findings:  []Finding{mkFinding(SeverityCritical, FindingOpen, now)},
			wantScore: 80,
		},
		{
			name: "open and acknowledged both deduct",
			findings: []Finding{
				mkFinding(SeverityHigh, FindingOpen, now),         // -15
				mkFinding(SeverityMedium, FindingAcknowledged, now), // -10
			},
			wantScore: 75,
		},
		{
			name:      "disputed deducts half weight",
			findings:  []Finding{mkFinding(SeverityCritical, FindingDisputed, now)},
			wantScore: 90,
		},
		{
			name: "resolved and false positive deduct nothing",
			findings: []Finding{
				mkFinding(SeverityCritical, FindingResolved, now),
				mkFinding(SeverityHigh, FindingFalsePositive, now),
			},
			wantScore: 100,
		},
		{
			name:      "info findings are free",
			findings:  []Finding{mkFinding(SeverityInfo, FindingOpen, now)},
			wantScore: 100,
		},
		{
			name: "score clamps at zero",
			findings: []Finding{
				mkFinding(SeverityCritical, FindingOpen, now),
				mkFinding(SeverityCritical, FindingOpen, now),
				mkFinding(SeverityCritical, FindingOpen, now),
				mkFinding(SeverityCritical, FindingOpen, now),
				mkFinding(SeverityCritical, FindingOpen, now),
				mkFinding(SeverityCritical, FindingOpen, now),
			},
			wantScore: 0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ScoreDomain(DomainInput{Domain: DomainNetwork, Findings: tc.findings}, cfg, now)
			if result.Score != tc.wantScore {
				t.Errorf("score = %f, want %f", result.Score, tc.wantScore)
			}
			if result.Score < 0 || result.Score > 100 {
				t.Errorf("score %f out of [0,100]", result.Score)
			}
			if want := DomainGrade(tc.wantScore); result.Grade != want {
				t.Errorf("grade = %q, want %q", result.Grade, want)
			}
		})
	}
}

func TestScoreDomainConfidence(t *testing.T) {
	now := time.Now()
	cfg := DefaultConfig()
	fresh := now.Add(-24 * time.Hour)
	stale := now.Add(-cfg.FreshnessWindow - 24*time.Hour)

	tests := []struct {
		name     string
		input    DomainInput
		want     float64
	}{
		{
			name: "unspecified hint defaults to 1.0",
			input: DomainInput{
				Domain:   DomainWeb,
				Findings: []Finding{mkFinding(SeverityLow, FindingOpen, fresh)},
			},
			want: 1.0,
		},
		{
			name: "collector hint passed through",
			input: DomainInput{
				Domain:     DomainWeb,
				Findings:   []Finding{mkFinding(SeverityLow, FindingOpen, fresh)},
				Confidence: 0.8,
			},
			want: 0.8,
		},
		{
			name: "all findings stale penalizes confidence",
			input: DomainInput{
				Domain:   DomainWeb,
				Findings: []Finding{mkFinding(SeverityLow, FindingOpen, stale)},
			},
			want: 0.75,
		},
		{
			name: "one fresh finding avoids the penalty",
			input: DomainInput{
				Domain: DomainWeb,
				Findings: []Finding{
					mkFinding(SeverityLow, FindingOpen, stale),
					mkFinding(SeverityLow, FindingOpen, fresh),
				},
			},
			want: 1.0,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := ScoreDomain(tc.input, cfg, now)
			if result.Confidence != tc.want {
				t.Errorf("confidence = %f, want %f", result.Confidence, tc.want)
			}
		})
	}
}

func TestMaxOpenSeverity(t *testing.T) {
	now := time.Now()
	r := &DomainResult{Findings: []Finding{
		mkFinding(SeverityCritical, FindingResolved, now),
		mkFinding(SeverityHigh, FindingOpen, now),
		mkFinding(SeverityMedium, FindingOpen, now),
	}}

	if got := r.MaxOpenSeverity(); got != SeverityHigh {
		t.Errorf("MaxOpenSeverity() = %q, want %q", got, SeverityHigh)
	}

	empty := &DomainResult{}
	if got := empty.MaxOpenSeverity(); got != "" {
		t.Errorf("expected empty severity for no findings, got %q", got)
	}
}
