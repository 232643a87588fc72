package scan

import (
	"context"
	"testing"
	"time"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

func TestScoreDomainsFanOut(t *testing.T) {
	engine, err := scoring.NewEngine(scoring.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	s := &Service{engine: engine}

	now := time.Now().UTC()
	inputs := make(map[scoring.Domain]scoring.DomainInput)
	for _, d := range scoring.Domains {
		inputs[d] = scoring.DomainInput{
			Domain: d,
			Findings: []scoring.Finding{
				{Severity: scoring.SeverityHigh, Status: scoring.FindingOpen, DetectedAt: now},
			},
			Confidence: 0.9,
		}
	}

	results := s.scoreDomains(context.Background(), "vendor1", inputs, now)

	if len(results) != len(scoring.Domains) {
		t.Fatalf("got %d results, want %d", len(results), len(scoring.Domains))
	}
	for _, d := range scoring.Domains {
		got, ok := results[d]
		if !ok {
			t.Fatalf("missing result for %s", d)
		}
		want := scoring.ScoreDomain(inputs[d], engine.Config(), now)
		if got.Score != want.Score || got.Grade != want.Grade {
			t.Errorf("%s: concurrent result %.1f/%s, sequential %.1f/%s",
				d, got.Score, got.Grade, want.Score, want.Grade)
		}
	}
}

func TestScoreDomainsEmptyInput(t *testing.T) {
	engine, err := scoring.NewEngine(scoring.DefaultConfig())
	if err != nil {
		t.Fatalf("NewEngine: %v", err)
	}
	s := &Service{engine: engine}

	results := s.scoreDomains(context.Background(), "vendor1", nil, time.Now().UTC())
	if len(results) != 0 {
		t.Errorf("got %d results for no inputs, want 0", len(results))
	}
}
