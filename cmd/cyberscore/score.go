package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"
	"github.com/cyberscore/cyberscore/pkg/config"
	"github.com/cyberscore/cyberscore/pkg/scoring"
	"github.com/cyberscore/cyberscore/pkg/surface"
)

// scanFile is the offline input format: one vendor's findings grouped by
// domain, as produced by the collection pipeline's export.
type scanFile struct {
	VendorID      string `json:"vendor_id"`
	ScanID        string `json:"scan_id"`
	EmployeeCount int    `json:"employee_count"`
	Domains       map[scoring.Domain]struct {
		Confidence float64           `json:"confidence"`
		Findings   []scoring.Finding `json:"findings"`
	} `json:"domains"`
}

func newScoreCmd() *cobra.Command {
	var (
		configPath string
		outputFmt  string
	)

	cmd := &cobra.Command{
		Use:   "score <findings.json>",
		Short: "Score a vendor from an exported findings file",
		Long:  `Scores each assessment domain, aggregates the weighted global score, and renders the grade breakdown.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runScore(args[0], configPath, outputFmt)
		},
	}

	cmd.Flags().StringVar(&configPath, "config", "", "Path to config YAML (default: find .cyberscore/config.yaml)")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runScore(path, configPath, outputFmt string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading findings file: %w", err)
	}

	var sf scanFile
	if err := json.Unmarshal(data, &sf); err != nil {
		return fmt.Errorf("parsing findings file: %w", err)
	}
	if sf.VendorID == "" {
		sf.VendorID = "local"
	}

	engine, err := loadEngine(configPath)
	if err != nil {
		return err
	}
	cfg := engine.Config()

	now := time.Now().UTC()
	results := make(map[scoring.Domain]*scoring.DomainResult, len(sf.Domains))
	for domain, d := range sf.Domains {
		if !scoring.KnownDomain(domain) {
			return fmt.Errorf("unknown domain key %q", domain)
		}
		results[domain] = scoring.ScoreDomain(scoring.DomainInput{
			Domain:     domain,
			Findings:   d.Findings,
			Confidence: d.Confidence,
		}, cfg, now)
	}

	size := scoring.SizeFromEmployees(sf.EmployeeCount)
	score := engine.Aggregate(sf.VendorID, sf.ScanID, results, size, now)

	var renderer surface.Renderer
	switch outputFmt {
	case "json":
		renderer = &surface.JSONRenderer{}
	default:
		renderer = &surface.TerminalRenderer{}
	}
	if err := renderer.Render(os.Stdout, score); err != nil {
		return fmt.Errorf("rendering: %w", err)
	}
	return nil
}

// loadEngine builds a scoring engine from the given config file, falling
// back to discovery from the working directory and then to defaults.
func loadEngine(configPath string) (*scoring.Engine, error) {
	path := configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			path = config.FindConfigFile(wd)
		}
	}
	cfg, err := config.Load(path)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w", err)
	}
	sc, err := cfg.ScoringConfig()
	if err != nil {
		return nil, fmt.Errorf("invalid scoring config: %w", err)
	}
	return scoring.NewEngine(sc)
}
