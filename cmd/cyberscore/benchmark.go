package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/cyberscore/cyberscore/pkg/benchmark"
	"github.com/cyberscore/cyberscore/pkg/scoring"
)

func newBenchmarkCmd() *cobra.Command {
	var (
		sector    string
		outputFmt string
	)

	cmd := &cobra.Command{
		Use:   "benchmark <scores-dir>",
		Short: "Compute sector statistics from exported score files",
		Long:  `Reads score JSON files from a directory and computes the sector average and percentile distribution.`,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runBenchmark(args[0], sector, outputFmt)
		},
	}

	cmd.Flags().StringVar(&sector, "sector", "all", "Sector label for the computed benchmark")
	cmd.Flags().StringVar(&outputFmt, "output", "text", "Output format: text or json")

	return cmd
}

func runBenchmark(dir, sector, outputFmt string) error {
	paths, err := filepath.Glob(filepath.Join(dir, "*.json"))
	if err != nil {
		return fmt.Errorf("listing score files: %w", err)
	}
	if len(paths) == 0 {
		return fmt.Errorf("no score files in %s", dir)
	}

	var scores []*scoring.VendorScore
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return fmt.Errorf("reading %s: %w", path, err)
		}
		var score scoring.VendorScore
		if err := json.Unmarshal(data, &score); err != nil {
			return fmt.Errorf("parsing %s: %w", path, err)
		}
		scores = append(scores, &score)
	}

	bench := benchmark.Compute(sector, scores)
	if bench == nil {
		return fmt.Errorf("no scores to benchmark")
	}

	switch outputFmt {
	case "json":
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(bench); err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	default:
		renderBenchmark(bench)
	}
	return nil
}

func renderBenchmark(bench *benchmark.SectorBenchmark) {
	fmt.Printf("Sector:  %s (%d vendors)\n", bench.Sector, bench.VendorCount)
	fmt.Printf("Average: %.1f\n", bench.GlobalAvg)
	fmt.Printf("P25 %.0f  P50 %.0f  P75 %.0f  P90 %.0f\n\n",
		bench.P25, bench.P50, bench.P75, bench.P90)

	for _, ds := range bench.Domains {
		fmt.Printf("  %-28s avg %5.1f  median %5.1f\n", ds.Name, ds.Average, ds.Median)
	}
}
