// Package main provides the cyberscore CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var version = "dev"

func main() {
	rootCmd := &cobra.Command{
		Use:   "cyberscore",
		Short: "Vendor cybersecurity scoring and risk aggregation",
		Long: `CyberScore aggregates security findings across eight assessment domains
into a single 0-1000 vendor risk score with letter grades and benchmarks.`,
		Version: version,
	}

	rootCmd.AddCommand(
		newScoreCmd(),
		newBenchmarkCmd(),
	)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
