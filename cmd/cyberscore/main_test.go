package main

import (
	"testing"
)

func TestScoreCmdFlags(t *testing.T) {
	cmd := newScoreCmd()
	f := cmd.Flags()

	// Test default output format
	outputFmt, _ := f.GetString("output")
	if outputFmt != "text" {
		t.Errorf("default output = %q, want text", outputFmt)
	}

	for _, flag := range []string{"config", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}

func TestBenchmarkCmdFlags(t *testing.T) {
	cmd := newBenchmarkCmd()
	f := cmd.Flags()

	sector, _ := f.GetString("sector")
	if sector != "all" {
		t.Errorf("default sector = %q, want all", sector)
	}

	for _, flag := range []string{"sector", "output"} {
		if f.Lookup(flag) == nil {
			t.Errorf("missing flag: %s", flag)
		}
	}
}
