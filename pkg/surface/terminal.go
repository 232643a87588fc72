package surface

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// TerminalRenderer renders a VendorScore as colored terminal output.
type TerminalRenderer struct{}

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorGreen  = "\033[32m"
	colorYellow = "\033[33m"
	colorBold   = "\033[1m"
	colorDim    = "\033[2m"
)

func gradeColor(grade string) string {
	if noColor() {
		return ""
	}
	switch grade {
	case "A", "B":
		return colorGreen
	case "C":
		return colorYellow
	case "D", "E", "F":
		return colorRed
	default:
		return ""
	}
}

func noColor() bool {
	_, ok := os.LookupEnv("NO_COLOR")
	return ok
}

func bold(s string) string {
	if noColor() {
		return s
	}
	return colorBold + s + colorReset
}

func dim(s string) string {
	if noColor() {
		return s
	}
	return colorDim + s + colorReset
}

func colored(s, color string) string {
	if noColor() || color == "" {
		return s
	}
	return color + s + colorReset
}

func (r *TerminalRenderer) Render(w io.Writer, score *scoring.VendorScore) error {
	gc := gradeColor(score.Grade)

	// Header
	fmt.Fprintf(w, "%s\n\n",
		bold(fmt.Sprintf("CyberScore: Grade %s — Score %d/1000",
			colored(score.Grade, gc), score.GlobalScore)))

	fmt.Fprintf(w, "Vendor: %s  Size: %s  Confidence: %.2f\n\n",
		score.VendorID, score.SizeCategory, score.Confidence)

	// Domain breakdown in canonical order
	fmt.Fprintln(w, "Domains:")
	for _, domain := range scoring.Domains {
		result, ok := score.DomainScores[domain]
		if !ok {
			fmt.Fprintf(w, "  %-28s %s\n", scoring.DomainNames[domain], dim("no data"))
			continue
		}

		dc := gradeColor(result.Grade)
		fmt.Fprintf(w, "  %-28s %5.1f  %s", result.Name, result.Score, colored(result.Grade, dc))

		open := 0
		for _, f := range result.Findings {
			if f.Status == scoring.FindingOpen || f.Status == scoring.FindingAcknowledged {
				open++
			}
		}
		if open > 0 {
			fmt.Fprintf(w, "  %s", dim(fmt.Sprintf("%d open findings", open)))
		}
		fmt.Fprintln(w)
	}
	fmt.Fprintln(w)

	// Open findings worth acting on, highest severity first
	var critical []scoring.Finding
	for _, domain := range scoring.Domains {
		result, ok := score.DomainScores[domain]
		if !ok {
			continue
		}
		for _, f := range result.Findings {
			if f.Status != scoring.FindingOpen && f.Status != scoring.FindingAcknowledged {
				continue
			}
			if f.Severity == scoring.SeverityCritical || f.Severity == scoring.SeverityHigh {
				critical = append(critical, f)
			}
		}
	}
	if len(critical) > 0 {
		fmt.Fprintln(w, "Attention:")
		for _, f := range critical {
			fmt.Fprintf(w, "  %s [%s] %s\n",
				colored("●", colorRed), f.Severity, bold(f.Title))
			if f.Recommendation != "" {
				for _, line := range wrapText(f.Recommendation, 70) {
					fmt.Fprintf(w, "    %s\n", dim(line))
				}
			}
		}
		fmt.Fprintln(w)
	}

	// Warnings
	if len(score.Warnings) > 0 {
		for _, warning := range score.Warnings {
			fmt.Fprintf(w, "  %s\n", dim("warning: "+warning))
		}
		fmt.Fprintln(w)
	}

	return nil
}

// wrapText wraps a string at the given width, returning lines.
func wrapText(s string, width int) []string {
	words := strings.Fields(s)
	if len(words) == 0 {
		return nil
	}

	var lines []string
	current := words[0]

	for _, word := range words[1:] {
		if len(current)+1+len(word) > width {
			lines = append(lines, current)
			current = word
		} else {
			current += " " + word
		}
	}
	lines = append(lines, current)
	return lines
}
