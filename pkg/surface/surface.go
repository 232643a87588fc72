// Package surface defines output rendering for vendor scores.
// Implementations handle different output targets: terminal and JSON.
package surface

import (
	"io"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// Renderer produces formatted output from a VendorScore.
type Renderer interface {
	// Render writes the formatted score to the writer.
	Render(w io.Writer, score *scoring.VendorScore) error
}
