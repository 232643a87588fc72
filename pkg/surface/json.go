package surface

import (
	"encoding/json"
	"io"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// JSONRenderer marshals a VendorScore to indented JSON.
type JSONRenderer struct{}

func (r *JSONRenderer) Render(w io.Writer, score *scoring.VendorScore) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(score)
}
