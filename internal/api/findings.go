package api

import (
	"compress/gzip"
	"encoding/json"
	"io"
	"net/http"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// submitFindingsRequest is the JSON body for POST /api/v1/vendors/{id}/findings.
// One submission carries a single domain's findings plus the collector's
// evidence-completeness hint for that domain.
type submitFindingsRequest struct {
	Domain     scoring.Domain    `json:"domain"`
	Findings   []scoring.Finding `json:"findings"`
	Confidence float64           `json:"confidence"`
}

type submitFindingsResponse struct {
	Stored int            `json:"stored"`
	Domain scoring.Domain `json:"domain"`
}

func (h *Handler) handleSubmitFindings(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	// Support gzip-compressed request bodies from collectors
	var body io.Reader = r.Body
	if r.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(r.Body)
		if err != nil {
			writeError(w, http.StatusBadRequest, "invalid gzip body: "+err.Error())
			return
		}
		defer gz.Close()
		body = gz
	}

	var req submitFindingsRequest
	if err := json.NewDecoder(body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Domain == "" {
		writeError(w, http.StatusBadRequest, "domain is required")
		return
	}

	if _, err := h.vendorSvc.GetVendor(r.Context(), vendorID); err != nil {
		writeServiceError(w, err)
		return
	}

	stored, err := h.scanSvc.SubmitFindings(r.Context(), vendorID, req.Domain, req.Findings, req.Confidence)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, submitFindingsResponse{Stored: stored, Domain: req.Domain})
}

type runScanRequest struct {
	ScanID string `json:"scan_id"` // optional idempotency key
}

func (h *Handler) handleRunScan(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	var req runScanRequest
	if r.ContentLength > 0 {
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}
	}

	result, err := h.scanSvc.RunScan(r.Context(), vendorID, req.ScanID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// A committed score shifts the sector's distribution.
	if !result.Duplicate && result.Sector != "" {
		h.cache.Invalidate(result.Sector)
	}

	writeJSON(w, http.StatusOK, result)
}
