package api

import (
	"net/http"

	"github.com/cyberscore/cyberscore/pkg/scoring"
)

func (h *Handler) handleGetScore(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	score, err := h.vendorSvc.GetLatestScore(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, score)
}

// domainScoresResponse lists per-domain results in canonical domain order
// rather than the map's iteration order.
type domainScoresResponse struct {
	VendorID string                  `json:"vendor_id"`
	ScanID   string                  `json:"scan_id"`
	Domains  []*scoring.DomainResult `json:"domains"`
}

func (h *Handler) handleGetDomainScores(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	score, err := h.vendorSvc.GetLatestScore(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := domainScoresResponse{VendorID: score.VendorID, ScanID: score.ScanID}
	for _, d := range scoring.Domains {
		if result, ok := score.DomainScores[d]; ok {
			resp.Domains = append(resp.Domains, result)
		}
	}
	writeJSON(w, http.StatusOK, resp)
}

type historyResponse struct {
	VendorID string                      `json:"vendor_id"`
	Entries  []scoring.ScoreHistoryEntry `json:"entries"`
	Trend    scoring.TrendDirection      `json:"trend"`
	Delta    int                         `json:"delta"`
}

func (h *Handler) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	entries, err := h.vendorSvc.GetScoreHistory(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	resp := historyResponse{VendorID: vendorID, Entries: entries, Trend: scoring.TrendStable}
	if n := len(entries); n >= 2 {
		resp.Trend, resp.Delta = scoring.ClassifyTrend(&entries[n-2], entries[n-1].Score)
	}
	if resp.Entries == nil {
		resp.Entries = []scoring.ScoreHistoryEntry{}
	}
	writeJSON(w, http.StatusOK, resp)
}
