package api

import (
	"context"
	"net/http"

	"github.com/cyberscore/cyberscore/pkg/benchmark"
)

// sectorBenchmark returns the benchmark for a sector, computing and caching
// it from the latest committed score of every vendor in the sector.
func (h *Handler) sectorBenchmark(ctx context.Context, sector string) (*benchmark.SectorBenchmark, error) {
	if cached := h.cache.Get(sector); cached != nil {
		return cached, nil
	}

	scores, err := h.vendorSvc.ListLatestScoresBySector(ctx, sector)
	if err != nil {
		return nil, err
	}

	bench := benchmark.Compute(sector, scores)
	if bench != nil {
		h.cache.Put(sector, bench)
	}
	return bench, nil
}

func (h *Handler) handleSectorBenchmark(w http.ResponseWriter, r *http.Request) {
	sector := r.PathValue("sector")

	bench, err := h.sectorBenchmark(r.Context(), sector)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bench == nil {
		writeError(w, http.StatusNotFound, "no scored vendors in sector "+sector)
		return
	}
	writeJSON(w, http.StatusOK, bench)
}

func (h *Handler) handleVendorBenchmark(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	v, err := h.vendorSvc.GetVendor(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	score, err := h.vendorSvc.GetLatestScore(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	bench, err := h.sectorBenchmark(r.Context(), v.Sector)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if bench == nil {
		writeError(w, http.StatusNotFound, "no scored vendors in sector "+v.Sector)
		return
	}

	writeJSON(w, http.StatusOK, benchmark.CompareVendor(bench, score))
}
