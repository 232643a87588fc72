// Package api implements the hosted CyberScore REST API.
// It provides findings intake, scoring, benchmarking, and vendor risk
// management endpoints backed by Postgres and blob storage.
package api

import (
	"database/sql"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/cyberscore/cyberscore/internal/scan"
	"github.com/cyberscore/cyberscore/internal/vendor"
	"github.com/cyberscore/cyberscore/internal/vrm"
	"github.com/cyberscore/cyberscore/pkg/scoring"
)

// Handler is the top-level API handler for the hosted CyberScore service.
type Handler struct {
	db        *sql.DB
	vendorSvc *vendor.Service
	scanSvc   *scan.Service
	vrmSvc    *vrm.Service
	cache     *BenchmarkCache
}

// NewHandler creates a new API handler.
func NewHandler(db *sql.DB, vendorSvc *vendor.Service, scanSvc *scan.Service, vrmSvc *vrm.Service, cache *BenchmarkCache) *Handler {
	if cache == nil {
		cache = NewBenchmarkCacheFromEnv()
	}
	return &Handler{
		db:        db,
		vendorSvc: vendorSvc,
		scanSvc:   scanSvc,
		vrmSvc:    vrmSvc,
		cache:     cache,
	}
}

// RegisterRoutes registers all API routes on the given ServeMux.
func (h *Handler) RegisterRoutes(mux *http.ServeMux) {
	// Write endpoints (auth-protected)
	mux.HandleFunc("POST /api/v1/vendors", h.handleCreateVendor)
	mux.HandleFunc("POST /api/v1/vendors/{vendorID}/findings", h.handleSubmitFindings)
	mux.HandleFunc("POST /api/v1/vendors/{vendorID}/scans", h.handleRunScan)
	mux.HandleFunc("POST /api/v1/vendors/{vendorID}/disputes", h.handleCreateDispute)
	mux.HandleFunc("PATCH /api/v1/disputes/{disputeID}", h.handleTransitionDispute)
	mux.HandleFunc("POST /api/v1/vendors/{vendorID}/remediations", h.handleCreateRemediation)
	mux.HandleFunc("PATCH /api/v1/remediations/{remediationID}", h.handleUpdateRemediation)

	// Read endpoints
	mux.HandleFunc("GET /api/v1/vendors", h.handleListVendors)
	mux.HandleFunc("GET /api/v1/vendors/{vendorID}", h.handleGetVendor)
	mux.HandleFunc("GET /api/v1/vendors/{vendorID}/score", h.handleGetScore)
	mux.HandleFunc("GET /api/v1/vendors/{vendorID}/domains", h.handleGetDomainScores)
	mux.HandleFunc("GET /api/v1/vendors/{vendorID}/history", h.handleGetHistory)
	mux.HandleFunc("GET /api/v1/vendors/{vendorID}/benchmark", h.handleVendorBenchmark)
	mux.HandleFunc("GET /api/v1/vendors/{vendorID}/disputes", h.handleListDisputes)
	mux.HandleFunc("GET /api/v1/vendors/{vendorID}/remediations", h.handleListRemediations)
	mux.HandleFunc("GET /api/v1/portfolio/summary", h.handlePortfolioSummary)
	mux.HandleFunc("GET /api/v1/benchmark/{sector}", h.handleSectorBenchmark)
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(data)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// writeServiceError maps service-layer errors to HTTP statuses: validation
// failures to 400, state conflicts to 409, missing resources to 404.
func writeServiceError(w http.ResponseWriter, err error) {
	var (
		validationErr *scoring.ValidationError
		conflictErr   *vrm.ConflictError
		notFoundErr   *vrm.NotFoundError
	)
	switch {
	case errors.As(err, &validationErr):
		writeError(w, http.StatusBadRequest, validationErr.Error())
	case errors.As(err, &conflictErr):
		writeError(w, http.StatusConflict, conflictErr.Error())
	case errors.As(err, &notFoundErr):
		writeError(w, http.StatusNotFound, notFoundErr.Error())
	case errors.Is(err, sql.ErrNoRows):
		writeError(w, http.StatusNotFound, "not found")
	default:
		writeError(w, http.StatusInternalServerError, err.Error())
	}
}
