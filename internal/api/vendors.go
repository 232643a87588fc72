package api

import (
	"encoding/json"
	"net/http"

	"github.com/cyberscore/cyberscore/internal/vendor"
)

type createVendorRequest struct {
	Name          string  `json:"name"`
	Domain        string  `json:"domain"`
	Sector        string  `json:"sector"`
	EmployeeCount int     `json:"employee_count"`
	ContractValue float64 `json:"contract_value"`
}

func (h *Handler) handleCreateVendor(w http.ResponseWriter, r *http.Request) {
	var req createVendorRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	if req.Name == "" || req.Domain == "" || req.Sector == "" {
		writeError(w, http.StatusBadRequest, "name, domain, and sector are required")
		return
	}

	v, err := h.vendorSvc.CreateVendor(r.Context(), req.Name, req.Domain, req.Sector, req.EmployeeCount, req.ContractValue)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusCreated, v)
}

func (h *Handler) handleListVendors(w http.ResponseWriter, r *http.Request) {
	var (
		list []vendor.Vendor
		err  error
	)
	if sector := r.URL.Query().Get("sector"); sector != "" {
		list, err = h.vendorSvc.ListVendorsBySector(r.Context(), sector)
	} else {
		list, err = h.vendorSvc.ListVendors(r.Context())
	}
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if list == nil {
		list = []vendor.Vendor{}
	}
	writeJSON(w, http.StatusOK, list)
}

func (h *Handler) handleGetVendor(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	v, err := h.vendorSvc.GetVendor(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, v)
}

func (h *Handler) handlePortfolioSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := h.vendorSvc.GetPortfolioSummary(r.Context())
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
