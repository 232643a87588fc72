package api

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/cyberscore/cyberscore/internal/vrm"
)

type createDisputeRequest struct {
	FindingID      string  `json:"finding_id"`
	RequesterEmail string  `json:"requester_email"`
	EvidenceURL    *string `json:"evidence_url"`
}

func (h *Handler) handleCreateDispute(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	var req createDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.FindingID == "" || req.RequesterEmail == "" {
		writeError(w, http.StatusBadRequest, "finding_id and requester_email are required")
		return
	}

	d, err := h.vrmSvc.CreateDispute(r.Context(), vendorID, req.FindingID, req.RequesterEmail, req.EvidenceURL)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, d)
}

type transitionDisputeRequest struct {
	Status     vrm.DisputeStatus `json:"status"`
	AdminNotes *string           `json:"admin_notes"`
}

func (h *Handler) handleTransitionDispute(w http.ResponseWriter, r *http.Request) {
	disputeID := r.PathValue("disputeID")

	var req transitionDisputeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	d, hint, err := h.vrmSvc.TransitionDispute(r.Context(), disputeID, req.Status, req.AdminNotes)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	// A resolved dispute changed a finding, so the vendor's score is stale.
	// Rescore out of band; the dispute response does not wait on it.
	if hint != nil {
		go func() {
			ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
			defer cancel()
			result, err := h.scanSvc.RunScan(ctx, hint.VendorID, "")
			if err != nil {
				log.Printf("rescore after dispute %s: %v", disputeID, err)
				return
			}
			if result.Sector != "" {
				h.cache.Invalidate(result.Sector)
			}
		}()
	}

	writeJSON(w, http.StatusOK, d)
}

func (h *Handler) handleListDisputes(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	disputes, err := h.vrmSvc.ListDisputes(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if disputes == nil {
		disputes = []vrm.Dispute{}
	}
	writeJSON(w, http.StatusOK, disputes)
}

type createRemediationRequest struct {
	Title       string                  `json:"title"`
	Description string                  `json:"description"`
	Priority    vrm.RemediationPriority `json:"priority"`
	Deadline    time.Time               `json:"deadline"`
	AssignedTo  *string                 `json:"assigned_to"`
}

func (h *Handler) handleCreateRemediation(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	var req createRemediationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Title == "" || req.Priority == "" || req.Deadline.IsZero() {
		writeError(w, http.StatusBadRequest, "title, priority, and deadline are required")
		return
	}

	if _, err := h.vendorSvc.GetVendor(r.Context(), vendorID); err != nil {
		writeServiceError(w, err)
		return
	}

	rem, err := h.vrmSvc.CreateRemediation(r.Context(), vendorID, req.Title, req.Description, req.Priority, req.Deadline, req.AssignedTo)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, rem)
}

type updateRemediationRequest struct {
	Status vrm.RemediationStatus `json:"status"`
}

func (h *Handler) handleUpdateRemediation(w http.ResponseWriter, r *http.Request) {
	remediationID := r.PathValue("remediationID")

	var req updateRemediationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}
	if req.Status == "" {
		writeError(w, http.StatusBadRequest, "status is required")
		return
	}

	rem, err := h.vrmSvc.UpdateRemediationStatus(r.Context(), remediationID, req.Status)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rem)
}

func (h *Handler) handleListRemediations(w http.ResponseWriter, r *http.Request) {
	vendorID := r.PathValue("vendorID")

	items, err := h.vrmSvc.ListRemediations(r.Context(), vendorID)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	if items == nil {
		items = []vrm.Remediation{}
	}
	writeJSON(w, http.StatusOK, items)
}
