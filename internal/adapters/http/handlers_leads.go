package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/nestora/storefront/internal/application"
)

func (h *Handler) submitLead(w http.ResponseWriter, r *http.Request) {
	var req application.SubmitLeadRequest
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "submit_lead", err)
		return
	}
	req.IPAddress = readIP(r)

	lead, err := h.service.SubmitLead(r.Context(), req)
	if err != nil {
		writeMappedError(r.Context(), w, "submit_lead", err)
		return
	}
	writeSuccess(w, http.StatusCreated, lead)
}

func (h *Handler) listLeads(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "list_leads")
		return
	}

	input := application.ListLeadsInput{
		Status:   r.URL.Query().Get("status"),
		Phone:    r.URL.Query().Get("phone"),
		Page:     parseIntDefault(r.URL.Query().Get("page"), 1),
		PageSize: parseIntDefault(r.URL.Query().Get("limit"), 20),
	}
	leads, total, err := h.service.ListLeads(r.Context(), actor, input)
	if err != nil {
		writeMappedError(r.Context(), w, "list_leads", err)
		return
	}
	writeSuccess(w, http.StatusOK, map[string]any{
		"leads": leads,
		"total": total,
	})
}

func (h *Handler) getLead(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "get_lead")
		return
	}
	leadID, err := uuid.Parse(chi.URLParam(r, "lead_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid lead_id")
		return
	}

	lead, err := h.service.GetLead(r.Context(), actor, leadID)
	if err != nil {
		writeMappedError(r.Context(), w, "get_lead", err)
		return
	}
	writeSuccess(w, http.StatusOK, lead)
}

func (h *Handler) updateLeadStatus(w http.ResponseWriter, r *http.Request) {
	actor, ok := actorFromContext(r.Context())
	if !ok {
		writeMissingActorError(r.Context(), w, "update_lead_status")
		return
	}
	leadID, err := uuid.Parse(chi.URLParam(r, "lead_id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "VALIDATION_ERROR", "invalid lead_id")
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := decodeBody(r, &req); err != nil {
		writeValidationError(r.Context(), w, "update_lead_status", err)
		return
	}

	lead, err := h.service.UpdateLeadStatus(r.Context(), actor, application.UpdateLeadStatusInput{
		LeadID: leadID,
		Status: req.Status,
	})
	if err != nil {
		writeMappedError(r.Context(), w, "update_lead_status", err)
		return
	}
	writeSuccess(w, http.StatusOK, lead)
}
