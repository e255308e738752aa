package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/usecase"
)

// EnvelopeHandler handles envelope-related HTTP requests.
type EnvelopeHandler struct {
	envelopeUC *usecase.EnvelopeUseCase
}

// NewEnvelopeHandler creates a new EnvelopeHandler.
func NewEnvelopeHandler(envelopeUC *usecase.EnvelopeUseCase) *EnvelopeHandler {
	return &EnvelopeHandler{envelopeUC: envelopeUC}
}

// Create creates a new envelope.
func (h *EnvelopeHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateEnvelopeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	envelope, err := h.envelopeUC.CreateEnvelope(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create envelope")
		return
	}

	writeJSON(w, http.StatusCreated, dto.EnvelopeFromDomain(envelope))
}

// Get retrieves an envelope by ID.
func (h *EnvelopeHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing envelope ID", "")
		return
	}

	envelope, err := h.envelopeUC.GetEnvelope(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get envelope")
		return
	}

	writeJSON(w, http.StatusOK, dto.EnvelopeFromDomain(envelope))
}

// List lists the envelopes of a budget month.
func (h *EnvelopeHandler) List(w http.ResponseWriter, r *http.Request) {
	budgetID := r.URL.Query().Get("budget_id")
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "missing budget_id", "")
		return
	}

	envelopes, err := h.envelopeUC.ListEnvelopes(r.Context(), usecase.ListEnvelopesInput{
		BudgetID: budgetID,
		Month:    parseIntQuery(r, "month", 0),
		Year:     parseIntQuery(r, "year", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list envelopes", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.EnvelopesFromDomain(envelopes))
}

// Allocate grows the envelope allocation.
func (h *EnvelopeHandler) Allocate(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.EnvelopeAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	envelope, err := h.envelopeUC.AllocateToEnvelope(r.Context(), id, req.Amount)
	if err != nil {
		writeDomainError(w, err, "failed to allocate to envelope")
		return
	}

	writeJSON(w, http.StatusOK, dto.EnvelopeFromDomain(envelope))
}

// Spend records spending against the envelope.
func (h *EnvelopeHandler) Spend(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.EnvelopeAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	envelope, err := h.envelopeUC.RecordEnvelopeSpending(r.Context(), id, req.Amount)
	if err != nil {
		writeDomainError(w, err, "failed to record spending")
		return
	}

	writeJSON(w, http.StatusOK, dto.EnvelopeFromDomain(envelope))
}

// ReleaseSpending undoes previously recorded spending.
func (h *EnvelopeHandler) ReleaseSpending(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.EnvelopeAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	envelope, err := h.envelopeUC.ReleaseEnvelopeSpending(r.Context(), id, req.Amount)
	if err != nil {
		writeDomainError(w, err, "failed to release spending")
		return
	}

	writeJSON(w, http.StatusOK, dto.EnvelopeFromDomain(envelope))
}

// Delete soft-deletes an envelope.
func (h *EnvelopeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.envelopeUC.DeleteEnvelope(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete envelope")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
