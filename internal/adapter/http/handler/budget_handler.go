package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/usecase"
)

// BudgetHandler handles budget-related HTTP requests.
type BudgetHandler struct {
	budgetUC *usecase.BudgetUseCase
}

// NewBudgetHandler creates a new BudgetHandler.
func NewBudgetHandler(budgetUC *usecase.BudgetUseCase) *BudgetHandler {
	return &BudgetHandler{budgetUC: budgetUC}
}

// Create creates a new budget.
func (h *BudgetHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateBudgetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.CreateBudget(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create budget")
		return
	}

	writeJSON(w, http.StatusCreated, dto.BudgetFromDomain(budget))
}

// Get retrieves a budget by ID.
func (h *BudgetHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing budget ID", "")
		return
	}

	budget, err := h.budgetUC.GetBudget(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get budget")
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// List lists the budgets a participant belongs to.
func (h *BudgetHandler) List(w http.ResponseWriter, r *http.Request) {
	participantID := r.URL.Query().Get("participant_id")
	if participantID == "" {
		writeError(w, http.StatusBadRequest, "missing participant_id", "")
		return
	}

	budgets, err := h.budgetUC.ListBudgets(r.Context(), usecase.ListBudgetsInput{
		ParticipantID: participantID,
		Limit:         parseIntQuery(r, "limit", 20),
		Offset:        parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list budgets", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetsFromDomain(budgets))
}

// Rename renames a budget.
func (h *BudgetHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.RenameBudget(r.Context(), id, req.Name)
	if err != nil {
		writeDomainError(w, err, "failed to rename budget")
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// AddParticipant adds a participant to a budget.
func (h *BudgetHandler) AddParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.ParticipantRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	budget, err := h.budgetUC.AddParticipant(r.Context(), id, req.ParticipantID)
	if err != nil {
		writeDomainError(w, err, "failed to add participant")
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// RemoveParticipant removes a participant from a budget.
func (h *BudgetHandler) RemoveParticipant(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	participantID := chi.URLParam(r, "participantID")

	budget, err := h.budgetUC.RemoveParticipant(r.Context(), id, participantID)
	if err != nil {
		writeDomainError(w, err, "failed to remove participant")
		return
	}

	writeJSON(w, http.StatusOK, dto.BudgetFromDomain(budget))
}

// Delete soft-deletes a budget.
func (h *BudgetHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.budgetUC.DeleteBudget(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete budget")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
