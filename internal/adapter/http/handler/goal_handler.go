package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/infrastructure/metrics"
	"github.com/iho/budgeteer/internal/usecase"
)

// GoalHandler handles goal-related HTTP requests.
type GoalHandler struct {
	goalUC  *usecase.GoalUseCase
	retrier Retrier
}

// NewGoalHandler creates a new GoalHandler.
func NewGoalHandler(goalUC *usecase.GoalUseCase, retrier Retrier) *GoalHandler {
	return &GoalHandler{goalUC: goalUC, retrier: retrier}
}

// Create creates a new goal.
func (h *GoalHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateGoalRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goalUC.CreateGoal(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create goal")
		return
	}

	writeJSON(w, http.StatusCreated, dto.GoalFromDomain(goal))
}

// Get retrieves a goal by ID.
func (h *GoalHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing goal ID", "")
		return
	}

	goal, err := h.goalUC.GetGoal(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get goal")
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// List lists the goals of a budget.
func (h *GoalHandler) List(w http.ResponseWriter, r *http.Request) {
	budgetID := r.URL.Query().Get("budget_id")
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "missing budget_id", "")
		return
	}

	goals, err := h.goalUC.ListGoals(r.Context(), usecase.ListGoalsInput{
		BudgetID: budgetID,
		Limit:    parseIntQuery(r, "limit", 20),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list goals", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalsFromDomain(goals))
}

// Reserve grows the goal's accumulated amount. All goals funded from
// the same account are checked against its balance under lock.
func (h *GoalHandler) Reserve(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.GoalAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	var goal *domain.Goal
	err := h.retrier.Retry(r.Context(), func() error {
		var opErr error
		goal, opErr = h.goalUC.ReserveAmount(r.Context(), usecase.ReserveAmountInput{
			GoalID: id,
			Amount: req.Amount,
		})
		return opErr
	})
	if err != nil {
		writeDomainError(w, err, "failed to reserve amount")
		return
	}

	metrics.GoalReservations.Inc()
	metrics.ReservationAmount.Observe(req.Amount)

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// Release shrinks the goal's accumulated amount.
func (h *GoalHandler) Release(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.GoalAmountRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goalUC.ReleaseAmount(r.Context(), usecase.ReleaseAmountInput{
		GoalID: id,
		Amount: req.Amount,
	})
	if err != nil {
		writeDomainError(w, err, "failed to release amount")
		return
	}

	metrics.GoalReleases.Inc()

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// Rename renames a goal.
func (h *GoalHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	goal, err := h.goalUC.RenameGoal(r.Context(), id, req.Name)
	if err != nil {
		writeDomainError(w, err, "failed to rename goal")
		return
	}

	writeJSON(w, http.StatusOK, dto.GoalFromDomain(goal))
}

// Delete soft-deletes a goal.
func (h *GoalHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.goalUC.DeleteGoal(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete goal")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
