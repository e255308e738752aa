package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/usecase"
)

// CategoryHandler handles category-related HTTP requests.
type CategoryHandler struct {
	categoryUC *usecase.CategoryUseCase
}

// NewCategoryHandler creates a new CategoryHandler.
func NewCategoryHandler(categoryUC *usecase.CategoryUseCase) *CategoryHandler {
	return &CategoryHandler{categoryUC: categoryUC}
}

// Create creates a new category.
func (h *CategoryHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCategoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.CreateCategory(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create category")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CategoryFromDomain(category))
}

// Get retrieves a category by ID.
func (h *CategoryHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing category ID", "")
		return
	}

	category, err := h.categoryUC.GetCategory(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get category")
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// List lists the categories of a budget.
func (h *CategoryHandler) List(w http.ResponseWriter, r *http.Request) {
	budgetID := r.URL.Query().Get("budget_id")
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "missing budget_id", "")
		return
	}

	categories, err := h.categoryUC.ListCategories(r.Context(), usecase.ListCategoriesInput{
		BudgetID: budgetID,
		Limit:    parseIntQuery(r, "limit", 20),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list categories", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoriesFromDomain(categories))
}

// Rename renames a category.
func (h *CategoryHandler) Rename(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.RenameRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	category, err := h.categoryUC.RenameCategory(r.Context(), id, req.Name)
	if err != nil {
		writeDomainError(w, err, "failed to rename category")
		return
	}

	writeJSON(w, http.StatusOK, dto.CategoryFromDomain(category))
}

// Delete soft-deletes a category. Categories referenced by
// transactions are refused.
func (h *CategoryHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.categoryUC.DeleteCategory(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete category")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
