package handler

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/usecase"
)

// CreditCardHandler handles credit card and bill HTTP requests.
type CreditCardHandler struct {
	cardUC *usecase.CreditCardUseCase
}

// NewCreditCardHandler creates a new CreditCardHandler.
func NewCreditCardHandler(cardUC *usecase.CreditCardUseCase) *CreditCardHandler {
	return &CreditCardHandler{cardUC: cardUC}
}

// Create creates a new credit card.
func (h *CreditCardHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateCreditCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	card, err := h.cardUC.CreateCreditCard(r.Context(), req.ToUseCaseInput())
	if err != nil {
		writeDomainError(w, err, "failed to create credit card")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreditCardFromDomain(card))
}

// Get retrieves a credit card by ID.
func (h *CreditCardHandler) Get(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing credit card ID", "")
		return
	}

	card, err := h.cardUC.GetCreditCard(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get credit card")
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditCardFromDomain(card))
}

// List lists the credit cards of a budget.
func (h *CreditCardHandler) List(w http.ResponseWriter, r *http.Request) {
	budgetID := r.URL.Query().Get("budget_id")
	if budgetID == "" {
		writeError(w, http.StatusBadRequest, "missing budget_id", "")
		return
	}

	cards, err := h.cardUC.ListCreditCards(r.Context(), usecase.ListCreditCardsInput{
		BudgetID: budgetID,
		Limit:    parseIntQuery(r, "limit", 20),
		Offset:   parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list credit cards", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditCardsFromDomain(cards))
}

// Update applies a partial update to a credit card.
func (h *CreditCardHandler) Update(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req dto.UpdateCreditCardRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	card, err := h.cardUC.UpdateCreditCard(r.Context(), req.ToUseCaseInput(id))
	if err != nil {
		writeDomainError(w, err, "failed to update credit card")
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditCardFromDomain(card))
}

// Delete soft-deletes a credit card.
func (h *CreditCardHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	if err := h.cardUC.DeleteCreditCard(r.Context(), id); err != nil {
		writeDomainError(w, err, "failed to delete credit card")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// OpenBill opens the next billing period for a card.
func (h *CreditCardHandler) OpenBill(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")

	bill, err := h.cardUC.OpenNextBill(r.Context(), cardID)
	if err != nil {
		writeDomainError(w, err, "failed to open bill")
		return
	}

	writeJSON(w, http.StatusCreated, dto.CreditCardBillFromDomain(bill))
}

// GetBill retrieves a bill by ID.
func (h *CreditCardHandler) GetBill(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		writeError(w, http.StatusBadRequest, "missing bill ID", "")
		return
	}

	bill, err := h.cardUC.GetBill(r.Context(), id)
	if err != nil {
		writeDomainError(w, err, "failed to get bill")
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditCardBillFromDomain(bill))
}

// ListBills lists the bills of a credit card.
func (h *CreditCardHandler) ListBills(w http.ResponseWriter, r *http.Request) {
	cardID := chi.URLParam(r, "id")

	bills, err := h.cardUC.ListBills(r.Context(), usecase.ListBillsInput{
		CreditCardID: cardID,
		Limit:        parseIntQuery(r, "limit", 20),
		Offset:       parseIntQuery(r, "offset", 0),
	})
	if err != nil {
		writeError(w, http.StatusInternalServerError, "failed to list bills", err.Error())
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditCardBillsFromDomain(bills))
}

// AddCharge adds a card purchase to an open bill.
func (h *CreditCardHandler) AddCharge(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "id")

	var req dto.BillChargeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bill, err := h.cardUC.AddBillCharge(r.Context(), billID, req.Amount)
	if err != nil {
		writeDomainError(w, err, "failed to add charge")
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditCardBillFromDomain(bill))
}

// CloseBill closes an open bill.
func (h *CreditCardHandler) CloseBill(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "id")

	bill, err := h.cardUC.CloseBill(r.Context(), billID)
	if err != nil {
		writeDomainError(w, err, "failed to close bill")
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditCardBillFromDomain(bill))
}

// ReopenBill reopens a paid bill within the allowed window.
func (h *CreditCardHandler) ReopenBill(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "id")

	var req dto.ReopenBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	bill, err := h.cardUC.ReopenBill(r.Context(), billID, req.Justification)
	if err != nil {
		writeDomainError(w, err, "failed to reopen bill")
		return
	}

	writeJSON(w, http.StatusOK, dto.CreditCardBillFromDomain(bill))
}
