package handler

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/infrastructure/metrics"
	"github.com/iho/budgeteer/internal/usecase"
)

// BillPaymentHandler handles bill payment HTTP requests.
type BillPaymentHandler struct {
	billPaymentUC *usecase.BillPaymentUseCase
	retrier       Retrier
}

// NewBillPaymentHandler creates a new BillPaymentHandler.
func NewBillPaymentHandler(billPaymentUC *usecase.BillPaymentUseCase, retrier Retrier) *BillPaymentHandler {
	return &BillPaymentHandler{billPaymentUC: billPaymentUC, retrier: retrier}
}

// Pay settles a credit card bill from an account of the same budget.
// Paying an already-paid bill succeeds without mutating anything.
func (h *BillPaymentHandler) Pay(w http.ResponseWriter, r *http.Request) {
	billID := chi.URLParam(r, "id")

	var req dto.PayBillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	var op *domain.BillPaymentOperation
	err := h.retrier.Retry(r.Context(), func() error {
		var opErr error
		op, opErr = h.billPaymentUC.PayBill(r.Context(), req.ToUseCaseInput(billID))
		return opErr
	})
	if err != nil {
		metrics.BillPaymentErrors.WithLabelValues(errorTypeLabel(err)).Inc()
		writeDomainError(w, err, "failed to pay bill")
		return
	}

	metrics.BillsPaid.Inc()
	metrics.BillPaymentDuration.Observe(time.Since(start).Seconds())

	writeJSON(w, http.StatusOK, dto.BillPaymentFromDomain(op))
}
