package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/infrastructure/metrics"
	"github.com/iho/budgeteer/internal/usecase"
)

// Retrier retries an operation on transient database failures such as
// deadlocks and serialization conflicts.
type Retrier interface {
	Retry(ctx context.Context, operation func() error) error
}

// TransferHandler handles transfer-related HTTP requests.
type TransferHandler struct {
	transferUC *usecase.TransferUseCase
	retrier    Retrier
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferUC *usecase.TransferUseCase, retrier Retrier) *TransferHandler {
	return &TransferHandler{transferUC: transferUC, retrier: retrier}
}

// Create moves money between two accounts of the same budget.
func (h *TransferHandler) Create(w http.ResponseWriter, r *http.Request) {
	var req dto.CreateTransferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body", err.Error())
		return
	}

	start := time.Now()

	var op *domain.TransferOperation
	err := h.retrier.Retry(r.Context(), func() error {
		var opErr error
		op, opErr = h.transferUC.Transfer(r.Context(), req.ToUseCaseInput())
		return opErr
	})
	if err != nil {
		metrics.TransferErrors.WithLabelValues(errorTypeLabel(err)).Inc()
		writeDomainError(w, err, "failed to create transfer")
		return
	}

	metrics.TransfersCreated.Inc()
	metrics.TransferDuration.Observe(time.Since(start).Seconds())
	metrics.TransferAmount.Observe(req.Amount)

	writeJSON(w, http.StatusCreated, dto.TransferFromDomain(op))
}
