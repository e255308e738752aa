package handler

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/domain"
)

func TestParseIntQuery(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/accounts?limit=50", nil)
	if got := parseIntQuery(req, "limit", 10); got != 50 {
		t.Fatalf("expected limit=50, got %d", got)
	}

	req = httptest.NewRequest(http.MethodGet, "/accounts?limit=invalid", nil)
	if got := parseIntQuery(req, "limit", 10); got != 10 {
		t.Fatalf("expected fallback to default, got %d", got)
	}

	req.URL = &url.URL{RawQuery: ""}
	if got := parseIntQuery(req, "limit", 25); got != 25 {
		t.Fatalf("expected default when missing, got %d", got)
	}
}

func TestStatusForKind(t *testing.T) {
	tests := []struct {
		name     string
		kind     domain.ErrorKind
		expected int
	}{
		{"not found", domain.KindNotFound, http.StatusNotFound},
		{"business rule", domain.KindBusinessRule, http.StatusConflict},
		{"already deleted", domain.KindAlreadyDeleted, http.StatusConflict},
		{"invalid id", domain.KindInvalidID, http.StatusBadRequest},
		{"invalid name", domain.KindInvalidName, http.StatusBadRequest},
		{"invalid money", domain.KindInvalidMoney, http.StatusBadRequest},
		{"invalid day", domain.KindInvalidDay, http.StatusBadRequest},
		{"invalid value", domain.KindInvalidValue, http.StatusBadRequest},
		{"unknown kind", domain.ErrorKind("99"), http.StatusInternalServerError},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			if got := statusForKind(tt.kind); got != tt.expected {
				t.Fatalf("expected %d, got %d", tt.expected, got)
			}
		})
	}
}

func TestWriteDomainError(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, domain.ErrInsufficientBalance, "failed to create transfer")

	if rec.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Error != "failed to create transfer" {
		t.Fatalf("unexpected error field: %q", resp.Error)
	}
	if resp.Code != "INSUFFICIENT_BALANCE" {
		t.Fatalf("unexpected code: %q", resp.Code)
	}
}

func TestWriteDomainError_Wrapped(t *testing.T) {
	rec := httptest.NewRecorder()
	wrapped := fmt.Errorf("transfer: %w", domain.NewNotFoundError("Account"))
	writeDomainError(rec, wrapped, "failed to create transfer")

	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
}

func TestWriteDomainError_NonDomain(t *testing.T) {
	rec := httptest.NewRecorder()
	writeDomainError(rec, errors.New("connection refused"), "failed to create transfer")

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}

	var resp dto.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if resp.Code != "" {
		t.Fatalf("expected no code for non-domain errors, got %q", resp.Code)
	}
}

func TestErrorTypeLabel(t *testing.T) {
	if got := errorTypeLabel(domain.ErrSameAccountTransfer); got != "SAME_ACCOUNT_TRANSFER" {
		t.Fatalf("expected domain code label, got %q", got)
	}
	if got := errorTypeLabel(errors.New("boom")); got != "internal" {
		t.Fatalf("expected internal label, got %q", got)
	}
}

func TestWriteJSON(t *testing.T) {
	rec := httptest.NewRecorder()
	writeJSON(rec, http.StatusCreated, map[string]string{"id": "abc"})

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Fatalf("unexpected content type %q", ct)
	}

	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("failed to decode response: %v", err)
	}
	if body["id"] != "abc" {
		t.Fatalf("unexpected body: %v", body)
	}
}
