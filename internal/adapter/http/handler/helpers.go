package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/iho/budgeteer/internal/adapter/http/dto"
	"github.com/iho/budgeteer/internal/domain"
)

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// writeError writes an error response.
func writeError(w http.ResponseWriter, status int, message, details string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Message: details,
	})
}

// writeDomainError writes an error response carrying the domain error
// code, with the HTTP status derived from the error kind.
func writeDomainError(w http.ResponseWriter, err error, message string) {
	var domainErr *domain.Error
	if !errors.As(err, &domainErr) {
		writeError(w, http.StatusInternalServerError, message, err.Error())
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusForKind(domainErr.Kind))
	json.NewEncoder(w).Encode(dto.ErrorResponse{
		Error:   message,
		Code:    domainErr.Code,
		Message: err.Error(),
	})
}

// statusForKind maps domain error kinds to HTTP status codes.
func statusForKind(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindBusinessRule, domain.KindAlreadyDeleted:
		return http.StatusConflict
	case domain.KindInvalidID, domain.KindInvalidName, domain.KindInvalidMoney,
		domain.KindInvalidDay, domain.KindInvalidValue:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

// errorTypeLabel returns the domain error code for metric labels, or
// "internal" for infrastructure failures.
func errorTypeLabel(err error) string {
	var domainErr *domain.Error
	if errors.As(err, &domainErr) {
		return domainErr.Code
	}
	return "internal"
}

// parseIntQuery parses an integer query parameter with a default value.
func parseIntQuery(r *http.Request, key string, defaultValue int) int {
	val := r.URL.Query().Get(key)
	if val == "" {
		return defaultValue
	}
	i, err := strconv.Atoi(val)
	if err != nil {
		return defaultValue
	}
	return i
}
