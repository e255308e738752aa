package usecase

import "time"

const (
	// DefaultPageSize applies when a list request carries no limit.
	DefaultPageSize = 20

	// MaxPageSize caps a single list request.
	MaxPageSize = 100

	// IdempotencyKeyTTL is how long idempotency keys are cached.
	IdempotencyKeyTTL = 24 * time.Hour
)

func clampLimit(limit int) int {
	if limit <= 0 {
		return DefaultPageSize
	}
	if limit > MaxPageSize {
		return MaxPageSize
	}
	return limit
}
