package domain

import "fmt"

// ErrorKind classifies a domain error for dispatch (e.g. HTTP status
// mapping in the adapter layer). The set is closed.
type ErrorKind string

const (
	KindInvalidID      ErrorKind = "INVALID_ID"
	KindInvalidName    ErrorKind = "INVALID_NAME"
	KindInvalidMoney   ErrorKind = "INVALID_MONEY"
	KindInvalidDay     ErrorKind = "INVALID_DAY"
	KindInvalidValue   ErrorKind = "INVALID_VALUE"
	KindBusinessRule   ErrorKind = "BUSINESS_RULE"
	KindNotFound       ErrorKind = "NOT_FOUND"
	KindAlreadyDeleted ErrorKind = "ALREADY_DELETED"
)

// Error is the single domain error type. Concrete violations are
// distinguished by Code; Kind groups codes into families. Two errors
// match under errors.Is when their codes are equal, so predeclared
// rule errors double as sentinels.
type Error struct {
	Kind    ErrorKind
	Code    string
	Field   string
	Message string
	Value   any
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Message)
	}
	return e.Message
}

// Is matches target by code, enabling errors.Is against the predeclared
// rule errors regardless of the Field/Value payload.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// Business-rule violations.
var (
	ErrAccountsFromDifferentBudgets = &Error{Kind: KindBusinessRule, Code: "ACCOUNTS_FROM_DIFFERENT_BUDGETS", Message: "accounts belong to different budgets"}
	ErrSameAccountTransfer          = &Error{Kind: KindBusinessRule, Code: "SAME_ACCOUNT_TRANSFER", Message: "cannot transfer to the same account"}
	ErrInsufficientBalance          = &Error{Kind: KindBusinessRule, Code: "INSUFFICIENT_BALANCE", Message: "account balance cannot cover the requested amount"}
	ErrCreditCardBillNotPaid        = &Error{Kind: KindBusinessRule, Code: "CREDIT_CARD_BILL_NOT_PAID", Message: "credit card bill is not paid"}
	ErrReopeningPeriodExpired       = &Error{Kind: KindBusinessRule, Code: "REOPENING_PERIOD_EXPIRED", Message: "bill can only be reopened within 30 days of payment"}
	ErrGoalAccountMismatch          = &Error{Kind: KindBusinessRule, Code: "GOAL_ACCOUNT_MISMATCH", Message: "goal and source account belong to different budgets"}
	ErrGoalAmountExceedsTotal       = &Error{Kind: KindBusinessRule, Code: "GOAL_AMOUNT_EXCEEDS_TOTAL", Message: "accumulated amount would exceed the goal total"}
	ErrGoalAmountUnavailable        = &Error{Kind: KindBusinessRule, Code: "GOAL_AMOUNT_UNAVAILABLE", Message: "cannot remove more than the accumulated amount"}
	ErrOwnerCannotBeRemoved         = &Error{Kind: KindBusinessRule, Code: "OWNER_CANNOT_BE_REMOVED", Message: "budget owner cannot be removed from participants"}
	ErrBillPeriodOutOfOrder         = &Error{Kind: KindBusinessRule, Code: "BILL_PERIOD_OUT_OF_ORDER", Message: "closing date must precede due date"}
	ErrBillNotPastDue               = &Error{Kind: KindBusinessRule, Code: "BILL_NOT_PAST_DUE", Message: "bill due date has not passed"}
	ErrTransactionNotPastDue        = &Error{Kind: KindBusinessRule, Code: "TRANSACTION_NOT_PAST_DUE", Message: "transaction date is not in the past"}
	ErrEnvelopeExceeded             = &Error{Kind: KindBusinessRule, Code: "ENVELOPE_EXCEEDED", Message: "spending would exceed the envelope allocation"}
	ErrEnvelopeReleaseUnavailable   = &Error{Kind: KindBusinessRule, Code: "ENVELOPE_RELEASE_UNAVAILABLE", Message: "cannot release more than the spent amount"}
	ErrInvalidStatusTransition      = &Error{Kind: KindBusinessRule, Code: "INVALID_STATUS_TRANSITION", Message: "status transition is not allowed"}
	ErrCategoryInUse                = &Error{Kind: KindBusinessRule, Code: "CATEGORY_IN_USE", Message: "category is referenced by existing transactions"}
)

// NewInvalidIDError reports a value that is not a v4 UUID.
func NewInvalidIDError(field string, value any) *Error {
	return &Error{
		Kind:    KindInvalidID,
		Code:    "INVALID_ID",
		Field:   field,
		Message: "must be a valid v4 UUID",
		Value:   value,
	}
}

// NewInvalidNameError reports a name outside its length bounds.
func NewInvalidNameError(field string, value any, minLen, maxLen int) *Error {
	return &Error{
		Kind:    KindInvalidName,
		Code:    "INVALID_NAME",
		Field:   field,
		Message: fmt.Sprintf("must be between %d and %d characters", minLen, maxLen),
		Value:   value,
	}
}

// NewInvalidMoneyError reports a monetary value that is not a valid
// amount of minor units.
func NewInvalidMoneyError(field string, value any) *Error {
	return &Error{
		Kind:    KindInvalidMoney,
		Code:    "INVALID_MONEY",
		Field:   field,
		Message: "must be a finite, whole amount of minor currency units",
		Value:   value,
	}
}

// NewInvalidDayError reports a day outside the 1-31 range.
func NewInvalidDayError(field string, value any) *Error {
	return &Error{
		Kind:    KindInvalidDay,
		Code:    "INVALID_DAY",
		Field:   field,
		Message: "must be a day of month between 1 and 31",
		Value:   value,
	}
}

// NewInvalidValueError reports a value outside a closed set or an
// otherwise malformed field.
func NewInvalidValueError(field string, value any, message string) *Error {
	return &Error{
		Kind:    KindInvalidValue,
		Code:    "INVALID_VALUE",
		Field:   field,
		Message: message,
		Value:   value,
	}
}

// NewNotFoundError reports a missing entity.
func NewNotFoundError(entity string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Code:    "NOT_FOUND",
		Field:   entity,
		Message: fmt.Sprintf("%s not found", entity),
	}
}

// NewAlreadyDeletedError reports a mutation attempted on a soft-deleted
// entity, double deletion included.
func NewAlreadyDeletedError(entity string, id EntityID) *Error {
	return &Error{
		Kind:    KindAlreadyDeleted,
		Code:    "ALREADY_DELETED",
		Field:   entity,
		Message: fmt.Sprintf("%s is already deleted", entity),
		Value:   id.String(),
	}
}
