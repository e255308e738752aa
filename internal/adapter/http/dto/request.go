package dto

import (
	"time"

	"github.com/iho/budgeteer/internal/usecase"
)

// Monetary request fields carry whole amounts of minor currency units
// (cents). Fractional values are rejected by the domain layer.

// CreateBudgetRequest represents a request to create a budget.
type CreateBudgetRequest struct {
	Name           string   `json:"name"`
	Type           string   `json:"type,omitempty"`
	OwnerID        string   `json:"owner_id"`
	ParticipantIDs []string `json:"participant_ids,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateBudgetRequest) ToUseCaseInput() usecase.CreateBudgetInput {
	return usecase.CreateBudgetInput{
		Name:           r.Name,
		Type:           r.Type,
		OwnerID:        r.OwnerID,
		ParticipantIDs: r.ParticipantIDs,
	}
}

// RenameRequest carries the new name for rename endpoints.
type RenameRequest struct {
	Name string `json:"name"`
}

// ParticipantRequest identifies a budget participant.
type ParticipantRequest struct {
	ParticipantID string `json:"participant_id"`
}

// CreateAccountRequest represents a request to create an account.
type CreateAccountRequest struct {
	Name           string  `json:"name"`
	Type           string  `json:"type"`
	BudgetID       string  `json:"budget_id"`
	InitialBalance float64 `json:"initial_balance_cents"`
	Description    string  `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateAccountRequest) ToUseCaseInput() usecase.CreateAccountInput {
	return usecase.CreateAccountInput{
		Name:           r.Name,
		Type:           r.Type,
		BudgetID:       r.BudgetID,
		InitialBalance: r.InitialBalance,
		Description:    r.Description,
	}
}

// UpdateAccountRequest represents a partial account update. Omitted
// fields are left untouched.
type UpdateAccountRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateAccountRequest) ToUseCaseInput(id string) usecase.UpdateAccountInput {
	return usecase.UpdateAccountInput{
		ID:          id,
		Name:        r.Name,
		Description: r.Description,
	}
}

// ReconcileAccountRequest carries the observed real-world balance.
type ReconcileAccountRequest struct {
	RealBalance float64 `json:"real_balance_cents"`
}

// CreateCategoryRequest represents a request to create a category.
type CreateCategoryRequest struct {
	Name     string `json:"name"`
	Type     string `json:"type"`
	BudgetID string `json:"budget_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCategoryRequest) ToUseCaseInput() usecase.CreateCategoryInput {
	return usecase.CreateCategoryInput{
		Name:     r.Name,
		Type:     r.Type,
		BudgetID: r.BudgetID,
	}
}

// CreateCreditCardRequest represents a request to create a credit card.
type CreateCreditCardRequest struct {
	Name       string  `json:"name"`
	Limit      float64 `json:"limit_cents"`
	ClosingDay int     `json:"closing_day"`
	DueDay     int     `json:"due_day"`
	BudgetID   string  `json:"budget_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateCreditCardRequest) ToUseCaseInput() usecase.CreateCreditCardInput {
	return usecase.CreateCreditCardInput{
		Name:       r.Name,
		Limit:      r.Limit,
		ClosingDay: r.ClosingDay,
		DueDay:     r.DueDay,
		BudgetID:   r.BudgetID,
	}
}

// UpdateCreditCardRequest represents a partial credit card update.
// Closing and due day must be supplied together.
type UpdateCreditCardRequest struct {
	Name       *string  `json:"name,omitempty"`
	Limit      *float64 `json:"limit_cents,omitempty"`
	ClosingDay *int     `json:"closing_day,omitempty"`
	DueDay     *int     `json:"due_day,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *UpdateCreditCardRequest) ToUseCaseInput(id string) usecase.UpdateCreditCardInput {
	return usecase.UpdateCreditCardInput{
		ID:         id,
		Name:       r.Name,
		Limit:      r.Limit,
		ClosingDay: r.ClosingDay,
		DueDay:     r.DueDay,
	}
}

// BillChargeRequest carries a card purchase amount.
type BillChargeRequest struct {
	Amount float64 `json:"amount_cents"`
}

// ReopenBillRequest carries the justification for reopening a paid
// bill.
type ReopenBillRequest struct {
	Justification string `json:"justification"`
}

// PayBillRequest represents a request to pay a credit card bill.
type PayBillRequest struct {
	AccountID  string  `json:"account_id"`
	BudgetID   string  `json:"budget_id"`
	Amount     float64 `json:"amount_cents"`
	PaidBy     string  `json:"paid_by"`
	CategoryID string  `json:"category_id"`
}

// ToUseCaseInput converts to use case input.
func (r *PayBillRequest) ToUseCaseInput(billID string) usecase.PayBillInput {
	return usecase.PayBillInput{
		BillID:     billID,
		AccountID:  r.AccountID,
		BudgetID:   r.BudgetID,
		Amount:     r.Amount,
		PaidBy:     r.PaidBy,
		CategoryID: r.CategoryID,
	}
}

// CreateTransactionRequest represents a request to create a
// transaction.
type CreateTransactionRequest struct {
	Description     string    `json:"description"`
	Amount          float64   `json:"amount_cents"`
	Type            string    `json:"type"`
	Status          string    `json:"status,omitempty"`
	TransactionDate time.Time `json:"transaction_date"`
	CategoryID      string    `json:"category_id"`
	BudgetID        string    `json:"budget_id"`
	CreditCardID    string    `json:"credit_card_id,omitempty"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransactionRequest) ToUseCaseInput() usecase.CreateTransactionInput {
	return usecase.CreateTransactionInput{
		Description:     r.Description,
		Amount:          r.Amount,
		Type:            r.Type,
		Status:          r.Status,
		TransactionDate: r.TransactionDate,
		CategoryID:      r.CategoryID,
		BudgetID:        r.BudgetID,
		CreditCardID:    r.CreditCardID,
	}
}

// CreateTransferRequest represents a request to move money between two
// accounts of the same budget.
type CreateTransferRequest struct {
	FromAccountID string  `json:"from_account_id"`
	ToAccountID   string  `json:"to_account_id"`
	Amount        float64 `json:"amount_cents"`
	CategoryID    string  `json:"category_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateTransferRequest) ToUseCaseInput() usecase.TransferInput {
	return usecase.TransferInput{
		FromAccountID: r.FromAccountID,
		ToAccountID:   r.ToAccountID,
		Amount:        r.Amount,
		CategoryID:    r.CategoryID,
	}
}

// CreateGoalRequest represents a request to create a goal.
type CreateGoalRequest struct {
	Name            string     `json:"name"`
	TotalAmount     float64    `json:"total_amount_cents"`
	Deadline        *time.Time `json:"deadline,omitempty"`
	BudgetID        string     `json:"budget_id"`
	SourceAccountID string     `json:"source_account_id"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateGoalRequest) ToUseCaseInput() usecase.CreateGoalInput {
	return usecase.CreateGoalInput{
		Name:            r.Name,
		TotalAmount:     r.TotalAmount,
		Deadline:        r.Deadline,
		BudgetID:        r.BudgetID,
		SourceAccountID: r.SourceAccountID,
	}
}

// GoalAmountRequest carries an amount to reserve toward or release
// from a goal.
type GoalAmountRequest struct {
	Amount float64 `json:"amount_cents"`
}

// CreateEnvelopeRequest represents a request to create an envelope.
type CreateEnvelopeRequest struct {
	Name       string  `json:"name"`
	BudgetID   string  `json:"budget_id"`
	CategoryID string  `json:"category_id"`
	Month      int     `json:"month"`
	Year       int     `json:"year"`
	Allocation float64 `json:"allocation_cents"`
}

// ToUseCaseInput converts to use case input.
func (r *CreateEnvelopeRequest) ToUseCaseInput() usecase.CreateEnvelopeInput {
	return usecase.CreateEnvelopeInput{
		Name:       r.Name,
		BudgetID:   r.BudgetID,
		CategoryID: r.CategoryID,
		Month:      r.Month,
		Year:       r.Year,
		Allocation: r.Allocation,
	}
}

// EnvelopeAmountRequest carries an amount for envelope allocation and
// spending endpoints.
type EnvelopeAmountRequest struct {
	Amount float64 `json:"amount_cents"`
}
