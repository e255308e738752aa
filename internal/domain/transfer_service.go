package domain

import (
	"fmt"
	"time"
)

// TransferOperation is the outcome of a successful transfer: a debit
// transaction on the source account and a credit transaction on the
// destination. The accounts themselves carry the transferred events in
// their logs.
type TransferOperation struct {
	Debit  *Transaction
	Credit *Transaction
}

// TransferBetweenAccountsService moves money between two accounts of
// the same budget. All preconditions are checked before any aggregate
// is touched, so a failure never leaves a half-applied transfer.
type TransferBetweenAccountsService struct{}

// NewTransferBetweenAccountsService creates the service.
func NewTransferBetweenAccountsService() *TransferBetweenAccountsService {
	return &TransferBetweenAccountsService{}
}

// CreateTransferOperation debits from, credits to, and returns the pair
// of transfer transactions recording both sides.
func (s *TransferBetweenAccountsService) CreateTransferOperation(
	from, to *Account,
	amount Money,
	transferCategoryID EntityID,
) (*TransferOperation, error) {
	if from.IsDeleted() {
		return nil, NewAlreadyDeletedError("Account", from.ID())
	}
	if to.IsDeleted() {
		return nil, NewAlreadyDeletedError("Account", to.ID())
	}
	if !from.BudgetID().Equal(to.BudgetID()) {
		return nil, ErrAccountsFromDifferentBudgets
	}
	if from.ID().Equal(to.ID()) {
		return nil, ErrSameAccountTransfer
	}
	if err := from.ValidateDebit(amount); err != nil {
		return nil, err
	}

	now := time.Now().UTC()

	debitRes := NewTransaction(NewTransactionInput{
		Description:     fmt.Sprintf("Transfer to %s", to.Name()),
		Amount:          float64(amount.Cents()),
		Type:            string(TransactionTypeTransfer),
		Status:          string(TransactionStatusCompleted),
		TransactionDate: now,
		CategoryID:      transferCategoryID.String(),
		BudgetID:        from.BudgetID().String(),
	})
	if debitRes.HasError() {
		return nil, debitRes.Err()
	}

	creditRes := NewTransaction(NewTransactionInput{
		Description:     fmt.Sprintf("Transfer from %s", from.Name()),
		Amount:          float64(amount.Cents()),
		Type:            string(TransactionTypeTransfer),
		Status:          string(TransactionStatusCompleted),
		TransactionDate: now,
		CategoryID:      transferCategoryID.String(),
		BudgetID:        to.BudgetID().String(),
	})
	if creditRes.HasError() {
		return nil, creditRes.Err()
	}

	if err := from.Debit(amount); err != nil {
		return nil, err
	}
	if err := to.Credit(amount); err != nil {
		return nil, err
	}

	from.record(&AmountTransferredEvent{
		BaseEvent:     newBaseEvent(from.ID(), EventTypeAmountTransferred),
		FromAccountID: from.ID().String(),
		ToAccountID:   to.ID().String(),
		AmountCents:   amount.Cents(),
		Direction:     TransferDirectionOut,
	})
	to.record(&AmountTransferredEvent{
		BaseEvent:     newBaseEvent(to.ID(), EventTypeAmountTransferred),
		FromAccountID: from.ID().String(),
		ToAccountID:   to.ID().String(),
		AmountCents:   amount.Cents(),
		Direction:     TransferDirectionIn,
	})

	return &TransferOperation{
		Debit:  debitRes.Value(),
		Credit: creditRes.Value(),
	}, nil
}
