package domain

import (
	"fmt"
	"time"
)

// BillPaymentOperation is the outcome of a bill payment. AlreadyPaid
// marks the idempotent no-op case: the bill was paid before and nothing
// was mutated.
type BillPaymentOperation struct {
	Payment     *Transaction
	AlreadyPaid bool
}

// PayCreditCardBillService settles a credit card bill from an account
// of the same budget.
type PayCreditCardBillService struct{}

// NewPayCreditCardBillService creates the service.
func NewPayCreditCardBillService() *PayCreditCardBillService {
	return &PayCreditCardBillService{}
}

// CreatePaymentOperation debits account by amount, marks the bill paid
// and returns the payment transaction. Paying an already-paid bill
// succeeds without mutating anything.
func (s *PayCreditCardBillService) CreatePaymentOperation(
	bill *CreditCardBill,
	account *Account,
	budgetID EntityID,
	amount Money,
	paidBy EntityID,
	paidAt time.Time,
	paymentCategoryID EntityID,
) (*BillPaymentOperation, error) {
	if bill.IsDeleted() {
		return nil, NewAlreadyDeletedError("CreditCardBill", bill.ID())
	}
	if bill.Status() == BillStatusPaid {
		return &BillPaymentOperation{AlreadyPaid: true}, nil
	}
	if !account.BudgetID().Equal(budgetID) {
		return nil, NewNotFoundError("Account")
	}
	if err := account.ValidateDebit(amount); err != nil {
		return nil, err
	}

	paymentRes := NewTransaction(NewTransactionInput{
		Description:     fmt.Sprintf("Credit card bill payment %s", bill.ID()),
		Amount:          float64(amount.Cents()),
		Type:            string(TransactionTypeExpense),
		Status:          string(TransactionStatusCompleted),
		TransactionDate: paidAt,
		CategoryID:      paymentCategoryID.String(),
		BudgetID:        budgetID.String(),
		CreditCardID:    bill.CreditCardID().String(),
	})
	if paymentRes.HasError() {
		return nil, paymentRes.Err()
	}

	if err := account.Debit(amount); err != nil {
		return nil, err
	}
	if err := bill.MarkAsPaid(paidBy, paidAt); err != nil {
		return nil, err
	}

	return &BillPaymentOperation{Payment: paymentRes.Value()}, nil
}
