package domain

import (
	"errors"
	"testing"
	"time"
)

func validTransactionInput() NewTransactionInput {
	return NewTransactionInput{
		Description:     "Groceries at the market",
		Amount:          8550,
		Type:            "EXPENSE",
		TransactionDate: time.Now().UTC().Add(48 * time.Hour),
		CategoryID:      NewEntityID().String(),
		BudgetID:        NewEntityID().String(),
	}
}

func TestNewTransaction(t *testing.T) {
	res := NewTransaction(validTransactionInput())
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}

	tx := res.Value()
	if tx.Amount().Cents() != 8550 {
		t.Errorf("expected amount 8550, got %d", tx.Amount().Cents())
	}
	if tx.CreditCardID() != nil {
		t.Error("expected nil credit card reference")
	}

	events := tx.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	if events[0].Type() != EventTypeTransactionCreated {
		t.Errorf("expected %s, got %s", EventTypeTransactionCreated, events[0].Type())
	}
}

func TestNewTransaction_InvalidFields(t *testing.T) {
	res := NewTransaction(NewTransactionInput{
		Description:  "ab",
		Amount:       -5,
		Type:         "WIRE",
		CategoryID:   "",
		BudgetID:     "nope",
		CreditCardID: "also-nope",
	})

	// description, amount, type, date, category_id, budget_id,
	// credit_card_id.
	if len(res.Errors()) != 7 {
		t.Fatalf("expected 7 errors, got %d: %v", len(res.Errors()), res.Errors())
	}
	if res.Value() != nil {
		t.Error("expected nil value on failure")
	}
}

func TestNewTransaction_StatusDerivation(t *testing.T) {
	now := time.Now().UTC()

	tests := []struct {
		name string
		date time.Time
		want TransactionStatus
	}{
		{"yesterday is overdue", now.Add(-24 * time.Hour), TransactionStatusOverdue},
		{"today is scheduled", now, TransactionStatusScheduled},
		{"tomorrow is scheduled", now.Add(24 * time.Hour), TransactionStatusScheduled},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := validTransactionInput()
			input.TransactionDate = tt.date

			tx := NewTransaction(input).Value()

			if tx.Status() != tt.want {
				t.Errorf("expected status %s, got %s", tt.want, tx.Status())
			}
		})
	}
}

func TestNewTransaction_ExplicitStatusWins(t *testing.T) {
	input := validTransactionInput()
	input.TransactionDate = time.Now().UTC().Add(-72 * time.Hour)
	input.Status = "COMPLETED"

	tx := NewTransaction(input).Value()

	if tx.Status() != TransactionStatusCompleted {
		t.Errorf("expected status COMPLETED, got %s", tx.Status())
	}
}

func TestNewTransaction_WithCreditCard(t *testing.T) {
	cardID := NewEntityID()
	input := validTransactionInput()
	input.CreditCardID = cardID.String()

	tx := NewTransaction(input).Value()

	if tx.CreditCardID() == nil || !tx.CreditCardID().Equal(cardID) {
		t.Errorf("expected credit card %s, got %v", cardID, tx.CreditCardID())
	}
}

func TestTransaction_Complete(t *testing.T) {
	tx := NewTransaction(validTransactionInput()).Value()
	tx.DrainEvents()

	if err := tx.Complete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	// Repeat call is a no-op and records nothing new.
	if err := tx.Complete(); err != nil {
		t.Fatalf("unexpected error on repeat call: %v", err)
	}

	if tx.Status() != TransactionStatusCompleted {
		t.Errorf("expected status COMPLETED, got %s", tx.Status())
	}
	if events := tx.DrainEvents(); len(events) != 1 {
		t.Errorf("expected 1 event across both calls, got %d", len(events))
	}
}

func TestTransaction_CancelCompletedFails(t *testing.T) {
	tx := NewTransaction(validTransactionInput()).Value()
	if err := tx.Complete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tx.Cancel(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestTransaction_CompleteCancelledFails(t *testing.T) {
	tx := NewTransaction(validTransactionInput()).Value()
	if err := tx.Cancel(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if err := tx.Complete(); !errors.Is(err, ErrInvalidStatusTransition) {
		t.Errorf("expected ErrInvalidStatusTransition, got %v", err)
	}
}

func TestTransaction_MarkAsOverdue(t *testing.T) {
	t.Run("date not yet passed", func(t *testing.T) {
		tx := NewTransaction(validTransactionInput()).Value()

		if err := tx.MarkAsOverdue(); !errors.Is(err, ErrTransactionNotPastDue) {
			t.Errorf("expected ErrTransactionNotPastDue, got %v", err)
		}
	})

	t.Run("past scheduled transaction", func(t *testing.T) {
		tx := RestoreTransaction(RestoredTransaction{
			ID:              NewEntityID().String(),
			Description:     "Rent",
			AmountCents:     120000,
			Type:            string(TransactionTypeExpense),
			Status:          string(TransactionStatusScheduled),
			TransactionDate: time.Now().UTC().Add(-48 * time.Hour),
			CategoryID:      NewEntityID().String(),
			BudgetID:        NewEntityID().String(),
		})

		if err := tx.MarkAsOverdue(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if tx.Status() != TransactionStatusOverdue {
			t.Errorf("expected status OVERDUE, got %s", tx.Status())
		}

		// Second call is a no-op.
		if err := tx.MarkAsOverdue(); err != nil {
			t.Fatalf("unexpected error on repeat call: %v", err)
		}
	})
}

func TestTransaction_Delete(t *testing.T) {
	tx := NewTransaction(validTransactionInput()).Value()

	if err := tx.Delete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := tx.Delete(); err == nil {
		t.Error("expected error on second delete")
	}
	if err := tx.Complete(); err == nil {
		t.Error("expected error when completing a deleted transaction")
	}
}
