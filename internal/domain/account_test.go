package domain

import (
	"errors"
	"testing"
	"time"
)

func validAccountInput() NewAccountInput {
	return NewAccountInput{
		Name:           "Main checking",
		Type:           string(AccountTypeChecking),
		BudgetID:       NewEntityID().String(),
		InitialBalance: 10000,
	}
}

func TestNewAccount(t *testing.T) {
	res := NewAccount(validAccountInput())
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}

	a := res.Value()
	if a.Balance().Cents() != 10000 {
		t.Errorf("expected balance 10000, got %d", a.Balance().Cents())
	}
	if a.IsDeleted() {
		t.Error("new account should not be deleted")
	}

	events := a.DrainEvents()
	if len(events) != 1 || events[0].Type() != EventTypeAccountCreated {
		t.Errorf("expected one created event, got %v", events)
	}
	if len(a.DrainEvents()) != 0 {
		t.Error("drain should clear the event log")
	}
}

func TestNewAccount_AccumulatesAllFieldErrors(t *testing.T) {
	res := NewAccount(NewAccountInput{
		Name:           "",
		Type:           "PIGGY_BANK",
		BudgetID:       "nope",
		InitialBalance: 10.5,
	})

	if !res.HasError() {
		t.Fatal("expected errors")
	}
	if len(res.Errors()) != 4 {
		t.Fatalf("expected 4 errors, got %d: %v", len(res.Errors()), res.Errors())
	}
	if res.Value() != nil {
		t.Error("no account should be returned on failure")
	}
}

func TestAccount_ValidateDebit(t *testing.T) {
	tests := []struct {
		name         string
		accountType  AccountType
		balanceCents int64
		debitCents   int64
		expectError  bool
	}{
		{name: "savings cannot go negative", accountType: AccountTypeSavings, balanceCents: 100, debitCents: 150, expectError: true},
		{name: "savings exact balance", accountType: AccountTypeSavings, balanceCents: 100, debitCents: 100},
		{name: "checking may overdraft", accountType: AccountTypeChecking, balanceCents: 100, debitCents: 150},
		{name: "wallet may go negative", accountType: AccountTypeDigitalWallet, balanceCents: 0, debitCents: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			a := RestoreAccount(RestoredAccount{
				ID:           NewEntityID().String(),
				Name:         "Test",
				Type:         string(tt.accountType),
				BudgetID:     NewEntityID().String(),
				BalanceCents: tt.balanceCents,
				CreatedAt:    time.Now().UTC(),
				UpdatedAt:    time.Now().UTC(),
			})

			amount, _ := MoneyFromCents(tt.debitCents)
			err := a.ValidateDebit(amount)

			if tt.expectError && !errors.Is(err, ErrInsufficientBalance) {
				t.Errorf("expected insufficient balance, got %v", err)
			}
			if !tt.expectError && err != nil {
				t.Errorf("unexpected error: %v", err)
			}
		})
	}
}

func TestAccount_DebitCredit(t *testing.T) {
	res := NewAccount(validAccountInput())
	a := res.Value()

	amount, _ := MoneyFromCents(2500)
	if err := a.Debit(amount); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Balance().Cents() != 7500 {
		t.Errorf("expected 7500, got %d", a.Balance().Cents())
	}

	if err := a.Credit(amount); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Balance().Cents() != 10000 {
		t.Errorf("expected 10000, got %d", a.Balance().Cents())
	}
}

func TestAccount_Reconcile(t *testing.T) {
	a := NewAccount(validAccountInput()).Value()
	a.DrainEvents()

	if err := a.Reconcile(4200); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if a.Balance().Cents() != 4200 {
		t.Errorf("expected 4200, got %d", a.Balance().Cents())
	}

	events := a.DrainEvents()
	if len(events) != 1 {
		t.Fatalf("expected 1 event, got %d", len(events))
	}
	reconciled, ok := events[0].(*AccountReconciledEvent)
	if !ok {
		t.Fatalf("expected AccountReconciledEvent, got %T", events[0])
	}
	if reconciled.PreviousBalanceCents != 10000 || reconciled.CurrentBalanceCents != 4200 {
		t.Errorf("unexpected event payload: %+v", reconciled)
	}
}

func TestAccount_DeleteTwice(t *testing.T) {
	a := NewAccount(validAccountInput()).Value()

	if err := a.Delete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !a.IsDeleted() {
		t.Error("account should be deleted")
	}

	err := a.Delete()
	var domainErr *Error
	if !errors.As(err, &domainErr) || domainErr.Kind != KindAlreadyDeleted {
		t.Errorf("expected already deleted error, got %v", err)
	}
}

func TestAccount_MutationAfterDelete(t *testing.T) {
	a := NewAccount(validAccountInput()).Value()
	_ = a.Delete()

	amount, _ := MoneyFromCents(100)

	if err := a.UpdateName("Renamed"); !errors.Is(err, NewAlreadyDeletedError("Account", a.ID())) {
		t.Errorf("expected already deleted error, got %v", err)
	}
	if err := a.Credit(amount); err == nil {
		t.Error("credit after delete should fail")
	}
	if err := a.Debit(amount); err == nil {
		t.Error("debit after delete should fail")
	}
}
