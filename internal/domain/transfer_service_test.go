package domain

import (
	"errors"
	"testing"
)

func accountInBudget(t *testing.T, name string, accountType AccountType, budgetID EntityID, balanceCents int64) *Account {
	t.Helper()

	res := NewAccount(NewAccountInput{
		Name:           name,
		Type:           string(accountType),
		BudgetID:       budgetID.String(),
		InitialBalance: float64(balanceCents),
	})
	if res.HasError() {
		t.Fatalf("unexpected errors building account: %v", res.Errors())
	}

	a := res.Value()
	a.DrainEvents()
	return a
}

func TestTransferService_Success(t *testing.T) {
	budgetID := NewEntityID()
	from := accountInBudget(t, "Checking", AccountTypeChecking, budgetID, 50000)
	to := accountInBudget(t, "Wallet", AccountTypePhysicalWallet, budgetID, 10000)
	amount, _ := NewMoney(20000)

	op, err := NewTransferBetweenAccountsService().CreateTransferOperation(from, to, amount, NewEntityID())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if from.Balance().Cents() != 30000 {
		t.Errorf("expected source balance 30000, got %d", from.Balance().Cents())
	}
	if to.Balance().Cents() != 30000 {
		t.Errorf("expected destination balance 30000, got %d", to.Balance().Cents())
	}

	if op.Debit.Type() != TransactionTypeTransfer || op.Debit.Status() != TransactionStatusCompleted {
		t.Errorf("unexpected debit transaction: %s %s", op.Debit.Type(), op.Debit.Status())
	}
	if op.Debit.Description() != "Transfer to Wallet" {
		t.Errorf("unexpected debit description: %q", op.Debit.Description())
	}
	if op.Credit.Description() != "Transfer from Checking" {
		t.Errorf("unexpected credit description: %q", op.Credit.Description())
	}
	if op.Debit.Amount().Cents() != 20000 || op.Credit.Amount().Cents() != 20000 {
		t.Error("both transactions must carry the transferred amount")
	}

	assertTransferredEvent(t, from.DrainEvents(), TransferDirectionOut)
	assertTransferredEvent(t, to.DrainEvents(), TransferDirectionIn)
}

func assertTransferredEvent(t *testing.T, events []Event, direction TransferDirection) {
	t.Helper()

	for _, e := range events {
		if transferred, ok := e.(*AmountTransferredEvent); ok {
			if transferred.Direction != direction {
				t.Errorf("expected direction %s, got %s", direction, transferred.Direction)
			}
			return
		}
	}
	t.Errorf("no AmountTransferredEvent recorded")
}

func TestTransferService_Preconditions(t *testing.T) {
	budgetID := NewEntityID()
	amount, _ := NewMoney(20000)

	t.Run("same account", func(t *testing.T) {
		a := accountInBudget(t, "Checking", AccountTypeChecking, budgetID, 50000)

		_, err := NewTransferBetweenAccountsService().CreateTransferOperation(a, a, amount, NewEntityID())

		if !errors.Is(err, ErrSameAccountTransfer) {
			t.Errorf("expected ErrSameAccountTransfer, got %v", err)
		}
		if a.Balance().Cents() != 50000 {
			t.Errorf("failed transfer must not move money, balance %d", a.Balance().Cents())
		}
	})

	t.Run("different budgets", func(t *testing.T) {
		from := accountInBudget(t, "Checking", AccountTypeChecking, budgetID, 50000)
		to := accountInBudget(t, "Other", AccountTypeChecking, NewEntityID(), 0)

		_, err := NewTransferBetweenAccountsService().CreateTransferOperation(from, to, amount, NewEntityID())

		if !errors.Is(err, ErrAccountsFromDifferentBudgets) {
			t.Errorf("expected ErrAccountsFromDifferentBudgets, got %v", err)
		}
	})

	t.Run("savings overdraft", func(t *testing.T) {
		from := accountInBudget(t, "Savings", AccountTypeSavings, budgetID, 10000)
		to := accountInBudget(t, "Checking", AccountTypeChecking, budgetID, 0)

		_, err := NewTransferBetweenAccountsService().CreateTransferOperation(from, to, amount, NewEntityID())

		if !errors.Is(err, ErrInsufficientBalance) {
			t.Errorf("expected ErrInsufficientBalance, got %v", err)
		}
		if from.Balance().Cents() != 10000 || to.Balance().Cents() != 0 {
			t.Error("failed transfer must not move money")
		}
		if len(from.DrainEvents()) != 0 || len(to.DrainEvents()) != 0 {
			t.Error("failed transfer must not record events")
		}
	})

	t.Run("checking overdraft allowed", func(t *testing.T) {
		from := accountInBudget(t, "Checking", AccountTypeChecking, budgetID, 10000)
		to := accountInBudget(t, "Wallet", AccountTypeDigitalWallet, budgetID, 0)

		_, err := NewTransferBetweenAccountsService().CreateTransferOperation(from, to, amount, NewEntityID())

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if from.Balance().Cents() != -10000 {
			t.Errorf("expected source balance -10000, got %d", from.Balance().Cents())
		}
	})

	t.Run("deleted source", func(t *testing.T) {
		from := accountInBudget(t, "Checking", AccountTypeChecking, budgetID, 50000)
		to := accountInBudget(t, "Wallet", AccountTypeDigitalWallet, budgetID, 0)
		if err := from.Delete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		_, err := NewTransferBetweenAccountsService().CreateTransferOperation(from, to, amount, NewEntityID())

		var domainErr *Error
		if !errors.As(err, &domainErr) || domainErr.Kind != KindAlreadyDeleted {
			t.Errorf("expected already-deleted error, got %v", err)
		}
	})
}
