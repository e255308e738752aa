package domain

import (
	"errors"
	"testing"
)

func goalForAccount(t *testing.T, name string, totalCents, accumulatedCents int64, budgetID, accountID EntityID) *Goal {
	t.Helper()

	res := NewGoal(NewGoalInput{
		Name:            name,
		TotalAmount:     float64(totalCents),
		BudgetID:        budgetID.String(),
		SourceAccountID: accountID.String(),
	})
	if res.HasError() {
		t.Fatalf("unexpected errors building goal: %v", res.Errors())
	}

	g := res.Value()
	if accumulatedCents > 0 {
		seed, _ := MoneyFromCents(accumulatedCents)
		if err := g.AddAmount(seed); err != nil {
			t.Fatalf("unexpected error seeding goal: %v", err)
		}
	}
	g.DrainEvents()
	return g
}

func TestGoalReservationService_SiblingGoalsShareTheBalance(t *testing.T) {
	budgetID := NewEntityID()
	account := accountInBudget(t, "Savings", AccountTypeSavings, budgetID, 100000)
	sibling := goalForAccount(t, "Vacation", 100000, 40000, budgetID, account.ID())
	service := NewGoalReservationService()

	t.Run("reservation past the shared balance fails", func(t *testing.T) {
		goal := goalForAccount(t, "New laptop", 100000, 0, budgetID, account.ID())
		amount, _ := NewMoney(70000)

		err := service.ValidateReservationOperation(GoalReservationInput{
			Goal:                goal,
			SourceAccount:       account,
			AllGoalsFromAccount: []*Goal{sibling, goal},
			AdditionalAmount:    amount,
		})

		// 70000 + the sibling's 40000 would pass the 100000 balance.
		if !errors.Is(err, ErrInsufficientBalance) {
			t.Fatalf("expected ErrInsufficientBalance, got %v", err)
		}
		if !goal.AccumulatedAmount().IsZero() {
			t.Errorf("rejected reservation must not change the goal, got %d", goal.AccumulatedAmount().Cents())
		}
	})

	t.Run("reservation within the shared balance succeeds", func(t *testing.T) {
		goal := goalForAccount(t, "New laptop", 100000, 0, budgetID, account.ID())
		amount, _ := NewMoney(60000)

		err := service.ValidateReservationOperation(GoalReservationInput{
			Goal:                goal,
			SourceAccount:       account,
			AllGoalsFromAccount: []*Goal{sibling, goal},
			AdditionalAmount:    amount,
		})

		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if goal.AccumulatedAmount().Cents() != 60000 {
			t.Errorf("expected accumulated 60000, got %d", goal.AccumulatedAmount().Cents())
		}
	})
}

func TestGoalReservationService_IgnoresOtherAccountsAndDeletedGoals(t *testing.T) {
	budgetID := NewEntityID()
	account := accountInBudget(t, "Savings", AccountTypeSavings, budgetID, 100000)
	otherAccount := goalForAccount(t, "Elsewhere", 100000, 90000, budgetID, NewEntityID())
	deleted := goalForAccount(t, "Abandoned", 100000, 90000, budgetID, account.ID())
	if err := deleted.Delete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	goal := goalForAccount(t, "New laptop", 100000, 0, budgetID, account.ID())
	amount, _ := NewMoney(100000)

	err := NewGoalReservationService().ValidateReservationOperation(GoalReservationInput{
		Goal:                goal,
		SourceAccount:       account,
		AllGoalsFromAccount: []*Goal{otherAccount, deleted, goal},
		AdditionalAmount:    amount,
	})

	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if goal.AccumulatedAmount().Cents() != 100000 {
		t.Errorf("expected accumulated 100000, got %d", goal.AccumulatedAmount().Cents())
	}
}

func TestGoalReservationService_BudgetMismatch(t *testing.T) {
	budgetID := NewEntityID()
	account := accountInBudget(t, "Savings", AccountTypeSavings, budgetID, 100000)
	goal := goalForAccount(t, "New laptop", 100000, 0, NewEntityID(), account.ID())
	amount, _ := NewMoney(10000)

	err := NewGoalReservationService().ValidateReservationOperation(GoalReservationInput{
		Goal:             goal,
		SourceAccount:    account,
		AdditionalAmount: amount,
	})

	if !errors.Is(err, ErrGoalAccountMismatch) {
		t.Errorf("expected ErrGoalAccountMismatch, got %v", err)
	}
}

func TestGoalReservationService_DeletedAggregates(t *testing.T) {
	budgetID := NewEntityID()
	amount, _ := NewMoney(10000)

	t.Run("deleted goal", func(t *testing.T) {
		account := accountInBudget(t, "Savings", AccountTypeSavings, budgetID, 100000)
		goal := goalForAccount(t, "New laptop", 100000, 0, budgetID, account.ID())
		if err := goal.Delete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := NewGoalReservationService().ValidateReservationOperation(GoalReservationInput{
			Goal:             goal,
			SourceAccount:    account,
			AdditionalAmount: amount,
		})

		var domainErr *Error
		if !errors.As(err, &domainErr) || domainErr.Kind != KindAlreadyDeleted {
			t.Errorf("expected already-deleted error, got %v", err)
		}
	})

	t.Run("deleted account", func(t *testing.T) {
		account := accountInBudget(t, "Savings", AccountTypeSavings, budgetID, 100000)
		goal := goalForAccount(t, "New laptop", 100000, 0, budgetID, account.ID())
		if err := account.Delete(); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := NewGoalReservationService().ValidateReservationOperation(GoalReservationInput{
			Goal:             goal,
			SourceAccount:    account,
			AdditionalAmount: amount,
		})

		var domainErr *Error
		if !errors.As(err, &domainErr) || domainErr.Kind != KindAlreadyDeleted {
			t.Errorf("expected already-deleted error, got %v", err)
		}
	})
}
