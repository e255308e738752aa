package usecase_test

import (
	"testing"
	"time"

	"github.com/iho/budgeteer/internal/domain"
)

func newBudget(t *testing.T) *domain.Budget {
	t.Helper()
	res := domain.NewBudget(domain.NewBudgetInput{
		Name:    "Household",
		OwnerID: domain.NewEntityID().String(),
		Type:    string(domain.BudgetTypePersonal),
	})
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	budget := res.Value()
	budget.DrainEvents()
	return budget
}

func newAccount(t *testing.T, name string, accountType domain.AccountType, budgetID string, balanceCents float64) *domain.Account {
	t.Helper()
	res := domain.NewAccount(domain.NewAccountInput{
		Name:           name,
		Type:           string(accountType),
		BudgetID:       budgetID,
		InitialBalance: balanceCents,
	})
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	account := res.Value()
	account.DrainEvents()
	return account
}

func newCategory(t *testing.T, categoryType domain.CategoryType, budgetID string) *domain.Category {
	t.Helper()
	res := domain.NewCategory(domain.NewCategoryInput{
		Name:     "Transfers",
		Type:     string(categoryType),
		BudgetID: budgetID,
	})
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	category := res.Value()
	category.DrainEvents()
	return category
}

func newClosedBill(t *testing.T, amountCents float64) *domain.CreditCardBill {
	t.Helper()
	now := time.Now().UTC()
	res := domain.NewCreditCardBill(domain.NewCreditCardBillInput{
		CreditCardID: domain.NewEntityID().String(),
		ClosingDate:  now.AddDate(0, 0, -5),
		DueDate:      now.AddDate(0, 0, 5),
		Amount:       amountCents,
		Status:       string(domain.BillStatusClosed),
	})
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	bill := res.Value()
	bill.DrainEvents()
	return bill
}

func newGoal(t *testing.T, name string, totalCents float64, budgetID, sourceAccountID string) *domain.Goal {
	t.Helper()
	res := domain.NewGoal(domain.NewGoalInput{
		Name:            name,
		TotalAmount:     totalCents,
		BudgetID:        budgetID,
		SourceAccountID: sourceAccountID,
	})
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}
	goal := res.Value()
	goal.DrainEvents()
	return goal
}
