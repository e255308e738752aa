package domain

import (
	"errors"
	"testing"
)

func TestNewCategory(t *testing.T) {
	res := NewCategory(NewCategoryInput{
		Name:     "Groceries",
		Type:     string(CategoryTypeExpense),
		BudgetID: NewEntityID().String(),
	})
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}

	c := res.Value()
	if c.Type() != CategoryTypeExpense {
		t.Errorf("expected EXPENSE, got %s", c.Type())
	}
}

func TestNewCategory_AllFieldsInvalid(t *testing.T) {
	res := NewCategory(NewCategoryInput{Name: "", Type: "", BudgetID: ""})

	if len(res.Errors()) != 3 {
		t.Fatalf("expected exactly 3 errors, got %d: %v", len(res.Errors()), res.Errors())
	}

	// One error per field, in declaration order.
	kinds := []ErrorKind{KindInvalidName, KindInvalidValue, KindInvalidID}
	fields := []string{"name", "type", "budget_id"}
	for i, err := range res.Errors() {
		var domainErr *Error
		if !errors.As(err, &domainErr) {
			t.Fatalf("error %d is not a domain error: %v", i, err)
		}
		if domainErr.Kind != kinds[i] || domainErr.Field != fields[i] {
			t.Errorf("error %d: expected %s on %s, got %s on %s", i, kinds[i], fields[i], domainErr.Kind, domainErr.Field)
		}
	}
}

func TestCategory_InvalidType(t *testing.T) {
	res := NewCategory(NewCategoryInput{
		Name:     "Groceries",
		Type:     "SHOPPING",
		BudgetID: NewEntityID().String(),
	})

	if len(res.Errors()) != 1 {
		t.Fatalf("expected 1 error, got %d", len(res.Errors()))
	}
}

func TestCategory_UpdateAndDelete(t *testing.T) {
	c := NewCategory(NewCategoryInput{
		Name:     "Groceries",
		Type:     string(CategoryTypeExpense),
		BudgetID: NewEntityID().String(),
	}).Value()
	c.DrainEvents()

	if err := c.UpdateName("Food"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if c.Name() != "Food" {
		t.Errorf("expected Food, got %s", c.Name())
	}

	if err := c.Delete(); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := c.UpdateName("Again"); err == nil {
		t.Error("update after delete should fail")
	}

	events := c.DrainEvents()
	if len(events) != 2 {
		t.Fatalf("expected 2 events, got %d", len(events))
	}
	if events[0].Type() != EventTypeCategoryUpdated || events[1].Type() != EventTypeCategoryDeleted {
		t.Errorf("unexpected event sequence: %s, %s", events[0].Type(), events[1].Type())
	}
	if events[0].Version() != 1 || events[1].Version() != 2 {
		t.Errorf("expected sequential versions, got %d, %d", events[0].Version(), events[1].Version())
	}
}
