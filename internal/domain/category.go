package domain

import "time"

// CategoryType is the closed set of category kinds.
type CategoryType string

const (
	CategoryTypeIncome   CategoryType = "INCOME"
	CategoryTypeExpense  CategoryType = "EXPENSE"
	CategoryTypeTransfer CategoryType = "TRANSFER"
)

// ParseCategoryType validates raw against the closed set.
func ParseCategoryType(field, raw string) (CategoryType, error) {
	switch CategoryType(raw) {
	case CategoryTypeIncome, CategoryTypeExpense, CategoryTypeTransfer:
		return CategoryType(raw), nil
	}
	return "", NewInvalidValueError(field, raw, "must be a valid category type")
}

// Category classifies transactions inside a budget.
type Category struct {
	eventLog
	id           EntityID
	name         EntityName
	categoryType CategoryType
	budgetID     EntityID
	createdAt    time.Time
	updatedAt    time.Time
	deleted      bool
}

// NewCategoryInput carries the primitive fields of a creation request.
type NewCategoryInput struct {
	Name     string
	Type     string
	BudgetID string
}

// NewCategory validates every field of input, accumulating one error per
// invalid field in declaration order.
func NewCategory(input NewCategoryInput) Result[*Category] {
	var res Result[*Category]

	name, err := NewEntityName("name", input.Name)
	res.AddError(err)

	categoryType, err := ParseCategoryType("type", input.Type)
	res.AddError(err)

	budgetID, err := ParseEntityID("budget_id", input.BudgetID)
	res.AddError(err)

	if res.HasError() {
		return res
	}

	now := time.Now().UTC()
	c := &Category{
		id:           NewEntityID(),
		name:         name,
		categoryType: categoryType,
		budgetID:     budgetID,
		createdAt:    now,
		updatedAt:    now,
	}
	c.record(&CategoryCreatedEvent{
		BaseEvent:    newBaseEvent(c.id, EventTypeCategoryCreated),
		Name:         c.name.String(),
		CategoryType: c.categoryType,
		BudgetID:     c.budgetID.String(),
	})

	res.SetValue(c)

	return res
}

// RestoredCategory is the persistence snapshot of a category.
type RestoredCategory struct {
	ID        string
	Name      string
	Type      string
	BudgetID  string
	CreatedAt time.Time
	UpdatedAt time.Time
	Deleted   bool
}

// RestoreCategory rehydrates a category from its persistence snapshot.
func RestoreCategory(s RestoredCategory) *Category {
	return &Category{
		id:           restoredID(s.ID),
		name:         EntityName{value: s.Name},
		categoryType: CategoryType(s.Type),
		budgetID:     restoredID(s.BudgetID),
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		deleted:      s.Deleted,
	}
}

func (c *Category) ID() EntityID         { return c.id }
func (c *Category) Name() string         { return c.name.String() }
func (c *Category) Type() CategoryType   { return c.categoryType }
func (c *Category) BudgetID() EntityID   { return c.budgetID }
func (c *Category) CreatedAt() time.Time { return c.createdAt }
func (c *Category) UpdatedAt() time.Time { return c.updatedAt }
func (c *Category) IsDeleted() bool      { return c.deleted }

// UpdateName renames the category.
func (c *Category) UpdateName(raw string) error {
	if c.deleted {
		return NewAlreadyDeletedError("Category", c.id)
	}

	name, err := NewEntityName("name", raw)
	if err != nil {
		return err
	}

	c.name = name
	c.touch()
	c.record(&CategoryUpdatedEvent{
		BaseEvent: newBaseEvent(c.id, EventTypeCategoryUpdated),
		Name:      c.name.String(),
	})

	return nil
}

// Delete soft-deletes the category.
func (c *Category) Delete() error {
	if c.deleted {
		return NewAlreadyDeletedError("Category", c.id)
	}

	c.deleted = true
	c.touch()
	c.record(&CategoryDeletedEvent{BaseEvent: newBaseEvent(c.id, EventTypeCategoryDeleted)})

	return nil
}

func (c *Category) touch() {
	c.updatedAt = time.Now().UTC()
}
