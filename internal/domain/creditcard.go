package domain

import "time"

// CreditCard holds the card limit and the two days of month that drive
// its bill cycle.
type CreditCard struct {
	eventLog
	id         EntityID
	name       EntityName
	limit      Money
	closingDay DayOfMonth
	dueDay     DayOfMonth
	budgetID   EntityID
	createdAt  time.Time
	updatedAt  time.Time
	deleted    bool
}

// NewCreditCardInput carries the primitive fields of a creation request.
type NewCreditCardInput struct {
	Name       string
	Limit      float64
	ClosingDay int
	DueDay     int
	BudgetID   string
}

// NewCreditCard validates every field of input and either returns a
// fully formed card or the complete list of violations.
func NewCreditCard(input NewCreditCardInput) Result[*CreditCard] {
	var res Result[*CreditCard]

	name, err := NewEntityName("name", input.Name)
	res.AddError(err)

	limit, err := NewMoneyField("limit", input.Limit)
	res.AddError(err)

	closingDay, err := NewDayOfMonth("closing_day", input.ClosingDay)
	res.AddError(err)

	dueDay, err := NewDayOfMonth("due_day", input.DueDay)
	res.AddError(err)

	budgetID, err := ParseEntityID("budget_id", input.BudgetID)
	res.AddError(err)

	if res.HasError() {
		return res
	}

	now := time.Now().UTC()
	c := &CreditCard{
		id:         NewEntityID(),
		name:       name,
		limit:      limit,
		closingDay: closingDay,
		dueDay:     dueDay,
		budgetID:   budgetID,
		createdAt:  now,
		updatedAt:  now,
	}
	c.record(&CreditCardCreatedEvent{
		BaseEvent:  newBaseEvent(c.id, EventTypeCreditCardCreated),
		Name:       c.name.String(),
		LimitCents: c.limit.Cents(),
		BudgetID:   c.budgetID.String(),
	})

	res.SetValue(c)

	return res
}

// RestoredCreditCard is the persistence snapshot of a credit card.
type RestoredCreditCard struct {
	ID         string
	Name       string
	LimitCents int64
	ClosingDay int
	DueDay     int
	BudgetID   string
	CreatedAt  time.Time
	UpdatedAt  time.Time
	Deleted    bool
}

// RestoreCreditCard rehydrates a credit card from its snapshot.
func RestoreCreditCard(s RestoredCreditCard) *CreditCard {
	return &CreditCard{
		id:         restoredID(s.ID),
		name:       EntityName{value: s.Name},
		limit:      Money{cents: s.LimitCents},
		closingDay: DayOfMonth{day: s.ClosingDay},
		dueDay:     DayOfMonth{day: s.DueDay},
		budgetID:   restoredID(s.BudgetID),
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
		deleted:    s.Deleted,
	}
}

func (c *CreditCard) ID() EntityID           { return c.id }
func (c *CreditCard) Name() string           { return c.name.String() }
func (c *CreditCard) Limit() Money           { return c.limit }
func (c *CreditCard) ClosingDay() DayOfMonth { return c.closingDay }
func (c *CreditCard) DueDay() DayOfMonth     { return c.dueDay }
func (c *CreditCard) BudgetID() EntityID     { return c.budgetID }
func (c *CreditCard) CreatedAt() time.Time   { return c.createdAt }
func (c *CreditCard) UpdatedAt() time.Time   { return c.updatedAt }
func (c *CreditCard) IsDeleted() bool        { return c.deleted }

// UpdateName renames the card.
func (c *CreditCard) UpdateName(raw string) error {
	if c.deleted {
		return NewAlreadyDeletedError("CreditCard", c.id)
	}

	name, err := NewEntityName("name", raw)
	if err != nil {
		return err
	}

	c.name = name
	c.touch()
	c.recordUpdated()

	return nil
}

// UpdateLimit replaces the card limit.
func (c *CreditCard) UpdateLimit(value float64) error {
	if c.deleted {
		return NewAlreadyDeletedError("CreditCard", c.id)
	}

	limit, err := NewMoneyField("limit", value)
	if err != nil {
		return err
	}

	c.limit = limit
	c.touch()
	c.recordUpdated()

	return nil
}

// UpdateCycleDays replaces the closing and due days.
func (c *CreditCard) UpdateCycleDays(closingDay, dueDay int) error {
	if c.deleted {
		return NewAlreadyDeletedError("CreditCard", c.id)
	}

	var res Result[struct{}]

	closing, err := NewDayOfMonth("closing_day", closingDay)
	res.AddError(err)

	due, err := NewDayOfMonth("due_day", dueDay)
	res.AddError(err)

	if res.HasError() {
		return res.Err()
	}

	c.closingDay = closing
	c.dueDay = due
	c.touch()
	c.recordUpdated()

	return nil
}

// NextBillPeriod computes the closing and due dates of the bill cycle
// that follows ref. Days beyond the target month's length clamp to its
// last day. The due date lands in the following month whenever the due
// day does not come strictly after the closing day.
func (c *CreditCard) NextBillPeriod(ref time.Time) (closingDate, dueDate time.Time) {
	ref = ref.UTC()

	closingDate = dateWithClampedDay(ref.Year(), ref.Month(), c.closingDay.Int())
	if !closingDate.After(ref) {
		next := closingDate.AddDate(0, 1, -closingDate.Day()+1)
		closingDate = dateWithClampedDay(next.Year(), next.Month(), c.closingDay.Int())
	}

	dueYear, dueMonth := closingDate.Year(), closingDate.Month()
	if c.dueDay.Int() <= c.closingDay.Int() {
		next := closingDate.AddDate(0, 1, -closingDate.Day()+1)
		dueYear, dueMonth = next.Year(), next.Month()
	}
	dueDate = dateWithClampedDay(dueYear, dueMonth, c.dueDay.Int())

	return closingDate, dueDate
}

// Delete soft-deletes the card.
func (c *CreditCard) Delete() error {
	if c.deleted {
		return NewAlreadyDeletedError("CreditCard", c.id)
	}

	c.deleted = true
	c.touch()
	c.record(&CreditCardDeletedEvent{BaseEvent: newBaseEvent(c.id, EventTypeCreditCardDeleted)})

	return nil
}

func (c *CreditCard) recordUpdated() {
	c.record(&CreditCardUpdatedEvent{
		BaseEvent:  newBaseEvent(c.id, EventTypeCreditCardUpdated),
		Name:       c.name.String(),
		LimitCents: c.limit.Cents(),
	})
}

func (c *CreditCard) touch() {
	c.updatedAt = time.Now().UTC()
}

func dateWithClampedDay(year int, month time.Month, day int) time.Time {
	lastDay := time.Date(year, month+1, 0, 0, 0, 0, 0, time.UTC).Day()
	if day > lastDay {
		day = lastDay
	}
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
