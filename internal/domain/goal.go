package domain

import "time"

// Goal is a savings target funded from a source account. The
// accumulated amount is a reservation against that account's balance,
// enforced by GoalReservationService.
type Goal struct {
	eventLog
	id              EntityID
	name            EntityName
	totalAmount     Money
	accumulated     Money
	deadline        *time.Time
	budgetID        EntityID
	sourceAccountID EntityID
	createdAt       time.Time
	updatedAt       time.Time
	deleted         bool
}

// NewGoalInput carries the primitive fields of a creation request.
// Deadline is optional.
type NewGoalInput struct {
	Name            string
	TotalAmount     float64
	Deadline        *time.Time
	BudgetID        string
	SourceAccountID string
}

// NewGoal validates every field of input and either returns a fully
// formed goal or the complete list of violations. The accumulated
// amount always starts at zero.
func NewGoal(input NewGoalInput) Result[*Goal] {
	var res Result[*Goal]

	name, err := NewEntityName("name", input.Name)
	res.AddError(err)

	totalAmount, err := NewMoneyField("total_amount", input.TotalAmount)
	res.AddError(err)

	budgetID, err := ParseEntityID("budget_id", input.BudgetID)
	res.AddError(err)

	sourceAccountID, err := ParseEntityID("source_account_id", input.SourceAccountID)
	res.AddError(err)

	if res.HasError() {
		return res
	}

	var deadline *time.Time
	if input.Deadline != nil {
		d := input.Deadline.UTC()
		deadline = &d
	}

	now := time.Now().UTC()
	g := &Goal{
		id:              NewEntityID(),
		name:            name,
		totalAmount:     totalAmount,
		deadline:        deadline,
		budgetID:        budgetID,
		sourceAccountID: sourceAccountID,
		createdAt:       now,
		updatedAt:       now,
	}
	g.record(&GoalCreatedEvent{
		BaseEvent:        newBaseEvent(g.id, EventTypeGoalCreated),
		Name:             g.name.String(),
		TotalAmountCents: g.totalAmount.Cents(),
		BudgetID:         g.budgetID.String(),
		SourceAccountID:  g.sourceAccountID.String(),
	})

	res.SetValue(g)

	return res
}

// RestoredGoal is the persistence snapshot of a goal.
type RestoredGoal struct {
	ID               string
	Name             string
	TotalAmountCents int64
	AccumulatedCents int64
	Deadline         *time.Time
	BudgetID         string
	SourceAccountID  string
	CreatedAt        time.Time
	UpdatedAt        time.Time
	Deleted          bool
}

// RestoreGoal rehydrates a goal from its persistence snapshot.
func RestoreGoal(s RestoredGoal) *Goal {
	return &Goal{
		id:              restoredID(s.ID),
		name:            EntityName{value: s.Name},
		totalAmount:     Money{cents: s.TotalAmountCents},
		accumulated:     Money{cents: s.AccumulatedCents},
		deadline:        s.Deadline,
		budgetID:        restoredID(s.BudgetID),
		sourceAccountID: restoredID(s.SourceAccountID),
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		deleted:         s.Deleted,
	}
}

func (g *Goal) ID() EntityID              { return g.id }
func (g *Goal) Name() string              { return g.name.String() }
func (g *Goal) TotalAmount() Money        { return g.totalAmount }
func (g *Goal) AccumulatedAmount() Money  { return g.accumulated }
func (g *Goal) BudgetID() EntityID        { return g.budgetID }
func (g *Goal) SourceAccountID() EntityID { return g.sourceAccountID }
func (g *Goal) CreatedAt() time.Time      { return g.createdAt }
func (g *Goal) UpdatedAt() time.Time      { return g.updatedAt }
func (g *Goal) IsDeleted() bool           { return g.deleted }

// Deadline returns the optional deadline.
func (g *Goal) Deadline() *time.Time {
	if g.deadline == nil {
		return nil
	}
	deadline := *g.deadline
	return &deadline
}

// Remaining returns how much is still missing to reach the total.
func (g *Goal) Remaining() Money {
	return Money{cents: g.totalAmount.Cents() - g.accumulated.Cents()}
}

// UpdateName renames the goal.
func (g *Goal) UpdateName(raw string) error {
	if g.deleted {
		return NewAlreadyDeletedError("Goal", g.id)
	}

	name, err := NewEntityName("name", raw)
	if err != nil {
		return err
	}

	g.name = name
	g.touch()

	return nil
}

// AddAmount grows the accumulated amount. The accumulated amount may
// never exceed the goal total.
func (g *Goal) AddAmount(amount Money) error {
	if g.deleted {
		return NewAlreadyDeletedError("Goal", g.id)
	}

	accumulated := g.accumulated.Add(amount)
	if accumulated.GreaterThan(g.totalAmount) {
		return ErrGoalAmountExceedsTotal
	}

	g.accumulated = accumulated
	g.touch()
	g.record(&GoalAmountAddedEvent{
		BaseEvent:        newBaseEvent(g.id, EventTypeGoalAmountAdded),
		AmountCents:      amount.Cents(),
		AccumulatedCents: g.accumulated.Cents(),
	})

	return nil
}

// RemoveAmount shrinks the accumulated amount, releasing part of the
// reservation.
func (g *Goal) RemoveAmount(amount Money) error {
	if g.deleted {
		return NewAlreadyDeletedError("Goal", g.id)
	}
	if amount.GreaterThan(g.accumulated) {
		return ErrGoalAmountUnavailable
	}

	g.accumulated = Money{cents: g.accumulated.Cents() - amount.Cents()}
	g.touch()
	g.record(&GoalAmountRemovedEvent{
		BaseEvent:        newBaseEvent(g.id, EventTypeGoalAmountRemoved),
		AmountCents:      amount.Cents(),
		AccumulatedCents: g.accumulated.Cents(),
	})

	return nil
}

// Delete soft-deletes the goal.
func (g *Goal) Delete() error {
	if g.deleted {
		return NewAlreadyDeletedError("Goal", g.id)
	}

	g.deleted = true
	g.touch()
	g.record(&GoalDeletedEvent{BaseEvent: newBaseEvent(g.id, EventTypeGoalDeleted)})

	return nil
}

func (g *Goal) touch() {
	g.updatedAt = time.Now().UTC()
}
