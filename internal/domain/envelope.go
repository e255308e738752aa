package domain

import "time"

// Envelope is a monthly spending bucket: money allocated to a category
// for one month, drawn down as expenses are recorded against it.
type Envelope struct {
	eventLog
	id         EntityID
	name       EntityName
	budgetID   EntityID
	categoryID EntityID
	month      int
	year       int
	allocated  Money
	spent      Money
	createdAt  time.Time
	updatedAt  time.Time
	deleted    bool
}

// NewEnvelopeInput carries the primitive fields of a creation request.
type NewEnvelopeInput struct {
	Name       string
	BudgetID   string
	CategoryID string
	Month      int
	Year       int
	Allocation float64
}

// NewEnvelope validates every field of input and either returns a fully
// formed envelope or the complete list of violations.
func NewEnvelope(input NewEnvelopeInput) Result[*Envelope] {
	var res Result[*Envelope]

	name, err := NewEntityName("name", input.Name)
	res.AddError(err)

	budgetID, err := ParseEntityID("budget_id", input.BudgetID)
	res.AddError(err)

	categoryID, err := ParseEntityID("category_id", input.CategoryID)
	res.AddError(err)

	if input.Month < 1 || input.Month > 12 {
		res.AddError(NewInvalidValueError("month", input.Month, "must be a month between 1 and 12"))
	}
	if input.Year < 1 {
		res.AddError(NewInvalidValueError("year", input.Year, "must be a positive year"))
	}

	allocated, err := NewMoneyField("allocation", input.Allocation)
	res.AddError(err)

	if res.HasError() {
		return res
	}

	now := time.Now().UTC()
	e := &Envelope{
		id:         NewEntityID(),
		name:       name,
		budgetID:   budgetID,
		categoryID: categoryID,
		month:      input.Month,
		year:       input.Year,
		allocated:  allocated,
		createdAt:  now,
		updatedAt:  now,
	}
	e.record(&EnvelopeCreatedEvent{
		BaseEvent:      newBaseEvent(e.id, EventTypeEnvelopeCreated),
		Name:           e.name.String(),
		BudgetID:       e.budgetID.String(),
		CategoryID:     e.categoryID.String(),
		AllocatedCents: e.allocated.Cents(),
	})

	res.SetValue(e)

	return res
}

// RestoredEnvelope is the persistence snapshot of an envelope.
type RestoredEnvelope struct {
	ID             string
	Name           string
	BudgetID       string
	CategoryID     string
	Month          int
	Year           int
	AllocatedCents int64
	SpentCents     int64
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Deleted        bool
}

// RestoreEnvelope rehydrates an envelope from its snapshot.
func RestoreEnvelope(s RestoredEnvelope) *Envelope {
	return &Envelope{
		id:         restoredID(s.ID),
		name:       EntityName{value: s.Name},
		budgetID:   restoredID(s.BudgetID),
		categoryID: restoredID(s.CategoryID),
		month:      s.Month,
		year:       s.Year,
		allocated:  Money{cents: s.AllocatedCents},
		spent:      Money{cents: s.SpentCents},
		createdAt:  s.CreatedAt,
		updatedAt:  s.UpdatedAt,
		deleted:    s.Deleted,
	}
}

func (e *Envelope) ID() EntityID         { return e.id }
func (e *Envelope) Name() string         { return e.name.String() }
func (e *Envelope) BudgetID() EntityID   { return e.budgetID }
func (e *Envelope) CategoryID() EntityID { return e.categoryID }
func (e *Envelope) Month() int           { return e.month }
func (e *Envelope) Year() int            { return e.year }
func (e *Envelope) Allocated() Money     { return e.allocated }
func (e *Envelope) Spent() Money         { return e.spent }
func (e *Envelope) CreatedAt() time.Time { return e.createdAt }
func (e *Envelope) UpdatedAt() time.Time { return e.updatedAt }
func (e *Envelope) IsDeleted() bool      { return e.deleted }

// Remaining returns the unspent part of the allocation.
func (e *Envelope) Remaining() Money {
	return Money{cents: e.allocated.Cents() - e.spent.Cents()}
}

// Allocate grows the envelope allocation.
func (e *Envelope) Allocate(amount Money) error {
	if e.deleted {
		return NewAlreadyDeletedError("Envelope", e.id)
	}

	e.allocated = e.allocated.Add(amount)
	e.touch()
	e.record(&EnvelopeAllocatedEvent{
		BaseEvent:      newBaseEvent(e.id, EventTypeEnvelopeAllocated),
		AmountCents:    amount.Cents(),
		AllocatedCents: e.allocated.Cents(),
	})

	return nil
}

// RecordSpending draws amount from the envelope. Spending past the
// allocation is rejected.
func (e *Envelope) RecordSpending(amount Money) error {
	if e.deleted {
		return NewAlreadyDeletedError("Envelope", e.id)
	}

	spent := e.spent.Add(amount)
	if spent.GreaterThan(e.allocated) {
		return ErrEnvelopeExceeded
	}

	e.spent = spent
	e.touch()
	e.record(&EnvelopeSpentEvent{
		BaseEvent:   newBaseEvent(e.id, EventTypeEnvelopeSpent),
		AmountCents: amount.Cents(),
		SpentCents:  e.spent.Cents(),
	})

	return nil
}

// ReleaseSpending returns amount to the envelope, e.g. when a
// transaction is cancelled.
func (e *Envelope) ReleaseSpending(amount Money) error {
	if e.deleted {
		return NewAlreadyDeletedError("Envelope", e.id)
	}
	if amount.GreaterThan(e.spent) {
		return ErrEnvelopeReleaseUnavailable
	}

	e.spent = Money{cents: e.spent.Cents() - amount.Cents()}
	e.touch()

	return nil
}

// Delete soft-deletes the envelope.
func (e *Envelope) Delete() error {
	if e.deleted {
		return NewAlreadyDeletedError("Envelope", e.id)
	}

	e.deleted = true
	e.touch()
	e.record(&EnvelopeDeletedEvent{BaseEvent: newBaseEvent(e.id, EventTypeEnvelopeDeleted)})

	return nil
}

func (e *Envelope) touch() {
	e.updatedAt = time.Now().UTC()
}
