package domain

import "time"

// BillStatus is the closed set of credit card bill states.
type BillStatus string

const (
	BillStatusOpen    BillStatus = "OPEN"
	BillStatusClosed  BillStatus = "CLOSED"
	BillStatusPaid    BillStatus = "PAID"
	BillStatusOverdue BillStatus = "OVERDUE"
)

// ParseBillStatus validates raw against the closed set.
func ParseBillStatus(field, raw string) (BillStatus, error) {
	switch BillStatus(raw) {
	case BillStatusOpen, BillStatusClosed, BillStatusPaid, BillStatusOverdue:
		return BillStatus(raw), nil
	}
	return "", NewInvalidValueError(field, raw, "must be a valid bill status")
}

// ReopeningWindow bounds how long after payment a bill may be reopened.
const ReopeningWindow = 30 * 24 * time.Hour

// CreditCardBill accumulates card charges over a cycle and walks the
// OPEN/CLOSED/OVERDUE -> PAID -> OPEN lifecycle.
type CreditCardBill struct {
	eventLog
	id           EntityID
	creditCardID EntityID
	closingDate  time.Time
	dueDate      time.Time
	amount       Money
	status       BillStatus
	paidAt       *time.Time
	createdAt    time.Time
	updatedAt    time.Time
	deleted      bool
}

// NewCreditCardBillInput carries the primitive fields of a creation
// request. Status is optional and defaults to OPEN.
type NewCreditCardBillInput struct {
	CreditCardID string
	ClosingDate  time.Time
	DueDate      time.Time
	Amount       float64
	Status       string
}

// NewCreditCardBill validates every field of input and either returns a
// fully formed bill or the complete list of violations.
func NewCreditCardBill(input NewCreditCardBillInput) Result[*CreditCardBill] {
	var res Result[*CreditCardBill]

	creditCardID, err := ParseEntityID("credit_card_id", input.CreditCardID)
	res.AddError(err)

	if input.ClosingDate.IsZero() {
		res.AddError(NewInvalidValueError("closing_date", input.ClosingDate, "must be a valid date"))
	}
	if input.DueDate.IsZero() {
		res.AddError(NewInvalidValueError("due_date", input.DueDate, "must be a valid date"))
	}
	if !input.ClosingDate.IsZero() && !input.DueDate.IsZero() && !input.ClosingDate.Before(input.DueDate) {
		res.AddError(ErrBillPeriodOutOfOrder)
	}

	amount, err := NewMoneyField("amount", input.Amount)
	res.AddError(err)

	status := BillStatusOpen
	if input.Status != "" {
		status, err = ParseBillStatus("status", input.Status)
		res.AddError(err)
	}

	if res.HasError() {
		return res
	}

	now := time.Now().UTC()
	b := &CreditCardBill{
		id:           NewEntityID(),
		creditCardID: creditCardID,
		closingDate:  input.ClosingDate.UTC(),
		dueDate:      input.DueDate.UTC(),
		amount:       amount,
		status:       status,
		createdAt:    now,
		updatedAt:    now,
	}
	b.record(&CreditCardBillCreatedEvent{
		BaseEvent:    newBaseEvent(b.id, EventTypeBillCreated),
		CreditCardID: b.creditCardID.String(),
		ClosingDate:  b.closingDate,
		DueDate:      b.dueDate,
		AmountCents:  b.amount.Cents(),
	})

	res.SetValue(b)

	return res
}

// RestoredCreditCardBill is the persistence snapshot of a bill.
type RestoredCreditCardBill struct {
	ID           string
	CreditCardID string
	ClosingDate  time.Time
	DueDate      time.Time
	AmountCents  int64
	Status       string
	PaidAt       *time.Time
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Deleted      bool
}

// RestoreCreditCardBill rehydrates a bill from its snapshot.
func RestoreCreditCardBill(s RestoredCreditCardBill) *CreditCardBill {
	return &CreditCardBill{
		id:           restoredID(s.ID),
		creditCardID: restoredID(s.CreditCardID),
		closingDate:  s.ClosingDate,
		dueDate:      s.DueDate,
		amount:       Money{cents: s.AmountCents},
		status:       BillStatus(s.Status),
		paidAt:       s.PaidAt,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		deleted:      s.Deleted,
	}
}

func (b *CreditCardBill) ID() EntityID           { return b.id }
func (b *CreditCardBill) CreditCardID() EntityID { return b.creditCardID }
func (b *CreditCardBill) ClosingDate() time.Time { return b.closingDate }
func (b *CreditCardBill) DueDate() time.Time     { return b.dueDate }
func (b *CreditCardBill) Amount() Money          { return b.amount }
func (b *CreditCardBill) Status() BillStatus     { return b.status }
func (b *CreditCardBill) CreatedAt() time.Time   { return b.createdAt }
func (b *CreditCardBill) UpdatedAt() time.Time   { return b.updatedAt }
func (b *CreditCardBill) IsDeleted() bool        { return b.deleted }

// PaidAt returns the payment timestamp, nil while unpaid.
func (b *CreditCardBill) PaidAt() *time.Time {
	if b.paidAt == nil {
		return nil
	}
	paidAt := *b.paidAt
	return &paidAt
}

// AddCharge adds a card purchase to the bill. Only open bills
// accumulate charges.
func (b *CreditCardBill) AddCharge(amount Money) error {
	if b.deleted {
		return NewAlreadyDeletedError("CreditCardBill", b.id)
	}
	if b.status != BillStatusOpen {
		return ErrInvalidStatusTransition
	}

	b.amount = b.amount.Add(amount)
	b.touch()

	return nil
}

// Close freezes the bill at the end of its cycle.
func (b *CreditCardBill) Close() error {
	if b.deleted {
		return NewAlreadyDeletedError("CreditCardBill", b.id)
	}
	if b.status != BillStatusOpen {
		return ErrInvalidStatusTransition
	}

	b.status = BillStatusClosed
	b.touch()
	b.record(&CreditCardBillClosedEvent{BaseEvent: newBaseEvent(b.id, EventTypeBillClosed)})

	return nil
}

// MarkAsPaid settles the bill. Calling it on an already-paid bill is a
// no-op: the status changes once and the paid event is emitted once.
func (b *CreditCardBill) MarkAsPaid(paidBy EntityID, paidAt time.Time) error {
	if b.deleted {
		return NewAlreadyDeletedError("CreditCardBill", b.id)
	}
	if b.status == BillStatusPaid {
		return nil
	}

	paidAt = paidAt.UTC()
	b.status = BillStatusPaid
	b.paidAt = &paidAt
	b.touch()
	b.record(&CreditCardBillPaidEvent{
		BaseEvent:    newBaseEvent(b.id, EventTypeBillPaid),
		CreditCardID: b.creditCardID.String(),
		AmountCents:  b.amount.Cents(),
		PaidBy:       paidBy.String(),
		PaidAt:       paidAt,
	})

	return nil
}

// Reopen reverts a paid bill to OPEN. It is only legal from PAID and
// within the reopening window since payment, and requires a
// justification.
func (b *CreditCardBill) Reopen(justification string) error {
	if b.deleted {
		return NewAlreadyDeletedError("CreditCardBill", b.id)
	}

	if b.status != BillStatusPaid || b.paidAt == nil {
		return ErrCreditCardBillNotPaid
	}

	j, err := NewJustification(justification)
	if err != nil {
		return err
	}
	if time.Now().UTC().Sub(*b.paidAt) > ReopeningWindow {
		return ErrReopeningPeriodExpired
	}

	b.status = BillStatusOpen
	b.paidAt = nil
	b.touch()
	b.record(&CreditCardBillReopenedEvent{
		BaseEvent:     newBaseEvent(b.id, EventTypeBillReopened),
		Justification: j.String(),
	})

	return nil
}

// MarkAsOverdue flags an unpaid bill whose due date has passed.
func (b *CreditCardBill) MarkAsOverdue() error {
	if b.deleted {
		return NewAlreadyDeletedError("CreditCardBill", b.id)
	}
	if b.status == BillStatusOverdue {
		return nil
	}
	if b.status == BillStatusPaid {
		return ErrInvalidStatusTransition
	}
	if !time.Now().UTC().After(b.dueDate) {
		return ErrBillNotPastDue
	}

	b.status = BillStatusOverdue
	b.touch()
	b.record(&CreditCardBillOverdueEvent{BaseEvent: newBaseEvent(b.id, EventTypeBillOverdue)})

	return nil
}

// Delete soft-deletes the bill.
func (b *CreditCardBill) Delete() error {
	if b.deleted {
		return NewAlreadyDeletedError("CreditCardBill", b.id)
	}

	b.deleted = true
	b.touch()
	b.record(&CreditCardBillDeletedEvent{BaseEvent: newBaseEvent(b.id, EventTypeBillDeleted)})

	return nil
}

func (b *CreditCardBill) touch() {
	b.updatedAt = time.Now().UTC()
}
