package domain

import "time"

// TransactionType is the closed set of transaction kinds.
type TransactionType string

const (
	TransactionTypeIncome   TransactionType = "INCOME"
	TransactionTypeExpense  TransactionType = "EXPENSE"
	TransactionTypeTransfer TransactionType = "TRANSFER"
)

// ParseTransactionType validates raw against the closed set.
func ParseTransactionType(field, raw string) (TransactionType, error) {
	switch TransactionType(raw) {
	case TransactionTypeIncome, TransactionTypeExpense, TransactionTypeTransfer:
		return TransactionType(raw), nil
	}
	return "", NewInvalidValueError(field, raw, "must be a valid transaction type")
}

// TransactionStatus is the closed set of transaction states.
type TransactionStatus string

const (
	TransactionStatusScheduled TransactionStatus = "SCHEDULED"
	TransactionStatusCompleted TransactionStatus = "COMPLETED"
	TransactionStatusOverdue   TransactionStatus = "OVERDUE"
	TransactionStatusCancelled TransactionStatus = "CANCELLED"
)

// ParseTransactionStatus validates raw against the closed set.
func ParseTransactionStatus(field, raw string) (TransactionStatus, error) {
	switch TransactionStatus(raw) {
	case TransactionStatusScheduled, TransactionStatusCompleted,
		TransactionStatusOverdue, TransactionStatusCancelled:
		return TransactionStatus(raw), nil
	}
	return "", NewInvalidValueError(field, raw, "must be a valid transaction status")
}

// Transaction is a single money movement recorded against a budget.
type Transaction struct {
	eventLog
	id              EntityID
	description     EntityName
	amount          Money
	transactionType TransactionType
	status          TransactionStatus
	transactionDate time.Time
	categoryID      EntityID
	budgetID        EntityID
	creditCardID    *EntityID
	createdAt       time.Time
	updatedAt       time.Time
	deleted         bool
}

// NewTransactionInput carries the primitive fields of a creation
// request. Status is optional: when empty it is derived from the
// transaction date (past dates are born OVERDUE, today and future dates
// SCHEDULED). CreditCardID is optional.
type NewTransactionInput struct {
	Description     string
	Amount          float64
	Type            string
	Status          string
	TransactionDate time.Time
	CategoryID      string
	BudgetID        string
	CreditCardID    string
}

// NewTransaction validates every field of input and either returns a
// fully formed transaction or the complete list of violations.
func NewTransaction(input NewTransactionInput) Result[*Transaction] {
	var res Result[*Transaction]

	description, err := NewBoundedName("description", input.Description, MinDescriptionLength, MaxDescriptionLength)
	res.AddError(err)

	amount, err := NewMoneyField("amount", input.Amount)
	res.AddError(err)

	transactionType, err := ParseTransactionType("type", input.Type)
	res.AddError(err)

	var status TransactionStatus
	if input.Status != "" {
		status, err = ParseTransactionStatus("status", input.Status)
		res.AddError(err)
	}

	if input.TransactionDate.IsZero() {
		res.AddError(NewInvalidValueError("transaction_date", input.TransactionDate, "must be a valid date"))
	}

	categoryID, err := ParseEntityID("category_id", input.CategoryID)
	res.AddError(err)

	budgetID, err := ParseEntityID("budget_id", input.BudgetID)
	res.AddError(err)

	var creditCardID *EntityID
	if input.CreditCardID != "" {
		id, err := ParseEntityID("credit_card_id", input.CreditCardID)
		if err != nil {
			res.AddError(err)
		} else {
			creditCardID = &id
		}
	}

	if res.HasError() {
		return res
	}

	transactionDate := input.TransactionDate.UTC()
	if status == "" {
		status = deriveStatus(transactionDate, time.Now().UTC())
	}

	now := time.Now().UTC()
	t := &Transaction{
		id:              NewEntityID(),
		description:     description,
		amount:          amount,
		transactionType: transactionType,
		status:          status,
		transactionDate: transactionDate,
		categoryID:      categoryID,
		budgetID:        budgetID,
		creditCardID:    creditCardID,
		createdAt:       now,
		updatedAt:       now,
	}
	t.record(&TransactionCreatedEvent{
		BaseEvent:       newBaseEvent(t.id, EventTypeTransactionCreated),
		Description:     t.description.String(),
		AmountCents:     t.amount.Cents(),
		TransactionType: t.transactionType,
		Status:          t.status,
		BudgetID:        t.budgetID.String(),
	})

	res.SetValue(t)

	return res
}

// deriveStatus maps the transaction date to an initial status. Same-day
// transactions are SCHEDULED, matching past-date OVERDUE only for dates
// strictly before today.
func deriveStatus(transactionDate, now time.Time) TransactionStatus {
	if dateOnly(transactionDate).Before(dateOnly(now)) {
		return TransactionStatusOverdue
	}
	return TransactionStatusScheduled
}

func dateOnly(t time.Time) time.Time {
	t = t.UTC()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// RestoredTransaction is the persistence snapshot of a transaction.
type RestoredTransaction struct {
	ID              string
	Description     string
	AmountCents     int64
	Type            string
	Status          string
	TransactionDate time.Time
	CategoryID      string
	BudgetID        string
	CreditCardID    *string
	CreatedAt       time.Time
	UpdatedAt       time.Time
	Deleted         bool
}

// RestoreTransaction rehydrates a transaction from its snapshot.
func RestoreTransaction(s RestoredTransaction) *Transaction {
	var creditCardID *EntityID
	if s.CreditCardID != nil {
		id := restoredID(*s.CreditCardID)
		creditCardID = &id
	}

	return &Transaction{
		id:              restoredID(s.ID),
		description:     EntityName{value: s.Description},
		amount:          Money{cents: s.AmountCents},
		transactionType: TransactionType(s.Type),
		status:          TransactionStatus(s.Status),
		transactionDate: s.TransactionDate,
		categoryID:      restoredID(s.CategoryID),
		budgetID:        restoredID(s.BudgetID),
		creditCardID:    creditCardID,
		createdAt:       s.CreatedAt,
		updatedAt:       s.UpdatedAt,
		deleted:         s.Deleted,
	}
}

func (t *Transaction) ID() EntityID               { return t.id }
func (t *Transaction) Description() string        { return t.description.String() }
func (t *Transaction) Amount() Money              { return t.amount }
func (t *Transaction) Type() TransactionType      { return t.transactionType }
func (t *Transaction) Status() TransactionStatus  { return t.status }
func (t *Transaction) TransactionDate() time.Time { return t.transactionDate }
func (t *Transaction) CategoryID() EntityID       { return t.categoryID }
func (t *Transaction) BudgetID() EntityID         { return t.budgetID }
func (t *Transaction) CreatedAt() time.Time       { return t.createdAt }
func (t *Transaction) UpdatedAt() time.Time       { return t.updatedAt }
func (t *Transaction) IsDeleted() bool            { return t.deleted }

// CreditCardID returns the optional credit card reference.
func (t *Transaction) CreditCardID() *EntityID {
	if t.creditCardID == nil {
		return nil
	}
	id := *t.creditCardID
	return &id
}

// Complete moves a SCHEDULED or OVERDUE transaction to COMPLETED.
// Completing an already-completed transaction is a no-op; a cancelled
// transaction cannot be completed.
func (t *Transaction) Complete() error {
	if t.deleted {
		return NewAlreadyDeletedError("Transaction", t.id)
	}
	if t.status == TransactionStatusCompleted {
		return nil
	}
	if t.status == TransactionStatusCancelled {
		return ErrInvalidStatusTransition
	}

	t.status = TransactionStatusCompleted
	t.touch()
	t.record(&TransactionCompletedEvent{BaseEvent: newBaseEvent(t.id, EventTypeTransactionCompleted)})

	return nil
}

// Cancel moves a SCHEDULED or OVERDUE transaction to CANCELLED. A
// completed transaction cannot be cancelled.
func (t *Transaction) Cancel() error {
	if t.deleted {
		return NewAlreadyDeletedError("Transaction", t.id)
	}
	if t.status == TransactionStatusCancelled {
		return nil
	}
	if t.status == TransactionStatusCompleted {
		return ErrInvalidStatusTransition
	}

	t.status = TransactionStatusCancelled
	t.touch()
	t.record(&TransactionCancelledEvent{BaseEvent: newBaseEvent(t.id, EventTypeTransactionCancelled)})

	return nil
}

// MarkAsOverdue moves a SCHEDULED transaction to OVERDUE once its date
// has passed.
func (t *Transaction) MarkAsOverdue() error {
	if t.deleted {
		return NewAlreadyDeletedError("Transaction", t.id)
	}
	if t.status == TransactionStatusOverdue {
		return nil
	}
	if t.status == TransactionStatusCompleted || t.status == TransactionStatusCancelled {
		return ErrInvalidStatusTransition
	}
	if !dateOnly(t.transactionDate).Before(dateOnly(time.Now())) {
		return ErrTransactionNotPastDue
	}

	t.status = TransactionStatusOverdue
	t.touch()
	t.record(&TransactionMarkedOverdueEvent{BaseEvent: newBaseEvent(t.id, EventTypeTransactionMarkedOverdue)})

	return nil
}

// Delete soft-deletes the transaction.
func (t *Transaction) Delete() error {
	if t.deleted {
		return NewAlreadyDeletedError("Transaction", t.id)
	}

	t.deleted = true
	t.touch()
	t.record(&TransactionDeletedEvent{BaseEvent: newBaseEvent(t.id, EventTypeTransactionDeleted)})

	return nil
}

func (t *Transaction) touch() {
	t.updatedAt = time.Now().UTC()
}
