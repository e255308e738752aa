package domain

import "time"

// Event types
const (
	EventTypeAccountCreated    = "account.created"
	EventTypeAccountUpdated    = "account.updated"
	EventTypeAccountReconciled = "account.reconciled"
	EventTypeAccountDeleted    = "account.deleted"
	EventTypeAmountTransferred = "account.amount_transferred"

	EventTypeBudgetCreated            = "budget.created"
	EventTypeBudgetUpdated            = "budget.updated"
	EventTypeBudgetParticipantAdded   = "budget.participant_added"
	EventTypeBudgetParticipantRemoved = "budget.participant_removed"
	EventTypeBudgetDeleted            = "budget.deleted"

	EventTypeCategoryCreated = "category.created"
	EventTypeCategoryUpdated = "category.updated"
	EventTypeCategoryDeleted = "category.deleted"

	EventTypeCreditCardCreated = "credit_card.created"
	EventTypeCreditCardUpdated = "credit_card.updated"
	EventTypeCreditCardDeleted = "credit_card.deleted"

	EventTypeBillCreated  = "credit_card_bill.created"
	EventTypeBillClosed   = "credit_card_bill.closed"
	EventTypeBillPaid     = "credit_card_bill.paid"
	EventTypeBillReopened = "credit_card_bill.reopened"
	EventTypeBillOverdue  = "credit_card_bill.overdue"
	EventTypeBillDeleted  = "credit_card_bill.deleted"

	EventTypeGoalCreated       = "goal.created"
	EventTypeGoalAmountAdded   = "goal.amount_added"
	EventTypeGoalAmountRemoved = "goal.amount_removed"
	EventTypeGoalDeleted       = "goal.deleted"

	EventTypeTransactionCreated       = "transaction.created"
	EventTypeTransactionCompleted     = "transaction.completed"
	EventTypeTransactionCancelled     = "transaction.cancelled"
	EventTypeTransactionMarkedOverdue = "transaction.marked_overdue"
	EventTypeTransactionDeleted       = "transaction.deleted"

	EventTypeEnvelopeCreated   = "envelope.created"
	EventTypeEnvelopeAllocated = "envelope.allocated"
	EventTypeEnvelopeSpent     = "envelope.spent"
	EventTypeEnvelopeDeleted   = "envelope.deleted"
)

// Aggregate types
const (
	AggregateTypeAccount        = "account"
	AggregateTypeBudget         = "budget"
	AggregateTypeCategory       = "category"
	AggregateTypeCreditCard     = "credit_card"
	AggregateTypeCreditCardBill = "credit_card_bill"
	AggregateTypeGoal           = "goal"
	AggregateTypeTransaction    = "transaction"
	AggregateTypeEnvelope       = "envelope"
)

// TransferDirection marks which side of a transfer an account event
// describes.
type TransferDirection string

const (
	TransferDirectionIn  TransferDirection = "IN"
	TransferDirectionOut TransferDirection = "OUT"
)

// Event is an immutable fact recorded by an aggregate mutation.
type Event interface {
	AggregateID() string
	Type() string
	OccurredAt() time.Time
	Version() int

	setVersion(v int)
}

// BaseEvent carries the common event shape: aggregate id, timestamp and
// the per-aggregate event sequence number.
type BaseEvent struct {
	aggregateID string
	eventType   string
	occurredAt  time.Time
	version     int
}

func newBaseEvent(aggregateID EntityID, eventType string) BaseEvent {
	return BaseEvent{
		aggregateID: aggregateID.String(),
		eventType:   eventType,
		occurredAt:  time.Now().UTC(),
	}
}

func (e *BaseEvent) AggregateID() string    { return e.aggregateID }
func (e *BaseEvent) Type() string           { return e.eventType }
func (e *BaseEvent) OccurredAt() time.Time  { return e.occurredAt }
func (e *BaseEvent) Version() int           { return e.version }
func (e *BaseEvent) setVersion(version int) { e.version = version }

// eventLog is the append-only event list owned by each aggregate.
// DrainEvents hands the pending events to the caller and resets the log;
// there is no ambient event bus.
type eventLog struct {
	events []Event
}

func (l *eventLog) record(e Event) {
	e.setVersion(len(l.events) + 1)
	l.events = append(l.events, e)
}

// DrainEvents returns the recorded events and clears the log.
func (l *eventLog) DrainEvents() []Event {
	events := l.events
	l.events = nil
	return events
}

// PendingEvents returns the recorded events without clearing the log.
func (l *eventLog) PendingEvents() []Event {
	return l.events
}

// Account events

type AccountCreatedEvent struct {
	BaseEvent
	Name         string
	AccountType  AccountType
	BudgetID     string
	BalanceCents int64
}

type AccountUpdatedEvent struct {
	BaseEvent
	Name string
}

type AccountReconciledEvent struct {
	BaseEvent
	PreviousBalanceCents int64
	CurrentBalanceCents  int64
}

type AccountDeletedEvent struct {
	BaseEvent
}

type AmountTransferredEvent struct {
	BaseEvent
	FromAccountID string
	ToAccountID   string
	AmountCents   int64
	Direction     TransferDirection
}

// Budget events

type BudgetCreatedEvent struct {
	BaseEvent
	Name    string
	OwnerID string
}

type BudgetUpdatedEvent struct {
	BaseEvent
	Name string
}

type BudgetParticipantAddedEvent struct {
	BaseEvent
	ParticipantID string
}

type BudgetParticipantRemovedEvent struct {
	BaseEvent
	ParticipantID string
}

type BudgetDeletedEvent struct {
	BaseEvent
}

// Category events

type CategoryCreatedEvent struct {
	BaseEvent
	Name         string
	CategoryType CategoryType
	BudgetID     string
}

type CategoryUpdatedEvent struct {
	BaseEvent
	Name string
}

type CategoryDeletedEvent struct {
	BaseEvent
}

// Credit card events

type CreditCardCreatedEvent struct {
	BaseEvent
	Name       string
	LimitCents int64
	BudgetID   string
}

type CreditCardUpdatedEvent struct {
	BaseEvent
	Name       string
	LimitCents int64
}

type CreditCardDeletedEvent struct {
	BaseEvent
}

// Credit card bill events

type CreditCardBillCreatedEvent struct {
	BaseEvent
	CreditCardID string
	ClosingDate  time.Time
	DueDate      time.Time
	AmountCents  int64
}

type CreditCardBillClosedEvent struct {
	BaseEvent
}

type CreditCardBillPaidEvent struct {
	BaseEvent
	CreditCardID string
	AmountCents  int64
	PaidBy       string
	PaidAt       time.Time
}

type CreditCardBillReopenedEvent struct {
	BaseEvent
	Justification string
}

type CreditCardBillOverdueEvent struct {
	BaseEvent
}

type CreditCardBillDeletedEvent struct {
	BaseEvent
}

// Goal events

type GoalCreatedEvent struct {
	BaseEvent
	Name             string
	TotalAmountCents int64
	BudgetID         string
	SourceAccountID  string
}

type GoalAmountAddedEvent struct {
	BaseEvent
	AmountCents      int64
	AccumulatedCents int64
}

type GoalAmountRemovedEvent struct {
	BaseEvent
	AmountCents      int64
	AccumulatedCents int64
}

type GoalDeletedEvent struct {
	BaseEvent
}

// Transaction events

type TransactionCreatedEvent struct {
	BaseEvent
	Description     string
	AmountCents     int64
	TransactionType TransactionType
	Status          TransactionStatus
	BudgetID        string
}

type TransactionCompletedEvent struct {
	BaseEvent
}

type TransactionCancelledEvent struct {
	BaseEvent
}

type TransactionMarkedOverdueEvent struct {
	BaseEvent
}

type TransactionDeletedEvent struct {
	BaseEvent
}

// Envelope events

type EnvelopeCreatedEvent struct {
	BaseEvent
	Name           string
	BudgetID       string
	CategoryID     string
	AllocatedCents int64
}

type EnvelopeAllocatedEvent struct {
	BaseEvent
	AmountCents    int64
	AllocatedCents int64
}

type EnvelopeSpentEvent struct {
	BaseEvent
	AmountCents int64
	SpentCents  int64
}

type EnvelopeDeletedEvent struct {
	BaseEvent
}
