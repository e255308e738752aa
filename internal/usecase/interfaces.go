package usecase

import (
	"context"
	"time"

	"github.com/iho/budgeteer/internal/domain"
)

// AccountRepository defines data access for accounts.
type AccountRepository interface {
	Create(ctx context.Context, tx Tx, account *domain.Account) error
	GetByID(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Account, error)
	GetByIDsForUpdate(ctx context.Context, tx Tx, ids []string) ([]*domain.Account, error)
	Update(ctx context.Context, tx Tx, account *domain.Account) error
	ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Account, error)
}

// BudgetRepository defines data access for budgets.
type BudgetRepository interface {
	Create(ctx context.Context, tx Tx, budget *domain.Budget) error
	GetByID(ctx context.Context, id string) (*domain.Budget, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Budget, error)
	Update(ctx context.Context, tx Tx, budget *domain.Budget) error
	ListByParticipant(ctx context.Context, participantID string, limit, offset int) ([]*domain.Budget, error)
}

// CategoryRepository defines data access for categories.
type CategoryRepository interface {
	Create(ctx context.Context, tx Tx, category *domain.Category) error
	GetByID(ctx context.Context, id string) (*domain.Category, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Category, error)
	Update(ctx context.Context, tx Tx, category *domain.Category) error
	ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Category, error)
}

// CreditCardRepository defines data access for credit cards.
type CreditCardRepository interface {
	Create(ctx context.Context, tx Tx, card *domain.CreditCard) error
	GetByID(ctx context.Context, id string) (*domain.CreditCard, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.CreditCard, error)
	Update(ctx context.Context, tx Tx, card *domain.CreditCard) error
	ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.CreditCard, error)
}

// CreditCardBillRepository defines data access for credit card bills.
type CreditCardBillRepository interface {
	Create(ctx context.Context, tx Tx, bill *domain.CreditCardBill) error
	GetByID(ctx context.Context, id string) (*domain.CreditCardBill, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.CreditCardBill, error)
	Update(ctx context.Context, tx Tx, bill *domain.CreditCardBill) error
	ListByCard(ctx context.Context, creditCardID string, limit, offset int) ([]*domain.CreditCardBill, error)
	ListPastDue(ctx context.Context, before time.Time, limit int) ([]*domain.CreditCardBill, error)
}

// GoalRepository defines data access for goals.
type GoalRepository interface {
	Create(ctx context.Context, tx Tx, goal *domain.Goal) error
	GetByID(ctx context.Context, id string) (*domain.Goal, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Goal, error)
	Update(ctx context.Context, tx Tx, goal *domain.Goal) error
	ListBySourceAccount(ctx context.Context, accountID string) ([]*domain.Goal, error)
	ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Goal, error)
}

// TransactionRepository defines data access for transactions.
type TransactionRepository interface {
	Create(ctx context.Context, tx Tx, transaction *domain.Transaction) error
	GetByID(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Transaction, error)
	Update(ctx context.Context, tx Tx, transaction *domain.Transaction) error
	ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Transaction, error)
	ListScheduledBefore(ctx context.Context, before time.Time, limit int) ([]*domain.Transaction, error)
	CountByCategory(ctx context.Context, categoryID string) (int64, error)
}

// EnvelopeRepository defines data access for envelopes.
type EnvelopeRepository interface {
	Create(ctx context.Context, tx Tx, envelope *domain.Envelope) error
	GetByID(ctx context.Context, id string) (*domain.Envelope, error)
	GetByIDForUpdate(ctx context.Context, tx Tx, id string) (*domain.Envelope, error)
	Update(ctx context.Context, tx Tx, envelope *domain.Envelope) error
	ListByBudgetMonth(ctx context.Context, budgetID string, month, year int) ([]*domain.Envelope, error)
}

// OutboxRepository defines data access for outbox events.
type OutboxRepository interface {
	Create(ctx context.Context, tx Tx, event *OutboxEvent) error
	CreateBatch(ctx context.Context, tx Tx, events []*OutboxEvent) error
	GetUnpublished(ctx context.Context, limit int) ([]*OutboxEvent, error)
	MarkPublished(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublished(ctx context.Context, before time.Time) error
}

// Tx represents a database transaction.
type Tx interface {
	Commit(ctx context.Context) error
	Rollback(ctx context.Context) error
}

// TxManager handles transaction lifecycle.
type TxManager interface {
	Begin(ctx context.Context) (Tx, error)
}

// IDGenerator generates unique IDs for outbox events.
type IDGenerator interface {
	Generate() string
}

// Cache defines caching operations.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
}

// IdempotencyStore handles idempotency key storage.
type IdempotencyStore interface {
	// CheckAndSet atomically checks if key exists, sets if not.
	// Returns (exists, existingValue, error).
	CheckAndSet(ctx context.Context, key string, response []byte, ttl time.Duration) (bool, []byte, error)
	// Update updates an existing key with the final response.
	Update(ctx context.Context, key string, response []byte, ttl time.Duration) error
}
