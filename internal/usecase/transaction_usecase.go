package usecase

import (
	"context"
	"time"

	"github.com/iho/budgeteer/internal/domain"
)

// TransactionUseCase handles transaction business logic.
type TransactionUseCase struct {
	txManager       TxManager
	transactionRepo TransactionRepository
	categoryRepo    CategoryRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
}

// NewTransactionUseCase creates a new TransactionUseCase.
func NewTransactionUseCase(
	txManager TxManager,
	transactionRepo TransactionRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *TransactionUseCase {
	return &TransactionUseCase{
		txManager:       txManager,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
	}
}

// CreateTransactionInput represents input for creating a transaction.
type CreateTransactionInput struct {
	Description     string
	Amount          float64
	Type            string
	Status          string
	TransactionDate time.Time
	CategoryID      string
	BudgetID        string
	CreditCardID    string
}

// CreateTransaction validates the input, verifies the category belongs
// to the budget and persists the new transaction.
func (uc *TransactionUseCase) CreateTransaction(ctx context.Context, input CreateTransactionInput) (*domain.Transaction, error) {
	res := domain.NewTransaction(domain.NewTransactionInput{
		Description:     input.Description,
		Amount:          input.Amount,
		Type:            input.Type,
		Status:          input.Status,
		TransactionDate: input.TransactionDate,
		CategoryID:      input.CategoryID,
		BudgetID:        input.BudgetID,
		CreditCardID:    input.CreditCardID,
	})
	if res.HasError() {
		return nil, res.Err()
	}
	transaction := res.Value()

	category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.IsDeleted() || !category.BudgetID().Equal(transaction.BudgetID()) {
		return nil, domain.NewNotFoundError("Category")
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.transactionRepo.Create(ctx, tx, transaction); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeTransaction, transaction.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transaction, nil
}

// GetTransaction retrieves a transaction by ID.
func (uc *TransactionUseCase) GetTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.transactionRepo.GetByID(ctx, id)
}

// ListTransactionsInput represents input for listing transactions.
type ListTransactionsInput struct {
	BudgetID string
	Limit    int
	Offset   int
}

// ListTransactions lists the transactions of a budget with pagination.
func (uc *TransactionUseCase) ListTransactions(ctx context.Context, input ListTransactionsInput) ([]*domain.Transaction, error) {
	return uc.transactionRepo.ListByBudget(ctx, input.BudgetID, clampLimit(input.Limit), input.Offset)
}

// CompleteTransaction moves a transaction to COMPLETED.
func (uc *TransactionUseCase) CompleteTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.mutate(ctx, id, func(t *domain.Transaction) error {
		return t.Complete()
	})
}

// CancelTransaction moves a transaction to CANCELLED.
func (uc *TransactionUseCase) CancelTransaction(ctx context.Context, id string) (*domain.Transaction, error) {
	return uc.mutate(ctx, id, func(t *domain.Transaction) error {
		return t.Cancel()
	})
}

// DeleteTransaction soft-deletes a transaction.
func (uc *TransactionUseCase) DeleteTransaction(ctx context.Context, id string) error {
	_, err := uc.mutate(ctx, id, func(t *domain.Transaction) error {
		return t.Delete()
	})
	return err
}

// MarkOverdueTransactions flags every scheduled transaction whose date
// has passed. It returns the number of transactions flagged.
func (uc *TransactionUseCase) MarkOverdueTransactions(ctx context.Context, limit int) (int, error) {
	stale, err := uc.transactionRepo.ListScheduledBefore(ctx, time.Now().UTC(), clampLimit(limit))
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, s := range stale {
		if _, err := uc.mutate(ctx, s.ID().String(), func(t *domain.Transaction) error {
			return t.MarkAsOverdue()
		}); err != nil {
			return flagged, err
		}
		flagged++
	}

	return flagged, nil
}

func (uc *TransactionUseCase) mutate(ctx context.Context, id string, fn func(*domain.Transaction) error) (*domain.Transaction, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	transaction, err := uc.transactionRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(transaction); err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Update(ctx, tx, transaction); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeTransaction, transaction.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return transaction, nil
}
