package postgres

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
)

// TransactionRepository implements usecase.TransactionRepository.
type TransactionRepository struct {
	pool *pgxpool.Pool
}

// NewTransactionRepository creates a new TransactionRepository.
func NewTransactionRepository(pool *pgxpool.Pool) *TransactionRepository {
	return &TransactionRepository{pool: pool}
}

const transactionColumns = `id, description, amount_cents, type, status, transaction_date, category_id, budget_id, credit_card_id, created_at, updated_at, deleted`

// Create inserts a new transaction record within a database transaction.
func (r *TransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO transactions (`+transactionColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		transaction.ID().String(),
		transaction.Description(),
		transaction.Amount().Cents(),
		string(transaction.Type()),
		string(transaction.Status()),
		transaction.TransactionDate(),
		transaction.CategoryID().String(),
		transaction.BudgetID().String(),
		creditCardIDString(transaction),
		transaction.CreatedAt(),
		transaction.UpdatedAt(),
		transaction.IsDeleted(),
	)

	return err
}

// GetByID retrieves a transaction by ID.
func (r *TransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	return scanTransaction(r.pool.QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a transaction by ID with a FOR UPDATE lock.
func (r *TransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error) {
	return scanTransaction(txOf(tx).QueryRow(ctx, `
		SELECT `+transactionColumns+` FROM transactions WHERE id = $1 FOR UPDATE`, id))
}

// Update persists the current state of a transaction.
func (r *TransactionRepository) Update(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	_, err := txOf(tx).Exec(ctx, `
		UPDATE transactions
		SET description = $2, status = $3, updated_at = $4, deleted = $5
		WHERE id = $1`,
		transaction.ID().String(),
		transaction.Description(),
		string(transaction.Status()),
		transaction.UpdatedAt(),
		transaction.IsDeleted(),
	)

	return err
}

// ListByBudget lists the transactions of a budget, newest first.
func (r *TransactionRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE budget_id = $1 AND NOT deleted
		ORDER BY transaction_date DESC, id
		LIMIT $2 OFFSET $3`, budgetID, limit, offset)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Transaction, error) {
		return scanTransaction(rows)
	})
}

// ListScheduledBefore lists scheduled transactions dated before the
// given instant, oldest first.
func (r *TransactionRepository) ListScheduledBefore(ctx context.Context, before time.Time, limit int) ([]*domain.Transaction, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+transactionColumns+` FROM transactions
		WHERE status = $1 AND transaction_date < $2 AND NOT deleted
		ORDER BY transaction_date, id
		LIMIT $3`, string(domain.TransactionStatusScheduled), before, limit)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Transaction, error) {
		return scanTransaction(rows)
	})
}

// CountByCategory counts live transactions referencing a category.
func (r *TransactionRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	var count int64
	err := r.pool.QueryRow(ctx, `
		SELECT COUNT(*) FROM transactions
		WHERE category_id = $1 AND NOT deleted`, categoryID).Scan(&count)

	return count, err
}

func creditCardIDString(transaction *domain.Transaction) *string {
	id := transaction.CreditCardID()
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	var s domain.RestoredTransaction
	err := row.Scan(&s.ID, &s.Description, &s.AmountCents, &s.Type, &s.Status,
		&s.TransactionDate, &s.CategoryID, &s.BudgetID, &s.CreditCardID,
		&s.CreatedAt, &s.UpdatedAt, &s.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Transaction")
		}

		return nil, err
	}

	return domain.RestoreTransaction(s), nil
}
