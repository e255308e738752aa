package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
)

// AccountRepository implements usecase.AccountRepository.
type AccountRepository struct {
	pool *pgxpool.Pool
}

// NewAccountRepository creates a new AccountRepository.
func NewAccountRepository(pool *pgxpool.Pool) *AccountRepository {
	return &AccountRepository{pool: pool}
}

const accountColumns = `id, name, type, budget_id, balance_cents, description, created_at, updated_at, deleted`

// Create inserts a new account within a transaction.
func (r *AccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO accounts (`+accountColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		account.ID().String(),
		account.Name(),
		string(account.Type()),
		account.BudgetID().String(),
		account.Balance().Cents(),
		account.Description(),
		account.CreatedAt(),
		account.UpdatedAt(),
		account.IsDeleted(),
	)

	return err
}

// GetByID retrieves an account by ID.
func (r *AccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	return scanAccount(r.pool.QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves an account by ID with a FOR UPDATE lock.
func (r *AccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error) {
	return scanAccount(txOf(tx).QueryRow(ctx, `
		SELECT `+accountColumns+` FROM accounts WHERE id = $1 FOR UPDATE`, id))
}

// GetByIDsForUpdate retrieves multiple accounts with FOR UPDATE locks.
// Rows come back in id order, matching the caller's sorted lock order.
func (r *AccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	rows, err := txOf(tx).Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE id = ANY($1)
		ORDER BY id
		FOR UPDATE`, ids)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Account, error) {
		return scanAccount(rows)
	})
}

// Update persists the current state of an account within a transaction.
func (r *AccountRepository) Update(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	_, err := txOf(tx).Exec(ctx, `
		UPDATE accounts
		SET name = $2, balance_cents = $3, description = $4, updated_at = $5, deleted = $6
		WHERE id = $1`,
		account.ID().String(),
		account.Name(),
		account.Balance().Cents(),
		account.Description(),
		account.UpdatedAt(),
		account.IsDeleted(),
	)

	return err
}

// ListByBudget lists the accounts of a budget with pagination.
func (r *AccountRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Account, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+accountColumns+` FROM accounts
		WHERE budget_id = $1 AND NOT deleted
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`, budgetID, limit, offset)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Account, error) {
		return scanAccount(rows)
	})
}

func scanAccount(row pgx.Row) (*domain.Account, error) {
	var s domain.RestoredAccount
	err := row.Scan(&s.ID, &s.Name, &s.Type, &s.BudgetID, &s.BalanceCents,
		&s.Description, &s.CreatedAt, &s.UpdatedAt, &s.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Account")
		}

		return nil, err
	}

	return domain.RestoreAccount(s), nil
}
