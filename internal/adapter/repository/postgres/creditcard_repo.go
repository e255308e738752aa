package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
)

// CreditCardRepository implements usecase.CreditCardRepository.
type CreditCardRepository struct {
	pool *pgxpool.Pool
}

// NewCreditCardRepository creates a new CreditCardRepository.
func NewCreditCardRepository(pool *pgxpool.Pool) *CreditCardRepository {
	return &CreditCardRepository{pool: pool}
}

const creditCardColumns = `id, name, limit_cents, closing_day, due_day, budget_id, created_at, updated_at, deleted`

// Create inserts a new credit card within a transaction.
func (r *CreditCardRepository) Create(ctx context.Context, tx usecase.Tx, card *domain.CreditCard) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO credit_cards (`+creditCardColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		card.ID().String(),
		card.Name(),
		card.Limit().Cents(),
		card.ClosingDay().Int(),
		card.DueDay().Int(),
		card.BudgetID().String(),
		card.CreatedAt(),
		card.UpdatedAt(),
		card.IsDeleted(),
	)

	return err
}

// GetByID retrieves a credit card by ID.
func (r *CreditCardRepository) GetByID(ctx context.Context, id string) (*domain.CreditCard, error) {
	return scanCreditCard(r.pool.QueryRow(ctx, `
		SELECT `+creditCardColumns+` FROM credit_cards WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a credit card by ID with a FOR UPDATE lock.
func (r *CreditCardRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.CreditCard, error) {
	return scanCreditCard(txOf(tx).QueryRow(ctx, `
		SELECT `+creditCardColumns+` FROM credit_cards WHERE id = $1 FOR UPDATE`, id))
}

// Update persists the current state of a credit card within a transaction.
func (r *CreditCardRepository) Update(ctx context.Context, tx usecase.Tx, card *domain.CreditCard) error {
	_, err := txOf(tx).Exec(ctx, `
		UPDATE credit_cards
		SET name = $2, limit_cents = $3, closing_day = $4, due_day = $5, updated_at = $6, deleted = $7
		WHERE id = $1`,
		card.ID().String(),
		card.Name(),
		card.Limit().Cents(),
		card.ClosingDay().Int(),
		card.DueDay().Int(),
		card.UpdatedAt(),
		card.IsDeleted(),
	)

	return err
}

// ListByBudget lists the credit cards of a budget with pagination.
func (r *CreditCardRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.CreditCard, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+creditCardColumns+` FROM credit_cards
		WHERE budget_id = $1 AND NOT deleted
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`, budgetID, limit, offset)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.CreditCard, error) {
		return scanCreditCard(rows)
	})
}

func scanCreditCard(row pgx.Row) (*domain.CreditCard, error) {
	var s domain.RestoredCreditCard
	err := row.Scan(&s.ID, &s.Name, &s.LimitCents, &s.ClosingDay, &s.DueDay,
		&s.BudgetID, &s.CreatedAt, &s.UpdatedAt, &s.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("CreditCard")
		}

		return nil, err
	}

	return domain.RestoreCreditCard(s), nil
}
