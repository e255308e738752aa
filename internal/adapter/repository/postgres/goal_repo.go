package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
)

// GoalRepository implements usecase.GoalRepository.
type GoalRepository struct {
	pool *pgxpool.Pool
}

// NewGoalRepository creates a new GoalRepository.
func NewGoalRepository(pool *pgxpool.Pool) *GoalRepository {
	return &GoalRepository{pool: pool}
}

const goalColumns = `id, name, total_amount_cents, accumulated_cents, deadline, budget_id, source_account_id, created_at, updated_at, deleted`

// Create inserts a new goal within a transaction.
func (r *GoalRepository) Create(ctx context.Context, tx usecase.Tx, goal *domain.Goal) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO goals (`+goalColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		goal.ID().String(),
		goal.Name(),
		goal.TotalAmount().Cents(),
		goal.AccumulatedAmount().Cents(),
		goal.Deadline(),
		goal.BudgetID().String(),
		goal.SourceAccountID().String(),
		goal.CreatedAt(),
		goal.UpdatedAt(),
		goal.IsDeleted(),
	)

	return err
}

// GetByID retrieves a goal by ID.
func (r *GoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	return scanGoal(r.pool.QueryRow(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a goal by ID with a FOR UPDATE lock.
func (r *GoalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Goal, error) {
	return scanGoal(txOf(tx).QueryRow(ctx, `
		SELECT `+goalColumns+` FROM goals WHERE id = $1 FOR UPDATE`, id))
}

// Update persists the current state of a goal within a transaction.
func (r *GoalRepository) Update(ctx context.Context, tx usecase.Tx, goal *domain.Goal) error {
	_, err := txOf(tx).Exec(ctx, `
		UPDATE goals
		SET name = $2, accumulated_cents = $3, deadline = $4, updated_at = $5, deleted = $6
		WHERE id = $1`,
		goal.ID().String(),
		goal.Name(),
		goal.AccumulatedAmount().Cents(),
		goal.Deadline(),
		goal.UpdatedAt(),
		goal.IsDeleted(),
	)

	return err
}

// ListBySourceAccount lists every live goal funded from an account. The
// reservation check needs the full set, so there is no pagination.
func (r *GoalRepository) ListBySourceAccount(ctx context.Context, accountID string) ([]*domain.Goal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE source_account_id = $1 AND NOT deleted
		ORDER BY created_at, id`, accountID)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Goal, error) {
		return scanGoal(rows)
	})
}

// ListByBudget lists the goals of a budget with pagination.
func (r *GoalRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Goal, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+goalColumns+` FROM goals
		WHERE budget_id = $1 AND NOT deleted
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`, budgetID, limit, offset)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Goal, error) {
		return scanGoal(rows)
	})
}

func scanGoal(row pgx.Row) (*domain.Goal, error) {
	var s domain.RestoredGoal
	err := row.Scan(&s.ID, &s.Name, &s.TotalAmountCents, &s.AccumulatedCents, &s.Deadline,
		&s.BudgetID, &s.SourceAccountID, &s.CreatedAt, &s.UpdatedAt, &s.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Goal")
		}

		return nil, err
	}

	return domain.RestoreGoal(s), nil
}
