package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
)

// BudgetRepository implements usecase.BudgetRepository.
type BudgetRepository struct {
	pool *pgxpool.Pool
}

// NewBudgetRepository creates a new BudgetRepository.
func NewBudgetRepository(pool *pgxpool.Pool) *BudgetRepository {
	return &BudgetRepository{pool: pool}
}

const budgetColumns = `id, name, owner_id, participant_ids, type, type_explicit, created_at, updated_at, deleted`

// Create inserts a new budget within a transaction.
func (r *BudgetRepository) Create(ctx context.Context, tx usecase.Tx, budget *domain.Budget) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO budgets (`+budgetColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		budget.ID().String(),
		budget.Name(),
		budget.OwnerID().String(),
		participantStrings(budget),
		string(budget.Type()),
		budget.TypeIsExplicit(),
		budget.CreatedAt(),
		budget.UpdatedAt(),
		budget.IsDeleted(),
	)

	return err
}

// GetByID retrieves a budget by ID.
func (r *BudgetRepository) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	return scanBudget(r.pool.QueryRow(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a budget by ID with a FOR UPDATE lock.
func (r *BudgetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Budget, error) {
	return scanBudget(txOf(tx).QueryRow(ctx, `
		SELECT `+budgetColumns+` FROM budgets WHERE id = $1 FOR UPDATE`, id))
}

// Update persists the current state of a budget within a transaction.
func (r *BudgetRepository) Update(ctx context.Context, tx usecase.Tx, budget *domain.Budget) error {
	_, err := txOf(tx).Exec(ctx, `
		UPDATE budgets
		SET name = $2, participant_ids = $3, type = $4, type_explicit = $5, updated_at = $6, deleted = $7
		WHERE id = $1`,
		budget.ID().String(),
		budget.Name(),
		participantStrings(budget),
		string(budget.Type()),
		budget.TypeIsExplicit(),
		budget.UpdatedAt(),
		budget.IsDeleted(),
	)

	return err
}

// ListByParticipant lists the budgets a participant belongs to.
func (r *BudgetRepository) ListByParticipant(ctx context.Context, participantID string, limit, offset int) ([]*domain.Budget, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+budgetColumns+` FROM budgets
		WHERE $1 = ANY(participant_ids) AND NOT deleted
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`, participantID, limit, offset)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Budget, error) {
		return scanBudget(rows)
	})
}

func participantStrings(budget *domain.Budget) []string {
	ids := budget.ParticipantIDs()
	out := make([]string, 0, len(ids))
	for _, id := range ids {
		out = append(out, id.String())
	}
	return out
}

func scanBudget(row pgx.Row) (*domain.Budget, error) {
	var s domain.RestoredBudget
	err := row.Scan(&s.ID, &s.Name, &s.OwnerID, &s.ParticipantIDs, &s.Type,
		&s.TypeExplicit, &s.CreatedAt, &s.UpdatedAt, &s.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Budget")
		}

		return nil, err
	}

	return domain.RestoreBudget(s), nil
}
