package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
)

// CategoryRepository implements usecase.CategoryRepository.
type CategoryRepository struct {
	pool *pgxpool.Pool
}

// NewCategoryRepository creates a new CategoryRepository.
func NewCategoryRepository(pool *pgxpool.Pool) *CategoryRepository {
	return &CategoryRepository{pool: pool}
}

const categoryColumns = `id, name, type, budget_id, created_at, updated_at, deleted`

// Create inserts a new category within a transaction.
func (r *CategoryRepository) Create(ctx context.Context, tx usecase.Tx, category *domain.Category) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO categories (`+categoryColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`,
		category.ID().String(),
		category.Name(),
		string(category.Type()),
		category.BudgetID().String(),
		category.CreatedAt(),
		category.UpdatedAt(),
		category.IsDeleted(),
	)

	return err
}

// GetByID retrieves a category by ID.
func (r *CategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	return scanCategory(r.pool.QueryRow(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a category by ID with a FOR UPDATE lock.
func (r *CategoryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Category, error) {
	return scanCategory(txOf(tx).QueryRow(ctx, `
		SELECT `+categoryColumns+` FROM categories WHERE id = $1 FOR UPDATE`, id))
}

// Update persists the current state of a category within a transaction.
func (r *CategoryRepository) Update(ctx context.Context, tx usecase.Tx, category *domain.Category) error {
	_, err := txOf(tx).Exec(ctx, `
		UPDATE categories
		SET name = $2, updated_at = $3, deleted = $4
		WHERE id = $1`,
		category.ID().String(),
		category.Name(),
		category.UpdatedAt(),
		category.IsDeleted(),
	)

	return err
}

// ListByBudget lists the categories of a budget with pagination.
func (r *CategoryRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Category, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+categoryColumns+` FROM categories
		WHERE budget_id = $1 AND NOT deleted
		ORDER BY created_at, id
		LIMIT $2 OFFSET $3`, budgetID, limit, offset)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Category, error) {
		return scanCategory(rows)
	})
}

func scanCategory(row pgx.Row) (*domain.Category, error) {
	var s domain.RestoredCategory
	err := row.Scan(&s.ID, &s.Name, &s.Type, &s.BudgetID,
		&s.CreatedAt, &s.UpdatedAt, &s.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Category")
		}

		return nil, err
	}

	return domain.RestoreCategory(s), nil
}
