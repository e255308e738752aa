package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
)

// EnvelopeRepository implements usecase.EnvelopeRepository.
type EnvelopeRepository struct {
	pool *pgxpool.Pool
}

// NewEnvelopeRepository creates a new EnvelopeRepository.
func NewEnvelopeRepository(pool *pgxpool.Pool) *EnvelopeRepository {
	return &EnvelopeRepository{pool: pool}
}

const envelopeColumns = `id, name, budget_id, category_id, month, year, allocated_cents, spent_cents, created_at, updated_at, deleted`

// Create inserts a new envelope within a transaction.
func (r *EnvelopeRepository) Create(ctx context.Context, tx usecase.Tx, envelope *domain.Envelope) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO envelopes (`+envelopeColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		envelope.ID().String(),
		envelope.Name(),
		envelope.BudgetID().String(),
		envelope.CategoryID().String(),
		envelope.Month(),
		envelope.Year(),
		envelope.Allocated().Cents(),
		envelope.Spent().Cents(),
		envelope.CreatedAt(),
		envelope.UpdatedAt(),
		envelope.IsDeleted(),
	)

	return err
}

// GetByID retrieves an envelope by ID.
func (r *EnvelopeRepository) GetByID(ctx context.Context, id string) (*domain.Envelope, error) {
	return scanEnvelope(r.pool.QueryRow(ctx, `
		SELECT `+envelopeColumns+` FROM envelopes WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves an envelope by ID with a FOR UPDATE lock.
func (r *EnvelopeRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Envelope, error) {
	return scanEnvelope(txOf(tx).QueryRow(ctx, `
		SELECT `+envelopeColumns+` FROM envelopes WHERE id = $1 FOR UPDATE`, id))
}

// Update persists the current state of an envelope within a transaction.
func (r *EnvelopeRepository) Update(ctx context.Context, tx usecase.Tx, envelope *domain.Envelope) error {
	_, err := txOf(tx).Exec(ctx, `
		UPDATE envelopes
		SET name = $2, allocated_cents = $3, spent_cents = $4, updated_at = $5, deleted = $6
		WHERE id = $1`,
		envelope.ID().String(),
		envelope.Name(),
		envelope.Allocated().Cents(),
		envelope.Spent().Cents(),
		envelope.UpdatedAt(),
		envelope.IsDeleted(),
	)

	return err
}

// ListByBudgetMonth lists the envelopes of a budget for a given month.
func (r *EnvelopeRepository) ListByBudgetMonth(ctx context.Context, budgetID string, month, year int) ([]*domain.Envelope, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+envelopeColumns+` FROM envelopes
		WHERE budget_id = $1 AND month = $2 AND year = $3 AND NOT deleted
		ORDER BY name, id`, budgetID, month, year)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.Envelope, error) {
		return scanEnvelope(rows)
	})
}

func scanEnvelope(row pgx.Row) (*domain.Envelope, error) {
	var s domain.RestoredEnvelope
	err := row.Scan(&s.ID, &s.Name, &s.BudgetID, &s.CategoryID, &s.Month, &s.Year,
		&s.AllocatedCents, &s.SpentCents, &s.CreatedAt, &s.UpdatedAt, &s.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("Envelope")
		}

		return nil, err
	}

	return domain.RestoreEnvelope(s), nil
}
