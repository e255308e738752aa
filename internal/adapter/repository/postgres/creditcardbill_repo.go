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

// CreditCardBillRepository implements usecase.CreditCardBillRepository.
type CreditCardBillRepository struct {
	pool *pgxpool.Pool
}

// NewCreditCardBillRepository creates a new CreditCardBillRepository.
func NewCreditCardBillRepository(pool *pgxpool.Pool) *CreditCardBillRepository {
	return &CreditCardBillRepository{pool: pool}
}

const billColumns = `id, credit_card_id, closing_date, due_date, amount_cents, status, paid_at, created_at, updated_at, deleted`

// Create inserts a new bill within a transaction.
func (r *CreditCardBillRepository) Create(ctx context.Context, tx usecase.Tx, bill *domain.CreditCardBill) error {
	_, err := txOf(tx).Exec(ctx, `
		INSERT INTO credit_card_bills (`+billColumns+`)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`,
		bill.ID().String(),
		bill.CreditCardID().String(),
		bill.ClosingDate(),
		bill.DueDate(),
		bill.Amount().Cents(),
		string(bill.Status()),
		bill.PaidAt(),
		bill.CreatedAt(),
		bill.UpdatedAt(),
		bill.IsDeleted(),
	)

	return err
}

// GetByID retrieves a bill by ID.
func (r *CreditCardBillRepository) GetByID(ctx context.Context, id string) (*domain.CreditCardBill, error) {
	return scanBill(r.pool.QueryRow(ctx, `
		SELECT `+billColumns+` FROM credit_card_bills WHERE id = $1`, id))
}

// GetByIDForUpdate retrieves a bill by ID with a FOR UPDATE lock.
func (r *CreditCardBillRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.CreditCardBill, error) {
	return scanBill(txOf(tx).QueryRow(ctx, `
		SELECT `+billColumns+` FROM credit_card_bills WHERE id = $1 FOR UPDATE`, id))
}

// Update persists the current state of a bill within a transaction.
func (r *CreditCardBillRepository) Update(ctx context.Context, tx usecase.Tx, bill *domain.CreditCardBill) error {
	_, err := txOf(tx).Exec(ctx, `
		UPDATE credit_card_bills
		SET amount_cents = $2, status = $3, paid_at = $4, updated_at = $5, deleted = $6
		WHERE id = $1`,
		bill.ID().String(),
		bill.Amount().Cents(),
		string(bill.Status()),
		bill.PaidAt(),
		bill.UpdatedAt(),
		bill.IsDeleted(),
	)

	return err
}

// ListByCard lists the bills of a credit card, newest closing date first.
func (r *CreditCardBillRepository) ListByCard(ctx context.Context, creditCardID string, limit, offset int) ([]*domain.CreditCardBill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+billColumns+` FROM credit_card_bills
		WHERE credit_card_id = $1 AND NOT deleted
		ORDER BY closing_date DESC, id
		LIMIT $2 OFFSET $3`, creditCardID, limit, offset)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.CreditCardBill, error) {
		return scanBill(rows)
	})
}

// ListPastDue lists closed bills whose due date has passed.
func (r *CreditCardBillRepository) ListPastDue(ctx context.Context, before time.Time, limit int) ([]*domain.CreditCardBill, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+billColumns+` FROM credit_card_bills
		WHERE status = $1 AND due_date < $2 AND NOT deleted
		ORDER BY due_date, id
		LIMIT $3`, string(domain.BillStatusClosed), before, limit)
	if err != nil {
		return nil, err
	}

	return collectList(rows, func(rows pgx.Rows) (*domain.CreditCardBill, error) {
		return scanBill(rows)
	})
}

func scanBill(row pgx.Row) (*domain.CreditCardBill, error) {
	var s domain.RestoredCreditCardBill
	err := row.Scan(&s.ID, &s.CreditCardID, &s.ClosingDate, &s.DueDate, &s.AmountCents,
		&s.Status, &s.PaidAt, &s.CreatedAt, &s.UpdatedAt, &s.Deleted)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.NewNotFoundError("CreditCardBill")
		}

		return nil, err
	}

	return domain.RestoreCreditCardBill(s), nil
}
