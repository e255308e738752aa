package usecase

import (
	"context"

	"github.com/iho/budgeteer/internal/domain"
)

// EnvelopeUseCase handles monthly envelope business logic.
type EnvelopeUseCase struct {
	txManager    TxManager
	envelopeRepo EnvelopeRepository
	outboxRepo   OutboxRepository
	idGen        IDGenerator
}

// NewEnvelopeUseCase creates a new EnvelopeUseCase.
func NewEnvelopeUseCase(
	txManager TxManager,
	envelopeRepo EnvelopeRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *EnvelopeUseCase {
	return &EnvelopeUseCase{
		txManager:    txManager,
		envelopeRepo: envelopeRepo,
		outboxRepo:   outboxRepo,
		idGen:        idGen,
	}
}

// CreateEnvelopeInput represents input for creating an envelope.
type CreateEnvelopeInput struct {
	Name       string
	BudgetID   string
	CategoryID string
	Month      int
	Year       int
	Allocation float64
}

// CreateEnvelope validates the input and persists the new envelope.
func (uc *EnvelopeUseCase) CreateEnvelope(ctx context.Context, input CreateEnvelopeInput) (*domain.Envelope, error) {
	res := domain.NewEnvelope(domain.NewEnvelopeInput{
		Name:       input.Name,
		BudgetID:   input.BudgetID,
		CategoryID: input.CategoryID,
		Month:      input.Month,
		Year:       input.Year,
		Allocation: input.Allocation,
	})
	if res.HasError() {
		return nil, res.Err()
	}
	envelope := res.Value()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.envelopeRepo.Create(ctx, tx, envelope); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeEnvelope, envelope.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return envelope, nil
}

// GetEnvelope retrieves an envelope by ID.
func (uc *EnvelopeUseCase) GetEnvelope(ctx context.Context, id string) (*domain.Envelope, error) {
	return uc.envelopeRepo.GetByID(ctx, id)
}

// ListEnvelopesInput represents input for listing the envelopes of a
// budget month.
type ListEnvelopesInput struct {
	BudgetID string
	Month    int
	Year     int
}

// ListEnvelopes lists the envelopes of a budget month.
func (uc *EnvelopeUseCase) ListEnvelopes(ctx context.Context, input ListEnvelopesInput) ([]*domain.Envelope, error) {
	return uc.envelopeRepo.ListByBudgetMonth(ctx, input.BudgetID, input.Month, input.Year)
}

// AllocateToEnvelope grows the envelope allocation.
func (uc *EnvelopeUseCase) AllocateToEnvelope(ctx context.Context, id string, amount float64) (*domain.Envelope, error) {
	m, err := domain.NewMoney(amount)
	if err != nil {
		return nil, err
	}

	return uc.mutate(ctx, id, func(e *domain.Envelope) error {
		return e.Allocate(m)
	})
}

// RecordEnvelopeSpending draws spending from the envelope.
func (uc *EnvelopeUseCase) RecordEnvelopeSpending(ctx context.Context, id string, amount float64) (*domain.Envelope, error) {
	m, err := domain.NewMoney(amount)
	if err != nil {
		return nil, err
	}

	return uc.mutate(ctx, id, func(e *domain.Envelope) error {
		return e.RecordSpending(m)
	})
}

// ReleaseEnvelopeSpending returns spending to the envelope, e.g. after
// a cancelled transaction.
func (uc *EnvelopeUseCase) ReleaseEnvelopeSpending(ctx context.Context, id string, amount float64) (*domain.Envelope, error) {
	m, err := domain.NewMoney(amount)
	if err != nil {
		return nil, err
	}

	return uc.mutate(ctx, id, func(e *domain.Envelope) error {
		return e.ReleaseSpending(m)
	})
}

// DeleteEnvelope soft-deletes an envelope.
func (uc *EnvelopeUseCase) DeleteEnvelope(ctx context.Context, id string) error {
	_, err := uc.mutate(ctx, id, func(e *domain.Envelope) error {
		return e.Delete()
	})
	return err
}

func (uc *EnvelopeUseCase) mutate(ctx context.Context, id string, fn func(*domain.Envelope) error) (*domain.Envelope, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	envelope, err := uc.envelopeRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(envelope); err != nil {
		return nil, err
	}

	if err := uc.envelopeRepo.Update(ctx, tx, envelope); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeEnvelope, envelope.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return envelope, nil
}
