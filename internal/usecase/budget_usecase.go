package usecase

import (
	"context"

	"github.com/iho/budgeteer/internal/domain"
)

// BudgetUseCase handles budget business logic.
type BudgetUseCase struct {
	txManager  TxManager
	budgetRepo BudgetRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
}

// NewBudgetUseCase creates a new BudgetUseCase.
func NewBudgetUseCase(
	txManager TxManager,
	budgetRepo BudgetRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *BudgetUseCase {
	return &BudgetUseCase{
		txManager:  txManager,
		budgetRepo: budgetRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
	}
}

// CreateBudgetInput represents input for creating a budget.
type CreateBudgetInput struct {
	Name           string
	Type           string
	OwnerID        string
	ParticipantIDs []string
}

// CreateBudget validates the input and persists the new budget together
// with its creation event. The owner is always a participant.
func (uc *BudgetUseCase) CreateBudget(ctx context.Context, input CreateBudgetInput) (*domain.Budget, error) {
	res := domain.NewBudget(domain.NewBudgetInput{
		Name:           input.Name,
		Type:           input.Type,
		OwnerID:        input.OwnerID,
		ParticipantIDs: input.ParticipantIDs,
	})
	if res.HasError() {
		return nil, res.Err()
	}
	budget := res.Value()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.budgetRepo.Create(ctx, tx, budget); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeBudget, budget.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return budget, nil
}

// GetBudget retrieves a budget by ID.
func (uc *BudgetUseCase) GetBudget(ctx context.Context, id string) (*domain.Budget, error) {
	return uc.budgetRepo.GetByID(ctx, id)
}

// ListBudgetsInput represents input for listing budgets a user
// participates in.
type ListBudgetsInput struct {
	ParticipantID string
	Limit         int
	Offset        int
}

// ListBudgets lists the budgets a user participates in.
func (uc *BudgetUseCase) ListBudgets(ctx context.Context, input ListBudgetsInput) ([]*domain.Budget, error) {
	return uc.budgetRepo.ListByParticipant(ctx, input.ParticipantID, clampLimit(input.Limit), input.Offset)
}

// RenameBudget renames a budget.
func (uc *BudgetUseCase) RenameBudget(ctx context.Context, id, name string) (*domain.Budget, error) {
	return uc.mutate(ctx, id, func(b *domain.Budget) error {
		return b.UpdateName(name)
	})
}

// AddParticipant adds a user to the budget. Adding an existing
// participant is a no-op.
func (uc *BudgetUseCase) AddParticipant(ctx context.Context, budgetID, participantID string) (*domain.Budget, error) {
	return uc.mutate(ctx, budgetID, func(b *domain.Budget) error {
		return b.AddParticipant(participantID)
	})
}

// RemoveParticipant removes a user from the budget. The owner can never
// be removed.
func (uc *BudgetUseCase) RemoveParticipant(ctx context.Context, budgetID, participantID string) (*domain.Budget, error) {
	return uc.mutate(ctx, budgetID, func(b *domain.Budget) error {
		return b.RemoveParticipant(participantID)
	})
}

// DeleteBudget soft-deletes a budget.
func (uc *BudgetUseCase) DeleteBudget(ctx context.Context, id string) error {
	_, err := uc.mutate(ctx, id, func(b *domain.Budget) error {
		return b.Delete()
	})
	return err
}

// mutate runs fn on the locked budget and persists the change and its
// events atomically.
func (uc *BudgetUseCase) mutate(ctx context.Context, id string, fn func(*domain.Budget) error) (*domain.Budget, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	budget, err := uc.budgetRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(budget); err != nil {
		return nil, err
	}

	if err := uc.budgetRepo.Update(ctx, tx, budget); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeBudget, budget.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return budget, nil
}
