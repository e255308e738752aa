package usecase

import (
	"context"
	"time"

	"github.com/iho/budgeteer/internal/domain"
)

// GoalUseCase handles savings goal business logic.
type GoalUseCase struct {
	txManager          TxManager
	goalRepo           GoalRepository
	accountRepo        AccountRepository
	outboxRepo         OutboxRepository
	idGen              IDGenerator
	reservationService *domain.GoalReservationService
}

// NewGoalUseCase creates a new GoalUseCase.
func NewGoalUseCase(
	txManager TxManager,
	goalRepo GoalRepository,
	accountRepo AccountRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *GoalUseCase {
	return &GoalUseCase{
		txManager:          txManager,
		goalRepo:           goalRepo,
		accountRepo:        accountRepo,
		outboxRepo:         outboxRepo,
		idGen:              idGen,
		reservationService: domain.NewGoalReservationService(),
	}
}

// CreateGoalInput represents input for creating a goal.
type CreateGoalInput struct {
	Name            string
	TotalAmount     float64
	Deadline        *time.Time
	BudgetID        string
	SourceAccountID string
}

// CreateGoal validates the input, verifies the source account belongs
// to the budget and persists the new goal.
func (uc *GoalUseCase) CreateGoal(ctx context.Context, input CreateGoalInput) (*domain.Goal, error) {
	res := domain.NewGoal(domain.NewGoalInput{
		Name:            input.Name,
		TotalAmount:     input.TotalAmount,
		Deadline:        input.Deadline,
		BudgetID:        input.BudgetID,
		SourceAccountID: input.SourceAccountID,
	})
	if res.HasError() {
		return nil, res.Err()
	}
	goal := res.Value()

	account, err := uc.accountRepo.GetByID(ctx, input.SourceAccountID)
	if err != nil {
		return nil, err
	}
	if account.IsDeleted() || !account.BudgetID().Equal(goal.BudgetID()) {
		return nil, domain.NewNotFoundError("Account")
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.goalRepo.Create(ctx, tx, goal); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeGoal, goal.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return goal, nil
}

// GetGoal retrieves a goal by ID.
func (uc *GoalUseCase) GetGoal(ctx context.Context, id string) (*domain.Goal, error) {
	return uc.goalRepo.GetByID(ctx, id)
}

// ListGoalsInput represents input for listing goals.
type ListGoalsInput struct {
	BudgetID string
	Limit    int
	Offset   int
}

// ListGoals lists the goals of a budget with pagination.
func (uc *GoalUseCase) ListGoals(ctx context.Context, input ListGoalsInput) ([]*domain.Goal, error) {
	return uc.goalRepo.ListByBudget(ctx, input.BudgetID, clampLimit(input.Limit), input.Offset)
}

// ReserveAmountInput represents input for reserving money toward a
// goal.
type ReserveAmountInput struct {
	GoalID string
	Amount float64
}

// ReserveAmount grows the goal's accumulated amount after checking that
// all goals funded from the same account still fit its balance.
func (uc *GoalUseCase) ReserveAmount(ctx context.Context, input ReserveAmountInput) (*domain.Goal, error) {
	amount, err := domain.NewMoney(input.Amount)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	goal, err := uc.goalRepo.GetByIDForUpdate(ctx, tx, input.GoalID)
	if err != nil {
		return nil, err
	}
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, goal.SourceAccountID().String())
	if err != nil {
		return nil, err
	}
	siblings, err := uc.goalRepo.ListBySourceAccount(ctx, account.ID().String())
	if err != nil {
		return nil, err
	}

	if err := uc.reservationService.ValidateReservationOperation(domain.GoalReservationInput{
		Goal:                goal,
		SourceAccount:       account,
		AllGoalsFromAccount: siblings,
		AdditionalAmount:    amount,
	}); err != nil {
		return nil, err
	}

	if err := uc.goalRepo.Update(ctx, tx, goal); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeGoal, goal.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return goal, nil
}

// ReleaseAmountInput represents input for releasing reserved money.
type ReleaseAmountInput struct {
	GoalID string
	Amount float64
}

// ReleaseAmount shrinks the goal's accumulated amount.
func (uc *GoalUseCase) ReleaseAmount(ctx context.Context, input ReleaseAmountInput) (*domain.Goal, error) {
	amount, err := domain.NewMoney(input.Amount)
	if err != nil {
		return nil, err
	}

	return uc.mutate(ctx, input.GoalID, func(g *domain.Goal) error {
		return g.RemoveAmount(amount)
	})
}

// RenameGoal renames a goal.
func (uc *GoalUseCase) RenameGoal(ctx context.Context, id, name string) (*domain.Goal, error) {
	return uc.mutate(ctx, id, func(g *domain.Goal) error {
		return g.UpdateName(name)
	})
}

// DeleteGoal soft-deletes a goal, releasing its whole reservation.
func (uc *GoalUseCase) DeleteGoal(ctx context.Context, id string) error {
	_, err := uc.mutate(ctx, id, func(g *domain.Goal) error {
		return g.Delete()
	})
	return err
}

func (uc *GoalUseCase) mutate(ctx context.Context, id string, fn func(*domain.Goal) error) (*domain.Goal, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	goal, err := uc.goalRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(goal); err != nil {
		return nil, err
	}

	if err := uc.goalRepo.Update(ctx, tx, goal); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeGoal, goal.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return goal, nil
}
