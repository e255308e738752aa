package usecase

import (
	"context"

	"github.com/iho/budgeteer/internal/domain"
)

// AccountUseCase handles account business logic.
type AccountUseCase struct {
	txManager   TxManager
	accountRepo AccountRepository
	budgetRepo  BudgetRepository
	outboxRepo  OutboxRepository
	idGen       IDGenerator
}

// NewAccountUseCase creates a new AccountUseCase.
func NewAccountUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	budgetRepo BudgetRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *AccountUseCase {
	return &AccountUseCase{
		txManager:   txManager,
		accountRepo: accountRepo,
		budgetRepo:  budgetRepo,
		outboxRepo:  outboxRepo,
		idGen:       idGen,
	}
}

// CreateAccountInput represents input for creating an account.
type CreateAccountInput struct {
	Name           string
	Type           string
	BudgetID       string
	InitialBalance float64
	Description    string
}

// CreateAccount validates the input, verifies the budget exists and
// persists the new account together with its creation event.
func (uc *AccountUseCase) CreateAccount(ctx context.Context, input CreateAccountInput) (*domain.Account, error) {
	res := domain.NewAccount(domain.NewAccountInput{
		Name:           input.Name,
		Type:           input.Type,
		BudgetID:       input.BudgetID,
		InitialBalance: input.InitialBalance,
		Description:    input.Description,
	})
	if res.HasError() {
		return nil, res.Err()
	}
	account := res.Value()

	budget, err := uc.budgetRepo.GetByID(ctx, input.BudgetID)
	if err != nil {
		return nil, err
	}
	if budget.IsDeleted() {
		return nil, domain.NewNotFoundError("Budget")
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.accountRepo.Create(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeAccount, account.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// GetAccount retrieves an account by ID.
func (uc *AccountUseCase) GetAccount(ctx context.Context, id string) (*domain.Account, error) {
	return uc.accountRepo.GetByID(ctx, id)
}

// ListAccountsInput represents input for listing accounts.
type ListAccountsInput struct {
	BudgetID string
	Limit    int
	Offset   int
}

// ListAccounts lists the accounts of a budget with pagination.
func (uc *AccountUseCase) ListAccounts(ctx context.Context, input ListAccountsInput) ([]*domain.Account, error) {
	return uc.accountRepo.ListByBudget(ctx, input.BudgetID, clampLimit(input.Limit), input.Offset)
}

// UpdateAccountInput represents input for updating an account. Nil
// fields are left untouched.
type UpdateAccountInput struct {
	ID          string
	Name        *string
	Description *string
}

// UpdateAccount applies the requested field changes.
func (uc *AccountUseCase) UpdateAccount(ctx context.Context, input UpdateAccountInput) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := account.UpdateName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Description != nil {
		if err := account.UpdateDescription(*input.Description); err != nil {
			return nil, err
		}
	}

	if err := uc.accountRepo.Update(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeAccount, account.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// ReconcileAccountInput represents input for reconciling an account
// balance against a statement.
type ReconcileAccountInput struct {
	ID          string
	RealBalance float64
}

// ReconcileAccount overwrites the account balance with the observed
// real-world balance and records the adjustment event.
func (uc *AccountUseCase) ReconcileAccount(ctx context.Context, input ReconcileAccountInput) (*domain.Account, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.ID)
	if err != nil {
		return nil, err
	}

	if err := account.Reconcile(input.RealBalance); err != nil {
		return nil, err
	}

	if err := uc.accountRepo.Update(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeAccount, account.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return account, nil
}

// DeleteAccount soft-deletes an account.
func (uc *AccountUseCase) DeleteAccount(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := account.Delete(); err != nil {
		return err
	}

	if err := uc.accountRepo.Update(ctx, tx, account); err != nil {
		return err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeAccount, account.DrainEvents()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
