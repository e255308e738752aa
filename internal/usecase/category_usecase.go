package usecase

import (
	"context"

	"github.com/iho/budgeteer/internal/domain"
)

// CategoryUseCase handles category business logic.
type CategoryUseCase struct {
	txManager       TxManager
	categoryRepo    CategoryRepository
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
}

// NewCategoryUseCase creates a new CategoryUseCase.
func NewCategoryUseCase(
	txManager TxManager,
	categoryRepo CategoryRepository,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *CategoryUseCase {
	return &CategoryUseCase{
		txManager:       txManager,
		categoryRepo:    categoryRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
	}
}

// CreateCategoryInput represents input for creating a category.
type CreateCategoryInput struct {
	Name     string
	Type     string
	BudgetID string
}

// CreateCategory validates the input and persists the new category
// together with its creation event.
func (uc *CategoryUseCase) CreateCategory(ctx context.Context, input CreateCategoryInput) (*domain.Category, error) {
	res := domain.NewCategory(domain.NewCategoryInput{
		Name:     input.Name,
		Type:     input.Type,
		BudgetID: input.BudgetID,
	})
	if res.HasError() {
		return nil, res.Err()
	}
	category := res.Value()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.categoryRepo.Create(ctx, tx, category); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCategory, category.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return category, nil
}

// GetCategory retrieves a category by ID.
func (uc *CategoryUseCase) GetCategory(ctx context.Context, id string) (*domain.Category, error) {
	return uc.categoryRepo.GetByID(ctx, id)
}

// ListCategoriesInput represents input for listing categories.
type ListCategoriesInput struct {
	BudgetID string
	Limit    int
	Offset   int
}

// ListCategories lists the categories of a budget with pagination.
func (uc *CategoryUseCase) ListCategories(ctx context.Context, input ListCategoriesInput) ([]*domain.Category, error) {
	return uc.categoryRepo.ListByBudget(ctx, input.BudgetID, clampLimit(input.Limit), input.Offset)
}

// RenameCategory renames a category.
func (uc *CategoryUseCase) RenameCategory(ctx context.Context, id, name string) (*domain.Category, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	category, err := uc.categoryRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := category.UpdateName(name); err != nil {
		return nil, err
	}

	if err := uc.categoryRepo.Update(ctx, tx, category); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCategory, category.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return category, nil
}

// DeleteCategory soft-deletes a category. A category still referenced
// by transactions cannot be deleted.
func (uc *CategoryUseCase) DeleteCategory(ctx context.Context, id string) error {
	count, err := uc.transactionRepo.CountByCategory(ctx, id)
	if err != nil {
		return err
	}
	if count > 0 {
		return domain.ErrCategoryInUse
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	category, err := uc.categoryRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := category.Delete(); err != nil {
		return err
	}

	if err := uc.categoryRepo.Update(ctx, tx, category); err != nil {
		return err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCategory, category.DrainEvents()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}
