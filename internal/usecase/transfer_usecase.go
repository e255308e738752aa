package usecase

import (
	"context"
	"sort"

	"github.com/iho/budgeteer/internal/domain"
)

// TransferUseCase moves money between two accounts of the same budget.
type TransferUseCase struct {
	txManager       TxManager
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	categoryRepo    CategoryRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	transferService *domain.TransferBetweenAccountsService
}

// NewTransferUseCase creates a new TransferUseCase.
func NewTransferUseCase(
	txManager TxManager,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	categoryRepo CategoryRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *TransferUseCase {
	return &TransferUseCase{
		txManager:       txManager,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		categoryRepo:    categoryRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		transferService: domain.NewTransferBetweenAccountsService(),
	}
}

// TransferInput represents input for a transfer between accounts.
type TransferInput struct {
	FromAccountID string
	ToAccountID   string
	Amount        float64
	CategoryID    string
}

// Transfer debits the source account, credits the destination and
// records a completed transfer transaction on each side, all in one
// database transaction.
func (uc *TransferUseCase) Transfer(ctx context.Context, input TransferInput) (*domain.TransferOperation, error) {
	if input.FromAccountID == input.ToAccountID {
		return nil, domain.ErrSameAccountTransfer
	}

	amount, err := domain.NewMoney(input.Amount)
	if err != nil {
		return nil, err
	}

	categoryID, err := domain.ParseEntityID("category_id", input.CategoryID)
	if err != nil {
		return nil, err
	}

	category, err := uc.categoryRepo.GetByID(ctx, input.CategoryID)
	if err != nil {
		return nil, err
	}
	if category.IsDeleted() || category.Type() != domain.CategoryTypeTransfer {
		return nil, domain.NewNotFoundError("Category")
	}

	// Lock accounts in sorted id order to prevent deadlocks.
	accountIDs := []string{input.FromAccountID, input.ToAccountID}
	sort.Strings(accountIDs)

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	accounts, err := uc.accountRepo.GetByIDsForUpdate(ctx, tx, accountIDs)
	if err != nil {
		return nil, err
	}
	if len(accounts) != len(accountIDs) {
		return nil, domain.NewNotFoundError("Account")
	}

	var from, to *domain.Account
	for _, a := range accounts {
		switch a.ID().String() {
		case input.FromAccountID:
			from = a
		case input.ToAccountID:
			to = a
		}
	}
	if from == nil || to == nil {
		return nil, domain.NewNotFoundError("Account")
	}

	op, err := uc.transferService.CreateTransferOperation(from, to, amount, categoryID)
	if err != nil {
		return nil, err
	}

	if err := uc.transactionRepo.Create(ctx, tx, op.Debit); err != nil {
		return nil, err
	}
	if err := uc.transactionRepo.Create(ctx, tx, op.Credit); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.Update(ctx, tx, from); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.Update(ctx, tx, to); err != nil {
		return nil, err
	}

	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeAccount, from.DrainEvents()); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeAccount, to.DrainEvents()); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeTransaction, op.Debit.DrainEvents()); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeTransaction, op.Credit.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return op, nil
}
