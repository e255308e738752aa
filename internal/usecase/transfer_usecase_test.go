package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
	"github.com/iho/budgeteer/internal/usecase/mocks"
)

type transferFixture struct {
	uc          *usecase.TransferUseCase
	accountRepo *mocks.MockAccountRepository
	outboxRepo  *mocks.MockOutboxRepository
	txManager   *mocks.MockTxManager

	budget   *domain.Budget
	from     *domain.Account
	to       *domain.Account
	category *domain.Category
}

func newTransferFixture(t *testing.T) *transferFixture {
	t.Helper()

	budget := newBudget(t)
	from := newAccount(t, "Checking", domain.AccountTypeChecking, budget.ID().String(), 50000)
	to := newAccount(t, "Wallet", domain.AccountTypeDigitalWallet, budget.ID().String(), 10000)
	category := newCategory(t, domain.CategoryTypeTransfer, budget.ID().String())

	accountRepo := mocks.NewMockAccountRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	categoryRepo := mocks.NewMockCategoryRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txManager := mocks.NewMockTxManager()
	idGen := mocks.NewMockIDGenerator()

	ctx := context.Background()
	require.NoError(t, accountRepo.Create(ctx, nil, from))
	require.NoError(t, accountRepo.Create(ctx, nil, to))
	require.NoError(t, categoryRepo.Create(ctx, nil, category))

	return &transferFixture{
		uc:          usecase.NewTransferUseCase(txManager, accountRepo, transactionRepo, categoryRepo, outboxRepo, idGen),
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		budget:      budget,
		from:        from,
		to:          to,
		category:    category,
	}
}

func TestTransferUseCase_Transfer(t *testing.T) {
	f := newTransferFixture(t)

	op, err := f.uc.Transfer(context.Background(), usecase.TransferInput{
		FromAccountID: f.from.ID().String(),
		ToAccountID:   f.to.ID().String(),
		Amount:        20000,
		CategoryID:    f.category.ID().String(),
	})
	require.NoError(t, err)
	require.NotNil(t, op)

	assert.Equal(t, int64(30000), f.from.Balance().Cents())
	assert.Equal(t, int64(30000), f.to.Balance().Cents())
	assert.Equal(t, domain.TransactionStatusCompleted, op.Debit.Status())
	assert.Equal(t, domain.TransactionStatusCompleted, op.Credit.Status())
	assert.True(t, f.txManager.LastTx.Committed)
	assert.NotEmpty(t, f.outboxRepo.Events())
}

func TestTransferUseCase_Transfer_Preconditions(t *testing.T) {
	tests := []struct {
		name    string
		input   func(f *transferFixture) usecase.TransferInput
		wantErr error
	}{
		{
			name: "same account",
			input: func(f *transferFixture) usecase.TransferInput {
				return usecase.TransferInput{
					FromAccountID: f.from.ID().String(),
					ToAccountID:   f.from.ID().String(),
					Amount:        10000,
					CategoryID:    f.category.ID().String(),
				}
			},
			wantErr: domain.ErrSameAccountTransfer,
		},
		{
			name: "unknown destination account",
			input: func(f *transferFixture) usecase.TransferInput {
				return usecase.TransferInput{
					FromAccountID: f.from.ID().String(),
					ToAccountID:   domain.NewEntityID().String(),
					Amount:        10000,
					CategoryID:    f.category.ID().String(),
				}
			},
			wantErr: domain.NewNotFoundError("Account"),
		},
		{
			name: "unknown category",
			input: func(f *transferFixture) usecase.TransferInput {
				return usecase.TransferInput{
					FromAccountID: f.from.ID().String(),
					ToAccountID:   f.to.ID().String(),
					Amount:        10000,
					CategoryID:    domain.NewEntityID().String(),
				}
			},
			wantErr: domain.NewNotFoundError("Category"),
		},
		{
			name: "fractional amount",
			input: func(f *transferFixture) usecase.TransferInput {
				return usecase.TransferInput{
					FromAccountID: f.from.ID().String(),
					ToAccountID:   f.to.ID().String(),
					Amount:        100.5,
					CategoryID:    f.category.ID().String(),
				}
			},
			wantErr: domain.NewInvalidMoneyError("amount", 100.5),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newTransferFixture(t)

			op, err := f.uc.Transfer(context.Background(), tt.input(f))

			require.Nil(t, op)
			require.ErrorIs(t, err, tt.wantErr)
			assert.Equal(t, int64(50000), f.from.Balance().Cents())
			assert.Equal(t, int64(10000), f.to.Balance().Cents())
			assert.Empty(t, f.outboxRepo.Events())
		})
	}
}

func TestTransferUseCase_Transfer_RejectsNonTransferCategory(t *testing.T) {
	f := newTransferFixture(t)
	expense := newCategory(t, domain.CategoryTypeExpense, f.budget.ID().String())
	ctx := context.Background()

	categoryRepo := mocks.NewMockCategoryRepository()
	require.NoError(t, categoryRepo.Create(ctx, nil, expense))

	uc := usecase.NewTransferUseCase(
		f.txManager, f.accountRepo, mocks.NewMockTransactionRepository(),
		categoryRepo, f.outboxRepo, mocks.NewMockIDGenerator())

	op, err := uc.Transfer(ctx, usecase.TransferInput{
		FromAccountID: f.from.ID().String(),
		ToAccountID:   f.to.ID().String(),
		Amount:        10000,
		CategoryID:    expense.ID().String(),
	})

	require.Nil(t, op)
	require.ErrorIs(t, err, domain.NewNotFoundError("Category"))
}

func TestTransferUseCase_Transfer_InsufficientBalance(t *testing.T) {
	f := newTransferFixture(t)
	savings := newAccount(t, "Savings", domain.AccountTypeSavings, f.budget.ID().String(), 5000)
	ctx := context.Background()
	require.NoError(t, f.accountRepo.Create(ctx, nil, savings))

	op, err := f.uc.Transfer(ctx, usecase.TransferInput{
		FromAccountID: savings.ID().String(),
		ToAccountID:   f.to.ID().String(),
		Amount:        10000,
		CategoryID:    f.category.ID().String(),
	})

	require.Nil(t, op)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, int64(5000), savings.Balance().Cents())
	assert.Equal(t, int64(10000), f.to.Balance().Cents())
	assert.False(t, f.txManager.LastTx.Committed)
	assert.True(t, f.txManager.LastTx.RolledBack)
	assert.Empty(t, f.outboxRepo.Events())
}
