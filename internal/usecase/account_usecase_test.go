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

type accountFixture struct {
	uc          *usecase.AccountUseCase
	accountRepo *mocks.MockAccountRepository
	budgetRepo  *mocks.MockBudgetRepository
	outboxRepo  *mocks.MockOutboxRepository
	txManager   *mocks.MockTxManager

	budget *domain.Budget
}

func newAccountFixture(t *testing.T) *accountFixture {
	t.Helper()

	budget := newBudget(t)

	accountRepo := mocks.NewMockAccountRepository()
	budgetRepo := mocks.NewMockBudgetRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txManager := mocks.NewMockTxManager()
	idGen := mocks.NewMockIDGenerator()

	require.NoError(t, budgetRepo.Create(context.Background(), nil, budget))

	return &accountFixture{
		uc:          usecase.NewAccountUseCase(txManager, accountRepo, budgetRepo, outboxRepo, idGen),
		accountRepo: accountRepo,
		budgetRepo:  budgetRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		budget:      budget,
	}
}

func TestAccountUseCase_CreateAccount(t *testing.T) {
	f := newAccountFixture(t)

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name:           "Checking",
		Type:           string(domain.AccountTypeChecking),
		BudgetID:       f.budget.ID().String(),
		InitialBalance: 25000,
	})
	require.NoError(t, err)
	require.NotNil(t, account)

	assert.Equal(t, int64(25000), account.Balance().Cents())
	assert.True(t, f.txManager.LastTx.Committed)
	assert.NotEmpty(t, f.outboxRepo.Events())

	stored, err := f.accountRepo.GetByID(context.Background(), account.ID().String())
	require.NoError(t, err)
	assert.Equal(t, account, stored)
}

func TestAccountUseCase_CreateAccount_InvalidInput(t *testing.T) {
	f := newAccountFixture(t)

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name:           "A",
		Type:           "BROKERAGE",
		BudgetID:       f.budget.ID().String(),
		InitialBalance: 25000,
	})

	require.Nil(t, account)
	require.Error(t, err)

	joined, ok := err.(interface{ Unwrap() []error })
	require.True(t, ok, "expected a joined validation error, got %v", err)
	assert.Len(t, joined.Unwrap(), 2)
}

func TestAccountUseCase_CreateAccount_UnknownBudget(t *testing.T) {
	f := newAccountFixture(t)

	account, err := f.uc.CreateAccount(context.Background(), usecase.CreateAccountInput{
		Name:           "Checking",
		Type:           string(domain.AccountTypeChecking),
		BudgetID:       domain.NewEntityID().String(),
		InitialBalance: 25000,
	})

	require.Nil(t, account)
	require.ErrorIs(t, err, domain.NewNotFoundError("Budget"))
	assert.Empty(t, f.outboxRepo.Events())
}

func TestAccountUseCase_ListAccounts_ClampsLimit(t *testing.T) {
	f := newAccountFixture(t)

	var gotLimit int
	f.accountRepo.ListByBudgetFunc = func(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Account, error) {
		gotLimit = limit
		return nil, nil
	}

	tests := []struct {
		name  string
		limit int
		want  int
	}{
		{name: "zero falls back to the default", limit: 0, want: 20},
		{name: "negative falls back to the default", limit: -5, want: 20},
		{name: "oversized is capped", limit: 1000, want: 100},
		{name: "in range passes through", limit: 50, want: 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.uc.ListAccounts(context.Background(), usecase.ListAccountsInput{
				BudgetID: f.budget.ID().String(),
				Limit:    tt.limit,
			})
			require.NoError(t, err)
			assert.Equal(t, tt.want, gotLimit)
		})
	}
}

func TestAccountUseCase_ReconcileAccount(t *testing.T) {
	f := newAccountFixture(t)
	account := newAccount(t, "Checking", domain.AccountTypeChecking, f.budget.ID().String(), 25000)
	require.NoError(t, f.accountRepo.Create(context.Background(), nil, account))

	got, err := f.uc.ReconcileAccount(context.Background(), usecase.ReconcileAccountInput{
		ID:          account.ID().String(),
		RealBalance: 23750,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(23750), got.Balance().Cents())
	assert.True(t, f.txManager.LastTx.Committed)
	assert.NotEmpty(t, f.outboxRepo.Events())
}
