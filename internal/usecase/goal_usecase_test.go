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

type goalFixture struct {
	uc          *usecase.GoalUseCase
	goalRepo    *mocks.MockGoalRepository
	accountRepo *mocks.MockAccountRepository
	outboxRepo  *mocks.MockOutboxRepository
	txManager   *mocks.MockTxManager

	budget  *domain.Budget
	account *domain.Account
}

func newGoalFixture(t *testing.T, balanceCents float64) *goalFixture {
	t.Helper()

	budget := newBudget(t)
	account := newAccount(t, "Savings", domain.AccountTypeSavings, budget.ID().String(), balanceCents)

	goalRepo := mocks.NewMockGoalRepository()
	accountRepo := mocks.NewMockAccountRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txManager := mocks.NewMockTxManager()
	idGen := mocks.NewMockIDGenerator()

	require.NoError(t, accountRepo.Create(context.Background(), nil, account))

	return &goalFixture{
		uc:          usecase.NewGoalUseCase(txManager, goalRepo, accountRepo, outboxRepo, idGen),
		goalRepo:    goalRepo,
		accountRepo: accountRepo,
		outboxRepo:  outboxRepo,
		txManager:   txManager,
		budget:      budget,
		account:     account,
	}
}

func (f *goalFixture) seedGoal(t *testing.T, name string, totalCents float64) *domain.Goal {
	t.Helper()
	goal := newGoal(t, name, totalCents, f.budget.ID().String(), f.account.ID().String())
	require.NoError(t, f.goalRepo.Create(context.Background(), nil, goal))
	return goal
}

func TestGoalUseCase_CreateGoal(t *testing.T) {
	f := newGoalFixture(t, 100000)

	goal, err := f.uc.CreateGoal(context.Background(), usecase.CreateGoalInput{
		Name:            "Emergency fund",
		TotalAmount:     100000,
		BudgetID:        f.budget.ID().String(),
		SourceAccountID: f.account.ID().String(),
	})
	require.NoError(t, err)
	require.NotNil(t, goal)

	assert.Equal(t, int64(0), goal.AccumulatedAmount().Cents())
	assert.True(t, f.txManager.LastTx.Committed)
	assert.NotEmpty(t, f.outboxRepo.Events())
}

func TestGoalUseCase_CreateGoal_AccountOutsideBudget(t *testing.T) {
	f := newGoalFixture(t, 100000)

	goal, err := f.uc.CreateGoal(context.Background(), usecase.CreateGoalInput{
		Name:            "Emergency fund",
		TotalAmount:     100000,
		BudgetID:        domain.NewEntityID().String(),
		SourceAccountID: f.account.ID().String(),
	})

	require.Nil(t, goal)
	require.ErrorIs(t, err, domain.NewNotFoundError("Account"))
}

func TestGoalUseCase_ReserveAmount(t *testing.T) {
	f := newGoalFixture(t, 100000)
	goal := f.seedGoal(t, "New laptop", 100000)

	got, err := f.uc.ReserveAmount(context.Background(), usecase.ReserveAmountInput{
		GoalID: goal.ID().String(),
		Amount: 30000,
	})
	require.NoError(t, err)

	assert.Equal(t, int64(30000), got.AccumulatedAmount().Cents())
	assert.True(t, f.txManager.LastTx.Committed)
	assert.NotEmpty(t, f.outboxRepo.Events())
}

func TestGoalUseCase_ReserveAmount_SiblingGoalsShareTheBalance(t *testing.T) {
	f := newGoalFixture(t, 100000)
	sibling := f.seedGoal(t, "Vacation", 100000)
	goal := f.seedGoal(t, "New laptop", 100000)

	_, err := f.uc.ReserveAmount(context.Background(), usecase.ReserveAmountInput{
		GoalID: sibling.ID().String(),
		Amount: 40000,
	})
	require.NoError(t, err)

	got, err := f.uc.ReserveAmount(context.Background(), usecase.ReserveAmountInput{
		GoalID: goal.ID().String(),
		Amount: 70000,
	})
	require.Nil(t, got)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, int64(0), goal.AccumulatedAmount().Cents())

	got, err = f.uc.ReserveAmount(context.Background(), usecase.ReserveAmountInput{
		GoalID: goal.ID().String(),
		Amount: 60000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(60000), got.AccumulatedAmount().Cents())
}

func TestGoalUseCase_ReleaseAmount(t *testing.T) {
	f := newGoalFixture(t, 100000)
	goal := f.seedGoal(t, "New laptop", 100000)

	_, err := f.uc.ReserveAmount(context.Background(), usecase.ReserveAmountInput{
		GoalID: goal.ID().String(),
		Amount: 50000,
	})
	require.NoError(t, err)

	got, err := f.uc.ReleaseAmount(context.Background(), usecase.ReleaseAmountInput{
		GoalID: goal.ID().String(),
		Amount: 20000,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(30000), got.AccumulatedAmount().Cents())

	got, err = f.uc.ReleaseAmount(context.Background(), usecase.ReleaseAmountInput{
		GoalID: goal.ID().String(),
		Amount: 40000,
	})
	require.Nil(t, got)
	require.ErrorIs(t, err, domain.ErrGoalAmountUnavailable)
}
