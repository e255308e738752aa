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

type billPaymentFixture struct {
	uc         *usecase.BillPaymentUseCase
	billRepo   *mocks.MockCreditCardBillRepository
	outboxRepo *mocks.MockOutboxRepository
	txManager  *mocks.MockTxManager

	budget   *domain.Budget
	account  *domain.Account
	bill     *domain.CreditCardBill
	category *domain.Category
}

func newBillPaymentFixture(t *testing.T, balanceCents, billCents float64) *billPaymentFixture {
	t.Helper()

	budget := newBudget(t)
	account := newAccount(t, "Checking", domain.AccountTypeSavings, budget.ID().String(), balanceCents)
	bill := newClosedBill(t, billCents)
	category := newCategory(t, domain.CategoryTypeExpense, budget.ID().String())

	billRepo := mocks.NewMockCreditCardBillRepository()
	accountRepo := mocks.NewMockAccountRepository()
	transactionRepo := mocks.NewMockTransactionRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txManager := mocks.NewMockTxManager()
	idGen := mocks.NewMockIDGenerator()

	ctx := context.Background()
	require.NoError(t, billRepo.Create(ctx, nil, bill))
	require.NoError(t, accountRepo.Create(ctx, nil, account))

	return &billPaymentFixture{
		uc:         usecase.NewBillPaymentUseCase(txManager, billRepo, accountRepo, transactionRepo, outboxRepo, idGen),
		billRepo:   billRepo,
		outboxRepo: outboxRepo,
		txManager:  txManager,
		budget:     budget,
		account:    account,
		bill:       bill,
		category:   category,
	}
}

func (f *billPaymentFixture) payInput() usecase.PayBillInput {
	return usecase.PayBillInput{
		BillID:     f.bill.ID().String(),
		AccountID:  f.account.ID().String(),
		BudgetID:   f.budget.ID().String(),
		Amount:     float64(f.bill.Amount().Cents()),
		PaidBy:     domain.NewEntityID().String(),
		CategoryID: f.category.ID().String(),
	}
}

func TestBillPaymentUseCase_PayBill(t *testing.T) {
	f := newBillPaymentFixture(t, 20000, 15000)

	op, err := f.uc.PayBill(context.Background(), f.payInput())
	require.NoError(t, err)
	require.NotNil(t, op)

	assert.False(t, op.AlreadyPaid)
	require.NotNil(t, op.Payment)
	assert.Equal(t, domain.TransactionTypeExpense, op.Payment.Type())
	assert.Equal(t, domain.TransactionStatusCompleted, op.Payment.Status())
	assert.Equal(t, domain.BillStatusPaid, f.bill.Status())
	assert.NotNil(t, f.bill.PaidAt())
	assert.Equal(t, int64(5000), f.account.Balance().Cents())
	assert.True(t, f.txManager.LastTx.Committed)
	assert.NotEmpty(t, f.outboxRepo.Events())
}

func TestBillPaymentUseCase_PayBill_AlreadyPaidIsNoOp(t *testing.T) {
	f := newBillPaymentFixture(t, 40000, 15000)
	ctx := context.Background()

	_, err := f.uc.PayBill(ctx, f.payInput())
	require.NoError(t, err)
	staged := len(f.outboxRepo.Events())

	op, err := f.uc.PayBill(ctx, f.payInput())
	require.NoError(t, err)
	require.NotNil(t, op)

	assert.True(t, op.AlreadyPaid)
	assert.Nil(t, op.Payment)
	assert.Equal(t, int64(25000), f.account.Balance().Cents())
	assert.Len(t, f.outboxRepo.Events(), staged)
}

func TestBillPaymentUseCase_PayBill_InsufficientBalance(t *testing.T) {
	f := newBillPaymentFixture(t, 10000, 15000)

	op, err := f.uc.PayBill(context.Background(), f.payInput())

	require.Nil(t, op)
	require.ErrorIs(t, err, domain.ErrInsufficientBalance)
	assert.Equal(t, domain.BillStatusClosed, f.bill.Status())
	assert.Equal(t, int64(10000), f.account.Balance().Cents())
	assert.False(t, f.txManager.LastTx.Committed)
	assert.Empty(t, f.outboxRepo.Events())
}

func TestBillPaymentUseCase_PayBill_InvalidInput(t *testing.T) {
	f := newBillPaymentFixture(t, 20000, 15000)

	tests := []struct {
		name   string
		mutate func(*usecase.PayBillInput)
	}{
		{name: "fractional amount", mutate: func(in *usecase.PayBillInput) { in.Amount = 150.5 }},
		{name: "empty budget id", mutate: func(in *usecase.PayBillInput) { in.BudgetID = "" }},
		{name: "malformed payer id", mutate: func(in *usecase.PayBillInput) { in.PaidBy = "not-a-uuid" }},
		{name: "empty category id", mutate: func(in *usecase.PayBillInput) { in.CategoryID = "" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := f.payInput()
			tt.mutate(&input)

			op, err := f.uc.PayBill(context.Background(), input)

			require.Nil(t, op)
			require.Error(t, err)
			assert.Equal(t, domain.BillStatusClosed, f.bill.Status())
		})
	}
}

func TestBillPaymentUseCase_PayBill_UnknownBill(t *testing.T) {
	f := newBillPaymentFixture(t, 20000, 15000)

	input := f.payInput()
	input.BillID = domain.NewEntityID().String()

	op, err := f.uc.PayBill(context.Background(), input)

	require.Nil(t, op)
	require.ErrorIs(t, err, domain.NewNotFoundError("CreditCardBill"))
}
