package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
	"github.com/iho/budgeteer/internal/usecase/mocks"
)

type envelopeFixture struct {
	uc           *usecase.EnvelopeUseCase
	envelopeRepo *mocks.MockEnvelopeRepository
	outboxRepo   *mocks.MockOutboxRepository
	txManager    *mocks.MockTxManager

	budget   *domain.Budget
	category *domain.Category
}

func newEnvelopeFixture(t *testing.T) *envelopeFixture {
	t.Helper()

	budget := newBudget(t)

	envelopeRepo := mocks.NewMockEnvelopeRepository()
	outboxRepo := mocks.NewMockOutboxRepository()
	txManager := mocks.NewMockTxManager()
	idGen := mocks.NewMockIDGenerator()

	return &envelopeFixture{
		uc:           usecase.NewEnvelopeUseCase(txManager, envelopeRepo, outboxRepo, idGen),
		envelopeRepo: envelopeRepo,
		outboxRepo:   outboxRepo,
		txManager:    txManager,
		budget:       budget,
		category:     newCategory(t, domain.CategoryTypeExpense, budget.ID().String()),
	}
}

func (f *envelopeFixture) createEnvelope(t *testing.T, allocationCents float64) *domain.Envelope {
	t.Helper()
	now := time.Now().UTC()
	envelope, err := f.uc.CreateEnvelope(context.Background(), usecase.CreateEnvelopeInput{
		Name:       "Groceries",
		BudgetID:   f.budget.ID().String(),
		CategoryID: f.category.ID().String(),
		Month:      int(now.Month()),
		Year:       now.Year(),
		Allocation: allocationCents,
	})
	require.NoError(t, err)
	return envelope
}

func TestEnvelopeUseCase_CreateEnvelope(t *testing.T) {
	f := newEnvelopeFixture(t)

	envelope := f.createEnvelope(t, 60000)

	assert.Equal(t, int64(60000), envelope.Allocated().Cents())
	assert.Zero(t, envelope.Spent().Cents())
	assert.Equal(t, int64(60000), envelope.Remaining().Cents())
	assert.True(t, f.txManager.LastTx.Committed)
	assert.NotEmpty(t, f.outboxRepo.Events())
}

func TestEnvelopeUseCase_CreateEnvelope_InvalidMonth(t *testing.T) {
	f := newEnvelopeFixture(t)

	envelope, err := f.uc.CreateEnvelope(context.Background(), usecase.CreateEnvelopeInput{
		Name:       "Groceries",
		BudgetID:   f.budget.ID().String(),
		CategoryID: f.category.ID().String(),
		Month:      13,
		Year:       2026,
		Allocation: 60000,
	})

	require.Nil(t, envelope)
	require.Error(t, err)
}

func TestEnvelopeUseCase_SpendingLifecycle(t *testing.T) {
	f := newEnvelopeFixture(t)
	envelope := f.createEnvelope(t, 60000)

	updated, err := f.uc.RecordEnvelopeSpending(context.Background(), envelope.ID().String(), 22500)
	require.NoError(t, err)
	assert.Equal(t, int64(22500), updated.Spent().Cents())
	assert.Equal(t, int64(37500), updated.Remaining().Cents())

	updated, err = f.uc.ReleaseEnvelopeSpending(context.Background(), envelope.ID().String(), 2500)
	require.NoError(t, err)
	assert.Equal(t, int64(20000), updated.Spent().Cents())
}

func TestEnvelopeUseCase_RecordSpending_ExceedsAllocation(t *testing.T) {
	f := newEnvelopeFixture(t)
	envelope := f.createEnvelope(t, 60000)

	_, err := f.uc.RecordEnvelopeSpending(context.Background(), envelope.ID().String(), 60001)
	require.ErrorIs(t, err, domain.ErrEnvelopeExceeded)
}

func TestEnvelopeUseCase_ReleaseSpending_MoreThanSpent(t *testing.T) {
	f := newEnvelopeFixture(t)
	envelope := f.createEnvelope(t, 60000)

	_, err := f.uc.RecordEnvelopeSpending(context.Background(), envelope.ID().String(), 10000)
	require.NoError(t, err)

	_, err = f.uc.ReleaseEnvelopeSpending(context.Background(), envelope.ID().String(), 10001)
	require.ErrorIs(t, err, domain.ErrEnvelopeReleaseUnavailable)
}

func TestEnvelopeUseCase_AllocateToEnvelope(t *testing.T) {
	f := newEnvelopeFixture(t)
	envelope := f.createEnvelope(t, 60000)

	updated, err := f.uc.AllocateToEnvelope(context.Background(), envelope.ID().String(), 15000)
	require.NoError(t, err)
	assert.Equal(t, int64(75000), updated.Allocated().Cents())
}

func TestEnvelopeUseCase_ListEnvelopes(t *testing.T) {
	f := newEnvelopeFixture(t)
	envelope := f.createEnvelope(t, 60000)

	listed, err := f.uc.ListEnvelopes(context.Background(), usecase.ListEnvelopesInput{
		BudgetID: f.budget.ID().String(),
		Month:    envelope.Month(),
		Year:     envelope.Year(),
	})
	require.NoError(t, err)
	require.Len(t, listed, 1)
	assert.Equal(t, envelope.ID(), listed[0].ID())
}
