package usecase

import (
	"context"
	"time"

	"github.com/iho/budgeteer/internal/domain"
)

// BillPaymentUseCase settles credit card bills from budget accounts.
type BillPaymentUseCase struct {
	txManager       TxManager
	billRepo        CreditCardBillRepository
	accountRepo     AccountRepository
	transactionRepo TransactionRepository
	outboxRepo      OutboxRepository
	idGen           IDGenerator
	paymentService  *domain.PayCreditCardBillService
}

// NewBillPaymentUseCase creates a new BillPaymentUseCase.
func NewBillPaymentUseCase(
	txManager TxManager,
	billRepo CreditCardBillRepository,
	accountRepo AccountRepository,
	transactionRepo TransactionRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *BillPaymentUseCase {
	return &BillPaymentUseCase{
		txManager:       txManager,
		billRepo:        billRepo,
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		outboxRepo:      outboxRepo,
		idGen:           idGen,
		paymentService:  domain.NewPayCreditCardBillService(),
	}
}

// PayBillInput represents input for paying a credit card bill.
type PayBillInput struct {
	BillID     string
	AccountID  string
	BudgetID   string
	Amount     float64
	PaidBy     string
	CategoryID string
}

// PayBill debits the account, marks the bill paid and records the
// payment transaction atomically. Paying an already-paid bill succeeds
// without mutating anything.
func (uc *BillPaymentUseCase) PayBill(ctx context.Context, input PayBillInput) (*domain.BillPaymentOperation, error) {
	amount, err := domain.NewMoney(input.Amount)
	if err != nil {
		return nil, err
	}
	budgetID, err := domain.ParseEntityID("budget_id", input.BudgetID)
	if err != nil {
		return nil, err
	}
	paidBy, err := domain.ParseEntityID("paid_by", input.PaidBy)
	if err != nil {
		return nil, err
	}
	categoryID, err := domain.ParseEntityID("category_id", input.CategoryID)
	if err != nil {
		return nil, err
	}

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	bill, err := uc.billRepo.GetByIDForUpdate(ctx, tx, input.BillID)
	if err != nil {
		return nil, err
	}
	account, err := uc.accountRepo.GetByIDForUpdate(ctx, tx, input.AccountID)
	if err != nil {
		return nil, err
	}

	op, err := uc.paymentService.CreatePaymentOperation(
		bill, account, budgetID, amount, paidBy, time.Now().UTC(), categoryID)
	if err != nil {
		return nil, err
	}
	if op.AlreadyPaid {
		return op, nil
	}

	if err := uc.transactionRepo.Create(ctx, tx, op.Payment); err != nil {
		return nil, err
	}
	if err := uc.accountRepo.Update(ctx, tx, account); err != nil {
		return nil, err
	}
	if err := uc.billRepo.Update(ctx, tx, bill); err != nil {
		return nil, err
	}

	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCreditCardBill, bill.DrainEvents()); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeAccount, account.DrainEvents()); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeTransaction, op.Payment.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return op, nil
}
