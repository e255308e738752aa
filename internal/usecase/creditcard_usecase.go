package usecase

import (
	"context"
	"time"

	"github.com/iho/budgeteer/internal/domain"
)

// CreditCardUseCase handles credit card and bill business logic.
type CreditCardUseCase struct {
	txManager  TxManager
	cardRepo   CreditCardRepository
	billRepo   CreditCardBillRepository
	outboxRepo OutboxRepository
	idGen      IDGenerator
}

// NewCreditCardUseCase creates a new CreditCardUseCase.
func NewCreditCardUseCase(
	txManager TxManager,
	cardRepo CreditCardRepository,
	billRepo CreditCardBillRepository,
	outboxRepo OutboxRepository,
	idGen IDGenerator,
) *CreditCardUseCase {
	return &CreditCardUseCase{
		txManager:  txManager,
		cardRepo:   cardRepo,
		billRepo:   billRepo,
		outboxRepo: outboxRepo,
		idGen:      idGen,
	}
}

// CreateCreditCardInput represents input for creating a credit card.
type CreateCreditCardInput struct {
	Name       string
	Limit      float64
	ClosingDay int
	DueDay     int
	BudgetID   string
}

// CreateCreditCard validates the input and persists the new card
// together with its creation event.
func (uc *CreditCardUseCase) CreateCreditCard(ctx context.Context, input CreateCreditCardInput) (*domain.CreditCard, error) {
	res := domain.NewCreditCard(domain.NewCreditCardInput{
		Name:       input.Name,
		Limit:      input.Limit,
		ClosingDay: input.ClosingDay,
		DueDay:     input.DueDay,
		BudgetID:   input.BudgetID,
	})
	if res.HasError() {
		return nil, res.Err()
	}
	card := res.Value()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.cardRepo.Create(ctx, tx, card); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCreditCard, card.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return card, nil
}

// GetCreditCard retrieves a credit card by ID.
func (uc *CreditCardUseCase) GetCreditCard(ctx context.Context, id string) (*domain.CreditCard, error) {
	return uc.cardRepo.GetByID(ctx, id)
}

// ListCreditCardsInput represents input for listing credit cards.
type ListCreditCardsInput struct {
	BudgetID string
	Limit    int
	Offset   int
}

// ListCreditCards lists the credit cards of a budget with pagination.
func (uc *CreditCardUseCase) ListCreditCards(ctx context.Context, input ListCreditCardsInput) ([]*domain.CreditCard, error) {
	return uc.cardRepo.ListByBudget(ctx, input.BudgetID, clampLimit(input.Limit), input.Offset)
}

// UpdateCreditCardInput represents input for updating a credit card.
// Nil fields are left untouched; closing and due day change together.
type UpdateCreditCardInput struct {
	ID         string
	Name       *string
	Limit      *float64
	ClosingDay *int
	DueDay     *int
}

// UpdateCreditCard applies the requested field changes.
func (uc *CreditCardUseCase) UpdateCreditCard(ctx context.Context, input UpdateCreditCardInput) (*domain.CreditCard, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	card, err := uc.cardRepo.GetByIDForUpdate(ctx, tx, input.ID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		if err := card.UpdateName(*input.Name); err != nil {
			return nil, err
		}
	}
	if input.Limit != nil {
		if err := card.UpdateLimit(*input.Limit); err != nil {
			return nil, err
		}
	}
	if input.ClosingDay != nil || input.DueDay != nil {
		closingDay := card.ClosingDay().Int()
		if input.ClosingDay != nil {
			closingDay = *input.ClosingDay
		}
		dueDay := card.DueDay().Int()
		if input.DueDay != nil {
			dueDay = *input.DueDay
		}
		if err := card.UpdateCycleDays(closingDay, dueDay); err != nil {
			return nil, err
		}
	}

	if err := uc.cardRepo.Update(ctx, tx, card); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCreditCard, card.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return card, nil
}

// DeleteCreditCard soft-deletes a credit card.
func (uc *CreditCardUseCase) DeleteCreditCard(ctx context.Context, id string) error {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	card, err := uc.cardRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return err
	}

	if err := card.Delete(); err != nil {
		return err
	}

	if err := uc.cardRepo.Update(ctx, tx, card); err != nil {
		return err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCreditCard, card.DrainEvents()); err != nil {
		return err
	}

	return tx.Commit(ctx)
}

// OpenNextBill creates the next bill for a card, with closing and due
// dates computed from the card's cycle days relative to now.
func (uc *CreditCardUseCase) OpenNextBill(ctx context.Context, cardID string) (*domain.CreditCardBill, error) {
	card, err := uc.cardRepo.GetByID(ctx, cardID)
	if err != nil {
		return nil, err
	}
	if card.IsDeleted() {
		return nil, domain.NewNotFoundError("CreditCard")
	}

	closingDate, dueDate := card.NextBillPeriod(time.Now())

	res := domain.NewCreditCardBill(domain.NewCreditCardBillInput{
		CreditCardID: card.ID().String(),
		ClosingDate:  closingDate,
		DueDate:      dueDate,
		Amount:       0,
	})
	if res.HasError() {
		return nil, res.Err()
	}
	bill := res.Value()

	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	if err := uc.billRepo.Create(ctx, tx, bill); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCreditCardBill, bill.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return bill, nil
}

// GetBill retrieves a bill by ID.
func (uc *CreditCardUseCase) GetBill(ctx context.Context, id string) (*domain.CreditCardBill, error) {
	return uc.billRepo.GetByID(ctx, id)
}

// ListBillsInput represents input for listing the bills of a card.
type ListBillsInput struct {
	CreditCardID string
	Limit        int
	Offset       int
}

// ListBills lists the bills of a credit card with pagination.
func (uc *CreditCardUseCase) ListBills(ctx context.Context, input ListBillsInput) ([]*domain.CreditCardBill, error) {
	return uc.billRepo.ListByCard(ctx, input.CreditCardID, clampLimit(input.Limit), input.Offset)
}

// AddBillCharge adds a card purchase to an open bill.
func (uc *CreditCardUseCase) AddBillCharge(ctx context.Context, billID string, amount float64) (*domain.CreditCardBill, error) {
	charge, err := domain.NewMoney(amount)
	if err != nil {
		return nil, err
	}

	return uc.mutateBill(ctx, billID, func(b *domain.CreditCardBill) error {
		return b.AddCharge(charge)
	})
}

// CloseBill freezes an open bill at the end of its cycle.
func (uc *CreditCardUseCase) CloseBill(ctx context.Context, billID string) (*domain.CreditCardBill, error) {
	return uc.mutateBill(ctx, billID, func(b *domain.CreditCardBill) error {
		return b.Close()
	})
}

// ReopenBill reverts a paid bill to OPEN within the reopening window,
// recording the given justification.
func (uc *CreditCardUseCase) ReopenBill(ctx context.Context, billID, justification string) (*domain.CreditCardBill, error) {
	return uc.mutateBill(ctx, billID, func(b *domain.CreditCardBill) error {
		return b.Reopen(justification)
	})
}

// MarkOverdueBills flags every unpaid bill whose due date has passed.
// It returns the number of bills flagged.
func (uc *CreditCardUseCase) MarkOverdueBills(ctx context.Context, limit int) (int, error) {
	bills, err := uc.billRepo.ListPastDue(ctx, time.Now().UTC(), clampLimit(limit))
	if err != nil {
		return 0, err
	}

	flagged := 0
	for _, stale := range bills {
		if _, err := uc.mutateBill(ctx, stale.ID().String(), func(b *domain.CreditCardBill) error {
			return b.MarkAsOverdue()
		}); err != nil {
			return flagged, err
		}
		flagged++
	}

	return flagged, nil
}

func (uc *CreditCardUseCase) mutateBill(ctx context.Context, id string, fn func(*domain.CreditCardBill) error) (*domain.CreditCardBill, error) {
	tx, err := uc.txManager.Begin(ctx)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback(ctx)

	bill, err := uc.billRepo.GetByIDForUpdate(ctx, tx, id)
	if err != nil {
		return nil, err
	}

	if err := fn(bill); err != nil {
		return nil, err
	}

	if err := uc.billRepo.Update(ctx, tx, bill); err != nil {
		return nil, err
	}
	if err := stageOutbox(ctx, tx, uc.outboxRepo, uc.idGen, domain.AggregateTypeCreditCardBill, bill.DrainEvents()); err != nil {
		return nil, err
	}

	if err := tx.Commit(ctx); err != nil {
		return nil, err
	}

	return bill, nil
}
