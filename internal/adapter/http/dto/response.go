package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/iho/budgeteer/internal/domain"
)

// Responses carry every amount twice: the exact cents value and the
// display value in major units.

// BudgetResponse represents a budget in API responses.
type BudgetResponse struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Type           string    `json:"type"`
	OwnerID        string    `json:"owner_id"`
	ParticipantIDs []string  `json:"participant_ids"`
	CreatedAt      time.Time `json:"created_at"`
	UpdatedAt      time.Time `json:"updated_at"`
}

// BudgetFromDomain converts a domain budget to a response.
func BudgetFromDomain(b *domain.Budget) *BudgetResponse {
	ids := b.ParticipantIDs()
	participants := make([]string, len(ids))
	for i, id := range ids {
		participants[i] = id.String()
	}
	return &BudgetResponse{
		ID:             b.ID().String(),
		Name:           b.Name(),
		Type:           string(b.Type()),
		OwnerID:        b.OwnerID().String(),
		ParticipantIDs: participants,
		CreatedAt:      b.CreatedAt(),
		UpdatedAt:      b.UpdatedAt(),
	}
}

// BudgetsFromDomain converts domain budgets to responses.
func BudgetsFromDomain(budgets []*domain.Budget) []*BudgetResponse {
	result := make([]*BudgetResponse, len(budgets))
	for i, b := range budgets {
		result[i] = BudgetFromDomain(b)
	}
	return result
}

// AccountResponse represents an account in API responses.
type AccountResponse struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Type         string          `json:"type"`
	BudgetID     string          `json:"budget_id"`
	BalanceCents int64           `json:"balance_cents"`
	Balance      decimal.Decimal `json:"balance"`
	Description  string          `json:"description,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// AccountFromDomain converts a domain account to a response.
func AccountFromDomain(a *domain.Account) *AccountResponse {
	return &AccountResponse{
		ID:           a.ID().String(),
		Name:         a.Name(),
		Type:         string(a.Type()),
		BudgetID:     a.BudgetID().String(),
		BalanceCents: a.Balance().Cents(),
		Balance:      a.Balance().Decimal(),
		Description:  a.Description(),
		CreatedAt:    a.CreatedAt(),
		UpdatedAt:    a.UpdatedAt(),
	}
}

// AccountsFromDomain converts domain accounts to responses.
func AccountsFromDomain(accounts []*domain.Account) []*AccountResponse {
	result := make([]*AccountResponse, len(accounts))
	for i, a := range accounts {
		result[i] = AccountFromDomain(a)
	}
	return result
}

// CategoryResponse represents a category in API responses.
type CategoryResponse struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Type      string    `json:"type"`
	BudgetID  string    `json:"budget_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// CategoryFromDomain converts a domain category to a response.
func CategoryFromDomain(c *domain.Category) *CategoryResponse {
	return &CategoryResponse{
		ID:        c.ID().String(),
		Name:      c.Name(),
		Type:      string(c.Type()),
		BudgetID:  c.BudgetID().String(),
		CreatedAt: c.CreatedAt(),
		UpdatedAt: c.UpdatedAt(),
	}
}

// CategoriesFromDomain converts domain categories to responses.
func CategoriesFromDomain(categories []*domain.Category) []*CategoryResponse {
	result := make([]*CategoryResponse, len(categories))
	for i, c := range categories {
		result[i] = CategoryFromDomain(c)
	}
	return result
}

// CreditCardResponse represents a credit card in API responses.
type CreditCardResponse struct {
	ID         string          `json:"id"`
	Name       string          `json:"name"`
	LimitCents int64           `json:"limit_cents"`
	Limit      decimal.Decimal `json:"limit"`
	ClosingDay int             `json:"closing_day"`
	DueDay     int             `json:"due_day"`
	BudgetID   string          `json:"budget_id"`
	CreatedAt  time.Time       `json:"created_at"`
	UpdatedAt  time.Time       `json:"updated_at"`
}

// CreditCardFromDomain converts a domain credit card to a response.
func CreditCardFromDomain(c *domain.CreditCard) *CreditCardResponse {
	return &CreditCardResponse{
		ID:         c.ID().String(),
		Name:       c.Name(),
		LimitCents: c.Limit().Cents(),
		Limit:      c.Limit().Decimal(),
		ClosingDay: c.ClosingDay().Int(),
		DueDay:     c.DueDay().Int(),
		BudgetID:   c.BudgetID().String(),
		CreatedAt:  c.CreatedAt(),
		UpdatedAt:  c.UpdatedAt(),
	}
}

// CreditCardsFromDomain converts domain credit cards to responses.
func CreditCardsFromDomain(cards []*domain.CreditCard) []*CreditCardResponse {
	result := make([]*CreditCardResponse, len(cards))
	for i, c := range cards {
		result[i] = CreditCardFromDomain(c)
	}
	return result
}

// CreditCardBillResponse represents a credit card bill in API
// responses.
type CreditCardBillResponse struct {
	ID           string          `json:"id"`
	CreditCardID string          `json:"credit_card_id"`
	ClosingDate  time.Time       `json:"closing_date"`
	DueDate      time.Time       `json:"due_date"`
	AmountCents  int64           `json:"amount_cents"`
	Amount       decimal.Decimal `json:"amount"`
	Status       string          `json:"status"`
	PaidAt       *time.Time      `json:"paid_at,omitempty"`
	CreatedAt    time.Time       `json:"created_at"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// CreditCardBillFromDomain converts a domain bill to a response.
func CreditCardBillFromDomain(b *domain.CreditCardBill) *CreditCardBillResponse {
	return &CreditCardBillResponse{
		ID:           b.ID().String(),
		CreditCardID: b.CreditCardID().String(),
		ClosingDate:  b.ClosingDate(),
		DueDate:      b.DueDate(),
		AmountCents:  b.Amount().Cents(),
		Amount:       b.Amount().Decimal(),
		Status:       string(b.Status()),
		PaidAt:       b.PaidAt(),
		CreatedAt:    b.CreatedAt(),
		UpdatedAt:    b.UpdatedAt(),
	}
}

// CreditCardBillsFromDomain converts domain bills to responses.
func CreditCardBillsFromDomain(bills []*domain.CreditCardBill) []*CreditCardBillResponse {
	result := make([]*CreditCardBillResponse, len(bills))
	for i, b := range bills {
		result[i] = CreditCardBillFromDomain(b)
	}
	return result
}

// TransactionResponse represents a transaction in API responses.
type TransactionResponse struct {
	ID              string          `json:"id"`
	Description     string          `json:"description"`
	AmountCents     int64           `json:"amount_cents"`
	Amount          decimal.Decimal `json:"amount"`
	Type            string          `json:"type"`
	Status          string          `json:"status"`
	TransactionDate time.Time       `json:"transaction_date"`
	CategoryID      string          `json:"category_id"`
	BudgetID        string          `json:"budget_id"`
	CreditCardID    *string         `json:"credit_card_id,omitempty"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

// TransactionFromDomain converts a domain transaction to a response.
func TransactionFromDomain(t *domain.Transaction) *TransactionResponse {
	resp := &TransactionResponse{
		ID:              t.ID().String(),
		Description:     t.Description(),
		AmountCents:     t.Amount().Cents(),
		Amount:          t.Amount().Decimal(),
		Type:            string(t.Type()),
		Status:          string(t.Status()),
		TransactionDate: t.TransactionDate(),
		CategoryID:      t.CategoryID().String(),
		BudgetID:        t.BudgetID().String(),
		CreatedAt:       t.CreatedAt(),
		UpdatedAt:       t.UpdatedAt(),
	}
	if cardID := t.CreditCardID(); cardID != nil {
		s := cardID.String()
		resp.CreditCardID = &s
	}
	return resp
}

// TransactionsFromDomain converts domain transactions to responses.
func TransactionsFromDomain(transactions []*domain.Transaction) []*TransactionResponse {
	result := make([]*TransactionResponse, len(transactions))
	for i, t := range transactions {
		result[i] = TransactionFromDomain(t)
	}
	return result
}

// TransferResponse pairs the two transactions recorded by a transfer.
type TransferResponse struct {
	Debit  *TransactionResponse `json:"debit"`
	Credit *TransactionResponse `json:"credit"`
}

// TransferFromDomain converts a transfer operation to a response.
func TransferFromDomain(op *domain.TransferOperation) *TransferResponse {
	return &TransferResponse{
		Debit:  TransactionFromDomain(op.Debit),
		Credit: TransactionFromDomain(op.Credit),
	}
}

// BillPaymentResponse represents the outcome of paying a bill.
type BillPaymentResponse struct {
	AlreadyPaid bool                 `json:"already_paid"`
	Payment     *TransactionResponse `json:"payment,omitempty"`
}

// BillPaymentFromDomain converts a bill payment operation to a
// response.
func BillPaymentFromDomain(op *domain.BillPaymentOperation) *BillPaymentResponse {
	resp := &BillPaymentResponse{AlreadyPaid: op.AlreadyPaid}
	if op.Payment != nil {
		resp.Payment = TransactionFromDomain(op.Payment)
	}
	return resp
}

// GoalResponse represents a goal in API responses.
type GoalResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	TotalCents       int64           `json:"total_amount_cents"`
	TotalAmount      decimal.Decimal `json:"total_amount"`
	AccumulatedCents int64           `json:"accumulated_cents"`
	Accumulated      decimal.Decimal `json:"accumulated"`
	RemainingCents   int64           `json:"remaining_cents"`
	Deadline         *time.Time      `json:"deadline,omitempty"`
	BudgetID         string          `json:"budget_id"`
	SourceAccountID  string          `json:"source_account_id"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// GoalFromDomain converts a domain goal to a response.
func GoalFromDomain(g *domain.Goal) *GoalResponse {
	return &GoalResponse{
		ID:               g.ID().String(),
		Name:             g.Name(),
		TotalCents:       g.TotalAmount().Cents(),
		TotalAmount:      g.TotalAmount().Decimal(),
		AccumulatedCents: g.AccumulatedAmount().Cents(),
		Accumulated:      g.AccumulatedAmount().Decimal(),
		RemainingCents:   g.Remaining().Cents(),
		Deadline:         g.Deadline(),
		BudgetID:         g.BudgetID().String(),
		SourceAccountID:  g.SourceAccountID().String(),
		CreatedAt:        g.CreatedAt(),
		UpdatedAt:        g.UpdatedAt(),
	}
}

// GoalsFromDomain converts domain goals to responses.
func GoalsFromDomain(goals []*domain.Goal) []*GoalResponse {
	result := make([]*GoalResponse, len(goals))
	for i, g := range goals {
		result[i] = GoalFromDomain(g)
	}
	return result
}

// EnvelopeResponse represents an envelope in API responses.
type EnvelopeResponse struct {
	ID             string          `json:"id"`
	Name           string          `json:"name"`
	BudgetID       string          `json:"budget_id"`
	CategoryID     string          `json:"category_id"`
	Month          int             `json:"month"`
	Year           int             `json:"year"`
	AllocatedCents int64           `json:"allocated_cents"`
	Allocated      decimal.Decimal `json:"allocated"`
	SpentCents     int64           `json:"spent_cents"`
	Spent          decimal.Decimal `json:"spent"`
	RemainingCents int64           `json:"remaining_cents"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// EnvelopeFromDomain converts a domain envelope to a response.
func EnvelopeFromDomain(e *domain.Envelope) *EnvelopeResponse {
	return &EnvelopeResponse{
		ID:             e.ID().String(),
		Name:           e.Name(),
		BudgetID:       e.BudgetID().String(),
		CategoryID:     e.CategoryID().String(),
		Month:          e.Month(),
		Year:           e.Year(),
		AllocatedCents: e.Allocated().Cents(),
		Allocated:      e.Allocated().Decimal(),
		SpentCents:     e.Spent().Cents(),
		Spent:          e.Spent().Decimal(),
		RemainingCents: e.Remaining().Cents(),
		CreatedAt:      e.CreatedAt(),
		UpdatedAt:      e.UpdatedAt(),
	}
}

// EnvelopesFromDomain converts domain envelopes to responses.
func EnvelopesFromDomain(envelopes []*domain.Envelope) []*EnvelopeResponse {
	result := make([]*EnvelopeResponse, len(envelopes))
	for i, e := range envelopes {
		result[i] = EnvelopeFromDomain(e)
	}
	return result
}

// ErrorResponse represents an error in API responses.
type ErrorResponse struct {
	Error   string `json:"error"`
	Code    string `json:"code,omitempty"`
	Message string `json:"message,omitempty"`
}
