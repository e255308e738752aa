package mocks

import (
	"context"
	"sync"
	"time"

	"github.com/iho/budgeteer/internal/domain"
	"github.com/iho/budgeteer/internal/usecase"
)

// MockTx is a mock database transaction.
type MockTx struct {
	CommitFunc   func(ctx context.Context) error
	RollbackFunc func(ctx context.Context) error

	Committed  bool
	RolledBack bool
}

func (m *MockTx) Commit(ctx context.Context) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(ctx)
	}
	m.Committed = true
	return nil
}

func (m *MockTx) Rollback(ctx context.Context) error {
	if m.RollbackFunc != nil {
		return m.RollbackFunc(ctx)
	}
	if !m.Committed {
		m.RolledBack = true
	}
	return nil
}

// MockTxManager is a mock implementation of TxManager.
type MockTxManager struct {
	BeginFunc func(ctx context.Context) (usecase.Tx, error)

	LastTx *MockTx
}

func NewMockTxManager() *MockTxManager {
	return &MockTxManager{}
}

func (m *MockTxManager) Begin(ctx context.Context) (usecase.Tx, error) {
	if m.BeginFunc != nil {
		return m.BeginFunc(ctx)
	}
	m.LastTx = &MockTx{}
	return m.LastTx, nil
}

// MockIDGenerator is a mock implementation of IDGenerator.
type MockIDGenerator struct {
	GenerateFunc func() string

	mu   sync.Mutex
	next int
}

func NewMockIDGenerator() *MockIDGenerator {
	return &MockIDGenerator{}
}

func (m *MockIDGenerator) Generate() string {
	if m.GenerateFunc != nil {
		return m.GenerateFunc()
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.next++
	return "outbox-" + time.Now().UTC().Format("20060102150405") + "-" + itoa(m.next)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var buf [20]byte
	i := len(buf)
	for n > 0 {
		i--
		buf[i] = byte('0' + n%10)
		n /= 10
	}
	return string(buf[i:])
}

// MockAccountRepository is a mock implementation of AccountRepository.
type MockAccountRepository struct {
	mu       sync.RWMutex
	accounts map[string]*domain.Account

	CreateFunc            func(ctx context.Context, tx usecase.Tx, account *domain.Account) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Account, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error)
	GetByIDsForUpdateFunc func(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Tx, account *domain.Account) error
	ListByBudgetFunc      func(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Account, error)
}

func NewMockAccountRepository() *MockAccountRepository {
	return &MockAccountRepository{
		accounts: make(map[string]*domain.Account),
	}
}

func (m *MockAccountRepository) Create(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID().String()] = account
	return nil
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id string) (*domain.Account, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if a, ok := m.accounts[id]; ok {
		return a, nil
	}
	return nil, domain.NewNotFoundError("Account")
}

func (m *MockAccountRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Account, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockAccountRepository) GetByIDsForUpdate(ctx context.Context, tx usecase.Tx, ids []string) ([]*domain.Account, error) {
	if m.GetByIDsForUpdateFunc != nil {
		return m.GetByIDsForUpdateFunc(ctx, tx, ids)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, id := range ids {
		if a, ok := m.accounts[id]; ok {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

func (m *MockAccountRepository) Update(ctx context.Context, tx usecase.Tx, account *domain.Account) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, account)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.accounts[account.ID().String()] = account
	return nil
}

func (m *MockAccountRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Account, error) {
	if m.ListByBudgetFunc != nil {
		return m.ListByBudgetFunc(ctx, budgetID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var accounts []*domain.Account
	for _, a := range m.accounts {
		if a.BudgetID().String() == budgetID {
			accounts = append(accounts, a)
		}
	}
	return accounts, nil
}

// MockBudgetRepository is a mock implementation of BudgetRepository.
type MockBudgetRepository struct {
	mu      sync.RWMutex
	budgets map[string]*domain.Budget

	CreateFunc            func(ctx context.Context, tx usecase.Tx, budget *domain.Budget) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Budget, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Tx, id string) (*domain.Budget, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Tx, budget *domain.Budget) error
	ListByParticipantFunc func(ctx context.Context, participantID string, limit, offset int) ([]*domain.Budget, error)
}

func NewMockBudgetRepository() *MockBudgetRepository {
	return &MockBudgetRepository{
		budgets: make(map[string]*domain.Budget),
	}
}

func (m *MockBudgetRepository) Create(ctx context.Context, tx usecase.Tx, budget *domain.Budget) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, budget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgets[budget.ID().String()] = budget
	return nil
}

func (m *MockBudgetRepository) GetByID(ctx context.Context, id string) (*domain.Budget, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.budgets[id]; ok {
		return b, nil
	}
	return nil, domain.NewNotFoundError("Budget")
}

func (m *MockBudgetRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Budget, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockBudgetRepository) Update(ctx context.Context, tx usecase.Tx, budget *domain.Budget) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, budget)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.budgets[budget.ID().String()] = budget
	return nil
}

func (m *MockBudgetRepository) ListByParticipant(ctx context.Context, participantID string, limit, offset int) ([]*domain.Budget, error) {
	if m.ListByParticipantFunc != nil {
		return m.ListByParticipantFunc(ctx, participantID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var budgets []*domain.Budget
	for _, b := range m.budgets {
		for _, p := range b.ParticipantIDs() {
			if p.String() == participantID {
				budgets = append(budgets, b)
				break
			}
		}
	}
	return budgets, nil
}

// MockCategoryRepository is a mock implementation of CategoryRepository.
type MockCategoryRepository struct {
	mu         sync.RWMutex
	categories map[string]*domain.Category

	CreateFunc           func(ctx context.Context, tx usecase.Tx, category *domain.Category) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.Category, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, id string) (*domain.Category, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Tx, category *domain.Category) error
	ListByBudgetFunc     func(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Category, error)
}

func NewMockCategoryRepository() *MockCategoryRepository {
	return &MockCategoryRepository{
		categories: make(map[string]*domain.Category),
	}
}

func (m *MockCategoryRepository) Create(ctx context.Context, tx usecase.Tx, category *domain.Category) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID().String()] = category
	return nil
}

func (m *MockCategoryRepository) GetByID(ctx context.Context, id string) (*domain.Category, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.categories[id]; ok {
		return c, nil
	}
	return nil, domain.NewNotFoundError("Category")
}

func (m *MockCategoryRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Category, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCategoryRepository) Update(ctx context.Context, tx usecase.Tx, category *domain.Category) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, category)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.categories[category.ID().String()] = category
	return nil
}

func (m *MockCategoryRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Category, error) {
	if m.ListByBudgetFunc != nil {
		return m.ListByBudgetFunc(ctx, budgetID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var categories []*domain.Category
	for _, c := range m.categories {
		if c.BudgetID().String() == budgetID {
			categories = append(categories, c)
		}
	}
	return categories, nil
}

// MockCreditCardRepository is a mock implementation of
// CreditCardRepository.
type MockCreditCardRepository struct {
	mu    sync.RWMutex
	cards map[string]*domain.CreditCard

	CreateFunc           func(ctx context.Context, tx usecase.Tx, card *domain.CreditCard) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.CreditCard, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, id string) (*domain.CreditCard, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Tx, card *domain.CreditCard) error
	ListByBudgetFunc     func(ctx context.Context, budgetID string, limit, offset int) ([]*domain.CreditCard, error)
}

func NewMockCreditCardRepository() *MockCreditCardRepository {
	return &MockCreditCardRepository{
		cards: make(map[string]*domain.CreditCard),
	}
}

func (m *MockCreditCardRepository) Create(ctx context.Context, tx usecase.Tx, card *domain.CreditCard) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, card)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[card.ID().String()] = card
	return nil
}

func (m *MockCreditCardRepository) GetByID(ctx context.Context, id string) (*domain.CreditCard, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if c, ok := m.cards[id]; ok {
		return c, nil
	}
	return nil, domain.NewNotFoundError("CreditCard")
}

func (m *MockCreditCardRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.CreditCard, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCreditCardRepository) Update(ctx context.Context, tx usecase.Tx, card *domain.CreditCard) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, card)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.cards[card.ID().String()] = card
	return nil
}

func (m *MockCreditCardRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.CreditCard, error) {
	if m.ListByBudgetFunc != nil {
		return m.ListByBudgetFunc(ctx, budgetID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var cards []*domain.CreditCard
	for _, c := range m.cards {
		if c.BudgetID().String() == budgetID {
			cards = append(cards, c)
		}
	}
	return cards, nil
}

// MockCreditCardBillRepository is a mock implementation of
// CreditCardBillRepository.
type MockCreditCardBillRepository struct {
	mu    sync.RWMutex
	bills map[string]*domain.CreditCardBill

	CreateFunc           func(ctx context.Context, tx usecase.Tx, bill *domain.CreditCardBill) error
	GetByIDFunc          func(ctx context.Context, id string) (*domain.CreditCardBill, error)
	GetByIDForUpdateFunc func(ctx context.Context, tx usecase.Tx, id string) (*domain.CreditCardBill, error)
	UpdateFunc           func(ctx context.Context, tx usecase.Tx, bill *domain.CreditCardBill) error
	ListByCardFunc       func(ctx context.Context, creditCardID string, limit, offset int) ([]*domain.CreditCardBill, error)
	ListPastDueFunc      func(ctx context.Context, before time.Time, limit int) ([]*domain.CreditCardBill, error)
}

func NewMockCreditCardBillRepository() *MockCreditCardBillRepository {
	return &MockCreditCardBillRepository{
		bills: make(map[string]*domain.CreditCardBill),
	}
}

func (m *MockCreditCardBillRepository) Create(ctx context.Context, tx usecase.Tx, bill *domain.CreditCardBill) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[bill.ID().String()] = bill
	return nil
}

func (m *MockCreditCardBillRepository) GetByID(ctx context.Context, id string) (*domain.CreditCardBill, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if b, ok := m.bills[id]; ok {
		return b, nil
	}
	return nil, domain.NewNotFoundError("CreditCardBill")
}

func (m *MockCreditCardBillRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.CreditCardBill, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockCreditCardBillRepository) Update(ctx context.Context, tx usecase.Tx, bill *domain.CreditCardBill) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, bill)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.bills[bill.ID().String()] = bill
	return nil
}

func (m *MockCreditCardBillRepository) ListByCard(ctx context.Context, creditCardID string, limit, offset int) ([]*domain.CreditCardBill, error) {
	if m.ListByCardFunc != nil {
		return m.ListByCardFunc(ctx, creditCardID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var bills []*domain.CreditCardBill
	for _, b := range m.bills {
		if b.CreditCardID().String() == creditCardID {
			bills = append(bills, b)
		}
	}
	return bills, nil
}

func (m *MockCreditCardBillRepository) ListPastDue(ctx context.Context, before time.Time, limit int) ([]*domain.CreditCardBill, error) {
	if m.ListPastDueFunc != nil {
		return m.ListPastDueFunc(ctx, before, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var bills []*domain.CreditCardBill
	for _, b := range m.bills {
		if b.Status() != domain.BillStatusPaid && b.DueDate().Before(before) {
			bills = append(bills, b)
		}
	}
	return bills, nil
}

// MockGoalRepository is a mock implementation of GoalRepository.
type MockGoalRepository struct {
	mu    sync.RWMutex
	goals map[string]*domain.Goal

	CreateFunc              func(ctx context.Context, tx usecase.Tx, goal *domain.Goal) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Goal, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Tx, id string) (*domain.Goal, error)
	UpdateFunc              func(ctx context.Context, tx usecase.Tx, goal *domain.Goal) error
	ListBySourceAccountFunc func(ctx context.Context, accountID string) ([]*domain.Goal, error)
	ListByBudgetFunc        func(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Goal, error)
}

func NewMockGoalRepository() *MockGoalRepository {
	return &MockGoalRepository{
		goals: make(map[string]*domain.Goal),
	}
}

func (m *MockGoalRepository) Create(ctx context.Context, tx usecase.Tx, goal *domain.Goal) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, goal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[goal.ID().String()] = goal
	return nil
}

func (m *MockGoalRepository) GetByID(ctx context.Context, id string) (*domain.Goal, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if g, ok := m.goals[id]; ok {
		return g, nil
	}
	return nil, domain.NewNotFoundError("Goal")
}

func (m *MockGoalRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Goal, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockGoalRepository) Update(ctx context.Context, tx usecase.Tx, goal *domain.Goal) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, goal)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.goals[goal.ID().String()] = goal
	return nil
}

func (m *MockGoalRepository) ListBySourceAccount(ctx context.Context, accountID string) ([]*domain.Goal, error) {
	if m.ListBySourceAccountFunc != nil {
		return m.ListBySourceAccountFunc(ctx, accountID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var goals []*domain.Goal
	for _, g := range m.goals {
		if g.SourceAccountID().String() == accountID {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

func (m *MockGoalRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Goal, error) {
	if m.ListByBudgetFunc != nil {
		return m.ListByBudgetFunc(ctx, budgetID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var goals []*domain.Goal
	for _, g := range m.goals {
		if g.BudgetID().String() == budgetID {
			goals = append(goals, g)
		}
	}
	return goals, nil
}

// MockTransactionRepository is a mock implementation of
// TransactionRepository.
type MockTransactionRepository struct {
	mu           sync.RWMutex
	transactions map[string]*domain.Transaction

	CreateFunc              func(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error
	GetByIDFunc             func(ctx context.Context, id string) (*domain.Transaction, error)
	GetByIDForUpdateFunc    func(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error)
	UpdateFunc              func(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error
	ListByBudgetFunc        func(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Transaction, error)
	ListScheduledBeforeFunc func(ctx context.Context, before time.Time, limit int) ([]*domain.Transaction, error)
	CountByCategoryFunc     func(ctx context.Context, categoryID string) (int64, error)
}

func NewMockTransactionRepository() *MockTransactionRepository {
	return &MockTransactionRepository{
		transactions: make(map[string]*domain.Transaction),
	}
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID().String()] = transaction
	return nil
}

func (m *MockTransactionRepository) GetByID(ctx context.Context, id string) (*domain.Transaction, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if t, ok := m.transactions[id]; ok {
		return t, nil
	}
	return nil, domain.NewNotFoundError("Transaction")
}

func (m *MockTransactionRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Transaction, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockTransactionRepository) Update(ctx context.Context, tx usecase.Tx, transaction *domain.Transaction) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, transaction)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.transactions[transaction.ID().String()] = transaction
	return nil
}

func (m *MockTransactionRepository) ListByBudget(ctx context.Context, budgetID string, limit, offset int) ([]*domain.Transaction, error) {
	if m.ListByBudgetFunc != nil {
		return m.ListByBudgetFunc(ctx, budgetID, limit, offset)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.Transaction
	for _, t := range m.transactions {
		if t.BudgetID().String() == budgetID {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) ListScheduledBefore(ctx context.Context, before time.Time, limit int) ([]*domain.Transaction, error) {
	if m.ListScheduledBeforeFunc != nil {
		return m.ListScheduledBeforeFunc(ctx, before, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var transactions []*domain.Transaction
	for _, t := range m.transactions {
		if t.Status() == domain.TransactionStatusScheduled && t.TransactionDate().Before(before) {
			transactions = append(transactions, t)
		}
	}
	return transactions, nil
}

func (m *MockTransactionRepository) CountByCategory(ctx context.Context, categoryID string) (int64, error) {
	if m.CountByCategoryFunc != nil {
		return m.CountByCategoryFunc(ctx, categoryID)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var count int64
	for _, t := range m.transactions {
		if t.CategoryID().String() == categoryID {
			count++
		}
	}
	return count, nil
}

// MockEnvelopeRepository is a mock implementation of EnvelopeRepository.
type MockEnvelopeRepository struct {
	mu        sync.RWMutex
	envelopes map[string]*domain.Envelope

	CreateFunc            func(ctx context.Context, tx usecase.Tx, envelope *domain.Envelope) error
	GetByIDFunc           func(ctx context.Context, id string) (*domain.Envelope, error)
	GetByIDForUpdateFunc  func(ctx context.Context, tx usecase.Tx, id string) (*domain.Envelope, error)
	UpdateFunc            func(ctx context.Context, tx usecase.Tx, envelope *domain.Envelope) error
	ListByBudgetMonthFunc func(ctx context.Context, budgetID string, month, year int) ([]*domain.Envelope, error)
}

func NewMockEnvelopeRepository() *MockEnvelopeRepository {
	return &MockEnvelopeRepository{
		envelopes: make(map[string]*domain.Envelope),
	}
}

func (m *MockEnvelopeRepository) Create(ctx context.Context, tx usecase.Tx, envelope *domain.Envelope) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, envelope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.envelopes[envelope.ID().String()] = envelope
	return nil
}

func (m *MockEnvelopeRepository) GetByID(ctx context.Context, id string) (*domain.Envelope, error) {
	if m.GetByIDFunc != nil {
		return m.GetByIDFunc(ctx, id)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	if e, ok := m.envelopes[id]; ok {
		return e, nil
	}
	return nil, domain.NewNotFoundError("Envelope")
}

func (m *MockEnvelopeRepository) GetByIDForUpdate(ctx context.Context, tx usecase.Tx, id string) (*domain.Envelope, error) {
	if m.GetByIDForUpdateFunc != nil {
		return m.GetByIDForUpdateFunc(ctx, tx, id)
	}
	return m.GetByID(ctx, id)
}

func (m *MockEnvelopeRepository) Update(ctx context.Context, tx usecase.Tx, envelope *domain.Envelope) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, tx, envelope)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.envelopes[envelope.ID().String()] = envelope
	return nil
}

func (m *MockEnvelopeRepository) ListByBudgetMonth(ctx context.Context, budgetID string, month, year int) ([]*domain.Envelope, error) {
	if m.ListByBudgetMonthFunc != nil {
		return m.ListByBudgetMonthFunc(ctx, budgetID, month, year)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var envelopes []*domain.Envelope
	for _, e := range m.envelopes {
		if e.BudgetID().String() == budgetID && e.Month() == month && e.Year() == year {
			envelopes = append(envelopes, e)
		}
	}
	return envelopes, nil
}

// MockOutboxRepository is a mock implementation of OutboxRepository.
type MockOutboxRepository struct {
	mu     sync.RWMutex
	events []*usecase.OutboxEvent

	CreateFunc          func(ctx context.Context, tx usecase.Tx, event *usecase.OutboxEvent) error
	CreateBatchFunc     func(ctx context.Context, tx usecase.Tx, events []*usecase.OutboxEvent) error
	GetUnpublishedFunc  func(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error)
	MarkPublishedFunc   func(ctx context.Context, id string, publishedAt time.Time) error
	DeletePublishedFunc func(ctx context.Context, before time.Time) error
}

func NewMockOutboxRepository() *MockOutboxRepository {
	return &MockOutboxRepository{}
}

func (m *MockOutboxRepository) Create(ctx context.Context, tx usecase.Tx, event *usecase.OutboxEvent) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, tx, event)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, event)
	return nil
}

func (m *MockOutboxRepository) CreateBatch(ctx context.Context, tx usecase.Tx, events []*usecase.OutboxEvent) error {
	if m.CreateBatchFunc != nil {
		return m.CreateBatchFunc(ctx, tx, events)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.events = append(m.events, events...)
	return nil
}

func (m *MockOutboxRepository) GetUnpublished(ctx context.Context, limit int) ([]*usecase.OutboxEvent, error) {
	if m.GetUnpublishedFunc != nil {
		return m.GetUnpublishedFunc(ctx, limit)
	}
	m.mu.RLock()
	defer m.mu.RUnlock()
	var unpublished []*usecase.OutboxEvent
	for _, e := range m.events {
		if e.PublishedAt == nil {
			unpublished = append(unpublished, e)
		}
		if len(unpublished) == limit {
			break
		}
	}
	return unpublished, nil
}

func (m *MockOutboxRepository) MarkPublished(ctx context.Context, id string, publishedAt time.Time) error {
	if m.MarkPublishedFunc != nil {
		return m.MarkPublishedFunc(ctx, id, publishedAt)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, e := range m.events {
		if e.ID == id {
			e.PublishedAt = &publishedAt
		}
	}
	return nil
}

func (m *MockOutboxRepository) DeletePublished(ctx context.Context, before time.Time) error {
	if m.DeletePublishedFunc != nil {
		return m.DeletePublishedFunc(ctx, before)
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	var kept []*usecase.OutboxEvent
	for _, e := range m.events {
		if e.PublishedAt == nil || !e.PublishedAt.Before(before) {
			kept = append(kept, e)
		}
	}
	m.events = kept
	return nil
}

// Events returns a copy of the stored outbox events.
func (m *MockOutboxRepository) Events() []*usecase.OutboxEvent {
	m.mu.RLock()
	defer m.mu.RUnlock()
	events := make([]*usecase.OutboxEvent, len(m.events))
	copy(events, m.events)
	return events
}
