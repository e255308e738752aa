package domain

import (
	"strings"
	"time"
)

// AccountType is the closed set of supported account kinds.
type AccountType string

const (
	AccountTypeChecking       AccountType = "CHECKING"
	AccountTypeSavings        AccountType = "SAVINGS"
	AccountTypePhysicalWallet AccountType = "PHYSICAL_WALLET"
	AccountTypeDigitalWallet  AccountType = "DIGITAL_WALLET"
	AccountTypeInvestment     AccountType = "INVESTMENT"
	AccountTypeOther          AccountType = "OTHER"
)

// ParseAccountType validates raw against the closed set.
func ParseAccountType(field, raw string) (AccountType, error) {
	switch AccountType(raw) {
	case AccountTypeChecking, AccountTypeSavings, AccountTypePhysicalWallet,
		AccountTypeDigitalWallet, AccountTypeInvestment, AccountTypeOther:
		return AccountType(raw), nil
	}
	return "", NewInvalidValueError(field, raw, "must be a valid account type")
}

// allowsNegativeBalance reports overdraft semantics. Savings accounts
// must never go below zero; every other type may.
func (t AccountType) allowsNegativeBalance() bool {
	return t != AccountTypeSavings
}

// Account is a balance-holding aggregate scoped to a budget.
type Account struct {
	eventLog
	id          EntityID
	name        EntityName
	accountType AccountType
	budgetID    EntityID
	balance     Balance
	description string
	createdAt   time.Time
	updatedAt   time.Time
	deleted     bool
}

// NewAccountInput carries the primitive fields of a creation request.
type NewAccountInput struct {
	Name           string
	Type           string
	BudgetID       string
	InitialBalance float64
	Description    string
}

// NewAccount validates every field of input and either returns a fully
// formed account or the complete list of violations.
func NewAccount(input NewAccountInput) Result[*Account] {
	var res Result[*Account]

	name, err := NewEntityName("name", input.Name)
	res.AddError(err)

	accountType, err := ParseAccountType("type", input.Type)
	res.AddError(err)

	budgetID, err := ParseEntityID("budget_id", input.BudgetID)
	res.AddError(err)

	balance, err := NewBalanceField("initial_balance", input.InitialBalance)
	res.AddError(err)

	description, err := normalizeDescription("description", input.Description)
	res.AddError(err)

	if res.HasError() {
		return res
	}

	now := time.Now().UTC()
	a := &Account{
		id:          NewEntityID(),
		name:        name,
		accountType: accountType,
		budgetID:    budgetID,
		balance:     balance,
		description: description,
		createdAt:   now,
		updatedAt:   now,
	}
	a.record(&AccountCreatedEvent{
		BaseEvent:    newBaseEvent(a.id, EventTypeAccountCreated),
		Name:         a.name.String(),
		AccountType:  a.accountType,
		BudgetID:     a.budgetID.String(),
		BalanceCents: a.balance.Cents(),
	})

	res.SetValue(a)

	return res
}

// RestoredAccount is the persistence snapshot of an account. Fields are
// trusted: they were validated before being stored.
type RestoredAccount struct {
	ID           string
	Name         string
	Type         string
	BudgetID     string
	BalanceCents int64
	Description  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Deleted      bool
}

// RestoreAccount rehydrates an account from its persistence snapshot.
func RestoreAccount(s RestoredAccount) *Account {
	return &Account{
		id:          restoredID(s.ID),
		name:        EntityName{value: s.Name},
		accountType: AccountType(s.Type),
		budgetID:    restoredID(s.BudgetID),
		balance:     BalanceFromCents(s.BalanceCents),
		description: s.Description,
		createdAt:   s.CreatedAt,
		updatedAt:   s.UpdatedAt,
		deleted:     s.Deleted,
	}
}

func (a *Account) ID() EntityID         { return a.id }
func (a *Account) Name() string         { return a.name.String() }
func (a *Account) Type() AccountType    { return a.accountType }
func (a *Account) BudgetID() EntityID   { return a.budgetID }
func (a *Account) Balance() Balance     { return a.balance }
func (a *Account) Description() string  { return a.description }
func (a *Account) CreatedAt() time.Time { return a.createdAt }
func (a *Account) UpdatedAt() time.Time { return a.updatedAt }
func (a *Account) IsDeleted() bool      { return a.deleted }

// UpdateName renames the account.
func (a *Account) UpdateName(raw string) error {
	if a.deleted {
		return NewAlreadyDeletedError("Account", a.id)
	}

	name, err := NewEntityName("name", raw)
	if err != nil {
		return err
	}

	a.name = name
	a.touch()
	a.record(&AccountUpdatedEvent{
		BaseEvent: newBaseEvent(a.id, EventTypeAccountUpdated),
		Name:      a.name.String(),
	})

	return nil
}

// UpdateDescription replaces the optional description.
func (a *Account) UpdateDescription(raw string) error {
	if a.deleted {
		return NewAlreadyDeletedError("Account", a.id)
	}

	description, err := normalizeDescription("description", raw)
	if err != nil {
		return err
	}

	a.description = description
	a.touch()

	return nil
}

// ValidateDebit checks whether amount can be debited without violating
// the account type's balance rules.
func (a *Account) ValidateDebit(amount Money) error {
	if a.accountType.allowsNegativeBalance() {
		return nil
	}
	if !a.balance.CanCover(amount) {
		return ErrInsufficientBalance
	}
	return nil
}

// Debit withdraws amount from the account balance.
func (a *Account) Debit(amount Money) error {
	if a.deleted {
		return NewAlreadyDeletedError("Account", a.id)
	}
	if err := a.ValidateDebit(amount); err != nil {
		return err
	}

	a.balance = a.balance.Sub(amount)
	a.touch()

	return nil
}

// Credit deposits amount into the account balance.
func (a *Account) Credit(amount Money) error {
	if a.deleted {
		return NewAlreadyDeletedError("Account", a.id)
	}

	a.balance = a.balance.Add(amount)
	a.touch()

	return nil
}

// Reconcile sets the balance to the externally observed value and
// records the adjustment.
func (a *Account) Reconcile(actualBalance float64) error {
	if a.deleted {
		return NewAlreadyDeletedError("Account", a.id)
	}

	balance, err := NewBalanceField("actual_balance", actualBalance)
	if err != nil {
		return err
	}

	previous := a.balance
	a.balance = balance
	a.touch()
	a.record(&AccountReconciledEvent{
		BaseEvent:            newBaseEvent(a.id, EventTypeAccountReconciled),
		PreviousBalanceCents: previous.Cents(),
		CurrentBalanceCents:  a.balance.Cents(),
	})

	return nil
}

// Delete soft-deletes the account.
func (a *Account) Delete() error {
	if a.deleted {
		return NewAlreadyDeletedError("Account", a.id)
	}

	a.deleted = true
	a.touch()
	a.record(&AccountDeletedEvent{BaseEvent: newBaseEvent(a.id, EventTypeAccountDeleted)})

	return nil
}

func (a *Account) touch() {
	a.updatedAt = time.Now().UTC()
}

// normalizeDescription trims an optional free-text field, rejecting
// anything beyond the description bound. Empty is allowed.
func normalizeDescription(field, raw string) (string, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return "", nil
	}
	name, err := NewBoundedName(field, trimmed, 1, MaxDescriptionLength)
	if err != nil {
		return "", err
	}
	return name.String(), nil
}
