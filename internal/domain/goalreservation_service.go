package domain

// GoalReservationInput groups the aggregates a reservation check spans:
// the candidate goal, its source account, and every goal funded from
// that account (the candidate may or may not be included; it is matched
// by id and skipped).
type GoalReservationInput struct {
	Goal                *Goal
	SourceAccount       *Account
	AllGoalsFromAccount []*Goal
	AdditionalAmount    Money
}

// GoalReservationService enforces that the money reserved by all goals
// of one source account never exceeds that account's balance.
type GoalReservationService struct{}

// NewGoalReservationService creates the service.
func NewGoalReservationService() *GoalReservationService {
	return &GoalReservationService{}
}

// ValidateReservationOperation verifies the reservation fits the source
// account balance and, on success, applies the additional amount to the
// goal.
func (s *GoalReservationService) ValidateReservationOperation(input GoalReservationInput) error {
	goal := input.Goal
	account := input.SourceAccount

	if goal.IsDeleted() {
		return NewAlreadyDeletedError("Goal", goal.ID())
	}
	if account.IsDeleted() {
		return NewAlreadyDeletedError("Account", account.ID())
	}
	if !goal.BudgetID().Equal(account.BudgetID()) {
		return ErrGoalAccountMismatch
	}

	reserved := goal.AccumulatedAmount().Add(input.AdditionalAmount)
	for _, other := range input.AllGoalsFromAccount {
		if other.ID().Equal(goal.ID()) || other.IsDeleted() {
			continue
		}
		if !other.SourceAccountID().Equal(account.ID()) {
			continue
		}
		reserved = reserved.Add(other.AccumulatedAmount())
	}

	if !account.Balance().CanCover(reserved) {
		return ErrInsufficientBalance
	}

	return goal.AddAmount(input.AdditionalAmount)
}
