package domain

import "time"

// BudgetType distinguishes personal from shared budgets.
type BudgetType string

const (
	BudgetTypePersonal BudgetType = "PERSONAL"
	BudgetTypeShared   BudgetType = "SHARED"
)

// ParseBudgetType validates raw against the closed set.
func ParseBudgetType(field, raw string) (BudgetType, error) {
	switch BudgetType(raw) {
	case BudgetTypePersonal, BudgetTypeShared:
		return BudgetType(raw), nil
	}
	return "", NewInvalidValueError(field, raw, "must be a valid budget type")
}

// Budget is the sharing boundary: every other aggregate is scoped to a
// budget, and the budget tracks who participates in it. The owner is
// always a participant and can never be removed.
type Budget struct {
	eventLog
	id           EntityID
	name         EntityName
	ownerID      EntityID
	participants []EntityID
	budgetType   BudgetType
	typeExplicit bool
	createdAt    time.Time
	updatedAt    time.Time
	deleted      bool
}

// NewBudgetInput carries the primitive fields of a creation request.
// Type is optional; when empty the budget type is derived from the
// participant count.
type NewBudgetInput struct {
	Name           string
	OwnerID        string
	ParticipantIDs []string
	Type           string
}

// NewBudget validates every field of input and either returns a fully
// formed budget or the complete list of violations.
func NewBudget(input NewBudgetInput) Result[*Budget] {
	var res Result[*Budget]

	name, err := NewEntityName("name", input.Name)
	res.AddError(err)

	ownerID, err := ParseEntityID("owner_id", input.OwnerID)
	res.AddError(err)

	participants := make([]EntityID, 0, len(input.ParticipantIDs)+1)
	for _, raw := range input.ParticipantIDs {
		participantID, err := ParseEntityID("participant_ids", raw)
		if err != nil {
			res.AddError(err)
			continue
		}
		participants = appendParticipant(participants, participantID)
	}

	var budgetType BudgetType

	typeExplicit := input.Type != ""
	if typeExplicit {
		budgetType, err = ParseBudgetType("type", input.Type)
		res.AddError(err)
	}

	if res.HasError() {
		return res
	}

	// The owner is always a member.
	participants = appendParticipant(participants, ownerID)

	now := time.Now().UTC()
	b := &Budget{
		id:           NewEntityID(),
		name:         name,
		ownerID:      ownerID,
		participants: participants,
		budgetType:   budgetType,
		typeExplicit: typeExplicit,
		createdAt:    now,
		updatedAt:    now,
	}
	b.record(&BudgetCreatedEvent{
		BaseEvent: newBaseEvent(b.id, EventTypeBudgetCreated),
		Name:      b.name.String(),
		OwnerID:   b.ownerID.String(),
	})

	res.SetValue(b)

	return res
}

// RestoredBudget is the persistence snapshot of a budget.
type RestoredBudget struct {
	ID             string
	Name           string
	OwnerID        string
	ParticipantIDs []string
	Type           string
	TypeExplicit   bool
	CreatedAt      time.Time
	UpdatedAt      time.Time
	Deleted        bool
}

// RestoreBudget rehydrates a budget from its persistence snapshot.
func RestoreBudget(s RestoredBudget) *Budget {
	participants := make([]EntityID, 0, len(s.ParticipantIDs))
	for _, id := range s.ParticipantIDs {
		participants = append(participants, restoredID(id))
	}

	return &Budget{
		id:           restoredID(s.ID),
		name:         EntityName{value: s.Name},
		ownerID:      restoredID(s.OwnerID),
		participants: participants,
		budgetType:   BudgetType(s.Type),
		typeExplicit: s.TypeExplicit,
		createdAt:    s.CreatedAt,
		updatedAt:    s.UpdatedAt,
		deleted:      s.Deleted,
	}
}

func (b *Budget) ID() EntityID         { return b.id }
func (b *Budget) Name() string         { return b.name.String() }
func (b *Budget) OwnerID() EntityID    { return b.ownerID }
func (b *Budget) CreatedAt() time.Time { return b.createdAt }
func (b *Budget) UpdatedAt() time.Time { return b.updatedAt }
func (b *Budget) IsDeleted() bool      { return b.deleted }

// ParticipantIDs returns a copy of the participant set.
func (b *Budget) ParticipantIDs() []EntityID {
	participants := make([]EntityID, len(b.participants))
	copy(participants, b.participants)
	return participants
}

// Type returns the explicit budget type when one was supplied, otherwise
// a type derived from the participant count.
func (b *Budget) Type() BudgetType {
	if b.typeExplicit {
		return b.budgetType
	}
	if len(b.participants) > 1 {
		return BudgetTypeShared
	}
	return BudgetTypePersonal
}

// TypeIsExplicit reports whether the type was supplied at creation
// rather than derived. Persistence needs the distinction to round-trip.
func (b *Budget) TypeIsExplicit() bool { return b.typeExplicit }

// IsParticipant reports whether id belongs to the participant set.
func (b *Budget) IsParticipant(id EntityID) bool {
	for _, participant := range b.participants {
		if participant.Equal(id) {
			return true
		}
	}
	return false
}

// UpdateName renames the budget.
func (b *Budget) UpdateName(raw string) error {
	if b.deleted {
		return NewAlreadyDeletedError("Budget", b.id)
	}

	name, err := NewEntityName("name", raw)
	if err != nil {
		return err
	}

	b.name = name
	b.touch()
	b.record(&BudgetUpdatedEvent{
		BaseEvent: newBaseEvent(b.id, EventTypeBudgetUpdated),
		Name:      b.name.String(),
	})

	return nil
}

// AddParticipant adds a participant. Adding an existing participant is a
// no-op.
func (b *Budget) AddParticipant(raw string) error {
	if b.deleted {
		return NewAlreadyDeletedError("Budget", b.id)
	}

	participantID, err := ParseEntityID("participant_id", raw)
	if err != nil {
		return err
	}

	if b.IsParticipant(participantID) {
		return nil
	}

	b.participants = append(b.participants, participantID)
	b.touch()
	b.record(&BudgetParticipantAddedEvent{
		BaseEvent:     newBaseEvent(b.id, EventTypeBudgetParticipantAdded),
		ParticipantID: participantID.String(),
	})

	return nil
}

// RemoveParticipant removes a participant. The owner can never be
// removed.
func (b *Budget) RemoveParticipant(raw string) error {
	if b.deleted {
		return NewAlreadyDeletedError("Budget", b.id)
	}

	participantID, err := ParseEntityID("participant_id", raw)
	if err != nil {
		return err
	}

	if participantID.Equal(b.ownerID) {
		return ErrOwnerCannotBeRemoved
	}

	for i, participant := range b.participants {
		if participant.Equal(participantID) {
			b.participants = append(b.participants[:i], b.participants[i+1:]...)
			b.touch()
			b.record(&BudgetParticipantRemovedEvent{
				BaseEvent:     newBaseEvent(b.id, EventTypeBudgetParticipantRemoved),
				ParticipantID: participantID.String(),
			})

			return nil
		}
	}

	return NewNotFoundError("Participant")
}

// Delete soft-deletes the budget.
func (b *Budget) Delete() error {
	if b.deleted {
		return NewAlreadyDeletedError("Budget", b.id)
	}

	b.deleted = true
	b.touch()
	b.record(&BudgetDeletedEvent{BaseEvent: newBaseEvent(b.id, EventTypeBudgetDeleted)})

	return nil
}

func (b *Budget) touch() {
	b.updatedAt = time.Now().UTC()
}

func appendParticipant(participants []EntityID, id EntityID) []EntityID {
	for _, existing := range participants {
		if existing.Equal(id) {
			return participants
		}
	}
	return append(participants, id)
}
