package domain

import (
	"errors"
	"testing"
)

func TestNewBudget_OwnerAlwaysParticipant(t *testing.T) {
	ownerID := NewEntityID().String()

	res := NewBudget(NewBudgetInput{Name: "Household", OwnerID: ownerID})
	if res.HasError() {
		t.Fatalf("unexpected errors: %v", res.Errors())
	}

	b := res.Value()
	owner, _ := ParseEntityID("owner_id", ownerID)
	if !b.IsParticipant(owner) {
		t.Error("owner should always be a participant")
	}
	if b.Type() != BudgetTypePersonal {
		t.Errorf("single participant budget should derive PERSONAL, got %s", b.Type())
	}
}

func TestNewBudget_DerivedSharedType(t *testing.T) {
	b := NewBudget(NewBudgetInput{
		Name:           "Family",
		OwnerID:        NewEntityID().String(),
		ParticipantIDs: []string{NewEntityID().String()},
	}).Value()

	if b.Type() != BudgetTypeShared {
		t.Errorf("multi-participant budget should derive SHARED, got %s", b.Type())
	}
}

func TestNewBudget_ExplicitTypeWins(t *testing.T) {
	b := NewBudget(NewBudgetInput{
		Name:    "Solo but shared later",
		OwnerID: NewEntityID().String(),
		Type:    string(BudgetTypeShared),
	}).Value()

	if b.Type() != BudgetTypeShared {
		t.Errorf("explicit type should win, got %s", b.Type())
	}
}

func TestBudget_RemoveParticipant(t *testing.T) {
	ownerID := NewEntityID().String()
	otherID := NewEntityID().String()

	b := NewBudget(NewBudgetInput{
		Name:           "Household",
		OwnerID:        ownerID,
		ParticipantIDs: []string{otherID},
	}).Value()
	b.DrainEvents()

	if err := b.RemoveParticipant(ownerID); !errors.Is(err, ErrOwnerCannotBeRemoved) {
		t.Errorf("expected owner removal rejection, got %v", err)
	}

	if err := b.RemoveParticipant(otherID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(b.ParticipantIDs()) != 1 {
		t.Errorf("expected 1 participant left, got %d", len(b.ParticipantIDs()))
	}

	if err := b.RemoveParticipant(otherID); err == nil {
		t.Error("removing a non-participant should fail")
	}

	events := b.DrainEvents()
	if len(events) != 1 || events[0].Type() != EventTypeBudgetParticipantRemoved {
		t.Errorf("expected one participant removed event, got %v", events)
	}
}

func TestBudget_AddParticipantIdempotent(t *testing.T) {
	b := NewBudget(NewBudgetInput{Name: "Household", OwnerID: NewEntityID().String()}).Value()
	b.DrainEvents()

	participantID := NewEntityID().String()
	if err := b.AddParticipant(participantID); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if err := b.AddParticipant(participantID); err != nil {
		t.Fatalf("re-adding should be a no-op: %v", err)
	}

	if len(b.ParticipantIDs()) != 2 {
		t.Errorf("expected 2 participants, got %d", len(b.ParticipantIDs()))
	}
	if events := b.DrainEvents(); len(events) != 1 {
		t.Errorf("expected exactly one added event, got %d", len(events))
	}
}
