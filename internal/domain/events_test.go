package domain

import "testing"

func TestEventLog_VersionsAndDrain(t *testing.T) {
	id := restoredID("2f6b4f15-58bb-4db0-9c3a-6a5d2a8c0a71")

	var log eventLog
	log.record(&BudgetCreatedEvent{BaseEvent: newBaseEvent(id, EventTypeBudgetCreated)})
	log.record(&BudgetUpdatedEvent{BaseEvent: newBaseEvent(id, EventTypeBudgetUpdated)})

	pending := log.PendingEvents()
	if len(pending) != 2 {
		t.Fatalf("expected 2 pending events, got %d", len(pending))
	}
	if pending[0].Version() != 1 || pending[1].Version() != 2 {
		t.Errorf("expected versions 1 and 2, got %d and %d",
			pending[0].Version(), pending[1].Version())
	}

	// Peeking must not clear the log.
	if len(log.PendingEvents()) != 2 {
		t.Fatal("pending events cleared by a read")
	}

	drained := log.DrainEvents()
	if len(drained) != 2 {
		t.Fatalf("expected 2 drained events, got %d", len(drained))
	}
	if len(log.PendingEvents()) != 0 {
		t.Error("expected empty log after drain")
	}
	if log.DrainEvents() != nil {
		t.Error("expected nil from draining an empty log")
	}
}
