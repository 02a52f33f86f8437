package effect

import (
	"testing"
	"time"
)

func TestSchedulerDrainsInDeadlineOrder(t *testing.T) {
	s := NewScheduler()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Schedule(base.Add(3*time.Second), InstanceID(1), 1, TickEvent)
	s.Schedule(base.Add(1*time.Second), InstanceID(2), 1, TickEvent)
	s.Schedule(base.Add(2*time.Second), InstanceID(3), 1, TickEvent)

	due := s.DrainDue(base.Add(5 * time.Second))
	if len(due) != 3 {
		t.Fatalf("expected 3 due events, got %d", len(due))
	}
	want := []InstanceID{2, 3, 1}
	for i, ev := range due {
		if ev.InstanceID != want[i] {
			t.Errorf("event %d = %v, want %v", i, ev.InstanceID, want[i])
		}
	}
}

func TestSchedulerTickFiresBeforeExpireAtEqualDeadline(t *testing.T) {
	s := NewScheduler()
	at := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Schedule(at, InstanceID(1), 1, ExpireEvent)
	s.Schedule(at, InstanceID(1), 1, TickEvent)

	due := s.DrainDue(at)
	if len(due) != 2 {
		t.Fatalf("expected 2 due events, got %d", len(due))
	}
	if due[0].Kind != TickEvent || due[1].Kind != ExpireEvent {
		t.Errorf("expected tick before expire, got %v then %v", due[0].Kind, due[1].Kind)
	}
}

func TestSchedulerOnlyDrainsDueEvents(t *testing.T) {
	s := NewScheduler()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Schedule(base.Add(10*time.Second), InstanceID(1), 1, TickEvent)
	s.Schedule(base.Add(1*time.Second), InstanceID(2), 1, TickEvent)

	due := s.DrainDue(base.Add(2 * time.Second))
	if len(due) != 1 || due[0].InstanceID != 2 {
		t.Fatalf("expected only the 1s event due, got %v", due)
	}
	if s.Len() != 1 {
		t.Errorf("expected 1 event left pending, got %d", s.Len())
	}
}

func TestSchedulerCancelInstanceRemovesAllItsEvents(t *testing.T) {
	s := NewScheduler()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Schedule(base.Add(time.Second), InstanceID(1), 1, TickEvent)
	s.Schedule(base.Add(2*time.Second), InstanceID(1), 1, ExpireEvent)
	s.Schedule(base.Add(time.Second), InstanceID(2), 1, TickEvent)

	s.CancelInstance(InstanceID(1))

	if s.Len() != 1 {
		t.Fatalf("expected 1 event left, got %d", s.Len())
	}
	due := s.DrainDue(base.Add(5 * time.Second))
	if len(due) != 1 || due[0].InstanceID != 2 {
		t.Errorf("expected only instance 2's event to survive cancellation, got %v", due)
	}
}

func TestSchedulerCancelOwnerRemovesAllOwnedEvents(t *testing.T) {
	s := NewScheduler()
	base := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)

	s.Schedule(base.Add(time.Second), InstanceID(1), 10, TickEvent)
	s.Schedule(base.Add(2*time.Second), InstanceID(2), 10, TickEvent)
	s.Schedule(base.Add(time.Second), InstanceID(3), 20, TickEvent)

	s.CancelOwner(10)

	if s.Len() != 1 {
		t.Fatalf("expected 1 event left, got %d", s.Len())
	}
}
