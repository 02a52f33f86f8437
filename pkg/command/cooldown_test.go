package command

import (
	"testing"
	"time"

	"duskward/pkg/entity"
)

func TestTrackerReadyWithoutPriorRecord(t *testing.T) {
	tr := NewTracker()
	if !tr.Ready(entity.OID(1), "bash", time.Unix(0, 0), time.Minute) {
		t.Errorf("expected a never-used command to be ready")
	}
}

func TestTrackerZeroCooldownAlwaysReady(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(0, 0)
	tr.Record(entity.OID(1), "bash", now)
	if !tr.Ready(entity.OID(1), "bash", now, 0) {
		t.Errorf("expected a zero cooldown to always report ready")
	}
}

func TestTrackerBlocksUntilElapsed(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(0, 0)
	tr.Record(entity.OID(1), "bash", now)

	if tr.Ready(entity.OID(1), "bash", now.Add(30*time.Second), time.Minute) {
		t.Errorf("expected the tracker to block before the cooldown elapses")
	}
	if !tr.Ready(entity.OID(1), "bash", now.Add(time.Minute), time.Minute) {
		t.Errorf("expected the tracker to unblock exactly at the cooldown boundary")
	}
}

func TestTrackerIsolatesByMobAndCommand(t *testing.T) {
	tr := NewTracker()
	now := time.Unix(0, 0)
	tr.Record(entity.OID(1), "bash", now)

	if !tr.Ready(entity.OID(2), "bash", now, time.Minute) {
		t.Errorf("expected a different mob's cooldown to be independent")
	}
	if !tr.Ready(entity.OID(1), "kick", now, time.Minute) {
		t.Errorf("expected a different command's cooldown to be independent")
	}
}
