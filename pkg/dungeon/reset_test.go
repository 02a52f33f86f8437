package dungeon

import (
	"testing"

	"duskward/pkg/entity"
)

func TestResetDeficitReflectsSpawnedCount(t *testing.T) {
	rr := NewResetRegistry()
	rr.Register(&Reset{ID: "goblin-patrol", TemplateID: "goblin", MinCount: 3, MaxCount: 5})

	if got := rr.Deficit("goblin-patrol"); got != 3 {
		t.Fatalf("expected deficit 3 with nothing spawned, got %d", got)
	}

	rr.RecordSpawn("goblin-patrol", entity.OID(1))
	rr.RecordSpawn("goblin-patrol", entity.OID(2))

	if got := rr.Deficit("goblin-patrol"); got != 1 {
		t.Errorf("expected deficit 1 after spawning 2 of 3, got %d", got)
	}
}

func TestRemoveSpawnDropsFromEveryReset(t *testing.T) {
	rr := NewResetRegistry()
	rr.Register(&Reset{ID: "a", MinCount: 1})
	rr.RecordSpawn("a", entity.OID(7))

	rr.RemoveSpawn(entity.OID(7))

	if rr.LiveCount("a") != 0 {
		t.Errorf("expected live count 0 after RemoveSpawn, got %d", rr.LiveCount("a"))
	}
}
