package dungeon

import (
	"testing"

	"duskward/pkg/coord"
)

func newTestDungeon() *Dungeon {
	return NewEmpty("tower", coord.Dimensions{Width: 10, Height: 10, Depth: 1})
}

func TestAddRoomRejectsOutOfBoundsAndDuplicateCell(t *testing.T) {
	d := newTestDungeon()
	roomA := NewRoom("Room A", nil, d.ID, coord.Coordinate{X: 0, Y: 0, Z: 0})
	if err := d.AddRoom(roomA); err != nil {
		t.Fatalf("unexpected error adding room A: %v", err)
	}

	dup := NewRoom("Dup", nil, d.ID, coord.Coordinate{X: 0, Y: 0, Z: 0})
	if err := d.AddRoom(dup); err == nil {
		t.Errorf("expected error adding a room to an already-occupied cell")
	}

	outOfBounds := NewRoom("OOB", nil, d.ID, coord.Coordinate{X: 99, Y: 0, Z: 0})
	if err := d.AddRoom(outOfBounds); err == nil {
		t.Errorf("expected error adding a room outside dungeon dimensions")
	}
}

func TestCreateTunnelIsTwoWayByDefault(t *testing.T) {
	d := newTestDungeon()
	a := NewRoom("A", nil, d.ID, coord.Coordinate{X: 0, Y: 0, Z: 0})
	b := NewRoom("B", nil, d.ID, coord.Coordinate{X: 1, Y: 0, Z: 0})
	_ = d.AddRoom(a)
	_ = d.AddRoom(b)

	d.CreateTunnel(a, coord.East, b, false)

	if _, ok := a.ExitTo(coord.East); !ok {
		t.Fatalf("expected room A to have an east exit")
	}
	if _, ok := b.ExitTo(coord.West); !ok {
		t.Errorf("expected two-way tunnel to install the reverse exit on B")
	}
}

func TestCreateTunnelOneWayOnlyInstallsForwardExit(t *testing.T) {
	d := newTestDungeon()
	a := NewRoom("A", nil, d.ID, coord.Coordinate{X: 0, Y: 0, Z: 0})
	b := NewRoom("B", nil, d.ID, coord.Coordinate{X: 1, Y: 0, Z: 0})
	_ = d.AddRoom(a)
	_ = d.AddRoom(b)

	d.CreateTunnel(a, coord.East, b, true)

	if _, ok := b.ExitTo(coord.West); ok {
		t.Errorf("expected a one-way tunnel to leave no reverse exit on B")
	}
}

func TestDestroyRoomRemovesIncidentLinksWithoutDangling(t *testing.T) {
	d := newTestDungeon()
	a := NewRoom("A", nil, d.ID, coord.Coordinate{X: 0, Y: 0, Z: 0})
	b := NewRoom("B", nil, d.ID, coord.Coordinate{X: 1, Y: 0, Z: 0})
	_ = d.AddRoom(a)
	_ = d.AddRoom(b)
	d.CreateTunnel(a, coord.East, b, false)

	d.DestroyRoom(a, false)

	if _, ok := b.ExitTo(coord.West); ok {
		t.Errorf("expected destroying room A to remove B's reverse exit too")
	}
	if _, ok := d.GetRoom(coord.Coordinate{X: 0, Y: 0, Z: 0}); ok {
		t.Errorf("expected room A's cell to be cleared")
	}
}

func TestRegistryRejectsDuplicateDungeonID(t *testing.T) {
	r := NewRegistry()
	if err := r.Register(newTestDungeon()); err != nil {
		t.Fatalf("unexpected error on first registration: %v", err)
	}
	if err := r.Register(newTestDungeon()); err == nil {
		t.Errorf("expected second registration with same id to fail")
	}
	if _, ok := r.Get("tower"); !ok {
		t.Errorf("expected the first registration to remain retrievable")
	}
}

func TestResolveRoomRefParsesAndLooksUpRoom(t *testing.T) {
	r := NewRegistry()
	d := newTestDungeon()
	room := NewRoom("A", nil, d.ID, coord.Coordinate{X: 2, Y: 3, Z: 0})
	_ = d.AddRoom(room)
	_ = r.Register(d)

	got, err := r.ResolveRoomRef("@tower{2,3,0}")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if got != room {
		t.Errorf("expected resolved room to be the registered room")
	}

	if _, err := r.ResolveRoomRef("@tower{9,9,0}"); err == nil {
		t.Errorf("expected error resolving an empty cell")
	}
}

func TestResolveTemplateTriesExplicitFormThenScans(t *testing.T) {
	r := NewRegistry()
	d := newTestDungeon()
	_ = d.RegisterTemplate(&Template{LocalID: "sword-01", Kind: "weapon"})
	_ = r.Register(d)

	tmpl, err := r.ResolveTemplate("@tower:sword-01")
	if err != nil || tmpl.LocalID != "sword-01" {
		t.Fatalf("expected explicit-form resolution to succeed, got %v, %v", tmpl, err)
	}

	scanned, err := r.ResolveTemplate("sword-01")
	if err != nil || scanned.LocalID != "sword-01" {
		t.Fatalf("expected bare-id scan to find the template, got %v, %v", scanned, err)
	}
}
