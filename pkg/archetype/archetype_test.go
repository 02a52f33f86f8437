package archetype

import (
	"testing"

	"duskward/pkg/attribute"
	"duskward/pkg/damage"
)

func TestGrowthCurveMultiplierAt(t *testing.T) {
	curve := GrowthCurve{0, 1.0, 1.5, 2.0}
	if curve.MultiplierAt(2) != 1.5 {
		t.Errorf("MultiplierAt(2) = %v, want 1.5", curve.MultiplierAt(2))
	}
	if curve.MultiplierAt(10) != 2.0 {
		t.Errorf("MultiplierAt past end should clamp to last entry, got %v", curve.MultiplierAt(10))
	}
	if curve.MultiplierAt(0) != 0 {
		t.Errorf("MultiplierAt(0) should be 0")
	}
}

func TestEmptyGrowthCurveDefaultsToOne(t *testing.T) {
	var curve GrowthCurve
	if curve.MultiplierAt(5) != 1.0 {
		t.Errorf("empty curve should default to 1.0 multiplier, got %v", curve.MultiplierAt(5))
	}
}

func TestGrowthAtAccumulatesAcrossLevels(t *testing.T) {
	a := Archetype{
		GrowthPerLevel: attribute.Primary{Strength: 2},
		GrowthCurve:    GrowthCurve{0, 1.0, 1.0, 1.0},
	}
	got := a.GrowthAt(3)
	if got.Strength != 6 {
		t.Errorf("GrowthAt(3).Strength = %v, want 6", got.Strength)
	}
}

func TestRegistryRejectsDuplicateIDs(t *testing.T) {
	r := NewRegistry()
	fighter := Archetype{ID: "fighter", DamageRelationships: damage.Table{}}
	if err := r.Register(fighter); err != nil {
		t.Fatalf("first registration failed: %v", err)
	}
	if err := r.Register(fighter); err == nil {
		t.Fatal("expected duplicate registration to fail")
	}
	got, ok := r.Get("fighter")
	if !ok || got.ID != "fighter" {
		t.Fatal("expected first registration to remain retrievable")
	}
}

func TestRegistryAllReturnsSnapshot(t *testing.T) {
	r := NewRegistry()
	_ = r.Register(Archetype{ID: "a"})
	_ = r.Register(Archetype{ID: "b"})
	all := r.All()
	if len(all) != 2 {
		t.Errorf("All() returned %d entries, want 2", len(all))
	}
}
