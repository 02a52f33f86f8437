package entity

import (
	"testing"
	"time"

	"duskward/pkg/archetype"
	"duskward/pkg/attribute"
	"duskward/pkg/effect"
	"duskward/pkg/engineerr"
)

func testArchetypes() (archetype.Archetype, archetype.Archetype) {
	race := archetype.Archetype{
		ID:                "human",
		StartingPrimary:   attribute.Primary{Strength: 10, Agility: 10, Intelligence: 10},
		StartingHealthCap: 50,
		StartingManaCap:   20,
	}
	job := archetype.Archetype{
		ID:                "warrior",
		StartingPrimary:   attribute.Primary{Strength: 4},
		StartingHealthCap: 10,
	}
	return race, job
}

func TestNewMobDerivesStatsAndFillsResources(t *testing.T) {
	race, job := testArchetypes()
	m := NewMob("Grom", []string{"grom"}, race, job)

	if m.Primary.Strength != 14 {
		t.Errorf("expected combined strength 14, got %d", m.Primary.Strength)
	}
	if m.Health != m.MaxHealth || m.Mana != m.MaxMana {
		t.Errorf("expected new mob to spawn at full resources")
	}
	if m.MaxHealth <= 0 {
		t.Errorf("expected positive max health, got %d", m.MaxHealth)
	}
}

func TestEquipRejectsOccupiedSlotAndDoubleEquip(t *testing.T) {
	race, job := testArchetypes()
	m := NewMob("Grom", nil, race, job)

	sword := NewWeapon("sword", []string{"sword"}, 10, SlotMainHand, 5, HitType{})
	dagger := NewWeapon("dagger", []string{"dagger"}, 5, SlotMainHand, 2, HitType{})

	if err := m.Equip(sword); err != nil {
		t.Fatalf("expected first equip to succeed, got %v", err)
	}
	if err := m.Equip(dagger); !engineerr.Is(err, engineerr.SlotOccupied) {
		t.Errorf("expected SlotOccupied, got %v", err)
	}
	if err := m.Equip(sword); err == nil {
		t.Errorf("expected equipping the already-equipped sword a second time to fail")
	}
}

func TestUnequipReturnsItemAndFreesSlot(t *testing.T) {
	race, job := testArchetypes()
	m := NewMob("Grom", nil, race, job)
	sword := NewWeapon("sword", []string{"sword"}, 10, SlotMainHand, 5, HitType{})
	_ = m.Equip(sword)

	removed, err := m.Unequip(SlotMainHand)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if removed.OID() != sword.OID() {
		t.Errorf("expected to get back the equipped sword")
	}
	if _, err := m.Unequip(SlotMainHand); err == nil {
		t.Errorf("expected error unequipping an empty slot")
	}
}

func TestApplyDamageClampsAtZeroAndReportsDeath(t *testing.T) {
	race, job := testArchetypes()
	m := NewMob("Grom", nil, race, job)
	m.Health = 10

	if died := m.ApplyDamage(3); died {
		t.Errorf("mob should not die from a partial hit")
	}
	if m.Health != 7 {
		t.Errorf("expected health 7, got %d", m.Health)
	}
	if died := m.ApplyDamage(100); !died {
		t.Errorf("expected lethal damage to report death")
	}
	if m.Health != 0 {
		t.Errorf("expected health clamped at 0, got %d", m.Health)
	}
}

func TestHealClampsAtMaxHealth(t *testing.T) {
	race, job := testArchetypes()
	m := NewMob("Grom", nil, race, job)
	m.Health = m.MaxHealth - 2

	m.Heal(100)
	if m.Health != m.MaxHealth {
		t.Errorf("expected heal to clamp at max health %d, got %d", m.MaxHealth, m.Health)
	}
}

func TestDestroyClearsEquipmentAndEffects(t *testing.T) {
	race, job := testArchetypes()
	m := NewMob("Grom", nil, race, job)
	sword := NewWeapon("sword", []string{"sword"}, 10, SlotMainHand, 5, HitType{})
	_ = m.Equip(sword)

	sched := effect.NewScheduler()
	poison := &effect.Template{ID: "poison", Variant: effect.VariantDOT, Duration: time.Minute, Interval: time.Second, Ticks: 3, Damage: 1}
	m.Effects.Add(sched, poison, 0, false, time.Unix(0, 0), effect.Overrides{})
	dropped := m.Destroy(sched)

	if len(dropped) != 1 || dropped[0].OID() != sword.OID() {
		t.Errorf("expected Destroy to return the equipped sword, got %v", dropped)
	}
	if len(m.Equipped) != 0 {
		t.Errorf("expected equipment map cleared after Destroy")
	}
	if len(m.Effects.Active()) != 0 || sched.Len() != 0 {
		t.Errorf("expected Destroy to drop every effect and its timers, got %d active, %d pending", len(m.Effects.Active()), sched.Len())
	}
}
