package combat

import (
	"testing"

	"duskward/pkg/entity"
)

type fakeResolver struct {
	mobs    map[entity.OID]*entity.Mob
	rooms   map[entity.OID]int
}

func newFakeResolver() *fakeResolver {
	return &fakeResolver{mobs: make(map[entity.OID]*entity.Mob), rooms: make(map[entity.OID]int)}
}

func (f *fakeResolver) add(m *entity.Mob, room int) {
	f.mobs[m.OID()] = m
	f.rooms[m.OID()] = room
}

func (f *fakeResolver) MobByID(id entity.OID) (*entity.Mob, bool) {
	m, ok := f.mobs[id]
	return m, ok
}

func (f *fakeResolver) SameRoom(a, b *entity.Mob) bool {
	return f.rooms[a.OID()] == f.rooms[b.OID()]
}

func TestRoundResolvesUnarmedAttackWhenNothingEquipped(t *testing.T) {
	q := NewQueue()
	resolver := newFakeResolver()
	attacker, defender := testMob("attacker"), testMob("defender")
	resolver.add(attacker, 1)
	resolver.add(defender, 1)
	InitiateCombat(q, attacker, defender)

	unarmed := entity.HitType{Verb: "punch", DamageType: "physical"}
	outcomes := Round(q, NewRollerWithSeed(1), resolver, unarmed, 1)

	if len(outcomes) == 0 {
		t.Fatalf("expected at least one outcome from a two-combatant round")
	}
	for _, o := range outcomes {
		if o.Hit.Attempted != true {
			t.Errorf("expected every queued combatant to attempt an attack")
		}
	}
}

func TestRoundUsesEquippedWeaponPowerAndDamageType(t *testing.T) {
	q := NewQueue()
	resolver := newFakeResolver()
	attacker, defender := testMob("attacker"), testMob("defender")
	resolver.add(attacker, 1)
	resolver.add(defender, 1)

	sword := entity.NewWeapon("sword", []string{"sword"}, 10, entity.SlotMainHand, 50,
		entity.HitType{Verb: "slash", DamageType: "physical"})
	if err := attacker.Equip(sword); err != nil {
		t.Fatalf("unexpected equip error: %v", err)
	}

	InitiateCombat(q, attacker, defender)
	unarmed := entity.HitType{Verb: "punch", DamageType: "physical"}

	outcomes := Round(q, NewRollerWithSeed(2), resolver, unarmed, 1)

	var attackerOutcome *RoundOutcome
	for i := range outcomes {
		if outcomes[i].AttackerID == attacker.OID() {
			attackerOutcome = &outcomes[i]
		}
	}
	if attackerOutcome == nil {
		t.Fatalf("expected attacker to act this round")
	}
	if attackerOutcome.Hit.Hit && attackerOutcome.Hit.Damage < 1 {
		t.Errorf("expected the equipped weapon's attack power to produce meaningful damage")
	}
}

func TestRoundDisengagesAttackerWhoseTargetLeftTheRoom(t *testing.T) {
	q := NewQueue()
	resolver := newFakeResolver()
	attacker, defender := testMob("attacker"), testMob("defender")
	resolver.add(attacker, 1)
	resolver.add(defender, 2)
	InitiateCombat(q, attacker, defender)

	unarmed := entity.HitType{Verb: "punch", DamageType: "physical"}
	Round(q, NewRollerWithSeed(3), resolver, unarmed, 1)

	if attacker.InCombat || q.Contains(attacker.OID()) {
		t.Errorf("expected attacker disengaged once its target left the room")
	}
}

func TestRoundDropsDeadAttackerWithoutAttacking(t *testing.T) {
	q := NewQueue()
	resolver := newFakeResolver()
	attacker, defender := testMob("attacker"), testMob("defender")
	resolver.add(attacker, 1)
	resolver.add(defender, 1)
	InitiateCombat(q, attacker, defender)
	attacker.Health = 0

	unarmed := entity.HitType{Verb: "punch", DamageType: "physical"}
	outcomes := Round(q, NewRollerWithSeed(4), resolver, unarmed, 1)

	for _, o := range outcomes {
		if o.AttackerID == attacker.OID() {
			t.Errorf("expected a dead attacker to be skipped, not produce an outcome")
		}
	}
}
