package combat

import "duskward/pkg/entity"

// Resolver gives Round just enough access to the world to run one
// round, without this package importing pkg/dungeon: looking a mob up
// by id, and checking whether two mobs still share a room.
type Resolver interface {
	MobByID(id entity.OID) (*entity.Mob, bool)
	SameRoom(a, b *entity.Mob) bool
}

// RoundOutcome is one attacker's result for the round, for the caller to
// apply (ApplyDamage/HandleDeath) and fan out via act.
type RoundOutcome struct {
	AttackerID entity.OID
	DefenderID entity.OID
	Hit        HitOutcome
	Died       bool
}

// Round processes one combat tick: each mob queued at call entry acts
// once, in insertion order. A dead attacker, dead defender,
// or a defender that has left the room drops the attacker from combat
// with no attack attempt. Otherwise the attacker's main-hand weapon (or
// unarmedHit if none equipped) resolves one physical hit.
func Round(queue *Queue, roller *Roller, resolver Resolver, unarmedHit entity.HitType, unarmedPower float64) []RoundOutcome {
	var outcomes []RoundOutcome

	for _, attackerID := range queue.Snapshot() {
		attacker, ok := resolver.MobByID(attackerID)
		if !ok || !attacker.IsAlive() {
			Disengage(queue, attackerAsMobOrZero(attacker, attackerID))
			continue
		}

		defender, ok := resolver.MobByID(attacker.CombatTargetID)
		if !ok || !defender.IsAlive() || !resolver.SameRoom(attacker, defender) {
			Disengage(queue, attacker)
			continue
		}

		weaponPower, dt := unarmedPower, unarmedHit.DamageType
		if mainHand, equipped := attacker.Equipped[entity.SlotMainHand]; equipped {
			if weapon, ok := mainHand.(*entity.Weapon); ok {
				weaponPower = weapon.AttackPower
				dt = weapon.Hit.DamageType
			}
		}

		hit := OneHit(roller, attacker, defender, weaponPower, dt)
		outcome := RoundOutcome{AttackerID: attacker.OID(), DefenderID: defender.OID()}
		if hit.Hit {
			hit.Damage = defender.Effects.AbsorbDamage(hit.DamageType, hit.Damage)
			died := defender.ApplyDamage(hit.Damage)
			hit.Lethal = died
			if died {
				HandleDeath(queue, defender)
			}
			outcome.Died = died
		}
		outcome.Hit = hit
		outcomes = append(outcomes, outcome)
	}

	return outcomes
}

func attackerAsMobOrZero(m *entity.Mob, id entity.OID) *entity.Mob {
	if m != nil {
		return m
	}
	return &entity.Mob{}
}
