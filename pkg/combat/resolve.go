package combat

import (
	"math/rand"
	"time"

	"duskward/pkg/damage"
	"duskward/pkg/entity"
)

// Roller wraps a seedable PRNG for hit/crit rolls, matching the
// teacher's dedicated-roller convention (a struct around *rand.Rand
// rather than calling the global rand functions) so tests can pin the
// seed for deterministic outcomes.
type Roller struct {
	rng *rand.Rand
}

// NewRoller returns a Roller seeded from the current time.
func NewRoller() *Roller {
	return &Roller{rng: rand.New(rand.NewSource(time.Now().UnixNano()))}
}

// NewRollerWithSeed returns a Roller with a fixed seed, for tests.
func NewRollerWithSeed(seed int64) *Roller {
	return &Roller{rng: rand.New(rand.NewSource(seed))}
}

func (r *Roller) chance(p float64) bool {
	if p <= 0 {
		return false
	}
	if p >= 1 {
		return true
	}
	return r.rng.Float64() < p
}

// hitChanceFromAccuracy converts an accuracy-vs-avoidance differential
// into a [0.05, 0.95] probability, keeping both a whiff and a guaranteed
// hit possible regardless of how lopsided the stats are.
func hitChanceFromAccuracy(accuracy, avoidance float64) float64 {
	base := 0.75 + (accuracy-avoidance)*0.01
	if base < 0.05 {
		return 0.05
	}
	if base > 0.95 {
		return 0.95
	}
	return base
}

func critChance(critRate float64) float64 {
	c := critRate * 0.01
	if c < 0 {
		return 0
	}
	if c > 0.75 {
		return 0.75
	}
	return c
}

const critMultiplier = 1.5

// mitigate applies armor defense as linear mitigation with a diminishing
// returns floor: defense reduces damage but can never zero it out or
// flip it negative, and each additional point of defense matters less
// than the one before.
func mitigate(rawDamage, defense float64) float64 {
	if defense <= 0 {
		return rawDamage
	}
	reduction := defense / (defense + 50)
	mitigated := rawDamage * (1 - reduction)
	floor := rawDamage * 0.1
	if mitigated < floor {
		return floor
	}
	return mitigated
}

// HitOutcome reports what one-hit/one-magic-hit/processEffectDamage
// computed, for the caller to apply to the defender and fan out via act.
type HitOutcome struct {
	Attempted bool
	Hit       bool
	Crit      bool
	Damage    float64
	Lethal    bool
	DamageType damage.Type
}

// OneHit resolves attacker's main-hand (or unarmed) physical attack
// against defender, applying hit/crit rolls, the attack-power formula,
// the damage-type relationship, armor mitigation, and the "at least 1
// damage on a hit unless immune" floor.
func OneHit(r *Roller, attacker, defender *entity.Mob, weaponAttackPower float64, dt damage.Type) HitOutcome {
	return resolveHit(r, attacker.Secondary.Accuracy, defender.Secondary.Avoidance,
		attacker.Secondary.AttackPower+weaponAttackPower, attacker.Secondary.CritRate,
		defender.Secondary.Defense, defender.DamageRelationships, dt)
}

// OneMagicHit mirrors OneHit using spellPower in place of attackPower
// and skipping the weapon bonus.
func OneMagicHit(r *Roller, attacker, defender *entity.Mob, dt damage.Type) HitOutcome {
	return resolveHit(r, attacker.Secondary.Accuracy, defender.Secondary.Avoidance,
		attacker.Secondary.SpellPower, attacker.Secondary.CritRate,
		defender.Secondary.Defense, defender.DamageRelationships, dt)
}

func resolveHit(r *Roller, accuracy, avoidance, power, critRate, defense float64, relationships damage.Table, dt damage.Type) HitOutcome {
	if !r.chance(hitChanceFromAccuracy(accuracy, avoidance)) {
		return HitOutcome{Attempted: true, Hit: false}
	}

	crit := r.chance(critChance(critRate))
	base := power
	if crit {
		base *= critMultiplier
	}

	relationship := relationships.RelationshipFor(dt)
	afterRelationship := base * relationship.Multiplier()
	final := mitigate(afterRelationship, defense)

	if relationship != damage.Immune && final < 1 {
		final = 1
	}

	return HitOutcome{Attempted: true, Hit: true, Crit: crit, Damage: final, DamageType: dt}
}

// ProcessEffectDamage applies a DoT tick's damage the same way a combat
// hit would (relationship then armor mitigation) but without hit/crit
// rolls.
func ProcessEffectDamage(defender *entity.Mob, amount float64, dt damage.Type) HitOutcome {
	relationship := defender.DamageRelationships.RelationshipFor(dt)
	afterRelationship := amount * relationship.Multiplier()
	final := mitigate(afterRelationship, defender.Secondary.Defense)
	if relationship != damage.Immune && final < 1 && afterRelationship > 0 {
		final = 1
	}
	return HitOutcome{Attempted: true, Hit: true, Damage: final, DamageType: dt}
}
