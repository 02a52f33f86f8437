package entity

import (
	"duskward/pkg/archetype"
	"duskward/pkg/attribute"
	"duskward/pkg/damage"
	"duskward/pkg/effect"
	"duskward/pkg/engineerr"
)

// Mob is a DungeonObject that fights, equips gear, learns abilities, and
// carries effect instances. A Mob with a non-zero CharacterID is a
// player character driven by a network session; one with CharacterID 0
// is an NPC driven by the wander/combat AI.
type Mob struct {
	Base `yaml:",inline"`

	RaceID string `yaml:"race_id"`
	JobID  string `yaml:"job_id"`

	Level      int `yaml:"level"`
	Experience int `yaml:"experience"`

	Primary   attribute.Primary `yaml:"primary"`
	Secondary attribute.Secondary `yaml:"-"`

	Health        int `yaml:"health"`
	MaxHealth     int `yaml:"max_health"`
	Mana          int `yaml:"mana"`
	MaxMana       int `yaml:"max_mana"`
	Exhaustion    int `yaml:"exhaustion"`
	MaxExhaustion int `yaml:"max_exhaustion"`

	Equipped map[EquipmentSlot]Wearable `yaml:"-"`

	// Proficiency maps an ability id to its 0-100 proficiency; the
	// 25/50/75/100 thresholds gate effect strength.
	Proficiency map[string]int `yaml:"proficiency"`

	Effects effect.Manager `yaml:"-"`

	// DamageRelationships is the merged race+job table recomputed whenever
	// either archetype changes (it never changes post-creation in
	// practice, but recomputation keeps the invariant obvious).
	DamageRelationships damage.Table `yaml:"-"`

	CombatTargetID OID  `yaml:"-"`
	InCombat       bool `yaml:"-"`
	Wandering      bool `yaml:"wandering"`

	// CharacterID is non-zero for a player-bound mob; pkg/character looks
	// up the owning Character by this id to route messages and input.
	CharacterID uint64 `yaml:"character_id,omitempty"`
}

// NewMob constructs a Mob from a race and job archetype at level 1.
func NewMob(name string, keywords []string, race, job archetype.Archetype) *Mob {
	base := NewBase(KindMob, name, keywords)
	m := &Mob{
		Base:        base,
		RaceID:      race.ID,
		JobID:       job.ID,
		Level:       1,
		Primary:     race.StartingPrimary.Add(job.StartingPrimary),
		Equipped:    make(map[EquipmentSlot]Wearable),
		Proficiency: make(map[string]int),
		Effects:     *effect.NewManager(uint64(base.ID)),
	}
	m.DamageRelationships = damage.Merge(race.DamageRelationships, job.DamageRelationships)
	for id, pct := range race.StartingProficiency {
		m.Proficiency[id] = pct
	}
	for id, pct := range job.StartingProficiency {
		if existing, ok := m.Proficiency[id]; !ok || pct > existing {
			m.Proficiency[id] = pct
		}
	}
	for _, id := range race.GrantedAbilities {
		if _, ok := m.Proficiency[id]; !ok {
			m.Proficiency[id] = 0
		}
	}
	for _, id := range job.GrantedAbilities {
		if _, ok := m.Proficiency[id]; !ok {
			m.Proficiency[id] = 0
		}
	}

	archetypeBase := race.StartingBase.Add(job.StartingBase)
	m.RecomputeDerived(archetypeBase, race.StartingHealthCap+job.StartingHealthCap, race.StartingManaCap+job.StartingManaCap)
	m.Health = m.MaxHealth
	m.Mana = m.MaxMana
	return m
}

// RecomputeDerived recomputes Secondary, MaxHealth, and MaxMana from
// Primary plus archetype-level base, growth-per-level, equipment bonuses,
// and active passive effects stacked together. Callers invoke this after
// anything that can change an input: level-up, gear change, or effect
// apply/expire.
func (m *Mob) RecomputeDerived(archetypeBase attribute.Base, healthCap, manaCap int) {
	bonus := m.Effects.AggregatePassives()

	effectivePrimary := m.Primary.Add(bonus.Attribute)
	effectiveBase := archetypeBase.Add(m.equipmentSecondaryBonus()).Add(bonus.Secondary)

	m.Secondary = attribute.Derive(effectivePrimary, effectiveBase)

	healthBase := float64(healthCap + m.equipmentHealthBonus() + bonus.Health)
	manaBase := float64(manaCap + m.equipmentManaBonus() + bonus.Mana)

	m.MaxHealth = attribute.MaxHealth(healthBase, m.Secondary.Vitality)
	m.MaxMana = attribute.MaxMana(manaBase, m.Secondary.Wisdom)

	m.Health = attribute.Clamp(m.Health, m.MaxHealth)
	m.Mana = attribute.Clamp(m.Mana, m.MaxMana)
}

func (m *Mob) equipmentSecondaryBonus() attribute.Base {
	var total attribute.Base
	for _, eq := range m.Equipped {
		_, secondary, _ := eq.Bonuses()
		total = total.Add(secondary)
	}
	return total
}

func (m *Mob) equipmentHealthBonus() int {
	total := 0
	for _, eq := range m.Equipped {
		_, _, resource := eq.Bonuses()
		total += resource.Health
	}
	return total
}

func (m *Mob) equipmentManaBonus() int {
	total := 0
	for _, eq := range m.Equipped {
		_, _, resource := eq.Bonuses()
		total += resource.Mana
	}
	return total
}

// Equip attaches an equipment item to its slot: a slot already holding
// an item must be explicitly unequipped first, and an item already
// equipped elsewhere cannot be equipped twice.
func (m *Mob) Equip(item Wearable) error {
	slot := item.EquipSlot()
	if _, occupied := m.Equipped[slot]; occupied {
		return engineerr.New(engineerr.SlotOccupied, "slot %s is already occupied", slot)
	}
	for _, eq := range m.Equipped {
		if eq.OID() == item.OID() {
			return engineerr.New(engineerr.AlreadyEquipped, "%s is already equipped", item.Name())
		}
	}
	m.Equipped[slot] = item
	return nil
}

// Unequip removes whatever occupies slot and returns it, or an error if
// the slot is empty.
func (m *Mob) Unequip(slot EquipmentSlot) (Wearable, error) {
	item, ok := m.Equipped[slot]
	if !ok {
		return nil, engineerr.New(engineerr.ScopeMiss, "nothing equipped in slot %s", slot)
	}
	delete(m.Equipped, slot)
	return item, nil
}

// IsEquipped reports whether item currently occupies one of the mob's
// equipment slots.
func (m *Mob) IsEquipped(item Object) bool {
	for _, eq := range m.Equipped {
		if eq.OID() == item.OID() {
			return true
		}
	}
	return false
}

// IsAlive reports whether the mob has positive health.
func (m *Mob) IsAlive() bool { return m.Health > 0 }

// ApplyDamage subtracts dmg (already passed through the damage-type
// relationship table and any shield absorption) from health, clamped at
// zero, and reports whether the mob just died.
func (m *Mob) ApplyDamage(dmg float64) (died bool) {
	amount := int(dmg)
	m.Health -= amount
	if m.Health <= 0 {
		m.Health = 0
		return true
	}
	return false
}

// Heal adds to health, clamped at MaxHealth.
func (m *Mob) Heal(amount float64) {
	m.Health = attribute.Clamp(m.Health+int(amount), m.MaxHealth)
}

// Destroy detaches the mob from its room, strips and returns its
// equipped items (so the caller can drop them or fold them back into a
// reset registry), and cancels every pending effect timer.
func (m *Mob) Destroy(sched *effect.Scheduler) []Wearable {
	Detach(m)
	m.Effects.RemoveAll(sched)

	dropped := make([]Wearable, 0, len(m.Equipped))
	for slot, eq := range m.Equipped {
		dropped = append(dropped, eq)
		delete(m.Equipped, slot)
	}
	return dropped
}
