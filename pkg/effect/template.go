// Package effect implements the effect engine: effect
// templates (passive/DoT/HoT/shield), per-instance timers, and the
// attribute/resource stacking that recomputes a mob's derived stats
// whenever its active effect set changes.
//
// The package has no dependency on pkg/entity: a mob's effect manager is
// embedded by value, and the few operations that must reach back into
// the owning mob (recomputing derived stats, applying damage/heal) are
// expressed as plain return values the caller (pkg/entity, pkg/combat)
// applies itself. This keeps the dependency graph one-directional.
package effect

import (
	"time"

	"duskward/pkg/act"
	"duskward/pkg/attribute"
	"duskward/pkg/damage"
)

// Variant selects an effect template's behavior.
type Variant string

// The four effect variants a Template may declare.
const (
	VariantPassive Variant = "passive"
	VariantDOT      Variant = "damage-over-time"
	VariantHOT      Variant = "heal-over-time"
	VariantShield   Variant = "shield"
)

// ResourceBonus is the health/mana contribution a passive effect grants.
// Duplicated here (rather than imported from pkg/entity) to keep this
// package dependency-free of the entity model.
type ResourceBonus struct {
	Health int `yaml:"health,omitempty"`
	Mana   int `yaml:"mana,omitempty"`
}

// Template is an EffectTemplate: the immutable, registry-owned
// description of an effect. Instances reference a Template by id and
// never copy or mutate it.
type Template struct {
	ID        string  `yaml:"id"`
	Name      string  `yaml:"name"`
	Variant   Variant `yaml:"variant"`
	Stackable bool    `yaml:"stackable"`

	// Permanent effects never expire (typical for racial passives);
	// Duration is consulted only when Permanent is false.
	Permanent bool          `yaml:"permanent,omitempty"`
	Duration  time.Duration `yaml:"duration,omitempty"`

	// Passive fields.
	AttributeBonus   attribute.Primary `yaml:"attribute_bonus,omitempty"`
	SecondaryBonus   attribute.Base    `yaml:"secondary_bonus,omitempty"`
	ResourceBonus    ResourceBonus     `yaml:"resource_bonus,omitempty"`
	DamageMultiplier float64           `yaml:"damage_multiplier,omitempty"` // 0 means "no override", see EffectiveDamageMultiplier
	HealingMultiplier float64          `yaml:"healing_multiplier,omitempty"`

	// Damage-over-time / heal-over-time fields.
	Damage      float64       `yaml:"damage,omitempty"`
	Heal        float64       `yaml:"heal,omitempty"`
	Interval    time.Duration `yaml:"interval,omitempty"`
	Ticks       int           `yaml:"ticks,omitempty"`
	DamageType  damage.Type   `yaml:"damage_type,omitempty"`
	IsOffensive bool          `yaml:"is_offensive,omitempty"`

	// Shield fields.
	Absorption          float64     `yaml:"absorption,omitempty"`
	DamageTypeFilter    []damage.Type `yaml:"damage_type_filter,omitempty"`
	MaxAbsorptionPerHit float64     `yaml:"max_absorption_per_hit,omitempty"`
	// AbsorptionRate is the fraction of incoming damage the shield
	// consumes to absorb:
	// absorbed = min(remainingAbsorption, incoming*AbsorptionRate, MaxAbsorptionPerHit).
	AbsorptionRate float64 `yaml:"absorption_rate,omitempty"`

	OnApply  act.Templates `yaml:"on_apply,omitempty"`
	OnExpire act.Templates `yaml:"on_expire,omitempty"`
	OnTick   act.Templates `yaml:"on_tick,omitempty"`
}

// EffectiveDamageMultiplier returns the template's damage multiplier,
// defaulting to 1.0 when unset (zero value means "no modifier").
func (t *Template) EffectiveDamageMultiplier() float64 {
	if t.DamageMultiplier == 0 {
		return 1.0
	}
	return t.DamageMultiplier
}

// EffectiveHealingMultiplier mirrors EffectiveDamageMultiplier for healing.
func (t *Template) EffectiveHealingMultiplier() float64 {
	if t.HealingMultiplier == 0 {
		return 1.0
	}
	return t.HealingMultiplier
}

// AppliesToDamageType reports whether a shield template's filter accepts
// the given damage type (a nil/empty filter accepts everything).
func (t *Template) AppliesToDamageType(dt damage.Type) bool {
	if len(t.DamageTypeFilter) == 0 {
		return true
	}
	for _, f := range t.DamageTypeFilter {
		if f == dt {
			return true
		}
	}
	return false
}

// Overrides carries the scalar overrides addEffect may apply on top of a
// template: scalar fields only, with durations in seconds converted to
// absolute deadlines. Nil pointers mean "use the template's value."
type Overrides struct {
	Damage   *float64
	Heal     *float64
	Interval *time.Duration
	Ticks    *int
	Duration *time.Duration
}

func (o Overrides) damage(tmpl *Template) float64 {
	if o.Damage != nil {
		return *o.Damage
	}
	return tmpl.Damage
}

func (o Overrides) heal(tmpl *Template) float64 {
	if o.Heal != nil {
		return *o.Heal
	}
	return tmpl.Heal
}

func (o Overrides) interval(tmpl *Template) time.Duration {
	if o.Interval != nil {
		return *o.Interval
	}
	return tmpl.Interval
}

func (o Overrides) ticks(tmpl *Template) int {
	if o.Ticks != nil {
		return *o.Ticks
	}
	return tmpl.Ticks
}

func (o Overrides) duration(tmpl *Template) time.Duration {
	if o.Duration != nil {
		return *o.Duration
	}
	return tmpl.Duration
}
