package dungeon

import (
	"duskward/pkg/archetype"
	"duskward/pkg/engineerr"
	"duskward/pkg/entity"
)

// Template is the blueprint `create-from-template` and deserialization
// instantiate from: every Mob and Item is created either from a
// Template or by deserialization. GlobalID is the fully qualified
// `@dungeon:local` form; LocalID is what content authors write inside a
// single dungeon's definition file.
type Template struct {
	LocalID  string `yaml:"id"`
	GlobalID string `yaml:"-"`

	Kind     entity.Kind `yaml:"kind"`
	Name     string      `yaml:"name"`
	Keywords []string    `yaml:"keywords"`

	// Item/Equipment/Weapon/Armor fields; zero-valued when Kind is a
	// plain Item or a Mob.
	Value       int                  `yaml:"value,omitempty"`
	IsContainer bool                 `yaml:"is_container,omitempty"`
	Weight      float64              `yaml:"weight,omitempty"`
	Slot        entity.EquipmentSlot `yaml:"slot,omitempty"`
	AttackPower float64              `yaml:"attack_power,omitempty"`
	Defense     float64              `yaml:"defense,omitempty"`
	Hit         entity.HitType       `yaml:"hit_type,omitempty"`

	// Mob fields.
	RaceID string `yaml:"race_id,omitempty"`
	JobID  string `yaml:"job_id,omitempty"`
}

// Spawn instantiates an entity.Object from the template. Mob templates
// need the archetype registry to look up race/job; item-family
// templates ignore it.
func (t *Template) Spawn(archetypes *archetype.Registry) (entity.Object, error) {
	switch t.Kind {
	case entity.KindItem:
		item := entity.NewItem(t.Name, t.Keywords, t.Value)
		item.IsContainer = t.IsContainer
		item.Weight = t.Weight
		return item, nil
	case entity.KindCurrency:
		return entity.NewCurrency(t.Value), nil
	case entity.KindEquipment:
		return entity.NewEquipment(t.Name, t.Keywords, t.Value, t.Slot), nil
	case entity.KindWeapon:
		return entity.NewWeapon(t.Name, t.Keywords, t.Value, t.Slot, t.AttackPower, t.Hit), nil
	case entity.KindArmor:
		return entity.NewArmor(t.Name, t.Keywords, t.Value, t.Slot, t.Defense), nil
	case entity.KindMob:
		race, ok := archetypes.Get(t.RaceID)
		if !ok {
			return nil, engineerr.New(engineerr.Internal, "template %s: unknown race archetype %q", t.GlobalID, t.RaceID)
		}
		job, ok := archetypes.Get(t.JobID)
		if !ok {
			return nil, engineerr.New(engineerr.Internal, "template %s: unknown job archetype %q", t.GlobalID, t.JobID)
		}
		return entity.NewMob(t.Name, t.Keywords, race, job), nil
	default:
		return nil, engineerr.New(engineerr.Internal, "template %s: unknown kind %q", t.GlobalID, t.Kind)
	}
}
