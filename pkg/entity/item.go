package entity

import (
	"duskward/pkg/attribute"
	"duskward/pkg/damage"
)

// Item is a DungeonObject with a monetary value, optional container
// behavior, and an optional weight.
type Item struct {
	Base `yaml:",inline"`

	Value      int  `yaml:"value"`
	IsContainer bool `yaml:"is_container,omitempty"`
	Weight      float64 `yaml:"weight,omitempty"`
}

// NewItem constructs an Item with a freshly allocated OID.
func NewItem(name string, keywords []string, value int) *Item {
	return &Item{
		Base:  NewBase(KindItem, name, keywords),
		Value: value,
	}
}

// CanContain reports whether this item accepts other objects via put,
// promoted to every type that embeds Item (Equipment, Weapon, Armor,
// Currency), none of which set IsContainer in practice.
func (i *Item) CanContain() bool { return i.IsContainer }

// Container is an object put can target: anything with CanContain true.
type Container interface {
	Object
	CanContain() bool
}

// EquipmentSlot identifies one of the wearable slots on a Mob.
type EquipmentSlot string

// The eleven equipment slots a Mob can wear gear in.
const (
	SlotHead      EquipmentSlot = "head"
	SlotNeck      EquipmentSlot = "neck"
	SlotChest     EquipmentSlot = "chest"
	SlotHands     EquipmentSlot = "hands"
	SlotFinger    EquipmentSlot = "finger"
	SlotWaist     EquipmentSlot = "waist"
	SlotLegs      EquipmentSlot = "legs"
	SlotFeet      EquipmentSlot = "feet"
	SlotMainHand  EquipmentSlot = "main-hand"
	SlotOffHand   EquipmentSlot = "off-hand"
	SlotShoulders EquipmentSlot = "shoulders"
)

// ResourceBonus is the optional health/mana bonus an Equipment piece grants.
type ResourceBonus struct {
	Health int `yaml:"health,omitempty"`
	Mana   int `yaml:"mana,omitempty"`
}

// Equipment is an Item that occupies an EquipmentSlot and may grant
// attribute, resource, or secondary-attribute bonuses while worn.
type Equipment struct {
	Item `yaml:",inline"`

	Slot             EquipmentSlot     `yaml:"slot"`
	AttributeBonus   attribute.Primary `yaml:"attribute_bonus,omitempty"`
	ResourceBonus    ResourceBonus     `yaml:"resource_bonus,omitempty"`
	SecondaryBonus   attribute.Base    `yaml:"secondary_bonus,omitempty"`
}

// NewEquipment constructs an Equipment item for the given slot.
func NewEquipment(name string, keywords []string, value int, slot EquipmentSlot) *Equipment {
	e := &Equipment{
		Item: *NewItem(name, keywords, value),
		Slot: slot,
	}
	e.ObjKind = KindEquipment
	return e
}

// EquipSlot reports which slot this piece occupies. Named distinctly
// from the Slot field so Weapon/Armor (which embed Equipment) promote
// it as a method without a field/method name collision.
func (e *Equipment) EquipSlot() EquipmentSlot { return e.Slot }

// Bonuses returns the attribute/secondary/resource contributions this
// piece grants while worn.
func (e *Equipment) Bonuses() (attribute.Primary, attribute.Base, ResourceBonus) {
	return e.AttributeBonus, e.SecondaryBonus, e.ResourceBonus
}

// Wearable is anything Mob.Equip/Unequip can hold in an equipment slot:
// Equipment itself, or anything that embeds it (Weapon, Armor). Combat
// code recovers the concrete *Weapon/*Armor via a type assertion on the
// Wearable value stored in Mob.Equipped.
type Wearable interface {
	Object
	EquipSlot() EquipmentSlot
	Bonuses() (attribute.Primary, attribute.Base, ResourceBonus)
}

// HitType describes the verb and damage kind a Weapon's attack uses.
type HitType struct {
	Verb            string      `yaml:"verb"`              // e.g. "slash"
	VerbThirdPerson string      `yaml:"verb_third_person"` // e.g. "slashes"
	DamageType      damage.Type `yaml:"damage_type"`
}

// Weapon is Equipment that contributes raw attack power and a hit type
// to the wielder's combat rolls.
type Weapon struct {
	Equipment `yaml:",inline"`

	AttackPower float64 `yaml:"attack_power"`
	Hit         HitType `yaml:"hit_type"`
}

// NewWeapon constructs a Weapon for the main-hand or off-hand slot.
func NewWeapon(name string, keywords []string, value int, slot EquipmentSlot, attackPower float64, hit HitType) *Weapon {
	w := &Weapon{
		Equipment:   *NewEquipment(name, keywords, value, slot),
		AttackPower: attackPower,
		Hit:         hit,
	}
	w.ObjKind = KindWeapon
	return w
}

// Armor is Equipment that contributes raw defense to the wearer's
// combat rolls.
type Armor struct {
	Equipment `yaml:",inline"`

	Defense float64 `yaml:"defense"`
}

// NewArmor constructs an Armor piece for the given slot.
func NewArmor(name string, keywords []string, value int, slot EquipmentSlot, defense float64) *Armor {
	a := &Armor{
		Equipment: *NewEquipment(name, keywords, value, slot),
		Defense:   defense,
	}
	a.ObjKind = KindArmor
	return a
}

// Currency represents gold. It can never be equipped or sacrificed.
type Currency struct {
	Item `yaml:",inline"`
}

// NewCurrency constructs a Currency stack with the given gold amount as
// its value.
func NewCurrency(amount int) *Currency {
	c := &Currency{Item: *NewItem("gold", []string{"gold", "coin", "coins"}, amount)}
	c.ObjKind = KindCurrency
	return c
}
