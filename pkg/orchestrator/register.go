package orchestrator

import (
	"fmt"
	"time"

	"duskward/pkg/ability"
	"duskward/pkg/act"
	"duskward/pkg/archetype"
	"duskward/pkg/attribute"
	"duskward/pkg/coord"
	"duskward/pkg/damage"
	"duskward/pkg/dungeon"
	"duskward/pkg/effect"
	"duskward/pkg/entity"
)

// registerArchetypes seeds the default race/job roster. A full content
// pipeline would load these from pkg/persistence YAML files; the
// in-code table here is the seed data every fresh world starts from.
func (e *Engine) registerArchetypes() error {
	races := []archetype.Archetype{
		{
			ID:                "human",
			Name:              "Human",
			StartingPrimary:   attribute.Primary{Strength: 10, Agility: 10, Intelligence: 10},
			StartingBase:      attribute.Base{},
			GrowthPerLevel:    attribute.Primary{Strength: 1, Agility: 1, Intelligence: 1},
			GrowthCurve:       archetype.GrowthCurve{0, 1.0},
			StartingHealthCap: 50,
			StartingManaCap:   30,
			DamageRelationships: damage.Table{},
		},
		{
			ID:                "elf",
			Name:              "Elf",
			StartingPrimary:   attribute.Primary{Strength: 7, Agility: 13, Intelligence: 12},
			GrowthPerLevel:    attribute.Primary{Strength: 1, Agility: 2, Intelligence: 1},
			GrowthCurve:       archetype.GrowthCurve{0, 1.0},
			StartingHealthCap: 40,
			StartingManaCap:   45,
			DamageRelationships: damage.Table{damage.Shadow: damage.Vulnerable},
		},
	}
	jobs := []archetype.Archetype{
		{
			ID:                  "adventurer",
			Name:                "Adventurer",
			StartingPrimary:     attribute.Primary{},
			GrowthPerLevel:      attribute.Primary{Strength: 1, Agility: 1},
			GrowthCurve:         archetype.GrowthCurve{0, 1.0},
			StartingHealthCap:   10,
			StartingManaCap:     5,
			GrantedAbilities:    []string{"melee-strike"},
			StartingProficiency: map[string]int{"melee-strike": 0},
		},
		{
			ID:                  "battlemage",
			Name:                "Battlemage",
			StartingPrimary:     attribute.Primary{Intelligence: 5},
			GrowthPerLevel:      attribute.Primary{Intelligence: 2},
			GrowthCurve:         archetype.GrowthCurve{0, 1.0},
			StartingHealthCap:   5,
			StartingManaCap:     20,
			GrantedAbilities:    []string{"melee-strike", "firebolt"},
			PassiveEffectIDs:    []string{"arcane-ward"},
			StartingProficiency: map[string]int{"melee-strike": 0, "firebolt": 0},
		},
	}
	for _, r := range races {
		if err := e.Archetypes.Register(r); err != nil {
			return err
		}
	}
	for _, j := range jobs {
		if err := e.Archetypes.Register(j); err != nil {
			return err
		}
	}
	return nil
}

// registerAbilities seeds the ability catalog the job archetypes above
// grant.
func (e *Engine) registerAbilities() error {
	abilities := []ability.Ability{
		{
			ID:          "melee-strike",
			Name:        "Melee Strike",
			Description: "A basic weapon or unarmed attack.",
			Thresholds:  [4]int{10, 50, 150, 400},
		},
		{
			ID:          "firebolt",
			Name:        "Firebolt",
			Description: "Hurls a bolt of fire at a target.",
			Thresholds:  [4]int{5, 25, 75, 200},
		},
	}
	for _, a := range abilities {
		if err := e.Abilities.Register(a); err != nil {
			return err
		}
	}
	return nil
}

// registerEffects seeds the effect templates the combat/ability system
// and the battlemage's racial passive reference.
func (e *Engine) registerEffects() error {
	templates := []*effect.Template{
		{
			ID:        "arcane-ward",
			Name:      "Arcane Ward",
			Variant:   effect.VariantPassive,
			Permanent: true,
			SecondaryBonus: attribute.Base{Resilience: 2},
		},
		{
			ID:          "burning",
			Name:        "Burning",
			Variant:     effect.VariantDOT,
			Duration:    12 * time.Second,
			Interval:    3 * time.Second,
			Ticks:       4,
			Damage:      4,
			DamageType:  damage.Fire,
			IsOffensive: true,
			OnTick:      act.Templates{Room: "{User} is seared by flames."},
			OnExpire:    act.Templates{Room: "The flames die out."},
		},
		{
			ID:       "mending",
			Name:     "Mending",
			Variant:  effect.VariantHOT,
			Duration: 15 * time.Second,
			Interval: 5 * time.Second,
			Ticks:    3,
			Heal:     6,
			OnTick:   act.Templates{Room: "{User} feels a warm tingle."},
		},
		{
			ID:                  "shield-ward",
			Name:                "Shield Ward",
			Variant:             effect.VariantShield,
			Duration:            30 * time.Second,
			Absorption:          40,
			MaxAbsorptionPerHit: 15,
			AbsorptionRate:      0.5,
		},
	}
	for _, t := range templates {
		if err := e.Effects.Register(t); err != nil {
			return err
		}
	}
	return nil
}

// registerDungeons builds the starting town: a single-room hub
// (matching the default GraveyardRoomRef) and a second room connected by
// a tunnel, plus a shopkeeper and a training-dummy spawn reset. A full
// deployment loads dungeon content from pkg/persistence YAML files
// instead of this in-code seed.
func (e *Engine) registerDungeons() error {
	d := dungeon.NewEmpty("town1", coord.Dimensions{Width: 3, Height: 3, Depth: 1})

	square := dungeon.NewRoom("Town Square", []string{"square", "town"}, d.ID, coord.Coordinate{X: 1, Y: 1, Z: 0})
	square.LongDesc = "Cobblestones radiate out from a dry fountain at the center of town."
	if err := d.AddRoom(square); err != nil {
		return err
	}

	market := dungeon.NewRoom("Market Row", []string{"market", "row"}, d.ID, coord.Coordinate{X: 2, Y: 1, Z: 0})
	market.LongDesc = "Shuttered stalls line a narrow lane east of the square."
	if err := d.AddRoom(market); err != nil {
		return err
	}

	d.CreateTunnel(square, coord.East, market, false)

	dummyTemplate := &dungeon.Template{
		LocalID: "training-dummy",
		Kind:    entity.KindMob,
		Name:    "training dummy",
		Keywords: []string{"dummy", "training"},
		RaceID:  "human",
		JobID:   "adventurer",
	}
	if err := d.RegisterTemplate(dummyTemplate); err != nil {
		return err
	}

	d.Resets.Register(&dungeon.Reset{
		ID:         "town1-dummy",
		TemplateID: dummyTemplate.GlobalID,
		RoomRef:    fmt.Sprintf("@%s{%d,%d,%d}", d.ID, square.Position.X, square.Position.Y, square.Position.Z),
		MinCount:   1,
		MaxCount:   1,
	})

	return e.Dungeons.Register(d)
}
