// Package damage defines the damage-type taxonomy and the per-mob
// relationship table (resist/immune/vulnerable) that combat and effect
// damage both consult before applying a hit.
package damage

// Type is a damage kind, implemented as a string so content authors can
// register additional open, human-readable values at load time.
type Type string

// Built-in damage types. Archetypes and effect templates may reference
// additional types registered at load time; this set covers the ones the
// default bootstrap content uses.
const (
	Physical  Type = "physical"
	Fire      Type = "fire"
	Frost     Type = "frost"
	Lightning Type = "lightning"
	Poison    Type = "poison"
	Holy      Type = "holy"
	Shadow    Type = "shadow"
)

// Relationship describes how a mob's resistance table treats a damage type.
type Relationship int

// Relationship priority when race and job tables disagree: IMMUNE beats
// RESIST beats VULNERABLE beats Normal; equal priority resolves to race.
const (
	Normal Relationship = iota
	Vulnerable
	Resist
	Immune
)

// priority orders relationships so the higher value wins a merge.
func (r Relationship) priority() int {
	switch r {
	case Immune:
		return 3
	case Resist:
		return 2
	case Vulnerable:
		return 1
	default:
		return 0
	}
}

// Multiplier returns the damage multiplier for the relationship:
// Immune->0, Resist->0.5, Normal->1, Vulnerable->2.
func (r Relationship) Multiplier() float64 {
	switch r {
	case Immune:
		return 0
	case Resist:
		return 0.5
	case Vulnerable:
		return 2
	default:
		return 1
	}
}

// Table maps damage types to a mob's relationship to them. A missing
// entry means Normal (1x).
type Table map[Type]Relationship

// RelationshipFor returns the table's relationship for a damage type,
// defaulting to Normal when unset.
func (t Table) RelationshipFor(dt Type) Relationship {
	if t == nil {
		return Normal
	}
	if r, ok := t[dt]; ok {
		return r
	}
	return Normal
}

// Merge combines a race-level and job-level relationship table into the
// effective table a Mob uses: IMMUNE beats RESIST beats VULNERABLE beats
// Normal, equal priority resolves to race.
func Merge(race, job Table) Table {
	merged := make(Table, len(race)+len(job))
	for dt, r := range race {
		merged[dt] = r
	}
	for dt, jobRel := range job {
		raceRel, hasRace := merged[dt]
		if !hasRace {
			merged[dt] = jobRel
			continue
		}
		if jobRel.priority() > raceRel.priority() {
			merged[dt] = jobRel
		}
		// equal or lower priority: race wins, already in merged.
	}
	return merged
}

// Apply returns the damage amount after applying the table's relationship
// for the given damage type.
func (t Table) Apply(dt Type, amount float64) float64 {
	return amount * t.RelationshipFor(dt).Multiplier()
}
