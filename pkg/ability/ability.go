// Package ability implements the ability catalog and the proficiency
// curve: id/name/description plus a sequence of use-count thresholds
// gating 25/50/75/100% proficiency.
package ability

import "fmt"

// Ability is a frozen, registry-owned ability definition. Thresholds
// holds the use-count required to reach 25%, 50%, 75%, and 100%
// proficiency respectively, in that order.
type Ability struct {
	ID          string `yaml:"id"`
	Name        string `yaml:"name"`
	Description string `yaml:"description"`

	Thresholds [4]int `yaml:"thresholds"`
}

// ProficiencyForUses derives the 0/25/50/75/100 tier a use count has
// reached from a fixed threshold lookup table.
func (a Ability) ProficiencyForUses(uses int) int {
	tiers := [4]int{25, 50, 75, 100}
	pct := 0
	for i, threshold := range a.Thresholds {
		if threshold > 0 && uses >= threshold {
			pct = tiers[i]
		}
	}
	return pct
}

// Registry is the process-wide table of loaded abilities.
type Registry struct {
	abilities map[string]Ability
}

// NewRegistry returns an empty ability registry.
func NewRegistry() *Registry {
	return &Registry{abilities: make(map[string]Ability)}
}

// Register adds an ability, rejecting a duplicate id. This is the
// "abilities" phase of the fixed registration order: damage types ->
// archetypes -> abilities -> effects -> commands -> dungeons.
func (r *Registry) Register(a Ability) error {
	if _, exists := r.abilities[a.ID]; exists {
		return fmt.Errorf("ability registry: id %q already registered", a.ID)
	}
	r.abilities[a.ID] = a
	return nil
}

// Get looks up an ability by id.
func (r *Registry) Get(id string) (Ability, bool) {
	a, ok := r.abilities[id]
	return a, ok
}

// All returns every registered ability.
func (r *Registry) All() []Ability {
	out := make([]Ability, 0, len(r.abilities))
	for _, a := range r.abilities {
		out = append(out, a)
	}
	return out
}
