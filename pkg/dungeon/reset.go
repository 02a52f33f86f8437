package dungeon

import "duskward/pkg/entity"

// Reset is a spawn rule: keep between MinCount and MaxCount instances of
// TemplateID alive in RoomRef at all times. Equipped
// and Inventory name sub-resets applied to each spawned mob.
type Reset struct {
	ID         string
	TemplateID string
	RoomRef    string
	MinCount   int
	MaxCount   int

	Equipped  []Reset
	Inventory []Reset
}

// ResetRegistry tracks the currently-spawned instance set for each
// reset, so a restock pass knows how many more to spawn and object
// destruction can remove itself from its reset's spawned-set.
type ResetRegistry struct {
	resets  map[string]*Reset
	spawned map[string]map[entity.OID]bool
}

// NewResetRegistry returns an empty reset registry.
func NewResetRegistry() *ResetRegistry {
	return &ResetRegistry{
		resets:  make(map[string]*Reset),
		spawned: make(map[string]map[entity.OID]bool),
	}
}

// Register adds a reset rule.
func (rr *ResetRegistry) Register(r *Reset) {
	rr.resets[r.ID] = r
	rr.spawned[r.ID] = make(map[entity.OID]bool)
}

// All returns every registered reset rule.
func (rr *ResetRegistry) All() []*Reset {
	out := make([]*Reset, 0, len(rr.resets))
	for _, r := range rr.resets {
		out = append(out, r)
	}
	return out
}

// RecordSpawn marks oid as one of resetID's live instances.
func (rr *ResetRegistry) RecordSpawn(resetID string, oid entity.OID) {
	set, ok := rr.spawned[resetID]
	if !ok {
		set = make(map[entity.OID]bool)
		rr.spawned[resetID] = set
	}
	set[oid] = true
}

// RemoveSpawn drops oid from every reset's spawned-set; called from
// object destruction regardless of which reset (if any) owns it.
func (rr *ResetRegistry) RemoveSpawn(oid entity.OID) {
	for _, set := range rr.spawned {
		delete(set, oid)
	}
}

// LiveCount reports how many instances of resetID are currently spawned.
func (rr *ResetRegistry) LiveCount(resetID string) int {
	return len(rr.spawned[resetID])
}

// Deficit reports how many more instances resetID needs to reach
// MinCount, 0 if already at or above it.
func (rr *ResetRegistry) Deficit(resetID string) int {
	r, ok := rr.resets[resetID]
	if !ok {
		return 0
	}
	need := r.MinCount - rr.LiveCount(resetID)
	if need < 0 {
		return 0
	}
	return need
}
