package orchestrator

import (
	"duskward/pkg/act"
	"duskward/pkg/character"
	"duskward/pkg/entity"
)

// messageGroupFromAct converts an act.MessageGroup to its
// character.MessageGroup counterpart. The two enums share the same
// string values by construction; the conversion exists because
// pkg/act and pkg/character deliberately don't import each other.
func messageGroupFromAct(g act.MessageGroup) character.MessageGroup {
	return character.MessageGroup(g)
}

// MobByID implements combat.Resolver by consulting the engine's live
// mob index, populated and torn down on the executor goroutine.
func (e *Engine) MobByID(id entity.OID) (*entity.Mob, bool) {
	m, ok := e.mobs[id]
	return m, ok
}

// SameRoom implements combat.Resolver: two mobs are in the same room
// when their containing Location objects share an OID.
func (e *Engine) SameRoom(a, b *entity.Mob) bool {
	la, lb := a.Location(), b.Location()
	if la == nil || lb == nil {
		return false
	}
	return la.OID() == lb.OID()
}
