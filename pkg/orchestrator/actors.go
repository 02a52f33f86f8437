package orchestrator

import (
	"duskward/pkg/act"
	"duskward/pkg/entity"
)

// mobActor adapts an *entity.Mob (plus its optionally-bound character
// connection) to act.Actor. Neither pkg/entity nor pkg/act know about
// each other; this is the seam the orchestrator closes between them.
type mobActor struct {
	mob *entity.Mob
	cs  *connState // nil for an NPC with no bound player connection
}

func (e *Engine) actorFor(mob *entity.Mob) mobActor {
	return mobActor{mob: mob, cs: e.connForMob(mob.OID())}
}

func (a mobActor) ActID() uint64 { return uint64(a.mob.OID()) }

func (a mobActor) ActDisplayName() string { return a.mob.Name() }

func (a mobActor) HasCharacter() bool { return a.cs != nil && a.cs.character != nil }

func (a mobActor) Deliver(text string, group act.MessageGroup) {
	if !a.HasCharacter() {
		return
	}
	a.cs.character.SendMessage(text, messageGroupFromAct(group), a.mob.InCombat)
}

// roomActor adapts a *dungeon.Room's entity.Object snapshot to
// act.RoomContents, filtering down to the Mobs that can actually act
// (per dungeon/room.go's doc comment, which leaves this filtering step
// to whichever package needs act.RoomContents).
type roomActor struct {
	e        *Engine
	observed []entity.Object
}

func (e *Engine) roomContentsFor(observed []entity.Object) roomActor {
	return roomActor{e: e, observed: observed}
}

func (r roomActor) Observers() []act.Actor {
	out := make([]act.Actor, 0, len(r.observed))
	for _, obj := range r.observed {
		if mob, ok := obj.(*entity.Mob); ok {
			a := r.e.actorFor(mob)
			out = append(out, a)
		}
	}
	return out
}
