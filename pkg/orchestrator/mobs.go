package orchestrator

import (
	"duskward/pkg/act"
	"duskward/pkg/character"
	"duskward/pkg/combat"
	"duskward/pkg/coord"
	"duskward/pkg/dungeon"
	"duskward/pkg/engineerr"
	"duskward/pkg/entity"
)

// defaultRaceID/defaultJobID name the archetypes registerArchetypes
// seeds for newly created player characters; a real deployment would
// let character creation pick from the full roster, which is out of
// scope here (character account creation itself is stubbed at the login
// layer per pkg/character/login.go's doc comment).
const (
	defaultRaceID = "human"
	defaultJobID  = "adventurer"
)

// registerMob indexes a mob by OID and, if it is an NPC, adds it to the
// wander-AI candidate pool.
func (e *Engine) registerMob(m *entity.Mob) {
	e.mobs[m.OID()] = m
	if m.CharacterID == 0 {
		e.wandering = append(e.wandering, m.OID())
	}
	e.metrics.SetActiveMobs(len(e.mobs))
}

// unregisterMob removes a mob from every index the engine keeps,
// including its owning reset's spawned-set so the restock ticker can
// replace it.
func (e *Engine) unregisterMob(m *entity.Mob) {
	delete(e.mobs, m.OID())
	for i, id := range e.wandering {
		if id == m.OID() {
			e.wandering = append(e.wandering[:i], e.wandering[i+1:]...)
			break
		}
	}
	for _, d := range e.Dungeons.All() {
		d.Resets.RemoveSpawn(m.OID())
	}
	e.metrics.SetActiveMobs(len(e.mobs))
}

// spawnPlayerMob creates a fresh Mob for a character with no existing
// MobID, places it at the graveyard/starting room, and binds the
// CharacterID/MobID link both packages leave for the orchestrator to
// maintain.
func (e *Engine) spawnPlayerMob(c *character.Character) *entity.Mob {
	race, _ := e.Archetypes.Get(defaultRaceID)
	job, _ := e.Archetypes.Get(defaultJobID)

	mob := entity.NewMob(c.Username, []string{c.Username}, race, job)
	mob.CharacterID = c.ID
	c.MobID = mob.OID()

	e.registerMob(mob)
	if room, err := e.Dungeons.ResolveRoomRef(e.cfg.GraveyardRoomRef); err == nil {
		_ = entity.Attach(room, mob)
	}
	return mob
}

// destroyMob tears down a mob's effects, drops its equipment and
// inventory into its room, detaches it from the world, and drops it
// from every index.
func (e *Engine) destroyMob(m *entity.Mob) {
	combat.Disengage(e.queue, m)
	room := m.Location()
	carried := append([]entity.Object(nil), m.Contents()...)
	dropped := m.Destroy(e.scheduler)
	if room != nil {
		for _, item := range dropped {
			_ = entity.Attach(room, item)
		}
		for _, obj := range carried {
			_ = entity.Attach(room, obj)
		}
	}
	entity.Detach(m)
	e.unregisterMob(m)
	e.abilities.Forget(uint64(m.OID()))
}

// movePlayer resolves a directional step from the actor's current room
// and, if permitted, relocates it, emitting departure/arrival fanout via
// pkg/act.
func (e *Engine) movePlayer(actor *entity.Mob, dir coord.Direction) error {
	room, ok := actor.Location().(*dungeon.Room)
	if !ok || room == nil {
		return engineerr.New(engineerr.NotInRoom, "you are nowhere")
	}
	d, ok := e.Dungeons.Get(room.DungeonID)
	if !ok {
		return engineerr.New(engineerr.Internal, "room belongs to unregistered dungeon %q", room.DungeonID)
	}
	dest, ok := d.CanStep(room, actor, dir, nil)
	if !ok {
		return engineerr.New(engineerr.ScopeMiss, "you cannot go %s", dir)
	}

	act.Act(act.Templates{Room: "{User} leaves " + dir.String() + "."},
		e.actContext(actor, nil), act.Options{})

	if err := dungeon.Move(actor, dest); err != nil {
		return err
	}

	act.Act(act.Templates{Room: "{User} arrives."}, e.actContext(actor, nil), act.Options{})
	e.replyTo(actor, dest.Name())
	return nil
}
