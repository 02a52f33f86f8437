package orchestrator

import (
	"fmt"

	"duskward/pkg/attribute"
	"duskward/pkg/command"
	"duskward/pkg/dungeon"
	"duskward/pkg/engineerr"
	"duskward/pkg/entity"
)

// adminOps is *Engine under a distinct name so it can implement
// command.AdminOps without polluting Engine's own method set namespace
// (SpawnTemplate/SetAttribute/etc. read oddly as general Engine verbs,
// but read naturally as the admin console's operation set).
type adminOps Engine

func (a *adminOps) engine() *Engine { return (*Engine)(a) }

// SpawnTemplate resolves destRoom and templateID against the dungeon
// registry, spawns the template, and attaches the result to the room.
func (a *adminOps) SpawnTemplate(destRoom, templateID string) (entity.Object, error) {
	e := a.engine()
	room, err := e.Dungeons.ResolveRoomRef(destRoom)
	if err != nil {
		return nil, err
	}
	tmpl, err := e.Dungeons.ResolveTemplate(templateID)
	if err != nil {
		return nil, err
	}
	obj, err := tmpl.Spawn(e.Archetypes)
	if err != nil {
		return nil, err
	}
	if err := entity.Attach(room, obj); err != nil {
		return nil, err
	}
	if mob, ok := obj.(*entity.Mob); ok {
		e.registerMob(mob)
	}
	return obj, nil
}

// SetAttribute assigns one of a fixed set of mutable mob attributes.
// Only mobs have attributes worth admin-tuning in this engine; items'
// Value/Weight are set through content authoring, not the live console.
func (a *adminOps) SetAttribute(target entity.Object, attr string, value int) error {
	mob, ok := target.(*entity.Mob)
	if !ok {
		return engineerr.New(engineerr.ParseError, "set-attribute: target is not a mob")
	}
	healthCap, manaCap := mob.MaxHealth, mob.MaxMana
	switch attr {
	case "level":
		mob.Level = value
	case "health":
		mob.Health = value
	case "max_health":
		healthCap = value
	case "mana":
		mob.Mana = value
	case "max_mana":
		manaCap = value
	case "strength":
		mob.Primary.Strength = value
	case "agility":
		mob.Primary.Agility = value
	case "intelligence":
		mob.Primary.Intelligence = value
	default:
		return engineerr.New(engineerr.ParseError, "set-attribute: unknown attribute %q", attr)
	}
	mob.RecomputeDerived(a.engine().archetypeBaseFor(mob), healthCap, manaCap)
	return nil
}

// archetypeBaseFor recombines a mob's race+job StartingBase, since Mob
// itself only retains the string ids (not a pointer back into the
// registry) once constructed.
func (e *Engine) archetypeBaseFor(mob *entity.Mob) attribute.Base {
	race, _ := e.Archetypes.Get(mob.RaceID)
	job, _ := e.Archetypes.Get(mob.JobID)
	return race.StartingBase.Add(job.StartingBase)
}

// DumpRoom renders a line-oriented diagnostic snapshot of a room's
// contents and exits for admin introspection.
func (a *adminOps) DumpRoom(roomID string) (string, error) {
	e := a.engine()
	room, err := e.Dungeons.ResolveRoomRef(roomID)
	if err != nil {
		return "", err
	}
	out := fmt.Sprintf("room %s (%s)\n", room.Position, room.Name())
	for dir, link := range room.Exits() {
		out += fmt.Sprintf("  exit %s -> %s\n", dir, link.ToRoom.Position)
	}
	for _, obj := range room.Contents() {
		out += fmt.Sprintf("  [%d] %s (%s)\n", obj.OID(), obj.Name(), obj.Kind())
	}
	return out, nil
}

// Teleport resolves destRoom and relocates actor into it directly,
// bypassing CanStep's adjacency/policy checks (admin movement is exempt
// from ordinary traversal rules).
func (a *adminOps) Teleport(actor *entity.Mob, destRoom string) error {
	e := a.engine()
	room, err := e.Dungeons.ResolveRoomRef(destRoom)
	if err != nil {
		return err
	}
	return entity.Attach(room, actor)
}

// RoomRefFor renders room back into the `@dungeonID{x,y,z}` form
// ResolveRoomRef accepts, so an admin command's omitted room argument
// can default to the issuing actor's current location.
func (a *adminOps) RoomRefFor(room entity.Object) (string, error) {
	r, ok := room.(*dungeon.Room)
	if !ok {
		return "", engineerr.New(engineerr.NotInRoom, "actor has no resolvable current room")
	}
	return fmt.Sprintf("@%s{%d,%d,%d}", r.DungeonID, r.Position.X, r.Position.Y, r.Position.Z), nil
}

// InitiateCopyover persists world state and begins the shutdown
// sequence; the process re-exec step a live hot-restart would need is
// left to the surrounding process supervisor rather than this engine.
func (a *adminOps) InitiateCopyover() error {
	e := a.engine()
	if err := e.SaveAll(); err != nil {
		return err
	}
	e.RequestShutdown()
	return nil
}

// adminReply is the command.Reply callback: it routes text back through
// the same per-connection delivery path every other command reply uses.
func (e *Engine) adminReply(ctx command.Context, text string) {
	e.replyTo(ctx.Actor, text)
}
