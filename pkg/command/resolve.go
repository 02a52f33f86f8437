package command

import (
	"time"

	"duskward/pkg/entity"
)

// Context is the immutable execution context a command handler
// receives: actor, current room snapshot reference, and server clock.
// RoomContents is a snapshot taken at dispatch entry, matching the
// same snapshot-at-call-entry rule pkg act's fanout uses.
type Context struct {
	Actor        *entity.Mob
	RoomContents []entity.Object

	// IsAdmin mirrors the acting Character's isAdmin flag, copied into
	// the context by the orchestrator at dispatch entry so the admin
	// command set (pkg/command/admin.go) can gate without this package
	// importing pkg/character.
	IsAdmin bool

	// Now is the server clock reading at dispatch entry.
	Now time.Time
}

// candidatesForScope returns the objects a scope makes visible to the
// actor: @inventory is the actor's direct contents; @room is the
// actor's room contents minus the actor; @all is room union inventory,
// room preferred on tie.
func candidatesForScope(ctx Context, scope Scope) []entity.Object {
	switch scope {
	case ScopeInventory:
		return ctx.Actor.Contents()
	case ScopeRoom:
		return withoutActor(ctx.RoomContents, ctx.Actor)
	default: // ScopeAll
		room := withoutActor(ctx.RoomContents, ctx.Actor)
		all := make([]entity.Object, 0, len(room)+len(ctx.Actor.Contents()))
		all = append(all, room...)
		all = append(all, ctx.Actor.Contents()...)
		return all
	}
}

// scopeRoomBound returns how many of candidatesForScope's leading
// entries are room contents, so resolveFragment can prefer a room match
// over an inventory match instead of comparing oids across both.
func scopeRoomBound(ctx Context, scope Scope) int {
	switch scope {
	case ScopeInventory:
		return 0
	case ScopeRoom:
		return len(withoutActor(ctx.RoomContents, ctx.Actor))
	default: // ScopeAll
		return len(withoutActor(ctx.RoomContents, ctx.Actor))
	}
}

func withoutActor(objs []entity.Object, actor *entity.Mob) []entity.Object {
	out := make([]entity.Object, 0, len(objs))
	for _, o := range objs {
		if o.OID() != actor.OID() {
			out = append(out, o)
		}
	}
	return out
}

// resolveFragment finds the best keyword match for fragment among
// candidates, where candidates[:roomBound] are room contents and the
// remainder (if any, under @all) are inventory contents. A room match
// always beats an inventory match; within either tier, ties break on
// lower oid.
func resolveFragment(candidates []entity.Object, roomBound int, fragment string) (entity.Object, bool) {
	var bestRoom, bestInv entity.Object
	for i, c := range candidates {
		if !entity.MatchKeyword(c, fragment) {
			continue
		}
		if i < roomBound {
			if bestRoom == nil || c.OID() < bestRoom.OID() {
				bestRoom = c
			}
		} else if bestInv == nil || c.OID() < bestInv.OID() {
			bestInv = c
		}
	}
	if bestRoom != nil {
		return bestRoom, true
	}
	return bestInv, bestInv != nil
}
