package dungeon

import (
	"duskward/pkg/coord"
	"duskward/pkg/engineerr"
	"duskward/pkg/entity"
)

// ExitPolicy lets a room veto a step in a direction that would otherwise
// be permitted by grid adjacency or a tunnel: CanStep checks both grid
// adjacency (tunnels override adjacency) and any per-room exit policy.
// A nil policy never vetoes.
type ExitPolicy func(mob *entity.Mob, dir coord.Direction) bool

// CanStep reports whether mob may leave room via dir: either a RoomLink
// exists in that direction, or the plain grid cell one step over in dir
// is occupied by a room, and (in either case) the room's ExitPolicy, if
// set, does not veto it.
func (d *Dungeon) CanStep(room *Room, mob *entity.Mob, dir coord.Direction, policy ExitPolicy) (*Room, bool) {
	var dest *Room
	if link, ok := room.ExitTo(dir); ok {
		dest = link.ToRoom
		if link.ToRoom == room {
			dest = link.FromRoom
		}
	} else {
		next := room.Position.Add(dir)
		if r, ok := d.GetRoom(next); ok {
			dest = r
		}
	}
	if dest == nil {
		return nil, false
	}
	if policy != nil && !policy(mob, dir) {
		return nil, false
	}
	return dest, true
}

// Move relocates mob from its current room into dest, using
// entity.Attach so the containment invariant (location consistent with
// parent's contents) is preserved. It returns an error only if dest
// would create a containment cycle, which cannot happen for a
// Room-to-Room move but is checked for uniformity with entity.Attach's
// contract.
func Move(mob *entity.Mob, dest *Room) error {
	if err := entity.Attach(dest, mob); err != nil {
		return engineerr.Wrap(engineerr.ContainmentCycle, err, "move mob %d to room %s", mob.OID(), dest.Position)
	}
	return nil
}
