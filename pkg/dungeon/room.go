// Package dungeon implements the 3D room graph: a Dungeon owning a grid
// of Rooms, directed RoomLinks (tunnels) between them, template id
// globalization, and the spawn reset registry.
//
// Like pkg/entity, this package carries no internal locking: the grid,
// links, and resets are mutated only by the single executor goroutine.
package dungeon

import (
	"duskward/pkg/coord"
	"duskward/pkg/entity"
)

// Room is a DungeonObject occupying one coordinate in its owning
// Dungeon's grid. It embeds entity.Base, so it satisfies entity.Object
// for free via method promotion, and holds the outgoing RoomLinks that
// make up its exit set.
type Room struct {
	entity.Base `yaml:",inline"`

	Position coord.Coordinate `yaml:"position"`
	DungeonID string          `yaml:"dungeon_id"`

	links map[coord.Direction]*RoomLink
}

// NewRoom constructs a Room at pos within dungeonID.
func NewRoom(name string, keywords []string, dungeonID string, pos coord.Coordinate) *Room {
	return &Room{
		Base:      entity.NewBase(entity.KindRoom, name, keywords),
		Position:  pos,
		DungeonID: dungeonID,
		links:     make(map[coord.Direction]*RoomLink),
	}
}

// Exits returns the room's outgoing links, keyed by direction.
func (r *Room) Exits() map[coord.Direction]*RoomLink { return r.links }

// ExitTo returns the link leaving in dir, if any.
func (r *Room) ExitTo(dir coord.Direction) (*RoomLink, bool) {
	link, ok := r.links[dir]
	return link, ok
}

// addLink installs a link as an outgoing exit in direction dir; it is
// unexported because RoomLink creation/removal must go through the
// Dungeon so the process-wide link registry stays in sync.
func (r *Room) addLink(dir coord.Direction, link *RoomLink) { r.links[dir] = link }

func (r *Room) removeLink(dir coord.Direction) { delete(r.links, dir) }

// Observers returns a snapshot of the room's contents at call time,
// matching act's rule of iterating room contents by a snapshot taken at
// call entry. The caller that needs act.RoomContents (pkg/orchestrator)
// filters this down to the act.Actor-capable Mobs itself, since
// entity.Object has no dependency on pkg/act.
func (r *Room) Observers() []entity.Object {
	return append([]entity.Object(nil), r.Contents()...)
}
