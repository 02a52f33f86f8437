package dungeon

import "duskward/pkg/coord"

// RoomLink is a tunnel between two rooms: a directed pair plus an
// optional one-way flag. For a two-way
// link both rooms hold the same *RoomLink in their exit maps (From in
// From's direction, To in To's reverse direction); for a one-way link
// only From holds it.
type RoomLink struct {
	ID int64

	FromRoom *Room
	FromDir  coord.Direction
	ToRoom   *Room
	ToDir    coord.Direction

	OneWay bool
}

// LinkRegistry is the process-wide table of every RoomLink, kept for
// persistence and for remove-by-id.
type LinkRegistry struct {
	links  map[int64]*RoomLink
	nextID int64
}

// NewLinkRegistry returns an empty link registry.
func NewLinkRegistry() *LinkRegistry {
	return &LinkRegistry{links: make(map[int64]*RoomLink)}
}

// Create installs a tunnel from fromRoom in direction dir to toRoom,
// inferring the reverse direction for the two-way case. It returns the
// new link.
func (lr *LinkRegistry) Create(fromRoom *Room, dir coord.Direction, toRoom *Room, oneWay bool) *RoomLink {
	lr.nextID++
	link := &RoomLink{
		ID:       lr.nextID,
		FromRoom: fromRoom,
		FromDir:  dir,
		ToRoom:   toRoom,
		ToDir:    coord.Reverse(dir),
		OneWay:   oneWay,
	}
	fromRoom.addLink(dir, link)
	if !oneWay {
		toRoom.addLink(link.ToDir, link)
	}
	lr.links[link.ID] = link
	return link
}

// Remove tears down a link's exit entries on both rooms (idempotent if
// already removed from one side) and drops it from the registry.
func (lr *LinkRegistry) Remove(link *RoomLink) {
	if link == nil {
		return
	}
	link.FromRoom.removeLink(link.FromDir)
	if !link.OneWay {
		link.ToRoom.removeLink(link.ToDir)
	}
	delete(lr.links, link.ID)
}

// RemoveIncidentTo removes every link touching room, used by
// destroy-room.
func (lr *LinkRegistry) RemoveIncidentTo(room *Room) {
	for _, link := range lr.links {
		if link.FromRoom == room || link.ToRoom == room {
			lr.Remove(link)
		}
	}
}

// All returns every registered link, for persistence snapshotting.
func (lr *LinkRegistry) All() []*RoomLink {
	out := make([]*RoomLink, 0, len(lr.links))
	for _, link := range lr.links {
		out = append(out, link)
	}
	return out
}
