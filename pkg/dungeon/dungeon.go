package dungeon

import (
	"duskward/pkg/coord"
	"duskward/pkg/engineerr"
	"duskward/pkg/entity"
)

// Dungeon owns a 3D grid of rooms and the local-id template table scoped
// to it. Dungeons own their rooms exclusively: a Room is only ever
// reachable through exactly one Dungeon's grid.
type Dungeon struct {
	ID         string
	Dimensions coord.Dimensions

	// grid[z][y][x] is a dense rooms[depth][height][width] layout. A nil
	// entry means the cell is unoccupied.
	grid [][][]*Room

	templates map[string]*Template
	Links     *LinkRegistry
	Resets    *ResetRegistry
}

// NewEmpty constructs an empty dungeon of the given dimensions.
func NewEmpty(id string, dims coord.Dimensions) *Dungeon {
	grid := make([][][]*Room, dims.Depth)
	for z := range grid {
		grid[z] = make([][]*Room, dims.Height)
		for y := range grid[z] {
			grid[z][y] = make([]*Room, dims.Width)
		}
	}
	return &Dungeon{
		ID:         id,
		Dimensions: dims,
		grid:       grid,
		templates:  make(map[string]*Template),
		Links:      NewLinkRegistry(),
		Resets:     NewResetRegistry(),
	}
}

// GetRoom returns the room at c, or false if the cell is out of bounds
// or empty.
func (d *Dungeon) GetRoom(c coord.Coordinate) (*Room, bool) {
	if !d.Dimensions.Contains(c) {
		return nil, false
	}
	room := d.grid[c.Z][c.Y][c.X]
	return room, room != nil
}

// AddRoom places room at its own Position, failing if the cell is out of
// bounds or already occupied.
func (d *Dungeon) AddRoom(room *Room) error {
	c := room.Position
	if !d.Dimensions.Contains(c) {
		return engineerr.New(engineerr.Internal, "dungeon %s: %s is outside dimensions %+v", d.ID, c, d.Dimensions)
	}
	if d.grid[c.Z][c.Y][c.X] != nil {
		return engineerr.New(engineerr.Internal, "dungeon %s: cell %s is already occupied", d.ID, c)
	}
	room.DungeonID = d.ID
	d.grid[c.Z][c.Y][c.X] = room
	return nil
}

// DestroyRoom removes room from the grid, tearing down every incident
// link so no RoomLink is left dangling. When clearContents
// is true, every object still in the room's contents is detached
// (callers decide separately whether to relocate or delete them).
func (d *Dungeon) DestroyRoom(room *Room, clearContents bool) {
	d.Links.RemoveIncidentTo(room)
	if clearContents {
		for _, obj := range append([]entity.Object(nil), room.Contents()...) {
			entity.Detach(obj)
		}
	}
	c := room.Position
	if d.Dimensions.Contains(c) && d.grid[c.Z][c.Y][c.X] == room {
		d.grid[c.Z][c.Y][c.X] = nil
	}
}

// CreateTunnel links fromRoom to toRoom in dir, delegating to the
// dungeon's link registry.
func (d *Dungeon) CreateTunnel(fromRoom *Room, dir coord.Direction, toRoom *Room, oneWay bool) *RoomLink {
	return d.Links.Create(fromRoom, dir, toRoom, oneWay)
}

// RemoveLink tears down a tunnel.
func (d *Dungeon) RemoveLink(link *RoomLink) {
	d.Links.Remove(link)
}

// RegisterTemplate stores a template under its local id and sets its
// GlobalID to the globalized form (`@dungeonID:localID`).
func (d *Dungeon) RegisterTemplate(tmpl *Template) error {
	if _, exists := d.templates[tmpl.LocalID]; exists {
		return engineerr.New(engineerr.Internal, "dungeon %s: duplicate template id %q", d.ID, tmpl.LocalID)
	}
	tmpl.GlobalID = "@" + d.ID + ":" + tmpl.LocalID
	d.templates[tmpl.LocalID] = tmpl
	return nil
}

// LocalTemplate looks up a template by its local (un-prefixed) id.
func (d *Dungeon) LocalTemplate(localID string) (*Template, bool) {
	tmpl, ok := d.templates[localID]
	return tmpl, ok
}

// Templates returns every template registered in this dungeon.
func (d *Dungeon) Templates() []*Template {
	out := make([]*Template, 0, len(d.templates))
	for _, tmpl := range d.templates {
		out = append(out, tmpl)
	}
	return out
}
