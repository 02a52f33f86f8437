package dungeon

import (
	"strconv"
	"strings"

	"duskward/pkg/coord"
	"duskward/pkg/engineerr"
)

// Registry is the process-wide table of loaded dungeons, keyed by id. A
// registered id must be unique across the process.
type Registry struct {
	dungeons map[string]*Dungeon
}

// NewRegistry returns an empty dungeon registry.
func NewRegistry() *Registry {
	return &Registry{dungeons: make(map[string]*Dungeon)}
}

// Register adds a dungeon, rejecting a duplicate id: registering a
// second dungeon under an id already in use fails and leaves the first
// retrievable by id.
func (r *Registry) Register(d *Dungeon) error {
	if _, exists := r.dungeons[d.ID]; exists {
		return engineerr.New(engineerr.Internal, "dungeon registry: id %q already registered", d.ID)
	}
	r.dungeons[d.ID] = d
	return nil
}

// Get looks up a dungeon by id.
func (r *Registry) Get(id string) (*Dungeon, bool) {
	d, ok := r.dungeons[id]
	return d, ok
}

// All returns every registered dungeon.
func (r *Registry) All() []*Dungeon {
	out := make([]*Dungeon, 0, len(r.dungeons))
	for _, d := range r.dungeons {
		out = append(out, d)
	}
	return out
}

// ResolveRoomRef resolves a `@dungeonID{x,y,z}` reference to a room.
func (r *Registry) ResolveRoomRef(ref string) (*Room, error) {
	dungeonID, c, err := parseRoomRef(ref)
	if err != nil {
		return nil, err
	}
	d, ok := r.Get(dungeonID)
	if !ok {
		return nil, engineerr.New(engineerr.ScopeMiss, "no such dungeon %q", dungeonID)
	}
	room, ok := d.GetRoom(c)
	if !ok {
		return nil, engineerr.New(engineerr.ScopeMiss, "no room at %s in dungeon %q", c, dungeonID)
	}
	return room, nil
}

func parseRoomRef(ref string) (dungeonID string, c coord.Coordinate, err error) {
	if !strings.HasPrefix(ref, "@") {
		return "", coord.Coordinate{}, engineerr.New(engineerr.ParseError, "room reference %q must start with @", ref)
	}
	body := ref[1:]
	open := strings.IndexByte(body, '{')
	shut := strings.IndexByte(body, '}')
	if open < 0 || shut < open {
		return "", coord.Coordinate{}, engineerr.New(engineerr.ParseError, "room reference %q is missing {x,y,z}", ref)
	}
	dungeonID = body[:open]
	parts := strings.Split(body[open+1:shut], ",")
	if len(parts) != 3 {
		return "", coord.Coordinate{}, engineerr.New(engineerr.ParseError, "room reference %q needs exactly 3 coordinates", ref)
	}
	nums := make([]int, 3)
	for i, p := range parts {
		n, convErr := strconv.Atoi(strings.TrimSpace(p))
		if convErr != nil {
			return "", coord.Coordinate{}, engineerr.New(engineerr.ParseError, "room reference %q has a non-integer coordinate", ref)
		}
		nums[i] = n
	}
	return dungeonID, coord.Coordinate{X: nums[0], Y: nums[1], Z: nums[2]}, nil
}

// ResolveTemplate resolves a template reference. The explicit form
// `@dungeonID:localID` is tried first; a bare `localID` falls back to
// scanning every registered dungeon for a matching local id.
func (r *Registry) ResolveTemplate(ref string) (*Template, error) {
	if strings.HasPrefix(ref, "@") {
		rest := ref[1:]
		dungeonID, localID, ok := strings.Cut(rest, ":")
		if !ok {
			return nil, engineerr.New(engineerr.ParseError, "template reference %q is missing :localID", ref)
		}
		d, ok := r.Get(dungeonID)
		if !ok {
			return nil, engineerr.New(engineerr.ScopeMiss, "no such dungeon %q", dungeonID)
		}
		tmpl, ok := d.LocalTemplate(localID)
		if !ok {
			return nil, engineerr.New(engineerr.ScopeMiss, "no template %q in dungeon %q", localID, dungeonID)
		}
		return tmpl, nil
	}

	for _, d := range r.dungeons {
		if tmpl, ok := d.LocalTemplate(ref); ok {
			return tmpl, nil
		}
	}
	return nil, engineerr.New(engineerr.ScopeMiss, "no template %q in any registered dungeon", ref)
}
