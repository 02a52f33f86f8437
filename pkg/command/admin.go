package command

import (
	"duskward/pkg/engineerr"
	"duskward/pkg/entity"
)

// AdminOps is the world-mutation surface the admin command set drives.
// It is implemented by pkg/orchestrator over the live dungeon registry;
// defining it here (rather than importing pkg/dungeon directly) keeps
// pkg/command free of a dependency on the world-graph package, the same
// way pkg/combat stays decoupled from pkg/dungeon via its Resolver
// interface.
type AdminOps interface {
	// SpawnTemplate instantiates templateID into destRoom, returning the
	// new object.
	SpawnTemplate(destRoom string, templateID string) (entity.Object, error)

	// SetAttribute assigns value to attr on target. The attribute name
	// and its legal value range are operation-specific (health/mana
	// caps, a primary attribute, a proficiency percentage, and so on).
	SetAttribute(target entity.Object, attr string, value int) error

	// DumpRoom renders a diagnostic snapshot of a room's contents and
	// exits for the admin console.
	DumpRoom(roomID string) (string, error)

	// Teleport moves actor into destRoom.
	Teleport(actor *entity.Mob, destRoom string) error

	// RoomRefFor renders room as a reference string SpawnTemplate/
	// DumpRoom can resolve back to the same room, for the "operate on
	// my current room" default when an admin command's optional room
	// argument is omitted.
	RoomRefFor(room entity.Object) (string, error)

	// InitiateCopyover persists world state and begins shutdown. It does
	// not signal connected sessions or re-exec the server binary.
	InitiateCopyover() error
}

// Reply delivers text back to the actor that issued an admin command.
// pkg/command has no Deliver-capable type of its own (that lives on
// act.Actor, downstream in pkg/character), so the orchestrator supplies
// this hook at registration time rather than admin.go importing pkg/act.
type Reply func(ctx Context, text string)

// RegisterAdminCommands registers the enumerated admin operation set
// (spawn, set-attribute, dump-room, teleport, initiate-copyover): named,
// individually validated operations rather than an arbitrary-expression
// exec, with copyover keeping only its restart-trigger role. Every
// handler rejects a non-admin actor with engineerr.PermissionDenied
// before touching ops.
func RegisterAdminCommands(r *Registry, ops AdminOps, reply Reply) error {
	for _, c := range adminCommands(ops, reply) {
		if err := r.Register(c); err != nil {
			return err
		}
	}
	return nil
}

func adminCommands(ops AdminOps, reply Reply) []*Command {
	return []*Command{
		{
			ID:       "admin.spawn",
			Priority: 100,
			Pattern:  mustAdminPattern("spawn~ <template:word> <room:word?>"),
			Execute: func(ctx Context, args Args) error {
				if err := requireAdmin(ctx); err != nil {
					return err
				}
				room, _ := args["room"].(string)
				if room == "" {
					var err error
					room, err = ops.RoomRefFor(ctx.Actor.Location())
					if err != nil {
						return err
					}
				}
				_, err := ops.SpawnTemplate(room, args["template"].(string))
				return err
			},
		},
		{
			ID:       "admin.set-attribute",
			Priority: 100,
			Pattern:  mustAdminPattern("set-attribute~ <target:object@all> <attr:word> <value:number>"),
			Execute: func(ctx Context, args Args) error {
				if err := requireAdmin(ctx); err != nil {
					return err
				}
				return ops.SetAttribute(args["target"].(entity.Object), args["attr"].(string), args["value"].(int))
			},
		},
		{
			ID:       "admin.dump-room",
			Priority: 100,
			Pattern:  mustAdminPattern("dump-room~ <room:word?>"),
			Execute: func(ctx Context, args Args) error {
				if err := requireAdmin(ctx); err != nil {
					return err
				}
				room, _ := args["room"].(string)
				if room == "" {
					var err error
					room, err = ops.RoomRefFor(ctx.Actor.Location())
					if err != nil {
						return err
					}
				}
				dump, err := ops.DumpRoom(room)
				if err != nil {
					return err
				}
				reply(ctx, dump)
				return nil
			},
		},
		{
			ID:       "admin.teleport",
			Priority: 100,
			Pattern:  mustAdminPattern("teleport~ <dest:word>"),
			Execute: func(ctx Context, args Args) error {
				if err := requireAdmin(ctx); err != nil {
					return err
				}
				return ops.Teleport(ctx.Actor, args["dest"].(string))
			},
		},
		{
			ID:       "admin.initiate-copyover",
			Priority: 100,
			Pattern:  mustAdminPattern("initiate-copyover~"),
			Execute: func(ctx Context, args Args) error {
				if err := requireAdmin(ctx); err != nil {
					return err
				}
				return ops.InitiateCopyover()
			},
		},
	}
}

func requireAdmin(ctx Context) error {
	if !ctx.IsAdmin {
		return engineerr.New(engineerr.PermissionDenied, "admin command requires an admin character")
	}
	return nil
}

func mustAdminPattern(raw string) *Pattern {
	p, err := ParsePattern(raw)
	if err != nil {
		panic(err)
	}
	return p
}
