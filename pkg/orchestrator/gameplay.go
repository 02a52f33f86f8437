package orchestrator

import (
	"fmt"
	"strings"
	"time"

	"duskward/pkg/act"
	"duskward/pkg/character"
	"duskward/pkg/combat"
	"duskward/pkg/command"
	"duskward/pkg/coord"
	"duskward/pkg/engineerr"
	"duskward/pkg/entity"
)

// dispatchCommand builds a fresh command.Context snapshot for cs's mob
// and runs it through the command registry. Runs on the executor
// goroutine only, preserving the single-writer invariant: nothing
// downstream of Dispatch ever needs its own locking.
func (e *Engine) dispatchCommand(cs *connState, line string) {
	room := cs.mob.Location()
	var roomContents []entity.Object
	if room != nil {
		roomContents = room.Contents()
	}

	ctx := command.Context{
		Actor:        cs.mob,
		RoomContents: roomContents,
		IsAdmin:      cs.character != nil && cs.character.IsAdmin,
		Now:          time.Now(),
	}

	if err := e.Commands.Dispatch(line, ctx, ctx.Now); err != nil {
		e.metrics.RecordCommandDispatch("error")
		cs.session.Send(err.Error())
		return
	}
	e.metrics.RecordCommandDispatch("ok")
}

// recordAbilityUse advances actor's proficiency in abilityID by one
// use. A no-op for mobs that were never granted the ability at all
// (recordAbilityUse only moves an already-known ability along its
// curve, it never grants a new one).
func (e *Engine) recordAbilityUse(actor *entity.Mob, abilityID string) {
	if _, known := actor.Proficiency[abilityID]; !known {
		return
	}
	ab, ok := e.Abilities.Get(abilityID)
	if !ok {
		return
	}
	uses := e.abilities.RecordUse(uint64(actor.OID()), abilityID)
	actor.Proficiency[abilityID] = ab.ProficiencyForUses(uses)
}

// actContext builds an act.Context for the given actor/target pair,
// snapshotting the actor's current room as the broadcast audience.
func (e *Engine) actContext(actor, target *entity.Mob) act.Context {
	ctx := act.Context{User: e.actorFor(actor)}
	if loc := actor.Location(); loc != nil {
		ctx.Room = e.roomContentsFor(loc.Contents())
	}
	if target != nil {
		ctx.Target = e.actorFor(target)
	}
	return ctx
}

// registerGameplayCommands installs the baseline verb set: look,
// movement, say, get/drop/put, inventory, equip/unequip, equipment,
// attack, score, effects, busy, block, commands, and quit. Handlers
// close over the Engine so they can reach the
// dungeon registry, combat queue, and act fanout; none of them hold any
// state of their own beyond that closure.
func (e *Engine) registerGameplayCommands() error {
	cmds := []*command.Command{
		e.lookCommand(),
		e.moveCommand(),
		e.sayCommand(),
		e.getCommand(),
		e.dropCommand(),
		e.putCommand(),
		e.inventoryCommand(),
		e.equipCommand(),
		e.unequipCommand(),
		e.equipmentCommand(),
		e.attackCommand(),
		e.scoreCommand(),
		e.effectsCommand(),
		e.busyCommand(),
		e.blockCommand(),
		e.commandsCommand(),
		e.quitCommand(),
	}
	for _, c := range cmds {
		if err := e.Commands.Register(c); err != nil {
			return fmt.Errorf("orchestrator: registering gameplay command %s: %w", c.ID, err)
		}
	}
	return nil
}

func mustPattern(raw string) *command.Pattern {
	p, err := command.ParsePattern(raw)
	if err != nil {
		panic(fmt.Sprintf("orchestrator: invalid built-in pattern %q: %v", raw, err))
	}
	return p
}

// replyTo delivers text directly to the dispatching mob's connection,
// bypassing the act fanout for the purely informational single-recipient
// replies (room descriptions, inventory listing) that have no second or
// third-person rendering.
func (e *Engine) replyTo(actor *entity.Mob, text string) {
	cs := e.connForMob(actor.OID())
	if cs == nil {
		return
	}
	cs.session.Send(text)
}

func (e *Engine) lookCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.look",
		Pattern:  mustPattern("look~"),
		Aliases:  []string{"l"},
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			room := ctx.Actor.Location()
			if room == nil {
				return engineerr.New(engineerr.NotInRoom, "you are nowhere")
			}
			var b strings.Builder
			b.WriteString(room.Name())
			if desc := room.LongDescription(); desc != "" {
				b.WriteString("\n")
				b.WriteString(desc)
			}
			for _, obj := range room.Contents() {
				if obj.OID() == ctx.Actor.OID() {
					continue
				}
				b.WriteString("\n")
				if rd := obj.RoomDescription(); rd != "" {
					b.WriteString(rd)
				} else {
					b.WriteString(obj.Name())
				}
			}
			e.replyTo(ctx.Actor, b.String())
			return nil
		},
	}
}

// directionAliases lists every full name and standard abbreviation
// coord.ParseDirection accepts, so a bare "north" or "n" dispatches the
// move command directly without the player needing to type a "go"
// verb first.
var directionAliases = []string{
	"north", "n", "northeast", "ne", "east", "e", "southeast", "se",
	"south", "s", "southwest", "sw", "west", "w", "northwest", "nw",
	"up", "u", "down", "d",
}

func (e *Engine) moveCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.move",
		Pattern:  mustPattern("<dir:direction>"),
		Aliases:  directionAliases,
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			dir, _ := args["dir"].(coord.Direction)
			return e.movePlayer(ctx.Actor, dir)
		},
	}
}

func (e *Engine) sayCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.say",
		Pattern:  mustPattern("say~ <text:text>"),
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			text, _ := args["text"].(string)
			act.Act(act.Templates{
				User: fmt.Sprintf("You say, \"%s\"", text),
				Room: fmt.Sprintf("{User} says, \"%s\"", text),
			}, e.actContext(ctx.Actor, nil), act.Options{MessageGroup: act.Channels})
			return nil
		},
	}
}

func (e *Engine) getCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.get",
		Pattern:  mustPattern("get~ <item:item@room>"),
		Aliases:  []string{"take"},
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			item, _ := args["item"].(entity.Object)
			if err := entity.Attach(ctx.Actor, item); err != nil {
				return err
			}
			act.Act(act.Templates{
				User: fmt.Sprintf("You pick up %s.", item.Name()),
				Room: fmt.Sprintf("{User} picks up %s.", item.Name()),
			}, e.actContext(ctx.Actor, nil), act.Options{})
			return nil
		},
	}
}

func (e *Engine) dropCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.drop",
		Pattern:  mustPattern("drop~ <item:item@inventory>"),
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			item, _ := args["item"].(entity.Object)
			room := ctx.Actor.Location()
			if room == nil {
				return engineerr.New(engineerr.NotInRoom, "you have nowhere to drop that")
			}
			if err := entity.Attach(room, item); err != nil {
				return err
			}
			act.Act(act.Templates{
				User: fmt.Sprintf("You drop %s.", item.Name()),
				Room: fmt.Sprintf("{User} drops %s.", item.Name()),
			}, e.actContext(ctx.Actor, nil), act.Options{})
			return nil
		},
	}
}

func (e *Engine) putCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.put",
		Pattern:  mustPattern("put~ <item:item@inventory> in <container:item@all>"),
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			item, _ := args["item"].(entity.Object)
			dest, _ := args["container"].(entity.Object)
			if ctx.Actor.IsEquipped(item) {
				return engineerr.New(engineerr.AlreadyEquipped, "you must remove %s first", item.Name())
			}
			container, ok := dest.(entity.Container)
			if !ok || !container.CanContain() {
				return engineerr.New(engineerr.ParseError, "%s cannot hold anything", dest.Name())
			}
			if err := entity.Attach(container, item); err != nil {
				return err
			}
			act.Act(act.Templates{
				User: fmt.Sprintf("You put %s in %s.", item.Name(), container.Name()),
				Room: fmt.Sprintf("{User} puts %s in %s.", item.Name(), container.Name()),
			}, e.actContext(ctx.Actor, nil), act.Options{})
			return nil
		},
	}
}

// equipmentSlotOrder fixes a display order for the equipment listing,
// independent of map iteration order.
var equipmentSlotOrder = []entity.EquipmentSlot{
	entity.SlotHead, entity.SlotNeck, entity.SlotShoulders, entity.SlotChest,
	entity.SlotHands, entity.SlotFinger, entity.SlotWaist, entity.SlotLegs,
	entity.SlotFeet, entity.SlotMainHand, entity.SlotOffHand,
}

func (e *Engine) equipmentCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.equipment",
		Pattern:  mustPattern("equipment~"),
		Aliases:  []string{"gear", "eq"},
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			var b strings.Builder
			b.WriteString("You are wearing:")
			for _, slot := range equipmentSlotOrder {
				fmt.Fprintf(&b, "\n  %-10s ", slot)
				if item, ok := ctx.Actor.Equipped[slot]; ok {
					b.WriteString(item.Name())
				} else {
					b.WriteString("(empty)")
				}
			}
			e.replyTo(ctx.Actor, b.String())
			return nil
		},
	}
}

func (e *Engine) scoreCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.score",
		Pattern:  mustPattern("score~"),
		Aliases:  []string{"info", "me"},
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			mob := ctx.Actor
			var b strings.Builder
			fmt.Fprintf(&b, "%s, level %d %s %s\n", mob.Name(), mob.Level, mob.RaceID, mob.JobID)
			fmt.Fprintf(&b, "Health: %d/%d  Mana: %d/%d\n", mob.Health, mob.MaxHealth, mob.Mana, mob.MaxMana)
			fmt.Fprintf(&b, "Strength %d  Agility %d  Intelligence %d\n",
				mob.Primary.Strength, mob.Primary.Agility, mob.Primary.Intelligence)
			fmt.Fprintf(&b, "Attack %.0f  Defense %.0f  Crit %.0f%%  Avoidance %.0f%%",
				mob.Secondary.AttackPower, mob.Secondary.Defense, mob.Secondary.CritRate*100, mob.Secondary.Avoidance*100)
			if cs := e.connForMob(mob.OID()); cs != nil && cs.character != nil {
				stats := cs.character.Stats
				fmt.Fprintf(&b, "\nKills %d  Deaths %d", stats.Kills, stats.Deaths)
			}
			e.replyTo(mob, b.String())
			return nil
		},
	}
}

func (e *Engine) effectsCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.effects",
		Pattern:  mustPattern("effects~"),
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			active := ctx.Actor.Effects.Active()
			if len(active) == 0 {
				e.replyTo(ctx.Actor, "You have no active effects.")
				return nil
			}
			var b strings.Builder
			b.WriteString("Active effects:")
			for _, inst := range active {
				fmt.Fprintf(&b, "\n  %-20s ", inst.TemplateID)
				if inst.Permanent {
					b.WriteString("permanent")
				} else {
					b.WriteString(inst.RemainingDuration(ctx.Now).Round(time.Second).String())
				}
			}
			e.replyTo(ctx.Actor, b.String())
			return nil
		},
	}
}

// busyCommand toggles a character's busy-mode forwarding (character.
// Settings.BusyMode/CombatBusyMode/ForwardedGroups) and drains the
// queued backlog. It closes over the connState rather than just the
// Mob since busy state lives on the Character, not the Mob.
func (e *Engine) busyCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.busy",
		Pattern:  mustPattern("busy~ <action:word?> <mode:word?> <group:word?>"),
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			cs := e.connForMob(ctx.Actor.OID())
			if cs == nil || cs.character == nil {
				return engineerr.New(engineerr.Internal, "no character bound to this connection")
			}
			c := cs.character
			action, _ := args["action"].(string)
			mode, _ := args["mode"].(string)
			group, _ := args["group"].(string)

			switch strings.ToLower(action) {
			case "":
				e.replyTo(ctx.Actor, busyStatus(c))
			case "read":
				n := c.ReadQueuedMessages()
				e.replyTo(ctx.Actor, fmt.Sprintf("Delivered %d queued message(s).", n))
			case "on":
				c.Settings.BusyMode = true
				e.replyTo(ctx.Actor, "Busy mode on.")
			case "off":
				c.Settings.BusyMode = false
				e.replyTo(ctx.Actor, "Busy mode off.")
			case "combat":
				c.Settings.CombatBusyMode = strings.EqualFold(mode, "on")
				e.replyTo(ctx.Actor, busyStatus(c))
			case "forward", "unforward":
				grp, ok := character.ParseMessageGroup(mode)
				if !ok {
					grp, ok = character.ParseMessageGroup(group)
				}
				if !ok {
					return engineerr.New(engineerr.ParseError, "unknown message group")
				}
				if c.Settings.ForwardedGroups == nil {
					c.Settings.ForwardedGroups = make(map[character.MessageGroup]bool)
				}
				c.Settings.ForwardedGroups[grp] = action == "forward"
				e.replyTo(ctx.Actor, busyStatus(c))
			default:
				return engineerr.New(engineerr.ParseError, "busy: unknown action %q", action)
			}
			return nil
		},
	}
}

func busyStatus(c *character.Character) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Busy mode: %v  Combat busy mode: %v", c.Settings.BusyMode, c.Settings.CombatBusyMode)
	var forwarded []string
	for g, on := range c.Settings.ForwardedGroups {
		if on {
			forwarded = append(forwarded, string(g))
		}
	}
	if len(forwarded) > 0 {
		fmt.Fprintf(&b, "\nForwarding: %s", strings.Join(forwarded, ", "))
	}
	return b.String()
}

// blockCommand manages a character's per-username block list: with no
// argument it lists current blocks, with one it toggles that username's
// blocked status.
func (e *Engine) blockCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.block",
		Pattern:  mustPattern("block~ <username:word?>"),
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			cs := e.connForMob(ctx.Actor.OID())
			if cs == nil || cs.character == nil {
				return engineerr.New(engineerr.Internal, "no character bound to this connection")
			}
			c := cs.character
			username, _ := args["username"].(string)
			if username == "" {
				var b strings.Builder
				b.WriteString("Blocked players:")
				for name, blocked := range c.BlockList {
					if blocked {
						b.WriteString("\n  ")
						b.WriteString(name)
					}
				}
				e.replyTo(ctx.Actor, b.String())
				return nil
			}
			if c.IsBlocking(username) {
				c.Unblock(username)
				e.replyTo(ctx.Actor, fmt.Sprintf("You unblock %s.", username))
			} else {
				c.Block(username)
				e.replyTo(ctx.Actor, fmt.Sprintf("You block %s.", username))
			}
			return nil
		},
	}
}

func (e *Engine) commandsCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.commands",
		Pattern:  mustPattern("commands~"),
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			labels := e.Commands.Labels(ctx)
			e.replyTo(ctx.Actor, "Commands: "+strings.Join(labels, ", "))
			return nil
		},
	}
}

func (e *Engine) inventoryCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.inventory",
		Pattern:  mustPattern("inventory~"),
		Aliases:  []string{"i"},
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			var b strings.Builder
			b.WriteString("You are carrying:")
			for _, obj := range ctx.Actor.Contents() {
				b.WriteString("\n  ")
				b.WriteString(obj.Name())
			}
			e.replyTo(ctx.Actor, b.String())
			return nil
		},
	}
}

func (e *Engine) equipCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.equip",
		Pattern:  mustPattern("equip~ <item:item@inventory>"),
		Aliases:  []string{"wear", "wield"},
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			item, _ := args["item"].(entity.Object)
			wearable, ok := item.(entity.Wearable)
			if !ok {
				return engineerr.New(engineerr.ParseError, "you cannot wear that")
			}
			if err := ctx.Actor.Equip(wearable); err != nil {
				return err
			}
			e.replyTo(ctx.Actor, fmt.Sprintf("You equip %s.", item.Name()))
			return nil
		},
	}
}

func (e *Engine) unequipCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.unequip",
		Pattern:  mustPattern("unequip~ <slot:word>"),
		Aliases:  []string{"remove"},
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			slot, _ := args["slot"].(string)
			item, err := ctx.Actor.Unequip(entity.EquipmentSlot(slot))
			if err != nil {
				return err
			}
			e.replyTo(ctx.Actor, fmt.Sprintf("You remove %s.", item.Name()))
			return nil
		},
	}
}

func (e *Engine) attackCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.attack",
		Pattern:  mustPattern("attack~ <target:mob@room>"),
		Aliases:  []string{"kill", "hit"},
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			target, ok := args["target"].(entity.Object)
			if !ok {
				return engineerr.New(engineerr.ScopeMiss, "no such target")
			}
			targetMob, ok := target.(*entity.Mob)
			if !ok {
				return engineerr.New(engineerr.ParseError, "you cannot attack that")
			}
			combat.InitiateCombat(e.queue, ctx.Actor, targetMob)
			act.Act(act.Templates{
				User: fmt.Sprintf("You attack %s!", targetMob.Name()),
				Room: "{User} attacks {Target}!",
			}, e.actContext(ctx.Actor, targetMob), act.Options{MessageGroup: act.Combat})
			return nil
		},
	}
}

func (e *Engine) quitCommand() *command.Command {
	return &command.Command{
		ID:       "gameplay.quit",
		Pattern:  mustPattern("quit~"),
		Priority: 0,
		Execute: func(ctx command.Context, args command.Args) error {
			cs := e.connForMob(ctx.Actor.OID())
			if cs == nil {
				return nil
			}
			e.replyTo(ctx.Actor, "Goodbye.")
			cs.conn.Close()
			return nil
		},
	}
}
