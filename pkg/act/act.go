// Package act implements the message-fanout primitive described in spec
// §4.4: templated third/second-person rendering split across a user
// message, a target message, and a room broadcast, with per-observer
// visibility substitution and a visibility-aware "Someone" fallback.
//
// act is deliberately generic: it depends on nothing from pkg/entity or
// pkg/character so that every package needing to fan out a message
// (combat, effect, command) can import it without cycling back through
// the world model. Callers satisfy the small Actor/RoomContents
// interfaces with their own Mob/Character types.
package act

import "strings"

// MessageGroup controls busy-mode queueing and channel filtering on the
// receiving character.
type MessageGroup string

// The seven message groups a character's delivery settings can filter on.
const (
	Prompt          MessageGroup = "PROMPT"
	System          MessageGroup = "SYSTEM"
	CommandResponse MessageGroup = "COMMAND_RESPONSE"
	Info            MessageGroup = "INFO"
	Combat          MessageGroup = "COMBAT"
	Channels        MessageGroup = "CHANNELS"
	Action          MessageGroup = "ACTION"
)

// Actor is anything act can address a rendered message to or substitute
// into a template: a Mob with (optionally) a bound Character.
type Actor interface {
	// ActID returns a stable identity used for exclusion/self comparisons.
	ActID() uint64
	// ActDisplayName returns the name substituted for {User}/{Target}.
	ActDisplayName() string
	// HasCharacter reports whether a message can actually be delivered
	// (NPCs without a bound character never receive sends).
	HasCharacter() bool
	// Deliver routes a rendered message through the character's message
	// pipeline (busy-mode queueing lives downstream of this call).
	Deliver(text string, group MessageGroup)
}

// RoomContents exposes the snapshot of observers present at act-call
// entry; the room broadcast iterates a snapshot taken at call entry so
// objects added mid-fanout are not notified.
type RoomContents interface {
	Observers() []Actor
}

// Templates holds the optional per-recipient message templates. An empty
// string means "no message sent to this recipient."
//
// Supported placeholders: {User}, {user}, {Target}, {target}.
type Templates struct {
	User   string
	Target string
	Room   string
}

// Context is the user/target/room triple a Templates set renders
// against. Target may be nil for self-directed or untargeted actions.
type Context struct {
	User   Actor
	Target Actor
	Room   RoomContents
}

// Options configures fanout behavior.
type Options struct {
	// MessageGroup defaults to Action when unset.
	MessageGroup MessageGroup

	// VisibleToUser/VisibleToTarget decide, per receiving observer,
	// whether that observer can see the user/target participant (and so
	// whether their name or "Someone"/"someone" is substituted). A nil
	// predicate means always visible.
	VisibleToUser   func(observer Actor) bool
	VisibleToTarget func(observer Actor) bool

	// ExcludeUser/ExcludeTarget control whether the room broadcast also
	// reaches the user/target; both default to true since they already
	// receive their own dedicated message.
	ExcludeUser   *bool
	ExcludeTarget *bool
}

func (o Options) group() MessageGroup {
	if o.MessageGroup == "" {
		return Action
	}
	return o.MessageGroup
}

func (o Options) excludeUser() bool {
	if o.ExcludeUser == nil {
		return true
	}
	return *o.ExcludeUser
}

func (o Options) excludeTarget() bool {
	if o.ExcludeTarget == nil {
		return true
	}
	return *o.ExcludeTarget
}

func visible(pred func(Actor) bool, observer Actor) bool {
	if pred == nil {
		return true
	}
	return pred(observer)
}

// Act performs the fanout: up to one message to the user, one to the
// target (if distinct and present), and one per room observer not
// excluded. All delivery goes through Actor.Deliver, which on the
// character side is character.Character.SendMessage.
func Act(templates Templates, ctx Context, opts Options) {
	group := opts.group()

	if templates.User != "" && ctx.User != nil && ctx.User.HasCharacter() {
		rendered := render(templates.User, ctx.User, ctx.Target, true, true)
		ctx.User.Deliver(rendered, group)
	}

	hasDistinctTarget := ctx.Target != nil && ctx.User != nil && ctx.Target.ActID() != ctx.User.ActID()
	if templates.Target != "" && hasDistinctTarget && ctx.Target.HasCharacter() {
		rendered := render(templates.Target, ctx.User, ctx.Target, true, true)
		ctx.Target.Deliver(rendered, group)
	}

	if templates.Room == "" || ctx.Room == nil {
		return
	}
	for _, observer := range ctx.Room.Observers() {
		if !observer.HasCharacter() {
			continue
		}
		if ctx.User != nil && opts.excludeUser() && observer.ActID() == ctx.User.ActID() {
			continue
		}
		if ctx.Target != nil && opts.excludeTarget() && observer.ActID() == ctx.Target.ActID() {
			continue
		}
		userVisible := visible(opts.VisibleToUser, observer)
		targetVisible := visible(opts.VisibleToTarget, observer)
		rendered := render(templates.Room, ctx.User, ctx.Target, userVisible, targetVisible)
		observer.Deliver(rendered, group)
	}
}

// render substitutes {User}/{user}/{Target}/{target}, falling back to
// "Someone"/"someone" when the corresponding participant is hidden from
// this particular recipient.
func render(tmpl string, user, target Actor, userVisible, targetVisible bool) string {
	userName := "Someone"
	userNameLower := "someone"
	if user != nil {
		if userVisible {
			userName = user.ActDisplayName()
			userNameLower = userName
		}
	}

	targetName := "Someone"
	targetNameLower := "someone"
	if target != nil {
		if targetVisible {
			targetName = target.ActDisplayName()
			targetNameLower = targetName
		}
	}

	replacer := strings.NewReplacer(
		"{User}", userName,
		"{user}", userNameLower,
		"{Target}", targetName,
		"{target}", targetNameLower,
	)
	return replacer.Replace(tmpl)
}
