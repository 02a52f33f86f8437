package command

import (
	"sort"
	"strings"
	"time"

	"duskward/pkg/engineerr"
)

// Handler executes a matched command against ctx and its parsed args.
type Handler func(ctx Context, args Args) error

// ErrorHandler is invoked with the dispatch failure reason when no
// candidate command parses the input line.
type ErrorHandler func(ctx Context, reason string)

// Command is one registered pattern, its execution handler, and its
// dispatch metadata.
type Command struct {
	ID       string
	Pattern  *Pattern
	Aliases  []string
	Priority int
	Cooldown time.Duration

	// AbilityID, if set, gates this command on mob.knowsAbility(id):
	// mobs without the ability see it as if the command does not exist.
	AbilityID string

	Execute Handler
	OnError ErrorHandler
}

// firstLiteral returns the command's leading literal token, used for
// the first-pass candidate filter.
func (c *Command) firstLiteral() (string, bool) {
	if len(c.Pattern.Tokens) == 0 {
		return "", false
	}
	t := c.Pattern.Tokens[0]
	if t.kind == tokLiteral {
		return t.words[0], true
	}
	return "", false
}

// Registry holds every registered command and runs dispatch.
type Registry struct {
	commands []*Command
	cooldown *Tracker
}

// NewRegistry returns an empty command registry.
func NewRegistry() *Registry {
	return &Registry{cooldown: NewTracker()}
}

// Register adds a command, rejecting a duplicate id.
func (r *Registry) Register(c *Command) error {
	for _, existing := range r.commands {
		if existing.ID == c.ID {
			return engineerr.New(engineerr.Internal, "command id %q already registered", c.ID)
		}
	}
	r.commands = append(r.commands, c)
	return nil
}

// knowsAbility reports whether the presence of an AbilityID gate is
// satisfied for ctx.Actor; commands without a gate always pass.
func knowsAbility(c *Command, ctx Context) bool {
	if c.AbilityID == "" {
		return true
	}
	_, known := ctx.Actor.Proficiency[c.AbilityID]
	return known
}

// candidates returns every command whose first literal or alias is a
// prefix match for firstWord and whose ability gate (if any) passes,
// sorted by (priority desc, specificity desc, declaration order).
func (r *Registry) candidates(firstWord string, ctx Context) []*Command {
	firstWord = strings.ToLower(firstWord)
	var out []*Command
	for _, c := range r.commands {
		if !knowsAbility(c, ctx) {
			continue
		}
		if lit, ok := c.firstLiteral(); ok && strings.HasPrefix(lit, firstWord) {
			out = append(out, c)
			continue
		}
		for _, alias := range c.Aliases {
			if strings.HasPrefix(strings.ToLower(alias), firstWord) {
				out = append(out, c)
				break
			}
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Priority != out[j].Priority {
			return out[i].Priority > out[j].Priority
		}
		return out[i].Pattern.Specificity > out[j].Pattern.Specificity
	})
	return out
}

// Labels returns the display verb for every command ctx.Actor currently
// has access to: its first literal token, or its bare ID for a pattern
// that opens on an argument (e.g. the directional move commands). An
// "admin."-prefixed ID is omitted unless ctx.IsAdmin, mirroring the
// admin set's own naming convention rather than adding a separate flag.
func (r *Registry) Labels(ctx Context) []string {
	var out []string
	for _, c := range r.commands {
		if strings.HasPrefix(c.ID, "admin.") && !ctx.IsAdmin {
			continue
		}
		if !knowsAbility(c, ctx) {
			continue
		}
		if lit, ok := c.firstLiteral(); ok {
			out = append(out, lit)
		} else {
			out = append(out, c.ID)
		}
	}
	sort.Strings(out)
	return out
}

// Dispatch trims and lowercases the first token of line, collects
// candidate commands, and tries each in priority/specificity order. The
// first command whose pattern parses cleanly executes, subject to its
// cooldown. If no candidate parses, the best-ranked candidate's
// OnError runs with the failure reason.
func (r *Registry) Dispatch(line string, ctx Context, now time.Time) error {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	firstWord := line
	if sp := strings.IndexByte(line, ' '); sp >= 0 {
		firstWord = line[:sp]
	}

	candidates := r.candidates(firstWord, ctx)
	if len(candidates) == 0 {
		return engineerr.New(engineerr.ParseError, "no command matches %q", firstWord)
	}

	for _, c := range candidates {
		args, ok := matchPattern(c.Pattern, line, ctx, c.Aliases)
		if !ok {
			continue
		}
		if !r.cooldown.Ready(ctx.Actor.OID(), c.ID, now, c.Cooldown) {
			if c.OnError != nil {
				c.OnError(ctx, "on cooldown")
			}
			return engineerr.New(engineerr.OnCooldown, "%s is on cooldown", c.ID)
		}
		r.cooldown.Record(ctx.Actor.OID(), c.ID, now)
		return c.Execute(ctx, args)
	}

	best := candidates[0]
	if best.OnError != nil {
		best.OnError(ctx, "syntax not understood")
	}
	return engineerr.New(engineerr.ParseError, "no candidate for %q parsed", line)
}
