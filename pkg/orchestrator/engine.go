// Package orchestrator wires every other package into the running MUD
// server: one Engine owns the dungeon registry, the frozen
// reference-data registries (damage types live in pkg/damage's
// package-level constants; archetypes, abilities, and effect templates
// are loaded here), the combat queue, the active character table, and
// the single cooperative executor goroutine that is the only goroutine
// ever allowed to mutate world state.
//
// NewEngine, Bootstrap and Run follow a construction sequence of load
// config, build dependent subsystems, attach metrics/persistence, then
// start background loops.
package orchestrator

import (
	"fmt"
	"sync"
	"time"

	"duskward/pkg/ability"
	"duskward/pkg/archetype"
	"duskward/pkg/character"
	"duskward/pkg/combat"
	"duskward/pkg/command"
	"duskward/pkg/config"
	"duskward/pkg/dungeon"
	"duskward/pkg/effect"
	"duskward/pkg/entity"
	"duskward/pkg/flavor"
	"duskward/pkg/persistence"
	"duskward/pkg/telemetry"

	"github.com/sirupsen/logrus"
)

// inboundCapacity bounds how many decoded lines may wait for the
// executor before a connection's ReadLoop blocks on sending the next
// one; sized generously since a single line enqueue is cheap and the
// executor drains it well within one tick under normal load.
const inboundCapacity = 256

// Engine is the single owner of all live world state. Every field it
// exposes is mutated only from the executor goroutine started by Run:
// all mutation of world state happens on one cooperative executor
// goroutine. Values handed out to other goroutines (Session, Conn) are
// the only state permitted to cross that boundary, and they carry
// their own synchronization.
type Engine struct {
	cfg     *config.Config
	metrics *telemetry.Metrics
	store   *persistence.FileStore

	Archetypes *archetype.Registry
	Abilities  *ability.Registry
	Effects    *effect.Registry
	Commands   *command.Registry
	Dungeons   *dungeon.Registry

	scheduler *effect.Scheduler
	queue     *combat.Queue
	roller    *combat.Roller

	// abilities tracks per-mob raw use counts, the input the
	// proficiency curve derives mob.Proficiency's percentages from.
	abilities *ability.Tracker

	flavorGen *flavor.Generator

	// mobs indexes every live mob by OID, race/job archetype lookups
	// aside, so combat's Resolver interface and effect owner lookups
	// don't need to search every room in every dungeon.
	mobs map[entity.OID]*entity.Mob

	// wandering holds every NPC mob eligible for wander AI consideration.
	wandering []entity.OID

	// conns holds every live connection's per-connection state, keyed by
	// transport.Conn.ID. Only the executor goroutine reads or writes
	// this map; connection goroutines communicate through inbound jobs.
	conns map[string]*connState

	// characters indexes loaded accounts by username for the login
	// state machine's lookup callback.
	characters map[string]*character.Character

	inbound chan job

	logger *logrus.Entry

	startedAt time.Time
	mu        sync.Mutex // guards startedAt/shutdown bookkeeping only
	shutdown  chan struct{}
}

// job is one unit of executor work: a closure over whatever connection
// or timer fired it. Routing every mutation through this channel is
// what makes the single-writer invariant mechanical rather than
// convention: nothing outside an executor job ever touches mobs, dungeons, the
// combat queue, or connection state directly.
type job func(e *Engine)

// NewEngine constructs an Engine from configuration and telemetry but
// does not yet populate any registry or start the executor; call
// Bootstrap then Run.
func NewEngine(cfg *config.Config, metrics *telemetry.Metrics) (*Engine, error) {
	store, err := persistence.NewFileStore(cfg.DataDir)
	if err != nil {
		return nil, fmt.Errorf("orchestrator: creating file store: %w", err)
	}

	return &Engine{
		cfg:        cfg,
		metrics:    metrics,
		store:      store,
		Archetypes: archetype.NewRegistry(),
		Abilities:  ability.NewRegistry(),
		Effects:    effect.NewRegistry(),
		Commands:   command.NewRegistry(),
		Dungeons:   dungeon.NewRegistry(),
		scheduler:  effect.NewScheduler(),
		queue:      combat.NewQueue(),
		roller:     combat.NewRoller(),
		abilities:  ability.NewTracker(),
		flavorGen:  flavor.NewGenerator(time.Now().UnixNano()),
		mobs:       make(map[entity.OID]*entity.Mob),
		conns:      make(map[string]*connState),
		characters: make(map[string]*character.Character),
		inbound:    make(chan job, inboundCapacity),
		logger:     logrus.WithField("component", "orchestrator"),
		shutdown:   make(chan struct{}),
	}, nil
}

// Bootstrap runs the fixed registration order: damage types ->
// archetypes -> abilities -> effects -> commands -> dungeons.
// Damage types are package-level constants in pkg/damage and need no
// registry step; this still logs the phase so the startup sequence
// reads in the documented order.
func (e *Engine) Bootstrap() error {
	e.logger.Info("registering damage types (built-in, no registry step)")

	if err := e.registerArchetypes(); err != nil {
		return fmt.Errorf("orchestrator: registering archetypes: %w", err)
	}
	if err := e.registerAbilities(); err != nil {
		return fmt.Errorf("orchestrator: registering abilities: %w", err)
	}
	if err := e.registerEffects(); err != nil {
		return fmt.Errorf("orchestrator: registering effects: %w", err)
	}
	if err := e.registerCommands(); err != nil {
		return fmt.Errorf("orchestrator: registering commands: %w", err)
	}
	if err := e.registerDungeons(); err != nil {
		return fmt.Errorf("orchestrator: registering dungeons: %w", err)
	}

	e.logger.Info("bootstrap complete")
	return nil
}

// registerCommands wires the baseline gameplay command set plus the
// admin operation set (pkg/command/admin.go) against this Engine as
// their AdminOps/Reply implementation.
func (e *Engine) registerCommands() error {
	if err := e.registerGameplayCommands(); err != nil {
		return err
	}
	return command.RegisterAdminCommands(e.Commands, (*adminOps)(e), e.adminReply)
}
