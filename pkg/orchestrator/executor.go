package orchestrator

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"duskward/pkg/act"
	"duskward/pkg/combat"
	"duskward/pkg/damage"
	"duskward/pkg/dungeon"
	"duskward/pkg/effect"
	"duskward/pkg/entity"
	"duskward/pkg/transport"

	"golang.org/x/exp/slices"
)

// unarmedHit/unarmedPower stand in for a mob's attack when nothing is
// equipped in the main hand, the baseline unarmed strike every mob
// falls back to.
var unarmedHit = entity.HitType{Verb: "hit", VerbThirdPerson: "hits", DamageType: damage.Physical}

const unarmedPower = 2.0

// meleeStrikeAbilityID is the baseline attack ability register.go
// grants every job archetype, so every attempted melee round advances it.
const meleeStrikeAbilityID = "melee-strike"

// Run starts the websocket listener and every background tick loop,
// then blocks draining the executor's inbound job queue until ctx is
// canceled or RequestShutdown fires. It is the only place the
// single-writer invariant is enforced top to bottom: nothing below
// Run's own loop body ever touches mobs, conns, Dungeons, or the combat
// queue except through a job sent on e.inbound.
func (e *Engine) Run(ctx context.Context) error {
	e.startedAt = time.Now()

	if err := e.LoadAll(); err != nil {
		return fmt.Errorf("orchestrator: loading world snapshot: %w", err)
	}
	e.seedFlavorCorpora()

	listener := transport.NewListener(e.cfg, e.metrics)
	mux := http.NewServeMux()
	mux.Handle("/ws", listener.ServeHTTP(e.HandleConnection))
	mux.Handle("/metrics", e.metrics.Handler())

	httpServer := &http.Server{
		Addr:    fmt.Sprintf(":%d", e.cfg.ServerPort),
		Handler: mux,
	}

	serveErr := make(chan error, 1)
	go func() {
		e.logger.WithField("addr", httpServer.Addr).Info("listening")
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			serveErr <- err
			return
		}
		serveErr <- nil
	}()

	stopTickers := e.startTickers()
	defer stopTickers()

	for {
		select {
		case j := <-e.inbound:
			j(e)
		case err := <-serveErr:
			e.RequestShutdown()
			return err
		case <-ctx.Done():
			return e.Shutdown(context.Background())
		case <-e.shutdown:
			return e.shutdownServer(httpServer)
		}
	}
}

// shutdownServer is Shutdown's body once the executor loop itself has
// already decided to stop; it still has to tear the HTTP server down
// within the configured grace period.
func (e *Engine) shutdownServer(httpServer *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), e.cfg.ShutdownTimeout)
	defer cancel()
	return httpServer.Shutdown(ctx)
}

// RequestShutdown signals Run's select loop to exit on its next pass.
// Safe to call from any goroutine; closing an already-closed channel
// would panic, so repeated calls are guarded by mu.
func (e *Engine) RequestShutdown() {
	e.mu.Lock()
	defer e.mu.Unlock()
	select {
	case <-e.shutdown:
	default:
		close(e.shutdown)
	}
}

// Shutdown requests a stop, then waits until cfg.ShutdownGracePeriod
// has elapsed or ctx is done, and returns nil. It does not track
// whether queued inbound jobs have drained.
func (e *Engine) Shutdown(ctx context.Context) error {
	e.RequestShutdown()
	grace, cancel := context.WithTimeout(ctx, e.cfg.ShutdownGracePeriod)
	defer cancel()
	<-grace.Done()
	return nil
}

// startTickers launches one goroutine per background cadence (combat
// rounds, effect ticks, wander AI, shop restock), each of which only
// ever reaches world state by enqueuing a job. It returns a stop
// function that halts all of them.
func (e *Engine) startTickers() func() {
	stop := make(chan struct{})
	tickers := []*time.Ticker{
		e.startTicker(e.cfg.CombatRoundInterval, stop, e.runCombatRound),
		e.startTicker(e.cfg.EffectTickQuantum, stop, e.runEffectTicks),
		e.startTicker(e.cfg.MobWanderInterval, stop, e.runMobWander),
		e.startTicker(e.cfg.ShopRestockInterval, stop, e.runShopRestock),
		e.startTicker(e.cfg.AutoSaveInterval, stop, e.runAutoSave),
	}
	return func() {
		close(stop)
		for _, t := range tickers {
			t.Stop()
		}
	}
}

func (e *Engine) startTicker(interval time.Duration, stop <-chan struct{}, enqueue func()) *time.Ticker {
	t := time.NewTicker(interval)
	go func() {
		for {
			select {
			case <-t.C:
				enqueue()
			case <-stop:
				return
			}
		}
	}()
	return t
}

// runCombatRound enqueues one process-combat-round pass. The round
// itself runs on the executor goroutine (via the enqueued job); only
// the fanout of its RoundOutcomes and the metrics recording happen
// there too, preserving the single-writer invariant end to end.
func (e *Engine) runCombatRound() {
	e.inbound <- func(e *Engine) {
		start := time.Now()
		outcomes := combat.Round(e.queue, e.roller, e, unarmedHit, unarmedPower)
		for _, o := range outcomes {
			e.applyRoundOutcome(o)
		}
		e.metrics.RecordCombatRound()
		e.metrics.ObserveTick("combat_round", time.Since(start))
	}
}

func (e *Engine) applyRoundOutcome(o combat.RoundOutcome) {
	attacker, ok := e.mobs[o.AttackerID]
	if !ok {
		return
	}
	defender, ok := e.mobs[o.DefenderID]
	if !ok {
		return
	}

	if !o.Hit.Attempted {
		return
	}
	e.recordAbilityUse(attacker, meleeStrikeAbilityID)
	result := "miss"
	switch {
	case !o.Hit.Hit:
		result = "miss"
	case o.Hit.Lethal:
		result = "lethal"
	case o.Hit.Crit:
		result = "crit"
	default:
		result = "hit"
	}
	e.metrics.RecordCombatHit(result)

	ctx := e.actContext(attacker, defender)
	switch {
	case !o.Hit.Hit:
		act.Act(act.Templates{
			User:   fmt.Sprintf("You miss %s.", defender.Name()),
			Target: fmt.Sprintf("%s misses you.", attacker.Name()),
			Room:   "{User} misses {Target}.",
		}, ctx, act.Options{MessageGroup: act.Combat})
	default:
		act.Act(act.Templates{
			User:   fmt.Sprintf("You hit %s for %.0f damage.", defender.Name(), o.Hit.Damage),
			Target: fmt.Sprintf("%s hits you for %.0f damage.", attacker.Name(), o.Hit.Damage),
			Room:   "{User} hits {Target}.",
		}, ctx, act.Options{MessageGroup: act.Combat})
	}

	if o.Died {
		act.Act(act.Templates{
			Room: fmt.Sprintf("%s falls to the ground, dead.", defender.Name()),
		}, ctx, act.Options{MessageGroup: act.Combat})
		e.destroyMob(defender)
	}
}

// runEffectTicks enqueues one drain of every timer due by now. Each
// mob's own effect.Manager applies the tick/expire against itself; this
// job's role is only to route the scheduler-level TimerEvent to the
// right owner and fan its outcome out.
func (e *Engine) runEffectTicks() {
	e.inbound <- func(e *Engine) {
		start := time.Now()
		now := time.Now()
		for _, ev := range e.scheduler.DrainDue(now) {
			mob, ok := e.mobs[entity.OID(ev.OwnerID)]
			if !ok {
				continue
			}
			tick, expire, ok := mob.Effects.HandleEvent(e.scheduler, ev, now)
			if !ok {
				continue
			}
			if tick != nil {
				e.applyEffectTick(mob, tick)
			}
			if expire != nil {
				e.applyEffectExpire(mob, expire)
			}
		}
		e.metrics.ObserveTick("effect_drain", time.Since(start))
	}
}

func (e *Engine) applyEffectTick(mob *entity.Mob, tick *effect.TickOutcome) {
	if tick.IsHeal {
		mob.Heal(tick.Amount)
	} else {
		amount := mob.Effects.AbsorbDamage(tick.Instance.Template.DamageType, tick.Amount)
		mob.ApplyDamage(amount)
	}
	e.metrics.RecordEffectTick(tick.Instance.TemplateID)
	if tick.OnTick != (act.Templates{}) {
		act.Act(tick.OnTick, e.actContext(mob, nil), act.Options{MessageGroup: act.Combat})
	}
	if !mob.IsAlive() {
		e.applyDeath(mob)
	}
}

func (e *Engine) applyEffectExpire(mob *entity.Mob, expire *effect.ExpireOutcome) {
	e.metrics.RecordEffectExpire(expire.Instance.TemplateID)
	if expire.OnExpire != (act.Templates{}) {
		act.Act(expire.OnExpire, e.actContext(mob, nil), act.Options{MessageGroup: act.Combat})
	}
}

func (e *Engine) applyDeath(mob *entity.Mob) {
	combat.HandleDeath(e.queue, mob)
	act.Act(act.Templates{Room: fmt.Sprintf("%s falls to the ground, dead.", mob.Name())},
		e.actContext(mob, nil), act.Options{MessageGroup: act.Combat})
	e.destroyMob(mob)
}

// runMobWander enqueues one pass of idle ambiance for wandering NPCs.
// golang.org/x/exp/slices sorts the candidate OID list so the job's
// iteration order is deterministic across runs despite mobs.wandering
// accumulating in whatever order registerMob happened to run (see
// DESIGN.md for why this lives here rather than in
// pkg/dungeon/pkg/effect).
func (e *Engine) runMobWander() {
	e.inbound <- func(e *Engine) {
		candidates := append([]entity.OID(nil), e.wandering...)
		slices.Sort(candidates)
		for _, id := range candidates {
			mob, ok := e.mobs[id]
			if !ok || mob.InCombat {
				continue
			}
			line, err := e.flavorGen.Generate("wander")
			if err != nil {
				continue
			}
			act.Act(act.Templates{Room: fmt.Sprintf("%s %s", mob.Name(), line)},
				e.actContext(mob, nil), act.Options{})
		}
	}
}

// runShopRestock enqueues one deficit-driven respawn pass across every
// registered dungeon's reset rules: once a reset's live object count
// falls below MinCount, it spawns fresh ones to fill the gap.
func (e *Engine) runShopRestock() {
	e.inbound <- func(e *Engine) {
		for _, d := range e.Dungeons.All() {
			for _, reset := range d.Resets.All() {
				deficit := d.Resets.Deficit(reset.ID)
				for i := 0; i < deficit; i++ {
					e.respawnReset(d, reset)
				}
			}
		}
	}
}

func (e *Engine) respawnReset(d *dungeon.Dungeon, reset *dungeon.Reset) {
	obj, err := (*adminOps)(e).SpawnTemplate(reset.RoomRef, reset.TemplateID)
	if err != nil {
		e.logger.WithError(err).WithField("reset_id", reset.ID).Warn("reset respawn failed")
		return
	}
	d.Resets.RecordSpawn(reset.ID, obj.OID())
}

// runAutoSave enqueues a SaveAll pass. Persistence itself is not part
// of the single-writer world-mutation surface (SaveAll only reads
// e.characters, never mutates it), but it still runs as a job on the
// executor's inbound channel to snapshot the character map at a
// consistent point rather than racing a concurrent login.
func (e *Engine) runAutoSave() {
	e.inbound <- func(e *Engine) {
		if err := e.SaveAll(); err != nil {
			e.logger.WithError(err).Warn("autosave failed")
		}
	}
}

// seedFlavorCorpora trains the Markov generator's starting corpora. A
// full content pipeline would load these from pkg/persistence YAML
// alongside the dungeon data; this in-code seed is enough ambiance to
// exercise the wander ticker.
func (e *Engine) seedFlavorCorpora() {
	e.flavorGen.Train("wander", []string{
		"shuffles its feet and glances around.",
		"mutters something under its breath.",
		"stretches and yawns.",
		"eyes the nearest exit.",
	})
}
