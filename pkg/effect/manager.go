package effect

import (
	"time"

	"duskward/pkg/act"
	"duskward/pkg/attribute"
	"duskward/pkg/damage"
)

// Manager owns the active effect instances for exactly one mob. It is
// embedded by value in entity.Mob; nothing here touches pkg/entity
// directly, so callers hand it the ambient time and get back plain
// outcome values to apply themselves.
type Manager struct {
	ownerID   uint64
	instances []*Instance
}

// NewManager returns a Manager scoped to ownerID.
func NewManager(ownerID uint64) *Manager {
	return &Manager{ownerID: ownerID}
}

// Active returns the live (non-expired) instances, in application order.
func (m *Manager) Active() []*Instance {
	return m.instances
}

// Find returns the active instance for a template id, if any.
func (m *Manager) Find(templateID string) (*Instance, bool) {
	for _, inst := range m.instances {
		if inst.TemplateID == templateID {
			return inst, true
		}
	}
	return nil, false
}

// Add applies a template to the owner: if the template is not
// stackable and an instance of it is already active, the existing
// instance's duration/ticks are refreshed
// instead of adding a second instance. Otherwise a new Instance is
// created, registered with sched, and returned.
func (m *Manager) Add(sched *Scheduler, tmpl *Template, casterID uint64, hasCaster bool, now time.Time, overrides Overrides) *Instance {
	if !tmpl.Stackable {
		if existing, ok := m.Find(tmpl.ID); ok {
			m.refresh(sched, existing, tmpl, now, overrides)
			return existing
		}
	}

	duration := overrides.duration(tmpl)
	ticks := overrides.ticks(tmpl)
	interval := overrides.interval(tmpl)

	inst := &Instance{
		ID:         NewInstanceID(),
		TemplateID: tmpl.ID,
		Template:   tmpl,
		OwnerID:    m.ownerID,
		CasterID:   casterID,
		HasCaster:  hasCaster,
		AppliedAt:  now,
		Permanent:  tmpl.Permanent,
		State:      Active,
	}
	if !tmpl.Permanent {
		inst.ExpiresAt = now.Add(duration)
	}

	switch tmpl.Variant {
	case VariantDOT:
		inst.TicksRemaining = ticks
		inst.TickAmount = overrides.damage(tmpl)
		inst.NextTickAt = now.Add(interval)
	case VariantHOT:
		inst.TicksRemaining = ticks
		inst.TickAmount = overrides.heal(tmpl)
		inst.NextTickAt = now.Add(interval)
	case VariantShield:
		inst.RemainingAbsorption = tmpl.Absorption
	}

	m.instances = append(m.instances, inst)
	m.scheduleTimers(sched, inst)
	return inst
}

func (m *Manager) refresh(sched *Scheduler, inst *Instance, tmpl *Template, now time.Time, overrides Overrides) {
	sched.CancelInstance(inst.ID)

	duration := overrides.duration(tmpl)
	ticks := overrides.ticks(tmpl)
	interval := overrides.interval(tmpl)

	inst.AppliedAt = now
	inst.State = Active
	if !tmpl.Permanent {
		inst.ExpiresAt = now.Add(duration)
	}
	switch tmpl.Variant {
	case VariantDOT:
		inst.TicksRemaining = ticks
		inst.TickAmount = overrides.damage(tmpl)
		inst.NextTickAt = now.Add(interval)
	case VariantHOT:
		inst.TicksRemaining = ticks
		inst.TickAmount = overrides.heal(tmpl)
		inst.NextTickAt = now.Add(interval)
	case VariantShield:
		inst.RemainingAbsorption = tmpl.Absorption
	}
	m.scheduleTimers(sched, inst)
}

func (m *Manager) scheduleTimers(sched *Scheduler, inst *Instance) {
	if inst.TicksRemaining > 0 {
		sched.Schedule(inst.NextTickAt, inst.ID, m.ownerID, TickEvent)
	}
	if !inst.Permanent {
		sched.Schedule(inst.ExpiresAt, inst.ID, m.ownerID, ExpireEvent)
	}
}

// Remove cancels and discards an instance before its natural expiry
// (dispel, cleanse, owner destroyed).
func (m *Manager) Remove(sched *Scheduler, instanceID InstanceID) {
	sched.CancelInstance(instanceID)
	for i, inst := range m.instances {
		if inst.ID == instanceID {
			inst.State = Expired
			m.instances = append(m.instances[:i], m.instances[i+1:]...)
			return
		}
	}
}

// RemoveAll cancels every active instance, used when the owning mob is
// destroyed.
func (m *Manager) RemoveAll(sched *Scheduler) {
	sched.CancelOwner(m.ownerID)
	for _, inst := range m.instances {
		inst.State = Expired
	}
	m.instances = nil
}

// CasterDied flips CasterAbsent on every instance cast by casterID; DoT
// templates typically end early on caster death while passives and
// shields granted by allies continue.
func (m *Manager) CasterDied(casterID uint64) {
	for _, inst := range m.instances {
		if inst.HasCaster && inst.CasterID == casterID {
			inst.CasterAbsent = true
		}
	}
}

// TickOutcome describes one DoT/HoT pulse for the caller to apply.
type TickOutcome struct {
	Instance *Instance
	Amount   float64
	IsHeal   bool
	OnTick   act.Templates
}

// ExpireOutcome describes an instance reaching its deadline.
type ExpireOutcome struct {
	Instance *Instance
	OnExpire act.Templates
}

// HandleEvent applies one drained TimerEvent against this manager's
// instances, returning a tick outcome, an expire outcome, or neither if
// the instance was already removed out from under the event (e.g. a
// dispel raced the timer). Exactly one of the two return values is
// non-nil when ok is true.
func (m *Manager) HandleEvent(sched *Scheduler, ev TimerEvent, now time.Time) (*TickOutcome, *ExpireOutcome, bool) {
	inst := m.instanceByID(ev.InstanceID)
	if inst == nil {
		return nil, nil, false
	}

	switch ev.Kind {
	case TickEvent:
		return m.handleTick(sched, inst), nil, true
	case ExpireEvent:
		return nil, m.handleExpire(sched, inst), true
	default:
		return nil, nil, false
	}
}

func (m *Manager) instanceByID(id InstanceID) *Instance {
	for _, inst := range m.instances {
		if inst.ID == id {
			return inst
		}
	}
	return nil
}

func (m *Manager) handleTick(sched *Scheduler, inst *Instance) *TickOutcome {
	tmpl := inst.Template
	outcome := &TickOutcome{Instance: inst, Amount: inst.TickAmount, IsHeal: tmpl.Variant == VariantHOT, OnTick: tmpl.OnTick}

	inst.TicksRemaining--
	if inst.TicksRemaining > 0 {
		inst.NextTickAt = inst.NextTickAt.Add(tmpl.Interval)
		sched.Schedule(inst.NextTickAt, inst.ID, m.ownerID, TickEvent)
	}
	return outcome
}

func (m *Manager) handleExpire(sched *Scheduler, inst *Instance) *ExpireOutcome {
	outcome := &ExpireOutcome{Instance: inst, OnExpire: inst.Template.OnExpire}
	m.Remove(sched, inst.ID)
	return outcome
}

// PassiveBonus is the aggregated contribution of every active passive
// instance, consumed by a mob's derived-stat recomputation.
type PassiveBonus struct {
	Attribute attribute.Primary
	Secondary attribute.Base
	Health    int
	Mana      int
}

// AggregatePassives sums every active passive instance's bonus. Shield,
// DoT and HoT instances contribute nothing here.
func (m *Manager) AggregatePassives() PassiveBonus {
	var bonus PassiveBonus
	for _, inst := range m.instances {
		if inst.Template.Variant != VariantPassive {
			continue
		}
		bonus.Attribute = bonus.Attribute.Add(inst.Template.AttributeBonus)
		bonus.Secondary = bonus.Secondary.Add(inst.Template.SecondaryBonus)
		bonus.Health += inst.Template.ResourceBonus.Health
		bonus.Mana += inst.Template.ResourceBonus.Mana
	}
	return bonus
}

// AbsorbDamage runs incoming damage through every active shield instance
// that accepts its damage type, oldest shield first (application order):
// absorbed = min(remainingAbsorption, incoming*rate, maxPerHit). A shield
// instance whose RemainingAbsorption reaches zero is spent and removed
// immediately rather than waiting for its natural expiry timer. It
// returns the damage left after absorption.
func (m *Manager) AbsorbDamage(dt damage.Type, incoming float64) float64 {
	remaining := incoming
	spent := m.instances[:0]
	for _, inst := range m.instances {
		tmpl := inst.Template
		if remaining > 0 && tmpl.Variant == VariantShield && inst.RemainingAbsorption > 0 && tmpl.AppliesToDamageType(dt) {
			rate := tmpl.AbsorptionRate
			if rate <= 0 {
				rate = 1.0
			}
			absorbed := remaining * rate
			if inst.RemainingAbsorption < absorbed {
				absorbed = inst.RemainingAbsorption
			}
			if tmpl.MaxAbsorptionPerHit > 0 && absorbed > tmpl.MaxAbsorptionPerHit {
				absorbed = tmpl.MaxAbsorptionPerHit
			}
			inst.RemainingAbsorption -= absorbed
			remaining -= absorbed
		}
		if tmpl.Variant == VariantShield && inst.RemainingAbsorption <= 0 {
			inst.State = Expired
			continue
		}
		spent = append(spent, inst)
	}
	m.instances = spent
	return remaining
}

// Prune removes every instance already marked Expired, e.g. after an
// external force-expire. Active timers are left to the scheduler.
func (m *Manager) Prune() {
	live := m.instances[:0]
	for _, inst := range m.instances {
		if inst.State != Expired {
			live = append(live, inst)
		}
	}
	m.instances = live
}
