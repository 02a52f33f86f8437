package effect

import (
	"sync/atomic"
	"time"
)

// State is the effect-instance lifecycle state machine: Pending ->
// Active -> Expired.
type State int

// Lifecycle states.
const (
	Pending State = iota
	Active
	Expired
)

// InstanceID uniquely identifies one EffectInstance within the process.
type InstanceID uint64

var nextInstanceID atomic.Uint64

// NewInstanceID allocates the next unique instance id.
func NewInstanceID() InstanceID {
	return InstanceID(nextInstanceID.Add(1))
}

// Instance is an EffectInstance: a template applied to one mob, with
// its own mutable per-instance scheduling and accumulator state.
type Instance struct {
	ID         InstanceID
	TemplateID string
	Template   *Template

	// OwnerID is the mob this instance affects. CasterID is a weak
	// reference to the mob that applied it; CasterAbsent flips true once
	// the caster dies.
	OwnerID      uint64
	CasterID     uint64
	HasCaster    bool
	CasterAbsent bool

	AppliedAt time.Time
	ExpiresAt time.Time
	Permanent bool

	TicksRemaining int
	NextTickAt     time.Time
	TickAmount     float64

	RemainingAbsorption float64

	State State
}

// IsExpired reports whether the instance has reached its deadline as of
// now (permanent instances never expire).
func (inst *Instance) IsExpired(now time.Time) bool {
	if inst.State == Expired {
		return true
	}
	if inst.Permanent {
		return false
	}
	return !now.Before(inst.ExpiresAt)
}

// RemainingDuration reports how long until expiry, 0 for permanent or
// already-expired instances.
func (inst *Instance) RemainingDuration(now time.Time) time.Duration {
	if inst.Permanent || inst.State == Expired {
		return 0
	}
	d := inst.ExpiresAt.Sub(now)
	if d < 0 {
		return 0
	}
	return d
}
