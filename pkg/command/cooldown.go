package command

import (
	"time"

	"duskward/pkg/entity"
)

type cooldownKey struct {
	mob entity.OID
	cmd string
}

// Tracker maintains per-(mob, command-id) last-execute timestamps for
// cooldown enforcement.
type Tracker struct {
	last map[cooldownKey]time.Time
}

// NewTracker returns an empty cooldown tracker.
func NewTracker() *Tracker {
	return &Tracker{last: make(map[cooldownKey]time.Time)}
}

// Ready reports whether cooldown has elapsed since the last recorded
// execution of cmd by mob, as of now. A zero cooldown is always ready.
func (t *Tracker) Ready(mob entity.OID, cmd string, now time.Time, cooldown time.Duration) bool {
	if cooldown <= 0 {
		return true
	}
	last, ok := t.last[cooldownKey{mob, cmd}]
	if !ok {
		return true
	}
	return now.Sub(last) >= cooldown
}

// Record stamps now as the last-execute time for (mob, cmd).
func (t *Tracker) Record(mob entity.OID, cmd string, now time.Time) {
	t.last[cooldownKey{mob, cmd}] = now
}
