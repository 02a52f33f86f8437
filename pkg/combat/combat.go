package combat

import "duskward/pkg/entity"

// InitiateCombat sets attacker's target to defender and enqueues
// attacker; if defender has no target of its own yet, it is also
// targeted back at attacker and enqueued.
func InitiateCombat(queue *Queue, attacker, defender *entity.Mob) {
	attacker.CombatTargetID = defender.OID()
	attacker.InCombat = true
	queue.Enqueue(attacker.OID())

	if defender.CombatTargetID == 0 {
		defender.CombatTargetID = attacker.OID()
		defender.InCombat = true
		queue.Enqueue(defender.OID())
	}
}

// Disengage clears mob's combat state and removes it from the queue,
// used both for death handling and for a target that has fled the
// room.
func Disengage(queue *Queue, mob *entity.Mob) {
	mob.CombatTargetID = 0
	mob.InCombat = false
	queue.Remove(mob.OID())
}

// HandleDeath zeroes health, clears the target, and drops mob out of
// the queue. Callers are responsible for firing the
// onDeath act broadcast and for the player-respawn/NPC-destroy branch,
// since those need the room/session context this package does not own.
func HandleDeath(queue *Queue, mob *entity.Mob) {
	mob.Health = 0
	Disengage(queue, mob)
}
