// Package combat implements the turn queue and hit-resolution math:
// initiating combat, the per-tick round processor, one-hit/
// one-magic-hit, damage-type relationships, armor mitigation, and death
// handling.
package combat

import "duskward/pkg/entity"

// Queue is the process-wide combat turn order: a stable FIFO of mob
// ids. A mob enqueued mid-round is not processed until the next round,
// because Round operates on a snapshot taken at its own entry.
type Queue struct {
	order []entity.OID
	set   map[entity.OID]bool
}

// NewQueue returns an empty combat queue.
func NewQueue() *Queue {
	return &Queue{set: make(map[entity.OID]bool)}
}

// Enqueue appends id to the back of the queue if it is not already
// present, returning whether it was added.
func (q *Queue) Enqueue(id entity.OID) bool {
	if q.set[id] {
		return false
	}
	q.order = append(q.order, id)
	q.set[id] = true
	return true
}

// Remove drops id from the queue, wherever it sits.
func (q *Queue) Remove(id entity.OID) {
	if !q.set[id] {
		return
	}
	delete(q.set, id)
	for i, oid := range q.order {
		if oid == id {
			q.order = append(q.order[:i], q.order[i+1:]...)
			return
		}
	}
}

// Contains reports whether id is currently queued.
func (q *Queue) Contains(id entity.OID) bool { return q.set[id] }

// Snapshot returns a copy of the current queue order, for a Round call
// to iterate without observing same-round enqueues.
func (q *Queue) Snapshot() []entity.OID {
	return append([]entity.OID(nil), q.order...)
}

// Len reports the number of mobs currently queued.
func (q *Queue) Len() int { return len(q.order) }
