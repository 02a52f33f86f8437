package effect

import (
	"container/heap"
	"time"
)

// EventKind distinguishes the two timer kinds an instance can schedule.
type EventKind int

// Event kinds. Tick sorts before Expire at equal deadlines, so a tick
// timer that fires exactly at expiration runs before the expiration
// handler.
const (
	TickEvent EventKind = iota
	ExpireEvent
)

// TimerEvent is one entry in the scheduler's min-heap: a (deadline,
// effect-id, kind) tuple.
type TimerEvent struct {
	Deadline   time.Time
	Seq        int64
	InstanceID InstanceID
	OwnerID    uint64
	Kind       EventKind
}

// eventHeap is the container/heap backing slice.
type eventHeap []TimerEvent

func (h eventHeap) Len() int { return len(h) }
func (h eventHeap) Less(i, j int) bool {
	if !h[i].Deadline.Equal(h[j].Deadline) {
		return h[i].Deadline.Before(h[j].Deadline)
	}
	if h[i].Kind != h[j].Kind {
		return h[i].Kind < h[j].Kind
	}
	return h[i].Seq < h[j].Seq
}
func (h eventHeap) Swap(i, j int) { h[i], h[j] = h[j], h[i] }
func (h *eventHeap) Push(x any)   { *h = append(*h, x.(TimerEvent)) }
func (h *eventHeap) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}

// Scheduler is the process-wide min-heap of pending effect timers. The
// single cooperative executor drains due entries each tick; there is
// no per-effect OS timer, which makes cancellation a plain
// membership removal instead of timer-handle bookkeeping.
type Scheduler struct {
	heap    eventHeap
	nextSeq int64
}

// NewScheduler returns an empty scheduler.
func NewScheduler() *Scheduler {
	s := &Scheduler{}
	heap.Init(&s.heap)
	return s
}

// Schedule enqueues a timer event and returns its insertion sequence
// number (used only for test determinism; callers need not retain it).
func (s *Scheduler) Schedule(deadline time.Time, instanceID InstanceID, ownerID uint64, kind EventKind) int64 {
	seq := s.nextSeq
	s.nextSeq++
	heap.Push(&s.heap, TimerEvent{
		Deadline:   deadline,
		Seq:        seq,
		InstanceID: instanceID,
		OwnerID:    ownerID,
		Kind:       kind,
	})
	return seq
}

// Len reports the number of pending timer events.
func (s *Scheduler) Len() int { return s.heap.Len() }

// DrainDue pops and returns, in monotonic deadline order (ties broken by
// kind then insertion order), every event whose deadline is not after
// now.
func (s *Scheduler) DrainDue(now time.Time) []TimerEvent {
	var due []TimerEvent
	for s.heap.Len() > 0 && !s.heap[0].Deadline.After(now) {
		ev := heap.Pop(&s.heap).(TimerEvent)
		due = append(due, ev)
	}
	return due
}

// CancelInstance removes every pending event for instanceID, used when
// an effect is removed early: explicit removal, owning mob destroyed, or
// shutdown.
func (s *Scheduler) CancelInstance(instanceID InstanceID) {
	for {
		idx := -1
		for i, ev := range s.heap {
			if ev.InstanceID == instanceID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		heap.Remove(&s.heap, idx)
	}
}

// CancelOwner removes every pending event owned by ownerID, used when a
// mob is destroyed.
func (s *Scheduler) CancelOwner(ownerID uint64) {
	for {
		idx := -1
		for i, ev := range s.heap {
			if ev.OwnerID == ownerID {
				idx = i
				break
			}
		}
		if idx == -1 {
			return
		}
		heap.Remove(&s.heap, idx)
	}
}
