package character

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

// Outbound delivery tuning: the session channel buffer size and
// non-blocking send timeout.
const (
	outboundBufferSize = 500
	outboundSendTimeout = 50 * time.Millisecond

	// queuedMessageCap bounds the busy-mode replay queue; oldest
	// messages are dropped once it's full.
	queuedMessageCap = 200
)

// queuedMessage is one message held back by busy-mode filtering, pending
// a ReadQueuedMessages drain.
type queuedMessage struct {
	text  string
	group MessageGroup
}

// Session is a character's transient connection state: an opaque
// connection id, a start time, the outbound byte channel the network
// writer goroutine drains, and the bounded busy-mode replay queue.
type Session struct {
	ConnectionID string
	StartedAt    time.Time

	outbound chan []byte

	mu    sync.Mutex
	queue []queuedMessage
}

// NewSession allocates a Session with a fresh connection id and a
// buffered outbound channel.
func NewSession() *Session {
	return &Session{
		ConnectionID: uuid.New().String(),
		StartedAt:    time.Now(),
		outbound:     make(chan []byte, outboundBufferSize),
	}
}

// Outbound returns the channel the network write goroutine should drain.
func (s *Session) Outbound() <-chan []byte { return s.outbound }

// Send writes a raw line straight to the outbound channel, bypassing
// busy-mode/message-group routing entirely. It exists for the login
// state machine, which has no bound Character yet to route prompts
// through Character.SendMessage.
func (s *Session) Send(text string) bool {
	return s.write([]byte(text))
}

// write attempts a non-blocking send to the outbound channel, dropping
// the message and logging a warning if the channel is full past the
// send timeout.
func (s *Session) write(payload []byte) bool {
	if s == nil || s.outbound == nil {
		return false
	}
	select {
	case s.outbound <- payload:
		return true
	case <-time.After(outboundSendTimeout):
		logrus.WithFields(logrus.Fields{
			"connectionId": s.ConnectionID,
			"function":     "Session.write",
		}).Warn("message dropped: outbound channel full or timeout reached")
		return false
	}
}

// enqueue pushes a busy-mode-deferred message onto the replay queue,
// dropping the oldest entry once the cap is reached.
func (s *Session) enqueue(text string, group MessageGroup) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if len(s.queue) >= queuedMessageCap {
		s.queue = s.queue[1:]
	}
	s.queue = append(s.queue, queuedMessage{text: text, group: group})
}

// drain removes and returns every queued message in FIFO order.
func (s *Session) drain() []queuedMessage {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := s.queue
	s.queue = nil
	return out
}

// QueueLen reports how many messages are currently held back, mostly
// useful for tests and admin introspection.
func (s *Session) QueueLen() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.queue)
}
