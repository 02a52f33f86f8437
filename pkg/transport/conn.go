// Package transport provides the line-oriented websocket connection
// layer that stands in for the engine-facing side of a telnet/IAC
// socket. It decodes one command per inbound message and delivers
// styled output non-blockingly, never touching world state directly.
package transport

import (
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// outboundBuffer is the number of queued outbound lines a connection
// tolerates before Send starts dropping messages.
const outboundBuffer = 64

// sendTimeout bounds how long Send blocks on a full outbound queue
// before giving up and dropping the message.
const sendTimeout = 500 * time.Millisecond

// Conn wraps one accepted websocket connection with the bookkeeping
// the orchestrator's per-connection goroutines need: a stable
// connection id, a buffered outbound queue, and a done signal for
// coordinating reader/writer shutdown.
type Conn struct {
	ID   string
	ws   *websocket.Conn
	out  chan []byte
	done chan struct{}
}

// newConn wraps an upgraded websocket.Conn.
func newConn(ws *websocket.Conn) *Conn {
	return &Conn{
		ID:   uuid.New().String(),
		ws:   ws,
		out:  make(chan []byte, outboundBuffer),
		done: make(chan struct{}),
	}
}

// Send queues text for delivery to the client. It never blocks the
// caller for longer than sendTimeout; if the outbound queue is full by
// then the message is dropped and logged, so a slow or stalled client
// cannot stall the engine's single cooperative executor.
func (c *Conn) Send(text string) bool {
	select {
	case c.out <- []byte(text):
		return true
	case <-time.After(sendTimeout):
		logrus.WithFields(logrus.Fields{
			"function": "Conn.Send",
			"connID":   c.ID,
		}).Warn("outbound message dropped: queue full")
		return false
	case <-c.done:
		return false
	}
}

// Closed reports whether the connection has been torn down.
func (c *Conn) Closed() bool {
	select {
	case <-c.done:
		return true
	default:
		return false
	}
}

// Close signals both pumps to stop and closes the underlying socket.
func (c *Conn) Close() {
	select {
	case <-c.done:
		return
	default:
		close(c.done)
	}
	c.ws.Close()
}

// ReadLoop pumps inbound text frames into deliver until the connection
// closes or a read fails. maxLineLength rejects oversized frames
// before they ever reach the command parser. deliver runs on this
// goroutine; callers must keep it non-blocking (an inbound channel
// send, nothing more) so one slow connection cannot stall another.
func (c *Conn) ReadLoop(maxLineLength int64, deliver func(line string)) {
	defer c.Close()

	c.ws.SetReadLimit(maxLineLength)
	for {
		msgType, data, err := c.ws.ReadMessage()
		if err != nil {
			return
		}
		if msgType != websocket.TextMessage {
			continue
		}
		deliver(string(data))
	}
}

// WriteLoop drains the outbound queue to the socket until Close is
// called. It owns all writes to the underlying connection, since
// gorilla/websocket forbids concurrent writers.
func (c *Conn) WriteLoop() {
	for {
		select {
		case msg, ok := <-c.out:
			if !ok {
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, msg); err != nil {
				c.Close()
				return
			}
		case <-c.done:
			return
		}
	}
}
