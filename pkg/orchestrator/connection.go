package orchestrator

import (
	"duskward/pkg/character"
	"duskward/pkg/entity"
	"duskward/pkg/transport"

	"github.com/sirupsen/logrus"
	"golang.org/x/exp/maps"
)

// connState is one connection's engine-side bookkeeping: its transport
// socket, its login state machine, and (once authenticated) the
// Character and Mob it drives. Every field here is touched exclusively
// by the executor goroutine once the connection is registered — the
// per-connection goroutines that read/write the socket only ever reach
// the executor through a job sent on Engine.inbound, never by mutating
// this struct directly, preserving the single-writer invariant.
type connState struct {
	conn      *transport.Conn
	session   *character.Session
	login     *character.LoginMachine
	character *character.Character
	mob       *entity.Mob
}

// connForMob finds the connState whose mob has the given OID, if any.
// Linear in the connection count, which is fine: it is only consulted
// once per delivered message and the live connection set is small
// relative to the mob population.
func (e *Engine) connForMob(id entity.OID) *connState {
	for _, cs := range maps.Values(e.conns) {
		if cs.mob != nil && cs.mob.OID() == id {
			return cs
		}
	}
	return nil
}

// HandleConnection is the per-connection goroutine transport.Listener's
// onConnect callback spawns. It owns the socket's read/write pumps and
// the outbound-channel bridge between character.Session and
// transport.Conn; it never touches world state directly, instead
// funneling every decoded line into the executor via Engine.inbound.
func (e *Engine) HandleConnection(conn *transport.Conn) {
	session := character.NewSession()
	cs := &connState{
		conn:    conn,
		session: session,
		login:   character.NewLoginMachine(e.cfg.LoginMaxAttempts),
	}

	registered := make(chan struct{})
	e.inbound <- func(e *Engine) {
		e.conns[conn.ID] = cs
		e.metrics.SetActiveSessions(len(e.conns))
		close(registered)
		cs.session.Send("Welcome to Duskward. What is your name?")
	}
	<-registered

	go conn.WriteLoop()
	go e.bridgeOutbound(conn, session)

	conn.ReadLoop(e.cfg.MaxLineLength, func(line string) {
		done := make(chan struct{})
		e.inbound <- func(e *Engine) {
			defer close(done)
			e.handleLine(cs, line)
		}
		<-done
	})

	done := make(chan struct{})
	e.inbound <- func(e *Engine) {
		defer close(done)
		e.disconnect(cs)
	}
	<-done
}

// bridgeOutbound drains a Session's outbound queue (the
// busy-mode/delivery-aware side of pkg/character) into the raw
// transport.Conn outbound buffer (the wire side of pkg/transport). The
// two channels are deliberately distinct types owned by different
// packages; this goroutine is the only thing that knows both exist.
func (e *Engine) bridgeOutbound(conn *transport.Conn, session *character.Session) {
	for payload := range session.Outbound() {
		if !conn.Send(string(payload)) {
			logrus.WithFields(logrus.Fields{
				"function": "Engine.bridgeOutbound",
				"conn_id":  conn.ID,
			}).Warn("dropped outbound payload: connection buffer full or closed")
		}
	}
}

// handleLine drives the login state machine or dispatches a gameplay
// command line, depending on cs.login's current state. Runs on the
// executor goroutine only.
func (e *Engine) handleLine(cs *connState, line string) {
	switch cs.login.State() {
	case character.AwaitingUsername:
		e.handleUsername(cs, line)
	case character.AwaitingPassword:
		e.handlePassword(cs, line)
	case character.Playing:
		e.dispatchCommand(cs, line)
	case character.Closed:
		cs.conn.Close()
	}
}

func (e *Engine) handleUsername(cs *connState, line string) {
	needsCreation := cs.login.SubmitUsername(line, func(username string) (*character.Character, bool) {
		c, ok := e.characters[username]
		return c, ok
	})
	if needsCreation {
		cs.session.Send("Unknown name. Contact an administrator to create an account.")
		return
	}
	cs.session.Send("Password:")
}

func (e *Engine) handlePassword(cs *connState, line string) {
	c, err := cs.login.SubmitPassword(line, cs.session)
	if err != nil {
		cs.session.Send(err.Error())
		if cs.login.State() == character.Closed {
			cs.conn.Close()
		}
		return
	}
	cs.character = c
	e.attachMobForCharacter(cs)
	cs.session.Send("Welcome back, " + c.Username + ".")
}

// attachMobForCharacter resolves or respawns the mob a returning
// character controls, binding the bidirectional CharacterID/MobID
// lookup the orchestrator owns since pkg/character and pkg/entity don't
// import each other.
func (e *Engine) attachMobForCharacter(cs *connState) {
	if mob, ok := e.mobs[cs.character.MobID]; ok {
		cs.mob = mob
		mob.CharacterID = cs.character.ID
		return
	}
	mob := e.spawnPlayerMob(cs.character)
	cs.mob = mob
}

// disconnect tears down a connection's engine-side state: it runs the
// login state machine's Disconnect transition, optionally leaves the
// mob in the world for a linkdead reconnect, and drops the connection
// from the engine's registry.
func (e *Engine) disconnect(cs *connState) {
	if c, keepMobInWorld := cs.login.Disconnect(e.cfg.LinkdeadEnabled); c != nil {
		if !keepMobInWorld && cs.mob != nil {
			e.destroyMob(cs.mob)
		}
	}
	delete(e.conns, cs.conn.ID)
	e.metrics.SetActiveSessions(len(e.conns))
}
