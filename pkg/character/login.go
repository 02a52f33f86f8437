package character

import "duskward/pkg/engineerr"

// LoginState is one state in the per-connection login state machine.
type LoginState string

// The four login states a connection passes through before play.
const (
	AwaitingUsername LoginState = "awaiting_username"
	AwaitingPassword LoginState = "awaiting_password"
	Playing          LoginState = "playing"
	Closed           LoginState = "closed"
)

// LoginMachine drives one connection through AwaitingUsername ->
// AwaitingPassword -> Playing -> Closed, closing the connection after
// too many failed password attempts.
type LoginMachine struct {
	state       LoginState
	maxAttempts int
	attempts    int

	pending *Character
}

// NewLoginMachine starts a fresh login attempt, closing the connection
// after maxAttempts failed passwords.
func NewLoginMachine(maxAttempts int) *LoginMachine {
	return &LoginMachine{state: AwaitingUsername, maxAttempts: maxAttempts}
}

// State reports the machine's current state.
func (m *LoginMachine) State() LoginState { return m.state }

// SubmitUsername looks up username via lookup. If found, the machine
// advances to AwaitingPassword holding the candidate record. If not
// found, needsCreation reports true so the caller can branch to
// character creation (out of scope for this package).
func (m *LoginMachine) SubmitUsername(username string, lookup func(string) (*Character, bool)) (needsCreation bool) {
	if m.state != AwaitingUsername {
		return false
	}
	found, ok := lookup(username)
	if !ok {
		return true
	}
	m.pending = found
	m.state = AwaitingPassword
	return false
}

// SubmitPassword verifies rawPassword against the pending character's
// stored hash. On success it binds sess to the character, advances to
// Playing, and returns the now-active character. A banned character is
// refused with engineerr.PermissionDenied and the machine moves to
// Closed. A wrong password increments the attempt counter and returns
// engineerr.PermissionDenied; once the counter reaches maxAttempts the
// machine also moves to Closed.
func (m *LoginMachine) SubmitPassword(rawPassword string, sess *Session) (*Character, error) {
	if m.state != AwaitingPassword || m.pending == nil {
		return nil, engineerr.New(engineerr.Internal, "submitPassword called outside AwaitingPassword")
	}
	if m.pending.IsBanned {
		m.state = Closed
		return nil, engineerr.New(engineerr.PermissionDenied, "character %q is banned", m.pending.Username)
	}
	if !m.pending.VerifyPassword(rawPassword) {
		m.attempts++
		if m.attempts >= m.maxAttempts {
			m.state = Closed
			return nil, engineerr.New(engineerr.PermissionDenied, "too many failed login attempts")
		}
		return nil, engineerr.New(engineerr.PermissionDenied, "incorrect password")
	}

	m.pending.BindSession(sess)
	m.state = Playing
	return m.pending, nil
}

// Disconnect transitions a Playing connection to Closed, detaching the
// character's session. It reports whether the bound mob should stay in
// the world (linkdead mode) or be pulled to a holding area: the mob
// stays in the world only if configured linkdead mode is on.
func (m *LoginMachine) Disconnect(linkdeadEnabled bool) (character *Character, keepMobInWorld bool) {
	if m.state != Playing || m.pending == nil {
		m.state = Closed
		return nil, false
	}
	character = m.pending
	character.ClearSession()
	m.state = Closed
	return character, linkdeadEnabled
}
