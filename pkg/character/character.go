// Package character implements Character accounts, their Session state,
// busy-mode message delivery, the block list, and the login state
// machine. Unlike the rest of the world model, Character and Session
// cross goroutines at the network I/O boundary, so their mutable state
// is guarded by a mutex
// rather than relying on the single-executor invariant pkg/entity and
// friends depend on.
package character

import (
	"strings"
	"sync"
	"time"

	"duskward/pkg/engineerr"
	"duskward/pkg/entity"

	"golang.org/x/crypto/bcrypt"
)

// MessageGroup classifies an outbound message for busy-mode filtering
// and forwarding.
type MessageGroup string

// The seven message groups a character's delivery settings can filter on.
const (
	GroupPrompt           MessageGroup = "PROMPT"
	GroupSystem           MessageGroup = "SYSTEM"
	GroupCommandResponse  MessageGroup = "COMMAND_RESPONSE"
	GroupInfo             MessageGroup = "INFO"
	GroupCombat           MessageGroup = "COMBAT"
	GroupChannels         MessageGroup = "CHANNELS"
	GroupAction           MessageGroup = "ACTION"
)

// allMessageGroups lists every group ParseMessageGroup accepts.
var allMessageGroups = []MessageGroup{
	GroupPrompt, GroupSystem, GroupCommandResponse, GroupInfo,
	GroupCombat, GroupChannels, GroupAction,
}

// ParseMessageGroup matches name case-insensitively against the known
// message groups, for commands that let a player name one by hand (the
// busy command's forwarding toggle).
func ParseMessageGroup(name string) (MessageGroup, bool) {
	upper := MessageGroup(strings.ToUpper(name))
	for _, g := range allMessageGroups {
		if g == upper {
			return g, true
		}
	}
	return "", false
}

// Settings holds a character's display and delivery preferences.
type Settings struct {
	Verbose        bool            `yaml:"verbose"`
	Color          bool            `yaml:"color"`
	Prompt         string          `yaml:"prompt"`
	ChannelFilters []string        `yaml:"channel_filters,omitempty"`
	BusyMode       bool            `yaml:"busy_mode"`
	CombatBusyMode bool            `yaml:"combat_busy_mode"`
	ForwardedGroups map[MessageGroup]bool `yaml:"forwarded_groups,omitempty"`
}

// Stats tracks a character's lifetime counters.
type Stats struct {
	PlaytimeSeconds int64 `yaml:"playtime_seconds"`
	Deaths          int   `yaml:"deaths"`
	Kills           int   `yaml:"kills"`
}

// Character is a player account: credentials, settings, stats, a
// bidirectional link to its Mob, and a transient Session while online.
type Character struct {
	ID           uint64    `yaml:"id"`
	Username     string    `yaml:"username"`
	PasswordHash string    `yaml:"password_hash"`
	CreatedAt    time.Time `yaml:"created_at"`
	LastLogin    time.Time `yaml:"last_login,omitempty"`

	IsActive bool `yaml:"is_active"`
	IsBanned bool `yaml:"is_banned"`
	IsAdmin  bool `yaml:"is_admin"`

	Settings Settings `yaml:"settings"`
	Stats    Stats    `yaml:"stats"`

	MobID entity.OID `yaml:"mob_id,omitempty"`

	BlockList map[string]bool `yaml:"block_list,omitempty"`

	mu      sync.Mutex
	session *Session
}

// NewCharacter registers a new account, hashing the password with bcrypt
// (grounded on the same convention the pack's account-repository layer
// uses for credential storage).
func NewCharacter(id uint64, username, rawPassword string) (*Character, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(rawPassword), bcrypt.DefaultCost)
	if err != nil {
		return nil, engineerr.Wrap(engineerr.Internal, err, "hashing password for %q", username)
	}
	return &Character{
		ID:           id,
		Username:     username,
		PasswordHash: string(hash),
		CreatedAt:    time.Now(),
		IsActive:     true,
		Settings: Settings{
			Color:           true,
			Prompt:          "> ",
			ForwardedGroups: make(map[MessageGroup]bool),
		},
		BlockList: make(map[string]bool),
	}, nil
}

// VerifyPassword reports whether rawPassword matches the stored hash.
func (c *Character) VerifyPassword(rawPassword string) bool {
	return bcrypt.CompareHashAndPassword([]byte(c.PasswordHash), []byte(rawPassword)) == nil
}

// Session returns the character's active session, or nil if offline.
func (c *Character) Session() *Session {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.session
}

// BindSession attaches sess as the character's active session, replacing
// any previous one.
func (c *Character) BindSession(sess *Session) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = sess
}

// ClearSession detaches the character's session, leaving it offline.
func (c *Character) ClearSession() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.session = nil
}

// Block adds username to the character's block list.
func (c *Character) Block(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.BlockList == nil {
		c.BlockList = make(map[string]bool)
	}
	c.BlockList[username] = true
}

// Unblock removes username from the block list.
func (c *Character) Unblock(username string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	delete(c.BlockList, username)
}

// IsBlocking reports whether the character has blocked username.
func (c *Character) IsBlocking(username string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.BlockList[username]
}
