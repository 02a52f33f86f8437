package character

// immediateGroups are always delivered at once regardless of busy-mode:
// command responses, system messages, and prompts bypass the queue.
var immediateGroups = map[MessageGroup]bool{
	GroupCommandResponse: true,
	GroupSystem:          true,
	GroupPrompt:          true,
}

// SendMessage routes text to the character's session: dropped if
// offline, delivered immediately for the always-immediate
// groups, queued if busy-mode (or combat-busy-mode while fighting) is
// forwarding this group, and delivered immediately otherwise. It
// reports whether the message reached the wire this call (a queued
// message returns false; a later ReadQueuedMessages call delivers it).
func (c *Character) SendMessage(text string, group MessageGroup, inCombat bool) bool {
	sess := c.Session()
	if sess == nil {
		return false
	}

	if immediateGroups[group] {
		return sess.write([]byte(text))
	}

	busy := c.Settings.BusyMode || (inCombat && c.Settings.CombatBusyMode)
	if busy && c.Settings.ForwardedGroups[group] {
		sess.enqueue(text, group)
		return false
	}

	return sess.write([]byte(text))
}

// separatorFrame is emitted once before replayed messages, so the
// client can visually distinguish a batch of deferred output from
// whatever arrives afterward.
const separatorFrame = "--- queued messages ---"

// ReadQueuedMessages drains the character's session queue in FIFO order,
// writing one separator frame first and then each queued message. It
// reports how many queued messages were delivered (the separator is not
// counted).
func (c *Character) ReadQueuedMessages() int {
	sess := c.Session()
	if sess == nil {
		return 0
	}
	pending := sess.drain()
	if len(pending) == 0 {
		return 0
	}
	sess.write([]byte(separatorFrame))
	for _, m := range pending {
		sess.write([]byte(m.text))
	}
	return len(pending)
}
