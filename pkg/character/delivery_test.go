package character

import "testing"

func drainOutbound(t *testing.T, sess *Session, want int) []string {
	t.Helper()
	var got []string
	for i := 0; i < want; i++ {
		select {
		case b := <-sess.Outbound():
			got = append(got, string(b))
		default:
			t.Fatalf("expected %d outbound messages, only got %d", want, len(got))
		}
	}
	return got
}

func TestSendMessageDropsWhenOffline(t *testing.T) {
	c, _ := NewCharacter(1, "grom", "pw")
	if c.SendMessage("hi", GroupAction, false) {
		t.Errorf("expected no session to report the message as not delivered")
	}
}

func TestSendMessageDeliversImmediateGroupsEvenWhenBusy(t *testing.T) {
	c, _ := NewCharacter(1, "grom", "pw")
	sess := NewSession()
	c.BindSession(sess)
	c.Settings.BusyMode = true
	c.Settings.ForwardedGroups[GroupCommandResponse] = true

	if !c.SendMessage("ok", GroupCommandResponse, false) {
		t.Errorf("expected COMMAND_RESPONSE to deliver immediately regardless of busy-mode")
	}
	drainOutbound(t, sess, 1)
}

func TestSendMessageQueuesForwardedGroupWhenBusy(t *testing.T) {
	c, _ := NewCharacter(1, "grom", "pw")
	sess := NewSession()
	c.BindSession(sess)
	c.Settings.BusyMode = true
	c.Settings.ForwardedGroups[GroupChannels] = true

	if c.SendMessage("hello channel", GroupChannels, false) {
		t.Errorf("expected a forwarded-group message to be queued, not delivered")
	}
	if sess.QueueLen() != 1 {
		t.Fatalf("expected one queued message, got %d", sess.QueueLen())
	}
}

func TestSendMessageDeliversNonForwardedGroupEvenWhenBusy(t *testing.T) {
	c, _ := NewCharacter(1, "grom", "pw")
	sess := NewSession()
	c.BindSession(sess)
	c.Settings.BusyMode = true
	c.Settings.ForwardedGroups[GroupChannels] = true

	if !c.SendMessage("you got hit", GroupCombat, false) {
		t.Errorf("expected a non-forwarded group to deliver immediately even while busy")
	}
	drainOutbound(t, sess, 1)
}

func TestBusyReadDeliversExactlyTheQueuedChannelsMessage(t *testing.T) {
	// Spec S4: Character with busy on forwarding CHANNELS only. A
	// COMMAND_RESPONSE and an ACTION arrive normally; a CHANNELS message
	// is queued. busy read emits exactly the one CHANNELS message.
	c, _ := NewCharacter(1, "grom", "pw")
	sess := NewSession()
	c.BindSession(sess)
	c.Settings.BusyMode = true
	c.Settings.ForwardedGroups[GroupChannels] = true

	c.SendMessage("response", GroupCommandResponse, false)
	c.SendMessage("someone waves", GroupAction, false)
	c.SendMessage("chat message", GroupChannels, false)

	drainOutbound(t, sess, 2) // COMMAND_RESPONSE + ACTION delivered immediately

	delivered := c.ReadQueuedMessages()
	if delivered != 1 {
		t.Fatalf("expected exactly 1 queued message delivered, got %d", delivered)
	}
	// separator frame + the one queued message
	drainOutbound(t, sess, 2)
}

func TestQueueDropsOldestPastCap(t *testing.T) {
	c, _ := NewCharacter(1, "grom", "pw")
	sess := NewSession()
	c.BindSession(sess)
	c.Settings.BusyMode = true
	c.Settings.ForwardedGroups[GroupChannels] = true

	for i := 0; i < queuedMessageCap+10; i++ {
		c.SendMessage("msg", GroupChannels, false)
	}
	if sess.QueueLen() != queuedMessageCap {
		t.Errorf("expected queue length capped at %d, got %d", queuedMessageCap, sess.QueueLen())
	}
}
