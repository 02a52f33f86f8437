package act

import "testing"

type fakeActor struct {
	id        uint64
	name      string
	delivered []string
	groups    []MessageGroup
	character bool
}

func (f *fakeActor) ActID() uint64            { return f.id }
func (f *fakeActor) ActDisplayName() string   { return f.name }
func (f *fakeActor) HasCharacter() bool       { return f.character }
func (f *fakeActor) Deliver(text string, g MessageGroup) {
	f.delivered = append(f.delivered, text)
	f.groups = append(f.groups, g)
}

type fakeRoom struct {
	observers []Actor
}

func (r fakeRoom) Observers() []Actor { return r.observers }

func TestActSendsUserAndTargetMessages(t *testing.T) {
	user := &fakeActor{id: 1, name: "Arin", character: true}
	target := &fakeActor{id: 2, name: "Goblin", character: true}
	room := fakeRoom{observers: []Actor{user, target}}

	Act(Templates{User: "You hit {Target}.", Target: "{User} hits you."}, Context{User: user, Target: target, Room: room}, Options{})

	if len(user.delivered) != 1 || user.delivered[0] != "You hit Goblin." {
		t.Errorf("user message = %v", user.delivered)
	}
	if len(target.delivered) != 1 || target.delivered[0] != "Arin hits you." {
		t.Errorf("target message = %v", target.delivered)
	}
}

func TestActRoomBroadcastExcludesUserAndTargetByDefault(t *testing.T) {
	user := &fakeActor{id: 1, name: "Arin", character: true}
	target := &fakeActor{id: 2, name: "Goblin", character: true}
	bystander := &fakeActor{id: 3, name: "Bystander", character: true}
	room := fakeRoom{observers: []Actor{user, target, bystander}}

	Act(Templates{Room: "{User} hits {Target}."}, Context{User: user, Target: target, Room: room}, Options{})

	if len(user.delivered) != 0 {
		t.Errorf("user should be excluded from room broadcast by default, got %v", user.delivered)
	}
	if len(target.delivered) != 0 {
		t.Errorf("target should be excluded from room broadcast by default, got %v", target.delivered)
	}
	if len(bystander.delivered) != 1 || bystander.delivered[0] != "Arin hits Goblin." {
		t.Errorf("bystander message = %v", bystander.delivered)
	}
}

func TestActSkipsObserversWithoutCharacter(t *testing.T) {
	user := &fakeActor{id: 1, name: "Arin", character: true}
	npc := &fakeActor{id: 9, name: "Rat", character: false}
	room := fakeRoom{observers: []Actor{user, npc}}

	Act(Templates{Room: "{User} looks around."}, Context{User: user, Room: room}, Options{ExcludeUser: boolPtr(false)})

	if len(npc.delivered) != 0 {
		t.Errorf("NPC without character should never receive a message, got %v", npc.delivered)
	}
}

func TestActHidesParticipantWhenNotVisible(t *testing.T) {
	user := &fakeActor{id: 1, name: "Shadow", character: true}
	bystander := &fakeActor{id: 3, name: "Bystander", character: true}
	room := fakeRoom{observers: []Actor{bystander}}

	Act(Templates{Room: "{User} sneaks past."}, Context{User: user, Room: room}, Options{
		VisibleToUser: func(observer Actor) bool { return false },
	})

	if len(bystander.delivered) != 1 || bystander.delivered[0] != "Someone sneaks past." {
		t.Errorf("expected hidden user to render as Someone, got %v", bystander.delivered)
	}
}

func TestActDefaultGroupIsAction(t *testing.T) {
	user := &fakeActor{id: 1, name: "Arin", character: true}
	Act(Templates{User: "hi"}, Context{User: user}, Options{})
	if len(user.groups) != 1 || user.groups[0] != Action {
		t.Errorf("expected default group Action, got %v", user.groups)
	}
}

func TestActCallsObserversExactlyOnce(t *testing.T) {
	// Spec §5: act iterates room.contents by snapshot taken at call
	// entry, so the room must be asked for its observers exactly once
	// per Act call regardless of how many recipients it yields.
	user := &fakeActor{id: 1, name: "Arin", character: true}
	bystander := &fakeActor{id: 3, name: "Bystander", character: true}
	calls := 0
	room := countingRoom{observers: []Actor{bystander}, calls: &calls}

	Act(Templates{Room: "hello"}, Context{User: user, Room: room}, Options{})

	if calls != 1 {
		t.Errorf("Observers() called %d times, want exactly 1", calls)
	}
}

type countingRoom struct {
	observers []Actor
	calls     *int
}

func (r countingRoom) Observers() []Actor {
	*r.calls++
	return r.observers
}

func boolPtr(b bool) *bool { return &b }
