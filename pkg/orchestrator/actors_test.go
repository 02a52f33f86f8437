package orchestrator

import (
	"testing"

	"duskward/pkg/character"
	"duskward/pkg/entity"
	"duskward/pkg/transport"

	"github.com/stretchr/testify/require"
)

func TestMobActorWithoutConnectionHasNoCharacter(t *testing.T) {
	e := testEngine(t)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")
	npc := entity.NewMob("dummy", []string{"dummy"}, race, job)

	a := e.actorFor(npc)
	require.Equal(t, uint64(npc.OID()), a.ActID())
	require.Equal(t, "dummy", a.ActDisplayName())
	require.False(t, a.HasCharacter())

	// Deliver on an actor with no bound character must be a silent
	// no-op rather than a nil-pointer panic.
	a.Deliver("ignored", 0)
}

func TestMobActorWithConnectionDelivers(t *testing.T) {
	e := testEngine(t)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")
	c, err := character.NewCharacter(1, "hero", "hunter2")
	require.NoError(t, err)

	mob := entity.NewMob("hero", []string{"hero"}, race, job)
	mob.CharacterID = c.ID

	session := character.NewSession()
	c.BindSession(session)
	e.conns["conn-1"] = &connState{
		conn:      &transport.Conn{ID: "conn-1"},
		session:   session,
		character: c,
		mob:       mob,
	}

	a := e.actorFor(mob)
	require.True(t, a.HasCharacter())

	a.Deliver("a chill wind blows", 0)

	select {
	case payload := <-session.Outbound():
		require.Contains(t, string(payload), "a chill wind blows")
	default:
		t.Fatal("expected Deliver to enqueue an outbound payload")
	}
}

func TestRoomActorObserversFiltersToMobs(t *testing.T) {
	e := testEngine(t)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")
	npc := entity.NewMob("dummy", []string{"dummy"}, race, job)
	item := entity.NewItem("coin", []string{"coin"}, 1)

	room := e.roomContentsFor([]entity.Object{npc, item})
	observers := room.Observers()

	require.Len(t, observers, 1)
	require.Equal(t, uint64(npc.OID()), observers[0].ActID())
}
