package orchestrator

import (
	"testing"

	"duskward/pkg/entity"

	"github.com/stretchr/testify/require"
)

func TestMobByIDFindsRegisteredMobs(t *testing.T) {
	e := testEngine(t)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")
	npc := entity.NewMob("dummy", []string{"dummy"}, race, job)
	e.registerMob(npc)

	found, ok := e.MobByID(npc.OID())
	require.True(t, ok)
	require.Same(t, npc, found)

	_, ok = e.MobByID(entity.OID(999999))
	require.False(t, ok)
}

func TestSameRoomComparesCurrentLocations(t *testing.T) {
	e := testEngine(t)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")
	a := entity.NewMob("a", []string{"a"}, race, job)
	b := entity.NewMob("b", []string{"b"}, race, job)

	square, err := e.Dungeons.ResolveRoomRef("@town1{1,1,0}")
	require.NoError(t, err)
	market, err := e.Dungeons.ResolveRoomRef("@town1{2,1,0}")
	require.NoError(t, err)

	require.NoError(t, entity.Attach(square, a))
	require.NoError(t, entity.Attach(square, b))
	require.True(t, e.SameRoom(a, b))

	require.NoError(t, entity.Attach(market, b))
	require.False(t, e.SameRoom(a, b))
}
