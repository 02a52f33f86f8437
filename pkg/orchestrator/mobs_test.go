package orchestrator

import (
	"testing"

	"duskward/pkg/character"
	"duskward/pkg/entity"

	"github.com/stretchr/testify/require"
)

func TestRegisterMobIndexesNPCsAsWandering(t *testing.T) {
	e := testEngine(t)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")

	npc := entity.NewMob("dummy", []string{"dummy"}, race, job)
	e.registerMob(npc)

	_, ok := e.mobs[npc.OID()]
	require.True(t, ok)
	require.Contains(t, e.wandering, npc.OID())
}

func TestRegisterMobExcludesPlayerMobsFromWandering(t *testing.T) {
	e := testEngine(t)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")

	player := entity.NewMob("hero", []string{"hero"}, race, job)
	player.CharacterID = 7
	e.registerMob(player)

	require.NotContains(t, e.wandering, player.OID())
}

func TestSpawnPlayerMobBindsCharacterAndMobTogether(t *testing.T) {
	e := testEngine(t)
	c, err := character.NewCharacter(1, "tester", "hunter2")
	require.NoError(t, err)

	mob := e.spawnPlayerMob(c)

	require.Equal(t, c.ID, mob.CharacterID)
	require.Equal(t, mob.OID(), c.MobID)
	require.NotNil(t, mob.Location(), "expected spawn to attach the mob to the graveyard room")
}

func TestDestroyMobDropsInventoryAndUnregisters(t *testing.T) {
	e := testEngine(t)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")
	npc := entity.NewMob("dummy", []string{"dummy"}, race, job)
	e.registerMob(npc)

	room, err := e.Dungeons.ResolveRoomRef(e.cfg.GraveyardRoomRef)
	require.NoError(t, err)
	require.NoError(t, entity.Attach(room, npc))

	coin := entity.NewItem("coin", []string{"coin"}, 1)
	require.NoError(t, entity.Attach(npc, coin))

	e.destroyMob(npc)

	_, stillIndexed := e.mobs[npc.OID()]
	require.False(t, stillIndexed)
	require.Contains(t, room.Contents(), entity.Object(coin), "expected dropped inventory to land in the mob's room")
}
