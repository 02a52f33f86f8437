package orchestrator

import (
	"testing"

	"duskward/pkg/entity"

	"github.com/stretchr/testify/require"
)

func TestAdminSpawnTemplateAttachesToRoomAndRegistersMob(t *testing.T) {
	e := testEngine(t)
	a := (*adminOps)(e)

	obj, err := a.SpawnTemplate("@town1{1,1,0}", "training-dummy")
	require.NoError(t, err)

	mob, ok := obj.(*entity.Mob)
	require.True(t, ok)

	room, err := e.Dungeons.ResolveRoomRef("@town1{1,1,0}")
	require.NoError(t, err)
	require.Contains(t, room.Contents(), entity.Object(mob))

	_, registered := e.MobByID(mob.OID())
	require.True(t, registered)
}

func TestAdminSetAttributeRecomputesDerivedStats(t *testing.T) {
	e := testEngine(t)
	a := (*adminOps)(e)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")
	mob := entity.NewMob("dummy", []string{"dummy"}, race, job)

	before := mob.Secondary.AttackPower
	require.NoError(t, a.SetAttribute(mob, "strength", 25))
	require.Equal(t, 25, mob.Primary.Strength)
	require.Greater(t, mob.Secondary.AttackPower, before)

	require.NoError(t, a.SetAttribute(mob, "level", 5))
	require.Equal(t, 5, mob.Level)

	err := a.SetAttribute(mob, "no-such-attribute", 1)
	require.Error(t, err)
}

func TestAdminSetAttributeRejectsNonMobTargets(t *testing.T) {
	e := testEngine(t)
	a := (*adminOps)(e)
	item := entity.NewItem("coin", []string{"coin"}, 1)
	require.Error(t, a.SetAttribute(item, "level", 1))
}

func TestAdminDumpRoomListsExitsAndContents(t *testing.T) {
	e := testEngine(t)
	a := (*adminOps)(e)

	coin := entity.NewItem("coin", []string{"coin"}, 1)
	room, err := e.Dungeons.ResolveRoomRef("@town1{1,1,0}")
	require.NoError(t, err)
	require.NoError(t, entity.Attach(room, coin))

	dump, err := a.DumpRoom("@town1{1,1,0}")
	require.NoError(t, err)
	require.Contains(t, dump, "Town Square")
	require.Contains(t, dump, "coin")
	require.Contains(t, dump, "exit east")
}

func TestAdminRoomRefForRoundTripsThroughResolveRoomRef(t *testing.T) {
	e := testEngine(t)
	a := (*adminOps)(e)

	room, err := e.Dungeons.ResolveRoomRef("@town1{2,1,0}")
	require.NoError(t, err)

	ref, err := a.RoomRefFor(room)
	require.NoError(t, err)

	resolved, err := e.Dungeons.ResolveRoomRef(ref)
	require.NoError(t, err)
	require.Equal(t, room.OID(), resolved.OID())
}

func TestAdminRoomRefForRejectsNonRoomObjects(t *testing.T) {
	e := testEngine(t)
	a := (*adminOps)(e)
	item := entity.NewItem("coin", []string{"coin"}, 1)

	_, err := a.RoomRefFor(item)
	require.Error(t, err)
}

func TestAdminTeleportBypassesAdjacency(t *testing.T) {
	e := testEngine(t)
	a := (*adminOps)(e)
	race, _ := e.Archetypes.Get("human")
	job, _ := e.Archetypes.Get("adventurer")
	mob := entity.NewMob("hero", []string{"hero"}, race, job)

	square, err := e.Dungeons.ResolveRoomRef("@town1{1,1,0}")
	require.NoError(t, err)
	require.NoError(t, entity.Attach(square, mob))

	market, err := e.Dungeons.ResolveRoomRef("@town1{2,1,0}")
	require.NoError(t, err)

	require.NoError(t, a.Teleport(mob, "@town1{2,1,0}"))
	require.Equal(t, market.OID(), mob.Location().OID())
}

func TestAdminInitiateCopyoverSavesAndRequestsShutdown(t *testing.T) {
	e := testEngine(t)
	e.cfg.EnablePersistence = true
	a := (*adminOps)(e)

	require.NoError(t, a.InitiateCopyover())

	select {
	case <-e.shutdown:
	default:
		t.Fatal("expected InitiateCopyover to close the shutdown channel")
	}
}
