package orchestrator

import (
	"testing"

	"duskward/pkg/config"
	"duskward/pkg/telemetry"

	"github.com/stretchr/testify/require"
)

func testEngine(t *testing.T) *Engine {
	t.Helper()
	cfg := &config.Config{
		DataDir:          t.TempDir(),
		GraveyardRoomRef: "@town1{1,1,0}",
		LoginMaxAttempts: 3,
		MaxLineLength:    4096,
	}
	e, err := NewEngine(cfg, telemetry.New())
	require.NoError(t, err)
	require.NoError(t, e.Bootstrap())
	return e
}

func TestBootstrapRegistersFixedOrderContent(t *testing.T) {
	e := testEngine(t)

	_, ok := e.Archetypes.Get("human")
	require.True(t, ok, "expected human race archetype registered")
	_, ok = e.Archetypes.Get("battlemage")
	require.True(t, ok, "expected battlemage job archetype registered")

	_, ok = e.Abilities.Get("melee-strike")
	require.True(t, ok, "expected melee-strike ability registered")

	_, ok = e.Effects.Get("burning")
	require.True(t, ok, "expected burning effect template registered")

	d, ok := e.Dungeons.Get("town1")
	require.True(t, ok, "expected town1 dungeon registered")
	require.Len(t, d.Resets.All(), 1)
}

func TestBootstrapRejectsRepeatedRegistrationStep(t *testing.T) {
	e := testEngine(t)
	require.Error(t, e.registerArchetypes(), "re-registering the same archetype ids should fail")
}
