package telemetry

import (
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewRegistersWithoutPanic(t *testing.T) {
	m := New()
	require.NotNil(t, m)
}

func TestHandlerServesExposition(t *testing.T) {
	m := New()
	m.SetActiveSessions(3)
	m.RecordCombatRound()
	m.RecordCommandDispatch("ok")

	req := httptest.NewRequest("GET", "/metrics", nil)
	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, req)

	require.Equal(t, 200, rec.Code)
	assert.Contains(t, rec.Body.String(), "duskward_combat_rounds_total")
}

func TestObserveTickRecordsWithoutPanic(t *testing.T) {
	m := New()
	m.ObserveTick("combat", 5*time.Millisecond)
	m.RecordEffectTick("poison")
	m.RecordEffectExpire("poison")
	m.RecordCombatHit("crit")
	m.SetActiveMobs(12)
}
