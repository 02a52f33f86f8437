package transport

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"duskward/pkg/telemetry"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/require"
)

func newTestServerConn(t *testing.T) (*Conn, *websocket.Conn, func()) {
	t.Helper()
	cfg := testConfig(t)
	cfg.EnableDevMode = true

	var serverConn *Conn
	connected := make(chan struct{})

	listener := NewListener(cfg, telemetry.New())
	mux := http.NewServeMux()
	mux.HandleFunc("/ws", listener.ServeHTTP(func(c *Conn) {
		serverConn = c
		close(connected)
	}))
	srv := httptest.NewServer(mux)

	wsURL := "ws" + srv.URL[len("http"):] + "/ws"
	clientConn, _, err := websocket.DefaultDialer.Dial(wsURL, nil)
	require.NoError(t, err)

	select {
	case <-connected:
	case <-time.After(2 * time.Second):
		t.Fatal("server never accepted the connection")
	}

	cleanup := func() {
		clientConn.Close()
		srv.Close()
	}
	return serverConn, clientConn, cleanup
}

func TestListenerAcceptUpgradesAndAssignsID(t *testing.T) {
	serverConn, _, cleanup := newTestServerConn(t)
	defer cleanup()

	require.NotEmpty(t, serverConn.ID)
}

func TestSendDeliversQueuedMessageViaWriteLoop(t *testing.T) {
	serverConn, clientConn, cleanup := newTestServerConn(t)
	defer cleanup()

	go serverConn.WriteLoop()
	require.True(t, serverConn.Send("hello"))

	clientConn.SetReadDeadline(time.Now().Add(2 * time.Second))
	_, data, err := clientConn.ReadMessage()
	require.NoError(t, err)
	require.Equal(t, "hello", string(data))
}

func TestReadLoopDeliversInboundLinesAndStopsOnClose(t *testing.T) {
	serverConn, clientConn, cleanup := newTestServerConn(t)
	defer cleanup()

	var received []string
	done := make(chan struct{})
	go func() {
		serverConn.ReadLoop(4096, func(line string) {
			received = append(received, line)
		})
		close(done)
	}()

	require.NoError(t, clientConn.WriteMessage(websocket.TextMessage, []byte("look")))
	clientConn.Close()

	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("ReadLoop never returned after connection close")
	}

	require.Equal(t, []string{"look"}, received)
}

func TestCloseIsIdempotent(t *testing.T) {
	serverConn, _, cleanup := newTestServerConn(t)
	defer cleanup()

	serverConn.Close()
	serverConn.Close()
	require.True(t, serverConn.Closed())
}
