package transport

import (
	"net/http"

	"duskward/pkg/config"
	"duskward/pkg/telemetry"

	"github.com/gorilla/websocket"
	"github.com/sirupsen/logrus"
)

// Listener upgrades HTTP requests to websocket connections, enforcing
// the configured origin allowlist. It holds the Metrics it is built
// with but records no connection metrics to it.
type Listener struct {
	cfg      *config.Config
	metrics  *telemetry.Metrics
	upgrader websocket.Upgrader
}

// NewListener builds a Listener bound to cfg's origin policy.
func NewListener(cfg *config.Config, metrics *telemetry.Metrics) *Listener {
	l := &Listener{cfg: cfg, metrics: metrics}
	l.upgrader = websocket.Upgrader{
		ReadBufferSize:  1024,
		WriteBufferSize: 1024,
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			allowed := cfg.IsOriginAllowed(origin)
			if !allowed {
				logrus.WithFields(logrus.Fields{
					"function": "Listener.CheckOrigin",
					"origin":   origin,
				}).Warn("websocket connection rejected: origin not allowed")
			}
			return allowed
		},
	}
	return l
}

// Accept upgrades one HTTP request to a websocket connection.
func (l *Listener) Accept(w http.ResponseWriter, r *http.Request) (*Conn, error) {
	ws, err := l.upgrader.Upgrade(w, r, nil)
	if err != nil {
		return nil, err
	}
	conn := newConn(ws)
	return conn, nil
}

// ServeHTTP registers a standard http.HandlerFunc wiring Accept and the
// caller-supplied onConnect hook, which receives the accepted Conn and
// owns spawning its read/write pumps.
func (l *Listener) ServeHTTP(onConnect func(*Conn)) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		conn, err := l.Accept(w, r)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"function": "Listener.ServeHTTP",
				"error":    err,
			}).Error("websocket upgrade failed")
			return
		}
		onConnect(conn)
	}
}
