package ws

import (
	"net/http"

	"github.com/efreeman/liaptui/internal/conn"
	"github.com/efreeman/liaptui/internal/room"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// Server is the reference WebSocket edge: one upgrade endpoint, every
// client multiplexed over it, the room it joins decided by its first
// create_room/join_room message rather than the URL, since a lobby has
// no room code to put in the path until one exists.
type Server struct {
	Manager   *conn.Manager
	Lifecycle *room.Lifecycle
	Registry  *room.Registry
	Log       zerolog.Logger
}

// NewServer wires a reference transport over the given collaborators.
func NewServer(mgr *conn.Manager, lc *room.Lifecycle, reg *room.Registry, log zerolog.Logger) *Server {
	return &Server{Manager: mgr, Lifecycle: lc, Registry: reg, Log: log}
}

// ServeWS upgrades the request and runs the connection's session loop
// until the client disconnects, grounded directly on
// internal/handler/ws_handler.go's ServeWS (upgrade, register, pump).
func (s *Server) ServeWS(w http.ResponseWriter, r *http.Request) {
	wsConn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		s.Log.Error().Err(err).Msg("websocket upgrade failed")
		return
	}

	c := NewConn(wsConn, s.Log)
	sess := newSession(c, s.Manager, s.Lifecycle, s.Registry, s.Log)
	sess.run()
}

// Health reports liveness for the reference server's health endpoint.
func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}
