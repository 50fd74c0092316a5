// Package conn implements the Connection Manager & Message Queue
// component: one Channel per connected player, disconnect/reconnect
// bookkeeping, and a bounded per-player critical-event replay queue.
// Grounded on internal/handler/ws_hub.go's Hub and ws_handler.go's
// readPump/writePump pair, generalized from "broadcast to every
// websocket subscribed to a gameID" to "track each player's own
// connected/disconnected state and replay what they missed."
package conn

// Channel is a framed, bidirectional connection to one player. The
// concrete websocket adapter lives in internal/transport/ws; this
// package and internal/room never import gorilla/websocket directly.
type Channel interface {
	Send(msg []byte) error
	Recv() <-chan []byte
	Close() error
}
