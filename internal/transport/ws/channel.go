// Package ws adapts a gorilla/websocket connection to conn.Channel,
// grounded on the teacher's ws_handler.go readPump/writePump pair: one
// goroutine pumping inbound frames into a Recv channel, one draining an
// outbound buffered channel with a ping ticker for keepalive.
package ws

import (
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = 54 * time.Second // must be less than pongWait
	maxMsgSize = 4096
	sendBuf    = 256
)

// Conn adapts *websocket.Conn to conn.Channel. It owns the two pump
// goroutines; Close tears both down.
type Conn struct {
	ws   *websocket.Conn
	send chan []byte
	recv chan []byte
	done chan struct{}
	log  zerolog.Logger
}

// NewConn wraps an upgraded websocket connection and starts its pumps.
func NewConn(wsConn *websocket.Conn, log zerolog.Logger) *Conn {
	c := &Conn{
		ws:   wsConn,
		send: make(chan []byte, sendBuf),
		recv: make(chan []byte, sendBuf),
		done: make(chan struct{}),
		log:  log,
	}
	go c.writePump()
	go c.readPump()
	return c
}

// Send enqueues a message for the write pump; drops it if the buffer is
// full rather than blocking the caller (the room's single-writer
// goroutine must never stall on a slow client).
func (c *Conn) Send(msg []byte) error {
	select {
	case c.send <- msg:
		return nil
	default:
		c.log.Warn().Msg("websocket send buffer full, dropping message")
		return nil
	}
}

// Recv exposes inbound frames to the caller (the connection's read
// loop, which decodes them into room actions).
func (c *Conn) Recv() <-chan []byte { return c.recv }

// Close tears down both pumps and the underlying socket.
func (c *Conn) Close() error {
	select {
	case <-c.done:
	default:
		close(c.done)
	}
	return c.ws.Close()
}

func (c *Conn) readPump() {
	defer func() {
		close(c.recv)
		c.Close()
	}()

	c.ws.SetReadLimit(maxMsgSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.ws.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
				c.log.Warn().Err(err).Msg("websocket unexpected close")
			}
			return
		}
		select {
		case c.recv <- message:
		case <-c.done:
			return
		}
	}
}

func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.ws.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				c.ws.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.ws.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		case <-c.done:
			return
		}
	}
}
