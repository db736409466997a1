package websocket

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gilmaicor/othello-game-ppd/game/protocol"
)

const (
	// Time allowed to write a message to the peer.
	writeWait = 10 * time.Second

	// Time allowed to read the next pong message from the peer.
	pongWait = 60 * time.Second

	// Send pings to peer with this period. Must be less than pongWait.
	pingPeriod = (pongWait * 9) / 10

	// Maximum message size allowed from peer. Board updates are small;
	// 4 KiB leaves room for long chat lines.
	maxMessageSize = 4096

	// Outbound queue depth before Send starts failing fast.
	sendQueueSize = 32
)

var (
	ErrConnClosed    = errors.New("connection is closed")
	ErrSendQueueFull = errors.New("outbound queue is full")
)

// Handler receives the three lifecycle events of a connection. Calls come
// from the connection's read goroutine, one at a time, in order.
type Handler interface {
	HandleOpen()
	HandleMessage(raw []byte)
	HandleClose(err error)
}

// Conn is one live client connection.
type Conn struct {
	ws      *websocket.Conn
	handler Handler
	send    chan []byte
	done    chan struct{}
	once    sync.Once
}

// Dial connects to the server, reports HandleOpen, and starts the read and
// write pumps. The context bounds the handshake only.
func Dial(ctx context.Context, url string, handler Handler) (*Conn, error) {
	ws, _, err := websocket.DefaultDialer.DialContext(ctx, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to dial %s: %w", url, err)
	}

	c := &Conn{
		ws:      ws,
		handler: handler,
		send:    make(chan []byte, sendQueueSize),
		done:    make(chan struct{}),
	}

	handler.HandleOpen()

	go c.writePump()
	go c.readPump()

	return c, nil
}

// Send queues one message for delivery. It fails fast: ErrConnClosed after
// the connection ended, ErrSendQueueFull instead of blocking on a stalled
// peer.
func (c *Conn) Send(msg protocol.Message) error {
	data, err := protocol.Encode(msg)
	if err != nil {
		return fmt.Errorf("failed to encode %s message: %w", msg.Type, err)
	}

	select {
	case <-c.done:
		return ErrConnClosed
	default:
	}

	select {
	case c.send <- data:
		return nil
	case <-c.done:
		return ErrConnClosed
	default:
		return ErrSendQueueFull
	}
}

// Close shuts the connection down. Idempotent. HandleClose fires from the
// read pump's exit path, never from inside Close, so a handler may call
// Close while processing a message without deadlocking.
func (c *Conn) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)
		deadline := time.Now().Add(writeWait)
		_ = c.ws.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""), deadline)
		err = c.ws.Close()
	})
	return err
}

// readPump delivers inbound frames to the handler until the connection
// ends, then reports HandleClose exactly once.
func (c *Conn) readPump() {
	var closeErr error
	defer func() {
		c.Close()
		c.handler.HandleClose(closeErr)
	}()

	c.ws.SetReadLimit(maxMessageSize)
	c.ws.SetReadDeadline(time.Now().Add(pongWait))
	c.ws.SetPongHandler(func(string) error {
		c.ws.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, data, err := c.ws.ReadMessage()
		if err != nil {
			select {
			case <-c.done:
				// Local close; not an error worth reporting.
			default:
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					closeErr = err
				}
			}
			return
		}
		c.handler.HandleMessage(data)
	}
}

// writePump drains the send queue and keeps the peer alive with pings.
func (c *Conn) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.Close()
	}()

	for {
		select {
		case data := <-c.send:
			c.ws.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.ws.WriteMessage(websocket.TextMessage, data); err != nil {
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
