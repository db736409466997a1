// Package websocket is the transport adapter: it owns the one persistent
// connection to the game server and nothing else.
//
// Dial establishes the connection and hands lifecycle events to a Handler:
// HandleOpen once the handshake completes, HandleMessage for every inbound
// text frame in arrival order, and HandleClose exactly once when the
// connection ends, locally or remotely.
//
// Outbound messages go through Send, which JSON-encodes onto a bounded
// queue drained by a dedicated write goroutine. Send never blocks and never
// drops silently: after close it returns ErrConnClosed, and when the queue
// is full it returns ErrSendQueueFull.
//
// The adapter keeps the connection healthy with the usual ping/pong
// deadlines. It does not reconnect, retry, or back off; when the connection
// dies the session is over.
//
// Usage:
//
//	conn, err := websocket.Dial(ctx, "ws://localhost:8080/ws", handler)
//	if err != nil {
//		return err
//	}
//	defer conn.Close()
//
//	err = conn.Send(protocol.NewChat("hello"))
package websocket
