package websocket

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/websocket"

	"github.com/gilmaicor/othello-game-ppd/game/protocol"
)

const testTimeout = 2 * time.Second

// recordingHandler captures lifecycle events on channels so tests can wait
// for them without polling.
type recordingHandler struct {
	opened   chan struct{}
	messages chan []byte
	closed   chan error
}

func newRecordingHandler() *recordingHandler {
	return &recordingHandler{
		opened:   make(chan struct{}, 1),
		messages: make(chan []byte, 16),
		closed:   make(chan error, 1),
	}
}

func (h *recordingHandler) HandleOpen()              { h.opened <- struct{}{} }
func (h *recordingHandler) HandleMessage(raw []byte) { h.messages <- raw }
func (h *recordingHandler) HandleClose(err error)    { h.closed <- err }

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// startTestServer runs a WebSocket endpoint that hands each accepted
// connection to serve.
func startTestServer(t *testing.T, serve func(*websocket.Conn)) string {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ws, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			t.Errorf("upgrade failed: %v", err)
			return
		}
		serve(ws)
	}))
	t.Cleanup(srv.Close)
	return "ws" + strings.TrimPrefix(srv.URL, "http")
}

func waitFor[T any](t *testing.T, ch <-chan T, what string) T {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(testTimeout):
		t.Fatalf("timed out waiting for %s", what)
		panic("unreachable")
	}
}

func TestDialReportsOpen(t *testing.T) {
	url := startTestServer(t, func(ws *websocket.Conn) {
		defer ws.Close()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	})

	h := newRecordingHandler()
	conn, err := Dial(context.Background(), url, h)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	waitFor(t, h.opened, "open event")
}

func TestDialFailure(t *testing.T) {
	h := newRecordingHandler()
	ctx, cancel := context.WithTimeout(context.Background(), 500*time.Millisecond)
	defer cancel()

	_, err := Dial(ctx, "ws://127.0.0.1:1/ws", h)
	if err == nil {
		t.Fatal("Expected dial to a dead port to fail")
	}

	select {
	case <-h.opened:
		t.Error("Expected no open event after a failed dial")
	default:
	}
}

func TestInboundFramesReachHandlerInOrder(t *testing.T) {
	url := startTestServer(t, func(ws *websocket.Conn) {
		defer ws.Close()
		for _, payload := range []string{
			`{"type":"color","color":"black"}`,
			`{"type":"winner","message":"Black wins!"}`,
		} {
			if err := ws.WriteMessage(websocket.TextMessage, []byte(payload)); err != nil {
				return
			}
		}
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	})

	h := newRecordingHandler()
	conn, err := Dial(context.Background(), url, h)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	first := waitFor(t, h.messages, "first frame")
	if !strings.Contains(string(first), `"color"`) {
		t.Errorf("Unexpected first frame: %s", first)
	}
	second := waitFor(t, h.messages, "second frame")
	if !strings.Contains(string(second), `"winner"`) {
		t.Errorf("Unexpected second frame: %s", second)
	}
}

func TestSendReachesServer(t *testing.T) {
	received := make(chan []byte, 1)
	url := startTestServer(t, func(ws *websocket.Conn) {
		defer ws.Close()
		_, data, err := ws.ReadMessage()
		if err != nil {
			return
		}
		received <- data
	})

	h := newRecordingHandler()
	conn, err := Dial(context.Background(), url, h)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	if err := conn.Send(protocol.NewMove(10)); err != nil {
		t.Fatalf("Send failed: %v", err)
	}

	data := waitFor(t, received, "server receipt")
	if string(data) != `{"type":"move","move":10}` {
		t.Errorf("Unexpected payload on the wire: %s", data)
	}
}

func TestServerCloseReportsHandleClose(t *testing.T) {
	url := startTestServer(t, func(ws *websocket.Conn) {
		ws.WriteMessage(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, "bye"))
		ws.Close()
	})

	h := newRecordingHandler()
	conn, err := Dial(context.Background(), url, h)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}
	defer conn.Close()

	// A clean close is not an error.
	if closeErr := waitFor(t, h.closed, "close event"); closeErr != nil {
		t.Errorf("Expected clean close, got %v", closeErr)
	}
}

func TestSendAfterCloseFailsFast(t *testing.T) {
	url := startTestServer(t, func(ws *websocket.Conn) {
		defer ws.Close()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	})

	h := newRecordingHandler()
	conn, err := Dial(context.Background(), url, h)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}

	if err := conn.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}
	waitFor(t, h.closed, "close event")

	if err := conn.Send(protocol.NewResign()); !errors.Is(err, ErrConnClosed) {
		t.Errorf("Expected ErrConnClosed, got %v", err)
	}
}

func TestCloseIdempotent(t *testing.T) {
	url := startTestServer(t, func(ws *websocket.Conn) {
		defer ws.Close()
		for {
			if _, _, err := ws.ReadMessage(); err != nil {
				return
			}
		}
	})

	h := newRecordingHandler()
	conn, err := Dial(context.Background(), url, h)
	if err != nil {
		t.Fatalf("Dial failed: %v", err)
	}

	conn.Close()
	conn.Close()

	waitFor(t, h.closed, "close event")
	select {
	case err := <-h.closed:
		t.Errorf("Expected exactly one close event, got another: %v", err)
	case <-time.After(100 * time.Millisecond):
	}
}

func TestSendFailsFastWhenQueueFull(t *testing.T) {
	// No pumps running: every queued message stays queued, as if the
	// write pump were stalled on an unresponsive peer.
	c := &Conn{
		send: make(chan []byte, sendQueueSize),
		done: make(chan struct{}),
	}

	for i := 0; i < sendQueueSize; i++ {
		if err := c.Send(protocol.NewChat("filler")); err != nil {
			t.Fatalf("Expected send %d to queue, got %v", i, err)
		}
	}
	if err := c.Send(protocol.NewChat("one too many")); !errors.Is(err, ErrSendQueueFull) {
		t.Errorf("Expected ErrSendQueueFull, got %v", err)
	}
}
