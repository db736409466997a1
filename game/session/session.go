package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gilmaicor/othello-game-ppd/game/protocol"
	"github.com/gilmaicor/othello-game-ppd/game/state"
	"github.com/gilmaicor/othello-game-ppd/game/view"
)

var (
	ErrNotConnected = errors.New("connection is not open")
	ErrNotStarted   = errors.New("game has not started")
	ErrNotYourTurn  = errors.New("not your turn")
	ErrCellRange    = errors.New("cell index must be between 0 and 63")
	ErrEmptyChat    = errors.New("chat message is empty")
	ErrNoTransport  = errors.New("no transport attached")
)

// Transport is what the session needs from the connection layer. Send must
// fail fast when the connection is not open rather than queue silently, and
// must never block: the session calls it with its state lock held.
type Transport interface {
	Send(msg protocol.Message) error
	Close() error
}

// Session is the single owner of the client's game state. All reads and
// writes go through its methods; one transition at a time.
type Session struct {
	mu        sync.Mutex
	id        string
	state     state.State
	transport Transport
	view      view.View
	log       zerolog.Logger
	clock     func() time.Time
}

// New creates a session in the connecting state, rendering to v. The
// transport is attached separately once dialing succeeds.
func New(v view.View) *Session {
	id := uuid.NewString()
	return &Session{
		id:    id,
		state: state.New(),
		view:  v,
		log:   log.With().Str("session", id).Logger(),
		clock: time.Now,
	}
}

// ID returns the locally generated session identifier used in logs.
func (s *Session) ID() string {
	return s.id
}

// Attach binds the transport used for outbound sends.
func (s *Session) Attach(t Transport) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.transport = t
}

// Snapshot returns a copy of the current state for read-only consumers.
func (s *Session) Snapshot() state.State {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.state
}

// HandleOpen marks the connection open. Called by the transport once the
// handshake completes.
func (s *Session) HandleOpen() {
	s.mu.Lock()
	s.state.Conn = state.Open
	s.mu.Unlock()

	s.log.Info().Msg("connected to server")
	s.view.Banner("Connected. Waiting for an opponent.")
}

// HandleMessage dispatches one inbound frame. Malformed payloads are
// rejected whole and logged; the connection stays up. A server error
// message closes the session for good.
func (s *Session) HandleMessage(raw []byte) {
	msg, err := protocol.Decode(raw)
	if err != nil {
		s.log.Warn().Err(err).Msg("dropping undecodable frame")
		return
	}

	s.mu.Lock()
	if s.state.Conn == state.Closed {
		s.mu.Unlock()
		s.log.Debug().Str("type", msg.Type).Msg("ignoring message after close")
		return
	}

	next, ev, err := state.Transition(s.state, msg, s.clock())
	if err != nil {
		s.mu.Unlock()
		s.log.Warn().Err(err).Str("type", msg.Type).Msg("rejecting protocol-error message")
		s.view.Banner("Ignored a malformed " + msg.Type + " message from the server.")
		return
	}
	s.state = next
	if ev.Kind == state.EventFatal {
		// Freeze before releasing the lock so queued messages become no-ops.
		s.state.Conn = state.Closed
	}
	snapshot := s.state
	transport := s.transport
	s.mu.Unlock()

	s.apply(ev, snapshot, transport)
}

// apply performs the side effect a transition asked for. Runs without the
// state lock held: views and transports may block.
func (s *Session) apply(ev state.Event, snap state.State, transport Transport) {
	switch ev.Kind {
	case state.EventFatal:
		s.log.Error().Str("reason", ev.Text).Msg("server reported a fatal error")
		s.view.Result(ev.Text)
		if transport != nil {
			if err := transport.Close(); err != nil {
				s.log.Debug().Err(err).Msg("transport close after server error")
			}
		}

	case state.EventIdentity:
		s.log.Info().Str("color", snap.OwnColor.String()).Msg("color assigned")
		s.view.Identity(snap.OwnColor)

	case state.EventStarted:
		s.log.Info().Msg("game started")
		if ev.Text != "" {
			s.view.Banner(ev.Text)
		} else {
			s.view.Banner("The game has started.")
		}
		s.view.Board(snap.Board)
		if snap.CurrentTurn != state.ColorUnset {
			s.view.Turn(snap.CurrentTurn)
		}

	case state.EventBoardUpdated:
		s.view.Board(snap.Board)
		s.view.Turn(snap.CurrentTurn)

	case state.EventResult:
		s.log.Info().Str("result", ev.Text).Msg("game result announced")
		s.view.Result(ev.Text)

	case state.EventChat:
		s.view.Chat(ev.Entry)

	case state.EventIgnored:
		s.log.Debug().Str("type", ev.Text).Msg("ignoring unrecognized message type")
	}
}

// HandleClose freezes the session. Idempotent; safe to call from the
// transport's read loop after a local or remote close.
func (s *Session) HandleClose(err error) {
	s.mu.Lock()
	alreadyClosed := s.state.Conn == state.Closed
	s.state.Conn = state.Closed
	s.mu.Unlock()

	if alreadyClosed {
		return
	}
	if err != nil {
		s.log.Warn().Err(err).Msg("connection lost")
		s.view.Banner("Connection lost.")
		return
	}
	s.log.Info().Msg("connection closed")
	s.view.Banner("Connection closed.")
}

// Move validates and sends a move for the given cell index. The board is
// not touched locally; the client waits for the server's update. The lock
// stays held across the send so an inbound update cannot flip the turn
// between the gate check and the wire.
func (s *Session) Move(cell int) error {
	if cell < 0 || cell >= protocol.BoardCells {
		return ErrCellRange
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Conn != state.Open {
		return ErrNotConnected
	}
	if !s.state.GameStarted {
		return ErrNotStarted
	}
	if s.state.CurrentTurn != s.state.OwnColor || s.state.OwnColor == state.ColorUnset {
		return ErrNotYourTurn
	}
	if s.transport == nil {
		return ErrNoTransport
	}

	s.log.Debug().Int("cell", cell).Str("cell_label", state.CellLabel(cell)).Msg("sending move")
	return s.transport.Send(protocol.NewMove(cell))
}

// Resign sends a resignation. Allowed on the opponent's turn. The local
// "opponent wins" result shows immediately; the server's winner message
// overwrites it if it says otherwise.
func (s *Session) Resign() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Conn != state.Open {
		return ErrNotConnected
	}
	if !s.state.GameStarted {
		return ErrNotStarted
	}
	if s.transport == nil {
		return ErrNoTransport
	}

	if opponent := s.state.OwnColor.Opponent(); opponent != state.ColorUnset {
		s.view.Result(opponent.DisplayName() + " wins by resignation!")
	}
	s.log.Info().Msg("resigning")
	return s.transport.Send(protocol.NewResign())
}

// Chat sends a chat line. The text is trimmed; there is no local echo, the
// server relays the message back to every participant.
func (s *Session) Chat(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return ErrEmptyChat
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.state.Conn != state.Open {
		return ErrNotConnected
	}
	if s.transport == nil {
		return ErrNoTransport
	}

	return s.transport.Send(protocol.NewChat(text))
}
