package state

import (
	"errors"
	"fmt"
	"time"

	"github.com/gilmaicor/othello-game-ppd/game/protocol"
)

// ErrColorReassigned reports a second color assignment for the session.
// The first assignment wins; later ones are protocol errors.
var ErrColorReassigned = errors.New("own color is already assigned")

// EventKind identifies the side effect a transition asks its caller to
// perform. State changes and side effects are paired so a consumer can
// apply them atomically.
type EventKind int

const (
	// EventNone means the message required no action.
	EventNone EventKind = iota

	// EventFatal is a server-declared error: surface Event.Text and close
	// the connection. The state is untouched.
	EventFatal

	// EventIdentity means OwnColor was just assigned.
	EventIdentity

	// EventStarted means the game began: announce Event.Text and redraw.
	EventStarted

	// EventBoardUpdated means Board and CurrentTurn were replaced together.
	EventBoardUpdated

	// EventResult carries the server's result banner. Informational only;
	// the session stays open.
	EventResult

	// EventChat means Event.Entry was appended to the transcript.
	EventChat

	// EventIgnored marks an unrecognized message type, skipped as a
	// forward-compatible no-op.
	EventIgnored
)

// Event describes what a transition did and what the caller should show.
type Event struct {
	Kind  EventKind
	Text  string
	Entry ChatEntry
}

// Transition applies one inbound server message to the session state.
//
// It is a pure function: no I/O, no mutation of the input. On error the
// returned state equals the input state, so a malformed message can never
// be half-applied. now timestamps chat entries.
func Transition(s State, msg protocol.Message, now time.Time) (State, Event, error) {
	if err := protocol.ValidateInbound(msg); err != nil {
		return s, Event{}, err
	}

	switch msg.Type {
	case protocol.TypeError:
		// State stays frozen as-is; the session layer closes the transport.
		return s, Event{Kind: EventFatal, Text: msg.Message}, nil

	case protocol.TypeColor:
		color, err := ParseColor(msg.Color)
		if err != nil {
			return s, Event{}, err
		}
		if s.OwnColor != ColorUnset {
			return s, Event{}, fmt.Errorf("%w: have %s, got %s", ErrColorReassigned, s.OwnColor, color)
		}
		s.OwnColor = color
		return s, Event{Kind: EventIdentity}, nil

	case protocol.TypeStart:
		// Parse every field before assigning any, so an error cannot
		// leave the returned state half-applied.
		board, err := BoardFromWire(msg.Board)
		if err != nil {
			return s, Event{}, err
		}
		turn := s.CurrentTurn
		if msg.CurrentPlayer != "" {
			turn, err = ParseColor(msg.CurrentPlayer)
			if err != nil {
				return s, Event{}, err
			}
		}
		s.GameStarted = true
		s.Board = board
		s.CurrentTurn = turn
		return s, Event{Kind: EventStarted, Text: msg.Message}, nil

	case protocol.TypeUpdate:
		board, err := BoardFromWire(msg.Board)
		if err != nil {
			return s, Event{}, err
		}
		turn, err := ParseColor(msg.CurrentPlayer)
		if err != nil {
			return s, Event{}, err
		}
		// Board and turn replace together; no partial application.
		s.Board = board
		s.CurrentTurn = turn
		return s, Event{Kind: EventBoardUpdated}, nil

	case protocol.TypeWinner:
		return s, Event{Kind: EventResult, Text: msg.Message}, nil

	case protocol.TypeChat:
		color, err := ParseColor(msg.Color)
		if err != nil {
			return s, Event{}, err
		}
		entry := ChatEntry{Time: now, Color: color, Text: msg.ChatMessage}
		// Full slice expression forces a copy on append so earlier State
		// values never see later entries.
		s.ChatLog = append(s.ChatLog[:len(s.ChatLog):len(s.ChatLog)], entry)
		return s, Event{Kind: EventChat, Entry: entry}, nil

	default:
		return s, Event{Kind: EventIgnored, Text: msg.Type}, nil
	}
}
