package protocol

import (
	"encoding/json"
	"errors"
	"fmt"
)

// Message types sent by the server.
const (
	TypeError  = "error"
	TypeColor  = "color"
	TypeStart  = "start"
	TypeUpdate = "update"
	TypeWinner = "winner"
	TypeChat   = "chat"
)

// Message types sent by the client.
const (
	TypeMove   = "move"
	TypeResign = "resign"
)

// BoardCells is the number of cells on the 8x8 board.
const BoardCells = 64

var (
	ErrBadJSON      = errors.New("malformed message payload")
	ErrBoardSize    = errors.New("board must contain exactly 64 cells")
	ErrBadCell      = errors.New("board cell must be black, white, or empty")
	ErrBadColor     = errors.New("color must be black or white")
	ErrMissingField = errors.New("missing required field")
)

// Message is the flat wire representation shared by every message type.
// Type identifies which of the remaining fields are meaningful.
type Message struct {
	Type          string   `json:"type"`
	Board         []string `json:"board,omitempty"`
	CurrentPlayer string   `json:"currentPlayer,omitempty"`
	Message       string   `json:"message,omitempty"`
	Color         string   `json:"color,omitempty"`
	Move          *int     `json:"move,omitempty"`
	ChatMessage   string   `json:"chatMessage,omitempty"`
}

// NewMove builds the outbound message for placing a piece at cell.
// Move is a pointer on the wire struct so that cell 0 survives omitempty.
func NewMove(cell int) Message {
	return Message{Type: TypeMove, Move: &cell}
}

// NewResign builds the outbound resignation message.
func NewResign() Message {
	return Message{Type: TypeResign}
}

// NewChat builds the outbound chat message.
func NewChat(text string) Message {
	return Message{Type: TypeChat, ChatMessage: text}
}

// Decode parses a raw frame into a Message. Unrecognized type values decode
// fine; missing-field and shape checks belong to ValidateInbound.
func Decode(raw []byte) (Message, error) {
	var msg Message
	if err := json.Unmarshal(raw, &msg); err != nil {
		return Message{}, fmt.Errorf("%w: %v", ErrBadJSON, err)
	}
	if msg.Type == "" {
		return Message{}, fmt.Errorf("%w: type", ErrMissingField)
	}
	return msg, nil
}

// ValidateInbound checks that a decoded server message has the shape its
// declared type requires. Messages with unrecognized types pass; the caller
// decides what to do with them.
func ValidateInbound(msg Message) error {
	switch msg.Type {
	case TypeError, TypeWinner:
		if msg.Message == "" {
			return fmt.Errorf("%w: message", ErrMissingField)
		}
	case TypeColor:
		if err := validColor(msg.Color); err != nil {
			return err
		}
	case TypeStart:
		if err := validBoard(msg.Board); err != nil {
			return err
		}
		// currentPlayer is optional on start but must be valid when present.
		if msg.CurrentPlayer != "" {
			if err := validColor(msg.CurrentPlayer); err != nil {
				return err
			}
		}
	case TypeUpdate:
		if err := validBoard(msg.Board); err != nil {
			return err
		}
		if msg.CurrentPlayer == "" {
			return fmt.Errorf("%w: currentPlayer", ErrMissingField)
		}
		if err := validColor(msg.CurrentPlayer); err != nil {
			return err
		}
	case TypeChat:
		if err := validColor(msg.Color); err != nil {
			return err
		}
		if msg.ChatMessage == "" {
			return fmt.Errorf("%w: chatMessage", ErrMissingField)
		}
	}
	return nil
}

// Encode serializes a message for the wire.
func Encode(msg Message) ([]byte, error) {
	return json.Marshal(msg)
}

func validBoard(board []string) error {
	if board == nil {
		return fmt.Errorf("%w: board", ErrMissingField)
	}
	if len(board) != BoardCells {
		return fmt.Errorf("%w: got %d", ErrBoardSize, len(board))
	}
	for i, cell := range board {
		switch cell {
		case "", "black", "white":
		default:
			return fmt.Errorf("%w: cell %d is %q", ErrBadCell, i, cell)
		}
	}
	return nil
}

func validColor(color string) error {
	switch color {
	case "black", "white":
		return nil
	case "":
		return fmt.Errorf("%w: color", ErrMissingField)
	default:
		return fmt.Errorf("%w: got %q", ErrBadColor, color)
	}
}
