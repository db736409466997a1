package state

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/gilmaicor/othello-game-ppd/game/protocol"
)

// Color identifies a player. The zero value means no color has been
// assigned yet.
type Color string

const (
	ColorUnset Color = ""
	Black      Color = "black"
	White      Color = "white"
)

// ParseColor converts a wire color string into a Color.
func ParseColor(s string) (Color, error) {
	switch s {
	case "black":
		return Black, nil
	case "white":
		return White, nil
	default:
		return ColorUnset, fmt.Errorf("%w: %q", protocol.ErrBadColor, s)
	}
}

// Opponent returns the other player's color, or ColorUnset for ColorUnset.
func (c Color) Opponent() Color {
	switch c {
	case Black:
		return White
	case White:
		return Black
	default:
		return ColorUnset
	}
}

func (c Color) String() string {
	if c == ColorUnset {
		return "unset"
	}
	return string(c)
}

// DisplayName returns the capitalized name used in user-facing text.
func (c Color) DisplayName() string {
	switch c {
	case Black:
		return "Black"
	case White:
		return "White"
	default:
		return "Unassigned"
	}
}

// CellValue is the content of one board cell.
type CellValue string

const (
	Empty     CellValue = ""
	CellBlack CellValue = "black"
	CellWhite CellValue = "white"
)

// Board is the full 8x8 board, row-major from the top-left corner. It is a
// value type: assignment copies, so a replaced board never aliases the old
// one.
type Board [protocol.BoardCells]CellValue

// BoardFromWire converts the server's cell array. The caller is expected to
// have validated the payload; out-of-shape input still fails rather than
// truncating.
func BoardFromWire(cells []string) (Board, error) {
	var b Board
	if len(cells) != protocol.BoardCells {
		return b, fmt.Errorf("%w: got %d", protocol.ErrBoardSize, len(cells))
	}
	for i, cell := range cells {
		switch cell {
		case "":
			b[i] = Empty
		case "black":
			b[i] = CellBlack
		case "white":
			b[i] = CellWhite
		default:
			return Board{}, fmt.Errorf("%w: cell %d is %q", protocol.ErrBadCell, i, cell)
		}
	}
	return b, nil
}

// Counts returns the number of black and white pieces on the board.
func (b Board) Counts() (black, white int) {
	for _, cell := range b {
		switch cell {
		case CellBlack:
			black++
		case CellWhite:
			white++
		}
	}
	return black, white
}

// ConnStatus is the lifecycle phase of the server connection.
type ConnStatus int

const (
	Connecting ConnStatus = iota
	Open
	Closed
)

func (s ConnStatus) String() string {
	switch s {
	case Connecting:
		return "connecting"
	case Open:
		return "open"
	case Closed:
		return "closed"
	default:
		return "unknown"
	}
}

// ChatEntry is one line of the chat transcript.
type ChatEntry struct {
	Time  time.Time
	Color Color
	Text  string
}

// State is the client's complete view of the session. It is a value; the
// ChatLog slice is re-sliced on append so historical copies stay intact.
type State struct {
	OwnColor    Color
	GameStarted bool
	CurrentTurn Color
	Board       Board
	Conn        ConnStatus
	ChatLog     []ChatEntry
}

// New returns the initial state for a freshly opened session: no color
// assigned, game not started, turn unknown, empty board, connecting.
func New() State {
	return State{Conn: Connecting}
}

// ErrBadCellRef reports a cell reference outside the 8x8 board.
var ErrBadCellRef = errors.New("cell must be a1..h8 or an index 0..63")

// ParseCell resolves a user-entered cell reference to a board index. It
// accepts algebraic coordinates ("d3": column a-h, row 1-8) and plain
// indexes ("27").
func ParseCell(ref string) (int, error) {
	ref = strings.ToLower(strings.TrimSpace(ref))
	if ref == "" {
		return 0, ErrBadCellRef
	}
	if len(ref) == 2 && ref[0] >= 'a' && ref[0] <= 'h' && ref[1] >= '1' && ref[1] <= '8' {
		col := int(ref[0] - 'a')
		row := int(ref[1] - '1')
		return row*8 + col, nil
	}
	idx, err := strconv.Atoi(ref)
	if err != nil || idx < 0 || idx >= protocol.BoardCells {
		return 0, fmt.Errorf("%w: %q", ErrBadCellRef, ref)
	}
	return idx, nil
}

// CellLabel is the inverse of ParseCell for display, e.g. 27 -> "d4".
func CellLabel(idx int) string {
	if idx < 0 || idx >= protocol.BoardCells {
		return "?"
	}
	return fmt.Sprintf("%c%d", 'a'+idx%8, idx/8+1)
}
