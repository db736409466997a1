package view

import (
	"fmt"
	"io"
	"strings"

	"github.com/gilmaicor/othello-game-ppd/game/state"
)

// Terminal renders the session to a plain text stream.
type Terminal struct {
	w io.Writer
}

// NewTerminal creates a terminal view writing to w.
func NewTerminal(w io.Writer) *Terminal {
	return &Terminal{w: w}
}

func (t *Terminal) Identity(c state.Color) {
	fmt.Fprintf(t.w, "You are playing as %s.\n", c.DisplayName())
}

func (t *Terminal) Board(b state.Board) {
	fmt.Fprint(t.w, RenderBoard(b))
}

func (t *Terminal) Turn(c state.Color) {
	fmt.Fprintf(t.w, "Turn: %s\n", c.DisplayName())
}

func (t *Terminal) Chat(e state.ChatEntry) {
	fmt.Fprintf(t.w, "[%s] %s: %s\n", e.Time.Format("15:04"), e.Color.DisplayName(), e.Text)
}

func (t *Terminal) Banner(text string) {
	fmt.Fprintf(t.w, "-- %s --\n", text)
}

func (t *Terminal) Result(text string) {
	fmt.Fprintf(t.w, "== %s ==\n", text)
}

// RenderBoard draws the board as text, with algebraic coordinates and the
// piece counts underneath. Deterministic for a given board.
func RenderBoard(b state.Board) string {
	var sb strings.Builder
	sb.WriteString("  a b c d e f g h\n")
	for row := 0; row < 8; row++ {
		fmt.Fprintf(&sb, "%d ", row+1)
		for col := 0; col < 8; col++ {
			switch b[row*8+col] {
			case state.CellBlack:
				sb.WriteString("x ")
			case state.CellWhite:
				sb.WriteString("o ")
			default:
				sb.WriteString(". ")
			}
		}
		fmt.Fprintf(&sb, "%d\n", row+1)
	}
	sb.WriteString("  a b c d e f g h\n")
	black, white := b.Counts()
	fmt.Fprintf(&sb, "Black (x): %d   White (o): %d\n", black, white)
	return sb.String()
}
