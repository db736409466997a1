package view

import (
	"github.com/gilmaicor/othello-game-ppd/game/state"
)

// View receives display updates from the session. Implementations must be
// pure projections: no game state, identical input produces identical
// output.
type View interface {
	// Identity shows which color this client plays.
	Identity(c state.Color)

	// Board redraws the full board. Counts are derived from it.
	Board(b state.Board)

	// Turn shows whose turn the server declared.
	Turn(c state.Color)

	// Chat appends one transcript entry.
	Chat(e state.ChatEntry)

	// Banner shows a transient status line (connected, game started, ...).
	Banner(text string)

	// Result shows the game outcome. A later call overwrites an earlier
	// one; the server's word is final.
	Result(text string)
}

// Nop is a View that discards everything.
type Nop struct{}

func (Nop) Identity(state.Color) {}
func (Nop) Board(state.Board) {}
func (Nop) Turn(state.Color) {}
func (Nop) Chat(state.ChatEntry) {}
func (Nop) Banner(string) {}
func (Nop) Result(string) {}
