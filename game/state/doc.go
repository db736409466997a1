// Package state holds the client's view of one Othello session and the
// pure transition function that advances it.
//
// The server owns the rules; this package never computes move legality,
// captures, or winners. It only mirrors what the server declares: the
// assigned color, whether the game has started, whose turn it is, the 64
// board cells, and the chat transcript.
//
// State is a plain value. Transition takes a state and an inbound message
// and returns the next state plus an Event describing the side effect the
// caller should perform (redraw, banner, close the connection). On any
// validation failure the input state is returned unchanged, so a message
// either applies whole or not at all. Because Transition does no I/O it can
// be tested against arbitrary message sequences without a live connection.
//
// Core Types:
//
// Color and CellValue are typed string enums in the wire vocabulary. Board
// is a value array of 64 cells with conversion from the wire representation
// and piece counting. State bundles everything a consumer may read.
//
// Usage:
//
//	s := state.New()
//	s, ev, err := state.Transition(s, msg, time.Now())
//	if err != nil {
//		// s is unchanged; report and carry on
//	}
//	switch ev.Kind {
//	case state.EventBoardUpdated:
//		// redraw s.Board, s.CurrentTurn
//	}
package state
