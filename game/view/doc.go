// Package view is the presentation side of the client: a projection from
// session state to display updates.
//
// The session layer guarantees it only calls a View with complete,
// internally consistent state, after a transition has fully applied. Views
// must tolerate being called repeatedly with identical input and render the
// same output each time; they hold no game state of their own.
//
// Terminal renders to any io.Writer as plain text: an 8x8 grid with
// algebraic coordinates, piece counts, turn and status lines, and
// timestamped chat lines. Nop discards everything and exists for tests and
// headless transports.
package view
