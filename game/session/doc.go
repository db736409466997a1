// Package session owns the live game session: one state record, the
// dispatch of inbound server messages into it, and the gate that validates
// user actions before anything is sent.
//
// A Session sits between a transport and a view:
//
//	transport inbound event -> Session.HandleMessage -> state.Transition -> view
//	user action -> Session.Move/Resign/Chat -> transport.Send
//
// Exactly one transition runs at a time: the transport's read loop and the
// user's goroutine serialize on the session mutex, and every transition
// completes before the next begins. The session never computes game rules;
// it only refuses actions the current state already proves invalid (moving
// before the game starts, moving out of turn, sending on a closed
// connection) and relays everything else to the authoritative server.
//
// Server-declared errors are fatal: the message is surfaced, the transport
// closed, and the state frozen. Any messages still queued behind the error
// are dropped. Malformed payloads, by contrast, are logged and skipped
// without touching state or connection.
//
// Usage:
//
//	sess := session.New(view.NewTerminal(os.Stdout))
//	conn, err := websocket.Dial(ctx, url, sess)
//	if err != nil {
//		return err
//	}
//	sess.Attach(conn)
//
//	if err := sess.Move(27); err != nil {
//		// errors.Is against ErrNotStarted, ErrNotYourTurn, ...
//	}
package session
