// Package protocol defines the wire protocol spoken with the Othello server.
//
// Messages travel as JSON text frames over a single WebSocket connection.
// Every message is a flat object discriminated by its "type" field; fields
// not relevant to a given type are omitted.
//
// Server to client:
//   - {type: "error", message: string}
//   - {type: "color", color: "black"|"white"}
//   - {type: "start", message: string, board: [64], currentPlayer?: "black"|"white"}
//   - {type: "update", board: [64], currentPlayer: "black"|"white"}
//   - {type: "winner", message: string}
//   - {type: "chat", color: "black"|"white", chatMessage: string}
//
// Client to server:
//   - {type: "move", move: 0..63}
//   - {type: "resign"}
//   - {type: "chat", chatMessage: string}
//
// Board cells are "black", "white", or empty (null / "").
//
// Decode is deliberately lenient about unrecognized type values so the
// session layer can treat them as forward-compatible no-ops. ValidateInbound
// is strict about the shape of the types it does recognize: a message either
// validates whole or is rejected whole.
package protocol
