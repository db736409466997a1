// Package mcp exposes a live game session as MCP tools, so an agent can
// play over stdio while the WebSocket connection to the server stays
// managed by the session layer.
//
// Tools:
//   - game_state: formatted board, turn, status, and recent chat
//   - play_move:  place a piece ("d3" or a 0..63 index)
//   - send_chat:  say something to the opponent
//   - resign:     concede the game
//
// Every tool goes through the session's action gate; rejections (not your
// turn, game not started) come back as tool errors rather than reaching
// the server.
//
// Usage:
//
//	srv := mcp.NewServer(sess)
//	err := server.ServeStdio(srv.MCPServer())
package mcp
