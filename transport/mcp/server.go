package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/gilmaicor/othello-game-ppd/game/session"
	"github.com/gilmaicor/othello-game-ppd/game/state"
	"github.com/gilmaicor/othello-game-ppd/game/view"
)

// chatTailLen bounds how much transcript game_state reports.
const chatTailLen = 10

// Server wraps one live session behind an MCP tool surface.
type Server struct {
	sess      *session.Session
	mcpServer *server.MCPServer
}

// NewServer builds the MCP server for a session.
func NewServer(sess *session.Session) *Server {
	s := &Server{sess: sess}
	s.initMCPServer()
	return s
}

// MCPServer returns the underlying server for ServeStdio.
func (s *Server) MCPServer() *server.MCPServer {
	return s.mcpServer
}

func (s *Server) initMCPServer() {
	s.mcpServer = server.NewMCPServer(
		"Othello Client",
		"1.0.0",
		server.WithToolCapabilities(true),
		server.WithInstructions(`Othello Client - MCP Interface

You are one of two players in an online Othello (Reversi) game. The server
owns the rules: it assigns your color, tracks turns, applies captures, and
declares the winner. This client only relays your actions.

GAME OBJECTIVE:
Place pieces to flank and capture your opponent's pieces. The player with
the most pieces when the board is full (or no moves remain) wins.

AVAILABLE TOOLS:
- game_state: Current board, your color, whose turn it is, recent chat
- play_move: Place a piece; cells are "a1".."h8" or indexes 0..63
- send_chat: Send a message to your opponent
- resign: Concede the game

Check game_state before moving: a move is only accepted when the game has
started and it is your turn. Illegal placements are judged by the server.`),
	)

	s.registerTools()
}

func (s *Server) registerTools() {
	s.mcpServer.AddTool(mcp.Tool{
		Name:        "game_state",
		Description: "Get the current game state: board, colors, turn, connection status, and recent chat",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleGameState)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "play_move",
		Description: "Place a piece on a cell. The server validates legality and responds with a board update.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"cell": map[string]interface{}{
					"type":        "string",
					"description": `Target cell, algebraic ("d3") or index ("19")`,
				},
			},
			Required: []string{"cell"},
		},
	}, s.handlePlayMove)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "send_chat",
		Description: "Send a chat message to the opponent",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"text": map[string]interface{}{
					"type":        "string",
					"description": "Message text",
				},
			},
			Required: []string{"text"},
		},
	}, s.handleSendChat)

	s.mcpServer.AddTool(mcp.Tool{
		Name:        "resign",
		Description: "Concede the game. Allowed on either player's turn once the game has started.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, s.handleResign)
}

func (s *Server) handleGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return mcp.NewToolResultText(formatState(s.sess.Snapshot())), nil
}

func (s *Server) handlePlayMove(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	ref, _ := args["cell"].(string)

	cell, err := state.ParseCell(ref)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	if err := s.sess.Move(cell); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(fmt.Sprintf("Move sent: %s. Waiting for the server's board update.", state.CellLabel(cell))), nil
}

func (s *Server) handleSendChat(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	args, _ := request.Params.Arguments.(map[string]interface{})
	text, _ := args["text"].(string)

	if err := s.sess.Chat(text); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Chat sent. The server echoes it back to both players."), nil
}

func (s *Server) handleResign(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if err := s.sess.Resign(); err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText("Resignation sent."), nil
}

// formatState renders a snapshot for tool output.
func formatState(snap state.State) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "Connection: %s\n", snap.Conn)
	fmt.Fprintf(&sb, "Your color: %s\n", snap.OwnColor.DisplayName())
	if snap.GameStarted {
		fmt.Fprintf(&sb, "Turn: %s\n", snap.CurrentTurn.DisplayName())
	} else {
		sb.WriteString("Game not started yet.\n")
	}
	sb.WriteString("\n")
	sb.WriteString(view.RenderBoard(snap.Board))

	if len(snap.ChatLog) > 0 {
		sb.WriteString("\nRecent chat:\n")
		tail := snap.ChatLog
		if len(tail) > chatTailLen {
			tail = tail[len(tail)-chatTailLen:]
		}
		for _, entry := range tail {
			fmt.Fprintf(&sb, "[%s] %s: %s\n", entry.Time.Format("15:04"), entry.Color.DisplayName(), entry.Text)
		}
	}

	return sb.String()
}
