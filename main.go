// Command othello-client is a terminal client for the two-player Othello
// server.
//
// It supports two modes:
//  1. "play" (default): interactive terminal play over the server's WebSocket
//  2. "mcp": expose the live session as MCP tools over stdio for agent play
//
// Flags control the server URL and logging; every flag can also come from
// the environment (see the game/config package).
package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"
	"sync"
	"syscall"

	mcpserver "github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/urfave/cli/v3"

	"github.com/gilmaicor/othello-game-ppd/game/config"
	"github.com/gilmaicor/othello-game-ppd/game/session"
	"github.com/gilmaicor/othello-game-ppd/game/state"
	"github.com/gilmaicor/othello-game-ppd/game/view"
	mcptransport "github.com/gilmaicor/othello-game-ppd/transport/mcp"
	wstransport "github.com/gilmaicor/othello-game-ppd/transport/websocket"
)

// Version information
const (
	Version = "1.0.0"
	AppName = "Othello Client"
)

const inputHelp = `Commands:
  d3 (or 19)     place a piece on that cell
  /chat <text>   send a chat message
  /resign        concede the game
  /quit          leave`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := newRootCommand().Run(ctx, os.Args); err != nil {
		log.Fatal().Err(err).Msg("client exited")
	}
}

// newRootCommand builds the CLI surface: play (default) and mcp modes.
func newRootCommand() *cli.Command {
	flags := []cli.Flag{
		&cli.StringFlag{
			Name:  "url",
			Usage: "WebSocket endpoint of the game server",
		},
		&cli.StringFlag{
			Name:  "log-level",
			Usage: "log level (debug, info, warn, error)",
		},
		&cli.BoolFlag{
			Name:  "json-log",
			Usage: "emit raw JSON logs instead of console output",
		},
	}

	return &cli.Command{
		Name:           "othello-client",
		Usage:          "terminal client for the two-player Othello server",
		Version:        Version,
		DefaultCommand: "play",
		Commands: []*cli.Command{
			{
				Name:   "play",
				Usage:  "connect and play interactively in the terminal",
				Flags:  flags,
				Action: runPlay,
			},
			{
				Name:   "mcp",
				Usage:  "connect and expose the session as MCP tools over stdio",
				Flags:  flags,
				Action: runMCP,
			},
		},
	}
}

// loadConfig resolves the configuration, flags overriding environment.
func loadConfig(cmd *cli.Command) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if v := cmd.String("url"); v != "" {
		cfg.ServerURL = v
	}
	if v := cmd.String("log-level"); v != "" {
		cfg.LogLevel = v
	}
	if cmd.Bool("json-log") {
		cfg.LogJSON = true
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setupLogging configures the global zerolog logger. Logs always go to
// stderr: in mcp mode stdout belongs to the protocol.
func setupLogging(cfg *config.Config) {
	if lvl, err := zerolog.ParseLevel(cfg.LogLevel); err == nil {
		zerolog.SetGlobalLevel(lvl)
	}
	if cfg.LogJSON {
		log.Logger = log.Output(os.Stderr)
		return
	}
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})
}

// connWatcher forwards transport events to the session and additionally
// signals main when the connection ends, so the input loop can stop.
type connWatcher struct {
	*session.Session
	closed chan struct{}
	once   sync.Once
}

func (w *connWatcher) HandleClose(err error) {
	w.Session.HandleClose(err)
	w.once.Do(func() { close(w.closed) })
}

// connect dials the server and wires the session to the transport.
func connect(ctx context.Context, cfg *config.Config, sess *session.Session) (*wstransport.Conn, *connWatcher, error) {
	watcher := &connWatcher{Session: sess, closed: make(chan struct{})}

	dialCtx, cancel := context.WithTimeout(ctx, cfg.HandshakeTimeout)
	defer cancel()

	conn, err := wstransport.Dial(dialCtx, cfg.ServerURL, watcher)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to connect to %s: %w", cfg.ServerURL, err)
	}
	sess.Attach(conn)
	return conn, watcher, nil
}

// runPlay is the interactive terminal mode.
func runPlay(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	log.Info().Str("url", cfg.ServerURL).Msgf("Starting %s v%s", AppName, Version)

	sess := session.New(view.NewTerminal(os.Stdout))
	conn, watcher, err := connect(ctx, cfg, sess)
	if err != nil {
		return err
	}
	defer conn.Close()

	fmt.Println(inputHelp)

	lines := make(chan string)
	go readLines(os.Stdin, lines)

	for {
		select {
		case <-ctx.Done():
			return nil
		case <-watcher.closed:
			return nil
		case line, ok := <-lines:
			if !ok {
				return nil
			}
			if quit := handleLine(sess, line); quit {
				return nil
			}
		}
	}
}

// runMCP serves the session as MCP tools over stdio.
func runMCP(ctx context.Context, cmd *cli.Command) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	setupLogging(cfg)

	log.Info().Str("url", cfg.ServerURL).Msgf("Starting %s v%s (mcp mode)", AppName, Version)

	sess := session.New(view.Nop{})
	conn, _, err := connect(ctx, cfg, sess)
	if err != nil {
		return err
	}
	defer conn.Close()

	srv := mcptransport.NewServer(sess)
	if err := mcpserver.ServeStdio(srv.MCPServer()); err != nil {
		return fmt.Errorf("mcp stdio server error: %w", err)
	}
	return nil
}

// readLines pumps stdin lines into ch and closes it on EOF.
func readLines(r io.Reader, ch chan<- string) {
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		ch <- scanner.Text()
	}
	close(ch)
}

// commandKind classifies one line of user input.
type commandKind int

const (
	cmdEmpty commandKind = iota
	cmdMove
	cmdChat
	cmdResign
	cmdQuit
	cmdHelp
	cmdUnknown
)

// parseCommand splits a raw input line into its kind and argument.
func parseCommand(line string) (commandKind, string) {
	line = strings.TrimSpace(line)
	if line == "" {
		return cmdEmpty, ""
	}
	if !strings.HasPrefix(line, "/") {
		return cmdMove, line
	}

	verb, arg, _ := strings.Cut(line[1:], " ")
	switch strings.ToLower(verb) {
	case "chat":
		return cmdChat, strings.TrimSpace(arg)
	case "resign":
		return cmdResign, ""
	case "quit", "exit":
		return cmdQuit, ""
	case "help":
		return cmdHelp, ""
	default:
		return cmdUnknown, verb
	}
}

// handleLine executes one user command against the session. Returns true
// when the user asked to leave.
func handleLine(sess *session.Session, line string) bool {
	kind, arg := parseCommand(line)

	switch kind {
	case cmdEmpty:
		return false

	case cmdQuit:
		return true

	case cmdHelp:
		fmt.Println(inputHelp)
		return false

	case cmdUnknown:
		fmt.Printf("Unknown command /%s.\n%s\n", arg, inputHelp)
		return false

	case cmdChat:
		if err := sess.Chat(arg); err != nil {
			fmt.Println(friendlyReason(err))
		}
		return false

	case cmdResign:
		if err := sess.Resign(); err != nil {
			fmt.Println(friendlyReason(err))
		}
		return false

	default:
		cell, err := state.ParseCell(arg)
		if err != nil {
			fmt.Println(friendlyReason(err))
			return false
		}
		if err := sess.Move(cell); err != nil {
			fmt.Println(friendlyReason(err))
		}
		return false
	}
}

// friendlyReason maps gate errors onto the inline messages shown to the
// player.
func friendlyReason(err error) string {
	switch {
	case errors.Is(err, session.ErrNotStarted):
		return "The game has not started yet. Waiting for an opponent."
	case errors.Is(err, session.ErrNotYourTurn):
		return "It is not your turn."
	case errors.Is(err, session.ErrCellRange), errors.Is(err, state.ErrBadCellRef):
		return "That is not a board cell. Use a1..h8 or an index 0..63."
	case errors.Is(err, session.ErrEmptyChat):
		return "Nothing to send: the chat message is empty."
	case errors.Is(err, session.ErrNotConnected):
		return "The connection is closed."
	default:
		return "Could not send: " + err.Error()
	}
}
