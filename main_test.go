package main

import (
	"errors"
	"strings"
	"testing"

	"github.com/gilmaicor/othello-game-ppd/game/session"
	"github.com/gilmaicor/othello-game-ppd/game/state"
)

func TestConstants(t *testing.T) {
	if Version == "" {
		t.Error("Version should not be empty")
	}
	if AppName == "" {
		t.Error("AppName should not be empty")
	}

	expectedVersion := "1.0.0"
	if Version != expectedVersion {
		t.Errorf("Expected version %s, got %s", expectedVersion, Version)
	}

	expectedAppName := "Othello Client"
	if AppName != expectedAppName {
		t.Errorf("Expected app name %s, got %s", expectedAppName, AppName)
	}
}

func TestNewRootCommand(t *testing.T) {
	cmd := newRootCommand()
	if cmd == nil {
		t.Fatal("Expected root command to be created")
	}
	if cmd.DefaultCommand != "play" {
		t.Errorf("Expected play to be the default mode, got %s", cmd.DefaultCommand)
	}
	if len(cmd.Commands) != 2 {
		t.Errorf("Expected 2 subcommands, got %d", len(cmd.Commands))
	}
}

func TestParseCommand(t *testing.T) {
	tests := []struct {
		line string
		kind commandKind
		arg  string
	}{
		{"", cmdEmpty, ""},
		{"   ", cmdEmpty, ""},
		{"d3", cmdMove, "d3"},
		{" 27 ", cmdMove, "27"},
		{"/chat hello there", cmdChat, "hello there"},
		{"/chat", cmdChat, ""},
		{"/resign", cmdResign, ""},
		{"/quit", cmdQuit, ""},
		{"/exit", cmdQuit, ""},
		{"/help", cmdHelp, ""},
		{"/dance", cmdUnknown, "dance"},
	}

	for _, tc := range tests {
		kind, arg := parseCommand(tc.line)
		if kind != tc.kind || arg != tc.arg {
			t.Errorf("parseCommand(%q) = (%v, %q), want (%v, %q)", tc.line, kind, arg, tc.kind, tc.arg)
		}
	}
}

func TestFriendlyReason(t *testing.T) {
	tests := []struct {
		err  error
		want string
	}{
		{session.ErrNotStarted, "not started"},
		{session.ErrNotYourTurn, "not your turn"},
		{session.ErrCellRange, "not a board cell"},
		{state.ErrBadCellRef, "not a board cell"},
		{session.ErrEmptyChat, "empty"},
		{session.ErrNotConnected, "closed"},
		{errors.New("broken pipe"), "broken pipe"},
	}

	for _, tc := range tests {
		got := friendlyReason(tc.err)
		if !strings.Contains(strings.ToLower(got), tc.want) {
			t.Errorf("friendlyReason(%v) = %q, expected it to mention %q", tc.err, got, tc.want)
		}
	}
}
