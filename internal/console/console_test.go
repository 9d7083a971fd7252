// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package console

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/multisource/internal/controller"
	"github.com/stretchr/testify/require"
)

func TestReaderParsesFirstNonSpaceCharacter(t *testing.T) {
	r := New(strings.NewReader("p\n  q\n"))

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	var got []controller.Command
	for cmd := range r.Commands() {
		got = append(got, cmd)
	}
	require.Equal(t, []controller.Command{controller.CmdTogglePause, controller.CmdQuit}, got)
	require.NoError(t, <-done)
}

func TestReaderSkipsEmptyLinesAndClosesOnEOF(t *testing.T) {
	r := New(strings.NewReader("\n   \ns\n"))

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	select {
	case cmd := <-r.Commands():
		require.Equal(t, controller.CmdSnapshot, cmd)
	case <-time.After(time.Second):
		t.Fatal("expected a command")
	}

	_, open := <-r.Commands()
	require.False(t, open, "commands channel closes on EOF")
	require.NoError(t, <-done)
}

func TestReaderPassesUnrecognizedCharactersThrough(t *testing.T) {
	// The controller ignores unknown commands; the reader stays dumb.
	r := New(strings.NewReader("x\n"))

	done := make(chan error, 1)
	go func() { done <- r.Run(context.Background()) }()

	require.Equal(t, controller.Command('x'), <-r.Commands())
	require.NoError(t, <-done)
}

func TestUsageListsCommands(t *testing.T) {
	var buf bytes.Buffer
	Usage(&buf)
	out := buf.String()
	require.Contains(t, out, "p - Toggle")
	require.Contains(t, out, "q - Quit")
}
