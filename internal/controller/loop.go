// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package controller

import (
	"context"

	"github.com/ManuGH/multisource/internal/graph"
	"github.com/ManuGH/multisource/internal/log"
)

// Command is a single-character console command.
type Command byte

const (
	// CmdTogglePause toggles between Paused and Playing.
	CmdTogglePause Command = 'p'
	// CmdQuit requests graceful shutdown.
	CmdQuit Command = 'q'
	// CmdSnapshot requests a diagnostic snapshot.
	CmdSnapshot Command = 's'
)

// Run starts the graph towards Ready and then blocks on the event loop until
// shutdown is requested or ctx is cancelled. The loop goroutine is the sole
// writer of controller state. Returns nil on graceful shutdown; the fatal
// cause otherwise.
func (c *Controller) Run(ctx context.Context, commands <-chan Command) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	c.stop = cancel

	if err := c.RequestState(graph.StateReady); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			return c.fatal

		case ev, ok := <-c.g.Events():
			if !ok {
				return c.fatal
			}
			if c.shuttingDown {
				// In-flight command completions after shutdown are discarded.
				continue
			}
			c.Dispatch(ev)

		case cmd, ok := <-commands:
			if !ok {
				commands = nil
				continue
			}
			if c.shuttingDown {
				continue
			}
			c.handleCommand(cmd)
		}
	}
}

// handleCommand applies one console command. Unrecognized commands are
// ignored without error.
func (c *Controller) handleCommand(cmd Command) {
	switch cmd {
	case CmdQuit:
		c.logger.Info().
			Str(log.FieldEvent, "command.quit").
			Msg("quit requested")
		c.requestShutdown(nil)

	case CmdTogglePause:
		if c.Current() == graph.StatePaused {
			c.failOn(c.RequestState(graph.StatePlaying))
		} else {
			c.desiredPlaying = false
			c.failOn(c.RequestState(graph.StatePaused))
		}

	case CmdSnapshot:
		c.dumpSnapshot("snap")

	default:
	}
}
