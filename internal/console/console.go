// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package console reads single-character line commands in interactive mode.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/ManuGH/multisource/internal/controller"
	"github.com/ManuGH/multisource/internal/log"
	"github.com/rs/zerolog"
)

// Usage prints the available commands.
func Usage(w io.Writer) {
	fmt.Fprintln(w, "Available commands:")
	fmt.Fprintln(w, "  p - Toggle between Play and Pause")
	fmt.Fprintln(w, "  s - Dump a graph snapshot")
	fmt.Fprintln(w, "  q - Quit")
}

// Reader turns a line-buffered input stream into controller commands.
type Reader struct {
	in       io.Reader
	commands chan controller.Command
	logger   zerolog.Logger
}

// New creates a console reader over in (typically os.Stdin).
func New(in io.Reader) *Reader {
	return &Reader{
		in:       in,
		commands: make(chan controller.Command, 1),
		logger:   log.WithComponent("console"),
	}
}

// Commands delivers parsed commands; closed when the input stream ends.
func (r *Reader) Commands() <-chan controller.Command {
	return r.commands
}

// Run consumes the input stream until EOF or ctx cancellation. Each line's
// first non-space character is one command; empty lines are skipped.
func (r *Reader) Run(ctx context.Context) error {
	defer close(r.commands)

	scanner := bufio.NewScanner(r.in)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		cmd := controller.Command(line[0])
		select {
		case r.commands <- cmd:
		case <-ctx.Done():
			return nil
		}
	}
	if err := scanner.Err(); err != nil && ctx.Err() == nil {
		r.logger.Warn().
			Str(log.FieldEvent, "console.read_failed").
			Err(err).
			Msg("stopped reading commands")
		return err
	}
	return nil
}
