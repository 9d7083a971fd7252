// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package memexec is an in-memory graph executor used for unit tests and
// local prototyping. It simulates branch construction, lifecycle moves and
// stream discovery; it performs no real decoding.
package memexec

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/ManuGH/multisource/internal/graph"
	"github.com/ManuGH/multisource/internal/log"
	"github.com/google/uuid"
)

// Option configures the executor's simulation behaviour.
type Option func(*Executor)

// WithLive marks built graphs as live: transitions to Paused answer
// NoPreroll and no buffering is simulated.
func WithLive() Option {
	return func(e *Executor) { e.live = true }
}

// WithAutoEOS emits end-of-stream d after the graph first reaches Playing.
// Zero disables it: a simulated non-live graph then plays indefinitely.
func WithAutoEOS(d time.Duration) Option {
	return func(e *Executor) { e.autoEOS = d }
}

// WithBranchStreams overrides the streams discovered per branch.
func WithBranchStreams(fn func(branchIndex int, uri string) []graph.Stream) Option {
	return func(e *Executor) { e.streamsFor = fn }
}

// WithEventBuffer sizes the event channel of built graphs.
func WithEventBuffer(n int) Option {
	return func(e *Executor) {
		if n > 0 {
			e.eventBuffer = n
		}
	}
}

// Executor builds simulated graphs.
type Executor struct {
	live        bool
	eventBuffer int
	autoEOS     time.Duration
	streamsFor  func(int, string) []graph.Stream
}

// New creates an in-memory executor.
func New(opts ...Option) *Executor {
	e := &Executor{
		eventBuffer: 64,
		streamsFor:  defaultStreams,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

func defaultStreams(i int, uri string) []graph.Stream {
	return []graph.Stream{
		{ID: uuid.NewString(), Type: graph.MediaVideo},
		{ID: uuid.NewString(), Type: graph.MediaAudio},
	}
}

// Build parses the description and constructs a simulated graph in StateNull.
func (e *Executor) Build(ctx context.Context, description string) (graph.Graph, error) {
	if strings.TrimSpace(description) == "" {
		return nil, fmt.Errorf("memexec: empty description")
	}
	if !strings.Contains(description, "name="+graph.FanInName) {
		return nil, fmt.Errorf("memexec: description has no fan-in instance %q", graph.FanInName)
	}

	uris := graph.Sources(description)
	if len(uris) == 0 {
		return nil, fmt.Errorf("memexec: description has no source branch")
	}

	g := &Graph{
		desc:    description,
		ref:     graph.ElementRef{Name: "pipeline0"},
		events:  make(chan graph.Event, e.eventBuffer),
		state:   graph.StateNull,
		live:    e.live,
		autoEOS: e.autoEOS,
		logger:  log.WithComponent("memexec"),
	}
	for i, uri := range uris {
		decode := graph.ElementRef{
			Name:   fmt.Sprintf("%s-%d", graph.DecodeStagePrefix, i),
			Parent: &g.ref,
		}
		g.branches = append(g.branches, &branch{
			id:      uuid.NewString(),
			uri:     uri,
			decode:  decode,
			streams: e.streamsFor(i, uri),
		})
	}
	return g, nil
}
