// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package memexec

import (
	"fmt"
	"sync"
	"time"

	"github.com/ManuGH/multisource/internal/graph"
	"github.com/rs/zerolog"
)

type branch struct {
	id         string
	uri        string
	decode     graph.ElementRef
	streams    []graph.Stream
	discovered bool
	selected   []string
}

// Graph is a simulated processing graph. Lifecycle moves complete
// immediately; completion is still reported through the event channel, so
// the controller observes the same ordering a real executor produces.
type Graph struct {
	mu       sync.Mutex
	desc     string
	ref      graph.ElementRef
	events   chan graph.Event
	state    graph.State
	live     bool
	autoEOS  time.Duration
	eosTimer bool
	branches []*branch
	released bool
	logger   zerolog.Logger
}

// SetState requests a lifecycle transition.
func (g *Graph) SetState(target graph.State) graph.StateChangeResult {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.released || !target.IsValid() {
		return graph.ResultFailure
	}
	old := g.state
	if old == target {
		return graph.ResultSuccess
	}

	result := graph.ResultSuccess
	if target == graph.StatePaused && target.Above(old) {
		if g.live {
			result = graph.ResultNoPreroll
		} else {
			result = graph.ResultAsync
			// Preroll discovers each branch's streams before the move completes.
			for _, br := range g.branches {
				if br.discovered {
					continue
				}
				br.discovered = true
				g.post(graph.StreamsDiscoveredEvent{
					Origin:  br.decode,
					Streams: append([]graph.Stream(nil), br.streams...),
				})
			}
		}
	}

	g.state = target
	g.post(graph.StateChangedEvent{Origin: g.ref, Old: old, New: target})

	if target == graph.StatePlaying && g.autoEOS > 0 && !g.eosTimer {
		g.eosTimer = true
		time.AfterFunc(g.autoEOS, func() {
			g.Emit(graph.EOSEvent{Origin: g.ref})
		})
	}
	return result
}

// SelectStreams records the exclusive stream selection for one branch.
func (g *Graph) SelectStreams(target graph.ElementRef, streamIDs []string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.released {
		return fmt.Errorf("memexec: graph released")
	}
	for _, br := range g.branches {
		if br.decode.Name == target.Name {
			br.selected = append([]string(nil), streamIDs...)
			return nil
		}
	}
	return fmt.Errorf("memexec: no decode stage named %q", target.Name)
}

// Emit injects an event onto the graph's bus. Used by tests and simulations
// to script buffering, errors, warnings and end-of-stream.
func (g *Graph) Emit(ev graph.Event) {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.released {
		return
	}
	g.post(ev)
}

// post delivers without blocking; the bus is buffered and a full buffer
// drops the event, mirroring backpressure on a real serialized bus.
func (g *Graph) post(ev graph.Event) {
	select {
	case g.events <- ev:
	default:
		g.logger.Warn().
			Str("event", "memexec.bus_drop").
			Msgf("event buffer full, dropping %T", ev)
	}
}

func (g *Graph) Events() <-chan graph.Event {
	return g.events
}

func (g *Graph) Ref() graph.ElementRef {
	return g.ref
}

func (g *Graph) Description() string {
	return g.desc
}

// Selected returns the recorded exclusive selection for a decode stage.
func (g *Graph) Selected(decodeName string) []string {
	g.mu.Lock()
	defer g.mu.Unlock()
	for _, br := range g.branches {
		if br.decode.Name == decodeName {
			return append([]string(nil), br.selected...)
		}
	}
	return nil
}

// Branches returns the decode stage refs, in branch order.
func (g *Graph) Branches() []graph.ElementRef {
	g.mu.Lock()
	defer g.mu.Unlock()
	out := make([]graph.ElementRef, 0, len(g.branches))
	for _, br := range g.branches {
		out = append(out, br.decode)
	}
	return out
}

// Release forces the graph to StateNull and closes the bus.
func (g *Graph) Release() {
	g.mu.Lock()
	defer g.mu.Unlock()
	if g.released {
		return
	}
	g.state = graph.StateNull
	g.released = true
	close(g.events)
}

var _ graph.Graph = (*Graph)(nil)
