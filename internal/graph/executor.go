// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package graph

import "context"

// Executor constructs executable graphs from textual descriptions.
// Implementations run decode/mux work on their own threads but communicate
// back exclusively through the serialized event channel of the Graph.
type Executor interface {
	// Build constructs a graph from its description. The returned graph is
	// in StateNull. Construction failures are fatal at startup.
	Build(ctx context.Context, description string) (Graph, error)
}

// Graph is the constructed processing graph, exclusively owned by the
// controller for its lifetime.
type Graph interface {
	// SetState requests a lifecycle transition. Fire-and-forget: completion
	// is observed later as a StateChangedEvent on Events.
	SetState(target State) StateChangeResult

	// SelectStreams commands the given decode stage to enable exclusively
	// the identified streams.
	SelectStreams(target ElementRef, streamIDs []string) error

	// Events is the graph's serialized bus. Closed when the graph is released.
	Events() <-chan Event

	// Ref identifies the graph itself as an event origin.
	Ref() ElementRef

	// Description returns the description the graph was built from.
	Description() string

	// Release forces the graph to StateNull and frees its resources.
	// The graph must not be used afterwards.
	Release()
}
