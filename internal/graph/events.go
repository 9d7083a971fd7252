// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package graph

// Event is any message emitted on the graph's serialized bus. Consumers
// type-switch on the concrete variants below; unknown kinds must be ignored.
type Event any

// ErrorEvent reports a fatal element error. Always terminates the run.
type ErrorEvent struct {
	Origin ElementRef
	Err    error
	Debug  string
}

// WarningEvent reports a non-fatal element condition.
type WarningEvent struct {
	Origin ElementRef
	Err    error
	Debug  string
}

// EOSEvent signals end-of-stream for the whole graph.
type EOSEvent struct {
	Origin ElementRef
}

// StateChangedEvent confirms a completed lifecycle transition of Origin.
// Only events originating from the graph itself drive the controller.
type StateChangedEvent struct {
	Origin ElementRef
	Old    State
	New    State
}

// BufferingEvent carries the graph-wide buffering fill level.
type BufferingEvent struct {
	Percent int
}

// StreamsDiscoveredEvent carries the full stream collection of one branch.
// A branch may emit it again if its content changes streams mid-playback.
type StreamsDiscoveredEvent struct {
	Origin  ElementRef
	Streams []Stream
}

// PropertyNotifyEvent reports an element property change (verbose diagnostics).
type PropertyNotifyEvent struct {
	Origin ElementRef
	Name   string
	Value  string
}
