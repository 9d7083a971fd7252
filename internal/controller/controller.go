// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package controller drives the graph lifecycle state machine, the
// buffering pause/resume policy and per-branch stream negotiation, reacting
// to the graph's serialized event bus. All state is owned by the single
// event-loop goroutine; handlers never block.
package controller

import (
	"errors"
	"fmt"

	"github.com/ManuGH/multisource/internal/fsm"
	"github.com/ManuGH/multisource/internal/graph"
	"github.com/ManuGH/multisource/internal/log"
	"github.com/ManuGH/multisource/internal/metrics"
	"github.com/rs/zerolog"
)

// ErrTransitionFailed reports an executor refusing a lifecycle change.
// The refusal is assumed permanent for the current graph: no retry.
var ErrTransitionFailed = errors.New("controller: lifecycle transition failed")

// Snapshotter writes diagnostic graph snapshots. Best-effort collaborator.
type Snapshotter interface {
	Snapshot(g graph.Graph, tag string) error
}

// Options configures a Controller.
type Options struct {
	// Policy restricts per-branch stream selection. The zero value selects
	// all streams (no filtering).
	Policy graph.SelectionPolicy
	// AutoPlay cascades Ready -> Paused -> Playing automatically.
	AutoPlay bool
	// Verbose logs property-change notifications.
	Verbose bool
	// Snapshotter, when set, receives dumps on state changes and on demand.
	Snapshotter Snapshotter
}

// Controller owns the graph handle and all policy state for its lifetime.
type Controller struct {
	g      graph.Graph
	policy graph.SelectionPolicy
	snap   Snapshotter
	logger zerolog.Logger

	autoPlay bool
	verbose  bool

	machine        *fsm.Machine[graph.State]
	desiredPlaying bool
	buffering      bool
	isLive         bool

	shuttingDown bool
	fatal        error
	stop         func()
}

// lifecycleEdges lists every transition the controller may request.
// Teardown to Null is reachable from anywhere; Release handles it directly.
func lifecycleEdges() []fsm.Transition[graph.State] {
	return []fsm.Transition[graph.State]{
		{From: graph.StateNull, To: graph.StateReady},
		{From: graph.StateReady, To: graph.StatePaused},
		{From: graph.StatePaused, To: graph.StatePlaying},
		{From: graph.StatePlaying, To: graph.StatePaused},
		{From: graph.StatePaused, To: graph.StateReady},
		{From: graph.StatePlaying, To: graph.StateReady},
		{From: graph.StateReady, To: graph.StateNull},
		{From: graph.StatePaused, To: graph.StateNull},
		{From: graph.StatePlaying, To: graph.StateNull},
	}
}

// New creates a controller owning g. The graph must be in StateNull.
func New(g graph.Graph, opts Options) (*Controller, error) {
	machine, err := fsm.New(graph.StateNull, lifecycleEdges())
	if err != nil {
		return nil, err
	}
	return &Controller{
		g:        g,
		policy:   opts.Policy,
		snap:     opts.Snapshotter,
		logger:   log.WithComponent("controller"),
		autoPlay: opts.AutoPlay,
		verbose:  opts.Verbose,
		machine:  machine,
	}, nil
}

// Current returns the last confirmed lifecycle state.
func (c *Controller) Current() graph.State {
	return c.machine.State()
}

// RequestState issues a transition command to the executor. Completion is
// observed later on the bus; only an outright refusal is an error.
func (c *Controller) RequestState(target graph.State) error {
	if err := c.machine.Allowed(target); err != nil {
		c.logger.Warn().
			Str(log.FieldEvent, "lifecycle.request_rejected").
			Str(log.FieldTarget, string(target)).
			Err(err).
			Msg("ignoring illegal transition request")
		return nil
	}

	result := c.g.SetState(target)
	metrics.TransitionsRequestedTotal.WithLabelValues(string(target), string(result)).Inc()

	if result == graph.ResultFailure {
		c.logger.Error().
			Str(log.FieldEvent, "lifecycle.request_failed").
			Str(log.FieldTarget, string(target)).
			Msg("executor refused transition")
		return fmt.Errorf("%w: target %s", ErrTransitionFailed, target)
	}

	ev := c.logger.Info().
		Str(log.FieldEvent, "lifecycle.requested").
		Str(log.FieldTarget, string(target))
	switch result {
	case graph.ResultNoPreroll:
		// Live graphs never preroll; buffering policy is disabled for good.
		c.isLive = true
		ev.Msg("graph is live and does not need preroll")
	case graph.ResultAsync:
		ev.Msg("graph is prerolling")
	case graph.ResultSuccess:
		ev.Msg("transition accepted")
	}

	if target == graph.StatePlaying {
		c.desiredPlaying = true
	}
	return nil
}

// onStateReached updates the confirmed state and drives the auto-play
// cascade. Called by the dispatcher only for graph-origin events.
func (c *Controller) onStateReached(ev graph.StateChangedEvent) {
	c.machine.Observe(ev.New)
	c.logger.Info().
		Str(log.FieldEvent, "lifecycle.reached").
		Str(log.FieldOldState, string(ev.Old)).
		Str(log.FieldNewState, string(ev.New)).
		Msg("graph state changed")

	c.dumpSnapshot(fmt.Sprintf("%s_%s", ev.Old, ev.New))

	if !c.autoPlay {
		return
	}
	switch ev.New {
	case graph.StateReady:
		c.failOn(c.RequestState(graph.StatePaused))
	case graph.StatePaused:
		// Mid-buffering the cascade must not countermand the pause; hand
		// the standing Playing intent to the buffering policy, which
		// resumes once the buffer refills.
		if c.buffering {
			c.desiredPlaying = true
			return
		}
		c.failOn(c.RequestState(graph.StatePlaying))
	case graph.StatePlaying:
		// Cascade complete.
	}
}

// onBuffering applies the pause/resume policy. No-op once the graph is live:
// pausing a live source discards unrecoverable real-time data.
func (c *Controller) onBuffering(percent int) {
	metrics.BufferingPercent.Set(float64(percent))
	c.logger.Debug().
		Str(log.FieldEvent, "buffering.report").
		Int(log.FieldPercent, percent).
		Msg("buffering")

	if c.isLive {
		return
	}

	if percent >= 100 {
		c.buffering = false
		if c.desiredPlaying {
			c.logger.Info().
				Str(log.FieldEvent, "buffering.done").
				Msg("done buffering, resuming playback")
			metrics.BufferingResumesTotal.Inc()
			c.failOn(c.RequestState(graph.StatePlaying))
		}
		return
	}

	if !c.buffering && c.Current() == graph.StatePlaying {
		c.logger.Info().
			Str(log.FieldEvent, "buffering.underrun").
			Int(log.FieldPercent, percent).
			Msg("buffering, pausing playback")
		metrics.BufferingPausesTotal.Inc()
		c.failOn(c.RequestState(graph.StatePaused))
	}
	c.buffering = true
}

// failOn escalates a fatal lifecycle error into shutdown.
func (c *Controller) failOn(err error) {
	if err != nil {
		c.requestShutdown(err)
	}
}

// requestShutdown flags the run for termination exactly once. Completion
// events for in-flight commands arriving afterwards are discarded.
func (c *Controller) requestShutdown(cause error) {
	if c.shuttingDown {
		return
	}
	c.shuttingDown = true
	c.fatal = cause
	if c.stop != nil {
		c.stop()
	}
}
