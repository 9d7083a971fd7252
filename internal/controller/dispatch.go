// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package controller

import (
	"fmt"

	"github.com/ManuGH/multisource/internal/graph"
	"github.com/ManuGH/multisource/internal/log"
	"github.com/ManuGH/multisource/internal/metrics"
)

// Dispatch routes one bus event to the owning policy. Single entry point
// for everything the graph emits.
func (c *Controller) Dispatch(ev graph.Event) {
	metrics.EventsTotal.WithLabelValues(eventKind(ev)).Inc()

	switch ev := ev.(type) {
	case graph.ErrorEvent:
		c.logger.Error().
			Str(log.FieldEvent, "bus.error").
			Str(log.FieldOrigin, ev.Origin.Path()).
			Str("debug", ev.Debug).
			Err(ev.Err).
			Msg("error from element")
		c.requestShutdown(fmt.Errorf("bus error from %s: %w", ev.Origin.Path(), ev.Err))

	case graph.WarningEvent:
		c.logger.Warn().
			Str(log.FieldEvent, "bus.warning").
			Str(log.FieldOrigin, ev.Origin.Path()).
			Str("debug", ev.Debug).
			Err(ev.Err).
			Msg("warning from element")

	case graph.EOSEvent:
		c.logger.Info().
			Str(log.FieldEvent, "bus.eos").
			Msg("end of stream")
		c.requestShutdown(nil)

	case graph.StateChangedEvent:
		// Sub-element state changes are noise; only the graph's own
		// confirmed transitions drive the lifecycle.
		if ev.Origin.Path() != c.g.Ref().Path() {
			return
		}
		c.onStateReached(ev)

	case graph.BufferingEvent:
		c.onBuffering(ev.Percent)

	case graph.StreamsDiscoveredEvent:
		c.onStreamsDiscovered(ev)

	case graph.PropertyNotifyEvent:
		if c.verbose {
			c.logger.Info().
				Str(log.FieldEvent, "bus.property").
				Str(log.FieldOrigin, ev.Origin.Path()).
				Str("property", ev.Name).
				Str("value", ev.Value).
				Msg("property changed")
		}

	default:
		// Unrecognized kinds are ignored for forward compatibility.
	}
}

func eventKind(ev graph.Event) string {
	switch ev.(type) {
	case graph.ErrorEvent:
		return "error"
	case graph.WarningEvent:
		return "warning"
	case graph.EOSEvent:
		return "eos"
	case graph.StateChangedEvent:
		return "state_changed"
	case graph.BufferingEvent:
		return "buffering"
	case graph.StreamsDiscoveredEvent:
		return "streams_discovered"
	case graph.PropertyNotifyEvent:
		return "property_notify"
	default:
		return "unknown"
	}
}

func (c *Controller) dumpSnapshot(tag string) {
	if c.snap == nil {
		return
	}
	if err := c.snap.Snapshot(c.g, tag); err != nil {
		c.logger.Warn().
			Str(log.FieldEvent, "snapshot.failed").
			Str("tag", tag).
			Err(err).
			Msg("snapshot dump failed")
	}
}
