// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package controller

import (
	"github.com/ManuGH/multisource/internal/graph"
	"github.com/ManuGH/multisource/internal/log"
	"github.com/ManuGH/multisource/internal/metrics"
)

// onStreamsDiscovered negotiates the branch's enabled streams. Each
// discovery event re-runs the policy from a fresh admitted set; a branch may
// legitimately re-emit its collection on content change.
func (c *Controller) onStreamsDiscovered(ev graph.StreamsDiscoveredEvent) {
	if !c.policy.Filtering() {
		// No explicit preference: all streams stay enabled.
		return
	}

	admitted := c.policy.Select(ev.Streams)
	if len(admitted) == 0 {
		// Nothing requested is present; the branch keeps its executor-default
		// enabled state. Explicit non-action, not an error.
		c.logger.Debug().
			Str(log.FieldEvent, "negotiation.empty").
			Str(log.FieldOrigin, ev.Origin.Path()).
			Msg("no stream of a requested type in collection")
		return
	}

	target, ok := resolveDecodeStage(ev.Origin)
	if !ok {
		// Neither the origin nor its parent matches the decode-stage naming
		// convention. Skip this branch, keep running.
		metrics.NegotiationAnomaliesTotal.Inc()
		c.logger.Warn().
			Str(log.FieldEvent, "negotiation.anomaly").
			Str(log.FieldOrigin, ev.Origin.Path()).
			Msg("cannot resolve decode stage for stream selection, branch keeps defaults")
		return
	}

	ids := make([]string, 0, len(admitted))
	for _, s := range admitted {
		ids = append(ids, s.ID)
		metrics.StreamsSelectedTotal.WithLabelValues(string(s.Type)).Inc()
		c.logger.Info().
			Str(log.FieldEvent, "negotiation.selected").
			Str(log.FieldStreamID, s.ID).
			Str(log.FieldMediaType, string(s.Type)).
			Str(log.FieldBranch, target.Name).
			Msg("stream admitted")
	}

	if err := c.g.SelectStreams(target, ids); err != nil {
		c.logger.Warn().
			Str(log.FieldEvent, "negotiation.command_failed").
			Str(log.FieldBranch, target.Name).
			Err(err).
			Msg("stream selection command rejected")
	}
}

// resolveDecodeStage finds the decode stage owning a discovery event.
// Discovery may originate from an internal sub-stage rather than the
// branch's top-level decode stage; walk up one level of containment then.
func resolveDecodeStage(origin graph.ElementRef) (graph.ElementRef, bool) {
	if graph.IsDecodeStage(origin) {
		return origin, true
	}
	if origin.Parent != nil && graph.IsDecodeStage(*origin.Parent) {
		return *origin.Parent, true
	}
	return graph.ElementRef{}, false
}
