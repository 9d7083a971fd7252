// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package metrics provides Prometheus metrics for the launcher.
// No cardinality explosion: no stream or branch IDs in labels.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// EventsTotal counts bus events dispatched, by kind.
	EventsTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multisource_bus_events_total",
		Help: "Total number of graph bus events dispatched, by kind.",
	}, []string{"kind"})

	// TransitionsRequestedTotal counts lifecycle transition requests, by
	// target state and executor result.
	TransitionsRequestedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multisource_transitions_requested_total",
		Help: "Total number of lifecycle transition requests, by target state and result.",
	}, []string{"target", "result"})

	// BufferingPausesTotal counts preemptive pauses issued on buffering underrun.
	BufferingPausesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "multisource_buffering_pauses_total",
		Help: "Total number of pauses issued because buffering dropped below 100%.",
	})

	// BufferingResumesTotal counts resumes issued on buffering completion.
	BufferingResumesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "multisource_buffering_resumes_total",
		Help: "Total number of resumes issued after buffering reached 100%.",
	})

	// BufferingPercent tracks the most recent graph-wide buffering level.
	BufferingPercent = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "multisource_buffering_percent",
		Help: "Most recently reported graph-wide buffering percentage.",
	})

	// StreamsSelectedTotal counts streams admitted by negotiation, by media type.
	StreamsSelectedTotal = promauto.NewCounterVec(prometheus.CounterOpts{
		Name: "multisource_streams_selected_total",
		Help: "Total number of streams admitted by negotiation, by media type.",
	}, []string{"media_type"})

	// NegotiationAnomaliesTotal counts skipped negotiations after origin
	// resolution exhausted both the event origin and its parent.
	NegotiationAnomaliesTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "multisource_negotiation_anomalies_total",
		Help: "Total number of stream negotiations skipped because no decode stage could be resolved.",
	})
)
