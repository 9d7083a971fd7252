// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package memexec

import (
	"context"
	"testing"

	"github.com/ManuGH/multisource/internal/graph"
	"github.com/stretchr/testify/require"
)

func buildTwoBranchGraph(t *testing.T, opts ...Option) *Graph {
	t.Helper()
	desc, err := graph.Describe([]string{"rtsp://a", "rtsp://b"}, "multipartmux", "fakesink")
	require.NoError(t, err)
	g, err := New(opts...).Build(context.Background(), desc)
	require.NoError(t, err)
	t.Cleanup(g.Release)
	return g.(*Graph)
}

func drain(t *testing.T, g *Graph) []graph.Event {
	t.Helper()
	var out []graph.Event
	for {
		select {
		case ev := <-g.Events():
			out = append(out, ev)
		default:
			return out
		}
	}
}

func TestBuildRejectsMalformedDescriptions(t *testing.T) {
	exec := New()
	_, err := exec.Build(context.Background(), "")
	require.Error(t, err)

	_, err = exec.Build(context.Background(), "fakesink only")
	require.Error(t, err)

	_, err = exec.Build(context.Background(), "multipartmux name=muxer ! fakesink")
	require.Error(t, err, "no source branch")
}

func TestBuildParsesBranches(t *testing.T) {
	g := buildTwoBranchGraph(t)
	refs := g.Branches()
	require.Len(t, refs, 2)
	require.Equal(t, graph.DecodeStagePrefix+"-0", refs[0].Name)
	require.Equal(t, graph.DecodeStagePrefix+"-1", refs[1].Name)
	require.True(t, graph.IsDecodeStage(refs[0]))
	require.Equal(t, "pipeline0", refs[0].Parent.Name)
}

func TestSetStateReportsCompletionOnBus(t *testing.T) {
	g := buildTwoBranchGraph(t)

	require.Equal(t, graph.ResultSuccess, g.SetState(graph.StateReady))
	events := drain(t, g)
	require.Len(t, events, 1)
	sc, ok := events[0].(graph.StateChangedEvent)
	require.True(t, ok)
	require.Equal(t, g.Ref(), sc.Origin)
	require.Equal(t, graph.StateNull, sc.Old)
	require.Equal(t, graph.StateReady, sc.New)
}

func TestPrerollDiscoversStreamsOncePerBranch(t *testing.T) {
	g := buildTwoBranchGraph(t)
	require.Equal(t, graph.ResultSuccess, g.SetState(graph.StateReady))
	drain(t, g)

	require.Equal(t, graph.ResultAsync, g.SetState(graph.StatePaused))
	events := drain(t, g)
	require.Len(t, events, 3, "two discoveries then the state change")
	_, ok := events[0].(graph.StreamsDiscoveredEvent)
	require.True(t, ok)
	_, ok = events[1].(graph.StreamsDiscoveredEvent)
	require.True(t, ok)
	sc, ok := events[2].(graph.StateChangedEvent)
	require.True(t, ok)
	require.Equal(t, graph.StatePaused, sc.New)

	// A later downward move to Paused does not re-discover.
	require.Equal(t, graph.ResultSuccess, g.SetState(graph.StatePlaying))
	drain(t, g)
	require.Equal(t, graph.ResultSuccess, g.SetState(graph.StatePaused))
	events = drain(t, g)
	require.Len(t, events, 1)
}

func TestLiveGraphAnswersNoPreroll(t *testing.T) {
	g := buildTwoBranchGraph(t, WithLive())
	require.Equal(t, graph.ResultSuccess, g.SetState(graph.StateReady))
	require.Equal(t, graph.ResultNoPreroll, g.SetState(graph.StatePaused))
}

func TestSelectStreamsByDecodeStage(t *testing.T) {
	g := buildTwoBranchGraph(t)
	refs := g.Branches()

	require.NoError(t, g.SelectStreams(refs[0], []string{"s1", "s2"}))
	require.Equal(t, []string{"s1", "s2"}, g.Selected(refs[0].Name))
	require.Nil(t, g.Selected(refs[1].Name))

	err := g.SelectStreams(graph.ElementRef{Name: "nosuch"}, []string{"x"})
	require.Error(t, err)
}

func TestReleaseClosesBusAndRefusesWork(t *testing.T) {
	g := buildTwoBranchGraph(t)
	g.Release()
	g.Release() // idempotent

	_, open := <-g.Events()
	require.False(t, open)
	require.Equal(t, graph.ResultFailure, g.SetState(graph.StateReady))
	require.Error(t, g.SelectStreams(graph.ElementRef{Name: "decodebin3-0"}, nil))
}
