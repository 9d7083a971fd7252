// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package graph

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestDescribeSingleBranch(t *testing.T) {
	desc, err := Describe([]string{"rtsp://cam1/stream"}, "multipartmux", "fakesink")
	require.NoError(t, err)
	require.Equal(t,
		"urisourcebin uri=rtsp://cam1/stream ! decodebin3 ! multipartmux name=muxer ! fakesink",
		desc)
}

func TestDescribeTwoBranchesConvergeOnOneFanIn(t *testing.T) {
	desc, err := Describe([]string{"s1", "s2"}, "mux", "out")
	require.NoError(t, err)

	require.Contains(t, desc, "uri=s1")
	require.Contains(t, desc, "uri=s2")
	// Exactly one fan-in instance, exactly one sink instance.
	require.Equal(t, 1, strings.Count(desc, "name="+FanInName))
	require.Equal(t, 1, strings.Count(desc, " out"))
	// The second branch links to the named instance, not a new fan-in.
	require.Equal(t, 1, strings.Count(desc, " mux "))
	require.Contains(t, desc, "! "+FanInName+".")
}

func TestDescribeEmptySources(t *testing.T) {
	_, err := Describe(nil, "multipartmux", "fakesink")
	require.ErrorIs(t, err, ErrEmptySources)
}

func TestSourcesRoundTripsDescribe(t *testing.T) {
	in := []string{"rtsp://cam1/stream", "srt://cam2:7001", "file:///tmp/clip.mkv"}
	desc, err := Describe(in, "multipartmux", "fakesink")
	require.NoError(t, err)
	require.Equal(t, in, Sources(desc))
	require.Empty(t, Sources("no branches here"))
}

func TestRepeatExpandsSourcesInOrder(t *testing.T) {
	got := Repeat([]string{"a", "b"}, 2)
	want := []string{"a", "a", "b", "b"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("unexpected expansion (-want +got):\n%s", diff)
	}
	require.Equal(t, []string{"a"}, Repeat([]string{"a"}, 1))
}
