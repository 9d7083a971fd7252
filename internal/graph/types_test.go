// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package graph

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func TestSelectionPolicyFirstMatchPerType(t *testing.T) {
	collection := []Stream{
		{ID: "V1", Type: MediaVideo},
		{ID: "A1", Type: MediaAudio},
		{ID: "A2", Type: MediaAudio},
		{ID: "V2", Type: MediaVideo},
	}

	got := SelectionPolicy{Audio: true}.Select(collection)
	want := []Stream{{ID: "A1", Type: MediaAudio}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("audio-only selection (-want +got):\n%s", diff)
	}

	got = SelectionPolicy{Audio: true, Video: true}.Select(collection)
	want = []Stream{{ID: "V1", Type: MediaVideo}, {ID: "A1", Type: MediaAudio}}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("audio+video selection (-want +got):\n%s", diff)
	}
}

func TestSelectionPolicyNoPreferenceAdmitsNothing(t *testing.T) {
	collection := []Stream{
		{ID: "A1", Type: MediaAudio},
		{ID: "V1", Type: MediaVideo},
		{ID: "S1", Type: MediaOther},
	}
	require.False(t, SelectionPolicy{}.Filtering())
	require.Nil(t, SelectionPolicy{}.Select(collection))
}

func TestSelectionPolicyIgnoresOtherTypes(t *testing.T) {
	collection := []Stream{{ID: "S1", Type: MediaOther}}
	require.Nil(t, SelectionPolicy{Audio: true, Video: true}.Select(collection))
}

func TestStateOrdering(t *testing.T) {
	require.True(t, StatePlaying.Above(StatePaused))
	require.True(t, StatePaused.Above(StateReady))
	require.True(t, StateReady.Above(StateNull))
	require.False(t, StateNull.Above(StatePlaying))
	require.True(t, StatePaused.IsValid())
	require.False(t, State("BOGUS").IsValid())
}

func TestElementRefPathAndDecodeStage(t *testing.T) {
	pipeline := ElementRef{Name: "pipeline0"}
	decode := ElementRef{Name: "decodebin3-0", Parent: &pipeline}
	inner := ElementRef{Name: "parsebin0", Parent: &decode}

	require.Equal(t, "/pipeline0/decodebin3-0/parsebin0", inner.Path())
	require.True(t, IsDecodeStage(decode))
	require.False(t, IsDecodeStage(inner))
	require.False(t, IsDecodeStage(pipeline))
}
