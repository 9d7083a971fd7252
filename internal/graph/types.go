// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package graph defines the processing-graph model: lifecycle states, stream
// descriptors, bus events and the executor contract the controller drives.
package graph

// State is the graph lifecycle state, ordered by construction depth.
type State string

const (
	StateNull    State = "NULL"
	StateReady   State = "READY"
	StatePaused  State = "PAUSED"
	StatePlaying State = "PLAYING"
)

var stateRank = map[State]int{
	StateNull:    0,
	StateReady:   1,
	StatePaused:  2,
	StatePlaying: 3,
}

// IsValid reports whether s is a known lifecycle state.
func (s State) IsValid() bool {
	_, ok := stateRank[s]
	return ok
}

// Above reports whether s is deeper in the lifecycle than other.
func (s State) Above(other State) bool {
	return stateRank[s] > stateRank[other]
}

// StateChangeResult is the executor's immediate answer to a transition request.
type StateChangeResult string

const (
	// ResultSuccess: the executor can move now; progress is reported on the bus.
	ResultSuccess StateChangeResult = "SUCCESS"
	// ResultAsync: the graph is prerolling and will complete the move later.
	ResultAsync StateChangeResult = "ASYNC"
	// ResultNoPreroll: the graph is live and skips preroll entirely.
	ResultNoPreroll StateChangeResult = "NO_PREROLL"
	// ResultFailure: the executor refuses the transition; fatal for the run.
	ResultFailure StateChangeResult = "FAILURE"
)

// MediaType classifies a logical stream within a branch.
type MediaType string

const (
	MediaAudio MediaType = "audio"
	MediaVideo MediaType = "video"
	MediaOther MediaType = "other"
)

// Stream describes one logical stream discovered within a branch.
type Stream struct {
	ID   string
	Type MediaType
}

// SelectionPolicy picks which stream types to enable per branch.
// The zero value means "no explicit preference": all streams stay enabled.
type SelectionPolicy struct {
	Audio bool
	Video bool
}

// Filtering reports whether the policy restricts stream selection at all.
func (p SelectionPolicy) Filtering() bool {
	return p.Audio || p.Video
}

// Select admits at most one stream per requested media type, first match in
// collection order. A non-filtering policy admits nothing (all streams stay
// enabled by default, so no command is warranted).
func (p SelectionPolicy) Select(streams []Stream) []Stream {
	if !p.Filtering() {
		return nil
	}
	var out []Stream
	var haveAudio, haveVideo bool
	for _, s := range streams {
		switch {
		case s.Type == MediaAudio && p.Audio && !haveAudio:
			out = append(out, s)
			haveAudio = true
		case s.Type == MediaVideo && p.Video && !haveVideo:
			out = append(out, s)
			haveVideo = true
		}
	}
	return out
}

// ElementRef identifies a graph node by name within its containment chain.
type ElementRef struct {
	Name   string
	Parent *ElementRef
}

// Path renders the containment chain for logging, outermost first.
func (r ElementRef) Path() string {
	if r.Parent == nil {
		return "/" + r.Name
	}
	return r.Parent.Path() + "/" + r.Name
}

// DecodeStagePrefix is the naming convention for per-branch decode stages.
const DecodeStagePrefix = "decodebin3"

// IsDecodeStage reports whether the referenced element is a branch decode stage.
func IsDecodeStage(r ElementRef) bool {
	return len(r.Name) >= len(DecodeStagePrefix) && r.Name[:len(DecodeStagePrefix)] == DecodeStagePrefix
}
