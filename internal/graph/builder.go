// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package graph

import (
	"errors"
	"fmt"
	"strings"
)

// FanInName is the instance name all branches converge on.
const FanInName = "muxer"

// ErrEmptySources reports a description request without any source branch.
var ErrEmptySources = errors.New("graph: no source branches")

// Describe assembles the textual graph description: one independent branch
// per source locator, all converging on a single named fan-in instance that
// feeds one sink instance.
func Describe(sources []string, fanin, sink string) (string, error) {
	if len(sources) == 0 {
		return "", ErrEmptySources
	}
	var b strings.Builder
	for i, uri := range sources {
		if i == 0 {
			fmt.Fprintf(&b, "urisourcebin uri=%s ! decodebin3 ! %s name=%s ! %s",
				uri, fanin, FanInName, sink)
			continue
		}
		fmt.Fprintf(&b, " urisourcebin uri=%s ! decodebin3 ! %s.", uri, FanInName)
	}
	return b.String(), nil
}

const sourceToken = "urisourcebin uri="

// Sources extracts the source locators from a description, in branch order.
func Sources(description string) []string {
	var uris []string
	rest := description
	for {
		idx := strings.Index(rest, sourceToken)
		if idx < 0 {
			return uris
		}
		rest = rest[idx+len(sourceToken):]
		end := strings.IndexByte(rest, ' ')
		if end < 0 {
			return append(uris, rest)
		}
		uris = append(uris, rest[:end])
		rest = rest[end:]
	}
}

// Repeat expands every source into count identical branches, preserving order.
func Repeat(sources []string, count int) []string {
	if count <= 1 {
		return sources
	}
	out := make([]string, 0, len(sources)*count)
	for _, src := range sources {
		for i := 0; i < count; i++ {
			out = append(out, src)
		}
	}
	return out
}
