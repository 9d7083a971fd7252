// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package snapshot dumps graph topology as Graphviz dot files for
// diagnostics. Writes are atomic so a crash never leaves a torn dump.
package snapshot

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/ManuGH/multisource/internal/graph"
	"github.com/google/renameio/v2"
)

const filePrefix = "multisource"

// Writer renders timestamped snapshot files into a directory.
type Writer struct {
	dir string
	now func() time.Time
}

// New creates a snapshot writer; dir defaults to the working directory.
func New(dir string) *Writer {
	if dir == "" {
		dir = "."
	}
	return &Writer{dir: dir, now: time.Now}
}

// Snapshot writes one dot file named after the tag, e.g.
// multisource.READY_PAUSED.20260825-120000.000.dot.
func (w *Writer) Snapshot(g graph.Graph, tag string) error {
	name := fmt.Sprintf("%s.%s.%s.dot", filePrefix, tag, w.now().Format("20060102-150405.000"))
	path := filepath.Join(w.dir, name)
	if err := renameio.WriteFile(path, []byte(render(g)), 0o644); err != nil {
		return fmt.Errorf("write snapshot %s: %w", path, err)
	}
	return nil
}

// render draws each branch as source -> decode -> fan-in, the fan-in
// feeding the sink, recovered from the graph description.
func render(g graph.Graph) string {
	desc := g.Description()
	var b strings.Builder
	b.WriteString("digraph multisource {\n")
	b.WriteString("  rankdir=LR;\n")
	fmt.Fprintf(&b, "  label=%q;\n", g.Ref().Path())
	for i, uri := range graph.Sources(desc) {
		src := fmt.Sprintf("source%d", i)
		dec := fmt.Sprintf("%s-%d", graph.DecodeStagePrefix, i)
		fmt.Fprintf(&b, "  %q [label=%q];\n", src, uri)
		fmt.Fprintf(&b, "  %q -> %q -> %q;\n", src, dec, graph.FanInName)
	}
	fmt.Fprintf(&b, "  %q -> \"sink\";\n", graph.FanInName)
	b.WriteString("}\n")
	return b.String()
}
