// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package app

import (
	"context"
	"fmt"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/ManuGH/multisource/internal/config"
	"github.com/ManuGH/multisource/internal/graph"
	"github.com/ManuGH/multisource/internal/graph/memexec"
	"github.com/stretchr/testify/require"
)

type failingExecutor struct{}

func (failingExecutor) Build(ctx context.Context, description string) (graph.Graph, error) {
	return nil, fmt.Errorf("no such element factory")
}

func testConfig() config.AppConfig {
	return config.AppConfig{
		Sources: []string{"rtsp://cam1/stream"},
		Muxer:   config.DefaultMuxer,
		Sink:    config.DefaultSink,
		Repeat:  1,
	}
}

func TestRunClassifiesConstructionFailure(t *testing.T) {
	a := New(testConfig(), failingExecutor{})
	err := a.Run(context.Background())
	require.ErrorIs(t, err, ErrGraphConstruction)
}

func TestRunEmptySourcesFailsBeforeBuild(t *testing.T) {
	cfg := testConfig()
	cfg.Sources = nil
	a := New(cfg, failingExecutor{})
	err := a.Run(context.Background())
	require.ErrorIs(t, err, graph.ErrEmptySources)
}

func TestRunInteractiveQuitExitsCleanly(t *testing.T) {
	cfg := testConfig()
	cfg.Interactive = true
	a := New(cfg, memexec.New())
	a.In = strings.NewReader("q\n")
	a.Out = io.Discard

	done := make(chan error, 1)
	go func() { done <- a.Run(context.Background()) }()

	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not exit on quit command")
	}
}

func TestRunStopsOnSignalContext(t *testing.T) {
	a := New(testConfig(), memexec.New())

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- a.Run(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()
	select {
	case err := <-done:
		require.NoError(t, err)
	case <-time.After(2 * time.Second):
		t.Fatal("run did not exit on cancellation")
	}
}
