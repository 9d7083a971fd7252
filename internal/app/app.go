// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package app assembles the graph, the controller and its collaborators and
// owns the run lifecycle.
package app

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/ManuGH/multisource/internal/config"
	"github.com/ManuGH/multisource/internal/console"
	"github.com/ManuGH/multisource/internal/controller"
	"github.com/ManuGH/multisource/internal/graph"
	"github.com/ManuGH/multisource/internal/log"
	"github.com/ManuGH/multisource/internal/snapshot"
)

// ErrGraphConstruction classifies executor build failures for exit-code mapping.
var ErrGraphConstruction = errors.New("app: graph construction failed")

// App runs one graph from construction to release.
type App struct {
	cfg    config.AppConfig
	exec   graph.Executor
	logger zerolog.Logger

	// In feeds the interactive console; Out receives its usage banner.
	In  io.Reader
	Out io.Writer
}

// New creates an App for the given configuration and executor.
func New(cfg config.AppConfig, exec graph.Executor) *App {
	return &App{
		cfg:    cfg,
		exec:   exec,
		logger: log.WithComponent("app"),
		In:     os.Stdin,
		Out:    os.Stdout,
	}
}

// Run builds the graph and blocks on the controller's event loop until
// shutdown. The graph handle is released on every exit path.
func (a *App) Run(ctx context.Context) error {
	// One correlation ID per run ties all log entries of a graph's lifetime together.
	ctx = log.ContextWithCorrelationID(ctx, uuid.NewString())
	logger := log.WithContext(ctx, a.logger)

	sources := graph.Repeat(a.cfg.Sources, a.cfg.Repeat)
	desc, err := graph.Describe(sources, a.cfg.Muxer, a.cfg.Sink)
	if err != nil {
		return err
	}
	logger.Info().
		Str(log.FieldEvent, "graph.describe").
		Int("branches", len(sources)).
		Msg(desc)

	g, err := a.exec.Build(ctx, desc)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrGraphConstruction, err)
	}
	defer g.Release()

	ctrl, err := controller.New(g, controller.Options{
		Policy: graph.SelectionPolicy{
			Audio: a.cfg.AudioOnly,
			Video: a.cfg.VideoOnly,
		},
		AutoPlay:    !a.cfg.Interactive,
		Verbose:     a.cfg.Verbose,
		Snapshotter: snapshot.New(a.cfg.SnapshotDir),
	})
	if err != nil {
		return err
	}

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()
	grp, ctx := errgroup.WithContext(ctx)

	var commands <-chan controller.Command
	if a.cfg.Interactive {
		reader := console.New(a.In)
		commands = reader.Commands()
		console.Usage(a.Out)
		// Not part of the group: a reader parked on a real stdin cannot be
		// unblocked, and must not hold up shutdown.
		go func() {
			_ = reader.Run(ctx)
		}()
	}

	if a.cfg.MetricsAddr != "" {
		if err := a.serveMetrics(ctx, grp); err != nil {
			return err
		}
	}

	grp.Go(func() error {
		// The controller's verdict ends the run; unblock the metrics server
		// and console even on graceful shutdown.
		defer cancel()
		return ctrl.Run(ctx, commands)
	})
	return grp.Wait()
}

// serveMetrics exposes Prometheus metrics until ctx is cancelled.
func (a *App) serveMetrics(ctx context.Context, grp *errgroup.Group) error {
	ln, err := net.Listen("tcp", a.cfg.MetricsAddr)
	if err != nil {
		return fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.Handler())
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	a.logger.Info().
		Str(log.FieldEvent, "metrics.listening").
		Str("addr", ln.Addr().String()).
		Msg("serving metrics")

	grp.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	grp.Go(func() error {
		if err := srv.Serve(ln); !errors.Is(err, http.ErrServerClosed) {
			return err
		}
		return nil
	})
	return nil
}
