// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Command multisource launches N source branches into one shared
// fan-in/sink graph and drives its lifecycle until end-of-stream.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"

	"github.com/ManuGH/multisource/internal/app"
	"github.com/ManuGH/multisource/internal/config"
	"github.com/ManuGH/multisource/internal/controller"
	"github.com/ManuGH/multisource/internal/graph"
	"github.com/ManuGH/multisource/internal/graph/memexec"
	xlog "github.com/ManuGH/multisource/internal/log"
)

var (
	version   = "v0.1.0"
	commit    = "none"
	buildDate = "unknown"
)

// Process exit codes.
const (
	exitOK      = 0
	exitConfig  = 1
	exitBuild   = 2
	exitRuntime = 3
)

// stringList collects a repeatable string flag.
type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }

func (s *stringList) Set(v string) error {
	if strings.TrimSpace(v) == "" {
		return fmt.Errorf("empty value")
	}
	*s = append(*s, v)
	return nil
}

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	// Defaults until the configured level is known; reconfigured after load.
	xlog.Configure(xlog.Config{Service: "multisource", Version: version})

	fs := flag.NewFlagSet("multisource", flag.ContinueOnError)

	var sources stringList
	fs.Var(&sources, "source", "add a source branch by URI (repeatable)")
	muxer := fs.String("muxer", config.DefaultMuxer, "fan-in stage kind")
	sink := fs.String("sink", config.DefaultSink, "sink kind")
	repeat := fs.Int("repeat", 1, "number of branches per source")
	audioOnly := fs.Bool("audio-only", false, "select only audio tracks")
	videoOnly := fs.Bool("video-only", false, "select only video tracks")
	interactive := fs.Bool("interactive", false, "interactive mode: no auto-play, console commands enabled")
	verbose := fs.Bool("verbose", false, "output property notifications")
	metricsAddr := fs.String("metrics-addr", "", "serve Prometheus metrics on this address (disabled when empty)")
	snapshotDir := fs.String("snapshot-dir", "", "directory for diagnostic graph snapshots")
	configPath := fs.String("config", "", "path to config file (YAML)")
	live := fs.Bool("live", false, "treat sources as live (executor simulation)")
	eosAfter := fs.Duration("eos-after", 0, "emit end-of-stream this long after reaching Playing (simulation, 0 = never)")
	showVersion := fs.Bool("version", false, "print version and exit")

	if err := fs.Parse(args); err != nil {
		return exitConfig
	}
	if *showVersion {
		fmt.Printf("%s (commit: %s, built: %s)\n", version, commit, buildDate)
		return exitOK
	}

	// Explicitly set flags win over env and file.
	set := map[string]bool{}
	fs.Visit(func(f *flag.Flag) { set[f.Name] = true })

	loader := config.NewLoader(*configPath, version)
	cfg, err := loader.Load(func(c *config.AppConfig) {
		if set["source"] {
			c.Sources = sources
		}
		if set["muxer"] {
			c.Muxer = *muxer
		}
		if set["sink"] {
			c.Sink = *sink
		}
		if set["repeat"] {
			c.Repeat = *repeat
		}
		if set["audio-only"] {
			c.AudioOnly = *audioOnly
		}
		if set["video-only"] {
			c.VideoOnly = *videoOnly
		}
		if set["interactive"] {
			c.Interactive = *interactive
		}
		if set["verbose"] {
			c.Verbose = *verbose
		}
		if set["metrics-addr"] {
			c.MetricsAddr = *metricsAddr
		}
		if set["snapshot-dir"] {
			c.SnapshotDir = *snapshotDir
		}
	})

	if err == nil {
		xlog.Reconfigure(xlog.Config{
			Level:   cfg.LogLevel,
			Service: "multisource",
			Version: version,
		})
	}
	logger := xlog.WithComponent("main")

	if err != nil {
		logger.Error().
			Err(err).
			Str(xlog.FieldEvent, "config.load_failed").
			Str(xlog.FieldPath, *configPath).
			Msg("failed to load configuration")
		fmt.Fprintf(os.Stderr, "usage: %s -source <uri> [-source <uri> ...]\n", fs.Name())
		return exitConfig
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	var opts []memexec.Option
	if *live {
		opts = append(opts, memexec.WithLive())
	}
	if *eosAfter > 0 {
		opts = append(opts, memexec.WithAutoEOS(*eosAfter))
	}

	err = app.New(cfg, memexec.New(opts...)).Run(ctx)
	switch {
	case err == nil:
		logger.Info().Str(xlog.FieldEvent, "run.done").Msg("graceful shutdown")
		return exitOK
	case errors.Is(err, graph.ErrEmptySources):
		logger.Error().Err(err).Str(xlog.FieldEvent, "run.no_sources").Msg("no source branches to build")
		return exitConfig
	case errors.Is(err, app.ErrGraphConstruction):
		logger.Error().Err(err).Str(xlog.FieldEvent, "run.build_failed").Msg("unable to construct graph")
		return exitBuild
	case errors.Is(err, controller.ErrTransitionFailed):
		logger.Error().Err(err).Str(xlog.FieldEvent, "run.transition_failed").Msg("fatal lifecycle failure")
		return exitRuntime
	default:
		logger.Error().Err(err).Str(xlog.FieldEvent, "run.failed").Msg("run aborted")
		return exitRuntime
	}
}
