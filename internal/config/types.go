// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

// Package config loads launcher configuration with precedence ENV > file > defaults.
package config

// Defaults for the shared output stage.
const (
	DefaultMuxer = "multipartmux"
	DefaultSink  = "fakesink"
)

// AppConfig is the resolved launcher configuration.
type AppConfig struct {
	// Sources is the ordered list of source locators; one graph branch each.
	Sources []string

	// Muxer is the fan-in stage kind all branches converge on.
	Muxer string
	// Sink is the sink kind fed by the fan-in stage.
	Sink string

	// Repeat multiplies every source into N branches (>= 1).
	Repeat int

	// AudioOnly and VideoOnly restrict per-branch stream selection.
	// Neither set means "no filtering": all streams stay enabled.
	AudioOnly bool
	VideoOnly bool

	// Interactive disables the auto-play cascade and enables the console.
	Interactive bool
	// Verbose enables property-change logging.
	Verbose bool

	// MetricsAddr, when non-empty, serves Prometheus metrics on this address.
	MetricsAddr string

	// SnapshotDir receives diagnostic graph snapshots.
	SnapshotDir string

	LogLevel string
	Version  string
}

// fileConfig is the YAML schema; pointer fields distinguish "absent" from zero.
type fileConfig struct {
	Sources     []string `yaml:"sources"`
	Muxer       *string  `yaml:"muxer"`
	Sink        *string  `yaml:"sink"`
	Repeat      *int     `yaml:"repeat"`
	AudioOnly   *bool    `yaml:"audioOnly"`
	VideoOnly   *bool    `yaml:"videoOnly"`
	Interactive *bool    `yaml:"interactive"`
	Verbose     *bool    `yaml:"verbose"`
	MetricsAddr *string  `yaml:"metricsAddr"`
	SnapshotDir *string  `yaml:"snapshotDir"`
	LogLevel    *string  `yaml:"logLevel"`
}
