// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"bytes"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Environment variable names consumed by the loader.
const (
	EnvSources     = "MULTISOURCE_SOURCES"
	EnvMuxer       = "MULTISOURCE_MUXER"
	EnvSink        = "MULTISOURCE_SINK"
	EnvRepeat      = "MULTISOURCE_REPEAT"
	EnvAudioOnly   = "MULTISOURCE_AUDIO_ONLY"
	EnvVideoOnly   = "MULTISOURCE_VIDEO_ONLY"
	EnvInteractive = "MULTISOURCE_INTERACTIVE"
	EnvVerbose     = "MULTISOURCE_VERBOSE"
	EnvMetricsAddr = "MULTISOURCE_METRICS_ADDR"
	EnvSnapshotDir = "MULTISOURCE_SNAPSHOT_DIR"
	EnvLogLevel    = "MULTISOURCE_LOG_LEVEL"
)

// Loader handles configuration loading with precedence.
type Loader struct {
	configPath string
	version    string
}

// NewLoader creates a new configuration loader.
func NewLoader(configPath, version string) *Loader {
	return &Loader{configPath: configPath, version: version}
}

// Override mutates the configuration after env merging, before validation.
// Used for explicitly set command-line flags, which win over everything.
type Override func(*AppConfig)

// Load loads configuration with precedence: overrides > ENV > File > Defaults.
// Order: defaults -> parse file (strict) -> apply env -> overrides -> validate.
func (l *Loader) Load(overrides ...Override) (AppConfig, error) {
	cfg := AppConfig{
		Muxer:    DefaultMuxer,
		Sink:     DefaultSink,
		Repeat:   1,
		LogLevel: "info",
		Version:  l.version,
	}

	if l.configPath != "" {
		fileCfg, err := l.loadFile(l.configPath)
		if err != nil {
			return cfg, fmt.Errorf("load config file: %w", err)
		}
		mergeFileConfig(&cfg, fileCfg)
	}

	mergeEnvConfig(&cfg)

	for _, o := range overrides {
		o(&cfg)
	}

	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

func (l *Loader) loadFile(path string) (fileConfig, error) {
	var out fileConfig
	data, err := os.ReadFile(path) // #nosec G304 -- path is operator-supplied by design
	if err != nil {
		return out, err
	}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&out); err != nil {
		if strings.Contains(err.Error(), "field") && strings.Contains(err.Error(), "not found") {
			return out, fmt.Errorf("%w: %v", ErrUnknownConfigField, err)
		}
		return out, err
	}
	return out, nil
}

func mergeFileConfig(cfg *AppConfig, file fileConfig) {
	if len(file.Sources) > 0 {
		cfg.Sources = file.Sources
	}
	if file.Muxer != nil {
		cfg.Muxer = *file.Muxer
	}
	if file.Sink != nil {
		cfg.Sink = *file.Sink
	}
	if file.Repeat != nil {
		cfg.Repeat = *file.Repeat
	}
	if file.AudioOnly != nil {
		cfg.AudioOnly = *file.AudioOnly
	}
	if file.VideoOnly != nil {
		cfg.VideoOnly = *file.VideoOnly
	}
	if file.Interactive != nil {
		cfg.Interactive = *file.Interactive
	}
	if file.Verbose != nil {
		cfg.Verbose = *file.Verbose
	}
	if file.MetricsAddr != nil {
		cfg.MetricsAddr = *file.MetricsAddr
	}
	if file.SnapshotDir != nil {
		cfg.SnapshotDir = *file.SnapshotDir
	}
	if file.LogLevel != nil {
		cfg.LogLevel = *file.LogLevel
	}
}

func mergeEnvConfig(cfg *AppConfig) {
	cfg.Sources = ParseStringList(EnvSources, cfg.Sources)
	cfg.Muxer = ParseString(EnvMuxer, cfg.Muxer)
	cfg.Sink = ParseString(EnvSink, cfg.Sink)
	cfg.Repeat = ParseInt(EnvRepeat, cfg.Repeat)
	cfg.AudioOnly = ParseBool(EnvAudioOnly, cfg.AudioOnly)
	cfg.VideoOnly = ParseBool(EnvVideoOnly, cfg.VideoOnly)
	cfg.Interactive = ParseBool(EnvInteractive, cfg.Interactive)
	cfg.Verbose = ParseBool(EnvVerbose, cfg.Verbose)
	cfg.MetricsAddr = ParseString(EnvMetricsAddr, cfg.MetricsAddr)
	cfg.SnapshotDir = ParseString(EnvSnapshotDir, cfg.SnapshotDir)
	cfg.LogLevel = ParseString(EnvLogLevel, cfg.LogLevel)
}

// Validate checks invariants that make a run impossible.
func (c *AppConfig) Validate() error {
	if len(c.Sources) == 0 {
		return ErrNoSources
	}
	for i, src := range c.Sources {
		if strings.TrimSpace(src) == "" {
			return fmt.Errorf("source %d is empty", i)
		}
	}
	if c.Repeat < 1 {
		return ErrInvalidRepeat
	}
	return nil
}
