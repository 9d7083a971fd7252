// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadDefaults(t *testing.T) {
	t.Setenv(EnvSources, "rtsp://cam1/stream")

	cfg, err := NewLoader("", "test").Load()
	require.NoError(t, err)
	require.Equal(t, []string{"rtsp://cam1/stream"}, cfg.Sources)
	require.Equal(t, DefaultMuxer, cfg.Muxer)
	require.Equal(t, DefaultSink, cfg.Sink)
	require.Equal(t, 1, cfg.Repeat)
	require.False(t, cfg.Interactive)
	require.Empty(t, cfg.MetricsAddr)
}

func TestLoadNoSourcesFails(t *testing.T) {
	_, err := NewLoader("", "test").Load()
	require.ErrorIs(t, err, ErrNoSources)
}

func TestLoadFromFile(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  - rtsp://cam1/stream
  - rtsp://cam2/stream
muxer: matroskamux
sink: filesink
interactive: true
`)

	cfg, err := NewLoader(path, "test").Load()
	require.NoError(t, err)
	require.Len(t, cfg.Sources, 2)
	require.Equal(t, "matroskamux", cfg.Muxer)
	require.Equal(t, "filesink", cfg.Sink)
	require.True(t, cfg.Interactive)
}

func TestEnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  - rtsp://file-source/stream
muxer: matroskamux
`)
	t.Setenv(EnvMuxer, "mpegtsmux")
	t.Setenv(EnvSources, "srt://env-a, srt://env-b")

	cfg, err := NewLoader(path, "test").Load()
	require.NoError(t, err)
	require.Equal(t, "mpegtsmux", cfg.Muxer)
	require.Equal(t, []string{"srt://env-a", "srt://env-b"}, cfg.Sources)
}

func TestLoadRejectsUnknownField(t *testing.T) {
	path := writeConfigFile(t, `
sources:
  - rtsp://cam1/stream
bogus: true
`)

	_, err := NewLoader(path, "test").Load()
	require.Error(t, err)
	require.ErrorIs(t, err, ErrUnknownConfigField)
}

func TestLoadRejectsInvalidRepeat(t *testing.T) {
	t.Setenv(EnvSources, "rtsp://cam1/stream")
	t.Setenv(EnvRepeat, "0")

	_, err := NewLoader("", "test").Load()
	require.ErrorIs(t, err, ErrInvalidRepeat)
}

func TestParseStringListDropsEmptyEntries(t *testing.T) {
	t.Setenv("TEST_LIST", " a ,, b ,")
	require.Equal(t, []string{"a", "b"}, ParseStringList("TEST_LIST", nil))
}

func TestParseBoolFallsBackOnGarbage(t *testing.T) {
	t.Setenv("TEST_BOOL", "not-a-bool")
	require.True(t, ParseBool("TEST_BOOL", true))
	require.False(t, ParseBool("TEST_BOOL", false))
}
