// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package config

import "errors"

var (
	// ErrNoSources reports an empty source list; no graph is attempted.
	ErrNoSources = errors.New("no sources configured")

	// ErrInvalidRepeat reports a repeat count below 1.
	ErrInvalidRepeat = errors.New("repeat must be >= 1")

	// ErrUnknownConfigField classifies strict YAML parse failures caused by unknown keys.
	// Use errors.Is(err, ErrUnknownConfigField) instead of string matching.
	ErrUnknownConfigField = errors.New("unknown config field")
)
