// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package log

// Canonical field name constants for structured logging.
const (
	// Identity fields
	FieldCorrelationID = "correlation_id"
	FieldBranch        = "branch"

	// Process / graph fields
	FieldEvent     = "event"
	FieldComponent = "component"
	FieldOrigin    = "origin"

	// State fields
	FieldOldState = "old_state"
	FieldNewState = "new_state"
	FieldTarget   = "target_state"

	// Media / stream fields
	FieldStreamID  = "stream_id"
	FieldMediaType = "media_type"
	FieldPercent   = "percent"

	// Path / URL fields
	FieldPath = "path"
	FieldURI  = "uri"
)
