package quadrant

import "errors"

// Sentinel errors returned by the parsing and rendering entry points.
// Callers match them with errors.Is; the returned errors carry the
// offending input via fmt.Errorf wrapping.
var (
	// ErrInvalidScoreFormat is returned when a score string parses to
	// nothing numeric after all notation attempts (fraction, percent,
	// plain number).
	ErrInvalidScoreFormat = errors.New("invalid score format")

	// ErrNoRenderableGeometry is returned by Render when no valid
	// rectangle survives degenerate filtering. Rendering a blank
	// surface is rejected rather than silently produced.
	ErrNoRenderableGeometry = errors.New("no renderable geometry")
)
