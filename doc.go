// Package quadrant renders a 2-D positioning chart: a fixed 0-10 square
// surface populated with colored, borderless rectangles, each annotated
// with wrapped text fitted inside its own bounds, plus a single
// highlighted point drawn on top.
//
// Input values are tolerant of human-entered notations: colors may be
// hex (3 or 6 digit, with or without '#'), rgb()/rgba() or CSS names,
// and point coordinates may be plain numbers, fractions ("7/10") or
// percentages ("70%"). Output is an in-memory raster image; PNG
// encoding helpers are provided. Transport and data-source concerns
// (HTTP, spreadsheets) live in cmd/quadrantd, not in this package.
//
// See the Version variable for the current library version.
package quadrant
