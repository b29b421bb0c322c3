package quadrant

import (
	"fmt"
	"strconv"
	"strings"
)

// Row cell order for rectangle input, matching the source sheets:
// x_min, x_max, y_min, y_max, fill_color, text.
const (
	cellXMin = iota
	cellXMax
	cellYMin
	cellYMax
	cellFill
	cellText
)

// ParseRectangleRows builds Rectangles from raw cell rows. Rows are
// never assumed pre-validated: rows with fewer than four cells or with
// non-numeric bounds are skipped, degenerate rectangles are dropped,
// and a missing or unparseable color cell falls back to defaultFill.
// Missing text renders as a blank label. Skipping is silent apart
// from a debug log line; only the caller can decide whether ending up
// with nothing is fatal (Render does, via ErrNoRenderableGeometry).
func ParseRectangleRows(rows [][]string, defaultFill Color) []Rectangle {
	var rects []Rectangle
	for i, row := range rows {
		if len(row) <= cellYMax {
			Logger().Debug("skipping short rectangle row", "row", i, "cells", len(row))
			continue
		}

		var bounds [4]float64
		ok := true
		for j := cellXMin; j <= cellYMax; j++ {
			v, err := strconv.ParseFloat(strings.TrimSpace(row[j]), 64)
			if err != nil {
				ok = false
				break
			}
			bounds[j] = v
		}
		if !ok {
			Logger().Debug("skipping rectangle row with non-numeric bounds", "row", i)
			continue
		}

		rc := Rectangle{
			XMin: bounds[cellXMin],
			XMax: bounds[cellXMax],
			YMin: bounds[cellYMin],
			YMax: bounds[cellYMax],
			Fill: defaultFill,
		}
		if len(row) > cellFill {
			rc.Fill = NormalizeColor(row[cellFill], defaultFill)
		}
		if len(row) > cellText {
			rc.Text = row[cellText]
		}
		if rc.IsDegenerate() {
			Logger().Debug("skipping degenerate rectangle row", "row", i)
			continue
		}
		rects = append(rects, rc)
	}
	return rects
}

// ParsePoint parses the highlighted point from its two raw cells,
// accepting every notation ParseScore accepts. The error names the
// failing coordinate and wraps ErrInvalidScoreFormat.
func ParsePoint(xRaw, yRaw string) (Point, error) {
	x, err := ParseScore(xRaw)
	if err != nil {
		return Point{}, fmt.Errorf("point x: %w", err)
	}
	y, err := ParseScore(yRaw)
	if err != nil {
		return Point{}, fmt.Errorf("point y: %w", err)
	}
	return Point{X: x, Y: y}, nil
}
