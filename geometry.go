package quadrant

// Rectangle is one annotated region of the chart, in data units.
// It is built once per render call from one input row and never
// mutated afterwards.
type Rectangle struct {
	XMin, XMax float64
	YMin, YMax float64
	Fill       Color
	Text       string
}

// Width returns the horizontal extent in data units.
func (r Rectangle) Width() float64 {
	return r.XMax - r.XMin
}

// Height returns the vertical extent in data units.
func (r Rectangle) Height() float64 {
	return r.YMax - r.YMin
}

// IsDegenerate reports whether the rectangle has no positive area.
// A max bound must strictly exceed its min bound on both axes.
func (r Rectangle) IsDegenerate() bool {
	return r.XMax <= r.XMin || r.YMax <= r.YMin
}

// Point is the highlighted data point, with both coordinates already
// clamped to the axis range.
type Point struct {
	X, Y float64
}

// clamp restricts v to [lo, hi].
func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
