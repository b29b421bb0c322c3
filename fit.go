package quadrant

import (
	"math"
	"strings"
)

// TextMeasurer reports the rendered size of a single line of text at a
// given font size, in data units. The compositor supplies an
// implementation backed by real glyph metrics; tests may supply a
// synthetic one. Fitting is a measure-compare-retry loop against this
// interface rather than a closed-form computation, because glyph
// metrics depend on the font backend.
type TextMeasurer interface {
	MeasureLine(text string, sizePt float64) (w, h float64)
}

// FitOptions configures text fitting for one rectangle.
type FitOptions struct {
	// MinSize and MaxSize bound the auto-shrink search, in points.
	MinSize int
	MaxSize int
	// FixedSize, when positive, disables the search and always uses
	// this size; overflowing text is wrapped at measured glyph widths
	// and clipped to the rectangle at draw time.
	FixedSize float64
	// Padding is the interior inset in data units, applied to all four
	// sides before any measurement.
	Padding float64
}

// FitResult is the wrapped layout chosen for one rectangle's text.
type FitResult struct {
	Size     float64  // chosen font size in points
	Lines    []string // wrapped lines, top to bottom
	Width    float64  // block bounding-box width, data units
	Height   float64  // block bounding-box height, data units
	OffsetY  float64  // downward shift that centers the block vertically
	Overflow bool     // block exceeds the available interior
}

// minAvail is the floor for the available interior extent when padding
// would otherwise consume a rectangle entirely.
const minAvail = 0.1

// FitText determines the wrapped layout and font size under which text
// stays inside a rectW x rectH rectangle (data units). With the
// auto-shrink policy it searches sizes from MaxSize down to MinSize and
// keeps the first that fits, so the largest fitting size always wins;
// if nothing fits it settles on the minimum size with Overflow set.
// It never fails: empty text yields an empty block.
func FitText(m TextMeasurer, text string, rectW, rectH float64, opts FitOptions) FitResult {
	availW := math.Max(rectW-2*opts.Padding, minAvail)
	availH := math.Max(rectH-2*opts.Padding, minAvail)

	if strings.TrimSpace(text) == "" {
		size := opts.FixedSize
		if size <= 0 {
			size = float64(opts.MaxSize)
		}
		return FitResult{Size: size, OffsetY: availH / 2}
	}

	if opts.FixedSize > 0 {
		return fitFixed(m, text, availW, availH, opts.FixedSize)
	}
	return fitShrink(m, text, availW, availH, opts.MinSize, opts.MaxSize)
}

func fitShrink(m TextMeasurer, text string, availW, availH float64, minSize, maxSize int) FitResult {
	if minSize < 1 {
		minSize = 1
	}
	if maxSize < minSize {
		maxSize = minSize
	}

	var last FitResult
	for size := maxSize; size >= minSize; size-- {
		lines := wrapByCount(text, wrapColumns(availW, float64(size)))
		w, h := measureBlock(m, lines, float64(size))
		last = FitResult{Size: float64(size), Lines: lines, Width: w, Height: h}
		if w <= availW && h <= availH {
			last.OffsetY = (availH - h) / 2
			return last
		}
	}

	// Nothing fit: keep the minimum size and let the caller clip.
	last.Overflow = true
	last.OffsetY = math.Max((availH-last.Height)/2, 0)
	return last
}

func fitFixed(m TextMeasurer, text string, availW, availH, sizePt float64) FitResult {
	lines := wrapByWidth(m, text, availW, sizePt)
	w, h := measureBlock(m, lines, sizePt)
	return FitResult{
		Size:     sizePt,
		Lines:    lines,
		Width:    w,
		Height:   h,
		OffsetY:  math.Max((availH-h)/2, 0),
		Overflow: w > availW || h > availH,
	}
}

// wrapColumns is the character-count wrap heuristic for the shrink
// policy: roughly 4 columns per data unit of width at 12pt, scaled
// inversely with the candidate size, never fewer than 10 columns.
func wrapColumns(availW, sizePt float64) int {
	cols := int(availW * 48 / sizePt)
	if cols < 10 {
		cols = 10
	}
	return cols
}

// wrapByCount greedily wraps text at a column count, hard-breaking
// words longer than a full line.
func wrapByCount(text string, cols int) []string {
	if cols < 1 {
		cols = 1
	}
	var lines []string
	cur := ""
	for _, word := range strings.Fields(text) {
		for {
			need := len([]rune(word))
			have := cols - len([]rune(cur))
			if cur != "" {
				have-- // separating space
			}
			if need <= have {
				if cur != "" {
					cur += " "
				}
				cur += word
				break
			}
			if cur != "" {
				lines = append(lines, cur)
				cur = ""
				continue
			}
			r := []rune(word)
			if len(r) <= cols {
				cur = word
				break
			}
			lines = append(lines, string(r[:cols]))
			word = string(r[cols:])
		}
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

// wrapByWidth greedily wraps text at measured glyph widths for the
// fixed-size policy, where fidelity matters more than speed.
func wrapByWidth(m TextMeasurer, text string, maxWidth, sizePt float64) []string {
	var lines []string
	cur := ""
	curW := 0.0
	for _, word := range strings.Fields(text) {
		candidate := word
		if cur != "" {
			candidate = " " + word
		}
		ww, _ := m.MeasureLine(candidate, sizePt)
		if cur != "" && curW+ww > maxWidth {
			lines = append(lines, cur)
			cur = word
			curW, _ = m.MeasureLine(word, sizePt)
			continue
		}
		cur += candidate
		curW += ww
	}
	if cur != "" {
		lines = append(lines, cur)
	}
	return lines
}

func measureBlock(m TextMeasurer, lines []string, sizePt float64) (w, h float64) {
	for _, line := range lines {
		lw, lh := m.MeasureLine(line, sizePt)
		if lw > w {
			w = lw
		}
		h += lh
	}
	return w, h
}
