package quadrant

import (
	"reflect"
	"strings"
	"testing"
)

// charMeasurer is a synthetic TextMeasurer: every rune is cw wide and
// every line lh tall at 10pt, scaling linearly with the font size.
type charMeasurer struct {
	cw, lh float64
}

func (m charMeasurer) MeasureLine(s string, sizePt float64) (float64, float64) {
	scale := sizePt / 10
	return float64(len([]rune(s))) * m.cw * scale, m.lh * scale
}

func TestFitText_EmptyText(t *testing.T) {
	m := charMeasurer{cw: 0.1, lh: 0.3}
	for _, text := range []string{"", "   ", "\n\t"} {
		res := FitText(m, text, 2, 2, FitOptions{MinSize: 6, MaxSize: 12, Padding: 0.2})
		if len(res.Lines) != 0 {
			t.Errorf("FitText(%q): expected no lines, got %v", text, res.Lines)
		}
		if res.Overflow {
			t.Errorf("FitText(%q): empty text must not overflow", text)
		}
	}
}

func TestFitText_LargestFittingSizeWins(t *testing.T) {
	m := charMeasurer{cw: 0.02, lh: 0.3}
	res := FitText(m, "hello world", 2, 2, FitOptions{MinSize: 6, MaxSize: 12, Padding: 0.2})
	if res.Size != 12 {
		t.Errorf("expected max size 12 when everything fits, got %v", res.Size)
	}
	if res.Overflow {
		t.Error("unexpected overflow")
	}
}

func TestFitText_ShrinksUntilFit(t *testing.T) {
	// Two wrapped lines at lh=0.7: block height is 1.68 at 12pt
	// (exceeds the 1.6 interior) and 1.54 at 11pt (fits).
	m := charMeasurer{cw: 0.02, lh: 0.7}
	res := FitText(m, "hello world", 2, 2, FitOptions{MinSize: 6, MaxSize: 12, Padding: 0.2})
	if res.Size != 11 {
		t.Errorf("expected size 11, got %v", res.Size)
	}
	if res.Overflow {
		t.Error("unexpected overflow")
	}
	if res.Height > 1.6 || res.Width > 1.6 {
		t.Errorf("accepted block exceeds interior: %vx%v", res.Width, res.Height)
	}
}

func TestFitText_VerticalCentering(t *testing.T) {
	m := charMeasurer{cw: 0.02, lh: 0.3}
	res := FitText(m, "hi", 2, 2, FitOptions{MinSize: 6, MaxSize: 12, Padding: 0.2})
	want := (1.6 - res.Height) / 2
	if res.OffsetY != want {
		t.Errorf("OffsetY = %v, want %v", res.OffsetY, want)
	}
}

func TestFitText_OverflowDegradesGracefully(t *testing.T) {
	// A single word wider than the rectangle at every candidate size:
	// the fitter must settle on the minimum size with an overflowing
	// bounding box instead of failing.
	m := charMeasurer{cw: 0.2, lh: 0.1}
	res := FitText(m, "ABCDEFGHIJKL", 1, 1, FitOptions{MinSize: 6, MaxSize: 12, Padding: 0.2})
	if !res.Overflow {
		t.Fatal("expected overflow")
	}
	if res.Size != 6 {
		t.Errorf("expected minimum size 6, got %v", res.Size)
	}
	if res.Width <= 0.6 {
		t.Errorf("expected bounding box wider than interior, got %v", res.Width)
	}
	if len(res.Lines) == 0 {
		t.Error("expected wrapped lines even on overflow")
	}
}

func TestFitText_PaddingFloor(t *testing.T) {
	// Padding larger than the rectangle itself must clamp the
	// available box to a small positive floor, not fail.
	m := charMeasurer{cw: 0.1, lh: 0.3}
	res := FitText(m, "x", 0.3, 0.3, FitOptions{MinSize: 6, MaxSize: 12, Padding: 0.2})
	if len(res.Lines) != 1 {
		t.Fatalf("expected one line, got %v", res.Lines)
	}
}

func TestFitText_FixedSizeWrapsAtMeasuredWidth(t *testing.T) {
	m := charMeasurer{cw: 0.1, lh: 0.3}
	res := FitText(m, "aaaa bbbb cccc", 1.2, 2, FitOptions{FixedSize: 10, Padding: 0.2})
	want := []string{"aaaa", "bbbb", "cccc"}
	if !reflect.DeepEqual(res.Lines, want) {
		t.Errorf("Lines = %v, want %v", res.Lines, want)
	}
	if res.Size != 10 {
		t.Errorf("Size = %v, want 10", res.Size)
	}
	if res.Overflow {
		t.Error("unexpected overflow")
	}
}

func TestFitText_FixedSizeOverflowClipsNotShrinks(t *testing.T) {
	m := charMeasurer{cw: 0.1, lh: 0.5}
	res := FitText(m, "aaaa bbbb cccc dddd", 1.2, 1, FitOptions{FixedSize: 10, Padding: 0.2})
	if res.Size != 10 {
		t.Errorf("fixed policy must not change the size, got %v", res.Size)
	}
	if !res.Overflow {
		t.Error("expected overflow to be reported for clipping")
	}
}

func TestWrapByCount(t *testing.T) {
	tests := []struct {
		text string
		cols int
		want []string
	}{
		{"one two three", 7, []string{"one two", "three"}},
		{"one two three", 100, []string{"one two three"}},
		{"abcdefghij", 4, []string{"abcd", "efgh", "ij"}},
		{"a abcdefgh b", 4, []string{"a", "abcd", "efgh", "b"}},
		{"", 10, nil},
	}
	for _, tt := range tests {
		got := wrapByCount(tt.text, tt.cols)
		if !reflect.DeepEqual(got, tt.want) {
			t.Errorf("wrapByCount(%q, %d) = %v, want %v", tt.text, tt.cols, got, tt.want)
		}
		for _, line := range got {
			if len([]rune(line)) > tt.cols && !strings.Contains(line, " ") {
				t.Errorf("line %q exceeds %d columns", line, tt.cols)
			}
		}
	}
}

func TestWrapColumns(t *testing.T) {
	if got := wrapColumns(3, 12); got != 12 {
		t.Errorf("wrapColumns(3, 12) = %d, want 12", got)
	}
	// Narrow rectangles never go below the 10-column floor.
	if got := wrapColumns(0.5, 12); got != 10 {
		t.Errorf("wrapColumns(0.5, 12) = %d, want 10", got)
	}
	// Larger candidate sizes get fewer columns.
	if wrapColumns(5, 12) >= wrapColumns(5, 6) {
		t.Error("columns should scale inversely with size")
	}
}
