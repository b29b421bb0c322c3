package quadrant

import (
	"testing"

	"golang.org/x/image/font"
)

func TestFontCache_BuiltinFace(t *testing.T) {
	fc := NewFontCache()
	face := fc.GetFace(builtinFontName, 12)
	if face == nil {
		t.Fatal("embedded face must always be available")
	}
	if w := font.MeasureString(face, "Hello"); w <= 0 {
		t.Error("expected positive text width from embedded face")
	}
}

func TestFontCache_MeasureFaceSeparateFromRenderFace(t *testing.T) {
	fc := NewFontCache()
	render := fc.GetFace(builtinFontName, 14)
	measure := fc.GetMeasureFace(builtinFontName, 14)
	if render == nil || measure == nil {
		t.Fatal("expected both faces")
	}
	// Unhinted metrics may differ from hinted ones, but both must
	// measure something sensible.
	wr := font.MeasureString(render, "Hello World")
	wm := font.MeasureString(measure, "Hello World")
	if wr <= 0 || wm <= 0 {
		t.Errorf("widths: render=%v measure=%v", wr, wm)
	}
}

func TestFontCache_UnknownFont(t *testing.T) {
	fc := NewFontCache()
	if face := fc.GetFace("nonexistent-font-xyz-12345", 12); face != nil {
		t.Error("expected nil for nonexistent font")
	}
}

func TestFontCache_LoadFontData(t *testing.T) {
	fc := NewFontCache()
	if err := fc.LoadFontData("test", []byte("not a font")); err == nil {
		t.Error("expected error for invalid font data")
	}
}

func TestFontCache_FaceCached(t *testing.T) {
	fc := NewFontCache()
	a := fc.GetFace(builtinFontName, 12)
	b := fc.GetFace(builtinFontName, 12)
	if a != b {
		t.Error("expected the same cached face for identical key")
	}
	c := fc.GetFace(builtinFontName, 13)
	if a == c {
		t.Error("different sizes must not share a face")
	}
}
