package quadrant

import (
	"errors"
	"fmt"
	"math"
	"testing"
)

func TestParseScore_Fraction(t *testing.T) {
	got, err := ParseScore("7/10")
	if err != nil {
		t.Fatalf("ParseScore: %v", err)
	}
	if got != 7.0 {
		t.Errorf("expected 7.0, got %v", got)
	}
}

func TestParseScore_FractionZeroDenominator(t *testing.T) {
	// A zero denominator has always been treated as 1 by this parser.
	// That is almost certainly an accident of permissive parsing, but
	// downstream sheets rely on "n/0" not failing, so the behavior is
	// pinned here instead of being fixed.
	got, err := ParseScore("5/0")
	if err != nil {
		t.Fatalf("ParseScore(\"5/0\"): %v", err)
	}
	if math.IsNaN(got) || math.IsInf(got, 0) {
		t.Fatalf("expected finite value, got %v", got)
	}
	if got != 10 {
		t.Errorf("expected 10 (5/1*10 clamped), got %v", got)
	}
}

func TestParseScore_FractionWithSpaces(t *testing.T) {
	got, err := ParseScore(" 3 / 4 ")
	if err != nil {
		t.Fatalf("ParseScore: %v", err)
	}
	if got != 7.5 {
		t.Errorf("expected 7.5, got %v", got)
	}
}

func TestParseScore_PercentRange(t *testing.T) {
	for p := 0; p <= 1000; p += 7 {
		got, err := ParseScore(fmt.Sprintf("%d%%", p))
		if err != nil {
			t.Fatalf("ParseScore(%d%%): %v", p, err)
		}
		want := clamp(float64(p)/10, 0, 10)
		if got != want {
			t.Errorf("ParseScore(%d%%) = %v, want %v", p, got, want)
		}
	}
}

func TestParseScore_Plain(t *testing.T) {
	tests := []struct {
		in   string
		want float64
	}{
		{"7", 7},
		{"3.5", 3.5},
		{" 3.5 ", 3.5},
		{"1,234", 10},      // comma stripped, then saturates
		{"1 234", 10}, // non-breaking space stripped
		{"-4", 0},          // saturates low
		{"12", 10},         // saturates high
		{"1e999", 10},      // overflow saturates, no error
		{"$8.25", 8.25},    // stray currency symbol stripped
	}
	for _, tt := range tests {
		got, err := ParseScore(tt.in)
		if err != nil {
			t.Errorf("ParseScore(%q): %v", tt.in, err)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScore(%q) = %v, want %v", tt.in, got, tt.want)
		}
	}
}

func TestParseScore_Invalid(t *testing.T) {
	for _, in := range []string{"abc", "", "   ", "+", "-", ".", "e", "--", "n/a"} {
		_, err := ParseScore(in)
		if !errors.Is(err, ErrInvalidScoreFormat) {
			t.Errorf("ParseScore(%q): expected ErrInvalidScoreFormat, got %v", in, err)
		}
	}
}
