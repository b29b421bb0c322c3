package quadrant

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"unicode"

	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
)

// Every parsed score saturates into this axis range.
const (
	scoreMin = 0.0
	scoreMax = 10.0
)

var (
	fractionRe = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+))/([+-]?(?:\d+\.?\d*|\.\d+))$`)
	percentRe  = regexp.MustCompile(`^([+-]?(?:\d+\.?\d*|\.\d+))%$`)
)

// spaceNormalizer maps every Unicode space separator (non-breaking
// spaces included, a frequent spreadsheet artifact) to a plain ASCII
// space so a single later pass can drop them all.
var spaceNormalizer = runes.Map(func(r rune) rune {
	if unicode.Is(unicode.Zs, r) {
		return ' '
	}
	return r
})

// ParseScore converts heterogeneous cell text into a score in [0, 10].
//
// Notations are tried in precedence order:
//
//  1. Fraction "a/b": score = a/b*10. A zero denominator is treated as
//     1 rather than raising; this is a long-standing quirk of the
//     ingestion path and is pinned by a test, do not "fix" it silently.
//  2. Percentage "p%": score = p/10.
//  3. Plain number, after stripping thousands separators and anything
//     else that is not a digit, '.', '-', '+' or an exponent marker.
//
// Values outside [0, 10] saturate; they are not an error. Input that
// yields nothing numeric fails with ErrInvalidScoreFormat.
func ParseScore(raw string) (float64, error) {
	s, _, err := transform.String(spaceNormalizer, raw)
	if err != nil {
		s = raw
	}
	s = strings.ReplaceAll(s, " ", "")

	if m := fractionRe.FindStringSubmatch(s); m != nil {
		a, errA := strconv.ParseFloat(m[1], 64)
		b, errB := strconv.ParseFloat(m[2], 64)
		if errA == nil && errB == nil {
			if b == 0 {
				b = 1
			}
			return clamp(a/b*scoreMax, scoreMin, scoreMax), nil
		}
	}

	if m := percentRe.FindStringSubmatch(s); m != nil {
		if p, err := strconv.ParseFloat(m[1], 64); err == nil {
			return clamp(p/10, scoreMin, scoreMax), nil
		}
	}

	filtered := strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9', r == '.', r == '-', r == '+', r == 'e', r == 'E':
			return r
		}
		return -1
	}, s)
	if !strings.ContainsAny(filtered, "0123456789") {
		return 0, fmt.Errorf("parse score %q: %w", raw, ErrInvalidScoreFormat)
	}
	v, err := strconv.ParseFloat(filtered, 64)
	if err != nil && !errors.Is(err, strconv.ErrRange) {
		return 0, fmt.Errorf("parse score %q: %w", raw, ErrInvalidScoreFormat)
	}
	// Out-of-range parses (strconv.ErrRange) come back as ±Inf and
	// saturate like any other out-of-range value.
	return clamp(v, scoreMin, scoreMax), nil
}
