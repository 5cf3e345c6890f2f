package contrast

import (
	"errors"
	"fmt"
	"math"

	"github.com/accessguide/accessguide-backend/internal/apperr"
)

// channelToLinear applies the sRGB transfer function with the 0.03928
// breakpoint published in WCAG 2.x.
func channelToLinear(v uint8) float64 {
	c := float64(v) / 255
	if c <= 0.03928 {
		return c / 12.92
	}
	return math.Pow((c+0.055)/1.055, 2.4)
}

// RelativeLuminance returns the WCAG relative luminance of c, in [0,1].
func RelativeLuminance(c RGB) float64 {
	return 0.2126*channelToLinear(c.R) +
		0.7152*channelToLinear(c.G) +
		0.0722*channelToLinear(c.B)
}

// RatioFromLuminance returns (lighter+0.05)/(darker+0.05).
func RatioFromLuminance(l1, l2 float64) float64 {
	if l1 < l2 {
		l1, l2 = l2, l1
	}
	return (l1 + 0.05) / (l2 + 0.05)
}

// Ratio returns the contrast ratio between a and b, in [1,21].
// The result does not depend on argument order.
func Ratio(a, b RGB) float64 {
	return RatioFromLuminance(RelativeLuminance(a), RelativeLuminance(b))
}

// Result is the outcome of evaluating a foreground/background pair.
type Result struct {
	Foreground   string  `json:"foreground"`
	Background   string  `json:"background"`
	Ratio        float64 `json:"ratio"`
	RatioDisplay string  `json:"ratio_display"`
	Levels       Levels  `json:"levels"`
}

// ParsePair parses a foreground and background color. Failures carry the
// offending field ("foreground" or "background").
func ParsePair(foreground, background string) (fg, bg RGB, err error) {
	if fg, err = ParseHex(foreground); err != nil {
		return RGB{}, RGB{}, tagField(err, "foreground")
	}
	if bg, err = ParseHex(background); err != nil {
		return RGB{}, RGB{}, tagField(err, "background")
	}
	return fg, bg, nil
}

// Evaluate parses both colors and classifies their contrast ratio.
func Evaluate(foreground, background string) (Result, error) {
	fg, bg, err := ParsePair(foreground, background)
	if err != nil {
		return Result{}, err
	}
	return EvaluateRGB(fg, bg), nil
}

// EvaluateRGB classifies an already parsed pair.
func EvaluateRGB(fg, bg RGB) Result {
	r := Ratio(fg, bg)
	return Result{
		Foreground:   fg.Hex(),
		Background:   bg.Hex(),
		Ratio:        r,
		RatioDisplay: FormatRatio(r),
		Levels:       Classify(r),
	}
}

// FormatRatio renders r as "4.54:1". Digits past the second decimal are
// truncated so a failing ratio never displays as a passing one.
func FormatRatio(r float64) string {
	return fmt.Sprintf("%.2f:1", math.Floor(r*100)/100)
}

func tagField(err error, field string) error {
	var oe *apperr.OpError
	if errors.As(err, &oe) {
		return oe.WithField(field)
	}
	return err
}
