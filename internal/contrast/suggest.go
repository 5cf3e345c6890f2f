package contrast

import (
	"math"

	colorful "github.com/lucasb-eyer/go-colorful"
)

// lightnessStep is the CIE-Lab L* increment (on colorful's 0..1 scale)
// used when searching for a passing foreground.
const lightnessStep = 0.0025

// Suggestion is the closest foreground found for a target level.
type Suggestion struct {
	Level      Level   `json:"level"`
	Original   Result  `json:"original"`
	Foreground string  `json:"foreground"`
	Ratio      float64 `json:"ratio"`
	Passes     bool    `json:"passes"`
	Changed    bool    `json:"changed"`
}

// Suggest keeps the hue and chroma of fg and moves its Lab lightness until
// the pair meets level, preferring the smaller lightness change. When no
// lightness works it falls back to black or white, whichever contrasts more.
func Suggest(fg, bg RGB, level Level) (Suggestion, error) {
	threshold, err := level.Threshold()
	if err != nil {
		return Suggestion{}, err
	}

	orig := EvaluateRGB(fg, bg)
	s := Suggestion{
		Level:      level,
		Original:   orig,
		Foreground: orig.Foreground,
		Ratio:      orig.Ratio,
		Passes:     orig.Ratio >= threshold,
	}
	if s.Passes {
		return s, nil
	}

	l, a, b := toColorful(fg).Lab()
	bgLum := RelativeLuminance(bg)

	darker, dOK := searchLightness(l, a, b, -lightnessStep, bgLum, threshold)
	lighter, lOK := searchLightness(l, a, b, lightnessStep, bgLum, threshold)

	var pick RGB
	switch {
	case dOK && lOK:
		pick = darker.c
		if lighter.dist < darker.dist {
			pick = lighter.c
		}
	case dOK:
		pick = darker.c
	case lOK:
		pick = lighter.c
	default:
		pick = RGB{}
		if Ratio(RGB{R: 255, G: 255, B: 255}, bg) > Ratio(pick, bg) {
			pick = RGB{R: 255, G: 255, B: 255}
		}
	}

	r := Ratio(pick, bg)
	s.Foreground = pick.Hex()
	s.Ratio = r
	s.Passes = r >= threshold
	s.Changed = pick != fg
	return s, nil
}

type candidate struct {
	c    RGB
	dist float64
}

func searchLightness(l, a, b, step, bgLum, threshold float64) (candidate, bool) {
	for cur := l + step; cur >= 0 && cur <= 1; cur += step {
		c := fromColorful(colorful.Lab(cur, a, b))
		if RatioFromLuminance(RelativeLuminance(c), bgLum) >= threshold {
			return candidate{c: c, dist: math.Abs(cur - l)}, true
		}
	}
	return candidate{}, false
}

func toColorful(c RGB) colorful.Color {
	return colorful.Color{R: float64(c.R) / 255, G: float64(c.G) / 255, B: float64(c.B) / 255}
}

func fromColorful(c colorful.Color) RGB {
	r, g, b := c.Clamped().RGB255()
	return RGB{R: r, G: g, B: b}
}
