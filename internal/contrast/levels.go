package contrast

import "fmt"

// WCAG 2.x minimum ratios. Comparisons are inclusive.
const (
	NormalTextAA  = 4.5
	NormalTextAAA = 7.0
	LargeTextAA   = 3.0
	LargeTextAAA  = 4.5
	UIComponentAA = 3.0
)

// Level names one success threshold.
type Level string

const (
	LevelNormalAA  Level = "normal_aa"
	LevelNormalAAA Level = "normal_aaa"
	LevelLargeAA   Level = "large_aa"
	LevelLargeAAA  Level = "large_aaa"
	LevelUIAA      Level = "ui_aa"
)

// AllLevels lists the levels in display order.
var AllLevels = []Level{LevelNormalAA, LevelNormalAAA, LevelLargeAA, LevelLargeAAA, LevelUIAA}

// Threshold returns the minimum ratio for l.
func (l Level) Threshold() (float64, error) {
	switch l {
	case LevelNormalAA:
		return NormalTextAA, nil
	case LevelNormalAAA:
		return NormalTextAAA, nil
	case LevelLargeAA:
		return LargeTextAA, nil
	case LevelLargeAAA:
		return LargeTextAAA, nil
	case LevelUIAA:
		return UIComponentAA, nil
	}
	return 0, fmt.Errorf("unknown level %q", string(l))
}

// Levels reports pass/fail for every threshold.
type Levels struct {
	NormalAA  bool `json:"normal_aa"`
	NormalAAA bool `json:"normal_aaa"`
	LargeAA   bool `json:"large_aa"`
	LargeAAA  bool `json:"large_aaa"`
	UIAA      bool `json:"ui_aa"`
}

// Classify compares ratio against the fixed thresholds.
func Classify(ratio float64) Levels {
	return Levels{
		NormalAA:  ratio >= NormalTextAA,
		NormalAAA: ratio >= NormalTextAAA,
		LargeAA:   ratio >= LargeTextAA,
		LargeAAA:  ratio >= LargeTextAAA,
		UIAA:      ratio >= UIComponentAA,
	}
}

// Passes reports whether l passes in ls.
func (ls Levels) Passes(l Level) bool {
	switch l {
	case LevelNormalAA:
		return ls.NormalAA
	case LevelNormalAAA:
		return ls.NormalAAA
	case LevelLargeAA:
		return ls.LargeAA
	case LevelLargeAAA:
		return ls.LargeAAA
	case LevelUIAA:
		return ls.UIAA
	}
	return false
}
