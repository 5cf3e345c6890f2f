package contrast

import (
	"math"
	"testing"
	"testing/quick"

	"github.com/accessguide/accessguide-backend/internal/apperr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var (
	black = RGB{}
	white = RGB{255, 255, 255}
)

func TestRelativeLuminance_Bounds(t *testing.T) {
	assert.Equal(t, 0.0, RelativeLuminance(black))
	assert.InDelta(t, 1.0, RelativeLuminance(white), 1e-12)
}

func TestRatio_BlackOnWhite(t *testing.T) {
	assert.InDelta(t, 21.0, Ratio(black, white), 1e-9)
	assert.InDelta(t, 21.0, Ratio(white, black), 1e-9)
}

func TestRatio_KnownPairs(t *testing.T) {
	tests := []struct {
		fg, bg string
		want   float64
	}{
		{"#767676", "#FFFFFF", 4.54},
		{"#777777", "#FFFFFF", 4.48},
		{"#0000FF", "#FFFFFF", 8.59},
		{"#FF0000", "#FFFFFF", 3.99},
	}
	for _, tt := range tests {
		t.Run(tt.fg+"/"+tt.bg, func(t *testing.T) {
			res, err := Evaluate(tt.fg, tt.bg)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, res.Ratio, 0.01)
		})
	}
}

func TestRatio_Properties(t *testing.T) {
	t.Run("symmetric", func(t *testing.T) {
		f := func(a, b RGB) bool { return Ratio(a, b) == Ratio(b, a) }
		require.NoError(t, quick.Check(f, nil))
	})

	t.Run("identical colors have ratio 1", func(t *testing.T) {
		f := func(a RGB) bool { return Ratio(a, a) == 1 }
		require.NoError(t, quick.Check(f, nil))
	})

	t.Run("within [1,21]", func(t *testing.T) {
		f := func(a, b RGB) bool {
			r := Ratio(a, b)
			return !math.IsNaN(r) && r >= 1 && r <= 21+1e-9
		}
		require.NoError(t, quick.Check(f, nil))
	})

	t.Run("darkening background under white text never lowers the ratio", func(t *testing.T) {
		f := func(bg RGB, shift uint8) bool {
			darker := RGB{R: sub(bg.R, shift), G: sub(bg.G, shift), B: sub(bg.B, shift)}
			return Ratio(white, darker) >= Ratio(white, bg)
		}
		require.NoError(t, quick.Check(f, nil))
	})

	t.Run("gray ramp is monotonic", func(t *testing.T) {
		prev := Ratio(white, white)
		for v := 254; v >= 0; v-- {
			cur := Ratio(white, RGB{uint8(v), uint8(v), uint8(v)})
			require.GreaterOrEqual(t, cur, prev, "gray %d", v)
			prev = cur
		}
	})
}

func sub(v, d uint8) uint8 {
	if d > v {
		return 0
	}
	return v - d
}

func TestEvaluate_InvalidInputNeverNaN(t *testing.T) {
	t.Run("foreground", func(t *testing.T) {
		_, err := Evaluate("#GGG", "#FFFFFF")
		require.Error(t, err)
		assert.Equal(t, apperr.KindInvalidColorFormat, apperr.KindOf(err))
		assert.Equal(t, "foreground", apperr.FieldOf(err))
	})

	t.Run("background", func(t *testing.T) {
		_, err := Evaluate("#000000", "white")
		require.Error(t, err)
		assert.Equal(t, "background", apperr.FieldOf(err))
	})
}

func TestParsePair(t *testing.T) {
	fg, bg, err := ParsePair("#777777", "ffffff")
	require.NoError(t, err)
	assert.Equal(t, RGB{0x77, 0x77, 0x77}, fg)
	assert.Equal(t, white, bg)

	_, _, err = ParsePair("#777777", "#12345")
	assert.Equal(t, "background", apperr.FieldOf(err))
}

func TestEvaluate_Result(t *testing.T) {
	res, err := Evaluate("000000", "#ffffff")
	require.NoError(t, err)

	assert.Equal(t, "#000000", res.Foreground)
	assert.Equal(t, "#FFFFFF", res.Background)
	assert.Equal(t, "21.00:1", res.RatioDisplay)
	assert.Equal(t, Levels{NormalAA: true, NormalAAA: true, LargeAA: true, LargeAAA: true, UIAA: true}, res.Levels)
}

func TestFormatRatio_Truncates(t *testing.T) {
	assert.Equal(t, "4.49:1", FormatRatio(4.4999))
	assert.Equal(t, "1.00:1", FormatRatio(1))
}
