// Package contrast computes WCAG 2.x contrast ratios between sRGB colors.
package contrast

import (
	"encoding/hex"
	"errors"
	"fmt"
	"strings"

	"github.com/accessguide/accessguide-backend/internal/apperr"
)

// ErrInvalidColorFormat is returned for anything other than six hex digits
// with an optional leading '#'.
var ErrInvalidColorFormat = errors.New("invalid color format")

// RGB is an 8-bit sRGB color.
type RGB struct {
	R, G, B uint8
}

// ParseHex parses "#RRGGBB" or "RRGGBB" (case-insensitive).
func ParseHex(s string) (RGB, error) {
	const op = "contrast.ParseHex"

	v := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(v) != 6 {
		return RGB{}, apperr.E(op, apperr.KindInvalidColorFormat,
			fmt.Errorf("%w: %q must have 6 hex digits", ErrInvalidColorFormat, s))
	}

	b, err := hex.DecodeString(v)
	if err != nil {
		return RGB{}, apperr.E(op, apperr.KindInvalidColorFormat,
			fmt.Errorf("%w: %q contains non-hex characters", ErrInvalidColorFormat, s))
	}

	return RGB{R: b[0], G: b[1], B: b[2]}, nil
}

// Hex renders the color as "#RRGGBB".
func (c RGB) Hex() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c RGB) String() string {
	return c.Hex()
}
