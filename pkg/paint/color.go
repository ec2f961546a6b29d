package paint

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

var ErrInvalidHex = errors.New("invalid hex color")

// Color is an RGBA color with 8-bit channels.
//
// Alpha is carried along but rasterizers fill opaquely; see Opaque.
type Color struct {
	R, G, B, A uint8
}

var (
	Purple = Color{R: 160, G: 0, B: 160, A: 0}
	Blue   = Color{R: 0, G: 120, B: 160, A: 0}
	White  = Color{R: 255, G: 255, B: 255, A: 255}
	Black  = Color{A: 255}
)

// ScaleIntensity multiplies the color channels by max(0, 1+amount).
// Channels are clamped to [0, 255] and truncated; alpha is unchanged.
func (c Color) ScaleIntensity(amount float64) Color {
	mult := math.Max(0, 1+amount)
	return Color{
		R: capChannel(float64(c.R) * mult),
		G: capChannel(float64(c.G) * mult),
		B: capChannel(float64(c.B) * mult),
		A: c.A,
	}
}

func capChannel(v float64) uint8 {
	if math.IsNaN(v) {
		return 0
	}
	return uint8(math.Max(0, math.Min(v, 255)))
}

// Opaque returns c as a fully opaque image color.
func (c Color) Opaque() color.RGBA {
	return color.RGBA{R: c.R, G: c.G, B: c.B, A: 0xff}
}

// Hex formats c as #rrggbbaa.
func (c Color) Hex() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.R, c.G, c.B, c.A)
}

// ParseHex parses #rrggbb or #rrggbbaa. The leading '#' is optional.
// Without an alpha component, alpha is 0.
func ParseHex(s string) (Color, error) {
	h := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(h) != 6 && len(h) != 8 {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}

	v, err := strconv.ParseUint(h, 16, 32)
	if err != nil {
		return Color{}, fmt.Errorf("%w: %q", ErrInvalidHex, s)
	}
	if len(h) == 6 {
		v <<= 8
	}

	return Color{
		R: uint8(v >> 24),
		G: uint8(v >> 16),
		B: uint8(v >> 8),
		A: uint8(v),
	}, nil
}
