package imaging

import (
	"fmt"
	"image/color"
	"strconv"
	"strings"

	"github.com/lucasb-eyer/go-colorful"
)

// Default overlay colors.
var (
	AxisXColor = color.RGBA{255, 0, 0, 255}
	AxisYColor = color.RGBA{0, 255, 0, 255}
	GridColor  = color.RGBA{100, 100, 100, 255}
)

// ParseColor parses "#RRGGBB", "#RGB" or "#RRGGBBAA" (the leading '#' is
// optional). The hex channels are straight alpha; the result is premultiplied
// as color.RGBA requires.
func ParseColor(hex string) (color.RGBA, error) {
	hex = strings.TrimPrefix(strings.TrimSpace(hex), "#")
	if hex == "" {
		return color.RGBA{}, fmt.Errorf("empty color string")
	}

	alpha := uint8(255)
	if len(hex) == 8 {
		a, err := strconv.ParseUint(hex[6:], 16, 8)
		if err != nil {
			return color.RGBA{}, fmt.Errorf("invalid alpha in color %q: %w", hex, err)
		}
		alpha = uint8(a)
		hex = hex[:6]
	}

	c, err := colorful.Hex("#" + hex)
	if err != nil {
		return color.RGBA{}, fmt.Errorf("invalid color %q: %w", hex, err)
	}

	r, g, b := c.RGB255()
	return color.RGBAModel.Convert(color.NRGBA{R: r, G: g, B: b, A: alpha}).(color.RGBA), nil
}

// ParseColorOr parses hex and falls back to def when it is empty or invalid.
func ParseColorOr(hex string, def color.RGBA) color.RGBA {
	c, err := ParseColor(hex)
	if err != nil {
		return def
	}
	return c
}
