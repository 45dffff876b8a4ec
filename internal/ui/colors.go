package ui

import (
	"github.com/gdamore/tcell/v2"
	colorful "github.com/lucasb-eyer/go-colorful"
)

// Trail and meter palette
var (
	groundColor = mustHex("#2e7d32")
	skyColor    = mustHex("#fff59d")
	meterLow    = mustHex("#43a047")
	meterHigh   = mustHex("#e53935")
)

// TrailTopHeight is the ball height that maps to the brightest trail colour
const TrailTopHeight = 2.5

func mustHex(s string) colorful.Color {
	c, err := colorful.Hex(s)
	if err != nil {
		panic(err)
	}
	return c
}

func toTcell(c colorful.Color) tcell.Color {
	r, g, b := c.Clamped().RGB255()
	return tcell.NewRGBColor(int32(r), int32(g), int32(b))
}

// HeightColor shades a trail point from grass green at ground level to pale
// yellow at release height.
func HeightColor(y float64) tcell.Color {
	return toTcell(groundColor.BlendHcl(skyColor, unit(y/TrailTopHeight)))
}

// MeterColor runs from green at zero power to red at full power
func MeterColor(power float64) tcell.Color {
	return toTcell(meterLow.BlendHcl(meterHigh, unit(power)))
}

func unit(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
