package lights

import (
	"math"

	"github.com/icza/gox/mathx"
	"go.yhsif.com/lifxlan"
)

const defaultKelvin uint16 = 3500

func isSameColor(a *lifxlan.Color, b *lifxlan.Color) bool {
	if a == nil && b == nil {
		return true
	}
	if a == nil || b == nil {
		return false
	}

	return a.Hue == b.Hue &&
		a.Saturation == b.Saturation &&
		a.Brightness == b.Brightness &&
		a.Kelvin == b.Kelvin
}

// rgbToHSBK maps 8-bit RGB channels onto the LIFX HSBK color space.
func rgbToHSBK(red, green, blue uint8) *lifxlan.Color {
	r := float64(red) / math.MaxUint8
	g := float64(green) / math.MaxUint8
	b := float64(blue) / math.MaxUint8

	max := math.Max(r, math.Max(g, b))
	min := math.Min(r, math.Min(g, b))
	delta := max - min

	var hue float64
	switch {
	case delta == 0:
		hue = 0
	case max == r:
		hue = 60 * math.Mod((g-b)/delta, 6)
	case max == g:
		hue = 60 * ((b-r)/delta + 2)
	default:
		hue = 60 * ((r-g)/delta + 4)
	}
	if hue < 0 {
		hue += 360
	}

	var saturation float64
	if max > 0 {
		saturation = delta / max
	}

	return &lifxlan.Color{
		Hue:        uint16(math.Mod(float64(0x10000)*hue/360, float64(0x10000))),
		Saturation: uint16(mathx.Round(saturation*math.MaxUint16, 1)),
		Brightness: uint16(mathx.Round(max*math.MaxUint16, 1)),
		Kelvin:     defaultKelvin,
	}
}

func percentToUint16(percent uint8) uint16 {
	if percent >= 100 {
		return math.MaxUint16
	}
	return uint16(mathx.Round(float64(percent)/100*math.MaxUint16, 1))
}

type colorPayload struct {
	Hue        uint8  `json:"hue"`
	Saturation uint8  `json:"saturation"`
	Brightness uint8  `json:"brightness"`
	Kelvin     uint16 `json:"kelvin"`
}

func toColorPayload(color *lifxlan.Color) *colorPayload {
	if color == nil {
		return nil
	}

	return &colorPayload{
		Hue:        uint16to8(color.Hue),
		Saturation: uint16to8(color.Saturation),
		Brightness: uint16toPercent(color.Brightness),
		Kelvin:     color.Kelvin,
	}
}

type powerPayload struct {
	On bool `json:"on"`
}

func toPowerPayload(power lifxlan.Power) *powerPayload {
	return &powerPayload{On: power != lifxlan.PowerOff}
}

func uint16to8(value uint16) uint8 {
	return uint8(value >> 8)
}

func uint16toPercent(value uint16) uint8 {
	return uint8(mathx.Round(float64(value)/math.MaxUint16*100, 1))
}
