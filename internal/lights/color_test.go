package lights

import (
	"testing"

	"go.yhsif.com/lifxlan"
)

func TestRGBToHSBKPrimaries(t *testing.T) {
	cases := []struct {
		name    string
		r, g, b uint8
		want    lifxlan.Color
	}{
		{"red", 255, 0, 0, lifxlan.Color{Hue: 0, Saturation: 65535, Brightness: 65535, Kelvin: defaultKelvin}},
		{"green", 0, 255, 0, lifxlan.Color{Hue: 21845, Saturation: 65535, Brightness: 65535, Kelvin: defaultKelvin}},
		{"blue", 0, 0, 255, lifxlan.Color{Hue: 43690, Saturation: 65535, Brightness: 65535, Kelvin: defaultKelvin}},
		{"white", 255, 255, 255, lifxlan.Color{Hue: 0, Saturation: 0, Brightness: 65535, Kelvin: defaultKelvin}},
		{"black", 0, 0, 0, lifxlan.Color{Hue: 0, Saturation: 0, Brightness: 0, Kelvin: defaultKelvin}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := rgbToHSBK(tc.r, tc.g, tc.b)
			if *got != tc.want {
				t.Errorf("rgbToHSBK(%d,%d,%d) = %+v, want %+v", tc.r, tc.g, tc.b, *got, tc.want)
			}
		})
	}
}

func TestRGBToHSBKMixed(t *testing.T) {
	got := rgbToHSBK(11, 22, 33)

	if got.Hue != 38229 {
		t.Errorf("Expected hue 38229, got %d", got.Hue)
	}
	if got.Saturation != 43690 {
		t.Errorf("Expected saturation 43690, got %d", got.Saturation)
	}
	if got.Brightness != 8481 {
		t.Errorf("Expected brightness 8481, got %d", got.Brightness)
	}
}

func TestPercentToUint16(t *testing.T) {
	if got := percentToUint16(0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if got := percentToUint16(20); got != 13107 {
		t.Errorf("Expected 13107, got %d", got)
	}
	if got := percentToUint16(100); got != 65535 {
		t.Errorf("Expected 65535, got %d", got)
	}
	// Values above 100 clamp rather than wrap.
	if got := percentToUint16(200); got != 65535 {
		t.Errorf("Expected 65535, got %d", got)
	}
}

func TestUint16ToPercent(t *testing.T) {
	if got := uint16toPercent(0); got != 0 {
		t.Errorf("Expected 0, got %d", got)
	}
	if got := uint16toPercent(13107); got != 20 {
		t.Errorf("Expected 20, got %d", got)
	}
	if got := uint16toPercent(65535); got != 100 {
		t.Errorf("Expected 100, got %d", got)
	}
}

func TestIsSameColor(t *testing.T) {
	a := &lifxlan.Color{Hue: 1, Saturation: 2, Brightness: 3, Kelvin: 4}
	b := &lifxlan.Color{Hue: 1, Saturation: 2, Brightness: 3, Kelvin: 4}
	c := &lifxlan.Color{Hue: 1, Saturation: 2, Brightness: 3, Kelvin: 5}

	if !isSameColor(nil, nil) {
		t.Error("Expected nil colors to match")
	}
	if isSameColor(a, nil) || isSameColor(nil, b) {
		t.Error("Expected nil vs non-nil to differ")
	}
	if !isSameColor(a, b) {
		t.Error("Expected equal colors to match")
	}
	if isSameColor(a, c) {
		t.Error("Expected different kelvin to differ")
	}
}

func TestToPowerPayload(t *testing.T) {
	if !toPowerPayload(lifxlan.PowerOn).On {
		t.Error("Expected on")
	}
	if toPowerPayload(lifxlan.PowerOff).On {
		t.Error("Expected off")
	}
}
