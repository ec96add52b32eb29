package render

import "testing"

func TestFillDyeRGBAToneMapping(t *testing.T) {
	r := []float32{0, 1, 100}
	g := []float32{0.5, 0, 0}
	b := []float32{0, 0, 3}
	buf := make([]byte, 4*len(r))

	FillDyeRGBA(buf, r, g, b)

	if buf[0] != 0 {
		t.Errorf("zero dye mapped to %d", buf[0])
	}
	if buf[3] != 0xff || buf[7] != 0xff || buf[11] != 0xff {
		t.Error("alpha must be opaque")
	}
	// v=1 maps to the midpoint of the curve.
	if got := buf[4]; got != 127 {
		t.Errorf("dye 1.0 mapped to %d, want %d", got, 127)
	}
	// HDR values saturate towards but never exceed full brightness.
	if got := buf[8]; got < 250 {
		t.Errorf("dye 100 mapped to %d, want near 255", got)
	}
	// Monotonic: more dye, brighter pixel.
	if buf[8] <= buf[4] {
		t.Errorf("tone map not monotonic: %d <= %d", buf[8], buf[4])
	}
}

func TestFillSpeedRGBAClamps(t *testing.T) {
	vx := []float32{0, -2, 0.5}
	vy := []float32{0, 3, -0.25}
	buf := make([]byte, 4*len(vx))

	FillSpeedRGBA(buf, vx, vy)

	if buf[0] != 0 || buf[1] != 0 {
		t.Error("still fluid should have zero red/green")
	}
	if buf[2] != 128 {
		t.Errorf("blue floor = %d, want 128", buf[2])
	}
	if buf[4] != 255 || buf[5] != 255 {
		t.Errorf("fast cells should clamp to 255, got %d/%d", buf[4], buf[5])
	}
	if buf[8] != 127 || buf[9] != 63 {
		t.Errorf("slow cell mapped to %d/%d", buf[8], buf[9])
	}
}
