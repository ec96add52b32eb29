package render

import "math"

// FillDyeRGBA tone-maps the three HDR dye channels into an RGBA byte
// buffer. Dye is unbounded above, so each channel passes through a
// Reinhard curve v/(1+v) before quantization; alpha is always opaque.
func FillDyeRGBA(buf []byte, r, g, b []float32) {
	for i := range r {
		base := i * 4
		buf[base+0] = toneMap(r[i])
		buf[base+1] = toneMap(g[i])
		buf[base+2] = toneMap(b[i])
		buf[base+3] = 0xff
	}
}

// FillSpeedRGBA visualizes the velocity field: red encodes |vx|, green
// encodes |vy|, with a fixed blue floor so still fluid reads as dark blue.
func FillSpeedRGBA(buf []byte, vx, vy []float32) {
	for i := range vx {
		base := i * 4
		buf[base+0] = clampByte(abs32(vx[i]) * 255)
		buf[base+1] = clampByte(abs32(vy[i]) * 255)
		buf[base+2] = 128
		buf[base+3] = 0xff
	}
}

func toneMap(v float32) byte {
	if v <= 0 {
		return 0
	}
	if math.IsInf(float64(v), 1) {
		return 255
	}
	return byte(v / (1 + v) * 255)
}

func clampByte(v float32) byte {
	if v <= 0 {
		return 0
	}
	if v >= 255 {
		return 255
	}
	return byte(v)
}

func abs32(v float32) float32 {
	if v < 0 {
		return -v
	}
	return v
}
