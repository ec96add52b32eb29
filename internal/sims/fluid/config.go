package fluid

import "strconv"

// MinDim is the smallest grid dimension the solver accepts. The interior
// loops index one cell past the border in every direction, so anything
// smaller has no interior to update.
const MinDim = 3

// Params holds the tunable solver coefficients.
type Params struct {
	Dt           float64
	Viscosity    float64
	DyeDiffusion float64

	PressureIters    int
	PressureMinIters int
	PressureTol      float64

	SplatCount  int
	SplatRadius float64
	SplatForce  float64
}

// Config controls the fluid simulation dimensions and tunables.
type Config struct {
	Width  int
	Height int

	Seed int64

	Params Params
}

// DefaultConfig returns the standard configuration.
func DefaultConfig() Config {
	return Config{
		Width:  256,
		Height: 256,
		Seed:   1337,
		Params: Params{
			Dt:               0.1,
			Viscosity:        0.001,
			DyeDiffusion:     0.0001,
			PressureIters:    20,
			PressureMinIters: 5,
			PressureTol:      0.001,
			SplatCount:       8,
			SplatRadius:      4,
			SplatForce:       6,
		},
	}
}

// FromMap populates the config from a string map (flag-style key/value pairs).
func FromMap(cfg map[string]string) Config {
	c := DefaultConfig()
	if cfg == nil {
		return c
	}
	if v, ok := cfg["w"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= MinDim {
			c.Width = parsed
		}
	}
	if v, ok := cfg["h"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= MinDim {
			c.Height = parsed
		}
	}
	if v, ok := cfg["seed"]; ok {
		if parsed, err := strconv.ParseInt(v, 10, 64); err == nil {
			c.Seed = parsed
		}
	}
	if v, ok := cfg["dt"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.Dt = parsed
		}
	}
	if v, ok := cfg["viscosity"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.Viscosity = parsed
		}
	}
	if v, ok := cfg["dye_diffusion"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.DyeDiffusion = parsed
		}
	}
	if v, ok := cfg["pressure_iters"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			c.Params.PressureIters = parsed
		}
	}
	if v, ok := cfg["pressure_min_iters"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.PressureMinIters = parsed
		}
	}
	if c.Params.PressureMinIters > c.Params.PressureIters {
		c.Params.PressureMinIters = c.Params.PressureIters
	}
	if v, ok := cfg["pressure_tol"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.PressureTol = parsed
		}
	}
	if v, ok := cfg["splat_count"]; ok {
		if parsed, err := strconv.Atoi(v); err == nil && parsed >= 0 {
			c.Params.SplatCount = parsed
		}
	}
	if v, ok := cfg["splat_radius"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 {
			c.Params.SplatRadius = parsed
		}
	}
	if v, ok := cfg["splat_force"]; ok {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed >= 0 {
			c.Params.SplatForce = parsed
		}
	}
	return c
}
