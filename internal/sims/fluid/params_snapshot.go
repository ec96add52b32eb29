package fluid

import (
	"strconv"

	"github.com/ekg/itsliquid/internal/core"
)

// Parameters reports the current tunables for HUD and diagnostic display.
func (f *Fluid) Parameters() core.ParameterSnapshot {
	params := f.cfg.Params
	groups := []core.ParameterGroup{
		{
			Name: "Grid",
			Params: []core.Parameter{
				intParam("w", "Width", f.w),
				intParam("h", "Height", f.h),
				int64Param("seed", "Seed", f.cfg.Seed),
			},
		},
		{
			Name: "Solver",
			Params: []core.Parameter{
				floatParam("dt", "Time step", params.Dt),
				floatParam("viscosity", "Viscosity", params.Viscosity),
				floatParam("dye_diffusion", "Dye diffusion", params.DyeDiffusion),
			},
		},
		{
			Name: "Pressure",
			Params: []core.Parameter{
				intParam("pressure_iters", "Pressure iteration cap", params.PressureIters),
				intParam("pressure_min_iters", "Pressure iteration floor", params.PressureMinIters),
				floatParam("pressure_tol", "Pressure tolerance", params.PressureTol),
			},
		},
		{
			Name: "Reset splats",
			Params: []core.Parameter{
				intParam("splat_count", "Splat count", params.SplatCount),
				floatParam("splat_radius", "Splat radius", params.SplatRadius),
				floatParam("splat_force", "Splat force", params.SplatForce),
			},
		},
	}
	return core.ParameterSnapshot{Groups: groups}
}

// ParameterControls lists the tunables adjustable from the HUD.
func (f *Fluid) ParameterControls() []core.ParameterControl {
	return []core.ParameterControl{
		{Key: "dt", Label: "Time step", Type: core.ParamTypeFloat, Step: 0.01, Min: 0.01, HasMin: true, Max: 1, HasMax: true},
		{Key: "viscosity", Label: "Viscosity", Type: core.ParamTypeFloat, Step: 0.0005, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "dye_diffusion", Label: "Dye diffusion", Type: core.ParamTypeFloat, Step: 0.0001, Min: 0, HasMin: true, Max: 1, HasMax: true},
		{Key: "pressure_iters", Label: "Pressure iteration cap", Type: core.ParamTypeInt, Step: 1, Min: 1, HasMin: true, Max: 200, HasMax: true},
	}
}

// SetFloatParameter updates a float tunable by key, reporting success.
func (f *Fluid) SetFloatParameter(key string, value float64) bool {
	switch key {
	case "dt":
		if value <= 0 {
			return false
		}
		f.cfg.Params.Dt = value
		f.dt = float32(value)
	case "viscosity":
		if value < 0 {
			return false
		}
		f.cfg.Params.Viscosity = value
		f.viscosity = float32(value)
	case "dye_diffusion":
		if value < 0 {
			return false
		}
		f.cfg.Params.DyeDiffusion = value
		f.dyeDiffusion = float32(value)
	case "pressure_tol":
		if value < 0 {
			return false
		}
		f.cfg.Params.PressureTol = value
	case "splat_radius":
		if value <= 0 {
			return false
		}
		f.cfg.Params.SplatRadius = value
	case "splat_force":
		if value < 0 {
			return false
		}
		f.cfg.Params.SplatForce = value
	default:
		return false
	}
	return true
}

// SetIntParameter updates an integer tunable by key, reporting success.
func (f *Fluid) SetIntParameter(key string, value int) bool {
	switch key {
	case "pressure_iters":
		if value < 1 {
			return false
		}
		f.cfg.Params.PressureIters = value
		if f.cfg.Params.PressureMinIters > value {
			f.cfg.Params.PressureMinIters = value
		}
	case "pressure_min_iters":
		if value < 0 || value > f.cfg.Params.PressureIters {
			return false
		}
		f.cfg.Params.PressureMinIters = value
	case "splat_count":
		if value < 0 {
			return false
		}
		f.cfg.Params.SplatCount = value
	default:
		return false
	}
	return true
}

func intParam(key, label string, value int) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.Itoa(value)}
}

func int64Param(key, label string, value int64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeInt, Value: strconv.FormatInt(value, 10)}
}

func floatParam(key, label string, value float64) core.Parameter {
	return core.Parameter{Key: key, Label: label, Type: core.ParamTypeFloat, Value: strconv.FormatFloat(value, 'g', -1, 64)}
}
