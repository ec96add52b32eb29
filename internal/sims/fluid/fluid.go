package fluid

import (
	"fmt"

	"github.com/ekg/itsliquid/internal/core"
	pkgcore "github.com/ekg/itsliquid/pkg/core"
)

// Fluid is a stable-fluids solver on a fixed rectangular grid. It advances
// a velocity field and a three-channel dye field through diffusion,
// pressure projection and semi-Lagrangian advection each tick.
//
// All buffers are flat row-major float32 slices of length w*h, allocated
// once at construction. Step mutates them in place; there is no resizing.
type Fluid struct {
	cfg Config

	w, h int

	vx, vy         *core.FloatGrid
	vxPrev, vyPrev *core.FloatGrid

	dyeR, dyeG, dyeB             *core.FloatGrid
	dyeRPrev, dyeGPrev, dyeBPrev *core.FloatGrid

	pressure   *core.FloatGrid
	divergence *core.FloatGrid

	dt           float32
	viscosity    float32
	dyeDiffusion float32
}

// New returns a solver with the provided dimensions using defaults.
func New(w, h int) (*Fluid, error) {
	cfg := DefaultConfig()
	cfg.Width = w
	cfg.Height = h
	return NewWithConfig(cfg)
}

// NewWithConfig returns a solver configured from the provided options.
// Dimensions below MinDim are rejected: the interior-loop arithmetic is
// undefined for them.
func NewWithConfig(cfg Config) (*Fluid, error) {
	if cfg.Width < MinDim || cfg.Height < MinDim {
		return nil, fmt.Errorf("fluid: grid %dx%d below minimum %dx%d",
			cfg.Width, cfg.Height, MinDim, MinDim)
	}
	w, h := cfg.Width, cfg.Height
	f := &Fluid{
		cfg:          cfg,
		w:            w,
		h:            h,
		vx:           core.NewFloatGrid(w, h),
		vy:           core.NewFloatGrid(w, h),
		vxPrev:       core.NewFloatGrid(w, h),
		vyPrev:       core.NewFloatGrid(w, h),
		dyeR:         core.NewFloatGrid(w, h),
		dyeG:         core.NewFloatGrid(w, h),
		dyeB:         core.NewFloatGrid(w, h),
		dyeRPrev:     core.NewFloatGrid(w, h),
		dyeGPrev:     core.NewFloatGrid(w, h),
		dyeBPrev:     core.NewFloatGrid(w, h),
		pressure:     core.NewFloatGrid(w, h),
		divergence:   core.NewFloatGrid(w, h),
		dt:           float32(cfg.Params.Dt),
		viscosity:    float32(cfg.Params.Viscosity),
		dyeDiffusion: float32(cfg.Params.DyeDiffusion),
	}
	return f, nil
}

// Name returns the solver identifier.
func (f *Fluid) Name() string { return "fluid" }

// Size reports the grid dimensions.
func (f *Fluid) Size() core.Size { return core.Size{W: f.w, H: f.h} }

// Width returns the grid width.
func (f *Fluid) Width() int { return f.w }

// Height returns the grid height.
func (f *Fluid) Height() int { return f.h }

// VelocityX exposes the horizontal velocity buffer.
func (f *Fluid) VelocityX() []float32 { return f.vx.Values() }

// VelocityY exposes the vertical velocity buffer.
func (f *Fluid) VelocityY() []float32 { return f.vy.Values() }

// DyeR exposes the red dye channel.
func (f *Fluid) DyeR() []float32 { return f.dyeR.Values() }

// DyeG exposes the green dye channel.
func (f *Fluid) DyeG() []float32 { return f.dyeG.Values() }

// DyeB exposes the blue dye channel.
func (f *Fluid) DyeB() []float32 { return f.dyeB.Values() }

// Pressure exposes the pressure scratch buffer from the last projection.
func (f *Fluid) Pressure() []float32 { return f.pressure.Values() }

// Divergence exposes the divergence scratch buffer from the last projection.
func (f *Fluid) Divergence() []float32 { return f.divergence.Values() }

// AddDye additively deposits dye at (x, y). Out-of-bounds coordinates are
// a silent no-op. Channel values are unbounded above; display tone-maps.
func (f *Fluid) AddDye(x, y int, c core.DyeColor) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	idx := y*f.w + x
	f.dyeR.Values()[idx] += c.R
	f.dyeG.Values()[idx] += c.G
	f.dyeB.Values()[idx] += c.B
}

// AddForce injects velocity into a disk of the given radius centered on
// (x, y) with linear radial falloff: full strength at the center, zero at
// the rim. Cells outside the grid or the radius are unaffected. This is
// the only way external callers inject momentum.
func (f *Fluid) AddForce(x, y int, force core.Vec2, radius float32) {
	if x < 0 || x >= f.w || y < 0 || y >= f.h {
		return
	}
	vx := f.vx.Values()
	vy := f.vy.Values()
	rSq := radius * radius
	ri := int(radius)
	for dy := -ri; dy <= ri; dy++ {
		py := y + dy
		if py < 0 || py >= f.h {
			continue
		}
		for dx := -ri; dx <= ri; dx++ {
			px := x + dx
			if px < 0 || px >= f.w {
				continue
			}
			distSq := float32(dx*dx + dy*dy)
			if distSq > rSq {
				continue
			}
			falloff := 1 - distSq/rSq
			idx := py*f.w + px
			vx[idx] += force.X * falloff
			vy[idx] += force.Y * falloff
		}
	}
}

// ClearDye removes all dye while leaving the velocity field untouched.
func (f *Fluid) ClearDye() {
	f.dyeR.Clear()
	f.dyeG.Clear()
	f.dyeB.Clear()
	f.dyeRPrev.Clear()
	f.dyeGPrev.Clear()
	f.dyeBPrev.Clear()
}

// Reset clears all buffers and seeds deterministic random dye splats with
// paired force impulses. A zero seed falls back to the config seed.
func (f *Fluid) Reset(seed int64) {
	effective := seed
	if effective == 0 {
		effective = f.cfg.Seed
	}
	f.vx.Clear()
	f.vy.Clear()
	f.vxPrev.Clear()
	f.vyPrev.Clear()
	f.dyeR.Clear()
	f.dyeG.Clear()
	f.dyeB.Clear()
	f.dyeRPrev.Clear()
	f.dyeGPrev.Clear()
	f.dyeBPrev.Clear()
	f.pressure.Clear()
	f.divergence.Clear()

	rng := pkgcore.NewRNG(effective)
	radius := float32(f.cfg.Params.SplatRadius)
	strength := float32(f.cfg.Params.SplatForce)
	for i := 0; i < f.cfg.Params.SplatCount; i++ {
		x := 1 + rng.IntN(f.w-2)
		y := 1 + rng.IntN(f.h-2)
		c := core.DyeColor{
			R: rng.Range(0.2, 1),
			G: rng.Range(0.2, 1),
			B: rng.Range(0.2, 1),
		}
		amount := rng.Range(0.5, 2)
		for dy := -1; dy <= 1; dy++ {
			for dx := -1; dx <= 1; dx++ {
				f.AddDye(x+dx, y+dy, core.DyeColor{
					R: c.R * amount,
					G: c.G * amount,
					B: c.B * amount,
				})
			}
		}
		f.AddForce(x, y, core.Vec2{
			X: rng.Range(-strength, strength),
			Y: rng.Range(-strength, strength),
		}, radius)
	}
	f.setVelocityBoundaries()
	f.setDyeBoundaries()
}

// Step advances the simulation by one tick. The stage order is fixed:
// each stage reads buffers populated by the previous one.
func (f *Fluid) Step() {
	f.vxPrev.CopyFrom(f.vx)
	f.vyPrev.CopyFrom(f.vy)
	f.dyeRPrev.CopyFrom(f.dyeR)
	f.dyeGPrev.CopyFrom(f.dyeG)
	f.dyeBPrev.CopyFrom(f.dyeB)

	f.diffuseVelocity()
	f.projectVelocity()
	f.advectVelocity()
	f.projectVelocity()
	f.diffuseDye()
	// Advection samples the dye snapshots, so refresh them here: the
	// advected field must carry the diffusion result, not undo it.
	f.dyeRPrev.CopyFrom(f.dyeR)
	f.dyeGPrev.CopyFrom(f.dyeG)
	f.dyeBPrev.CopyFrom(f.dyeB)
	f.advectDye()

	f.setVelocityBoundaries()
	f.setDyeBoundaries()
}

func init() {
	core.Register("fluid", func(cfg map[string]string) core.Sim {
		c := FromMap(cfg)
		f, err := NewWithConfig(c)
		if err != nil {
			// FromMap never emits dimensions below MinDim.
			panic(err)
		}
		return f
	})
}
