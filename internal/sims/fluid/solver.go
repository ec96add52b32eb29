package fluid

import "github.com/ekg/itsliquid/internal/core"

// Fixed relaxation sweep counts. The iteration counts are part of the
// numeric contract: diffusion is not convergence-checked, and the mass
// drift the truncated iteration introduces is corrected by rescaling.
const (
	velocityDiffusionSweeps = 4
	dyeDiffusionSweeps      = 2

	// Dye totals at or below this are treated as an empty channel and
	// left alone by the mass rescale.
	massEpsilon = 1e-10
)

// diffuseVelocity solves (I - a∇²)v = vPrev with fixed-count relaxation
// sweeps, a = dt·viscosity. Updates are in place, so neighbor reads within
// a sweep mix current and previous values; single-threaded execution keeps
// this deterministic. Velocity boundaries are re-applied after every sweep
// so the relaxation sees correct wall values.
func (f *Fluid) diffuseVelocity() {
	w, h := f.w, f.h
	a := f.dt * f.viscosity
	inv := 1 / (1 + 4*a)
	vx := f.vx.Values()
	vy := f.vy.Values()
	vxPrev := f.vxPrev.Values()
	vyPrev := f.vyPrev.Values()

	for sweep := 0; sweep < velocityDiffusionSweeps; sweep++ {
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				idx := y*w + x
				vx[idx] = (vxPrev[idx] + a*(vx[idx-1]+vx[idx+1]+vx[idx-w]+vx[idx+w])) * inv
				vy[idx] = (vyPrev[idx] + a*(vy[idx-1]+vy[idx+1]+vy[idx-w]+vy[idx+w])) * inv
			}
		}
		f.setVelocityBoundaries()
	}
}

// diffuseDye runs the same implicit relaxation independently for each dye
// channel, a = dt·dyeDiffusion, then restores each channel's total mass.
// Diffusion is mass-preserving analytically; the finite sweep count drifts,
// so the post-total is rescaled back to the pre-total.
func (f *Fluid) diffuseDye() {
	preR := f.dyeR.Sum()
	preG := f.dyeG.Sum()
	preB := f.dyeB.Sum()

	a := f.dt * f.dyeDiffusion
	for sweep := 0; sweep < dyeDiffusionSweeps; sweep++ {
		f.diffuseChannelSweep(f.dyeR, f.dyeRPrev, a)
		f.diffuseChannelSweep(f.dyeG, f.dyeGPrev, a)
		f.diffuseChannelSweep(f.dyeB, f.dyeBPrev, a)
		f.setDyeBoundaries()
	}

	rescaleMass(f.dyeR, preR)
	rescaleMass(f.dyeG, preG)
	rescaleMass(f.dyeB, preB)
}

func (f *Fluid) diffuseChannelSweep(cur, prev *core.FloatGrid, a float32) {
	w, h := f.w, f.h
	inv := 1 / (1 + 4*a)
	c := cur.Values()
	p := prev.Values()
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			c[idx] = (p[idx] + a*(c[idx-1]+c[idx+1]+c[idx-w]+c[idx+w])) * inv
		}
	}
}

// advectVelocity backtraces each interior cell along the pre-step velocity
// field and bilinearly resamples that field at the source point. Source
// coordinates are clamped to [0.5, dim-1.5] so sampling stays inside the
// interior lattice.
func (f *Fluid) advectVelocity() {
	w, h := f.w, f.h
	dt := f.dt
	vx := f.vx.Values()
	vy := f.vy.Values()
	vxPrev := f.vxPrev.Values()
	vyPrev := f.vyPrev.Values()

	maxX := float32(w-1) - 0.5
	maxY := float32(h-1) - 0.5
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			srcX := clamp(float32(x)-dt*vxPrev[idx], 0.5, maxX)
			srcY := clamp(float32(y)-dt*vyPrev[idx], 0.5, maxY)

			x0 := int(srcX)
			y0 := int(srcY)
			sx := srcX - float32(x0)
			sy := srcY - float32(y0)

			i00 := y0*w + x0
			i01 := i00 + 1
			i10 := i00 + w
			i11 := i10 + 1

			vx[idx] = (1-sx)*(1-sy)*vxPrev[i00] + sx*(1-sy)*vxPrev[i01] +
				(1-sx)*sy*vxPrev[i10] + sx*sy*vxPrev[i11]
			vy[idx] = (1-sx)*(1-sy)*vyPrev[i00] + sx*(1-sy)*vyPrev[i01] +
				(1-sx)*sy*vyPrev[i10] + sx*sy*vyPrev[i11]
		}
	}
	f.setVelocityBoundaries()
}

// advectDye backtraces along the current, post-projection velocity field
// and samples the pre-step dye snapshots, then restores per-channel mass
// against the snapshot totals.
func (f *Fluid) advectDye() {
	w, h := f.w, f.h
	dt := f.dt
	vx := f.vx.Values()
	vy := f.vy.Values()
	r := f.dyeR.Values()
	g := f.dyeG.Values()
	b := f.dyeB.Values()
	rPrev := f.dyeRPrev.Values()
	gPrev := f.dyeGPrev.Values()
	bPrev := f.dyeBPrev.Values()

	preR := f.dyeRPrev.Sum()
	preG := f.dyeGPrev.Sum()
	preB := f.dyeBPrev.Sum()

	maxX := float32(w-1) - 0.5
	maxY := float32(h-1) - 0.5
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			srcX := clamp(float32(x)-dt*vx[idx], 0.5, maxX)
			srcY := clamp(float32(y)-dt*vy[idx], 0.5, maxY)

			x0 := int(srcX)
			y0 := int(srcY)
			sx := srcX - float32(x0)
			sy := srcY - float32(y0)

			i00 := y0*w + x0
			i01 := i00 + 1
			i10 := i00 + w
			i11 := i10 + 1

			w00 := (1 - sx) * (1 - sy)
			w01 := sx * (1 - sy)
			w10 := (1 - sx) * sy
			w11 := sx * sy

			r[idx] = w00*rPrev[i00] + w01*rPrev[i01] + w10*rPrev[i10] + w11*rPrev[i11]
			g[idx] = w00*gPrev[i00] + w01*gPrev[i01] + w10*gPrev[i10] + w11*gPrev[i11]
			b[idx] = w00*bPrev[i00] + w01*bPrev[i01] + w10*bPrev[i10] + w11*bPrev[i11]
		}
	}

	f.setDyeBoundaries()

	rescaleMass(f.dyeR, preR)
	rescaleMass(f.dyeG, preG)
	rescaleMass(f.dyeB, preB)
}

// projectVelocity removes the divergent component of the velocity field:
// it computes per-cell divergence, relaxes the pressure Poisson equation,
// then subtracts the pressure gradient. The relaxation runs up to the
// configured iteration cap and may stop early once the maximum per-cell
// change drops below the tolerance, but never before the iteration floor.
func (f *Fluid) projectVelocity() {
	w, h := f.w, f.h
	hStep := 1 / float32(w)
	vx := f.vx.Values()
	vy := f.vy.Values()
	p := f.pressure.Values()
	div := f.divergence.Values()

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			div[idx] = -0.5 * hStep * (vx[idx+1] - vx[idx-1] + vy[idx+w] - vy[idx-w])
			p[idx] = 0
		}
	}
	f.setPressureBoundaries()

	maxIters := f.cfg.Params.PressureIters
	minIters := f.cfg.Params.PressureMinIters
	tol := float32(f.cfg.Params.PressureTol)
	for iter := 0; iter < maxIters; iter++ {
		var maxChange float32
		for y := 1; y < h-1; y++ {
			for x := 1; x < w-1; x++ {
				idx := y*w + x
				old := p[idx]
				p[idx] = (div[idx] + p[idx-1] + p[idx+1] + p[idx-w] + p[idx+w]) / 4
				change := p[idx] - old
				if change < 0 {
					change = -change
				}
				if change > maxChange {
					maxChange = change
				}
			}
		}
		f.setPressureBoundaries()
		if iter >= minIters && maxChange < tol {
			break
		}
	}

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			vx[idx] -= 0.5 * (p[idx+1] - p[idx-1]) / hStep
			vy[idx] -= 0.5 * (p[idx+w] - p[idx-w]) / hStep
		}
	}
	f.setVelocityBoundaries()
}

// setVelocityBoundaries forces every border cell to zero velocity: solid,
// no-slip walls.
func (f *Fluid) setVelocityBoundaries() {
	w, h := f.w, f.h
	vx := f.vx.Values()
	vy := f.vy.Values()
	bottom := (h - 1) * w
	for x := 0; x < w; x++ {
		vx[x] = 0
		vy[x] = 0
		vx[bottom+x] = 0
		vy[bottom+x] = 0
	}
	for y := 0; y < h; y++ {
		row := y * w
		vx[row] = 0
		vy[row] = 0
		vx[row+w-1] = 0
		vy[row+w-1] = 0
	}
}

// setDyeBoundaries applies a zero-gradient condition: each border cell
// copies its nearest interior neighbor, so dye neither appears nor
// vanishes at the walls.
func (f *Fluid) setDyeBoundaries() {
	copyEdgeNeighbors(f.dyeR.Values(), f.w, f.h)
	copyEdgeNeighbors(f.dyeG.Values(), f.w, f.h)
	copyEdgeNeighbors(f.dyeB.Values(), f.w, f.h)
}

// setPressureBoundaries applies the same zero-gradient condition to the
// pressure scratch buffer.
func (f *Fluid) setPressureBoundaries() {
	copyEdgeNeighbors(f.pressure.Values(), f.w, f.h)
}

func copyEdgeNeighbors(buf []float32, w, h int) {
	bottom := (h - 1) * w
	for x := 0; x < w; x++ {
		buf[x] = buf[w+x]
		buf[bottom+x] = buf[bottom-w+x]
	}
	for y := 0; y < h; y++ {
		row := y * w
		buf[row] = buf[row+1]
		buf[row+w-1] = buf[row+w-2]
	}
}

func rescaleMass(g *core.FloatGrid, pre float64) {
	post := g.Sum()
	if post <= massEpsilon {
		return
	}
	g.Scale(float32(pre / post))
}

func clamp(v, lo, hi float32) float32 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
