// Package analysis computes per-frame diagnostics over a fluid field:
// dye mass, kinetic energy, entropy and the divergence/vorticity of the
// velocity field. It only reads solver buffers and never mutates them.
package analysis

import (
	"math"

	"github.com/ekg/itsliquid/internal/core"
)

// Metrics summarizes one simulation frame. All statistics are computed
// over interior cells only; border cells hold boundary-condition copies.
type Metrics struct {
	Frame int

	MassR float64
	MassG float64
	MassB float64

	MaxDye float64
	AvgDye float64

	KineticEnergy float64
	MaxSpeed      float64
	AvgSpeed      float64

	DyeEntropy    float64
	AbsDivergence float64
	AbsVorticity  float64
}

// dyeEntropyBuckets controls the quantization of the dye histogram used
// for the entropy estimate.
const dyeEntropyBuckets = 10.0

// Analyze computes Metrics for the current state of the field.
func Analyze(f core.Field, frame int) Metrics {
	size := f.Size()
	w, h := size.W, size.H
	vx := f.VelocityX()
	vy := f.VelocityY()
	r := f.DyeR()
	g := f.DyeG()
	b := f.DyeB()

	m := Metrics{Frame: frame}
	histogram := map[int]int{}
	var speedSum, dyeSum float64
	cells := 0

	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			cells++

			m.MassR += float64(r[idx])
			m.MassG += float64(g[idx])
			m.MassB += float64(b[idx])

			dye := float64(r[idx]+g[idx]+b[idx]) / 3
			dyeSum += dye
			if dye > m.MaxDye {
				m.MaxDye = dye
			}
			histogram[int(dye*dyeEntropyBuckets)]++

			speed := math.Sqrt(float64(vx[idx]*vx[idx] + vy[idx]*vy[idx]))
			m.KineticEnergy += 0.5 * dye * speed * speed
			speedSum += speed
			if speed > m.MaxSpeed {
				m.MaxSpeed = speed
			}

			div := float64(vx[idx+1]-vx[idx-1]+vy[idx+w]-vy[idx-w]) / 2
			m.AbsDivergence += math.Abs(div)

			curl := float64(vy[idx+1]-vy[idx-1]-(vx[idx+w]-vx[idx-w])) / 2
			m.AbsVorticity += math.Abs(curl)
		}
	}

	if cells > 0 {
		n := float64(cells)
		m.AvgDye = dyeSum / n
		m.AvgSpeed = speedSum / n
		m.AbsDivergence /= n
		m.AbsVorticity /= n
		for _, count := range histogram {
			p := float64(count) / n
			m.DyeEntropy -= p * math.Log2(p)
		}
	}
	return m
}
