package fluid

import (
	"math"
	"testing"

	"github.com/ekg/itsliquid/internal/core"
)

func TestStepKeepsWallsNoSlip(t *testing.T) {
	f, err := New(24, 24)
	if err != nil {
		t.Fatal(err)
	}
	// Forces near the walls deliberately write into border cells.
	f.AddForce(1, 1, core.Vec2{X: 8, Y: 8}, 3)
	f.AddForce(22, 22, core.Vec2{X: -8, Y: -8}, 3)
	f.AddDye(12, 12, core.DyeColor{R: 1, G: 1, B: 1})

	for step := 0; step < 10; step++ {
		f.Step()
		vx := f.VelocityX()
		vy := f.VelocityY()
		w, h := f.Width(), f.Height()
		for x := 0; x < w; x++ {
			if vx[x] != 0 || vy[x] != 0 || vx[(h-1)*w+x] != 0 || vy[(h-1)*w+x] != 0 {
				t.Fatalf("step %d: nonzero velocity on horizontal wall at x=%d", step, x)
			}
		}
		for y := 0; y < h; y++ {
			if vx[y*w] != 0 || vy[y*w] != 0 || vx[y*w+w-1] != 0 || vy[y*w+w-1] != 0 {
				t.Fatalf("step %d: nonzero velocity on vertical wall at y=%d", step, y)
			}
		}
	}
}

func TestDyeMassConservedOverFiftySteps(t *testing.T) {
	f, err := New(96, 96)
	if err != nil {
		t.Fatal(err)
	}
	// Keep the dye well away from the walls so boundary copies stay zero.
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			f.AddDye(48+dx, 48+dy, core.DyeColor{R: 1, G: 0.6, B: 0.3})
		}
	}
	f.AddForce(48, 48, core.Vec2{X: 2, Y: 1}, 3)

	initialR := sum64(f.DyeR())
	initialG := sum64(f.DyeG())
	initialB := sum64(f.DyeB())

	for step := 0; step < 50; step++ {
		f.Step()
		checkMass(t, step, "r", sum64(f.DyeR()), initialR)
		checkMass(t, step, "g", sum64(f.DyeG()), initialG)
		checkMass(t, step, "b", sum64(f.DyeB()), initialB)
	}
}

func checkMass(t *testing.T, step int, channel string, got, want float64) {
	t.Helper()
	if want == 0 {
		t.Fatalf("channel %s has zero initial mass", channel)
	}
	if rel := math.Abs(got-want) / want; rel > 1e-4 {
		t.Fatalf("step %d: channel %s mass drifted by %.2e (got %v, want %v)",
			step, channel, rel, got, want)
	}
}

func TestProjectionReducesDivergence(t *testing.T) {
	f, err := New(50, 50)
	if err != nil {
		t.Fatal(err)
	}
	f.AddForce(20, 25, core.Vec2{X: 6, Y: 0}, 4)
	f.AddForce(32, 30, core.Vec2{X: 0, Y: -5}, 3)

	before := meanAbsDivergence(f)
	if before == 0 {
		t.Fatal("test setup produced a divergence-free field")
	}
	f.projectVelocity()
	after := meanAbsDivergence(f)
	if after >= before {
		t.Fatalf("projection did not reduce divergence: before %v, after %v", before, after)
	}
}

func TestSingleSplatDiffusesAndConservesMass(t *testing.T) {
	f, err := New(10, 10)
	if err != nil {
		t.Fatal(err)
	}
	f.AddDye(5, 5, core.DyeColor{R: 1})

	idx := 5*10 + 5
	if f.DyeR()[idx] <= 0 {
		t.Fatal("dye not deposited at target cell")
	}
	for i, v := range f.DyeR() {
		if i != idx && v != 0 {
			t.Fatalf("dye leaked to cell %d before any step", i)
		}
	}

	f.Step()

	if center := f.DyeR()[idx]; center >= 1 {
		t.Errorf("center dye %v did not diffuse outward", center)
	}
	r := f.DyeR()
	if spread := r[idx-1] + r[idx+1] + r[idx-10] + r[idx+10]; spread <= 0 {
		t.Error("dye did not spread to the four neighbors")
	}
	if total := sum64(f.DyeR()); math.Abs(total-1) > 1e-3 {
		t.Errorf("total red mass %v, want 1", total)
	}
}

func TestForceImpulseDisperses(t *testing.T) {
	f, err := New(50, 50)
	if err != nil {
		t.Fatal(err)
	}
	f.AddForce(25, 25, core.Vec2{X: 10, Y: 0}, 1)

	idx := 25*50 + 25
	if f.VelocityX()[idx] <= 0 {
		t.Fatal("force not injected at center")
	}

	f.Step()

	if got := f.VelocityX()[idx]; got >= 10 {
		t.Errorf("center velocity %v still holds the full impulse", got)
	}
	// The impulse must no longer be concentrated in a single cell: either
	// it propagated to other cells or diffusion+projection decayed it.
	nonzero := 0
	for _, v := range f.VelocityX() {
		if v != 0 {
			nonzero++
		}
	}
	if nonzero == 1 {
		t.Error("velocity still concentrated in a single cell after one step")
	}
}

func TestDyeReachesNeighborsUnderZeroVelocity(t *testing.T) {
	f, err := New(50, 50)
	if err != nil {
		t.Fatal(err)
	}
	f.AddDye(25, 25, core.DyeColor{R: 10})

	for i := 0; i < 10; i++ {
		f.Step()
	}

	center := f.DyeR()[25*50+25]
	neighbor := f.DyeR()[25*50+26]
	if neighbor <= 0.0001 {
		t.Errorf("neighbor dye %v, want visible diffusion", neighbor)
	}
	if center <= 0 {
		t.Errorf("center dye %v vanished", center)
	}
	if center <= neighbor {
		t.Errorf("center %v should stay above neighbor %v after short diffusion", center, neighbor)
	}
}

func meanAbsDivergence(f *Fluid) float64 {
	w, h := f.Width(), f.Height()
	vx := f.VelocityX()
	vy := f.VelocityY()
	var total float64
	var cells int
	for y := 1; y < h-1; y++ {
		for x := 1; x < w-1; x++ {
			idx := y*w + x
			div := float64(vx[idx+1]-vx[idx-1]+vy[idx+w]-vy[idx-w]) / 2
			total += math.Abs(div)
			cells++
		}
	}
	return total / float64(cells)
}

func sum64(buf []float32) float64 {
	var total float64
	for _, v := range buf {
		total += float64(v)
	}
	return total
}
