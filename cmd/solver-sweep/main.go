// Command solver-sweep runs the solver across a grid of tunables and
// reports how each combination holds up on divergence, mass drift and
// remaining kinetic energy.
package main

import (
	"flag"
	"fmt"
	"math"
	"runtime"
	"sort"
	"sync"
	"time"

	"github.com/ekg/itsliquid/internal/analysis"
	"github.com/ekg/itsliquid/internal/core"
	"github.com/ekg/itsliquid/internal/sims/fluid"
)

type paramSet struct {
	viscosity     float64
	dt            float64
	pressureIters int
}

func (p paramSet) String() string {
	return fmt.Sprintf("viscosity=%.4f dt=%.2f pressureIters=%d",
		p.viscosity, p.dt, p.pressureIters)
}

type scenarioResult struct {
	params paramSet

	finalDivergence float64
	massDriftR      float64
	kineticEnergy   float64
	maxSpeed        float64
	elapsed         time.Duration
}

func main() {
	steps := flag.Int("steps", 120, "ticks to simulate per scenario")
	size := flag.Int("size", 128, "grid edge length in cells")
	workers := flag.Int("workers", runtime.NumCPU(), "number of worker goroutines")
	flag.Parse()

	viscosityOptions := []float64{0.0001, 0.001, 0.01}
	dtOptions := []float64{0.05, 0.1, 0.2}
	pressureOptions := []int{10, 20, 40}

	var sets []paramSet
	for _, visc := range viscosityOptions {
		for _, dt := range dtOptions {
			for _, iters := range pressureOptions {
				sets = append(sets, paramSet{viscosity: visc, dt: dt, pressureIters: iters})
			}
		}
	}

	jobs := make(chan paramSet)
	results := make(chan scenarioResult)

	var wg sync.WaitGroup
	for i := 0; i < *workers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for set := range jobs {
				results <- runScenario(set, *size, *steps)
			}
		}()
	}
	go func() {
		wg.Wait()
		close(results)
	}()
	go func() {
		for _, set := range sets {
			jobs <- set
		}
		close(jobs)
	}()

	var collected []scenarioResult
	for res := range results {
		collected = append(collected, res)
	}
	sort.Slice(collected, func(i, j int) bool {
		return collected[i].finalDivergence < collected[j].finalDivergence
	})

	fmt.Printf("%d scenarios, %d steps each on a %dx%d grid\n\n",
		len(collected), *steps, *size, *size)
	for _, res := range collected {
		fmt.Printf("%s\n  |div|=%.3e massDrift=%.3e energy=%.4f maxSpeed=%.3f (%v)\n",
			res.params, res.finalDivergence, res.massDriftR,
			res.kineticEnergy, res.maxSpeed, res.elapsed.Round(time.Millisecond))
	}
}

func runScenario(set paramSet, size, steps int) scenarioResult {
	cfg := fluid.DefaultConfig()
	cfg.Width = size
	cfg.Height = size
	cfg.Params.Viscosity = set.viscosity
	cfg.Params.Dt = set.dt
	cfg.Params.PressureIters = set.pressureIters

	sim, err := fluid.NewWithConfig(cfg)
	if err != nil {
		panic(err)
	}

	center := size / 2
	for dy := -2; dy <= 2; dy++ {
		for dx := -2; dx <= 2; dx++ {
			sim.AddDye(center+dx, center+dy, core.DyeColor{R: 1, G: 0.5, B: 0.2})
		}
	}
	sim.AddForce(center, center, core.Vec2{X: 8, Y: 3}, 4)
	sim.AddForce(center/2, center/2, core.Vec2{X: -4, Y: 6}, 3)

	initial := analysis.Analyze(sim, 0)

	start := time.Now()
	for i := 0; i < steps; i++ {
		sim.Step()
	}
	elapsed := time.Since(start)

	final := analysis.Analyze(sim, steps)
	drift := 0.0
	if initial.MassR > 0 {
		drift = math.Abs(final.MassR-initial.MassR) / initial.MassR
	}
	return scenarioResult{
		params:          set,
		finalDivergence: final.AbsDivergence,
		massDriftR:      drift,
		kineticEnergy:   final.KineticEnergy,
		maxSpeed:        final.MaxSpeed,
		elapsed:         elapsed,
	}
}
