package app

import (
	"testing"

	"github.com/ekg/itsliquid/internal/core"
	"github.com/ekg/itsliquid/internal/sims/fluid"
)

func newTestSim(t *testing.T) *fluid.Fluid {
	t.Helper()
	f, err := fluid.New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	return f
}

func TestDyeElementDepositsEachTick(t *testing.T) {
	f := newTestSim(t)
	var set ElementSet
	set.Add(Element{Kind: ElementDye, X: 16, Y: 16, Color: core.DyeColor{R: 0.5}})

	set.ApplyAll(f)
	set.ApplyAll(f)

	if got := f.DyeR()[16*32+16]; got != 1 {
		t.Errorf("dye after two ticks = %v, want 1", got)
	}
}

func TestForceElementUsesItsRadius(t *testing.T) {
	f := newTestSim(t)
	var set ElementSet
	set.Add(Element{Kind: ElementForce, X: 16, Y: 16, Force: core.Vec2{X: 2}, Radius: 3})

	set.ApplyAll(f)

	if got := f.VelocityX()[16*32+16]; got != 2 {
		t.Errorf("center vx = %v, want 2", got)
	}
	if got := f.VelocityX()[16*32+18]; got <= 0 {
		t.Errorf("cell inside radius got vx %v", got)
	}
}

func TestAttractorPullsTowardCenter(t *testing.T) {
	f := newTestSim(t)
	var set ElementSet
	set.Add(Element{Kind: ElementAttractor, X: 16, Y: 16, Radius: 4, Strength: 2})

	set.ApplyAll(f)

	// A cell to the right of the center must be pushed left (negative x).
	if got := f.VelocityX()[16*32+18]; got >= 0 {
		t.Errorf("cell right of attractor has vx %v, want negative", got)
	}
	// A cell below the center must be pushed up (negative y).
	if got := f.VelocityY()[18*32+16]; got >= 0 {
		t.Errorf("cell below attractor has vy %v, want negative", got)
	}
	// The center itself receives no self-pull.
	if got := f.VelocityX()[16*32+16]; got != 0 {
		t.Errorf("attractor center has vx %v, want 0", got)
	}
}

func TestEraseNearRemovesOnlyCloseElements(t *testing.T) {
	var set ElementSet
	set.Add(Element{Kind: ElementDye, X: 5, Y: 5})
	set.Add(Element{Kind: ElementDye, X: 6, Y: 5})
	set.Add(Element{Kind: ElementForce, X: 25, Y: 25})

	if removed := set.EraseNear(5, 5, 2); removed != 2 {
		t.Fatalf("removed %d elements, want 2", removed)
	}
	if set.Len() != 1 {
		t.Fatalf("set has %d elements left, want 1", set.Len())
	}
	if set.Elements()[0].Kind != ElementForce {
		t.Error("wrong element survived the eraser")
	}
}
