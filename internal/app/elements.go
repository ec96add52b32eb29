package app

import (
	"math"

	"github.com/ekg/itsliquid/internal/core"
)

// ElementKind enumerates the persistent scene element types.
type ElementKind int

const (
	// ElementDye deposits its color every tick.
	ElementDye ElementKind = iota
	// ElementForce injects a constant directional force every tick.
	ElementForce
	// ElementAttractor pulls nearby fluid toward its center every tick.
	ElementAttractor
)

// Element is a recurring source placed by the user and reapplied to the
// simulation on every tick until erased.
type Element struct {
	Kind   ElementKind
	X, Y   int
	Radius float32

	Color    core.DyeColor
	Force    core.Vec2
	Strength float32
}

// Apply feeds the element into the simulation for one tick.
func (e Element) Apply(sim core.Sim) {
	switch e.Kind {
	case ElementDye:
		sim.AddDye(e.X, e.Y, e.Color)
	case ElementForce:
		sim.AddForce(e.X, e.Y, e.Force, e.Radius)
	case ElementAttractor:
		e.applyAttractor(sim)
	}
}

// applyAttractor adds, for every cell inside the radius, a force pointing
// at the attractor center with linear falloff towards the rim.
func (e Element) applyAttractor(sim core.Sim) {
	r := e.Radius
	if r <= 0 {
		return
	}
	ri := int(r)
	for dy := -ri; dy <= ri; dy++ {
		for dx := -ri; dx <= ri; dx++ {
			if dx == 0 && dy == 0 {
				continue
			}
			dist := float32(math.Sqrt(float64(dx*dx + dy*dy)))
			if dist > r {
				continue
			}
			scale := e.Strength * (1 - dist/r) / dist
			// Radius 1 confines the injection to this one cell.
			sim.AddForce(e.X+dx, e.Y+dy, core.Vec2{
				X: float32(-dx) * scale,
				Y: float32(-dy) * scale,
			}, 1)
		}
	}
}

// ElementSet holds the active persistent elements in placement order.
type ElementSet struct {
	elements []Element
}

// Add appends an element to the set.
func (s *ElementSet) Add(e Element) {
	s.elements = append(s.elements, e)
}

// Elements returns the active elements in placement order.
func (s *ElementSet) Elements() []Element {
	return s.elements
}

// Len reports the number of active elements.
func (s *ElementSet) Len() int { return len(s.elements) }

// ApplyAll feeds every element into the simulation for one tick.
func (s *ElementSet) ApplyAll(sim core.Sim) {
	for _, e := range s.elements {
		e.Apply(sim)
	}
}

// EraseNear removes all elements within radius of (x, y) and reports how
// many were removed.
func (s *ElementSet) EraseNear(x, y int, radius float32) int {
	rSq := radius * radius
	kept := s.elements[:0]
	removed := 0
	for _, e := range s.elements {
		dx := float32(e.X - x)
		dy := float32(e.Y - y)
		if dx*dx+dy*dy <= rSq {
			removed++
			continue
		}
		kept = append(kept, e)
	}
	s.elements = kept
	return removed
}
