package core

// Size describes the dimensions of a simulation grid.
type Size struct {
	W int
	H int
}

// Vec2 is a two-component float32 vector used for forces and velocities.
type Vec2 struct {
	X float32
	Y float32
}

// DyeColor holds per-channel dye amounts. Values are additive and may
// exceed 1; the renderer tone-maps for display.
type DyeColor struct {
	R float32
	G float32
	B float32
}

// Sim defines the capability set a fluid solver backend must implement.
type Sim interface {
	Name() string
	Size() Size
	Reset(seed int64)
	Step()
	AddDye(x, y int, c DyeColor)
	AddForce(x, y int, force Vec2, radius float32)
}

// Field grants read access to the raw solver buffers for rendering,
// export and analysis. Callers other than the solver must not mutate
// the returned slices.
type Field interface {
	Size() Size
	VelocityX() []float32
	VelocityY() []float32
	DyeR() []float32
	DyeG() []float32
	DyeB() []float32
}

// Factory constructs a Sim using an optional configuration map.
type Factory func(cfg map[string]string) Sim

var sims = map[string]Factory{}

// Register adds a solver factory under the provided name.
func Register(name string, f Factory) {
	if name == "" || f == nil {
		return
	}
	sims[name] = f
}

// Sims exposes the registry of available solver factories.
func Sims() map[string]Factory {
	return sims
}
