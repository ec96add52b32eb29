//go:build ebiten

package app

import (
	"image/color"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"

	"github.com/ekg/itsliquid/internal/core"
	"github.com/ekg/itsliquid/internal/render"
	"github.com/ekg/itsliquid/internal/ui"
)

// Simulation is the solver surface the GUI drives: stepping and
// injection plus raw field access for rendering.
type Simulation interface {
	core.Sim
	core.Field
}

// brushPalette cycles through dye colors on the B key.
var brushPalette = []core.DyeColor{
	{R: 1, G: 0.2, B: 0.1},
	{R: 0.1, G: 1, B: 0.3},
	{R: 0.2, G: 0.4, B: 1},
	{R: 1, G: 0.9, B: 0.2},
	{R: 1, G: 1, B: 1},
}

// Game adapts a fluid simulation to the ebiten.Game interface: it turns
// mouse drags into dye and momentum, reapplies persistent elements each
// tick and renders the dye (or velocity) field.
type Game struct {
	sim     Simulation
	painter *render.FieldPainter
	hud     *ui.HUD

	elements ElementSet

	scale    int
	paused   bool
	tickOnce bool
	seed     int64

	brush     int
	brushSize float32
	showSpeed bool

	lastMouseX int
	lastMouseY int
	dragging   bool
}

// New constructs a Game for the provided simulation.
func New(sim Simulation, scale int, seed int64) *Game {
	size := sim.Size()
	return &Game{
		sim:       sim,
		painter:   render.NewFieldPainter(size.W, size.H),
		hud:       ui.NewHUD(sim, 220),
		scale:     scale,
		seed:      seed,
		brushSize: 3,
	}
}

// Reset reinitializes the simulation state with the provided seed.
func (g *Game) Reset(seed int64) {
	g.seed = seed
	g.sim.Reset(seed)
	g.tickOnce = false
}

// Update handles per-frame input and advances the simulation.
func (g *Game) Update() error {
	if inpututil.IsKeyJustPressed(ebiten.KeyQ) || inpututil.IsKeyJustPressed(ebiten.KeyEscape) {
		return ebiten.Termination
	}
	if inpututil.IsKeyJustPressed(ebiten.KeySpace) {
		g.paused = !g.paused
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyN) {
		g.tickOnce = true
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyR) {
		g.Reset(g.seed)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyS) {
		g.Reset(time.Now().UnixNano())
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyC) {
		if clearer, ok := g.sim.(interface{ ClearDye() }); ok {
			clearer.ClearDye()
		}
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyB) {
		g.brush = (g.brush + 1) % len(brushPalette)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyV) {
		g.showSpeed = !g.showSpeed
	}

	g.handlePlacement()
	g.handleDrag()

	if g.hud != nil {
		g.hud.Update()
	}

	if (!g.paused) || g.tickOnce {
		g.elements.ApplyAll(g.sim)
		g.sim.Step()
		g.tickOnce = false
	}
	return nil
}

// handlePlacement places or erases persistent elements at the cursor.
func (g *Game) handlePlacement() {
	x, y, ok := g.cursorCell()
	if !ok {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.Key1) {
		g.elements.Add(Element{Kind: ElementDye, X: x, Y: y, Color: brushPalette[g.brush]})
	}
	if inpututil.IsKeyJustPressed(ebiten.Key2) {
		g.elements.Add(Element{Kind: ElementForce, X: x, Y: y, Force: core.Vec2{Y: -2}, Radius: g.brushSize})
	}
	if inpututil.IsKeyJustPressed(ebiten.Key3) {
		g.elements.Add(Element{Kind: ElementAttractor, X: x, Y: y, Radius: 4 * g.brushSize, Strength: 2})
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyE) {
		g.elements.EraseNear(x, y, 4*g.brushSize)
	}
}

// handleDrag injects dye and momentum while the left button is held.
func (g *Game) handleDrag() {
	if !ebiten.IsMouseButtonPressed(ebiten.MouseButtonLeft) {
		g.dragging = false
		return
	}
	x, y, ok := g.cursorCell()
	if !ok {
		g.dragging = false
		return
	}
	if g.dragging {
		force := core.Vec2{
			X: float32(x-g.lastMouseX) * 2,
			Y: float32(y-g.lastMouseY) * 2,
		}
		g.sim.AddForce(x, y, force, g.brushSize)
	}
	g.sim.AddDye(x, y, brushPalette[g.brush])
	g.lastMouseX, g.lastMouseY = x, y
	g.dragging = true
}

// cursorCell maps the cursor position to grid coordinates.
func (g *Game) cursorCell() (int, int, bool) {
	mx, my := ebiten.CursorPosition()
	x := mx / g.scale
	y := my / g.scale
	size := g.sim.Size()
	if x < 0 || x >= size.W || y < 0 || y >= size.H {
		return 0, 0, false
	}
	return x, y, true
}

// Draw renders the current simulation state plus the HUD.
func (g *Game) Draw(screen *ebiten.Image) {
	screen.Fill(color.Black)
	if g.showSpeed {
		g.painter.BlitSpeed(screen, g.sim, g.scale)
	} else {
		g.painter.BlitDye(screen, g.sim, g.scale)
	}
	if g.hud != nil {
		g.hud.Draw(screen, g.sim.Size().W*g.scale, g.sim.Size().H*g.scale)
	}
}

// Layout returns the logical screen size including the HUD panel.
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	s := g.sim.Size()
	hudWidth := 0
	if g.hud != nil {
		hudWidth = g.hud.Width()
	}
	return s.W*g.scale + hudWidth, s.H * g.scale
}
