//go:build ebiten

package ui

import (
	"fmt"
	"image/color"
	"strconv"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/inpututil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font/basicfont"

	"github.com/ekg/itsliquid/internal/core"
)

type parameterProvider interface {
	Parameters() core.ParameterSnapshot
}

type hudControlState struct {
	control core.ParameterControl
	value   string
}

// HUD renders the parameter panel to the right of the simulation view
// and lets the user adjust exposed tunables with the arrow keys.
type HUD struct {
	sim   core.Sim
	width int

	controls []hudControlState
	selected int

	intSetter   core.IntParameterSetter
	floatSetter core.FloatParameterSetter

	panel *ebiten.Image
}

// NewHUD constructs a HUD for the provided simulation and panel width.
func NewHUD(sim core.Sim, width int) *HUD {
	if width <= 0 {
		return nil
	}
	h := &HUD{sim: sim, width: width}
	if provider, ok := sim.(core.ParameterControlsProvider); ok {
		controls := provider.ParameterControls()
		h.controls = make([]hudControlState, len(controls))
		for i, ctrl := range controls {
			h.controls[i] = hudControlState{control: ctrl, value: "--"}
		}
	}
	if setter, ok := sim.(core.IntParameterSetter); ok {
		h.intSetter = setter
	}
	if setter, ok := sim.(core.FloatParameterSetter); ok {
		h.floatSetter = setter
	}
	h.refreshValues()
	return h
}

// Width returns the panel width in pixels.
func (h *HUD) Width() int {
	if h == nil {
		return 0
	}
	return h.width
}

// Update processes control-adjustment input.
func (h *HUD) Update() {
	if h == nil || len(h.controls) == 0 {
		return
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyDown) {
		h.selected = (h.selected + 1) % len(h.controls)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyUp) {
		h.selected = (h.selected + len(h.controls) - 1) % len(h.controls)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyRight) {
		h.adjust(1)
	}
	if inpututil.IsKeyJustPressed(ebiten.KeyLeft) {
		h.adjust(-1)
	}
	h.refreshValues()
}

func (h *HUD) adjust(direction float64) {
	state := &h.controls[h.selected]
	ctrl := state.control
	switch ctrl.Type {
	case core.ParamTypeInt:
		if h.intSetter == nil {
			return
		}
		current, err := strconv.Atoi(state.value)
		if err != nil {
			return
		}
		next := current + int(direction*ctrl.Step)
		next = clampInt(next, ctrl)
		h.intSetter.SetIntParameter(ctrl.Key, next)
	case core.ParamTypeFloat:
		if h.floatSetter == nil {
			return
		}
		current, err := strconv.ParseFloat(state.value, 64)
		if err != nil {
			return
		}
		next := clampFloat(current+direction*ctrl.Step, ctrl)
		h.floatSetter.SetFloatParameter(ctrl.Key, next)
	}
}

// refreshValues pulls the current parameter values from the simulation.
func (h *HUD) refreshValues() {
	provider, ok := h.sim.(parameterProvider)
	if !ok {
		return
	}
	byKey := map[string]string{}
	for _, group := range provider.Parameters().Groups {
		for _, p := range group.Params {
			byKey[p.Key] = p.Value
		}
	}
	for i := range h.controls {
		if v, ok := byKey[h.controls[i].control.Key]; ok {
			h.controls[i].value = v
		}
	}
}

// Draw renders the panel to the right of the simulation viewport.
func (h *HUD) Draw(dst *ebiten.Image, offsetX, height int) {
	if h == nil {
		return
	}
	if h.panel == nil || h.panel.Bounds().Dy() != height {
		h.panel = ebiten.NewImage(h.width, height)
	}
	h.panel.Fill(color.RGBA{R: 16, G: 16, B: 24, A: 255})

	face := basicfont.Face7x13
	y := 16
	text.Draw(h.panel, h.sim.Name(), face, 8, y, color.White)
	y += 20
	for _, line := range helpLines {
		text.Draw(h.panel, line, face, 8, y, color.RGBA{R: 140, G: 140, B: 150, A: 255})
		y += 14
	}
	y += 8
	for i, state := range h.controls {
		marker := "  "
		col := color.Color(color.RGBA{R: 200, G: 200, B: 210, A: 255})
		if i == h.selected {
			marker = "> "
			col = color.White
		}
		line := fmt.Sprintf("%s%s: %s", marker, state.control.Label, state.value)
		text.Draw(h.panel, line, face, 8, y, col)
		y += 16
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Translate(float64(offsetX), 0)
	dst.DrawImage(h.panel, op)
}

var helpLines = []string{
	"drag: dye+force",
	"space: pause  n: tick",
	"r/s: reset/reseed",
	"b: brush  v: view  c: clear",
	"1/2/3: place  e: erase",
	"arrows: tune params",
	"q/esc: quit",
}

func clampInt(v int, ctrl core.ParameterControl) int {
	if ctrl.HasMin && float64(v) < ctrl.Min {
		v = int(ctrl.Min)
	}
	if ctrl.HasMax && float64(v) > ctrl.Max {
		v = int(ctrl.Max)
	}
	return v
}

func clampFloat(v float64, ctrl core.ParameterControl) float64 {
	if ctrl.HasMin && v < ctrl.Min {
		v = ctrl.Min
	}
	if ctrl.HasMax && v > ctrl.Max {
		v = ctrl.Max
	}
	return v
}
