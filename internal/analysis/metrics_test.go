package analysis

import (
	"strings"
	"testing"

	"github.com/ekg/itsliquid/internal/core"
	"github.com/ekg/itsliquid/internal/sims/fluid"
)

func TestAnalyzeCountsInteriorMass(t *testing.T) {
	f, err := fluid.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	f.AddDye(8, 8, core.DyeColor{R: 2, G: 1, B: 0.5})

	m := Analyze(f, 3)
	if m.Frame != 3 {
		t.Errorf("frame = %d", m.Frame)
	}
	if m.MassR != 2 || m.MassG != 1 || m.MassB != 0.5 {
		t.Errorf("mass = %v/%v/%v, want 2/1/0.5", m.MassR, m.MassG, m.MassB)
	}
	if m.MaxSpeed != 0 || m.KineticEnergy != 0 {
		t.Errorf("quiescent field reports motion: speed %v, energy %v", m.MaxSpeed, m.KineticEnergy)
	}
	if m.DyeEntropy <= 0 {
		t.Error("mixed empty/dyed cells should have positive entropy")
	}
}

func TestAnalyzeIgnoresBorderCells(t *testing.T) {
	f, err := fluid.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	f.AddDye(0, 0, core.DyeColor{R: 9})
	f.AddDye(15, 15, core.DyeColor{R: 9})

	if m := Analyze(f, 0); m.MassR != 0 {
		t.Errorf("border dye counted in interior mass: %v", m.MassR)
	}
}

func TestAnalyzeSeesMotion(t *testing.T) {
	f, err := fluid.New(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	f.AddDye(16, 16, core.DyeColor{R: 1, G: 1, B: 1})
	f.AddForce(16, 16, core.Vec2{X: 5, Y: 0}, 3)

	m := Analyze(f, 0)
	if m.MaxSpeed < 5 {
		t.Errorf("max speed = %v, want at least the injected 5", m.MaxSpeed)
	}
	if m.AbsDivergence <= 0 {
		t.Error("an unprojected impulse should show divergence")
	}
	if m.AvgSpeed <= 0 {
		t.Error("average speed should be positive")
	}
}

func TestRecorderHistoryAndCSV(t *testing.T) {
	f, err := fluid.New(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	f.AddDye(8, 8, core.DyeColor{R: 1})

	rec := NewRecorder()
	if _, ok := rec.Last(); ok {
		t.Fatal("empty recorder reports a last frame")
	}
	rec.Record(f, 0)
	f.Step()
	rec.Record(f, 1)

	if len(rec.History()) != 2 {
		t.Fatalf("history length = %d", len(rec.History()))
	}
	last, ok := rec.Last()
	if !ok || last.Frame != 1 {
		t.Fatalf("last = %+v, ok = %v", last, ok)
	}

	summary := rec.Summary()
	if !strings.Contains(summary, "frames 0..1") {
		t.Errorf("summary missing frame range: %q", summary)
	}

	var sb strings.Builder
	if err := rec.WriteCSV(&sb); err != nil {
		t.Fatal(err)
	}
	lines := strings.Split(strings.TrimSpace(sb.String()), "\n")
	if len(lines) != 3 {
		t.Fatalf("csv has %d lines, want header plus two rows", len(lines))
	}
	if !strings.HasPrefix(lines[0], "frame,mass_r") {
		t.Errorf("unexpected csv header %q", lines[0])
	}
}
