package export

import (
	"fmt"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/ekg/itsliquid/internal/core"
	"github.com/ekg/itsliquid/internal/sims/fluid"
)

func newTestFluid(t *testing.T) *fluid.Fluid {
	t.Helper()
	f, err := fluid.New(20, 20)
	if err != nil {
		t.Fatal(err)
	}
	f.AddDye(10, 10, core.DyeColor{R: 2, G: 1, B: 0.5})
	f.AddForce(10, 10, core.Vec2{X: 3, Y: 1}, 2)
	return f
}

func TestDyeImageUpsampling(t *testing.T) {
	f := newTestFluid(t)
	img := NewImageExporter(80, 80).DyeImage(f)

	bounds := img.Bounds()
	if bounds.Dx() != 80 || bounds.Dy() != 80 {
		t.Fatalf("image size %dx%d, want 80x80", bounds.Dx(), bounds.Dy())
	}
	// Grid cell (10,10) maps to a 4x4 pixel block at (40,40).
	c := img.NRGBAAt(41, 41)
	if c.R == 0 {
		t.Error("dyed cell rendered black")
	}
	if c.A != 0xff {
		t.Error("image must be opaque")
	}
	if corner := img.NRGBAAt(2, 2); corner.R != 0 || corner.G != 0 || corner.B != 0 {
		t.Errorf("empty corner rendered %v", corner)
	}
}

func TestExportDyePNGRoundTrip(t *testing.T) {
	f := newTestFluid(t)
	path := filepath.Join(t.TempDir(), "frame.png")

	if err := NewImageExporter(40, 40).ExportDyePNG(f, path); err != nil {
		t.Fatal(err)
	}

	file, err := os.Open(path)
	if err != nil {
		t.Fatal(err)
	}
	defer file.Close()
	decoded, err := png.Decode(file)
	if err != nil {
		t.Fatalf("exported file is not valid png: %v", err)
	}
	if decoded.Bounds().Dx() != 40 || decoded.Bounds().Dy() != 40 {
		t.Errorf("decoded size %v", decoded.Bounds())
	}
}

func TestExportFrameSequence(t *testing.T) {
	f := newTestFluid(t)
	dir := t.TempDir()

	if err := NewImageExporter(20, 20).ExportFrameSequence(f, f, 3, dir, "dye"); err != nil {
		t.Fatal(err)
	}

	for i := 0; i < 3; i++ {
		name := filepath.Join(dir, fmt.Sprintf("dye_frame_%04d.png", i))
		if _, err := os.Stat(name); err != nil {
			t.Errorf("missing frame %d: %v", i, err)
		}
	}
}

func TestVelocityImageShowsMotion(t *testing.T) {
	f := newTestFluid(t)
	img := NewImageExporter(20, 20).VelocityImage(f)

	c := img.NRGBAAt(10, 10)
	if c.R == 0 {
		t.Error("moving cell has no red component")
	}
	still := img.NRGBAAt(2, 2)
	if still.R != 0 || still.G != 0 {
		t.Errorf("still cell rendered %v", still)
	}
	if still.B != 128 {
		t.Errorf("blue floor = %d", still.B)
	}
}
