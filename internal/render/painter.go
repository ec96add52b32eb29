//go:build ebiten

package render

import (
	"github.com/hajimehoshi/ebiten/v2"

	"github.com/ekg/itsliquid/internal/core"
)

// FieldPainter updates a single RGBA image from solver buffers and draws
// it scaled onto a destination image.
type FieldPainter struct {
	w, h int
	img  *ebiten.Image
	buf  []byte
}

// NewFieldPainter allocates a painter for a grid of size w*h.
func NewFieldPainter(w, h int) *FieldPainter {
	fp := &FieldPainter{w: w, h: h, buf: make([]byte, 4*w*h)}
	fp.img = ebiten.NewImage(w, h)
	return fp
}

// BlitDye tone-maps the dye channels and draws them at the given scale.
func (fp *FieldPainter) BlitDye(dst *ebiten.Image, f core.Field, scale int) {
	r := f.DyeR()
	if len(r) != fp.w*fp.h {
		return
	}
	FillDyeRGBA(fp.buf, r, f.DyeG(), f.DyeB())
	fp.draw(dst, scale)
}

// BlitSpeed renders the velocity field instead of the dye.
func (fp *FieldPainter) BlitSpeed(dst *ebiten.Image, f core.Field, scale int) {
	vx := f.VelocityX()
	if len(vx) != fp.w*fp.h {
		return
	}
	FillSpeedRGBA(fp.buf, vx, f.VelocityY())
	fp.draw(dst, scale)
}

func (fp *FieldPainter) draw(dst *ebiten.Image, scale int) {
	fp.img.WritePixels(fp.buf)
	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(float64(scale), float64(scale))
	dst.DrawImage(fp.img, op)
}

// Size returns the dimensions of the underlying image.
func (fp *FieldPainter) Size() (int, int) { return fp.w, fp.h }
