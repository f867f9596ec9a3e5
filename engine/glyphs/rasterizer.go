package glyphs

import (
	"image"

	"golang.org/x/image/math/fixed"
)

// Bitmap is a single rasterized glyph.
type Bitmap struct {
	// Mask holds one coverage byte per pixel, its bounds start at 0,0.
	Mask        *image.Alpha
	BearingLeft int
	BearingTop  int
	// Advance is the pen movement in 26.6 fixed point.
	Advance fixed.Point26_6
}

func (b *Bitmap) Width() int {
	if b.Mask == nil {
		return 0
	}
	return b.Mask.Rect.Dx()
}

func (b *Bitmap) Height() int {
	if b.Mask == nil {
		return 0
	}
	return b.Mask.Rect.Dy()
}

// Rasterizer renders glyphs at one fixed pixel size.
type Rasterizer interface {
	Rasterize(code rune) (*Bitmap, error)
}

// RasterizerFunc adapts a plain function to the Rasterizer interface.
type RasterizerFunc func(code rune) (*Bitmap, error)

func (f RasterizerFunc) Rasterize(code rune) (*Bitmap, error) {
	return f(code)
}
