package glyphs

import (
	"image"
	"image/png"
	"os"

	"github.com/pkg/errors"
)

// ImageAtlas keeps the atlas pixels in memory, one byte per texel.
type ImageAtlas struct {
	pixels *image.Alpha
}

func NewImageAtlas() *ImageAtlas {
	return &ImageAtlas{}
}

func (a *ImageAtlas) Allocate(width, height int) error {
	if width <= 0 || height <= 0 {
		return errors.Errorf("invalid atlas size %dx%d", width, height)
	}
	a.pixels = image.NewAlpha(image.Rect(0, 0, width, height))
	return nil
}

// Upload copies mask into the atlas with its top left corner at x, y. The mask must fit completely.
func (a *ImageAtlas) Upload(x, y int, mask *image.Alpha) error {
	if a.pixels == nil {
		return errors.New("upload before allocation")
	}
	glyphWidth := mask.Rect.Dx()
	glyphHeight := mask.Rect.Dy()
	dst := image.Rect(x, y, x+glyphWidth, y+glyphHeight)
	if !dst.In(a.pixels.Rect) {
		return errors.Errorf("glyph %v exceeds atlas bounds %v", dst, a.pixels.Rect)
	}
	for row := 0; row < glyphHeight; row++ {
		srcStart := mask.PixOffset(mask.Rect.Min.X, mask.Rect.Min.Y+row)
		dstStart := a.pixels.PixOffset(x, y+row)
		copy(a.pixels.Pix[dstStart:dstStart+glyphWidth], mask.Pix[srcStart:srcStart+glyphWidth])
	}
	return nil
}

func (a *ImageAtlas) Image() *image.Alpha {
	return a.pixels
}

func (a *ImageAtlas) Bounds() image.Rectangle {
	if a.pixels == nil {
		return image.Rectangle{}
	}
	return a.pixels.Bounds()
}

// WritePNG dumps the atlas for debugging.
func (a *ImageAtlas) WritePNG(filename string) error {
	if a.pixels == nil {
		return errors.New("atlas not allocated")
	}
	file, err := os.Create(filename)
	if err != nil {
		return errors.Wrapf(err, "could not create %s", filename)
	}
	defer file.Close()
	if err = png.Encode(file, a.pixels); err != nil {
		return errors.Wrapf(err, "could not encode %s", filename)
	}
	return nil
}

// MultiTarget forwards every call to all of its targets, stopping at the first error.
type MultiTarget []Target

func (m MultiTarget) Allocate(width, height int) error {
	for _, t := range m {
		if err := t.Allocate(width, height); err != nil {
			return err
		}
	}
	return nil
}

func (m MultiTarget) Upload(x, y int, mask *image.Alpha) error {
	for _, t := range m {
		if err := t.Upload(x, y, mask); err != nil {
			return err
		}
	}
	return nil
}
