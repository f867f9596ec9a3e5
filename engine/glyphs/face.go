package glyphs

import (
	"fmt"
	"image"
	"os"

	"github.com/flopp/go-findfont"
	"github.com/memmaker/hudtext/engine/util"
	"github.com/pkg/errors"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/opentype"
	"golang.org/x/image/math/fixed"
)

// FaceRasterizer rasterizes glyphs of an OpenType/TrueType font at a fixed pixel size.
type FaceRasterizer struct {
	face   font.Face
	sizePx int
}

// OpenFace loads the font at path. If path is not a readable file it is looked up by name in the
// user and system font directories.
func OpenFace(path string, sizePx int) (*FaceRasterizer, error) {
	if path == "" {
		return nil, errors.New("no font path given")
	}
	resolved, err := findfont.Find(path)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to locate font %s", path)
	}
	data, err := os.ReadFile(resolved)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read font %s", resolved)
	}
	r, err := ParseFace(data, sizePx)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load font %s", resolved)
	}
	util.LogGlyphsInfo(fmt.Sprintf("[Face] Loaded %s at %dpx", resolved, sizePx))
	return r, nil
}

// ParseFace parses raw font data. At 72 DPI one point is one pixel, so sizePx is the em size in pixels.
func ParseFace(data []byte, sizePx int) (*FaceRasterizer, error) {
	if sizePx <= 0 {
		return nil, errors.Errorf("invalid pixel size %d", sizePx)
	}
	parsed, err := opentype.Parse(data)
	if err != nil {
		return nil, errors.Wrap(err, "failed to parse font")
	}
	face, err := opentype.NewFace(parsed, &opentype.FaceOptions{
		Size:    float64(sizePx),
		DPI:     72,
		Hinting: font.HintingFull,
	})
	if err != nil {
		return nil, errors.Wrap(err, "failed to create font face")
	}
	return &FaceRasterizer{face: face, sizePx: sizePx}, nil
}

func (r *FaceRasterizer) SizePx() int {
	return r.sizePx
}

// Rasterize renders code with the pen at the origin and copies the coverage into a bitmap of its own,
// the face reuses its mask buffer between calls.
func (r *FaceRasterizer) Rasterize(code rune) (*Bitmap, error) {
	dr, mask, maskp, advance, ok := r.face.Glyph(fixed.Point26_6{}, code)
	if !ok {
		return nil, errors.Errorf("no glyph for code %d", code)
	}
	bitmap := &Bitmap{
		Mask:        image.NewAlpha(image.Rect(0, 0, dr.Dx(), dr.Dy())),
		BearingLeft: dr.Min.X,
		BearingTop:  -dr.Min.Y,
		Advance:     fixed.Point26_6{X: advance},
	}
	if mask != nil && !dr.Empty() {
		draw.Draw(bitmap.Mask, bitmap.Mask.Rect, mask, maskp, draw.Src)
	}
	return bitmap, nil
}

func (r *FaceRasterizer) Close() error {
	return r.face.Close()
}
